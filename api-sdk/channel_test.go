package apisdk_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"

	apisdk "github.com/chessmate-app/chessmate/api-sdk"
	"github.com/chessmate-app/chessmate/api-sdk/option"
)

// wsTestServer accepts one /ws connection at a time and records every frame
// the client sends.
type wsTestServer struct {
	t  *testing.T
	mu sync.Mutex

	srv      *httptest.Server
	upgrader websocket.Upgrader
	frames   []apisdk.ChannelEvent
	conns    chan *websocket.Conn
}

func newWSTestServer(t *testing.T) *wsTestServer {
	ts := &wsTestServer{t: t, conns: make(chan *websocket.Conn, 4)}
	ts.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/ws" {
			http.NotFound(w, r)
			return
		}
		conn, err := ts.upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		ts.conns <- conn
		for {
			var ev apisdk.ChannelEvent
			if err := conn.ReadJSON(&ev); err != nil {
				return
			}
			ts.mu.Lock()
			ts.frames = append(ts.frames, ev)
			ts.mu.Unlock()
		}
	}))
	t.Cleanup(ts.srv.Close)
	return ts
}

func (ts *wsTestServer) waitFrames(n int) []apisdk.ChannelEvent {
	deadline := time.Now().Add(4 * time.Second)
	for time.Now().Before(deadline) {
		ts.mu.Lock()
		if len(ts.frames) >= n {
			out := append([]apisdk.ChannelEvent(nil), ts.frames...)
			ts.mu.Unlock()
			return out
		}
		ts.mu.Unlock()
		time.Sleep(10 * time.Millisecond)
	}
	ts.t.Fatalf("timed out waiting for %d frames", n)
	return nil
}

func newChannel(t *testing.T, ts *wsTestServer) *apisdk.RoomChannel {
	client := apisdk.NewClient(option.WithBaseURL(ts.srv.URL))
	ch, err := client.Rooms.Channel("r-1", "u-1")
	require.NoError(t, err)
	return ch
}

func TestChannel_JoinEmitsJoinRoom(t *testing.T) {
	req := require.New(t)
	ts := newWSTestServer(t)
	ch := newChannel(t, ts)
	defer ch.Leave()

	req.NoError(ch.Join(context.Background()))
	req.Equal(apisdk.ChannelConnected, ch.State())

	frames := ts.waitFrames(1)
	req.Equal(apisdk.EventJoinRoom, frames[0].Type)
	req.Equal("r-1", frames[0].RoomID)

	var payload apisdk.JoinRoomPayload
	req.NoError(frames[0].DecodeData(&payload))
	req.Equal("u-1", payload.UserID)
}

func TestChannel_SendAndReceiveInOrder(t *testing.T) {
	req := require.New(t)
	ts := newWSTestServer(t)
	ch := newChannel(t, ts)
	defer ch.Leave()

	var mu sync.Mutex
	var got []string
	ch.SetMessageHandler(func(ev apisdk.ChannelEvent) {
		if ev.Type == apisdk.EventMessage {
			mu.Lock()
			got = append(got, ev.Text())
			mu.Unlock()
		}
	})

	req.NoError(ch.Join(context.Background()))
	serverConn := <-ts.conns

	req.NoError(ch.Send("alice: one"))
	frames := ts.waitFrames(2) // joinRoom + sendMessage
	req.Equal(apisdk.EventSendMessage, frames[1].Type)

	var payload apisdk.SendMessagePayload
	req.NoError(frames[1].DecodeData(&payload))
	req.Equal("alice: one", payload.Message)

	// Inbound frames reach the handler in arrival order.
	for _, text := range []string{"bob: two", "bob: three"} {
		req.NoError(serverConn.WriteJSON(apisdk.ChannelEvent{
			Type:   apisdk.EventMessage,
			RoomID: "r-1",
			Data:   text,
		}))
	}

	deadline := time.Now().Add(2 * time.Second)
	for {
		mu.Lock()
		n := len(got)
		mu.Unlock()
		if n >= 2 || time.Now().After(deadline) {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}

	mu.Lock()
	defer mu.Unlock()
	req.Equal([]string{"bob: two", "bob: three"}, got)
}

func TestChannel_SendBeforeJoin(t *testing.T) {
	req := require.New(t)
	ts := newWSTestServer(t)
	ch := newChannel(t, ts)
	defer ch.Leave()

	err := ch.Send("too early")
	req.ErrorIs(err, apisdk.ErrChannelDisconnected)
}

func TestChannel_LeaveIsIdempotent(t *testing.T) {
	req := require.New(t)
	ts := newWSTestServer(t)
	ch := newChannel(t, ts)

	req.NoError(ch.Join(context.Background()))

	ch.Leave()
	ch.Leave()
	ch.Leave()

	req.Equal(apisdk.ChannelClosed, ch.State())
	req.ErrorIs(ch.Send("after close"), apisdk.ErrChannelClosed)
}

func TestChannel_JoinIsIdempotent(t *testing.T) {
	req := require.New(t)
	ts := newWSTestServer(t)
	ch := newChannel(t, ts)
	defer ch.Leave()

	req.NoError(ch.Join(context.Background()))
	req.NoError(ch.Join(context.Background()))
	req.NoError(ch.Join(context.Background()))

	// Only the first Join dials; one connection, one joinRoom frame.
	time.Sleep(50 * time.Millisecond)
	frames := ts.waitFrames(1)
	req.Len(frames, 1)
	req.Len(ts.conns, 0)
}

func TestChannel_ReconnectsAndRejoins(t *testing.T) {
	req := require.New(t)
	ts := newWSTestServer(t)
	ch := newChannel(t, ts)
	defer ch.Leave()

	states := make(chan apisdk.ChannelState, 16)
	ch.SetStateHandler(func(s apisdk.ChannelState) { states <- s })

	req.NoError(ch.Join(context.Background()))
	serverConn := <-ts.conns
	ts.waitFrames(1)

	// Kill the connection server-side; the channel must redial and re-emit
	// the join event.
	serverConn.Close()

	frames := ts.waitFrames(2)
	req.Equal(apisdk.EventJoinRoom, frames[1].Type)
	req.Equal(apisdk.ChannelConnected, ch.State())

	sawDisconnected := false
	for {
		select {
		case s := <-states:
			if s == apisdk.ChannelDisconnected {
				sawDisconnected = true
			}
		default:
			req.True(sawDisconnected, "expected an explicit disconnected state during the outage")
			return
		}
	}
}

func TestChannel_MissingIDs(t *testing.T) {
	req := require.New(t)
	client := apisdk.NewClient()

	_, err := client.Rooms.Channel("", "u-1")
	req.ErrorIs(err, apisdk.ErrMissingIDParameter)

	_, err = client.Rooms.Channel("r-1", "")
	req.ErrorIs(err, apisdk.ErrMissingIDParameter)
}
