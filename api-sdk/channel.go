package apisdk

import (
	"context"
	"errors"
	"log"
	"net/http"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/chessmate-app/chessmate/api-sdk/internal/requestconfig"
	"github.com/chessmate-app/chessmate/api-sdk/option"
	"github.com/gorilla/websocket"
)

var (
	ErrChannelClosed       = errors.New("room channel is closed")
	ErrChannelDisconnected = errors.New("room channel is not connected")
)

// ChannelState is the connectivity of a RoomChannel, surfaced explicitly so
// callers can react to a broken transport instead of sending into the void.
type ChannelState int32

const (
	ChannelDisconnected ChannelState = iota
	ChannelConnecting
	ChannelConnected
	ChannelClosed
)

func (s ChannelState) String() string {
	switch s {
	case ChannelConnecting:
		return "connecting"
	case ChannelConnected:
		return "connected"
	case ChannelClosed:
		return "closed"
	default:
		return "disconnected"
	}
}

// RoomChannel is the live bidirectional event channel scoped to one room.
// Delivery is at most once with no ordering guarantee across senders; inbound
// events reach the message handler one at a time, in arrival order.
//
// A broken connection is redialed with exponential backoff and the join event
// is re-emitted on every successful reconnect. Leave stops the loop and is
// safe to call any number of times.
type RoomChannel struct {
	wsURL  string
	roomID string
	userID string
	dialer *websocket.Dialer

	mu             sync.Mutex
	conn           *websocket.Conn
	state          ChannelState
	messageHandler func(ChannelEvent)
	stateHandler   func(ChannelState)
	errorHandler   func(error)

	joinOnce  sync.Once
	leaveOnce sync.Once
	done      chan struct{}
}

// Channel prepares a live channel bound to (roomID, userID). No connection is
// made until Join is called.
func (r *RoomService) Channel(roomID, userID string, opts ...option.RequestOption) (*RoomChannel, error) {
	opts = slices.Concat(r.Options, opts)

	if roomID == "" || userID == "" {
		return nil, ErrMissingIDParameter
	}

	cfg, err := requestconfig.NewRequestConfig(context.Background(), http.MethodGet, "", nil, nil, opts...)
	if err != nil {
		return nil, err
	}

	baseURL := strings.TrimSuffix(cfg.BaseURL.String(), "/")
	wsURL := baseURL
	if after, ok := strings.CutPrefix(baseURL, "https://"); ok {
		wsURL = "wss://" + after
	} else if after, ok := strings.CutPrefix(baseURL, "http://"); ok {
		wsURL = "ws://" + after
	}

	ch := &RoomChannel{
		wsURL:  wsURL + "/ws",
		roomID: roomID,
		userID: userID,
		dialer: &websocket.Dialer{HandshakeTimeout: 10 * time.Second},
		state:  ChannelDisconnected,
		done:   make(chan struct{}),
	}

	return ch, nil
}

func (ch *RoomChannel) RoomID() string { return ch.roomID }

func (ch *RoomChannel) State() ChannelState {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	return ch.state
}

// SetMessageHandler registers the callback invoked once per inbound event, in
// arrival order, for the lifetime of the subscription.
func (ch *RoomChannel) SetMessageHandler(handler func(ChannelEvent)) {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	ch.messageHandler = handler
}

func (ch *RoomChannel) SetStateHandler(handler func(ChannelState)) {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	ch.stateHandler = handler
}

func (ch *RoomChannel) SetErrorHandler(handler func(error)) {
	ch.mu.Lock()
	defer ch.mu.Unlock()
	ch.errorHandler = handler
}

// Join dials the transport and emits the join event. Idempotent: only the
// first call connects. A dial failure leaves the channel in the disconnected
// state and the background loop keeps retrying until Leave.
func (ch *RoomChannel) Join(ctx context.Context) error {
	var dialErr error
	ch.joinOnce.Do(func() {
		dialErr = ch.connect(ctx)
		go ch.run(ctx)
	})
	return dialErr
}

// Send emits a message event. Fire and forget: no delivery confirmation, no
// retry. The only errors are local ones for a closed or disconnected channel.
func (ch *RoomChannel) Send(text string) error {
	ch.mu.Lock()
	defer ch.mu.Unlock()

	switch ch.state {
	case ChannelClosed:
		return ErrChannelClosed
	case ChannelConnected:
	default:
		return ErrChannelDisconnected
	}

	return ch.conn.WriteJSON(NewSendMessage(ch.roomID, text))
}

// Leave releases the transport. Safe to call multiple times; calls after the
// first are no-ops.
func (ch *RoomChannel) Leave() {
	ch.leaveOnce.Do(func() {
		close(ch.done)

		ch.mu.Lock()
		defer ch.mu.Unlock()
		ch.setStateLocked(ChannelClosed)
		if ch.conn != nil {
			_ = ch.conn.Close()
			ch.conn = nil
		}
	})
}

func (ch *RoomChannel) closed() bool {
	select {
	case <-ch.done:
		return true
	default:
		return false
	}
}

func (ch *RoomChannel) connect(ctx context.Context) error {
	ch.mu.Lock()
	if ch.state == ChannelClosed {
		ch.mu.Unlock()
		return ErrChannelClosed
	}
	ch.setStateLocked(ChannelConnecting)
	ch.mu.Unlock()

	conn, _, err := ch.dialer.DialContext(ctx, ch.wsURL, nil)
	if err != nil {
		ch.mu.Lock()
		ch.setStateLocked(ChannelDisconnected)
		ch.mu.Unlock()
		return err
	}

	ch.mu.Lock()
	defer ch.mu.Unlock()
	if ch.state == ChannelClosed {
		_ = conn.Close()
		return ErrChannelClosed
	}
	ch.conn = conn
	ch.setStateLocked(ChannelConnected)

	return conn.WriteJSON(NewJoinRoom(ch.roomID, ch.userID))
}

// run owns the read loop and the reconnect cycle for the channel's lifetime.
func (ch *RoomChannel) run(ctx context.Context) {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = time.Second
	bo.MaxInterval = 30 * time.Second

	for {
		if ch.closed() || ctx.Err() != nil {
			ch.Leave()
			return
		}

		ch.mu.Lock()
		conn := ch.conn
		ch.mu.Unlock()

		if conn == nil {
			select {
			case <-ch.done:
				return
			case <-ctx.Done():
				ch.Leave()
				return
			case <-time.After(bo.NextBackOff()):
			}
			if err := ch.connect(ctx); err != nil {
				ch.reportError(err)
			}
			continue
		}

		bo.Reset()
		err := ch.readLoop(conn)
		if ch.closed() {
			return
		}

		ch.mu.Lock()
		if ch.conn == conn {
			_ = conn.Close()
			ch.conn = nil
		}
		ch.setStateLocked(ChannelDisconnected)
		ch.mu.Unlock()

		if err != nil {
			ch.reportError(err)
		}
	}
}

func (ch *RoomChannel) readLoop(conn *websocket.Conn) error {
	for {
		var ev ChannelEvent
		if err := conn.ReadJSON(&ev); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("[channel] unexpected close on room %s: %v", ch.roomID, err)
			}
			return err
		}

		ch.mu.Lock()
		handler := ch.messageHandler
		ch.mu.Unlock()

		if handler != nil {
			handler(ev)
		}
	}
}

func (ch *RoomChannel) setStateLocked(s ChannelState) {
	if ch.state == s || ch.state == ChannelClosed {
		return
	}
	ch.state = s
	if ch.stateHandler != nil {
		go ch.stateHandler(s)
	}
}

func (ch *RoomChannel) reportError(err error) {
	ch.mu.Lock()
	handler := ch.errorHandler
	ch.mu.Unlock()
	if handler != nil {
		handler(err)
	}
}
