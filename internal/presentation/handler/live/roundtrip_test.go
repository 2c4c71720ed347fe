package live

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	apisdk "github.com/chessmate-app/chessmate/api-sdk"
	"github.com/chessmate-app/chessmate/api-sdk/option"
	"github.com/chessmate-app/chessmate/internal/infrastructure/ws"
	"github.com/chessmate-app/chessmate/internal/session"
)

type stubIdentity struct{ user *apisdk.UserProfile }

func (s *stubIdentity) CurrentUser(context.Context) (*apisdk.UserProfile, error) {
	return s.user, nil
}

type stubDirectory struct{ room *apisdk.RoomDetail }

func (s *stubDirectory) Get(context.Context, string) (*apisdk.RoomDetail, error) {
	return s.room, nil
}

func (s *stubDirectory) Delete(context.Context, string, string) error { return nil }

// Drives a full send through every layer at once: session controller, sdk room
// channel, websocket upgrade, hub fan-out, receiving socket. The per-package
// tests cannot catch a disagreement between the controller's outbound format
// and the hub's relay, so this one pins the contract end to end.
func TestSendMessage_EndToEndDisplayString(t *testing.T) {
	req := require.New(t)
	env := newHubEnv(t)
	alice := env.addUser(t, "alice")
	bob := env.addUser(t, "bob")

	profile := &apisdk.UserProfile{ID: alice.ID, Username: alice.Username}
	detail := &apisdk.RoomDetail{RoomSummary: apisdk.RoomSummary{
		ID:        "r-1",
		Name:      "openings",
		CreatedBy: apisdk.UserProfile{ID: alice.ID, Username: alice.Username},
	}}

	client := apisdk.NewClient(option.WithBaseURL(env.server.URL))
	ctrl := session.NewController(
		&stubIdentity{user: profile},
		&stubDirectory{room: detail},
		session.NewSDKChannelFactory(client.Rooms),
		nil,
	)
	t.Cleanup(ctrl.Close)

	// An independent participant watches the room over a raw socket.
	bobConn := env.dial(t)
	send(t, bobConn, ws.JoinRoom, ws.JoinRoomPayload{RoomID: "r-1", UserID: bob.ID})
	time.Sleep(100 * time.Millisecond)

	phase := ctrl.Open(context.Background(), "r-1")
	req.Equal(session.PhaseReady, phase)
	time.Sleep(100 * time.Millisecond)

	ctrl.SendMessage("hi")

	msg := readFrame(t, bobConn)
	req.Equal(ws.MessageEvent, msg.Type)
	req.Equal("r-1", msg.RoomID)
	req.Equal("alice: hi", msg.Data, "remote participants see the sender's name exactly once")

	// The sender's own log carries the same single-prefix form.
	req.Equal([]string{"alice: hi"}, ctrl.Messages())
}
