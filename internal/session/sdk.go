package session

import (
	"context"

	apisdk "github.com/chessmate-app/chessmate/api-sdk"
	"github.com/chessmate-app/chessmate/api-sdk/option"
)

// SDKIdentity adapts the auth service to IdentityProvider. An empty token is
// a guest without a network call; an expired or rejected token degrades to
// guest instead of failing the session.
type SDKIdentity struct {
	auth  *apisdk.AuthService
	token string
}

func NewSDKIdentity(auth *apisdk.AuthService, token string) *SDKIdentity {
	return &SDKIdentity{auth: auth, token: token}
}

func (s *SDKIdentity) CurrentUser(ctx context.Context) (*apisdk.UserProfile, error) {
	if s.token == "" {
		return nil, nil
	}
	user, err := s.auth.Me(ctx, option.WithBearerToken(s.token))
	if err != nil {
		if apisdk.IsUnauthorized(err) {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

// SDKDirectory adapts the room service to RoomDirectory.
type SDKDirectory struct {
	rooms *apisdk.RoomService
}

func NewSDKDirectory(rooms *apisdk.RoomService) *SDKDirectory {
	return &SDKDirectory{rooms: rooms}
}

func (d *SDKDirectory) Get(ctx context.Context, roomID string) (*apisdk.RoomDetail, error) {
	return d.rooms.Get(ctx, roomID)
}

func (d *SDKDirectory) Delete(ctx context.Context, roomID, callerID string) error {
	return d.rooms.Delete(ctx, roomID, callerID)
}

// NewSDKChannelFactory builds session channels over the SDK's room channel.
func NewSDKChannelFactory(rooms *apisdk.RoomService) ChannelFactory {
	return func(roomID, userID string) (Channel, error) {
		ch, err := rooms.Channel(roomID, userID)
		if err != nil {
			return nil, err
		}
		return &sdkChannel{ch: ch}, nil
	}
}

type sdkChannel struct {
	ch *apisdk.RoomChannel
}

func (s *sdkChannel) Join(ctx context.Context) error { return s.ch.Join(ctx) }
func (s *sdkChannel) Send(text string) error         { return s.ch.Send(text) }
func (s *sdkChannel) Leave()                         { s.ch.Leave() }

// OnMessage surfaces message events only; membership and error events are for
// the presentation layer to consume off the SDK channel directly if it wants
// them.
func (s *sdkChannel) OnMessage(handler func(text string)) {
	s.ch.SetMessageHandler(func(ev apisdk.ChannelEvent) {
		if ev.Type == apisdk.EventMessage {
			handler(ev.Text())
		}
	})
}
