// Package session owns the lifecycle of one room's interactive session: the
// identity and room-detail fetches, the live channel bound to the room, the
// in-memory message log, and the ownership gate on destructive actions.
package session

import (
	"context"
	"strings"
	"sync"

	apisdk "github.com/chessmate-app/chessmate/api-sdk"
	"go.uber.org/zap"
)

// IdentityProvider resolves the caller behind the stored credential.
// A guest (no or invalid credential) is reported as (nil, nil).
type IdentityProvider interface {
	CurrentUser(ctx context.Context) (*apisdk.UserProfile, error)
}

// RoomDirectory is the slice of the room directory the session needs.
type RoomDirectory interface {
	Get(ctx context.Context, roomID string) (*apisdk.RoomDetail, error)
	Delete(ctx context.Context, roomID, callerID string) error
}

// Channel is the live messaging subscription for one room.
type Channel interface {
	Join(ctx context.Context) error
	Send(text string) error
	OnMessage(handler func(text string))
	Leave()
}

// ChannelFactory binds a channel to (roomID, userID).
type ChannelFactory func(roomID, userID string) (Channel, error)

// Controller drives exactly one session instance. It is bound to one room and,
// when authenticated, one user; the channel it acquires never outlives it. A
// fresh Open needs a fresh Controller.
type Controller struct {
	identity   IdentityProvider
	directory  RoomDirectory
	newChannel ChannelFactory
	logger     *zap.SugaredLogger

	mu                sync.Mutex
	phase             Phase
	roomID            string
	user              *apisdk.UserProfile
	room              *apisdk.RoomDetail
	unavailableReason string
	messages          []string
	channel           Channel
	cancel            context.CancelFunc

	closeOnce sync.Once
	notify    func()
	navigate  func()
}

func NewController(identity IdentityProvider, directory RoomDirectory, newChannel ChannelFactory, logger *zap.SugaredLogger) *Controller {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Controller{
		identity:   identity,
		directory:  directory,
		newChannel: newChannel,
		logger:     logger,
		phase:      PhaseInitializing,
	}
}

// OnChange registers a hook invoked after any observable state change. Set it
// before Open.
func (c *Controller) OnChange(fn func()) { c.notify = fn }

// OnNavigateAway registers the signal the presentation layer uses to leave the
// screen after delete or leave.
func (c *Controller) OnNavigateAway(fn func()) { c.navigate = fn }

// Open resolves the caller identity and the room detail (concurrently, neither
// depends on the other), then binds the live channel. A failed or not-found
// room fetch ends in the terminal RoomUnavailable phase. A guest session gets
// no channel and send stays disabled, but the room detail is still fetched.
func (c *Controller) Open(ctx context.Context, roomID string) Phase {
	ctx, cancel := context.WithCancel(ctx)

	c.mu.Lock()
	c.roomID = roomID
	c.cancel = cancel
	c.mu.Unlock()

	var (
		user    *apisdk.UserProfile
		userErr error
		room    *apisdk.RoomDetail
		roomErr error
		wg      sync.WaitGroup
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		user, userErr = c.identity.CurrentUser(ctx)
	}()
	go func() {
		defer wg.Done()
		room, roomErr = c.directory.Get(ctx, roomID)
	}()
	wg.Wait()

	c.mu.Lock()
	if c.phase == PhaseClosed {
		// Closed while the fetches were in flight; drop the results.
		c.mu.Unlock()
		return PhaseClosed
	}
	if userErr != nil {
		c.logger.Warnw("identity resolution failed, continuing as guest", "error", userErr)
		user = nil
	}
	c.user = user
	if roomErr != nil {
		c.phase = PhaseRoomUnavailable
		c.unavailableReason = unavailableReason(roomErr)
		c.logger.Infow("room unavailable", "roomId", roomID, "reason", c.unavailableReason)
	} else {
		c.room = room
		c.phase = PhaseReady
	}
	phase := c.phase
	c.mu.Unlock()

	// The channel binds once the identity is known, independent of the room
	// fetch outcome; teardown releases it on every path.
	if user != nil {
		c.bindChannel(ctx, roomID, user.ID)
	}

	c.changed()
	return phase
}

func (c *Controller) bindChannel(ctx context.Context, roomID, userID string) {
	ch, err := c.newChannel(roomID, userID)
	if err != nil {
		c.logger.Errorw("channel setup failed", "roomId", roomID, "error", err)
		return
	}
	ch.OnMessage(c.onChannelMessage)

	c.mu.Lock()
	if c.phase == PhaseClosed {
		c.mu.Unlock()
		ch.Leave()
		return
	}
	c.channel = ch
	c.mu.Unlock()

	if err := ch.Join(ctx); err != nil {
		// The channel keeps redialing in the background; the session stays
		// usable with send failing locally until it reconnects.
		c.logger.Warnw("channel join failed", "roomId", roomID, "error", err)
	}
}

// SendMessage formats, optimistically appends, and emits one chat message.
// Empty or whitespace-only text, a guest session, or a session that is not
// ready make it a no-op. No acknowledgment is awaited and a channel failure is
// not retried.
func (c *Controller) SendMessage(text string) {
	if strings.TrimSpace(text) == "" {
		return
	}

	c.mu.Lock()
	if c.user == nil || c.phase != PhaseReady {
		c.mu.Unlock()
		return
	}
	formatted := c.user.Username + ": " + text
	c.messages = append(c.messages, formatted)
	ch := c.channel
	c.mu.Unlock()

	if ch != nil {
		if err := ch.Send(formatted); err != nil {
			c.logger.Debugw("channel send failed", "error", err)
		}
	}
	c.changed()
}

// onChannelMessage appends a remotely-delivered payload verbatim, in arrival
// order. No reconciliation with locally-sent messages is attempted.
func (c *Controller) onChannelMessage(text string) {
	c.mu.Lock()
	if c.phase != PhaseReady {
		c.mu.Unlock()
		return
	}
	c.messages = append(c.messages, text)
	c.mu.Unlock()
	c.changed()
}

// DeleteRoom issues the destructive directory call. Only the creator may
// delete; everyone else gets a forbidden error without a network call (the
// backend enforces the same rule). Success closes the session and signals
// navigation away.
func (c *Controller) DeleteRoom(ctx context.Context) error {
	c.mu.Lock()
	user, room := c.user, c.room
	c.mu.Unlock()

	if user == nil || room == nil {
		return &apisdk.Error{Kind: apisdk.KindForbidden, Message: "only the room creator can delete the room"}
	}
	if room.CreatedBy.ID != user.ID {
		return &apisdk.Error{Kind: apisdk.KindForbidden, Message: "only the room creator can delete the room"}
	}

	if err := c.directory.Delete(ctx, room.ID, user.ID); err != nil {
		return err
	}

	c.mu.Lock()
	c.phase = PhaseClosing
	c.mu.Unlock()

	c.Close()
	c.navigateAway()
	return nil
}

// LeaveRoom ends a non-owner's session: the channel subscription is released
// and the presentation layer is signalled to navigate away. The directory is
// not informed of the membership change.
func (c *Controller) LeaveRoom() {
	c.Close()
	c.navigateAway()
}

// Close tears the session down: it cancels any in-flight fetches and releases
// the channel subscription exactly once, however teardown was triggered.
func (c *Controller) Close() {
	c.closeOnce.Do(func() {
		c.mu.Lock()
		if c.cancel != nil {
			c.cancel()
		}
		ch := c.channel
		c.phase = PhaseClosed
		c.mu.Unlock()

		if ch != nil {
			ch.Leave()
		}
		c.changed()
	})
}

func (c *Controller) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

func (c *Controller) User() *apisdk.UserProfile {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.user
}

func (c *Controller) Room() *apisdk.RoomDetail {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.room
}

// Messages returns a snapshot of the display sequence in append order.
func (c *Controller) Messages() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]string, len(c.messages))
	copy(out, c.messages)
	return out
}

// CanSend reports whether the send path is enabled: authenticated and ready.
func (c *Controller) CanSend() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.user != nil && c.phase == PhaseReady
}

// IsOwner reports whether the bound identity created the room.
func (c *Controller) IsOwner() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.user != nil && c.room != nil && c.room.CreatedBy.ID == c.user.ID
}

func (c *Controller) UnavailableReason() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.unavailableReason
}

func (c *Controller) changed() {
	if c.notify != nil {
		c.notify()
	}
}

func (c *Controller) navigateAway() {
	if c.navigate != nil {
		c.navigate()
	}
}

func unavailableReason(err error) string {
	if apisdk.IsNotFound(err) {
		return "Room not found or no longer exists."
	}
	return "Room could not be loaded."
}
