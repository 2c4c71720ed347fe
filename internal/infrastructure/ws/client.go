package ws

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/chessmate-app/chessmate/internal/domain"
)

type Client struct {
	conn  *websocket.Conn
	send  chan *Message // buffered to avoid dead-locks on slow clients
	users domain.UserRepository

	UserID   string
	Username string

	logger *zap.SugaredLogger
}

func NewClient(conn *websocket.Conn, users domain.UserRepository, logger *zap.SugaredLogger) *Client {
	return &Client{
		conn:   conn,
		send:   make(chan *Message, 64),
		users:  users,
		logger: logger,
	}
}

// ReadPump decodes inbound envelopes until the connection drops. It must run
// on its own goroutine; the matching WritePump drains c.send.
func (c *Client) ReadPump(ctx context.Context, core *Core) {
	defer func() {
		core.unregister <- c
		_ = c.conn.Close()
	}()

	for {
		var env Envelope
		if err := c.conn.ReadJSON(&env); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Warnw("ws read error", "user", c.UserID, "error", err)
			}
			return
		}

		switch env.Type {
		case JoinRoom:
			c.handleJoin(ctx, core, env)
		case SendMessage:
			c.handleSend(core, env)
		default:
			c.send <- NewError(env.RoomID, "UNKNOWN_EVENT", "unsupported event type: "+env.Type)
		}
	}
}

func (c *Client) handleJoin(ctx context.Context, core *Core, env Envelope) {
	var payload JoinRoomPayload
	if err := json.Unmarshal(env.Data, &payload); err != nil || payload.RoomID == "" || payload.UserID == "" {
		c.send <- NewError(env.RoomID, "JOIN_FAILED", "joinRoom requires roomId and userId")
		return
	}

	user, err := c.users.GetByID(ctx, payload.UserID)
	if err != nil {
		c.send <- NewError(payload.RoomID, "JOIN_FAILED", "unknown user")
		return
	}

	c.UserID = user.ID
	c.Username = user.Username
	core.join <- joinRequest{client: c, roomID: payload.RoomID}
}

func (c *Client) handleSend(core *Core, env Envelope) {
	var payload SendMessagePayload
	if err := json.Unmarshal(env.Data, &payload); err != nil {
		c.send <- NewError(env.RoomID, "BAD_PAYLOAD", "sendMessage payload is malformed")
		return
	}
	if c.Username == "" {
		c.send <- NewError(payload.RoomID, "NOT_JOINED", "join a room before sending messages")
		return
	}
	text := strings.TrimSpace(payload.Message)
	if text == "" {
		return
	}

	// The payload is the display string the sender already formatted
	// ("username: text"); it is relayed verbatim, not re-prefixed.
	core.broadcast <- outbound{
		msg:     NewChatMessage(payload.RoomID, text),
		exclude: c,
	}
}

func (c *Client) WritePump() {
	defer func() {
		_ = c.conn.Close()
	}()

	for msg := range c.send {
		if err := c.conn.WriteJSON(msg); err != nil {
			c.logger.Warnw("ws write error", "user", c.UserID, "error", err)
			return
		}
	}
}
