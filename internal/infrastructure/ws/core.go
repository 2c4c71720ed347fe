package ws

import (
	"context"

	"go.uber.org/zap"
)

type joinRequest struct {
	client *Client
	roomID string
}

type outbound struct {
	msg *Message
	// exclude is the originating client; it already rendered the message
	// locally and must not receive its own echo.
	exclude *Client
}

// Core owns the room membership table. All mutation happens on the Run
// goroutine, so the maps need no locking.
type Core struct {
	rooms      map[string]map[*Client]struct{}
	join       chan joinRequest
	unregister chan *Client
	broadcast  chan outbound

	logger *zap.SugaredLogger
}

func NewCore(logger *zap.SugaredLogger) *Core {
	return &Core{
		rooms:      make(map[string]map[*Client]struct{}),
		join:       make(chan joinRequest),
		unregister: make(chan *Client),
		broadcast:  make(chan outbound, 256),
		logger:     logger,
	}
}

func (c *Core) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return

		case req := <-c.join:
			clients, ok := c.rooms[req.roomID]
			if !ok {
				clients = make(map[*Client]struct{})
				c.rooms[req.roomID] = clients
			}
			clients[req.client] = struct{}{}
			c.logger.Debugw("client joined room", "room", req.roomID, "user", req.client.UserID)

		case cl := <-c.unregister:
			for roomID, clients := range c.rooms {
				if _, ok := clients[cl]; !ok {
					continue
				}
				delete(clients, cl)
				if len(clients) == 0 {
					delete(c.rooms, roomID)
				}
			}
			close(cl.send)

		case out := <-c.broadcast:
			for cl := range c.rooms[out.msg.RoomID] {
				if cl == out.exclude {
					continue
				}
				select {
				case cl.send <- out.msg:
				default:
					// Slow consumer; drop the frame rather than stall the hub.
					c.logger.Warnw("dropping frame for slow client", "user", cl.UserID)
				}
			}
		}
	}
}

// BroadcastRoomDeleted tells every member of a room that it is gone. Called
// from the HTTP delete handler.
func (c *Core) BroadcastRoomDeleted(roomID string) {
	c.broadcast <- outbound{msg: NewRoomDeleted(roomID)}
}
