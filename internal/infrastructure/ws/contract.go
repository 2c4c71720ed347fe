package ws

import "encoding/json"

// Envelope is the wire frame shared with the client channel. Data is kept raw
// on the inbound path so each event can decode its own payload.
type Envelope struct {
	Type   string          `json:"type"`
	RoomID string          `json:"roomId"`
	Data   json.RawMessage `json:"data,omitempty"`
}

// Message is an outbound frame. Data is already concrete.
type Message struct {
	Type   string `json:"type"`
	RoomID string `json:"roomId"`
	Data   any    `json:"data,omitempty"`
}

// Payload structs
type JoinRoomPayload struct {
	RoomID string `json:"roomId"`
	UserID string `json:"userId"`
}

type SendMessagePayload struct {
	RoomID  string `json:"roomId"`
	Message string `json:"message"`
}

type ErrorPayload struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
}

func NewChatMessage(roomID, display string) *Message {
	return &Message{
		Type:   MessageEvent,
		RoomID: roomID,
		Data:   display,
	}
}

func NewRoomDeleted(roomID string) *Message {
	return &Message{
		Type:   RoomDeleted,
		RoomID: roomID,
	}
}

func NewError(roomID, code, msg string) *Message {
	return &Message{
		Type:   ErrorEvent,
		RoomID: roomID,
		Data: ErrorPayload{
			Code:    code,
			Message: msg,
		},
	}
}
