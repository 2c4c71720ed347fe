package apisdk

import "encoding/json"

// Wire event types exchanged on the room channel.
const (
	EventJoinRoom    = "joinRoom"
	EventSendMessage = "sendMessage"
	EventMessage     = "message"
	EventRoomDeleted = "room.deleted"
	EventError       = "error"
)

// ChannelEvent is the JSON envelope for every frame on the room channel.
type ChannelEvent struct {
	Type   string `json:"type"`
	RoomID string `json:"roomId"`
	Data   any    `json:"data"`
}

// DecodeData re-marshals the untyped Data field into a concrete payload.
func (e ChannelEvent) DecodeData(v any) error {
	raw, err := json.Marshal(e.Data)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, v)
}

// Text returns the display-ready string carried by a message event, or ""
// when the payload is not a string.
func (e ChannelEvent) Text() string {
	if s, ok := e.Data.(string); ok {
		return s
	}
	return ""
}

type JoinRoomPayload struct {
	RoomID string `json:"roomId"`
	UserID string `json:"userId"`
}

type SendMessagePayload struct {
	RoomID  string `json:"roomId"`
	Message string `json:"message"`
}

type ChannelErrorPayload struct {
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
	Retry   bool   `json:"retry,omitempty"`
}

func NewJoinRoom(roomID, userID string) ChannelEvent {
	return ChannelEvent{
		Type:   EventJoinRoom,
		RoomID: roomID,
		Data:   JoinRoomPayload{RoomID: roomID, UserID: userID},
	}
}

func NewSendMessage(roomID, message string) ChannelEvent {
	return ChannelEvent{
		Type:   EventSendMessage,
		RoomID: roomID,
		Data:   SendMessagePayload{RoomID: roomID, Message: message},
	}
}
