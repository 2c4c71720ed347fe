package ws

const (
	JoinRoom    = "joinRoom"
	SendMessage = "sendMessage"

	MessageEvent = "message"
	RoomDeleted  = "room.deleted"
	ErrorEvent   = "error"
)
