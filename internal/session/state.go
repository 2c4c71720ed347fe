package session

// Phase is the lifecycle of one room session instance.
//
//	Initializing -> RoomUnavailable   (room fetch failed or not found; terminal)
//	Initializing -> Ready             (room loaded, send/receive live)
//	Ready        -> Closing -> Closed (delete, leave, or teardown; terminal)
//
// A new Open call on a fresh Controller starts a fresh instance; terminal
// phases never transition out.
type Phase int

const (
	PhaseInitializing Phase = iota
	PhaseRoomUnavailable
	PhaseReady
	PhaseClosing
	PhaseClosed
)

func (p Phase) String() string {
	switch p {
	case PhaseInitializing:
		return "initializing"
	case PhaseRoomUnavailable:
		return "room_unavailable"
	case PhaseReady:
		return "ready"
	case PhaseClosing:
		return "closing"
	case PhaseClosed:
		return "closed"
	default:
		return "unknown"
	}
}

func (p Phase) Terminal() bool {
	return p == PhaseRoomUnavailable || p == PhaseClosed
}
