package domain

import (
	"context"
	"crypto/rand"
	"errors"
	"math/big"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	roomCodeLength = 6
	roomCodeChars  = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"
)

var (
	roomCharsetLen = big.NewInt(int64(len(roomCodeChars)))

	ErrRoomNotFound     = errors.New("room not found")
	ErrRoomNameRequired = errors.New("room name is required")
	ErrNotRoomCreator   = errors.New("only the room creator can delete the room")
)

// Room is one directory entry: a named, code-addressable chat context with one
// creator and a participant set. Participants are stored as user ids and
// resolved to profiles at the presentation boundary.
type Room struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Code           string    `json:"code"`
	CreatedBy      string    `json:"createdBy"`
	ParticipantIDs []string  `json:"participantIds"`
	CreatedAt      time.Time `json:"createdAt"`
}

type RoomRepository interface {
	Create(ctx context.Context, room *Room) error
	GetByID(ctx context.Context, id string) (*Room, error)
	List(ctx context.Context) ([]*Room, error)
	Delete(ctx context.Context, id string) error
}

// NewRoom creates a room with the creator as its first participant.
func NewRoom(name, createdBy string) (*Room, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrRoomNameRequired
	}

	code, err := generateRoomCode()
	if err != nil {
		return nil, err
	}

	return &Room{
		ID:             uuid.NewString(),
		Name:           name,
		Code:           code,
		CreatedBy:      createdBy,
		ParticipantIDs: []string{createdBy},
		CreatedAt:      time.Now().UTC(),
	}, nil
}

func (r *Room) IsCreator(userID string) bool {
	return userID != "" && r.CreatedBy == userID
}

func generateRoomCode() (string, error) {
	var sb strings.Builder
	sb.Grow(roomCodeLength)

	for i := 0; i < roomCodeLength; i++ {
		n, err := rand.Int(rand.Reader, roomCharsetLen)
		if err != nil {
			return "", err
		}
		sb.WriteByte(roomCodeChars[n.Int64()])
	}

	return sb.String(), nil
}
