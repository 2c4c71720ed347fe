package repository

import (
	"context"
	"slices"
	"sort"
	"sync"

	"github.com/chessmate-app/chessmate/internal/domain"
)

type roomRepository struct {
	rooms map[string]*domain.Room // ID -> Room
	mu    *sync.RWMutex
}

func NewRoomRepository() domain.RoomRepository {
	return &roomRepository{
		rooms: make(map[string]*domain.Room),
		mu:    &sync.RWMutex{},
	}
}

// cloneRoom deep-copies the record so callers can never alias store state.
// The participant slice in particular must not be shared.
func cloneRoom(room *domain.Room) *domain.Room {
	clone := *room
	clone.ParticipantIDs = slices.Clone(room.ParticipantIDs)
	return &clone
}

func (r *roomRepository) Create(_ context.Context, room *domain.Room) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rooms[room.ID] = cloneRoom(room)
	return nil
}

func (r *roomRepository) GetByID(_ context.Context, id string) (*domain.Room, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	room, ok := r.rooms[id]
	if !ok {
		return nil, domain.ErrRoomNotFound
	}
	return cloneRoom(room), nil
}

func (r *roomRepository) List(_ context.Context) ([]*domain.Room, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*domain.Room, 0, len(r.rooms))
	for _, room := range r.rooms {
		out = append(out, cloneRoom(room))
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *roomRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.rooms[id]; !ok {
		return domain.ErrRoomNotFound
	}
	delete(r.rooms, id)
	return nil
}
