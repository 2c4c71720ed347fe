package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/chessmate-app/chessmate/internal/domain"
)

func mustUser(t *testing.T, username, email string) *domain.User {
	t.Helper()
	user, err := domain.NewUser(username, email, []byte("hash"))
	require.NoError(t, err)
	return user
}

func TestUserRepository_UsernameUniqueness(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	repo := NewUserRepository()

	req.NoError(repo.Create(ctx, mustUser(t, "alice", "a@x.io")))

	// Case-insensitive collision.
	err := repo.Create(ctx, mustUser(t, "ALICE", "other@x.io"))
	req.ErrorIs(err, domain.ErrUsernameTaken)
}

func TestUserRepository_EmailUniqueness(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	repo := NewUserRepository()

	req.NoError(repo.Create(ctx, mustUser(t, "alice", "a@x.io")))

	err := repo.Create(ctx, mustUser(t, "bob", "a@x.io"))
	req.ErrorIs(err, domain.ErrEmailTaken)
}

func TestUserRepository_LookupByReferralCode(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	repo := NewUserRepository()

	alice := mustUser(t, "alice", "a@x.io")
	req.NoError(repo.Create(ctx, alice))

	// Lookup is case and whitespace tolerant.
	got, err := repo.GetByReferralCode(ctx, "  "+alice.ReferralCode+" ")
	req.NoError(err)
	req.Equal(alice.ID, got.ID)

	_, err = repo.GetByReferralCode(ctx, "NOPE1234")
	req.ErrorIs(err, domain.ErrUserNotFound)
}

func TestUserRepository_CountReferredBy(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	repo := NewUserRepository()

	alice := mustUser(t, "alice", "a@x.io")
	req.NoError(repo.Create(ctx, alice))

	for _, name := range []string{"bob", "carol"} {
		u := mustUser(t, name, name+"@x.io")
		u.ReferredBy = alice.ID
		req.NoError(repo.Create(ctx, u))
	}

	count, err := repo.CountReferredBy(ctx, alice.ID)
	req.NoError(err)
	req.Equal(2, count)
}

func TestUserRepository_ClonesOnAccess(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	repo := NewUserRepository()

	alice := mustUser(t, "alice", "a@x.io")
	req.NoError(repo.Create(ctx, alice))

	// Mutating the returned value must not leak into the store.
	got, err := repo.GetByID(ctx, alice.ID)
	req.NoError(err)
	got.Points = 9000

	fresh, err := repo.GetByID(ctx, alice.ID)
	req.NoError(err)
	req.Zero(fresh.Points)
}

func TestUserRepository_Update(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	repo := NewUserRepository()

	alice := mustUser(t, "alice", "a@x.io")
	req.NoError(repo.Create(ctx, alice))

	alice.Points = 20
	req.NoError(repo.Update(ctx, alice))

	got, err := repo.GetByID(ctx, alice.ID)
	req.NoError(err)
	req.Equal(20, got.Points)

	ghost := mustUser(t, "ghost", "g@x.io")
	req.ErrorIs(repo.Update(ctx, ghost), domain.ErrUserNotFound)
}

func TestRoomRepository_ListSortedByCreation(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	repo := NewRoomRepository()

	for i, name := range []string{"first", "second", "third"} {
		room, err := domain.NewRoom(name, "u-1")
		req.NoError(err)
		room.CreatedAt = time.Unix(int64(100+i), 0)
		req.NoError(repo.Create(ctx, room))
	}

	rooms, err := repo.List(ctx)
	req.NoError(err)
	req.Len(rooms, 3)
	req.Equal("first", rooms[0].Name)
	req.Equal("third", rooms[2].Name)
}

func TestRoomRepository_ParticipantsDoNotAliasStore(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	repo := NewRoomRepository()

	room, err := domain.NewRoom("openings", "u-1")
	req.NoError(err)
	req.NoError(repo.Create(ctx, room))

	// Appending through a returned copy must not corrupt the stored list.
	got, err := repo.GetByID(ctx, room.ID)
	req.NoError(err)
	got.ParticipantIDs[0] = "intruder"
	got.ParticipantIDs = append(got.ParticipantIDs, "extra")

	fresh, err := repo.GetByID(ctx, room.ID)
	req.NoError(err)
	req.Equal([]string{"u-1"}, fresh.ParticipantIDs)

	// The caller's original is not aliased either.
	room.ParticipantIDs[0] = "mutated"
	fresh, err = repo.GetByID(ctx, room.ID)
	req.NoError(err)
	req.Equal([]string{"u-1"}, fresh.ParticipantIDs)
}

func TestUserRepository_PasswordHashDoesNotAliasStore(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	repo := NewUserRepository()

	alice := mustUser(t, "alice", "a@x.io")
	req.NoError(repo.Create(ctx, alice))

	got, err := repo.GetByID(ctx, alice.ID)
	req.NoError(err)
	got.PasswordHash[0] = 'X'

	fresh, err := repo.GetByID(ctx, alice.ID)
	req.NoError(err)
	req.Equal([]byte("hash"), fresh.PasswordHash)
}

func TestRoomRepository_Delete(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	repo := NewRoomRepository()

	room, err := domain.NewRoom("openings", "u-1")
	req.NoError(err)
	req.NoError(repo.Create(ctx, room))

	req.NoError(repo.Delete(ctx, room.ID))

	_, err = repo.GetByID(ctx, room.ID)
	req.ErrorIs(err, domain.ErrRoomNotFound)

	req.ErrorIs(repo.Delete(ctx, room.ID), domain.ErrRoomNotFound)
}
