package repository

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/chessmate-app/chessmate/internal/domain"
)

type userRepository struct {
	users         map[string]*domain.User // ID -> User
	usernameIndex map[string]string       // lowercased username -> ID
	referralIndex map[string]string       // referral code -> ID
	mu            *sync.RWMutex
}

// cloneUser deep-copies the record; the password hash bytes must not alias
// store state.
func cloneUser(user *domain.User) *domain.User {
	clone := *user
	clone.PasswordHash = slices.Clone(user.PasswordHash)
	return &clone
}

func NewUserRepository() domain.UserRepository {
	return &userRepository{
		users:         make(map[string]*domain.User),
		usernameIndex: make(map[string]string),
		referralIndex: make(map[string]string),
		mu:            &sync.RWMutex{},
	}
}

func (r *userRepository) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := strings.ToLower(user.Username)
	if _, exists := r.usernameIndex[key]; exists {
		return domain.ErrUsernameTaken
	}
	for _, existing := range r.users {
		if existing.Email != "" && existing.Email == user.Email {
			return domain.ErrEmailTaken
		}
	}

	r.users[user.ID] = cloneUser(user)
	r.usernameIndex[key] = user.ID
	r.referralIndex[user.ReferralCode] = user.ID
	return nil
}

func (r *userRepository) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	user, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(user), nil
}

func (r *userRepository) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.usernameIndex[strings.ToLower(username)]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(r.users[id]), nil
}

func (r *userRepository) GetByReferralCode(_ context.Context, code string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.referralIndex[strings.ToUpper(strings.TrimSpace(code))]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(r.users[id]), nil
}

func (r *userRepository) Update(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.users[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	r.users[user.ID] = cloneUser(user)
	return nil
}

func (r *userRepository) CountReferredBy(_ context.Context, userID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, user := range r.users {
		if user.ReferredBy == userID {
			count++
		}
	}
	return count, nil
}
