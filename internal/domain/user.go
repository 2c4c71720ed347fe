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
	referralCodeLength = 8
	referralCodeChars  = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

	// DefaultSkillScore is the rating every fresh account starts at.
	DefaultSkillScore = 1000
)

var (
	referralCharsetLen = big.NewInt(int64(len(referralCodeChars)))

	ErrUserNotFound       = errors.New("user not found")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidReferral    = errors.New("unknown referral code")
)

type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash []byte    `json:"-"`
	ReferralCode string    `json:"referralCode"`
	ReferredBy   string    `json:"referredBy,omitempty"`
	Points       int       `json:"points"`
	SkillScore   int       `json:"skillScore"`
	// ReferralCredited marks that the one-time signup-with-referral bonus has
	// been paid out, making the wallet credit idempotent.
	ReferralCredited bool      `json:"-"`
	CreatedAt        time.Time `json:"createdAt"`
}

type UserRepository interface {
	Create(ctx context.Context, user *User) error
	GetByID(ctx context.Context, id string) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	GetByReferralCode(ctx context.Context, code string) (*User, error)
	Update(ctx context.Context, user *User) error
	CountReferredBy(ctx context.Context, userID string) (int, error)
}

func NewUser(username, email string, passwordHash []byte) (*User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, errors.New("username is required")
	}

	code, err := generateReferralCode()
	if err != nil {
		return nil, err
	}

	return &User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        strings.ToLower(strings.TrimSpace(email)),
		PasswordHash: passwordHash,
		ReferralCode: code,
		SkillScore:   DefaultSkillScore,
		CreatedAt:    time.Now().UTC(),
	}, nil
}

func generateReferralCode() (string, error) {
	var sb strings.Builder
	sb.Grow(referralCodeLength)

	for i := 0; i < referralCodeLength; i++ {
		n, err := rand.Int(rand.Reader, referralCharsetLen)
		if err != nil {
			return "", err
		}
		sb.WriteByte(referralCodeChars[n.Int64()])
	}

	return sb.String(), nil
}
