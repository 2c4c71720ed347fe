package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTokenIssuer_RoundTrip(t *testing.T) {
	req := require.New(t)
	issuer := NewTokenIssuer("test-secret", time.Hour)

	token, err := issuer.Issue("u-1")
	req.NoError(err)
	req.NotEmpty(token)

	userID, err := issuer.Verify(token)
	req.NoError(err)
	req.Equal("u-1", userID)
}

func TestTokenIssuer_WrongSecret(t *testing.T) {
	req := require.New(t)

	token, err := NewTokenIssuer("secret-a", time.Hour).Issue("u-1")
	req.NoError(err)

	_, err = NewTokenIssuer("secret-b", time.Hour).Verify(token)
	req.ErrorIs(err, ErrInvalidToken)
}

func TestTokenIssuer_Expired(t *testing.T) {
	req := require.New(t)
	issuer := NewTokenIssuer("test-secret", -time.Minute)

	token, err := issuer.Issue("u-1")
	req.NoError(err)

	_, err = issuer.Verify(token)
	req.ErrorIs(err, ErrInvalidToken)
}

func TestTokenIssuer_Garbage(t *testing.T) {
	req := require.New(t)
	issuer := NewTokenIssuer("test-secret", time.Hour)

	for _, tok := range []string{"", "not-a-jwt", "a.b.c"} {
		_, err := issuer.Verify(tok)
		req.ErrorIs(err, ErrInvalidToken)
	}
}
