package utils

import (
	"errors"
	"net/http"
	"strings"

	"github.com/chessmate-app/chessmate/internal/domain"
	infraauth "github.com/chessmate-app/chessmate/internal/infrastructure/auth"
)

var ErrNoBearer = errors.New("missing or invalid bearer token")

// ResolveBearerUser verifies the Authorization header and loads the account it
// belongs to.
func ResolveBearerUser(r *http.Request, tokens *infraauth.TokenIssuer, users domain.UserRepository) (*domain.User, error) {
	header := r.Header.Get("Authorization")
	tokenString, found := strings.CutPrefix(header, "Bearer ")
	if !found || tokenString == "" {
		return nil, ErrNoBearer
	}

	userID, err := tokens.Verify(tokenString)
	if err != nil {
		return nil, ErrNoBearer
	}

	user, err := users.GetByID(r.Context(), userID)
	if err != nil {
		return nil, ErrNoBearer
	}
	return user, nil
}
