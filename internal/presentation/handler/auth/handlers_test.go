package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/chessmate-app/chessmate/internal/domain"
	infraauth "github.com/chessmate-app/chessmate/internal/infrastructure/auth"
	"github.com/chessmate-app/chessmate/internal/infrastructure/repository"
)

func newTestHandler() (*Handler, domain.UserRepository) {
	users := repository.NewUserRepository()
	tokens := infraauth.NewTokenIssuer("test-secret", time.Hour)
	return NewHandler(users, tokens), users
}

func postJSON(t *testing.T, handler http.HandlerFunc, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	r := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(raw))
	w := httptest.NewRecorder()
	handler(w, r)
	return w
}

func signupBody(username, email string) map[string]string {
	return map[string]string{
		"username": username,
		"email":    email,
		"password": "hunter2222",
	}
}

func TestSignup(t *testing.T) {
	req := require.New(t)
	h, _ := newTestHandler()

	w := postJSON(t, h.SignupHandler, "/api/auth/signup", signupBody("alice", "a@x.io"))

	req.Equal(http.StatusCreated, w.Code)

	var user domain.User
	req.NoError(json.Unmarshal(w.Body.Bytes(), &user))
	req.NotEmpty(user.ID)
	req.Equal("alice", user.Username)
	req.Len(user.ReferralCode, 8)

	// Secrets never serialize.
	req.NotContains(w.Body.String(), "passwordHash")
	req.NotContains(w.Body.String(), "PasswordHash")
}

func TestSignup_Validation(t *testing.T) {
	req := require.New(t)
	h, _ := newTestHandler()

	cases := []map[string]string{
		{"username": "al", "email": "a@x.io", "password": "hunter2222"}, // too short
		{"username": "alice", "email": "not-an-email", "password": "hunter2222"},
		{"username": "alice", "email": "a@x.io", "password": "short"},
	}

	for _, body := range cases {
		w := postJSON(t, h.SignupHandler, "/api/auth/signup", body)
		req.Equal(http.StatusBadRequest, w.Code, "body: %v", body)
	}
}

func TestSignup_DuplicateUsername(t *testing.T) {
	req := require.New(t)
	h, _ := newTestHandler()

	w := postJSON(t, h.SignupHandler, "/api/auth/signup", signupBody("alice", "a@x.io"))
	req.Equal(http.StatusCreated, w.Code)

	w = postJSON(t, h.SignupHandler, "/api/auth/signup", signupBody("alice", "other@x.io"))
	req.Equal(http.StatusConflict, w.Code)
}

func TestSignup_WithReferralCode(t *testing.T) {
	req := require.New(t)
	h, users := newTestHandler()

	w := postJSON(t, h.SignupHandler, "/api/auth/signup", signupBody("alice", "a@x.io"))
	req.Equal(http.StatusCreated, w.Code)
	var alice domain.User
	req.NoError(json.Unmarshal(w.Body.Bytes(), &alice))

	body := signupBody("bob", "b@x.io")
	body["referralCode"] = alice.ReferralCode
	w = postJSON(t, h.SignupHandler, "/api/auth/signup", body)
	req.Equal(http.StatusCreated, w.Code)

	var bob domain.User
	req.NoError(json.Unmarshal(w.Body.Bytes(), &bob))
	req.Equal(alice.ID, bob.ReferredBy)

	// The link is persisted, not just echoed.
	stored, err := users.GetByID(context.Background(), bob.ID)
	req.NoError(err)
	req.Equal(alice.ID, stored.ReferredBy)
}

func TestSignup_UnknownReferralCode(t *testing.T) {
	req := require.New(t)
	h, _ := newTestHandler()

	body := signupBody("bob", "b@x.io")
	body["referralCode"] = "NOPE2345"
	w := postJSON(t, h.SignupHandler, "/api/auth/signup", body)

	req.Equal(http.StatusBadRequest, w.Code)
}

func TestLogin(t *testing.T) {
	req := require.New(t)
	h, _ := newTestHandler()

	postJSON(t, h.SignupHandler, "/api/auth/signup", signupBody("alice", "a@x.io"))

	w := postJSON(t, h.LoginHandler, "/api/auth/login", map[string]string{
		"username": "alice",
		"password": "hunter2222",
	})

	req.Equal(http.StatusOK, w.Code)

	var res struct {
		Token string      `json:"token"`
		User  domain.User `json:"user"`
	}
	req.NoError(json.Unmarshal(w.Body.Bytes(), &res))
	req.NotEmpty(res.Token)
	req.Equal("alice", res.User.Username)
}

func TestLogin_BadPassword(t *testing.T) {
	req := require.New(t)
	h, _ := newTestHandler()

	postJSON(t, h.SignupHandler, "/api/auth/signup", signupBody("alice", "a@x.io"))

	w := postJSON(t, h.LoginHandler, "/api/auth/login", map[string]string{
		"username": "alice",
		"password": "wrong-password",
	})
	req.Equal(http.StatusUnauthorized, w.Code)

	// Unknown usernames get the same answer.
	w = postJSON(t, h.LoginHandler, "/api/auth/login", map[string]string{
		"username": "nobody",
		"password": "whatever11",
	})
	req.Equal(http.StatusUnauthorized, w.Code)
}

func TestMe(t *testing.T) {
	req := require.New(t)
	h, _ := newTestHandler()

	postJSON(t, h.SignupHandler, "/api/auth/signup", signupBody("alice", "a@x.io"))

	w := postJSON(t, h.LoginHandler, "/api/auth/login", map[string]string{
		"username": "alice",
		"password": "hunter2222",
	})
	var res struct {
		Token string `json:"token"`
	}
	req.NoError(json.Unmarshal(w.Body.Bytes(), &res))

	r := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	r.Header.Set("Authorization", "Bearer "+res.Token)
	w2 := httptest.NewRecorder()
	h.MeHandler(w2, r)

	req.Equal(http.StatusOK, w2.Code)

	var user domain.User
	req.NoError(json.Unmarshal(w2.Body.Bytes(), &user))
	req.Equal("alice", user.Username)
}

func TestMe_BadToken(t *testing.T) {
	req := require.New(t)
	h, _ := newTestHandler()

	for _, header := range []string{"", "Bearer ", "Bearer garbage", "Basic abc"} {
		r := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
		if header != "" {
			r.Header.Set("Authorization", header)
		}
		w := httptest.NewRecorder()
		h.MeHandler(w, r)
		req.Equal(http.StatusUnauthorized, w.Code, "header: %q", header)
	}
}
