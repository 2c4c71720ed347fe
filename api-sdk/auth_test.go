package apisdk_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	apisdk "github.com/chessmate-app/chessmate/api-sdk"
	"github.com/chessmate-app/chessmate/api-sdk/option"
)

func newTestClient(srv *httptest.Server) *apisdk.Client {
	return apisdk.NewClient(
		option.WithBaseURL(srv.URL),
		option.WithMaxRetries(0),
	)
}

func TestAuth_Login(t *testing.T) {
	req := require.New(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req.Equal(http.MethodPost, r.Method)
		req.Equal("/api/auth/login", r.URL.Path)

		var body map[string]string
		req.NoError(json.NewDecoder(r.Body).Decode(&body))
		req.Equal("alice", body["username"])

		json.NewEncoder(w).Encode(map[string]any{
			"token": "tok-123",
			"user":  map[string]any{"id": "u-1", "username": "alice", "points": 40},
		})
	}))
	defer srv.Close()

	client := newTestClient(srv)
	res, err := client.Auth.Login(context.Background(), apisdk.LoginParams{
		Username: "alice",
		Password: "hunter22",
	})

	req.NoError(err)
	req.Equal("tok-123", res.Token)
	req.Equal("alice", res.User.Username)
	req.Equal(40, res.User.Points)
}

func TestAuth_Login_MissingCredentialsIsLocal(t *testing.T) {
	req := require.New(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request should be made")
	}))
	defer srv.Close()

	client := newTestClient(srv)
	_, err := client.Auth.Login(context.Background(), apisdk.LoginParams{Username: "alice"})

	req.ErrorIs(err, apisdk.ErrMissingCredentials)
}

func TestAuth_Login_BadPassword(t *testing.T) {
	req := require.New(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"message": "invalid username or password"})
	}))
	defer srv.Close()

	client := newTestClient(srv)
	_, err := client.Auth.Login(context.Background(), apisdk.LoginParams{
		Username: "alice",
		Password: "wrong",
	})

	req.Error(err)
	req.True(apisdk.IsUnauthorized(err))

	var apiErr *apisdk.Error
	req.ErrorAs(err, &apiErr)
	req.Equal(http.StatusUnauthorized, apiErr.StatusCode)
	req.Contains(apiErr.Message, "invalid username or password")
}

func TestAuth_Me_SendsBearer(t *testing.T) {
	req := require.New(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req.Equal("Bearer tok-123", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode(map[string]any{"id": "u-1", "username": "alice"})
	}))
	defer srv.Close()

	client := newTestClient(srv)
	user, err := client.Auth.Me(context.Background(), option.WithBearerToken("tok-123"))

	req.NoError(err)
	req.Equal("u-1", user.ID)
}

func TestAuth_NetworkErrorKind(t *testing.T) {
	req := require.New(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing listens anymore

	client := newTestClient(srv)
	_, err := client.Auth.Me(context.Background(), option.WithBearerToken("tok"))

	req.Error(err)
	req.True(apisdk.IsNetworkError(err))
}
