package rooms

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/chessmate-app/chessmate/internal/domain"
	"github.com/chessmate-app/chessmate/internal/infrastructure/repository"
	"github.com/chessmate-app/chessmate/internal/infrastructure/ws"
)

type testEnv struct {
	router *chi.Mux
	users  domain.UserRepository
	rooms  domain.RoomRepository
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	logger := zap.NewNop().Sugar()

	users := repository.NewUserRepository()
	roomRepo := repository.NewRoomRepository()
	core := ws.NewCore(logger)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go core.Run(ctx)

	h := NewHandler(roomRepo, users, core, logger)

	r := chi.NewRouter()
	r.Get("/api/rooms", h.ListRoomsHandler)
	r.Post("/api/rooms/create", h.CreateRoomHandler)
	r.Get("/api/rooms/{roomId}", h.GetRoomHandler)
	r.Delete("/api/rooms/{roomId}/{callerId}", h.DeleteRoomHandler)

	return &testEnv{router: r, users: users, rooms: roomRepo}
}

func (e *testEnv) addUser(t *testing.T, username string) *domain.User {
	t.Helper()
	user, err := domain.NewUser(username, username+"@x.io", []byte("hash"))
	require.NoError(t, err)
	require.NoError(t, e.users.Create(context.Background(), user))
	return user
}

func (e *testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	r := httptest.NewRequest(method, path, reader)
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, r)
	return w
}

func TestCreateRoom(t *testing.T) {
	req := require.New(t)
	env := newTestEnv(t)
	alice := env.addUser(t, "alice")

	w := env.do(t, http.MethodPost, "/api/rooms/create", map[string]string{
		"name":      "openings",
		"createdBy": alice.ID,
	})

	req.Equal(http.StatusCreated, w.Code)

	var res roomResponse
	req.NoError(json.Unmarshal(w.Body.Bytes(), &res))
	req.NotEmpty(res.ID)
	req.Equal("openings", res.Name)
	req.Len(res.Code, 6)
	req.Equal(alice.ID, res.CreatedBy.ID)
	req.Len(res.Participants, 1)
	req.Equal("alice", res.Participants[0].Username)
}

func TestCreateRoom_UnknownCreator(t *testing.T) {
	req := require.New(t)
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/rooms/create", map[string]string{
		"name":      "openings",
		"createdBy": "no-such-user",
	})

	req.Equal(http.StatusBadRequest, w.Code)
}

func TestListRooms(t *testing.T) {
	req := require.New(t)
	env := newTestEnv(t)
	alice := env.addUser(t, "alice")

	for _, name := range []string{"openings", "endgames"} {
		w := env.do(t, http.MethodPost, "/api/rooms/create", map[string]string{
			"name":      name,
			"createdBy": alice.ID,
		})
		req.Equal(http.StatusCreated, w.Code)
	}

	w := env.do(t, http.MethodGet, "/api/rooms", nil)
	req.Equal(http.StatusOK, w.Code)

	var res []roomResponse
	req.NoError(json.Unmarshal(w.Body.Bytes(), &res))
	req.Len(res, 2)
	req.Equal("openings", res[0].Name)
	req.Equal("endgames", res[1].Name)
}

func TestGetRoom(t *testing.T) {
	req := require.New(t)
	env := newTestEnv(t)
	alice := env.addUser(t, "alice")

	w := env.do(t, http.MethodPost, "/api/rooms/create", map[string]string{
		"name":      "openings",
		"createdBy": alice.ID,
	})
	var created roomResponse
	req.NoError(json.Unmarshal(w.Body.Bytes(), &created))

	w = env.do(t, http.MethodGet, "/api/rooms/"+created.ID, nil)
	req.Equal(http.StatusOK, w.Code)

	var res roomResponse
	req.NoError(json.Unmarshal(w.Body.Bytes(), &res))
	req.Equal(created.ID, res.ID)
	req.Equal(created.Code, res.Code)
}

func TestGetRoom_NotFound(t *testing.T) {
	req := require.New(t)
	env := newTestEnv(t)

	w := env.do(t, http.MethodGet, "/api/rooms/no-such-room", nil)

	req.Equal(http.StatusNotFound, w.Code)
}

func TestDeleteRoom(t *testing.T) {
	req := require.New(t)
	env := newTestEnv(t)
	alice := env.addUser(t, "alice")

	w := env.do(t, http.MethodPost, "/api/rooms/create", map[string]string{
		"name":      "openings",
		"createdBy": alice.ID,
	})
	var created roomResponse
	req.NoError(json.Unmarshal(w.Body.Bytes(), &created))

	w = env.do(t, http.MethodDelete, "/api/rooms/"+created.ID+"/"+alice.ID, nil)
	req.Equal(http.StatusNoContent, w.Code)

	w = env.do(t, http.MethodGet, "/api/rooms/"+created.ID, nil)
	req.Equal(http.StatusNotFound, w.Code)
}

func TestDeleteRoom_NotCreator(t *testing.T) {
	req := require.New(t)
	env := newTestEnv(t)
	alice := env.addUser(t, "alice")
	bob := env.addUser(t, "bob")

	w := env.do(t, http.MethodPost, "/api/rooms/create", map[string]string{
		"name":      "openings",
		"createdBy": alice.ID,
	})
	var created roomResponse
	req.NoError(json.Unmarshal(w.Body.Bytes(), &created))

	w = env.do(t, http.MethodDelete, "/api/rooms/"+created.ID+"/"+bob.ID, nil)
	req.Equal(http.StatusForbidden, w.Code)

	// The room survives.
	w = env.do(t, http.MethodGet, "/api/rooms/"+created.ID, nil)
	req.Equal(http.StatusOK, w.Code)
}

func TestDeleteRoom_NotFound(t *testing.T) {
	req := require.New(t)
	env := newTestEnv(t)
	alice := env.addUser(t, "alice")

	w := env.do(t, http.MethodDelete, "/api/rooms/no-such-room/"+alice.ID, nil)

	req.Equal(http.StatusNotFound, w.Code)
}
