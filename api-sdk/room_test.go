package apisdk_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	apisdk "github.com/chessmate-app/chessmate/api-sdk"
)

func TestRooms_List(t *testing.T) {
	req := require.New(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req.Equal("/api/rooms", r.URL.Path)
		json.NewEncoder(w).Encode([]map[string]any{
			{"id": "r-1", "name": "openings", "code": "ABC123"},
			{"id": "r-2", "name": "endgames", "code": "XYZ789"},
		})
	}))
	defer srv.Close()

	client := newTestClient(srv)
	rooms, err := client.Rooms.List(context.Background())

	req.NoError(err)
	req.Len(rooms, 2)
	req.Equal("openings", rooms[0].Name)
}

func TestRooms_Create(t *testing.T) {
	req := require.New(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req.Equal(http.MethodPost, r.Method)
		req.Equal("/api/rooms/create", r.URL.Path)

		var body map[string]string
		req.NoError(json.NewDecoder(r.Body).Decode(&body))
		req.Equal("openings", body["name"])
		req.Equal("u-1", body["createdBy"])

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]any{
			"id": "r-1", "name": "openings", "code": "ABC123",
			"createdBy": map[string]any{"id": "u-1"},
		})
	}))
	defer srv.Close()

	client := newTestClient(srv)
	room, err := client.Rooms.Create(context.Background(), apisdk.CreateRoomParams{
		Name:      "openings",
		CreatedBy: "u-1",
	})

	req.NoError(err)
	req.Equal("r-1", room.ID)
	req.Equal("u-1", room.CreatedBy.ID)
}

func TestRooms_Get_NotFound(t *testing.T) {
	req := require.New(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		json.NewEncoder(w).Encode(map[string]string{"message": "Room not found"})
	}))
	defer srv.Close()

	client := newTestClient(srv)
	_, err := client.Rooms.Get(context.Background(), "r-missing")

	req.Error(err)
	req.True(apisdk.IsNotFound(err))
}

func TestRooms_Get_MissingID(t *testing.T) {
	req := require.New(t)

	client := apisdk.NewClient()
	_, err := client.Rooms.Get(context.Background(), "")

	req.ErrorIs(err, apisdk.ErrMissingIDParameter)
}

func TestRooms_Delete_Forbidden(t *testing.T) {
	req := require.New(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req.Equal(http.MethodDelete, r.Method)
		req.Equal("/api/rooms/r-1/u-2", r.URL.Path)
		w.WriteHeader(http.StatusForbidden)
		json.NewEncoder(w).Encode(map[string]string{"message": "only the room creator can delete the room"})
	}))
	defer srv.Close()

	client := newTestClient(srv)
	err := client.Rooms.Delete(context.Background(), "r-1", "u-2")

	req.Error(err)
	req.True(apisdk.IsForbidden(err))
}

func TestRooms_FindByCode_CaseInsensitive(t *testing.T) {
	req := require.New(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]map[string]any{
			{"id": "r-1", "name": "openings", "code": "ABC123"},
		})
	}))
	defer srv.Close()

	client := newTestClient(srv)
	room, err := client.Rooms.FindByCode(context.Background(), "abc123")

	req.NoError(err)
	req.Equal("r-1", room.ID)
}

func TestRooms_FindByCode_NoMatch(t *testing.T) {
	req := require.New(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]map[string]any{})
	}))
	defer srv.Close()

	client := newTestClient(srv)
	_, err := client.Rooms.FindByCode(context.Background(), "NOPE99")

	req.Error(err)
	req.True(apisdk.IsNotFound(err))
}

func TestWallet_ReferredCount(t *testing.T) {
	req := require.New(t)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req.Equal("/api/wallet/referred-count/u-1", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]int{"count": 3})
	}))
	defer srv.Close()

	client := newTestClient(srv)
	count, err := client.Wallet.ReferredCount(context.Background(), "u-1")

	req.NoError(err)
	req.Equal(3, count)
}
