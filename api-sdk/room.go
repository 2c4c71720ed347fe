package apisdk

import (
	"context"
	"fmt"
	"net/http"
	"slices"
	"strings"

	"github.com/chessmate-app/chessmate/api-sdk/internal/apierror"
	"github.com/chessmate-app/chessmate/api-sdk/internal/requestconfig"
	"github.com/chessmate-app/chessmate/api-sdk/option"
	"github.com/samber/lo"
)

type RoomService struct {
	Options []option.RequestOption
}

func NewRoomService(opts ...option.RequestOption) *RoomService {
	r := &RoomService{opts}
	return r
}

// List returns every open room with creator and participants resolved to
// profiles.
func (r *RoomService) List(ctx context.Context, opts ...option.RequestOption) ([]RoomSummary, error) {
	opts = slices.Concat(r.Options, opts)

	var res []RoomSummary
	err := requestconfig.ExecuteNewRequest(ctx, http.MethodGet, "api/rooms", nil, &res, opts...)

	return res, err
}

func (r *RoomService) Create(ctx context.Context, body CreateRoomParams, opts ...option.RequestOption) (*RoomSummary, error) {
	opts = slices.Concat(r.Options, opts)

	res := &RoomSummary{}
	err := requestconfig.ExecuteNewRequest(ctx, http.MethodPost, "api/rooms/create", body, res, opts...)

	return res, err
}

func (r *RoomService) Get(ctx context.Context, id string, opts ...option.RequestOption) (*RoomDetail, error) {
	opts = slices.Concat(r.Options, opts)
	if id == "" {
		return nil, ErrMissingIDParameter
	}

	path := fmt.Sprintf("api/rooms/%s", id)
	res := &RoomDetail{}
	err := requestconfig.ExecuteNewRequest(ctx, http.MethodGet, path, nil, res, opts...)

	return res, err
}

// Delete removes a room. The backend rejects callers other than the creator.
func (r *RoomService) Delete(ctx context.Context, roomID, callerID string, opts ...option.RequestOption) error {
	opts = slices.Concat(r.Options, opts)
	if roomID == "" || callerID == "" {
		return ErrMissingIDParameter
	}

	path := fmt.Sprintf("api/rooms/%s/%s", roomID, callerID)
	err := requestconfig.ExecuteNewRequest(ctx, http.MethodDelete, path, nil, nil, opts...)

	return err
}

// FindByCode selects the room whose code matches case-insensitively, or a
// not-found error when no room carries that code.
func (r *RoomService) FindByCode(ctx context.Context, code string, opts ...option.RequestOption) (*RoomSummary, error) {
	if strings.TrimSpace(code) == "" {
		return nil, ErrMissingCodeParameter
	}

	rooms, err := r.List(ctx, opts...)
	if err != nil {
		return nil, err
	}

	room, ok := lo.Find(rooms, func(room RoomSummary) bool {
		return strings.EqualFold(room.Code, code)
	})
	if !ok {
		return nil, apierror.NewFromStatus(http.StatusNotFound, fmt.Sprintf("no room with code %q", code), nil)
	}

	return &room, nil
}

// RoomSummary is one directory entry. The backend resolves the creator and
// participant list to full profiles.
type RoomSummary struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Code         string        `json:"code"`
	CreatedBy    UserProfile   `json:"createdBy"`
	Participants []UserProfile `json:"participants"`
}

// RoomDetail is the per-session view of one room, refetched on every open and
// never cached across sessions.
type RoomDetail struct {
	RoomSummary
}

type CreateRoomParams struct {
	Name      string `json:"name"`
	CreatedBy string `json:"createdBy"`
}
