package rooms

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/chessmate-app/chessmate/internal/domain"
	"github.com/chessmate-app/chessmate/internal/infrastructure/json"
	"github.com/chessmate-app/chessmate/internal/infrastructure/ws"
)

type Handler struct {
	roomRepository domain.RoomRepository
	userRepository domain.UserRepository
	core           *ws.Core
	validate       *validator.Validate
	logger         *zap.SugaredLogger
}

func NewHandler(
	roomRepository domain.RoomRepository,
	userRepository domain.UserRepository,
	core *ws.Core,
	logger *zap.SugaredLogger,
) *Handler {
	return &Handler{
		roomRepository: roomRepository,
		userRepository: userRepository,
		core:           core,
		validate:       validator.New(validator.WithRequiredStructEnabled()),
		logger:         logger,
	}
}

// ListRoomsHandler returns every room in creation order. The directory is open
// to guests, so no authentication is required here.
func (h *Handler) ListRoomsHandler(w http.ResponseWriter, r *http.Request) {
	roomList, err := h.roomRepository.List(r.Context())
	if err != nil {
		json.WriteInternalError(w, err)
		return
	}

	out := lo.Map(roomList, func(room *domain.Room, _ int) roomResponse {
		return h.toResponse(r.Context(), room)
	})
	json.Write(w, http.StatusOK, out)
}

func (h *Handler) CreateRoomHandler(w http.ResponseWriter, r *http.Request) {
	var req createRoomRequest
	if err := json.Read(r, &req); err != nil {
		json.WriteValidationError(w, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		json.WriteValidationError(w, err)
		return
	}

	if _, err := h.userRepository.GetByID(r.Context(), req.CreatedBy); err != nil {
		json.WriteBadRequestError(w, "unknown creator")
		return
	}

	newRoom, err := domain.NewRoom(req.Name, req.CreatedBy)
	if err != nil {
		json.WriteValidationError(w, err)
		return
	}

	if err := h.roomRepository.Create(r.Context(), newRoom); err != nil {
		json.WriteInternalError(w, err)
		return
	}

	h.logger.Infow("room created", "room", newRoom.ID, "creator", req.CreatedBy)
	json.Write(w, http.StatusCreated, h.toResponse(r.Context(), newRoom))
}

func (h *Handler) GetRoomHandler(w http.ResponseWriter, r *http.Request) {
	roomID := chi.URLParam(r, "roomId")
	if roomID == "" {
		json.WriteValidationError(w, errors.New("room ID is missing"))
		return
	}

	room, err := h.roomRepository.GetByID(r.Context(), roomID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRoomNotFound):
			json.WriteNotFoundError(w, "Room not found")
		default:
			json.WriteInternalError(w, err)
		}
		return
	}

	json.Write(w, http.StatusOK, h.toResponse(r.Context(), room))
}

// DeleteRoomHandler removes a room. Only the creator may delete; everyone who
// is still connected gets a room.deleted frame.
func (h *Handler) DeleteRoomHandler(w http.ResponseWriter, r *http.Request) {
	roomID := chi.URLParam(r, "roomId")
	callerID := chi.URLParam(r, "callerId")
	if roomID == "" || callerID == "" {
		json.WriteValidationError(w, errors.New("room ID and caller ID are required"))
		return
	}

	room, err := h.roomRepository.GetByID(r.Context(), roomID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrRoomNotFound):
			json.WriteNotFoundError(w, "Room not found")
		default:
			json.WriteInternalError(w, err)
		}
		return
	}

	if !room.IsCreator(callerID) {
		json.WriteForbiddenError(w, domain.ErrNotRoomCreator.Error())
		return
	}

	if err := h.roomRepository.Delete(r.Context(), roomID); err != nil {
		json.WriteInternalError(w, err)
		return
	}

	h.logger.Infow("room deleted", "room", roomID, "caller", callerID)
	h.core.BroadcastRoomDeleted(roomID)

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) toResponse(ctx context.Context, room *domain.Room) roomResponse {
	participants := lo.FilterMap(room.ParticipantIDs, func(id string, _ int) (profileResponse, bool) {
		user, err := h.userRepository.GetByID(ctx, id)
		if err != nil {
			return profileResponse{}, false
		}
		return toProfile(user), true
	})

	resp := roomResponse{
		ID:           room.ID,
		Name:         room.Name,
		Code:         room.Code,
		Participants: participants,
		CreatedAt:    room.CreatedAt,
	}
	if creator, err := h.userRepository.GetByID(ctx, room.CreatedBy); err == nil {
		resp.CreatedBy = toProfile(creator)
	}
	return resp
}

func toProfile(user *domain.User) profileResponse {
	return profileResponse{
		ID:           user.ID,
		Username:     user.Username,
		Email:        user.Email,
		ReferralCode: user.ReferralCode,
		ReferredBy:   user.ReferredBy,
		Points:       user.Points,
		SkillScore:   user.SkillScore,
	}
}
