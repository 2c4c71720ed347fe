package wallet

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/chessmate-app/chessmate/internal/domain"
	infraauth "github.com/chessmate-app/chessmate/internal/infrastructure/auth"
	"github.com/chessmate-app/chessmate/internal/infrastructure/json"
	"github.com/chessmate-app/chessmate/internal/presentation/utils"
)

type Handler struct {
	userRepository domain.UserRepository
	tokens         *infraauth.TokenIssuer
	referralBonus  int
	validate       *validator.Validate
	logger         *zap.SugaredLogger
}

func NewHandler(
	userRepository domain.UserRepository,
	tokens *infraauth.TokenIssuer,
	referralBonus int,
	logger *zap.SugaredLogger,
) *Handler {
	return &Handler{
		userRepository: userRepository,
		tokens:         tokens,
		referralBonus:  referralBonus,
		validate:       validator.New(validator.WithRequiredStructEnabled()),
		logger:         logger,
	}
}

// AddReferralPointsHandler credits the signup bonus to the inviter named in
// the request. The credit is keyed on the calling account and paid at most
// once, so clients may retry it freely.
func (h *Handler) AddReferralPointsHandler(w http.ResponseWriter, r *http.Request) {
	caller, err := utils.ResolveBearerUser(r, h.tokens, h.userRepository)
	if err != nil {
		json.WriteUnauthorizedError(w, "Missing or invalid authentication")
		return
	}

	var req addReferralPointsRequest
	if err := json.Read(r, &req); err != nil {
		json.WriteValidationError(w, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		json.WriteValidationError(w, err)
		return
	}

	if caller.ReferredBy == "" || caller.ReferredBy != req.ReferredBy {
		json.WriteBadRequestError(w, "referredBy does not match this account")
		return
	}

	referrer, err := h.userRepository.GetByID(r.Context(), caller.ReferredBy)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			json.WriteNotFoundError(w, "referrer not found")
			return
		}
		json.WriteInternalError(w, err)
		return
	}

	if caller.ReferralCredited {
		json.Write(w, http.StatusOK, addReferralPointsResponse{Credited: false, Points: referrer.Points})
		return
	}

	referrer.Points += h.referralBonus
	if err := h.userRepository.Update(r.Context(), referrer); err != nil {
		json.WriteInternalError(w, err)
		return
	}

	caller.ReferralCredited = true
	if err := h.userRepository.Update(r.Context(), caller); err != nil {
		json.WriteInternalError(w, err)
		return
	}

	h.logger.Infow("referral bonus credited", "referrer", referrer.ID, "referred", caller.ID, "bonus", h.referralBonus)
	json.Write(w, http.StatusOK, addReferralPointsResponse{Credited: true, Points: referrer.Points})
}

// ReferredCountHandler reports how many accounts signed up with the given
// user's referral code. Open endpoint; the count is not sensitive.
func (h *Handler) ReferredCountHandler(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	if userID == "" {
		json.WriteValidationError(w, errors.New("user ID is missing"))
		return
	}

	if _, err := h.userRepository.GetByID(r.Context(), userID); err != nil {
		json.WriteNotFoundError(w, "user not found")
		return
	}

	count, err := h.userRepository.CountReferredBy(r.Context(), userID)
	if err != nil {
		json.WriteInternalError(w, err)
		return
	}

	json.Write(w, http.StatusOK, referredCountResponse{Count: count})
}
