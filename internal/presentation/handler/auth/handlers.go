package auth

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"

	"github.com/chessmate-app/chessmate/internal/domain"
	infraauth "github.com/chessmate-app/chessmate/internal/infrastructure/auth"
	"github.com/chessmate-app/chessmate/internal/infrastructure/json"
	"github.com/chessmate-app/chessmate/internal/presentation/utils"
)

type Handler struct {
	userRepository domain.UserRepository
	tokens         *infraauth.TokenIssuer
	validate       *validator.Validate
}

func NewHandler(userRepository domain.UserRepository, tokens *infraauth.TokenIssuer) *Handler {
	return &Handler{
		userRepository: userRepository,
		tokens:         tokens,
		validate:       validator.New(validator.WithRequiredStructEnabled()),
	}
}

// SignupHandler registers a new account. When a referral code is supplied the
// new user is linked to the inviter so the wallet bonus can be claimed later.
func (h *Handler) SignupHandler(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.Read(r, &req); err != nil {
		json.WriteValidationError(w, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		json.WriteValidationError(w, err)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		json.WriteInternalError(w, err)
		return
	}

	user, err := domain.NewUser(req.Username, req.Email, hash)
	if err != nil {
		json.WriteValidationError(w, err)
		return
	}

	if req.ReferralCode != "" {
		referrer, err := h.userRepository.GetByReferralCode(r.Context(), req.ReferralCode)
		if err != nil {
			json.WriteBadRequestError(w, domain.ErrInvalidReferral.Error())
			return
		}
		user.ReferredBy = referrer.ID
	}

	if err := h.userRepository.Create(r.Context(), user); err != nil {
		switch {
		case errors.Is(err, domain.ErrUsernameTaken), errors.Is(err, domain.ErrEmailTaken):
			json.WriteError(w, http.StatusConflict, err, err.Error())
		default:
			json.WriteInternalError(w, err)
		}
		return
	}

	json.Write(w, http.StatusCreated, user)
}

// LoginHandler exchanges username and password for a bearer token.
func (h *Handler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.Read(r, &req); err != nil {
		json.WriteValidationError(w, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		json.WriteValidationError(w, err)
		return
	}

	user, err := h.userRepository.GetByUsername(r.Context(), req.Username)
	if err != nil {
		// Same response as a bad password so usernames cannot be probed.
		json.WriteUnauthorizedError(w, domain.ErrInvalidCredentials.Error())
		return
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(req.Password)); err != nil {
		json.WriteUnauthorizedError(w, domain.ErrInvalidCredentials.Error())
		return
	}

	token, err := h.tokens.Issue(user.ID)
	if err != nil {
		json.WriteInternalError(w, err)
		return
	}

	json.Write(w, http.StatusOK, sessionResponse{Token: token, User: user})
}

// MeHandler resolves the bearer token to the current profile.
func (h *Handler) MeHandler(w http.ResponseWriter, r *http.Request) {
	user, ok := h.Authenticate(w, r)
	if !ok {
		return
	}
	json.Write(w, http.StatusOK, user)
}

// Authenticate resolves the bearer token to an account. On failure it has
// already written the 401 response and returns ok=false.
func (h *Handler) Authenticate(w http.ResponseWriter, r *http.Request) (*domain.User, bool) {
	user, err := utils.ResolveBearerUser(r, h.tokens, h.userRepository)
	if err != nil {
		json.WriteUnauthorizedError(w, "Missing or invalid authentication")
		return nil, false
	}
	return user, true
}
