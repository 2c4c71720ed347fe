package apisdk

import (
	"context"
	"net/http"
	"slices"

	"github.com/chessmate-app/chessmate/api-sdk/internal/requestconfig"
	"github.com/chessmate-app/chessmate/api-sdk/option"
)

type AuthService struct {
	Options []option.RequestOption
}

func NewAuthService(opts ...option.RequestOption) *AuthService {
	a := &AuthService{opts}
	return a
}

// Login exchanges credentials for a session token and the account profile.
func (a *AuthService) Login(ctx context.Context, body LoginParams, opts ...option.RequestOption) (*LoginResponse, error) {
	opts = slices.Concat(a.Options, opts)
	if body.Username == "" || body.Password == "" {
		return nil, ErrMissingCredentials
	}

	res := &LoginResponse{}
	err := requestconfig.ExecuteNewRequest(ctx, http.MethodPost, "api/auth/login", body, res, opts...)

	return res, err
}

// Signup registers a new account. The referral code is optional and omitted
// from the request when empty.
func (a *AuthService) Signup(ctx context.Context, body SignupParams, opts ...option.RequestOption) (*UserProfile, error) {
	opts = slices.Concat(a.Options, opts)

	res := &UserProfile{}
	err := requestconfig.ExecuteNewRequest(ctx, http.MethodPost, "api/auth/signup", body, res, opts...)

	return res, err
}

// Me resolves the profile behind the bearer token. Pass the token via
// option.WithBearerToken, either here or on the client.
func (a *AuthService) Me(ctx context.Context, opts ...option.RequestOption) (*UserProfile, error) {
	opts = slices.Concat(a.Options, opts)

	res := &UserProfile{}
	err := requestconfig.ExecuteNewRequest(ctx, http.MethodGet, "api/auth/me", nil, res, opts...)

	return res, err
}

// UserProfile is the account as the backend reports it. Immutable for the
// lifetime of a session.
type UserProfile struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	ReferralCode string `json:"referralCode"`
	ReferredBy   string `json:"referredBy,omitempty"`
	Points       int    `json:"points"`
	SkillScore   int    `json:"skillScore"`
}

type LoginParams struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string      `json:"token"`
	User  UserProfile `json:"user"`
}

type SignupParams struct {
	Username     string `json:"username"`
	Email        string `json:"email"`
	Password     string `json:"password"`
	ReferralCode string `json:"referralCode,omitempty"`
}
