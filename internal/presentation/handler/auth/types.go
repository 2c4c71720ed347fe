package auth

import "github.com/chessmate-app/chessmate/internal/domain"

// signupRequest carries the fields the signup screen collects. ReferralCode is
// the inviter's code and may be empty.
type signupRequest struct {
	Username     string `json:"username" validate:"required,min=3,max=32"`
	Email        string `json:"email" validate:"required,email"`
	Password     string `json:"password" validate:"required,min=8,max=72"`
	ReferralCode string `json:"referralCode" validate:"omitempty,len=8,alphanum"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// sessionResponse is returned by login; signup returns the bare profile and
// the client logs in afterwards.
type sessionResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}
