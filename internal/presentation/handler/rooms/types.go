package rooms

import "time"

type createRoomRequest struct {
	Name      string `json:"name" validate:"required,min=1,max=64"`
	CreatedBy string `json:"createdBy" validate:"required,uuid4"`
}

// profileResponse is the public slice of a user record. Password material and
// wallet bookkeeping never leave the server.
type profileResponse struct {
	ID           string `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	ReferralCode string `json:"referralCode"`
	ReferredBy   string `json:"referredBy,omitempty"`
	Points       int    `json:"points"`
	SkillScore   int    `json:"skillScore"`
}

type roomResponse struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	Code         string            `json:"code"`
	CreatedBy    profileResponse   `json:"createdBy"`
	Participants []profileResponse `json:"participants"`
	CreatedAt    time.Time         `json:"createdAt"`
}
