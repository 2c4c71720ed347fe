package wallet

type addReferralPointsRequest struct {
	ReferredBy string `json:"referredBy" validate:"required,uuid4"`
}

type addReferralPointsResponse struct {
	Credited bool `json:"credited"`
	Points   int  `json:"points"`
}

type referredCountResponse struct {
	Count int `json:"count"`
}
