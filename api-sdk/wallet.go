package apisdk

import (
	"context"
	"fmt"
	"net/http"
	"slices"

	"github.com/chessmate-app/chessmate/api-sdk/internal/requestconfig"
	"github.com/chessmate-app/chessmate/api-sdk/option"
)

type WalletService struct {
	Options []option.RequestOption
}

func NewWalletService(opts ...option.RequestOption) *WalletService {
	w := &WalletService{opts}
	return w
}

// AddReferralPoints credits the one-time referral bonus for an account that
// signed up with a referral code. The backend makes the credit idempotent, so
// calling it on every wallet view is safe.
func (w *WalletService) AddReferralPoints(ctx context.Context, body AddReferralPointsParams, opts ...option.RequestOption) error {
	opts = slices.Concat(w.Options, opts)

	err := requestconfig.ExecuteNewRequest(ctx, http.MethodPost, "api/wallet/add-referral-points", body, nil, opts...)

	return err
}

// ReferredCount reports how many accounts signed up with this user's referral
// code.
func (w *WalletService) ReferredCount(ctx context.Context, userID string, opts ...option.RequestOption) (int, error) {
	opts = slices.Concat(w.Options, opts)
	if userID == "" {
		return 0, ErrMissingIDParameter
	}

	path := fmt.Sprintf("api/wallet/referred-count/%s", userID)
	res := &ReferredCountResponse{}
	err := requestconfig.ExecuteNewRequest(ctx, http.MethodGet, path, nil, res, opts...)

	return res.Count, err
}

type AddReferralPointsParams struct {
	ReferredBy string `json:"referredBy"`
}

type ReferredCountResponse struct {
	Count int `json:"count"`
}
