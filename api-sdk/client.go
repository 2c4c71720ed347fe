// Package apisdk is the Go client for the Chessmate backend: account auth,
// the room directory, the wallet, and the live room channel.
package apisdk

import (
	"context"
	"net/http"
	"os"
	"slices"

	"github.com/chessmate-app/chessmate/api-sdk/internal/requestconfig"
	"github.com/chessmate-app/chessmate/api-sdk/option"
)

type Client struct {
	Options []option.RequestOption
	Auth    *AuthService
	Rooms   *RoomService
	Wallet  *WalletService
}

func DefaultClientOptions() []option.RequestOption {
	defaults := []option.RequestOption{
		option.WithEnvironmentProduction(),
	}
	if o, ok := os.LookupEnv("CHESSMATE_BASE_URL"); ok {
		defaults = append(defaults, option.WithBaseURL(o))
	}
	return defaults
}

func NewClient(opts ...option.RequestOption) *Client {
	opts = append(DefaultClientOptions(), opts...)

	c := &Client{
		Options: opts,
		Auth:    NewAuthService(opts...),
		Rooms:   NewRoomService(opts...),
		Wallet:  NewWalletService(opts...),
	}

	return c
}

func (c *Client) Execute(ctx context.Context, method, path string, params, res any, opts ...option.RequestOption) error {
	opts = slices.Concat(c.Options, opts)
	return requestconfig.ExecuteNewRequest(ctx, method, path, params, res, opts...)
}

func (c *Client) Get(ctx context.Context, path string, params, res any, opts ...option.RequestOption) error {
	return c.Execute(ctx, http.MethodGet, path, params, res, opts...)
}

func (c *Client) Post(ctx context.Context, path string, params, res any, opts ...option.RequestOption) error {
	return c.Execute(ctx, http.MethodPost, path, params, res, opts...)
}

func (c *Client) Delete(ctx context.Context, path string, params, res any, opts ...option.RequestOption) error {
	return c.Execute(ctx, http.MethodDelete, path, params, res, opts...)
}
