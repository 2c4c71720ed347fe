// Package option holds the functional options accepted by every SDK call.
package option

import (
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/chessmate-app/chessmate/api-sdk/internal/requestconfig"
)

// RequestOption mutates the per-request configuration. Options passed to the
// client apply to every call; options passed to a call apply to that call only
// and win on conflict.
type RequestOption = requestconfig.RequestOption

// MiddlewareNext invokes the remainder of the request chain.
type MiddlewareNext = requestconfig.MiddlewareNext

// Middleware wraps one outgoing request.
type Middleware = requestconfig.Middleware

// WithBaseURL overrides the backend host the client talks to.
func WithBaseURL(base string) RequestOption {
	u, err := url.Parse(base)
	return requestconfig.RequestOptionFunc(func(r *requestconfig.RequestConfig) error {
		if err != nil {
			return fmt.Errorf("option: invalid base URL %q: %w", base, err)
		}
		r.BaseURL = u
		return nil
	})
}

// WithEnvironmentProduction points the client at the deployed backend. This is
// the default environment.
func WithEnvironmentProduction() RequestOption {
	return withDefaultBaseURL("https://chess-backend-y4p3.onrender.com")
}

// WithEnvironmentDev points the client at a locally-run backend.
func WithEnvironmentDev() RequestOption {
	return withDefaultBaseURL("http://localhost:8080")
}

func withDefaultBaseURL(base string) RequestOption {
	u, err := url.Parse(base)
	return requestconfig.RequestOptionFunc(func(r *requestconfig.RequestConfig) error {
		if err != nil {
			return err
		}
		r.DefaultBaseURL = u
		return nil
	})
}

// WithBearerToken attaches the credential token to every request.
func WithBearerToken(token string) RequestOption {
	return requestconfig.RequestOptionFunc(func(r *requestconfig.RequestConfig) error {
		r.BearerToken = token
		return nil
	})
}

// WithHTTPClient swaps the underlying *http.Client.
func WithHTTPClient(client *http.Client) RequestOption {
	return requestconfig.RequestOptionFunc(func(r *requestconfig.RequestConfig) error {
		if client == nil {
			return fmt.Errorf("option: http client is nil")
		}
		r.HTTPClient = client
		return nil
	})
}

// WithHTTPDoer swaps the transport for a custom implementation, e.g. an
// instrumented round tripper.
func WithHTTPDoer(doer requestconfig.HTTPDoer) RequestOption {
	return requestconfig.RequestOptionFunc(func(r *requestconfig.RequestConfig) error {
		if doer == nil {
			return fmt.Errorf("option: http doer is nil")
		}
		r.CustomHTTPDoer = doer
		return nil
	})
}

// WithMaxRetries bounds transport-level retries for idempotent requests.
// Zero disables retrying.
func WithMaxRetries(n int) RequestOption {
	return requestconfig.RequestOptionFunc(func(r *requestconfig.RequestConfig) error {
		if n < 0 {
			return fmt.Errorf("option: max retries must not be negative")
		}
		r.MaxRetries = n
		return nil
	})
}

// WithRequestTimeout bounds one call end to end, retries included.
func WithRequestTimeout(d time.Duration) RequestOption {
	return requestconfig.RequestOptionFunc(func(r *requestconfig.RequestConfig) error {
		r.RequestTimeout = d
		return nil
	})
}

// WithResponseInto copies the raw *http.Response into the given address.
func WithResponseInto(dst **http.Response) RequestOption {
	return requestconfig.RequestOptionFunc(func(r *requestconfig.RequestConfig) error {
		r.ResponseInto = dst
		return nil
	})
}

// WithMiddleware appends a middleware to the request chain.
func WithMiddleware(mw Middleware) RequestOption {
	return requestconfig.RequestOptionFunc(func(r *requestconfig.RequestConfig) error {
		r.Middlewares = append(r.Middlewares, mw)
		return nil
	})
}
