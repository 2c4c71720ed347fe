package requestconfig

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"runtime"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/chessmate-app/chessmate/api-sdk/internal"
	"github.com/chessmate-app/chessmate/api-sdk/internal/apierror"
)

const responseBodyLimit = 1 << 20

// HTTPDoer describes an [*http.Client], but also supports custom HTTP
// implementations.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// MiddlewareNext invokes the remainder of the request chain.
type MiddlewareNext = func(*http.Request) (*http.Response, error)

// Middleware wraps one outgoing request. Middlewares run in registration order,
// outermost first.
type Middleware = func(*http.Request, MiddlewareNext) (*http.Response, error)

// RequestConfig represents all the state related to one request.
//
// Editing the variables inside RequestConfig directly is unstable api. Prefer
// composing a RequestOption instead if possible.
type RequestConfig struct {
	MaxRetries     int
	RequestTimeout time.Duration
	Context        context.Context
	Request        *http.Request
	BaseURL        *url.URL
	// DefaultBaseURL will be used if BaseURL is not explicitly overridden.
	DefaultBaseURL *url.URL
	CustomHTTPDoer HTTPDoer
	HTTPClient     *http.Client
	Middlewares    []Middleware
	BearerToken    string
	// If ResponseBodyInto is not nil, the response body is deserialized into
	// it. If it is a *[]byte the raw body is returned as is.
	ResponseBodyInto any
	// ResponseInto copies the *http.Response of the request into the given
	// address.
	ResponseInto **http.Response
	Body         io.Reader
}

// RequestOption mutates a RequestConfig before the request is issued.
type RequestOption interface {
	Apply(*RequestConfig) error
}

type RequestOptionFunc func(*RequestConfig) error

func (s RequestOptionFunc) Apply(r *RequestConfig) error {
	return s(r)
}

func defaultHeaders() map[string]string {
	return map[string]string{
		"User-Agent":          fmt.Sprintf("Chessmate/Client %s", internal.PackageVersion),
		"X-Client-OS":         runtime.GOOS,
		"X-Client-Arch":       runtime.GOARCH,
		"X-Client-Runtime":    "go",
		"X-Client-Runtime-Ver": runtime.Version(),
	}
}

// NewRequestConfig assembles the config for one call: defaults, then options,
// then the materialized *http.Request.
func NewRequestConfig(ctx context.Context, method, path string, params, responseBodyInto any, opts ...RequestOption) (*RequestConfig, error) {
	cfg := &RequestConfig{
		MaxRetries:       2,
		RequestTimeout:   30 * time.Second,
		Context:          ctx,
		HTTPClient:       http.DefaultClient,
		ResponseBodyInto: responseBodyInto,
	}

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt.Apply(cfg); err != nil {
			return nil, err
		}
	}

	if cfg.BaseURL == nil {
		cfg.BaseURL = cfg.DefaultBaseURL
	}
	if cfg.BaseURL == nil {
		return nil, fmt.Errorf("requestconfig: no base URL configured")
	}

	var body io.Reader
	if cfg.Body != nil {
		body = cfg.Body
	} else if params != nil {
		buf, err := json.Marshal(params)
		if err != nil {
			return nil, fmt.Errorf("requestconfig: marshal request body: %w", err)
		}
		body = bytes.NewReader(buf)
	}

	full := strings.TrimSuffix(cfg.BaseURL.String(), "/") + "/" + strings.TrimPrefix(path, "/")
	req, err := http.NewRequestWithContext(ctx, method, full, body)
	if err != nil {
		return nil, err
	}

	for k, v := range defaultHeaders() {
		req.Header.Set(k, v)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cfg.BearerToken != "" {
		req.Header.Set("Authorization", "Bearer "+cfg.BearerToken)
	}

	cfg.Request = req
	return cfg, nil
}

// ExecuteNewRequest performs one API call end to end.
func ExecuteNewRequest(ctx context.Context, method, path string, params, res any, opts ...RequestOption) error {
	cfg, err := NewRequestConfig(ctx, method, path, params, res, opts...)
	if err != nil {
		return err
	}
	return cfg.Execute()
}

func (cfg *RequestConfig) doer() HTTPDoer {
	if cfg.CustomHTTPDoer != nil {
		return cfg.CustomHTTPDoer
	}
	return cfg.HTTPClient
}

// Execute issues the request, retrying transient transport failures on
// idempotent methods, and decodes the response.
func (cfg *RequestConfig) Execute() error {
	handler := cfg.doer().Do
	for i := len(cfg.Middlewares) - 1; i >= 0; i-- {
		mw := cfg.Middlewares[i]
		next := handler
		handler = func(req *http.Request) (*http.Response, error) {
			return mw(req, next)
		}
	}

	ctx := cfg.Request.Context()
	if cfg.RequestTimeout > 0 {
		if _, ok := ctx.Deadline(); !ok {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, cfg.RequestTimeout)
			defer cancel()
		}
	}

	var bodyBuf []byte
	if cfg.Request.Body != nil {
		var err error
		bodyBuf, err = io.ReadAll(cfg.Request.Body)
		if err != nil {
			return fmt.Errorf("requestconfig: read request body: %w", err)
		}
	}

	tries := uint(1)
	if idempotent(cfg.Request.Method) && cfg.MaxRetries > 0 {
		tries = uint(cfg.MaxRetries + 1)
	}

	op := func() (*http.Response, error) {
		req := cfg.Request.Clone(ctx)
		if bodyBuf != nil {
			req.Body = io.NopCloser(bytes.NewReader(bodyBuf))
		}
		resp, err := handler(req)
		if err != nil {
			if ctx.Err() != nil {
				return nil, backoff.Permanent(ctx.Err())
			}
			return nil, err
		}
		return resp, nil
	}

	resp, err := backoff.Retry(ctx, op,
		backoff.WithBackOff(backoff.NewExponentialBackOff()),
		backoff.WithMaxTries(tries),
	)
	if err != nil {
		return apierror.NewTransport(err)
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if cfg.ResponseInto != nil {
		*cfg.ResponseInto = resp
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, responseBodyLimit))
	if err != nil {
		return apierror.NewTransport(err)
	}

	if resp.StatusCode >= 400 {
		return apierror.NewFromStatus(resp.StatusCode, serverMessage(raw), raw)
	}

	if cfg.ResponseBodyInto == nil {
		return nil
	}
	if into, ok := cfg.ResponseBodyInto.(*[]byte); ok {
		*into = raw
		return nil
	}
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, cfg.ResponseBodyInto); err != nil {
		return fmt.Errorf("requestconfig: decode response body: %w", err)
	}
	return nil
}

// serverMessage pulls the human-readable reason out of an error body. The
// backend answers {"error": ..., "message": ...}; older deployments used
// {"msg": ...}.
func serverMessage(raw []byte) string {
	var body struct {
		Message string `json:"message"`
		Msg     string `json:"msg"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return ""
	}
	if body.Message != "" {
		return body.Message
	}
	if body.Msg != "" {
		return body.Msg
	}
	return body.Error
}

func idempotent(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}
