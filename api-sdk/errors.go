package apisdk

import (
	"errors"

	"github.com/chessmate-app/chessmate/api-sdk/internal/apierror"
)

var (
	ErrMissingIDParameter   = errors.New("missing required id parameter")
	ErrMissingCodeParameter = errors.New("missing required room code parameter")
	ErrMissingCredentials   = errors.New("missing required username or password")
)

// Error is the typed failure returned by every call that reached (or failed to
// reach) the backend. Use [errors.As] or the Is* helpers to branch on it.
type Error = apierror.Error

type ErrorKind = apierror.Kind

const (
	KindNetworkUnreachable = apierror.NetworkUnreachable
	KindUnauthorized       = apierror.Unauthorized
	KindForbidden          = apierror.Forbidden
	KindNotFound           = apierror.NotFound
	KindValidationFailed   = apierror.ValidationFailed
	KindInternal           = apierror.Internal
)

func errIsKind(err error, kind ErrorKind) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Kind == kind
}

func IsNotFound(err error) bool        { return errIsKind(err, KindNotFound) }
func IsUnauthorized(err error) bool    { return errIsKind(err, KindUnauthorized) }
func IsForbidden(err error) bool       { return errIsKind(err, KindForbidden) }
func IsValidationError(err error) bool { return errIsKind(err, KindValidationFailed) }
func IsNetworkError(err error) bool    { return errIsKind(err, KindNetworkUnreachable) }
