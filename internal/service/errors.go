package service

import (
	"errors"
	"fmt"
)

var (
	// ErrTokenInvalid means the identity probe rejected the token and no
	// usable replacement exists.
	ErrTokenInvalid = errors.New("access token is invalid")

	// ErrTokenRefreshFailed means the exchange call itself failed; the
	// caller has no usable token and must abort the current operation.
	ErrTokenRefreshFailed = errors.New("token refresh failed")

	// ErrNotFound covers accounts, posts and comments the caller does
	// not own or that do not exist.
	ErrNotFound = errors.New("not found")

	// ErrMissingID marks an external payload without the one field the
	// mappers require.
	ErrMissingID = errors.New("payload is missing id")
)

// GraphError wraps a non-2xx response or transport failure from the
// platform. Failures are terminal for the current request; there is no
// retry layer behind this type.
type GraphError struct {
	StatusCode int
	Code       int
	Message    string
}

func (e *GraphError) Error() string {
	if e.StatusCode == 0 {
		return fmt.Sprintf("graph api: %s", e.Message)
	}
	return fmt.Sprintf("graph api: %s (status %d, code %d)", e.Message, e.StatusCode, e.Code)
}
