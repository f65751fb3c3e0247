package errors

import (
	stderrors "errors"
	"fmt"
)

// Aliases so callers don't need to import both this package and the
// standard library one.
var (
	As     = stderrors.As
	Is     = stderrors.Is
	Join   = stderrors.Join
	New    = stderrors.New
	Unwrap = stderrors.Unwrap
)

var (
	ErrNotFound       = stderrors.New("resource not found")
	ErrUnauthorized   = stderrors.New("unauthorized")
	ErrBadRequest     = stderrors.New("bad request")
	ErrServerError    = stderrors.New("server error")
	ErrTimeout        = stderrors.New("operation timed out")
	ErrRateLimit      = stderrors.New("rate limit exceeded")
	ErrInvalidInput   = stderrors.New("invalid input")
	ErrNetworkIssue   = stderrors.New("network connection issue")
	ErrUnknownListing = stderrors.New("unknown listing")
)

func IsNotFound(err error) bool       { return Is(err, ErrNotFound) }
func IsServerError(err error) bool    { return Is(err, ErrServerError) }
func IsTimeout(err error) bool        { return Is(err, ErrTimeout) }
func IsRateLimited(err error) bool    { return Is(err, ErrRateLimit) }
func IsUnknownListing(err error) bool { return Is(err, ErrUnknownListing) }

// SourceError ties a failure to the source operation that produced it.
type SourceError struct {
	SourceID     string
	ResourceType string
	ResourceID   string
	Message      string
	Err          error
}

func (e *SourceError) Error() string {
	if e.ResourceID != "" {
		return fmt.Sprintf("[%s] %s %q: %s", e.SourceID, e.ResourceType, e.ResourceID, e.reason())
	}
	return fmt.Sprintf("[%s] %s: %s", e.SourceID, e.ResourceType, e.reason())
}

func (e *SourceError) reason() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

func (e *SourceError) Unwrap() error { return e.Err }
