package generate

import (
	"errors"
	"fmt"
)

var (
	// ErrUnavailable indicates the plan service is unreachable.
	ErrUnavailable = errors.New("plan service unavailable")

	// ErrTimeout indicates the generation request exceeded the configured
	// timeout.
	ErrTimeout = errors.New("generation request timed out")

	// ErrRetryExhausted indicates all retry attempts have been exhausted.
	ErrRetryExhausted = errors.New("generation retry attempts exhausted")

	// ErrInFlight indicates a generation request was rejected because one
	// is already running. At most one request is in flight at a time.
	ErrInFlight = errors.New("a generation request is already in flight")
)

// UpstreamError carries the raw status and body of a non-success response
// from the plan service, surfaced verbatim to the caller.
type UpstreamError struct {
	Status int
	Body   string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("plan service returned status %d: %s", e.Status, e.Body)
}
