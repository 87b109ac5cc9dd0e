package source

import (
	"errors"
	"fmt"
)

// ErrFetchFailure matches every *FetchError via errors.Is.
var ErrFetchFailure = errors.New("fetch failure")

// FailureKind classifies why a fetch failed.
type FailureKind int

const (
	// FailureNetwork covers transport errors, timeouts and cancellation.
	FailureNetwork FailureKind = iota
	// FailureStatus is a non-2xx HTTP response.
	FailureStatus
	// FailurePayload is a response body that is not a valid user list.
	FailurePayload
)

// String returns the kind name used in logs.
func (k FailureKind) String() string {
	switch k {
	case FailureNetwork:
		return "network"
	case FailureStatus:
		return "status"
	case FailurePayload:
		return "payload"
	default:
		return "unknown"
	}
}

// FetchError is the single error kind produced at the fetch boundary.
type FetchError struct {
	Kind       FailureKind
	URL        string
	StatusCode int
	Err        error
}

// Error implements error.
func (e *FetchError) Error() string {
	switch e.Kind {
	case FailureStatus:
		return fmt.Sprintf("fetching users from %s: HTTP %d", e.URL, e.StatusCode)
	case FailureNetwork, FailurePayload:
		return fmt.Sprintf("fetching users from %s (%s): %v", e.URL, e.Kind, e.Err)
	default:
		return fmt.Sprintf("fetching users from %s: %v", e.URL, e.Err)
	}
}

// Unwrap returns the underlying cause.
func (e *FetchError) Unwrap() error {
	return e.Err
}

// Is makes every FetchError match ErrFetchFailure.
func (e *FetchError) Is(target error) bool {
	return target == ErrFetchFailure
}

// IsFetchFailure reports whether err came from the fetch boundary.
func IsFetchFailure(err error) bool {
	return errors.Is(err, ErrFetchFailure)
}
