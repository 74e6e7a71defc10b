package client

import (
	"errors"
	"fmt"
	"net/http"
)

// StatusError is returned when the ledger API answers with an error status.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("ledger api returned %d %s: %s", e.StatusCode, http.StatusText(e.StatusCode), e.Message)
}

// IsStatusError returns the StatusError wrapped by err, if any.
func IsStatusError(err error) (*StatusError, bool) {
	var target *StatusError
	ok := errors.As(err, &target)
	return target, ok
}

// IsCallRejectedError returns true if the ledger refused to apply a call
// because it violated a circuit assertion.
func IsCallRejectedError(err error) bool {
	statusErr, ok := IsStatusError(err)
	return ok && statusErr.StatusCode == http.StatusConflict
}

// IsNotFoundError returns true if the requested contract or transaction does
// not exist.
func IsNotFoundError(err error) bool {
	statusErr, ok := IsStatusError(err)
	return ok && statusErr.StatusCode == http.StatusNotFound
}

// isServerFailure reports whether err counts against the circuit breaker.
// Client errors are answers from a healthy ledger.
func isServerFailure(err error) bool {
	if err == nil {
		return false
	}
	statusErr, ok := IsStatusError(err)
	if !ok {
		return true
	}
	return statusErr.StatusCode >= http.StatusInternalServerError
}

// outcomeUnknown reports whether a failed submission may still have been
// applied by the ledger. Only client errors prove that it was not.
func outcomeUnknown(err error) bool {
	statusErr, ok := IsStatusError(err)
	if !ok {
		return true
	}
	return statusErr.StatusCode >= http.StatusInternalServerError
}
