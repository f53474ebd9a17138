// Package errs defines the recoverable error kinds the reservation
// engine signals. Every one of them is surfaced to the caller as a
// message, never a crash, and none leaves a reservation partially
// updated.
package errs

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrNotFound: the referenced vehicle, user, or reservation does
	// not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidRange: a malformed date range reached the pricing
	// calculator past validation. Upstream bug, surfaced as a generic
	// booking failure.
	ErrInvalidRange = errors.New("invalid date range")

	// ErrInvalidTransition: a lifecycle transition was attempted from
	// a state that does not allow it, including lost optimistic races.
	ErrInvalidTransition = errors.New("this reservation can no longer be modified")

	// ErrPaymentDeclined: the payment collaborator declined a charge
	// during a paid cancellation. The reservation stays Confirmed.
	ErrPaymentDeclined = errors.New("payment declined")

	// ErrAvailabilityConflict: the vehicle became unavailable between
	// quote and booking submission.
	ErrAvailabilityConflict = errors.New("vehicle is not available for the requested dates")
)

// ValidationError carries field-level messages from form validation.
// Recoverable by user correction; never fatal.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return "validation failed"
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, e.Fields[k]))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// AsValidation unwraps err into a *ValidationError when it is one.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}
