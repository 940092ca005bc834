package analyzer

import "github.com/cockroachdb/errors"

var (
	// ErrUnknownAttribute is returned for a name no record kind declares.
	ErrUnknownAttribute = errors.New("unknown attribute")
	// ErrLengthMismatch is returned when the attributes bound by one
	// expression have different entry counts.
	ErrLengthMismatch = errors.New("attribute length mismatch")
	// ErrMismatchedPair is returned when a header and an event disagree on
	// event_number.
	ErrMismatchedPair = errors.New("header and event do not match")
	// ErrEventNotFound is returned when no entry carries the requested
	// event number.
	ErrEventNotFound = errors.New("event not found")
)
