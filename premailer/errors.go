package premailer

import (
	"errors"
	"fmt"
)

var (
	// ErrConfig is returned when configuration or per-message overrides
	// cannot be decoded or hold invalid values.
	ErrConfig = errors.New("invalid premailer configuration")

	// ErrInlining is returned when the HTML body cannot be read or the CSS
	// engine fails.
	ErrInlining = errors.New("unable to inline CSS")

	// ErrTextGeneration is returned when the text engine fails and failures
	// are not tolerated.
	ErrTextGeneration = errors.New("unable to generate text part")

	// ErrManyParts is returned when a message has more than one HTML body or
	// more than one text body.
	ErrManyParts = errors.New("more than one candidate body part")

	// ErrPartVanished is returned when the HTML part is no longer a child of
	// the multipart it was found in.
	ErrPartVanished = errors.New("html part is no longer in its parent")
)

// Error is returned when a stage of the transformation fails. It matches both
// its Kind and its Cause with errors.Is and errors.As.
type Error struct {
	// Kind is one of the Err* values of this package.
	Kind error

	// Cause is the underlying failure.
	Cause error
}

// Error returns the kind followed by the cause.
func (e *Error) Error() string {
	return fmt.Sprintf("%v: %v", e.Kind, e.Cause)
}

// Unwrap returns the kind and the cause.
func (e *Error) Unwrap() []error {
	return []error{e.Kind, e.Cause}
}
