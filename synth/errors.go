package synth

import "errors"

var (
	// ErrContextClosed is returned by node factories after the context has
	// been closed.
	ErrContextClosed = errors.New("audio context closed")

	// ErrInvalidNode is returned when a connection target does not belong
	// to the same backend.
	ErrInvalidNode = errors.New("invalid audio node")

	// ErrInvalidDelay is returned for a maximum delay the backend cannot
	// allocate.
	ErrInvalidDelay = errors.New("invalid maximum delay")
)
