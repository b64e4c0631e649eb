package engine

import "errors"

var (
	// ErrInvalidLever is returned for an unknown policy action.
	ErrInvalidLever = errors.New("invalid lever")
	// ErrInvalidMagnitude is returned for NaN, infinite, or out-of-domain magnitudes.
	ErrInvalidMagnitude = errors.New("invalid magnitude")
	// ErrOutOfBounds is returned in strict mode when a transition leaves a bounded field out of range.
	ErrOutOfBounds = errors.New("field out of bounds")
	// ErrInvalidSnapshot is returned when a snapshot cannot be restored.
	ErrInvalidSnapshot = errors.New("invalid snapshot")
)
