package session

import "errors"

// Sentinel errors returned by Session operations. Every failure wraps exactly
// one of these so callers can classify with errors.Is.
var (
	// ErrNotInitialized is returned when an operation runs before Init or
	// after Close.
	ErrNotInitialized = errors.New("session not initialized")
	// ErrInvalidArgument is returned for empty paths, non-positive dimensions,
	// out-of-range tiers and unknown profile names.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrUnsupported is returned when the requested capability is absent:
	// margins always, OCR when the converter build lacks it.
	ErrUnsupported = errors.New("capability unavailable")
	// ErrDelegate wraps failures reported by the converter.
	ErrDelegate = errors.New("converter failure")
)
