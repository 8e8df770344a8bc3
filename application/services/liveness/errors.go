package liveness

import "errors"

var (
	// ErrInvalidInput is returned when a batch arrives with no frames.
	ErrInvalidInput = errors.New("no frames supplied")

	// ErrNoReferenceEmbeddings is returned when the user has no enrolled
	// faces to compare against.
	ErrNoReferenceEmbeddings = errors.New("no reference faces enrolled for user")

	// ErrNoValidFace is returned when no frame in the batch produced a
	// usable detection.
	ErrNoValidFace = errors.New("no valid face detected in any frame")

	// ErrDataUnavailable wraps reference-store read failures.
	ErrDataUnavailable = errors.New("reference data unavailable")
)
