package repository

import "errors"

var (
	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("entity not found")

	// ErrRevisionMismatch is returned by conditional updates when the
	// record changed since it was read.
	ErrRevisionMismatch = errors.New("revision mismatch")
)
