package model

import "errors"

// Sentinel errors surfaced by the resolver core. Callers match them with
// errors.Is; wrapped messages carry the operation context.
var (
	// ErrInvalidInput marks a mention rejected at the ingestion boundary.
	// The store is unchanged when this is returned.
	ErrInvalidInput = errors.New("invalid input")

	// ErrCorruptedSnapshot marks a snapshot document with missing or
	// malformed required fields. A restore that fails with this error
	// leaves the prior store contents intact.
	ErrCorruptedSnapshot = errors.New("corrupted snapshot")

	// ErrPersistenceFailure marks an I/O error while saving or loading a
	// snapshot. The in-memory store is never mutated by a failed save.
	ErrPersistenceFailure = errors.New("persistence failure")
)
