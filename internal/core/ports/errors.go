package ports

import "errors"

var (
	// ErrVersionConflict is returned when a write is attempted against a stale
	// order version. The caller must re-read the order and retry.
	ErrVersionConflict = errors.New("version conflict")

	// ErrTransientStorage is returned for storage failures that are safe to
	// retry. The caller must re-read the order version before retrying a
	// transition, since the outcome of the failed attempt is unknown.
	ErrTransientStorage = errors.New("transient storage failure")
)
