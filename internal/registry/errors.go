package registry

import "errors"

var (
	// ErrInvalidID is returned for the zero RawID.
	ErrInvalidID = errors.New("registry: invalid id")

	// ErrNotFound is returned when an id's index lies beyond every slot the
	// storage has ever grown to hold.
	ErrNotFound = errors.New("registry: not found")

	// ErrEpochMismatch is returned when an id's index is in range but the
	// slot no longer holds that id — it has been removed, or recycled for a
	// newer resource under a higher epoch.
	ErrEpochMismatch = errors.New("registry: epoch mismatch, resource was recycled")
)
