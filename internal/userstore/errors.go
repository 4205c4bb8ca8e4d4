package userstore

import "errors"

// Sentinel errors returned by Store operations. Callers distinguish the three
// kinds with errors.Is; the wrapped message carries the detail.
var (
	// ErrInvalidRecord indicates the input record failed the name/email shape
	// check. No I/O was attempted and no state changed.
	ErrInvalidRecord = errors.New("invalid record")

	// ErrCorrupt indicates the persisted document exists but could not be
	// parsed into the expected shape. The store performs no auto-repair.
	ErrCorrupt = errors.New("users document corrupt")

	// ErrStorage indicates the underlying read or write failed (permissions,
	// disk, missing directory). Not retried internally.
	ErrStorage = errors.New("storage unavailable")
)
