package race

import "errors"

var (
	// ErrRoomNotFound is surfaced to the caller only for join attempts
	// on an unknown code; action events swallow it as a no-op.
	ErrRoomNotFound = errors.New("room not found")

	// ErrNotAuthorized marks a non-host attempting a host-only action.
	ErrNotAuthorized = errors.New("not authorized")

	// ErrProviderUnavailable wraps page-content provider failures during
	// round start. The round start aborts, the room stays usable.
	ErrProviderUnavailable = errors.New("page provider unavailable")

	// ErrInvalidInput marks empty identities or malformed payloads.
	ErrInvalidInput = errors.New("invalid input")
)
