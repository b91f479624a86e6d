package clients

import "errors"

// Errors shared by StateStore implementations and the services above them.
var (
	// ErrAgentConflict is returned when registering an identity that is
	// already present. The existing entry is left untouched.
	ErrAgentConflict = errors.New("agent identity already registered")

	// ErrAgentNotFound is returned by lookups that find nothing.
	ErrAgentNotFound = errors.New("agent not found")
)
