package game

import "errors"

// Sentinel errors. Callers match with errors.Is; the wrapped message carries
// the offending id, tier or state.
var (
	ErrOutOfRange        = errors.New("tier index out of range")
	ErrDuplicateID       = errors.New("object id already registered")
	ErrNotFound          = errors.New("object id not registered")
	ErrInvalidTransition = errors.New("invalid session transition")
	ErrClosed            = errors.New("session closed")
	ErrInvalidConfig     = errors.New("invalid rule config")
)
