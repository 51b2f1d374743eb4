package discussion

import (
	"errors"
	"fmt"
)

// Failure taxonomy for lifecycle operations. Handlers map these onto HTTP
// statuses; nothing here is fatal to the application.
var (
	// ErrValidation: content empty after trimming whitespace.
	ErrValidation = errors.New("content must not be empty")
	// ErrAuthRequired: no authenticated actor. Callers surface a login
	// prompt rather than a hard failure.
	ErrAuthRequired = errors.New("login required")
	// ErrUnauthorized: actor does not own the target post (or, for accept,
	// is not allowed to accept it).
	ErrUnauthorized = errors.New("not allowed")
	// ErrInvalidState: the action does not apply to the post's current
	// state, e.g. editing a deleted post or accepting a non-answer.
	ErrInvalidState = errors.New("action not valid for this post")
	ErrNotFound     = errors.New("post not found")
)

// StoreError wraps a persistence failure. The in-memory state is never
// mutated before the store confirms success, so callers can always retry.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

func storeErr(op string, err error) error {
	return &StoreError{Op: op, Err: err}
}
