package reconcile

import (
	"errors"
	"fmt"
	"strings"
)

// ErrAborted is returned when the confirm hook declines the plan.
var ErrAborted = errors.New("operation aborted by user")

// QueryError is a failed read-only backend query. Queries never mutate
// state, so a QueryError always means the system was left untouched.
type QueryError struct {
	Pkg string
	Err error
}

// Error implements the error interface.
func (e *QueryError) Error() string {
	return fmt.Sprintf("failed to query package %s: %v", e.Pkg, e.Err)
}

// Unwrap returns the underlying cause.
func (e *QueryError) Unwrap() error {
	return e.Err
}

// MutationError is a failed mutating backend operation. It names the
// operation and the batch that was submitted; no partial success is
// inferred and nothing is rolled back.
type MutationError struct {
	Op    Op
	Names []string
	Err   error
}

// Error implements the error interface.
func (e *MutationError) Error() string {
	if len(e.Names) == 0 {
		return fmt.Sprintf("failed to %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("failed to %s %s: %v", e.Op, strings.Join(e.Names, " "), e.Err)
}

// Unwrap returns the underlying cause.
func (e *MutationError) Unwrap() error {
	return e.Err
}
