package cli

import "errors"

var (
	// ErrNoAction is returned when a run has nothing to reconcile.
	ErrNoAction = errors.New("nothing to do: name packages or pass --update-cache or --upgrade")
)
