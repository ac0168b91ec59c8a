// Package reconcile implements the package-state reconciliation core:
// given a desired state for a set of named packages, it computes the
// minimal set of backend operations needed to reach that state and
// reports whether anything changed.
package reconcile

import "fmt"

// State is the desired condition for the requested packages.
type State string

const (
	// StatePresent ensures the packages are installed.
	StatePresent State = "present"
	// StateAbsent ensures the packages are removed.
	StateAbsent State = "absent"
	// StateLatest ensures the packages are installed and up to date.
	StateLatest State = "latest"
)

// ParseState normalizes a state string, accepting the historical
// aliases "installed" and "removed".
func ParseState(s string) (State, error) {
	switch s {
	case "present", "installed", "":
		return StatePresent, nil
	case "absent", "removed":
		return StateAbsent, nil
	case "latest":
		return StateLatest, nil
	}
	return "", fmt.Errorf("invalid state %q (want present, absent or latest)", s)
}

// Status is the observed condition of a single package, recomputed on
// every run and discarded afterwards.
type Status int

const (
	// StatusNotInstalled means the backend does not report the package
	// as installed.
	StatusNotInstalled Status = iota
	// StatusCurrent means the package is installed; when the desired
	// state is present, no update query is made and installed packages
	// are always reported as current.
	StatusCurrent
	// StatusStale means the package is installed and the backend
	// reports a newer candidate version. Only possible under latest.
	StatusStale
)

// String returns the status name for diagnostics.
func (s Status) String() string {
	switch s {
	case StatusNotInstalled:
		return "not-installed"
	case StatusCurrent:
		return "current"
	case StatusStale:
		return "stale"
	}
	return "unknown"
}
