// Package history records reconcile runs in a BoltDB database.
package history

import (
	"time"
)

// Entry is one recorded reconcile run.
type Entry struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	State     string    `json:"state"`    // Desired state requested, if any
	Packages  []string  `json:"packages"` // Packages named in the request
	Refresh   bool      `json:"refresh"`  // Index refresh requested
	Upgrade   bool      `json:"upgrade"`  // Upgrade-all requested
	Simulate  bool      `json:"simulate"` // Dry run
	Changed   bool      `json:"changed"`
	Success   bool      `json:"success"`
	Message   string    `json:"message,omitempty"`
	Error     string    `json:"error,omitempty"`
}

// NewEntry creates a history entry for a run that is about to execute.
func NewEntry(state string, packages []string, refresh, upgrade, simulate bool) *Entry {
	return &Entry{
		ID:        generateID(),
		Timestamp: time.Now(),
		State:     state,
		Packages:  packages,
		Refresh:   refresh,
		Upgrade:   upgrade,
		Simulate:  simulate,
	}
}

// MarkOutcome marks the entry as completed with the run's result.
func (e *Entry) MarkOutcome(changed bool, message string) {
	e.Success = true
	e.Changed = changed
	e.Message = message
}

// MarkFailed marks the entry as failed with an error message.
func (e *Entry) MarkFailed(err error) {
	e.Success = false
	if err != nil {
		e.Error = err.Error()
	}
}

// generateID generates a unique ID for the entry.
func generateID() string {
	return time.Now().Format("20060102150405.000000")
}
