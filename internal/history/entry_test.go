package history

import (
	"errors"
	"testing"
)

var errTest = errors.New("failed to install foo: exit status 1")

func TestNewEntry(t *testing.T) {
	entry := NewEntry("latest", []string{"vim"}, true, false, true)

	if entry.ID == "" {
		t.Error("NewEntry() should assign an ID")
	}
	if entry.Timestamp.IsZero() {
		t.Error("NewEntry() should set a timestamp")
	}
	if entry.State != "latest" {
		t.Errorf("expected state latest, got %s", entry.State)
	}
	if !entry.Refresh || entry.Upgrade || !entry.Simulate {
		t.Error("NewEntry() should carry the request flags")
	}
	if entry.Success || entry.Changed {
		t.Error("a new entry starts neither successful nor changed")
	}
}

func TestMarkOutcome(t *testing.T) {
	entry := NewEntry("present", []string{"vim"}, false, false, false)
	entry.MarkOutcome(true, "installed vim package(s)")

	if !entry.Success {
		t.Error("MarkOutcome() should mark success")
	}
	if !entry.Changed {
		t.Error("MarkOutcome(true, ...) should mark changed")
	}
	if entry.Message != "installed vim package(s)" {
		t.Errorf("unexpected message: %s", entry.Message)
	}
}

func TestMarkFailed(t *testing.T) {
	entry := NewEntry("present", []string{"foo"}, false, false, false)
	entry.MarkFailed(errTest)

	if entry.Success {
		t.Error("MarkFailed() should not mark success")
	}
	if entry.Error != errTest.Error() {
		t.Errorf("unexpected error message: %s", entry.Error)
	}
}
