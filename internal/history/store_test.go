package history

import (
	"testing"
	"time"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()

	t.Setenv("XDG_DATA_HOME", t.TempDir())

	store, err := Open()
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return store
}

func TestOpen(t *testing.T) {
	store := setupTestStore(t)

	if store == nil {
		t.Fatal("Open() returned nil")
	}
}

func TestRecord(t *testing.T) {
	store := setupTestStore(t)

	entry := NewEntry("present", []string{"vim", "git"}, false, false, false)
	entry.MarkOutcome(true, "installed vim git package(s)")

	if err := store.Record(entry); err != nil {
		t.Fatalf("Record() error: %v", err)
	}

	count, err := store.Count()
	if err != nil {
		t.Fatalf("Count() error: %v", err)
	}
	if count != 1 {
		t.Errorf("expected count 1, got %d", count)
	}
}

func TestList(t *testing.T) {
	store := setupTestStore(t)

	for i := 0; i < 5; i++ {
		entry := NewEntry("present", []string{"pkg" + string(rune('a'+i))}, false, false, false)
		entry.MarkOutcome(false, "package(s) already installed")
		if err := store.Record(entry); err != nil {
			t.Fatalf("Record() error: %v", err)
		}
		time.Sleep(1 * time.Millisecond) // Ensure different timestamps
	}

	entries, err := store.List(0)
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(entries) != 5 {
		t.Errorf("expected 5 entries, got %d", len(entries))
	}

	limited, err := store.List(3)
	if err != nil {
		t.Fatalf("List(3) error: %v", err)
	}
	if len(limited) != 3 {
		t.Errorf("expected 3 entries with limit, got %d", len(limited))
	}

	// Entries should be newest first
	if len(entries) >= 2 && entries[0].Timestamp.Before(entries[1].Timestamp) {
		t.Error("List() should return entries in reverse chronological order")
	}
}

func TestLast(t *testing.T) {
	store := setupTestStore(t)

	last, err := store.Last()
	if err != nil {
		t.Fatalf("Last() error: %v", err)
	}
	if last != nil {
		t.Error("Last() on empty store should return nil")
	}

	first := NewEntry("absent", []string{"foo"}, false, false, false)
	first.MarkOutcome(true, "removed foo package(s)")
	store.Record(first)
	time.Sleep(1 * time.Millisecond)

	second := NewEntry("", nil, true, false, false)
	second.MarkOutcome(true, "updated repository indexes")
	store.Record(second)

	last, err = store.Last()
	if err != nil {
		t.Fatalf("Last() error: %v", err)
	}
	if last == nil {
		t.Fatal("Last() returned nil after records")
	}
	if !last.Refresh {
		t.Error("Last() should return the most recent entry")
	}
}

func TestRecordFailure(t *testing.T) {
	store := setupTestStore(t)

	entry := NewEntry("present", []string{"foo"}, false, false, false)
	entry.MarkFailed(errTest)

	if err := store.Record(entry); err != nil {
		t.Fatalf("Record() error: %v", err)
	}

	entries, err := store.List(1)
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].Success {
		t.Error("failed entry should not be marked successful")
	}
	if entries[0].Error == "" {
		t.Error("failed entry should carry the error message")
	}
}
