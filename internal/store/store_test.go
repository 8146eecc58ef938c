package store

import (
	"errors"
	"path/filepath"
	"testing"
)

// newTestStore opens a store backed by a temp-dir database file.
func newTestStore(t *testing.T) *Store {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "journal.db")
	s, err := New(dbPath)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })

	return s
}

func TestNewStore_CreatesDatabase(t *testing.T) {
	s := newTestStore(t)

	if s.DB() == nil {
		t.Fatal("DB() returned nil")
	}

	// The sessions table exists after migrations.
	var name string
	err := s.DB().QueryRow(
		`SELECT name FROM sqlite_master WHERE type='table' AND name='capture_sessions'`,
	).Scan(&name)
	if err != nil {
		t.Fatalf("capture_sessions table missing: %v", err)
	}
}

func TestStore_MigrationsIdempotent(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "journal.db")

	first, err := New(dbPath)
	if err != nil {
		t.Fatalf("first New() failed: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}

	// Reopening the same file re-runs migrations without error.
	second, err := New(dbPath)
	if err != nil {
		t.Fatalf("second New() failed: %v", err)
	}
	second.Close()
}

func TestSessionRepository_BeginFinishGet(t *testing.T) {
	s := newTestStore(t)
	sessions := s.Sessions()

	if err := sessions.Begin("sess-1", "0"); err != nil {
		t.Fatalf("Begin() failed: %v", err)
	}

	got, err := sessions.GetByID("sess-1")
	if err != nil {
		t.Fatalf("GetByID() failed: %v", err)
	}
	if got.Source != "0" {
		t.Errorf("Source = %q, want %q", got.Source, "0")
	}
	if got.FramesRead != 0 {
		t.Errorf("FramesRead = %d, want 0", got.FramesRead)
	}
	if got.EndedAt != nil {
		t.Error("EndedAt should be nil before Finish")
	}

	if err := sessions.Finish("sess-1", 240); err != nil {
		t.Fatalf("Finish() failed: %v", err)
	}

	got, err = sessions.GetByID("sess-1")
	if err != nil {
		t.Fatalf("GetByID() after Finish failed: %v", err)
	}
	if got.FramesRead != 240 {
		t.Errorf("FramesRead = %d, want 240", got.FramesRead)
	}
	if got.EndedAt == nil {
		t.Error("EndedAt should be set after Finish")
	}
}

func TestSessionRepository_FinishUnknownSession(t *testing.T) {
	s := newTestStore(t)

	err := s.Sessions().Finish("missing", 1)
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("Finish() on unknown id: error = %v, want ErrNotFound", err)
	}
}

func TestSessionRepository_GetUnknownSession(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Sessions().GetByID("missing")
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("GetByID() on unknown id: error = %v, want ErrNotFound", err)
	}
}

func TestSessionRepository_List(t *testing.T) {
	s := newTestStore(t)
	sessions := s.Sessions()

	for _, id := range []string{"a", "b", "c"} {
		if err := sessions.Begin(id, "clips/session.mp4"); err != nil {
			t.Fatalf("Begin(%q) failed: %v", id, err)
		}
	}

	all, err := sessions.List()
	if err != nil {
		t.Fatalf("List() failed: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("List() returned %d sessions, want 3", len(all))
	}
}
