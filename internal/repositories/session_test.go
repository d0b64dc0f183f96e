package repositories

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/desertthunder/dzdedup/internal/models"
	"github.com/desertthunder/dzdedup/internal/shared"
)

// setupTestDB creates an in-memory SQLite database with migrations applied
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	// every pooled connection to :memory: would otherwise see its own empty database
	shared.ConfigureDatabase(db, 1, 1)

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		t.Fatalf("failed to run migrations: %v", err)
	}

	return db
}

func TestSessionRepository(t *testing.T) {
	t.Run("Create", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewSessionRepository(db)
		session := models.NewSession(0, "fr77abcdef", "4242", "listener")

		if err := repo.Create(session); err != nil {
			t.Fatalf("failed to create session: %v", err)
		}

		if session.ID() == "" {
			t.Error("session ID should be set after creation")
		}
		if session.Sequence() != 1 {
			t.Errorf("expected sequence 1, got %d", session.Sequence())
		}
	})

	t.Run("Create Validation", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewSessionRepository(db)

		if err := repo.Create(models.NewSession(0, "", "4242", "listener")); err == nil {
			t.Error("expected validation error for empty sid")
		}
		if err := repo.Create(models.NewSession(0, "fr77", "0", "")); err == nil {
			t.Error("expected validation error for logged out user")
		}
	})

	t.Run("Get", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewSessionRepository(db)
		session := models.NewSession(0, "fr77abcdef", "4242", "listener")
		if err := repo.Create(session); err != nil {
			t.Fatalf("failed to create session: %v", err)
		}

		retrieved, err := repo.Get(session.ID())
		if err != nil {
			t.Fatalf("failed to get session: %v", err)
		}

		if retrieved.SID() != "fr77abcdef" {
			t.Errorf("expected sid fr77abcdef, got %s", retrieved.SID())
		}
		if retrieved.UserID() != "4242" || retrieved.UserName() != "listener" {
			t.Errorf("unexpected user %s/%s", retrieved.UserID(), retrieved.UserName())
		}
		if retrieved.Sequence() != session.Sequence() {
			t.Errorf("expected sequence %d, got %d", session.Sequence(), retrieved.Sequence())
		}
	})

	t.Run("Get Not Found", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		_, err := NewSessionRepository(db).Get("missing")
		if !errors.Is(err, shared.ErrSessionNotFound) {
			t.Errorf("expected ErrSessionNotFound, got %v", err)
		}
	})

	t.Run("Latest", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewSessionRepository(db)

		if _, err := repo.Latest(); !errors.Is(err, shared.ErrSessionNotFound) {
			t.Errorf("expected ErrSessionNotFound on empty table, got %v", err)
		}

		first := models.NewSession(0, "first", "1", "one")
		second := models.NewSession(0, "second", "2", "two")
		for _, s := range []*models.Session{first, second} {
			if err := repo.Create(s); err != nil {
				t.Fatalf("failed to create session: %v", err)
			}
		}

		latest, err := repo.Latest()
		if err != nil {
			t.Fatalf("failed to get latest session: %v", err)
		}
		if latest.ID() != second.ID() {
			t.Errorf("expected latest session %s, got %s", second.ID(), latest.ID())
		}

		if err := repo.Delete(second.ID()); err != nil {
			t.Fatalf("failed to delete session: %v", err)
		}

		latest, err = repo.Latest()
		if err != nil {
			t.Fatalf("failed to get latest session: %v", err)
		}
		if latest.ID() != first.ID() {
			t.Errorf("expected fallback to %s, got %s", first.ID(), latest.ID())
		}
	})

	t.Run("Update", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewSessionRepository(db)
		session := models.NewSession(0, "fr77abcdef", "4242", "listener")
		if err := repo.Create(session); err != nil {
			t.Fatalf("failed to create session: %v", err)
		}

		session.SetUser("4242", "renamed")
		if err := repo.Update(session); err != nil {
			t.Fatalf("failed to update session: %v", err)
		}

		retrieved, err := repo.Get(session.ID())
		if err != nil {
			t.Fatalf("failed to get session: %v", err)
		}
		if retrieved.UserName() != "renamed" {
			t.Errorf("expected user name renamed, got %s", retrieved.UserName())
		}
	})

	t.Run("Update Not Found", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		session := models.NewSession(0, "fr77abcdef", "4242", "listener")
		session.SetID("missing")

		err := NewSessionRepository(db).Update(session)
		if !errors.Is(err, shared.ErrSessionNotFound) {
			t.Errorf("expected ErrSessionNotFound, got %v", err)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewSessionRepository(db)
		session := models.NewSession(0, "fr77abcdef", "4242", "listener")
		if err := repo.Create(session); err != nil {
			t.Fatalf("failed to create session: %v", err)
		}

		if err := repo.Delete(session.ID()); err != nil {
			t.Fatalf("failed to delete session: %v", err)
		}

		if _, err := repo.Get(session.ID()); !errors.Is(err, shared.ErrSessionNotFound) {
			t.Errorf("expected deleted session to be hidden, got %v", err)
		}

		if err := repo.Delete(session.ID()); !errors.Is(err, shared.ErrSessionNotFound) {
			t.Errorf("expected second delete to fail, got %v", err)
		}
	})

	t.Run("DeleteAll", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewSessionRepository(db)
		for _, sid := range []string{"a", "b", "c"} {
			if err := repo.Create(models.NewSession(0, sid, "4242", "listener")); err != nil {
				t.Fatalf("failed to create session: %v", err)
			}
		}

		n, err := repo.DeleteAll()
		if err != nil {
			t.Fatalf("failed to delete sessions: %v", err)
		}
		if n != 3 {
			t.Errorf("expected 3 deleted sessions, got %d", n)
		}

		if _, err := repo.Latest(); !errors.Is(err, shared.ErrSessionNotFound) {
			t.Errorf("expected no active sessions, got %v", err)
		}
	})

	t.Run("List", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewSessionRepository(db)
		for _, s := range []*models.Session{
			models.NewSession(0, "a", "1", "one"),
			models.NewSession(0, "b", "2", "two"),
			models.NewSession(0, "c", "1", "one"),
		} {
			if err := repo.Create(s); err != nil {
				t.Fatalf("failed to create session: %v", err)
			}
		}

		all, err := repo.List(nil)
		if err != nil {
			t.Fatalf("failed to list sessions: %v", err)
		}
		if len(all) != 3 {
			t.Errorf("expected 3 sessions, got %d", len(all))
		}

		filtered, err := repo.List(map[string]any{"user_id": "1"})
		if err != nil {
			t.Fatalf("failed to list sessions: %v", err)
		}
		if len(filtered) != 2 {
			t.Fatalf("expected 2 sessions for user 1, got %d", len(filtered))
		}
		if filtered[0].SID() != "a" || filtered[1].SID() != "c" {
			t.Errorf("expected sessions in sequence order, got %s, %s", filtered[0].SID(), filtered[1].SID())
		}
	})
}

func TestNextSequence(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	for want := 1; want <= 3; want++ {
		got, err := NextSequence(db, "sessions")
		if err != nil {
			t.Fatalf("NextSequence failed: %v", err)
		}
		if got != want {
			t.Errorf("expected %d, got %d", want, got)
		}
	}

	if _, err := NextSequence(db, "missing"); err == nil {
		t.Error("expected error for unknown sequence table")
	}
}
