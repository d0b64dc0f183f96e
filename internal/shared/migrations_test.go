package shared

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestMigrationRunner(t *testing.T) {
	t.Run("loadMigrations", func(t *testing.T) {
		migrations, err := loadMigrations()
		if err != nil {
			t.Fatalf("failed to load migrations: %v", err)
		}

		if len(migrations) == 0 {
			t.Fatal("expected at least one migration")
		}

		for i := 1; i < len(migrations); i++ {
			if migrations[i].Version <= migrations[i-1].Version {
				t.Errorf("migrations not sorted: version %d comes after %d", migrations[i].Version, migrations[i-1].Version)
			}
		}

		for _, m := range migrations {
			if m.Up == "" {
				t.Errorf("migration version %d missing up SQL", m.Version)
			}
			if m.Down == "" {
				t.Errorf("migration version %d missing down SQL", m.Version)
			}
		}
	})

	t.Run("RunMigrations And Rollback", func(t *testing.T) {
		db, err := NewDatabase(":memory:")
		if err != nil {
			t.Fatalf("failed to create database: %v", err)
		}
		defer db.Close()
		ConfigureDatabase(db, 1, 1)

		if err := RunMigrations(db); err != nil {
			t.Fatalf("failed to run migrations: %v", err)
		}

		var count int
		err = db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count)
		if err != nil {
			t.Fatalf("failed to query schema_migrations: %v", err)
		}
		if count == 0 {
			t.Error("expected at least one migration to be applied")
		}

		_, err = db.Exec("SELECT 1 FROM sessions LIMIT 1")
		if err != nil {
			t.Errorf("sessions table should exist after migrations: %v", err)
		}

		if err := RollbackMigration(db); err != nil {
			t.Fatalf("failed to rollback migration: %v", err)
		}

		var newCount int
		err = db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&newCount)
		if err != nil {
			t.Fatalf("failed to query schema_migrations after rollback: %v", err)
		}
		if newCount >= count {
			t.Errorf("expected migration count to decrease after rollback, got %d (was %d)", newCount, count)
		}
	})

	t.Run("Idempotent Migrations", func(t *testing.T) {
		db, err := NewDatabase(":memory:")
		if err != nil {
			t.Fatalf("failed to create database: %v", err)
		}
		defer db.Close()
		ConfigureDatabase(db, 1, 1)

		if err := RunMigrations(db); err != nil {
			t.Fatalf("failed to run migrations first time: %v", err)
		}

		if err := RunMigrations(db); err != nil {
			t.Fatalf("failed to run migrations second time: %v", err)
		}

		var count int
		err = db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count)
		if err != nil {
			t.Fatalf("failed to query schema_migrations: %v", err)
		}

		migrations, _ := loadMigrations()
		if count != len(migrations) {
			t.Errorf("expected %d migrations to be applied, got %d", len(migrations), count)
		}
	})
}

func TestOpenDatabase(t *testing.T) {
	t.Run("Creates Directory And Schema", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "nested", "dzdedup.db")

		db, err := OpenDatabase(DatabaseConfig{Path: path, MaxOpenConns: 1, MaxIdleConns: 1})
		if err != nil {
			t.Fatalf("OpenDatabase failed: %v", err)
		}
		defer db.Close()

		if _, err := os.Stat(path); err != nil {
			t.Errorf("expected database file to exist: %v", err)
		}

		var value int
		if err := db.QueryRow("SELECT value FROM sessions_sequence WHERE id = 1").Scan(&value); err != nil {
			t.Fatalf("expected sessions_sequence row: %v", err)
		}
		if value != 0 {
			t.Errorf("expected sequence to start at 0, got %d", value)
		}
	})

	t.Run("Reopen", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "dzdedup.db")
		for range 2 {
			db, err := OpenDatabase(DatabaseConfig{Path: path})
			if err != nil {
				t.Fatalf("OpenDatabase failed: %v", err)
			}
			db.Close()
		}
	})

	t.Run("Empty Path", func(t *testing.T) {
		_, err := OpenDatabase(DatabaseConfig{})
		if !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("expected ErrInvalidConfig, got %v", err)
		}
	})
}

func TestParseMigrationFile(t *testing.T) {
	tests := []struct {
		file    string
		version int
		name    string
		up      bool
		ok      bool
	}{
		{"0000_create_sessions_up.sql", 0, "create_sessions", true, true},
		{"0012_add_index_down.sql", 12, "add_index", false, true},
		{"0001_create_sessions.sql", 0, "", false, false},
		{"notes_up.txt", 0, "", false, false},
		{"abc_create_up.sql", 0, "", false, false},
		{"0003_up.sql", 0, "", false, false},
	}

	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			version, name, up, ok := parseMigrationFile(tt.file)
			if ok != tt.ok {
				t.Fatalf("expected ok=%v, got %v", tt.ok, ok)
			}
			if !ok {
				return
			}
			if version != tt.version || name != tt.name || up != tt.up {
				t.Errorf("got (%d, %q, %v), want (%d, %q, %v)", version, name, up, tt.version, tt.name, tt.up)
			}
		})
	}
}

func TestSplitStatements(t *testing.T) {
	script := `-- header comment
CREATE TABLE a (id INTEGER); -- trailing
CREATE TABLE b (
    id INTEGER
);

INSERT INTO a (id) VALUES (1);`

	got := splitStatements(script)
	if len(got) != 3 {
		t.Fatalf("expected 3 statements, got %d: %q", len(got), got)
	}
	if got[0] != "CREATE TABLE a (id INTEGER)" {
		t.Errorf("unexpected first statement %q", got[0])
	}
	if got[2] != "INSERT INTO a (id) VALUES (1)" {
		t.Errorf("unexpected last statement %q", got[2])
	}
}

func TestResetDatabase(t *testing.T) {
	db, err := NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create database: %v", err)
	}
	defer db.Close()
	ConfigureDatabase(db, 1, 1)

	if err := RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}
	if _, err := db.Exec("UPDATE sessions_sequence SET value = 7 WHERE id = 1"); err != nil {
		t.Fatalf("failed to bump sequence: %v", err)
	}

	if err := ResetDatabase(db); err != nil {
		t.Fatalf("ResetDatabase failed: %v", err)
	}

	var value int
	if err := db.QueryRow("SELECT value FROM sessions_sequence WHERE id = 1").Scan(&value); err != nil {
		t.Fatalf("expected sessions_sequence row: %v", err)
	}
	if value != 0 {
		t.Errorf("expected sequence reset to 0, got %d", value)
	}
}
