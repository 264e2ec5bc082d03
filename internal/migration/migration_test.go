package migration

import (
	"errors"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

func setupTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	db, err := sqlx.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func migrationFS(files map[string]string) fstest.MapFS {
	fsys := fstest.MapFS{}
	for name, content := range files {
		fsys[name] = &fstest.MapFile{Data: []byte(content)}
	}
	return fsys
}

func TestGetCurrentVersion(t *testing.T) {
	db := setupTestDB(t)
	runner := NewRunner(db, migrationFS(map[string]string{
		"001_days.sql": "CREATE TABLE days (date TEXT PRIMARY KEY);",
	}))

	version, err := runner.GetCurrentVersion()
	if err != nil {
		t.Fatalf("GetCurrentVersion failed: %v", err)
	}
	if version != 0 {
		t.Errorf("fresh database version = %d, want 0", version)
	}

	if err := runner.SetVersion(5); err != nil {
		t.Fatalf("SetVersion failed: %v", err)
	}
	version, err = runner.GetCurrentVersion()
	if err != nil {
		t.Fatalf("GetCurrentVersion failed: %v", err)
	}
	if version != 5 {
		t.Errorf("version = %d, want 5", version)
	}
}

func TestReadMigrationFiles(t *testing.T) {
	runner := NewRunner(setupTestDB(t), migrationFS(map[string]string{
		"003_prefs.sql": "CREATE TABLE preferences (key TEXT);",
		"001_days.sql":  "CREATE TABLE days (date TEXT);",
		"002_todos.sql": "CREATE TABLE todos (id TEXT);",
		"README.md":     "ignored",
	}))

	migrations, err := runner.ReadMigrationFiles()
	if err != nil {
		t.Fatalf("ReadMigrationFiles failed: %v", err)
	}
	if len(migrations) != 3 {
		t.Fatalf("got %d migrations, want 3", len(migrations))
	}

	wantNames := []string{"days", "todos", "prefs"}
	for i, m := range migrations {
		if m.Version != i+1 || m.Name != wantNames[i] {
			t.Errorf("migration %d = (%d, %q), want (%d, %q)", i, m.Version, m.Name, i+1, wantNames[i])
		}
	}
}

func TestReadMigrationFiles_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		files map[string]string
	}{
		{"no underscore", map[string]string{"001.sql": "SELECT 1;"}},
		{"non-numeric version", map[string]string{"abc_init.sql": "SELECT 1;"}},
		{"zero version", map[string]string{"000_init.sql": "SELECT 1;"}},
		{"duplicate version", map[string]string{"001_a.sql": "SELECT 1;", "001_b.sql": "SELECT 1;"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := NewRunner(setupTestDB(t), migrationFS(tt.files))
			if _, err := runner.ReadMigrationFiles(); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestApplyMigrations(t *testing.T) {
	db := setupTestDB(t)
	files := migrationFS(map[string]string{
		"001_days.sql": "CREATE TABLE days (date TEXT PRIMARY KEY, notes TEXT);",
	})
	runner := NewRunner(db, files)

	var messages []string
	count, err := runner.ApplyMigrations(func(s string) { messages = append(messages, s) })
	if err != nil {
		t.Fatalf("ApplyMigrations failed: %v", err)
	}
	if count != 1 {
		t.Errorf("applied %d, want 1", count)
	}
	if len(messages) == 0 {
		t.Error("expected progress messages")
	}

	// second run is a no-op
	count, err = runner.ApplyMigrations(nil)
	if err != nil || count != 0 {
		t.Errorf("second ApplyMigrations = (%d, %v), want (0, nil)", count, err)
	}

	// a new file is picked up incrementally
	files["002_todos.sql"] = &fstest.MapFile{Data: []byte("CREATE TABLE todos (id TEXT);")}
	count, err = runner.ApplyMigrations(nil)
	if err != nil || count != 1 {
		t.Fatalf("incremental ApplyMigrations = (%d, %v), want (1, nil)", count, err)
	}

	var tables int
	if err := db.Get(&tables, "SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name IN ('days','todos')"); err != nil {
		t.Fatalf("counting tables: %v", err)
	}
	if tables != 2 {
		t.Errorf("found %d tables, want 2", tables)
	}
}

func TestApplyMigrations_FailureRollsBack(t *testing.T) {
	db := setupTestDB(t)
	runner := NewRunner(db, migrationFS(map[string]string{
		"001_days.sql":   "CREATE TABLE days (date TEXT PRIMARY KEY);",
		"002_broken.sql": "CREATE TABLE oops (;",
	}))

	count, err := runner.ApplyMigrations(nil)
	if err == nil {
		t.Fatal("expected error from broken migration")
	}
	if count != 1 {
		t.Errorf("applied %d before failure, want 1", count)
	}
	version, _ := runner.GetCurrentVersion()
	if version != 1 {
		t.Errorf("version after failure = %d, want 1", version)
	}
}

func TestValidateVersion_TooNew(t *testing.T) {
	runner := NewRunner(setupTestDB(t), migrationFS(map[string]string{
		"001_days.sql": "CREATE TABLE days (date TEXT);",
	}))
	if err := runner.SetVersion(7); err != nil {
		t.Fatalf("SetVersion failed: %v", err)
	}

	err := runner.ValidateVersion()
	if !errors.Is(err, ErrSchemaTooNew) {
		t.Errorf("ValidateVersion() = %v, want ErrSchemaTooNew", err)
	}
	if _, err := runner.ApplyMigrations(nil); !errors.Is(err, ErrSchemaTooNew) {
		t.Errorf("ApplyMigrations() = %v, want ErrSchemaTooNew", err)
	}
}

func TestStatus(t *testing.T) {
	runner := NewRunner(setupTestDB(t), migrationFS(map[string]string{
		"001_days.sql":  "CREATE TABLE days (date TEXT);",
		"002_todos.sql": "CREATE TABLE todos (id TEXT);",
	}))
	if err := runner.SetVersion(1); err != nil {
		t.Fatalf("SetVersion failed: %v", err)
	}

	st, err := runner.Status()
	if err != nil {
		t.Fatalf("Status failed: %v", err)
	}
	if st.Current != 1 || st.Latest != 2 || len(st.Pending) != 1 || st.Pending[0].Name != "todos" {
		t.Errorf("Status() = %+v", st)
	}
}
