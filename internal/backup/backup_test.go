package backup

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/julianstephens/daypad/internal/models"
	"github.com/julianstephens/daypad/internal/storage/sqlite"
)

func setupTestDB(t *testing.T, notes string) string {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "daypad.db")
	store := sqlite.NewStore(dbPath)
	if err := store.Init(); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	writeNotes(t, store, notes)
	if err := store.Close(); err != nil {
		t.Fatal(err)
	}
	return dbPath
}

func writeNotes(t *testing.T, store *sqlite.Store, notes string) {
	t.Helper()
	rec := models.DayRecord{Date: "2026-10-17", Todos: []models.TaskItem{}, Notes: notes}
	if err := store.SaveRecord(context.Background(), rec); err != nil {
		t.Fatalf("SaveRecord() error = %v", err)
	}
}

func readNotes(t *testing.T, dbPath string) string {
	t.Helper()
	store := sqlite.NewStore(dbPath)
	if err := store.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	defer store.Close()
	rec, err := store.LoadRecord(context.Background(), "2026-10-17")
	if err != nil {
		t.Fatal(err)
	}
	return rec.Notes
}

func fixedClock(m *Manager, start time.Time) *time.Time {
	now := start
	m.now = func() time.Time { return now }
	return &now
}

func TestCreateBackup(t *testing.T) {
	dbPath := setupTestDB(t, "original")
	mgr := NewManager(dbPath)

	path, err := mgr.CreateBackup(context.Background())
	if err != nil {
		t.Fatalf("CreateBackup() error = %v", err)
	}
	if filepath.Dir(path) != mgr.GetBackupDir() {
		t.Errorf("backup written to %s, want under %s", path, mgr.GetBackupDir())
	}
	if got := readNotes(t, path); got != "original" {
		t.Errorf("backup notes = %q", got)
	}
}

func TestCreateBackup_NoDatabase(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "missing.db"))
	if _, err := mgr.CreateBackup(context.Background()); !errors.Is(err, ErrNoDatabase) {
		t.Errorf("CreateBackup() = %v, want ErrNoDatabase", err)
	}
}

func TestUniqueNamesWithinOneMinute(t *testing.T) {
	dbPath := setupTestDB(t, "x")
	mgr := NewManager(dbPath)
	fixedClock(mgr, time.Date(2026, 10, 17, 9, 30, 0, 0, time.Local))

	seen := map[string]bool{}
	for i := 0; i < 3; i++ {
		p, err := mgr.CreateBackup(context.Background())
		if err != nil {
			t.Fatal(err)
		}
		if seen[p] {
			t.Fatalf("duplicate backup path %s", p)
		}
		seen[p] = true
	}

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) != 3 {
		t.Fatalf("ListBackups() = %d entries", len(backups))
	}
	if backups[0].Seq != 2 || backups[2].Seq != 0 {
		t.Errorf("order by seq = %d,%d,%d", backups[0].Seq, backups[1].Seq, backups[2].Seq)
	}
}

func TestRotation(t *testing.T) {
	dbPath := setupTestDB(t, "x")
	mgr := NewManager(dbPath)
	mgr.keep = 3
	now := fixedClock(mgr, time.Date(2026, 10, 1, 8, 0, 0, 0, time.Local))

	for i := 0; i < 5; i++ {
		if _, err := mgr.CreateBackup(context.Background()); err != nil {
			t.Fatal(err)
		}
		*now = now.AddDate(0, 0, 1)
	}

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) != 3 {
		t.Fatalf("kept %d backups, want 3", len(backups))
	}
	if got := backups[2].Timestamp.Day(); got != 3 {
		t.Errorf("oldest kept backup is from day %d, want 3", got)
	}
}

func TestListBackups_IgnoresForeignFiles(t *testing.T) {
	mgr := NewManager(filepath.Join(t.TempDir(), "daypad.db"))
	if got, err := mgr.ListBackups(); err != nil || len(got) != 0 {
		t.Fatalf("ListBackups() on missing dir = %v, %v", got, err)
	}

	if err := os.MkdirAll(mgr.GetBackupDir(), 0o700); err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{
		"daypad-20261017-0930.db",
		"daypad-20261017-0930-2.db",
		"daypad-20261017-0930-x.db",
		"daypad-garbage.db",
		"other-20261017-0930.db",
		"daypad-20261017-0930.txt",
	} {
		if err := os.WriteFile(filepath.Join(mgr.GetBackupDir(), name), nil, 0o600); err != nil {
			t.Fatal(err)
		}
	}

	backups, err := mgr.ListBackups()
	if err != nil {
		t.Fatal(err)
	}
	if len(backups) != 2 {
		t.Errorf("ListBackups() = %d entries, want 2", len(backups))
	}
}

func TestRestoreBackup(t *testing.T) {
	dbPath := setupTestDB(t, "before")
	mgr := NewManager(dbPath)
	ctx := context.Background()
	now := fixedClock(mgr, time.Date(2026, 10, 17, 9, 0, 0, 0, time.Local))

	backupPath, err := mgr.CreateBackup(ctx)
	if err != nil {
		t.Fatal(err)
	}

	store := sqlite.NewStore(dbPath)
	if err := store.Load(); err != nil {
		t.Fatal(err)
	}
	writeNotes(t, store, "after")
	store.Close()

	*now = now.Add(time.Hour)
	safety, err := mgr.RestoreBackup(ctx, backupPath)
	if err != nil {
		t.Fatalf("RestoreBackup() error = %v", err)
	}
	if got := readNotes(t, dbPath); got != "before" {
		t.Errorf("restored notes = %q, want before", got)
	}
	if safety == "" {
		t.Fatal("no safety backup path returned")
	}
	if got := readNotes(t, safety); got != "after" {
		t.Errorf("safety backup notes = %q, want after", got)
	}
}

func TestRestoreBackup_RejectsInvalid(t *testing.T) {
	dbPath := setupTestDB(t, "keep me")
	mgr := NewManager(dbPath)
	ctx := context.Background()

	bogus := filepath.Join(t.TempDir(), "bogus.db")
	if err := os.WriteFile(bogus, []byte("definitely not sqlite"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := mgr.RestoreBackup(ctx, bogus); err == nil {
		t.Error("RestoreBackup(corrupt) succeeded")
	}
	if _, err := mgr.RestoreBackup(ctx, filepath.Join(t.TempDir(), "absent.db")); err == nil {
		t.Error("RestoreBackup(missing) succeeded")
	}
	if got := readNotes(t, dbPath); got != "keep me" {
		t.Errorf("database changed after failed restore: %q", got)
	}
}

func TestEnsureRecent(t *testing.T) {
	dbPath := setupTestDB(t, "x")
	mgr := NewManager(dbPath)
	ctx := context.Background()
	now := fixedClock(mgr, time.Date(2026, 10, 17, 9, 0, 0, 0, time.Local))

	_, created, err := mgr.EnsureRecent(ctx, 24*time.Hour)
	if err != nil || !created {
		t.Fatalf("first EnsureRecent() = %v, %v", created, err)
	}
	*now = now.Add(2 * time.Hour)
	if _, created, _ = mgr.EnsureRecent(ctx, 24*time.Hour); created {
		t.Error("EnsureRecent() created a backup inside the window")
	}
	*now = now.Add(24 * time.Hour)
	if _, created, _ = mgr.EnsureRecent(ctx, 24*time.Hour); !created {
		t.Error("EnsureRecent() skipped a stale window")
	}
}
