// Package backup snapshots the sqlite database with VACUUM INTO and keeps
// the newest MaxBackups copies beside it.
package backup

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/julianstephens/daypad/internal/constants"
	"github.com/julianstephens/daypad/internal/logger"
)

var ErrNoDatabase = errors.New("database does not exist")

// BackupInfo contains information about a backup file
type BackupInfo struct {
	Path      string
	Timestamp time.Time
	Seq       int
	Size      int64
}

// Manager handles backup operations
type Manager struct {
	dbPath    string
	backupDir string
	keep      int
	now       func() time.Time
}

// NewManager keeps backups in a "backups" directory next to dbPath.
func NewManager(dbPath string) *Manager {
	return &Manager{
		dbPath:    dbPath,
		backupDir: filepath.Join(filepath.Dir(dbPath), constants.BackupDirName),
		keep:      constants.MaxBackups,
		now:       time.Now,
	}
}

func (m *Manager) GetBackupDir() string {
	return m.backupDir
}

// CreateBackup snapshots the database and rotates old backups.
func (m *Manager) CreateBackup(ctx context.Context) (string, error) {
	path, err := m.snapshot(ctx)
	if err != nil {
		return "", err
	}
	if err := m.rotate(); err != nil {
		logger.Warn("failed to rotate old backups", "error", err)
	}
	logger.Info("created backup", "path", path)
	return path, nil
}

// EnsureRecent creates a backup unless one newer than maxAge exists.
func (m *Manager) EnsureRecent(ctx context.Context, maxAge time.Duration) (string, bool, error) {
	backups, err := m.ListBackups()
	if err != nil {
		return "", false, err
	}
	if len(backups) > 0 && m.now().Sub(backups[0].Timestamp) < maxAge {
		return backups[0].Path, false, nil
	}
	path, err := m.CreateBackup(ctx)
	return path, err == nil, err
}

func (m *Manager) snapshot(ctx context.Context) (string, error) {
	if _, err := os.Stat(m.dbPath); errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("%w: %s", ErrNoDatabase, m.dbPath)
	}
	if err := os.MkdirAll(m.backupDir, 0o700); err != nil {
		return "", fmt.Errorf("failed to create backup directory: %w", err)
	}

	dest, err := m.nextName()
	if err != nil {
		return "", err
	}

	db, err := sqlx.Open("sqlite", m.dbPath)
	if err != nil {
		return "", fmt.Errorf("failed to open source database: %w", err)
	}
	defer db.Close()

	var n int
	if err := db.GetContext(ctx, &n, "SELECT COUNT(*) FROM sqlite_master"); err != nil {
		return "", fmt.Errorf("source database appears to be corrupted: %w", err)
	}
	if _, err := db.ExecContext(ctx, "VACUUM INTO ?", dest); err != nil {
		logger.Warn("VACUUM INTO failed, copying file", "error", err)
		if err := copyFile(m.dbPath, dest); err != nil {
			return "", fmt.Errorf("failed to backup database: %w", err)
		}
	}
	return dest, nil
}

// nextName picks daypad-YYYYMMDD-HHMM.db, adding -N when that minute is
// already taken.
func (m *Manager) nextName() (string, error) {
	stamp := m.now().Format(constants.TimestampFormat)
	for seq := 0; seq <= 100; seq++ {
		name := constants.BackupFilePrefix + stamp
		if seq > 0 {
			name += "-" + strconv.Itoa(seq)
		}
		path := filepath.Join(m.backupDir, name+constants.BackupFileSuffix)
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			return path, nil
		}
	}
	return "", errors.New("failed to generate unique backup filename")
}

// parseName extracts the timestamp and sequence number from a backup file
// name.
func parseName(name string) (time.Time, int, bool) {
	if !strings.HasPrefix(name, constants.BackupFilePrefix) || !strings.HasSuffix(name, constants.BackupFileSuffix) {
		return time.Time{}, 0, false
	}
	stem := strings.TrimSuffix(strings.TrimPrefix(name, constants.BackupFilePrefix), constants.BackupFileSuffix)

	seq := 0
	if len(stem) > len(constants.TimestampFormat) {
		rest := stem[len(constants.TimestampFormat):]
		n, err := strconv.Atoi(strings.TrimPrefix(rest, "-"))
		if !strings.HasPrefix(rest, "-") || err != nil || n < 1 {
			return time.Time{}, 0, false
		}
		seq = n
		stem = stem[:len(constants.TimestampFormat)]
	}
	ts, err := time.ParseInLocation(constants.TimestampFormat, stem, time.Local)
	if err != nil {
		return time.Time{}, 0, false
	}
	return ts, seq, true
}

// ListBackups returns all backups, newest first.
func (m *Manager) ListBackups() ([]BackupInfo, error) {
	entries, err := os.ReadDir(m.backupDir)
	if errors.Is(err, os.ErrNotExist) {
		return []BackupInfo{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read backup directory: %w", err)
	}

	backups := []BackupInfo{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ts, seq, ok := parseName(entry.Name())
		if !ok {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		backups = append(backups, BackupInfo{
			Path:      filepath.Join(m.backupDir, entry.Name()),
			Timestamp: ts,
			Seq:       seq,
			Size:      info.Size(),
		})
	}

	sort.Slice(backups, func(i, j int) bool {
		if !backups[i].Timestamp.Equal(backups[j].Timestamp) {
			return backups[i].Timestamp.After(backups[j].Timestamp)
		}
		return backups[i].Seq > backups[j].Seq
	})
	return backups, nil
}

func (m *Manager) rotate() error {
	backups, err := m.ListBackups()
	if err != nil {
		return err
	}
	for i := m.keep; i < len(backups); i++ {
		if err := os.Remove(backups[i].Path); err != nil {
			return fmt.Errorf("failed to remove old backup %s: %w", backups[i].Path, err)
		}
	}
	return nil
}

// RestoreBackup replaces the database with backupPath. The current database
// is snapshotted first, without rotation, and that path is returned.
func (m *Manager) RestoreBackup(ctx context.Context, backupPath string) (string, error) {
	if _, err := os.Stat(backupPath); errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("backup file does not exist: %s", backupPath)
	}
	if err := verify(ctx, backupPath); err != nil {
		return "", fmt.Errorf("backup file is corrupted or invalid: %w", err)
	}

	var safety string
	if _, err := os.Stat(m.dbPath); err == nil {
		if safety, err = m.snapshot(ctx); err != nil {
			return "", fmt.Errorf("failed to backup current database before restore: %w", err)
		}
		logger.Info("saved current database before restore", "path", safety)
	}

	tmp := m.dbPath + ".restore.tmp"
	if err := copyFile(backupPath, tmp); err != nil {
		return safety, fmt.Errorf("failed to copy backup file: %w", err)
	}
	if err := os.Rename(tmp, m.dbPath); err != nil {
		if rmErr := os.Remove(tmp); rmErr != nil {
			logger.Warn("failed to remove temporary file", "path", tmp, "error", rmErr)
		}
		return safety, fmt.Errorf("failed to restore database: %w", err)
	}
	// stale WAL files from the replaced database must not be replayed
	for _, suffix := range []string{"-wal", "-shm"} {
		_ = os.Remove(m.dbPath + suffix)
	}
	logger.Info("restored backup", "from", backupPath)
	return safety, nil
}

// verify checks that path opens as a sqlite database holding the days table.
func verify(ctx context.Context, path string) error {
	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return err
	}
	defer db.Close()

	var n int
	if err := db.GetContext(ctx, &n, "SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = 'days'"); err != nil {
		return err
	}
	if n == 0 {
		return errors.New("not a daypad database")
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Sync(); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
