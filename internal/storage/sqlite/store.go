package sqlite

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/julianstephens/daypad/internal/logger"
	"github.com/julianstephens/daypad/internal/migration"
	"github.com/julianstephens/daypad/internal/storage"
	"github.com/julianstephens/daypad/migrations"
)

// Store keeps every day in a single sqlite file.
type Store struct {
	storage.SQLRecords
	path string
}

func NewStore(path string) *Store {
	return &Store{
		path: path,
	}
}

// dsn enables WAL and a busy timeout so the calendar's parallel reads can
// overlap a debounced write.
func (s *Store) dsn() string {
	return "file:" + s.path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
}

func (s *Store) open() error {
	db, err := sqlx.Open("sqlite", s.dsn())
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.DB = db
	return nil
}

func (s *Store) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := s.open(); err != nil {
		return err
	}

	if err := s.runMigrations(); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

func (s *Store) Load() error {
	if s.DB != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return fmt.Errorf("%w: %s does not exist", storage.ErrNotInitialized, s.path)
	}

	if err := s.open(); err != nil {
		return err
	}
	return s.migrationRunner().ValidateVersion()
}

func (s *Store) Close() error {
	if s.DB != nil {
		err := s.DB.Close()
		s.DB = nil
		return err
	}
	return nil
}

func (s *Store) migrationRunner() *migration.Runner {
	subFS, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		// the embedded tree is fixed at build time
		panic(fmt.Sprintf("sqlite migrations missing from build: %v", err))
	}
	return migration.NewRunner(s.DB, subFS)
}

func (s *Store) runMigrations() error {
	_, err := s.migrationRunner().ApplyMigrations(func(msg string) {
		logger.Info(msg, "backend", "sqlite")
	})
	return err
}

// MigrationStatus reports the schema version state for doctor.
func (s *Store) MigrationStatus() (migration.Status, error) {
	if s.DB == nil {
		return migration.Status{}, storage.ErrNotInitialized
	}
	return s.migrationRunner().Status()
}

func (s *Store) GetConfigPath() string {
	return s.path
}

var _ storage.Provider = (*Store)(nil)
