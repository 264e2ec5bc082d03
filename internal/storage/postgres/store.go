package postgres

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	pq "github.com/lib/pq"

	"github.com/julianstephens/daypad/internal/constants"
	"github.com/julianstephens/daypad/internal/logger"
	"github.com/julianstephens/daypad/internal/migration"
	"github.com/julianstephens/daypad/internal/storage"
	"github.com/julianstephens/daypad/migrations"
)

// Store keeps days in a PostgreSQL schema named after the app.
type Store struct {
	storage.SQLRecords
	connStr string
}

var (
	ErrInvalidConnectionString = errors.New("invalid PostgreSQL connection string")
	ErrEmbeddedCredentials     = errors.New("connection string must not contain a password")
)

func New(connStr string) *Store {
	s := &Store{
		connStr: connStr,
	}
	s.ensureSearchPath()
	return s
}

func (s *Store) ensureSearchPath() {
	// Pin search_path to the app schema
	if strings.HasPrefix(s.connStr, "postgres://") || strings.HasPrefix(s.connStr, "postgresql://") {
		u, err := url.Parse(s.connStr)
		if err != nil {
			logger.Warn("failed to parse postgres connection string", "error", err)
			return
		}
		q := u.Query()
		// Only set search_path if it's not already present
		if q.Get("search_path") == "" {
			q.Set("search_path", constants.AppName)
			u.RawQuery = q.Encode()
			s.connStr = u.String()
		}
	} else {
		// Assume DSN format - only append if search_path is not already present
		if !hasSearchPathParam(s.connStr) {
			s.connStr = strings.TrimSpace(s.connStr) + " search_path=" + constants.AppName
		}
	}
}

// hasSearchPathParam returns true if the given DSN-style connection string
// contains a search_path parameter key (case-insensitive).
func hasSearchPathParam(connStr string) bool {
	// DSN format is typically space-separated key=value pairs.
	parts := strings.Fields(connStr)
	for _, part := range parts {
		kv := strings.SplitN(part, "=", 2)
		if len(kv) != 2 {
			continue
		}
		if strings.EqualFold(kv[0], "search_path") {
			return true
		}
	}
	return false
}

// hasSSLMode checks if the connection string contains an sslmode parameter key (case-insensitive).
// It supports both URL-style and DSN-style connection strings.
func hasSSLMode(connStr string) bool {
	// First, try to interpret the connection string as a URL (e.g. postgres://...?sslmode=disable).
	if u, err := url.Parse(connStr); err == nil && u.Scheme != "" {
		q := u.Query()
		for key := range q {
			if strings.EqualFold(key, "sslmode") {
				return true
			}
		}
	}

	// Fallback: treat the connection string as DSN-style space-separated key=value pairs.
	parts := strings.Fields(connStr)
	for _, part := range parts {
		kv := strings.SplitN(part, "=", 2)
		if len(kv) != 2 {
			continue
		}
		if strings.EqualFold(kv[0], "sslmode") {
			return true
		}
	}

	return false
}

// ValidateConnString checks if a connection string is a valid
// PostgreSQL connection string (URI or DSN) and ensures it does not
// contain a password.
//
// It returns true if the connection string is valid and contains no password.
// Otherwise, it returns false and an error describing the issue.
func ValidateConnString(connStr string) (bool, error) {
	if strings.TrimSpace(connStr) == "" {
		return false, fmt.Errorf("%w: connection string cannot be empty", ErrInvalidConnectionString)
	}

	_, err := pq.NewConnector(connStr)
	if err != nil {
		return false, fmt.Errorf("%w: invalid connection string format: %v", ErrInvalidConnectionString, err)
	}

	if strings.HasPrefix(connStr, "postgres://") || strings.HasPrefix(connStr, "postgresql://") {
		parsedURL, err := url.Parse(connStr)
		if err != nil {
			return false, fmt.Errorf("%w: failed to parse connection URL: %v", ErrInvalidConnectionString, err)
		}

		if _, isSet := parsedURL.User.Password(); isSet {
			return false, ErrEmbeddedCredentials
		}

		if parsedURL.Host == "" && parsedURL.User == nil && (parsedURL.Path == "" || parsedURL.Path == "/") {
			return false, fmt.Errorf("%w: connection URL is incomplete", ErrInvalidConnectionString)
		}
	} else {
		pairs := strings.Fields(connStr)
		for _, pair := range pairs {
			parts := strings.SplitN(pair, "=", 2)
			if len(parts) == 2 && strings.ToLower(strings.TrimSpace(parts[0])) == "password" {
				return false, ErrEmbeddedCredentials
			}
		}
	}

	return true, nil
}

func (s *Store) open() error {
	db, err := sqlx.Open("postgres", s.connStr)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(constants.GridCells)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		if strings.Contains(err.Error(), "SSL is not enabled on the server") && !hasSSLMode(s.connStr) {
			return fmt.Errorf("failed to connect to database: %w (hint: try adding ?sslmode=disable to your connection string)", err)
		}
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	s.DB = db
	return nil
}

func (s *Store) Init() error {
	if err := s.open(); err != nil {
		return err
	}

	if _, err := s.DB.Exec("CREATE SCHEMA IF NOT EXISTS " + constants.AppName); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	if _, err := s.migrationRunner().ApplyMigrations(func(msg string) {
		logger.Info(msg, "backend", "postgres")
	}); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

func (s *Store) Load() error {
	if s.DB != nil {
		return nil
	}
	if err := s.open(); err != nil {
		return err
	}

	var exists bool
	err := s.DB.Get(&exists, "SELECT EXISTS (SELECT 1 FROM information_schema.tables WHERE table_schema = $1 AND table_name = 'days')", constants.AppName)
	if err != nil {
		return fmt.Errorf("failed to inspect schema: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: schema %q has no days table", storage.ErrNotInitialized, constants.AppName)
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
	subFS, err := fs.Sub(migrations.FS, "postgres")
	if err != nil {
		panic(fmt.Sprintf("postgres migrations missing from build: %v", err))
	}
	return migration.NewRunner(s.DB, subFS)
}

func (s *Store) MigrationStatus() (migration.Status, error) {
	if s.DB == nil {
		return migration.Status{}, storage.ErrNotInitialized
	}
	return s.migrationRunner().Status()
}

func (s *Store) GetConfigPath() string {
	// never expose the connection string
	return "postgresql"
}

var _ storage.Provider = (*Store)(nil)
