package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/daypad/internal/config"
	"github.com/julianstephens/daypad/internal/constants"
	apperrors "github.com/julianstephens/daypad/internal/errors"
	"github.com/julianstephens/daypad/internal/keyring"
	"github.com/julianstephens/daypad/internal/logger"
	"github.com/julianstephens/daypad/internal/storage"
	"github.com/julianstephens/daypad/internal/storage/diskv"
	"github.com/julianstephens/daypad/internal/storage/postgres"
	"github.com/julianstephens/daypad/internal/storage/sqlite"
	"github.com/julianstephens/daypad/internal/utils"
)

// StoreFlags are the global flags that pick a storage backend.
type StoreFlags struct {
	Backend string
	DB      string
}

// Target is a resolved backend and location.
type Target struct {
	Backend  string
	Location string
}

// ResolveTarget decides which backend and location to use. Flags override
// the config file; a PostgreSQL URL passed as --db implies the postgres
// backend. For postgres with no DSN anywhere, the DAYPAD_DB_CONNECTION
// variable and then the keyring are consulted.
func ResolveTarget(cfg *config.Config, vault keyring.Vault, flags StoreFlags) (Target, error) {
	backend := strings.ToLower(strings.TrimSpace(flags.Backend))
	if backend == "" && utils.IsPostgresURL(flags.DB) {
		backend = constants.BackendPostgres
	}
	if backend == "" {
		backend = cfg.Storage.Backend
	}

	switch backend {
	case constants.BackendSQLite, constants.BackendDiskv:
		loc := flags.DB
		if loc == "" {
			loc = storagePathFor(cfg, backend)
		}
		expanded, err := utils.ExpandPath(loc)
		if err != nil {
			return Target{}, fmt.Errorf("expand %s: %w", loc, err)
		}
		return Target{Backend: backend, Location: expanded}, nil

	case constants.BackendPostgres:
		dsn := flags.DB
		if dsn == "" {
			dsn = cfg.Storage.DSN
		}
		if dsn != "" {
			if _, err := postgres.ValidateConnString(dsn); err != nil {
				if errors.Is(err, postgres.ErrEmbeddedCredentials) {
					return Target{}, apperrors.WithHint(err,
						"store the full connection string with 'daypad keyring set' or export "+constants.EnvDBConnection)
				}
				return Target{}, err
			}
			return Target{Backend: backend, Location: dsn}, nil
		}
		dsn, src, err := vault.Resolve()
		if err != nil {
			return Target{}, apperrors.WithHint(fmt.Errorf("no PostgreSQL connection configured: %w", err),
				"pass --db, set storage.dsn, export "+constants.EnvDBConnection+" or run 'daypad keyring set'")
		}
		logger.Debug("using postgres connection", "source", src)
		return Target{Backend: backend, Location: dsn}, nil
	}
	return Target{}, fmt.Errorf("unknown backend %q", backend)
}

// storagePathFor ignores a configured path that belongs to another backend
// when --backend switches backends.
func storagePathFor(cfg *config.Config, backend string) string {
	if cfg.Storage.Backend == backend {
		return cfg.StoragePath()
	}
	if backend == constants.BackendDiskv {
		return constants.DefaultDiskvPath
	}
	return constants.DefaultDBPath
}

// OpenProvider constructs, but does not load, the provider for t.
func OpenProvider(t Target) (storage.Provider, error) {
	switch t.Backend {
	case constants.BackendSQLite:
		return sqlite.NewStore(t.Location), nil
	case constants.BackendDiskv:
		return diskv.NewStore(t.Location), nil
	case constants.BackendPostgres:
		return postgres.New(t.Location), nil
	}
	return nil, fmt.Errorf("unknown backend %q", t.Backend)
}

// ProviderFor parses a --source style argument: a PostgreSQL URL, a
// directory (diskv) or a sqlite file.
func ProviderFor(location string, isDir bool) (storage.Provider, error) {
	switch {
	case utils.IsPostgresURL(location):
		if _, err := postgres.ValidateConnString(location); err != nil {
			return nil, err
		}
		return postgres.New(location), nil
	case isDir:
		return diskv.NewStore(location), nil
	default:
		return sqlite.NewStore(location), nil
	}
}
