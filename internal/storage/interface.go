package storage

import (
	"context"
	"errors"

	"github.com/julianstephens/daypad/internal/models"
)

// ErrNotInitialized is returned by Load when the backing store has never been created.
var ErrNotInitialized = errors.New("storage not initialized")

// RecordStore reads and writes one DayRecord per date key. LoadRecord
// returns an empty record for a date that was never saved; only I/O
// failures are errors. SaveRecord overwrites the whole record.
type RecordStore interface {
	LoadRecord(ctx context.Context, date string) (models.DayRecord, error)
	SaveRecord(ctx context.Context, rec models.DayRecord) error
}

// PreferenceStore persists UI preferences.
type PreferenceStore interface {
	GetPreferences(ctx context.Context) (models.Preferences, error)
	SavePreferences(ctx context.Context, prefs models.Preferences) error
}

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	RecordStore
	PreferenceStore

	// ListDates returns every stored date key in ascending order.
	ListDates(ctx context.Context) ([]string, error)

	// Utils
	GetConfigPath() string
}
