package storage

import (
	"context"
	"fmt"

	"github.com/julianstephens/daypad/internal/logger"
)

// Source is the read side needed to copy a store.
type Source interface {
	RecordStore
	PreferenceStore
	ListDates(ctx context.Context) ([]string, error)
}

// Copy writes every record and the preferences from src into dst and
// returns how many days were copied. Records already in dst for the same
// dates are overwritten.
func Copy(ctx context.Context, src Source, dst Provider) (int, error) {
	dates, err := src.ListDates(ctx)
	if err != nil {
		return 0, fmt.Errorf("list source dates: %w", err)
	}

	copied := 0
	for _, date := range dates {
		rec, err := src.LoadRecord(ctx, date)
		if err != nil {
			return copied, fmt.Errorf("read %s: %w", date, err)
		}
		if err := dst.SaveRecord(ctx, rec); err != nil {
			return copied, fmt.Errorf("write %s: %w", date, err)
		}
		copied++
	}

	prefs, err := src.GetPreferences(ctx)
	if err != nil {
		return copied, fmt.Errorf("read preferences: %w", err)
	}
	if err := dst.SavePreferences(ctx, prefs); err != nil {
		return copied, fmt.Errorf("write preferences: %w", err)
	}

	logger.Info("copied store", "days", copied, "to", dst.GetConfigPath())
	return copied, nil
}
