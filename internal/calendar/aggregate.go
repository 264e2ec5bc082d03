package calendar

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/julianstephens/daypad/internal/logger"
	"github.com/julianstephens/daypad/internal/models"
)

// Loader is the read half of a record store.
type Loader interface {
	LoadRecord(ctx context.Context, date string) (models.DayRecord, error)
}

// Aggregate loads every date concurrently and summarizes each one. It
// returns once all loads have settled. A failed load yields a zero count
// for that date and never affects the others.
func Aggregate(ctx context.Context, loader Loader, dates []string) map[string]models.CalendarCount {
	results := make([]models.CalendarCount, len(dates))

	var g errgroup.Group
	for i, date := range dates {
		i, date := i, date
		g.Go(func() error {
			rec, err := loader.LoadRecord(ctx, date)
			if err != nil {
				logger.Warn("calendar cell load failed", "date", date, "error", err)
				return nil
			}
			results[i] = Summarize(rec)
			return nil
		})
	}
	_ = g.Wait()

	counts := make(map[string]models.CalendarCount, len(dates))
	for i, date := range dates {
		counts[date] = results[i]
	}
	return counts
}
