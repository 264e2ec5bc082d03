// Package calendar builds the six-week month grid and keeps per-date
// completion counts for it.
package calendar

import (
	"strings"
	"time"

	"github.com/julianstephens/daypad/internal/constants"
	"github.com/julianstephens/daypad/internal/models"
)

// Grid returns the 42 date keys of the six full weeks covering month,
// starting on weekStart.
func Grid(month time.Time, weekStart time.Weekday) []string {
	first := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC)
	offset := (int(first.Weekday()) - int(weekStart) + 7) % 7
	start := first.AddDate(0, 0, -offset)

	dates := make([]string, constants.GridCells)
	for i := range dates {
		dates[i] = start.AddDate(0, 0, i).Format(constants.DateFormat)
	}
	return dates
}

// Summarize reduces a record to its calendar badge.
func Summarize(rec models.DayRecord) models.CalendarCount {
	return models.CalendarCount{
		Total:     len(rec.Todos),
		Completed: rec.CompletedCount(),
		HasNotes:  strings.TrimSpace(rec.Notes) != "",
	}
}

// WeekdayHeaders returns two-letter day names in grid column order.
func WeekdayHeaders(weekStart time.Weekday) []string {
	headers := make([]string, 7)
	for i := range headers {
		headers[i] = time.Weekday((int(weekStart) + i) % 7).String()[:2]
	}
	return headers
}
