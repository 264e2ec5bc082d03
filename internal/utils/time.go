package utils

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/daypad/internal/constants"
)

// GetTodayInTimezone returns today's date key (YYYY-MM-DD) in the specified timezone.
func GetTodayInTimezone(timezone string) (string, error) {
	now, err := NowInTimezone(timezone)
	if err != nil {
		return "", err
	}
	return now.Format(constants.DateFormat), nil
}

// LoadLocation loads a timezone location from an IANA timezone name.
// If the timezone is "Local" or empty, it returns the system's local timezone.
func LoadLocation(timezone string) (*time.Location, error) {
	if timezone == "" || timezone == constants.DefaultTimezone {
		return time.Local, nil
	}
	return time.LoadLocation(timezone)
}

// NowInTimezone returns the current time in the specified timezone.
func NowInTimezone(timezone string) (time.Time, error) {
	loc, err := LoadLocation(timezone)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timezone %q: %w", timezone, err)
	}
	return time.Now().In(loc), nil
}

// ParseDateKey parses a YYYY-MM-DD key. Keys must round-trip exactly, so
// "2026-1-5" is rejected even though it names a real day.
func ParseDateKey(key string) (time.Time, error) {
	t, err := time.Parse(constants.DateFormat, key)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD): %w", key, err)
	}
	if t.Format(constants.DateFormat) != key {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", key)
	}
	return t, nil
}

// ValidateDateKey reports whether key is a well-formed date key.
func ValidateDateKey(key string) bool {
	_, err := ParseDateKey(key)
	return err == nil
}

func FormatDateKey(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// AddDays shifts a date key by n days. Arithmetic happens in UTC so DST never skips a day.
func AddDays(key string, n int) (string, error) {
	t, err := ParseDateKey(key)
	if err != nil {
		return "", err
	}
	return FormatDateKey(t.AddDate(0, 0, n)), nil
}

// ParseDateInLocation parses a date string (YYYY-MM-DD) in the specified timezone.
func ParseDateInLocation(dateStr string, loc *time.Location) (time.Time, error) {
	t, err := ParseDateKey(dateStr)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc), nil
}

// ParseMonth parses YYYY-MM and returns the first day of that month in UTC.
func ParseMonth(s string) (time.Time, error) {
	t, err := time.Parse(constants.MonthFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month %q (expected YYYY-MM): %w", s, err)
	}
	return t, nil
}

// MonthOf returns the first day of the month containing the date key.
func MonthOf(key string) (time.Time, error) {
	t, err := ParseDateKey(key)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC), nil
}

// ParseWeekStart maps a configured first weekday to time.Weekday.
func ParseWeekStart(s string) (time.Weekday, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "sunday", "sun":
		return time.Sunday, nil
	case "monday", "mon":
		return time.Monday, nil
	case "saturday", "sat":
		return time.Saturday, nil
	default:
		return time.Sunday, fmt.Errorf("unsupported week start %q (use sunday, monday or saturday)", s)
	}
}

// ValidateTimezone checks if the timezone name is valid.
func ValidateTimezone(timezone string) bool {
	if timezone == "" || timezone == constants.DefaultTimezone {
		return true
	}
	_, err := time.LoadLocation(timezone)
	return err == nil
}

// ResolveDate accepts YYYY-MM-DD, "today", "tomorrow", "yesterday" or ""
// relative to the date key today.
func ResolveDate(today, s string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "today":
		return today, nil
	case "tomorrow":
		return AddDays(today, 1)
	case "yesterday":
		return AddDays(today, -1)
	}
	s = strings.TrimSpace(s)
	if _, err := ParseDateKey(s); err != nil {
		return "", fmt.Errorf("invalid date %q (expected YYYY-MM-DD, today, tomorrow or yesterday)", s)
	}
	return s, nil
}
