package utils

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadLocation(t *testing.T) {
	tests := []struct {
		name     string
		timezone string
		wantErr  bool
	}{
		{name: "empty string returns local", timezone: ""},
		{name: "Local returns local", timezone: "Local"},
		{name: "UTC", timezone: "UTC"},
		{name: "America/New_York", timezone: "America/New_York"},
		{name: "invalid timezone", timezone: "Invalid/Timezone", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc, err := LoadLocation(tt.timezone)
			if (err != nil) != tt.wantErr {
				t.Fatalf("LoadLocation() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && loc == nil {
				t.Error("LoadLocation() returned nil location without error")
			}
		})
	}
}

func TestGetTodayInTimezone(t *testing.T) {
	got, err := GetTodayInTimezone("UTC")
	if err != nil {
		t.Fatalf("GetTodayInTimezone() error = %v", err)
	}
	if !ValidateDateKey(got) {
		t.Errorf("GetTodayInTimezone() = %q, not a date key", got)
	}
	if _, err := GetTodayInTimezone("Nowhere/Special"); err == nil {
		t.Error("expected error for invalid timezone")
	}
}

func TestParseDateKey(t *testing.T) {
	tests := []struct {
		key     string
		wantErr bool
	}{
		{"2026-10-17", false},
		{"2024-02-29", false},
		{"2025-02-29", true},
		{"2026-1-5", true},
		{"2026/01/15", true},
		{"2026-13-01", true},
		{"", true},
		{"preferences", true},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			_, err := ParseDateKey(tt.key)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseDateKey(%q) error = %v, wantErr %v", tt.key, err, tt.wantErr)
			}
		})
	}
}

func TestAddDays(t *testing.T) {
	tests := []struct {
		key  string
		n    int
		want string
	}{
		{"2026-10-17", 1, "2026-10-18"},
		{"2026-10-31", 1, "2026-11-01"},
		{"2026-01-01", -1, "2025-12-31"},
		{"2024-02-28", 1, "2024-02-29"},
		{"2026-03-08", 1, "2026-03-09"},
	}

	for _, tt := range tests {
		got, err := AddDays(tt.key, tt.n)
		if err != nil {
			t.Fatalf("AddDays(%q, %d) error = %v", tt.key, tt.n, err)
		}
		if got != tt.want {
			t.Errorf("AddDays(%q, %d) = %q, want %q", tt.key, tt.n, got, tt.want)
		}
	}
}

func TestParseDateInLocation(t *testing.T) {
	est, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skip("tzdata unavailable")
	}

	got, err := ParseDateInLocation("2025-12-31", est)
	if err != nil {
		t.Fatalf("ParseDateInLocation() error = %v", err)
	}
	if got.Year() != 2025 || got.Month() != time.December || got.Day() != 31 {
		t.Errorf("ParseDateInLocation() = %v", got)
	}
	if got.Location() != est {
		t.Errorf("location = %v, want %v", got.Location(), est)
	}
	if got.Hour() != 0 || got.Minute() != 0 {
		t.Errorf("time = %02d:%02d, want midnight", got.Hour(), got.Minute())
	}
}

func TestParseMonthAndMonthOf(t *testing.T) {
	m, err := ParseMonth("2026-10")
	if err != nil {
		t.Fatalf("ParseMonth() error = %v", err)
	}
	if m.Year() != 2026 || m.Month() != time.October || m.Day() != 1 {
		t.Errorf("ParseMonth() = %v", m)
	}
	if _, err := ParseMonth("2026-10-01"); err == nil {
		t.Error("ParseMonth should reject a full date")
	}

	first, err := MonthOf("2026-10-17")
	if err != nil {
		t.Fatalf("MonthOf() error = %v", err)
	}
	if !first.Equal(m) {
		t.Errorf("MonthOf() = %v, want %v", first, m)
	}
}

func TestParseWeekStart(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Weekday
		wantErr bool
	}{
		{"", time.Sunday, false},
		{"sunday", time.Sunday, false},
		{"Monday", time.Monday, false},
		{" mon ", time.Monday, false},
		{"sat", time.Saturday, false},
		{"friday", time.Sunday, true},
	}

	for _, tt := range tests {
		got, err := ParseWeekStart(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseWeekStart(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseWeekStart(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestValidateTimezone(t *testing.T) {
	tests := []struct {
		timezone string
		want     bool
	}{
		{"", true},
		{"Local", true},
		{"UTC", true},
		{"Europe/London", true},
		{"Invalid/Timezone", false},
		{"not-a-timezone", false},
	}

	for _, tt := range tests {
		if got := ValidateTimezone(tt.timezone); got != tt.want {
			t.Errorf("ValidateTimezone(%q) = %v, want %v", tt.timezone, got, tt.want)
		}
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	tests := []struct {
		in   string
		want string
	}{
		{"~", home},
		{"~/.config/daypad", filepath.Join(home, ".config/daypad")},
		{"/tmp/daypad.db", "/tmp/daypad.db"},
		{"relative/path", "relative/path"},
		{"~other/path", "~other/path"},
	}

	for _, tt := range tests {
		got, err := ExpandPath(tt.in)
		if err != nil {
			t.Fatalf("ExpandPath(%q) error = %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ExpandPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestIsPostgresURL(t *testing.T) {
	if !IsPostgresURL("postgres://localhost/daypad") || !IsPostgresURL("postgresql://h/db") {
		t.Error("expected postgres URLs to be recognized")
	}
	if IsPostgresURL("/home/me/daypad.db") {
		t.Error("file path recognized as postgres URL")
	}
}

func TestResolveDate(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"", "2026-10-17", false},
		{"Today", "2026-10-17", false},
		{"tomorrow", "2026-10-18", false},
		{"yesterday", "2026-10-16", false},
		{" 2026-12-31 ", "2026-12-31", false},
		{"2026-02-30", "", true},
		{"next week", "", true},
	}
	for _, tt := range tests {
		got, err := ResolveDate("2026-10-17", tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ResolveDate(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ResolveDate(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
