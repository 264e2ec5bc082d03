package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/daypad/internal/constants"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Storage.Backend != constants.BackendSQLite {
		t.Errorf("backend = %q", cfg.Storage.Backend)
	}
	if cfg.NotesDelay() != constants.NotesDebounce || cfg.ZoomDelay() != constants.ZoomDebounce {
		t.Errorf("delays = %v / %v", cfg.NotesDelay(), cfg.ZoomDelay())
	}
	if cfg.FocusDuration() != 25*time.Minute {
		t.Errorf("focus = %v", cfg.FocusDuration())
	}
	if cfg.WeekStart() != time.Sunday {
		t.Errorf("week start = %v", cfg.WeekStart())
	}
	if cfg.StoragePath() != constants.DefaultDBPath {
		t.Errorf("storage path = %q", cfg.StoragePath())
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `
storage:
  backend: Diskv
  path: /tmp/days
debounce:
  notes_ms: 500
focus:
  minutes: 50
calendar:
  week_start: monday
timezone: UTC
`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Storage.Backend != constants.BackendDiskv || cfg.StoragePath() != "/tmp/days" {
		t.Errorf("storage = %+v", cfg.Storage)
	}
	if cfg.NotesDelay() != 500*time.Millisecond {
		t.Errorf("notes delay = %v", cfg.NotesDelay())
	}
	if cfg.ZoomDelay() != constants.ZoomDebounce {
		t.Errorf("zoom delay default lost: %v", cfg.ZoomDelay())
	}
	if cfg.WeekStart() != time.Monday || cfg.FocusDuration() != 50*time.Minute {
		t.Errorf("week start %v, focus %v", cfg.WeekStart(), cfg.FocusDuration())
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("DAYPAD_STORAGE_BACKEND", "postgres")
	t.Setenv("DAYPAD_FOCUS_MINUTES", "15")

	cfg, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Storage.Backend != constants.BackendPostgres {
		t.Errorf("backend = %q", cfg.Storage.Backend)
	}
	if cfg.Focus.Minutes != 15 {
		t.Errorf("focus minutes = %d", cfg.Focus.Minutes)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"backend", "storage:\n  backend: mongo\n", "storage.backend"},
		{"week start", "calendar:\n  week_start: friday\n", "week_start"},
		{"timezone", "timezone: Mars/Olympus\n", "timezone"},
		{"focus", "focus:\n  minutes: 0\n", "focus.minutes"},
		{"yaml", "storage: [\n", "reading config"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if err := os.WriteFile(path, []byte(tt.body), 0o600); err != nil {
				t.Fatal(err)
			}
			_, err := Load(path)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Load() error = %v, want mention of %q", err, tt.want)
			}
		})
	}
}

func TestSave_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := Default()
	cfg.Storage.Backend = constants.BackendDiskv
	cfg.Storage.Path = "/data/days"
	cfg.Calendar.WeekStart = "monday"

	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if *got != *cfg {
		t.Errorf("round trip = %+v, want %+v", got, cfg)
	}
}
