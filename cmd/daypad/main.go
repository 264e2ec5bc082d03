package main

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/daypad/internal/cli"
	"github.com/julianstephens/daypad/internal/cli/backups"
	"github.com/julianstephens/daypad/internal/cli/days"
	"github.com/julianstephens/daypad/internal/cli/settings"
	"github.com/julianstephens/daypad/internal/cli/system"
	"github.com/julianstephens/daypad/internal/config"
	"github.com/julianstephens/daypad/internal/constants"
	apperrors "github.com/julianstephens/daypad/internal/errors"
	"github.com/julianstephens/daypad/internal/keyring"
	"github.com/julianstephens/daypad/internal/logger"
	"github.com/julianstephens/daypad/internal/storage"
	"github.com/julianstephens/daypad/internal/utils"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"Config file path." type:"path" default:"${config_file}"`
	DB      string `name:"db" help:"SQLite file, diskv directory or PostgreSQL URL without a password. Overrides the config file."`
	Backend string `help:"Storage backend (sqlite, diskv, postgres). Overrides the config file."`
	Debug   bool   `help:"Log debug output to stderr."`

	Init     system.InitCmd     `cmd:"" help:"Initialize daypad storage."`
	Tui      system.TuiCmd      `cmd:"" help:"Launch the interactive planner." default:"withargs"`
	Day      days.DayCmd        `cmd:"" help:"Show a day's tasks and notes."`
	Add      days.AddCmd        `cmd:"" help:"Add a task."`
	Toggle   days.ToggleCmd     `cmd:"" help:"Toggle a task's completion."`
	Edit     days.EditCmd       `cmd:"" help:"Edit a task's text or notes."`
	Delete   days.DeleteCmd     `cmd:"" help:"Delete a task."`
	Move     days.MoveCmd       `cmd:"" help:"Reorder a task within its day."`
	Resched  days.RescheduleCmd `cmd:"" name:"reschedule" help:"Move a task to another date."`
	Notes    days.NotesCmd      `cmd:"" help:"Show or set a day's notes."`
	Calendar days.CalendarCmd   `cmd:"" help:"Show a month with per-day progress."`
	Focus    days.FocusCmd      `cmd:"" help:"Run a focus timer for a task."`
	Export   days.ExportCmd     `cmd:"" help:"Export days as JSON."`
	Prefs    settings.PrefsCmd  `cmd:"" help:"Show or change zoom and theme."`
	Backup   backups.BackupCmd  `cmd:"" help:"Manage database backups."`
	Keyring  system.KeyringCmd  `cmd:"" help:"Manage the PostgreSQL connection string in the OS keyring."`
	Validate system.ValidateCmd `cmd:"" help:"Check stored days for problems."`
	Doctor   system.DoctorCmd   `cmd:"" help:"Run health checks and diagnostics."`
	Migrate  system.MigrateCmd  `cmd:"" help:"Show or apply database migrations."`
	DebugCmd system.DebugCmd    `cmd:"" name:"debug" help:"Debug commands for troubleshooting."`
	Notify   system.NotifyCmd   `cmd:"" hidden:"" help:"Send a notification to the tray app."`
}

// commands that open or inspect storage themselves
var skipLoad = []string{"init", "keyring", "doctor", "debug db-path", "debug dump-config"}

func needsLoad(command string) bool {
	for _, c := range skipLoad {
		if command == c || strings.HasPrefix(command, c+" ") {
			return false
		}
	}
	return true
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("A daily planner: tasks, notes and a month calendar"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{
			"version":     constants.Version,
			"config_file": constants.DefaultConfigFile,
		},
	)

	configPath, err := utils.ExpandPath(CLI.Config)
	if err != nil {
		apperrors.Fatal(err)
	}
	if err := logger.Init(logger.Config{Debug: CLI.Debug, ConfigDir: filepath.Dir(configPath)}); err != nil {
		apperrors.Fatal(err)
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		apperrors.Fatal(apperrors.WithHint(err, "fix the file or rerun 'daypad init --write-config --force'"))
	}

	vault := keyring.Default()
	target, err := cli.ResolveTarget(cfg, vault, cli.StoreFlags{Backend: CLI.Backend, DB: CLI.DB})
	if err != nil {
		apperrors.Fatal(err)
	}
	cfg.Storage.Backend = target.Backend
	logger.Debug("resolved storage", "backend", target.Backend)

	store, err := cli.OpenProvider(target)
	if err != nil {
		apperrors.Fatal(err)
	}

	appCtx := &cli.Context{
		Config:     cfg,
		ConfigPath: configPath,
		Store:      store,
		Vault:      vault,
	}

	if needsLoad(ctx.Command()) {
		if err := store.Load(); err != nil {
			if errors.Is(err, storage.ErrNotInitialized) {
				err = apperrors.WithHint(err, "run 'daypad init' first")
			}
			apperrors.Fatal(err)
		}
	}

	err = ctx.Run(appCtx)
	if cerr := store.Close(); cerr != nil {
		logger.Warn("closing store", "error", cerr)
	}
	apperrors.Fatal(err)
}
