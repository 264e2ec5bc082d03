package constants

import "time"

// SessionState represents the current state of the TUI application
type SessionState int

const (
	AppName            = "daypad"
	DefaultKeyringUser = "database-connection"
	DefaultConfigDir   = "~/.config/daypad"
	DefaultConfigFile  = "~/.config/daypad/config.yaml"
	DefaultDBPath      = "~/.config/daypad/daypad.db"
	DefaultDiskvPath   = "~/.config/daypad/days"
	EnvPrefix          = "DAYPAD"
	EnvDBConnection    = "DAYPAD_DB_CONNECTION"
	Version            = "v0.1.0"

	// Storage backends
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendDiskv    = "diskv"

	// Calendar grid: six full weeks
	GridWeeks = 6
	GridCells = GridWeeks * 7

	// Debounce windows
	NotesDebounce = 1000 * time.Millisecond
	ZoomDebounce  = 300 * time.Millisecond

	// Focus timer
	DefaultFocusMinutes = 25

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "daypad-"
	BackupFileSuffix = ".db"

	// Notify constants
	NotifierLockfileName   = "daypad-notifier.lock"
	NotificationDurationMs = 5000
	TrayAppIdentifier      = "com.julianstephens.daypad"
	TrayExecutablePrefix   = "daypad-tray"
	NotifySecretHeader     = "X-Daypad-Secret"
	NotifyActionForeground = "foreground"
)

// Session States
const (
	StateDay SessionState = iota
	StateCalendar
	StateNotes
	StateEditing
	StateAdding
	StateReschedule
	StateConfirmDelete
)
