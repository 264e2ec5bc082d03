package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/julianstephens/daypad/internal/backup"
	"github.com/julianstephens/daypad/internal/config"
	"github.com/julianstephens/daypad/internal/constants"
	"github.com/julianstephens/daypad/internal/keyring"
	"github.com/julianstephens/daypad/internal/logger"
	"github.com/julianstephens/daypad/internal/models"
	"github.com/julianstephens/daypad/internal/planner"
	"github.com/julianstephens/daypad/internal/storage"
	"github.com/julianstephens/daypad/internal/utils"
)

// ErrBackupsUnsupported is returned by backup commands on non-sqlite backends.
var ErrBackupsUnsupported = errors.New("backups are only supported for the sqlite backend")

// Context is handed to every command's Run method.
type Context struct {
	Config     *config.Config
	ConfigPath string
	Store      storage.Provider
	Vault      keyring.Vault

	Out io.Writer
	In  io.Reader
	Now func() time.Time
}

// Settings returns the loaded configuration, or the defaults.
func (c *Context) Settings() *config.Config {
	if c.Config == nil {
		c.Config = config.Default()
	}
	return c.Config
}

// Keyring returns the configured vault, or the default service slot.
func (c *Context) Keyring() keyring.Vault {
	if c.Vault.Service == "" {
		return keyring.Default()
	}
	return c.Vault
}

func (c *Context) Stdout() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

func (c *Context) Stdin() io.Reader {
	if c.In == nil {
		return os.Stdin
	}
	return c.In
}

func (c *Context) Printf(format string, args ...any) {
	fmt.Fprintf(c.Stdout(), format, args...)
}

func (c *Context) Println(args ...any) {
	fmt.Fprintln(c.Stdout(), args...)
}

func (c *Context) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now()
}

// Today returns the current date key in the configured timezone.
func (c *Context) Today() string {
	loc, err := utils.LoadLocation(c.Settings().Timezone)
	if err != nil {
		logger.Warn("falling back to local time", "timezone", c.Settings().Timezone, "error", err)
		loc = time.Local
	}
	return utils.FormatDateKey(c.now().In(loc))
}

// ResolveDate accepts YYYY-MM-DD, "today", "tomorrow", "yesterday" or "".
func (c *Context) ResolveDate(s string) (string, error) {
	return utils.ResolveDate(c.Today(), s)
}

// NewSession builds a planner session on the configured store.
func (c *Context) NewSession(opts planner.Options) *planner.Session {
	opts.Store = c.Store
	if opts.NotesDelay == 0 {
		opts.NotesDelay = c.Settings().NotesDelay()
	}
	return planner.NewSession(opts)
}

// OpenDay opens date in a fresh session. A load failure is returned rather
// than falling back to an empty day, since a CLI write would clobber it.
func (c *Context) OpenDay(ctx context.Context, date string) (*planner.Session, error) {
	s := c.NewSession(planner.Options{})
	if err := s.Open(ctx, date); err != nil {
		return nil, err
	}
	return s, nil
}

// TaskIndex converts a 1-based task number into an index into rec.Todos.
func TaskIndex(n int, rec models.DayRecord) (int, error) {
	if n < 1 || n > len(rec.Todos) {
		if len(rec.Todos) == 0 {
			return 0, fmt.Errorf("no tasks on %s", rec.Date)
		}
		return 0, fmt.Errorf("task %d does not exist on %s (have 1-%d)", n, rec.Date, len(rec.Todos))
	}
	return n - 1, nil
}

// BackupManager returns the backup manager for the sqlite database.
func (c *Context) BackupManager() (*backup.Manager, error) {
	if c.Settings().Storage.Backend != constants.BackendSQLite {
		return nil, ErrBackupsUnsupported
	}
	return backup.NewManager(c.Store.GetConfigPath()), nil
}

// PerformAutomaticBackup makes a daily backup when the backend supports it.
// Failures are logged and never interrupt the caller.
func (c *Context) PerformAutomaticBackup(ctx context.Context) {
	mgr, err := c.BackupManager()
	if err != nil {
		return
	}
	if _, _, err := mgr.EnsureRecent(ctx, 24*time.Hour); err != nil {
		logger.Warn("automatic backup failed", "error", err)
	}
}

// Confirm asks a yes/no question on the context's input.
func (c *Context) Confirm(prompt string) (bool, error) {
	c.Printf("%s [y/N]: ", prompt)
	line, err := bufio.NewReader(c.Stdin()).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}
