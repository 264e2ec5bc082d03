package system

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/daypad/internal/cli"
	"github.com/julianstephens/daypad/internal/constants"
	"github.com/julianstephens/daypad/internal/migration"
	"github.com/julianstephens/daypad/internal/utils"
	"github.com/julianstephens/daypad/internal/validation"
)

// migrationStatuser is implemented by the SQL backends.
type migrationStatuser interface {
	MigrationStatus() (migration.Status, error)
}

// errSkipped marks a check that does not apply to the current backend.
var errSkipped = errors.New("not applicable")

type DoctorCmd struct{}

type check struct {
	name     string
	needsDB  bool
	warnOnly bool
	run      func(*cli.Context) error
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Println("Running diagnostics...")
	ctx.Println()

	checks := []check{
		{name: "Schema version", needsDB: true, run: checkSchemaVersion},
		{name: "Migrations complete", needsDB: true, run: checkMigrationsComplete},
		{name: "Backups present", warnOnly: true, run: checkBackupsPresent},
		{name: "Data validation", needsDB: true, run: checkValidation},
		{name: "Clock/timezone", run: checkClockTimezone},
		{name: "Keyring", warnOnly: true, run: checkKeyring},
	}

	hasError := false
	dbReachable := true
	if err := checkDBReachable(ctx); err != nil {
		ctx.Printf("❌ Storage reachable: FAIL\n")
		ctx.Printf("   Error: %v\n", err)
		hasError = true
		dbReachable = false
	} else {
		ctx.Printf("✓ Storage reachable: OK\n")
	}

	for _, c := range checks {
		if c.needsDB && !dbReachable {
			ctx.Printf("⊘ %s: SKIPPED (storage not reachable)\n", c.name)
			continue
		}
		err := c.run(ctx)
		switch {
		case err == nil:
			ctx.Printf("✓ %s: OK\n", c.name)
		case errors.Is(err, errSkipped):
			ctx.Printf("⊘ %s: SKIPPED (%s backend)\n", c.name, ctx.Settings().Storage.Backend)
		case c.warnOnly:
			ctx.Printf("⚠ %s: WARNING\n", c.name)
			ctx.Printf("   %v\n", err)
		default:
			ctx.Printf("❌ %s: FAIL\n", c.name)
			ctx.Printf("   Error: %v\n", err)
			hasError = true
		}
	}

	ctx.Println()
	if hasError {
		ctx.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	ctx.Println("All diagnostics passed!")
	return nil
}

func checkDBReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load storage: %w", err)
	}
	if _, err := ctx.Store.ListDates(context.Background()); err != nil {
		return fmt.Errorf("failed to query storage: %w", err)
	}
	return nil
}

func migrationStatus(ctx *cli.Context) (migration.Status, error) {
	ms, ok := ctx.Store.(migrationStatuser)
	if !ok {
		return migration.Status{}, errSkipped
	}
	return ms.MigrationStatus()
}

func checkSchemaVersion(ctx *cli.Context) error {
	status, err := migrationStatus(ctx)
	if err != nil {
		return err
	}
	if status.Current > status.Latest {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", status.Current, status.Latest)
	}
	return nil
}

func checkMigrationsComplete(ctx *cli.Context) error {
	status, err := migrationStatus(ctx)
	if err != nil {
		return err
	}
	if len(status.Pending) > 0 {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d (run 'daypad migrate --apply')", status.Current, status.Latest)
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	mgr, err := ctx.BackupManager()
	if errors.Is(err, cli.ErrBackupsUnsupported) {
		return errSkipped
	}
	if err != nil {
		return err
	}
	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with 'daypad backup create'")
	}
	return nil
}

func checkValidation(ctx *cli.Context) error {
	result, err := validation.New().ValidateStore(context.Background(), ctx.Store)
	if err != nil {
		return err
	}
	if result.HasConflicts() {
		return fmt.Errorf("%d conflict(s) found (run 'daypad validate' for details)", len(result.Conflicts))
	}
	return nil
}

func checkClockTimezone(ctx *cli.Context) error {
	now := time.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	if !utils.ValidateTimezone(ctx.Settings().Timezone) {
		return fmt.Errorf("configured timezone %q is not recognised", ctx.Settings().Timezone)
	}
	return nil
}

func checkKeyring(ctx *cli.Context) error {
	if ctx.Settings().Storage.Backend != constants.BackendPostgres {
		return errSkipped
	}
	if !ctx.Keyring().Status().Available {
		return fmt.Errorf("OS keyring unavailable; set %s instead", constants.EnvDBConnection)
	}
	return nil
}
