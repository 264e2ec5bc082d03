package system

import (
	"fmt"

	"github.com/julianstephens/daypad/internal/cli"
)

// MigrateCmd reports schema migration status; --apply runs pending ones.
type MigrateCmd struct {
	Apply bool `help:"Apply pending migrations."`
}

func (c *MigrateCmd) Run(ctx *cli.Context) error {
	ms, ok := ctx.Store.(migrationStatuser)
	if !ok {
		return fmt.Errorf("migrate only supports the sqlite and postgres backends")
	}

	status, err := ms.MigrationStatus()
	if err != nil {
		return fmt.Errorf("failed to read migration status: %w", err)
	}
	ctx.Printf("Schema version: %d (latest %d)\n", status.Current, status.Latest)

	if len(status.Pending) == 0 {
		ctx.Println("No migrations to apply. Database is up to date.")
		return nil
	}
	for _, m := range status.Pending {
		ctx.Printf("  pending: %03d %s\n", m.Version, m.Name)
	}
	if !c.Apply {
		ctx.Println("Run with --apply to apply them.")
		return nil
	}

	// Init applies every pending migration
	if err := ctx.Store.Init(); err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}
	ctx.Printf("\nSuccessfully applied %d migration(s).\n", len(status.Pending))
	return nil
}
