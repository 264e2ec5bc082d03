package system

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/daypad/internal/cli"
	"github.com/julianstephens/daypad/internal/config"
	"github.com/julianstephens/daypad/internal/constants"
	"github.com/julianstephens/daypad/internal/storage"
)

type InitCmd struct {
	Force       bool   `help:"Force reset by deleting the existing store before initialization."`
	Source      string `help:"Store to copy data from: a sqlite file, a diskv directory or a PostgreSQL URL."`
	WriteConfig bool   `help:"Write the effective configuration to the config file." name:"write-config"`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	backend := ctx.Settings().Storage.Backend
	location := ctx.Store.GetConfigPath()

	if c.Force {
		if backend == constants.BackendPostgres {
			return fmt.Errorf("--force is not supported for the postgres backend; drop the schema manually")
		}
		if c.Source != "" && samePath(c.Source, location) {
			return fmt.Errorf("cannot use --force when source and destination are the same: %s", location)
		}
		if err := c.removeExisting(ctx, backend, location); err != nil {
			return err
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	ctx.Printf("Initialized daypad %s storage at: %s\n", backend, location)

	if c.Source != "" {
		ctx.Printf("Migrating data from: %s\n", c.Source)
		n, err := c.copyFrom(ctx, c.Source)
		if err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		ctx.Printf("    Migrated %d days\n", n)
		ctx.Println("Migration completed successfully!")
	}

	if c.WriteConfig {
		path := ctx.ConfigPath
		if path == "" {
			path = constants.DefaultConfigFile
		}
		if err := config.Save(path, ctx.Settings()); err != nil {
			return err
		}
		ctx.Printf("Wrote configuration to: %s\n", path)
	}
	return nil
}

func samePath(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	return errA == nil && errB == nil && absA == absB
}

func (c *InitCmd) removeExisting(ctx *cli.Context, backend, location string) error {
	info, err := os.Stat(location)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to access existing store: %w", err)
	}

	// close first to release file locks
	if err := ctx.Store.Close(); err != nil {
		return fmt.Errorf("failed to close existing store: %w", err)
	}

	if backend == constants.BackendDiskv && info.IsDir() {
		err = os.RemoveAll(location)
	} else {
		err = os.Remove(location)
		for _, suffix := range []string{"-wal", "-shm"} {
			_ = os.Remove(location + suffix)
		}
	}
	if err != nil {
		return fmt.Errorf("failed to delete existing store: %w", err)
	}
	ctx.Printf("Deleted existing store at: %s\n", location)
	return nil
}

func (c *InitCmd) copyFrom(ctx *cli.Context, source string) (int, error) {
	info, statErr := os.Stat(source)
	src, err := cli.ProviderFor(source, statErr == nil && info.IsDir())
	if err != nil {
		return 0, err
	}
	if err := src.Load(); err != nil {
		return 0, fmt.Errorf("failed to load source store: %w", err)
	}
	defer src.Close()

	return storage.Copy(context.Background(), src, ctx.Store)
}
