package backups

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/julianstephens/daypad/internal/cli"
	"github.com/julianstephens/daypad/internal/constants"
)

// BackupCmd groups the sqlite backup commands.
type BackupCmd struct {
	Create  BackupCreateCmd  `cmd:"" help:"Create a backup now."`
	List    BackupListCmd    `cmd:"" help:"List available backups."`
	Restore BackupRestoreCmd `cmd:"" help:"Restore the database from a backup."`
}

type BackupCreateCmd struct{}

func (c *BackupCreateCmd) Run(ctx *cli.Context) error {
	mgr, err := ctx.BackupManager()
	if err != nil {
		return err
	}
	backupPath, err := mgr.CreateBackup(context.Background())
	if err != nil {
		return fmt.Errorf("backup failed: %w", err)
	}

	ctx.Printf("✓ Backup created: %s\n", filepath.Base(backupPath))
	return nil
}

type BackupListCmd struct{}

func (c *BackupListCmd) Run(ctx *cli.Context) error {
	mgr, err := ctx.BackupManager()
	if err != nil {
		return err
	}
	backups, err := mgr.ListBackups()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}

	if len(backups) == 0 {
		ctx.Println("No backups found.")
		ctx.Printf("Backups are stored in: %s\n", mgr.GetBackupDir())
		return nil
	}

	ctx.Printf("Available backups (%d total, keeping most recent %d):\n\n", len(backups), constants.MaxBackups)
	for _, b := range backups {
		sizeKB := float64(b.Size) / 1024.0
		timestamp := b.Timestamp.Format("2006-01-02 15:04")
		ctx.Printf("  %s  %s  (%.1f KB)\n", timestamp, filepath.Base(b.Path), sizeKB)
	}
	ctx.Printf("\nBackup directory: %s\n", mgr.GetBackupDir())

	return nil
}

type BackupRestoreCmd struct {
	BackupFile string `arg:"" help:"Path or filename of the backup to restore."`
	Yes        bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *BackupRestoreCmd) Run(ctx *cli.Context) error {
	mgr, err := ctx.BackupManager()
	if err != nil {
		return err
	}

	backupPath, err := c.resolvePath(mgr.GetBackupDir())
	if err != nil {
		return err
	}

	ctx.Println("⚠️  WARNING: This will replace your current database with the backup.")
	ctx.Println("⚠️  IMPORTANT: Close any running daypad TUI before restoring.")
	ctx.Println("A backup of your current database will be created before restoring.")
	ctx.Printf("\nRestore from: %s\n", backupPath)

	if !c.Yes {
		ok, err := ctx.Confirm("Continue?")
		if err != nil {
			return err
		}
		if !ok {
			ctx.Println("Restore cancelled.")
			return nil
		}
	}

	// release our own handle before the file is swapped
	if err := ctx.Store.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to close database connection: %v\n", err)
	}

	safety, err := mgr.RestoreBackup(context.Background(), backupPath)
	if err != nil {
		return fmt.Errorf("restore failed: %w", err)
	}

	ctx.Println("✓ Database restored successfully!")
	if safety != "" {
		ctx.Printf("  Previous database saved as %s\n", filepath.Base(safety))
	}
	return nil
}

// resolvePath accepts an absolute path, a path relative to the working
// directory, or a bare file name inside the backup directory.
func (c *BackupRestoreCmd) resolvePath(backupDir string) (string, error) {
	p := c.BackupFile
	if filepath.IsAbs(p) {
		if _, err := os.Stat(p); err != nil {
			return "", fmt.Errorf("backup file not found: %s", p)
		}
		return p, nil
	}
	if _, err := os.Stat(p); err == nil {
		abs, err := filepath.Abs(p)
		if err != nil {
			return "", fmt.Errorf("failed to resolve backup path: %w", err)
		}
		return abs, nil
	}
	candidate := filepath.Join(backupDir, p)
	if _, err := os.Stat(candidate); err == nil {
		return candidate, nil
	}
	return "", fmt.Errorf("backup file not found: tried current directory and %s", backupDir)
}
