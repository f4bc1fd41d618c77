package system

import (
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/habitdash/internal/backup"
	"github.com/julianstephens/habitdash/internal/cli"
	"github.com/julianstephens/habitdash/internal/storage/sqlite"
)

type BackupCmd struct {
	Create  BackupCreateCmd  `cmd:"" help:"Snapshot the preferences database." default:"1"`
	List    BackupListCmd    `cmd:"" help:"List preference snapshots."`
	Restore BackupRestoreCmd `cmd:"" help:"Replace preferences with a snapshot."`
}

func backupManager(ctx *cli.Context) (*backup.Manager, error) {
	if _, ok := ctx.Prefs.(*sqlite.Store); !ok {
		return nil, fmt.Errorf("backups are only available for SQLite preferences")
	}
	return backup.NewManager(ctx.Prefs.GetConfigPath()), nil
}

type BackupCreateCmd struct{}

func (c *BackupCreateCmd) Run(ctx *cli.Context) error {
	mgr, err := backupManager(ctx)
	if err != nil {
		return err
	}
	info, err := mgr.Create()
	if err != nil {
		return err
	}
	ctx.Printf("✓ Backup created: %s\n", info.Name())
	return nil
}

type BackupListCmd struct{}

func (c *BackupListCmd) Run(ctx *cli.Context) error {
	mgr, err := backupManager(ctx)
	if err != nil {
		return err
	}
	backups, err := mgr.List()
	if err != nil {
		return err
	}

	if len(backups) == 0 {
		ctx.Println("No backups found.")
		ctx.Printf("Backup directory: %s\n", mgr.Dir())
		return nil
	}

	ctx.Printf("Available backups (%d total, keeping most recent %d):\n\n", len(backups), backup.MaxBackups)
	for _, b := range backups {
		ctx.Printf("  %s  %s  (%.1f KB)\n", b.CreatedAt.Format("2006-01-02 15:04:05"), b.Name(), float64(b.Size)/1024)
	}
	ctx.Printf("\nBackup directory: %s\n", mgr.Dir())
	return nil
}

type BackupRestoreCmd struct {
	Backup string `arg:"" help:"Backup file name or path."`
	Yes    bool   `short:"y" help:"Restore without asking for confirmation."`
}

func (c *BackupRestoreCmd) Run(ctx *cli.Context) error {
	mgr, err := backupManager(ctx)
	if err != nil {
		return err
	}
	path, err := mgr.Resolve(c.Backup)
	if err != nil {
		return err
	}

	if !c.Yes {
		confirmed := false
		err := huh.NewConfirm().
			Title("Replace current preferences with " + c.Backup + "?").
			Description("Settings and card order are overwritten. A snapshot of the current preferences is taken first.").
			Value(&confirmed).
			Run()
		if err != nil {
			return err
		}
		if !confirmed {
			ctx.Println("Restore cancelled.")
			return nil
		}
	}

	if err := ctx.Prefs.Close(); err != nil {
		return fmt.Errorf("failed to close preferences: %w", err)
	}
	safety, err := mgr.Restore(path)
	if err != nil {
		return err
	}
	if err := ctx.Prefs.Load(); err != nil {
		return fmt.Errorf("restored preferences failed to load: %w", err)
	}

	if safety.Path != "" {
		ctx.Printf("Current preferences saved to %s\n", safety.Name())
	}
	ctx.Printf("✓ Preferences restored from %s\n", c.Backup)
	return nil
}
