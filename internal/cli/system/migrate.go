package system

import (
	"fmt"

	"github.com/julianstephens/habitdash/internal/backup"
	"github.com/julianstephens/habitdash/internal/cli"
	"github.com/julianstephens/habitdash/internal/storage"
	"github.com/julianstephens/habitdash/internal/storage/sqlite"
)

type MigrateCmd struct{}

func (c *MigrateCmd) Run(ctx *cli.Context) error {
	if err := ctx.Prefs.Load(); err != nil {
		return fmt.Errorf("failed to load preferences: %w", err)
	}

	migrator, ok := ctx.Prefs.(storage.Migrator)
	if !ok {
		return fmt.Errorf("preferences store at %s does not support migrations", ctx.Prefs.GetConfigPath())
	}

	if err := backupBeforeMigrate(ctx); err != nil {
		return err
	}

	count, err := migrator.Migrate(func(msg string) {
		ctx.Println(msg)
	})
	if err != nil {
		return fmt.Errorf("migration failed: %w", err)
	}

	if count == 0 {
		ctx.Println("No migrations to apply. Preferences are up to date.")
	} else {
		ctx.Printf("\nSuccessfully applied %d migration(s).\n", count)
	}
	return nil
}

// backupBeforeMigrate snapshots SQLite preferences when migrations are pending
func backupBeforeMigrate(ctx *cli.Context) error {
	st, ok := ctx.Prefs.(*sqlite.Store)
	if !ok {
		return nil
	}
	status, err := st.SchemaStatus()
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if !status.Pending() {
		return nil
	}

	info, err := backup.NewManager(st.GetConfigPath()).Create()
	if err != nil {
		return fmt.Errorf("failed to back up preferences before migrating: %w", err)
	}
	ctx.Printf("Backed up preferences to %s\n", info.Path)
	return nil
}
