package system

import (
	"fmt"
	"os"

	"github.com/julianstephens/habitdash/internal/cli"
	apperrors "github.com/julianstephens/habitdash/internal/errors"
	"github.com/julianstephens/habitdash/internal/keyring"
	"github.com/julianstephens/habitdash/internal/logger"
	"github.com/julianstephens/habitdash/internal/notifier"
	"github.com/julianstephens/habitdash/internal/storage"
)

type DoctorCmd struct{}

type diagnostics struct {
	ctx      *cli.Context
	hasError bool
}

func (d *diagnostics) pass(name, detail string) {
	if detail != "" {
		d.ctx.Printf("✓ %s: OK (%s)\n", name, detail)
		return
	}
	d.ctx.Printf("✓ %s: OK\n", name)
}

func (d *diagnostics) fail(name string, err error) {
	d.hasError = true
	d.ctx.Printf("❌ %s: FAIL\n", name)
	d.ctx.Printf("   Error: %v\n", err)
	if hint := apperrors.Hint(err); hint != "" {
		d.ctx.Printf("   Hint: %s\n", hint)
	}
}

func (d *diagnostics) warn(name string, msg string) {
	d.ctx.Printf("⚠ %s: WARNING\n", name)
	d.ctx.Printf("   %s\n", msg)
}

func (d *diagnostics) skip(name, reason string) {
	d.ctx.Printf("⊘ %s: SKIPPED (%s)\n", name, reason)
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	ctx.Println("Running diagnostics...")
	ctx.Println()

	d := &diagnostics{ctx: ctx}
	bg := ctx.Background()

	// Check 1: config file
	if _, err := os.Stat(ctx.Config.Path); err != nil {
		d.warn("Config file", fmt.Sprintf("%s not found, using defaults. Run 'habitdash init' to create it.", ctx.Config.Path))
	} else {
		d.pass("Config file", ctx.Config.Path)
	}

	// Check 2: backend habit list (critical)
	apiReachable := false
	if err := ctx.Store.FetchHabits(bg); err != nil {
		d.fail("Backend API", err)
	} else {
		apiReachable = true
		d.pass("Backend API", fmt.Sprintf("%s, %d habits", ctx.Store.BaseURL(), len(ctx.Store.Snapshot().Habits)))
	}

	// Check 3: analytics (secondary)
	if apiReachable {
		if err := ctx.Store.FetchAnalytics(bg); err != nil {
			d.warn("Analytics", fmt.Sprintf("Analytics are unavailable and will show as no data: %v", err))
		} else {
			d.pass("Analytics", "")
		}
	} else {
		d.skip("Analytics", "backend not reachable")
	}

	// Check 4: preferences store
	prefsReachable := false
	if err := ctx.Prefs.Load(); err != nil {
		d.fail("Preferences", err)
	} else {
		prefsReachable = true
		d.pass("Preferences", ctx.Prefs.GetConfigPath())
	}

	// Check 5: schema version
	if prefsReachable {
		status, err := ctx.Prefs.SchemaStatus()
		switch {
		case err != nil:
			d.fail("Schema version", err)
		case status.Pending():
			d.fail("Schema version", fmt.Errorf("version %d of %d, run 'habitdash migrate'", status.Current, status.Latest))
		default:
			d.pass("Schema version", fmt.Sprintf("version %d", status.Current))
		}
	} else {
		d.skip("Schema version", "preferences not reachable")
	}

	// Check 6: keyring, only relevant for PostgreSQL preferences
	location := ctx.Config.Preferences
	if location == storage.LocationKeyring || storage.IsPostgres(location) {
		if keyring.IsAvailable() {
			d.pass("OS keyring", "")
		} else {
			d.warn("OS keyring", "The OS keyring is not available; set HABITDASH_DB_CONNECTION instead.")
		}
	} else {
		d.skip("OS keyring", "SQLite preferences")
	}

	// Check 7: tray listener, only when forwarding is enabled
	if prefsReachable && ctx.Settings().TrayNotifications {
		if err := notifier.Check(); err != nil {
			d.warn("Tray listener", fmt.Sprintf("Notifications will only be printed: %v", err))
		} else {
			d.pass("Tray listener", "")
		}
	} else {
		d.skip("Tray listener", "tray notifications disabled")
	}

	// Check 8: log file
	if path := logger.Path(); path != "" {
		d.pass("Log file", path)
	} else {
		d.warn("Log file", "File logging is not initialized.")
	}

	ctx.Println()
	if d.hasError {
		ctx.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	ctx.Println("All diagnostics passed!")
	return nil
}
