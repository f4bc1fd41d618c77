package settings

import (
	"fmt"

	"github.com/julianstephens/habitdash/internal/cli"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	RefreshInterval      *int  `help:"Seconds between habit refreshes in the TUI and watch."`
	NotificationsEnabled *bool `help:"Enable or disable streak notifications."`
	TrayNotifications    *bool `help:"Forward notifications to the desktop tray listener."`
	ChartDays            *int  `help:"Default productivity chart range (7 or 30)."`
	RevealPersonal       *bool `help:"Show personal habit names without toggling."`
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Prefs.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	if c.List {
		ctx.Println("Current Settings:")
		ctx.Printf("  Refresh Interval:      %ds\n", settings.RefreshIntervalSec)
		ctx.Printf("  Chart Days:            %d\n", settings.ChartDays)
		ctx.Printf("  Reveal Personal:       %v\n", settings.RevealPersonal)
		ctx.Println("\nNotification Settings:")
		ctx.Printf("  Notifications Enabled: %v\n", settings.NotificationsEnabled)
		ctx.Printf("  Tray Notifications:    %v\n", settings.TrayNotifications)
		return nil
	}

	updated := false
	if c.RefreshInterval != nil {
		if *c.RefreshInterval < 10 {
			return fmt.Errorf("refresh interval must be at least 10 seconds")
		}
		settings.RefreshIntervalSec = *c.RefreshInterval
		updated = true
	}
	if c.NotificationsEnabled != nil {
		settings.NotificationsEnabled = *c.NotificationsEnabled
		updated = true
	}
	if c.TrayNotifications != nil {
		settings.TrayNotifications = *c.TrayNotifications
		updated = true
	}
	if c.ChartDays != nil {
		if *c.ChartDays != 7 && *c.ChartDays != 30 {
			return fmt.Errorf("chart days must be 7 or 30")
		}
		settings.ChartDays = *c.ChartDays
		updated = true
	}
	if c.RevealPersonal != nil {
		settings.RevealPersonal = *c.RevealPersonal
		updated = true
	}

	if updated {
		if err := ctx.Prefs.SaveSettings(settings); err != nil {
			return fmt.Errorf("failed to save settings: %w", err)
		}
		ctx.Println("Settings updated successfully.")
	} else {
		ctx.Println("No changes specified. Use --list to view settings or flags to update them.")
	}

	return nil
}
