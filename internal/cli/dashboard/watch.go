package dashboard

import (
	"errors"
	"time"

	"github.com/julianstephens/habitdash/internal/cli"
	"github.com/julianstephens/habitdash/internal/logger"
	"github.com/julianstephens/habitdash/internal/models"
	"github.com/julianstephens/habitdash/internal/notifier"
)

type WatchCmd struct {
	Interval time.Duration `help:"Poll interval. Defaults to the refresh_interval_sec setting."`
	Count    int           `help:"Stop after this many polls. 0 runs until interrupted."`
	NoTray   bool          `help:"Do not forward notifications to the tray listener."`
}

func (c *WatchCmd) Run(ctx *cli.Context) error {
	settings := ctx.Settings()
	interval := c.Interval
	if interval <= 0 {
		interval = time.Duration(settings.RefreshIntervalSec) * time.Second
	}
	logger.Info("Watching habits", "interval", interval, "notifications", settings.NotificationsEnabled)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	bg := ctx.Background()
	for polls := 0; ; {
		c.poll(ctx, settings)
		polls++
		if c.Count > 0 && polls >= c.Count {
			return nil
		}
		select {
		case <-bg.Done():
			return nil
		case <-ticker.C:
		}
	}
}

func (c *WatchCmd) poll(ctx *cli.Context, settings models.Settings) {
	now := ctx.Clock()
	if err := ctx.Store.FetchHabits(ctx.Background()); err != nil {
		ctx.Printf("[%s] ⚠ %v\n", now.Format("15:04"), err)
		return
	}
	ctx.Center.Expire(now)
	if !settings.NotificationsEnabled {
		return
	}

	for _, note := range ctx.Center.Evaluate(ctx.Store.Snapshot().Habits, now) {
		ctx.Printf("[%s] %s\n", now.Format("15:04"), note.Text())
		if !settings.TrayNotifications || c.NoTray || ctx.Notifier == nil {
			continue
		}
		if err := ctx.Notifier.Notify(ctx.Background(), note); err != nil {
			if errors.Is(err, notifier.ErrTrayNotRunning) {
				logger.Debug("Tray listener not running", "notification", note.ID)
			} else {
				logger.Warn("Failed to forward notification", "notification", note.ID, "error", err)
			}
		}
	}
}
