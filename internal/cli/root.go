package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/julianstephens/habitdash/internal/config"
	"github.com/julianstephens/habitdash/internal/layout"
	"github.com/julianstephens/habitdash/internal/logger"
	"github.com/julianstephens/habitdash/internal/models"
	"github.com/julianstephens/habitdash/internal/notifications"
	"github.com/julianstephens/habitdash/internal/storage"
	"github.com/julianstephens/habitdash/internal/store"
)

// Notifier forwards notifications outside the terminal
type Notifier interface {
	Notify(ctx context.Context, note notifications.Notification) error
}

type Context struct {
	Ctx      context.Context
	Config   config.Config
	Prefs    storage.Provider
	Store    *store.Store
	Center   *notifications.Center
	Notifier Notifier
	Out      io.Writer
	Now      func() time.Time
}

// Background returns the command's cancellation context
func (c *Context) Background() context.Context {
	if c.Ctx == nil {
		return context.Background()
	}
	return c.Ctx
}

// Stdout is where commands print their output
func (c *Context) Stdout() io.Writer {
	if c.Out == nil {
		return os.Stdout
	}
	return c.Out
}

func (c *Context) Clock() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}

// Printf writes formatted output to Stdout
func (c *Context) Printf(format string, args ...interface{}) {
	fmt.Fprintf(c.Stdout(), format, args...)
}

// Println writes a line to Stdout
func (c *Context) Println(args ...interface{}) {
	fmt.Fprintln(c.Stdout(), args...)
}

// Settings returns the stored preferences, falling back to defaults when
// they cannot be read
func (c *Context) Settings() models.Settings {
	if c.Prefs == nil {
		return models.DefaultSettings()
	}
	settings, err := c.Prefs.GetSettings()
	if err != nil {
		logger.Warn("Falling back to default settings", "error", err)
		return models.DefaultSettings()
	}
	return settings
}

// CardOrder returns the local card order overrides; read failures are logged
// and treated as no overrides
func (c *Context) CardOrder() map[string]int {
	if c.Prefs == nil {
		return nil
	}
	overrides, err := c.Prefs.GetCardOrder()
	if err != nil {
		logger.Warn("Ignoring card order", "error", err)
		return nil
	}
	return overrides
}

// OrderedHabits fetches the habit list and applies local card order overrides
func (c *Context) OrderedHabits() ([]models.Habit, error) {
	if err := c.Store.FetchHabits(c.Background()); err != nil {
		return nil, err
	}
	return layout.Sort(c.Store.Snapshot().Habits, c.CardOrder()), nil
}

// FindHabit matches ref against habit ids first, then names ignoring case
func FindHabit(habits []models.Habit, ref string) (models.Habit, int, error) {
	for i, h := range habits {
		if h.ID == ref {
			return h, i, nil
		}
	}
	for i, h := range habits {
		if strings.EqualFold(h.Name, ref) {
			return h, i, nil
		}
	}
	return models.Habit{}, -1, fmt.Errorf("habit %q not found", ref)
}

// FindHidden matches ref against hidden habit ids, then names ignoring case
func FindHidden(hidden []models.HiddenHabit, ref string) (models.HiddenHabit, error) {
	for _, h := range hidden {
		if h.ID == ref {
			return h, nil
		}
	}
	for _, h := range hidden {
		if strings.EqualFold(h.Name, ref) {
			return h, nil
		}
	}
	return models.HiddenHabit{}, fmt.Errorf("hidden habit %q not found", ref)
}
