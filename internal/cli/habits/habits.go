package habits

import (
	"fmt"

	"github.com/julianstephens/habitdash/internal/cli"
	"github.com/julianstephens/habitdash/internal/layout"
	"github.com/julianstephens/habitdash/internal/models"
	"github.com/julianstephens/habitdash/internal/report"
)

type HabitCmd struct {
	List       HabitListCmd       `cmd:"" help:"List habits in card order." default:"1"`
	Edit       HabitEditCmd       `cmd:"" help:"Edit habit name, emoji or privacy."`
	Hide       HabitHideCmd       `cmd:"" help:"Hide a habit from the dashboard."`
	Restore    HabitRestoreCmd    `cmd:"" help:"Restore a hidden habit."`
	Hidden     HabitHiddenCmd     `cmd:"" help:"List hidden habits."`
	Refresh    HabitRefreshCmd    `cmd:"" help:"Ask the backend to recalculate streaks."`
	Move       HabitMoveCmd       `cmd:"" help:"Move a habit card to a new position."`
	ResetOrder HabitResetOrderCmd `cmd:"" name:"reset-order" help:"Drop local card order and use the server order."`
}

type HabitListCmd struct {
	Format string `help:"Output format." enum:"table,json,yaml" default:"table" short:"f"`
	Reveal bool   `help:"Show personal habit names."`
}

func (c *HabitListCmd) Run(ctx *cli.Context) error {
	format, err := report.ParseFormat(c.Format)
	if err != nil {
		return err
	}
	habits, err := ctx.OrderedHabits()
	if err != nil {
		return err
	}
	reveal := c.Reveal || ctx.Settings().RevealPersonal
	return report.WriteHabits(ctx.Stdout(), report.HabitRows(habits, reveal), format)
}

type HabitEditCmd struct {
	Habit    string  `arg:"" help:"Habit id or name."`
	Name     *string `help:"New name."`
	Emoji    *string `help:"New emoji (at most 2 characters)."`
	Personal *bool   `help:"Mark the habit personal (redacted by default)."`
}

func (c *HabitEditCmd) Run(ctx *cli.Context) error {
	update := models.HabitUpdate{Name: c.Name, Emoji: c.Emoji, IsPersonal: c.Personal}
	if err := update.Validate(); err != nil {
		return err
	}
	habit, err := findActive(ctx, c.Habit)
	if err != nil {
		return err
	}
	if err := ctx.Store.UpdateHabit(ctx.Background(), habit.ID, update); err != nil {
		return fmt.Errorf("failed to update habit: %w", err)
	}
	ctx.Printf("Updated habit: %s\n", habit.ID)
	return nil
}

type HabitHideCmd struct {
	Habit string `arg:"" help:"Habit id or name."`
}

func (c *HabitHideCmd) Run(ctx *cli.Context) error {
	habit, err := findActive(ctx, c.Habit)
	if err != nil {
		return err
	}
	if err := ctx.Store.HideHabit(ctx.Background(), habit.ID); err != nil {
		return fmt.Errorf("failed to hide habit: %w", err)
	}
	ctx.Printf("Hid habit: %s %s\n", habit.Emoji, habit.Name)
	return nil
}

type HabitRestoreCmd struct {
	Habit string `arg:"" help:"Hidden habit id or name."`
}

func (c *HabitRestoreCmd) Run(ctx *cli.Context) error {
	hidden, err := ctx.Store.HiddenHabits(ctx.Background())
	if err != nil {
		return fmt.Errorf("failed to list hidden habits: %w", err)
	}
	habit, err := cli.FindHidden(hidden, c.Habit)
	if err != nil {
		return err
	}
	if err := ctx.Store.RestoreHabit(ctx.Background(), habit.ID); err != nil {
		return fmt.Errorf("failed to restore habit: %w", err)
	}
	ctx.Printf("Restored habit: %s %s\n", habit.Emoji, habit.Name)
	return nil
}

type HabitHiddenCmd struct {
	Format string `help:"Output format." enum:"table,json,yaml" default:"table" short:"f"`
}

func (c *HabitHiddenCmd) Run(ctx *cli.Context) error {
	format, err := report.ParseFormat(c.Format)
	if err != nil {
		return err
	}
	hidden, err := ctx.Store.HiddenHabits(ctx.Background())
	if err != nil {
		return fmt.Errorf("failed to list hidden habits: %w", err)
	}
	return report.WriteHidden(ctx.Stdout(), hidden, format)
}

type HabitRefreshCmd struct{}

func (c *HabitRefreshCmd) Run(ctx *cli.Context) error {
	result, err := ctx.Store.RefreshHabits(ctx.Background())
	if err != nil {
		return err
	}
	if result.Message != "" {
		ctx.Printf("%s (%d habits)\n", result.Message, result.Count)
	} else {
		ctx.Println("Streaks recalculated")
	}
	return nil
}

type HabitMoveCmd struct {
	Habit    string `arg:"" help:"Habit id or name."`
	Position int    `arg:"" help:"New 1-based card position."`
}

func (c *HabitMoveCmd) Run(ctx *cli.Context) error {
	habits, err := ctx.OrderedHabits()
	if err != nil {
		return err
	}
	if c.Position < 1 || c.Position > len(habits) {
		return fmt.Errorf("position must be between 1 and %d", len(habits))
	}
	habit, from, err := cli.FindHabit(habits, c.Habit)
	if err != nil {
		return err
	}
	ids := layout.Move(layout.IDs(habits), from, c.Position-1)
	if err := ctx.Prefs.SaveCardOrder(ids); err != nil {
		return fmt.Errorf("failed to save card order: %w", err)
	}
	ctx.Printf("Moved %s to position %d\n", habit.Name, c.Position)
	return nil
}

type HabitResetOrderCmd struct{}

func (c *HabitResetOrderCmd) Run(ctx *cli.Context) error {
	if err := ctx.Prefs.ClearCardOrder(); err != nil {
		return fmt.Errorf("failed to clear card order: %w", err)
	}
	ctx.Println("Card order reset to server order")
	return nil
}

func findActive(ctx *cli.Context, ref string) (models.Habit, error) {
	if err := ctx.Store.FetchHabits(ctx.Background()); err != nil {
		return models.Habit{}, err
	}
	habit, _, err := cli.FindHabit(ctx.Store.Snapshot().Habits, ref)
	return habit, err
}
