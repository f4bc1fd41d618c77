package system

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/habitdash/internal/cli"
	"github.com/julianstephens/habitdash/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	// in-flight requests are cancelled as soon as the program exits
	runCtx, cancel := context.WithCancel(ctx.Background())
	defer cancel()

	model := tui.NewModel(runCtx, tui.Deps{
		Store:    ctx.Store,
		Prefs:    ctx.Prefs,
		Center:   ctx.Center,
		Notifier: ctx.Notifier,
		Settings: ctx.Settings(),
		Now:      ctx.Now,
	})

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(runCtx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("dashboard exited with an error: %w", err)
	}
	return nil
}
