package dashboard

import (
	"github.com/julianstephens/habitdash/internal/cli"
	"github.com/julianstephens/habitdash/internal/layout"
	"github.com/julianstephens/habitdash/internal/report"
)

type SummaryCmd struct {
	Format string `help:"Output format." enum:"table,json,yaml,markdown" default:"table" short:"f"`
	Reveal bool   `help:"Show personal habit names."`
	Width  int    `help:"Wrap width for markdown output." default:"80"`
}

func (c *SummaryCmd) Run(ctx *cli.Context) error {
	format, err := report.ParseFormat(c.Format)
	if err != nil {
		return err
	}

	settings := ctx.Settings()
	bg := ctx.Background()
	if err := ctx.Store.FetchDashboard(bg); err != nil {
		return err
	}
	ctx.Store.LoadProductivity(bg, settings.ChartDays)

	snap := ctx.Store.Snapshot()
	snap.Habits = layout.Sort(snap.Habits, ctx.CardOrder())
	summary := report.NewSummary(snap, ctx.Store.BaseURL(), c.Reveal || settings.RevealPersonal, ctx.Clock())
	return report.WriteSummary(ctx.Stdout(), summary, format, c.Width)
}
