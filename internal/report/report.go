// Package report renders dashboard snapshots for the command line.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/julianstephens/habitdash/internal/metrics"
	"github.com/julianstephens/habitdash/internal/models"
	"github.com/julianstephens/habitdash/internal/store"
	"gopkg.in/yaml.v3"
)

// Format selects how list and summary output is written
type Format string

const (
	FormatTable    Format = "table"
	FormatJSON     Format = "json"
	FormatYAML     Format = "yaml"
	FormatMarkdown Format = "markdown"
)

// ParseFormat accepts the names used by the --format flag
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "", FormatTable:
		return FormatTable, nil
	case FormatJSON, FormatYAML, FormatMarkdown:
		return f, nil
	}
	return "", fmt.Errorf("unknown format %q (expected table, json, yaml or markdown)", s)
}

// HabitRow is one habit as printed by list and summary commands
type HabitRow struct {
	ID             string `json:"id" yaml:"id"`
	Emoji          string `json:"emoji" yaml:"emoji"`
	Name           string `json:"name" yaml:"name"`
	Personal       bool   `json:"personal" yaml:"personal"`
	CompletedToday bool   `json:"completed_today" yaml:"completed_today"`
	CurrentStreak  int    `json:"current_streak" yaml:"current_streak"`
	BestStreak     int    `json:"best_streak" yaml:"best_streak"`
	Status         string `json:"status" yaml:"status"`
}

// HabitRows converts habits for output, redacting personal names unless reveal is set
func HabitRows(habits []models.Habit, reveal bool) []HabitRow {
	rows := make([]HabitRow, 0, len(habits))
	for _, h := range habits {
		rows = append(rows, HabitRow{
			ID:             h.ID,
			Emoji:          h.Emoji,
			Name:           h.DisplayName(reveal),
			Personal:       h.IsPersonal,
			CompletedToday: h.CompletedToday,
			CurrentStreak:  h.CurrentStreak,
			BestStreak:     h.BestStreak,
			Status:         metrics.StreakStatus(h).String(),
		})
	}
	return rows
}

// KPI is a productivity figure with its formatted change
type KPI struct {
	Label  string `json:"label" yaml:"label"`
	Value  string `json:"value" yaml:"value"`
	Change string `json:"change" yaml:"change"`
	Tone   string `json:"tone" yaml:"tone"`
}

// Summary is the one-shot dashboard report
type Summary struct {
	GeneratedAt time.Time         `json:"generated_at" yaml:"generated_at"`
	APIURL      string            `json:"api_url" yaml:"api_url"`
	Progress    metrics.Progress  `json:"progress" yaml:"progress"`
	Motivation  string            `json:"motivation" yaml:"motivation"`
	Habits      []HabitRow        `json:"habits" yaml:"habits"`
	Analytics   *models.Analytics `json:"analytics,omitempty" yaml:"analytics,omitempty"`
	KPIs        []KPI             `json:"kpis,omitempty" yaml:"kpis,omitempty"`
}

// NewSummary derives a summary from a store snapshot. Missing analytics or
// productivity metrics are left out rather than failing the report.
func NewSummary(snap store.Snapshot, apiURL string, reveal bool, now time.Time) Summary {
	p := metrics.DailyProgress(snap.Habits)
	s := Summary{
		GeneratedAt: now,
		APIURL:      apiURL,
		Progress:    p,
		Motivation:  metrics.MotivationalMessage(p.CompletionRate, now.Hour()),
		Habits:      HabitRows(snap.Habits, reveal),
		Analytics:   snap.Analytics,
	}
	if m := snap.Productivity.Metrics; m != nil {
		s.KPIs = KPIs(*m)
	}
	return s
}

// KPIs builds the three productivity tiles
func KPIs(m models.ProductivityMetrics) []KPI {
	tile := func(label, value string, change float64) KPI {
		c := metrics.FormatChange(change)
		return KPI{Label: label, Value: value, Change: c.Value, Tone: string(c.Tone)}
	}
	return []KPI{
		tile("Avg daily", metrics.FormatTime(m.AvgDailyProductivity), m.AvgDailyProductivityChange),
		tile("Best day", metrics.FormatTime(m.MaxDailyProductivity), m.MaxDailyProductivityChange),
		tile("Total", metrics.FormatHours(m.TotalProductiveHours), m.TotalProductiveHoursChange),
	}
}

// WriteHabits prints habit rows in the requested format
func WriteHabits(w io.Writer, rows []HabitRow, f Format) error {
	switch f {
	case FormatJSON:
		return writeJSON(w, rows)
	case FormatYAML:
		return writeYAML(w, rows)
	case FormatMarkdown:
		return fmt.Errorf("markdown output is only available for summary")
	}
	if len(rows) == 0 {
		_, err := fmt.Fprintln(w, "No habits found")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tHABIT\tTODAY\tSTREAK\tBEST\tSTATUS")
	for _, r := range rows {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\t%s\n",
			r.ID, label(r.Emoji, r.Name), check(r.CompletedToday), r.CurrentStreak, r.BestStreak, r.Status)
	}
	return tw.Flush()
}

// WriteHidden prints soft-hidden habits
func WriteHidden(w io.Writer, hidden []models.HiddenHabit, f Format) error {
	switch f {
	case FormatJSON:
		return writeJSON(w, hidden)
	case FormatYAML:
		return writeYAML(w, hidden)
	case FormatMarkdown:
		return fmt.Errorf("markdown output is only available for summary")
	}
	if len(hidden) == 0 {
		_, err := fmt.Fprintln(w, "No hidden habits")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tHABIT")
	for _, h := range hidden {
		fmt.Fprintf(tw, "%s\t%s\n", h.ID, label(h.Emoji, h.Name))
	}
	return tw.Flush()
}

// WriteSummary prints a summary. Markdown is rendered for a terminal of the given width.
func WriteSummary(w io.Writer, s Summary, f Format, width int) error {
	switch f {
	case FormatJSON:
		return writeJSON(w, s)
	case FormatYAML:
		return writeYAML(w, s)
	case FormatMarkdown:
		out, err := RenderMarkdown(Markdown(s), width)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, out)
		return err
	}

	p := s.Progress
	fmt.Fprintf(w, "Today: %d/%d habits (%s)\n", p.Completed, p.Total, metrics.FormatRate(p.CompletionRate))
	fmt.Fprintf(w, "Active streaks: %d, best streak: %d days\n", p.ActiveStreaks, p.BestStreak)
	if p.PerfectDay {
		fmt.Fprintln(w, "🌟 Perfect day!")
	}
	fmt.Fprintln(w, s.Motivation)
	if len(s.KPIs) > 0 {
		fmt.Fprintln(w)
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		for _, k := range s.KPIs {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", k.Label, k.Value, k.Change)
		}
		if err := tw.Flush(); err != nil {
			return err
		}
	}
	fmt.Fprintln(w)
	return WriteHabits(w, s.Habits, FormatTable)
}

// Markdown renders a summary as a markdown document
func Markdown(s Summary) string {
	var b strings.Builder
	p := s.Progress
	b.WriteString("# Habit summary\n\n")
	fmt.Fprintf(&b, "**%d/%d** habits done today (%s). %s\n\n",
		p.Completed, p.Total, metrics.FormatRate(p.CompletionRate), s.Motivation)
	if p.PerfectDay {
		b.WriteString("> 🌟 Perfect day! Every habit is complete.\n\n")
	}

	if len(s.KPIs) > 0 {
		b.WriteString("## Productivity\n\n| Metric | Value | Change |\n|---|---|---|\n")
		for _, k := range s.KPIs {
			fmt.Fprintf(&b, "| %s | %s | %s |\n", k.Label, k.Value, k.Change)
		}
		b.WriteString("\n")
	}

	b.WriteString("## Habits\n\n")
	if len(s.Habits) == 0 {
		b.WriteString("_No habits yet._\n")
		return b.String()
	}
	b.WriteString("| Habit | Today | Streak | Best | Status |\n|---|---|---|---|---|\n")
	for _, r := range s.Habits {
		fmt.Fprintf(&b, "| %s | %s | %d | %d | %s |\n",
			escapeCell(label(r.Emoji, r.Name)), check(r.CompletedToday), r.CurrentStreak, r.BestStreak, r.Status)
	}
	return b.String()
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}

func label(emoji, name string) string {
	if emoji == "" {
		return name
	}
	return emoji + " " + name
}

func check(done bool) string {
	if done {
		return "✓"
	}
	return "·"
}

func escapeCell(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
