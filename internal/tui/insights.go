package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"github.com/julianstephens/habitdash/internal/constants"
	"github.com/julianstephens/habitdash/internal/metrics"
	"github.com/julianstephens/habitdash/internal/models"
	"github.com/julianstephens/habitdash/internal/report"
)

const noData = "no data"

func (m Model) viewInsights() string {
	snap := m.store.Snapshot()
	sections := []string{m.viewAnalytics(snap.Analytics)}

	p := metrics.DailyProgress(snap.Habits)
	bar := m.progress
	bar.FullColor = string(tierColor(metrics.ProgressTier(p.CompletionRate)))
	sections = append(sections,
		bar.ViewAs(p.CompletionRate/100)+" "+metrics.FormatRate(p.CompletionRate),
		metrics.MotivationalMessage(p.CompletionRate, m.now().Hour()),
		"",
	)

	if !m.insightsReady {
		sections = append(sections, m.spinner.View()+" Loading productivity...")
		return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
	}

	prod := snap.Productivity
	if prod.Metrics == nil {
		sections = append(sections, "Productivity: "+mutedStyle.Render(noData))
	} else {
		tiles := make([]string, 0, 3)
		for _, k := range report.KPIs(*prod.Metrics) {
			tiles = append(tiles, tileStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
				mutedStyle.Render(k.Label),
				titleStyle.Render(k.Value),
				toneStyle(constants.Tone(k.Tone)).Render(k.Change),
			)))
		}
		sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Top, tiles...))
	}

	sections = append(sections, "", titleStyle.Render(fmt.Sprintf("Productivity, last %d days", m.chartDays)))
	if prod.Chart == nil {
		sections = append(sections, mutedStyle.Render(noData))
	} else {
		sections = append(sections, renderChart(prod.Chart.ChartData, m.width))
		if names := prod.Chart.CategoryNames(); len(names) > 0 {
			sections = append(sections, mutedStyle.Render("Categories: "+strings.Join(names, ", ")))
		}
	}
	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m Model) viewAnalytics(a *models.Analytics) string {
	if a == nil {
		return "Analytics: " + mutedStyle.Render(noData)
	}
	perfect := "—"
	if a.PerfectDaysStreak != nil {
		perfect = fmt.Sprintf("%d", *a.PerfectDaysStreak)
	}
	tile := func(label, value string) string {
		return tileStyle.Render(mutedStyle.Render(label) + "\n" + titleStyle.Render(value))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top,
		tile("Completion", metrics.FormatRate(a.CompletionRate)),
		tile("Done today", fmt.Sprintf("%d/%d", a.CompletedToday, a.TotalHabits)),
		tile("Active streaks", fmt.Sprintf("%d", a.ActiveStreaks)),
		tile("Longest streak", fmt.Sprintf("%d", a.LongestStreak)),
		tile("Perfect days", perfect),
	)
}

// renderChart draws one horizontal bar per day scaled to the largest total.
// Days without data are labelled rather than drawn as zero.
func renderChart(points []models.ChartPoint, width int) string {
	if len(points) == 0 {
		return mutedStyle.Render(noData)
	}

	barWidth := min(max(width-30, 10), 50)
	top := metrics.MaxTotal(points)

	lines := make([]string, len(points))
	for i, p := range points {
		label := p.DisplayDate
		if label == "" {
			label = p.Date
		}
		label = truncate.String(label, 10)

		if !p.HasData() {
			lines[i] = fmt.Sprintf("%-10s %s", label, mutedStyle.Render(noData))
			continue
		}
		n := int(math.Round(*p.Total / top * float64(barWidth)))
		lines[i] = fmt.Sprintf("%-10s %s %s", label, barStyle.Render(strings.Repeat("█", n)), metrics.FormatTime(*p.Total))
	}
	return strings.Join(lines, "\n")
}

func newWorkoutTable() table.Model {
	return table.New(
		table.WithColumns([]table.Column{
			{Title: "Date", Width: 12},
			{Title: "Activity", Width: 20},
			{Title: "Time", Width: 8},
			{Title: "Grade", Width: 6},
			{Title: "Avg HR", Width: 7},
		}),
		table.WithFocused(true),
		table.WithHeight(8),
	)
}

func workoutRows(workouts []models.Workout) []table.Row {
	rows := make([]table.Row, len(workouts))
	for i, w := range workouts {
		grade := "—"
		if metrics.GradeTone(w.Grade) != "" {
			grade = strings.TrimSpace(*w.Grade)
		}
		hr := "—"
		if w.AvgHR != nil {
			hr = fmt.Sprintf("%.0f", *w.AvgHR)
		}
		rows[i] = table.Row{w.Date, w.Activity, metrics.FormatTime(w.Time), grade, hr}
	}
	return rows
}

func (m Model) viewActivity() string {
	if !m.activityReady {
		return docStyle.Render(m.spinner.View() + " Loading activity...")
	}
	act := m.store.Snapshot().Activity

	sections := []string{titleStyle.Render("Recent workouts")}
	switch {
	case act.Workouts == nil:
		sections = append(sections, mutedStyle.Render(noData))
	case len(act.Workouts) == 0:
		sections = append(sections, mutedStyle.Render("No workouts logged yet"))
	default:
		sections = append(sections, m.workouts.View())
		if i := m.workouts.Cursor(); i >= 0 && i < len(act.Workouts) {
			sections = append(sections, viewWorkout(act.Workouts[i]))
		}
	}

	sections = append(sections, "", titleStyle.Render("Self-care"))
	switch {
	case act.Selfcare == nil:
		sections = append(sections, mutedStyle.Render(noData))
	case len(act.Selfcare) == 0:
		sections = append(sections, mutedStyle.Render("No self-care activities"))
	default:
		tiles := make([]string, len(act.Selfcare))
		for i, a := range act.Selfcare {
			tiles[i] = viewSelfcare(a)
		}
		sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Top, tiles...))
	}
	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func viewWorkout(w models.Workout) string {
	grade := metrics.GradeTone(w.Grade)
	if grade == "" {
		return mutedStyle.Render(fmt.Sprintf("%s · %s · ungraded", w.Activity, metrics.FormatTime(w.Time)))
	}
	return fmt.Sprintf("%s · %s · grade %s", w.Activity, metrics.FormatTime(w.Time), gradeStyle(grade).Render(strings.TrimSpace(*w.Grade)))
}

func viewSelfcare(a models.SelfcareActivity) string {
	lines := []string{
		strings.TrimSpace(a.Icon + " " + a.Name),
		recencyStyle(metrics.SelfcareTone(a.DaysSinceLast)).Render(metrics.SelfcareLabel(a.DaysSinceLast)),
	}
	if a.Streak != nil {
		lines = append(lines, mutedStyle.Render(fmt.Sprintf("🔥 %d", *a.Streak)))
	}
	return tileStyle.Render(strings.Join(lines, "\n"))
}
