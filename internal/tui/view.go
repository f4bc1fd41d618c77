package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"github.com/julianstephens/habitdash/internal/constants"
	"github.com/julianstephens/habitdash/internal/layout"
	"github.com/julianstephens/habitdash/internal/metrics"
	"github.com/julianstephens/habitdash/internal/models"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.state == constants.StateError {
		return m.viewError()
	}

	var content string
	switch m.state {
	case constants.StateHabits:
		content = m.viewHabits()
	case constants.StateInsights:
		content = m.viewInsights()
	case constants.StateActivity:
		content = m.viewActivity()
	case constants.StateSettings:
		content = m.viewSettings()
	case constants.StateEditHabit:
		content = docStyle.Render(m.form.View())
	case constants.StateConfirmHide:
		content = m.viewConfirmHide()
	}

	parts := []string{m.viewHeader(), m.viewTabs()}
	if toasts := m.viewToasts(); toasts != "" {
		parts = append(parts, toasts)
	}
	parts = append(parts, content)
	if m.status != "" {
		parts = append(parts, mutedStyle.Render(m.status))
	}
	parts = append(parts, m.help.View(m))

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m Model) viewHeader() string {
	snap := m.store.Snapshot()

	header := titleStyle.Render("habitdash")
	if m.loading {
		header += " " + m.spinner.View()
	} else if !snap.FetchedAt.IsZero() {
		header += mutedStyle.Render(" updated " + snap.FetchedAt.Local().Format("15:04"))
	}

	if links := snap.Activity.Links; len(links) > 0 {
		names := make([]string, len(links))
		for i, l := range links {
			names[i] = strings.TrimSpace(l.Icon + " " + l.Name)
		}
		header += mutedStyle.Render("  " + strings.Join(names, " · "))
	}
	return header
}

// activeTab maps overlay states onto the tab they belong to
func (m Model) activeTab() constants.SessionState {
	switch m.state {
	case constants.StateEditHabit, constants.StateConfirmHide:
		return constants.StateSettings
	}
	return m.state
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, title := range []string{"Habits", "Insights", "Activity", "Settings"} {
		if m.activeTab() == constants.SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewToasts() string {
	active := m.center.Active()
	if len(active) == 0 {
		return ""
	}
	toasts := make([]string, len(active))
	for i, n := range active {
		toasts[i] = toastStyle.Render(titleStyle.Render(n.Title) + "\n" + n.Message)
	}
	return lipgloss.JoinVertical(lipgloss.Left, toasts...)
}

func (m Model) viewError() string {
	snap := m.store.Snapshot()

	reason := "The backend returned an error."
	if snap.Unreachable {
		reason = "The backend could not be reached."
	}

	return lipgloss.Place(m.width, m.height,
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render("⚠ Unable to load habits"),
			"",
			reason,
			mutedStyle.Render(snap.Error),
			"",
			"API: "+m.store.BaseURL(),
			"",
			"[r] Retry  [q] Quit",
		),
	)
}

func (m Model) viewHabits() string {
	snap := m.store.Snapshot()
	if len(snap.Habits) == 0 {
		if snap.FetchedAt.IsZero() {
			return docStyle.Render(m.spinner.View() + " Loading habits...")
		}
		return docStyle.Render(mutedStyle.Render("No habits yet. Habits added in the backend will show up here."))
	}

	p := metrics.DailyProgress(snap.Habits)
	bar := m.progress
	bar.FullColor = string(tierColor(metrics.ProgressTier(p.CompletionRate)))

	lines := []string{
		fmt.Sprintf("Today: %d/%d habits (%s)  %s", p.Completed, p.Total, metrics.FormatRate(p.CompletionRate), bar.ViewAs(p.CompletionRate/100)),
	}
	if p.PerfectDay {
		lines = append(lines, bannerStyle.Render("🌟 Perfect day! All habits completed!"))
	}

	width := m.cardWidth()
	for _, row := range layout.Rows(layout.Sort(snap.Habits, m.cardOrder), constants.CardsPerRow) {
		cards := make([]string, len(row))
		for i, h := range row {
			cards[i] = m.viewCard(h, width)
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, cards...))
	}

	if hasPersonal(snap.Habits) && !m.revealed {
		lines = append(lines, mutedStyle.Render("Personal habits are hidden. Press space to reveal."))
	}
	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (m Model) cardWidth() int {
	if m.width == 0 {
		return 28
	}
	return max((m.width-4)/constants.CardsPerRow-2, 16)
}

func (m Model) viewCard(h models.Habit, width int) string {
	status := metrics.StreakStatus(h)

	name := truncate.StringWithTail(h.DisplayName(m.revealed), uint(max(width-6, 1)), "…")
	if h.Emoji != "" {
		name = h.Emoji + " " + name
	}

	today := mutedStyle.Render("○ Not done yet")
	if h.CompletedToday {
		today = successStyle.Render("✓ Done today")
	}

	style := cardStyle.Width(width)
	if h.CompletedToday {
		style = style.BorderForeground(lipgloss.Color("42"))
	}

	return style.Render(lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(name),
		fmt.Sprintf("🔥 %d day streak", h.CurrentStreak),
		mutedStyle.Render(fmt.Sprintf("Best: %d", h.BestStreak)),
		streakStyle(status).Render(status.String()),
		today,
	))
}

func (m Model) viewSettings() string {
	if m.showHidden {
		return m.viewHidden()
	}

	habits := m.orderedHabits()
	lines := []string{titleStyle.Render("Habits"), ""}
	if len(habits) == 0 {
		lines = append(lines, mutedStyle.Render("No habits"))
	}
	for i, h := range habits {
		line := fmt.Sprintf("%d. %s", i+1, habitLabel(h.Emoji, h.DisplayName(m.revealed)))
		if h.IsPersonal {
			line += " 🔒"
		}
		if i == m.cursor {
			lines = append(lines, selectedStyle.Render("> "+line))
		} else {
			lines = append(lines, "  "+line)
		}
	}

	s := m.settings
	lines = append(lines,
		"",
		titleStyle.Render("Preferences"),
		fmt.Sprintf("Refresh every %ds", s.RefreshIntervalSec),
		fmt.Sprintf("Notifications: %s  Tray: %s", onOff(s.NotificationsEnabled), onOff(s.TrayNotifications)),
		fmt.Sprintf("Chart range: %d days", m.chartDays),
		mutedStyle.Render("Change preferences with 'habitdash settings'."),
	)
	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (m Model) viewHidden() string {
	lines := []string{titleStyle.Render("Hidden habits"), ""}
	if len(m.hidden) == 0 {
		lines = append(lines, mutedStyle.Render("No hidden habits"))
	}
	for i, h := range m.hidden {
		line := habitLabel(h.Emoji, h.Name)
		if i == m.hiddenCursor {
			lines = append(lines, selectedStyle.Render("> "+line))
		} else {
			lines = append(lines, "  "+line)
		}
	}
	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (m Model) viewConfirmHide() string {
	return lipgloss.Place(m.width, max(m.height-4, 0),
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render(fmt.Sprintf("Hide %s from the dashboard?", habitLabel(m.hideTarget.Emoji, m.hideTarget.DisplayName(m.revealed)))),
			mutedStyle.Render("It can be restored from the hidden list."),
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}

func habitLabel(emoji, name string) string {
	if emoji == "" {
		return name
	}
	return emoji + " " + name
}

func hasPersonal(habits []models.Habit) bool {
	for _, h := range habits {
		if h.IsPersonal {
			return true
		}
	}
	return false
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
