package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/habitdash/internal/constants"
	"github.com/julianstephens/habitdash/internal/layout"
	"github.com/julianstephens/habitdash/internal/logger"
	"github.com/julianstephens/habitdash/internal/models"
)

// tabCount is the number of states reachable with tab
const tabCount = 4

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.progress.Width = min(max(msg.Width-8, 10), 60)
		m.workouts.SetWidth(msg.Width - 4)
		return m, nil

	case tickMsg:
		return m.handleTick()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case habitsLoadedMsg:
		return m.handleHabitsLoaded(msg)

	case productivityLoadedMsg:
		m.insightsReady = true
		return m, nil

	case activityLoadedMsg:
		m.activityReady = true
		m.workouts.SetRows(workoutRows(msg.Workouts))
		return m, nil

	case hiddenLoadedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("✗ Could not load hidden habits: %v", msg.err)
			m.showHidden = false
			return m, nil
		}
		m.hidden = msg.hidden
		m.hiddenCursor = 0
		m.showHidden = true
		return m, nil

	case mutationMsg:
		return m.handleMutation(msg)
	}

	if m.state == constants.StateEditHabit {
		return m.updateForm(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleTick() (tea.Model, tea.Cmd) {
	now := m.now()
	m.center.Expire(now)

	cmds := []tea.Cmd{tick()}
	if !m.loading && m.state != constants.StateError && now.Sub(m.lastRefresh) >= m.refreshInterval() {
		m.loading = true
		cmds = append(cmds, m.loadHabits())
	}
	return m, tea.Batch(cmds...)
}

func (m Model) handleHabitsLoaded(msg habitsLoadedMsg) (tea.Model, tea.Cmd) {
	m.loading = false
	if msg.err != nil {
		m.enterError()
		return m, nil
	}

	m.lastRefresh = m.now()
	if m.state == constants.StateError {
		m.state = constants.StateHabits
	}
	m.clampCursor()

	if !m.settings.NotificationsEnabled {
		return m, nil
	}
	notes := m.center.Evaluate(m.store.Snapshot().Habits, m.now())
	return m, m.forward(notes)
}

func (m Model) handleMutation(msg mutationMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.status = fmt.Sprintf("✗ %v", msg.err)
		return m, nil
	}
	m.status = fmt.Sprintf("✓ %s %s", msg.action, msg.name)

	// the store re-fetches after a mutation; a failed re-fetch is a critical failure
	if m.store.Snapshot().Error != "" {
		m.enterError()
		return m, nil
	}
	m.clampCursor()

	var cmds []tea.Cmd
	if m.showHidden {
		cmds = append(cmds, m.loadHidden())
	}
	if m.settings.NotificationsEnabled {
		notes := m.center.Evaluate(m.store.Snapshot().Habits, m.now())
		cmds = append(cmds, m.forward(notes))
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) enterError() {
	m.showHidden = false
	m.state = constants.StateError
}

func (m *Model) clampCursor() {
	n := len(m.store.Snapshot().Habits)
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && k.Type == tea.KeyEsc {
		m.state = constants.StateSettings
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		m.state = constants.StateSettings
		update, changed := m.habitForm.Update(m.editingHabit)
		if !changed {
			m.status = "No changes"
			return m, nil
		}
		return m, m.updateHabit(m.editingHabit, update)
	case huh.StateAborted:
		m.state = constants.StateSettings
		return m, nil
	}
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.state {
	case constants.StateError:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Refresh):
			if m.loading {
				return m, nil
			}
			m.loading = true
			return m, m.loadDashboard()
		}
		return m, nil

	case constants.StateConfirmHide:
		switch {
		case key.Matches(msg, m.keys.Confirm):
			m.state = constants.StateSettings
			return m, m.hideHabit(m.hideTarget)
		case key.Matches(msg, m.keys.Cancel):
			m.state = constants.StateSettings
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	case key.Matches(msg, m.keys.Tab):
		return m.switchTab((m.state + 1) % tabCount)
	case key.Matches(msg, m.keys.ShiftTab):
		return m.switchTab((m.state - 1 + tabCount) % tabCount)
	case key.Matches(msg, m.keys.Dismiss):
		m.center.DismissOldest()
		return m, nil
	case key.Matches(msg, m.keys.Refresh):
		return m.refresh()
	}

	switch m.state {
	case constants.StateHabits:
		if key.Matches(msg, m.keys.Reveal) {
			m.revealed = !m.revealed
		}
		return m, nil
	case constants.StateInsights:
		if key.Matches(msg, m.keys.Chart) {
			return m.toggleChart()
		}
		return m, nil
	case constants.StateActivity:
		var cmd tea.Cmd
		m.workouts, cmd = m.workouts.Update(msg)
		return m, cmd
	case constants.StateSettings:
		return m.handleSettingsKey(msg)
	}
	return m, nil
}

func (m Model) switchTab(s constants.SessionState) (tea.Model, tea.Cmd) {
	m.state = s
	m.showHidden = false
	m.status = ""
	switch s {
	case constants.StateInsights:
		if !m.insightsReady {
			return m, m.loadProductivity()
		}
	case constants.StateActivity:
		if !m.activityReady {
			return m, m.loadActivity()
		}
	}
	return m, nil
}

func (m Model) refresh() (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	if !m.loading {
		m.loading = true
		cmds = append(cmds, m.loadDashboard())
	}
	switch m.state {
	case constants.StateInsights:
		cmds = append(cmds, m.loadProductivity())
	case constants.StateActivity:
		cmds = append(cmds, m.loadActivity())
	}
	return m, tea.Batch(cmds...)
}

func (m Model) toggleChart() (tea.Model, tea.Cmd) {
	if m.chartDays == 30 {
		m.chartDays = 7
	} else {
		m.chartDays = 30
	}

	m.settings.ChartDays = m.chartDays
	if m.prefs != nil {
		if err := m.prefs.SaveSettings(m.settings); err != nil {
			logger.Warn("Failed to save chart range", "days", m.chartDays, "error", err)
		}
	}
	m.insightsReady = false
	return m, m.loadProductivity()
}

func (m Model) handleSettingsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHidden {
		switch {
		case key.Matches(msg, m.keys.Back):
			m.showHidden = false
		case key.Matches(msg, m.keys.Up):
			if m.hiddenCursor > 0 {
				m.hiddenCursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.hiddenCursor < len(m.hidden)-1 {
				m.hiddenCursor++
			}
		case key.Matches(msg, m.keys.Enter), key.Matches(msg, m.keys.Restore):
			if len(m.hidden) > 0 {
				return m, m.restoreHabit(m.hidden[m.hiddenCursor])
			}
		}
		return m, nil
	}

	habits := m.orderedHabits()
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(habits)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Restore):
		return m, m.loadHidden()
	case key.Matches(msg, m.keys.MoveUp):
		return m.moveCard(habits, -1)
	case key.Matches(msg, m.keys.MoveDown):
		return m.moveCard(habits, 1)
	case key.Matches(msg, m.keys.Edit):
		if len(habits) == 0 {
			return m, nil
		}
		m.editingHabit = habits[m.cursor]
		m.habitForm = habitFormFrom(m.editingHabit)
		m.form = NewHabitForm(m.habitForm)
		m.state = constants.StateEditHabit
		return m, m.form.Init()
	case key.Matches(msg, m.keys.Hide):
		if len(habits) == 0 {
			return m, nil
		}
		m.hideTarget = habits[m.cursor]
		m.state = constants.StateConfirmHide
	}
	return m, nil
}

func (m Model) moveCard(habits []models.Habit, delta int) (tea.Model, tea.Cmd) {
	to := m.cursor + delta
	if to < 0 || to >= len(habits) {
		return m, nil
	}

	ids := layout.Move(layout.IDs(habits), m.cursor, to)
	if m.prefs != nil {
		if err := m.prefs.SaveCardOrder(ids); err != nil {
			m.status = fmt.Sprintf("✗ Could not save card order: %v", err)
			return m, nil
		}
	}
	m.cardOrder = layout.Positions(ids)
	m.cursor = to
	return m, nil
}
