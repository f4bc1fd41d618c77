// Package tui is the interactive habit dashboard
package tui

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/habitdash/internal/constants"
	"github.com/julianstephens/habitdash/internal/layout"
	"github.com/julianstephens/habitdash/internal/logger"
	"github.com/julianstephens/habitdash/internal/models"
	"github.com/julianstephens/habitdash/internal/notifications"
	"github.com/julianstephens/habitdash/internal/notifier"
	"github.com/julianstephens/habitdash/internal/storage"
	"github.com/julianstephens/habitdash/internal/store"
)

// Notifier forwards notifications outside the terminal
type Notifier interface {
	Notify(ctx context.Context, note notifications.Notification) error
}

// Deps are the collaborators the dashboard runs against
type Deps struct {
	Store    *store.Store
	Prefs    storage.Provider
	Center   *notifications.Center
	Notifier Notifier
	Settings models.Settings
	Now      func() time.Time
}

type tickMsg time.Time

type habitsLoadedMsg struct {
	err error
}

type productivityLoadedMsg store.Productivity

type activityLoadedMsg store.Activity

type hiddenLoadedMsg struct {
	hidden []models.HiddenHabit
	err    error
}

type mutationMsg struct {
	action string
	name   string
	err    error
}

// HabitFormModel backs the habit edit form
type HabitFormModel struct {
	Name     string
	Emoji    string
	Personal bool
}

type Model struct {
	ctx      context.Context
	store    *store.Store
	prefs    storage.Provider
	center   *notifications.Center
	notifier Notifier
	settings models.Settings
	now      func() time.Time

	state     constants.SessionState
	keys      KeyMap
	help      help.Model
	spinner   spinner.Model
	progress  progress.Model
	workouts  table.Model
	form      *huh.Form
	habitForm *HabitFormModel

	editingHabit models.Habit
	hideTarget   models.Habit
	cardOrder    map[string]int
	cursor       int
	hidden       []models.HiddenHabit
	hiddenCursor int
	showHidden   bool
	revealed     bool
	chartDays    int

	loading       bool
	insightsReady bool
	activityReady bool
	lastRefresh   time.Time
	status        string

	quitting bool
	width    int
	height   int
}

func NewModel(ctx context.Context, deps Deps) Model {
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	settings := deps.Settings
	models.ApplyDefaultSettings(&settings)

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := Model{
		ctx:       ctx,
		store:     deps.Store,
		prefs:     deps.Prefs,
		center:    deps.Center,
		notifier:  deps.Notifier,
		settings:  settings,
		now:       now,
		state:     constants.StateHabits,
		keys:      DefaultKeyMap(),
		help:      help.New(),
		spinner:   sp,
		progress:  progress.New(progress.WithSolidFill("42"), progress.WithoutPercentage()),
		workouts:  newWorkoutTable(),
		revealed:  settings.RevealPersonal,
		chartDays: settings.ChartDays,
		loading:   true,
	}
	m.loadCardOrder()
	return m
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch m.state {
	case constants.StateHabits:
		keys = append(keys, m.keys.Reveal, m.keys.Refresh)
	case constants.StateInsights:
		keys = append(keys, m.keys.Chart)
	case constants.StateActivity:
		keys = append(keys, m.keys.Up, m.keys.Down)
	case constants.StateSettings:
		if m.showHidden {
			keys = append(keys, m.keys.Enter, m.keys.Back)
		} else {
			keys = append(keys, m.keys.Edit, m.keys.Hide, m.keys.Restore, m.keys.MoveUp, m.keys.MoveDown)
		}
	case constants.StateConfirmHide:
		return []key.Binding{m.keys.Confirm, m.keys.Cancel}
	case constants.StateError:
		return []key.Binding{m.keys.Refresh, m.keys.Quit}
	}
	if len(m.center.Active()) > 0 {
		keys = append(keys, m.keys.Dismiss)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help, m.keys.Refresh, m.keys.Dismiss}

	var actions []key.Binding
	switch m.state {
	case constants.StateHabits:
		actions = []key.Binding{m.keys.Reveal}
	case constants.StateInsights:
		actions = []key.Binding{m.keys.Chart}
	case constants.StateActivity:
		actions = []key.Binding{m.keys.Up, m.keys.Down}
	case constants.StateSettings:
		actions = []key.Binding{m.keys.Up, m.keys.Down, m.keys.Edit, m.keys.Hide, m.keys.Restore, m.keys.MoveUp, m.keys.MoveDown, m.keys.Enter, m.keys.Back}
	}

	return [][]key.Binding{global, actions}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.loadDashboard(), m.spinner.Tick, tick())
}

// orderedHabits is the habit list in card order
func (m Model) orderedHabits() []models.Habit {
	return layout.Sort(m.store.Snapshot().Habits, m.cardOrder)
}

func (m *Model) loadCardOrder() {
	if m.prefs == nil {
		return
	}
	order, err := m.prefs.GetCardOrder()
	if err != nil {
		logger.Warn("Failed to load card order", "error", err)
		return
	}
	m.cardOrder = order
}

func tick() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) loadDashboard() tea.Cmd {
	ctx, st := m.ctx, m.store
	return func() tea.Msg {
		return habitsLoadedMsg{err: st.FetchDashboard(ctx)}
	}
}

func (m Model) loadHabits() tea.Cmd {
	ctx, st := m.ctx, m.store
	return func() tea.Msg {
		return habitsLoadedMsg{err: st.FetchHabits(ctx)}
	}
}

func (m Model) loadProductivity() tea.Cmd {
	ctx, st, days := m.ctx, m.store, m.chartDays
	return func() tea.Msg {
		return productivityLoadedMsg(st.LoadProductivity(ctx, days))
	}
}

func (m Model) loadActivity() tea.Cmd {
	ctx, st := m.ctx, m.store
	return func() tea.Msg {
		return activityLoadedMsg(st.LoadActivity(ctx))
	}
}

func (m Model) loadHidden() tea.Cmd {
	ctx, st := m.ctx, m.store
	return func() tea.Msg {
		hidden, err := st.HiddenHabits(ctx)
		return hiddenLoadedMsg{hidden: hidden, err: err}
	}
}

func (m Model) updateHabit(h models.Habit, update models.HabitUpdate) tea.Cmd {
	ctx, st := m.ctx, m.store
	return func() tea.Msg {
		return mutationMsg{action: "Updated", name: h.Name, err: st.UpdateHabit(ctx, h.ID, update)}
	}
}

func (m Model) hideHabit(h models.Habit) tea.Cmd {
	ctx, st := m.ctx, m.store
	return func() tea.Msg {
		return mutationMsg{action: "Hid", name: h.Name, err: st.HideHabit(ctx, h.ID)}
	}
}

func (m Model) restoreHabit(h models.HiddenHabit) tea.Cmd {
	ctx, st := m.ctx, m.store
	return func() tea.Msg {
		return mutationMsg{action: "Restored", name: h.Name, err: st.RestoreHabit(ctx, h.ID)}
	}
}

// forward sends notifications to the tray listener off the update loop
func (m Model) forward(notes []notifications.Notification) tea.Cmd {
	if len(notes) == 0 || !m.settings.TrayNotifications || m.notifier == nil {
		return nil
	}
	ctx, n := m.ctx, m.notifier
	return func() tea.Msg {
		for _, note := range notes {
			if err := n.Notify(ctx, note); err != nil {
				if errors.Is(err, notifier.ErrTrayNotRunning) {
					logger.Debug("Tray listener not running", "notification", note.ID)
					continue
				}
				logger.Warn("Failed to forward notification", "notification", note.ID, "error", err)
			}
		}
		return nil
	}
}

func (m Model) refreshInterval() time.Duration {
	return time.Duration(m.settings.RefreshIntervalSec) * time.Second
}
