// Package store holds the dashboard state fetched from the backend. A Store is
// created once per program with an injected client and is safe for
// concurrent use; state only changes through its methods.
package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/julianstephens/habitdash/internal/api"
	"github.com/julianstephens/habitdash/internal/logger"
	"github.com/julianstephens/habitdash/internal/models"
)

// Backend is the subset of the API client the store depends on
type Backend interface {
	BaseURL() string
	ListHabits(ctx context.Context) ([]models.Habit, error)
	RefreshHabits(ctx context.Context) (models.RefreshResult, error)
	UpdateHabit(ctx context.Context, id string, update models.HabitUpdate) error
	HideHabit(ctx context.Context, id string) error
	RestoreHabit(ctx context.Context, id string) error
	ListHiddenHabits(ctx context.Context) ([]models.HiddenHabit, error)
	Analytics(ctx context.Context) (*models.Analytics, error)
	ProductivityMetrics(ctx context.Context) (*models.ProductivityMetrics, error)
	ProductivityChart(ctx context.Context, days int) (*models.ChartData, error)
	RecentWorkouts(ctx context.Context) ([]models.Workout, error)
	SelfcareSummary(ctx context.Context) ([]models.SelfcareActivity, error)
	ExternalLinks(ctx context.Context) ([]models.ExternalLink, error)
}

// Productivity is the insights slice. Either field may be nil when its
// request failed.
type Productivity struct {
	Days    int
	Metrics *models.ProductivityMetrics
	Chart   *models.ChartData
}

// Activity is the workouts and self-care slice. A nil slice means the request
// failed; an empty slice means the backend had nothing.
type Activity struct {
	Workouts []models.Workout
	Selfcare []models.SelfcareActivity
	Links    []models.ExternalLink
}

// Snapshot is a point-in-time copy of the store
type Snapshot struct {
	Habits       []models.Habit
	Analytics    *models.Analytics
	Loading      bool
	Error        string
	Unreachable  bool
	FetchedAt    time.Time
	Hidden       []models.HiddenHabit
	Productivity Productivity
	Activity     Activity
}

type Store struct {
	backend   Backend
	sessionID string

	mu           sync.RWMutex
	habits       []models.Habit
	analytics    *models.Analytics
	loading      bool
	err          string
	unreachable  bool
	fetchedAt    time.Time
	hidden       []models.HiddenHabit
	productivity Productivity
	activity     Activity

	now func() time.Time
}

func New(backend Backend) *Store {
	s := &Store{
		backend:   backend,
		sessionID: uuid.NewString(),
		now:       time.Now,
	}
	s.debug("Store created", "api_url", backend.BaseURL())
	return s
}

// SessionID identifies this store's lifetime in log lines
func (s *Store) SessionID() string {
	return s.sessionID
}

// BaseURL is the backend the store was created for
func (s *Store) BaseURL() string {
	return s.backend.BaseURL()
}

// FetchHabits replaces the habit list. On failure the list is left as it was
// and the error message is recorded for display.
func (s *Store) FetchHabits(ctx context.Context) error {
	s.mu.Lock()
	s.loading = true
	s.err = ""
	s.unreachable = false
	s.mu.Unlock()

	habits, err := s.backend.ListHabits(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false
	if err != nil {
		s.err = err.Error()
		s.unreachable = errors.Is(err, api.ErrUnreachable)
		s.fail("Failed to fetch habits", "error", err)
		return err
	}
	s.habits = habits
	s.fetchedAt = s.now()
	s.debug("Habits fetched", "count", len(habits))
	return nil
}

// FetchAnalytics replaces the analytics snapshot. Failures are logged only.
func (s *Store) FetchAnalytics(ctx context.Context) error {
	a, err := s.backend.Analytics(ctx)
	if err != nil {
		s.warn("Failed to fetch analytics", "error", err)
		return err
	}

	s.mu.Lock()
	s.analytics = a
	s.mu.Unlock()
	return nil
}

// FetchDashboard loads habits and analytics concurrently. Only the habits
// error is returned.
func (s *Store) FetchDashboard(ctx context.Context) error {
	var g errgroup.Group
	g.Go(func() error {
		return s.FetchHabits(ctx)
	})
	g.Go(func() error {
		_ = s.FetchAnalytics(ctx)
		return nil
	})
	return g.Wait()
}

// RefreshHabits asks the backend to recompute streaks, then re-fetches
func (s *Store) RefreshHabits(ctx context.Context) (models.RefreshResult, error) {
	res, err := s.backend.RefreshHabits(ctx)
	if err != nil {
		s.mu.Lock()
		s.err = err.Error()
		s.unreachable = errors.Is(err, api.ErrUnreachable)
		s.mu.Unlock()
		s.fail("Failed to refresh habits", "error", err)
		return res, err
	}
	s.info("Habits refreshed", "message", res.Message, "count", res.Count)
	return res, s.FetchHabits(ctx)
}

// UpdateHabit applies a partial update and re-fetches the list
func (s *Store) UpdateHabit(ctx context.Context, id string, update models.HabitUpdate) error {
	return s.mutate(ctx, "update", id, func() error {
		return s.backend.UpdateHabit(ctx, id, update)
	})
}

// HideHabit soft-deletes a habit and re-fetches the list
func (s *Store) HideHabit(ctx context.Context, id string) error {
	return s.mutate(ctx, "hide", id, func() error {
		return s.backend.HideHabit(ctx, id)
	})
}

// RestoreHabit un-hides a habit and re-fetches the list
func (s *Store) RestoreHabit(ctx context.Context, id string) error {
	return s.mutate(ctx, "restore", id, func() error {
		return s.backend.RestoreHabit(ctx, id)
	})
}

// mutation failures are returned to the caller and never set the error field
func (s *Store) mutate(ctx context.Context, action, id string, fn func() error) error {
	if err := fn(); err != nil {
		s.fail("Habit mutation failed", "action", action, "habit", id, "error", err)
		return err
	}
	s.debug("Habit mutated", "action", action, "habit", id)
	_ = s.FetchHabits(ctx)
	return nil
}

// HiddenHabits fetches the hidden list and caches it in the snapshot
func (s *Store) HiddenHabits(ctx context.Context) ([]models.HiddenHabit, error) {
	hidden, err := s.backend.ListHiddenHabits(ctx)
	if err != nil {
		s.warn("Failed to fetch hidden habits", "error", err)
		return nil, err
	}

	s.mu.Lock()
	s.hidden = hidden
	s.mu.Unlock()
	return append([]models.HiddenHabit(nil), hidden...), nil
}

// LoadProductivity fetches the metrics and the chart in parallel. Each result
// is stored independently; a failed request leaves its field nil.
func (s *Store) LoadProductivity(ctx context.Context, days int) Productivity {
	var (
		g       errgroup.Group
		metrics *models.ProductivityMetrics
		chart   *models.ChartData
	)

	g.Go(func() error {
		m, err := s.backend.ProductivityMetrics(ctx)
		if err != nil {
			s.warn("Failed to fetch productivity metrics", "error", err)
			return nil
		}
		metrics = m
		return nil
	})
	g.Go(func() error {
		c, err := s.backend.ProductivityChart(ctx, days)
		if err != nil {
			s.warn("Failed to fetch productivity chart", "days", days, "error", err)
			return nil
		}
		chart = c
		return nil
	})
	_ = g.Wait()

	p := Productivity{Days: days, Metrics: metrics, Chart: chart}
	s.mu.Lock()
	s.productivity = p
	s.mu.Unlock()
	return p
}

// LoadActivity fetches workouts, self-care and external links in parallel
func (s *Store) LoadActivity(ctx context.Context) Activity {
	var (
		g   errgroup.Group
		out Activity
	)

	g.Go(func() error {
		w, err := s.backend.RecentWorkouts(ctx)
		if err != nil {
			s.warn("Failed to fetch recent workouts", "error", err)
			return nil
		}
		out.Workouts = w
		return nil
	})
	g.Go(func() error {
		a, err := s.backend.SelfcareSummary(ctx)
		if err != nil {
			s.warn("Failed to fetch self-care summary", "error", err)
			return nil
		}
		out.Selfcare = a
		return nil
	})
	g.Go(func() error {
		l, err := s.backend.ExternalLinks(ctx)
		if err != nil {
			s.warn("Failed to fetch external links", "error", err)
			return nil
		}
		out.Links = l
		return nil
	})
	_ = g.Wait()

	s.mu.Lock()
	s.activity = out
	s.mu.Unlock()
	return out
}

// Snapshot returns a copy of the current state
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := Snapshot{
		Loading:      s.loading,
		Error:        s.err,
		Unreachable:  s.unreachable,
		FetchedAt:    s.fetchedAt,
		Productivity: s.productivity,
		Activity:     s.activity,
	}
	if s.habits != nil {
		snap.Habits = append([]models.Habit{}, s.habits...)
	}
	if s.hidden != nil {
		snap.Hidden = append([]models.HiddenHabit{}, s.hidden...)
	}
	if s.analytics != nil {
		a := *s.analytics
		snap.Analytics = &a
	}
	return snap
}

func (s *Store) debug(msg string, keyvals ...interface{}) {
	logger.Debug(msg, append([]interface{}{"session", s.sessionID}, keyvals...)...)
}

func (s *Store) info(msg string, keyvals ...interface{}) {
	logger.Info(msg, append([]interface{}{"session", s.sessionID}, keyvals...)...)
}

func (s *Store) warn(msg string, keyvals ...interface{}) {
	logger.Warn(msg, append([]interface{}{"session", s.sessionID}, keyvals...)...)
}

func (s *Store) fail(msg string, keyvals ...interface{}) {
	logger.Error(msg, append([]interface{}{"session", s.sessionID}, keyvals...)...)
}
