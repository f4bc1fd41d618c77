// Package apitest runs an in-memory habit backend for tests
package apitest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gorilla/mux"

	"github.com/julianstephens/habitdash/internal/api"
	"github.com/julianstephens/habitdash/internal/constants"
	"github.com/julianstephens/habitdash/internal/models"
)

// Backend serves the dashboard API from its exported fields. A nil
// Analytics, Metrics or chart answers 500 so callers see a secondary failure.
type Backend struct {
	mu sync.Mutex

	Habits    []models.Habit
	Hidden    []models.HiddenHabit
	// HiddenDetails holds the full record restored for a hidden id; without
	// one a restored habit comes back with no streak
	HiddenDetails map[string]models.Habit
	Analytics *models.Analytics
	Metrics   *models.ProductivityMetrics
	Charts    map[int]*models.ChartData
	Workouts  []models.Workout
	Selfcare  []models.SelfcareActivity
	Links     []models.ExternalLink

	// HabitsStatus makes the habit list fail with this status when non-zero
	HabitsStatus int

	requests []string
	srv      *httptest.Server
}

// New starts a backend that is closed when the test ends
func New(t testing.TB) *Backend {
	t.Helper()
	b := &Backend{Charts: map[int]*models.ChartData{}}
	b.srv = httptest.NewServer(b.router())
	t.Cleanup(b.srv.Close)
	return b
}

func (b *Backend) URL() string {
	return b.srv.URL
}

// Client returns an API client pointed at the backend
func (b *Backend) Client(opts ...api.Option) *api.Client {
	return api.New(b.srv.URL, opts...)
}

// Requests lists "METHOD path" for every request served so far
func (b *Backend) Requests() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]string(nil), b.requests...)
}

// Set replaces backend state under the lock
func (b *Backend) Set(fn func(b *Backend)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	fn(b)
}

func (b *Backend) router() http.Handler {
	r := mux.NewRouter()
	r.Use(b.record)

	r.HandleFunc(constants.PathHabitsHidden, b.withLock(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, b.Hidden)
	})).Methods(http.MethodGet)
	r.HandleFunc(constants.PathHabitsRefresh, b.withLock(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, models.RefreshResult{Message: "Streaks recalculated", Count: len(b.Habits)})
	})).Methods(http.MethodGet)
	r.HandleFunc(constants.PathHabits, b.withLock(func(w http.ResponseWriter, _ *http.Request) {
		if b.HabitsStatus != 0 {
			http.Error(w, http.StatusText(b.HabitsStatus), b.HabitsStatus)
			return
		}
		habits := b.Habits
		if habits == nil {
			habits = []models.Habit{}
		}
		writeJSON(w, habits)
	})).Methods(http.MethodGet)
	r.HandleFunc("/api/habits/{id}", b.withLock(b.updateHabit)).Methods(http.MethodPut)
	r.HandleFunc("/api/habits/{id}", b.withLock(b.hideHabit)).Methods(http.MethodDelete)
	r.HandleFunc("/api/habits/{id}/restore", b.withLock(b.restoreHabit)).Methods(http.MethodPost)

	r.HandleFunc(constants.PathAnalytics, b.withLock(func(w http.ResponseWriter, _ *http.Request) {
		writeOrFail(w, b.Analytics)
	})).Methods(http.MethodGet)
	r.HandleFunc(constants.PathProductivityMetric, b.withLock(func(w http.ResponseWriter, _ *http.Request) {
		writeOrFail(w, b.Metrics)
	})).Methods(http.MethodGet)
	r.HandleFunc(constants.PathProductivityChart, b.withLock(func(w http.ResponseWriter, _ *http.Request) {
		writeOrFail(w, b.Charts[7])
	})).Methods(http.MethodGet)
	r.HandleFunc(constants.PathProductivity30Days, b.withLock(func(w http.ResponseWriter, _ *http.Request) {
		writeOrFail(w, b.Charts[30])
	})).Methods(http.MethodGet)
	r.HandleFunc(constants.PathRecentWorkouts, b.withLock(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, models.WorkoutList{Workouts: b.Workouts})
	})).Methods(http.MethodGet)
	r.HandleFunc(constants.PathSelfcareSummary, b.withLock(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, models.SelfcareSummary{Activities: b.Selfcare})
	})).Methods(http.MethodGet)
	r.HandleFunc(constants.PathExternalLinks, b.withLock(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, models.ExternalLinks{Links: b.Links})
	})).Methods(http.MethodGet)
	return r
}

func (b *Backend) record(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		b.requests = append(b.requests, r.Method+" "+r.URL.Path)
		b.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

func (b *Backend) withLock(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b.mu.Lock()
		defer b.mu.Unlock()
		h(w, r)
	}
}

func (b *Backend) find(id string) int {
	for i, h := range b.Habits {
		if h.ID == id {
			return i
		}
	}
	return -1
}

func (b *Backend) updateHabit(w http.ResponseWriter, r *http.Request) {
	i := b.find(mux.Vars(r)["id"])
	if i < 0 {
		http.NotFound(w, r)
		return
	}
	var u models.HabitUpdate
	if err := json.NewDecoder(r.Body).Decode(&u); err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	if u.Name != nil {
		b.Habits[i].Name = *u.Name
	}
	if u.Emoji != nil {
		b.Habits[i].Emoji = *u.Emoji
	}
	if u.IsPersonal != nil {
		b.Habits[i].IsPersonal = *u.IsPersonal
	}
	writeJSON(w, b.Habits[i])
}

func (b *Backend) hideHabit(w http.ResponseWriter, r *http.Request) {
	i := b.find(mux.Vars(r)["id"])
	if i < 0 {
		http.NotFound(w, r)
		return
	}
	h := b.Habits[i]
	b.Habits = append(b.Habits[:i], b.Habits[i+1:]...)
	b.Hidden = append(b.Hidden, models.HiddenHabit{ID: h.ID, Name: h.Name, Emoji: h.Emoji})
	if b.HiddenDetails == nil {
		b.HiddenDetails = map[string]models.Habit{}
	}
	b.HiddenDetails[h.ID] = h
	w.WriteHeader(http.StatusNoContent)
}

func (b *Backend) restoreHabit(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	for i, h := range b.Hidden {
		if h.ID != id {
			continue
		}
		b.Hidden = append(b.Hidden[:i], b.Hidden[i+1:]...)
		restored, ok := b.HiddenDetails[id]
		if !ok {
			restored = models.Habit{ID: h.ID, Name: h.Name, Emoji: h.Emoji, HabitType: models.HabitTypeBinary, Active: true}
		}
		restored.Order = len(b.Habits)
		b.Habits = append(b.Habits, restored)
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.NotFound(w, r)
}

func writeOrFail[T any](w http.ResponseWriter, v *T) {
	if v == nil {
		http.Error(w, "unavailable", http.StatusInternalServerError)
		return
	}
	writeJSON(w, v)
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
