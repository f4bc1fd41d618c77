// Package metrics holds the pure functions that turn backend snapshots into
// the values the dashboard displays.
package metrics

import (
	"github.com/julianstephens/habitdash/internal/models"
)

// StreakState classifies a habit's current streak for display
type StreakState int

const (
	StreakInactive StreakState = iota
	StreakActive
	StreakRecordBreaking
)

func (s StreakState) String() string {
	switch s {
	case StreakRecordBreaking:
		return "Record-breaking"
	case StreakActive:
		return "Active"
	default:
		return "Inactive"
	}
}

// CompletionRate returns completed/total as a percentage, or 0 when total is 0
func CompletionRate(completed, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(completed) / float64(total) * 100
}

// nonPersonal returns the habits that count towards daily progress
func nonPersonal(habits []models.Habit) []models.Habit {
	out := make([]models.Habit, 0, len(habits))
	for _, h := range habits {
		if !h.IsPersonal {
			out = append(out, h)
		}
	}
	return out
}

// IsPerfectDay reports whether every non-personal habit is completed today.
// A list with no non-personal habits is never a perfect day.
func IsPerfectDay(habits []models.Habit) bool {
	main := nonPersonal(habits)
	if len(main) == 0 {
		return false
	}
	for _, h := range main {
		if !h.CompletedToday {
			return false
		}
	}
	return true
}

// IsRecordBreaking reports whether the current streak meets or beats the best
// streak. A tie counts: current == best is record-breaking.
func IsRecordBreaking(h models.Habit) bool {
	return h.CurrentStreak >= h.BestStreak && h.CurrentStreak > 0
}

// StreakStatus classifies a habit as record-breaking, active or inactive
func StreakStatus(h models.Habit) StreakState {
	switch {
	case IsRecordBreaking(h):
		return StreakRecordBreaking
	case h.CurrentStreak > 0:
		return StreakActive
	default:
		return StreakInactive
	}
}

// Progress is the daily summary shown above the habit grid
type Progress struct {
	Total          int     `json:"total" yaml:"total"`
	Completed      int     `json:"completed" yaml:"completed"`
	CompletionRate float64 `json:"completion_rate" yaml:"completion_rate"`
	BestStreak     int     `json:"best_streak" yaml:"best_streak"`
	ActiveStreaks  int     `json:"active_streaks" yaml:"active_streaks"`
	PerfectDay     bool    `json:"perfect_day" yaml:"perfect_day"`
}

// DailyProgress computes today's progress. Personal habits are excluded from
// the completion counts but still contribute to streak statistics.
func DailyProgress(habits []models.Habit) Progress {
	p := Progress{}
	for _, h := range habits {
		if h.BestStreak > p.BestStreak {
			p.BestStreak = h.BestStreak
		}
		if h.CurrentStreak > 0 {
			p.ActiveStreaks++
		}
		if h.IsPersonal {
			continue
		}
		p.Total++
		if h.CompletedToday {
			p.Completed++
		}
	}
	p.CompletionRate = CompletionRate(p.Completed, p.Total)
	p.PerfectDay = IsPerfectDay(habits)
	return p
}

// MaxTotal returns the largest recorded daily total, with a floor of 1 so it
// can be used as a divisor when scaling bars.
func MaxTotal(points []models.ChartPoint) float64 {
	max := 1.0
	for _, p := range points {
		if p.Total != nil && *p.Total > max {
			max = *p.Total
		}
	}
	return max
}
