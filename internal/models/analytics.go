package models

import "fmt"

// Analytics is the dashboard summary snapshot. It is replaced wholesale on
// every fetch.
type Analytics struct {
	TotalHabits       int     `json:"total_habits" yaml:"total_habits"`
	ActiveStreaks     int     `json:"active_streaks" yaml:"active_streaks"`
	CompletedToday    int     `json:"completed_today" yaml:"completed_today"`
	LongestStreak     int     `json:"longest_streak" yaml:"longest_streak"`
	PerfectDaysStreak *int    `json:"perfect_days_streak,omitempty" yaml:"perfect_days_streak,omitempty"`
	CompletionRate    float64 `json:"completion_rate" yaml:"completion_rate"` // 0-100
}

func (a *Analytics) Validate() error {
	if a.TotalHabits < 0 || a.ActiveStreaks < 0 || a.CompletedToday < 0 || a.LongestStreak < 0 {
		return fmt.Errorf("analytics counts cannot be negative")
	}
	if a.CompletionRate < 0 || a.CompletionRate > 100 {
		return fmt.Errorf("completion rate %.2f outside 0-100", a.CompletionRate)
	}
	return nil
}

// ProductivityMetrics are period totals with signed percentage changes relative
// to a backend-defined prior period.
type ProductivityMetrics struct {
	AvgDailyProductivity       float64 `json:"avg_daily_productivity" yaml:"avg_daily_productivity"` // minutes
	MaxDailyProductivity       float64 `json:"max_daily_productivity" yaml:"max_daily_productivity"` // minutes
	TotalProductiveHours       float64 `json:"total_productive_hours" yaml:"total_productive_hours"`
	AvgDailyProductivityChange float64 `json:"avg_daily_productivity_change" yaml:"avg_daily_productivity_change"`
	MaxDailyProductivityChange float64 `json:"max_daily_productivity_change" yaml:"max_daily_productivity_change"`
	TotalProductiveHoursChange float64 `json:"total_productive_hours_change" yaml:"total_productive_hours_change"`
}

func (p *ProductivityMetrics) Validate() error {
	if p.AvgDailyProductivity < 0 || p.MaxDailyProductivity < 0 || p.TotalProductiveHours < 0 {
		return fmt.Errorf("productivity totals cannot be negative")
	}
	return nil
}
