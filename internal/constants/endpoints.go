package constants

// Backend API paths, relative to the configured base URL
const (
	PathHabits             = "/api/habits/"
	PathHabitsRefresh      = "/api/habits/refresh"
	PathHabitsHidden       = "/api/habits/hidden"
	PathHabit              = "/api/habits/%s"
	PathHabitRestore       = "/api/habits/%s/restore"
	PathAnalytics          = "/api/analytics/"
	PathProductivityMetric = "/api/analytics/productivity-metrics"
	PathProductivityChart  = "/api/analytics/productivity-chart"
	PathProductivity30Days = "/api/analytics/productivity-chart-30days"
	PathRecentWorkouts     = "/api/analytics/recent-workouts"
	PathSelfcareSummary    = "/api/analytics/selfcare-summary"
	PathExternalLinks      = "/api/config/external-links"
)
