package constants

const (
	// General Settings
	SettingRefreshIntervalSec   = "refresh_interval_sec"
	SettingNotificationsEnabled = "notifications_enabled"
	SettingTrayNotifications    = "tray_notifications"
	SettingChartDays            = "chart_days"
	SettingRevealPersonal       = "reveal_personal"

	// Default Settings Values
	DefaultRefreshIntervalSec   = 300
	DefaultNotificationsEnabled = true
	DefaultTrayNotifications    = false
	DefaultChartDays            = 7
	DefaultRevealPersonal       = false
)
