package models

// Settings represents client-side dashboard preferences
type Settings struct {
	RefreshIntervalSec   int  `json:"refresh_interval_sec" yaml:"refresh_interval_sec"`   // how often the TUI and watch re-fetch habits
	NotificationsEnabled bool `json:"notifications_enabled" yaml:"notifications_enabled"` // whether streak notifications are shown
	TrayNotifications    bool `json:"tray_notifications" yaml:"tray_notifications"`       // whether watch forwards notifications to the tray listener
	ChartDays            int  `json:"chart_days" yaml:"chart_days"`                       // 7 or 30
	RevealPersonal       bool `json:"reveal_personal" yaml:"reveal_personal"`             // show personal habit names without toggling
}
