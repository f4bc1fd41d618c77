package constants

import "time"

// SessionState represents the current state of the TUI application
type SessionState int

// Tone is the sign- or threshold-dependent styling class attached to a derived value
type Tone string

// NotificationKind represents the kind of streak notification
type NotificationKind string

const (
	AppName            = "habitdash"
	DefaultKeyringUser = "preferences-connection"
	DefaultConfigDir   = "~/.config/habitdash"
	DefaultConfigPath  = "~/.config/habitdash/habitdash.db"
	DefaultConfigFile  = "~/.config/habitdash/config.toml"
	DefaultAPIURL      = "http://localhost:8000"
	Version            = "v0.3.0"

	// EnvAPIURL overrides the backend base URL
	EnvAPIURL = "HABITDASH_API_URL"
	// EnvKeyringConnection holds a PostgreSQL preferences connection string
	EnvKeyringConnection = "HABITDASH_DB_CONNECTION"

	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// ChartTimeout bounds the 30-day chart request
	ChartTimeout = 10 * time.Second

	// Grid layout
	CardsPerRow = 3

	// Notify constants
	NotifierLockfileName = "habitdash-notifier.lock"
	TrayAppIdentifier    = "com.julianstephens.habitdash"
	TrayProcessPrefix    = "habitdash-tray"
	TraySecretHeader     = "X-Habitdash-Secret"

	// Tones
	TonePositive Tone = "positive"
	ToneNegative Tone = "negative"
	ToneNeutral  Tone = "neutral"

	// Notification kinds
	NotificationMilestone  NotificationKind = "milestone"
	NotificationRecord     NotificationKind = "record"
	NotificationMotivation NotificationKind = "motivation"

	// Notification durations
	RecordNotificationDuration     = 5 * time.Second
	PerfectDayNotificationDuration = 6 * time.Second
)

// Session States. The first four are the tabs, in display order.
const (
	StateHabits SessionState = iota
	StateInsights
	StateActivity
	StateSettings
	StateEditHabit
	StateConfirmHide
	StateError
)

// Milestone describes a fixed streak threshold worth celebrating
type Milestone struct {
	Days     int
	Title    string
	Praise   string
	Duration time.Duration
}

// Milestones are checked highest first; at most one fires per habit per evaluation.
var Milestones = []Milestone{
	{Days: 100, Title: "🏆 Centurion Achievement!", Praise: "Legendary!", Duration: 8 * time.Second},
	{Days: 50, Title: "⭐ Champion Status!", Praise: "Amazing consistency!", Duration: 6 * time.Second},
	{Days: 30, Title: "🔥 Master Level!", Praise: "You're on fire!", Duration: 5 * time.Second},
	{Days: 7, Title: "✨ First Week!", Praise: "Great start!", Duration: 4 * time.Second},
}
