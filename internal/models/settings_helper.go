package models

import (
	"fmt"

	"github.com/julianstephens/habitdash/internal/constants"
)

// MapToSettings converts a map of key-value pairs to a Settings struct.
// Keys missing from data keep their default value.
func MapToSettings(data map[string]string) (Settings, error) {
	settings := DefaultSettings()

	for key, value := range data {
		switch key {
		case constants.SettingRefreshIntervalSec:
			if _, err := fmt.Sscanf(value, "%d", &settings.RefreshIntervalSec); err != nil {
				return Settings{}, fmt.Errorf("parsing refresh_interval_sec: %w", err)
			}
		case constants.SettingNotificationsEnabled:
			settings.NotificationsEnabled = value == "true"
		case constants.SettingTrayNotifications:
			settings.TrayNotifications = value == "true"
		case constants.SettingChartDays:
			if _, err := fmt.Sscanf(value, "%d", &settings.ChartDays); err != nil {
				return Settings{}, fmt.Errorf("parsing chart_days: %w", err)
			}
		case constants.SettingRevealPersonal:
			settings.RevealPersonal = value == "true"
		}
	}
	return settings, nil
}

// SettingsToMap converts a Settings struct to a map of key-value pairs.
func SettingsToMap(settings Settings) map[string]string {
	return map[string]string{
		constants.SettingRefreshIntervalSec:   fmt.Sprintf("%d", settings.RefreshIntervalSec),
		constants.SettingNotificationsEnabled: fmt.Sprintf("%v", settings.NotificationsEnabled),
		constants.SettingTrayNotifications:    fmt.Sprintf("%v", settings.TrayNotifications),
		constants.SettingChartDays:            fmt.Sprintf("%d", settings.ChartDays),
		constants.SettingRevealPersonal:       fmt.Sprintf("%v", settings.RevealPersonal),
	}
}

// DefaultSettings returns the settings written on first init.
func DefaultSettings() Settings {
	return Settings{
		RefreshIntervalSec:   constants.DefaultRefreshIntervalSec,
		NotificationsEnabled: constants.DefaultNotificationsEnabled,
		TrayNotifications:    constants.DefaultTrayNotifications,
		ChartDays:            constants.DefaultChartDays,
		RevealPersonal:       constants.DefaultRevealPersonal,
	}
}

// ApplyDefaultSettings applies default values to missing settings.
func ApplyDefaultSettings(settings *Settings) {
	if settings.RefreshIntervalSec <= 0 {
		settings.RefreshIntervalSec = constants.DefaultRefreshIntervalSec
	}
	if settings.ChartDays != 7 && settings.ChartDays != 30 {
		settings.ChartDays = constants.DefaultChartDays
	}
}
