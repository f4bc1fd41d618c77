package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/habitdash/internal/constants"
	"github.com/julianstephens/habitdash/internal/metrics"
)

var (
	activeTabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205")).
			Background(lipgloss.Color("236")).
			Padding(0, 1).
			Bold(true)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240")).
				Padding(0, 1)

	docStyle = lipgloss.NewStyle().Padding(1, 2)

	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	mutedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	dangerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))

	cardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	tileStyle = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("238")).
			Padding(0, 1).
			MarginRight(1)

	bannerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("230")).
			Background(lipgloss.Color("35")).
			Padding(0, 1).
			Bold(true)

	toastStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("205")).
			Padding(0, 1)

	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205")).Bold(true)

	barStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("63"))
)

func toneStyle(t constants.Tone) lipgloss.Style {
	switch t {
	case constants.TonePositive:
		return successStyle
	case constants.ToneNegative:
		return dangerStyle
	default:
		return mutedStyle
	}
}

func streakStyle(s metrics.StreakState) lipgloss.Style {
	switch s {
	case metrics.StreakRecordBreaking:
		return warningStyle.Bold(true)
	case metrics.StreakActive:
		return successStyle
	default:
		return mutedStyle
	}
}

func tierColor(t metrics.Tier) lipgloss.Color {
	switch t {
	case metrics.TierPerfect:
		return lipgloss.Color("42")
	case metrics.TierStrong:
		return lipgloss.Color("35")
	case metrics.TierHalfway:
		return lipgloss.Color("214")
	case metrics.TierStarted:
		return lipgloss.Color("208")
	default:
		return lipgloss.Color("240")
	}
}

func gradeStyle(grade string) lipgloss.Style {
	switch grade {
	case "A":
		return successStyle.Bold(true)
	case "B":
		return lipgloss.NewStyle().Foreground(lipgloss.Color("35"))
	case "C":
		return warningStyle
	case "D":
		return dangerStyle
	default:
		return mutedStyle
	}
}

func recencyStyle(r metrics.Recency) lipgloss.Style {
	switch r {
	case metrics.RecencyToday:
		return successStyle
	case metrics.RecencyRecent:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("35"))
	case metrics.RecencyWarning:
		return warningStyle
	case metrics.RecencyOverdue:
		return dangerStyle
	default:
		return mutedStyle
	}
}
