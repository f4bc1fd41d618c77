package metrics

import (
	"strconv"
	"strings"
)

// Tier buckets a completion rate for colouring the progress bar
type Tier int

const (
	TierLow Tier = iota
	TierStarted
	TierHalfway
	TierStrong
	TierPerfect
)

// ProgressTier buckets a 0-100 completion rate
func ProgressTier(rate float64) Tier {
	switch {
	case rate >= 100:
		return TierPerfect
	case rate >= 75:
		return TierStrong
	case rate >= 50:
		return TierHalfway
	case rate >= 25:
		return TierStarted
	default:
		return TierLow
	}
}

// MotivationalMessage picks the progress blurb for the given rate and local hour
func MotivationalMessage(rate float64, hour int) string {
	evening := hour >= 18
	morning := hour >= 5 && hour < 12

	switch ProgressTier(rate) {
	case TierPerfect:
		return "🎉 Perfect day! All habits completed!"
	case TierStrong:
		if evening {
			return "🔥 Strong finish today!"
		}
		return "💪 Great momentum going!"
	case TierHalfway:
		if evening {
			return "⚡ Still time to finish strong!"
		}
		return "🎯 You're halfway there!"
	case TierStarted:
		if morning {
			return "🌅 Early start! Keep building!"
		}
		return "🚀 Ready to level up?"
	default:
		if morning {
			return "☀️ Fresh start awaits!"
		}
		return "💎 Every small step counts!"
	}
}

// Recency classifies how long ago a self-care activity was done
type Recency int

const (
	RecencyNever Recency = iota
	RecencyToday
	RecencyRecent
	RecencyWarning
	RecencyOverdue
)

// SelfcareTone classifies days since the last occurrence; nil means never
func SelfcareTone(daysSince *int) Recency {
	switch {
	case daysSince == nil:
		return RecencyNever
	case *daysSince == 0:
		return RecencyToday
	case *daysSince <= 3:
		return RecencyRecent
	case *daysSince <= 7:
		return RecencyWarning
	default:
		return RecencyOverdue
	}
}

// SelfcareLabel renders days since the last occurrence
func SelfcareLabel(daysSince *int) string {
	switch {
	case daysSince == nil:
		return "Never"
	case *daysSince == 0:
		return "Today"
	default:
		return strconv.Itoa(*daysSince) + "d"
	}
}

// GradeTone returns the grade letter bucket (A-D) or "" when unknown
func GradeTone(grade *string) string {
	if grade == nil {
		return ""
	}
	g := strings.ToUpper(strings.TrimSpace(*grade))
	if g == "" {
		return ""
	}
	switch g[0] {
	case 'A', 'B', 'C', 'D':
		return g[:1]
	}
	return ""
}
