package metrics

import "testing"

func TestProgressTier(t *testing.T) {
	tests := []struct {
		rate float64
		want Tier
	}{
		{0, TierLow},
		{24.9, TierLow},
		{25, TierStarted},
		{50, TierHalfway},
		{75, TierStrong},
		{99.9, TierStrong},
		{100, TierPerfect},
	}
	for _, tt := range tests {
		if got := ProgressTier(tt.rate); got != tt.want {
			t.Errorf("ProgressTier(%v) = %v, want %v", tt.rate, got, tt.want)
		}
	}
}

func TestMotivationalMessage(t *testing.T) {
	tests := []struct {
		name string
		rate float64
		hour int
		want string
	}{
		{"perfect", 100, 9, "🎉 Perfect day! All habits completed!"},
		{"strong evening", 80, 20, "🔥 Strong finish today!"},
		{"strong daytime", 80, 13, "💪 Great momentum going!"},
		{"halfway evening", 50, 19, "⚡ Still time to finish strong!"},
		{"started morning", 30, 7, "🌅 Early start! Keep building!"},
		{"started afternoon", 30, 15, "🚀 Ready to level up?"},
		{"low morning", 0, 6, "☀️ Fresh start awaits!"},
		{"low night", 0, 23, "💎 Every small step counts!"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MotivationalMessage(tt.rate, tt.hour); got != tt.want {
				t.Errorf("MotivationalMessage(%v, %d) = %q, want %q", tt.rate, tt.hour, got, tt.want)
			}
		})
	}
}

func TestSelfcareTone(t *testing.T) {
	days := func(n int) *int { return &n }
	tests := []struct {
		days  *int
		want  Recency
		label string
	}{
		{nil, RecencyNever, "Never"},
		{days(0), RecencyToday, "Today"},
		{days(3), RecencyRecent, "3d"},
		{days(7), RecencyWarning, "7d"},
		{days(12), RecencyOverdue, "12d"},
	}
	for _, tt := range tests {
		if got := SelfcareTone(tt.days); got != tt.want {
			t.Errorf("SelfcareTone() = %v, want %v", got, tt.want)
		}
		if got := SelfcareLabel(tt.days); got != tt.label {
			t.Errorf("SelfcareLabel() = %q, want %q", got, tt.label)
		}
	}
}

func TestGradeTone(t *testing.T) {
	g := func(s string) *string { return &s }
	tests := []struct {
		grade *string
		want  string
	}{
		{nil, ""},
		{g(""), ""},
		{g("a+"), "A"},
		{g("B-"), "B"},
		{g(" c"), "C"},
		{g("D"), "D"},
		{g("F"), ""},
	}
	for _, tt := range tests {
		if got := GradeTone(tt.grade); got != tt.want {
			t.Errorf("GradeTone() = %q, want %q", got, tt.want)
		}
	}
}
