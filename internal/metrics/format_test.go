package metrics

import (
	"testing"

	"github.com/julianstephens/habitdash/internal/constants"
)

func TestFormatTime(t *testing.T) {
	tests := []struct {
		minutes float64
		want    string
	}{
		{0, "0m"},
		{59, "59m"},
		{60, "1h"},
		{90, "1h 30m"},
		{125, "2h 5m"},
		{59.6, "1h"},
		{29.4, "29m"},
		{-15, "0m"},
	}

	for _, tt := range tests {
		if got := FormatTime(tt.minutes); got != tt.want {
			t.Errorf("FormatTime(%v) = %q, want %q", tt.minutes, got, tt.want)
		}
	}
}

func TestFormatChange(t *testing.T) {
	tests := []struct {
		change float64
		want   string
		tone   constants.Tone
	}{
		{0, "+0.0%", constants.TonePositive},
		{-5.25, "-5.3%", constants.ToneNegative},
		{12.34, "+12.3%", constants.TonePositive},
		{0.05, "+0.1%", constants.TonePositive},
		{-100, "-100.0%", constants.ToneNegative},
		// stored just below the tie
		{0.15, "+0.1%", constants.TonePositive},
		{-0.15, "-0.1%", constants.ToneNegative},
		{1.45, "+1.4%", constants.TonePositive},
		// exact ties round up
		{2.25, "+2.3%", constants.TonePositive},
		{-0.04, "-0.0%", constants.ToneNegative},
	}

	for _, tt := range tests {
		got := FormatChange(tt.change)
		if got.Value != tt.want {
			t.Errorf("FormatChange(%v).Value = %q, want %q", tt.change, got.Value, tt.want)
		}
		if got.Tone != tt.tone {
			t.Errorf("FormatChange(%v).Tone = %q, want %q", tt.change, got.Tone, tt.tone)
		}
	}
}

func TestFormatHours(t *testing.T) {
	tests := []struct {
		hours float64
		want  string
	}{
		{0, "0.0h"},
		{10.5, "10.5h"},
		{12.34, "12.3h"},
		{3, "3.0h"},
		{-2, "0.0h"},
	}
	for _, tt := range tests {
		if got := FormatHours(tt.hours); got != tt.want {
			t.Errorf("FormatHours(%v) = %q, want %q", tt.hours, got, tt.want)
		}
	}
}

func TestFormatRate(t *testing.T) {
	if got := FormatRate(66.666); got != "67%" {
		t.Errorf("FormatRate() = %q, want %q", got, "67%")
	}
}
