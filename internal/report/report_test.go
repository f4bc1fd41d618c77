package report

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"

	"github.com/julianstephens/habitdash/internal/models"
	"github.com/julianstephens/habitdash/internal/store"
)

var testNow = time.Date(2026, 10, 18, 9, 30, 0, 0, time.UTC)

func sampleHabits() []models.Habit {
	return []models.Habit{
		{ID: "h1", Name: "Read", Emoji: "📚", HabitType: models.HabitTypeTime, CurrentStreak: 5, BestStreak: 5, CompletedToday: true},
		{ID: "h2", Name: "Journal", Emoji: "📝", HabitType: models.HabitTypeBinary, IsPersonal: true, CurrentStreak: 2, BestStreak: 9},
		{ID: "h3", Name: "Run", HabitType: models.HabitTypeBinary},
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatTable, false},
		{"table", FormatTable, false},
		{"JSON", FormatJSON, false},
		{" yaml ", FormatYAML, false},
		{"markdown", FormatMarkdown, false},
		{"csv", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFormat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseFormat(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestHabitRows_RedactsPersonal(t *testing.T) {
	rows := HabitRows(sampleHabits(), false)
	if rows[1].Name != "•••••••" {
		t.Errorf("personal habit name = %q, want redacted", rows[1].Name)
	}
	if !rows[1].Personal {
		t.Error("expected personal flag to be kept")
	}
	if rows[0].Status != "Record-breaking" {
		t.Errorf("status = %q, want Record-breaking", rows[0].Status)
	}
	if rows[2].Status != "Inactive" {
		t.Errorf("status = %q, want Inactive", rows[2].Status)
	}

	revealed := HabitRows(sampleHabits(), true)
	if revealed[1].Name != "Journal" {
		t.Errorf("revealed name = %q, want Journal", revealed[1].Name)
	}
}

func TestWriteHabits_Table(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteHabits(&buf, HabitRows(sampleHabits(), false), FormatTable); err != nil {
		t.Fatalf("WriteHabits: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"ID", "STREAK", "📚 Read", "Record-breaking", "h3"} {
		if !strings.Contains(out, want) {
			t.Errorf("table output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "Journal") {
		t.Errorf("table output leaked personal habit name:\n%s", out)
	}
}

func TestWriteHabits_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteHabits(&buf, nil, FormatTable); err != nil {
		t.Fatalf("WriteHabits: %v", err)
	}
	if got := strings.TrimSpace(buf.String()); got != "No habits found" {
		t.Errorf("got %q", got)
	}
}

func TestWriteHabits_JSON(t *testing.T) {
	rows := HabitRows(sampleHabits(), true)
	var buf bytes.Buffer
	if err := WriteHabits(&buf, rows, FormatJSON); err != nil {
		t.Fatalf("WriteHabits: %v", err)
	}
	var got []HabitRow
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, buf.String())
	}
	if diff := cmp.Diff(rows, got); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}
}

func TestWriteHabits_YAML(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteHabits(&buf, HabitRows(sampleHabits()[:1], false), FormatYAML); err != nil {
		t.Fatalf("WriteHabits: %v", err)
	}
	var got []map[string]any
	if err := yaml.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not YAML: %v", err)
	}
	if len(got) != 1 || got[0]["current_streak"] != 5 {
		t.Errorf("unexpected yaml: %s", buf.String())
	}
}

func TestWriteHabits_MarkdownRejected(t *testing.T) {
	if err := WriteHabits(&bytes.Buffer{}, nil, FormatMarkdown); err == nil {
		t.Fatal("expected markdown to be rejected for habit lists")
	}
}

func TestWriteHidden(t *testing.T) {
	hidden := []models.HiddenHabit{{ID: "h9", Name: "Floss", Emoji: "🦷"}}

	var buf bytes.Buffer
	if err := WriteHidden(&buf, hidden, FormatTable); err != nil {
		t.Fatalf("WriteHidden: %v", err)
	}
	if !strings.Contains(buf.String(), "🦷 Floss") {
		t.Errorf("table output = %q", buf.String())
	}

	buf.Reset()
	if err := WriteHidden(&buf, nil, FormatTable); err != nil {
		t.Fatalf("WriteHidden: %v", err)
	}
	if strings.TrimSpace(buf.String()) != "No hidden habits" {
		t.Errorf("empty output = %q", buf.String())
	}
}

func TestNewSummary(t *testing.T) {
	snap := store.Snapshot{
		Habits: sampleHabits(),
		Productivity: store.Productivity{
			Metrics: &models.ProductivityMetrics{
				AvgDailyProductivity:       90,
				MaxDailyProductivity:       240,
				TotalProductiveHours:       10.5,
				AvgDailyProductivityChange: 12.34,
				MaxDailyProductivityChange: -5.25,
				TotalProductiveHoursChange: 0,
			},
		},
	}

	s := NewSummary(snap, "http://localhost:8000", false, testNow)

	if s.Progress.Total != 2 || s.Progress.Completed != 1 {
		t.Errorf("progress = %+v, want 1/2", s.Progress)
	}
	if s.Motivation != "🎯 You're halfway there!" {
		t.Errorf("motivation = %q", s.Motivation)
	}
	want := []KPI{
		{Label: "Avg daily", Value: "1h 30m", Change: "+12.3%", Tone: "positive"},
		{Label: "Best day", Value: "4h", Change: "-5.3%", Tone: "negative"},
		{Label: "Total", Value: "10.5h", Change: "+0.0%", Tone: "positive"},
	}
	if diff := cmp.Diff(want, s.KPIs); diff != "" {
		t.Errorf("KPIs mismatch (-want +got):\n%s", diff)
	}
	if s.Analytics != nil {
		t.Error("expected nil analytics when the snapshot has none")
	}
}

func TestNewSummary_NoMetrics(t *testing.T) {
	s := NewSummary(store.Snapshot{}, "", false, testNow)
	if s.KPIs != nil {
		t.Errorf("KPIs = %v, want nil", s.KPIs)
	}
	if s.Progress.CompletionRate != 0 {
		t.Errorf("rate = %v, want 0", s.Progress.CompletionRate)
	}
}

func TestWriteSummary_Table(t *testing.T) {
	s := NewSummary(store.Snapshot{Habits: sampleHabits()}, "", false, testNow)
	var buf bytes.Buffer
	if err := WriteSummary(&buf, s, FormatTable, 80); err != nil {
		t.Fatalf("WriteSummary: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "Today: 1/2 habits (50%)") {
		t.Errorf("missing progress line:\n%s", out)
	}
	if strings.Contains(out, "Perfect day") {
		t.Errorf("unexpected perfect day banner:\n%s", out)
	}
}

func TestWriteSummary_JSON(t *testing.T) {
	s := NewSummary(store.Snapshot{Habits: sampleHabits()}, "http://x", false, testNow)
	var buf bytes.Buffer
	if err := WriteSummary(&buf, s, FormatJSON, 80); err != nil {
		t.Fatalf("WriteSummary: %v", err)
	}
	var got map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if got["api_url"] != "http://x" {
		t.Errorf("api_url = %v", got["api_url"])
	}
	if _, ok := got["kpis"]; ok {
		t.Error("kpis should be omitted when metrics are missing")
	}
}

func TestMarkdown(t *testing.T) {
	habits := sampleHabits()
	habits[2].CompletedToday = true
	habits[2].Name = "Run | walk"
	s := NewSummary(store.Snapshot{Habits: habits}, "", true, testNow)

	md := Markdown(s)
	for _, want := range []string{"# Habit summary", "**2/2**", "Perfect day", `Run \| walk`, "| 📝 Journal |"} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q:\n%s", want, md)
		}
	}
}

func TestMarkdown_Empty(t *testing.T) {
	md := Markdown(NewSummary(store.Snapshot{}, "", false, testNow))
	if !strings.Contains(md, "_No habits yet._") {
		t.Errorf("markdown = %s", md)
	}
}

func TestRenderMarkdown(t *testing.T) {
	out, err := RenderMarkdown("# Title\n\nSome **bold** text.", 60)
	if err != nil {
		t.Fatalf("RenderMarkdown: %v", err)
	}
	if !strings.Contains(out, "Title") || !strings.Contains(out, "bold") {
		t.Errorf("rendered output = %q", out)
	}

	out, err = RenderMarkdown("   ", 60)
	if err != nil || out != "" {
		t.Errorf("blank input = %q, %v", out, err)
	}
}
