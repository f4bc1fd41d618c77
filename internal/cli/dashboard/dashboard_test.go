package dashboard

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/julianstephens/habitdash/internal/apitest"
	"github.com/julianstephens/habitdash/internal/cli/clitest"
	"github.com/julianstephens/habitdash/internal/models"
	"github.com/julianstephens/habitdash/internal/report"
)

func seed(env *clitest.Env) {
	env.Backend.Set(func(b *apitest.Backend) {
		b.Habits = []models.Habit{
			{ID: "h1", Name: "Read", Emoji: "📚", HabitType: models.HabitTypeTime, Active: true, CurrentStreak: 7, BestStreak: 7, CompletedToday: true},
			{ID: "h2", Name: "Run", Emoji: "🏃", HabitType: models.HabitTypeBinary, Active: true, Order: 1},
		}
		b.Analytics = &models.Analytics{TotalHabits: 2, ActiveStreaks: 1, CompletedToday: 1, LongestStreak: 7, CompletionRate: 50}
		b.Metrics = &models.ProductivityMetrics{AvgDailyProductivity: 90, MaxDailyProductivity: 120, TotalProductiveHours: 3, AvgDailyProductivityChange: -5.25}
	})
}

func TestSummary_JSON(t *testing.T) {
	env := clitest.New(t)
	seed(env)

	if err := (&SummaryCmd{Format: "json", Width: 80}).Run(env.Ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	var got report.Summary
	if err := json.Unmarshal(env.Out.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, env.Out.String())
	}
	if got.Progress.Completed != 1 || got.Progress.Total != 2 {
		t.Errorf("progress = %+v", got.Progress)
	}
	if got.Analytics == nil || got.Analytics.LongestStreak != 7 {
		t.Errorf("analytics = %+v", got.Analytics)
	}
	if len(got.KPIs) != 3 || got.KPIs[0].Value != "1h 30m" || got.KPIs[0].Change != "-5.3%" {
		t.Errorf("kpis = %+v", got.KPIs)
	}
	if got.APIURL != env.Backend.URL() {
		t.Errorf("api_url = %q, want %q", got.APIURL, env.Backend.URL())
	}
}

func TestSummary_SecondaryFailuresStillReport(t *testing.T) {
	env := clitest.New(t)
	seed(env)
	env.Backend.Set(func(b *apitest.Backend) {
		b.Analytics = nil
		b.Metrics = nil
	})

	if err := (&SummaryCmd{Format: "table", Width: 80}).Run(env.Ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !strings.Contains(env.Out.String(), "Today: 1/2 habits (50%)") {
		t.Errorf("output = %s", env.Out.String())
	}
	if env.Ctx.Store.Snapshot().Error != "" {
		t.Error("analytics failures must not set the store error")
	}
}

func TestSummary_HabitsFailure(t *testing.T) {
	env := clitest.New(t)
	env.Backend.Set(func(b *apitest.Backend) { b.HabitsStatus = http.StatusServiceUnavailable })

	if err := (&SummaryCmd{Format: "table", Width: 80}).Run(env.Ctx); err == nil {
		t.Fatal("expected the habit list failure to be returned")
	}
}

func TestSummary_Markdown(t *testing.T) {
	env := clitest.New(t)
	seed(env)

	if err := (&SummaryCmd{Format: "markdown", Width: 60}).Run(env.Ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	out := env.Out.String()
	if !strings.Contains(out, "Habit summary") || !strings.Contains(out, "Read") {
		t.Errorf("markdown output = %s", out)
	}
}

func TestWatch_FiresOncePerSession(t *testing.T) {
	env := clitest.New(t)
	seed(env)

	cmd := &WatchCmd{Interval: time.Millisecond, Count: 3}
	if err := cmd.Run(env.Ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	out := env.Out.String()
	if n := strings.Count(out, "First Week!"); n != 1 {
		t.Errorf("milestone printed %d times, want 1:\n%s", n, out)
	}
	if !strings.HasPrefix(out, "[09:00] ") {
		t.Errorf("expected timestamped lines, got:\n%s", out)
	}
	if len(env.Notifier.Notes()) != 0 {
		t.Error("tray forwarding is off by default")
	}
}

func TestWatch_ForwardsToTray(t *testing.T) {
	env := clitest.New(t)
	seed(env)

	settings := models.DefaultSettings()
	settings.TrayNotifications = true
	if err := env.Prefs.SaveSettings(settings); err != nil {
		t.Fatal(err)
	}

	if err := (&WatchCmd{Interval: time.Millisecond, Count: 1}).Run(env.Ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	notes := env.Notifier.Notes()
	if len(notes) != 1 || notes[0].ID != "milestone-h1-7" {
		t.Fatalf("forwarded = %+v", notes)
	}

	env.Out.Reset()
	if err := (&WatchCmd{Interval: time.Millisecond, Count: 1, NoTray: true}).Run(env.Ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if len(env.Notifier.Notes()) != 1 {
		t.Error("--no-tray should not forward")
	}
}

func TestWatch_NotificationsDisabled(t *testing.T) {
	env := clitest.New(t)
	seed(env)

	settings := models.DefaultSettings()
	settings.NotificationsEnabled = false
	if err := env.Prefs.SaveSettings(settings); err != nil {
		t.Fatal(err)
	}

	if err := (&WatchCmd{Interval: time.Millisecond, Count: 1}).Run(env.Ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if env.Out.Len() != 0 {
		t.Errorf("expected no output, got %q", env.Out.String())
	}
}

func TestWatch_KeepsPollingAfterFailure(t *testing.T) {
	env := clitest.New(t)
	env.Backend.Set(func(b *apitest.Backend) { b.HabitsStatus = http.StatusBadGateway })

	if err := (&WatchCmd{Interval: time.Millisecond, Count: 2}).Run(env.Ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if n := strings.Count(env.Out.String(), "Backend API error (502)"); n != 2 {
		t.Errorf("expected two failure lines, got %d:\n%s", n, env.Out.String())
	}
}
