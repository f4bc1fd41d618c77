// Package notifications turns habit-list snapshots into streak celebrations.
// A Center lives for one session: each notification id fires at most once.
package notifications

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/julianstephens/habitdash/internal/constants"
	"github.com/julianstephens/habitdash/internal/logger"
	"github.com/julianstephens/habitdash/internal/metrics"
	"github.com/julianstephens/habitdash/internal/models"
)

// Notification is a transient message shown on top of the dashboard
type Notification struct {
	ID        string                     `json:"id"`
	Kind      constants.NotificationKind `json:"kind"`
	HabitID   string                     `json:"habit_id,omitempty"`
	Streak    int                        `json:"streak,omitempty"`
	Title     string                     `json:"title"`
	Message   string                     `json:"message"`
	Duration  time.Duration              `json:"duration"`
	CreatedAt time.Time                  `json:"created_at"`
}

// ExpiresAt returns the instant the notification stops being shown
func (n Notification) ExpiresAt() time.Time {
	return n.CreatedAt.Add(n.Duration)
}

// Text is the single-line form used by the CLI and the tray listener
func (n Notification) Text() string {
	return fmt.Sprintf("%s %s", n.Title, n.Message)
}

// Center evaluates habit snapshots and tracks which notifications are showing
type Center struct {
	mu     sync.Mutex
	seen   map[string]struct{}
	active []Notification
}

func NewCenter() *Center {
	return &Center{
		seen: make(map[string]struct{}),
	}
}

// Candidates computes every notification the snapshot qualifies for, without
// consulting or updating session state.
func Candidates(habits []models.Habit, now time.Time) []Notification {
	var out []Notification

	for _, h := range habits {
		if h.CurrentStreak <= 0 {
			continue
		}

		for _, m := range constants.Milestones {
			if h.CurrentStreak == m.Days && h.CurrentStreak >= h.BestStreak {
				out = append(out, Notification{
					ID:        fmt.Sprintf("milestone-%s-%d", h.ID, m.Days),
					Kind:      constants.NotificationMilestone,
					HabitID:   h.ID,
					Streak:    h.CurrentStreak,
					Title:     m.Title,
					Message:   fmt.Sprintf("%s %s: %d-day streak! %s", h.Emoji, h.Name, m.Days, m.Praise),
					Duration:  m.Duration,
					CreatedAt: now,
				})
				break
			}
		}

		if h.CurrentStreak > h.BestStreak && h.CurrentStreak > 1 {
			out = append(out, Notification{
				ID:        fmt.Sprintf("record-%s-%d", h.ID, h.CurrentStreak),
				Kind:      constants.NotificationRecord,
				HabitID:   h.ID,
				Streak:    h.CurrentStreak,
				Title:     "🚀 Personal Record!",
				Message:   fmt.Sprintf("%s %s: %d days! New best!", h.Emoji, h.Name, h.CurrentStreak),
				Duration:  constants.RecordNotificationDuration,
				CreatedAt: now,
			})
		}
	}

	if metrics.IsPerfectDay(habits) {
		out = append(out, Notification{
			ID:        "perfect-day-" + now.Format(constants.DateFormat),
			Kind:      constants.NotificationMotivation,
			Title:     "🎉 Perfect Day!",
			Message:   "All habits completed! You're unstoppable!",
			Duration:  constants.PerfectDayNotificationDuration,
			CreatedAt: now,
		})
	}

	return out
}

// Evaluate runs on every habits-list change. It returns the notifications
// that have not fired before in this session and adds them to the active set.
func (c *Center) Evaluate(habits []models.Habit, now time.Time) []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()

	var fresh []Notification
	for _, n := range Candidates(habits, now) {
		if _, ok := c.seen[n.ID]; ok {
			continue
		}
		c.seen[n.ID] = struct{}{}
		fresh = append(fresh, n)
	}

	if len(fresh) > 0 {
		logger.Debug("Streak notifications fired", "count", len(fresh))
		c.active = append(c.active, fresh...)
	}
	return fresh
}

// Expire drops notifications whose duration has elapsed and reports how many
// were removed.
func (c *Center) Expire(now time.Time) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	kept := c.active[:0]
	removed := 0
	for _, n := range c.active {
		if !now.Before(n.ExpiresAt()) {
			removed++
			continue
		}
		kept = append(kept, n)
	}
	c.active = kept
	return removed
}

// Dismiss removes a notification before it expires. Dismissed notifications
// do not fire again.
func (c *Center) Dismiss(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, n := range c.active {
		if n.ID == id {
			c.active = append(c.active[:i], c.active[i+1:]...)
			return true
		}
	}
	return false
}

// DismissOldest removes the notification that has been showing the longest
func (c *Center) DismissOldest() bool {
	c.mu.Lock()
	if len(c.active) == 0 {
		c.mu.Unlock()
		return false
	}
	id := c.active[0].ID
	c.mu.Unlock()
	return c.Dismiss(id)
}

// Active returns the notifications currently showing, oldest first
func (c *Center) Active() []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Notification, len(c.active))
	copy(out, c.active)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out
}

// NextExpiry returns the earliest expiry among active notifications
func (c *Center) NextExpiry() (time.Time, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.active) == 0 {
		return time.Time{}, false
	}
	next := c.active[0].ExpiresAt()
	for _, n := range c.active[1:] {
		if n.ExpiresAt().Before(next) {
			next = n.ExpiresAt()
		}
	}
	return next, true
}
