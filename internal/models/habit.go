package models

import (
	"fmt"
	"strings"
	"time"
)

// HabitType is the kind of value a habit records on the backend
type HabitType string

const (
	HabitTypeTime        HabitType = "time"
	HabitTypeBinary      HabitType = "binary"
	HabitTypeDescription HabitType = "description"
	HabitTypeGrade       HabitType = "grade"
)

// Valid reports whether t is one of the known habit types
func (t HabitType) Valid() bool {
	switch t {
	case HabitTypeTime, HabitTypeBinary, HabitTypeDescription, HabitTypeGrade:
		return true
	}
	return false
}

// Habit is a tracked habit as returned by the backend. Streak values are
// computed server-side and only ever read by the client.
type Habit struct {
	ID                 string    `json:"id" yaml:"id"`
	Name               string    `json:"name" yaml:"name"`
	Emoji              string    `json:"emoji" yaml:"emoji"`
	HabitType          HabitType `json:"habit_type" yaml:"habit_type"`
	Color              *string   `json:"color,omitempty" yaml:"color,omitempty"`
	Active             bool      `json:"active" yaml:"active"`
	Order              int       `json:"order" yaml:"order"`
	IsPersonal         bool      `json:"is_personal" yaml:"is_personal"`
	CurrentStreak      int       `json:"current_streak" yaml:"current_streak"`
	BestStreak         int       `json:"best_streak" yaml:"best_streak"`
	CompletedToday     bool      `json:"completed_today" yaml:"completed_today"`
	LastCompletionDate *string   `json:"last_completion_date,omitempty" yaml:"last_completion_date,omitempty"` // YYYY-MM-DD
}

func (h *Habit) Validate() error {
	if strings.TrimSpace(h.ID) == "" {
		return fmt.Errorf("habit id cannot be empty")
	}
	if !h.HabitType.Valid() {
		return fmt.Errorf("habit %s: unknown habit type %q", h.ID, h.HabitType)
	}
	if h.CurrentStreak < 0 || h.BestStreak < 0 {
		return fmt.Errorf("habit %s: streaks cannot be negative", h.ID)
	}
	if h.LastCompletionDate != nil && *h.LastCompletionDate != "" {
		if _, err := time.Parse("2006-01-02", *h.LastCompletionDate); err != nil {
			return fmt.Errorf("habit %s: invalid last_completion_date (expected YYYY-MM-DD): %w", h.ID, err)
		}
	}
	return nil
}

// DisplayName returns the name to show, redacting personal habits unless revealed
func (h *Habit) DisplayName(revealed bool) string {
	if h.IsPersonal && !revealed {
		return strings.Repeat("•", len([]rune(h.Name)))
	}
	return h.Name
}

// HabitUpdate is a partial update of habit metadata. Only non-nil fields are sent.
type HabitUpdate struct {
	Name       *string `json:"name,omitempty"`
	Emoji      *string `json:"emoji,omitempty"`
	IsPersonal *bool   `json:"is_personal,omitempty"`
}

func (u *HabitUpdate) Validate() error {
	if u.Name == nil && u.Emoji == nil && u.IsPersonal == nil {
		return fmt.Errorf("update must change at least one of name, emoji or is_personal")
	}
	if u.Name != nil && strings.TrimSpace(*u.Name) == "" {
		return fmt.Errorf("habit name cannot be empty")
	}
	if u.Emoji != nil && len([]rune(*u.Emoji)) > 2 {
		return fmt.Errorf("emoji must be at most 2 characters")
	}
	return nil
}

// HiddenHabit summarizes a soft-hidden habit
type HiddenHabit struct {
	ID    string `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Emoji string `json:"emoji" yaml:"emoji"`
}

func (h *HiddenHabit) Validate() error {
	if strings.TrimSpace(h.ID) == "" {
		return fmt.Errorf("hidden habit id cannot be empty")
	}
	return nil
}

// RefreshResult is the optional body returned by the recomputation endpoint
type RefreshResult struct {
	Message string `json:"message"`
	Count   int    `json:"count"`
}
