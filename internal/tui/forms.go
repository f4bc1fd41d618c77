package tui

import (
	"errors"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/habitdash/internal/models"
)

// NewHabitForm creates the form for editing habit metadata
func NewHabitForm(fm *HabitFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Name").
				Value(&fm.Name).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("name cannot be empty")
					}
					return nil
				}),
			huh.NewInput().
				Title("Emoji").
				Description("Up to 2 characters").
				Value(&fm.Emoji).
				Validate(func(s string) error {
					if len([]rune(strings.TrimSpace(s))) > 2 {
						return errors.New("emoji must be at most 2 characters")
					}
					return nil
				}),
			huh.NewConfirm().
				Title("Personal").
				Description("Personal habits are redacted until revealed").
				Value(&fm.Personal),
		),
	)
}

func habitFormFrom(h models.Habit) *HabitFormModel {
	return &HabitFormModel{
		Name:     h.Name,
		Emoji:    h.Emoji,
		Personal: h.IsPersonal,
	}
}

// Update returns the fields of the form that differ from h. ok is false when
// nothing changed.
func (fm *HabitFormModel) Update(h models.Habit) (update models.HabitUpdate, ok bool) {
	name := strings.TrimSpace(fm.Name)
	emoji := strings.TrimSpace(fm.Emoji)
	if name != h.Name {
		update.Name = &name
	}
	if emoji != h.Emoji {
		update.Emoji = &emoji
	}
	if fm.Personal != h.IsPersonal {
		personal := fm.Personal
		update.IsPersonal = &personal
	}
	return update, update.Name != nil || update.Emoji != nil || update.IsPersonal != nil
}
