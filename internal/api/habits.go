package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/julianstephens/habitdash/internal/constants"
	"github.com/julianstephens/habitdash/internal/models"
)

// ListHabits returns every active habit with its server-computed streaks
func (c *Client) ListHabits(ctx context.Context) ([]models.Habit, error) {
	var habits []models.Habit
	if err := c.get(ctx, constants.PathHabits, &habits); err != nil {
		return nil, err
	}
	if habits == nil {
		return nil, invalid(constants.PathHabits, errors.New("expected an array of habits"))
	}
	if err := validateAll(constants.PathHabits, habits); err != nil {
		return nil, err
	}
	return habits, nil
}

// RefreshHabits asks the backend to recompute streaks. The body is optional.
func (c *Client) RefreshHabits(ctx context.Context) (models.RefreshResult, error) {
	var result models.RefreshResult
	err := c.do(ctx, http.MethodGet, constants.PathHabitsRefresh, nil, &result, true)
	return result, err
}

// UpdateHabit sends a partial update; only fields set on update are encoded
func (c *Client) UpdateHabit(ctx context.Context, id string, update models.HabitUpdate) error {
	if id == "" {
		return fmt.Errorf("habit id cannot be empty")
	}
	if err := update.Validate(); err != nil {
		return err
	}
	return c.do(ctx, http.MethodPut, habitPath(id), update, nil, true)
}

// HideHabit soft-deletes a habit so it drops out of ListHabits
func (c *Client) HideHabit(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("habit id cannot be empty")
	}
	return c.do(ctx, http.MethodDelete, habitPath(id), nil, nil, true)
}

// RestoreHabit reverses HideHabit
func (c *Client) RestoreHabit(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("habit id cannot be empty")
	}
	path := fmt.Sprintf(constants.PathHabitRestore, url.PathEscape(id))
	return c.do(ctx, http.MethodPost, path, nil, nil, true)
}

// ListHiddenHabits returns the habits hidden with HideHabit
func (c *Client) ListHiddenHabits(ctx context.Context) ([]models.HiddenHabit, error) {
	var hidden []models.HiddenHabit
	if err := c.get(ctx, constants.PathHabitsHidden, &hidden); err != nil {
		return nil, err
	}
	if hidden == nil {
		hidden = []models.HiddenHabit{}
	}
	if err := validateAll(constants.PathHabitsHidden, hidden); err != nil {
		return nil, err
	}
	return hidden, nil
}

func habitPath(id string) string {
	return fmt.Sprintf(constants.PathHabit, url.PathEscape(id))
}
