package api

import (
	"context"
	"fmt"

	"github.com/julianstephens/habitdash/internal/constants"
	"github.com/julianstephens/habitdash/internal/models"
)

// Analytics returns the summary snapshot for today
func (c *Client) Analytics(ctx context.Context) (*models.Analytics, error) {
	var a models.Analytics
	if err := c.get(ctx, constants.PathAnalytics, &a); err != nil {
		return nil, err
	}
	if err := a.Validate(); err != nil {
		return nil, invalid(constants.PathAnalytics, err)
	}
	return &a, nil
}

func (c *Client) ProductivityMetrics(ctx context.Context) (*models.ProductivityMetrics, error) {
	var m models.ProductivityMetrics
	if err := c.get(ctx, constants.PathProductivityMetric, &m); err != nil {
		return nil, err
	}
	if err := m.Validate(); err != nil {
		return nil, invalid(constants.PathProductivityMetric, err)
	}
	return &m, nil
}

// ProductivityChart fetches the 7 or 30 day chart. The 30-day request is
// bounded by the chart timeout regardless of the caller's deadline.
func (c *Client) ProductivityChart(ctx context.Context, days int) (*models.ChartData, error) {
	var path string
	switch days {
	case 7:
		path = constants.PathProductivityChart
	case 30:
		path = constants.PathProductivity30Days
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.chartTimeout)
		defer cancel()
	default:
		return nil, fmt.Errorf("unsupported chart range %d days (want 7 or 30)", days)
	}

	var chart models.ChartData
	if err := c.get(ctx, path, &chart); err != nil {
		return nil, err
	}
	if err := chart.Validate(); err != nil {
		return nil, invalid(path, err)
	}
	return &chart, nil
}

func (c *Client) RecentWorkouts(ctx context.Context) ([]models.Workout, error) {
	var list models.WorkoutList
	if err := c.get(ctx, constants.PathRecentWorkouts, &list); err != nil {
		return nil, err
	}
	if list.Workouts == nil {
		list.Workouts = []models.Workout{}
	}
	if err := validateAll(constants.PathRecentWorkouts, list.Workouts); err != nil {
		return nil, err
	}
	return list.Workouts, nil
}

func (c *Client) SelfcareSummary(ctx context.Context) ([]models.SelfcareActivity, error) {
	var summary models.SelfcareSummary
	if err := c.get(ctx, constants.PathSelfcareSummary, &summary); err != nil {
		return nil, err
	}
	if summary.Activities == nil {
		summary.Activities = []models.SelfcareActivity{}
	}
	if err := validateAll(constants.PathSelfcareSummary, summary.Activities); err != nil {
		return nil, err
	}
	return summary.Activities, nil
}

// ExternalLinks returns the shortcuts configured on the backend
func (c *Client) ExternalLinks(ctx context.Context) ([]models.ExternalLink, error) {
	var links models.ExternalLinks
	if err := c.get(ctx, constants.PathExternalLinks, &links); err != nil {
		return nil, err
	}
	if links.Links == nil {
		links.Links = []models.ExternalLink{}
	}
	return links.Links, nil
}
