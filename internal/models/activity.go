package models

import (
	"fmt"
	"strings"
)

// Workout is one entry of the recent workout log
type Workout struct {
	Date     string   `json:"date" yaml:"date"`
	Activity string   `json:"activity" yaml:"activity"`
	Time     float64  `json:"time" yaml:"time"` // minutes
	Grade    *string  `json:"grade" yaml:"grade,omitempty"`
	AvgHR    *float64 `json:"avg_hr" yaml:"avg_hr,omitempty"`
}

func (w *Workout) Validate() error {
	if strings.TrimSpace(w.Activity) == "" {
		return fmt.Errorf("workout activity cannot be empty")
	}
	if w.Time < 0 {
		return fmt.Errorf("workout %s: negative duration", w.Activity)
	}
	return nil
}

// WorkoutList is the envelope of the recent-workouts endpoint
type WorkoutList struct {
	Workouts []Workout `json:"workouts"`
}

// SelfcareActivity summarizes a self-care habit by recency or by streak
type SelfcareActivity struct {
	Name          string `json:"name" yaml:"name"`
	DaysSinceLast *int   `json:"days_since_last" yaml:"days_since_last"` // nil: never done
	Icon          string `json:"icon" yaml:"icon"`
	Streak        *int   `json:"streak,omitempty" yaml:"streak,omitempty"`
}

func (s *SelfcareActivity) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return fmt.Errorf("self-care activity name cannot be empty")
	}
	if s.DaysSinceLast != nil && *s.DaysSinceLast < 0 {
		return fmt.Errorf("self-care activity %s: negative days_since_last", s.Name)
	}
	return nil
}

// SelfcareSummary is the envelope of the selfcare-summary endpoint
type SelfcareSummary struct {
	Activities []SelfcareActivity `json:"activities"`
}

// ExternalLink is a shortcut shown in the dashboard header
type ExternalLink struct {
	Name string `json:"name" yaml:"name"`
	URL  string `json:"url" yaml:"url"`
	Icon string `json:"icon" yaml:"icon"`
}

// ExternalLinks is the envelope of the external-links endpoint
type ExternalLinks struct {
	Links []ExternalLink `json:"links"`
}
