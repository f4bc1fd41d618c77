package models

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"
)

// ChartPoint is one day of the productivity chart. Total is nil when no data
// was collected for the day, which is distinct from a recorded zero. Every
// other numeric key in the payload is a per-category minute count.
type ChartPoint struct {
	Date        string             `yaml:"date"`
	Weekday     string             `yaml:"weekday"`
	Total       *float64           `yaml:"total"`
	DisplayDate string             `yaml:"display_date,omitempty"`
	IsWeekStart bool               `yaml:"is_week_start,omitempty"`
	Categories  map[string]float64 `yaml:"categories,omitempty"`
}

var chartPointKnownKeys = map[string]bool{
	"date":        true,
	"weekday":     true,
	"total":       true,
	"displayDate": true,
	"isWeekStart": true,
}

func (p *ChartPoint) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*p = ChartPoint{}
	if v, ok := raw["date"]; ok {
		if err := json.Unmarshal(v, &p.Date); err != nil {
			return fmt.Errorf("chart point date: %w", err)
		}
	}
	if v, ok := raw["weekday"]; ok {
		if err := json.Unmarshal(v, &p.Weekday); err != nil {
			return fmt.Errorf("chart point weekday: %w", err)
		}
	}
	if v, ok := raw["total"]; ok {
		if err := json.Unmarshal(v, &p.Total); err != nil {
			return fmt.Errorf("chart point total: %w", err)
		}
	}
	if v, ok := raw["displayDate"]; ok {
		_ = json.Unmarshal(v, &p.DisplayDate)
	}
	if v, ok := raw["isWeekStart"]; ok {
		_ = json.Unmarshal(v, &p.IsWeekStart)
	}

	for key, v := range raw {
		if chartPointKnownKeys[key] {
			continue
		}
		var minutes *float64
		if err := json.Unmarshal(v, &minutes); err != nil || minutes == nil {
			// non-numeric extras are not categories
			continue
		}
		if p.Categories == nil {
			p.Categories = make(map[string]float64)
		}
		p.Categories[key] = *minutes
	}
	return nil
}

func (p ChartPoint) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(p.Categories)+5)
	for k, v := range p.Categories {
		out[k] = v
	}
	out["date"] = p.Date
	out["weekday"] = p.Weekday
	out["total"] = p.Total
	if p.DisplayDate != "" {
		out["displayDate"] = p.DisplayDate
	}
	if p.IsWeekStart {
		out["isWeekStart"] = true
	}
	return json.Marshal(out)
}

// HasData reports whether the backend collected any data for the day
func (p ChartPoint) HasData() bool {
	return p.Total != nil
}

func (p *ChartPoint) Validate() error {
	if _, err := time.Parse("2006-01-02", p.Date); err != nil {
		// some variants send full ISO timestamps
		if _, err2 := time.Parse(time.RFC3339, p.Date); err2 != nil {
			return fmt.Errorf("invalid chart date %q: %w", p.Date, err)
		}
	}
	if p.Total != nil && *p.Total < 0 {
		return fmt.Errorf("chart point %s: negative total", p.Date)
	}
	return nil
}

// ChartData is the productivity chart payload with its category colour map
type ChartData struct {
	ChartData      []ChartPoint      `json:"chart_data" yaml:"chart_data"`
	Categories     []string          `json:"categories" yaml:"categories"`
	CategoryColors map[string]string `json:"category_colors" yaml:"category_colors"`
}

func (c *ChartData) Validate() error {
	if c.ChartData == nil {
		return fmt.Errorf("chart_data must be an array")
	}
	for i := range c.ChartData {
		if err := c.ChartData[i].Validate(); err != nil {
			return err
		}
	}
	return nil
}

// CategoryNames returns the declared categories, falling back to the sorted
// union of category keys seen in the points when the payload omits them.
func (c *ChartData) CategoryNames() []string {
	if len(c.Categories) > 0 {
		return c.Categories
	}
	seen := make(map[string]bool)
	var names []string
	for _, p := range c.ChartData {
		for name := range p.Categories {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	sort.Strings(names)
	return names
}
