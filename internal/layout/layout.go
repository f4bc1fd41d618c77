// Package layout orders habit cards for display
package layout

import (
	"sort"

	"github.com/julianstephens/habitdash/internal/models"
)

// Sort returns the habits in display order. Habits with a local override come
// first by override position; the rest follow by server order. Ties keep
// their input order.
func Sort(habits []models.Habit, overrides map[string]int) []models.Habit {
	out := append([]models.Habit(nil), habits...)
	sort.SliceStable(out, func(i, j int) bool {
		pi, oki := overrides[out[i].ID]
		pj, okj := overrides[out[j].ID]
		switch {
		case oki && okj:
			return pi < pj
		case oki != okj:
			return oki
		default:
			return out[i].Order < out[j].Order
		}
	})
	return out
}

// IDs returns the habit ids in order
func IDs(habits []models.Habit) []string {
	ids := make([]string, len(habits))
	for i, h := range habits {
		ids[i] = h.ID
	}
	return ids
}

// Move returns a copy of ids with the element at from moved to index to.
// Out-of-range indexes return an unchanged copy.
func Move(ids []string, from, to int) []string {
	out := append([]string(nil), ids...)
	if from < 0 || from >= len(out) || to < 0 || to >= len(out) || from == to {
		return out
	}
	id := out[from]
	out = append(out[:from], out[from+1:]...)
	out = append(out[:to], append([]string{id}, out[to:]...)...)
	return out
}

// Positions converts an ordered id list into override positions
func Positions(ids []string) map[string]int {
	pos := make(map[string]int, len(ids))
	for i, id := range ids {
		pos[id] = i
	}
	return pos
}

// Rows splits habits into rows of n cards. n below 1 is treated as 1.
func Rows(habits []models.Habit, n int) [][]models.Habit {
	if n < 1 {
		n = 1
	}
	var rows [][]models.Habit
	for start := 0; start < len(habits); start += n {
		end := start + n
		if end > len(habits) {
			end = len(habits)
		}
		rows = append(rows, habits[start:end])
	}
	return rows
}
