// Package grading turns a student's grade records into category averages, a weighted overall
// average, a final grade and a trend. Every function is pure and works on caller-provided
// snapshots.
package grading

import (
	"strconv"
	"time"

	"github.com/noah-isme/edugrade-api/internal/models"
)

// legacyIDThresholdMillis is 2001-01-01T00:00:00Z in Unix milliseconds. Numeric ids above it
// were generated from the client clock and double as creation timestamps.
const legacyIDThresholdMillis int64 = 978307200000

const syntheticStep = 24 * time.Hour

// NormalizeGrades fills the denormalized category fields and creation timestamps of grades
// recorded under older schemas. The input slice is left untouched. Running it on its own
// output returns the same records.
func NormalizeGrades(grades []models.Grade, categories []models.Category, now time.Time) []models.Grade {
	byID := make(map[string]models.Category, len(categories))
	for _, c := range categories {
		byID[c.ID] = c
	}

	out := make([]models.Grade, len(grades))
	n := len(grades)
	for i, g := range grades {
		if g.CategoryID != "" {
			if cat, ok := byID[g.CategoryID]; ok {
				if g.CategoryName == "" {
					g.CategoryName = cat.Name
				}
				if g.Weight == 0 {
					g.Weight = cat.Weight
				}
			}
		}
		g.IsPlusMinus = g.Value.IsMark()
		if g.CreatedAt.IsZero() {
			g.CreatedAt = createdAtFor(g.ID, i, n, now)
		}
		out[i] = g
	}
	return out
}

func createdAtFor(id string, pos, total int, now time.Time) time.Time {
	if ms, err := strconv.ParseInt(id, 10, 64); err == nil && ms > legacyIDThresholdMillis {
		return time.UnixMilli(ms).UTC()
	}
	return now.Add(-time.Duration(total-1-pos) * syntheticStep).UTC()
}
