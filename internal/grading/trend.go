package grading

import (
	"sort"

	"github.com/montanaflynn/stats"

	"github.com/noah-isme/edugrade-api/internal/models"
)

// TrendDirection classifies a student's trajectory.
type TrendDirection string

const (
	TrendImproving TrendDirection = "improving"
	TrendStable    TrendDirection = "stable"
	TrendDeclining TrendDirection = "declining"
)

// Trend defaults.
const (
	DefaultTrendMinGrades = 4
	DefaultTrendThreshold = 0.3
)

// TrendOptions tunes the trend analysis.
type TrendOptions struct {
	MinGrades int
	Threshold float64
}

func (o TrendOptions) withDefaults() TrendOptions {
	// Each half needs at least one grade.
	if o.MinGrades < 2 {
		o.MinGrades = DefaultTrendMinGrades
	}
	if o.Threshold <= 0 {
		o.Threshold = DefaultTrendThreshold
	}
	return o
}

// Trend is the outcome of ComputeTrend. Delta is laterMean - earlierMean, so a negative delta
// means better grades.
type Trend struct {
	Direction   TrendDirection
	Delta       float64
	EarlierMean float64
	LaterMean   float64
	Samples     int
}

// ComputeTrend compares the first half of a student's numeric grades with the second half in
// creation order. With an odd count the middle grade belongs to neither half. Marks and grades
// excluded from the average are ignored.
func ComputeTrend(grades []models.Grade, opts TrendOptions) Trend {
	opts = opts.withDefaults()

	numeric := make([]models.Grade, 0, len(grades))
	for _, g := range grades {
		if g.ExcludeFromAverage || g.Value.IsMark() {
			continue
		}
		numeric = append(numeric, g)
	}
	sort.SliceStable(numeric, func(i, j int) bool {
		return numeric[i].CreatedAt.Before(numeric[j].CreatedAt)
	})

	trend := Trend{Direction: TrendStable, Samples: len(numeric)}
	if len(numeric) < opts.MinGrades {
		return trend
	}

	half := len(numeric) / 2
	earlier := values(numeric[:half])
	later := values(numeric[len(numeric)-half:])

	// Mean only fails on empty input, which the MinGrades floor rules out.
	earlierMean, _ := stats.Mean(earlier)
	laterMean, _ := stats.Mean(later)

	trend.EarlierMean = earlierMean
	trend.LaterMean = laterMean
	trend.Delta = laterMean - earlierMean
	switch {
	case trend.Delta < -opts.Threshold:
		trend.Direction = TrendImproving
	case trend.Delta > opts.Threshold:
		trend.Direction = TrendDeclining
	}
	return trend
}

func values(grades []models.Grade) stats.Float64Data {
	out := make(stats.Float64Data, len(grades))
	for i, g := range grades {
		out[i] = g.Value.Numeric
	}
	return out
}
