package grading

import "github.com/noah-isme/edugrade-api/internal/models"

// Grades on the averaged display scale.
const (
	BestGrade  = 1
	WorstGrade = 5
)

// defaultThresholds are the lower percentage bounds for grades 1 through 4; anything below the
// last one is a 5.
var defaultThresholds = [...]float64{85, 70, 55, 40}

// ClassifyPercentage returns the grade of the first range, in table order, whose inclusive
// bounds contain pct. It reports false when no range matches.
func ClassifyPercentage(pct float64, ranges []models.PercentageRange) (int, bool) {
	for _, r := range ranges {
		if pct >= r.MinPercent && pct <= r.MaxPercent {
			return r.Grade, true
		}
	}
	return 0, false
}

// DefaultGradeForPercentage classifies pct with the fixed 85/70/55/40 thresholds.
func DefaultGradeForPercentage(pct float64) int {
	for i, lower := range defaultThresholds {
		if pct >= lower {
			return i + 1
		}
	}
	return WorstGrade
}

// ClassifyWithFallback classifies pct against ranges and falls back to the default thresholds
// on a gap. The second result reports whether the fallback was used.
func ClassifyWithFallback(pct float64, ranges []models.PercentageRange) (int, bool) {
	if grade, ok := ClassifyPercentage(pct, ranges); ok {
		return grade, false
	}
	return DefaultGradeForPercentage(pct), true
}

// PercentageForAverage maps an average on the 1..6 scale to its display percentage.
func PercentageForAverage(avg float64) float64 {
	return (models.MaxNumericGrade - avg) / 5 * 100
}
