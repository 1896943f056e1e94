package grading

import (
	"math"

	"github.com/noah-isme/edugrade-api/internal/models"
)

// PlusMinusConfig bundles the settings that convert ternary marks into a grade.
type PlusMinusConfig struct {
	Percentages models.PlusMinusPercentages
	GradeMode   models.PlusMinusGradeSettings
	Ranges      []models.PercentageRange
}

// MarkPercentage returns the weighted mark percentage of a category. It reports false when
// the category holds no marks.
func MarkPercentage(agg *CategoryAggregate, pct models.PlusMinusPercentages) (float64, bool) {
	total := agg.MarkCount()
	if total == 0 {
		return 0, false
	}
	sum := float64(agg.PlusCount)*pct.Plus + float64(agg.NeutralCount)*pct.Neutral + float64(agg.MinusCount)*pct.Minus
	return sum / float64(total), true
}

// ConvertPlusMinus turns a category's marks into one equivalent numeric grade. It reports
// false when the category holds no marks.
func ConvertPlusMinus(agg *CategoryAggregate, cfg PlusMinusConfig) (float64, bool) {
	if agg.MarkCount() == 0 {
		return 0, false
	}
	if cfg.GradeMode.Mode == models.PlusMinusModeStartGrade {
		return startGradeEquivalent(agg, cfg.GradeMode), true
	}
	pct, _ := MarkPercentage(agg, cfg.Percentages)
	grade, _ := ClassifyWithFallback(pct, cfg.Ranges)
	return float64(grade), true
}

func startGradeEquivalent(agg *CategoryAggregate, s models.PlusMinusGradeSettings) float64 {
	g := s.StartGrade - float64(agg.PlusCount)*s.PlusValue + float64(agg.MinusCount)*s.MinusValue
	return math.Min(models.MaxNumericGrade, math.Max(models.MinNumericGrade, g))
}

// CategoryAverage averages a category's numeric grades. All marks collapse into a single
// synthetic grade that counts as one more data point, however many marks were recorded.
// It reports false when the category has nothing to average.
func CategoryAverage(agg *CategoryAggregate, cfg PlusMinusConfig) (float64, bool) {
	sum := 0.0
	for _, v := range agg.NumericValues {
		sum += v
	}
	count := len(agg.NumericValues)

	if pm, ok := ConvertPlusMinus(agg, cfg); ok {
		sum += pm
		count++
	}
	if count == 0 {
		return 0, false
	}
	return sum / float64(count), true
}
