package grading

import (
	"math"
	"strconv"

	"github.com/noah-isme/edugrade-api/internal/models"
)

// NoData is the overall average reported when no category contributes.
const NoData = 0.0

// WeightedCategory is one category's contribution to the overall average.
type WeightedCategory struct {
	CategoryID string
	Average    float64
	Weight     float64
	HasAverage bool
}

// ComputeWeightedAverage combines category averages weighted by category weight. Only
// categories with an average take part, so weights need not sum to one. The result is
// clamped to [1, 5], or NoData when the total weight is zero.
//
// Raw grades go up to 6 while the clamp stops at 5; a student failing everything averages
// to 5 here.
func ComputeWeightedAverage(categories []WeightedCategory) float64 {
	weightedSum, totalWeight := 0.0, 0.0
	for _, c := range categories {
		if !c.HasAverage {
			continue
		}
		weightedSum += c.Average * c.Weight
		totalWeight += c.Weight
	}
	if totalWeight == 0 {
		return NoData
	}
	return clamp(weightedSum/totalWeight, BestGrade, WorstGrade)
}

// FinalGrade is the discrete grade displayed for an overall average.
type FinalGrade struct {
	Grade      int
	Label      string
	Percentage float64
	HasGrade   bool
	Fallback   bool
}

// ComputeFinalGrade labels an overall average with a discrete grade. The average is mapped to
// its display percentage and classified with the same table, and the same default
// thresholds, used for ternary marks.
func ComputeFinalGrade(avg float64, ranges []models.PercentageRange) FinalGrade {
	if avg == NoData {
		return FinalGrade{Label: "-"}
	}
	pct := PercentageForAverage(avg)
	grade, fallback := ClassifyWithFallback(pct, ranges)
	return FinalGrade{
		Grade:      grade,
		Label:      strconv.Itoa(grade),
		Percentage: pct,
		HasGrade:   true,
		Fallback:   fallback,
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}
