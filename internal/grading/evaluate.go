package grading

import (
	"time"

	"github.com/noah-isme/edugrade-api/internal/models"
)

// Config is the immutable settings snapshot an evaluation runs against.
type Config struct {
	Categories []models.Category
	PlusMinus  PlusMinusConfig
	Trend      TrendOptions
	Now        time.Time
}

// ConfigFromGradebook derives an evaluation config from a gradebook document. Missing
// plus/minus settings take their defaults, and in start-grade mode a zero step counts as
// missing. An empty range table is kept as is, so classification falls back to the default
// thresholds.
func ConfigFromGradebook(gb *models.Gradebook, trend TrendOptions, now time.Time) Config {
	percentages := models.DefaultPlusMinusPercentages()
	if gb.PlusMinusPercentages != nil {
		percentages = *gb.PlusMinusPercentages
	}
	mode := models.DefaultPlusMinusGradeSettings()
	if gb.PlusMinusGradeSettings != nil {
		mode = *gb.PlusMinusGradeSettings
		if mode.Mode == "" {
			mode.Mode = models.PlusMinusModePercentage
		}
		defaults := models.DefaultPlusMinusGradeSettings()
		if mode.StartGrade == 0 {
			mode.StartGrade = defaults.StartGrade
		}
		if mode.Mode == models.PlusMinusModeStartGrade {
			if mode.PlusValue == 0 {
				mode.PlusValue = defaults.PlusValue
			}
			if mode.MinusValue == 0 {
				mode.MinusValue = defaults.MinusValue
			}
		}
	}
	return Config{
		Categories: gb.Categories,
		PlusMinus: PlusMinusConfig{
			Percentages: percentages,
			GradeMode:   mode,
			Ranges:      gb.GradePercentageRanges,
		},
		Trend: trend,
		Now:   now,
	}
}

// CategoryResult is the per-category breakdown of a student evaluation.
type CategoryResult struct {
	CategoryID     string
	CategoryName   string
	Weight         float64
	Average        float64
	HasAverage     bool
	NumericCount   int
	PlusCount      int
	NeutralCount   int
	MinusCount     int
	MarkPercentage float64
	MarkGrade      float64
	HasMarks       bool
}

// StudentEvaluation is the complete computed picture of one student's grades.
type StudentEvaluation struct {
	Grades     []models.Grade
	Categories []CategoryResult
	Average    float64
	Percentage float64
	Final      FinalGrade
	Trend      Trend
}

// EvaluateStudent normalizes, aggregates and classifies a student's grades, optionally
// restricted to one subject.
func EvaluateStudent(cfg Config, grades []models.Grade, subjectID string) StudentEvaluation {
	normalized := NormalizeGrades(grades, cfg.Categories, cfg.Now)
	scoped := FilterBySubject(normalized, subjectID)
	aggregates := AggregateByCategory(scoped)

	results := make([]CategoryResult, 0, len(aggregates))
	weighted := make([]WeightedCategory, 0, len(aggregates))
	for _, id := range categoryOrder(cfg.Categories, aggregates) {
		agg := aggregates[id]
		result := CategoryResult{
			CategoryID:   agg.CategoryID,
			CategoryName: agg.CategoryName,
			Weight:       agg.Weight,
			NumericCount: len(agg.NumericValues),
			PlusCount:    agg.PlusCount,
			NeutralCount: agg.NeutralCount,
			MinusCount:   agg.MinusCount,
		}
		if pct, ok := MarkPercentage(agg, cfg.PlusMinus.Percentages); ok {
			result.MarkPercentage = pct
			result.HasMarks = true
		}
		if pm, ok := ConvertPlusMinus(agg, cfg.PlusMinus); ok {
			result.MarkGrade = pm
		}
		result.Average, result.HasAverage = CategoryAverage(agg, cfg.PlusMinus)

		results = append(results, result)
		weighted = append(weighted, WeightedCategory{
			CategoryID: agg.CategoryID,
			Average:    result.Average,
			Weight:     agg.Weight,
			HasAverage: result.HasAverage,
		})
	}

	avg := ComputeWeightedAverage(weighted)
	eval := StudentEvaluation{
		Grades:     scoped,
		Categories: results,
		Average:    avg,
		Final:      ComputeFinalGrade(avg, cfg.PlusMinus.Ranges),
		Trend:      ComputeTrend(scoped, cfg.Trend),
	}
	if avg != NoData {
		eval.Percentage = PercentageForAverage(avg)
	}
	return eval
}

// categoryOrder lists roster categories first, in roster order, then any category only known
// from grade snapshots.
func categoryOrder(roster []models.Category, aggregates CategoryAggregates) []string {
	order := make([]string, 0, len(aggregates))
	seen := make(map[string]bool, len(aggregates))
	for _, c := range roster {
		if _, ok := aggregates[c.ID]; ok && !seen[c.ID] {
			order = append(order, c.ID)
			seen[c.ID] = true
		}
	}
	for _, id := range aggregates.SortedIDs() {
		if !seen[id] {
			order = append(order, id)
		}
	}
	return order
}
