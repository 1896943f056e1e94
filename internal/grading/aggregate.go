package grading

import (
	"sort"

	"github.com/noah-isme/edugrade-api/internal/models"
)

// CategoryAggregate summarises one category's grades for a student.
type CategoryAggregate struct {
	CategoryID    string
	CategoryName  string
	Weight        float64
	NumericValues []float64
	PlusCount     int
	NeutralCount  int
	MinusCount    int
}

// MarkCount returns the number of ternary marks in the category.
func (a *CategoryAggregate) MarkCount() int {
	return a.PlusCount + a.NeutralCount + a.MinusCount
}

// HasData reports whether anything in the category can contribute to an average.
func (a *CategoryAggregate) HasData() bool {
	return len(a.NumericValues) > 0 || a.MarkCount() > 0
}

// CategoryAggregates maps category ids to their aggregate.
type CategoryAggregates map[string]*CategoryAggregate

// SortedIDs returns the category ids in lexical order.
func (a CategoryAggregates) SortedIDs() []string {
	ids := make([]string, 0, len(a))
	for id := range a {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// FilterBySubject keeps grades recorded for subjectID. An empty subjectID keeps everything.
func FilterBySubject(grades []models.Grade, subjectID string) []models.Grade {
	if subjectID == "" {
		return grades
	}
	filtered := make([]models.Grade, 0, len(grades))
	for _, g := range grades {
		if g.SubjectID == subjectID {
			filtered = append(filtered, g)
		}
	}
	return filtered
}

// AggregateByCategory groups normalized grades by category. Grades excluded from the average
// are skipped. The value decides between marks and numeric grades; the isPlusMinus flag is
// only a hint. When grades of one category carry different weight snapshots the last one
// seen wins.
func AggregateByCategory(grades []models.Grade) CategoryAggregates {
	aggregates := make(CategoryAggregates)
	for _, g := range grades {
		if g.ExcludeFromAverage {
			continue
		}
		agg, ok := aggregates[g.CategoryID]
		if !ok {
			agg = &CategoryAggregate{CategoryID: g.CategoryID}
			aggregates[g.CategoryID] = agg
		}
		if g.CategoryName != "" {
			agg.CategoryName = g.CategoryName
		}
		agg.Weight = g.Weight

		if g.Value.IsMark() {
			switch g.Value.Mark {
			case models.MarkPlus:
				agg.PlusCount++
			case models.MarkNeutral:
				agg.NeutralCount++
			case models.MarkMinus:
				agg.MinusCount++
			}
			continue
		}
		agg.NumericValues = append(agg.NumericValues, g.Value.Numeric)
	}
	return aggregates
}
