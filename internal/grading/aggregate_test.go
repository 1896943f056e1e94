package grading

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/edugrade-api/internal/models"
)

func TestAggregateByCategory(t *testing.T) {
	grades := []models.Grade{
		{CategoryID: "test", CategoryName: "Test", Weight: 0.5, Value: models.NumericValue(2)},
		{CategoryID: "test", CategoryName: "Test", Weight: 0.5, Value: models.NumericValue(4)},
		{CategoryID: "oral", CategoryName: "Oral", Weight: 0.3, IsPlusMinus: true, Value: models.MarkValue(models.MarkPlus)},
		{CategoryID: "oral", CategoryName: "Oral", Weight: 0.3, IsPlusMinus: true, Value: models.MarkValue(models.MarkNeutral)},
		{CategoryID: "oral", CategoryName: "Oral", Weight: 0.3, IsPlusMinus: true, Value: models.MarkValue(models.MarkMinus)},
		{CategoryID: "oral", CategoryName: "Oral", Weight: 0.3, IsPlusMinus: true, Value: models.MarkValue(models.MarkMinus)},
		{CategoryID: "oral", CategoryName: "Oral", Weight: 0.3, Value: models.NumericValue(3)},
	}

	aggs := AggregateByCategory(grades)

	require.Len(t, aggs, 2)
	assert.Equal(t, []float64{2, 4}, aggs["test"].NumericValues)
	assert.Equal(t, 0.5, aggs["test"].Weight)
	assert.Equal(t, 1, aggs["oral"].PlusCount)
	assert.Equal(t, 1, aggs["oral"].NeutralCount)
	assert.Equal(t, 2, aggs["oral"].MinusCount)
	assert.Equal(t, 4, aggs["oral"].MarkCount())
	assert.Equal(t, []float64{3}, aggs["oral"].NumericValues)
	assert.Equal(t, []string{"oral", "test"}, aggs.SortedIDs())
}

func TestAggregateByCategorySkipsExcluded(t *testing.T) {
	grades := []models.Grade{
		{CategoryID: "test", Weight: 0.5, Value: models.NumericValue(2)},
		{CategoryID: "test", Weight: 0.5, Value: models.NumericValue(6), ExcludeFromAverage: true},
		{CategoryID: "bonus", Weight: 0.2, Value: models.NumericValue(1), ExcludeFromAverage: true},
	}

	aggs := AggregateByCategory(grades)

	require.Len(t, aggs, 1)
	assert.Equal(t, []float64{2}, aggs["test"].NumericValues)
}

func TestAggregateByCategoryLastWeightWins(t *testing.T) {
	grades := []models.Grade{
		{CategoryID: "test", Weight: 0.5, Value: models.NumericValue(2)},
		{CategoryID: "test", Weight: 0.4, Value: models.NumericValue(3)},
	}

	aggs := AggregateByCategory(grades)

	assert.Equal(t, 0.4, aggs["test"].Weight)
}

func TestAggregateByCategoryFreshPerCall(t *testing.T) {
	grades := []models.Grade{{CategoryID: "test", Weight: 0.5, Value: models.NumericValue(2)}}

	first := AggregateByCategory(grades)
	first["test"].NumericValues = append(first["test"].NumericValues, 6)
	second := AggregateByCategory(grades)

	assert.Equal(t, []float64{2}, second["test"].NumericValues)
}

func TestFilterBySubject(t *testing.T) {
	grades := []models.Grade{
		{ID: "1", SubjectID: "math"},
		{ID: "2", SubjectID: "bio"},
		{ID: "3"},
	}

	assert.Len(t, FilterBySubject(grades, ""), 3)
	filtered := FilterBySubject(grades, "math")
	require.Len(t, filtered, 1)
	assert.Equal(t, "1", filtered[0].ID)
}

func TestAggregateByCategoryNumericValueIgnoresMarkFlag(t *testing.T) {
	grades := []models.Grade{
		{CategoryID: "oral", Weight: 0.3, IsPlusMinus: true, Value: models.NumericValue(2)},
		{CategoryID: "oral", Weight: 0.3, Value: models.MarkValue(models.MarkPlus)},
	}

	aggs := AggregateByCategory(grades)

	require.Len(t, aggs, 1)
	assert.Equal(t, []float64{2}, aggs["oral"].NumericValues)
	assert.Equal(t, 1, aggs["oral"].PlusCount)
}
