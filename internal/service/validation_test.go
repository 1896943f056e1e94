package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/edugrade-api/internal/models"
)

func TestNewValidatorGradeValue(t *testing.T) {
	validate := NewValidator()

	valid := []models.GradeValue{
		models.NumericValue(1),
		models.NumericValue(2.5),
		models.NumericValue(6),
		models.MarkValue(models.MarkPlus),
		models.MarkValue(models.MarkNeutral),
		models.MarkValue(models.MarkMinus),
	}
	for _, v := range valid {
		assert.NoError(t, validate.Struct(models.Grade{Value: v}), v.String())
	}

	invalid := []models.GradeValue{
		{},
		models.NumericValue(0.5),
		models.NumericValue(6.5),
		models.MarkValue("*"),
	}
	for _, v := range invalid {
		assert.Error(t, validate.Struct(models.Grade{Value: v}), v.String())
	}
}

func TestValidationMessageUsesJSONPaths(t *testing.T) {
	validate := NewValidator()
	gb := models.Gradebook{
		Categories: []models.Category{{ID: "c1", Weight: 2}},
	}

	err := validate.Struct(gb)
	assert.Error(t, err)
	assert.Equal(t, "categories[0].weight failed lte=1", validationMessage(err))
}
