package service

import (
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/edugrade-api/internal/models"
)

// NewValidator returns a validator that understands gradebook payloads. GradeValue fields are
// validated through their display string, so the "gradevalue" rule sees "2.5" or "+".
func NewValidator() *validator.Validate {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(models.GradeValue); ok {
			return v.String()
		}
		return nil
	}, models.GradeValue{})
	validate.RegisterValidation("gradevalue", func(fl validator.FieldLevel) bool {
		raw := fl.Field().String()
		if models.Mark(raw).Valid() {
			return true
		}
		n, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return false
		}
		return n >= models.MinNumericGrade && n <= models.MaxNumericGrade
	})
	return validate
}

// validationMessage flattens validator errors into a single readable line.
func validationMessage(err error) string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return "invalid payload"
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		// Namespace starts with the root struct name, e.g. "Gradebook.students[0].grades[1].value".
		field := fe.Namespace()
		if idx := strings.Index(field, "."); idx >= 0 {
			field = field[idx+1:]
		}
		if fe.Param() != "" {
			parts = append(parts, field+" failed "+fe.Tag()+"="+fe.Param())
		} else {
			parts = append(parts, field+" failed "+fe.Tag())
		}
	}
	return strings.Join(parts, "; ")
}
