package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Mark is a ternary plus/neutral/minus grade symbol.
type Mark string

const (
	// MarkPlus records a positive ternary mark.
	MarkPlus Mark = "+"
	// MarkNeutral records a neutral ternary mark.
	MarkNeutral Mark = "~"
	// MarkMinus records a negative ternary mark.
	MarkMinus Mark = "-"
)

// Valid reports whether the mark is one of the known symbols.
func (m Mark) Valid() bool {
	switch m {
	case MarkPlus, MarkNeutral, MarkMinus:
		return true
	default:
		return false
	}
}

// Numeric grade bounds accepted on input.
const (
	MinNumericGrade = 1.0
	MaxNumericGrade = 6.0
)

// GradeValue holds either a numeric grade or a ternary mark.
type GradeValue struct {
	Numeric float64
	Mark    Mark
}

// NumericValue builds a numeric grade value.
func NumericValue(v float64) GradeValue {
	return GradeValue{Numeric: v}
}

// MarkValue builds a ternary grade value.
func MarkValue(m Mark) GradeValue {
	return GradeValue{Mark: m}
}

// IsMark reports whether the value is a ternary mark.
func (v GradeValue) IsMark() bool {
	return v.Mark != ""
}

// IsZero reports whether no value was provided.
func (v GradeValue) IsZero() bool {
	return v.Mark == "" && v.Numeric == 0
}

// String renders the value the way it is displayed in tables.
func (v GradeValue) String() string {
	if v.IsMark() {
		return string(v.Mark)
	}
	return strconv.FormatFloat(v.Numeric, 'f', -1, 64)
}

// MarshalJSON writes marks as strings and numeric grades as numbers.
func (v GradeValue) MarshalJSON() ([]byte, error) {
	if v.IsMark() {
		return json.Marshal(string(v.Mark))
	}
	return json.Marshal(v.Numeric)
}

// UnmarshalJSON accepts a number, a numeric string or a mark symbol.
func (v *GradeValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*v = GradeValue{}
		return nil
	}
	if len(data) > 0 && data[0] != '"' {
		var n float64
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("grade value: %w", err)
		}
		*v = NumericValue(n)
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("grade value: %w", err)
	}
	raw = strings.TrimSpace(raw)
	if m := Mark(raw); m.Valid() {
		*v = MarkValue(m)
		return nil
	}
	n, err := strconv.ParseFloat(strings.Replace(raw, ",", ".", 1), 64)
	if err != nil {
		return fmt.Errorf("grade value %q is neither numeric nor a mark", raw)
	}
	*v = NumericValue(n)
	return nil
}

// Category is a named, weighted grouping of grades.
type Category struct {
	ID             string  `json:"id" validate:"required"`
	Name           string  `json:"name"`
	Weight         float64 `json:"weight" validate:"gte=0.1,lte=1"`
	AllowPlusMinus bool    `json:"allowPlusMinus"`
	OnlyPlusMinus  bool    `json:"onlyPlusMinus"`
}

// Grade is a single recorded grade. CategoryName and Weight are snapshots taken when the
// grade was entered and stay authoritative after later category edits.
type Grade struct {
	ID                 string     `json:"id"`
	CategoryID         string     `json:"categoryId"`
	CategoryName       string     `json:"categoryName,omitempty"`
	Weight             float64    `json:"weight,omitempty" validate:"gte=0,lte=1"`
	Value              GradeValue `json:"value" validate:"gradevalue"`
	IsPlusMinus        bool       `json:"isPlusMinus"`
	Name               string     `json:"name,omitempty"`
	SubjectID          string     `json:"subjectId,omitempty"`
	CreatedAt          time.Time  `json:"createdAt"`
	ExcludeFromAverage bool       `json:"excludeFromAverage,omitempty"`
	EnteredAsPercent   bool       `json:"enteredAsPercent,omitempty"`
	PercentValue       *float64   `json:"percentValue,omitempty"`
}
