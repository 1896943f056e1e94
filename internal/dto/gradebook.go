package dto

import (
	"time"

	"github.com/noah-isme/edugrade-api/internal/models"
)

// NormalizeRequest captures POST /gradebook/normalize payload.
type NormalizeRequest struct {
	Grades     []models.Grade    `json:"grades" validate:"dive"`
	Categories []models.Category `json:"categories" validate:"dive"`
}

// NormalizeResponse returns the completed grade records.
type NormalizeResponse struct {
	Grades []models.Grade `json:"grades"`
}

// ClassifyRequest captures POST /gradebook/classify payload. Ranges default to the stock table.
type ClassifyRequest struct {
	Percentage *float64                 `json:"percentage" validate:"required,gte=0,lte=100"`
	Ranges     []models.PercentageRange `json:"ranges,omitempty" validate:"omitempty,max=5,dive"`
}

// ClassifyResponse reports the grade for a percentage. Matched is false when no range covered
// the value; Fallback marks grades taken from the default thresholds.
type ClassifyResponse struct {
	Percentage float64 `json:"percentage"`
	Grade      int     `json:"grade"`
	Matched    bool    `json:"matched"`
	Fallback   bool    `json:"fallback"`
}

// PercentageResponse maps an average to its display percentage.
type PercentageResponse struct {
	Average    float64 `json:"average"`
	Percentage float64 `json:"percentage"`
}

// DefaultsResponse lists the stock gradebook settings.
type DefaultsResponse struct {
	GradePercentageRanges  []models.PercentageRange      `json:"gradePercentageRanges"`
	PlusMinusPercentages   models.PlusMinusPercentages   `json:"plusMinusPercentages"`
	PlusMinusGradeSettings models.PlusMinusGradeSettings `json:"plusMinusGradeSettings"`
	TrendMinGrades         int                           `json:"trendMinGrades"`
	TrendThreshold         float64                       `json:"trendThreshold"`
}

// CategoryReport is one category row of a student report.
type CategoryReport struct {
	CategoryID     string   `json:"categoryId"`
	CategoryName   string   `json:"categoryName"`
	Weight         float64  `json:"weight"`
	Average        *float64 `json:"average"`
	NumericCount   int      `json:"numericCount"`
	PlusCount      int      `json:"plusCount"`
	NeutralCount   int      `json:"neutralCount"`
	MinusCount     int      `json:"minusCount"`
	MarkPercentage *float64 `json:"markPercentage,omitempty"`
	MarkGrade      *float64 `json:"markGrade,omitempty"`
}

// TrendReport summarises the direction of a student's grades.
type TrendReport struct {
	Direction   string  `json:"direction"`
	Delta       float64 `json:"delta"`
	EarlierMean float64 `json:"earlierMean"`
	LaterMean   float64 `json:"laterMean"`
	Samples     int     `json:"samples"`
}

// FinalGradeReport is the discrete grade shown for an average.
type FinalGradeReport struct {
	Grade    *int   `json:"grade"`
	Label    string `json:"label"`
	Fallback bool   `json:"fallback"`
}

// StudentReport is the computed report for one student.
type StudentReport struct {
	StudentID   string           `json:"studentId"`
	StudentName string           `json:"studentName"`
	ClassID     string           `json:"classId,omitempty"`
	SubjectID   string           `json:"subjectId,omitempty"`
	Revision    string           `json:"revision,omitempty"`
	Fingerprint string           `json:"fingerprint"`
	Average     float64          `json:"average"`
	HasData     bool             `json:"hasData"`
	Percentage  *float64         `json:"percentage"`
	Final       FinalGradeReport `json:"final"`
	Trend       TrendReport      `json:"trend"`
	Categories  []CategoryReport `json:"categories"`
	Grades      []models.Grade   `json:"grades"`
	GeneratedAt time.Time        `json:"generatedAt"`
}

// ClassReportRow is a single student line of a class report.
type ClassReportRow struct {
	StudentID   string           `json:"studentId"`
	StudentName string           `json:"studentName"`
	Average     float64          `json:"average"`
	HasData     bool             `json:"hasData"`
	Percentage  *float64         `json:"percentage"`
	Final       FinalGradeReport `json:"final"`
	Trend       string           `json:"trend"`
	GradeCount  int              `json:"gradeCount"`
}

// GradeDistribution counts final grades across a class. Mean, Best and Worst only cover
// students with data.
type GradeDistribution struct {
	Counts   map[string]int `json:"counts"`
	Graded   int            `json:"graded"`
	Ungraded int            `json:"ungraded"`
	Mean     *float64       `json:"mean"`
	Best     *float64       `json:"best"`
	Worst    *float64       `json:"worst"`
}

// ClassReport is the computed report for one class.
type ClassReport struct {
	ClassID      string            `json:"classId"`
	ClassName    string            `json:"className"`
	SubjectID    string            `json:"subjectId,omitempty"`
	TeacherName  string            `json:"teacherName,omitempty"`
	Revision     string            `json:"revision,omitempty"`
	Fingerprint  string            `json:"fingerprint"`
	Students     []ClassReportRow  `json:"students"`
	Distribution GradeDistribution `json:"distribution"`
	GeneratedAt  time.Time         `json:"generatedAt"`
}
