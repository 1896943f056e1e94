package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/go-playground/validator/v10"
	"github.com/montanaflynn/stats"
	"go.uber.org/zap"

	"github.com/noah-isme/edugrade-api/internal/dto"
	"github.com/noah-isme/edugrade-api/internal/grading"
	"github.com/noah-isme/edugrade-api/internal/models"
	appErrors "github.com/noah-isme/edugrade-api/pkg/errors"
)

// GradebookServiceConfig tunes report computation.
type GradebookServiceConfig struct {
	CacheTTL time.Duration
	Trend    grading.TrendOptions
}

// GradebookService computes student and class reports from caller-provided gradebook
// snapshots.
type GradebookService struct {
	cache     *CacheService
	metrics   *MetricsService
	validator *validator.Validate
	logger    *zap.Logger
	now       func() time.Time
	cfg       GradebookServiceConfig
}

// GradebookServiceParams groups constructor dependencies.
type GradebookServiceParams struct {
	Cache     *CacheService
	Metrics   *MetricsService
	Validator *validator.Validate
	Logger    *zap.Logger
	Config    GradebookServiceConfig
}

// NewGradebookService constructs a GradebookService with sane defaults.
func NewGradebookService(params GradebookServiceParams) *GradebookService {
	cfg := params.Config
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 10 * time.Minute
	}
	if cfg.Trend.MinGrades <= 0 {
		cfg.Trend.MinGrades = grading.DefaultTrendMinGrades
	}
	if cfg.Trend.Threshold <= 0 {
		cfg.Trend.Threshold = grading.DefaultTrendThreshold
	}
	validate := params.Validator
	if validate == nil {
		validate = NewValidator()
	}
	logger := params.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GradebookService{
		cache:     params.Cache,
		metrics:   params.Metrics,
		validator: validate,
		logger:    logger,
		now:       time.Now,
		cfg:       cfg,
	}
}

// Defaults returns the stock settings applied when a snapshot leaves them out.
func (s *GradebookService) Defaults() dto.DefaultsResponse {
	return dto.DefaultsResponse{
		GradePercentageRanges:  models.DefaultPercentageRanges(),
		PlusMinusPercentages:   models.DefaultPlusMinusPercentages(),
		PlusMinusGradeSettings: models.DefaultPlusMinusGradeSettings(),
		TrendMinGrades:         s.cfg.Trend.MinGrades,
		TrendThreshold:         s.cfg.Trend.Threshold,
	}
}

// Normalize completes grade records written under older schemas.
func (s *GradebookService) Normalize(_ context.Context, req dto.NormalizeRequest) (*dto.NormalizeResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, validationMessage(err))
	}
	return &dto.NormalizeResponse{Grades: grading.NormalizeGrades(req.Grades, req.Categories, s.now())}, nil
}

// Classify maps a percentage to a grade. An empty range table uses the stock table.
func (s *GradebookService) Classify(_ context.Context, req dto.ClassifyRequest) (*dto.ClassifyResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, validationMessage(err))
	}
	ranges := req.Ranges
	if len(ranges) == 0 {
		ranges = models.DefaultPercentageRanges()
	}
	grade, fallback := grading.ClassifyWithFallback(*req.Percentage, ranges)
	return &dto.ClassifyResponse{
		Percentage: *req.Percentage,
		Grade:      grade,
		Matched:    !fallback,
		Fallback:   fallback,
	}, nil
}

// Percentage converts an average on the 1..6 scale to its display percentage.
func (s *GradebookService) Percentage(average float64) (*dto.PercentageResponse, error) {
	if math.IsNaN(average) || average < models.MinNumericGrade || average > models.MaxNumericGrade {
		return nil, appErrors.Clone(appErrors.ErrValidation, "average must be between 1 and 6")
	}
	return &dto.PercentageResponse{Average: average, Percentage: round2(grading.PercentageForAverage(average))}, nil
}

// StudentReport evaluates one student of the snapshot and indicates cache utilisation.
func (s *GradebookService) StudentReport(ctx context.Context, gb *models.Gradebook, studentID, subjectID string) (*dto.StudentReport, bool, error) {
	if err := s.validateSnapshot(gb); err != nil {
		return nil, false, err
	}
	student, ok := gb.FindStudent(studentID)
	if !ok {
		return nil, false, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("student %s not found", studentID))
	}
	fingerprint, err := Fingerprint(gb)
	if err != nil {
		return nil, false, err
	}

	cacheKey := Key("student", fingerprint, studentID, subjectID)
	var cached dto.StudentReport
	if s.cache.Get(ctx, cacheKey, &cached) {
		cached.Revision = gb.Revision
		return &cached, true, nil
	}

	start := time.Now()
	now := s.now().UTC()
	eval := grading.EvaluateStudent(grading.ConfigFromGradebook(gb, s.cfg.Trend, now), student.Grades, subjectID)
	s.metrics.ObserveEvaluation("student", time.Since(start))
	s.metrics.RecordFinalGrade(eval.Final.Label)

	report := &dto.StudentReport{
		StudentID:   student.ID,
		StudentName: student.Name,
		ClassID:     student.ClassID,
		SubjectID:   subjectID,
		Revision:    gb.Revision,
		Fingerprint: fingerprint,
		Average:     round2(eval.Average),
		HasData:     eval.Average != grading.NoData,
		Percentage:  percentagePtr(eval),
		Final:       finalReport(eval.Final),
		Trend:       trendReport(eval.Trend),
		Categories:  categoryReports(eval.Categories),
		Grades:      eval.Grades,
		GeneratedAt: now,
	}
	s.logger.Debug("student report computed",
		zap.String("student_id", studentID),
		zap.String("fingerprint", fingerprint),
		zap.Int("grades", len(eval.Grades)),
		zap.String("final", eval.Final.Label),
	)
	s.persistCache(ctx, cacheKey, report)
	return report, false, nil
}

// ClassReport evaluates every student assigned to the class and summarises the distribution
// of final grades.
func (s *GradebookService) ClassReport(ctx context.Context, gb *models.Gradebook, classID, subjectID string) (*dto.ClassReport, bool, error) {
	if err := s.validateSnapshot(gb); err != nil {
		return nil, false, err
	}
	class, ok := gb.FindClass(classID)
	if !ok {
		return nil, false, appErrors.Clone(appErrors.ErrNotFound, fmt.Sprintf("class %s not found", classID))
	}
	fingerprint, err := Fingerprint(gb)
	if err != nil {
		return nil, false, err
	}

	cacheKey := Key("class", fingerprint, classID, subjectID)
	var cached dto.ClassReport
	if s.cache.Get(ctx, cacheKey, &cached) {
		cached.Revision = gb.Revision
		return &cached, true, nil
	}

	start := time.Now()
	now := s.now().UTC()
	cfg := grading.ConfigFromGradebook(gb, s.cfg.Trend, now)
	students := gb.StudentsInClass(classID)
	rows := make([]dto.ClassReportRow, 0, len(students))
	for _, student := range students {
		eval := grading.EvaluateStudent(cfg, student.Grades, subjectID)
		s.metrics.RecordFinalGrade(eval.Final.Label)
		rows = append(rows, dto.ClassReportRow{
			StudentID:   student.ID,
			StudentName: student.Name,
			Average:     round2(eval.Average),
			HasData:     eval.Average != grading.NoData,
			Percentage:  percentagePtr(eval),
			Final:       finalReport(eval.Final),
			Trend:       string(eval.Trend.Direction),
			GradeCount:  len(eval.Grades),
		})
	}
	s.metrics.ObserveEvaluation("class", time.Since(start))

	report := &dto.ClassReport{
		ClassID:      class.ID,
		ClassName:    class.Name,
		SubjectID:    subjectID,
		TeacherName:  gb.TeacherName,
		Revision:     gb.Revision,
		Fingerprint:  fingerprint,
		Students:     rows,
		Distribution: distribution(rows),
		GeneratedAt:  now,
	}
	s.logger.Debug("class report computed",
		zap.String("class_id", classID),
		zap.String("fingerprint", fingerprint),
		zap.Int("students", len(rows)),
	)
	s.persistCache(ctx, cacheKey, report)
	return report, false, nil
}

// Fingerprint hashes the canonical JSON encoding of a snapshot. Two snapshots with the same
// content share a fingerprint regardless of their revision label.
func Fingerprint(gb *models.Gradebook) (string, error) {
	canonical := *gb
	canonical.Revision = ""
	payload, err := json.Marshal(canonical)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to fingerprint gradebook")
	}
	return fmt.Sprintf("%016x", xxhash.Sum64(payload)), nil
}

func (s *GradebookService) validateSnapshot(gb *models.Gradebook) error {
	if gb == nil {
		return appErrors.Clone(appErrors.ErrValidation, "gradebook snapshot is required")
	}
	if err := s.validator.Struct(gb); err != nil {
		return appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, validationMessage(err))
	}
	return nil
}

func (s *GradebookService) persistCache(ctx context.Context, key string, value interface{}) {
	s.cache.Set(ctx, key, value, s.cfg.CacheTTL)
}

func percentagePtr(eval grading.StudentEvaluation) *float64 {
	if eval.Average == grading.NoData {
		return nil
	}
	v := round2(eval.Percentage)
	return &v
}

func finalReport(final grading.FinalGrade) dto.FinalGradeReport {
	out := dto.FinalGradeReport{Label: final.Label, Fallback: final.Fallback}
	if final.HasGrade {
		grade := final.Grade
		out.Grade = &grade
	}
	return out
}

func trendReport(trend grading.Trend) dto.TrendReport {
	return dto.TrendReport{
		Direction:   string(trend.Direction),
		Delta:       round2(trend.Delta),
		EarlierMean: round2(trend.EarlierMean),
		LaterMean:   round2(trend.LaterMean),
		Samples:     trend.Samples,
	}
}

func categoryReports(results []grading.CategoryResult) []dto.CategoryReport {
	out := make([]dto.CategoryReport, 0, len(results))
	for _, r := range results {
		report := dto.CategoryReport{
			CategoryID:   r.CategoryID,
			CategoryName: r.CategoryName,
			Weight:       r.Weight,
			NumericCount: r.NumericCount,
			PlusCount:    r.PlusCount,
			NeutralCount: r.NeutralCount,
			MinusCount:   r.MinusCount,
		}
		if r.HasAverage {
			report.Average = floatPtr(round2(r.Average))
		}
		if r.HasMarks {
			report.MarkPercentage = floatPtr(round2(r.MarkPercentage))
			report.MarkGrade = floatPtr(round2(r.MarkGrade))
		}
		out = append(out, report)
	}
	return out
}

func distribution(rows []dto.ClassReportRow) dto.GradeDistribution {
	dist := dto.GradeDistribution{Counts: make(map[string]int, grading.WorstGrade)}
	for g := grading.BestGrade; g <= grading.WorstGrade; g++ {
		dist.Counts[strconv.Itoa(g)] = 0
	}
	averages := make(stats.Float64Data, 0, len(rows))
	for _, row := range rows {
		if !row.HasData || row.Final.Grade == nil {
			dist.Ungraded++
			continue
		}
		dist.Graded++
		dist.Counts[strconv.Itoa(*row.Final.Grade)]++
		averages = append(averages, row.Average)
	}
	if len(averages) == 0 {
		return dist
	}
	// Lower is better on this scale.
	if mean, err := averages.Mean(); err == nil {
		dist.Mean = floatPtr(round2(mean))
	}
	if best, err := averages.Min(); err == nil {
		dist.Best = floatPtr(best)
	}
	if worst, err := averages.Max(); err == nil {
		dist.Worst = floatPtr(worst)
	}
	return dist
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func floatPtr(v float64) *float64 {
	return &v
}
