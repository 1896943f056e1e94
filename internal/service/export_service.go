package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/edugrade-api/internal/dto"
	"github.com/noah-isme/edugrade-api/internal/models"
	appErrors "github.com/noah-isme/edugrade-api/pkg/errors"
	"github.com/noah-isme/edugrade-api/pkg/export"
)

// ExportFormat is a supported document format.
type ExportFormat string

const (
	ExportFormatCSV ExportFormat = "csv"
	ExportFormatPDF ExportFormat = "pdf"
)

// ParseExportFormat validates a requested format. Empty input selects CSV.
func ParseExportFormat(raw string) (ExportFormat, error) {
	switch ExportFormat(strings.ToLower(strings.TrimSpace(raw))) {
	case "", ExportFormatCSV:
		return ExportFormatCSV, nil
	case ExportFormatPDF:
		return ExportFormatPDF, nil
	default:
		return "", appErrors.Clone(appErrors.ErrUnsupportedFormat, fmt.Sprintf("unsupported export format %q", raw))
	}
}

type classReporter interface {
	ClassReport(ctx context.Context, gb *models.Gradebook, classID, subjectID string) (*dto.ClassReport, bool, error)
}

type datasetRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

// ExportResult is a rendered document ready to stream.
type ExportResult struct {
	Filename    string
	ContentType string
	Format      ExportFormat
	Payload     []byte
	Fingerprint string
	CacheHit    bool
}

// ExportService renders class reports as CSV or PDF documents.
type ExportService struct {
	reports classReporter
	csv     datasetRenderer
	pdf     datasetRenderer
	metrics *MetricsService
	logger  *zap.Logger
	now     func() time.Time
}

// NewExportService constructs an ExportService. Nil renderers get the stock exporters.
func NewExportService(reports classReporter, metrics *MetricsService, logger *zap.Logger, csv, pdf datasetRenderer) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if csv == nil {
		csv = export.NewCSVExporter(',', true)
	}
	if pdf == nil {
		pdf = export.NewPDFExporter("EduGrade")
	}
	return &ExportService{
		reports: reports,
		csv:     csv,
		pdf:     pdf,
		metrics: metrics,
		logger:  logger,
		now:     time.Now,
	}
}

// ClassReport computes the class report for the snapshot and renders it in format.
func (s *ExportService) ClassReport(ctx context.Context, gb *models.Gradebook, classID, subjectID string, format ExportFormat) (*ExportResult, error) {
	if s.reports == nil {
		return nil, appErrors.ErrInternal
	}
	report, cacheHit, err := s.reports.ClassReport(ctx, gb, classID, subjectID)
	if err != nil {
		return nil, err
	}
	dataset := classDataset(report)

	var (
		payload     []byte
		contentType string
	)
	switch format {
	case ExportFormatCSV:
		payload, err = s.csv.Render(dataset)
		contentType = export.ContentTypeCSV
	case ExportFormatPDF:
		payload, err = s.pdf.Render(dataset)
		contentType = export.ContentTypePDF
	default:
		return nil, appErrors.Clone(appErrors.ErrUnsupportedFormat, fmt.Sprintf("unsupported export format %q", format))
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
	}
	s.metrics.RecordExport(string(format))
	s.logger.Info("class report exported",
		zap.String("class_id", classID),
		zap.String("format", string(format)),
		zap.Int("bytes", len(payload)),
	)

	return &ExportResult{
		Filename:    s.buildFilename(report, format),
		ContentType: contentType,
		Format:      format,
		Payload:     payload,
		Fingerprint: report.Fingerprint,
		CacheHit:    cacheHit,
	}, nil
}

func (s *ExportService) buildFilename(report *dto.ClassReport, format ExportFormat) string {
	timestamp := s.now().UTC().Format("20060102_150405")
	name := sanitizeFilename(report.ClassName)
	if name == "na" {
		name = sanitizeFilename(report.ClassID)
	}
	if report.SubjectID != "" {
		name += "_" + sanitizeFilename(report.SubjectID)
	}
	return fmt.Sprintf("grades_%s_%s.%s", name, timestamp, format)
}

func sanitizeFilename(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "na"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "-", "\\", "-", ":", "-", "\"", "", "..", ".")
	result := replacer.Replace(raw)
	if len(result) > 100 {
		return result[:100]
	}
	return result
}

var classHeaders = []string{"Student", "Average", "Percentage", "Final Grade", "Trend", "Grades"}

func classDataset(report *dto.ClassReport) export.Dataset {
	rows := make([]map[string]string, 0, len(report.Students))
	for _, row := range report.Students {
		rows = append(rows, map[string]string{
			"Student":     row.StudentName,
			"Average":     formatAverage(row.Average, row.HasData),
			"Percentage":  formatOptional(row.Percentage, "%.2f%%"),
			"Final Grade": row.Final.Label,
			"Trend":       row.Trend,
			"Grades":      fmt.Sprintf("%d", row.GradeCount),
		})
	}

	title := "Class " + report.ClassName
	if report.ClassName == "" {
		title = "Class " + report.ClassID
	}
	if report.SubjectID != "" {
		title += " / " + report.SubjectID
	}

	dist := report.Distribution
	notes := []string{
		fmt.Sprintf("Distribution: 1=%d 2=%d 3=%d 4=%d 5=%d, without grades=%d",
			dist.Counts["1"], dist.Counts["2"], dist.Counts["3"], dist.Counts["4"], dist.Counts["5"], dist.Ungraded),
		"Class mean: " + formatOptional(dist.Mean, "%.2f"),
	}
	if report.TeacherName != "" {
		notes = append(notes, "Teacher: "+report.TeacherName)
	}
	if report.Revision != "" {
		notes = append(notes, "Revision: "+report.Revision)
	}
	notes = append(notes,
		"Fingerprint: "+report.Fingerprint,
		"Generated: "+report.GeneratedAt.UTC().Format(time.RFC3339),
	)

	return export.Dataset{
		Title:   title,
		Headers: classHeaders,
		Rows:    rows,
		Notes:   notes,
	}
}

func formatAverage(avg float64, hasData bool) string {
	if !hasData {
		return "-"
	}
	return fmt.Sprintf("%.2f", avg)
}

func formatOptional(v *float64, layout string) string {
	if v == nil {
		return "-"
	}
	return fmt.Sprintf(layout, *v)
}
