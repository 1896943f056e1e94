package service

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/edugrade-api/internal/dto"
	"github.com/noah-isme/edugrade-api/internal/models"
	appErrors "github.com/noah-isme/edugrade-api/pkg/errors"
	"github.com/noah-isme/edugrade-api/pkg/export"
)

type stubClassReporter struct {
	report *dto.ClassReport
	hit    bool
	err    error
}

func (s stubClassReporter) ClassReport(context.Context, *models.Gradebook, string, string) (*dto.ClassReport, bool, error) {
	return s.report, s.hit, s.err
}

func newExportServiceForTest(reports classReporter) *ExportService {
	svc := NewExportService(reports, nil, zap.NewNop(), export.NewCSVExporter(',', false), nil)
	svc.now = func() time.Time { return fixedNow }
	return svc
}

func TestParseExportFormat(t *testing.T) {
	format, err := ParseExportFormat("")
	require.NoError(t, err)
	assert.Equal(t, ExportFormatCSV, format)

	format, err = ParseExportFormat(" PDF ")
	require.NoError(t, err)
	assert.Equal(t, ExportFormatPDF, format)

	_, err = ParseExportFormat("xlsx")
	assert.ErrorIs(t, err, appErrors.ErrUnsupportedFormat)
}

func TestExportServiceClassReportCSV(t *testing.T) {
	reports := newGradebookServiceForTest(nil)
	svc := newExportServiceForTest(reports)

	result, err := svc.ClassReport(context.Background(), testGradebook(), "cls-1", "", ExportFormatCSV)
	require.NoError(t, err)

	assert.Equal(t, export.ContentTypeCSV, result.ContentType)
	assert.Equal(t, "grades_7b_20240301_120000.csv", result.Filename)
	assert.NotEmpty(t, result.Fingerprint)

	lines := strings.Split(strings.TrimSpace(string(result.Payload)), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Student,Average,Percentage,Final Grade,Trend,Grades", lines[0])
	assert.Equal(t, "Ada,3.00,60.00%,3,stable,2", lines[1])
	assert.Equal(t, "Ben,-,-,-,stable,0", lines[2])
}

func TestExportServiceClassReportPDF(t *testing.T) {
	reports := newGradebookServiceForTest(nil)
	svc := newExportServiceForTest(reports)

	result, err := svc.ClassReport(context.Background(), testGradebook(), "cls-1", "math", ExportFormatPDF)
	require.NoError(t, err)

	assert.Equal(t, export.ContentTypePDF, result.ContentType)
	assert.Equal(t, "grades_7b_math_20240301_120000.pdf", result.Filename)
	assert.True(t, bytes.HasPrefix(result.Payload, []byte("%PDF-")))
}

func TestExportServicePropagatesReportErrors(t *testing.T) {
	svc := newExportServiceForTest(stubClassReporter{err: appErrors.Clone(appErrors.ErrNotFound, "class x not found")})

	_, err := svc.ClassReport(context.Background(), testGradebook(), "x", "", ExportFormatCSV)
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
}

func TestExportServiceRejectsUnknownFormat(t *testing.T) {
	svc := newExportServiceForTest(stubClassReporter{report: &dto.ClassReport{ClassID: "cls-1"}})

	_, err := svc.ClassReport(context.Background(), testGradebook(), "cls-1", "", ExportFormat("xlsx"))
	assert.ErrorIs(t, err, appErrors.ErrUnsupportedFormat)
}

func TestClassDatasetNotes(t *testing.T) {
	mean := 2.5
	report := &dto.ClassReport{
		ClassID:     "cls-9",
		SubjectID:   "math",
		Revision:    "r7",
		Fingerprint: "abc",
		Distribution: dto.GradeDistribution{
			Counts: map[string]int{"1": 1, "2": 0, "3": 1, "4": 0, "5": 0},
			Mean:   &mean,
		},
		GeneratedAt: fixedNow,
	}

	data := classDataset(report)
	assert.Equal(t, "Class cls-9 / math", data.Title)
	assert.Contains(t, data.Notes, "Class mean: 2.50")
	assert.Contains(t, data.Notes, "Revision: r7")
	assert.Contains(t, data.Notes, "Distribution: 1=1 2=0 3=1 4=0 5=0, without grades=0")
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "na", sanitizeFilename("  "))
	assert.Equal(t, "Klasse_7-b", sanitizeFilename("Klasse 7/b"))
}
