package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/edugrade-api/internal/dto"
	"github.com/noah-isme/edugrade-api/internal/models"
	"github.com/noah-isme/edugrade-api/internal/service"
	appErrors "github.com/noah-isme/edugrade-api/pkg/errors"
)

type fakeGradebookSrv struct {
	studentResp *dto.StudentReport
	studentHit  bool
	studentErr  error
	classResp   *dto.ClassReport
	classErr    error
	percentErr  error
	lastStudent struct {
		studentID string
		subjectID string
		gb        *models.Gradebook
	}
	lastAverage float64
}

func (f *fakeGradebookSrv) Defaults() dto.DefaultsResponse {
	return dto.DefaultsResponse{GradePercentageRanges: models.DefaultPercentageRanges()}
}

func (f *fakeGradebookSrv) Normalize(_ context.Context, req dto.NormalizeRequest) (*dto.NormalizeResponse, error) {
	return &dto.NormalizeResponse{Grades: req.Grades}, nil
}

func (f *fakeGradebookSrv) Classify(_ context.Context, req dto.ClassifyRequest) (*dto.ClassifyResponse, error) {
	return &dto.ClassifyResponse{Percentage: *req.Percentage, Grade: 2, Matched: true}, nil
}

func (f *fakeGradebookSrv) Percentage(average float64) (*dto.PercentageResponse, error) {
	f.lastAverage = average
	if f.percentErr != nil {
		return nil, f.percentErr
	}
	return &dto.PercentageResponse{Average: average, Percentage: 60}, nil
}

func (f *fakeGradebookSrv) StudentReport(_ context.Context, gb *models.Gradebook, studentID, subjectID string) (*dto.StudentReport, bool, error) {
	f.lastStudent.studentID = studentID
	f.lastStudent.subjectID = subjectID
	f.lastStudent.gb = gb
	return f.studentResp, f.studentHit, f.studentErr
}

func (f *fakeGradebookSrv) ClassReport(context.Context, *models.Gradebook, string, string) (*dto.ClassReport, bool, error) {
	return f.classResp, false, f.classErr
}

type fakeExportSrv struct {
	result     *service.ExportResult
	err        error
	lastFormat service.ExportFormat
}

func (f *fakeExportSrv) ClassReport(_ context.Context, _ *models.Gradebook, _, _ string, format service.ExportFormat) (*service.ExportResult, error) {
	f.lastFormat = format
	return f.result, f.err
}

type responseEnvelope struct {
	Data  map[string]interface{} `json:"data"`
	Error map[string]interface{} `json:"error"`
	Meta  map[string]interface{} `json:"meta"`
}

const snapshotBody = `{
	"revision": "rev-9",
	"classes": [{"id": "cls-1", "name": "7b"}],
	"categories": [{"id": "tests", "name": "Tests", "weight": 0.5}],
	"students": [{"id": "s1", "name": "Ada", "classId": "cls-1", "grades": [
		{"id": "1700000000000", "categoryId": "tests", "value": "2,5"},
		{"id": "g2", "categoryId": "tests", "value": "+"}
	]}]
}`

func newJSONContext(method, target, body string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(method, target, strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c, rec
}

func TestGradebookHandlerStudentReportSuccess(t *testing.T) {
	srv := &fakeGradebookSrv{
		studentResp: &dto.StudentReport{StudentID: "s1", Fingerprint: "00ff", Average: 2.5},
		studentHit:  true,
	}
	handler := NewGradebookHandler(srv, nil, 0)

	c, rec := newJSONContext(http.MethodPost, "/gradebook/students/s1/report?subjectId=math", snapshotBody)
	c.Params = gin.Params{{Key: "studentId", Value: "s1"}}

	handler.StudentReport(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "00ff", rec.Header().Get(FingerprintHeader))
	var envelope responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, true, envelope.Meta["cache_hit"])
	assert.Equal(t, "00ff", envelope.Meta["fingerprint"])
	assert.Contains(t, envelope.Meta, "processing_time_ms")
	assert.Equal(t, "s1", envelope.Data["studentId"])

	assert.Equal(t, "s1", srv.lastStudent.studentID)
	assert.Equal(t, "math", srv.lastStudent.subjectID)
	require.NotNil(t, srv.lastStudent.gb)
	assert.Equal(t, "rev-9", srv.lastStudent.gb.Revision)
	grades := srv.lastStudent.gb.Students[0].Grades
	assert.Equal(t, models.NumericValue(2.5), grades[0].Value)
	assert.Equal(t, models.MarkValue(models.MarkPlus), grades[1].Value)
}

func TestGradebookHandlerStudentReportRequiresBody(t *testing.T) {
	handler := NewGradebookHandler(&fakeGradebookSrv{}, nil, 0)

	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/gradebook/students/s1/report", nil)
	c.Params = gin.Params{{Key: "studentId", Value: "s1"}}

	handler.StudentReport(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGradebookHandlerRejectsMalformedJSON(t *testing.T) {
	handler := NewGradebookHandler(&fakeGradebookSrv{}, nil, 0)

	c, rec := newJSONContext(http.MethodPost, "/gradebook/students/s1/report", `{"students": [`)
	c.Params = gin.Params{{Key: "studentId", Value: "s1"}}

	handler.StudentReport(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var envelope responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, "VALIDATION_ERROR", envelope.Error["code"])
}

func TestGradebookHandlerRejectsOversizedSnapshot(t *testing.T) {
	handler := NewGradebookHandler(&fakeGradebookSrv{}, nil, 64)

	c, rec := newJSONContext(http.MethodPost, "/gradebook/students/s1/report", snapshotBody)
	c.Params = gin.Params{{Key: "studentId", Value: "s1"}}

	handler.StudentReport(c)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
}

func TestGradebookHandlerStudentReportNotFound(t *testing.T) {
	handler := NewGradebookHandler(&fakeGradebookSrv{
		studentErr: appErrors.Clone(appErrors.ErrNotFound, "student s9 not found"),
	}, nil, 0)

	c, rec := newJSONContext(http.MethodPost, "/gradebook/students/s9/report", snapshotBody)
	c.Params = gin.Params{{Key: "studentId", Value: "s9"}}

	handler.StudentReport(c)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGradebookHandlerClassReport(t *testing.T) {
	handler := NewGradebookHandler(&fakeGradebookSrv{
		classResp: &dto.ClassReport{ClassID: "cls-1", Fingerprint: "abcd"},
	}, nil, 0)

	c, rec := newJSONContext(http.MethodPost, "/gradebook/classes/cls-1/report", snapshotBody)
	c.Params = gin.Params{{Key: "classId", Value: "cls-1"}}

	handler.ClassReport(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	var envelope responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, false, envelope.Meta["cache_hit"])
	assert.Equal(t, "cls-1", envelope.Data["classId"])
}

func TestGradebookHandlerPercentage(t *testing.T) {
	srv := &fakeGradebookSrv{}
	handler := NewGradebookHandler(srv, nil, 0)

	c, rec := newJSONContext(http.MethodGet, "/gradebook/percentage?average=2,5", "")
	handler.Percentage(c)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2.5, srv.lastAverage)

	c, rec = newJSONContext(http.MethodGet, "/gradebook/percentage", "")
	handler.Percentage(c)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	c, rec = newJSONContext(http.MethodGet, "/gradebook/percentage?average=abc", "")
	handler.Percentage(c)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGradebookHandlerClassify(t *testing.T) {
	handler := NewGradebookHandler(&fakeGradebookSrv{}, nil, 0)

	c, rec := newJSONContext(http.MethodPost, "/gradebook/classify", `{"percentage": 72}`)
	handler.Classify(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	var envelope responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, float64(2), envelope.Data["grade"])
}

func TestGradebookHandlerDefaults(t *testing.T) {
	handler := NewGradebookHandler(&fakeGradebookSrv{}, nil, 0)

	c, rec := newJSONContext(http.MethodGet, "/gradebook/defaults", "")
	handler.Defaults(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))
}

func TestGradebookHandlerExportClass(t *testing.T) {
	exports := &fakeExportSrv{result: &service.ExportResult{
		Filename:    "grades_7b.pdf",
		ContentType: "application/pdf",
		Payload:     []byte("%PDF-1.3"),
		Fingerprint: "ffee",
	}}
	handler := NewGradebookHandler(&fakeGradebookSrv{}, exports, 0)

	c, rec := newJSONContext(http.MethodPost, "/gradebook/classes/cls-1/export?format=pdf", snapshotBody)
	c.Params = gin.Params{{Key: "classId", Value: "cls-1"}}

	handler.ExportClass(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, service.ExportFormatPDF, exports.lastFormat)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="grades_7b.pdf"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "ffee", rec.Header().Get(FingerprintHeader))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF-")))
}

func TestGradebookHandlerExportUnsupportedFormat(t *testing.T) {
	exports := &fakeExportSrv{}
	handler := NewGradebookHandler(&fakeGradebookSrv{}, exports, 0)

	c, rec := newJSONContext(http.MethodPost, "/gradebook/classes/cls-1/export?format=xlsx", snapshotBody)
	c.Params = gin.Params{{Key: "classId", Value: "cls-1"}}

	handler.ExportClass(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, exports.lastFormat)
}

func TestGradebookHandlerNilService(t *testing.T) {
	handler := NewGradebookHandler(nil, nil, 0)

	c, rec := newJSONContext(http.MethodGet, "/gradebook/defaults", "")
	handler.Defaults(c)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
