package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/edugrade-api/internal/dto"
	"github.com/noah-isme/edugrade-api/internal/models"
	"github.com/noah-isme/edugrade-api/internal/service"
	appErrors "github.com/noah-isme/edugrade-api/pkg/errors"
	"github.com/noah-isme/edugrade-api/pkg/response"
)

type gradebookService interface {
	Defaults() dto.DefaultsResponse
	Normalize(ctx context.Context, req dto.NormalizeRequest) (*dto.NormalizeResponse, error)
	Classify(ctx context.Context, req dto.ClassifyRequest) (*dto.ClassifyResponse, error)
	Percentage(average float64) (*dto.PercentageResponse, error)
	StudentReport(ctx context.Context, gb *models.Gradebook, studentID, subjectID string) (*dto.StudentReport, bool, error)
	ClassReport(ctx context.Context, gb *models.Gradebook, classID, subjectID string) (*dto.ClassReport, bool, error)
}

type exportService interface {
	ClassReport(ctx context.Context, gb *models.Gradebook, classID, subjectID string, format service.ExportFormat) (*service.ExportResult, error)
}

// GradebookHandler wires the gradebook engine to HTTP endpoints.
type GradebookHandler struct {
	service  gradebookService
	exports  exportService
	maxBytes int64
}

// NewGradebookHandler constructs the handler. maxBytes bounds request bodies; zero disables
// the limit.
func NewGradebookHandler(service gradebookService, exports exportService, maxBytes int64) *GradebookHandler {
	return &GradebookHandler{service: service, exports: exports, maxBytes: maxBytes}
}

// Defaults godoc
// @Summary Default gradebook settings
// @Tags Gradebook
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /gradebook/defaults [get]
func (h *GradebookHandler) Defaults(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	response.JSON(c, http.StatusOK, h.service.Defaults())
}

// Normalize godoc
// @Summary Complete legacy grade records
// @Tags Gradebook
// @Accept json
// @Produce json
// @Param payload body dto.NormalizeRequest true "Grades and category roster"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /gradebook/normalize [post]
func (h *GradebookHandler) Normalize(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	var req dto.NormalizeRequest
	if err := bindBody(c, h.maxBytes, &req); err != nil {
		response.Error(c, err)
		return
	}
	result, err := h.service.Normalize(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}

// Classify godoc
// @Summary Classify a percentage
// @Tags Gradebook
// @Accept json
// @Produce json
// @Param payload body dto.ClassifyRequest true "Percentage and optional range table"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /gradebook/classify [post]
func (h *GradebookHandler) Classify(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	var req dto.ClassifyRequest
	if err := bindBody(c, h.maxBytes, &req); err != nil {
		response.Error(c, err)
		return
	}
	result, err := h.service.Classify(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}

// Percentage godoc
// @Summary Display percentage of an average
// @Tags Gradebook
// @Produce json
// @Param average query number true "Average on the 1-6 scale"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /gradebook/percentage [get]
func (h *GradebookHandler) Percentage(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	raw := strings.TrimSpace(c.Query("average"))
	if raw == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "average is required"))
		return
	}
	average, err := strconv.ParseFloat(strings.Replace(raw, ",", ".", 1), 64)
	if err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "average must be a number"))
		return
	}
	result, err := h.service.Percentage(average)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result)
}

// StudentReport godoc
// @Summary Compute a student report
// @Tags Gradebook
// @Accept json
// @Produce json
// @Param studentId path string true "Student ID"
// @Param subjectId query string false "Restrict to one subject"
// @Param payload body models.Gradebook true "Gradebook snapshot"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 413 {object} response.Envelope
// @Router /gradebook/students/{studentId}/report [post]
func (h *GradebookHandler) StudentReport(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	studentID := strings.TrimSpace(c.Param("studentId"))
	if studentID == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "studentId is required"))
		return
	}
	var gb models.Gradebook
	if err := bindBody(c, h.maxBytes, &gb); err != nil {
		response.Error(c, err)
		return
	}
	start := time.Now()
	report, cacheHit, err := h.service.StudentReport(c.Request.Context(), &gb, studentID, strings.TrimSpace(c.Query("subjectId")))
	if err != nil {
		response.Error(c, err)
		return
	}
	meta := responseMeta(c, start, cacheHit)
	setFingerprint(c, meta, report.Fingerprint)
	response.JSON(c, http.StatusOK, report, meta)
}

// ClassReport godoc
// @Summary Compute a class report
// @Tags Gradebook
// @Accept json
// @Produce json
// @Param classId path string true "Class ID"
// @Param subjectId query string false "Restrict to one subject"
// @Param payload body models.Gradebook true "Gradebook snapshot"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 413 {object} response.Envelope
// @Router /gradebook/classes/{classId}/report [post]
func (h *GradebookHandler) ClassReport(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	classID := strings.TrimSpace(c.Param("classId"))
	if classID == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "classId is required"))
		return
	}
	var gb models.Gradebook
	if err := bindBody(c, h.maxBytes, &gb); err != nil {
		response.Error(c, err)
		return
	}
	start := time.Now()
	report, cacheHit, err := h.service.ClassReport(c.Request.Context(), &gb, classID, strings.TrimSpace(c.Query("subjectId")))
	if err != nil {
		response.Error(c, err)
		return
	}
	meta := responseMeta(c, start, cacheHit)
	setFingerprint(c, meta, report.Fingerprint)
	response.JSON(c, http.StatusOK, report, meta)
}

// ExportClass godoc
// @Summary Export a class report
// @Tags Gradebook
// @Accept json
// @Produce text/csv
// @Produce application/pdf
// @Param classId path string true "Class ID"
// @Param format query string false "csv (default) or pdf"
// @Param subjectId query string false "Restrict to one subject"
// @Param payload body models.Gradebook true "Gradebook snapshot"
// @Success 200 {file} file
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /gradebook/classes/{classId}/export [post]
func (h *GradebookHandler) ExportClass(c *gin.Context) {
	if h.exports == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	classID := strings.TrimSpace(c.Param("classId"))
	if classID == "" {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "classId is required"))
		return
	}
	format, err := service.ParseExportFormat(c.Query("format"))
	if err != nil {
		response.Error(c, err)
		return
	}
	var gb models.Gradebook
	if err := bindBody(c, h.maxBytes, &gb); err != nil {
		response.Error(c, err)
		return
	}
	result, err := h.exports.ClassReport(c.Request.Context(), &gb, classID, strings.TrimSpace(c.Query("subjectId")), format)
	if err != nil {
		response.Error(c, err)
		return
	}
	setFingerprint(c, nil, result.Fingerprint)
	response.File(c, result.Filename, result.ContentType, result.Payload)
}
