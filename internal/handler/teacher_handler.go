package handler

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/campus-ops/uniadmin-api/internal/dto"
	"github.com/campus-ops/uniadmin-api/internal/service"
	appErrors "github.com/campus-ops/uniadmin-api/pkg/errors"
	"github.com/campus-ops/uniadmin-api/pkg/export"
	"github.com/campus-ops/uniadmin-api/pkg/response"
)

// TeacherHandler wires teacher reads, availability windows and workload
// reporting to HTTP routes.
type TeacherHandler struct {
	teachers *service.TeacherService
	workload *service.WorkloadService
	csv      *export.CSVExporter
	pdf      *export.PDFExporter
}

// NewTeacherHandler constructs a new TeacherHandler.
func NewTeacherHandler(teachers *service.TeacherService, workload *service.WorkloadService, csv *export.CSVExporter, pdf *export.PDFExporter) *TeacherHandler {
	return &TeacherHandler{teachers: teachers, workload: workload, csv: csv, pdf: pdf}
}

// Get godoc
// @Summary Get teacher detail
// @Tags Teachers
// @Produce json
// @Param id path string true "Teacher ID"
// @Success 200 {object} response.Envelope
// @Router /teachers/{id} [get]
func (h *TeacherHandler) Get(c *gin.Context) {
	teacher, err := h.teachers.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, teacher, nil)
}

// ListAvailability godoc
// @Summary List availability windows
// @Tags Teachers
// @Produce json
// @Param id path string true "Teacher ID"
// @Success 200 {object} response.Envelope
// @Router /teachers/{id}/availability [get]
func (h *TeacherHandler) ListAvailability(c *gin.Context) {
	windows, err := h.teachers.ListAvailability(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, windows, nil)
}

// CreateAvailability godoc
// @Summary Declare an availability window
// @Tags Teachers
// @Accept json
// @Produce json
// @Param id path string true "Teacher ID"
// @Param payload body dto.CreateAvailabilityRequest true "Availability payload"
// @Success 201 {object} response.Envelope
// @Router /teachers/{id}/availability [post]
func (h *TeacherHandler) CreateAvailability(c *gin.Context) {
	var req dto.CreateAvailabilityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid availability payload"))
		return
	}
	window, err := h.teachers.DeclareAvailability(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, window)
}

// Workload godoc
// @Summary Teacher workload summary
// @Tags Teachers
// @Produce json
// @Param id path string true "Teacher ID"
// @Success 200 {object} response.Envelope
// @Router /teachers/{id}/workload [get]
func (h *TeacherHandler) Workload(c *gin.Context) {
	summary, err := h.workload.Summary(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, summary, nil)
}

// ExportWorkload godoc
// @Summary Export teacher workload
// @Tags Teachers
// @Produce text/csv,application/pdf
// @Param id path string true "Teacher ID"
// @Param format query string false "Export format (csv/pdf)"
// @Success 200 {file} file
// @Router /teachers/{id}/workload/export [get]
func (h *TeacherHandler) ExportWorkload(c *gin.Context) {
	teacherID := c.Param("id")
	data, title, err := h.workload.ExportDataset(c.Request.Context(), teacherID)
	if err != nil {
		response.Error(c, err)
		return
	}

	format := strings.ToLower(c.DefaultQuery("format", "csv"))
	switch format {
	case "csv":
		payload, err := h.csv.Render(data)
		if err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv"))
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"workload-%s.csv\"", teacherID))
		c.Data(http.StatusOK, "text/csv", payload)
	case "pdf":
		payload, err := h.pdf.Render(data, title)
		if err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf"))
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"workload-%s.pdf\"", teacherID))
		c.Data(http.StatusOK, "application/pdf", payload)
	default:
		response.Error(c, appErrors.Clonef(appErrors.ErrValidation, "unsupported export format %q", format))
	}
}
