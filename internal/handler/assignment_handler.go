package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campus-ops/uniadmin-api/internal/dto"
	"github.com/campus-ops/uniadmin-api/internal/service"
	appErrors "github.com/campus-ops/uniadmin-api/pkg/errors"
	"github.com/campus-ops/uniadmin-api/pkg/response"
)

// AssignmentHandler exposes teacher-course assignment routes.
type AssignmentHandler struct {
	assignments *service.AssignmentService
	metrics     *service.MetricsService
}

// NewAssignmentHandler constructs a new AssignmentHandler.
func NewAssignmentHandler(assignments *service.AssignmentService, metrics *service.MetricsService) *AssignmentHandler {
	return &AssignmentHandler{assignments: assignments, metrics: metrics}
}

// List godoc
// @Summary List course assignments of a teacher
// @Tags Assignments
// @Produce json
// @Param id path string true "Teacher ID"
// @Success 200 {object} response.Envelope
// @Router /teachers/{id}/courses [get]
func (h *AssignmentHandler) List(c *gin.Context) {
	assignments, err := h.assignments.ListByTeacher(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, assignments, nil)
}

// Create godoc
// @Summary Assign a course to a teacher
// @Tags Assignments
// @Accept json
// @Produce json
// @Param id path string true "Teacher ID"
// @Param payload body dto.CreateTeacherCourseRequest true "Assignment payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /teachers/{id}/courses [post]
func (h *AssignmentHandler) Create(c *gin.Context) {
	var req dto.CreateTeacherCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid assignment payload"))
		return
	}
	assignment, err := h.assignments.Assign(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.recordRejection(err)
		response.Error(c, err)
		return
	}
	response.Created(c, assignment)
}

// Update godoc
// @Summary Revalidate and update a course assignment
// @Tags Assignments
// @Accept json
// @Produce json
// @Param id path string true "Teacher ID"
// @Param aid path string true "Assignment ID"
// @Param payload body dto.UpdateTeacherCourseRequest true "Assignment payload"
// @Success 200 {object} response.Envelope
// @Router /teachers/{id}/courses/{aid} [put]
func (h *AssignmentHandler) Update(c *gin.Context) {
	var req dto.UpdateTeacherCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid assignment payload"))
		return
	}
	assignment, err := h.assignments.Reassign(c.Request.Context(), c.Param("id"), c.Param("aid"), req)
	if err != nil {
		h.recordRejection(err)
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, assignment, nil)
}

// Delete godoc
// @Summary Remove a course assignment
// @Tags Assignments
// @Param id path string true "Teacher ID"
// @Param aid path string true "Assignment ID"
// @Success 204
// @Router /teachers/{id}/courses/{aid} [delete]
func (h *AssignmentHandler) Delete(c *gin.Context) {
	if err := h.assignments.Remove(c.Request.Context(), c.Param("id"), c.Param("aid")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

func (h *AssignmentHandler) recordRejection(err error) {
	if h.metrics == nil {
		return
	}
	appErr := appErrors.FromError(err)
	if appErr.Status >= 400 && appErr.Status < 500 {
		h.metrics.RecordRejection(appErr.Code)
	}
}
