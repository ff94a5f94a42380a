package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campus-ops/uniadmin-api/internal/dto"
	"github.com/campus-ops/uniadmin-api/internal/service"
	appErrors "github.com/campus-ops/uniadmin-api/pkg/errors"
	"github.com/campus-ops/uniadmin-api/pkg/response"
)

// SlotAssignmentHandler exposes teacher-slot assignment routes, including the
// batch endpoint with its tri-state status code mapping.
type SlotAssignmentHandler struct {
	assignments *service.SlotAssignmentService
	metrics     *service.MetricsService
}

// NewSlotAssignmentHandler constructs a new SlotAssignmentHandler.
func NewSlotAssignmentHandler(assignments *service.SlotAssignmentService, metrics *service.MetricsService) *SlotAssignmentHandler {
	return &SlotAssignmentHandler{assignments: assignments, metrics: metrics}
}

// List godoc
// @Summary List slot assignments of a teacher
// @Tags Slot Assignments
// @Produce json
// @Param id path string true "Teacher ID"
// @Success 200 {object} response.Envelope
// @Router /teachers/{id}/slots [get]
func (h *SlotAssignmentHandler) List(c *gin.Context) {
	assignments, err := h.assignments.ListByTeacher(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, assignments, nil)
}

// Create godoc
// @Summary Assign a slot to a teacher on a day
// @Tags Slot Assignments
// @Accept json
// @Produce json
// @Param id path string true "Teacher ID"
// @Param payload body dto.CreateSlotAssignmentRequest true "Slot assignment payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /teachers/{id}/slots [post]
func (h *SlotAssignmentHandler) Create(c *gin.Context) {
	var req dto.CreateSlotAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid slot assignment payload"))
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
// @Summary Move a slot assignment to a new slot or day
// @Tags Slot Assignments
// @Accept json
// @Produce json
// @Param id path string true "Teacher ID"
// @Param aid path string true "Slot assignment ID"
// @Param payload body dto.CreateSlotAssignmentRequest true "Slot assignment payload"
// @Success 200 {object} response.Envelope
// @Router /teachers/{id}/slots/{aid} [put]
func (h *SlotAssignmentHandler) Update(c *gin.Context) {
	var req dto.CreateSlotAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid slot assignment payload"))
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
// @Summary Remove a slot assignment
// @Tags Slot Assignments
// @Param id path string true "Teacher ID"
// @Param aid path string true "Slot assignment ID"
// @Success 204
// @Router /teachers/{id}/slots/{aid} [delete]
func (h *SlotAssignmentHandler) Delete(c *gin.Context) {
	if err := h.assignments.Remove(c.Request.Context(), c.Param("id"), c.Param("aid")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Batch godoc
// @Summary Apply a batch of slot assignment operations
// @Description Each operation commits or fails independently. The response
// @Description status is 201 when all succeed, 400 when all fail and 207 for
// @Description mixed outcomes.
// @Tags Slot Assignments
// @Accept json
// @Produce json
// @Param id path string true "Teacher ID"
// @Param payload body dto.SlotBatchRequest true "Batch payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /teachers/{id}/slots/batch [post]
func (h *SlotAssignmentHandler) Batch(c *gin.Context) {
	var req dto.SlotBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid batch payload"))
		return
	}
	result, err := h.assignments.ApplyBatch(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	if h.metrics != nil {
		for _, item := range result.Results {
			if !item.Success && item.ErrorCode != "" {
				h.metrics.RecordRejection(item.ErrorCode)
			}
		}
	}

	status := http.StatusCreated
	switch result.Status {
	case dto.BatchStatusAllFailed:
		status = http.StatusBadRequest
	case dto.BatchStatusMixed:
		status = http.StatusMultiStatus
	}
	response.JSON(c, status, result, nil)
}

func (h *SlotAssignmentHandler) recordRejection(err error) {
	if h.metrics == nil {
		return
	}
	appErr := appErrors.FromError(err)
	if appErr.Status >= 400 && appErr.Status < 500 {
		h.metrics.RecordRejection(appErr.Code)
	}
}
