package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campus-ops/uniadmin-api/internal/dto"
	"github.com/campus-ops/uniadmin-api/internal/service"
	appErrors "github.com/campus-ops/uniadmin-api/pkg/errors"
	"github.com/campus-ops/uniadmin-api/pkg/response"
)

// SpecialScheduleHandler exposes industry-professional schedule routes.
type SpecialScheduleHandler struct {
	schedules *service.SpecialScheduleService
	metrics   *service.MetricsService
}

// NewSpecialScheduleHandler constructs a new SpecialScheduleHandler.
func NewSpecialScheduleHandler(schedules *service.SpecialScheduleService, metrics *service.MetricsService) *SpecialScheduleHandler {
	return &SpecialScheduleHandler{schedules: schedules, metrics: metrics}
}

// Create godoc
// @Summary Request a special schedule
// @Tags Special Schedules
// @Accept json
// @Produce json
// @Param payload body dto.CreateSpecialScheduleRequest true "Schedule payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /special-schedules [post]
func (h *SpecialScheduleHandler) Create(c *gin.Context) {
	var req dto.CreateSpecialScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid special schedule payload"))
		return
	}
	schedule, err := h.schedules.Create(c.Request.Context(), req)
	if err != nil {
		if h.metrics != nil {
			appErr := appErrors.FromError(err)
			if appErr.Status >= 400 && appErr.Status < 500 {
				h.metrics.RecordRejection(appErr.Code)
			}
		}
		response.Error(c, err)
		return
	}
	response.Created(c, schedule)
}

// UpdateStatus godoc
// @Summary Confirm or decline a special schedule
// @Tags Special Schedules
// @Accept json
// @Produce json
// @Param id path string true "Schedule ID"
// @Param payload body dto.UpdateSpecialScheduleStatusRequest true "Status payload"
// @Success 200 {object} response.Envelope
// @Router /special-schedules/{id}/status [patch]
func (h *SpecialScheduleHandler) UpdateStatus(c *gin.Context) {
	var req dto.UpdateSpecialScheduleStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid status payload"))
		return
	}
	schedule, err := h.schedules.UpdateStatus(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, schedule, nil)
}

// ListByTeacher godoc
// @Summary List special schedules of a teacher
// @Tags Special Schedules
// @Produce json
// @Param id path string true "Teacher ID"
// @Success 200 {object} response.Envelope
// @Router /teachers/{id}/special-schedules [get]
func (h *SpecialScheduleHandler) ListByTeacher(c *gin.Context) {
	schedules, err := h.schedules.ListByTeacher(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, schedules, nil)
}
