package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campus-ops/uniadmin-api/internal/service"
	"github.com/campus-ops/uniadmin-api/pkg/response"
)

// SlotHandler serves the slot catalogue.
type SlotHandler struct {
	slots *service.SlotService
}

// NewSlotHandler constructs a new SlotHandler.
func NewSlotHandler(slots *service.SlotService) *SlotHandler {
	return &SlotHandler{slots: slots}
}

// List godoc
// @Summary List slots
// @Tags Slots
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /slots [get]
func (h *SlotHandler) List(c *gin.Context) {
	slots, err := h.slots.List(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, slots, nil)
}

// Get godoc
// @Summary Get slot detail
// @Tags Slots
// @Produce json
// @Param id path string true "Slot ID"
// @Success 200 {object} response.Envelope
// @Router /slots/{id} [get]
func (h *SlotHandler) Get(c *gin.Context) {
	slot, err := h.slots.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, slot, nil)
}
