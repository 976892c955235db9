package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pooya1361/makerspace/internal/services"
)

type ProposedTimeSlotHandler struct {
	BaseHandler
	proposedTimeSlotService services.ProposedTimeSlotService
}

func NewProposedTimeSlotHandler(proposedTimeSlotService services.ProposedTimeSlotService, logger *slog.Logger) *ProposedTimeSlotHandler {
	return &ProposedTimeSlotHandler{
		BaseHandler:             NewBaseHandler(logger),
		proposedTimeSlotService: proposedTimeSlotService,
	}
}

// Create registers a new proposal. Interested users may be notified as a
// side effect, subject to the per-lesson cooldown.
func (h *ProposedTimeSlotHandler) Create(c *gin.Context) {
	var req services.CreateProposedTimeSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	slot, err := h.proposedTimeSlotService.Create(c.Request.Context(), req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, slot)
}

func (h *ProposedTimeSlotHandler) List(c *gin.Context) {
	slots, err := h.proposedTimeSlotService.GetAll(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, slots)
}

func (h *ProposedTimeSlotHandler) Get(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	slot, err := h.proposedTimeSlotService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, slot)
}

// ListByScheduledLesson returns the proposals of one scheduled lesson.
func (h *ProposedTimeSlotHandler) ListByScheduledLesson(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	slots, err := h.proposedTimeSlotService.GetByScheduledLessonID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, slots)
}

func (h *ProposedTimeSlotHandler) Update(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	var req services.UpdateProposedTimeSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	slot, err := h.proposedTimeSlotService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, slot)
}

func (h *ProposedTimeSlotHandler) Delete(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	if err := h.proposedTimeSlotService.Delete(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
