package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pooya1361/makerspace/internal/services"
)

type ScheduledLessonHandler struct {
	BaseHandler
	scheduledLessonService services.ScheduledLessonService
}

func NewScheduledLessonHandler(scheduledLessonService services.ScheduledLessonService, logger *slog.Logger) *ScheduledLessonHandler {
	return &ScheduledLessonHandler{
		BaseHandler:            NewBaseHandler(logger),
		scheduledLessonService: scheduledLessonService,
	}
}

func (h *ScheduledLessonHandler) Create(c *gin.Context) {
	var req services.CreateScheduledLessonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	scheduledLesson, err := h.scheduledLessonService.Create(c.Request.Context(), req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, scheduledLesson)
}

func (h *ScheduledLessonHandler) List(c *gin.Context) {
	scheduledLessons, err := h.scheduledLessonService.GetAll(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, scheduledLessons)
}

func (h *ScheduledLessonHandler) Get(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	scheduledLesson, err := h.scheduledLessonService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, scheduledLesson)
}

func (h *ScheduledLessonHandler) Update(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	var req services.UpdateScheduledLessonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	scheduledLesson, err := h.scheduledLessonService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, scheduledLesson)
}

func (h *ScheduledLessonHandler) Delete(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	if err := h.scheduledLessonService.Delete(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
