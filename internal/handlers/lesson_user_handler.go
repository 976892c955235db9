package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pooya1361/makerspace/internal/services"
)

type LessonUserHandler struct {
	BaseHandler
	lessonUserService services.LessonUserService
}

func NewLessonUserHandler(lessonUserService services.LessonUserService, logger *slog.Logger) *LessonUserHandler {
	return &LessonUserHandler{
		BaseHandler:       NewBaseHandler(logger),
		lessonUserService: lessonUserService,
	}
}

// Create registers a user's interest in a lesson.
func (h *LessonUserHandler) Create(c *gin.Context) {
	var req services.CreateLessonUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	lessonUser, err := h.lessonUserService.Create(c.Request.Context(), req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, lessonUser)
}

func (h *LessonUserHandler) List(c *gin.Context) {
	lessonUsers, err := h.lessonUserService.GetAll(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, lessonUsers)
}

func (h *LessonUserHandler) Get(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	lessonUser, err := h.lessonUserService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, lessonUser)
}

// ListByUser returns every interest registered by a single user.
func (h *LessonUserHandler) ListByUser(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	lessonUsers, err := h.lessonUserService.GetByUserID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, lessonUsers)
}

func (h *LessonUserHandler) Update(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	var req services.UpdateLessonUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	lessonUser, err := h.lessonUserService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, lessonUser)
}

func (h *LessonUserHandler) Delete(c *gin.Context) {
	id := h.parseIDParam(c, "id")
	if id == 0 {
		return
	}

	if err := h.lessonUserService.Delete(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
