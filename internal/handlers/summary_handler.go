package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pooya1361/makerspace/internal/services"
)

type SummaryHandler struct {
	BaseHandler
	summaryService services.SummaryService
}

func NewSummaryHandler(summaryService services.SummaryService, logger *slog.Logger) *SummaryHandler {
	return &SummaryHandler{
		BaseHandler:    NewBaseHandler(logger),
		summaryService: summaryService,
	}
}

// Get returns aggregate counts across the whole catalog.
func (h *SummaryHandler) Get(c *gin.Context) {
	summary, err := h.summaryService.GetSummary(c.Request.Context())
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// AvailableLessons lists the unscheduled lessons the authenticated user is
// interested in, ordered by the earliest proposed start time.
func (h *SummaryHandler) AvailableLessons(c *gin.Context) {
	userID, ok := GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Message: "User not authenticated",
		})
		return
	}

	lessons, err := h.summaryService.GetAvailableLessons(c.Request.Context(), userID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, lessons)
}
