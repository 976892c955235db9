package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pooya1361/makerspace/internal/auth"
	"github.com/pooya1361/makerspace/internal/cache"
	"github.com/pooya1361/makerspace/internal/models"
	"github.com/pooya1361/makerspace/internal/services"
)

// HandlerManager owns every HTTP handler and wires them to routes.
type HandlerManager struct {
	authHandler             *AuthHandler
	userHandler             *UserHandler
	workshopHandler         *WorkshopHandler
	activityHandler         *ActivityHandler
	lessonHandler           *LessonHandler
	scheduledLessonHandler  *ScheduledLessonHandler
	proposedTimeSlotHandler *ProposedTimeSlotHandler
	voteHandler             *VoteHandler
	lessonUserHandler       *LessonUserHandler
	summaryHandler          *SummaryHandler
	graphqlHandler          *GraphQLHandler

	authMiddleware *AuthMiddleware
	serviceManager services.ServiceManager
	logger         *slog.Logger
}

func NewHandlerManager(serviceManager services.ServiceManager, tokens *auth.TokenService, userCache *cache.UserCache, tokenTTL time.Duration, secureCookies bool, logger *slog.Logger) (*HandlerManager, error) {
	graphqlHandler, err := NewGraphQLHandler(serviceManager.Workshop(), logger)
	if err != nil {
		return nil, fmt.Errorf("build graphql schema: %w", err)
	}

	return &HandlerManager{
		authHandler:             NewAuthHandler(serviceManager.User(), tokens, userCache, tokenTTL, secureCookies, logger),
		userHandler:             NewUserHandler(serviceManager.User(), logger),
		workshopHandler:         NewWorkshopHandler(serviceManager.Workshop(), logger),
		activityHandler:         NewActivityHandler(serviceManager.Activity(), logger),
		lessonHandler:           NewLessonHandler(serviceManager.Lesson(), logger),
		scheduledLessonHandler:  NewScheduledLessonHandler(serviceManager.ScheduledLesson(), logger),
		proposedTimeSlotHandler: NewProposedTimeSlotHandler(serviceManager.ProposedTimeSlot(), logger),
		voteHandler:             NewVoteHandler(serviceManager.Vote(), logger),
		lessonUserHandler:       NewLessonUserHandler(serviceManager.LessonUser(), logger),
		summaryHandler:          NewSummaryHandler(serviceManager.Summary(), logger),
		graphqlHandler:          graphqlHandler,
		authMiddleware:          NewAuthMiddleware(tokens, serviceManager.User(), userCache, logger),
		serviceManager:          serviceManager,
		logger:                  logger,
	}, nil
}

// SetupRoutes registers the whole HTTP surface. Mutations on the catalog
// require an admin role; scheduling mutations additionally admit
// instructors; votes and lesson interests only need an authenticated user.
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.GET("/health", hm.healthCheck)

	api := router.Group("/api")

	authRoutes := api.Group("/auth")
	{
		authRoutes.POST("/register", hm.authHandler.Register)
		authRoutes.POST("/login", hm.authHandler.Login)
	}

	adminOnly := hm.authMiddleware.RequireAnyRole(models.UserTypeAdmin, models.UserTypeSuperAdmin)
	instructorOrAdmin := hm.authMiddleware.RequireAnyRole(models.UserTypeInstructor, models.UserTypeAdmin, models.UserTypeSuperAdmin)

	protected := api.Group("")
	protected.Use(hm.authMiddleware.Authenticate())
	{
		protected.POST("/auth/logout", hm.authHandler.Logout)
		protected.GET("/auth/me", hm.authHandler.Me)

		users := protected.Group("/users")
		{
			users.GET("", hm.userHandler.List)
			users.GET("/:id", hm.userHandler.Get)
			users.POST("", adminOnly, hm.userHandler.Create)
			users.PATCH("/:id", adminOnly, hm.userHandler.Update)
			users.DELETE("/:id", adminOnly, hm.userHandler.Delete)
		}

		workshops := protected.Group("/workshops")
		{
			workshops.GET("", hm.workshopHandler.List)
			workshops.GET("/:id", hm.workshopHandler.Get)
			workshops.POST("", adminOnly, hm.workshopHandler.Create)
			workshops.PATCH("/:id", adminOnly, hm.workshopHandler.Update)
			workshops.DELETE("/:id", adminOnly, hm.workshopHandler.Delete)
		}

		activities := protected.Group("/activities")
		{
			activities.GET("", hm.activityHandler.List)
			activities.GET("/:id", hm.activityHandler.Get)
			activities.POST("", adminOnly, hm.activityHandler.Create)
			activities.PATCH("/:id", adminOnly, hm.activityHandler.Update)
			activities.DELETE("/:id", adminOnly, hm.activityHandler.Delete)
		}

		lessons := protected.Group("/lessons")
		{
			lessons.GET("", hm.lessonHandler.List)
			lessons.GET("/:id", hm.lessonHandler.Get)
			lessons.POST("", adminOnly, hm.lessonHandler.Create)
			lessons.PATCH("/:id", adminOnly, hm.lessonHandler.Update)
			lessons.DELETE("/:id", adminOnly, hm.lessonHandler.Delete)
		}

		scheduledLessons := protected.Group("/scheduled-lessons")
		{
			scheduledLessons.GET("", hm.scheduledLessonHandler.List)
			scheduledLessons.GET("/:id", hm.scheduledLessonHandler.Get)
			scheduledLessons.GET("/:id/proposed-time-slots", hm.proposedTimeSlotHandler.ListByScheduledLesson)
			scheduledLessons.POST("", instructorOrAdmin, hm.scheduledLessonHandler.Create)
			scheduledLessons.PATCH("/:id", instructorOrAdmin, hm.scheduledLessonHandler.Update)
			scheduledLessons.DELETE("/:id", instructorOrAdmin, hm.scheduledLessonHandler.Delete)
		}

		proposedTimeSlots := protected.Group("/proposed-time-slots")
		{
			proposedTimeSlots.GET("", hm.proposedTimeSlotHandler.List)
			proposedTimeSlots.GET("/:id", hm.proposedTimeSlotHandler.Get)
			proposedTimeSlots.POST("", instructorOrAdmin, hm.proposedTimeSlotHandler.Create)
			proposedTimeSlots.PATCH("/:id", instructorOrAdmin, hm.proposedTimeSlotHandler.Update)
			proposedTimeSlots.DELETE("/:id", instructorOrAdmin, hm.proposedTimeSlotHandler.Delete)
		}

		votes := protected.Group("/votes")
		{
			votes.GET("", hm.voteHandler.List)
			votes.GET("/:id", hm.voteHandler.Get)
			votes.POST("", hm.voteHandler.Create)
			votes.PATCH("/:id", hm.voteHandler.Update)
			votes.DELETE("/:id", hm.voteHandler.Delete)
		}

		lessonUsers := protected.Group("/lesson-users")
		{
			lessonUsers.GET("", hm.lessonUserHandler.List)
			lessonUsers.GET("/:id", hm.lessonUserHandler.Get)
			lessonUsers.GET("/user/:id", hm.lessonUserHandler.ListByUser)
			lessonUsers.POST("", hm.lessonUserHandler.Create)
			lessonUsers.PATCH("/:id", hm.lessonUserHandler.Update)
			lessonUsers.DELETE("/:id", hm.lessonUserHandler.Delete)
		}

		summary := protected.Group("/summary")
		{
			summary.GET("", hm.summaryHandler.Get)
			summary.GET("/available-lessons", hm.summaryHandler.AvailableLessons)
		}

		protected.POST("/graphql", hm.graphqlHandler.Serve())
	}
}

func (hm *HandlerManager) healthCheck(c *gin.Context) {
	if err := hm.serviceManager.HealthCheck(c.Request.Context()); err != nil {
		hm.logger.Error("Health check failed", "error", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status": "unhealthy",
			"error":  err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "healthy",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}
