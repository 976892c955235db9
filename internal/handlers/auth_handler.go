package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/pooya1361/makerspace/internal/auth"
	"github.com/pooya1361/makerspace/internal/cache"
	"github.com/pooya1361/makerspace/internal/models"
	"github.com/pooya1361/makerspace/internal/services"
)

type AuthHandler struct {
	BaseHandler
	userService   services.UserService
	tokens        *auth.TokenService
	userCache     *cache.UserCache
	tokenTTL      time.Duration
	secureCookies bool
}

func NewAuthHandler(userService services.UserService, tokens *auth.TokenService, userCache *cache.UserCache, tokenTTL time.Duration, secureCookies bool, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		BaseHandler:   NewBaseHandler(logger),
		userService:   userService,
		tokens:        tokens,
		userCache:     userCache,
		tokenTTL:      tokenTTL,
		secureCookies: secureCookies,
	}
}

type loginResponse struct {
	AccessToken string               `json:"access_token"`
	User        *models.UserResponse `json:"user"`
}

// Register creates a new NORMAL user account.
func (h *AuthHandler) Register(c *gin.Context) {
	var req services.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	user, err := h.userService.Register(c.Request.Context(), req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

// Login verifies credentials and issues a JWT, both in the response body
// and as an httpOnly cookie for browser clients.
func (h *AuthHandler) Login(c *gin.Context) {
	var req services.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	user, err := h.userService.Authenticate(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	token, err := h.tokens.GenerateToken(user)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.SetCookie(AccessTokenCookie, token, int(h.tokenTTL.Seconds()), "/", "", h.secureCookies, true)
	c.JSON(http.StatusOK, loginResponse{
		AccessToken: token,
		User:        models.NewUserResponse(user),
	})
}

// Logout clears the auth cookie and drops the cached principal.
func (h *AuthHandler) Logout(c *gin.Context) {
	if email, exists := c.Get(ContextUserEmailKey); exists {
		if s, ok := email.(string); ok && h.userCache != nil {
			if err := h.userCache.Invalidate(c.Request.Context(), s); err != nil {
				h.logger.Warn("failed to invalidate cached user", "email", s, "error", err)
			}
		}
	}

	c.SetCookie(AccessTokenCookie, "", -1, "/", "", h.secureCookies, true)
	c.JSON(http.StatusOK, SuccessResponse{Message: "Logged out"})
}

// Me returns the authenticated user's profile.
func (h *AuthHandler) Me(c *gin.Context) {
	user, ok := GetUserFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Message: "User not authenticated",
		})
		return
	}

	c.JSON(http.StatusOK, models.NewUserResponse(user))
}
