package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/pooya1361/makerspace/internal/auth"
	"github.com/pooya1361/makerspace/internal/cache"
	"github.com/pooya1361/makerspace/internal/models"
	"github.com/pooya1361/makerspace/internal/services"
)

// Context keys populated by the auth middleware.
const (
	ContextUserIDKey    = "user_id"
	ContextUserKey      = "user"
	ContextUserRoleKey  = "user_role"
	ContextUserEmailKey = "user_email"
)

// AccessTokenCookie is the httpOnly cookie carrying the JWT for browser
// clients. API clients use the Authorization header instead.
const AccessTokenCookie = "accessToken"

// AuthMiddleware authenticates requests via JWT and resolves the principal
// into the request context.
type AuthMiddleware struct {
	tokens    *auth.TokenService
	users     services.UserService
	userCache *cache.UserCache
	logger    *slog.Logger
}

func NewAuthMiddleware(tokens *auth.TokenService, users services.UserService, userCache *cache.UserCache, logger *slog.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		tokens:    tokens,
		users:     users,
		userCache: userCache,
		logger:    logger,
	}
}

// Authenticate extracts the JWT from the Authorization header or the
// accessToken cookie, validates it, and loads the user onto the context.
func (m *AuthMiddleware) Authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := m.extractToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Message: "Authentication required",
			})
			return
		}

		claims, err := m.tokens.ParseToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Message: "Invalid or expired token",
			})
			return
		}

		user, err := m.resolveUser(c, claims.Subject)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Message: "Unknown user",
			})
			return
		}

		c.Set(ContextUserIDKey, user.ID)
		c.Set(ContextUserKey, user)
		c.Set(ContextUserRoleKey, user.UserType)
		c.Set(ContextUserEmailKey, user.Email)
		c.Next()
	}
}

func (m *AuthMiddleware) extractToken(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return parts[1]
		}
	}
	if token, err := c.Cookie(AccessTokenCookie); err == nil {
		return token
	}
	return ""
}

// resolveUser fetches the user by email, preferring the cache. Role changes
// are visible after the cache TTL or an explicit invalidation.
func (m *AuthMiddleware) resolveUser(c *gin.Context, email string) (*models.User, error) {
	if m.userCache != nil {
		if user, err := m.userCache.Get(c.Request.Context(), email); err == nil {
			return user, nil
		}
	}

	user, err := m.users.GetByEmail(c.Request.Context(), email)
	if err != nil {
		return nil, err
	}

	if m.userCache != nil {
		if err := m.userCache.Set(c.Request.Context(), user); err != nil {
			m.logger.Warn("failed to cache user", "email", email, "error", err)
		}
	}
	return user, nil
}

// RequireAnyRole allows the request through when the authenticated user's
// effective role set contains at least one of the required roles. Must run
// after Authenticate.
func (m *AuthMiddleware) RequireAnyRole(roles ...models.UserType) gin.HandlerFunc {
	return func(c *gin.Context) {
		value, exists := c.Get(ContextUserRoleKey)
		if !exists {
			c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{
				Message: "Authentication required",
			})
			return
		}

		role, ok := value.(models.UserType)
		if !ok || !auth.HasAnyRole(role, roles...) {
			c.AbortWithStatusJSON(http.StatusForbidden, ErrorResponse{
				Message: "Insufficient permissions",
			})
			return
		}

		c.Next()
	}
}

// GetUserFromContext returns the authenticated user set by Authenticate.
func GetUserFromContext(c *gin.Context) (*models.User, bool) {
	value, exists := c.Get(ContextUserKey)
	if !exists {
		return nil, false
	}
	user, ok := value.(*models.User)
	return user, ok
}

// GetUserIDFromContext returns the authenticated user's id.
func GetUserIDFromContext(c *gin.Context) (uint, bool) {
	value, exists := c.Get(ContextUserIDKey)
	if !exists {
		return 0, false
	}
	id, ok := value.(uint)
	return id, ok
}
