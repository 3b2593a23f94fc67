package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/lankacraft/marketapi/internal/domain"
	"github.com/lankacraft/marketapi/internal/repository"
	"github.com/lankacraft/marketapi/pkg/errors"
)

const userContextKey = "authenticated_user"

// AuthMiddleware authenticates requests by resolving the bearer token to a
// stored session hash and loads the owning user into the request context.
func AuthMiddleware(repos *repository.Repositories, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token := strings.TrimPrefix(header, "Bearer ")
		if token == "" || token == header {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		session, err := repos.Sessions.GetByToken(c.Request.Context(), token)
		if err != nil {
			if _, ok := err.(*errors.ErrUnauthorized); !ok {
				logger.Error("Failed to resolve session", zap.Error(err))
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid session token"})
			return
		}

		user, err := repos.Users.GetByID(c.Request.Context(), session.UserID)
		if err != nil {
			logger.Error("Failed to load session user", zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid session token"})
			return
		}

		c.Set(userContextKey, user)
		c.Next()
	}
}

// GetUserFromContext retrieves the authenticated user set by AuthMiddleware.
func GetUserFromContext(c *gin.Context) (*domain.User, bool) {
	value, exists := c.Get(userContextKey)
	if !exists {
		return nil, false
	}
	user, ok := value.(*domain.User)
	return user, ok
}
