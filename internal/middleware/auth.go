package middleware

import (
	"net/http"
	"strings"

	"agrolink-be/internal/logger"
	"agrolink-be/internal/user"
	"agrolink-be/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Auth parses the bearer token when present and attaches the actor and a
// request id to the request context. Requests without a valid token pass
// through anonymously; RequireAuth gates the protected routes.
func Auth() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := logger.WithRequestID(c.Request.Context(), uuid.NewString())

		authHeader := c.GetHeader("Authorization")
		if strings.HasPrefix(authHeader, "Bearer ") {
			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
			if claims, err := user.ParseJWT(tokenStr); err == nil {
				ctx = utils.SetUserContext(ctx, claims.UserID, claims.Email, claims.Role)
			}
		}

		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// RequireAuth rejects requests whose context carries no authenticated actor.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := utils.GetUserIDFromContext(c.Request.Context()); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
			return
		}
		c.Next()
	}
}

// RequireRole rejects authenticated requests whose actor has none of the
// given roles.
func RequireRole(roles ...user.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		actual := utils.GetUserRoleFromContext(c.Request.Context())
		for _, r := range roles {
			if actual == string(r) {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	}
}
