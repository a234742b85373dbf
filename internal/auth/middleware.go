package auth

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Middleware parses the Authorization header and, when it carries a valid
// bearer token, injects the AuthContext into the request. Requests without a
// token proceed unauthenticated; RequireAuth gates the protected routes.
func Middleware(service *Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Next()
			return
		}

		tokenString, found := strings.CutPrefix(header, "Bearer ")
		if !found {
			slog.Debug("authorization header is not a bearer token")
			c.Next()
			return
		}

		authCtx, err := service.ParseToken(tokenString)
		if err != nil {
			slog.Warn("rejected invalid token", "error", err)
			c.Next()
			return
		}

		c.Set(contextKey, authCtx)
		c.Next()
	}
}

// RequireAuth aborts with 401 when the request carries no valid identity.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if FromContext(c) == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		c.Next()
	}
}

// RequireRole aborts with 403 unless the caller holds one of the given
// roles. Admins pass every role check.
func RequireRole(roles ...Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		authCtx := FromContext(c)
		if authCtx == nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		if authCtx.Role == RoleAdmin {
			c.Next()
			return
		}
		for _, role := range roles {
			if authCtx.Role == role {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient permissions"})
	}
}
