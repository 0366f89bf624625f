package middleware

import (
	"net/http"
	"strings"

	"motelhub/internal/auth"
	"motelhub/pkg/apperror"
	"motelhub/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// Context keys set by RequireRole
const (
	CtxUserID   = "userID"
	CtxUserRole = "userRole"
)

func bearerToken(c *gin.Context) (string, bool) {
	if cookie, err := c.Cookie("access_token"); err == nil && cookie != "" {
		return cookie, true
	}
	parts := strings.Split(c.GetHeader("Authorization"), " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// RequireRole validates the JWT (cookie or Bearer header) and checks the role
// claim against allowedRoles. An empty list admits any authenticated user.
func RequireRole(secret []byte, allowedRoles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(apperror.CodeUnauthorized, "Authorization is missing", nil))
			return
		}

		claims, err := auth.ParseToken(tokenString, secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, response.Error(apperror.CodeUnauthorized, "Invalid token", nil))
			return
		}

		if len(allowedRoles) > 0 {
			roleAllowed := false
			for _, role := range allowedRoles {
				if claims.Role == role {
					roleAllowed = true
					break
				}
			}
			if !roleAllowed {
				c.AbortWithStatusJSON(http.StatusForbidden, response.Error(apperror.CodeForbidden, "Access denied: insufficient permissions", nil))
				return
			}
		}

		c.Set(CtxUserID, claims.UserID)
		c.Set(CtxUserRole, claims.Role)
		c.Next()
	}
}

// CurrentUser returns the authenticated user id and role set by RequireRole.
func CurrentUser(c *gin.Context) (uuid.UUID, string, bool) {
	raw := c.GetString(CtxUserID)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, "", false
	}
	return id, c.GetString(CtxUserRole), true
}
