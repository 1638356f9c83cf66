package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RequireAdmin rejects requests whose token does not carry the admin role.
// Must run after AuthMiddleware.
func RequireAdmin() gin.HandlerFunc {
	return requireRoles("admin")
}

// RequireAuthorOrAdmin gates endpoints that create or mutate content.
func RequireAuthorOrAdmin() gin.HandlerFunc {
	return requireRoles("author", "admin")
}

func requireRoles(allowed ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleInterface, exists := c.Get("role")
		if !exists {
			forbidden(c)
			return
		}

		role, ok := roleInterface.(string)
		if !ok {
			forbidden(c)
			return
		}

		for _, a := range allowed {
			if role == a {
				c.Next()
				return
			}
		}

		forbidden(c)
	}
}

func forbidden(c *gin.Context) {
	c.JSON(http.StatusForbidden, gin.H{
		"success": false,
		"error": gin.H{
			"code":    "FORBIDDEN",
			"message": "Access denied: insufficient role",
		},
	})
	c.Abort()
}
