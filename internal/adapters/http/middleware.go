package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/rohan-lakhani/eSign-Workflow/internal/token"
)

const roleAccessKey = "roleAccess"

// RoleAuth guards signing endpoints with the role-access credential. The
// token arrives as a Bearer header or, for email links, as a ?token= query
// parameter.
func RoleAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractBearer(c.GetHeader("Authorization"))
		if tokenString == "" {
			tokenString = c.Query("token")
		}
		if tokenString == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "no access token provided"})
			return
		}

		access, err := token.Verify(tokenString, secret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}

		c.Set(roleAccessKey, access)
		c.Next()
	}
}

func extractBearer(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}
	return ""
}

// RoleAccessFrom returns the verified credential stashed by RoleAuth.
func RoleAccessFrom(c *gin.Context) (*token.RoleAccess, bool) {
	value, ok := c.Get(roleAccessKey)
	if !ok {
		return nil, false
	}
	access, ok := value.(*token.RoleAccess)
	return access, ok
}
