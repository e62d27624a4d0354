package httpapi

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const callerKey = "callerID"

// requireAuth verifies the bearer token and stores the caller's user id in
// the request context. Identity flows from here into every handler; nothing
// downstream reads auth state from anywhere else.
func (s *Server) requireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token := strings.TrimPrefix(header, "Bearer ")
		if token == "" || token == header {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "please authenticate"})
			return
		}

		userID, err := s.auth.VerifyAccess(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "please authenticate"})
			return
		}

		c.Set(callerKey, userID)
		c.Next()
	}
}

// caller returns the authenticated user id set by requireAuth.
func caller(c *gin.Context) uint {
	return c.GetUint(callerKey)
}
