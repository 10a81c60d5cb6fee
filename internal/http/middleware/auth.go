// README: Bearer-token auth middleware resolving sessions from the gateway.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"swiftdrop/internal/auth"
	"swiftdrop/internal/modules/profile"
)

const sessionKey = "session"

// SessionResolver turns a bearer token into the session it identifies.
type SessionResolver interface {
	Session(ctx context.Context, token string) (*auth.Session, error)
}

func Auth(resolver SessionResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		sess, err := resolver.Session(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid session"})
			return
		}
		c.Set(sessionKey, sess)
		c.Next()
	}
}

// RequireRole aborts with 403 unless the caller holds one of the roles. Must
// run after Auth.
func RequireRole(roles ...profile.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := Caller(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing session"})
			return
		}
		for _, r := range roles {
			if sess.Role == r {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "insufficient role"})
	}
}

// Caller returns the session Auth stored on the request.
func Caller(c *gin.Context) (*auth.Session, bool) {
	v, ok := c.Get(sessionKey)
	if !ok {
		return nil, false
	}
	sess, ok := v.(*auth.Session)
	return sess, ok
}
