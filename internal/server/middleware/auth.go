package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// SessionCookieName is the cookie the web client stores its session token in.
const SessionCookieName = "farmdesk_session"

const contextUserIDKey = "auth.user_id"

// TokenParser validates a session token and returns the user id it carries.
type TokenParser interface {
	ParseToken(token string) (string, error)
}

// Auth authenticates requests via a Bearer header or the session cookie and
// stores the acting user id on the request context. Requests without a valid
// session are rejected; every downstream query and write is scoped by this id.
func Auth(parser TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			if cookie, err := c.Cookie(SessionCookieName); err == nil {
				token = cookie
			}
		}
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing session token"})
			return
		}

		userID, err := parser.ParseToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid session token"})
			return
		}

		c.Set(contextUserIDKey, userID)
		c.Next()
	}
}

// UserID returns the authenticated user id set by Auth.
func UserID(c *gin.Context) string {
	return c.GetString(contextUserIDKey)
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
