package middlewares

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"gymdesk.io/backoffice/security"
	"gymdesk.io/backoffice/web/common"
)

const SessionCookie = "gymdesk.session"

// bearerToken reads the token from the Authorization header, falling back to the session cookie.
func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		cookie, err := c.Cookie(SessionCookie)
		if err != nil || cookie == "" {
			return "", false
		}
		return cookie, true
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}

// Authentication requires a valid, unexpired session token and stores the session
// in the request context.
func Authentication(secret []byte) gin.HandlerFunc {
	return AuthenticationAt(secret, time.Now)
}

func AuthenticationAt(secret []byte, now func() time.Time) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, ok := bearerToken(c)
		if !ok {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		session, err := security.ParseToken(tokenStr, secret, now())
		if errors.Is(err, security.ErrSessionExpired) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, common.NewErrorResponse("session expired"))
			return
		}
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, common.NewErrorResponse("invalid token"))
			return
		}

		c.Request = c.Request.WithContext(security.WithSession(c.Request.Context(), session))
		c.Next()
	}
}
