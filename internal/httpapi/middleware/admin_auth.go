package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/natealva/blind-beer-tasting/internal/httpapi/service"
)

// AdminCookieName is the cookie carrying the admin token.
const AdminCookieName = "bbt_admin"

// AdminAuthMiddleware is a Gin middleware guarding host-only routes. It
// accepts the admin token from the cookie or an Authorization bearer header,
// validates it, and requires it to be bound to the session in the URL — a
// token for one session grants nothing on another.
func AdminAuthMiddleware(sessionService service.SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := tokenFromRequest(c)
		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "admin authentication required"})
			c.Abort()
			return
		}

		tokenCode, err := sessionService.ValidateAdminToken(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			c.Abort()
			return
		}

		code := c.Param("code")
		if !strings.EqualFold(tokenCode, code) {
			c.JSON(http.StatusForbidden, gin.H{"error": "token not valid for this session"})
			c.Abort()
			return
		}

		c.Set("sessionCode", tokenCode)
		c.Next()
	}
}

func tokenFromRequest(c *gin.Context) string {
	if cookie, err := c.Cookie(AdminCookieName); err == nil && cookie != "" {
		return cookie
	}
	authHeader := c.GetHeader("Authorization")
	parts := strings.Split(authHeader, " ")
	if len(parts) == 2 && parts[0] == "Bearer" {
		return parts[1]
	}
	return ""
}
