package middleware

import (
	"net/http"
	"strings"

	"telegram_webapp/internal/service"

	"github.com/gin-gonic/gin"
)

// JWT requires a valid token minted by service.GenerateJWT at log-in, taken
// from the Authorization bearer header, else the "token" query parameter,
// else the sessdata_jwt cookie, and stores the carried user_id in the gin
// context for handlers.
func JWT() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token := strings.TrimPrefix(header, "Bearer ")
		if token == "" {
			token = c.Query("token")
		}
		if token == "" {
			if cookie, err := c.Cookie("sessdata_jwt"); err == nil {
				token = cookie
			}
		}
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			return
		}

		userID, err := service.ParseJWT(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set("user_id", userID)
		c.Next()
	}
}
