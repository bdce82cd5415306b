package middleware

import (
	"net/http"
	"strings"

	"snapvault/internal/services"
	"snapvault/internal/transport/httpdto"

	"github.com/gin-gonic/gin"
)

// AuthMiddleware rejects requests without a valid bearer token before any
// business logic runs, and stores the viewer identity on the request context.
func AuthMiddleware(service *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractBearer(c)
		claims, err := service.ParseToken(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, httpdto.NewErrorResponse("unauthorized"))
			c.Abort()
			return
		}

		ctx := services.WithViewerContext(c.Request.Context(), services.Viewer{
			ID:       claims.UserID,
			Username: claims.Username,
		})
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func extractBearer(c *gin.Context) string {
	value := c.GetHeader("Authorization")
	parts := strings.SplitN(value, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
