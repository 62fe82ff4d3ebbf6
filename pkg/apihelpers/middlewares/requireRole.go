package middlewares

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	jwthandling "github.com/Johnmontoya/library-backend/pkg/jwt-handling"
)

// RequireRole gates an endpoint group on one of the session token's role
// claims. Runs after GetAndValidateUserJWT.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenValue, ok := c.Get("validatedToken")
		if !ok {
			slog.Warn("RequireRole: validatedToken not found in context")
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "validatedToken not found in context"})
			return
		}
		parsedToken := tokenValue.(*jwthandling.UserClaims)

		if !parsedToken.HasRole(role) {
			slog.Warn("RequireRole Middleware: missing role", slog.String("userID", parsedToken.AccountID), slog.String("role", role))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized access to endpoint"})
			return
		}
	}
}
