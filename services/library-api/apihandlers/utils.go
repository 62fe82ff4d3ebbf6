package apihandlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	jwthandling "github.com/Johnmontoya/library-backend/pkg/jwt-handling"
)

// getClaims pulls the validated session claims set by the JWT middleware.
func getClaims(c *gin.Context) *jwthandling.UserClaims {
	tokenValue, ok := c.Get("validatedToken")
	if !ok {
		slog.Warn("validatedToken not found in context")
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "missing access token"})
		return nil
	}
	return tokenValue.(*jwthandling.UserClaims)
}

// requireSelf allows the operation only on the caller's own account.
func requireSelf(c *gin.Context, accountID string) *jwthandling.UserClaims {
	claims := getClaims(c)
	if claims == nil {
		return nil
	}
	if claims.AccountID != accountID {
		slog.Warn("attempt to act on foreign account", slog.String("userID", claims.AccountID), slog.String("targetID", accountID))
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized access to endpoint"})
		return nil
	}
	return claims
}
