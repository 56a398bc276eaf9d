package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"ExpenseTracker/pkg/messages"
	"ExpenseTracker/pkg/token"
)

const (
	ContextUserIDKey = "current_user_id"
	ContextClaimsKey = "current_claims"
	ContextTokenKey  = "current_token"
)

// BearerToken returns the token of an "Authorization: Bearer <token>" header,
// or "" when the header is absent or uses another scheme.
func BearerToken(c *gin.Context) string {
	parts := strings.Fields(c.GetHeader("Authorization"))
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}

// AuthMiddleware authenticates the bearer token (signature and expiry).
// Revocation is enforced by TokenGate, installed engine-wide.
func AuthMiddleware(v *token.Validator) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := BearerToken(c)
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": messages.TokenNotFound})
			return
		}

		claims, err := v.Authenticate(raw)
		if err != nil {
			msg := messages.TokenInvalid
			if errors.Is(err, token.ErrTokenExpired) {
				msg = messages.TokenExpired
			}
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": msg})
			return
		}

		userID, err := claims.UserID()
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": messages.TokenInvalid})
			return
		}

		c.Set(ContextUserIDKey, userID)
		c.Set(ContextClaimsKey, claims)
		c.Set(ContextTokenKey, raw)
		c.Next()
	}
}

// RequireRole must run after AuthMiddleware.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := CurrentClaims(c)
		if !ok || !claims.HasRole(role) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": messages.AccessDenied})
			return
		}
		c.Next()
	}
}

func CurrentUserID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(ContextUserIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

func CurrentClaims(c *gin.Context) (*token.Claims, bool) {
	v, ok := c.Get(ContextClaimsKey)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*token.Claims)
	return claims, ok
}

func CurrentToken(c *gin.Context) string {
	return c.GetString(ContextTokenKey)
}
