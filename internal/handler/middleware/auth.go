package middleware

import (
	"errors"
	"net/http"
	"strings"

	"stayhub/internal/pkg/cookie"
	"stayhub/internal/usecase"
	"stayhub/internal/usecase/shared"

	"github.com/gin-gonic/gin"
)

const ctxPrincipalKey = "principal"

type AuthMiddleware struct {
	sessionValidator usecase.SessionValidator
}

func NewAuthMiddleware(sessionValidator usecase.SessionValidator) *AuthMiddleware {
	return &AuthMiddleware{
		sessionValidator: sessionValidator,
	}
}

// RequireAuth resolves the session token from the cookie or the
// Authorization header and attaches the principal to the request.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Authentication required",
			})
			c.Abort()
			return
		}

		principal, err := m.sessionValidator.Authenticate(c.Request.Context(), token)
		if err != nil {
			msg := "Invalid session"
			if errors.Is(err, usecase.ErrSessionExpired) {
				msg = "Session expired"
			}
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": msg,
			})
			c.Abort()
			return
		}

		c.Set(ctxPrincipalKey, principal)
		c.Next()
	}
}

// RequireAdmin must run after RequireAuth.
func (m *AuthMiddleware) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := GetPrincipal(c)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
			c.Abort()
			return
		}

		if !principal.IsAdmin() {
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Insufficient permissions",
			})
			c.Abort()
			return
		}

		c.Next()
	}
}

func GetPrincipal(c *gin.Context) (shared.Principal, bool) {
	value, exists := c.Get(ctxPrincipalKey)
	if !exists {
		return shared.Principal{}, false
	}

	principal, ok := value.(shared.Principal)
	return principal, ok
}

func extractToken(c *gin.Context) string {
	if token := cookie.GetSessionToken(c); token != "" {
		return token
	}

	authHeader := c.GetHeader("Authorization")
	if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
		return strings.TrimSpace(authHeader[len("Bearer "):])
	}
	return ""
}
