package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/castwave/castwave/pkg/helpers"
	"github.com/castwave/castwave/pkg/response"
)

// Context keys set by the auth middlewares.
const (
	CtxUserIDKey   = "userID"
	CtxClaimsKey   = "claims"
	CtxUserRoleKey = "userRole"
)

func bearerToken(c *gin.Context) string {
	h := c.GetHeader("Authorization")
	if h == "" {
		return ""
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// Auth requires a valid bearer token. Expired tokens are reported distinctly
// from malformed ones; both abort with 401.
func Auth(jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			response.Error(c, http.StatusUnauthorized, "token is missing")
			c.Abort()
			return
		}
		claims, err := jwt.ParseToken(token)
		if err != nil {
			if errors.Is(err, helpers.ErrTokenExpired) {
				response.Error(c, http.StatusUnauthorized, "token has expired")
			} else {
				response.Error(c, http.StatusUnauthorized, "invalid token")
			}
			c.Abort()
			return
		}
		c.Set(CtxUserIDKey, claims.UserID)
		c.Set(CtxUserRoleKey, claims.Role)
		c.Set(CtxClaimsKey, claims)
		c.Next()
	}
}

// OptionalAuth attaches the caller's identity when a valid bearer token is
// present and otherwise lets the request through anonymously. Podcast
// creation uses it to record ownership without forcing signup.
func OptionalAuth(jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.Next()
			return
		}
		claims, err := jwt.ParseToken(token)
		if err != nil {
			c.Next()
			return
		}
		c.Set(CtxUserIDKey, claims.UserID)
		c.Set(CtxUserRoleKey, claims.Role)
		c.Set(CtxClaimsKey, claims)
		c.Next()
	}
}
