// Package middleware holds the gin middleware shared by the HTTP surface.
package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vplaza/catalogue-service-go/pkg/logger"
)

const (
	headerAPIKey = "X-API-Key"
	headerAuth   = "Authorization"
	bearerPrefix = "Bearer "
)

// TokenAuth validates write requests against a static token list. Tokens
// are accepted from X-API-Key or Authorization: Bearer. With an empty token
// list every request is rejected.
type TokenAuth struct {
	tokens []string
}

// NewTokenAuth creates a TokenAuth from the configured tokens. Empty
// entries are dropped.
func NewTokenAuth(tokens []string) *TokenAuth {
	valid := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if token != "" {
			valid = append(valid, token)
		}
	}
	return &TokenAuth{tokens: valid}
}

// Handler returns the gin middleware enforcing token auth.
func (a *TokenAuth) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := a.extractToken(c)

		if !a.isValidToken(token) {
			logger.Log.Warn("unauthorized request",
				zap.String("path", c.Request.URL.Path),
				zap.String("method", c.Request.Method),
				zap.String("remoteAddr", c.ClientIP()),
			)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}

		c.Next()
	}
}

func (a *TokenAuth) extractToken(c *gin.Context) string {
	if token := c.GetHeader(headerAPIKey); token != "" {
		return token
	}

	authHeader := c.GetHeader(headerAuth)
	if strings.HasPrefix(authHeader, bearerPrefix) {
		return strings.TrimPrefix(authHeader, bearerPrefix)
	}

	return ""
}

// isValidToken compares in constant time to prevent timing attacks.
func (a *TokenAuth) isValidToken(provided string) bool {
	if provided == "" || len(a.tokens) == 0 {
		return false
	}

	for _, token := range a.tokens {
		if subtle.ConstantTimeCompare([]byte(provided), []byte(token)) == 1 {
			return true
		}
	}

	return false
}
