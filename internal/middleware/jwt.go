package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// GenerateToken signs an HS256 token for subject that expires after ttl.
func GenerateToken(secret []byte, subject string, ttl time.Duration) (string, error) {
	if len(secret) == 0 {
		return "", errors.New("middleware: empty signing secret")
	}
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
}

// ValidateToken parses tokenStr and checks its signature and expiry.
func ValidateToken(secret []byte, tokenStr string) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	return claims, nil
}

// RequireAuth ensures a valid bearer token is present. With an empty secret
// the guard is disabled and every request passes.
func RequireAuth(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		if len(secret) == 0 {
			c.Next()
			return
		}

		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Token de acesso ausente ou inválido"})
			return
		}

		claims, err := ValidateToken(secret, strings.TrimPrefix(authHeader, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Token de acesso inválido ou expirado"})
			return
		}

		// Store the subject for downstream handlers and request logs.
		c.Set("subject", claims.Subject)
		c.Next()
	}
}
