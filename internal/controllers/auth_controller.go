package controllers

import (
	"crypto/subtle"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"transit_api/internal/middleware"
)

// AuthController issues bearer tokens to the configured operator account.
type AuthController struct {
	user         string
	passwordHash []byte
	secret       []byte
	ttl          time.Duration
}

func NewAuthController(user, passwordHash string, secret []byte, ttl time.Duration) *AuthController {
	return &AuthController{
		user:         user,
		passwordHash: []byte(passwordHash),
		secret:       secret,
		ttl:          ttl,
	}
}

type loginInput struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login handles POST /auth/login
func (h *AuthController) Login(c *gin.Context) {
	var body loginInput
	if err := c.ShouldBindJSON(&body); err != nil {
		respondBindError(c, err)
		return
	}

	userOK := subtle.ConstantTimeCompare([]byte(body.Username), []byte(h.user)) == 1
	// Always run bcrypt so an unknown user costs the same as a bad password.
	passErr := bcrypt.CompareHashAndPassword(h.passwordHash, []byte(body.Password))
	if !userOK || passErr != nil {
		logrus.WithField("username", body.Username).Warn("rejected operator login")
		c.JSON(http.StatusUnauthorized, gin.H{"message": "Usuário ou senha inválidos"})
		return
	}

	token, err := middleware.GenerateToken(h.secret, h.user, h.ttl)
	if err != nil {
		logrus.WithError(err).Error("could not generate token")
		c.JSON(http.StatusInternalServerError, gin.H{"message": msgUnexpected, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":     token,
		"expiresAt": time.Now().Add(h.ttl).UTC().Format(time.RFC3339),
	})
}

// HashPassword returns the bcrypt hash stored in ADMIN_PASSWORD_HASH.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
