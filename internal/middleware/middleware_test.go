package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var testSecret = []byte("test-secret")

func guarded(secret []byte) *gin.Engine {
	r := gin.New()
	r.Use(CORS([]string{"https://app.example"}))
	r.POST("/paradas", RequireAuth(secret), func(c *gin.Context) {
		c.JSON(http.StatusCreated, gin.H{"subject": c.GetString("subject")})
	})
	return r
}

func post(r http.Handler, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/paradas", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRequireAuthDisabledWithoutSecret(t *testing.T) {
	w := post(guarded(nil), "")
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestRequireAuthValidToken(t *testing.T) {
	tok, err := GenerateToken(testSecret, "operator", time.Hour)
	require.NoError(t, err)

	w := post(guarded(testSecret), "Bearer "+tok)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"subject":"operator"`)
}

func TestRequireAuthRejects(t *testing.T) {
	expired, err := GenerateToken(testSecret, "operator", -time.Minute)
	require.NoError(t, err)
	foreign, err := GenerateToken([]byte("other"), "operator", time.Hour)
	require.NoError(t, err)
	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{Subject: "x"}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
	}{
		{name: "missing", header: ""},
		{name: "not bearer", header: "Basic abc"},
		{name: "garbage", header: "Bearer not-a-token"},
		{name: "expired", header: "Bearer " + expired},
		{name: "wrong secret", header: "Bearer " + foreign},
		{name: "alg none", header: "Bearer " + none},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := post(guarded(testSecret), tt.header)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Contains(t, w.Body.String(), "message")
		})
	}
}

func TestGenerateTokenNeedsSecret(t *testing.T) {
	_, err := GenerateToken(nil, "operator", time.Hour)
	assert.Error(t, err)
}

func TestValidateTokenClaims(t *testing.T) {
	tok, err := GenerateToken(testSecret, "dispatcher", time.Hour)
	require.NoError(t, err)

	claims, err := ValidateToken(testSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, "dispatcher", claims.Subject)
	assert.True(t, claims.ExpiresAt.After(time.Now()))
}

func TestCORSAllowedOrigin(t *testing.T) {
	r := guarded(nil)

	req := httptest.NewRequest(http.MethodOptions, "/paradas", nil)
	req.Header.Set("Origin", "https://app.example")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://app.example", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), "PUT")
}

func TestCORSUnknownOrigin(t *testing.T) {
	r := guarded(nil)

	req := httptest.NewRequest(http.MethodPost, "/paradas", nil)
	req.Header.Set("Origin", "https://evil.example")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSOpenWhenUnconfigured(t *testing.T) {
	r := gin.New()
	r.Use(CORS(nil))
	r.GET("/linhas", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/linhas", nil)
	req.Header.Set("Origin", "https://any.example")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "https://any.example", w.Header().Get("Access-Control-Allow-Origin"))
}
