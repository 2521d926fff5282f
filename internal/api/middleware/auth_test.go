package middleware_test

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ainft-labs/ainft-sync/internal/api/middleware"
	"github.com/ainft-labs/ainft-sync/internal/logger"
)

func TestMain(m *testing.M) {
	if err := logger.Initialize(logger.Config{Debug: false}); err != nil {
		panic(err)
	}
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// testKeyPair generates an RSA key pair and returns the private key with the
// public half encoded as PKIX PEM, the format the config carries.
func testKeyPair(t *testing.T) (*rsa.PrivateKey, string) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	der, err := x509.MarshalPKIXPublicKey(&key.PublicKey)
	require.NoError(t, err)
	pemBytes := pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der})
	return key, string(pemBytes)
}

func signToken(t *testing.T, key *rsa.PrivateKey, claims jwt.RegisteredClaims) string {
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	signed, err := token.SignedString(key)
	require.NoError(t, err)
	return signed
}

func TestAuthenticate_APIKey(t *testing.T) {
	cfg := middleware.AuthConfig{APIKeys: []string{"key-1", "key-2"}}

	result := middleware.Authenticate("ApiKey key-2", cfg)
	assert.True(t, result.Success)
	assert.Equal(t, "apikey", result.AuthType)

	result = middleware.Authenticate("ApiKey wrong", cfg)
	assert.False(t, result.Success)
}

func TestAuthenticate_JWT(t *testing.T) {
	key, publicPEM := testKeyPair(t)
	cfg := middleware.AuthConfig{JWTPublicKey: publicPEM}

	token := signToken(t, key, jwt.RegisteredClaims{
		Subject:   "0xaabb00000000000000000000000000000000ccdd",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})

	result := middleware.Authenticate("Bearer "+token, cfg)
	require.True(t, result.Success)
	assert.Equal(t, "jwt", result.AuthType)
	assert.Equal(t, "0xaabb00000000000000000000000000000000ccdd", result.AuthSubject)
}

func TestAuthenticate_ExpiredJWT(t *testing.T) {
	key, publicPEM := testKeyPair(t)
	cfg := middleware.AuthConfig{JWTPublicKey: publicPEM}

	token := signToken(t, key, jwt.RegisteredClaims{
		Subject:   "0xaabb00000000000000000000000000000000ccdd",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
	})

	result := middleware.Authenticate("Bearer "+token, cfg)
	assert.False(t, result.Success)
	assert.Error(t, result.Error)
}

func TestAuthenticate_WrongKeySignature(t *testing.T) {
	signingKey, _ := testKeyPair(t)
	_, otherPublicPEM := testKeyPair(t)
	cfg := middleware.AuthConfig{JWTPublicKey: otherPublicPEM}

	token := signToken(t, signingKey, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})

	result := middleware.Authenticate("Bearer "+token, cfg)
	assert.False(t, result.Success)
}

func TestAuthenticate_BadHeaders(t *testing.T) {
	cfg := middleware.AuthConfig{APIKeys: []string{"key-1"}}

	assert.False(t, middleware.Authenticate("", cfg).Success)
	assert.False(t, middleware.Authenticate("key-1", cfg).Success)
	assert.False(t, middleware.Authenticate("Basic dXNlcjpwYXNz", cfg).Success)
}

func TestAuthMiddleware(t *testing.T) {
	cfg := middleware.AuthConfig{APIKeys: []string{"key-1"}}

	router := gin.New()
	router.Use(middleware.Auth(cfg))
	router.GET("/protected", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "ApiKey key-1")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
