package middleware

import (
	"crypto/rand"
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stuartshay/otel-data-api/internal/config"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func protectedRouter(auth *Authenticator) *gin.Engine {
	router := gin.New()
	router.POST("/protected", auth.RequireAuth(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return router
}

func request(router *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/protected", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// jwksServer serves a single-key JWKS document for the given key
func jwksServer(t *testing.T, kid string, pub *rsa.PublicKey) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/.well-known/jwks.json", r.URL.Path)
		doc := map[string]interface{}{
			"keys": []map[string]string{{
				"kty": "RSA",
				"kid": kid,
				"use": "sig",
				"n":   base64.RawURLEncoding.EncodeToString(pub.N.Bytes()),
				"e":   base64.RawURLEncoding.EncodeToString(big.NewInt(int64(pub.E)).Bytes()),
			}},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(doc)
	}))
}

func signToken(t *testing.T, key *rsa.PrivateKey, kid string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	token.Header["kid"] = kid
	signed, err := token.SignedString(key)
	require.NoError(t, err)
	return signed
}

func TestRequireAuth_DisabledPassesThrough(t *testing.T) {
	auth := NewAuthenticator(&config.Config{OAuth2Enabled: false})
	w := request(protectedRouter(auth), "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireAuth_MissingHeader(t *testing.T) {
	auth := NewAuthenticator(&config.Config{OAuth2Enabled: true, CognitoIssuer: "https://issuer.invalid"})
	w := request(protectedRouter(auth), "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Authorization header required")
}

func TestRequireAuth_JWKSUnreachable(t *testing.T) {
	// An unreachable issuer is a dependency failure, not a caller error.
	auth := NewAuthenticator(&config.Config{
		OAuth2Enabled: true,
		CognitoIssuer: "http://127.0.0.1:1",
	})
	w := request(protectedRouter(auth), "some-token")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "Authentication service unavailable")
}

func TestRequireAuth_ValidToken(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	srv := jwksServer(t, "key-1", &key.PublicKey)
	defer srv.Close()

	auth := NewAuthenticator(&config.Config{
		OAuth2Enabled:   true,
		CognitoIssuer:   srv.URL,
		CognitoClientID: "client-1",
	})

	token := signToken(t, key, "key-1", jwt.MapClaims{
		"iss": srv.URL,
		"aud": "client-1",
		"sub": "user-1",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	w := request(protectedRouter(auth), token)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireAuth_WrongAudience(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	srv := jwksServer(t, "key-1", &key.PublicKey)
	defer srv.Close()

	auth := NewAuthenticator(&config.Config{
		OAuth2Enabled:   true,
		CognitoIssuer:   srv.URL,
		CognitoClientID: "client-1",
	})

	token := signToken(t, key, "key-1", jwt.MapClaims{
		"iss": srv.URL,
		"aud": "someone-else",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	w := request(protectedRouter(auth), token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid or expired token")
}

func TestRequireAuth_ExpiredToken(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	srv := jwksServer(t, "key-1", &key.PublicKey)
	defer srv.Close()

	auth := NewAuthenticator(&config.Config{
		OAuth2Enabled:   true,
		CognitoIssuer:   srv.URL,
		CognitoClientID: "client-1",
	})

	token := signToken(t, key, "key-1", jwt.MapClaims{
		"iss": srv.URL,
		"aud": "client-1",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})

	w := request(protectedRouter(auth), token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuth_UnknownKid(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	srv := jwksServer(t, "key-1", &key.PublicKey)
	defer srv.Close()

	auth := NewAuthenticator(&config.Config{
		OAuth2Enabled:   true,
		CognitoIssuer:   srv.URL,
		CognitoClientID: "client-1",
	})

	token := signToken(t, key, "rotated-key", jwt.MapClaims{
		"iss": srv.URL,
		"aud": "client-1",
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	w := request(protectedRouter(auth), token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireAuth_KeysCachedAcrossRequests(t *testing.T) {
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	fetches := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fetches++
		doc := map[string]interface{}{
			"keys": []map[string]string{{
				"kty": "RSA",
				"kid": "key-1",
				"n":   base64.RawURLEncoding.EncodeToString(key.PublicKey.N.Bytes()),
				"e":   base64.RawURLEncoding.EncodeToString(big.NewInt(int64(key.PublicKey.E)).Bytes()),
			}},
		}
		json.NewEncoder(w).Encode(doc)
	}))
	defer srv.Close()

	auth := NewAuthenticator(&config.Config{
		OAuth2Enabled:   true,
		CognitoIssuer:   srv.URL,
		CognitoClientID: "client-1",
	})
	router := protectedRouter(auth)

	for i := 0; i < 3; i++ {
		token := signToken(t, key, "key-1", jwt.MapClaims{
			"iss": srv.URL,
			"aud": "client-1",
			"exp": time.Now().Add(time.Hour).Unix(),
		})
		w := request(router, token)
		require.Equal(t, http.StatusOK, w.Code)
	}

	assert.Equal(t, 1, fetches)
}
