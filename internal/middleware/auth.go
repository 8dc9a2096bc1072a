package middleware

import (
	"crypto/rsa"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log"
	"math/big"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/stuartshay/otel-data-api/internal/config"
	"github.com/stuartshay/otel-data-api/internal/model"
)

// ClaimsKey is the gin context key holding validated JWT claims
const ClaimsKey = "claims"

// jwk is one entry of a JWKS document
type jwk struct {
	Kty string `json:"kty"`
	Kid string `json:"kid"`
	Use string `json:"use"`
	N   string `json:"n"`
	E   string `json:"e"`
}

type jwksDocument struct {
	Keys []jwk `json:"keys"`
}

// Authenticator validates bearer tokens against the issuer's JWKS.
// The key set is fetched once and held for the process lifetime; it is
// only refetched when the cache is still empty. Key rotation at the
// issuer therefore requires a restart (matching upstream behavior —
// see DESIGN.md).
type Authenticator struct {
	issuer   string
	clientID string
	enabled  bool
	client   *http.Client

	mu        sync.Mutex
	keys      map[string]*rsa.PublicKey
	fetchedAt time.Time
}

// NewAuthenticator builds the auth gate from configuration
func NewAuthenticator(cfg *config.Config) *Authenticator {
	return &Authenticator{
		issuer:   cfg.CognitoIssuer,
		clientID: cfg.CognitoClientID,
		enabled:  cfg.OAuth2Enabled,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

// RequireAuth returns middleware that enforces a valid bearer token.
// When OAuth2 is disabled every request passes through anonymously.
func (a *Authenticator) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !a.enabled {
			c.Next()
			return
		}

		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, model.ErrorResponse{Detail: "Authorization header required"})
			return
		}
		tokenString := strings.TrimPrefix(header, "Bearer ")

		keys, err := a.signingKeys()
		if err != nil {
			log.Printf("[Auth] Failed to fetch JWKS: %v", err)
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, model.ErrorResponse{Detail: "Authentication service unavailable"})
			return
		}

		claims := jwt.MapClaims{}
		_, err = jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
			kid, _ := t.Header["kid"].(string)
			key, ok := keys[kid]
			if !ok {
				return nil, fmt.Errorf("no signing key for kid %q", kid)
			}
			return key, nil
		},
			jwt.WithValidMethods([]string{"RS256"}),
			jwt.WithAudience(a.clientID),
			jwt.WithIssuer(a.issuer),
		)
		if err != nil {
			log.Printf("[Auth] JWT validation failed: %v", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, model.ErrorResponse{Detail: "Invalid or expired token"})
			return
		}

		c.Set(ClaimsKey, claims)
		c.Next()
	}
}

// signingKeys returns the cached key set, fetching it when empty
func (a *Authenticator) signingKeys() (map[string]*rsa.PublicKey, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if len(a.keys) > 0 {
		return a.keys, nil
	}

	jwksURL := a.issuer + "/.well-known/jwks.json"
	resp, err := a.client.Get(jwksURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("jwks endpoint returned %d", resp.StatusCode)
	}

	var doc jwksDocument
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		return nil, err
	}

	keys := make(map[string]*rsa.PublicKey, len(doc.Keys))
	for _, k := range doc.Keys {
		if k.Kty != "RSA" {
			continue
		}
		pub, err := k.rsaPublicKey()
		if err != nil {
			log.Printf("[Auth] Skipping unparsable JWK %q: %v", k.Kid, err)
			continue
		}
		keys[k.Kid] = pub
	}
	if len(keys) == 0 {
		return nil, fmt.Errorf("jwks document from %s contained no usable RSA keys", jwksURL)
	}

	a.keys = keys
	a.fetchedAt = time.Now()
	log.Printf("[Auth] JWKS cached (%d keys)", len(keys))
	return a.keys, nil
}

// rsaPublicKey decodes the base64url modulus and exponent of an RSA JWK
func (k jwk) rsaPublicKey() (*rsa.PublicKey, error) {
	nBytes, err := base64.RawURLEncoding.DecodeString(k.N)
	if err != nil {
		return nil, fmt.Errorf("decode modulus: %w", err)
	}
	eBytes, err := base64.RawURLEncoding.DecodeString(k.E)
	if err != nil {
		return nil, fmt.Errorf("decode exponent: %w", err)
	}

	e := 0
	for _, b := range eBytes {
		e = e<<8 | int(b)
	}
	if e == 0 {
		return nil, fmt.Errorf("zero exponent")
	}

	return &rsa.PublicKey{
		N: new(big.Int).SetBytes(nBytes),
		E: e,
	}, nil
}
