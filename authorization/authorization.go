package authorization

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const issuer = "condo_service"

// Capability is the coarse permission set checked by the middleware.
// Admin implies read and write.
type Capability string

const (
	CapRead  Capability = "read"
	CapWrite Capability = "write"
	CapAdmin Capability = "admin"
)

var ErrInvalidToken = errors.New("invalid token")

type Claims struct {
	Capabilities []Capability `json:"capabilities"`
	jwt.RegisteredClaims
}

func (c *Claims) Allows(cap Capability) bool {
	for _, have := range c.Capabilities {
		if have == cap || have == CapAdmin {
			return true
		}
	}
	return false
}

type Authorization struct {
	secret []byte
}

func New(secret string) *Authorization {
	return &Authorization{
		secret: []byte(secret),
	}
}

// GenerateToken signs an HS256 bearer token carrying the capability
// set.
func (a *Authorization) GenerateToken(userID uint, caps []Capability, ttl time.Duration) (string, error) {
	if len(a.secret) == 0 {
		return "", errors.New("auth secret is not configured")
	}
	if ttl <= 0 {
		return "", errors.New("ttl must be greater than zero")
	}

	now := time.Now().UTC()
	claims := Claims{
		Capabilities: caps,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   strconv.FormatUint(uint64(userID), 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        uuid.NewString(),
		},
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
}

// Parse verifies the signature and standard claims.
func (a *Authorization) Parse(token string) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return a.secret, nil
	}, jwt.WithIssuer(issuer))

	if err != nil || !parsed.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

const identityKey = "auth_identity"

// Require gates a route on one capability. The resolved user id lands
// in the gin context for handlers.
func (a *Authorization) Require(cap Capability) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		claims, err := a.Parse(strings.TrimSpace(token))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		if !claims.Allows(cap) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "capability " + string(cap) + " required"})
			return
		}

		c.Set(identityKey, claims)
		c.Next()
	}
}

// UserID resolves the authenticated user from the gin context, zero
// when the route is unauthenticated.
func UserID(c *gin.Context) uint {
	val, ok := c.Get(identityKey)
	if !ok {
		return 0
	}
	claims, ok := val.(*Claims)
	if !ok {
		return 0
	}

	id, err := strconv.ParseUint(claims.Subject, 10, 64)
	if err != nil {
		return 0
	}
	return uint(id)
}
