package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/gvanmetre/BiteBook/internal/usecase"
)

// sessionClaims is the wire form of a session token's payload.
type sessionClaims struct {
	Admin bool `json:"admin"`
	jwt.RegisteredClaims
}

// JWTManager signs and verifies the session tokens that back the browser
// cookie and the Authorization header.
type JWTManager struct {
	secret []byte
	expiry time.Duration
}

var _ usecase.JWTService = (*JWTManager)(nil)

// NewJWTManager creates a new JWTManager with the signing secret and token
// lifetime.
func NewJWTManager(secret string, expiry time.Duration) *JWTManager {
	return &JWTManager{secret: []byte(secret), expiry: expiry}
}

// GenerateSessionToken issues a signed session token for the user.
func (m *JWTManager) GenerateSessionToken(userID string, admin bool) (string, error) {
	now := time.Now()
	claims := sessionClaims{
		Admin: admin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.expiry)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session token: %w", err)
	}
	return signed, nil
}

// ParseSessionToken validates a session token and returns its claims.
func (m *JWTManager) ParseSessionToken(tokenStr string) (*usecase.SessionClaims, error) {
	var claims sessionClaims
	token, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid session token: %w", err)
	}
	if !token.Valid || claims.Subject == "" {
		return nil, fmt.Errorf("invalid session token")
	}
	return &usecase.SessionClaims{UserID: claims.Subject, Admin: claims.Admin}, nil
}
