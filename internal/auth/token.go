// Package auth issues and verifies the admin session tokens consumed by the
// administrative endpoints. The rest of the system only asks one question of
// it: does this caller hold a valid admin credential.
package auth

import (
	"crypto/subtle"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const tokenValidity = 24 * time.Hour

// Claims marks a token as an admin session. The jti keeps every issued token
// distinct so rate-limit identifiers derived from it stay distinct too.
type Claims struct {
	jwt.RegisteredClaims
	Admin bool `json:"admin"`
}

// TokenIssuer signs and verifies admin session tokens with a shared secret.
type TokenIssuer struct {
	secret   []byte
	password string
	now      func() time.Time
}

func NewTokenIssuer(secret, adminPassword string) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret), password: adminPassword, now: time.Now}
}

// Login checks the admin password in constant time and returns a fresh token.
func (t *TokenIssuer) Login(password string) (string, bool) {
	if subtle.ConstantTimeCompare([]byte(password), []byte(t.password)) != 1 {
		return "", false
	}
	token, err := t.Generate()
	if err != nil {
		return "", false
	}
	return token, true
}

// Generate signs a 24h admin token.
func (t *TokenIssuer) Generate() (string, error) {
	now := t.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenValidity)),
		},
		Admin: true,
	})
	return token.SignedString(t.secret)
}

// Verify reports whether the token represents a valid, unexpired admin
// session.
func (t *TokenIssuer) Verify(tokenString string) bool {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(tok *jwt.Token) (interface{}, error) {
		return t.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(t.now))
	if err != nil {
		return false
	}
	return token.Valid && claims.Admin
}
