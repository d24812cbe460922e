package jwtmw

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Generator defines the interface for signed identity token generation.
type Generator interface {
	// GenerateToken creates a signed token for the given user with the given lifetime.
	GenerateToken(userID uint, email string, ttl time.Duration) (string, error)
}

// generator implements the Generator interface.
type generator struct {
	secret []byte
}

// NewGenerator creates a new token generator with the provided secret.
func NewGenerator(secret string) Generator {
	return &generator{secret: []byte(secret)}
}

// GenerateToken creates a signed HS256 token with standard claims.
// The lifetime varies per call: a short session lifetime by default, a
// long one when the user asked to be remembered.
func (g *generator) GenerateToken(userID uint, email string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":   userID,
		"exp":   time.Now().Add(ttl).Unix(),
		"iat":   time.Now().Unix(),
		"email": email,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(g.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}
