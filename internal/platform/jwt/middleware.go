package jwtmw

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	// ContextUserID is the gin context key holding the authenticated user's ID.
	ContextUserID = "userID"

	// CookieName is the identity cookie key. The value is a signed token,
	// never a raw user id.
	CookieName = "id"

	// EnvKeyJWTSecret is the environment variable holding the signing secret.
	EnvKeyJWTSecret = "JWT_SECRET"
)

// Identity returns a Gin middleware that resolves the current user from the
// identity cookie. A missing, malformed, expired or forged cookie resolves to
// an anonymous request; the page handlers decide what anonymous users may see.
func Identity() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, err := c.Cookie(CookieName)
		if err != nil || tokenStr == "" {
			c.Next()
			return
		}

		secret := os.Getenv(EnvKeyJWTSecret)
		if secret == "" {
			// Without a secret no cookie can be validated
			c.Next()
			return
		}

		// Parse and verify the token signature (only HMAC allowed)
		token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			c.Next()
			return
		}

		if claims, ok := token.Claims.(jwt.MapClaims); ok {
			if sub, ok := claims["sub"].(float64); ok { // JWT numbers are decoded as float64
				c.Set(ContextUserID, uint(sub))
			}
		}
		c.Next()
	}
}

// IdentityRequired returns a Gin middleware that redirects anonymous requests
// to the login page. It expects Identity() to have run earlier in the chain.
func IdentityRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := CurrentUserID(c); !ok {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// CurrentUserID returns the authenticated user's ID from the gin context.
// The second return value is false for anonymous requests.
func CurrentUserID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(ContextUserID)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}
