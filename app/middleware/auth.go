package middleware

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// Claims carries the authenticated caller's identity, resolved upstream by
// the auth service that issued the token.
type Claims struct {
	jwt.RegisteredClaims
	UserID int64 `json:"user_id"`
}

const contextKeyUserID = "user_id"

// JWTAuth returns an Echo middleware that validates a Bearer token and puts
// the caller's user id on the request context.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "authorization header required"})
			}

			tokenString, found := strings.CutPrefix(authHeader, "Bearer ")
			if !found {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "bearer token required"})
			}

			claims := &Claims{}
			token, err := jwt.ParseWithClaims(tokenString, claims, func(_ *jwt.Token) (any, error) {
				return []byte(secret), nil
			}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
			if err != nil || !token.Valid {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid token"})
			}

			c.Set(contextKeyUserID, claims.UserID)
			return next(c)
		}
	}
}

// UserID extracts the authenticated user id set by JWTAuth.
func UserID(c echo.Context) (int64, bool) {
	id, ok := c.Get(contextKeyUserID).(int64)
	return id, ok
}

// GenerateToken signs a token for a user id. Used by tests and tooling; the
// production issuer is the upstream auth service.
func GenerateToken(secret string, userID int64) (string, error) {
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		UserID: userID,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}
