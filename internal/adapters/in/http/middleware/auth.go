// Package middleware provides the HTTP middleware for the order service.
// The bearer-token middleware authenticates callers before any request
// reaches the application core.
package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"pedidos/internal/core/domain/model/kernel"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// callerContextKey stores the authenticated caller on the echo context.
const callerContextKey = "caller"

// Claims is the JWT payload carried by every authenticated request: the
// subject id and the caller's role.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// TokenVerifier issues and verifies the HMAC-signed bearer tokens.
type TokenVerifier struct {
	secret []byte
}

// NewTokenVerifier creates a verifier over the shared HMAC secret.
func NewTokenVerifier(secret string) *TokenVerifier {
	return &TokenVerifier{secret: []byte(secret)}
}

// GenerateToken issues a signed token for the given caller.
func (v *TokenVerifier) GenerateToken(caller kernel.Caller, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Role: caller.Role().String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   caller.ID().String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(v.secret)
}

// VerifyToken parses and validates a token, returning the caller it encodes.
func (v *TokenVerifier) VerifyToken(tokenString string) (kernel.Caller, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return v.secret, nil
	})
	if err != nil {
		return kernel.Caller{}, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return kernel.Caller{}, errors.New("invalid token")
	}

	id, err := kernel.UUIDFromString(claims.Subject)
	if err != nil {
		return kernel.Caller{}, err
	}

	role, err := kernel.ParseRole(claims.Role)
	if err != nil {
		return kernel.Caller{}, err
	}

	return kernel.NewCaller(id, role)
}

// BearerAuth rejects requests without a valid Authorization: Bearer header
// with 401 before the core is reached. The authenticated caller is stored on
// the context for CallerFromContext.
func BearerAuth(verifier *TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Authorization header required")
			}

			tokenString, found := strings.CutPrefix(header, "Bearer ")
			if !found || tokenString == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Authorization header must carry a Bearer token")
			}

			caller, err := verifier.VerifyToken(tokenString)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			c.Set(callerContextKey, caller)
			return next(c)
		}
	}
}

// CallerFromContext returns the caller authenticated by BearerAuth.
func CallerFromContext(c echo.Context) (kernel.Caller, bool) {
	caller, ok := c.Get(callerContextKey).(kernel.Caller)
	return caller, ok
}
