package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
)

const sessionContextKey = "session"

// Session is the identity attached to a request. It is produced by the
// external identity provider and only verified here.
type Session struct {
	UserID string
	Name   string
}

// SessionClaims is the JWT payload the identity provider signs.
type SessionClaims struct {
	Name string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// SessionFrom extracts the caller's session from the echo context.
// ok is false for anonymous requests.
func SessionFrom(c echo.Context) (*Session, bool) {
	s, ok := c.Get(sessionContextKey).(*Session)
	return s, ok && s != nil
}

// RequireSession rejects requests without a valid bearer token.
// Used on mutation routes.
func RequireSession(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess, err := sessionFromHeader(c, secret)
			if err != nil {
				return err
			}
			if sess == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
			}
			c.Set(sessionContextKey, sess)
			return next(c)
		}
	}
}

// OptionalSession attaches a session when a bearer token is present and
// lets anonymous requests through. A token that is present but invalid is
// still rejected; bad credentials are not the same as no credentials.
// Used on feed and profile query routes.
func OptionalSession(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess, err := sessionFromHeader(c, secret)
			if err != nil {
				return err
			}
			if sess != nil {
				c.Set(sessionContextKey, sess)
			}
			return next(c)
		}
	}
}

// sessionFromHeader parses the Authorization header.
// Returns (nil, nil) when no header is present.
func sessionFromHeader(c echo.Context, secret string) (*Session, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return nil, nil
	}

	// Expecting "Bearer <token>"
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid Authorization header format")
	}

	claims := &SessionClaims{}
	token, err := jwt.ParseWithClaims(parts[1], claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, echo.NewHTTPError(http.StatusUnauthorized, "unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
	}
	if claims.Subject == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "token has no subject")
	}

	return &Session{UserID: claims.Subject, Name: claims.Name}, nil
}
