package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliaalekseevofb/Twitter-clone/internal/middleware"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret, sub, name string) string {
	t.Helper()
	claims := &middleware.SessionClaims{
		Name:             name,
		RegisteredClaims: jwt.RegisteredClaims{Subject: sub},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

// invoke runs a request through mw into a handler that records the session.
func invoke(t *testing.T, mw echo.MiddlewareFunc, authHeader string) (*middleware.Session, error) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var got *middleware.Session
	handler := mw(func(c echo.Context) error {
		if s, ok := middleware.SessionFrom(c); ok {
			got = s
		}
		return c.NoContent(http.StatusOK)
	})
	return got, handler(c)
}

func TestRequireSessionRejectsMissingHeader(t *testing.T) {
	_, err := invoke(t, middleware.RequireSession(testSecret), "")
	require.Error(t, err)

	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusUnauthorized, he.Code)
}

func TestRequireSessionAcceptsValidToken(t *testing.T) {
	token := signToken(t, testSecret, "user-1", "alice")

	sess, err := invoke(t, middleware.RequireSession(testSecret), "Bearer "+token)
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.Equal(t, "user-1", sess.UserID)
	assert.Equal(t, "alice", sess.Name)
}

func TestRequireSessionRejectsWrongSecret(t *testing.T) {
	token := signToken(t, "other-secret", "user-1", "alice")

	_, err := invoke(t, middleware.RequireSession(testSecret), "Bearer "+token)
	require.Error(t, err)

	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusUnauthorized, he.Code)
}

func TestOptionalSessionAllowsAnonymous(t *testing.T) {
	sess, err := invoke(t, middleware.OptionalSession(testSecret), "")
	require.NoError(t, err)
	assert.Nil(t, sess)
}

func TestOptionalSessionStillRejectsBadToken(t *testing.T) {
	// bad credentials are not the same as no credentials
	_, err := invoke(t, middleware.OptionalSession(testSecret), "Bearer garbage")
	require.Error(t, err)

	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusUnauthorized, he.Code)
}

func TestOptionalSessionAttachesIdentity(t *testing.T) {
	token := signToken(t, testSecret, "user-2", "bob")

	sess, err := invoke(t, middleware.OptionalSession(testSecret), "Bearer "+token)
	require.NoError(t, err)
	require.NotNil(t, sess)
	assert.Equal(t, "user-2", sess.UserID)
}

func TestRejectsMalformedHeader(t *testing.T) {
	_, err := invoke(t, middleware.RequireSession(testSecret), "Token abc")
	require.Error(t, err)

	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusUnauthorized, he.Code)
}
