package tokens

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cashdesk/pettycash.go/common"
	"github.com/cashdesk/pettycash.go/db/models"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

var testSecret = []byte("SECRET")

var testUser = &models.User{
	ID:    42,
	Name:  "Jane Employee",
	Email: "employee@company.com",
	Role:  common.RoleEmployee,
}

func TestTokenRoundTrip(t *testing.T) {
	token, err := GenerateAccessToken(testSecret, 3600, testUser)
	assert.NoError(t, err)

	claims, err := ParseToken(testSecret, token)
	assert.NoError(t, err)
	assert.Equal(t, int64(42), claims.ID)
	assert.Equal(t, "employee@company.com", claims.Email)
	assert.Equal(t, "employee", claims.Role)
	assert.Equal(t, "Jane Employee", claims.Name)
}

func TestExpiredTokenRejected(t *testing.T) {
	token, err := GenerateAccessToken(testSecret, -1, testUser)
	assert.NoError(t, err)

	_, err = ParseToken(testSecret, token)
	assert.Error(t, err)
}

func TestWrongSecretRejected(t *testing.T) {
	token, err := GenerateAccessToken(testSecret, 3600, testUser)
	assert.NoError(t, err)

	_, err = ParseToken([]byte("NOT-THE-SECRET"), token)
	assert.Error(t, err)
}

func callWithToken(t *testing.T, mw echo.MiddlewareFunc, authHeader string) (*httptest.ResponseRecorder, error) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	handler := mw(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	return rec, handler(c)
}

func TestMiddlewareSetsIdentity(t *testing.T) {
	token, err := GenerateAccessToken(testSecret, 3600, testUser)
	assert.NoError(t, err)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Middleware(testSecret)(func(c echo.Context) error {
		assert.Equal(t, int64(42), c.Get("UserID"))
		assert.Equal(t, common.RoleEmployee, c.Get("UserRole"))
		return c.NoContent(http.StatusOK)
	})
	assert.NoError(t, handler(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMiddlewareRejectsMissingAndGarbageTokens(t *testing.T) {
	mw := Middleware(testSecret)

	rec, err := callWithToken(t, mw, "")
	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, err = callWithToken(t, mw, "Bearer garbage")
	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRoleMiddleware(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("UserRole", common.RoleEmployee)

	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }

	assert.NoError(t, RoleMiddleware(common.RoleAdmin, common.RoleAccountant)(next)(c))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = httptest.NewRecorder()
	c = e.NewContext(req, rec)
	c.Set("UserRole", common.RoleAccountant)
	assert.NoError(t, RoleMiddleware(common.RoleAdmin, common.RoleAccountant)(next)(c))
	assert.Equal(t, http.StatusOK, rec.Code)
}
