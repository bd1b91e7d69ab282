package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paietrack/paietrack-backend-go/internal/domain/user"
)

func requestWithClaims(t *testing.T, claims map[string]interface{}) *http.Request {
	ja := jwtauth.New("HS256", []byte("test-secret"), nil)
	claims["exp"] = time.Now().Add(time.Hour).Unix()
	token, _, err := ja.Encode(claims)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/", nil)
	return req.WithContext(jwtauth.NewContext(context.Background(), token, nil))
}

func okHandler() (http.Handler, *bool) {
	called := false
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		w.WriteHeader(http.StatusOK)
	}), &called
}

func TestRequirePermission_Allows(t *testing.T) {
	next, called := okHandler()
	handler := RequirePermission(user.PermissionPaymentProcess)(next)

	req := requestWithClaims(t, map[string]interface{}{"role": "CAISSIER"})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, *called)
}

func TestRequirePermission_DeniesMissingPermission(t *testing.T) {
	next, called := okHandler()
	handler := RequirePermission(user.PermissionPayrollManage)(next)

	req := requestWithClaims(t, map[string]interface{}{"role": "VIGILE"})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, *called)
}

func TestRequirePermission_DeniesWithoutClaims(t *testing.T) {
	next, called := okHandler()
	handler := RequirePermission(user.PermissionDashboardView)(next)

	req := httptest.NewRequest("GET", "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, *called)
}

func TestRequireSuperAdmin(t *testing.T) {
	next, called := okHandler()
	handler := RequireSuperAdmin(next)

	req := requestWithClaims(t, map[string]interface{}{"role": "SUPER_ADMIN"})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, *called)

	*called = false
	req = requestWithClaims(t, map[string]interface{}{"role": "ADMIN"})
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, *called)
}
