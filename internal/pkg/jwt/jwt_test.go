package jwt

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paietrack/paietrack-backend-go/internal/domain/user"
)

const testSecret = "test-secret-key-for-jwt"

func testService() Service {
	return NewJWTService(testSecret, "1h", "24h")
}

func TestGenerateAccessToken_Claims(t *testing.T) {
	svc := testService()
	companyID := "company-1"
	employeeID := "emp-1"

	tokenString, expiresAt, err := svc.GenerateAccessToken("user-1", "admin@example.com", &employeeID, &companyID, user.RoleAdmin)
	require.NoError(t, err)
	require.NotEmpty(t, tokenString)
	assert.Greater(t, expiresAt, time.Now().Unix())

	token, err := svc.JWTAuth().Decode(tokenString)
	require.NoError(t, err)

	claims, err := token.AsMap(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims["user_id"])
	assert.Equal(t, "admin@example.com", claims["email"])
	assert.Equal(t, "emp-1", claims["employee_id"])
	assert.Equal(t, "company-1", claims["company_id"])
	assert.Equal(t, "ADMIN", claims["role"])
	assert.Equal(t, "access", claims["type"])
}

func TestGenerateAccessToken_NilCompany(t *testing.T) {
	svc := testService()

	tokenString, _, err := svc.GenerateAccessToken("user-1", "new@example.com", nil, nil, user.RoleAdmin)
	require.NoError(t, err)

	token, err := svc.JWTAuth().Decode(tokenString)
	require.NoError(t, err)

	claims, err := token.AsMap(context.Background())
	require.NoError(t, err)
	assert.Nil(t, claims["company_id"])
	assert.Nil(t, claims["employee_id"])
}

func TestVerifyRefreshToken_RoundTrip(t *testing.T) {
	svc := testService()

	tokenString, expiresAt, err := svc.GenerateRefreshToken("user-1")
	require.NoError(t, err)
	assert.Greater(t, expiresAt, time.Now().Unix())

	userID, err := svc.VerifyRefreshToken(tokenString)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
}

func TestVerifyRefreshToken_RejectsAccessToken(t *testing.T) {
	svc := testService()

	tokenString, _, err := svc.GenerateAccessToken("user-1", "a@b.cd", nil, nil, user.RoleAdmin)
	require.NoError(t, err)

	_, err = svc.VerifyRefreshToken(tokenString)
	assert.Error(t, err)
}

func TestVerifyRefreshToken_RejectsWrongSignature(t *testing.T) {
	other := NewJWTService("a-completely-different-secret", "1h", "24h")

	tokenString, _, err := other.GenerateRefreshToken("user-1")
	require.NoError(t, err)

	_, err = testService().VerifyRefreshToken(tokenString)
	assert.Error(t, err)
}

func TestRefreshTokenCookie(t *testing.T) {
	svc := testService()

	cookie := svc.RefreshTokenCookie("some-token", time.Now().Add(time.Hour).Unix())

	assert.Equal(t, "refresh_token", cookie.Name)
	assert.Equal(t, "some-token", cookie.Value)
	assert.Equal(t, "/api/v1/auth", cookie.Path)
	assert.True(t, cookie.HttpOnly)
}

func TestHashToken(t *testing.T) {
	first := HashToken("token-a")
	second := HashToken("token-a")

	assert.Equal(t, first, second)
	assert.Len(t, first, 64)
	assert.NotEqual(t, first, HashToken("token-b"))
}
