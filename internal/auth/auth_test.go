package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testManager() *JWTManager {
	return NewJWTManager("unit-test-secret-key", "rfid-inventory-api", time.Hour)
}

func TestGenerateAndValidateToken(t *testing.T) {
	m := testManager()

	token, err := m.GenerateToken(42, []string{"manager"})
	require.NoError(t, err)

	claims, err := m.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), claims.UserID)
	assert.Equal(t, []string{"manager"}, claims.Roles)
	assert.Equal(t, "rfid-inventory-api", claims.Issuer)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	token, err := testManager().GenerateToken(1, []string{"viewer"})
	require.NoError(t, err)

	other := NewJWTManager("a-different-secret-key", "rfid-inventory-api", time.Hour)
	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	m := NewJWTManager("unit-test-secret-key", "rfid-inventory-api", -time.Minute)
	token, err := m.GenerateToken(1, []string{"viewer"})
	require.NoError(t, err)

	_, err = m.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateConfig(t *testing.T) {
	assert.NoError(t, testManager().ValidateConfig())
	assert.Error(t, NewJWTManager("short", "iss", time.Hour).ValidateConfig())
	assert.Error(t, NewJWTManager("unit-test-secret-key", "iss", 0).ValidateConfig())
}

func TestHasRole(t *testing.T) {
	c := &Claims{Roles: []string{"viewer"}}
	assert.True(t, c.HasRole("viewer"))
	assert.True(t, c.HasRole("manager", "viewer"))
	assert.False(t, c.HasRole("manager"))
}

func protectedOK() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthMiddleware(t *testing.T) {
	m := testManager()
	handler := AuthMiddleware(m)(protectedOK())

	t.Run("missing header", func(t *testing.T) {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest("GET", "/resale/categories", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("malformed header", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/resale/categories", nil)
		req.Header.Set("Authorization", "Token abc")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("valid token", func(t *testing.T) {
		token, err := m.GenerateToken(7, []string{"viewer"})
		require.NoError(t, err)

		req := httptest.NewRequest("GET", "/resale/categories", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestMustRole(t *testing.T) {
	m := testManager()
	handler := AuthMiddleware(m)(MustRole("manager")(protectedOK()))

	token, err := m.GenerateToken(7, []string{"viewer"})
	require.NoError(t, err)
	req := httptest.NewRequest("POST", "/resale/items/T1/sell", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)

	token, err = m.GenerateToken(7, []string{"manager"})
	require.NoError(t, err)
	req = httptest.NewRequest("POST", "/resale/items/T1/sell", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
