package internal

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"rfid-inventory-api/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestLoginUser(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("changeme"), bcrypt.MinCost)
	require.NoError(t, err)

	f := &fakeStore{users: map[string]*models.User{
		"admin@example.com": {
			ID:           1,
			Email:        "admin@example.com",
			PasswordHash: string(hash),
			Roles:        []string{"manager"},
			IsActive:     true,
		},
	}}
	s := newTestServer(f)

	login := func(body string) *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/auth/login", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		s.loginUser(w, req)
		return w
	}

	t.Run("success", func(t *testing.T) {
		w := login(`{"email":"admin@example.com","password":"changeme"}`)
		require.Equal(t, http.StatusOK, w.Code)

		var resp models.LoginResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.NotEmpty(t, resp.Token)
		assert.Equal(t, "admin@example.com", resp.User.Email)
		assert.Empty(t, resp.User.PasswordHash)
	})

	t.Run("wrong password", func(t *testing.T) {
		w := login(`{"email":"admin@example.com","password":"nope"}`)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("unknown user", func(t *testing.T) {
		w := login(`{"email":"ghost@example.com","password":"changeme"}`)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("missing fields", func(t *testing.T) {
		w := login(`{"email":"admin@example.com"}`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("bad body", func(t *testing.T) {
		w := login(`not json`)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
