package internal

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"rfid-inventory-api/internal/models"
	"rfid-inventory-api/internal/store"

	"golang.org/x/crypto/bcrypt"
)

// loginUser handles user authentication
func (s *Server) loginUser(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		sendError(w, http.StatusBadRequest, "email and password are required")
		return
	}

	user, err := s.Store.GetUserByEmail(r.Context(), req.Email)
	if errors.Is(err, store.ErrNotFound) {
		sendError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}
	if err != nil {
		sendError(w, http.StatusInternalServerError, "database error")
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		sendError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	// Best effort; login must not depend on this write.
	if err := s.Store.TouchLastLogin(r.Context(), user.ID); err != nil {
		log.Printf("failed to update last_login_at: %v", err)
	}

	token, err := s.JWTManager.GenerateToken(user.ID, user.Roles)
	if err != nil {
		sendError(w, http.StatusInternalServerError, "failed to generate token")
		return
	}

	sendJSON(w, http.StatusOK, models.LoginResponse{
		Token: token,
		User:  user.Redacted(),
	})
}
