package models

import "time"

// Valid user roles. Managers may mutate tag state and run imports; viewers
// only read.
var validRoles = map[string]bool{
	"manager": true,
	"viewer":  true,
}

// User represents an API user account.
type User struct {
	ID           int64      `json:"id"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Roles        []string   `json:"roles"`
	IsActive     bool       `json:"is_active"`
	CreatedAt    time.Time  `json:"created_at"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
}

// Redacted returns a copy safe to serialize in responses.
func (u User) Redacted() User {
	u.PasswordHash = ""
	return u
}

// ValidateRoles checks that every role is in the known set.
func ValidateRoles(roles []string) bool {
	if len(roles) == 0 {
		return false
	}
	for _, r := range roles {
		if !validRoles[r] {
			return false
		}
	}
	return true
}

// LoginRequest is the POST /auth/login request body.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse is the POST /auth/login response body.
type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}
