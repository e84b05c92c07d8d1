package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"rfid-inventory-api/internal/models"

	"github.com/lib/pq"
)

// GetUserByEmail fetches an active user for login.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	var roles pq.StringArray
	var lastLogin sql.NullTime

	err := s.DB.QueryRowContext(ctx, `
		SELECT id, email, password_hash, roles, is_active, created_at, last_login_at
		FROM users
		WHERE email = $1 AND is_active = true`, email,
	).Scan(&u.ID, &u.Email, &u.PasswordHash, &roles, &u.IsActive, &u.CreatedAt, &lastLogin)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: user %s", ErrNotFound, email)
	}
	if err != nil {
		return nil, err
	}

	u.Roles = roles
	if lastLogin.Valid {
		u.LastLoginAt = &lastLogin.Time
	}
	return &u, nil
}

// CreateUser inserts a user account. Duplicate emails map to
// ErrInvalidState via the unique-violation code.
func (s *Store) CreateUser(ctx context.Context, email, passwordHash string, roles []string) (int64, error) {
	var id int64
	err := s.DB.QueryRowContext(ctx, `
		INSERT INTO users (email, password_hash, roles, is_active)
		VALUES ($1, $2, $3, true)
		RETURNING id`,
		email, passwordHash, pq.StringArray(roles),
	).Scan(&id)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return 0, fmt.Errorf("%w: email %s already exists", ErrInvalidState, email)
		}
		return 0, err
	}
	return id, nil
}

// TouchLastLogin records a successful login. Failures are the caller's to
// ignore; login must not depend on this write.
func (s *Store) TouchLastLogin(ctx context.Context, userID int64) error {
	_, err := s.DB.ExecContext(ctx,
		`UPDATE users SET last_login_at = now() WHERE id = $1`, userID)
	return err
}
