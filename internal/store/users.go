package store

import (
	"context"

	"inventory/m/domain"
)

const userColumns = `id, username, email, password, created_at`

// CreateUser inserts a user whose password is already hashed.
func (s *Store) CreateUser(ctx context.Context, u domain.User) (domain.User, error) {
	id, err := insert(ctx, s.db, `INSERT INTO users (username, email, password, created_at) VALUES (?, ?, ?, ?)`,
		u.Username, u.Email, u.Password, s.now())
	if err != nil {
		if isUniqueViolation(err) {
			return u, domain.Conflictf("email already registered")
		}
		return u, classify("insert user", err)
	}
	return s.UserByID(ctx, id)
}

// UserByEmail looks a user up by lower-cased email.
func (s *Store) UserByEmail(ctx context.Context, email string) (domain.User, error) {
	var u domain.User
	err := get(ctx, s.db, &u, `SELECT `+userColumns+` FROM users WHERE email = ?`, email)
	if isNoRows(err) {
		return u, domain.NotFoundf("user not found")
	}
	if err != nil {
		return u, classify("get user", err)
	}
	return u, nil
}

// UserByID looks a user up by id.
func (s *Store) UserByID(ctx context.Context, id int64) (domain.User, error) {
	var u domain.User
	err := get(ctx, s.db, &u, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	if isNoRows(err) {
		return u, domain.NotFoundf("user not found")
	}
	if err != nil {
		return u, classify("get user", err)
	}
	return u, nil
}

// UpdatePassword stores a new password hash.
func (s *Store) UpdatePassword(ctx context.Context, id int64, hash string) error {
	n, err := exec(ctx, s.db, `UPDATE users SET password = ? WHERE id = ?`, hash, id)
	if err != nil {
		return classify("update password", err)
	}
	if n == 0 {
		return domain.NotFoundf("user not found")
	}
	return nil
}
