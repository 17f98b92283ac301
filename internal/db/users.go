package db

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"guesswho/internal/auth"
)

// UserStore persists accounts in Postgres. It satisfies auth.UserStore.
type UserStore struct {
	db *DB
}

func NewUserStore(d *DB) *UserStore {
	return &UserStore{db: d}
}

func (s *UserStore) CreateUser(u auth.User) error {
	_, err := s.db.conn.Exec(`
		INSERT INTO users (username, password_hash, created_at)
		VALUES ($1, $2, $3)
	`, u.Username, u.PasswordHash, u.CreatedAt)
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
		return auth.ErrUsernameTaken
	}
	if err != nil {
		return fmt.Errorf("creating user: %w", err)
	}
	return nil
}

func (s *UserStore) GetUser(username string) (auth.User, error) {
	var u auth.User
	err := s.db.conn.QueryRow(`
		SELECT username, password_hash, created_at FROM users WHERE username = $1
	`, username).Scan(&u.Username, &u.PasswordHash, &u.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return auth.User{}, auth.ErrUserNotFound
	}
	if err != nil {
		return auth.User{}, fmt.Errorf("getting user: %w", err)
	}
	return u, nil
}
