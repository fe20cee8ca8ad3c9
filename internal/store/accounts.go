package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/avolkov/parley/internal/domain"
)

func hashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hashed), nil
}

func verifyPassword(passwordHash, password string) bool {
	if passwordHash == "" || password == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password)) == nil
}

// CreateAccount registers a new user. Username collisions return ErrUsernameTaken.
func (s *Store) CreateAccount(ctx context.Context, username, firstname, lastname, password string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	firstname = strings.TrimSpace(firstname)
	lastname = strings.TrimSpace(lastname)
	if username == "" || firstname == "" || lastname == "" || password == "" {
		return nil, ErrInvalidInput
	}

	user, err := domain.NewUser(username, firstname, lastname)
	if err != nil {
		return nil, ErrInvalidInput
	}

	hash, err := hashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO users (username, firstname, lastname, password_hash, created_at) VALUES (?, ?, ?, ?, ?)`,
		user.Username, user.Firstname, user.Lastname, hash, domain.FormatSentAt(time.Now()),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return user, nil
}

// VerifyCredentials checks username/password and returns the identity.
func (s *Store) VerifyCredentials(ctx context.Context, username, password string) (*domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	var user domain.User
	var hash string
	err := s.db.QueryRowContext(ctx,
		`SELECT username, firstname, lastname, password_hash FROM users WHERE username = ?`,
		username,
	).Scan(&user.Username, &user.Firstname, &user.Lastname, &hash)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("query user: %w", err)
	}

	if !verifyPassword(hash, password) {
		return nil, ErrInvalidCredentials
	}
	return &user, nil
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}
