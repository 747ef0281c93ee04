package repository

import (
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/mattn/go-sqlite3"

	"github.com/4bhisheksharma/book-swap3/internal/model"
)

var (
	ErrDuplicateUsername = errors.New("username already exists")
	ErrDuplicateEmail    = errors.New("email already registered")
)

// CreateUser creates a new user and returns its id. Unique-constraint
// violations come back as ErrDuplicateUsername or ErrDuplicateEmail so a
// registration that loses a race still fails as a duplicate, not a store
// fault.
func CreateUser(username, passwordHash, email string) (int, error) {
	now := time.Now().Format(time.RFC3339)
	query := `
		INSERT INTO users (username, email, password_hash, created_at)
		VALUES (?, ?, ?, ?)
	`

	result, err := db.Exec(query, username, email, passwordHash, now)
	if err != nil {
		var sqliteErr sqlite3.Error
		if errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique {
			if strings.Contains(sqliteErr.Error(), "users.username") {
				return 0, ErrDuplicateUsername
			}
			if strings.Contains(sqliteErr.Error(), "users.email") {
				return 0, ErrDuplicateEmail
			}
		}
		return 0, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, err
	}

	return int(id), nil
}

// GetUserByUsername returns a user with its credential hash, or nil
func GetUserByUsername(username string) (*model.User, error) {
	query := `
		SELECT id, username, email, password_hash, created_at
		FROM users WHERE username = ?
	`

	user := &model.User{}
	err := db.QueryRow(query, username).Scan(
		&user.ID, &user.Username, &user.Email, &user.Password, &user.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return user, nil
}

// GetUserByID returns a user by id, or nil
func GetUserByID(userID int) (*model.User, error) {
	query := `
		SELECT id, username, email, password_hash, created_at
		FROM users WHERE id = ?
	`

	user := &model.User{}
	err := db.QueryRow(query, userID).Scan(
		&user.ID, &user.Username, &user.Email, &user.Password, &user.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return user, nil
}

// UsernameExists checks if a username is already taken
func UsernameExists(username string) (bool, error) {
	var exists int
	err := db.QueryRow(`SELECT 1 FROM users WHERE username = ?`, username).Scan(&exists)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// EmailExists checks if an email is already registered
func EmailExists(email string) (bool, error) {
	var exists int
	err := db.QueryRow(`SELECT 1 FROM users WHERE email = ?`, email).Scan(&exists)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
