package repository

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

var db *sql.DB

// InitDB opens the SQLite database at dbPath and creates tables. Calling it
// again replaces the handle, which is what tests rely on.
func InitDB(dbPath string) error {
	dbDir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dbDir, 0o755); err != nil {
		return fmt.Errorf("failed to create database directory: %w", err)
	}

	// busy_timeout keeps concurrent writers from failing fast with SQLITE_BUSY
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000&_foreign_keys=1", dbPath)
	handle, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	handle.SetMaxOpenConns(25)
	handle.SetMaxIdleConns(5)
	handle.SetConnMaxLifetime(5 * time.Minute)

	db = handle

	if err := createTables(); err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}

	zap.L().Info("Database initialized",
		zap.String("path", dbPath))

	return nil
}

// GetDB returns the database instance
func GetDB() *sql.DB {
	return db
}

// Close closes the database connection
func Close() error {
	if db != nil {
		return db.Close()
	}
	return nil
}

// createTables creates all tables if they don't exist
func createTables() error {
	tables := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			username TEXT UNIQUE NOT NULL,
			email TEXT UNIQUE NOT NULL,
			password_hash TEXT NOT NULL,
			created_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_users_username ON users(username)`,
		`CREATE INDEX IF NOT EXISTS idx_users_email ON users(email)`,

		`CREATE TABLE IF NOT EXISTS books (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			owner_id INTEGER NOT NULL,
			name TEXT NOT NULL,
			description TEXT,
			credit INTEGER NOT NULL DEFAULT 0,
			price TEXT NOT NULL DEFAULT '0.00',
			image TEXT,
			is_available INTEGER NOT NULL DEFAULT 1,
			created_at TEXT NOT NULL,
			FOREIGN KEY (owner_id) REFERENCES users(id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_books_owner_id ON books(owner_id)`,

		`CREATE TABLE IF NOT EXISTS swap_requests (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			book_id INTEGER NOT NULL,
			requester_id INTEGER NOT NULL,
			status TEXT NOT NULL DEFAULT 'pending',
			created_at TEXT NOT NULL,
			FOREIGN KEY (book_id) REFERENCES books(id),
			FOREIGN KEY (requester_id) REFERENCES users(id)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_swap_requests_book_id ON swap_requests(book_id)`,
		`CREATE INDEX IF NOT EXISTS idx_swap_requests_requester_id ON swap_requests(requester_id)`,
	}

	for _, table := range tables {
		if _, err := db.Exec(table); err != nil {
			return fmt.Errorf("failed to execute SQL: %s, error: %w", table, err)
		}
	}

	return nil
}

// WithTx executes a function within a transaction
func WithTx(fn func(*sql.Tx) error) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			tx.Rollback()
			panic(p)
		} else if err != nil {
			tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()

	err = fn(tx)
	return err
}
