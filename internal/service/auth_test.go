package service

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/4bhisheksharma/book-swap3/internal/repository"
)

func tempDB(t *testing.T) {
	t.Helper()
	require.NoError(t, repository.InitDB(filepath.Join(t.TempDir(), "test.db")))
	t.Cleanup(func() { repository.Close() })
}

func countUsers(t *testing.T) int {
	t.Helper()
	var n int
	require.NoError(t, repository.GetDB().QueryRow(`SELECT COUNT(*) FROM users`).Scan(&n))
	return n
}

func TestRegisterSuccess(t *testing.T) {
	tempDB(t)

	user, err := Register("alice", "alice@example.com", "s3cretpass")
	require.NoError(t, err)
	require.Equal(t, "alice", user.Username)
	require.Equal(t, "alice@example.com", user.Email)

	stored, err := repository.GetUserByUsername("alice")
	require.NoError(t, err)
	require.NotNil(t, stored)
	require.NotEqual(t, "s3cretpass", stored.Password, "password must never be stored in plaintext")
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("s3cretpass")))
}

func TestRegisterDuplicateUsername(t *testing.T) {
	tempDB(t)

	_, err := Register("alice", "alice@example.com", "s3cretpass")
	require.NoError(t, err)

	_, err = Register("alice", "other@example.com", "s3cretpass")
	var fieldErrs FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	require.Contains(t, fieldErrs["username"], "Username already exists")

	require.Equal(t, 1, countUsers(t), "failed registration must not write")
}

func TestRegisterDuplicateEmail(t *testing.T) {
	tempDB(t)

	_, err := Register("alice", "alice@example.com", "s3cretpass")
	require.NoError(t, err)

	_, err = Register("bob", "alice@example.com", "s3cretpass")
	var fieldErrs FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	require.Contains(t, fieldErrs["email"], "Email already registered")
	require.Equal(t, 1, countUsers(t))
}

func TestRegisterWeakPassword(t *testing.T) {
	tempDB(t)

	_, err := Register("alice", "alice@example.com", "short78")
	var fieldErrs FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	require.Contains(t, fieldErrs, "password")

	require.Zero(t, countUsers(t), "no user record on validation failure")
}

func TestRegisterInvalidEmail(t *testing.T) {
	tempDB(t)

	_, err := Register("alice", "not-an-email", "s3cretpass")
	var fieldErrs FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	require.Contains(t, fieldErrs["email"], "Enter a valid email address")
	require.Zero(t, countUsers(t))
}

func TestRegisterCollectsAllFieldErrors(t *testing.T) {
	tempDB(t)

	_, err := Register("", "", "short")
	var fieldErrs FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	require.Contains(t, fieldErrs, "username")
	require.Contains(t, fieldErrs, "email")
	require.Contains(t, fieldErrs, "password")
}
