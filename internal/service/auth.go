package service

import (
	"errors"
	"net/mail"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/4bhisheksharma/book-swap3/internal/model"
	"github.com/4bhisheksharma/book-swap3/internal/pkg/jwt"
	"github.com/4bhisheksharma/book-swap3/internal/repository"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserNotFound       = errors.New("user not found")
)

const minPasswordLen = 8

// Register validates a registration request and creates the account. All
// validation runs before any write, so a failure leaves no partial state.
func Register(username, email, password string) (*model.UserPublic, error) {
	errs := FieldErrors{}

	username = strings.TrimSpace(username)
	if username == "" {
		errs.Add("username", "This field is required")
	} else {
		taken, err := repository.UsernameExists(username)
		if err != nil {
			return nil, err
		}
		if taken {
			errs.Add("username", "Username already exists")
		}
	}

	email = strings.TrimSpace(email)
	if email == "" {
		errs.Add("email", "This field is required")
	} else if _, err := mail.ParseAddress(email); err != nil {
		errs.Add("email", "Enter a valid email address")
	} else {
		taken, err := repository.EmailExists(email)
		if err != nil {
			return nil, err
		}
		if taken {
			errs.Add("email", "Email already registered")
		}
	}

	if len(password) < minPasswordLen {
		errs.Add("password", "Ensure this field has at least 8 characters")
	}

	if len(errs) > 0 {
		return nil, errs
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	if _, err := repository.CreateUser(username, string(hash), email); err != nil {
		// A concurrent registration can win between the exists check and the
		// insert; the store's unique constraints report it as a duplicate
		switch {
		case errors.Is(err, repository.ErrDuplicateUsername):
			errs.Add("username", "Username already exists")
			return nil, errs
		case errors.Is(err, repository.ErrDuplicateEmail):
			errs.Add("email", "Email already registered")
			return nil, errs
		}
		return nil, err
	}

	return &model.UserPublic{Username: username, Email: email}, nil
}

// Login authenticates a user and returns a JWT token
func Login(username, password string) (*model.TokenResponse, error) {
	user, err := repository.GetUserByUsername(username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := jwt.GenerateToken(user.ID, user.Username)
	if err != nil {
		return nil, err
	}

	return &model.TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		User: &model.UserInfo{
			ID:       user.ID,
			Username: user.Username,
			Email:    user.Email,
		},
	}, nil
}

// GetUserByID returns user by ID
func GetUserByID(userID int) (*model.User, error) {
	user, err := repository.GetUserByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}
