package model

// User represents a registered account
type User struct {
	ID        int    `json:"id" db:"id"`
	Username  string `json:"username" db:"username"`
	Email     string `json:"email" db:"email"`
	Password  string `json:"-" db:"password_hash"` // Don't serialize the credential
	CreatedAt string `json:"created_at" db:"created_at"`
}

// UserRegister represents a registration request. Field-level validation
// happens in the service so failures come back as per-field messages.
type UserRegister struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UserLogin represents a login request
type UserLogin struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UserPublic is the registration response payload: username and email only,
// never the credential or its hash.
type UserPublic struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// TokenResponse represents a JWT token response
type TokenResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	User        *UserInfo `json:"user"`
}

// UserInfo represents basic user info (for token response)
type UserInfo struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}
