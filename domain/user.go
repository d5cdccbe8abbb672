package domain

import (
	"net/mail"
	"strings"
	"time"
)

type User struct {
	ID        int64     `json:"id" db:"id"`
	Username  string    `json:"username" db:"username"`
	Email     string    `json:"email" db:"email"`
	Password  string    `json:"-" db:"password"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// Credentials is the signup/login payload.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Username string `json:"username,omitempty"`
}

// MinPasswordLength is enforced on signup and password reset.
const MinPasswordLength = 6

// Normalize trims the fields and lower-cases the email.
func (c Credentials) Normalize() Credentials {
	c.Email = strings.ToLower(strings.TrimSpace(c.Email))
	c.Username = strings.TrimSpace(c.Username)
	return c
}

// ValidateSignup checks a signup request.
func (c Credentials) ValidateSignup() error {
	if c.Email == "" || c.Password == "" || c.Username == "" {
		return Validationf("email, password and username are required")
	}
	if _, err := mail.ParseAddress(c.Email); err != nil {
		return Validationf("email is not valid")
	}
	return ValidatePassword(c.Password)
}

// ValidateLogin checks a login request.
func (c Credentials) ValidateLogin() error {
	if c.Email == "" || c.Password == "" {
		return Validationf("email and password are required")
	}
	return nil
}

// ValidatePassword enforces the password policy.
func ValidatePassword(p string) error {
	if len(p) < MinPasswordLength {
		return Validationf("password must be at least %d characters", MinPasswordLength)
	}
	return nil
}
