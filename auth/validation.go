package auth

import (
	"fmt"
	"strings"

	apperrors "github.com/uvenla/home-admin/internal/errors"
)

// Both wrap ErrMissingCredentials. Email is reported first when both are empty.
var (
	ErrMissingEmail    = fmt.Errorf("email: %w", apperrors.ErrMissingCredentials)
	ErrMissingPassword = fmt.Errorf("password: %w", apperrors.ErrMissingCredentials)
)

// Credentials is a sign-in form submission.
type Credentials struct {
	Email    string
	Password string
}

// Normalise trims the email. Passwords are taken as typed.
func (c Credentials) Normalise() Credentials {
	return Credentials{Email: strings.TrimSpace(c.Email), Password: c.Password}
}

// Validate reports the first required field that is missing.
func (c Credentials) Validate() error {
	if c.Email == "" {
		return ErrMissingEmail
	}
	if c.Password == "" {
		return ErrMissingPassword
	}
	return nil
}
