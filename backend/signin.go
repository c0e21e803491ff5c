package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	apperrors "github.com/uvenla/home-admin/internal/errors"
	"github.com/uvenla/home-admin/users"
)

// SignInResult is the payload of a successful POST /auth/login.
type SignInResult struct {
	Message      string     `json:"-"`
	User         users.User `json:"user"`
	AccessToken  string     `json:"accessToken"`
	RefreshToken string     `json:"refreshToken"`
}

// CredentialsError carries the backend's explanation of a rejected sign-in.
// It unwraps to ErrInvalidCredentials.
type CredentialsError struct {
	Message string
}

func (e *CredentialsError) Error() string {
	if e.Message == "" {
		return apperrors.ErrInvalidCredentials.Error()
	}
	return apperrors.ErrInvalidCredentials.Error() + ": " + e.Message
}

func (e *CredentialsError) Unwrap() error { return apperrors.ErrInvalidCredentials }

// SignIn exchanges an email and password for a user record and tokens.
func (c *Client) SignIn(ctx context.Context, email, password string) (*SignInResult, error) {
	status, env, err := c.do(ctx, http.MethodPost, "/auth/login", nil, map[string]string{
		"email":    email,
		"password": password,
	})
	if err != nil {
		return nil, err
	}

	switch status {
	case http.StatusBadRequest, http.StatusUnauthorized, http.StatusForbidden, http.StatusNotFound:
		return nil, &CredentialsError{Message: env.Message}
	}
	if status < 200 || status >= 300 {
		return nil, &APIError{Status: status, Message: env.Message}
	}

	result := &SignInResult{}
	if len(env.Payload) == 0 {
		return nil, fmt.Errorf("sign-in response has no payload: %w", apperrors.ErrInternal)
	}
	if err := json.Unmarshal(env.Payload, result); err != nil {
		return nil, fmt.Errorf("decode sign-in payload: %w", err)
	}
	result.Message = env.Message
	return result, nil
}
