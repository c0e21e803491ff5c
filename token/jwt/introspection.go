package jwt

import (
	"errors"
	"fmt"
	"strings"

	jwtlib "github.com/golang-jwt/jwt/v5"
	apperrors "github.com/uvenla/home-admin/internal/errors"
)

// TokenIntrospection is what the admin front end reads out of a backend
// access token. Exp is zero when the token carries no expiry.
type TokenIntrospection struct {
	Sub  string `json:"sub,omitempty"`  // Users unique ID
	Role string `json:"role,omitempty"` // Role claim, informational only
	Iat  int64  `json:"iat,omitempty"`  // Issued at time
	Exp  int64  `json:"exp,omitempty"`  // Expiration
}

// Inspector reads access tokens issued by the backend. Without a secret the
// signature is not checked: the backend owns the key and re-validates every
// bearer call, the front end only needs the claims.
type Inspector struct {
	secret []byte
}

// NewInspector creates an inspector. A non-empty secret switches on HS256
// signature verification.
func NewInspector(secret string) *Inspector {
	return &Inspector{secret: []byte(secret)}
}

// Introspect decodes rawToken into its claims.
func (i *Inspector) Introspect(rawToken string) (*TokenIntrospection, error) {
	if strings.TrimSpace(rawToken) == "" {
		return nil, fmt.Errorf("empty access token: %w", apperrors.ErrInvalidToken)
	}

	claims := jwtlib.MapClaims{}
	var err error
	if len(i.secret) > 0 {
		_, err = jwtlib.ParseWithClaims(rawToken, claims, i.keyFunc,
			jwtlib.WithValidMethods([]string{jwtlib.SigningMethodHS256.Alg()}),
			// Expiry is the session's business, not the parser's.
			jwtlib.WithoutClaimsValidation(),
		)
	} else {
		_, _, err = jwtlib.NewParser().ParseUnverified(rawToken, claims)
	}
	if err != nil {
		return nil, fmt.Errorf("parse access token: %v: %w", err, apperrors.ErrInvalidToken)
	}

	result := &TokenIntrospection{}
	if result.Exp, err = numericClaim(claims, "exp"); err != nil {
		return nil, err
	}
	if result.Exp < 0 {
		return nil, fmt.Errorf("negative exp %d: %w", result.Exp, apperrors.ErrInvalidToken)
	}
	if result.Iat, err = numericClaim(claims, "iat"); err != nil {
		return nil, err
	}
	result.Sub, _ = claims["sub"].(string)
	if result.Sub == "" {
		result.Sub, _ = claims["id"].(string)
	}
	result.Role, _ = claims["role"].(string)
	return result, nil
}

func (i *Inspector) keyFunc(token *jwtlib.Token) (interface{}, error) {
	if _, ok := token.Method.(*jwtlib.SigningMethodHMAC); !ok {
		return nil, errors.New("unexpected signing method")
	}
	return i.secret, nil
}

func numericClaim(claims jwtlib.MapClaims, name string) (int64, error) {
	raw, ok := claims[name]
	if !ok || raw == nil {
		return 0, nil
	}
	v, ok := raw.(float64)
	if !ok {
		return 0, fmt.Errorf("claim %q is not numeric: %w", name, apperrors.ErrInvalidToken)
	}
	return int64(v), nil
}
