package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	apperrors "github.com/uvenla/home-admin/internal/errors"
	"golang.org/x/oauth2"
)

// DefaultTimeout bounds every backend call unless overridden with WithTimeout.
const DefaultTimeout = 15 * time.Second

const maxResponseBody = 4 << 20

// Client talks to the Uvenla REST backend. The zero value is not usable; use New.
type Client struct {
	baseURL string
	http    *http.Client
}

type Option func(*Client)

// WithTimeout sets the per request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Authorized returns a client whose every request carries
// "Authorization: Bearer <accessToken>".
func (c *Client) Authorized(accessToken string) *Client {
	base := c.http.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	hc := *c.http
	hc.Transport = &oauth2.Transport{
		Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: accessToken, TokenType: "Bearer"}),
		Base:   base,
	}
	return &Client{baseURL: c.baseURL, http: &hc}
}

// envelope is the backend's standard response wrapper.
type envelope struct {
	Message string          `json:"message"`
	Payload json.RawMessage `json:"payload"`
}

// APIError is a non-2xx response that does not map onto a sentinel error.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend responded %d", e.Status)
	}
	return fmt.Sprintf("backend responded %d: %s", e.Status, e.Message)
}

func (c *Client) endpoint(path string, query url.Values) string {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}

// do sends a request and decodes the envelope. Status handling that depends on
// the call (sign-in) is left to the caller via the returned status code.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, body any) (int, *envelope, error) {
	var reader io.Reader
	if body != nil {
		buf, err := json.Marshal(body)
		if err != nil {
			return 0, nil, fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(buf)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path, query), reader)
	if err != nil {
		return 0, nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	log.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Dur("took", time.Since(start)).
		Msg("backend call")

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("read response: %w", err)
	}

	env := &envelope{}
	if len(bytes.TrimSpace(raw)) > 0 {
		if err := json.Unmarshal(raw, env); err != nil {
			if resp.StatusCode >= 300 {
				// Error pages from proxies are not JSON.
				return resp.StatusCode, &envelope{Message: strings.TrimSpace(string(raw[:min(len(raw), 200)]))}, nil
			}
			return resp.StatusCode, nil, fmt.Errorf("decode %s response: %w", path, err)
		}
	}
	return resp.StatusCode, env, nil
}

// checkStatus maps the statuses every data call shares onto errors.
func checkStatus(status int, env *envelope) error {
	switch {
	case status >= 200 && status < 300:
		return nil
	case status == http.StatusUnauthorized:
		return fmt.Errorf("%s: %w", env.Message, apperrors.ErrUnauthorized)
	case status == http.StatusNotFound:
		return fmt.Errorf("%s: %w", env.Message, apperrors.ErrNotFound)
	default:
		return &APIError{Status: status, Message: env.Message}
	}
}
