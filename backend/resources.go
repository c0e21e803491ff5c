package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/uvenla/home-admin/users"
)

// Row is one record of a listing, kept as the backend sent it.
type Row map[string]any

// Query holds the listing parameters the backend understands. Zero values are omitted.
type Query struct {
	Page      int
	Limit     int
	Search    string
	StartDate string // YYYY-MM-DD, revenue endpoints only
	EndDate   string
}

func (q Query) values() url.Values {
	v := url.Values{}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	if q.StartDate != "" {
		v.Set("startDate", q.StartDate)
	}
	if q.EndDate != "" {
		v.Set("endDate", q.EndDate)
	}
	return v
}

// Page is a decoded listing.
type Page struct {
	Rows        []Row
	CurrentPage int
	TotalPages  int
	Total       int
	Message     string
}

// List fetches a listing endpoint. The payload may be a bare array or an
// object holding one array (e.g. {"bookings": [...], "totalPages": 3}).
func (c *Client) List(ctx context.Context, endpoint string, q Query) (*Page, error) {
	status, env, err := c.do(ctx, http.MethodGet, endpoint, q.values(), nil)
	if err != nil {
		return nil, err
	}
	if err := checkStatus(status, env); err != nil {
		return nil, err
	}

	page, err := decodePage(env.Payload)
	if err != nil {
		return nil, fmt.Errorf("decode %s listing: %w", endpoint, err)
	}
	page.Message = env.Message
	if page.CurrentPage == 0 {
		page.CurrentPage = max(q.Page, 1)
	}
	if page.TotalPages == 0 {
		page.TotalPages = 1
	}
	if page.Total == 0 {
		page.Total = len(page.Rows)
	}
	return page, nil
}

func decodePage(payload json.RawMessage) (*Page, error) {
	trimmed := strings.TrimSpace(string(payload))
	if trimmed == "" || trimmed == "null" {
		return &Page{Rows: []Row{}}, nil
	}

	if strings.HasPrefix(trimmed, "[") {
		var rows []Row
		if err := json.Unmarshal(payload, &rows); err != nil {
			return nil, err
		}
		return &Page{Rows: rows}, nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(payload, &fields); err != nil {
		return nil, err
	}

	page := &Page{Rows: []Row{}}
	// Sorted so the choice is stable when more than one array is present.
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	rowsFound := false
	for _, k := range keys {
		raw := fields[k]
		switch {
		case k == "currentPage":
			page.CurrentPage = intField(raw)
		case k == "totalPages":
			page.TotalPages = intField(raw)
		case strings.HasPrefix(k, "total"):
			page.Total = intField(raw)
		case !rowsFound && strings.HasPrefix(strings.TrimSpace(string(raw)), "["):
			var rows []Row
			if err := json.Unmarshal(raw, &rows); err == nil {
				page.Rows = rows
				rowsFound = true
			}
		}
	}
	if !rowsFound {
		// A single record, e.g. revenue statistics.
		var row Row
		if err := json.Unmarshal(payload, &row); err != nil {
			return nil, err
		}
		page.Rows = []Row{row}
	}
	return page, nil
}

func intField(raw json.RawMessage) int {
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return 0
	}
	i, err := n.Int64()
	if err != nil {
		f, ferr := n.Float64()
		if ferr != nil {
			return 0
		}
		return int(f)
	}
	return int(i)
}

// Me returns the signed-in user's own profile.
func (c *Client) Me(ctx context.Context) (*users.User, error) {
	return c.getUser(ctx, "/users/me")
}

// User returns a user by ID.
func (c *Client) User(ctx context.Context, id string) (*users.User, error) {
	return c.getUser(ctx, "/user/"+url.PathEscape(id))
}

func (c *Client) getUser(ctx context.Context, path string) (*users.User, error) {
	status, env, err := c.do(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}
	if err := checkStatus(status, env); err != nil {
		return nil, err
	}

	user := &users.User{}
	if err := json.Unmarshal(env.Payload, user); err != nil {
		return nil, fmt.Errorf("decode user: %w", err)
	}
	return user, nil
}
