package server

import (
	"context"
	"html/template"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/uvenla/home-admin/auth"
	"github.com/uvenla/home-admin/backend"
	"github.com/uvenla/home-admin/routes"
	"github.com/uvenla/home-admin/sessions"
	"github.com/uvenla/home-admin/users"
)

const (
	pageSize     = 10
	maxColumns   = 8
	dateLayout   = "2006-01-02"
	revenueRange = 30 * 24 * time.Hour
)

// navItem is one sidebar entry. Groups carry children and no URL.
type navItem struct {
	Title    string
	URL      string
	Icon     string
	Active   bool
	Heading  bool
	Collapse bool
	Children []navItem
}

func buildNav(rs []routes.Route, active *routes.Leaf) []navItem {
	items := make([]navItem, 0, len(rs))
	for _, r := range rs {
		switch node := r.(type) {
		case *routes.Leaf:
			items = append(items, navItem{
				Title:  node.Name,
				URL:    node.URL(),
				Icon:   node.Icon,
				Active: node == active,
			})
		case *routes.Group:
			items = append(items, navItem{
				Title:    node.Name,
				Heading:  node.Kind == routes.GroupCategory,
				Collapse: node.Kind == routes.GroupCollapse,
				Children: buildNav(node.Children, active),
			})
		}
	}
	return items
}

// AdminPageData is what admin_layout.html renders.
type AdminPageData struct {
	AppName   string
	User      users.User
	UserName  string
	Nav       []navItem
	Title     string
	Category  string
	Secondary bool
	Message   string
	Flashes   []Flash
	Content   template.HTML
	PollEvery int // seconds between session status polls
}

type tableData struct {
	Title      string
	Columns    []string
	Rows       []backend.Row
	Search     string
	Page       int
	TotalPages int
	Total      int
	PrevURL    string
	NextURL    string
	Error      string
}

type dashboardData struct {
	StartDate string
	EndDate   string
	Columns   []string
	Rows      []backend.Row
	Error     string
}

type profileData struct {
	User  users.User
	Role  string
	Error string
}

// AdminIndexHandler sends /admin to the role's landing page
func (s *Server) AdminIndexHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, _ := sessionFromContext(r.Context())
		redirectSuccess(w, r, auth.LandingPath(session.User.Role))
	}
}

// AdminPageHandler renders any admin page. The role's filtered routes decide
// what the sidebar lists; the page itself is mounted only for an admin leaf the
// role is allowed to enter. Anything else gets the no-access page.
func (s *Server) AdminPageHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := sessionFromContext(r.Context())
		if !ok {
			redirectSuccess(w, r, RouteSignIn)
			return
		}
		if strings.Trim(r.PathValue("page"), "/") == "" {
			redirectSuccess(w, r, auth.LandingPath(session.User.Role))
			return
		}

		filtered := routes.Filter(s.catalog, session.User.Role)
		active := routes.Resolve(filtered, r.URL.Path)
		if !active.Found() || active.Leaf.Layout != routes.LayoutAdmin || !routes.Allowed(session.User.Role, active.Leaf.Path) {
			active = routes.Active{Name: routes.NoAccessTitle}
			log.Info().Str("path", r.URL.Path).Str("role", session.User.Role.String()).Msg("admin path outside role's routes")
			content, err := s.templates.renderHTML("content_no_access.html", active)
			if err != nil {
				s.renderError(w, err)
				return
			}
			s.renderAdminPage(w, r, http.StatusNotFound, session, filtered, active, content)
			return
		}

		content, err := s.renderView(r, session, active.Leaf)
		if err != nil {
			s.renderError(w, err)
			return
		}
		s.renderAdminPage(w, r, http.StatusOK, session, filtered, active, content)
	}
}

// renderAdminPage renders a page with the admin layout
func (s *Server) renderAdminPage(w http.ResponseWriter, r *http.Request, status int, session sessions.Session, filtered []routes.Route, active routes.Active, content template.HTML) {
	data := AdminPageData{
		AppName:   s.config.GetAppName(),
		User:      session.User,
		UserName:  session.User.DisplayName(),
		Nav:       buildNav(filtered, active.Leaf),
		Title:     active.Name,
		Category:  active.Category,
		Secondary: active.Secondary,
		Message:   active.Message,
		Flashes:   s.flashes.Take(profileIDFromContext(r.Context())),
		Content:   content,
		PollEvery: int(s.config.GetSessionPollInterval().Seconds()),
	}

	html, err := s.templates.renderHTML("admin_layout.html", data)
	if err != nil {
		s.renderError(w, err)
		return
	}
	w.Header().Set("Content-Type", contentTypeHTML)
	w.WriteHeader(status)
	_, _ = w.Write([]byte(html))
}

func (s *Server) renderError(w http.ResponseWriter, err error) {
	log.Err(err).Msg("Failed to render admin page")
	http.Error(w, "Failed to render page", http.StatusInternalServerError)
}

// renderView produces the content area of the active leaf.
func (s *Server) renderView(r *http.Request, session sessions.Session, leaf *routes.Leaf) (template.HTML, error) {
	client := s.backend.Authorized(session.AccessToken)
	resource := strings.ReplaceAll(leaf.Resource, "{userId}", url.PathEscape(session.User.ID))

	switch leaf.View {
	case "profile":
		return s.templates.renderHTML("content_profile.html", s.profileView(r.Context(), client, session))
	case "dashboard":
		return s.templates.renderHTML("content_dashboard.html", s.dashboardView(r, client, resource))
	default:
		return s.templates.renderHTML("content_table.html", s.tableView(r, client, leaf, resource))
	}
}

func (s *Server) profileView(ctx context.Context, client *backend.Client, session sessions.Session) profileData {
	data := profileData{User: session.User, Role: session.User.Role.String()}
	var (
		user *users.User
		err  error
	)
	if session.User.ID == "" {
		user, err = client.Me(ctx)
	} else {
		user, err = client.User(ctx, session.User.ID)
	}
	if err != nil {
		// The stored profile is still good enough to show.
		log.Warn().Err(err).Str("user", session.User.ID).Msg("profile lookup failed")
		data.Error = userMessage(err)
		return data
	}
	data.User = *user
	return data
}

func (s *Server) dashboardView(r *http.Request, client *backend.Client, resource string) dashboardData {
	end := s.nowTime()
	if t, err := time.Parse(dateLayout, r.URL.Query().Get("endDate")); err == nil {
		end = t
	}
	start := end.Add(-revenueRange)
	if t, err := time.Parse(dateLayout, r.URL.Query().Get("startDate")); err == nil && !t.After(end) {
		start = t
	}

	data := dashboardData{StartDate: start.Format(dateLayout), EndDate: end.Format(dateLayout)}
	page, err := client.List(r.Context(), resource, backend.Query{StartDate: data.StartDate, EndDate: data.EndDate})
	if err != nil {
		log.Warn().Err(err).Str("resource", resource).Msg("revenue lookup failed")
		data.Error = userMessage(err)
		return data
	}
	data.Rows = page.Rows
	data.Columns = rowColumns(page.Rows, maxColumns)
	return data
}

func (s *Server) tableView(r *http.Request, client *backend.Client, leaf *routes.Leaf, resource string) tableData {
	query := backend.Query{
		Page:   1,
		Limit:  pageSize,
		Search: strings.TrimSpace(r.URL.Query().Get("search")),
	}
	if p, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && p > 0 {
		query.Page = p
	}

	data := tableData{Title: leaf.Name, Search: query.Search, Page: query.Page, TotalPages: 1}
	if resource == "" {
		return data
	}

	page, err := client.List(r.Context(), resource, query)
	if err != nil {
		// A 401 here is shown but does not end the session; only the gate
		// and the expiry monitor do that.
		log.Warn().Err(err).Str("resource", resource).Msg("listing failed")
		data.Error = userMessage(err)
		return data
	}

	data.Rows = page.Rows
	data.Columns = rowColumns(page.Rows, maxColumns)
	data.Page = page.CurrentPage
	data.TotalPages = page.TotalPages
	data.Total = page.Total
	if data.Page > 1 {
		data.PrevURL = pageURL(leaf.URL(), data.Page-1, query.Search)
	}
	if data.Page < data.TotalPages {
		data.NextURL = pageURL(leaf.URL(), data.Page+1, query.Search)
	}
	return data
}

func pageURL(base string, page int, search string) string {
	v := url.Values{}
	v.Set("page", strconv.Itoa(page))
	if search != "" {
		v.Set("search", search)
	}
	return base + "?" + v.Encode()
}

// rowColumns picks the table columns: keys present in the rows, sorted, with
// identifiers and timestamps last.
func rowColumns(rows []backend.Row, limit int) []string {
	seen := map[string]bool{}
	var cols []string
	for _, row := range rows {
		for key := range row {
			if seen[key] || key == "__v" || key == "password" {
				continue
			}
			seen[key] = true
			cols = append(cols, key)
		}
	}
	sort.Slice(cols, func(i, j int) bool {
		ci, cj := isIDColumn(cols[i]), isIDColumn(cols[j])
		if ci != cj {
			return cj
		}
		return cols[i] < cols[j]
	})
	if limit > 0 && len(cols) > limit {
		cols = cols[:limit]
	}
	return cols
}

func isIDColumn(key string) bool {
	return key == "_id" || key == "id" || key == "createdAt" || key == "updatedAt"
}
