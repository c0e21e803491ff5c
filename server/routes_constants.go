package server

// Route path constants
// All application routes are defined here to ensure consistency and prevent typos
const (
	RouteIndex = "/"

	// Auth Routes - Sign in & Sign out
	RouteSignIn        = "/auth/sign-in"
	RouteSignOut       = "/auth/sign-out"
	RouteSessionStatus = "/auth/session"

	// Admin Routes
	RouteAdmin     = "/admin"
	RouteAdminPage = "/admin/{page...}"

	RouteHealth = "/healthz"

	// Static Asset Routes (patterns)
	RouteStaticCSS = "/css/{file}"
)
