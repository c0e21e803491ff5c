package routes

// Layout is the URL prefix a route is mounted under.
type Layout string

const (
	LayoutAdmin Layout = "/admin"
	LayoutAuth  Layout = "/auth"
	LayoutRTL   Layout = "/rtl" // reserved, no routes are assigned to it
)

// Route is a node of the navigation tree: either a *Leaf, which can be
// navigated to, or a *Group, which only organises its children.
type Route interface {
	Title() string
	isRoute()
}

// Leaf is a navigable destination.
type Leaf struct {
	Name      string
	Layout    Layout
	Path      string // unique within Layout, e.g. "/booking"
	Icon      string // bootstrap-icons class
	View      string // content template mounted when the leaf is active
	Resource  string // backend endpoint feeding the view's table; "{userId}" is replaced by the signed-in user
	Secondary bool   // render the navbar in its reduced form
	Message   string // banner shown above the view
}

func (l *Leaf) Title() string { return l.Name }
func (l *Leaf) isRoute()      {}

// URL returns the leaf's absolute path, layout included.
func (l *Leaf) URL() string {
	return string(l.Layout) + l.Path
}

type GroupKind int

const (
	// GroupCategory renders a heading followed by its children.
	GroupCategory GroupKind = iota
	// GroupCollapse renders a collapsible section.
	GroupCollapse
)

// Group organises child routes. A group is never itself a destination.
type Group struct {
	Name     string
	Kind     GroupKind
	Children []Route
}

func (g *Group) Title() string { return g.Name }
func (g *Group) isRoute()      {}
