package routes

import "strings"

// NoAccessTitle is the page title when no permitted route matches the location.
const NoAccessTitle = "Bạn không có quyền truy cập"

// Active describes the route matching the current location.
type Active struct {
	Name      string
	Secondary bool
	Message   string
	Leaf      *Leaf  // nil when nothing matched
	Category  string // name of the innermost group holding Leaf, if any
}

// Found reports whether a leaf matched.
func (a Active) Found() bool {
	return a.Leaf != nil
}

// Resolve walks routes depth-first, descending into groups before moving on to
// their siblings, and returns the first leaf whose URL matches currentPath.
// A leaf matches its own URL and any path below it, segment by segment, so
// "/admin/branch" does not match "/admin/branchstaff".
func Resolve(routes []Route, currentPath string) Active {
	if a, ok := resolve(routes, currentPath, ""); ok {
		return a
	}
	return Active{Name: NoAccessTitle}
}

func resolve(routes []Route, currentPath, category string) (Active, bool) {
	for _, r := range routes {
		switch node := r.(type) {
		case *Group:
			if a, ok := resolve(node.Children, currentPath, node.Name); ok {
				return a, true
			}
		case *Leaf:
			if matches(node, currentPath) {
				return Active{
					Name:      node.Name,
					Secondary: node.Secondary,
					Message:   node.Message,
					Leaf:      node,
					Category:  category,
				}, true
			}
		}
	}
	return Active{}, false
}

func matches(leaf *Leaf, currentPath string) bool {
	target := leaf.URL()
	return currentPath == target || strings.HasPrefix(currentPath, target+"/")
}
