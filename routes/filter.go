package routes

import "github.com/uvenla/home-admin/users"

type pathSet map[string]struct{}

func newPathSet(paths ...string) pathSet {
	set := make(pathSet, len(paths))
	for _, p := range paths {
		set[p] = struct{}{}
	}
	return set
}

// The single source of truth for what each role may see and enter. The
// sidebar reads it through Filter, the admin route mounter through Allowed.
var (
	adminPaths = newPathSet(
		PathDashboard, PathCategory, PathService, PathApproval, PathBanner, PathUser,
		PathWorkScheduleManagement, PathProfile, PathBooking, PathBranch, PathBranchStaff,
	)
	managerPaths = newPathSet(PathBooking, PathWorkScheduleManagement, PathDashboard, PathProfile)
	staffPaths   = newPathSet(PathStaffOrder, PathWorkSchedule, PathPersonalRevenue, PathProfile)
)

func allowList(role users.RoleType) pathSet {
	switch role {
	case users.RoleAdmin:
		return adminPaths
	case users.RoleManager:
		return managerPaths
	case users.RoleStaff:
		return staffPaths
	case users.RoleCustomer:
		return nil
	default:
		return nil
	}
}

// Allowed reports whether role may enter the route at path.
func Allowed(role users.RoleType, path string) bool {
	_, ok := allowList(role)[path]
	return ok
}

// Filter returns the routes role may see, in catalog order. Groups are always
// traversed and kept only when at least one descendant survives.
func Filter(routes []Route, role users.RoleType) []Route {
	allowed := allowList(role)
	if len(allowed) == 0 {
		return []Route{}
	}
	return filter(routes, allowed)
}

func filter(routes []Route, allowed pathSet) []Route {
	out := make([]Route, 0, len(routes))
	for _, r := range routes {
		switch node := r.(type) {
		case *Leaf:
			if _, ok := allowed[node.Path]; ok {
				out = append(out, node)
			}
		case *Group:
			children := filter(node.Children, allowed)
			if len(children) > 0 {
				out = append(out, &Group{Name: node.Name, Kind: node.Kind, Children: children})
			}
		}
	}
	return out
}
