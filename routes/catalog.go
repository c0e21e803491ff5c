package routes

// Admin area paths, relative to LayoutAdmin.
const (
	PathDashboard              = "/default"
	PathBooking                = "/booking"
	PathCategory               = "/category"
	PathBranchStaff            = "/branchstaff"
	PathBanner                 = "/banner"
	PathBranch                 = "/branch"
	PathService                = "/service"
	PathApproval               = "/approvel"
	PathUser                   = "/user"
	PathWorkScheduleManagement = "/work-schedule-management"
	PathStaffOrder             = "/staff-order"
	PathWorkSchedule           = "/work-schedule"
	PathPersonalRevenue        = "/personal-revenue"
	PathProfile                = "/profile"

	PathSignIn = "/sign-in"
)

var catalog = []Route{
	&Leaf{Name: "Trang chủ", Layout: LayoutAdmin, Path: PathDashboard, Icon: "bi-house-door", View: "dashboard", Resource: "/revenue"},
	&Leaf{Name: "Đặt lịch", Layout: LayoutAdmin, Path: PathBooking, Icon: "bi-receipt", View: "table", Resource: "/booking"},
	&Leaf{Name: "Danh mục", Layout: LayoutAdmin, Path: PathCategory, Icon: "bi-tags", View: "table", Resource: "/category"},
	&Leaf{Name: "Chi nhánh quản lý nhân viên", Layout: LayoutAdmin, Path: PathBranchStaff, Icon: "bi-person-badge", View: "table", Resource: "/branchStaff/staffbranch"},
	&Leaf{Name: "Quản lý bản tin", Layout: LayoutAdmin, Path: PathBanner, Icon: "bi-megaphone", View: "table", Resource: "/banner"},
	&Leaf{Name: "Quản lý chi nhánh", Layout: LayoutAdmin, Path: PathBranch, Icon: "bi-building", View: "table", Resource: "/branch"},
	&Leaf{Name: "Dịch vụ", Layout: LayoutAdmin, Path: PathService, Icon: "bi-cart", View: "table", Resource: "/service"},
	&Leaf{Name: "Duyệt hồ sơ", Layout: LayoutAdmin, Path: PathApproval, Icon: "bi-person-check", View: "table", Resource: "/user/inactive-staff"},
	&Leaf{Name: "Người dùng", Layout: LayoutAdmin, Path: PathUser, Icon: "bi-people", View: "table", Resource: "/user"},
	&Leaf{Name: "Quản lý lịch làm việc", Layout: LayoutAdmin, Path: PathWorkScheduleManagement, Icon: "bi-calendar-week", View: "table", Resource: "/work-schedule"},
	&Leaf{Name: "Lịch hẹn của tôi", Layout: LayoutAdmin, Path: PathStaffOrder, Icon: "bi-receipt", View: "table", Resource: "/booking/staff/{userId}"},
	&Leaf{Name: "Lịch làm việc", Layout: LayoutAdmin, Path: PathWorkSchedule, Icon: "bi-clock", View: "table", Resource: "/work-schedule/get-schedule/{userId}"},
	&Leaf{Name: "Doanh thu cá nhân", Layout: LayoutAdmin, Path: PathPersonalRevenue, Icon: "bi-cash-coin", View: "table", Resource: "/revenue/staff/{userId}"},
	&Leaf{Name: "Hồ sơ", Layout: LayoutAdmin, Path: PathProfile, Icon: "bi-person", View: "profile"},
	&Leaf{Name: "Đăng nhập", Layout: LayoutAuth, Path: PathSignIn, Icon: "bi-lock", View: "sign_in"},
}

// Catalog returns the static route table in display order. The returned
// slice is a copy; the routes it points to must not be modified.
func Catalog() []Route {
	return append([]Route(nil), catalog...)
}
