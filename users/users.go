package users

import (
	"encoding/json"
	"strings"
)

// RoleType is the role the backend assigns to an account.
type RoleType string

const (
	RoleAdmin    RoleType = "admin"    // Full catalogue, users, branches and banners
	RoleManager  RoleType = "manager"  // Bookings and staff schedules
	RoleStaff    RoleType = "staff"    // Own bookings, own schedule and own revenue
	RoleCustomer RoleType = "customer" // Mobile app customers, never admitted to the admin area
)

// Roles lists every recognised role.
var Roles = []RoleType{RoleAdmin, RoleManager, RoleStaff, RoleCustomer}

// ParseRole maps a backend role string onto a RoleType. Matching ignores case
// and surrounding whitespace; unknown values are reported with ok=false.
func ParseRole(s string) (RoleType, bool) {
	r := RoleType(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Roles {
		if r == known {
			return r, true
		}
	}
	return "", false
}

// AdminArea reports whether the role may sign in to the admin front end.
func (r RoleType) AdminArea() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleStaff:
		return true
	case RoleCustomer:
		return false
	default:
		return false
	}
}

func (r RoleType) String() string {
	return string(r)
}

type User struct {
	ID        string   `json:"id,omitempty"`
	Name      string   `json:"name,omitempty"`
	Email     string   `json:"email,omitempty"`
	Role      RoleType `json:"role,omitempty"`
	AvatarURL string   `json:"avatar,omitempty"`
	Phone     string   `json:"phone,omitempty"`
	Status    string   `json:"status,omitempty"`
}

// UnmarshalJSON accepts both "id" and the backend's Mongo style "_id".
func (u *User) UnmarshalJSON(data []byte) error {
	type plain User
	var aux struct {
		plain
		MongoID string `json:"_id,omitempty"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	*u = User(aux.plain)
	if u.ID == "" {
		u.ID = aux.MongoID
	}
	return nil
}

// DisplayName returns the user's name, or their email when no name is set.
func (u User) DisplayName() string {
	if name := strings.TrimSpace(u.Name); name != "" {
		return name
	}
	return u.Email
}
