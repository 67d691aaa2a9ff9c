package model

// Staff roles. The set is closed: a user has exactly one of these.
const (
	RoleAdmin   = "admin"
	RoleRP      = "rp"
	RoleHostess = "hostess"
)

// User represents a staff member from the fixed roster. Logging in only
// points the application state at one of these records; no secret is
// stored or checked.
//
// Fields:
//  ID     – roster identifier.
//  Name   – display name.
//  Email  – contact address.
//  Role   – admin, rp (relationship manager) or hostess.
//  Avatar – optional image reference.
type User struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Avatar string `json:"avatar,omitempty"`
}

// ValidRole reports whether role is one of the known staff roles.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleRP, RoleHostess:
		return true
	}
	return false
}
