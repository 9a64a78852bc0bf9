package auth

// UserRole is the coarse authorization tier of an account
type UserRole string

const (
	// RoleAdmin can provision admins and read the dashboard
	RoleAdmin UserRole = "Admin"
	// RoleUser is the self-service role
	RoleUser UserRole = "User"
)

// String returns the role name
func (r UserRole) String() string {
	return string(r)
}

// IsValid checks if the role is one of the predefined valid roles
func (r UserRole) IsValid() bool {
	switch r {
	case RoleAdmin, RoleUser:
		return true
	default:
		return false
	}
}

// ParseRole safely parses a string into a UserRole type
func ParseRole(roleStr string) (UserRole, bool) {
	role := UserRole(roleStr)
	return role, role.IsValid()
}
