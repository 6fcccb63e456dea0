package models

// Role is the portal-wide role of a family member
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

// Valid reports whether r is a known role
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleMember
}

// Viewer is the signed-in caller as seen by a page: their profile and role.
// Profile may be nil when the profile row could not be read.
type Viewer struct {
	Profile *Profile
	Role    Role
}

// IsAdmin reports whether the viewer holds the admin role
func (v *Viewer) IsAdmin() bool {
	return v != nil && v.Role == RoleAdmin
}

// DisplayName returns the name shown in the navigation bar
func (v *Viewer) DisplayName() string {
	if v == nil || v.Profile == nil {
		return ""
	}
	if v.Profile.FullName != "" {
		return v.Profile.FullName
	}
	return v.Profile.Email
}
