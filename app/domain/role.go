package domain

// Role is a user role stored as metadata on the provider-side identity.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// DefaultRole applies to identities whose metadata carries no role.
const DefaultRole = RoleUser

var validRoles = map[Role]struct{}{
	RoleUser:  {},
	RoleAdmin: {},
}

// ParseRole returns the Role for s, or false when s is not a member of the
// closed role set.
func ParseRole(s string) (Role, bool) {
	r := Role(s)
	return r, r.IsValid()
}

// IsValid reports whether the role is a member of the closed role set.
func (r Role) IsValid() bool {
	_, ok := validRoles[r]
	return ok
}

func (r Role) String() string {
	return string(r)
}

// RoleIn reports whether r is contained in allowed.
func RoleIn(r Role, allowed []Role) bool {
	for _, a := range allowed {
		if r == a {
			return true
		}
	}
	return false
}
