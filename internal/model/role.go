package model

// Role names an account's privilege level as stored in the users.role
// enum column.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Rights granted to protected operations.  Routes declare which of these
// they require and the middleware checks them against the caller's role.
const (
	RightGetUsers    = "getUsers"
	RightManageUsers = "manageUsers"
)

// roleRights maps each role to the full set of rights it carries.  A
// regular user holds no blanket rights; acting on their own resources is
// handled by the owner override in the middleware, not here.
var roleRights = map[Role][]string{
	RoleUser:  {},
	RoleAdmin: {RightGetUsers, RightManageUsers},
}

// ValidRole reports whether the given string names a known role.
func ValidRole(r Role) bool {
	_, ok := roleRights[r]
	return ok
}

// HasRights reports whether the role carries every right in required.
// Unknown roles hold no rights at all.
func HasRights(role Role, required ...string) bool {
	granted, ok := roleRights[role]
	if !ok {
		return false
	}
	for _, req := range required {
		found := false
		for _, g := range granted {
			if g == req {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
