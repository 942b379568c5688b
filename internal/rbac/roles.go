package rbac

// Role names. Keep these stable; they are part of auth/RBAC contracts.
const (
	RoleAdmin      = "admin"
	RoleBranch     = "branch"
	RoleSuperAdmin = "super_admin"
)

func IsSuperAdmin(role string) bool { return role == RoleSuperAdmin }

// ValidRole reports whether role is part of the known vocabulary.
func ValidRole(role string) bool {
	switch role {
	case RoleAdmin, RoleBranch, RoleSuperAdmin:
		return true
	}
	return false
}
