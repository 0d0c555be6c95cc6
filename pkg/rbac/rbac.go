package rbac

// Permission constants.
const (
	// Admin back-office operations.
	PermissionCreateUser     = "user:create"
	PermissionCreateProject  = "project:create"
	PermissionUpdateProject  = "project:update"
	PermissionCreateUpdate   = "update:create"
	PermissionCreateDocument = "document:create"
	PermissionCreateModel3D  = "model3d:create"

	// Client dashboard operations.
	PermissionReadProject  = "project:read"
	PermissionCompleteTask = "task:complete"
)

// Role constants. Anything that is not RoleClient sees every project;
// only admins may mutate back-office data.
const (
	RoleAdmin  = "admin"
	RoleClient = "client"
	RoleStaff  = "user"
)

var rolePermissions = map[string][]string{
	RoleClient: {
		PermissionReadProject,
		PermissionCompleteTask,
	},
	RoleStaff: {
		PermissionReadProject,
		PermissionCompleteTask,
		PermissionCreateUpdate,
	},
	RoleAdmin: {
		PermissionCreateUser,
		PermissionCreateProject,
		PermissionUpdateProject,
		PermissionCreateUpdate,
		PermissionCreateDocument,
		PermissionCreateModel3D,
		PermissionReadProject,
		PermissionCompleteTask,
	},
}

// HasPermission checks whether a role grants a permission.
func HasPermission(role string, permission string) bool {
	permissions, ok := rolePermissions[role]
	if !ok {
		return false
	}

	for _, p := range permissions {
		if p == permission {
			return true
		}
	}
	return false
}

// CheckPermission returns a typed error when the role lacks the permission.
func CheckPermission(role string, permission string) error {
	if !HasPermission(role, permission) {
		return &PermissionDeniedError{
			Role:       role,
			Permission: permission,
		}
	}
	return nil
}

// PermissionDeniedError signals an RBAC rejection.
type PermissionDeniedError struct {
	Role       string
	Permission string
}

func (e *PermissionDeniedError) Error() string {
	return "insufficient permissions"
}
