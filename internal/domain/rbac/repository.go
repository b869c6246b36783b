package rbac

import "context"

type Repository interface {
	// Roles
	CreateRole(ctx context.Context, role Role) (Role, error)
	GetRoleByID(ctx context.Context, id string) (Role, error)
	GetRoleBySlug(ctx context.Context, slug string) (Role, error)
	ListRoles(ctx context.Context, activeOnly bool) ([]Role, error)
	DeleteRole(ctx context.Context, id string) error

	// Permissions
	CreatePermission(ctx context.Context, perm Permission) (Permission, error)
	ListPermissions(ctx context.Context, module *string) ([]Permission, error)
	SetRolePermissions(ctx context.Context, roleID string, permissionIDs []string) error
	ListRolePermissions(ctx context.Context, roleID string) ([]Permission, error)

	// User roles
	AssignRole(ctx context.Context, userID, roleID string) (UserRole, error)
	RevokeRole(ctx context.Context, userID, roleID string) error
	ListUserRoles(ctx context.Context, userID string) ([]UserRole, error)
	// GetPrimaryRole returns the highest-level active role held by the user.
	GetPrimaryRole(ctx context.Context, userID string) (Role, error)
	UserHasPermission(ctx context.Context, userID, codename string) (bool, error)
	ListUserPermissions(ctx context.Context, userID string) ([]string, error)
}
