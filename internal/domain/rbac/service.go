package rbac

import "context"

type Service interface {
	// Roles
	CreateRole(ctx context.Context, req CreateRoleRequest) (RoleResponse, error)
	GetRole(ctx context.Context, id string) (RoleResponse, error)
	ListRoles(ctx context.Context, activeOnly bool) ([]RoleResponse, error)
	DeleteRole(ctx context.Context, id string) error

	// Permissions
	ListPermissions(ctx context.Context, module *string) ([]PermissionResponse, error)
	SetRolePermissions(ctx context.Context, roleID string, req SetRolePermissionsRequest) error
	ListRolePermissions(ctx context.Context, roleID string) ([]PermissionResponse, error)

	// Assignments
	AssignRole(ctx context.Context, req AssignRoleRequest) error
	RevokeRole(ctx context.Context, userID, roleID string) error
	ListUserRoles(ctx context.Context, userID string) ([]RoleResponse, error)
	CheckPermission(ctx context.Context, userID, codename string) (bool, error)
	ListUserPermissions(ctx context.Context, userID string) ([]string, error)
}
