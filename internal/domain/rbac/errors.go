package rbac

import "errors"

var (
	ErrRoleNotFound       = errors.New("role not found")
	ErrPermissionNotFound = errors.New("permission not found")
	ErrRoleSlugExists     = errors.New("role slug already exists")
	ErrSystemRole         = errors.New("system role cannot be modified or deleted")
	ErrRoleNotAssigned    = errors.New("user does not hold this role")
	ErrNoRoleAssigned     = errors.New("user has no active role")
	ErrPermissionDenied   = errors.New("permission denied")
)
