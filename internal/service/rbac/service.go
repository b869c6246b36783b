package rbac

import (
	"context"

	"github.com/haisanviet/backoffice-go/internal/domain/rbac"
	"github.com/haisanviet/backoffice-go/internal/domain/user"
)

type ServiceImpl struct {
	rbacRepo rbac.Repository
	userRepo user.Repository
}

func NewService(rbacRepo rbac.Repository, userRepo user.Repository) rbac.Service {
	return &ServiceImpl{rbacRepo: rbacRepo, userRepo: userRepo}
}

// ========== ROLES ==========

func (s *ServiceImpl) CreateRole(ctx context.Context, req rbac.CreateRoleRequest) (rbac.RoleResponse, error) {
	if err := req.Validate(); err != nil {
		return rbac.RoleResponse{}, err
	}

	created, err := s.rbacRepo.CreateRole(ctx, rbac.Role{
		Name:        req.Name,
		Slug:        req.Slug,
		Description: req.Description,
		Level:       req.Level,
		IsActive:    true,
	})
	if err != nil {
		return rbac.RoleResponse{}, err
	}

	return rbac.ToRoleResponse(created), nil
}

func (s *ServiceImpl) GetRole(ctx context.Context, id string) (rbac.RoleResponse, error) {
	role, err := s.rbacRepo.GetRoleByID(ctx, id)
	if err != nil {
		return rbac.RoleResponse{}, err
	}
	return rbac.ToRoleResponse(role), nil
}

func (s *ServiceImpl) ListRoles(ctx context.Context, activeOnly bool) ([]rbac.RoleResponse, error) {
	roles, err := s.rbacRepo.ListRoles(ctx, activeOnly)
	if err != nil {
		return nil, err
	}

	responses := make([]rbac.RoleResponse, 0, len(roles))
	for _, role := range roles {
		responses = append(responses, rbac.ToRoleResponse(role))
	}
	return responses, nil
}

func (s *ServiceImpl) DeleteRole(ctx context.Context, id string) error {
	return s.rbacRepo.DeleteRole(ctx, id)
}

// ========== PERMISSIONS ==========

func (s *ServiceImpl) ListPermissions(ctx context.Context, module *string) ([]rbac.PermissionResponse, error) {
	perms, err := s.rbacRepo.ListPermissions(ctx, module)
	if err != nil {
		return nil, err
	}

	responses := make([]rbac.PermissionResponse, 0, len(perms))
	for _, p := range perms {
		responses = append(responses, rbac.ToPermissionResponse(p))
	}
	return responses, nil
}

func (s *ServiceImpl) SetRolePermissions(ctx context.Context, roleID string, req rbac.SetRolePermissionsRequest) error {
	if _, err := s.rbacRepo.GetRoleByID(ctx, roleID); err != nil {
		return err
	}
	return s.rbacRepo.SetRolePermissions(ctx, roleID, req.PermissionIDs)
}

func (s *ServiceImpl) ListRolePermissions(ctx context.Context, roleID string) ([]rbac.PermissionResponse, error) {
	if _, err := s.rbacRepo.GetRoleByID(ctx, roleID); err != nil {
		return nil, err
	}

	perms, err := s.rbacRepo.ListRolePermissions(ctx, roleID)
	if err != nil {
		return nil, err
	}

	responses := make([]rbac.PermissionResponse, 0, len(perms))
	for _, p := range perms {
		responses = append(responses, rbac.ToPermissionResponse(p))
	}
	return responses, nil
}

// ========== ASSIGNMENTS ==========

func (s *ServiceImpl) AssignRole(ctx context.Context, req rbac.AssignRoleRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	if _, err := s.userRepo.GetByID(ctx, req.UserID); err != nil {
		return err
	}
	if _, err := s.rbacRepo.GetRoleByID(ctx, req.RoleID); err != nil {
		return err
	}

	_, err := s.rbacRepo.AssignRole(ctx, req.UserID, req.RoleID)
	return err
}

func (s *ServiceImpl) RevokeRole(ctx context.Context, userID, roleID string) error {
	return s.rbacRepo.RevokeRole(ctx, userID, roleID)
}

func (s *ServiceImpl) ListUserRoles(ctx context.Context, userID string) ([]rbac.RoleResponse, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	userRoles, err := s.rbacRepo.ListUserRoles(ctx, userID)
	if err != nil {
		return nil, err
	}

	responses := make([]rbac.RoleResponse, 0, len(userRoles))
	for _, ur := range userRoles {
		role, err := s.rbacRepo.GetRoleByID(ctx, ur.RoleID)
		if err != nil {
			return nil, err
		}
		responses = append(responses, rbac.ToRoleResponse(role))
	}
	return responses, nil
}

func (s *ServiceImpl) CheckPermission(ctx context.Context, userID, codename string) (bool, error) {
	return s.rbacRepo.UserHasPermission(ctx, userID, codename)
}

func (s *ServiceImpl) ListUserPermissions(ctx context.Context, userID string) ([]string, error) {
	return s.rbacRepo.ListUserPermissions(ctx, userID)
}
