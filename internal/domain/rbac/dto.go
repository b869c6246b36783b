package rbac

import "github.com/haisanviet/backoffice-go/internal/pkg/validator"

type CreateRoleRequest struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Level       int    `json:"level"`
}

func (r *CreateRoleRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{Field: "name", Message: "is required"})
	}
	if validator.IsEmpty(r.Slug) {
		errs = append(errs, validator.ValidationError{Field: "slug", Message: "is required"})
	}
	if r.Level < 0 || r.Level > 100 {
		errs = append(errs, validator.ValidationError{Field: "level", Message: "must be between 0 and 100"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AssignRoleRequest struct {
	UserID string `json:"user_id"`
	RoleID string `json:"role_id"`
}

func (r *AssignRoleRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.UserID == "" {
		errs = append(errs, validator.ValidationError{Field: "user_id", Message: "is required"})
	}
	if r.RoleID == "" {
		errs = append(errs, validator.ValidationError{Field: "role_id", Message: "is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type SetRolePermissionsRequest struct {
	PermissionIDs []string `json:"permission_ids"`
}

type RoleResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description,omitempty"`
	Level       int    `json:"level"`
	IsSystem    bool   `json:"is_system"`
	IsActive    bool   `json:"is_active"`
}

type PermissionResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Codename    string `json:"codename"`
	Description string `json:"description,omitempty"`
	Module      string `json:"module"`
	Action      string `json:"action"`
}

func ToRoleResponse(r Role) RoleResponse {
	return RoleResponse{
		ID:          r.ID,
		Name:        r.Name,
		Slug:        r.Slug,
		Description: r.Description,
		Level:       r.Level,
		IsSystem:    r.IsSystem,
		IsActive:    r.IsActive,
	}
}

func ToPermissionResponse(p Permission) PermissionResponse {
	return PermissionResponse{
		ID:          p.ID,
		Name:        p.Name,
		Codename:    p.Codename,
		Description: p.Description,
		Module:      p.Module,
		Action:      p.Action,
	}
}
