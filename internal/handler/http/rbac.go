package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/haisanviet/backoffice-go/internal/domain/rbac"
	"github.com/haisanviet/backoffice-go/internal/handler/http/response"
)

type RBACHandler interface {
	// Roles
	CreateRole(w http.ResponseWriter, r *http.Request)
	GetRole(w http.ResponseWriter, r *http.Request)
	ListRoles(w http.ResponseWriter, r *http.Request)
	DeleteRole(w http.ResponseWriter, r *http.Request)

	// Permissions
	ListPermissions(w http.ResponseWriter, r *http.Request)
	SetRolePermissions(w http.ResponseWriter, r *http.Request)
	ListRolePermissions(w http.ResponseWriter, r *http.Request)

	// Assignments
	AssignRole(w http.ResponseWriter, r *http.Request)
	RevokeRole(w http.ResponseWriter, r *http.Request)
	ListUserRoles(w http.ResponseWriter, r *http.Request)
	ListUserPermissions(w http.ResponseWriter, r *http.Request)
}

type rbacHandlerImpl struct {
	rbacService rbac.Service
}

func NewRBACHandler(rbacService rbac.Service) RBACHandler {
	return &rbacHandlerImpl{rbacService: rbacService}
}

// ========== ROLES ==========

func (h *rbacHandlerImpl) CreateRole(w http.ResponseWriter, r *http.Request) {
	var req rbac.CreateRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.rbacService.CreateRole(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Role created successfully", result)
}

func (h *rbacHandlerImpl) GetRole(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.rbacService.GetRole(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *rbacHandlerImpl) ListRoles(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active_only") == "true"

	result, err := h.rbacService.ListRoles(r.Context(), activeOnly)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *rbacHandlerImpl) DeleteRole(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.rbacService.DeleteRole(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Role deleted successfully", nil)
}

// ========== PERMISSIONS ==========

func (h *rbacHandlerImpl) ListPermissions(w http.ResponseWriter, r *http.Request) {
	var module *string
	if m := r.URL.Query().Get("module"); m != "" {
		module = &m
	}

	result, err := h.rbacService.ListPermissions(r.Context(), module)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *rbacHandlerImpl) SetRolePermissions(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req rbac.SetRolePermissionsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	if err := h.rbacService.SetRolePermissions(r.Context(), id, req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Role permissions updated successfully", nil)
}

func (h *rbacHandlerImpl) ListRolePermissions(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.rbacService.ListRolePermissions(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ========== ASSIGNMENTS ==========

func (h *rbacHandlerImpl) AssignRole(w http.ResponseWriter, r *http.Request) {
	var req rbac.AssignRoleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	if err := h.rbacService.AssignRole(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Role assigned successfully", nil)
}

func (h *rbacHandlerImpl) RevokeRole(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	roleID := chi.URLParam(r, "roleId")

	if err := h.rbacService.RevokeRole(r.Context(), userID, roleID); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Role revoked successfully", nil)
}

func (h *rbacHandlerImpl) ListUserRoles(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")

	result, err := h.rbacService.ListUserRoles(r.Context(), userID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *rbacHandlerImpl) ListUserPermissions(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")

	result, err := h.rbacService.ListUserPermissions(r.Context(), userID)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
