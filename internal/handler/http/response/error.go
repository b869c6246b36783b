package response

import (
	"errors"
	"net/http"

	"github.com/haisanviet/backoffice-go/internal/domain/attendance"
	"github.com/haisanviet/backoffice-go/internal/domain/auth"
	"github.com/haisanviet/backoffice-go/internal/domain/catalog"
	"github.com/haisanviet/backoffice-go/internal/domain/order"
	"github.com/haisanviet/backoffice-go/internal/domain/payroll"
	"github.com/haisanviet/backoffice-go/internal/domain/rbac"
	"github.com/haisanviet/backoffice-go/internal/domain/user"
	"github.com/haisanviet/backoffice-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, "Invalid email or password")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrRefreshTokenInvalid):
		Unauthorized(w, "Invalid refresh token")

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, user.ErrUserInactive):
		Forbidden(w, "User account is inactive")
	case errors.Is(err, user.ErrActorRequired):
		Unauthorized(w, "Acting user identity is required")

	// RBAC domain errors
	case errors.Is(err, rbac.ErrRoleNotFound):
		NotFound(w, "Role not found")
	case errors.Is(err, rbac.ErrPermissionNotFound):
		NotFound(w, "Permission not found")
	case errors.Is(err, rbac.ErrRoleSlugExists):
		Conflict(w, "Role slug already exists")
	case errors.Is(err, rbac.ErrSystemRole):
		Conflict(w, "System role cannot be modified or deleted")
	case errors.Is(err, rbac.ErrRoleNotAssigned):
		NotFound(w, "User does not hold this role")
	case errors.Is(err, rbac.ErrNoRoleAssigned):
		BadRequest(w, "User has no active role", nil)
	case errors.Is(err, rbac.ErrPermissionDenied):
		Forbidden(w, "Permission denied")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrRecordNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrInvalidType):
		BadRequest(w, "Invalid attendance type", nil)

	// Catalog domain errors
	case errors.Is(err, catalog.ErrCategoryNotFound):
		NotFound(w, "Category not found")
	case errors.Is(err, catalog.ErrCategoryExists):
		Conflict(w, "Category name already exists")
	case errors.Is(err, catalog.ErrProductNotFound):
		NotFound(w, "Product not found")
	case errors.Is(err, catalog.ErrSKUExists):
		Conflict(w, "Product SKU already exists")
	case errors.Is(err, catalog.ErrInsufficientStock):
		Conflict(w, "Insufficient stock")
	case errors.Is(err, catalog.ErrImportSourceNotFound):
		NotFound(w, "Import source not found")
	case errors.Is(err, catalog.ErrImportBatchNotFound):
		NotFound(w, "Import batch not found")
	case errors.Is(err, catalog.ErrBatchCodeExists):
		Conflict(w, "Import batch code already exists")

	// Order domain errors
	case errors.Is(err, order.ErrOrderNotFound):
		NotFound(w, "Order not found")
	case errors.Is(err, order.ErrOrderCodeExists):
		Conflict(w, "Order code already exists")
	case errors.Is(err, order.ErrInvalidTransition):
		Conflict(w, err.Error())
	case errors.Is(err, order.ErrOrderNotEditable):
		Conflict(w, "Order is completed or cancelled")
	case errors.Is(err, order.ErrOverpayment):
		BadRequest(w, "Paid amount exceeds order total", nil)

	// Payroll domain errors
	case errors.Is(err, payroll.ErrNoRole):
		BadRequest(w, "User has no active role", nil)
	case errors.Is(err, payroll.ErrConfigNotFound):
		NotFound(w, "No active salary configuration for role")
	case errors.Is(err, payroll.ErrConfigExists):
		Conflict(w, "Active salary configuration already exists for role")
	case errors.Is(err, payroll.ErrPayrollNotFound):
		NotFound(w, "Payroll record not found")
	case errors.Is(err, payroll.ErrPayrollExists):
		Conflict(w, "Payroll record already exists for this period")
	case errors.Is(err, payroll.ErrPayrollLocked):
		Conflict(w, "Payroll record for this period is no longer a draft")
	case errors.Is(err, payroll.ErrNotDraft):
		Conflict(w, "Payroll record is not a draft")
	case errors.Is(err, payroll.ErrInvalidTransition):
		Conflict(w, err.Error())
	case errors.Is(err, payroll.ErrInvalidPeriod):
		BadRequest(w, "Invalid payroll period", nil)
	case errors.Is(err, payroll.ErrAdjustmentNotFound):
		NotFound(w, "Payroll adjustment not found")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
