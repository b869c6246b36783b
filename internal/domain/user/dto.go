package user

import "github.com/haisanviet/backoffice-go/internal/pkg/validator"

type CreateRequest struct {
	Email      string  `json:"email"`
	Password   string  `json:"password"`
	FirstName  string  `json:"first_name"`
	LastName   string  `json:"last_name"`
	Phone      *string `json:"phone,omitempty"`
	EmployeeID *string `json:"employee_id,omitempty"`
}

func (r *CreateRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{Field: "email", Message: "must be a valid email address"})
	}
	if len(r.Password) < 8 {
		errs = append(errs, validator.ValidationError{Field: "password", Message: "must be at least 8 characters"})
	}
	if validator.IsEmpty(r.FirstName) {
		errs = append(errs, validator.ValidationError{Field: "first_name", Message: "is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// Patch lists the mutable user fields. Only non-nil fields are applied.
type Patch struct {
	FirstName  *string `json:"first_name,omitempty"`
	LastName   *string `json:"last_name,omitempty"`
	Phone      *string `json:"phone,omitempty"`
	EmployeeID *string `json:"employee_id,omitempty"`
	IsActive   *bool   `json:"is_active,omitempty"`
}

type Response struct {
	ID         string  `json:"id"`
	Email      string  `json:"email"`
	FullName   string  `json:"full_name"`
	Phone      *string `json:"phone,omitempty"`
	EmployeeID *string `json:"employee_id,omitempty"`
	RoleName   *string `json:"role_name,omitempty"`
	RoleSlug   *string `json:"role_slug,omitempty"`
	IsActive   bool    `json:"is_active"`
}

func ToResponse(u User) Response {
	return Response{
		ID:         u.ID,
		Email:      u.Email,
		FullName:   u.FullName(),
		Phone:      u.Phone,
		EmployeeID: u.EmployeeID,
		RoleName:   u.RoleName,
		RoleSlug:   u.RoleSlug,
		IsActive:   u.IsActive,
	}
}
