package attendance

import (
	"time"

	"github.com/haisanviet/backoffice-go/internal/pkg/validator"
)

type CheckInRequest struct {
	UserID string  `json:"user_id"`
	Date   string  `json:"date"` // YYYY-MM-DD
	Type   string  `json:"type"`
	Notes  *string `json:"notes,omitempty"`
}

func (r *CheckInRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.UserID == "" {
		errs = append(errs, validator.ValidationError{Field: "user_id", Message: "is required"})
	}
	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{Field: "date", Message: "must be in YYYY-MM-DD format"})
	}
	if !IsValidType(r.Type) {
		errs = append(errs, validator.ValidationError{Field: "type", Message: "must be one of full, half, off"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type RecordResponse struct {
	ID     string  `json:"id"`
	UserID string  `json:"user_id"`
	Date   string  `json:"date"`
	Type   string  `json:"type"`
	Notes  *string `json:"notes,omitempty"`
}

func ToResponse(rec Record) RecordResponse {
	return RecordResponse{
		ID:     rec.ID,
		UserID: rec.UserID,
		Date:   rec.Date.Format(time.DateOnly),
		Type:   string(rec.Type),
		Notes:  rec.Notes,
	}
}
