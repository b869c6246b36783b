package attendance

import (
	"context"
	"time"

	"github.com/haisanviet/backoffice-go/internal/domain/attendance"
	"github.com/haisanviet/backoffice-go/internal/domain/user"
	"github.com/haisanviet/backoffice-go/internal/pkg/validator"
)

type ServiceImpl struct {
	attendanceRepo attendance.Repository
	userRepo       user.Repository
}

func NewService(attendanceRepo attendance.Repository, userRepo user.Repository) attendance.Service {
	return &ServiceImpl{attendanceRepo: attendanceRepo, userRepo: userRepo}
}

func (s *ServiceImpl) CheckIn(ctx context.Context, req attendance.CheckInRequest) (attendance.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.RecordResponse{}, err
	}

	if _, err := s.userRepo.GetByID(ctx, req.UserID); err != nil {
		return attendance.RecordResponse{}, err
	}

	date, _ := time.Parse("2006-01-02", req.Date)

	saved, err := s.attendanceRepo.Upsert(ctx, attendance.Record{
		UserID: req.UserID,
		Date:   date,
		Type:   attendance.Type(req.Type),
		Notes:  req.Notes,
	})
	if err != nil {
		return attendance.RecordResponse{}, err
	}

	return attendance.ToResponse(saved), nil
}

func (s *ServiceImpl) ListByUserMonth(ctx context.Context, userID string, year, month int) ([]attendance.RecordResponse, error) {
	if month < 1 || month > 12 {
		return nil, validator.ValidationErrors{{Field: "month", Message: "must be between 1 and 12"}}
	}
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}

	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 1, 0)

	records, err := s.attendanceRepo.ListByUserRange(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}

	responses := make([]attendance.RecordResponse, 0, len(records))
	for _, rec := range records {
		responses = append(responses, attendance.ToResponse(rec))
	}
	return responses, nil
}

func (s *ServiceImpl) Delete(ctx context.Context, id string) error {
	return s.attendanceRepo.Delete(ctx, id)
}
