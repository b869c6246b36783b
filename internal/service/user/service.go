package user

import (
	"context"
	"fmt"

	"github.com/haisanviet/backoffice-go/internal/domain/user"
	"golang.org/x/crypto/bcrypt"
)

type ServiceImpl struct {
	userRepo user.Repository
}

func NewService(userRepo user.Repository) user.Service {
	return &ServiceImpl{userRepo: userRepo}
}

func (s *ServiceImpl) Create(ctx context.Context, req user.CreateRequest) (user.Response, error) {
	if err := req.Validate(); err != nil {
		return user.Response{}, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return user.Response{}, fmt.Errorf("failed to hash password: %w", err)
	}

	created, err := s.userRepo.Create(ctx, user.User{
		Email:        req.Email,
		PasswordHash: string(hash),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Phone:        req.Phone,
		EmployeeID:   req.EmployeeID,
		IsActive:     true,
	})
	if err != nil {
		return user.Response{}, err
	}

	return user.ToResponse(created), nil
}

func (s *ServiceImpl) Get(ctx context.Context, id string) (user.Response, error) {
	u, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return user.Response{}, err
	}
	return user.ToResponse(u), nil
}

func (s *ServiceImpl) List(ctx context.Context, activeOnly bool) ([]user.Response, error) {
	users, err := s.userRepo.List(ctx, activeOnly)
	if err != nil {
		return nil, err
	}

	responses := make([]user.Response, 0, len(users))
	for _, u := range users {
		responses = append(responses, user.ToResponse(u))
	}
	return responses, nil
}

func (s *ServiceImpl) Update(ctx context.Context, id string, patch user.Patch) (user.Response, error) {
	updated, err := s.userRepo.Update(ctx, id, patch)
	if err != nil {
		return user.Response{}, err
	}
	return user.ToResponse(updated), nil
}

func (s *ServiceImpl) Deactivate(ctx context.Context, id string) error {
	return s.userRepo.Deactivate(ctx, id)
}
