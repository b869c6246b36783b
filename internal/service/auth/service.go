package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/haisanviet/backoffice-go/internal/domain/auth"
	"github.com/haisanviet/backoffice-go/internal/domain/rbac"
	"github.com/haisanviet/backoffice-go/internal/domain/user"
	"github.com/haisanviet/backoffice-go/internal/pkg/jwt"
	"golang.org/x/crypto/bcrypt"
)

type AuthServiceImpl struct {
	userRepo user.Repository
	rbacRepo rbac.Repository
	jwt      jwt.Service
}

func NewAuthService(userRepo user.Repository, rbacRepo rbac.Repository, jwtService jwt.Service) auth.Service {
	return &AuthServiceImpl{
		userRepo: userRepo,
		rbacRepo: rbacRepo,
		jwt:      jwtService,
	}
}

func (a *AuthServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	userData, err := a.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(userData.PasswordHash), []byte(req.Password)); err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	if !userData.IsActive {
		return auth.TokenResponse{}, user.ErrUserInactive
	}

	return a.issueTokens(ctx, userData)
}

func (a *AuthServiceImpl) Refresh(ctx context.Context, refreshToken string) (auth.TokenResponse, error) {
	if a.jwt.IsTokenRevoked(refreshToken) {
		return auth.TokenResponse{}, auth.ErrRefreshTokenInvalid
	}

	userID, err := a.jwt.ValidateRefreshToken(refreshToken)
	if err != nil {
		return auth.TokenResponse{}, auth.ErrRefreshTokenInvalid
	}

	userData, err := a.userRepo.GetByID(ctx, userID)
	if err != nil {
		return auth.TokenResponse{}, auth.ErrRefreshTokenInvalid
	}
	if !userData.IsActive {
		return auth.TokenResponse{}, user.ErrUserInactive
	}

	// Rotate: the old refresh token is dead once exchanged
	a.jwt.RevokeToken(refreshToken)

	return a.issueTokens(ctx, userData)
}

func (a *AuthServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken != "" {
		a.jwt.RevokeToken(refreshToken)
	}
	return nil
}

func (a *AuthServiceImpl) issueTokens(ctx context.Context, userData user.User) (auth.TokenResponse, error) {
	roleSlug := ""
	roleLevel := 0
	role, err := a.rbacRepo.GetPrimaryRole(ctx, userData.ID)
	if err == nil {
		roleSlug = role.Slug
		roleLevel = role.Level
	} else if !errors.Is(err, rbac.ErrNoRoleAssigned) {
		return auth.TokenResponse{}, err
	}

	accessToken, expiresAt, err := a.jwt.GenerateAccessToken(userData.ID, userData.Email, roleSlug, roleLevel)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to create access token: %w", err)
	}

	refreshToken, _, err := a.jwt.GenerateRefreshToken(userData.ID)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to create refresh token: %w", err)
	}

	return auth.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    expiresAt,
		UserID:       userData.ID,
		FullName:     userData.FullName(),
		RoleSlug:     roleSlug,
	}, nil
}
