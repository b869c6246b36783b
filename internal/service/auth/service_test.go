package auth

import (
	"context"
	"testing"

	"github.com/haisanviet/backoffice-go/internal/domain/auth"
	"github.com/haisanviet/backoffice-go/internal/domain/rbac"
	"github.com/haisanviet/backoffice-go/internal/domain/user"
	"github.com/haisanviet/backoffice-go/internal/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type fakeUserRepo struct {
	users map[string]user.User
}

func (f *fakeUserRepo) Create(ctx context.Context, u user.User) (user.User, error) {
	f.users[u.ID] = u
	return u, nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) List(ctx context.Context, activeOnly bool) ([]user.User, error) {
	return nil, nil
}

func (f *fakeUserRepo) ListActiveByRoleSlugs(ctx context.Context, slugs []string) ([]user.User, error) {
	return nil, nil
}

func (f *fakeUserRepo) Update(ctx context.Context, id string, patch user.Patch) (user.User, error) {
	return f.users[id], nil
}

func (f *fakeUserRepo) Deactivate(ctx context.Context, id string) error {
	return nil
}

// fakeRBACRepo only resolves primary roles; the rest of the interface is
// unused by the auth flow.
type fakeRBACRepo struct {
	rbac.Repository

	primaryRoles map[string]rbac.Role
}

func (f *fakeRBACRepo) GetPrimaryRole(ctx context.Context, userID string) (rbac.Role, error) {
	role, ok := f.primaryRoles[userID]
	if !ok {
		return rbac.Role{}, rbac.ErrNoRoleAssigned
	}
	return role, nil
}

func newTestService(t *testing.T) (auth.Service, *fakeUserRepo, *fakeRBACRepo) {
	t.Helper()

	userRepo := &fakeUserRepo{users: map[string]user.User{}}
	rbacRepo := &fakeRBACRepo{primaryRoles: map[string]rbac.Role{}}
	jwtService := jwt.NewJWTService("test-secret", "15m", "168h")

	return NewAuthService(userRepo, rbacRepo, jwtService), userRepo, rbacRepo
}

func addUser(t *testing.T, repo *fakeUserRepo, id, email, password string, active bool) {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	repo.users[id] = user.User{
		ID:           id,
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    "Linh",
		LastName:     "Tran",
		IsActive:     active,
	}
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("returns token pair with role claims", func(t *testing.T) {
		svc, userRepo, rbacRepo := newTestService(t)
		addUser(t, userRepo, "u1", "linh@example.com", "secret123", true)
		rbacRepo.primaryRoles["u1"] = rbac.Role{ID: "r1", Slug: "salesperson", Level: rbac.LevelStaff}

		tokens, err := svc.Login(ctx, auth.LoginRequest{Email: "linh@example.com", Password: "secret123"})
		require.NoError(t, err)

		assert.NotEmpty(t, tokens.AccessToken)
		assert.NotEmpty(t, tokens.RefreshToken)
		assert.Equal(t, "u1", tokens.UserID)
		assert.Equal(t, "Linh Tran", tokens.FullName)
		assert.Equal(t, "salesperson", tokens.RoleSlug)
	})

	t.Run("wrong password", func(t *testing.T) {
		svc, userRepo, _ := newTestService(t)
		addUser(t, userRepo, "u1", "linh@example.com", "secret123", true)

		_, err := svc.Login(ctx, auth.LoginRequest{Email: "linh@example.com", Password: "nope12345"})
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("unknown email maps to invalid credentials", func(t *testing.T) {
		svc, _, _ := newTestService(t)

		_, err := svc.Login(ctx, auth.LoginRequest{Email: "ghost@example.com", Password: "secret123"})
		assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
	})

	t.Run("inactive user", func(t *testing.T) {
		svc, userRepo, _ := newTestService(t)
		addUser(t, userRepo, "u1", "linh@example.com", "secret123", false)

		_, err := svc.Login(ctx, auth.LoginRequest{Email: "linh@example.com", Password: "secret123"})
		assert.ErrorIs(t, err, user.ErrUserInactive)
	})

	t.Run("login without a role still succeeds", func(t *testing.T) {
		svc, userRepo, _ := newTestService(t)
		addUser(t, userRepo, "u1", "linh@example.com", "secret123", true)

		tokens, err := svc.Login(ctx, auth.LoginRequest{Email: "linh@example.com", Password: "secret123"})
		require.NoError(t, err)
		assert.Empty(t, tokens.RoleSlug)
	})
}

func TestRefresh(t *testing.T) {
	ctx := context.Background()

	t.Run("rotates the refresh token", func(t *testing.T) {
		svc, userRepo, _ := newTestService(t)
		addUser(t, userRepo, "u1", "linh@example.com", "secret123", true)

		first, err := svc.Login(ctx, auth.LoginRequest{Email: "linh@example.com", Password: "secret123"})
		require.NoError(t, err)

		second, err := svc.Refresh(ctx, first.RefreshToken)
		require.NoError(t, err)
		assert.Equal(t, "u1", second.UserID)

		// The exchanged token is revoked and cannot be replayed.
		_, err = svc.Refresh(ctx, first.RefreshToken)
		assert.ErrorIs(t, err, auth.ErrRefreshTokenInvalid)
	})

	t.Run("rejects garbage tokens", func(t *testing.T) {
		svc, _, _ := newTestService(t)

		_, err := svc.Refresh(ctx, "not-a-jwt")
		assert.ErrorIs(t, err, auth.ErrRefreshTokenInvalid)
	})

	t.Run("rejects access tokens", func(t *testing.T) {
		svc, userRepo, _ := newTestService(t)
		addUser(t, userRepo, "u1", "linh@example.com", "secret123", true)

		tokens, err := svc.Login(ctx, auth.LoginRequest{Email: "linh@example.com", Password: "secret123"})
		require.NoError(t, err)

		_, err = svc.Refresh(ctx, tokens.AccessToken)
		assert.ErrorIs(t, err, auth.ErrRefreshTokenInvalid)
	})

	t.Run("deactivated user cannot refresh", func(t *testing.T) {
		svc, userRepo, _ := newTestService(t)
		addUser(t, userRepo, "u1", "linh@example.com", "secret123", true)

		tokens, err := svc.Login(ctx, auth.LoginRequest{Email: "linh@example.com", Password: "secret123"})
		require.NoError(t, err)

		u := userRepo.users["u1"]
		u.IsActive = false
		userRepo.users["u1"] = u

		_, err = svc.Refresh(ctx, tokens.RefreshToken)
		assert.ErrorIs(t, err, user.ErrUserInactive)
	})
}

func TestLogout(t *testing.T) {
	ctx := context.Background()

	svc, userRepo, _ := newTestService(t)
	addUser(t, userRepo, "u1", "linh@example.com", "secret123", true)

	tokens, err := svc.Login(ctx, auth.LoginRequest{Email: "linh@example.com", Password: "secret123"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, tokens.RefreshToken))

	_, err = svc.Refresh(ctx, tokens.RefreshToken)
	assert.ErrorIs(t, err, auth.ErrRefreshTokenInvalid)

	// Logging out with no cookie is a no-op.
	assert.NoError(t, svc.Logout(ctx, ""))
}
