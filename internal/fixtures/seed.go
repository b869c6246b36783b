package fixtures

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/haisanviet/backoffice-go/internal/domain/catalog"
	"github.com/haisanviet/backoffice-go/internal/domain/payroll"
	"github.com/haisanviet/backoffice-go/internal/domain/rbac"
	"github.com/haisanviet/backoffice-go/internal/domain/user"
	"golang.org/x/crypto/bcrypt"
)

// Seeder loads the default data set: permission matrix, roles, salary
// configurations, starter catalog and the first admin account. Safe to run
// more than once; existing rows are looked up instead of recreated.
type Seeder struct {
	userRepo    user.Repository
	rbacRepo    rbac.Repository
	configRepo  payroll.ConfigRepository
	catalogRepo catalog.Repository
}

func NewSeeder(userRepo user.Repository, rbacRepo rbac.Repository, configRepo payroll.ConfigRepository, catalogRepo catalog.Repository) *Seeder {
	return &Seeder{
		userRepo:    userRepo,
		rbacRepo:    rbacRepo,
		configRepo:  configRepo,
		catalogRepo: catalogRepo,
	}
}

func (s *Seeder) Run(ctx context.Context, adminEmail, adminPassword string) error {
	permIDs, err := s.seedPermissions(ctx)
	if err != nil {
		return err
	}

	roleIDs, err := s.seedRoles(ctx)
	if err != nil {
		return err
	}

	s.seedRolePermissions(ctx, roleIDs, permIDs)
	s.seedSalaryConfigs(ctx, roleIDs)
	s.seedCatalog(ctx)

	return s.seedAdmin(ctx, adminEmail, adminPassword, roleIDs["admin"])
}

// seedPermissions creates the permission matrix and returns codename -> id.
func (s *Seeder) seedPermissions(ctx context.Context) (map[string]string, error) {
	perms := GetDefaultPermissions()
	for _, p := range perms {
		if _, err := s.rbacRepo.CreatePermission(ctx, p); err != nil {
			// Continue with other permissions even if one fails (might be duplicate)
			slog.Warn("Failed to create permission", "codename", p.Codename, "error", err)
		}
	}
	slog.Info("Seeded permissions", "count", len(perms))

	existing, err := s.rbacRepo.ListPermissions(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list permissions after seeding: %w", err)
	}

	ids := make(map[string]string, len(existing))
	for _, p := range existing {
		ids[p.Codename] = p.ID
	}
	return ids, nil
}

// seedRoles creates the default roles and returns slug -> id.
func (s *Seeder) seedRoles(ctx context.Context) (map[string]string, error) {
	ids := make(map[string]string)
	for _, role := range GetDefaultRoles() {
		created, err := s.rbacRepo.CreateRole(ctx, role)
		if errors.Is(err, rbac.ErrRoleSlugExists) {
			created, err = s.rbacRepo.GetRoleBySlug(ctx, role.Slug)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to seed role %s: %w", role.Slug, err)
		}
		ids[created.Slug] = created.ID
	}
	slog.Info("Seeded roles", "count", len(ids))
	return ids, nil
}

func (s *Seeder) seedRolePermissions(ctx context.Context, roleIDs, permIDs map[string]string) {
	for slug, codenames := range GetDefaultRolePermissions() {
		roleID, ok := roleIDs[slug]
		if !ok {
			slog.Warn("Skipping permissions for unknown role", "role", slug)
			continue
		}

		var ids []string
		if len(codenames) == 1 && codenames[0] == "*" {
			for _, id := range permIDs {
				ids = append(ids, id)
			}
		} else {
			for _, codename := range codenames {
				id, ok := permIDs[codename]
				if !ok {
					slog.Warn("Unknown permission codename in role matrix", "role", slug, "codename", codename)
					continue
				}
				ids = append(ids, id)
			}
		}

		if err := s.rbacRepo.SetRolePermissions(ctx, roleID, ids); err != nil {
			slog.Warn("Failed to set role permissions", "role", slug, "error", err)
		} else {
			slog.Info("Seeded role permissions", "role", slug, "count", len(ids))
		}
	}
}

func (s *Seeder) seedSalaryConfigs(ctx context.Context, roleIDs map[string]string) {
	for slug, cfg := range GetDefaultSalaryConfigs() {
		roleID, ok := roleIDs[slug]
		if !ok {
			slog.Warn("Skipping salary configuration for unknown role", "role", slug)
			continue
		}

		cfg.RoleID = roleID
		if _, err := s.configRepo.Create(ctx, cfg); err != nil {
			if errors.Is(err, payroll.ErrConfigExists) {
				continue
			}
			slog.Warn("Failed to create salary configuration", "role", slug, "error", err)
		} else {
			slog.Info("Seeded salary configuration", "role", slug)
		}
	}
}

func (s *Seeder) seedCatalog(ctx context.Context) {
	categoryIDs := make(map[string]string)
	for _, c := range GetDefaultCategories() {
		created, err := s.catalogRepo.CreateCategory(ctx, c)
		if err != nil {
			slog.Warn("Failed to create category", "category", c.Name, "error", err)
			continue
		}
		categoryIDs[created.Name] = created.ID
	}

	// Re-runs hit ErrCategoryExists above; resolve the ids from the table.
	if existing, err := s.catalogRepo.ListCategories(ctx, false); err == nil {
		for _, c := range existing {
			categoryIDs[c.Name] = c.ID
		}
	}
	slog.Info("Seeded categories", "count", len(categoryIDs))

	seeded := 0
	for categoryName, products := range GetDefaultProducts() {
		categoryID, ok := categoryIDs[categoryName]
		if !ok {
			slog.Warn("Skipping products for unknown category", "category", categoryName)
			continue
		}
		for _, p := range products {
			p.CategoryID = categoryID
			if _, err := s.catalogRepo.CreateProduct(ctx, p); err != nil {
				if errors.Is(err, catalog.ErrSKUExists) {
					continue
				}
				slog.Warn("Failed to create product", "sku", p.SKU, "error", err)
			} else {
				seeded++
			}
		}
	}
	slog.Info("Seeded products", "count", seeded)
}

func (s *Seeder) seedAdmin(ctx context.Context, email, password, adminRoleID string) error {
	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err == nil {
		slog.Info("Admin account already exists", "user_id", existing.ID)
		return nil
	}
	if !errors.Is(err, user.ErrUserNotFound) {
		return fmt.Errorf("failed to look up admin account: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin, err := s.userRepo.Create(ctx, user.User{
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    "System",
		LastName:     "Admin",
		IsActive:     true,
		IsSuperuser:  true,
	})
	if err != nil {
		return fmt.Errorf("failed to create admin account: %w", err)
	}

	if adminRoleID != "" {
		if _, err := s.rbacRepo.AssignRole(ctx, admin.ID, adminRoleID); err != nil {
			slog.Warn("Failed to assign admin role", "user_id", admin.ID, "error", err)
		}
	}

	slog.Info("Seeded admin account", "user_id", admin.ID, "email", email)
	return nil
}
