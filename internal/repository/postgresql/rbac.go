package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/haisanviet/backoffice-go/internal/domain/rbac"
	"github.com/haisanviet/backoffice-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type rbacRepository struct {
	db *database.DB
}

func NewRBACRepository(db *database.DB) rbac.Repository {
	return &rbacRepository{db: db}
}

// ========== ROLES ==========

func (r *rbacRepository) CreateRole(ctx context.Context, role rbac.Role) (rbac.Role, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO roles (name, slug, description, level, is_system, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, name, slug, description, level, is_system, is_active, created_at, updated_at
	`

	var created rbac.Role
	err := q.QueryRow(ctx, query,
		role.Name, role.Slug, role.Description, role.Level, role.IsSystem, role.IsActive,
	).Scan(
		&created.ID, &created.Name, &created.Slug, &created.Description,
		&created.Level, &created.IsSystem, &created.IsActive, &created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "uk_roles_slug") {
			return rbac.Role{}, rbac.ErrRoleSlugExists
		}
		return rbac.Role{}, fmt.Errorf("failed to create role: %w", err)
	}

	return created, nil
}

func (r *rbacRepository) GetRoleByID(ctx context.Context, id string) (rbac.Role, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, slug, description, level, is_system, is_active, created_at, updated_at
		FROM roles
		WHERE id = $1
	`

	var role rbac.Role
	err := q.QueryRow(ctx, query, id).Scan(
		&role.ID, &role.Name, &role.Slug, &role.Description,
		&role.Level, &role.IsSystem, &role.IsActive, &role.CreatedAt, &role.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return rbac.Role{}, rbac.ErrRoleNotFound
		}
		return rbac.Role{}, fmt.Errorf("failed to get role: %w", err)
	}

	return role, nil
}

func (r *rbacRepository) GetRoleBySlug(ctx context.Context, slug string) (rbac.Role, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, slug, description, level, is_system, is_active, created_at, updated_at
		FROM roles
		WHERE slug = $1
	`

	var role rbac.Role
	err := q.QueryRow(ctx, query, slug).Scan(
		&role.ID, &role.Name, &role.Slug, &role.Description,
		&role.Level, &role.IsSystem, &role.IsActive, &role.CreatedAt, &role.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return rbac.Role{}, rbac.ErrRoleNotFound
		}
		return rbac.Role{}, fmt.Errorf("failed to get role by slug: %w", err)
	}

	return role, nil
}

func (r *rbacRepository) ListRoles(ctx context.Context, activeOnly bool) ([]rbac.Role, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, slug, description, level, is_system, is_active, created_at, updated_at
		FROM roles
	`
	if activeOnly {
		query += " WHERE is_active = true"
	}
	query += " ORDER BY level DESC, name"

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list roles: %w", err)
	}
	defer rows.Close()

	var roles []rbac.Role
	for rows.Next() {
		var role rbac.Role
		if err := rows.Scan(
			&role.ID, &role.Name, &role.Slug, &role.Description,
			&role.Level, &role.IsSystem, &role.IsActive, &role.CreatedAt, &role.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan role: %w", err)
		}
		roles = append(roles, role)
	}

	return roles, nil
}

func (r *rbacRepository) DeleteRole(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	// System roles can only be deactivated, never removed
	var isSystem bool
	err := q.QueryRow(ctx, `SELECT is_system FROM roles WHERE id = $1`, id).Scan(&isSystem)
	if err != nil {
		if err == pgx.ErrNoRows {
			return rbac.ErrRoleNotFound
		}
		return fmt.Errorf("failed to check role: %w", err)
	}
	if isSystem {
		return rbac.ErrSystemRole
	}

	query := `DELETE FROM roles WHERE id = $1 RETURNING id`

	var deletedID string
	err = q.QueryRow(ctx, query, id).Scan(&deletedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return rbac.ErrRoleNotFound
		}
		return fmt.Errorf("failed to delete role: %w", err)
	}

	return nil
}

// ========== PERMISSIONS ==========

func (r *rbacRepository) CreatePermission(ctx context.Context, perm rbac.Permission) (rbac.Permission, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO permissions (name, codename, description, module, action, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (codename) DO UPDATE SET
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			module = EXCLUDED.module,
			action = EXCLUDED.action
		RETURNING id, name, codename, description, module, action, is_active, created_at
	`

	var created rbac.Permission
	err := q.QueryRow(ctx, query,
		perm.Name, perm.Codename, perm.Description, perm.Module, perm.Action, perm.IsActive,
	).Scan(
		&created.ID, &created.Name, &created.Codename, &created.Description,
		&created.Module, &created.Action, &created.IsActive, &created.CreatedAt,
	)
	if err != nil {
		return rbac.Permission{}, fmt.Errorf("failed to create permission: %w", err)
	}

	return created, nil
}

func (r *rbacRepository) ListPermissions(ctx context.Context, module *string) ([]rbac.Permission, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, codename, description, module, action, is_active, created_at
		FROM permissions
		WHERE is_active = true
	`
	args := []interface{}{}
	if module != nil {
		query += " AND module = $1"
		args = append(args, *module)
	}
	query += " ORDER BY module, action"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list permissions: %w", err)
	}
	defer rows.Close()

	var perms []rbac.Permission
	for rows.Next() {
		var p rbac.Permission
		if err := rows.Scan(
			&p.ID, &p.Name, &p.Codename, &p.Description,
			&p.Module, &p.Action, &p.IsActive, &p.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan permission: %w", err)
		}
		perms = append(perms, p)
	}

	return perms, nil
}

func (r *rbacRepository) SetRolePermissions(ctx context.Context, roleID string, permissionIDs []string) error {
	return WithTransaction(ctx, r.db, func(ctx context.Context) error {
		q := GetQuerier(ctx, r.db)

		if _, err := q.Exec(ctx, `DELETE FROM role_permissions WHERE role_id = $1`, roleID); err != nil {
			return fmt.Errorf("failed to clear role permissions: %w", err)
		}

		for _, permID := range permissionIDs {
			_, err := q.Exec(ctx,
				`INSERT INTO role_permissions (role_id, permission_id) VALUES ($1, $2)`,
				roleID, permID,
			)
			if err != nil {
				if strings.Contains(err.Error(), "fk_role_permissions_permission") {
					return rbac.ErrPermissionNotFound
				}
				return fmt.Errorf("failed to set role permission: %w", err)
			}
		}

		return nil
	})
}

func (r *rbacRepository) ListRolePermissions(ctx context.Context, roleID string) ([]rbac.Permission, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT p.id, p.name, p.codename, p.description, p.module, p.action, p.is_active, p.created_at
		FROM role_permissions rp
		JOIN permissions p ON rp.permission_id = p.id
		WHERE rp.role_id = $1 AND p.is_active = true
		ORDER BY p.module, p.action
	`

	rows, err := q.Query(ctx, query, roleID)
	if err != nil {
		return nil, fmt.Errorf("failed to list role permissions: %w", err)
	}
	defer rows.Close()

	var perms []rbac.Permission
	for rows.Next() {
		var p rbac.Permission
		if err := rows.Scan(
			&p.ID, &p.Name, &p.Codename, &p.Description,
			&p.Module, &p.Action, &p.IsActive, &p.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan permission: %w", err)
		}
		perms = append(perms, p)
	}

	return perms, nil
}

// ========== USER ROLES ==========

func (r *rbacRepository) AssignRole(ctx context.Context, userID, roleID string) (rbac.UserRole, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO user_roles (user_id, role_id, is_active)
		VALUES ($1, $2, true)
		ON CONFLICT (user_id, role_id) DO UPDATE SET is_active = true
		RETURNING id, user_id, role_id, is_active, created_at
	`

	var ur rbac.UserRole
	err := q.QueryRow(ctx, query, userID, roleID).Scan(
		&ur.ID, &ur.UserID, &ur.RoleID, &ur.IsActive, &ur.CreatedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "fk_user_roles_role") {
			return rbac.UserRole{}, rbac.ErrRoleNotFound
		}
		return rbac.UserRole{}, fmt.Errorf("failed to assign role: %w", err)
	}

	return ur, nil
}

func (r *rbacRepository) RevokeRole(ctx context.Context, userID, roleID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE user_roles SET is_active = false
		WHERE user_id = $1 AND role_id = $2 AND is_active = true
		RETURNING id
	`

	var revokedID string
	err := q.QueryRow(ctx, query, userID, roleID).Scan(&revokedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return rbac.ErrRoleNotAssigned
		}
		return fmt.Errorf("failed to revoke role: %w", err)
	}

	return nil
}

func (r *rbacRepository) ListUserRoles(ctx context.Context, userID string) ([]rbac.UserRole, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ur.id, ur.user_id, ur.role_id, ur.is_active, ur.created_at,
			   ro.name as role_name, ro.slug as role_slug
		FROM user_roles ur
		JOIN roles ro ON ur.role_id = ro.id
		WHERE ur.user_id = $1 AND ur.is_active = true
		ORDER BY ro.level DESC
	`

	rows, err := q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list user roles: %w", err)
	}
	defer rows.Close()

	var userRoles []rbac.UserRole
	for rows.Next() {
		var ur rbac.UserRole
		if err := rows.Scan(
			&ur.ID, &ur.UserID, &ur.RoleID, &ur.IsActive, &ur.CreatedAt,
			&ur.RoleName, &ur.RoleSlug,
		); err != nil {
			return nil, fmt.Errorf("failed to scan user role: %w", err)
		}
		userRoles = append(userRoles, ur)
	}

	return userRoles, nil
}

func (r *rbacRepository) GetPrimaryRole(ctx context.Context, userID string) (rbac.Role, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ro.id, ro.name, ro.slug, ro.description, ro.level, ro.is_system, ro.is_active,
			   ro.created_at, ro.updated_at
		FROM user_roles ur
		JOIN roles ro ON ur.role_id = ro.id
		WHERE ur.user_id = $1 AND ur.is_active = true AND ro.is_active = true
		ORDER BY ro.level DESC
		LIMIT 1
	`

	var role rbac.Role
	err := q.QueryRow(ctx, query, userID).Scan(
		&role.ID, &role.Name, &role.Slug, &role.Description, &role.Level, &role.IsSystem, &role.IsActive,
		&role.CreatedAt, &role.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return rbac.Role{}, rbac.ErrNoRoleAssigned
		}
		return rbac.Role{}, fmt.Errorf("failed to get primary role: %w", err)
	}

	return role, nil
}

func (r *rbacRepository) UserHasPermission(ctx context.Context, userID, codename string) (bool, error) {
	q := GetQuerier(ctx, r.db)

	// Superusers bypass the permission matrix
	query := `
		SELECT EXISTS(
			SELECT 1 FROM users WHERE id = $1 AND is_superuser = true AND is_active = true
		) OR EXISTS(
			SELECT 1
			FROM user_roles ur
			JOIN roles ro ON ur.role_id = ro.id
			JOIN role_permissions rp ON rp.role_id = ro.id
			JOIN permissions p ON rp.permission_id = p.id
			WHERE ur.user_id = $1 AND ur.is_active = true AND ro.is_active = true
				AND p.codename = $2 AND p.is_active = true
		)
	`

	var has bool
	if err := q.QueryRow(ctx, query, userID, codename).Scan(&has); err != nil {
		return false, fmt.Errorf("failed to check permission: %w", err)
	}

	return has, nil
}

func (r *rbacRepository) ListUserPermissions(ctx context.Context, userID string) ([]string, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT DISTINCT p.codename
		FROM user_roles ur
		JOIN roles ro ON ur.role_id = ro.id
		JOIN role_permissions rp ON rp.role_id = ro.id
		JOIN permissions p ON rp.permission_id = p.id
		WHERE ur.user_id = $1 AND ur.is_active = true AND ro.is_active = true AND p.is_active = true
		ORDER BY p.codename
	`

	rows, err := q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list user permissions: %w", err)
	}
	defer rows.Close()

	var codenames []string
	for rows.Next() {
		var codename string
		if err := rows.Scan(&codename); err != nil {
			return nil, fmt.Errorf("failed to scan permission codename: %w", err)
		}
		codenames = append(codenames, codename)
	}

	return codenames, nil
}
