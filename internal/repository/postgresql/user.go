package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/haisanviet/backoffice-go/internal/domain/user"
	"github.com/haisanviet/backoffice-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type userRepository struct {
	db *database.DB
}

func NewUserRepository(db *database.DB) user.Repository {
	return &userRepository{db: db}
}

const userSelectColumns = `
	u.id, u.email, u.password_hash, u.first_name, u.last_name, u.phone,
	u.employee_id, u.is_active, u.is_superuser, u.created_at, u.updated_at,
	r.id as role_id, r.name as role_name, r.slug as role_slug
`

const userJoinRole = `
	FROM users u
	LEFT JOIN LATERAL (
		SELECT ro.id, ro.name, ro.slug
		FROM user_roles ur
		JOIN roles ro ON ur.role_id = ro.id
		WHERE ur.user_id = u.id AND ur.is_active = true AND ro.is_active = true
		ORDER BY ro.level DESC
		LIMIT 1
	) r ON true
`

func scanUser(row pgx.Row) (user.User, error) {
	var u user.User
	err := row.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName, &u.Phone,
		&u.EmployeeID, &u.IsActive, &u.IsSuperuser, &u.CreatedAt, &u.UpdatedAt,
		&u.RoleID, &u.RoleName, &u.RoleSlug,
	)
	return u, err
}

func (r *userRepository) Create(ctx context.Context, u user.User) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO users (email, password_hash, first_name, last_name, phone, employee_id, is_active, is_superuser)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, email, password_hash, first_name, last_name, phone,
			employee_id, is_active, is_superuser, created_at, updated_at
	`

	var created user.User
	err := q.QueryRow(ctx, query,
		u.Email, u.PasswordHash, u.FirstName, u.LastName, u.Phone, u.EmployeeID, u.IsActive, u.IsSuperuser,
	).Scan(
		&created.ID, &created.Email, &created.PasswordHash, &created.FirstName, &created.LastName, &created.Phone,
		&created.EmployeeID, &created.IsActive, &created.IsSuperuser, &created.CreatedAt, &created.UpdatedAt,
	)
	if err != nil {
		if strings.Contains(err.Error(), "uk_users_email") {
			return user.User{}, user.ErrEmailExists
		}
		return user.User{}, fmt.Errorf("failed to create user: %w", err)
	}

	return created, nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + userSelectColumns + userJoinRole + ` WHERE u.id = $1`

	u, err := scanUser(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("failed to get user: %w", err)
	}

	return u, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + userSelectColumns + userJoinRole + ` WHERE LOWER(u.email) = LOWER($1)`

	u, err := scanUser(q.QueryRow(ctx, query, email))
	if err != nil {
		if err == pgx.ErrNoRows {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	return u, nil
}

func (r *userRepository) List(ctx context.Context, activeOnly bool) ([]user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + userSelectColumns + userJoinRole
	if activeOnly {
		query += ` WHERE u.is_active = true`
	}
	query += ` ORDER BY u.first_name, u.last_name`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []user.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}

	return users, nil
}

func (r *userRepository) ListActiveByRoleSlugs(ctx context.Context, slugs []string) ([]user.User, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + userSelectColumns + userJoinRole + `
		WHERE u.is_active = true AND r.slug = ANY($1)
		ORDER BY u.first_name, u.last_name
	`

	rows, err := q.Query(ctx, query, slugs)
	if err != nil {
		return nil, fmt.Errorf("failed to list users by role: %w", err)
	}
	defer rows.Close()

	var users []user.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}

	return users, nil
}

func (r *userRepository) Update(ctx context.Context, id string, patch user.Patch) (user.User, error) {
	q := GetQuerier(ctx, r.db)

	setParts := []string{"updated_at = NOW()"}
	args := []interface{}{id}
	argIdx := 2

	if patch.FirstName != nil {
		setParts = append(setParts, fmt.Sprintf("first_name = $%d", argIdx))
		args = append(args, *patch.FirstName)
		argIdx++
	}
	if patch.LastName != nil {
		setParts = append(setParts, fmt.Sprintf("last_name = $%d", argIdx))
		args = append(args, *patch.LastName)
		argIdx++
	}
	if patch.Phone != nil {
		setParts = append(setParts, fmt.Sprintf("phone = $%d", argIdx))
		args = append(args, *patch.Phone)
		argIdx++
	}
	if patch.EmployeeID != nil {
		setParts = append(setParts, fmt.Sprintf("employee_id = $%d", argIdx))
		args = append(args, *patch.EmployeeID)
		argIdx++
	}
	if patch.IsActive != nil {
		setParts = append(setParts, fmt.Sprintf("is_active = $%d", argIdx))
		args = append(args, *patch.IsActive)
		argIdx++
	}

	query := fmt.Sprintf(`
		UPDATE users
		SET %s
		WHERE id = $1
		RETURNING id
	`, strings.Join(setParts, ", "))

	var updatedID string
	err := q.QueryRow(ctx, query, args...).Scan(&updatedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return user.User{}, user.ErrUserNotFound
		}
		return user.User{}, fmt.Errorf("failed to update user: %w", err)
	}

	return r.GetByID(ctx, id)
}

func (r *userRepository) Deactivate(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	query := `UPDATE users SET is_active = false, updated_at = NOW() WHERE id = $1 RETURNING id`

	var deactivatedID string
	err := q.QueryRow(ctx, query, id).Scan(&deactivatedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return user.ErrUserNotFound
		}
		return fmt.Errorf("failed to deactivate user: %w", err)
	}

	return nil
}
