package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/haisanviet/backoffice-go/internal/domain/payroll"
	"github.com/haisanviet/backoffice-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type salaryConfigRepository struct {
	db *database.DB
}

func NewSalaryConfigRepository(db *database.DB) payroll.ConfigRepository {
	return &salaryConfigRepository{db: db}
}

const salaryConfigSelectColumns = `
	sc.id, sc.role_id, sc.base_salary, sc.standard_working_days,
	sc.attendance_allowance, sc.transportation_allowance, sc.meal_allowance, sc.phone_allowance,
	sc.enable_commission, sc.commission_rate_1,
	sc.commission_threshold_2, sc.commission_rate_2,
	sc.commission_threshold_3, sc.commission_rate_3,
	sc.commission_threshold_4, sc.commission_rate_4,
	sc.kpi_bonus_amount,
	sc.social_insurance_rate, sc.health_insurance_rate, sc.unemployment_insurance_rate,
	sc.is_active, sc.created_at, sc.updated_at,
	r.name as role_name, r.slug as role_slug
`

func scanSalaryConfig(row pgx.Row) (payroll.SalaryConfiguration, error) {
	var c payroll.SalaryConfiguration
	err := row.Scan(
		&c.ID, &c.RoleID, &c.BaseSalary, &c.StandardWorkingDays,
		&c.AttendanceAllowance, &c.TransportationAllowance, &c.MealAllowance, &c.PhoneAllowance,
		&c.EnableCommission, &c.CommissionRate1,
		&c.CommissionThreshold2, &c.CommissionRate2,
		&c.CommissionThreshold3, &c.CommissionRate3,
		&c.CommissionThreshold4, &c.CommissionRate4,
		&c.KPIBonusAmount,
		&c.SocialInsuranceRate, &c.HealthInsuranceRate, &c.UnemploymentInsuranceRate,
		&c.IsActive, &c.CreatedAt, &c.UpdatedAt,
		&c.RoleName, &c.RoleSlug,
	)
	return c, err
}

func (r *salaryConfigRepository) Create(ctx context.Context, config payroll.SalaryConfiguration) (payroll.SalaryConfiguration, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO salary_configurations (
			role_id, base_salary, standard_working_days,
			attendance_allowance, transportation_allowance, meal_allowance, phone_allowance,
			enable_commission, commission_rate_1,
			commission_threshold_2, commission_rate_2,
			commission_threshold_3, commission_rate_3,
			commission_threshold_4, commission_rate_4,
			kpi_bonus_amount,
			social_insurance_rate, health_insurance_rate, unemployment_insurance_rate,
			is_active
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
		RETURNING id
	`

	var id string
	err := q.QueryRow(ctx, query,
		config.RoleID, config.BaseSalary, config.StandardWorkingDays,
		config.AttendanceAllowance, config.TransportationAllowance, config.MealAllowance, config.PhoneAllowance,
		config.EnableCommission, config.CommissionRate1,
		config.CommissionThreshold2, config.CommissionRate2,
		config.CommissionThreshold3, config.CommissionRate3,
		config.CommissionThreshold4, config.CommissionRate4,
		config.KPIBonusAmount,
		config.SocialInsuranceRate, config.HealthInsuranceRate, config.UnemploymentInsuranceRate,
		config.IsActive,
	).Scan(&id)
	if err != nil {
		if strings.Contains(err.Error(), "uk_salary_config_role_active") {
			return payroll.SalaryConfiguration{}, payroll.ErrConfigExists
		}
		if strings.Contains(err.Error(), "fk_salary_config_role") {
			return payroll.SalaryConfiguration{}, payroll.ErrNoRole
		}
		return payroll.SalaryConfiguration{}, fmt.Errorf("failed to create salary configuration: %w", err)
	}

	return r.GetByID(ctx, id)
}

func (r *salaryConfigRepository) GetByID(ctx context.Context, id string) (payroll.SalaryConfiguration, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + salaryConfigSelectColumns + `
		FROM salary_configurations sc
		JOIN roles r ON sc.role_id = r.id
		WHERE sc.id = $1
	`

	c, err := scanSalaryConfig(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.SalaryConfiguration{}, payroll.ErrConfigNotFound
		}
		return payroll.SalaryConfiguration{}, fmt.Errorf("failed to get salary configuration: %w", err)
	}

	return c, nil
}

func (r *salaryConfigRepository) GetActiveByRole(ctx context.Context, roleID string) (payroll.SalaryConfiguration, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + salaryConfigSelectColumns + `
		FROM salary_configurations sc
		JOIN roles r ON sc.role_id = r.id
		WHERE sc.role_id = $1 AND sc.is_active = true
	`

	c, err := scanSalaryConfig(q.QueryRow(ctx, query, roleID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.SalaryConfiguration{}, payroll.ErrConfigNotFound
		}
		return payroll.SalaryConfiguration{}, fmt.Errorf("failed to get active salary configuration: %w", err)
	}

	return c, nil
}

func (r *salaryConfigRepository) List(ctx context.Context, activeOnly bool) ([]payroll.SalaryConfiguration, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + salaryConfigSelectColumns + `
		FROM salary_configurations sc
		JOIN roles r ON sc.role_id = r.id
	`
	if activeOnly {
		query += " WHERE sc.is_active = true"
	}
	query += " ORDER BY r.level DESC, r.name"

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list salary configurations: %w", err)
	}
	defer rows.Close()

	var configs []payroll.SalaryConfiguration
	for rows.Next() {
		c, err := scanSalaryConfig(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan salary configuration: %w", err)
		}
		configs = append(configs, c)
	}

	return configs, nil
}

func (r *salaryConfigRepository) Update(ctx context.Context, id string, patch payroll.SalaryConfigPatch) error {
	q := GetQuerier(ctx, r.db)

	setParts := []string{"updated_at = NOW()"}
	args := []interface{}{id}
	argIdx := 2

	addSet := func(column string, value interface{}) {
		setParts = append(setParts, fmt.Sprintf("%s = $%d", column, argIdx))
		args = append(args, value)
		argIdx++
	}

	if patch.BaseSalary != nil {
		addSet("base_salary", *patch.BaseSalary)
	}
	if patch.StandardWorkingDays != nil {
		addSet("standard_working_days", *patch.StandardWorkingDays)
	}
	if patch.AttendanceAllowance != nil {
		addSet("attendance_allowance", *patch.AttendanceAllowance)
	}
	if patch.TransportationAllowance != nil {
		addSet("transportation_allowance", *patch.TransportationAllowance)
	}
	if patch.MealAllowance != nil {
		addSet("meal_allowance", *patch.MealAllowance)
	}
	if patch.PhoneAllowance != nil {
		addSet("phone_allowance", *patch.PhoneAllowance)
	}
	if patch.EnableCommission != nil {
		addSet("enable_commission", *patch.EnableCommission)
	}
	if patch.CommissionRate1 != nil {
		addSet("commission_rate_1", *patch.CommissionRate1)
	}
	if patch.CommissionThreshold2 != nil {
		addSet("commission_threshold_2", *patch.CommissionThreshold2)
	}
	if patch.CommissionRate2 != nil {
		addSet("commission_rate_2", *patch.CommissionRate2)
	}
	if patch.CommissionThreshold3 != nil {
		addSet("commission_threshold_3", *patch.CommissionThreshold3)
	}
	if patch.CommissionRate3 != nil {
		addSet("commission_rate_3", *patch.CommissionRate3)
	}
	if patch.CommissionThreshold4 != nil {
		addSet("commission_threshold_4", *patch.CommissionThreshold4)
	}
	if patch.CommissionRate4 != nil {
		addSet("commission_rate_4", *patch.CommissionRate4)
	}
	if patch.KPIBonusAmount != nil {
		addSet("kpi_bonus_amount", *patch.KPIBonusAmount)
	}
	if patch.SocialInsuranceRate != nil {
		addSet("social_insurance_rate", *patch.SocialInsuranceRate)
	}
	if patch.HealthInsuranceRate != nil {
		addSet("health_insurance_rate", *patch.HealthInsuranceRate)
	}
	if patch.UnemploymentInsuranceRate != nil {
		addSet("unemployment_insurance_rate", *patch.UnemploymentInsuranceRate)
	}

	query := fmt.Sprintf(`
		UPDATE salary_configurations
		SET %s
		WHERE id = $1
		RETURNING id
	`, strings.Join(setParts, ", "))

	var updatedID string
	err := q.QueryRow(ctx, query, args...).Scan(&updatedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.ErrConfigNotFound
		}
		return fmt.Errorf("failed to update salary configuration: %w", err)
	}

	return nil
}

func (r *salaryConfigRepository) Deactivate(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	query := `UPDATE salary_configurations SET is_active = false, updated_at = NOW() WHERE id = $1 RETURNING id`

	var deactivatedID string
	err := q.QueryRow(ctx, query, id).Scan(&deactivatedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.ErrConfigNotFound
		}
		return fmt.Errorf("failed to deactivate salary configuration: %w", err)
	}

	return nil
}
