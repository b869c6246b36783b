package postgresql

import (
	"context"
	"fmt"
	"strings"

	"github.com/haisanviet/backoffice-go/internal/domain/payroll"
	"github.com/haisanviet/backoffice-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type payrollRepository struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.Repository {
	return &payrollRepository{db: db}
}

const payrollSelectColumns = `
	pr.id, pr.user_id, pr.year, pr.month,
	pr.base_salary, pr.working_days, pr.standard_working_days, pr.actual_base_salary,
	pr.attendance_allowance, pr.transportation_allowance, pr.meal_allowance, pr.phone_allowance, pr.total_allowances,
	pr.sales_commission, pr.sales_revenue, pr.kpi_score, pr.kpi_bonus, pr.other_bonus, pr.total_bonuses,
	pr.gross_salary,
	pr.social_insurance, pr.health_insurance, pr.unemployment_insurance, pr.total_insurance,
	pr.taxable_income, pr.personal_deduction, pr.dependent_deduction, pr.personal_income_tax,
	pr.advance_payment, pr.penalty, pr.other_deduction, pr.total_deductions,
	pr.net_salary,
	pr.status, pr.notes, pr.approved_at, pr.paid_at, pr.created_at, pr.updated_at,
	u.first_name || ' ' || u.last_name as user_name, u.email as user_email, r.name as role_name
`

const payrollJoinUser = `
	FROM payroll_records pr
	JOIN users u ON pr.user_id = u.id
	LEFT JOIN LATERAL (
		SELECT ro.name
		FROM user_roles ur
		JOIN roles ro ON ur.role_id = ro.id
		WHERE ur.user_id = u.id AND ur.is_active = true AND ro.is_active = true
		ORDER BY ro.level DESC
		LIMIT 1
	) r ON true
`

func scanPayrollRecord(row pgx.Row) (payroll.PayrollRecord, error) {
	var rec payroll.PayrollRecord
	err := row.Scan(
		&rec.ID, &rec.UserID, &rec.Year, &rec.Month,
		&rec.BaseSalary, &rec.WorkingDays, &rec.StandardWorkingDays, &rec.ActualBaseSalary,
		&rec.AttendanceAllowance, &rec.TransportationAllowance, &rec.MealAllowance, &rec.PhoneAllowance, &rec.TotalAllowances,
		&rec.SalesCommission, &rec.SalesRevenue, &rec.KPIScore, &rec.KPIBonus, &rec.OtherBonus, &rec.TotalBonuses,
		&rec.GrossSalary,
		&rec.SocialInsurance, &rec.HealthInsurance, &rec.UnemploymentInsurance, &rec.TotalInsurance,
		&rec.TaxableIncome, &rec.PersonalDeduction, &rec.DependentDeduction, &rec.PersonalIncomeTax,
		&rec.AdvancePayment, &rec.Penalty, &rec.OtherDeduction, &rec.TotalDeductions,
		&rec.NetSalary,
		&rec.Status, &rec.Notes, &rec.ApprovedAt, &rec.PaidAt, &rec.CreatedAt, &rec.UpdatedAt,
		&rec.UserName, &rec.UserEmail, &rec.RoleName,
	)
	return rec, err
}

func (r *payrollRepository) Create(ctx context.Context, record payroll.PayrollRecord) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO payroll_records (
			user_id, year, month,
			base_salary, working_days, standard_working_days, actual_base_salary,
			attendance_allowance, transportation_allowance, meal_allowance, phone_allowance, total_allowances,
			sales_commission, sales_revenue, kpi_score, kpi_bonus, other_bonus, total_bonuses,
			gross_salary,
			social_insurance, health_insurance, unemployment_insurance, total_insurance,
			taxable_income, personal_deduction, dependent_deduction, personal_income_tax,
			advance_payment, penalty, other_deduction, total_deductions,
			net_salary,
			status, notes
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18,
			$19, $20, $21, $22, $23, $24, $25, $26, $27, $28, $29, $30, $31, $32, $33, $34
		)
		RETURNING id
	`

	var id string
	err := q.QueryRow(ctx, query,
		record.UserID, record.Year, record.Month,
		record.BaseSalary, record.WorkingDays, record.StandardWorkingDays, record.ActualBaseSalary,
		record.AttendanceAllowance, record.TransportationAllowance, record.MealAllowance, record.PhoneAllowance, record.TotalAllowances,
		record.SalesCommission, record.SalesRevenue, record.KPIScore, record.KPIBonus, record.OtherBonus, record.TotalBonuses,
		record.GrossSalary,
		record.SocialInsurance, record.HealthInsurance, record.UnemploymentInsurance, record.TotalInsurance,
		record.TaxableIncome, record.PersonalDeduction, record.DependentDeduction, record.PersonalIncomeTax,
		record.AdvancePayment, record.Penalty, record.OtherDeduction, record.TotalDeductions,
		record.NetSalary,
		record.Status, record.Notes,
	).Scan(&id)
	if err != nil {
		if strings.Contains(err.Error(), "uk_payroll_user_period") {
			return payroll.PayrollRecord{}, payroll.ErrPayrollExists
		}
		return payroll.PayrollRecord{}, fmt.Errorf("failed to create payroll record: %w", err)
	}

	return r.GetByID(ctx, id)
}

func (r *payrollRepository) GetByID(ctx context.Context, id string) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + payrollSelectColumns + payrollJoinUser + ` WHERE pr.id = $1`

	rec, err := scanPayrollRecord(q.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.PayrollRecord{}, payroll.ErrPayrollNotFound
		}
		return payroll.PayrollRecord{}, fmt.Errorf("failed to get payroll record: %w", err)
	}

	return rec, nil
}

func (r *payrollRepository) GetByUserPeriod(ctx context.Context, userID string, year, month int) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + payrollSelectColumns + payrollJoinUser + `
		WHERE pr.user_id = $1 AND pr.year = $2 AND pr.month = $3`

	rec, err := scanPayrollRecord(q.QueryRow(ctx, query, userID, year, month))
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.PayrollRecord{}, payroll.ErrPayrollNotFound
		}
		return payroll.PayrollRecord{}, fmt.Errorf("failed to get payroll record: %w", err)
	}

	return rec, nil
}

func (r *payrollRepository) List(ctx context.Context, filter payroll.Filter) ([]payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + payrollSelectColumns + payrollJoinUser + ` WHERE 1=1`
	args := []interface{}{}
	argIdx := 1

	if filter.Year != nil {
		query += fmt.Sprintf(" AND pr.year = $%d", argIdx)
		args = append(args, *filter.Year)
		argIdx++
	}
	if filter.Month != nil {
		query += fmt.Sprintf(" AND pr.month = $%d", argIdx)
		args = append(args, *filter.Month)
		argIdx++
	}
	if filter.Status != nil {
		query += fmt.Sprintf(" AND pr.status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}
	if filter.UserID != nil {
		query += fmt.Sprintf(" AND pr.user_id = $%d", argIdx)
		args = append(args, *filter.UserID)
		argIdx++
	}
	query += " ORDER BY pr.year DESC, pr.month DESC, u.first_name"

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll records: %w", err)
	}
	defer rows.Close()

	var records []payroll.PayrollRecord
	for rows.Next() {
		rec, err := scanPayrollRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payroll record: %w", err)
		}
		records = append(records, rec)
	}

	return records, nil
}

func (r *payrollRepository) UpdateStatus(ctx context.Context, id string, status payroll.PayrollStatus, notes *string) (payroll.PayrollRecord, error) {
	q := GetQuerier(ctx, r.db)

	setParts := []string{"status = $2", "updated_at = NOW()"}
	args := []interface{}{id, status}
	argIdx := 3

	// Transition timestamps are stamped here so they survive later edits
	switch status {
	case payroll.PayrollStatusApproved:
		setParts = append(setParts, "approved_at = NOW()")
	case payroll.PayrollStatusPaid:
		setParts = append(setParts, "paid_at = NOW()")
	}

	if notes != nil {
		setParts = append(setParts, fmt.Sprintf("notes = $%d", argIdx))
		args = append(args, *notes)
		argIdx++
	}

	query := fmt.Sprintf(`
		UPDATE payroll_records
		SET %s
		WHERE id = $1
		RETURNING id
	`, strings.Join(setParts, ", "))

	var updatedID string
	err := q.QueryRow(ctx, query, args...).Scan(&updatedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.PayrollRecord{}, payroll.ErrPayrollNotFound
		}
		return payroll.PayrollRecord{}, fmt.Errorf("failed to update payroll status: %w", err)
	}

	return r.GetByID(ctx, id)
}

func (r *payrollRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	query := `DELETE FROM payroll_records WHERE id = $1 RETURNING id`

	var deletedID string
	err := q.QueryRow(ctx, query, id).Scan(&deletedID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return payroll.ErrPayrollNotFound
		}
		return fmt.Errorf("failed to delete payroll record: %w", err)
	}

	return nil
}

func (r *payrollRepository) GetSummary(ctx context.Context, year, month int) (payroll.Summary, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT
			COUNT(*) as total_employees,
			COALESCE(SUM(gross_salary), 0) as total_gross_salary,
			COALESCE(SUM(net_salary), 0) as total_net_salary,
			COALESCE(SUM(total_insurance), 0) as total_insurance,
			COALESCE(SUM(personal_income_tax), 0) as total_tax,
			COALESCE(SUM(sales_commission), 0) as total_commission,
			COALESCE(SUM(kpi_bonus), 0) as total_kpi_bonus,
			COUNT(*) FILTER (WHERE status = 'draft') as draft_count,
			COUNT(*) FILTER (WHERE status = 'pending') as pending_count,
			COUNT(*) FILTER (WHERE status = 'approved') as approved_count,
			COUNT(*) FILTER (WHERE status = 'paid') as paid_count
		FROM payroll_records
		WHERE year = $1 AND month = $2
	`

	var summary payroll.Summary
	err := q.QueryRow(ctx, query, year, month).Scan(
		&summary.TotalEmployees, &summary.TotalGrossSalary, &summary.TotalNetSalary,
		&summary.TotalInsurance, &summary.TotalTax, &summary.TotalCommission, &summary.TotalKPIBonus,
		&summary.DraftCount, &summary.PendingCount, &summary.ApprovedCount, &summary.PaidCount,
	)
	if err != nil {
		return payroll.Summary{}, fmt.Errorf("failed to get payroll summary: %w", err)
	}

	summary.Year = year
	summary.Month = month

	return summary, nil
}

// ========== ADJUSTMENTS ==========

func (r *payrollRepository) CreateAdjustment(ctx context.Context, adj payroll.PayrollAdjustment, amounts payroll.AdhocAmounts) (payroll.PayrollRecord, error) {
	// The adjustment row and the record's recomputed amounts commit
	// together; a failure rolls back both.
	err := WithTransaction(ctx, r.db, func(ctx context.Context) error {
		q := GetQuerier(ctx, r.db)

		insert := `
			INSERT INTO payroll_adjustments (payroll_id, type, amount, reason, created_by)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id
		`

		var adjustmentID string
		err := q.QueryRow(ctx, insert,
			adj.PayrollID, adj.Type, adj.Amount, adj.Reason, adj.CreatedBy,
		).Scan(&adjustmentID)
		if err != nil {
			if strings.Contains(err.Error(), "fk_payroll_adjustments_payroll") {
				return payroll.ErrPayrollNotFound
			}
			return fmt.Errorf("failed to create payroll adjustment: %w", err)
		}

		update := `
			UPDATE payroll_records
			SET other_bonus = $2, other_deduction = $3, total_bonuses = $4,
				gross_salary = $5, total_deductions = $6, net_salary = $7,
				updated_at = NOW()
			WHERE id = $1
			RETURNING id
		`

		var updatedID string
		err = q.QueryRow(ctx, update,
			adj.PayrollID, amounts.OtherBonus, amounts.OtherDeduction, amounts.TotalBonuses,
			amounts.GrossSalary, amounts.TotalDeductions, amounts.NetSalary,
		).Scan(&updatedID)
		if err != nil {
			if err == pgx.ErrNoRows {
				return payroll.ErrPayrollNotFound
			}
			return fmt.Errorf("failed to update payroll amounts: %w", err)
		}

		return nil
	})
	if err != nil {
		return payroll.PayrollRecord{}, err
	}

	return r.GetByID(ctx, adj.PayrollID)
}

func (r *payrollRepository) ListAdjustments(ctx context.Context, payrollID string) ([]payroll.PayrollAdjustment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, payroll_id, type, amount, reason, created_by, created_at
		FROM payroll_adjustments
		WHERE payroll_id = $1
		ORDER BY created_at
	`

	rows, err := q.Query(ctx, query, payrollID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll adjustments: %w", err)
	}
	defer rows.Close()

	var adjustments []payroll.PayrollAdjustment
	for rows.Next() {
		var adj payroll.PayrollAdjustment
		if err := rows.Scan(
			&adj.ID, &adj.PayrollID, &adj.Type, &adj.Amount,
			&adj.Reason, &adj.CreatedBy, &adj.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan payroll adjustment: %w", err)
		}
		adjustments = append(adjustments, adj)
	}

	return adjustments, nil
}
