package payroll

import "context"

// ConfigRepository defines data access for salary configurations.
type ConfigRepository interface {
	Create(ctx context.Context, config SalaryConfiguration) (SalaryConfiguration, error)
	GetByID(ctx context.Context, id string) (SalaryConfiguration, error)
	GetActiveByRole(ctx context.Context, roleID string) (SalaryConfiguration, error)
	List(ctx context.Context, activeOnly bool) ([]SalaryConfiguration, error)
	Update(ctx context.Context, id string, patch SalaryConfigPatch) error
	Deactivate(ctx context.Context, id string) error
}

// Repository defines data access for payroll records. Create enforces the
// (user_id, year, month) uniqueness invariant and returns ErrPayrollExists
// when a concurrent writer got there first.
type Repository interface {
	Create(ctx context.Context, record PayrollRecord) (PayrollRecord, error)
	GetByID(ctx context.Context, id string) (PayrollRecord, error)
	GetByUserPeriod(ctx context.Context, userID string, year, month int) (PayrollRecord, error)
	List(ctx context.Context, filter Filter) ([]PayrollRecord, error)
	UpdateStatus(ctx context.Context, id string, status PayrollStatus, notes *string) (PayrollRecord, error)
	Delete(ctx context.Context, id string) error
	GetSummary(ctx context.Context, year, month int) (Summary, error)

	// CreateAdjustment persists the adjustment row and the recomputed
	// ad-hoc amounts on the record in a single transaction; a failure
	// leaves neither behind.
	CreateAdjustment(ctx context.Context, adj PayrollAdjustment, amounts AdhocAmounts) (PayrollRecord, error)
	ListAdjustments(ctx context.Context, payrollID string) ([]PayrollAdjustment, error)
}
