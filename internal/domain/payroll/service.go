package payroll

import "context"

// Service is the payroll engine surface consumed by the HTTP layer.
type Service interface {
	// Calculation
	Calculate(ctx context.Context, req CalculateRequest) (RecordResponse, error)
	CalculateBulk(ctx context.Context, req BulkCalculateRequest) (BulkCalculateResponse, error)

	// Records
	GetRecord(ctx context.Context, id string) (RecordResponse, error)
	ListRecords(ctx context.Context, filter Filter) ([]RecordResponse, error)
	UpdateStatus(ctx context.Context, id string, req UpdateStatusRequest) (RecordResponse, error)
	ApproveRecords(ctx context.Context, req BatchStatusRequest) (BatchStatusResponse, error)
	MarkRecordsPaid(ctx context.Context, req BatchStatusRequest) (BatchStatusResponse, error)
	DeleteRecord(ctx context.Context, id string) error

	// Adjustments
	AddAdjustment(ctx context.Context, payrollID string, actorID string, req CreateAdjustmentRequest) (RecordResponse, error)
	ListAdjustments(ctx context.Context, payrollID string) ([]AdjustmentResponse, error)

	// Summaries
	GetSummary(ctx context.Context, year, month int) (Summary, error)
	GetEmployeesSummary(ctx context.Context, year, month int) ([]EmployeeSummary, error)

	// Salary configurations
	CreateConfig(ctx context.Context, req CreateSalaryConfigRequest) (SalaryConfigResponse, error)
	GetConfig(ctx context.Context, id string) (SalaryConfigResponse, error)
	ListConfigs(ctx context.Context, activeOnly bool) ([]SalaryConfigResponse, error)
	UpdateConfig(ctx context.Context, id string, patch SalaryConfigPatch) (SalaryConfigResponse, error)
	DeactivateConfig(ctx context.Context, id string) error
}
