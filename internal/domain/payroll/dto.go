package payroll

import (
	"time"

	"github.com/haisanviet/backoffice-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========== CALCULATION DTOs ==========

type CalculateRequest struct {
	UserID         string          `json:"user_id"`
	Year           int             `json:"year"`
	Month          int             `json:"month"`
	Dependents     int             `json:"dependents"`
	AdvancePayment decimal.Decimal `json:"advance_payment"`
	Penalty        decimal.Decimal `json:"penalty"`
	OtherBonus     decimal.Decimal `json:"other_bonus"`
	OtherDeduction decimal.Decimal `json:"other_deduction"`
	Notes          string          `json:"notes"`
}

func (r *CalculateRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.UserID == "" {
		errs = append(errs, validator.ValidationError{Field: "user_id", Message: "is required"})
	}
	if r.Month < 1 || r.Month > 12 {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "must be between 1 and 12"})
	}
	if r.Year < 2020 {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "must be 2020 or later"})
	}
	if r.Dependents < 0 {
		errs = append(errs, validator.ValidationError{Field: "dependents", Message: "must be non-negative"})
	}
	if r.AdvancePayment.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "advance_payment", Message: "must be non-negative"})
	}
	if r.Penalty.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "penalty", Message: "must be non-negative"})
	}
	if r.OtherBonus.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "other_bonus", Message: "must be non-negative"})
	}
	if r.OtherDeduction.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "other_deduction", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type BulkCalculateRequest struct {
	UserIDs []string `json:"user_ids,omitempty"` // Empty = all active payroll-eligible users
	Year    int      `json:"year"`
	Month   int      `json:"month"`
}

func (r *BulkCalculateRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Month < 1 || r.Month > 12 {
		errs = append(errs, validator.ValidationError{Field: "month", Message: "must be between 1 and 12"})
	}
	if r.Year < 2020 {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "must be 2020 or later"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type BulkResult struct {
	UserID    string          `json:"user_id"`
	UserName  string          `json:"user_name"`
	NetSalary decimal.Decimal `json:"net_salary"`
}

type BulkFailure struct {
	UserID   string `json:"user_id"`
	UserName string `json:"user_name"`
	Reason   string `json:"reason"`
}

type BulkCalculateResponse struct {
	Success []BulkResult  `json:"success"`
	Failed  []BulkFailure `json:"failed"`
	Total   int           `json:"total"`
}

// ========== STATUS DTOs ==========

type UpdateStatusRequest struct {
	Status string  `json:"status"`
	Notes  *string `json:"notes,omitempty"`
}

func (r *UpdateStatusRequest) Validate() error {
	var errs validator.ValidationErrors

	if !IsValidStatus(r.Status) {
		errs = append(errs, validator.ValidationError{Field: "status", Message: "must be one of draft, pending, approved, paid, cancelled"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type BatchStatusRequest struct {
	RecordIDs []string `json:"record_ids"`
	Notes     *string  `json:"notes,omitempty"`
}

func (r *BatchStatusRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.RecordIDs) == 0 {
		errs = append(errs, validator.ValidationError{Field: "record_ids", Message: "at least one record is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type BatchStatusResponse struct {
	UpdatedCount int `json:"updated_count"`
	Total        int `json:"total"`
}

// ========== ADJUSTMENT DTOs ==========

type CreateAdjustmentRequest struct {
	Type   string          `json:"type"` // "bonus" or "deduction"
	Amount decimal.Decimal `json:"amount"`
	Reason string          `json:"reason"`
}

func (r *CreateAdjustmentRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Type != string(AdjustmentTypeBonus) && r.Type != string(AdjustmentTypeDeduction) {
		errs = append(errs, validator.ValidationError{Field: "type", Message: "must be 'bonus' or 'deduction'"})
	}
	if !r.Amount.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "amount", Message: "must be positive"})
	}
	if validator.IsEmpty(r.Reason) {
		errs = append(errs, validator.ValidationError{Field: "reason", Message: "is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// AdhocAmounts carries the caller-supplied components that an adjustment
// re-derives on a draft record. Totals and net are recomputed from them.
type AdhocAmounts struct {
	OtherBonus      decimal.Decimal
	OtherDeduction  decimal.Decimal
	TotalBonuses    decimal.Decimal
	GrossSalary     decimal.Decimal
	TotalDeductions decimal.Decimal
	NetSalary       decimal.Decimal
}

// ========== SALARY CONFIG DTOs ==========

type CreateSalaryConfigRequest struct {
	RoleID              string          `json:"role_id"`
	BaseSalary          decimal.Decimal `json:"base_salary"`
	StandardWorkingDays int             `json:"standard_working_days"`

	AttendanceAllowance     decimal.Decimal `json:"attendance_allowance"`
	TransportationAllowance decimal.Decimal `json:"transportation_allowance"`
	MealAllowance           decimal.Decimal `json:"meal_allowance"`
	PhoneAllowance          decimal.Decimal `json:"phone_allowance"`

	EnableCommission     bool             `json:"enable_commission"`
	CommissionRate1      *decimal.Decimal `json:"commission_rate_1,omitempty"`
	CommissionThreshold2 *decimal.Decimal `json:"commission_threshold_2,omitempty"`
	CommissionRate2      *decimal.Decimal `json:"commission_rate_2,omitempty"`
	CommissionThreshold3 *decimal.Decimal `json:"commission_threshold_3,omitempty"`
	CommissionRate3      *decimal.Decimal `json:"commission_rate_3,omitempty"`
	CommissionThreshold4 *decimal.Decimal `json:"commission_threshold_4,omitempty"`
	CommissionRate4      *decimal.Decimal `json:"commission_rate_4,omitempty"`

	KPIBonusAmount decimal.Decimal `json:"kpi_bonus_amount"`

	SocialInsuranceRate       *decimal.Decimal `json:"social_insurance_rate,omitempty"`
	HealthInsuranceRate       *decimal.Decimal `json:"health_insurance_rate,omitempty"`
	UnemploymentInsuranceRate *decimal.Decimal `json:"unemployment_insurance_rate,omitempty"`
}

func (r *CreateSalaryConfigRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.RoleID == "" {
		errs = append(errs, validator.ValidationError{Field: "role_id", Message: "is required"})
	}
	if !r.BaseSalary.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "base_salary", Message: "must be positive"})
	}
	// Zero standard days would divide the pro-ration; reject here, never downstream.
	if r.StandardWorkingDays <= 0 {
		errs = append(errs, validator.ValidationError{Field: "standard_working_days", Message: "must be positive"})
	}
	if r.KPIBonusAmount.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "kpi_bonus_amount", Message: "must be non-negative"})
	}
	if r.CommissionThreshold2 != nil && r.CommissionThreshold3 != nil && !r.CommissionThreshold2.LessThan(*r.CommissionThreshold3) {
		errs = append(errs, validator.ValidationError{Field: "commission_threshold_3", Message: "must be greater than commission_threshold_2"})
	}
	if r.CommissionThreshold3 != nil && r.CommissionThreshold4 != nil && !r.CommissionThreshold3.LessThan(*r.CommissionThreshold4) {
		errs = append(errs, validator.ValidationError{Field: "commission_threshold_4", Message: "must be greater than commission_threshold_3"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// SalaryConfigPatch lists the mutable fields of a configuration. Only non-nil
// fields are applied.
type SalaryConfigPatch struct {
	BaseSalary          *decimal.Decimal `json:"base_salary,omitempty"`
	StandardWorkingDays *int             `json:"standard_working_days,omitempty"`

	AttendanceAllowance     *decimal.Decimal `json:"attendance_allowance,omitempty"`
	TransportationAllowance *decimal.Decimal `json:"transportation_allowance,omitempty"`
	MealAllowance           *decimal.Decimal `json:"meal_allowance,omitempty"`
	PhoneAllowance          *decimal.Decimal `json:"phone_allowance,omitempty"`

	EnableCommission     *bool            `json:"enable_commission,omitempty"`
	CommissionRate1      *decimal.Decimal `json:"commission_rate_1,omitempty"`
	CommissionThreshold2 *decimal.Decimal `json:"commission_threshold_2,omitempty"`
	CommissionRate2      *decimal.Decimal `json:"commission_rate_2,omitempty"`
	CommissionThreshold3 *decimal.Decimal `json:"commission_threshold_3,omitempty"`
	CommissionRate3      *decimal.Decimal `json:"commission_rate_3,omitempty"`
	CommissionThreshold4 *decimal.Decimal `json:"commission_threshold_4,omitempty"`
	CommissionRate4      *decimal.Decimal `json:"commission_rate_4,omitempty"`

	KPIBonusAmount *decimal.Decimal `json:"kpi_bonus_amount,omitempty"`

	SocialInsuranceRate       *decimal.Decimal `json:"social_insurance_rate,omitempty"`
	HealthInsuranceRate       *decimal.Decimal `json:"health_insurance_rate,omitempty"`
	UnemploymentInsuranceRate *decimal.Decimal `json:"unemployment_insurance_rate,omitempty"`
}

func (p *SalaryConfigPatch) Validate() error {
	var errs validator.ValidationErrors

	if p.BaseSalary != nil && !p.BaseSalary.IsPositive() {
		errs = append(errs, validator.ValidationError{Field: "base_salary", Message: "must be positive"})
	}
	if p.StandardWorkingDays != nil && *p.StandardWorkingDays <= 0 {
		errs = append(errs, validator.ValidationError{Field: "standard_working_days", Message: "must be positive"})
	}
	if p.KPIBonusAmount != nil && p.KPIBonusAmount.IsNegative() {
		errs = append(errs, validator.ValidationError{Field: "kpi_bonus_amount", Message: "must be non-negative"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type SalaryConfigResponse struct {
	ID                  string          `json:"id"`
	RoleID              string          `json:"role_id"`
	RoleName            string          `json:"role_name,omitempty"`
	BaseSalary          decimal.Decimal `json:"base_salary"`
	StandardWorkingDays int             `json:"standard_working_days"`

	AttendanceAllowance     decimal.Decimal `json:"attendance_allowance"`
	TransportationAllowance decimal.Decimal `json:"transportation_allowance"`
	MealAllowance           decimal.Decimal `json:"meal_allowance"`
	PhoneAllowance          decimal.Decimal `json:"phone_allowance"`

	EnableCommission     bool            `json:"enable_commission"`
	CommissionRate1      decimal.Decimal `json:"commission_rate_1"`
	CommissionThreshold2 decimal.Decimal `json:"commission_threshold_2"`
	CommissionRate2      decimal.Decimal `json:"commission_rate_2"`
	CommissionThreshold3 decimal.Decimal `json:"commission_threshold_3"`
	CommissionRate3      decimal.Decimal `json:"commission_rate_3"`
	CommissionThreshold4 decimal.Decimal `json:"commission_threshold_4"`
	CommissionRate4      decimal.Decimal `json:"commission_rate_4"`

	KPIBonusAmount decimal.Decimal `json:"kpi_bonus_amount"`

	SocialInsuranceRate       decimal.Decimal `json:"social_insurance_rate"`
	HealthInsuranceRate       decimal.Decimal `json:"health_insurance_rate"`
	UnemploymentInsuranceRate decimal.Decimal `json:"unemployment_insurance_rate"`

	IsActive bool `json:"is_active"`
}

// ========== RECORD DTOs ==========

type Filter struct {
	Year    *int    `json:"year,omitempty"`
	Month   *int    `json:"month,omitempty"`
	Status  *string `json:"status,omitempty"`
	UserID  *string `json:"user_id,omitempty"`
}

type RecordResponse struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	UserName  string `json:"user_name"`
	UserEmail string `json:"user_email"`
	RoleName  string `json:"user_role"`
	Year      int    `json:"year"`
	Month     int    `json:"month"`

	BaseSalary          decimal.Decimal `json:"base_salary"`
	WorkingDays         decimal.Decimal `json:"working_days"`
	StandardWorkingDays int             `json:"standard_working_days"`
	ActualBaseSalary    decimal.Decimal `json:"actual_base_salary"`

	AttendanceAllowance     decimal.Decimal `json:"attendance_allowance"`
	TransportationAllowance decimal.Decimal `json:"transportation_allowance"`
	MealAllowance           decimal.Decimal `json:"meal_allowance"`
	PhoneAllowance          decimal.Decimal `json:"phone_allowance"`
	TotalAllowances         decimal.Decimal `json:"total_allowances"`

	SalesCommission decimal.Decimal `json:"sales_commission"`
	SalesRevenue    decimal.Decimal `json:"sales_revenue"`
	KPIScore        decimal.Decimal `json:"kpi_score"`
	KPIBonus        decimal.Decimal `json:"kpi_bonus"`
	OtherBonus      decimal.Decimal `json:"other_bonus"`
	TotalBonuses    decimal.Decimal `json:"total_bonuses"`

	GrossSalary decimal.Decimal `json:"gross_salary"`

	SocialInsurance       decimal.Decimal `json:"social_insurance"`
	HealthInsurance       decimal.Decimal `json:"health_insurance"`
	UnemploymentInsurance decimal.Decimal `json:"unemployment_insurance"`
	TotalInsurance        decimal.Decimal `json:"total_insurance"`

	TaxableIncome      decimal.Decimal `json:"taxable_income"`
	PersonalDeduction  decimal.Decimal `json:"personal_deduction"`
	DependentDeduction decimal.Decimal `json:"dependent_deduction"`
	PersonalIncomeTax  decimal.Decimal `json:"personal_income_tax"`

	AdvancePayment  decimal.Decimal `json:"advance_payment"`
	Penalty         decimal.Decimal `json:"penalty"`
	OtherDeduction  decimal.Decimal `json:"other_deduction"`
	TotalDeductions decimal.Decimal `json:"total_deductions"`

	NetSalary decimal.Decimal `json:"net_salary"`

	Status     string     `json:"status"`
	Notes      *string    `json:"notes,omitempty"`
	ApprovedAt *time.Time `json:"approved_at,omitempty"`
	PaidAt     *time.Time `json:"paid_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

type AdjustmentResponse struct {
	ID        string          `json:"id"`
	PayrollID string          `json:"payroll_id"`
	Type      string          `json:"type"`
	Amount    decimal.Decimal `json:"amount"`
	Reason    string          `json:"reason"`
	CreatedBy string          `json:"created_by"`
	CreatedAt time.Time       `json:"created_at"`
}

// ========== SUMMARY DTOs ==========

type Summary struct {
	Year             int             `json:"year"`
	Month            int             `json:"month"`
	TotalEmployees   int             `json:"total_employees"`
	TotalGrossSalary decimal.Decimal `json:"total_gross_salary"`
	TotalNetSalary   decimal.Decimal `json:"total_net_salary"`
	TotalInsurance   decimal.Decimal `json:"total_insurance"`
	TotalTax         decimal.Decimal `json:"total_tax"`
	TotalCommission  decimal.Decimal `json:"total_commission"`
	TotalKPIBonus    decimal.Decimal `json:"total_kpi_bonus"`
	DraftCount       int             `json:"draft_count"`
	PendingCount     int             `json:"pending_count"`
	ApprovedCount    int             `json:"approved_count"`
	PaidCount        int             `json:"paid_count"`
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func ToRecordResponse(rec PayrollRecord) RecordResponse {
	return RecordResponse{
		ID:        rec.ID,
		UserID:    rec.UserID,
		UserName:  deref(rec.UserName),
		UserEmail: deref(rec.UserEmail),
		RoleName:  deref(rec.RoleName),
		Year:      rec.Year,
		Month:     rec.Month,

		BaseSalary:          rec.BaseSalary,
		WorkingDays:         rec.WorkingDays,
		StandardWorkingDays: rec.StandardWorkingDays,
		ActualBaseSalary:    rec.ActualBaseSalary,

		AttendanceAllowance:     rec.AttendanceAllowance,
		TransportationAllowance: rec.TransportationAllowance,
		MealAllowance:           rec.MealAllowance,
		PhoneAllowance:          rec.PhoneAllowance,
		TotalAllowances:         rec.TotalAllowances,

		SalesCommission: rec.SalesCommission,
		SalesRevenue:    rec.SalesRevenue,
		KPIScore:        rec.KPIScore,
		KPIBonus:        rec.KPIBonus,
		OtherBonus:      rec.OtherBonus,
		TotalBonuses:    rec.TotalBonuses,

		GrossSalary: rec.GrossSalary,

		SocialInsurance:       rec.SocialInsurance,
		HealthInsurance:       rec.HealthInsurance,
		UnemploymentInsurance: rec.UnemploymentInsurance,
		TotalInsurance:        rec.TotalInsurance,

		TaxableIncome:      rec.TaxableIncome,
		PersonalDeduction:  rec.PersonalDeduction,
		DependentDeduction: rec.DependentDeduction,
		PersonalIncomeTax:  rec.PersonalIncomeTax,

		AdvancePayment:  rec.AdvancePayment,
		Penalty:         rec.Penalty,
		OtherDeduction:  rec.OtherDeduction,
		TotalDeductions: rec.TotalDeductions,

		NetSalary: rec.NetSalary,

		Status:     string(rec.Status),
		Notes:      rec.Notes,
		ApprovedAt: rec.ApprovedAt,
		PaidAt:     rec.PaidAt,
		CreatedAt:  rec.CreatedAt,
	}
}

func ToSalaryConfigResponse(c SalaryConfiguration) SalaryConfigResponse {
	return SalaryConfigResponse{
		ID:                  c.ID,
		RoleID:              c.RoleID,
		RoleName:            deref(c.RoleName),
		BaseSalary:          c.BaseSalary,
		StandardWorkingDays: c.StandardWorkingDays,

		AttendanceAllowance:     c.AttendanceAllowance,
		TransportationAllowance: c.TransportationAllowance,
		MealAllowance:           c.MealAllowance,
		PhoneAllowance:          c.PhoneAllowance,

		EnableCommission:     c.EnableCommission,
		CommissionRate1:      c.CommissionRate1,
		CommissionThreshold2: c.CommissionThreshold2,
		CommissionRate2:      c.CommissionRate2,
		CommissionThreshold3: c.CommissionThreshold3,
		CommissionRate3:      c.CommissionRate3,
		CommissionThreshold4: c.CommissionThreshold4,
		CommissionRate4:      c.CommissionRate4,

		KPIBonusAmount: c.KPIBonusAmount,

		SocialInsuranceRate:       c.SocialInsuranceRate,
		HealthInsuranceRate:       c.HealthInsuranceRate,
		UnemploymentInsuranceRate: c.UnemploymentInsuranceRate,

		IsActive: c.IsActive,
	}
}

func ToAdjustmentResponse(adj PayrollAdjustment) AdjustmentResponse {
	return AdjustmentResponse{
		ID:        adj.ID,
		PayrollID: adj.PayrollID,
		Type:      string(adj.Type),
		Amount:    adj.Amount,
		Reason:    adj.Reason,
		CreatedBy: adj.CreatedBy,
		CreatedAt: adj.CreatedAt,
	}
}

type EmployeeSummary struct {
	UserID       string          `json:"user_id"`
	UserName     string          `json:"user_name"`
	UserEmail    string          `json:"user_email"`
	RoleName     string          `json:"role_name"`
	BaseSalary   decimal.Decimal `json:"base_salary"`
	WorkingDays  decimal.Decimal `json:"working_days"`
	KPIScore     decimal.Decimal `json:"kpi_score"`
	SalesRevenue decimal.Decimal `json:"sales_revenue"`
	NetSalary    decimal.Decimal `json:"net_salary"`
	Status       string          `json:"status"`
	PayrollID    *string         `json:"payroll_id,omitempty"`
}
