package payroll

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalaryConfiguration - Per-role compensation config. At most one active row per role.
type SalaryConfiguration struct {
	ID                  string
	RoleID              string
	BaseSalary          decimal.Decimal
	StandardWorkingDays int

	// Flat monthly allowances
	AttendanceAllowance     decimal.Decimal
	TransportationAllowance decimal.Decimal
	MealAllowance           decimal.Decimal
	PhoneAllowance          decimal.Decimal

	// Revenue commission tiers. Thresholds are the lower bounds of tiers 2-4;
	// tier selection is strict less-than against each threshold.
	EnableCommission     bool
	CommissionRate1      decimal.Decimal
	CommissionThreshold2 decimal.Decimal
	CommissionRate2      decimal.Decimal
	CommissionThreshold3 decimal.Decimal
	CommissionRate3      decimal.Decimal
	CommissionThreshold4 decimal.Decimal
	CommissionRate4      decimal.Decimal

	KPIBonusAmount decimal.Decimal

	// Statutory insurance percentage rates, applied to the nominal base salary
	SocialInsuranceRate       decimal.Decimal
	HealthInsuranceRate       decimal.Decimal
	UnemploymentInsuranceRate decimal.Decimal

	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time

	// Joined fields
	RoleName *string
	RoleSlug *string
}

// PayrollStatus enum
type PayrollStatus string

const (
	PayrollStatusDraft     PayrollStatus = "draft"
	PayrollStatusPending   PayrollStatus = "pending"
	PayrollStatusApproved  PayrollStatus = "approved"
	PayrollStatusPaid      PayrollStatus = "paid"
	PayrollStatusCancelled PayrollStatus = "cancelled"
)

// CanTransitionTo reports whether the status change is allowed.
// draft -> pending|approved|cancelled, pending -> approved|cancelled,
// approved -> paid|cancelled. paid and cancelled are terminal.
func (s PayrollStatus) CanTransitionTo(next PayrollStatus) bool {
	switch s {
	case PayrollStatusDraft:
		return next == PayrollStatusPending || next == PayrollStatusApproved || next == PayrollStatusCancelled
	case PayrollStatusPending:
		return next == PayrollStatusApproved || next == PayrollStatusCancelled
	case PayrollStatusApproved:
		return next == PayrollStatusPaid || next == PayrollStatusCancelled
	default:
		return false
	}
}

// IsValidStatus reports whether s names a known payroll status.
func IsValidStatus(s string) bool {
	switch PayrollStatus(s) {
	case PayrollStatusDraft, PayrollStatusPending, PayrollStatusApproved, PayrollStatusPaid, PayrollStatusCancelled:
		return true
	}
	return false
}

// PayrollRecord - One computed payroll per (user, year, month).
type PayrollRecord struct {
	ID     string
	UserID string
	Year   int
	Month  int

	// Base
	BaseSalary          decimal.Decimal
	WorkingDays         decimal.Decimal
	StandardWorkingDays int
	ActualBaseSalary    decimal.Decimal

	// Allowances
	AttendanceAllowance     decimal.Decimal
	TransportationAllowance decimal.Decimal
	MealAllowance           decimal.Decimal
	PhoneAllowance          decimal.Decimal
	TotalAllowances         decimal.Decimal

	// Bonuses
	SalesCommission decimal.Decimal
	SalesRevenue    decimal.Decimal
	KPIScore        decimal.Decimal
	KPIBonus        decimal.Decimal
	OtherBonus      decimal.Decimal
	TotalBonuses    decimal.Decimal

	GrossSalary decimal.Decimal

	// Insurance
	SocialInsurance       decimal.Decimal
	HealthInsurance       decimal.Decimal
	UnemploymentInsurance decimal.Decimal
	TotalInsurance        decimal.Decimal

	// Tax
	TaxableIncome      decimal.Decimal
	PersonalDeduction  decimal.Decimal
	DependentDeduction decimal.Decimal
	PersonalIncomeTax  decimal.Decimal

	// Other deductions
	AdvancePayment  decimal.Decimal
	Penalty         decimal.Decimal
	OtherDeduction  decimal.Decimal
	TotalDeductions decimal.Decimal

	NetSalary decimal.Decimal

	Status     PayrollStatus
	Notes      *string
	ApprovedAt *time.Time
	PaidAt     *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// Joined fields
	UserName  *string
	UserEmail *string
	RoleName  *string
}

// AdjustmentType enum
type AdjustmentType string

const (
	AdjustmentTypeBonus     AdjustmentType = "bonus"
	AdjustmentTypeDeduction AdjustmentType = "deduction"
)

// PayrollAdjustment - Ad-hoc bonus or deduction attached to a draft record.
type PayrollAdjustment struct {
	ID        string
	PayrollID string
	Type      AdjustmentType
	Amount    decimal.Decimal
	Reason    string
	CreatedBy string
	CreatedAt time.Time
}
