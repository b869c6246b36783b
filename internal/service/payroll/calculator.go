package payroll

import (
	"github.com/haisanviet/backoffice-go/internal/domain/order"
	"github.com/haisanviet/backoffice-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
)

// Statutory deduction constants (VND, monthly).
var (
	personalDeduction    = decimal.NewFromInt(11000000)
	dependentDeductionPC = decimal.NewFromInt(4400000)
)

// Progressive tax brackets. Upper bounds with marginal rates; the last
// bracket is open-ended.
var taxBrackets = []struct {
	limit decimal.Decimal
	rate  decimal.Decimal
}{
	{decimal.NewFromInt(5000000), decimal.NewFromFloat(0.05)},
	{decimal.NewFromInt(10000000), decimal.NewFromFloat(0.10)},
	{decimal.NewFromInt(18000000), decimal.NewFromFloat(0.15)},
	{decimal.NewFromInt(32000000), decimal.NewFromFloat(0.20)},
	{decimal.NewFromInt(52000000), decimal.NewFromFloat(0.25)},
	{decimal.NewFromInt(80000000), decimal.NewFromFloat(0.30)},
	{decimal.Decimal{}, decimal.NewFromFloat(0.35)}, // open-ended
}

// KPI scoring targets.
var (
	kpiRevenueTarget = decimal.NewFromInt(50000000)
	kpiOrdersTarget  = decimal.NewFromInt(20)
)

var (
	half    = decimal.NewFromFloat(0.5)
	hundred = decimal.NewFromInt(100)
)

// WorkingDays converts attendance counts to working days. A full day
// counts 1.0, a half day 0.5.
func WorkingDays(fullDays, halfDays int) decimal.Decimal {
	return decimal.NewFromInt(int64(fullDays)).Add(decimal.NewFromInt(int64(halfDays)).Mul(half))
}

// ActualBaseSalary pro-rates the nominal base salary by attendance.
// The division and multiplication run at full precision; rounding to 2
// happens once at the end.
func ActualBaseSalary(cfg payroll.SalaryConfiguration, workingDays decimal.Decimal) decimal.Decimal {
	dailyRate := cfg.BaseSalary.Div(decimal.NewFromInt(int64(cfg.StandardWorkingDays)))
	return dailyRate.Mul(workingDays).Round(2)
}

// AttendanceAllowance applies the tiered attendance bonus. Missing at
// most 1 day keeps the full allowance, up to 3 days keeps 60%, more
// forfeits it. Boundaries are inclusive.
func AttendanceAllowance(cfg payroll.SalaryConfiguration, workingDays decimal.Decimal) decimal.Decimal {
	daysOff := decimal.NewFromInt(int64(cfg.StandardWorkingDays)).Sub(workingDays)

	switch {
	case daysOff.LessThanOrEqual(decimal.NewFromInt(1)):
		return cfg.AttendanceAllowance
	case daysOff.LessThanOrEqual(decimal.NewFromInt(3)):
		return cfg.AttendanceAllowance.Mul(decimal.NewFromFloat(0.6))
	default:
		return decimal.Zero
	}
}

// CommissionRate selects the flat commission rate for the revenue tier.
// Tier boundaries use strict less-than, so revenue exactly at a
// threshold earns the higher tier's rate.
func CommissionRate(cfg payroll.SalaryConfiguration, revenue decimal.Decimal) decimal.Decimal {
	switch {
	case revenue.LessThan(cfg.CommissionThreshold2):
		return cfg.CommissionRate1
	case revenue.LessThan(cfg.CommissionThreshold3):
		return cfg.CommissionRate2
	case revenue.LessThan(cfg.CommissionThreshold4):
		return cfg.CommissionRate3
	default:
		return cfg.CommissionRate4
	}
}

// Commission computes the flat (non-marginal) commission on the whole
// revenue at the selected tier's rate.
func Commission(cfg payroll.SalaryConfiguration, revenue decimal.Decimal) decimal.Decimal {
	if !cfg.EnableCommission {
		return decimal.Zero
	}
	rate := CommissionRate(cfg, revenue)
	return revenue.Mul(rate).Div(hundred).Round(2)
}

// KPIScore computes the weighted performance score from monthly order
// stats and attendance:
//
//	revenue achievement  30 (capped at target)
//	order count          20 (capped at target)
//	collection rate      20
//	completion rate      15
//	attendance rate      15
//
// The collection and attendance terms are not clamped, so overpayment
// or overtime work can push the score past 100.
func KPIScore(cfg payroll.SalaryConfiguration, stats order.Stats, workingDays decimal.Decimal) decimal.Decimal {
	score := decimal.Zero

	// 1. Revenue achievement
	if stats.TotalRevenue.GreaterThanOrEqual(kpiRevenueTarget) {
		score = score.Add(decimal.NewFromInt(30))
	} else {
		score = score.Add(stats.TotalRevenue.Div(kpiRevenueTarget).Mul(decimal.NewFromInt(30)))
	}

	// 2. Order count
	totalOrders := decimal.NewFromInt(int64(stats.TotalOrders))
	if totalOrders.GreaterThanOrEqual(kpiOrdersTarget) {
		score = score.Add(decimal.NewFromInt(20))
	} else {
		score = score.Add(totalOrders.Div(kpiOrdersTarget).Mul(decimal.NewFromInt(20)))
	}

	// 3. Collection rate
	if stats.TotalRevenue.IsPositive() {
		score = score.Add(stats.TotalPaid.Div(stats.TotalRevenue).Mul(decimal.NewFromInt(20)))
	}

	// 4. Completion rate
	if stats.TotalOrders > 0 {
		completed := decimal.NewFromInt(int64(stats.CompletedOrders))
		score = score.Add(completed.Div(totalOrders).Mul(decimal.NewFromInt(15)))
	}

	// 5. Attendance rate
	standardDays := decimal.NewFromInt(int64(cfg.StandardWorkingDays))
	score = score.Add(workingDays.Div(standardDays).Mul(decimal.NewFromInt(15)))

	return score.Round(2)
}

// KPIBonus scales the configured bonus amount by the score treated as a
// percentage.
func KPIBonus(cfg payroll.SalaryConfiguration, score decimal.Decimal) decimal.Decimal {
	return score.Div(hundred).Mul(cfg.KPIBonusAmount).Round(2)
}

// InsuranceAmounts holds the statutory contribution breakdown.
type InsuranceAmounts struct {
	Social       decimal.Decimal
	Health       decimal.Decimal
	Unemployment decimal.Decimal
	Total        decimal.Decimal
}

// Insurance computes statutory contributions off the nominal base
// salary, not the pro-rated one. Each component rounds independently.
func Insurance(cfg payroll.SalaryConfiguration) InsuranceAmounts {
	social := cfg.BaseSalary.Mul(cfg.SocialInsuranceRate).Div(hundred).Round(2)
	health := cfg.BaseSalary.Mul(cfg.HealthInsuranceRate).Div(hundred).Round(2)
	unemployment := cfg.BaseSalary.Mul(cfg.UnemploymentInsuranceRate).Div(hundred).Round(2)

	return InsuranceAmounts{
		Social:       social,
		Health:       health,
		Unemployment: unemployment,
		Total:        social.Add(health).Add(unemployment),
	}
}

// TaxResult holds the income tax computation breakdown.
type TaxResult struct {
	TaxableIncome      decimal.Decimal
	PersonalDeduction  decimal.Decimal
	DependentDeduction decimal.Decimal
	Tax                decimal.Decimal
}

// PersonalIncomeTax applies the progressive bracket schedule to income
// after insurance and family deductions. Each bracket taxes only the
// slice of income inside it; the total rounds once at the end.
func PersonalIncomeTax(grossSalary, totalInsurance decimal.Decimal, dependents int) TaxResult {
	dependentDeduction := dependentDeductionPC.Mul(decimal.NewFromInt(int64(dependents)))
	taxableIncome := grossSalary.Sub(totalInsurance).Sub(personalDeduction).Sub(dependentDeduction)

	if taxableIncome.LessThanOrEqual(decimal.Zero) {
		return TaxResult{
			TaxableIncome:      decimal.Zero,
			PersonalDeduction:  personalDeduction,
			DependentDeduction: dependentDeduction,
			Tax:                decimal.Zero,
		}
	}

	tax := decimal.Zero
	remaining := taxableIncome
	prevLimit := decimal.Zero

	for _, bracket := range taxBrackets {
		if !remaining.IsPositive() {
			break
		}

		var taxableInBracket decimal.Decimal
		if bracket.limit.IsZero() {
			// open-ended top bracket
			taxableInBracket = remaining
		} else {
			width := bracket.limit.Sub(prevLimit)
			taxableInBracket = decimal.Min(remaining, width)
			prevLimit = bracket.limit
		}

		tax = tax.Add(taxableInBracket.Mul(bracket.rate))
		remaining = remaining.Sub(taxableInBracket)
	}

	return TaxResult{
		TaxableIncome:      taxableIncome,
		PersonalDeduction:  personalDeduction,
		DependentDeduction: dependentDeduction,
		Tax:                tax.Round(2),
	}
}
