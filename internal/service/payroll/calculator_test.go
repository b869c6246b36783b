package payroll

import (
	"testing"

	"github.com/haisanviet/backoffice-go/internal/domain/order"
	"github.com/haisanviet/backoffice-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func salesConfig() payroll.SalaryConfiguration {
	return payroll.SalaryConfiguration{
		BaseSalary:          decimal.NewFromInt(8000000),
		StandardWorkingDays: 26,

		AttendanceAllowance:     decimal.NewFromInt(500000),
		TransportationAllowance: decimal.NewFromInt(300000),
		MealAllowance:           decimal.NewFromInt(750000),
		PhoneAllowance:          decimal.NewFromInt(200000),

		EnableCommission:     true,
		CommissionRate1:      decimal.NewFromFloat(1.0),
		CommissionThreshold2: decimal.NewFromInt(20000000),
		CommissionRate2:      decimal.NewFromFloat(1.5),
		CommissionThreshold3: decimal.NewFromInt(50000000),
		CommissionRate3:      decimal.NewFromFloat(2.0),
		CommissionThreshold4: decimal.NewFromInt(100000000),
		CommissionRate4:      decimal.NewFromFloat(2.5),

		KPIBonusAmount: decimal.NewFromInt(1000000),

		SocialInsuranceRate:       decimal.NewFromInt(8),
		HealthInsuranceRate:       decimal.NewFromFloat(1.5),
		UnemploymentInsuranceRate: decimal.NewFromInt(1),
	}
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(want).Equal(got), "want %s, got %s", want, got)
}

func TestWorkingDays(t *testing.T) {
	assertDecimal(t, "26", WorkingDays(26, 0))
	assertDecimal(t, "23.5", WorkingDays(22, 3))
	assertDecimal(t, "0.5", WorkingDays(0, 1))
	assertDecimal(t, "0", WorkingDays(0, 0))
}

func TestActualBaseSalary(t *testing.T) {
	cfg := salesConfig()

	// Full month
	assertDecimal(t, "8000000", ActualBaseSalary(cfg, decimal.NewFromInt(26)))

	// Half month
	assertDecimal(t, "4000000", ActualBaseSalary(cfg, decimal.NewFromInt(13)))

	// Rounding happens once, after the pro-ration
	assertDecimal(t, "7230769.23", ActualBaseSalary(cfg, decimal.NewFromFloat(23.5)))
}

func TestAttendanceAllowance(t *testing.T) {
	cfg := salesConfig()

	tests := []struct {
		name        string
		workingDays string
		want        string
	}{
		{"no days off", "26", "500000"},
		{"one day off keeps full allowance", "25", "500000"},
		{"two and a half days off keeps 60%", "23.5", "300000"},
		{"exactly three days off keeps 60%", "23", "300000"},
		{"four days off forfeits", "22", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AttendanceAllowance(cfg, decimal.RequireFromString(tt.workingDays))
			assertDecimal(t, tt.want, got)
		})
	}
}

func TestCommissionRate(t *testing.T) {
	cfg := salesConfig()

	tests := []struct {
		name    string
		revenue string
		want    string
	}{
		{"below tier 2", "19999999", "1"},
		{"exactly at tier 2 threshold earns tier 2", "20000000", "1.5"},
		{"between tiers 2 and 3", "35000000", "1.5"},
		{"exactly at tier 3 threshold earns tier 3", "50000000", "2"},
		{"exactly at tier 4 threshold earns tier 4", "100000000", "2.5"},
		{"above tier 4", "250000000", "2.5"},
		{"zero revenue", "0", "1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CommissionRate(cfg, decimal.RequireFromString(tt.revenue))
			assertDecimal(t, tt.want, got)
		})
	}
}

func TestCommission(t *testing.T) {
	cfg := salesConfig()

	// Flat rate on the whole revenue, not marginal per tier
	assertDecimal(t, "450000", Commission(cfg, decimal.NewFromInt(30000000)))
	assertDecimal(t, "1000000", Commission(cfg, decimal.NewFromInt(50000000)))
	assertDecimal(t, "100000", Commission(cfg, decimal.NewFromInt(10000000)))

	// Disabled commission pays nothing regardless of revenue
	cfg.EnableCommission = false
	assertDecimal(t, "0", Commission(cfg, decimal.NewFromInt(50000000)))
}

func TestKPIScore(t *testing.T) {
	cfg := salesConfig()

	t.Run("full marks", func(t *testing.T) {
		stats := order.Stats{
			TotalOrders:     20,
			CompletedOrders: 20,
			TotalRevenue:    decimal.NewFromInt(50000000),
			TotalPaid:       decimal.NewFromInt(50000000),
		}
		assertDecimal(t, "100", KPIScore(cfg, stats, decimal.NewFromInt(26)))
	})

	t.Run("half of everything", func(t *testing.T) {
		stats := order.Stats{
			TotalOrders:     10,
			CompletedOrders: 5,
			TotalRevenue:    decimal.NewFromInt(25000000),
			TotalPaid:       decimal.NewFromInt(12500000),
		}
		// 15 + 10 + 10 + 7.5 + 7.5
		assertDecimal(t, "50", KPIScore(cfg, stats, decimal.NewFromInt(13)))
	})

	t.Run("revenue and order terms cap at target", func(t *testing.T) {
		stats := order.Stats{
			TotalOrders:     40,
			CompletedOrders: 40,
			TotalRevenue:    decimal.NewFromInt(200000000),
			TotalPaid:       decimal.NewFromInt(200000000),
		}
		assertDecimal(t, "100", KPIScore(cfg, stats, decimal.NewFromInt(26)))
	})

	t.Run("overcollection pushes score past 100", func(t *testing.T) {
		stats := order.Stats{
			TotalOrders:     20,
			CompletedOrders: 20,
			TotalRevenue:    decimal.NewFromInt(50000000),
			TotalPaid:       decimal.NewFromInt(100000000),
		}
		// Collection term is 40 instead of 20
		assertDecimal(t, "120", KPIScore(cfg, stats, decimal.NewFromInt(26)))
	})

	t.Run("no orders scores attendance only", func(t *testing.T) {
		assertDecimal(t, "15", KPIScore(cfg, order.Stats{}, decimal.NewFromInt(26)))
	})
}

func TestKPIBonus(t *testing.T) {
	cfg := salesConfig()

	assertDecimal(t, "1000000", KPIBonus(cfg, decimal.NewFromInt(100)))
	assertDecimal(t, "500000", KPIBonus(cfg, decimal.NewFromInt(50)))
	assertDecimal(t, "0", KPIBonus(cfg, decimal.Zero))

	// Scores above 100 scale past the configured amount
	assertDecimal(t, "1200000", KPIBonus(cfg, decimal.NewFromInt(120)))
}

func TestInsurance(t *testing.T) {
	cfg := salesConfig()
	cfg.BaseSalary = decimal.NewFromInt(10000000)

	ins := Insurance(cfg)
	assertDecimal(t, "800000", ins.Social)
	assertDecimal(t, "150000", ins.Health)
	assertDecimal(t, "100000", ins.Unemployment)
	assertDecimal(t, "1050000", ins.Total)
}

func TestPersonalIncomeTax(t *testing.T) {
	t.Run("spans three brackets", func(t *testing.T) {
		// Taxable 15,000,000: 5M at 5% + 5M at 10% + 5M at 15%
		result := PersonalIncomeTax(decimal.NewFromInt(26000000), decimal.Zero, 0)
		assertDecimal(t, "15000000", result.TaxableIncome)
		assertDecimal(t, "1500000", result.Tax)
	})

	t.Run("income below deductions pays nothing", func(t *testing.T) {
		result := PersonalIncomeTax(decimal.NewFromInt(10000000), decimal.Zero, 0)
		assertDecimal(t, "0", result.TaxableIncome)
		assertDecimal(t, "0", result.Tax)
	})

	t.Run("dependents shrink the taxable base", func(t *testing.T) {
		// Taxable 26M - 11M - 4.4M = 10,600,000: 250k + 500k + 90k
		result := PersonalIncomeTax(decimal.NewFromInt(26000000), decimal.Zero, 1)
		assertDecimal(t, "10600000", result.TaxableIncome)
		assertDecimal(t, "4400000", result.DependentDeduction)
		assertDecimal(t, "840000", result.Tax)
	})

	t.Run("insurance is deducted before brackets", func(t *testing.T) {
		result := PersonalIncomeTax(decimal.NewFromInt(26000000), decimal.NewFromInt(1050000), 0)
		assertDecimal(t, "13950000", result.TaxableIncome)
		// 250k + 500k + 3.95M at 15%
		assertDecimal(t, "1342500", result.Tax)
	})

	t.Run("reaches the open-ended bracket", func(t *testing.T) {
		// Taxable 100M: 250k + 500k + 1.2M + 2.8M + 5M + 8.4M + 20M at 35%
		result := PersonalIncomeTax(decimal.NewFromInt(111000000), decimal.Zero, 0)
		assertDecimal(t, "100000000", result.TaxableIncome)
		assertDecimal(t, "25150000", result.Tax)
	})

	t.Run("tax is monotonic in income", func(t *testing.T) {
		prev := decimal.Zero
		for _, gross := range []int64{12000000, 20000000, 40000000, 70000000, 120000000} {
			result := PersonalIncomeTax(decimal.NewFromInt(gross), decimal.Zero, 0)
			assert.True(t, result.Tax.GreaterThanOrEqual(prev), "tax decreased at gross %d", gross)
			prev = result.Tax
		}
	})
}
