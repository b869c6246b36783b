package payroll

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/haisanviet/backoffice-go/internal/domain/attendance"
	"github.com/haisanviet/backoffice-go/internal/domain/order"
	"github.com/haisanviet/backoffice-go/internal/domain/payroll"
	"github.com/haisanviet/backoffice-go/internal/domain/user"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ========== IN-MEMORY FAKES ==========

type fakeUserRepo struct {
	users map[string]user.User
}

func (f *fakeUserRepo) Create(ctx context.Context, u user.User) (user.User, error) {
	f.users[u.ID] = u
	return u, nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	u, ok := f.users[id]
	if !ok {
		return user.User{}, user.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (f *fakeUserRepo) List(ctx context.Context, activeOnly bool) ([]user.User, error) {
	var out []user.User
	for _, u := range f.users {
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeUserRepo) ListActiveByRoleSlugs(ctx context.Context, slugs []string) ([]user.User, error) {
	var out []user.User
	for _, u := range f.users {
		if !u.IsActive || u.RoleSlug == nil {
			continue
		}
		for _, slug := range slugs {
			if *u.RoleSlug == slug {
				out = append(out, u)
				break
			}
		}
	}
	return out, nil
}

func (f *fakeUserRepo) Update(ctx context.Context, id string, patch user.Patch) (user.User, error) {
	return f.GetByID(ctx, id)
}

func (f *fakeUserRepo) Deactivate(ctx context.Context, id string) error {
	return nil
}

type fakeConfigRepo struct {
	byRole map[string]payroll.SalaryConfiguration
}

func (f *fakeConfigRepo) Create(ctx context.Context, cfg payroll.SalaryConfiguration) (payroll.SalaryConfiguration, error) {
	f.byRole[cfg.RoleID] = cfg
	return cfg, nil
}

func (f *fakeConfigRepo) GetByID(ctx context.Context, id string) (payroll.SalaryConfiguration, error) {
	for _, cfg := range f.byRole {
		if cfg.ID == id {
			return cfg, nil
		}
	}
	return payroll.SalaryConfiguration{}, payroll.ErrConfigNotFound
}

func (f *fakeConfigRepo) GetActiveByRole(ctx context.Context, roleID string) (payroll.SalaryConfiguration, error) {
	cfg, ok := f.byRole[roleID]
	if !ok {
		return payroll.SalaryConfiguration{}, payroll.ErrConfigNotFound
	}
	return cfg, nil
}

func (f *fakeConfigRepo) List(ctx context.Context, activeOnly bool) ([]payroll.SalaryConfiguration, error) {
	var out []payroll.SalaryConfiguration
	for _, cfg := range f.byRole {
		out = append(out, cfg)
	}
	return out, nil
}

func (f *fakeConfigRepo) Update(ctx context.Context, id string, patch payroll.SalaryConfigPatch) error {
	return nil
}

func (f *fakeConfigRepo) Deactivate(ctx context.Context, id string) error {
	return nil
}

type fakeAttendanceRepo struct {
	fullDays map[string]int
	halfDays map[string]int
}

func (f *fakeAttendanceRepo) Upsert(ctx context.Context, rec attendance.Record) (attendance.Record, error) {
	return rec, nil
}

func (f *fakeAttendanceRepo) ListByUserRange(ctx context.Context, userID string, from, to time.Time) ([]attendance.Record, error) {
	return nil, nil
}

func (f *fakeAttendanceRepo) Delete(ctx context.Context, id string) error {
	return nil
}

func (f *fakeAttendanceRepo) GetAttendanceCounts(ctx context.Context, userID string, from, to time.Time) (int, int, error) {
	return f.fullDays[userID], f.halfDays[userID], nil
}

type fakeOrderRepo struct {
	revenue map[string]decimal.Decimal
	stats   map[string]order.Stats
}

func (f *fakeOrderRepo) Create(ctx context.Context, o order.Order) (order.Order, error) {
	return o, nil
}

func (f *fakeOrderRepo) GetByID(ctx context.Context, id string) (order.Order, error) {
	return order.Order{}, order.ErrOrderNotFound
}

func (f *fakeOrderRepo) List(ctx context.Context, filter order.Filter) ([]order.Order, error) {
	return nil, nil
}

func (f *fakeOrderRepo) UpdateStatus(ctx context.Context, id string, status order.Status) (order.Order, error) {
	return order.Order{}, order.ErrOrderNotFound
}

func (f *fakeOrderRepo) RecordPayment(ctx context.Context, id string, amount decimal.Decimal, method string) (order.Order, error) {
	return order.Order{}, order.ErrOrderNotFound
}

func (f *fakeOrderRepo) GetCompletedRevenue(ctx context.Context, userID string, from, to time.Time) (decimal.Decimal, error) {
	return f.revenue[userID], nil
}

func (f *fakeOrderRepo) GetOrderStats(ctx context.Context, userID string, from, to time.Time) (order.Stats, error) {
	return f.stats[userID], nil
}

type fakePayrollRepo struct {
	records     map[string]payroll.PayrollRecord
	adjustments map[string][]payroll.PayrollAdjustment
	nextID      int

	failAdjustments bool
}

func newFakePayrollRepo() *fakePayrollRepo {
	return &fakePayrollRepo{
		records:     make(map[string]payroll.PayrollRecord),
		adjustments: make(map[string][]payroll.PayrollAdjustment),
	}
}

func (f *fakePayrollRepo) Create(ctx context.Context, rec payroll.PayrollRecord) (payroll.PayrollRecord, error) {
	for _, existing := range f.records {
		if existing.UserID == rec.UserID && existing.Year == rec.Year && existing.Month == rec.Month {
			return payroll.PayrollRecord{}, payroll.ErrPayrollExists
		}
	}
	f.nextID++
	rec.ID = fmt.Sprintf("rec-%d", f.nextID)
	f.records[rec.ID] = rec
	return rec, nil
}

func (f *fakePayrollRepo) GetByID(ctx context.Context, id string) (payroll.PayrollRecord, error) {
	rec, ok := f.records[id]
	if !ok {
		return payroll.PayrollRecord{}, payroll.ErrPayrollNotFound
	}
	return rec, nil
}

func (f *fakePayrollRepo) GetByUserPeriod(ctx context.Context, userID string, year, month int) (payroll.PayrollRecord, error) {
	for _, rec := range f.records {
		if rec.UserID == userID && rec.Year == year && rec.Month == month {
			return rec, nil
		}
	}
	return payroll.PayrollRecord{}, payroll.ErrPayrollNotFound
}

func (f *fakePayrollRepo) List(ctx context.Context, filter payroll.Filter) ([]payroll.PayrollRecord, error) {
	var out []payroll.PayrollRecord
	for _, rec := range f.records {
		out = append(out, rec)
	}
	return out, nil
}

func (f *fakePayrollRepo) UpdateStatus(ctx context.Context, id string, status payroll.PayrollStatus, notes *string) (payroll.PayrollRecord, error) {
	rec, ok := f.records[id]
	if !ok {
		return payroll.PayrollRecord{}, payroll.ErrPayrollNotFound
	}
	rec.Status = status
	f.records[id] = rec
	return rec, nil
}

func (f *fakePayrollRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.records[id]; !ok {
		return payroll.ErrPayrollNotFound
	}
	delete(f.records, id)
	return nil
}

func (f *fakePayrollRepo) GetSummary(ctx context.Context, year, month int) (payroll.Summary, error) {
	return payroll.Summary{Year: year, Month: month}, nil
}

func (f *fakePayrollRepo) CreateAdjustment(ctx context.Context, adj payroll.PayrollAdjustment, amounts payroll.AdhocAmounts) (payroll.PayrollRecord, error) {
	if f.failAdjustments {
		return payroll.PayrollRecord{}, errors.New("write failed")
	}

	rec, ok := f.records[adj.PayrollID]
	if !ok {
		return payroll.PayrollRecord{}, payroll.ErrPayrollNotFound
	}

	f.nextID++
	adj.ID = fmt.Sprintf("adj-%d", f.nextID)
	f.adjustments[adj.PayrollID] = append(f.adjustments[adj.PayrollID], adj)

	rec.OtherBonus = amounts.OtherBonus
	rec.OtherDeduction = amounts.OtherDeduction
	rec.TotalBonuses = amounts.TotalBonuses
	rec.GrossSalary = amounts.GrossSalary
	rec.TotalDeductions = amounts.TotalDeductions
	rec.NetSalary = amounts.NetSalary
	f.records[adj.PayrollID] = rec
	return rec, nil
}

func (f *fakePayrollRepo) ListAdjustments(ctx context.Context, payrollID string) ([]payroll.PayrollAdjustment, error) {
	return f.adjustments[payrollID], nil
}

// ========== TEST SETUP ==========

type testEnv struct {
	svc         payroll.Service
	payrollRepo *fakePayrollRepo
	configRepo  *fakeConfigRepo
	userRepo    *fakeUserRepo
	attendance  *fakeAttendanceRepo
	orders      *fakeOrderRepo
}

func newTestEnv() *testEnv {
	env := &testEnv{
		payrollRepo: newFakePayrollRepo(),
		configRepo:  &fakeConfigRepo{byRole: make(map[string]payroll.SalaryConfiguration)},
		userRepo:    &fakeUserRepo{users: make(map[string]user.User)},
		attendance:  &fakeAttendanceRepo{fullDays: make(map[string]int), halfDays: make(map[string]int)},
		orders:      &fakeOrderRepo{revenue: make(map[string]decimal.Decimal), stats: make(map[string]order.Stats)},
	}
	env.svc = NewService(nil, env.payrollRepo, env.configRepo, env.userRepo, env.attendance, env.orders)
	return env
}

func (e *testEnv) addSalesperson(id string) {
	roleID := "role-sales"
	slug := "salesperson"
	e.userRepo.users[id] = user.User{
		ID:        id,
		Email:     id + "@haisanviet.vn",
		FirstName: "Nguyen",
		LastName:  "Van A",
		IsActive:  true,
		RoleID:    &roleID,
		RoleSlug:  &slug,
	}
	e.configRepo.byRole[roleID] = salesConfig()
}

// ========== CALCULATE ==========

func TestCalculate(t *testing.T) {
	ctx := context.Background()

	t.Run("full month with commission and KPI", func(t *testing.T) {
		env := newTestEnv()
		env.addSalesperson("u1")
		env.attendance.fullDays["u1"] = 26
		env.orders.revenue["u1"] = decimal.NewFromInt(30000000)
		env.orders.stats["u1"] = order.Stats{
			TotalOrders:     10,
			CompletedOrders: 8,
			TotalRevenue:    decimal.NewFromInt(35000000),
			TotalPaid:       decimal.NewFromInt(30000000),
		}

		rec, err := env.svc.Calculate(ctx, payroll.CalculateRequest{UserID: "u1", Year: 2026, Month: 1})
		require.NoError(t, err)

		assert.Equal(t, "draft", rec.Status)
		assertDecimal(t, "8000000", rec.ActualBaseSalary)
		assertDecimal(t, "1750000", rec.TotalAllowances)

		// 30M of completed revenue lands in tier 2 at 1.5%
		assertDecimal(t, "450000", rec.SalesCommission)

		// 21 + 10 + 17.142857... + 12 + 15, rounded to 75.14
		assertDecimal(t, "75.14", rec.KPIScore)
		assertDecimal(t, "751400", rec.KPIBonus)

		assertDecimal(t, "10951400", rec.GrossSalary)
		assertDecimal(t, "840000", rec.TotalInsurance)

		// Gross minus insurance falls under the personal deduction
		assertDecimal(t, "0", rec.TaxableIncome)
		assertDecimal(t, "0", rec.PersonalIncomeTax)

		assertDecimal(t, "10111400", rec.NetSalary)
	})

	t.Run("identical inputs reproduce identical amounts", func(t *testing.T) {
		env := newTestEnv()
		env.addSalesperson("u1")
		env.attendance.fullDays["u1"] = 23
		env.attendance.halfDays["u1"] = 2
		env.orders.revenue["u1"] = decimal.NewFromInt(52000000)
		env.orders.stats["u1"] = order.Stats{
			TotalOrders:     14,
			CompletedOrders: 12,
			TotalRevenue:    decimal.NewFromInt(55000000),
			TotalPaid:       decimal.NewFromInt(53000000),
		}

		req := payroll.CalculateRequest{
			UserID:         "u1",
			Year:           2026,
			Month:          1,
			Dependents:     1,
			AdvancePayment: decimal.NewFromInt(500000),
			OtherBonus:     decimal.NewFromInt(300000),
		}
		first, err := env.svc.Calculate(ctx, req)
		require.NoError(t, err)

		req.Month = 2
		second, err := env.svc.Calculate(ctx, req)
		require.NoError(t, err)

		amounts := []struct {
			name string
			a, b decimal.Decimal
		}{
			{"working_days", first.WorkingDays, second.WorkingDays},
			{"actual_base_salary", first.ActualBaseSalary, second.ActualBaseSalary},
			{"attendance_allowance", first.AttendanceAllowance, second.AttendanceAllowance},
			{"total_allowances", first.TotalAllowances, second.TotalAllowances},
			{"sales_revenue", first.SalesRevenue, second.SalesRevenue},
			{"sales_commission", first.SalesCommission, second.SalesCommission},
			{"kpi_score", first.KPIScore, second.KPIScore},
			{"kpi_bonus", first.KPIBonus, second.KPIBonus},
			{"other_bonus", first.OtherBonus, second.OtherBonus},
			{"total_bonuses", first.TotalBonuses, second.TotalBonuses},
			{"gross_salary", first.GrossSalary, second.GrossSalary},
			{"social_insurance", first.SocialInsurance, second.SocialInsurance},
			{"health_insurance", first.HealthInsurance, second.HealthInsurance},
			{"unemployment_insurance", first.UnemploymentInsurance, second.UnemploymentInsurance},
			{"total_insurance", first.TotalInsurance, second.TotalInsurance},
			{"taxable_income", first.TaxableIncome, second.TaxableIncome},
			{"personal_income_tax", first.PersonalIncomeTax, second.PersonalIncomeTax},
			{"advance_payment", first.AdvancePayment, second.AdvancePayment},
			{"total_deductions", first.TotalDeductions, second.TotalDeductions},
			{"net_salary", first.NetSalary, second.NetSalary},
		}
		for _, field := range amounts {
			assert.Equal(t, field.a.String(), field.b.String(), field.name)
		}
	})

	t.Run("user without role", func(t *testing.T) {
		env := newTestEnv()
		env.userRepo.users["u2"] = user.User{ID: "u2", IsActive: true}

		_, err := env.svc.Calculate(ctx, payroll.CalculateRequest{UserID: "u2", Year: 2026, Month: 1})
		assert.ErrorIs(t, err, payroll.ErrNoRole)
	})

	t.Run("missing salary configuration", func(t *testing.T) {
		env := newTestEnv()
		roleID := "role-unconfigured"
		env.userRepo.users["u3"] = user.User{ID: "u3", IsActive: true, RoleID: &roleID}

		_, err := env.svc.Calculate(ctx, payroll.CalculateRequest{UserID: "u3", Year: 2026, Month: 1})
		assert.ErrorIs(t, err, payroll.ErrConfigNotFound)
	})

	t.Run("existing draft is recalculated", func(t *testing.T) {
		env := newTestEnv()
		env.addSalesperson("u1")
		env.attendance.fullDays["u1"] = 26

		first, err := env.svc.Calculate(ctx, payroll.CalculateRequest{UserID: "u1", Year: 2026, Month: 1})
		require.NoError(t, err)

		env.attendance.fullDays["u1"] = 13
		second, err := env.svc.Calculate(ctx, payroll.CalculateRequest{UserID: "u1", Year: 2026, Month: 1})
		require.NoError(t, err)

		assert.NotEqual(t, first.ID, second.ID)
		assertDecimal(t, "4000000", second.ActualBaseSalary)
		assert.Len(t, env.payrollRepo.records, 1)
	})

	t.Run("non-draft record locks the period", func(t *testing.T) {
		env := newTestEnv()
		env.addSalesperson("u1")
		env.attendance.fullDays["u1"] = 26

		rec, err := env.svc.Calculate(ctx, payroll.CalculateRequest{UserID: "u1", Year: 2026, Month: 1})
		require.NoError(t, err)

		_, err = env.svc.UpdateStatus(ctx, rec.ID, payroll.UpdateStatusRequest{Status: "approved"})
		require.NoError(t, err)

		_, err = env.svc.Calculate(ctx, payroll.CalculateRequest{UserID: "u1", Year: 2026, Month: 1})
		assert.ErrorIs(t, err, payroll.ErrPayrollLocked)
	})
}

func TestCalculateBulk(t *testing.T) {
	ctx := context.Background()

	t.Run("one failure does not abort the run", func(t *testing.T) {
		env := newTestEnv()
		env.addSalesperson("u1")
		env.addSalesperson("u2")
		env.attendance.fullDays["u1"] = 26
		env.attendance.fullDays["u2"] = 24

		// u3 holds a role without a configuration
		roleID := "role-unconfigured"
		slug := "accountant"
		env.userRepo.users["u3"] = user.User{ID: "u3", IsActive: true, RoleID: &roleID, RoleSlug: &slug}

		resp, err := env.svc.CalculateBulk(ctx, payroll.BulkCalculateRequest{
			Year:    2026,
			Month:   1,
			UserIDs: []string{"u1", "u2", "u3"},
		})
		require.NoError(t, err)

		assert.Equal(t, 3, resp.Total)
		assert.Len(t, resp.Success, 2)
		require.Len(t, resp.Failed, 1)
		assert.Equal(t, "u3", resp.Failed[0].UserID)
	})

	t.Run("without ids runs over eligible roles", func(t *testing.T) {
		env := newTestEnv()
		env.addSalesperson("u1")
		env.attendance.fullDays["u1"] = 26

		// Inactive users are not picked up
		roleID := "role-sales"
		slug := "salesperson"
		env.userRepo.users["u9"] = user.User{ID: "u9", IsActive: false, RoleID: &roleID, RoleSlug: &slug}

		resp, err := env.svc.CalculateBulk(ctx, payroll.BulkCalculateRequest{Year: 2026, Month: 1})
		require.NoError(t, err)

		assert.Equal(t, 1, resp.Total)
		assert.Len(t, resp.Success, 1)
	})
}

// ========== STATUS AND DELETE ==========

func TestUpdateStatusTransitions(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	env.addSalesperson("u1")
	env.attendance.fullDays["u1"] = 26

	rec, err := env.svc.Calculate(ctx, payroll.CalculateRequest{UserID: "u1", Year: 2026, Month: 1})
	require.NoError(t, err)

	// draft -> pending -> approved -> paid
	for _, status := range []string{"pending", "approved", "paid"} {
		rec2, err := env.svc.UpdateStatus(ctx, rec.ID, payroll.UpdateStatusRequest{Status: status})
		require.NoError(t, err)
		assert.Equal(t, status, rec2.Status)
	}

	// paid is terminal
	_, err = env.svc.UpdateStatus(ctx, rec.ID, payroll.UpdateStatusRequest{Status: "cancelled"})
	assert.ErrorIs(t, err, payroll.ErrInvalidTransition)
}

func TestApproveRecordsSkipsIneligible(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	env.addSalesperson("u1")
	env.addSalesperson("u2")
	env.attendance.fullDays["u1"] = 26
	env.attendance.fullDays["u2"] = 26

	rec1, err := env.svc.Calculate(ctx, payroll.CalculateRequest{UserID: "u1", Year: 2026, Month: 1})
	require.NoError(t, err)
	rec2, err := env.svc.Calculate(ctx, payroll.CalculateRequest{UserID: "u2", Year: 2026, Month: 1})
	require.NoError(t, err)

	// Move rec2 to paid so approval cannot touch it
	for _, status := range []string{"approved", "paid"} {
		_, err = env.svc.UpdateStatus(ctx, rec2.ID, payroll.UpdateStatusRequest{Status: status})
		require.NoError(t, err)
	}

	resp, err := env.svc.ApproveRecords(ctx, payroll.BatchStatusRequest{
		RecordIDs: []string{rec1.ID, rec2.ID, "missing"},
	})
	require.NoError(t, err)

	assert.Equal(t, 3, resp.Total)
	assert.Equal(t, 1, resp.UpdatedCount)
}

func TestDeleteRecord(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	env.addSalesperson("u1")
	env.attendance.fullDays["u1"] = 26

	rec, err := env.svc.Calculate(ctx, payroll.CalculateRequest{UserID: "u1", Year: 2026, Month: 1})
	require.NoError(t, err)

	_, err = env.svc.UpdateStatus(ctx, rec.ID, payroll.UpdateStatusRequest{Status: "approved"})
	require.NoError(t, err)

	err = env.svc.DeleteRecord(ctx, rec.ID)
	assert.ErrorIs(t, err, payroll.ErrNotDraft)
}

// ========== ADJUSTMENTS ==========

func TestAddAdjustment(t *testing.T) {
	ctx := context.Background()

	t.Run("bonus raises net by the amount", func(t *testing.T) {
		env := newTestEnv()
		env.addSalesperson("u1")
		env.attendance.fullDays["u1"] = 26

		rec, err := env.svc.Calculate(ctx, payroll.CalculateRequest{UserID: "u1", Year: 2026, Month: 1})
		require.NoError(t, err)

		updated, err := env.svc.AddAdjustment(ctx, rec.ID, "manager-1", payroll.CreateAdjustmentRequest{
			Type:   "bonus",
			Amount: decimal.NewFromInt(200000),
			Reason: "Tet holiday bonus",
		})
		require.NoError(t, err)

		assert.True(t, rec.NetSalary.Add(decimal.NewFromInt(200000)).Equal(updated.NetSalary),
			"net %s + 200000 != %s", rec.NetSalary, updated.NetSalary)
		assertDecimal(t, "200000", updated.OtherBonus)

		adjustments, err := env.svc.ListAdjustments(ctx, rec.ID)
		require.NoError(t, err)
		assert.Len(t, adjustments, 1)
	})

	t.Run("deduction lowers net", func(t *testing.T) {
		env := newTestEnv()
		env.addSalesperson("u1")
		env.attendance.fullDays["u1"] = 26

		rec, err := env.svc.Calculate(ctx, payroll.CalculateRequest{UserID: "u1", Year: 2026, Month: 1})
		require.NoError(t, err)

		updated, err := env.svc.AddAdjustment(ctx, rec.ID, "manager-1", payroll.CreateAdjustmentRequest{
			Type:   "deduction",
			Amount: decimal.NewFromInt(150000),
			Reason: "Uniform damage",
		})
		require.NoError(t, err)

		assert.True(t, rec.NetSalary.Sub(decimal.NewFromInt(150000)).Equal(updated.NetSalary))
	})

	t.Run("requires an acting user", func(t *testing.T) {
		env := newTestEnv()
		env.addSalesperson("u1")
		env.attendance.fullDays["u1"] = 26

		rec, err := env.svc.Calculate(ctx, payroll.CalculateRequest{UserID: "u1", Year: 2026, Month: 1})
		require.NoError(t, err)

		_, err = env.svc.AddAdjustment(ctx, rec.ID, "", payroll.CreateAdjustmentRequest{
			Type:   "bonus",
			Amount: decimal.NewFromInt(100000),
			Reason: "Test",
		})
		assert.ErrorIs(t, err, user.ErrActorRequired)
	})

	t.Run("rejected on non-draft records", func(t *testing.T) {
		env := newTestEnv()
		env.addSalesperson("u1")
		env.attendance.fullDays["u1"] = 26

		rec, err := env.svc.Calculate(ctx, payroll.CalculateRequest{UserID: "u1", Year: 2026, Month: 1})
		require.NoError(t, err)

		_, err = env.svc.UpdateStatus(ctx, rec.ID, payroll.UpdateStatusRequest{Status: "approved"})
		require.NoError(t, err)

		_, err = env.svc.AddAdjustment(ctx, rec.ID, "manager-1", payroll.CreateAdjustmentRequest{
			Type:   "bonus",
			Amount: decimal.NewFromInt(100000),
			Reason: "Too late",
		})
		assert.ErrorIs(t, err, payroll.ErrNotDraft)
	})

	t.Run("failed write leaves neither adjustment nor amounts behind", func(t *testing.T) {
		env := newTestEnv()
		env.addSalesperson("u1")
		env.attendance.fullDays["u1"] = 26

		rec, err := env.svc.Calculate(ctx, payroll.CalculateRequest{UserID: "u1", Year: 2026, Month: 1})
		require.NoError(t, err)

		env.payrollRepo.failAdjustments = true
		_, err = env.svc.AddAdjustment(ctx, rec.ID, "manager-1", payroll.CreateAdjustmentRequest{
			Type:   "bonus",
			Amount: decimal.NewFromInt(200000),
			Reason: "Tet holiday bonus",
		})
		require.Error(t, err)
		env.payrollRepo.failAdjustments = false

		adjustments, err := env.svc.ListAdjustments(ctx, rec.ID)
		require.NoError(t, err)
		assert.Empty(t, adjustments)

		after, err := env.svc.GetRecord(ctx, rec.ID)
		require.NoError(t, err)
		assert.True(t, rec.NetSalary.Equal(after.NetSalary))
		assert.True(t, rec.OtherBonus.Equal(after.OtherBonus))
	})
}

// ========== SUMMARIES ==========

func TestGetEmployeesSummary(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv()
	env.addSalesperson("u1")
	env.addSalesperson("u2")
	env.attendance.fullDays["u1"] = 26

	_, err := env.svc.Calculate(ctx, payroll.CalculateRequest{UserID: "u1", Year: 2026, Month: 1})
	require.NoError(t, err)

	summaries, err := env.svc.GetEmployeesSummary(ctx, 2026, 1)
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	byUser := make(map[string]payroll.EmployeeSummary, len(summaries))
	for _, s := range summaries {
		byUser[s.UserID] = s
	}

	assert.Equal(t, "draft", byUser["u1"].Status)
	assert.NotNil(t, byUser["u1"].PayrollID)
	assert.Equal(t, "not_calculated", byUser["u2"].Status)
	assert.Nil(t, byUser["u2"].PayrollID)
}

func TestGetSummaryValidatesPeriod(t *testing.T) {
	env := newTestEnv()

	_, err := env.svc.GetSummary(context.Background(), 2026, 13)
	assert.ErrorIs(t, err, payroll.ErrInvalidPeriod)
}
