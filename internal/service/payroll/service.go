package payroll

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/haisanviet/backoffice-go/internal/domain/attendance"
	"github.com/haisanviet/backoffice-go/internal/domain/order"
	"github.com/haisanviet/backoffice-go/internal/domain/payroll"
	"github.com/haisanviet/backoffice-go/internal/domain/user"
	"github.com/haisanviet/backoffice-go/internal/pkg/database"
	"github.com/haisanviet/backoffice-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// Role slugs eligible for bulk payroll runs.
var payrollEligibleSlugs = []string{"salesperson", "accountant", "warehouse", "manager"}

// Default commission ladder and insurance rates applied when a
// configuration omits them.
var (
	defaultCommissionRate1      = decimal.NewFromFloat(1.0)
	defaultCommissionThreshold2 = decimal.NewFromInt(20000000)
	defaultCommissionRate2      = decimal.NewFromFloat(1.5)
	defaultCommissionThreshold3 = decimal.NewFromInt(50000000)
	defaultCommissionRate3      = decimal.NewFromFloat(2.0)
	defaultCommissionThreshold4 = decimal.NewFromInt(100000000)
	defaultCommissionRate4      = decimal.NewFromFloat(2.5)

	defaultSocialInsuranceRate       = decimal.NewFromFloat(8.0)
	defaultHealthInsuranceRate       = decimal.NewFromFloat(1.5)
	defaultUnemploymentInsuranceRate = decimal.NewFromFloat(1.0)
)

type ServiceImpl struct {
	db             *database.DB
	payrollRepo    payroll.Repository
	configRepo     payroll.ConfigRepository
	userRepo       user.Repository
	attendanceRepo attendance.Repository
	orderRepo      order.Repository
}

func NewService(
	db *database.DB,
	payrollRepo payroll.Repository,
	configRepo payroll.ConfigRepository,
	userRepo user.Repository,
	attendanceRepo attendance.Repository,
	orderRepo order.Repository,
) payroll.Service {
	return &ServiceImpl{
		db:             db,
		payrollRepo:    payrollRepo,
		configRepo:     configRepo,
		userRepo:       userRepo,
		attendanceRepo: attendanceRepo,
		orderRepo:      orderRepo,
	}
}

// periodRange returns the half-open window [first of month, first of next month).
func periodRange(year, month int) (time.Time, time.Time) {
	from := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	return from, from.AddDate(0, 1, 0)
}

// ========== CALCULATION ==========

func (s *ServiceImpl) Calculate(ctx context.Context, req payroll.CalculateRequest) (payroll.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.RecordResponse{}, err
	}

	u, err := s.userRepo.GetByID(ctx, req.UserID)
	if err != nil {
		return payroll.RecordResponse{}, err
	}
	if u.RoleID == nil {
		return payroll.RecordResponse{}, payroll.ErrNoRole
	}

	cfg, err := s.configRepo.GetActiveByRole(ctx, *u.RoleID)
	if err != nil {
		return payroll.RecordResponse{}, err
	}

	// A draft for the same period is recalculated in place; anything
	// past draft blocks the run.
	existing, err := s.payrollRepo.GetByUserPeriod(ctx, req.UserID, req.Year, req.Month)
	if err == nil {
		if existing.Status != payroll.PayrollStatusDraft {
			return payroll.RecordResponse{}, payroll.ErrPayrollLocked
		}
		if err := s.payrollRepo.Delete(ctx, existing.ID); err != nil {
			return payroll.RecordResponse{}, err
		}
	} else if !errors.Is(err, payroll.ErrPayrollNotFound) {
		return payroll.RecordResponse{}, err
	}

	record, err := s.compute(ctx, cfg, req)
	if err != nil {
		return payroll.RecordResponse{}, err
	}

	created, err := s.payrollRepo.Create(ctx, record)
	if err != nil {
		return payroll.RecordResponse{}, err
	}

	return payroll.ToRecordResponse(created), nil
}

// compute assembles a draft record from attendance, orders, and the
// salary configuration. Pure arithmetic lives in calculator.go.
func (s *ServiceImpl) compute(ctx context.Context, cfg payroll.SalaryConfiguration, req payroll.CalculateRequest) (payroll.PayrollRecord, error) {
	from, to := periodRange(req.Year, req.Month)

	// 1. Working days
	fullDays, halfDays, err := s.attendanceRepo.GetAttendanceCounts(ctx, req.UserID, from, to)
	if err != nil {
		return payroll.PayrollRecord{}, err
	}
	workingDays := WorkingDays(fullDays, halfDays)

	// 2. Pro-rated base salary
	actualBaseSalary := ActualBaseSalary(cfg, workingDays)

	// 3. Allowances
	attendanceAllowance := AttendanceAllowance(cfg, workingDays)
	totalAllowances := attendanceAllowance.
		Add(cfg.TransportationAllowance).
		Add(cfg.MealAllowance).
		Add(cfg.PhoneAllowance)

	// 4. Commission on completed-order revenue
	salesCommission := decimal.Zero
	salesRevenue := decimal.Zero
	if cfg.EnableCommission {
		salesRevenue, err = s.orderRepo.GetCompletedRevenue(ctx, req.UserID, from, to)
		if err != nil {
			return payroll.PayrollRecord{}, err
		}
		salesCommission = Commission(cfg, salesRevenue)
	}

	// 5. KPI score and bonus over all orders in the window
	stats, err := s.orderRepo.GetOrderStats(ctx, req.UserID, from, to)
	if err != nil {
		return payroll.PayrollRecord{}, err
	}
	kpiScore := KPIScore(cfg, stats, workingDays)
	kpiBonus := KPIBonus(cfg, kpiScore)

	totalBonuses := salesCommission.Add(kpiBonus).Add(req.OtherBonus)

	// 6. Gross
	grossSalary := actualBaseSalary.Add(totalAllowances).Add(totalBonuses)

	// 7. Insurance off the nominal base salary
	insurance := Insurance(cfg)

	// 8. Progressive income tax
	tax := PersonalIncomeTax(grossSalary, insurance.Total, req.Dependents)

	// 9. Deductions and net
	totalDeductions := insurance.Total.
		Add(tax.Tax).
		Add(req.AdvancePayment).
		Add(req.Penalty).
		Add(req.OtherDeduction)
	netSalary := grossSalary.Sub(totalDeductions)

	var notes *string
	if req.Notes != "" {
		notes = &req.Notes
	}

	return payroll.PayrollRecord{
		UserID: req.UserID,
		Year:   req.Year,
		Month:  req.Month,

		BaseSalary:          cfg.BaseSalary,
		WorkingDays:         workingDays,
		StandardWorkingDays: cfg.StandardWorkingDays,
		ActualBaseSalary:    actualBaseSalary,

		AttendanceAllowance:     attendanceAllowance,
		TransportationAllowance: cfg.TransportationAllowance,
		MealAllowance:           cfg.MealAllowance,
		PhoneAllowance:          cfg.PhoneAllowance,
		TotalAllowances:         totalAllowances,

		SalesCommission: salesCommission,
		SalesRevenue:    salesRevenue,
		KPIScore:        kpiScore,
		KPIBonus:        kpiBonus,
		OtherBonus:      req.OtherBonus,
		TotalBonuses:    totalBonuses,

		GrossSalary: grossSalary,

		SocialInsurance:       insurance.Social,
		HealthInsurance:       insurance.Health,
		UnemploymentInsurance: insurance.Unemployment,
		TotalInsurance:        insurance.Total,

		TaxableIncome:      tax.TaxableIncome,
		PersonalDeduction:  tax.PersonalDeduction,
		DependentDeduction: tax.DependentDeduction,
		PersonalIncomeTax:  tax.Tax,

		AdvancePayment:  req.AdvancePayment,
		Penalty:         req.Penalty,
		OtherDeduction:  req.OtherDeduction,
		TotalDeductions: totalDeductions,

		NetSalary: netSalary,

		Status: payroll.PayrollStatusDraft,
		Notes:  notes,
	}, nil
}

func (s *ServiceImpl) CalculateBulk(ctx context.Context, req payroll.BulkCalculateRequest) (payroll.BulkCalculateResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.BulkCalculateResponse{}, err
	}

	var users []user.User
	var err error
	if len(req.UserIDs) > 0 {
		for _, id := range req.UserIDs {
			u, err := s.userRepo.GetByID(ctx, id)
			if err != nil {
				users = append(users, user.User{ID: id})
				continue
			}
			users = append(users, u)
		}
	} else {
		users, err = s.userRepo.ListActiveByRoleSlugs(ctx, payrollEligibleSlugs)
		if err != nil {
			return payroll.BulkCalculateResponse{}, err
		}
	}

	resp := payroll.BulkCalculateResponse{Total: len(users)}

	// One employee failing must not abort the rest of the run.
	for _, u := range users {
		rec, err := s.Calculate(ctx, payroll.CalculateRequest{
			UserID: u.ID,
			Year:   req.Year,
			Month:  req.Month,
		})
		if err != nil {
			resp.Failed = append(resp.Failed, payroll.BulkFailure{
				UserID:   u.ID,
				UserName: u.FullName(),
				Reason:   err.Error(),
			})
			continue
		}
		resp.Success = append(resp.Success, payroll.BulkResult{
			UserID:    u.ID,
			UserName:  rec.UserName,
			NetSalary: rec.NetSalary,
		})
	}

	return resp, nil
}

// ========== RECORDS ==========

func (s *ServiceImpl) GetRecord(ctx context.Context, id string) (payroll.RecordResponse, error) {
	rec, err := s.payrollRepo.GetByID(ctx, id)
	if err != nil {
		return payroll.RecordResponse{}, err
	}
	return payroll.ToRecordResponse(rec), nil
}

func (s *ServiceImpl) ListRecords(ctx context.Context, filter payroll.Filter) ([]payroll.RecordResponse, error) {
	if filter.Status != nil && !payroll.IsValidStatus(*filter.Status) {
		return nil, validator.ValidationErrors{{Field: "status", Message: "unknown payroll status"}}
	}

	records, err := s.payrollRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	responses := make([]payroll.RecordResponse, 0, len(records))
	for _, rec := range records {
		responses = append(responses, payroll.ToRecordResponse(rec))
	}
	return responses, nil
}

func (s *ServiceImpl) UpdateStatus(ctx context.Context, id string, req payroll.UpdateStatusRequest) (payroll.RecordResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.RecordResponse{}, err
	}

	rec, err := s.payrollRepo.GetByID(ctx, id)
	if err != nil {
		return payroll.RecordResponse{}, err
	}

	next := payroll.PayrollStatus(req.Status)
	if !rec.Status.CanTransitionTo(next) {
		return payroll.RecordResponse{}, fmt.Errorf("%w: %s -> %s", payroll.ErrInvalidTransition, rec.Status, next)
	}

	updated, err := s.payrollRepo.UpdateStatus(ctx, id, next, req.Notes)
	if err != nil {
		return payroll.RecordResponse{}, err
	}

	return payroll.ToRecordResponse(updated), nil
}

func (s *ServiceImpl) ApproveRecords(ctx context.Context, req payroll.BatchStatusRequest) (payroll.BatchStatusResponse, error) {
	return s.batchTransition(ctx, req, payroll.PayrollStatusApproved)
}

func (s *ServiceImpl) MarkRecordsPaid(ctx context.Context, req payroll.BatchStatusRequest) (payroll.BatchStatusResponse, error) {
	return s.batchTransition(ctx, req, payroll.PayrollStatusPaid)
}

// batchTransition moves every eligible record to the target status and
// silently skips the rest.
func (s *ServiceImpl) batchTransition(ctx context.Context, req payroll.BatchStatusRequest, target payroll.PayrollStatus) (payroll.BatchStatusResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.BatchStatusResponse{}, err
	}

	resp := payroll.BatchStatusResponse{Total: len(req.RecordIDs)}

	for _, id := range req.RecordIDs {
		rec, err := s.payrollRepo.GetByID(ctx, id)
		if err != nil {
			continue
		}
		if !rec.Status.CanTransitionTo(target) {
			continue
		}
		if _, err := s.payrollRepo.UpdateStatus(ctx, id, target, req.Notes); err != nil {
			continue
		}
		resp.UpdatedCount++
	}

	return resp, nil
}

func (s *ServiceImpl) DeleteRecord(ctx context.Context, id string) error {
	rec, err := s.payrollRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if rec.Status != payroll.PayrollStatusDraft {
		return payroll.ErrNotDraft
	}

	return s.payrollRepo.Delete(ctx, id)
}

// ========== ADJUSTMENTS ==========

func (s *ServiceImpl) AddAdjustment(ctx context.Context, payrollID string, actorID string, req payroll.CreateAdjustmentRequest) (payroll.RecordResponse, error) {
	if actorID == "" {
		return payroll.RecordResponse{}, user.ErrActorRequired
	}
	if err := req.Validate(); err != nil {
		return payroll.RecordResponse{}, err
	}

	rec, err := s.payrollRepo.GetByID(ctx, payrollID)
	if err != nil {
		return payroll.RecordResponse{}, err
	}
	if rec.Status != payroll.PayrollStatusDraft {
		return payroll.RecordResponse{}, payroll.ErrNotDraft
	}

	// Fold the adjustment into the ad-hoc buckets and rebuild the
	// dependent totals. Tax and insurance stay as computed.
	otherBonus := rec.OtherBonus
	otherDeduction := rec.OtherDeduction
	if payroll.AdjustmentType(req.Type) == payroll.AdjustmentTypeBonus {
		otherBonus = otherBonus.Add(req.Amount)
	} else {
		otherDeduction = otherDeduction.Add(req.Amount)
	}

	totalBonuses := rec.SalesCommission.Add(rec.KPIBonus).Add(otherBonus)
	grossSalary := rec.ActualBaseSalary.Add(rec.TotalAllowances).Add(totalBonuses)
	totalDeductions := rec.TotalInsurance.
		Add(rec.PersonalIncomeTax).
		Add(rec.AdvancePayment).
		Add(rec.Penalty).
		Add(otherDeduction)
	netSalary := grossSalary.Sub(totalDeductions)

	updated, err := s.payrollRepo.CreateAdjustment(ctx, payroll.PayrollAdjustment{
		PayrollID: payrollID,
		Type:      payroll.AdjustmentType(req.Type),
		Amount:    req.Amount,
		Reason:    req.Reason,
		CreatedBy: actorID,
	}, payroll.AdhocAmounts{
		OtherBonus:      otherBonus,
		OtherDeduction:  otherDeduction,
		TotalBonuses:    totalBonuses,
		GrossSalary:     grossSalary,
		TotalDeductions: totalDeductions,
		NetSalary:       netSalary,
	})
	if err != nil {
		return payroll.RecordResponse{}, err
	}

	return payroll.ToRecordResponse(updated), nil
}

func (s *ServiceImpl) ListAdjustments(ctx context.Context, payrollID string) ([]payroll.AdjustmentResponse, error) {
	if _, err := s.payrollRepo.GetByID(ctx, payrollID); err != nil {
		return nil, err
	}

	adjustments, err := s.payrollRepo.ListAdjustments(ctx, payrollID)
	if err != nil {
		return nil, err
	}

	responses := make([]payroll.AdjustmentResponse, 0, len(adjustments))
	for _, adj := range adjustments {
		responses = append(responses, payroll.ToAdjustmentResponse(adj))
	}
	return responses, nil
}

// ========== SUMMARIES ==========

func (s *ServiceImpl) GetSummary(ctx context.Context, year, month int) (payroll.Summary, error) {
	if month < 1 || month > 12 {
		return payroll.Summary{}, payroll.ErrInvalidPeriod
	}
	return s.payrollRepo.GetSummary(ctx, year, month)
}

func (s *ServiceImpl) GetEmployeesSummary(ctx context.Context, year, month int) ([]payroll.EmployeeSummary, error) {
	if month < 1 || month > 12 {
		return nil, payroll.ErrInvalidPeriod
	}

	users, err := s.userRepo.ListActiveByRoleSlugs(ctx, payrollEligibleSlugs)
	if err != nil {
		return nil, err
	}

	summaries := make([]payroll.EmployeeSummary, 0, len(users))
	for _, u := range users {
		summary := payroll.EmployeeSummary{
			UserID:    u.ID,
			UserName:  u.FullName(),
			UserEmail: u.Email,
			Status:    "not_calculated",
		}
		if u.RoleName != nil {
			summary.RoleName = *u.RoleName
		}

		rec, err := s.payrollRepo.GetByUserPeriod(ctx, u.ID, year, month)
		if err == nil {
			summary.BaseSalary = rec.BaseSalary
			summary.WorkingDays = rec.WorkingDays
			summary.KPIScore = rec.KPIScore
			summary.SalesRevenue = rec.SalesRevenue
			summary.NetSalary = rec.NetSalary
			summary.Status = string(rec.Status)
			summary.PayrollID = &rec.ID
		} else if !errors.Is(err, payroll.ErrPayrollNotFound) {
			return nil, err
		}

		summaries = append(summaries, summary)
	}

	return summaries, nil
}

// ========== SALARY CONFIGURATIONS ==========

func (s *ServiceImpl) CreateConfig(ctx context.Context, req payroll.CreateSalaryConfigRequest) (payroll.SalaryConfigResponse, error) {
	if err := req.Validate(); err != nil {
		return payroll.SalaryConfigResponse{}, err
	}

	// Replacing a role's config deactivates the previous one first.
	if existing, err := s.configRepo.GetActiveByRole(ctx, req.RoleID); err == nil {
		if err := s.configRepo.Deactivate(ctx, existing.ID); err != nil {
			return payroll.SalaryConfigResponse{}, err
		}
	} else if !errors.Is(err, payroll.ErrConfigNotFound) {
		return payroll.SalaryConfigResponse{}, err
	}

	cfg := payroll.SalaryConfiguration{
		RoleID:              req.RoleID,
		BaseSalary:          req.BaseSalary,
		StandardWorkingDays: req.StandardWorkingDays,

		AttendanceAllowance:     req.AttendanceAllowance,
		TransportationAllowance: req.TransportationAllowance,
		MealAllowance:           req.MealAllowance,
		PhoneAllowance:          req.PhoneAllowance,

		EnableCommission:     req.EnableCommission,
		CommissionRate1:      valueOrDefault(req.CommissionRate1, defaultCommissionRate1),
		CommissionThreshold2: valueOrDefault(req.CommissionThreshold2, defaultCommissionThreshold2),
		CommissionRate2:      valueOrDefault(req.CommissionRate2, defaultCommissionRate2),
		CommissionThreshold3: valueOrDefault(req.CommissionThreshold3, defaultCommissionThreshold3),
		CommissionRate3:      valueOrDefault(req.CommissionRate3, defaultCommissionRate3),
		CommissionThreshold4: valueOrDefault(req.CommissionThreshold4, defaultCommissionThreshold4),
		CommissionRate4:      valueOrDefault(req.CommissionRate4, defaultCommissionRate4),

		KPIBonusAmount: req.KPIBonusAmount,

		SocialInsuranceRate:       valueOrDefault(req.SocialInsuranceRate, defaultSocialInsuranceRate),
		HealthInsuranceRate:       valueOrDefault(req.HealthInsuranceRate, defaultHealthInsuranceRate),
		UnemploymentInsuranceRate: valueOrDefault(req.UnemploymentInsuranceRate, defaultUnemploymentInsuranceRate),

		IsActive: true,
	}

	created, err := s.configRepo.Create(ctx, cfg)
	if err != nil {
		return payroll.SalaryConfigResponse{}, err
	}

	return payroll.ToSalaryConfigResponse(created), nil
}

func valueOrDefault(v *decimal.Decimal, def decimal.Decimal) decimal.Decimal {
	if v != nil {
		return *v
	}
	return def
}

func (s *ServiceImpl) GetConfig(ctx context.Context, id string) (payroll.SalaryConfigResponse, error) {
	cfg, err := s.configRepo.GetByID(ctx, id)
	if err != nil {
		return payroll.SalaryConfigResponse{}, err
	}
	return payroll.ToSalaryConfigResponse(cfg), nil
}

func (s *ServiceImpl) ListConfigs(ctx context.Context, activeOnly bool) ([]payroll.SalaryConfigResponse, error) {
	configs, err := s.configRepo.List(ctx, activeOnly)
	if err != nil {
		return nil, err
	}

	responses := make([]payroll.SalaryConfigResponse, 0, len(configs))
	for _, cfg := range configs {
		responses = append(responses, payroll.ToSalaryConfigResponse(cfg))
	}
	return responses, nil
}

func (s *ServiceImpl) UpdateConfig(ctx context.Context, id string, patch payroll.SalaryConfigPatch) (payroll.SalaryConfigResponse, error) {
	if err := patch.Validate(); err != nil {
		return payroll.SalaryConfigResponse{}, err
	}

	if err := s.configRepo.Update(ctx, id, patch); err != nil {
		return payroll.SalaryConfigResponse{}, err
	}

	cfg, err := s.configRepo.GetByID(ctx, id)
	if err != nil {
		return payroll.SalaryConfigResponse{}, err
	}

	return payroll.ToSalaryConfigResponse(cfg), nil
}

func (s *ServiceImpl) DeactivateConfig(ctx context.Context, id string) error {
	return s.configRepo.Deactivate(ctx, id)
}
