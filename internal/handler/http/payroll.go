package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/haisanviet/backoffice-go/internal/domain/payroll"
	"github.com/haisanviet/backoffice-go/internal/handler/http/middleware"
	"github.com/haisanviet/backoffice-go/internal/handler/http/response"
)

type PayrollHandler interface {
	// Calculation
	Calculate(w http.ResponseWriter, r *http.Request)
	CalculateBulk(w http.ResponseWriter, r *http.Request)

	// Records
	GetRecord(w http.ResponseWriter, r *http.Request)
	ListRecords(w http.ResponseWriter, r *http.Request)
	UpdateStatus(w http.ResponseWriter, r *http.Request)
	ApproveRecords(w http.ResponseWriter, r *http.Request)
	MarkRecordsPaid(w http.ResponseWriter, r *http.Request)
	DeleteRecord(w http.ResponseWriter, r *http.Request)

	// Adjustments
	AddAdjustment(w http.ResponseWriter, r *http.Request)
	ListAdjustments(w http.ResponseWriter, r *http.Request)

	// Summaries
	GetSummary(w http.ResponseWriter, r *http.Request)
	GetEmployeesSummary(w http.ResponseWriter, r *http.Request)

	// Salary configurations
	CreateConfig(w http.ResponseWriter, r *http.Request)
	GetConfig(w http.ResponseWriter, r *http.Request)
	ListConfigs(w http.ResponseWriter, r *http.Request)
	UpdateConfig(w http.ResponseWriter, r *http.Request)
	DeactivateConfig(w http.ResponseWriter, r *http.Request)
}

type payrollHandlerImpl struct {
	payrollService payroll.Service
}

func NewPayrollHandler(payrollService payroll.Service) PayrollHandler {
	return &payrollHandlerImpl{payrollService: payrollService}
}

// ========== CALCULATION ==========

func (h *payrollHandlerImpl) Calculate(w http.ResponseWriter, r *http.Request) {
	var req payroll.CalculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.payrollService.Calculate(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Payroll calculated successfully", result)
}

func (h *payrollHandlerImpl) CalculateBulk(w http.ResponseWriter, r *http.Request) {
	var req payroll.BulkCalculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.payrollService.CalculateBulk(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ========== RECORDS ==========

func (h *payrollHandlerImpl) GetRecord(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.payrollService.GetRecord(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) ListRecords(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	var filter payroll.Filter
	if y, err := strconv.Atoi(query.Get("year")); err == nil {
		filter.Year = &y
	}
	if m, err := strconv.Atoi(query.Get("month")); err == nil {
		filter.Month = &m
	}
	if status := query.Get("status"); status != "" {
		filter.Status = &status
	}
	if userID := query.Get("user_id"); userID != "" {
		filter.UserID = &userID
	}

	result, err := h.payrollService.ListRecords(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req payroll.UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.payrollService.UpdateStatus(r.Context(), id, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) ApproveRecords(w http.ResponseWriter, r *http.Request) {
	var req payroll.BatchStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.payrollService.ApproveRecords(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) MarkRecordsPaid(w http.ResponseWriter, r *http.Request) {
	var req payroll.BatchStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.payrollService.MarkRecordsPaid(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) DeleteRecord(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.payrollService.DeleteRecord(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Payroll record deleted successfully", nil)
}

// ========== ADJUSTMENTS ==========

func (h *payrollHandlerImpl) AddAdjustment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req payroll.CreateAdjustmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.payrollService.AddAdjustment(r.Context(), id, middleware.UserID(r), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Adjustment added successfully", result)
}

func (h *payrollHandlerImpl) ListAdjustments(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.payrollService.ListAdjustments(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ========== SUMMARIES ==========

func (h *payrollHandlerImpl) GetSummary(w http.ResponseWriter, r *http.Request) {
	year, month := yearMonthQuery(r)

	result, err := h.payrollService.GetSummary(r.Context(), year, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) GetEmployeesSummary(w http.ResponseWriter, r *http.Request) {
	year, month := yearMonthQuery(r)

	result, err := h.payrollService.GetEmployeesSummary(r.Context(), year, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ========== SALARY CONFIGURATIONS ==========

func (h *payrollHandlerImpl) CreateConfig(w http.ResponseWriter, r *http.Request) {
	var req payroll.CreateSalaryConfigRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.payrollService.CreateConfig(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Salary configuration created successfully", result)
}

func (h *payrollHandlerImpl) GetConfig(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.payrollService.GetConfig(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) ListConfigs(w http.ResponseWriter, r *http.Request) {
	activeOnly := r.URL.Query().Get("active_only") == "true"

	result, err := h.payrollService.ListConfigs(r.Context(), activeOnly)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) UpdateConfig(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var patch payroll.SalaryConfigPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.payrollService.UpdateConfig(r.Context(), id, patch)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *payrollHandlerImpl) DeactivateConfig(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.payrollService.DeactivateConfig(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Salary configuration deactivated successfully", nil)
}
