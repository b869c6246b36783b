package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/haisanviet/backoffice-go/internal/domain/order"
	"github.com/haisanviet/backoffice-go/internal/handler/http/middleware"
	"github.com/haisanviet/backoffice-go/internal/handler/http/response"
)

type OrderHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	UpdateStatus(w http.ResponseWriter, r *http.Request)
	RecordPayment(w http.ResponseWriter, r *http.Request)
}

type orderHandlerImpl struct {
	orderService order.Service
}

func NewOrderHandler(orderService order.Service) OrderHandler {
	return &orderHandlerImpl{orderService: orderService}
}

func (h *orderHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req order.CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.orderService.Create(r.Context(), middleware.UserID(r), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Order created successfully", result)
}

func (h *orderHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.orderService.Get(r.Context(), id)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *orderHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	var filter order.Filter
	if status := query.Get("status"); status != "" {
		filter.Status = &status
	}
	if createdBy := query.Get("created_by"); createdBy != "" {
		filter.CreatedBy = &createdBy
	}
	if from := query.Get("date_from"); from != "" {
		if t, err := time.Parse("2006-01-02", from); err == nil {
			filter.DateFrom = &t
		}
	}
	if to := query.Get("date_to"); to != "" {
		if t, err := time.Parse("2006-01-02", to); err == nil {
			filter.DateTo = &t
		}
	}

	result, err := h.orderService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *orderHandlerImpl) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req order.UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.orderService.UpdateStatus(r.Context(), id, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *orderHandlerImpl) RecordPayment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req order.PaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.orderService.RecordPayment(r.Context(), id, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
