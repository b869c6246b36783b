package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/haisanviet/backoffice-go/internal/domain/attendance"
	"github.com/haisanviet/backoffice-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	CheckIn(w http.ResponseWriter, r *http.Request)
	ListByUserMonth(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type attendanceHandlerImpl struct {
	attendanceService attendance.Service
}

func NewAttendanceHandler(attendanceService attendance.Service) AttendanceHandler {
	return &attendanceHandlerImpl{attendanceService: attendanceService}
}

func (h *attendanceHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	var req attendance.CheckInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	result, err := h.attendanceService.CheckIn(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Attendance recorded successfully", result)
}

func (h *attendanceHandlerImpl) ListByUserMonth(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userId")
	year, month := yearMonthQuery(r)

	result, err := h.attendanceService.ListByUserMonth(r.Context(), userID, year, month)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

func (h *attendanceHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.attendanceService.Delete(r.Context(), id); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance record deleted successfully", nil)
}

// yearMonthQuery reads year/month query params, defaulting to the
// current period.
func yearMonthQuery(r *http.Request) (int, int) {
	now := time.Now()
	year, month := now.Year(), int(now.Month())

	if y, err := strconv.Atoi(r.URL.Query().Get("year")); err == nil {
		year = y
	}
	if m, err := strconv.Atoi(r.URL.Query().Get("month")); err == nil {
		month = m
	}
	return year, month
}
