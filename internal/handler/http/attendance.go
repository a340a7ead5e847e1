package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/portalbd/employee-portal-go/internal/domain/attendance"
	"github.com/portalbd/employee-portal-go/internal/handler/http/middleware"
	"github.com/portalbd/employee-portal-go/internal/handler/http/response"
)

type AttendanceHandler interface {
	Present(w http.ResponseWriter, r *http.Request)
	Absent(w http.ResponseWriter, r *http.Request)
	Offday(w http.ResponseWriter, r *http.Request)
	Leave(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	Cleanup(w http.ResponseWriter, r *http.Request)
	Stats(w http.ResponseWriter, r *http.Request)
	History(w http.ResponseWriter, r *http.Request)
	Months(w http.ResponseWriter, r *http.Request)
}

type AttendanceHandlerImpl struct {
	attendanceService attendance.AttendanceService
}

func NewAttendanceHandler(attendanceService attendance.AttendanceService) AttendanceHandler {
	return &AttendanceHandlerImpl{attendanceService: attendanceService}
}

// Present implements AttendanceHandler.
func (a *AttendanceHandlerImpl) Present(w http.ResponseWriter, r *http.Request) {
	var presentReq attendance.PresentRequest
	if err := json.NewDecoder(r.Body).Decode(&presentReq); err != nil {
		slog.Error("Attendance present decode error", "error", err)
		response.Fail(w, "Invalid request format")
		return
	}

	rec, err := a.attendanceService.RecordPresent(r.Context(), middleware.UserID(r.Context()), presentReq)
	if err != nil {
		slog.Error("Attendance present service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.OK(w, response.Envelope{"record": rec})
}

// Absent implements AttendanceHandler.
func (a *AttendanceHandlerImpl) Absent(w http.ResponseWriter, r *http.Request) {
	var absentReq attendance.AbsentRequest
	if err := json.NewDecoder(r.Body).Decode(&absentReq); err != nil {
		slog.Error("Attendance absent decode error", "error", err)
		response.Fail(w, "Invalid request format")
		return
	}

	rec, err := a.attendanceService.RecordAbsent(r.Context(), middleware.UserID(r.Context()), absentReq)
	if err != nil {
		slog.Error("Attendance absent service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.OK(w, response.Envelope{"record": rec})
}

// Offday implements AttendanceHandler.
func (a *AttendanceHandlerImpl) Offday(w http.ResponseWriter, r *http.Request) {
	var offdayReq attendance.OffdayRequest
	if err := json.NewDecoder(r.Body).Decode(&offdayReq); err != nil {
		slog.Error("Attendance offday decode error", "error", err)
		response.Fail(w, "Invalid request format")
		return
	}

	rec, err := a.attendanceService.RecordOffday(r.Context(), middleware.UserID(r.Context()), offdayReq)
	if err != nil {
		slog.Error("Attendance offday service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.OK(w, response.Envelope{"record": rec})
}

// Leave implements AttendanceHandler.
func (a *AttendanceHandlerImpl) Leave(w http.ResponseWriter, r *http.Request) {
	var leaveReq attendance.LeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&leaveReq); err != nil {
		slog.Error("Attendance leave decode error", "error", err)
		response.Fail(w, "Invalid request format")
		return
	}

	rec, err := a.attendanceService.RecordLeave(r.Context(), middleware.UserID(r.Context()), leaveReq)
	if err != nil {
		slog.Error("Attendance leave service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.OK(w, response.Envelope{"record": rec})
}

// Delete implements AttendanceHandler.
func (a *AttendanceHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	var deleteReq attendance.DeleteRequest
	if err := json.NewDecoder(r.Body).Decode(&deleteReq); err != nil {
		slog.Error("Attendance delete decode error", "error", err)
		response.Fail(w, "Invalid request format")
		return
	}

	count, err := a.attendanceService.Delete(r.Context(), middleware.UserID(r.Context()), deleteReq)
	if err != nil {
		slog.Error("Attendance delete service error", "error", err)
		response.HandleError(w, err)
		return
	}

	message := "Record deleted"
	if count > 1 {
		message = fmt.Sprintf("Removed %d duplicate records", count)
	}
	response.OK(w, response.Envelope{"message": message, "deleted": count})
}

// Cleanup implements AttendanceHandler.
func (a *AttendanceHandlerImpl) Cleanup(w http.ResponseWriter, r *http.Request) {
	removed, err := a.attendanceService.CleanupDuplicates(r.Context())
	if err != nil {
		slog.Error("Attendance cleanup service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.OK(w, response.Envelope{"removed": removed})
}

// Stats implements AttendanceHandler.
func (a *AttendanceHandlerImpl) Stats(w http.ResponseWriter, r *http.Request) {
	month := r.URL.Query().Get("month")

	stats, err := a.attendanceService.Stats(r.Context(), middleware.UserID(r.Context()), month)
	if err != nil {
		slog.Error("Attendance stats service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.OK(w, response.Envelope{"stats": stats})
}

// History implements AttendanceHandler.
func (a *AttendanceHandlerImpl) History(w http.ResponseWriter, r *http.Request) {
	month := r.URL.Query().Get("month")

	records, err := a.attendanceService.History(r.Context(), middleware.UserID(r.Context()), month)
	if err != nil {
		slog.Error("Attendance history service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.OK(w, response.Envelope{"records": records})
}

// Months implements AttendanceHandler.
func (a *AttendanceHandlerImpl) Months(w http.ResponseWriter, r *http.Request) {
	months, err := a.attendanceService.Months(r.Context())
	if err != nil {
		slog.Error("Attendance months service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.OK(w, response.Envelope{"months": months})
}
