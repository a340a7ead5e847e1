package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/portalbd/employee-portal-go/internal/domain/attendance"
	"github.com/portalbd/employee-portal-go/internal/domain/auth"
	"github.com/portalbd/employee-portal-go/internal/domain/profile"
	"github.com/portalbd/employee-portal-go/internal/domain/session"
	"github.com/portalbd/employee-portal-go/internal/pkg/dateutil"
	"github.com/portalbd/employee-portal-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		FailWithDetails(w, "Validation failed", validationErrs.ToMap())
		return
	}

	switch {
	case errors.Is(err, session.ErrUnauthenticated):
		Unauthorized(w, "Unauthenticated")

	case errors.Is(err, auth.ErrInvalidCredentials):
		Fail(w, "Wrong id or password")
	case errors.Is(err, auth.ErrUserIDTaken):
		Conflict(w, "This id is already registered")

	case errors.Is(err, dateutil.ErrInvalidDate):
		Fail(w, "Invalid date format")

	case errors.Is(err, profile.ErrProfileNotFound):
		NotFound(w, "Please set up your profile first")
	case errors.Is(err, profile.ErrInvalidGross):
		Fail(w, "Gross salary is too low")

	case errors.Is(err, attendance.ErrNoRecordsForMonth):
		NotFound(w, "No records for this month")
	case errors.Is(err, attendance.ErrRecordNotFound):
		NotFound(w, "Attendance record not found")

	default:
		slog.Error("Unhandled error", "error", err)
		InternalServerError(w)
	}
}
