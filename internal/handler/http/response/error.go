package response

import (
	"errors"
	"net/http"

	"github.com/paietrack/paietrack-backend-go/internal/domain/attendance"
	"github.com/paietrack/paietrack-backend-go/internal/domain/auth"
	"github.com/paietrack/paietrack-backend-go/internal/domain/company"
	"github.com/paietrack/paietrack-backend-go/internal/domain/employee"
	"github.com/paietrack/paietrack-backend-go/internal/domain/payroll"
	"github.com/paietrack/paietrack-backend-go/internal/domain/user"
	"github.com/paietrack/paietrack-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrAccountDisabled):
		Forbidden(w, "Account is disabled")
	case errors.Is(err, auth.ErrEmailAlreadyExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, auth.ErrUserNotFound):
		NotFound(w, "User not found")

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrEmailAlreadyExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, user.ErrPermissionDenied):
		Forbidden(w, "Permission denied")
	case errors.Is(err, user.ErrAdminAccessRequired):
		Forbidden(w, "Admin access required")

	// Company domain errors
	case errors.Is(err, company.ErrCompanyNotFound):
		NotFound(w, "Company not found")
	case errors.Is(err, company.ErrCompanyAlreadyExists):
		Conflict(w, "User already owns a company")
	case errors.Is(err, company.ErrCompanyAccessDenied):
		Forbidden(w, "Company access denied")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrQRTokenNotFound):
		NotFound(w, "Unknown QR token")
	case errors.Is(err, employee.ErrEmployeeNotActive):
		Conflict(w, "Employee is not active")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		BadRequest(w, "Already checked in today", nil)
	case errors.Is(err, attendance.ErrAlreadyCheckedOut):
		BadRequest(w, "Already checked out today", nil)
	case errors.Is(err, attendance.ErrNotCheckedIn):
		BadRequest(w, "No check-in recorded today", nil)
	case errors.Is(err, attendance.ErrNotWorkingDay):
		BadRequest(w, "Not a working day", nil)
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")

	// Payroll domain errors
	case errors.Is(err, payroll.ErrPayRunNotFound):
		NotFound(w, "Pay run not found")
	case errors.Is(err, payroll.ErrPayRunAlreadyGenerated):
		BadRequest(w, "Pay run already generated", nil)
	case errors.Is(err, payroll.ErrPayRunOverlap):
		Conflict(w, "A pay run already covers this period")
	case errors.Is(err, payroll.ErrBulletinNotFound):
		NotFound(w, "Bulletin not found")
	case errors.Is(err, payroll.ErrNoActiveEmployees):
		BadRequest(w, "No active employees to pay", nil)
	case errors.Is(err, payroll.ErrInvalidPaymentAmount):
		BadRequest(w, "Payment amount must be greater than zero", nil)
	case errors.Is(err, payroll.ErrPaymentExceedsBalance):
		BadRequest(w, "Payment exceeds remaining balance", nil)
	case errors.Is(err, payroll.ErrBulletinAlreadyPaid):
		Conflict(w, "Bulletin is already fully paid")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
