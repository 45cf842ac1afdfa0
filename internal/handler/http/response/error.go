package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/kintai-works/kintai-backend-go/internal/domain/attendance"
	"github.com/kintai-works/kintai-backend-go/internal/domain/auth"
	"github.com/kintai-works/kintai-backend-go/internal/domain/kiosk"
	"github.com/kintai-works/kintai-backend-go/internal/domain/policy"
	"github.com/kintai-works/kintai-backend-go/internal/domain/shift"
	"github.com/kintai-works/kintai-backend-go/internal/domain/staff"
	"github.com/kintai-works/kintai-backend-go/internal/domain/store"
	"github.com/kintai-works/kintai-backend-go/internal/domain/user"
	"github.com/kintai-works/kintai-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
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
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrUserNotFound), errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, auth.ErrGoogleNotRegistered), errors.Is(err, auth.ErrGoogleEmailNotVerified):
		Forbidden(w, err.Error())
	case errors.Is(err, auth.ErrInvalidOAuthState):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, user.ErrUserEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, user.ErrUserInactive):
		Forbidden(w, "User is inactive")
	case errors.Is(err, kiosk.ErrKioskTokenRequired):
		Forbidden(w, err.Error())

	// Store domain errors
	case errors.Is(err, store.ErrStoreNotFound):
		NotFound(w, "Store not found")
	case errors.Is(err, store.ErrStoreNameExists):
		Conflict(w, "Store with this name already exists")
	case errors.Is(err, store.ErrStoreInactive):
		Forbidden(w, "Store is inactive")

	// Staff domain errors
	case errors.Is(err, staff.ErrStaffNotFound):
		NotFound(w, "Staff not found")
	case errors.Is(err, staff.ErrStaffNotActive):
		Conflict(w, "Staff is not active")
	case errors.Is(err, staff.ErrStaffAlreadyRetired):
		Conflict(w, "Staff is already retired")
	case errors.Is(err, staff.ErrStaffHasAttendance):
		Conflict(w, "Staff has attendance records and can only be retired")
	case errors.Is(err, staff.ErrStaffStoreMismatch):
		BadRequest(w, err.Error(), nil)

	// Policy domain errors
	case errors.Is(err, policy.ErrPolicyNotFound):
		NotFound(w, "Policy not found")
	case errors.Is(err, policy.ErrInvalidRoundingUnit), errors.Is(err, policy.ErrInvalidShiftStart):
		BadRequest(w, err.Error(), nil)

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrClockOutWithoutClockIn):
		Conflict(w, err.Error())
	case errors.Is(err, attendance.ErrInvalidPunchType), errors.Is(err, attendance.ErrClockOutBeforeClockIn):
		BadRequest(w, err.Error(), nil)

	// Shift domain errors
	case errors.Is(err, shift.ErrTemplateNotFound):
		NotFound(w, "Shift template not found")
	case errors.Is(err, shift.ErrShiftNotFound):
		NotFound(w, "Shift not found")
	case errors.Is(err, shift.ErrTemplateCodeExists):
		Conflict(w, "Shift template with this code already exists")
	case errors.Is(err, shift.ErrTemplateInactive), errors.Is(err, shift.ErrTemplateStoreMismatch):
		BadRequest(w, err.Error(), nil)

	// Default
	default:
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
