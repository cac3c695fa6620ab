package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/aussiebroadwan/roster/internal/roster/service"
	"github.com/aussiebroadwan/roster/pkg/httpx"
	"github.com/aussiebroadwan/roster/pkg/rostersdk"
	"github.com/aussiebroadwan/roster/pkg/slogx"
)

// maxJSONBody caps JSON request bodies.
const maxJSONBody = 1 << 20

// decodeJSON reads the request body into v, writing a 400 on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxJSONBody)).Decode(v); err != nil {
		slogx.FromContext(r.Context()).Warn("failed to parse request", "err", err)
		httpx.WriteError(w, http.StatusBadRequest, rostersdk.ErrorCodeBadRequest, "Request body must be valid JSON")
		return false
	}
	return true
}

func writeValidation(w http.ResponseWriter, details map[string]string) {
	httpx.WriteJSON(w, http.StatusBadRequest, rostersdk.ValidationErrorResponse{
		Error:   rostersdk.ErrorCodeValidation,
		Message: "Validation failed",
		Details: details,
	})
}

// writeServiceError maps a service error onto its response. Unknown errors
// are logged and reported as a generic 500.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	if ve, ok := service.AsValidationError(err); ok {
		writeValidation(w, ve.Fields)
		return
	}

	code, errCode, msg := statusOf(err)
	if code == http.StatusInternalServerError {
		slogx.FromContext(r.Context()).Error("request failed", "err", err)
	}
	httpx.WriteError(w, code, errCode, msg)
}

func statusOf(err error) (int, string, string) {
	switch {
	case errors.Is(err, service.ErrUserNotFound):
		return http.StatusNotFound, rostersdk.ErrorCodeNotFound, "User not found"
	case errors.Is(err, service.ErrVersionNotFound):
		return http.StatusNotFound, rostersdk.ErrorCodeNotFound, "Version not found"

	case errors.Is(err, service.ErrSelfDelete):
		return http.StatusBadRequest, rostersdk.ErrorCodeValidation, "You cannot delete your own account"
	case errors.Is(err, service.ErrSelfDeactivate):
		return http.StatusBadRequest, rostersdk.ErrorCodeValidation, "You cannot deactivate your own account"
	case errors.Is(err, service.ErrLastAdmin):
		return http.StatusBadRequest, rostersdk.ErrorCodeValidation, "At least one administrator must remain"
	case errors.Is(err, service.ErrUnsupportedFormat):
		return http.StatusBadRequest, rostersdk.ErrorCodeBadRequest, "Unsupported export format. Only csv is available."

	// ErrTooManyAttempts wraps ErrAccountLocked and must be matched first.
	case errors.Is(err, service.ErrTooManyAttempts):
		return http.StatusBadRequest, rostersdk.ErrorCodeAccountLock,
			"Account is locked due to multiple failed attempts. Please try again later."
	case errors.Is(err, service.ErrAccountLocked):
		return http.StatusBadRequest, rostersdk.ErrorCodeAccountLock, "Account is locked. Please try again later."
	case errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized, rostersdk.ErrorCodeUnauthorized, "Check your login credentials and try again"
	case errors.Is(err, service.ErrMFARequired):
		return http.StatusUnauthorized, rostersdk.ErrorCodeMFARequired, "A TOTP code is required"

	case errors.Is(err, service.ErrInvalidTOTPCode):
		return http.StatusBadRequest, rostersdk.ErrorCodeBadRequest, "Invalid TOTP code"
	case errors.Is(err, service.ErrMFAAlreadyEnabled):
		return http.StatusBadRequest, rostersdk.ErrorCodeBadRequest, "MFA is already enabled for this user"
	case errors.Is(err, service.ErrMFANotEnrolled):
		return http.StatusBadRequest, rostersdk.ErrorCodeBadRequest, "Start TOTP enrollment first"
	case errors.Is(err, service.ErrMFANotEnabled):
		return http.StatusBadRequest, rostersdk.ErrorCodeBadRequest, "MFA is not enabled for this user"

	case errors.Is(err, service.ErrAvatarEmpty):
		return http.StatusBadRequest, rostersdk.ErrorCodeBadRequest, "No file uploaded"
	case errors.Is(err, service.ErrAvatarTooLarge):
		return http.StatusBadRequest, rostersdk.ErrorCodeBadRequest, "File is too large. Maximum file size is 2MB."
	case errors.Is(err, service.ErrAvatarType):
		return http.StatusBadRequest, rostersdk.ErrorCodeBadRequest, "Invalid file type. Only JPG, PNG and GIF are allowed."
	case errors.Is(err, service.ErrNoCustomAvatar):
		return http.StatusBadRequest, rostersdk.ErrorCodeBadRequest, "User does not have a custom avatar"

	case errors.Is(err, service.ErrBootstrapDisabled):
		return http.StatusNotFound, rostersdk.ErrorCodeNotFound, "Bootstrap endpoint is not enabled"
	case errors.Is(err, service.ErrBootstrapAlready):
		return http.StatusUnauthorized, rostersdk.ErrorCodeUnauthorized, "System has already been bootstrapped"
	case errors.Is(err, service.ErrBootstrapUnauthorized):
		return http.StatusUnauthorized, rostersdk.ErrorCodeUnauthorized, "Invalid bootstrap token"
	}
	return http.StatusInternalServerError, rostersdk.ErrorCodeServerError, "An internal error occurred"
}

// queryInt reads the first non-empty of names as a non-negative integer.
// Bad values are reported into details.
func queryInt(q url.Values, details map[string]string, names ...string) int {
	for _, name := range names {
		v := q.Get(name)
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			details[name] = "must be a non-negative integer"
			return 0
		}
		return n
	}
	return 0
}

// queryBool reads an optional boolean; absent means nil.
func queryBool(q url.Values, details map[string]string, name string) *bool {
	v := q.Get(name)
	if v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		details[name] = "must be true or false"
		return nil
	}
	return &b
}
