package rostersdk

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// Error codes carried in the "error" field of error bodies.
const (
	ErrorCodeValidation   = "validation_failed"
	ErrorCodeBadRequest   = "bad_request"
	ErrorCodeNotFound     = "not_found"
	ErrorCodeUnauthorized = "unauthorized"
	ErrorCodeForbidden    = "forbidden"
	ErrorCodeAccountLock  = "account_locked"
	ErrorCodeMFARequired  = "mfa_required"
	ErrorCodeRateLimited  = "rate_limit_exceeded"
	ErrorCodeServerError  = "server_error"
)

// APIError is any non-2xx response from the service.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
	Details    map[string]string
}

func (e *APIError) Error() string {
	if len(e.Details) > 0 {
		return fmt.Sprintf("%d %s: %s %v", e.StatusCode, e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%d %s: %s", e.StatusCode, e.Code, e.Message)
}

// parseError turns an error body into *APIError. Bodies that are not JSON
// still produce an error carrying the status text.
func parseError(resp *http.Response, body []byte) error {
	var v ValidationErrorResponse
	if err := json.Unmarshal(body, &v); err == nil && v.Error != "" {
		return &APIError{
			StatusCode: resp.StatusCode,
			Code:       v.Error,
			Message:    v.Message,
			Details:    v.Details,
		}
	}

	return &APIError{
		StatusCode: resp.StatusCode,
		Code:       ErrorCodeServerError,
		Message:    fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
	}
}
