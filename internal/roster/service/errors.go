package service

import (
	"errors"
	"maps"
	"slices"
	"strings"
)

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrVersionNotFound = errors.New("version not found")

	ErrSelfDelete     = errors.New("cannot delete your own account")
	ErrSelfDeactivate = errors.New("cannot deactivate your own account")
	ErrLastAdmin      = errors.New("cannot remove the last administrator")

	ErrUnsupportedFormat = errors.New("unsupported export format")
)

// ValidationError carries per-field reasons. Handlers render it as a 400
// validation_failed response.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	keys := slices.Sorted(maps.Keys(e.Fields))
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e.Fields[k])
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func invalid(field, reason string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: reason}}
}

// AsValidationError unwraps err into a *ValidationError.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	ok := errors.As(err, &ve)
	return ve, ok
}
