package service

import (
	"errors"
	"fmt"
	"strings"

	"go-shop-pos/pkg/validator"
)

// ErrValidation marks malformed or out-of-range input. Concrete field
// details are wrapped around it so handlers can match with errors.Is.
var ErrValidation = errors.New("validation failed")

func validationError(errs []*validator.ErrorResponse) error {
	first := errs[0]
	return fmt.Errorf("%w: field '%s' failed on tag '%s'", ErrValidation, first.FailedField, first.Tag)
}

// isRetryableConflict reports whether the error is transient contention that
// a bounded retry may resolve: serialization failures and deadlocks on
// postgres, busy/locked errors on sqlite.
func isRetryableConflict(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "deadlock") ||
		strings.Contains(msg, "serialization") ||
		strings.Contains(msg, "could not serialize") ||
		strings.Contains(msg, "database is locked") ||
		strings.Contains(msg, "busy")
}
