// Package service implements the application services in front of the store:
// input validation, logging, and orchestration of storage operations.
// Validation failures are the one error class meant for direct display to
// the user, as field-level messages.
package service

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/konnash/konnash/internal/dateutil"
)

// ValidationError reports a rejected input field. It is returned before any
// storage operation runs, so a validation failure never mutates state.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// phonePattern is the local mobile format: 0 followed by nine digits
// (e.g. 0611165517).
var phonePattern = regexp.MustCompile(`^0[0-9]{9}$`)

func validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return &ValidationError{Field: "name", Message: "must not be empty"}
	}
	return nil
}

// validatePhone accepts an empty phone; a non-empty one must match the local
// mobile format.
func validatePhone(phone string) error {
	if phone == "" {
		return nil
	}
	if !phonePattern.MatchString(phone) {
		return &ValidationError{Field: "phone", Message: "must be 0 followed by 9 digits"}
	}
	return nil
}

func validateAmount(field string, amount int64) error {
	if amount <= 0 {
		return &ValidationError{Field: field, Message: "must be greater than zero"}
	}
	return nil
}

func validateDate(field string, date int) error {
	if !dateutil.Valid(date) {
		return &ValidationError{Field: field, Message: "must be a YYYYMMDD date"}
	}
	return nil
}
