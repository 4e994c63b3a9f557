package form

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationError is the first rule failure of one field.
type ValidationError struct {
	Field   string   `json:"field"`
	Rule    string   `json:"rule,omitempty"`
	Args    []string `json:"args,omitempty"`
	Message string   `json:"message"`
}

// ValidationErrors collects field failures in field order.
type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "validation failed"
	}

	parts := make([]string, 0, len(ve))
	for _, err := range ve {
		parts = append(parts, fmt.Sprintf("%s: %s", err.Field, err.Message))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Add appends err, replacing an earlier entry for the same field.
func (ve *ValidationErrors) Add(err ValidationError) {
	for i := range *ve {
		if (*ve)[i].Field == err.Field {
			(*ve)[i] = err
			return
		}
	}
	*ve = append(*ve, err)
}

func (ve ValidationErrors) Has(field string) bool {
	_, ok := ve.Get(field)
	return ok
}

// Get returns the failure of field.
func (ve ValidationErrors) Get(field string) (ValidationError, bool) {
	for _, err := range ve {
		if err.Field == field {
			return err, true
		}
	}
	return ValidationError{}, false
}

func (ve ValidationErrors) Fields() []string {
	fields := make([]string, 0, len(ve))
	for _, err := range ve {
		fields = append(fields, err.Field)
	}
	return fields
}

// Messages maps field names to messages.
func (ve ValidationErrors) Messages() map[string]string {
	m := make(map[string]string, len(ve))
	for _, err := range ve {
		m[err.Field] = err.Message
	}
	return m
}

func (ve ValidationErrors) IsEmpty() bool {
	return len(ve) == 0
}

// ExtractValidationErrors extracts ValidationErrors from an error.
func ExtractValidationErrors(err error) ValidationErrors {
	if err == nil {
		return nil
	}

	var validationErr ValidationErrors
	if errors.As(err, &validationErr) {
		return validationErr
	}

	return nil
}

func IsValidationError(err error) bool {
	if err == nil {
		return false
	}

	var validationErr ValidationErrors
	return errors.As(err, &validationErr)
}
