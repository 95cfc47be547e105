package errors

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// FieldErrors maps a field name to its validation messages
type FieldErrors map[string][]string

// String lists the fields in name order
func (f FieldErrors) String() string {
	names := make([]string, 0, len(f))
	for field := range f {
		names = append(names, field)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, field := range names {
		parts = append(parts, fmt.Sprintf("%s: %s", field, strings.Join(f[field], ", ")))
	}
	return strings.Join(parts, "; ")
}

// ValidationBuilder accumulates field errors. Build returns an
// InvalidArgument Error with the fields under the "fields" meta key, or nil
// when nothing was added.
type ValidationBuilder struct {
	fields FieldErrors
}

// NewValidationBuilder creates a new validation builder
func NewValidationBuilder() *ValidationBuilder {
	return &ValidationBuilder{fields: FieldErrors{}}
}

// Field adds a validation error for a field
func (vb *ValidationBuilder) Field(field, message string) *ValidationBuilder {
	vb.fields[field] = append(vb.fields[field], message)
	return vb
}

// Fieldf adds a formatted validation error for a field
func (vb *ValidationBuilder) Fieldf(field, format string, args ...any) *ValidationBuilder {
	return vb.Field(field, fmt.Sprintf(format, args...))
}

// RequiredField adds a required field error
func (vb *ValidationBuilder) RequiredField(field string) *ValidationBuilder {
	return vb.Field(field, "is required")
}

// HasErrors reports whether any field error was added
func (vb *ValidationBuilder) HasErrors() bool {
	return len(vb.fields) > 0
}

// Build returns the accumulated error, nil when there is none
func (vb *ValidationBuilder) Build() error {
	if !vb.HasErrors() {
		return nil
	}
	return InvalidArgumentf("validation failed: %s", vb.fields).WithMeta("fields", vb.fields)
}

// ValidateRequired checks if a string field is required
func ValidateRequired(field, value string, vb *ValidationBuilder) {
	if strings.TrimSpace(value) == "" {
		vb.RequiredField(field)
	}
}

// ValidateRange checks if a value is within a range
func ValidateRange(field string, value, minValue, maxValue int, vb *ValidationBuilder) {
	if value < minValue || value > maxValue {
		vb.Fieldf(field, "must be between %d and %d", minValue, maxValue)
	}
}

// ValidatePositive checks that a duration is greater than zero
func ValidatePositive(field string, value time.Duration, vb *ValidationBuilder) {
	if value <= 0 {
		vb.Field(field, "must be positive")
	}
}

// ValidateEnum checks if a value is in a list of allowed values
func ValidateEnum(field, value string, allowed []string, vb *ValidationBuilder) {
	for _, a := range allowed {
		if value == a {
			return
		}
	}
	vb.Fieldf(field, "must be one of: %s", strings.Join(allowed, ", "))
}
