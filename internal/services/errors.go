package services

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Common service errors
var (
	ErrNotFound                = errors.New("record not found")
	ErrInvalidState            = errors.New("invalid state transition")
	ErrInvalidInput            = errors.New("invalid input")
	ErrDuplicateContractNumber = errors.New("contract number already exists")
	ErrUnitNotFound            = errors.New("unit not found")
	ErrUnitUnavailable         = errors.New("unit is not available")
	ErrTransactionFailure      = errors.New("contract could not be created")
	ErrCodeAllocation          = errors.New("could not allocate code")
)

// ValidationError carries per-field messages. It matches ErrInvalidInput with errors.Is.
type ValidationError struct {
	Details map[string]string
}

// NewValidationError creates an empty ValidationError
func NewValidationError() *ValidationError {
	return &ValidationError{Details: make(map[string]string)}
}

// Add records a message for field, keeping the first one reported
func (e *ValidationError) Add(field, message string) {
	if _, exists := e.Details[field]; !exists {
		e.Details[field] = message
	}
}

// HasErrors reports whether any field failed
func (e *ValidationError) HasErrors() bool {
	return len(e.Details) > 0
}

// OrNil returns e when it holds failures and nil otherwise
func (e *ValidationError) OrNil() error {
	if e.HasErrors() {
		return e
	}
	return nil
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Details))
	for field := range e.Details {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, e.Details[field]))
	}
	return fmt.Sprintf("%s: %s", ErrInvalidInput.Error(), strings.Join(parts, "; "))
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

func txFailure(step string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrTransactionFailure, step, err)
}
