// =============================================================================
// Shipping Order Converter - Validation Engine
// =============================================================================
//
// This module checks converted orders against the columns the upload
// template marks as required. It never blocks an export: every finding is a
// warning that the operator may choose to fix in the source file.
//
// CHECKS:
//   1. Required fields: recipient name, phone, address, product name and
//      quantity must not be empty
//   2. Quantities: every "；"-separated part must be a positive integer
//
// Phone numbers and addresses are not format checked.
//
// =============================================================================

package validation

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ginjaninja78/shipping-order-converter/internal/converter"
	"github.com/ginjaninja78/shipping-order-converter/internal/types"
	"github.com/ginjaninja78/shipping-order-converter/pkg/utils"
)

// =============================================================================
// VALIDATION ERROR TYPES
// =============================================================================

// Rules reported by ValidateRows.
const (
	RuleRequired = "required"
	RuleQuantity = "quantity"
)

// ValidationError represents a single validation warning.
type ValidationError struct {
	// Row is the 1-based position of the record in the checked slice.
	Row int

	// Field is the output field that failed validation.
	Field types.Field

	// Value is the actual value that failed validation.
	Value string

	// Rule is the validation rule that was violated.
	Rule string

	// Message is a human-readable message.
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("[WARNING] Row %d, Field '%s': %s", e.Row, e.Field, e.Message)
	}
	return fmt.Sprintf("[WARNING] Row %d, Field '%s': %s (value: '%s')",
		e.Row, e.Field, e.Message, e.Value)
}

// requiredFields are the template columns marked 必填.
var requiredFields = []types.Field{
	types.FieldRecipientName,
	types.FieldRecipientPhone,
	types.FieldDeliveryAddress,
	types.FieldProductName,
	types.FieldQuantity,
}

// =============================================================================
// VALIDATION FUNCTIONS
// =============================================================================

// ValidateRows checks every record and returns the warnings in row order.
func ValidateRows(rows []types.ConvertedRow) []*ValidationError {
	var errors []*ValidationError
	for i := range rows {
		errors = append(errors, ValidateRow(i+1, &rows[i])...)
	}
	return errors
}

// ValidateRow checks a single record. row is used for reporting only.
func ValidateRow(row int, record *types.ConvertedRow) []*ValidationError {
	var errors []*ValidationError

	for _, field := range requiredFields {
		if strings.TrimSpace(record.Get(field)) == "" {
			errors = append(errors, &ValidationError{
				Row:     row,
				Field:   field,
				Rule:    RuleRequired,
				Message: "required field is empty",
			})
		}
	}

	if quantity := record.Quantity; strings.TrimSpace(quantity) != "" {
		if msg := validateQuantity(quantity); msg != "" {
			errors = append(errors, &ValidationError{
				Row:     row,
				Field:   types.FieldQuantity,
				Value:   quantity,
				Rule:    RuleQuantity,
				Message: msg,
			})
		}
	}

	return errors
}

// validateQuantity returns an error message, or "" if every part of the
// quantity is a positive integer.
func validateQuantity(quantity string) string {
	for _, part := range strings.Split(quantity, converter.MultiValueSeparator) {
		n, err := strconv.ParseUint(strings.TrimSpace(part), 10, 64)
		if err != nil {
			return fmt.Sprintf("quantity %q is not a whole number", part)
		}
		if n == 0 {
			return "quantity must be at least 1"
		}
	}
	return ""
}

// =============================================================================
// ERROR REPORTING
// =============================================================================

// FormatErrors formats validation warnings for display.
func FormatErrors(errors []*ValidationError) string {
	if len(errors) == 0 {
		return "No validation warnings."
	}

	var builder strings.Builder
	fmt.Fprintf(&builder, "Validation completed with %d warning(s):\n\n", len(errors))
	for i, err := range errors {
		fmt.Fprintf(&builder, "%d. %s\n", i+1, err.Error())
	}
	return builder.String()
}

// LogEntries converts warnings into entries for utils.WriteErrorLog.
func LogEntries(errors []*ValidationError, fileName string) []utils.ErrorLogEntry {
	now := time.Now()
	entries := make([]utils.ErrorLogEntry, 0, len(errors))
	for _, err := range errors {
		entries = append(entries, utils.ErrorLogEntry{
			Timestamp:    now,
			FileName:     fileName,
			ErrorType:    err.Rule,
			ErrorMessage: err.Message,
			RowNumber:    err.Row,
			FieldName:    err.Field.String(),
			FieldValue:   err.Value,
		})
	}
	return entries
}
