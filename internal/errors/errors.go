// Package errors provides error handling utilities.
package errors

import (
	"fmt"
)

// Type identifies the category of error
type Type string

const (
	// TypeMissingField indicates a blank required input (name, quantity, price)
	TypeMissingField Type = "MISSING_FIELD"

	// TypeInvalidPrice indicates a price that is not a number
	TypeInvalidPrice Type = "INVALID_PRICE"

	// TypeMissingUnit indicates a numeric quantity with no unit suffix
	TypeMissingUnit Type = "MISSING_UNIT"

	// TypeInvalidQuantityFormat indicates text matching neither quantity pattern
	TypeInvalidQuantityFormat Type = "INVALID_QUANTITY_FORMAT"

	// TypeUnsupportedUnit indicates a unit outside the conversion table
	TypeUnsupportedUnit Type = "UNSUPPORTED_UNIT"

	// TypeNonPositiveQuantity indicates a parsed mass of zero or less
	TypeNonPositiveQuantity Type = "NON_POSITIVE_QUANTITY"

	// TypeFile indicates an unreadable or malformed input file
	TypeFile Type = "FILE_ERROR"

	// TypeRowLimit indicates a batch over the row cap
	TypeRowLimit Type = "ROW_LIMIT"

	// TypeExport indicates a failure writing an output file
	TypeExport Type = "EXPORT_ERROR"

	// TypeConfig indicates a configuration error
	TypeConfig Type = "CONFIG_ERROR"

	// TypeInternal indicates an internal error
	TypeInternal Type = "INTERNAL_ERROR"
)

// Error represents a domain error with context
type Error struct {
	Type    Type   `json:"type"`
	Message string `json:"message"`
	Cause   error  `json:"-"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is checks if the error is of a specific type
func (e *Error) Is(t Type) bool {
	return e.Type == t
}

// New creates a new error
func New(errType Type, message string) *Error {
	return &Error{
		Type:    errType,
		Message: message,
	}
}

// Newf creates a new formatted error
func Newf(errType Type, format string, args ...interface{}) *Error {
	return &Error{
		Type:    errType,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap wraps an error with context
func Wrap(errType Type, message string, cause error) *Error {
	return &Error{
		Type:    errType,
		Message: message,
		Cause:   cause,
	}
}

// IsType checks if an error is of a specific type
func IsType(err error, t Type) bool {
	if e, ok := err.(*Error); ok {
		return e.Type == t
	}
	return false
}

// MissingField creates a blank-input error
func MissingField(message string) *Error {
	return New(TypeMissingField, message)
}

// InvalidPrice creates a non-numeric-price error
func InvalidPrice(message string) *Error {
	return New(TypeInvalidPrice, message)
}

// MissingUnit creates a missing-unit error
func MissingUnit(message string) *Error {
	return New(TypeMissingUnit, message)
}

// InvalidQuantityFormat creates an unparseable-quantity error
func InvalidQuantityFormat(message string) *Error {
	return New(TypeInvalidQuantityFormat, message)
}

// UnsupportedUnit creates an unknown-unit error
func UnsupportedUnit(unit string) *Error {
	return Newf(TypeUnsupportedUnit, "Unsupported unit '%s'. Please use kg, g, gm, mg, l, or ml", unit)
}

// NonPositiveQuantity creates a zero-or-negative mass error
func NonPositiveQuantity(message string) *Error {
	return New(TypeNonPositiveQuantity, message)
}

// File creates a file handling error
func File(message string, cause error) *Error {
	return Wrap(TypeFile, message, cause)
}

// RowLimit creates a batch-too-large error
func RowLimit(limit int) *Error {
	return Newf(TypeRowLimit, "File contains more than %d items. Maximum allowed is %d.", limit, limit)
}

// Export creates an output-write error
func Export(message string, cause error) *Error {
	return Wrap(TypeExport, message, cause)
}

// Internal creates an internal error
func Internal(message string, cause error) *Error {
	return Wrap(TypeInternal, message, cause)
}
