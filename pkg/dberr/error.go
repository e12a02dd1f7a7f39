package dberr

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
)

// ErrorCategory classifies errors by their nature and appropriate handling strategy.
type ErrorCategory int

const (
	// ErrCategoryUser represents errors caused by invalid user input or operations.
	// Examples: unknown table, unknown column, duplicate key on insert.
	// These errors are typically fixable by modifying the user's request.
	ErrCategoryUser ErrorCategory = iota

	// ErrCategoryData represents errors related to stored data integrity.
	// Examples: a persisted row whose value count does not match the schema.
	ErrCategoryData

	// ErrCategorySystem represents errors requiring operator intervention.
	// Examples: disk full, missing data directory, rename failures.
	ErrCategorySystem
)

// Error codes for the engine's failure taxonomy. Every operator validates its
// table and column references before streaming and fails with one of these,
// carrying the offending identifier in Detail.
const (
	CodeNotFound       = "NOT_FOUND"
	CodeCorruptRow     = "CORRUPT_ROW"
	CodeTypeMismatch   = "TYPE_MISMATCH"
	CodeDuplicateKey   = "DUPLICATE_KEY"
	CodeColumnNotFound = "COLUMN_NOT_FOUND"
)

// DBError represents a structured engine error with rich context information.
type DBError struct {
	// Code is a unique identifier for this error type (e.g., "DUPLICATE_KEY").
	Code string

	// Category classifies the error for appropriate handling strategy.
	Category ErrorCategory

	// Message is a human-readable description of what went wrong.
	Message string

	// Detail names the specific offender (table, column, or value).
	Detail string

	// Hint suggests how the user might fix or work around this error.
	Hint string

	// Operation identifies the operation being performed when the error occurred.
	// Examples: "Insert", "ExternalSort", "NestedLoopJoin".
	Operation string

	// Component identifies the component where the error originated.
	// Examples: "TableFile", "Catalog", "MutationEngine".
	Component string

	// Cause is the underlying error that triggered this one.
	Cause error

	// Stack contains the call stack where this error was created.
	Stack []uintptr
}

// New creates a new DBError with the specified code, category, and message.
func New(category ErrorCategory, code, message string) *DBError {
	return &DBError{
		Code:     code,
		Category: category,
		Message:  message,
		Stack:    captureStack(),
	}
}

// Wrap wraps an existing error with engine-specific context information.
// If the error is already a DBError, it enriches the existing error with
// operation and component context (only if not already set).
func Wrap(err error, code, operation, component string) *DBError {
	if err == nil {
		return nil
	}

	if dbErr, ok := err.(*DBError); ok {
		if dbErr.Operation == "" {
			dbErr.Operation = operation
		}
		if dbErr.Component == "" {
			dbErr.Component = component
		}
		return dbErr
	}

	return &DBError{
		Code:      code,
		Category:  ErrCategorySystem,
		Message:   err.Error(),
		Operation: operation,
		Component: component,
		Cause:     err,
		Stack:     captureStack(),
	}
}

// NewNotFound reports a table that does not exist in the catalog.
func NewNotFound(table string) *DBError {
	err := New(ErrCategoryUser, CodeNotFound, "table not found")
	err.Detail = fmt.Sprintf("table %q does not exist", table)
	return err
}

// NewCorruptRow reports a persisted row whose value count disagrees with the
// table's declared column count.
func NewCorruptRow(table string, rowNumber, got, want int) *DBError {
	err := New(ErrCategoryData, CodeCorruptRow, "corrupt row")
	err.Detail = fmt.Sprintf("table %q row %d has %d values, schema declares %d columns",
		table, rowNumber, got, want)
	return err
}

// NewTypeMismatch reports a non-numeric value encountered where a numeric
// operation required one.
func NewTypeMismatch(column, value, operation string) *DBError {
	err := New(ErrCategoryUser, CodeTypeMismatch, "type mismatch")
	err.Detail = fmt.Sprintf("value %q in column %q is not numeric", value, column)
	err.Operation = operation
	return err
}

// NewDuplicateKey reports an insert or update that would duplicate an existing
// primary key value.
func NewDuplicateKey(table, keyColumn, value string) *DBError {
	err := New(ErrCategoryUser, CodeDuplicateKey, "duplicate key")
	err.Detail = fmt.Sprintf("value %q already exists in primary key column %q of table %q",
		value, keyColumn, table)
	return err
}

// NewColumnNotFound reports an operator referencing a column the table does
// not declare.
func NewColumnNotFound(table, column string) *DBError {
	err := New(ErrCategoryUser, CodeColumnNotFound, "column not found")
	err.Detail = fmt.Sprintf("column %q does not exist in table %q", column, table)
	return err
}

// HasCode reports whether err is, or wraps, a DBError carrying the given
// code.
func HasCode(err error, code string) bool {
	var dbErr *DBError
	if errors.As(err, &dbErr) {
		return dbErr.Code == code
	}
	return false
}

// captureStack captures the current call stack for debugging purposes.
// It skips the first 3 frames to exclude captureStack, New/Wrap, and the
// immediate caller, focusing on the actual error origin.
func captureStack() []uintptr {
	const depth = 32
	var pcs [depth]uintptr
	n := runtime.Callers(3, pcs[:])
	return pcs[0:n]
}

// Error implements the standard Go error interface.
//
// The format follows the pattern:
// [ERROR_CODE] Message: Detail (operation: Operation, component: Component) caused by: underlying error
func (e *DBError) Error() string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("[%s] %s", e.Code, e.Message))

	if e.Detail != "" {
		b.WriteString(fmt.Sprintf(": %s", e.Detail))
	}

	if e.Operation != "" {
		b.WriteString(fmt.Sprintf(" (operation: %s", e.Operation))
		if e.Component != "" {
			b.WriteString(fmt.Sprintf(", component: %s", e.Component))
		}
		b.WriteString(")")
	}

	if e.Cause != nil {
		b.WriteString(fmt.Sprintf(" caused by: %v", e.Cause))
	}

	return b.String()
}

// Unwrap returns the underlying cause error, enabling error chain traversal
// with Go's standard error handling functions like errors.Is and errors.As.
func (e *DBError) Unwrap() error {
	return e.Cause
}

// FormatStack returns a human-readable stack trace for debugging purposes.
func (e *DBError) FormatStack() string {
	if len(e.Stack) == 0 {
		return ""
	}

	var b strings.Builder
	frames := runtime.CallersFrames(e.Stack)

	b.WriteString("Stack trace:\n")
	for {
		f, more := frames.Next()
		b.WriteString(fmt.Sprintf("  %s\n    %s:%d\n",
			f.Function, f.File, f.Line))
		if !more {
			break
		}
	}

	return b.String()
}
