package errors

import (
	"errors"
	"fmt"

	"github.com/salmonumbrella/grid-cli/internal/table"
)

// ValidationError represents a dataset or input validation failure.
// Row is the zero-based record index, or -1 when not tied to a record.
type ValidationError struct {
	Field   string
	Row     int
	Message string
}

func (e *ValidationError) Error() string {
	if e.Row >= 0 {
		return fmt.Sprintf("validation error for %s (row %d): %s", e.Field, e.Row, e.Message)
	}
	return fmt.Sprintf("validation error for %s: %s", e.Field, e.Message)
}

// NewValidationError creates a ValidationError not tied to a record.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Row: -1, Message: message}
}

// UserError represents an error caused by user input or configuration.
// Suggestion can provide a concrete fix for the user.
type UserError struct {
	Message    string
	Suggestion string
	Err        error
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a UserError with a message and optional suggestion.
func NewUserError(message, suggestion string) *UserError {
	return &UserError{Message: message, Suggestion: suggestion}
}

// WrapUserError wraps an underlying error with a user-facing message and suggestion.
func WrapUserError(err error, message, suggestion string) *UserError {
	return &UserError{Message: message, Suggestion: suggestion, Err: err}
}

// Type checkers
func IsValidationError(err error) bool {
	var e *ValidationError
	return errors.As(err, &e)
}

func IsUserError(err error) bool {
	var e *UserError
	return errors.As(err, &e)
}

// IsTableError reports whether err comes from schema construction or a build.
func IsTableError(err error) bool {
	return table.IsSchemaError(err) || table.IsAccessorError(err) || table.IsFormatterError(err)
}

// UserSuggestion returns a suggestion string if err is a UserError.
func UserSuggestion(err error) string {
	var ue *UserError
	if errors.As(err, &ue) {
		return ue.Suggestion
	}
	return ""
}

// FromTableError wraps schema, accessor and formatter failures in a UserError
// with a suggestion. Other errors are returned unchanged.
func FromTableError(err error) error {
	if err == nil {
		return nil
	}

	var schemaErr *table.SchemaError
	if errors.As(err, &schemaErr) {
		suggestion := "Check the column definitions: ids must be unique and function columns need an explicit id"
		if errors.Is(err, table.ErrUnknownColumn) {
			suggestion = "Run 'grid schema' to list column ids"
		}
		return WrapUserError(err, "invalid column schema", suggestion)
	}

	var accErr *table.AccessorError
	if errors.As(err, &accErr) {
		return WrapUserError(err, "table build failed",
			fmt.Sprintf("Row %d has data the %q column cannot read; run 'grid validate' to inspect the dataset", accErr.RowIndex, accErr.ColumnID))
	}

	var fmtErr *table.FormatterError
	if errors.As(err, &fmtErr) {
		return WrapUserError(err, "table build failed",
			fmt.Sprintf("Row %d has a value the %q column cannot display; run 'grid validate' to inspect the dataset", fmtErr.RowIndex, fmtErr.ColumnID))
	}

	return err
}

// FormatValidationErrors renders a list of validation problems, one per line.
func FormatValidationErrors(errs []*ValidationError) string {
	var result string
	for _, e := range errs {
		result += fmt.Sprintf("  • %s\n", e.Error())
	}
	return result
}
