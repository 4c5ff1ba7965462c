package table

import (
	"errors"
	"fmt"
)

// Schema validation failures, wrapped by SchemaError.
var (
	ErrNoSchema          = errors.New("schema is nil")
	ErrNoColumns         = errors.New("schema has no columns")
	ErrDuplicateColumnID = errors.New("duplicate column id")
	ErrMissingColumnID   = errors.New("function accessor requires an explicit id")
	ErrMissingAccessor   = errors.New("column has no accessor")
	ErrMissingHeader     = errors.New("column has no header")
	ErrUnknownColumn     = errors.New("unknown column id")
)

// SchemaError reports a malformed column schema. Position is the zero-based
// column position, or -1 when the failure is not tied to one column.
type SchemaError struct {
	ColumnID string
	Position int
	Err      error
}

func (e *SchemaError) Error() string {
	switch {
	case e.ColumnID != "":
		return fmt.Sprintf("schema error: column %q: %v", e.ColumnID, e.Err)
	case e.Position >= 0:
		return fmt.Sprintf("schema error: column %d: %v", e.Position, e.Err)
	default:
		return fmt.Sprintf("schema error: %v", e.Err)
	}
}

func (e *SchemaError) Unwrap() error {
	return e.Err
}

// AccessorError reports a failing function accessor. It aborts the build.
type AccessorError struct {
	ColumnID string
	RowIndex int
	Err      error
}

func (e *AccessorError) Error() string {
	return fmt.Sprintf("accessor for column %q failed at row %d: %v", e.ColumnID, e.RowIndex, e.Err)
}

func (e *AccessorError) Unwrap() error {
	return e.Err
}

// FormatterError reports a failing formatter. It aborts the build.
type FormatterError struct {
	ColumnID string
	RowIndex int
	Err      error
}

func (e *FormatterError) Error() string {
	return fmt.Sprintf("formatter for column %q failed at row %d: %v", e.ColumnID, e.RowIndex, e.Err)
}

func (e *FormatterError) Unwrap() error {
	return e.Err
}

// IsSchemaError reports whether err is or wraps a *SchemaError.
func IsSchemaError(err error) bool {
	var e *SchemaError
	return errors.As(err, &e)
}

// IsAccessorError reports whether err is or wraps an *AccessorError.
func IsAccessorError(err error) bool {
	var e *AccessorError
	return errors.As(err, &e)
}

// IsFormatterError reports whether err is or wraps a *FormatterError.
func IsFormatterError(err error) bool {
	var e *FormatterError
	return errors.As(err, &e)
}

// recovered converts a recovered panic payload into an error.
func recovered(p any) error {
	if err, ok := p.(error); ok {
		return fmt.Errorf("panic: %w", err)
	}
	return fmt.Errorf("panic: %v", p)
}
