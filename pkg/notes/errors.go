package notes

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMissingSyncPath is returned when the settings store has no sync_path key.
	ErrMissingSyncPath = errors.New("no sync path configured")

	// ErrSyncPathNotString is returned when sync_path holds a non-string value.
	ErrSyncPathNotString = errors.New("sync path is not a string")

	// ErrTypeMismatch is returned when a stored value does not match its
	// column's declared type.
	ErrTypeMismatch = errors.New("column type mismatch")

	// ErrMissingField is returned when a required column is absent from a
	// record or holds NULL.
	ErrMissingField = errors.New("required field is missing")

	// ErrInvalidBase64 is returned when a stored image payload is not valid
	// standard base64.
	ErrInvalidBase64 = errors.New("invalid base64 payload")
)

// ConfigurationError represents a missing or invalid setting.
type ConfigurationError struct {
	Key   string // Setting key ("sync_path")
	Cause error  // Underlying error
}

// Error implements the error interface.
func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error [key=%s]: %v", e.Key, e.Cause)
}

// Unwrap returns the underlying cause error.
func (e *ConfigurationError) Unwrap() error {
	return e.Cause
}

// NewConfigurationError creates a new ConfigurationError.
func NewConfigurationError(key string, cause error) *ConfigurationError {
	return &ConfigurationError{
		Key:   key,
		Cause: cause,
	}
}

// IOError represents a filesystem failure while exporting.
type IOError struct {
	Operation string // Operation that failed ("create_dir", "write_page", "write_image")
	Path      string // Path being written
	Record    string // Record being written ("page 2", "image 3_7"), empty for directory operations
	Cause     error  // Underlying error
}

// Error implements the error interface.
func (e *IOError) Error() string {
	var b strings.Builder
	b.WriteString("io error [operation=")
	b.WriteString(e.Operation)
	if e.Record != "" {
		b.WriteString(", record=")
		b.WriteString(e.Record)
	}
	if e.Path != "" {
		b.WriteString(", path=")
		b.WriteString(e.Path)
	}
	fmt.Fprintf(&b, "]: %v", e.Cause)
	return b.String()
}

// Unwrap returns the underlying cause error.
func (e *IOError) Unwrap() error {
	return e.Cause
}

// NewIOError creates a new IOError.
func NewIOError(operation, path, record string, cause error) *IOError {
	return &IOError{
		Operation: operation,
		Path:      path,
		Record:    record,
		Cause:     cause,
	}
}

// DatabaseError represents a connection, bind, or execution failure.
type DatabaseError struct {
	Operation string // Operation that failed ("acquire", "bind", "execute", "query")
	SQL       string // Statement being run, if any
	Cause     error  // Underlying error
}

// Error implements the error interface.
func (e *DatabaseError) Error() string {
	return fmt.Sprintf("database error [operation=%s]: %v", e.Operation, e.Cause)
}

// Unwrap returns the underlying cause error.
func (e *DatabaseError) Unwrap() error {
	return e.Cause
}

// NewDatabaseError creates a new DatabaseError.
func NewDatabaseError(operation, sql string, cause error) *DatabaseError {
	return &DatabaseError{
		Operation: operation,
		SQL:       sql,
		Cause:     cause,
	}
}

// DecodeError represents a value that could not be converted to the shape its
// consumer expects: a row-level type mismatch during marshaling, a missing or
// mistyped field while reading a record, or an invalid base64 image payload.
type DecodeError struct {
	Row    int    // Zero-based row index in the result set, -1 when not applicable
	Column string // Column name
	Record string // Record identifier ("page 2"), empty during marshaling
	Cause  error  // Underlying error
}

// Error implements the error interface.
func (e *DecodeError) Error() string {
	if e.Record != "" {
		return fmt.Sprintf("decode error [record=%s, column=%s]: %v", e.Record, e.Column, e.Cause)
	}
	return fmt.Sprintf("decode error [row=%d, column=%s]: %v", e.Row, e.Column, e.Cause)
}

// Unwrap returns the underlying cause error.
func (e *DecodeError) Unwrap() error {
	return e.Cause
}

// NewDecodeError creates a DecodeError for a cell of a result set.
func NewDecodeError(row int, column string, cause error) *DecodeError {
	return &DecodeError{
		Row:    row,
		Column: column,
		Cause:  cause,
	}
}

// NewRecordDecodeError creates a DecodeError for a field of an identified record.
func NewRecordDecodeError(record, column string, cause error) *DecodeError {
	return &DecodeError{
		Row:    -1,
		Column: column,
		Record: record,
		Cause:  cause,
	}
}

// PageRecord formats the identifier used in errors and logs for a page.
func PageRecord(id int64) string {
	return fmt.Sprintf("page %d", id)
}

// ImageRecord formats the identifier used in errors and logs for an image.
func ImageRecord(pageID, imageID int64) string {
	return fmt.Sprintf("image %d_%d", pageID, imageID)
}
