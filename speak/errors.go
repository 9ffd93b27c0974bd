package speak

import (
	"errors"
	"fmt"
	"time"
)

// Common errors for the speech navigator.
var (
	// Content errors
	ErrContentUnavailable = errors.New("verse text is not available")

	// Navigation errors
	ErrNavigationOutOfRange = errors.New("navigation moved past the document edge")
	ErrNotInitialized       = errors.New("navigator has no reading session")

	// Persistence errors
	ErrPersistenceCorrupt    = errors.New("persisted verse reference is corrupt")
	ErrVersificationMismatch = errors.New("persisted verse does not exist in the document versification")
	ErrDocumentUnavailable   = errors.New("persisted document is not available")

	// Configuration errors
	ErrInvalidConfig     = errors.New("invalid configuration")
	ErrMissingDependency = errors.New("required dependency missing")
)

// IsRecoverableError checks if an error leaves the navigator usable.
func IsRecoverableError(err error) bool {
	if err == nil {
		return true
	}

	switch {
	case errors.Is(err, ErrInvalidConfig),
		errors.Is(err, ErrMissingDependency):
		return false
	}

	return true
}

// ErrorSeverity represents the severity of an error.
type ErrorSeverity int

const (
	// SeverityInfo is for diagnostics the host may ignore.
	SeverityInfo ErrorSeverity = iota
	// SeverityWarning is for conditions that were recovered from.
	SeverityWarning
	// SeverityError is for failures that lose state, such as an unwritable store.
	SeverityError
)

func (s ErrorSeverity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// Error provides detailed error information.
type Error struct {
	Err       error          // The underlying error
	Component string         // Component that generated the error
	Action    string         // Action being performed when error occurred
	Severity  ErrorSeverity  // Severity of the error
	Timestamp int64          // Unix timestamp when error occurred
	Context   map[string]any // Additional context
}

// NewError creates a new navigator error.
func NewError(err error, component, action string) *Error {
	return &Error{
		Err:       err,
		Component: component,
		Action:    action,
		Severity:  SeverityWarning,
		Timestamp: time.Now().Unix(),
		Context:   make(map[string]any),
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s failed", e.Component, e.Action)
	}
	return fmt.Sprintf("%s: %s: %v", e.Component, e.Action, e.Err)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// WithSeverity sets the error severity.
func (e *Error) WithSeverity(severity ErrorSeverity) *Error {
	e.Severity = severity
	return e
}

// WithContext adds context to the error.
func (e *Error) WithContext(key string, value any) *Error {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}
