package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"
	ErrNotFound     ErrorCode = "NOT_FOUND"

	// Declaration errors
	ErrDeclarationLoad ErrorCode = "DECLARATION_LOAD"
	ErrDeclarationSave ErrorCode = "DECLARATION_SAVE"
	ErrGroupNotFound   ErrorCode = "GROUP_NOT_FOUND"
	ErrPackageNotFound ErrorCode = "PACKAGE_NOT_FOUND"
	ErrUnknownKind     ErrorCode = "UNKNOWN_KIND"
	ErrMachineNotReady ErrorCode = "MACHINE_NOT_CONFIGURED"

	// Bridge errors
	ErrBridgeMissing ErrorCode = "BRIDGE_MISSING"
	ErrBridgeExec    ErrorCode = "BRIDGE_EXEC"
	ErrSystemQuery   ErrorCode = "SYSTEM_QUERY"

	// Manifest errors
	ErrManifestWrite ErrorCode = "MANIFEST_WRITE"

	// Settings errors
	ErrConfigLoad ErrorCode = "CONFIG_LOAD"
)

// BrewsyncError represents a structured error with code and details
type BrewsyncError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *BrewsyncError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *BrewsyncError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *BrewsyncError) Is(target error) bool {
	var targetErr *BrewsyncError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new BrewsyncError with the given code and message
func New(code ErrorCode, message string) *BrewsyncError {
	return &BrewsyncError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new BrewsyncError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *BrewsyncError {
	return &BrewsyncError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a BrewsyncError
func Wrap(err error, code ErrorCode, message string) *BrewsyncError {
	if err == nil {
		return nil
	}
	return &BrewsyncError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *BrewsyncError {
	if err == nil {
		return nil
	}
	return &BrewsyncError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *BrewsyncError) WithDetail(key string, value interface{}) *BrewsyncError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var bsErr *BrewsyncError
	if errors.As(err, &bsErr) {
		return bsErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a BrewsyncError
func GetErrorCode(err error) ErrorCode {
	var bsErr *BrewsyncError
	if errors.As(err, &bsErr) {
		return bsErr.Code
	}
	return ErrUnknown
}
