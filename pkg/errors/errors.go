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
	ErrUnknown  ErrorCode = "UNKNOWN"
	ErrInternal ErrorCode = "INTERNAL"

	// Configuration errors. These always abort the whole invocation.
	ErrConfigLoad         ErrorCode = "CONFIG_LOAD"
	ErrConfigParse        ErrorCode = "CONFIG_PARSE"
	ErrInvalidPathSpec    ErrorCode = "INVALID_PATH_SPEC"
	ErrUnknownDataType    ErrorCode = "UNKNOWN_DATA_TYPE"
	ErrVaultDirMissing    ErrorCode = "VAULT_DIR_MISSING"
	ErrHomeDirMissing     ErrorCode = "HOME_DIR_MISSING"
	ErrUnknownAction      ErrorCode = "UNKNOWN_ACTION"
	ErrUnknownContextItem ErrorCode = "UNKNOWN_CONTEXT_ITEM"
	ErrUpgradeRequired    ErrorCode = "UPGRADE_REQUIRED"
	ErrNoItems            ErrorCode = "NO_ITEMS"

	// Per-item errors. Fatal only for required items.
	ErrSymlinkEscapesRoot       ErrorCode = "SYMLINK_ESCAPES_ROOT"
	ErrMissingSource            ErrorCode = "MISSING_SOURCE"
	ErrMissingLinkedSource      ErrorCode = "MISSING_LINKED_SOURCE"
	ErrDestinationCreateFailure ErrorCode = "DESTINATION_CREATE_FAILURE"

	// Copy errors. Logged, never fatal.
	ErrUnsupportedEntryType ErrorCode = "UNSUPPORTED_ENTRY_TYPE"
	ErrCopy                 ErrorCode = "COPY"
)

// VaultError represents a structured error with code and details
type VaultError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *VaultError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *VaultError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *VaultError) Is(target error) bool {
	var targetErr *VaultError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new VaultError with the given code and message
func New(code ErrorCode, message string) *VaultError {
	return &VaultError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new VaultError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *VaultError {
	return &VaultError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a VaultError
func Wrap(err error, code ErrorCode, message string) *VaultError {
	if err == nil {
		return nil
	}
	return &VaultError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *VaultError {
	if err == nil {
		return nil
	}
	return &VaultError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *VaultError) WithDetail(key string, value interface{}) *VaultError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *VaultError) WithDetails(details map[string]interface{}) *VaultError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var vaultErr *VaultError
	if errors.As(err, &vaultErr) {
		return vaultErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a VaultError
func GetErrorCode(err error) ErrorCode {
	var vaultErr *VaultError
	if errors.As(err, &vaultErr) {
		return vaultErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a VaultError
func GetErrorDetails(err error) map[string]interface{} {
	var vaultErr *VaultError
	if errors.As(err, &vaultErr) {
		return vaultErr.Details
	}
	return nil
}
