package errors

import (
	"encoding/json"
	"fmt"
)

// ErrorCode represents a specific error condition
type ErrorCode string

const (
	// Configuration errors
	ErrCodeConfigNotFound   ErrorCode = "CONFIG_NOT_FOUND"
	ErrCodeConfigInvalid    ErrorCode = "CONFIG_INVALID"
	ErrCodeConfigValidation ErrorCode = "CONFIG_VALIDATION"

	// Dataset errors
	ErrCodeDatasetNotFound ErrorCode = "DATASET_NOT_FOUND"
	ErrCodeDatasetPending  ErrorCode = "DATASET_PENDING"

	// Plugin errors
	ErrCodePluginLoad      ErrorCode = "PLUGIN_LOAD_FAILED"
	ErrCodePluginManifest  ErrorCode = "PLUGIN_MANIFEST_INVALID"
	ErrCodePluginDuplicate ErrorCode = "PLUGIN_DUPLICATE"

	// Event channel errors
	ErrCodeSubscribeFailed    ErrorCode = "SUBSCRIBE_FAILED"
	ErrCodeSubscriptionClosed ErrorCode = "SUBSCRIPTION_CLOSED"
	ErrCodeEventDecode        ErrorCode = "EVENT_DECODE"

	// Outbound message errors
	ErrCodeSendFailed   ErrorCode = "SEND_FAILED"
	ErrCodeNotConnected ErrorCode = "NOT_CONNECTED"

	// General errors
	ErrCodeInternal     ErrorCode = "INTERNAL_ERROR"
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
)

// LensError represents a structured error with context
type LensError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
	Cause   error                  `json:"-"`
}

// Error implements the error interface
func (e *LensError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *LensError) Unwrap() error {
	return e.Cause
}

// WithDetail adds a detail to the error
func (e *LensError) WithDetail(key string, value interface{}) *LensError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// ToJSON converts the error to JSON
func (e *LensError) ToJSON() string {
	data, _ := json.MarshalIndent(e, "", "  ")
	return string(data)
}

// New creates a new LensError
func New(code ErrorCode, message string) *LensError {
	return &LensError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with a LensError
func Wrap(err error, code ErrorCode, message string) *LensError {
	return &LensError{
		Code:    code,
		Message: message,
		Cause:   err,
	}
}

// Is checks if an error is a specific LensError code
func Is(err error, code ErrorCode) bool {
	if err == nil {
		return false
	}

	lensErr, ok := err.(*LensError)
	if !ok {
		// Try to unwrap
		if unwrapper, ok := err.(interface{ Unwrap() error }); ok {
			return Is(unwrapper.Unwrap(), code)
		}
		return false
	}

	return lensErr.Code == code
}

// GetCode extracts the error code from an error
func GetCode(err error) ErrorCode {
	if err == nil {
		return ""
	}

	lensErr, ok := err.(*LensError)
	if !ok {
		// Try to unwrap
		if unwrapper, ok := err.(interface{ Unwrap() error }); ok {
			return GetCode(unwrapper.Unwrap())
		}
		return ""
	}

	return lensErr.Code
}
