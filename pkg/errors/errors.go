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

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"
	ErrConfigSave  ErrorCode = "CONFIG_SAVE"

	// Navigation errors
	ErrProfileNotFound ErrorCode = "PROFILE_NOT_FOUND"
	ErrPageNotFound    ErrorCode = "PAGE_NOT_FOUND"

	// Grid errors
	ErrPositionBounds ErrorCode = "POSITION_OUT_OF_BOUNDS"
	ErrGridBounds     ErrorCode = "GRID_BOUNDS_INVALID"
	ErrNothingToUndo  ErrorCode = "NOTHING_TO_UNDO"

	// Action errors
	ErrActionInvalid ErrorCode = "ACTION_INVALID"
	ErrActionExecute ErrorCode = "ACTION_EXECUTE"

	// Icon errors
	ErrIconResolve ErrorCode = "ICON_RESOLVE"

	// Drop errors
	ErrDropRejected ErrorCode = "DROP_REJECTED"
	ErrDropPhase    ErrorCode = "DROP_PHASE"

	// State errors
	ErrStateLoad ErrorCode = "STATE_LOAD"
	ErrStateSave ErrorCode = "STATE_SAVE"
)

// DeckError represents a structured error with code and details
type DeckError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *DeckError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *DeckError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *DeckError) Is(target error) bool {
	var targetErr *DeckError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new DeckError with the given code and message
func New(code ErrorCode, message string) *DeckError {
	return &DeckError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new DeckError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *DeckError {
	return &DeckError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a DeckError
func Wrap(err error, code ErrorCode, message string) *DeckError {
	if err == nil {
		return nil
	}
	return &DeckError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *DeckError {
	if err == nil {
		return nil
	}
	return &DeckError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *DeckError) WithDetail(key string, value interface{}) *DeckError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var deckErr *DeckError
	if errors.As(err, &deckErr) {
		return deckErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a DeckError
func GetErrorCode(err error) ErrorCode {
	var deckErr *DeckError
	if errors.As(err, &deckErr) {
		return deckErr.Code
	}
	return ErrUnknown
}
