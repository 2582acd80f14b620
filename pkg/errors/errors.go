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
	ErrUnknown        ErrorCode = "UNKNOWN"
	ErrInternal       ErrorCode = "INTERNAL"
	ErrInvalidInput   ErrorCode = "INVALID_INPUT"
	ErrNotFound       ErrorCode = "NOT_FOUND"
	ErrAlreadyExists  ErrorCode = "ALREADY_EXISTS"
	ErrNotImplemented ErrorCode = "NOT_IMPLEMENTED"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"

	// Rule errors
	ErrRuleInvalid    ErrorCode = "RULE_INVALID"
	ErrKindUnknown    ErrorCode = "KIND_UNKNOWN"
	ErrPatternInvalid ErrorCode = "PATTERN_INVALID"

	// Evaluation errors
	ErrConditionEval   ErrorCode = "CONDITION_EVAL"
	ErrTemplateResolve ErrorCode = "TEMPLATE_RESOLVE"

	// Dispatch errors
	ErrHookNotFound ErrorCode = "HOOK_NOT_FOUND"
	ErrHookExecute  ErrorCode = "HOOK_EXECUTE"
	ErrDispatch     ErrorCode = "DISPATCH"

	// Collaborator errors
	ErrRunnerExec     ErrorCode = "RUNNER_EXEC"
	ErrReturnerFailed ErrorCode = "RETURNER_FAILED"
	ErrSourceInit     ErrorCode = "SOURCE_INIT"
)

// ReactorError represents a structured error with code and details
type ReactorError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *ReactorError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *ReactorError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *ReactorError) Is(target error) bool {
	var targetErr *ReactorError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new ReactorError with the given code and message
func New(code ErrorCode, message string) *ReactorError {
	return &ReactorError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new ReactorError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *ReactorError {
	return &ReactorError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a ReactorError
func Wrap(err error, code ErrorCode, message string) *ReactorError {
	if err == nil {
		return nil
	}
	return &ReactorError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *ReactorError {
	if err == nil {
		return nil
	}
	return &ReactorError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *ReactorError) WithDetail(key string, value interface{}) *ReactorError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *ReactorError) WithDetails(details map[string]interface{}) *ReactorError {
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
	var reactorErr *ReactorError
	if errors.As(err, &reactorErr) {
		return reactorErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a ReactorError
func GetErrorCode(err error) ErrorCode {
	var reactorErr *ReactorError
	if errors.As(err, &reactorErr) {
		return reactorErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a ReactorError
func GetErrorDetails(err error) map[string]interface{} {
	var reactorErr *ReactorError
	if errors.As(err, &reactorErr) {
		return reactorErr.Details
	}
	return nil
}
