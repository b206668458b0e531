package toolloop

import (
	"errors"
	"fmt"
	"time"
)

// ErrorCategory classifies errors by how they should be handled.
type ErrorCategory string

const (
	// ErrorTransient indicates the error is temporary.
	// Examples: rate limits, temporary network issues, server overload.
	ErrorTransient ErrorCategory = "transient"

	// ErrorPermanent indicates the error is not recoverable by repeating the call.
	// Examples: invalid API key, insufficient permissions, model not found.
	ErrorPermanent ErrorCategory = "permanent"

	// ErrorUserInput indicates the caller provided invalid input that must be corrected.
	// Examples: malformed request, invalid parameters, model without tool support.
	ErrorUserInput ErrorCategory = "user_input"
)

// CategorizedError is an error that provides information about how it should be handled.
type CategorizedError interface {
	error
	Category() ErrorCategory
	StatusCode() int          // HTTP status code if applicable, 0 otherwise
	RetryAfter() time.Duration // suggested delay from server, 0 if not available
}

// Error is a categorized error returned by model gateways.
type Error struct {
	Msg        string
	Cat        ErrorCategory
	Code       int           // HTTP status code, 0 if not applicable
	RetryDelay time.Duration // from Retry-After header, 0 if not available
	Cause      error         // underlying error
}

// Error returns the error message.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Cause)
	}
	return e.Msg
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Category returns the error category.
func (e *Error) Category() ErrorCategory {
	return e.Cat
}

// StatusCode returns the HTTP status code, or 0 if not applicable.
func (e *Error) StatusCode() int {
	return e.Code
}

// RetryAfter returns the suggested delay, or 0 if not available.
func (e *Error) RetryAfter() time.Duration {
	return e.RetryDelay
}

// Kind returns "ModelError".
func (e *Error) Kind() string {
	return "ModelError"
}

// NewTransientError creates a transient error.
func NewTransientError(msg string, statusCode int, cause error) *Error {
	return &Error{Msg: msg, Cat: ErrorTransient, Code: statusCode, Cause: cause}
}

// NewTransientErrorWithRetry creates a transient error with a server-suggested delay.
func NewTransientErrorWithRetry(msg string, statusCode int, retryAfter time.Duration, cause error) *Error {
	return &Error{Msg: msg, Cat: ErrorTransient, Code: statusCode, RetryDelay: retryAfter, Cause: cause}
}

// NewPermanentError creates a permanent error.
func NewPermanentError(msg string, statusCode int, cause error) *Error {
	return &Error{Msg: msg, Cat: ErrorPermanent, Code: statusCode, Cause: cause}
}

// NewUserInputError creates an error indicating invalid caller input.
func NewUserInputError(msg string, statusCode int, cause error) *Error {
	return &Error{Msg: msg, Cat: ErrorUserInput, Code: statusCode, Cause: cause}
}

// IsTransient returns true if the error is categorized as transient.
// It checks if the error or any wrapped error implements CategorizedError.
func IsTransient(err error) bool {
	var ce CategorizedError
	if errors.As(err, &ce) {
		return ce.Category() == ErrorTransient
	}
	return false
}

// IsPermanent returns true if the error is categorized as permanent.
func IsPermanent(err error) bool {
	var ce CategorizedError
	if errors.As(err, &ce) {
		return ce.Category() == ErrorPermanent
	}
	return false
}

// StatusCodeOf returns the HTTP status code from a categorized error, or 0.
func StatusCodeOf(err error) int {
	var ce CategorizedError
	if errors.As(err, &ce) {
		return ce.StatusCode()
	}
	return 0
}

// kinded is implemented by errors that name their own kind.
type kinded interface {
	Kind() string
}

// KindOf returns the kind of the first error in err's chain that names one.
// Errors without a kind are reported as ToolExecutionError.
func KindOf(err error) string {
	var k kinded
	if errors.As(err, &k) {
		return k.Kind()
	}
	return "ToolExecutionError"
}

// FormatError renders err the way it is shown to the model in a tool turn.
func FormatError(err error) string {
	return fmt.Sprintf("Error: %s: %v", KindOf(err), err)
}

// SchemaError is returned when a tool's input schema lacks a required key.
type SchemaError struct {
	Tool string
	Key  string
	Err  error
}

// Error returns a formatted error message including the tool and missing key.
func (e *SchemaError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("tool %s: invalid input schema: %v", e.Tool, e.Err)
	}
	return fmt.Sprintf("tool %s: input schema is missing %q", e.Tool, e.Key)
}

// Unwrap returns the underlying decode error, if any.
func (e *SchemaError) Unwrap() error { return e.Err }

// Kind returns "SchemaError".
func (e *SchemaError) Kind() string { return "SchemaError" }

// UnknownToolError is returned when a tool call references an unregistered tool.
type UnknownToolError struct {
	Name string
}

// Error returns a formatted error message including the tool name.
func (e *UnknownToolError) Error() string {
	return fmt.Sprintf("unknown tool: %s", e.Name)
}

// Kind returns "UnknownToolError".
func (e *UnknownToolError) Kind() string { return "UnknownToolError" }

// ToolExecutionError wraps a failure raised while a tool ran.
type ToolExecutionError struct {
	Name string
	Err  error
}

// Error returns a formatted error message including the tool name and cause.
func (e *ToolExecutionError) Error() string {
	return fmt.Sprintf("executing tool %s: %v", e.Name, e.Err)
}

// Unwrap returns the underlying error for use with errors.Is and errors.As.
func (e *ToolExecutionError) Unwrap() error { return e.Err }

// Kind returns the kind of the cause when it has one, else "ToolExecutionError".
func (e *ToolExecutionError) Kind() string {
	var k kinded
	if errors.As(e.Err, &k) {
		return k.Kind()
	}
	return "ToolExecutionError"
}

// UnsupportedContentError is returned when a tool produced a non-text content part.
type UnsupportedContentError struct {
	Tool string
	Type ContentPartType
}

// Error returns a formatted error message including the offending part type.
func (e *UnsupportedContentError) Error() string {
	if e.Tool != "" {
		return fmt.Sprintf("tool %s returned unsupported %q content: only text is supported", e.Tool, e.Type)
	}
	return fmt.Sprintf("unsupported %q content: only text is supported", e.Type)
}

// Kind returns "UnsupportedContentError".
func (e *UnsupportedContentError) Kind() string { return "UnsupportedContentError" }

// NotConnectedError is returned when a tool provider is used before its handshake completed.
type NotConnectedError struct {
	Op string
}

// Error returns a formatted error message including the attempted operation.
func (e *NotConnectedError) Error() string {
	return fmt.Sprintf("%s: not connected to tool server", e.Op)
}

// Kind returns "NotConnectedError".
func (e *NotConnectedError) Kind() string { return "NotConnectedError" }

// PaginationUnsupportedError is returned when a tool listing spans more than one page.
type PaginationUnsupportedError struct {
	Cursor string
}

// Error returns a formatted error message including the continuation cursor.
func (e *PaginationUnsupportedError) Error() string {
	return fmt.Sprintf("tool listing is paginated (next cursor %q): pagination is not supported", e.Cursor)
}

// Kind returns "PaginationUnsupportedError".
func (e *PaginationUnsupportedError) Kind() string { return "PaginationUnsupportedError" }
