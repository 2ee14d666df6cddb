package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
)

// AppError is the unified error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Sentinels for errors.Is matching. They match any AppError with the same
// code; ErrConfiguration also matches circular dependency errors. errors.Is
// walks Cause too, so an INSTANTIATION error whose constructor returned a
// configuration AppError matches both ErrInstantiation and ErrConfiguration.
// Use CodeOf or IsConfiguration to classify by the outermost AppError only.
var (
	ErrConfiguration      = &AppError{Code: ErrCodeConfiguration}
	ErrCircularDependency = &AppError{Code: ErrCodeCircularDependency}
	ErrInstantiation      = &AppError{Code: ErrCodeInstantiation}
	ErrInjection          = &AppError{Code: ErrCodeInjection}
	ErrInvalidInput       = &AppError{Code: ErrCodeInvalidInput}
)

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Message == "" {
		return string(e.Code)
	}
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// Is reports whether target is a sentinel (an AppError without a message)
// for the code of e.
func (e *AppError) Is(target error) bool {
	t, ok := target.(*AppError)
	if !ok || t.Message != "" {
		return false
	}
	if t.Code == e.Code {
		return true
	}
	return t.Code == ErrCodeConfiguration && IsConfigurationCode(e.Code)
}

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetails merges the provided details into the error and returns the receiver.
func (e *AppError) WithDetails(details map[string]any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError.
func New(code ErrorCode, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

// --- Resolution error constructors ---

// Unbound creates a configuration error for a capability without a binding.
func Unbound(capability string) *AppError {
	return &AppError{
		Code:    ErrCodeConfiguration,
		Message: fmt.Sprintf("no binding registered for capability %s", capability),
		Details: map[string]any{"type": capability},
	}
}

// NotComponent creates a configuration error for a concrete type that does
// not carry the component marker.
func NotComponent(typeName, marker string) *AppError {
	return &AppError{
		Code:    ErrCodeConfiguration,
		Message: fmt.Sprintf("cannot resolve %s: type must embed %s", typeName, marker),
		Details: map[string]any{"type": typeName, "marker": marker},
	}
}

// InvalidBinding creates a configuration error for a rejected registry entry.
func InvalidBinding(reason string) *AppError {
	return &AppError{
		Code:    ErrCodeConfiguration,
		Message: fmt.Sprintf("invalid binding: %s", reason),
	}
}

// CircularDependency creates an error for a resolution path that revisits a
// component. The path lists type names from the outermost request.
func CircularDependency(path []string) *AppError {
	return &AppError{
		Code:    ErrCodeCircularDependency,
		Message: fmt.Sprintf("circular dependency detected: %s", strings.Join(path, " -> ")),
		Details: map[string]any{"path": path},
	}
}

// Instantiation creates an error for a component that could not be
// constructed. cause is kept as-is and stays reachable through errors.Is.
func Instantiation(typeName string, cause error) *AppError {
	return &AppError{
		Code:    ErrCodeInstantiation,
		Message: fmt.Sprintf("cannot create a new instance of %s", typeName),
		Details: map[string]any{"type": typeName},
		Cause:   cause,
	}
}

// Injection creates an error for a dependency that could not be written into
// its target field.
func Injection(owner, field string, cause error) *AppError {
	return &AppError{
		Code:    ErrCodeInjection,
		Message: fmt.Sprintf("cannot initialize field %s of %s", field, owner),
		Details: map[string]any{"type": owner, "field": field},
		Cause:   cause,
	}
}

// Validation creates a new AppError for validation errors.
func Validation(message string) *AppError {
	return &AppError{Code: ErrCodeInvalidInput, Message: message}
}

// --- Inspection helpers ---

// IsAppError checks if an error is an AppError.
func IsAppError(err error) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr)
}

// AsAppError converts an error to an AppError if possible.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// CodeOf returns the code of the outermost AppError in the chain, or an
// empty code when err carries none.
func CodeOf(err error) ErrorCode {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code
	}
	return ""
}

// IsConfiguration reports whether the outermost AppError in err carries a
// configuration code. Causes are not consulted: an INSTANTIATION error is
// not a configuration error even when its constructor returned one.
func IsConfiguration(err error) bool {
	return IsConfigurationCode(CodeOf(err))
}
