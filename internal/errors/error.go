package errors

import (
	stderrors "errors"
	"fmt"
)

// Category represents the type of error.
type Category string

const (
	CategoryConstruction Category = "construction"
	CategoryRuntime      Category = "runtime"
	CategoryConfig       Category = "config"
	CategoryExport       Category = "export"
	CategoryInspector    Category = "inspector"
	CategoryCLI          Category = "cli"
)

// SceneError is a structured error with an error code, context and a hint.
type SceneError struct {
	// Code is a unique error identifier (e.g., "E001").
	Code string

	// Category is the error type.
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Kind is the element kind involved, if any.
	Kind string

	// Key is the attribute key or event kind involved, if any.
	Key string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *SceneError) Error() string {
	msg := e.Message
	if e.Kind != "" && e.Key != "" {
		msg = fmt.Sprintf("%s (%s %q)", msg, e.Kind, e.Key)
	} else if e.Kind != "" {
		msg = fmt.Sprintf("%s (%s)", msg, e.Kind)
	} else if e.Key != "" {
		msg = fmt.Sprintf("%s (%s)", msg, e.Key)
	}
	if e.Detail != "" {
		msg += ": " + e.Detail
	} else if e.Wrapped != nil {
		msg += ": " + e.Wrapped.Error()
	}
	if e.Code != "" {
		return e.Code + ": " + msg
	}
	return msg
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *SceneError) Unwrap() error {
	return e.Wrapped
}

// Is reports whether target is a SceneError with the same code. It lets a
// bare New(code) act as a sentinel.
func (e *SceneError) Is(target error) bool {
	t, ok := target.(*SceneError)
	if !ok {
		return false
	}
	return t.Code != "" && t.Code == e.Code
}

// WithKind records the element kind involved.
func (e *SceneError) WithKind(kind string) *SceneError {
	e.Kind = kind
	return e
}

// WithKey records the attribute key or event kind involved.
func (e *SceneError) WithKey(key string) *SceneError {
	e.Key = key
	return e
}

// WithSuggestion adds a fix suggestion to the error.
func (e *SceneError) WithSuggestion(s string) *SceneError {
	e.Suggestion = s
	return e
}

// WithDetail adds a detailed explanation to the error.
func (e *SceneError) WithDetail(d string) *SceneError {
	e.Detail = d
	return e
}

// Wrap wraps another error.
func (e *SceneError) Wrap(err error) *SceneError {
	e.Wrapped = err
	return e
}

// New creates a SceneError from a registered error code.
func New(code string) *SceneError {
	template, ok := registry[code]
	if !ok {
		return &SceneError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &SceneError{
		Code:     code,
		Category: template.Category,
		Message:  template.Message,
	}
}

// Newf creates a new SceneError with a formatted message (no code).
func Newf(category Category, format string, args ...any) *SceneError {
	return &SceneError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error in a SceneError. Errors that already are
// (or wrap) a SceneError are returned as that SceneError.
func FromError(err error, code string) *SceneError {
	if err == nil {
		return nil
	}
	var se *SceneError
	if stderrors.As(err, &se) {
		return se
	}
	return New(code).Wrap(err)
}

// Code returns the code of the first SceneError in err's chain, or "".
func Code(err error) string {
	var se *SceneError
	if stderrors.As(err, &se) {
		return se.Code
	}
	return ""
}
