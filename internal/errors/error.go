package errors

import (
	"fmt"
)

// Category represents the type of error.
type Category string

const (
	CategoryBinding Category = "binding"
	CategoryConfig  Category = "config"
	CategoryBridge  Category = "bridge"
	CategoryCLI     Category = "cli"
)

// CompostError is a structured error with a code, an explanation and a hint.
type CompostError struct {
	// Code is a unique error identifier (e.g., "C002").
	Code string

	// Category is the error type (binding, config, etc.).
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of this occurrence.
	Detail string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *CompostError) Error() string {
	msg := e.Message
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	if e.Code != "" {
		return fmt.Sprintf("%s: %s", e.Code, msg)
	}
	return msg
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *CompostError) Unwrap() error {
	return e.Wrapped
}

// WithSuggestion adds a fix suggestion to the error.
func (e *CompostError) WithSuggestion(s string) *CompostError {
	e.Suggestion = s
	return e
}

// WithDetail sets the occurrence-specific explanation.
func (e *CompostError) WithDetail(d string) *CompostError {
	e.Detail = d
	return e
}

// WithDetailf is WithDetail with formatting.
func (e *CompostError) WithDetailf(format string, args ...any) *CompostError {
	return e.WithDetail(fmt.Sprintf(format, args...))
}

// Wrap wraps another error.
func (e *CompostError) Wrap(err error) *CompostError {
	e.Wrapped = err
	return e
}

// New creates a CompostError from a registered error code.
func New(code string) *CompostError {
	template, ok := registry[code]
	if !ok {
		return &CompostError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &CompostError{
		Code:       code,
		Category:   template.Category,
		Message:    template.Message,
		Suggestion: template.Suggestion,
	}
}

// Newf creates a new CompostError with a formatted message (no code).
func Newf(category Category, format string, args ...any) *CompostError {
	return &CompostError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error in a CompostError.
func FromError(err error, code string) *CompostError {
	if err == nil {
		return nil
	}
	if ce, ok := err.(*CompostError); ok {
		return ce
	}
	return New(code).Wrap(err)
}
