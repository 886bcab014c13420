package errors

import (
	"fmt"
)

// JumpError is the structured error type for erljump.
// It provides context for error handling, logging, and user presentation.
type JumpError struct {
	// Code is the unique error code (e.g., "ERR_201_NO_BACKEND").
	Code string

	// Message is the human-readable error message.
	Message string

	// Category is the error category (Config, Environment, etc.).
	Category Category

	// Severity is the error severity level.
	Severity Severity

	// Details contains additional context as key-value pairs.
	Details map[string]string

	// Cause is the underlying error that caused this error.
	Cause error

	// Suggestion is an actionable suggestion for the user.
	Suggestion string
}

// Error implements the error interface.
func (e *JumpError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for error chain support.
func (e *JumpError) Unwrap() error {
	return e.Cause
}

// Is checks if this error matches the target error by code.
// This enables errors.Is() to work with JumpError.
func (e *JumpError) Is(target error) bool {
	if t, ok := target.(*JumpError); ok {
		return e.Code == t.Code
	}
	return false
}

// WithDetail adds a key-value detail to the error.
// Returns the error for method chaining.
func (e *JumpError) WithDetail(key, value string) *JumpError {
	if e.Details == nil {
		e.Details = make(map[string]string)
	}
	e.Details[key] = value
	return e
}

// WithSuggestion adds an actionable suggestion for the user.
func (e *JumpError) WithSuggestion(suggestion string) *JumpError {
	e.Suggestion = suggestion
	return e
}

// New creates a new JumpError with the given code and message.
// Category and severity are derived from the code.
func New(code string, message string, cause error) *JumpError {
	return &JumpError{
		Code:     code,
		Message:  message,
		Category: categoryFromCode(code),
		Severity: severityFromCode(code),
		Cause:    cause,
	}
}

// Wrap creates a JumpError from an existing error.
// The error's message becomes the JumpError message.
func Wrap(code string, err error) *JumpError {
	if err == nil {
		return nil
	}
	return New(code, err.Error(), err)
}

// NoBackend creates the "no search tool installed" error.
func NoBackend() *JumpError {
	return New(ErrCodeNoBackend, "no supported search tool found on PATH", nil).
		WithSuggestion("install ripgrep (rg), the silver searcher (ag), or GNU grep")
}

// NoSymbol creates the "nothing to search for" error.
func NoSymbol() *JumpError {
	return New(ErrCodeNoSymbol, "no symbol at point of invocation", nil)
}

// ConfigError creates a configuration-related error.
func ConfigError(message string, cause error) *JumpError {
	return New(ErrCodeConfigInvalid, message, cause)
}

// SearchError creates a search-execution error.
func SearchError(message string, cause error) *JumpError {
	return New(ErrCodeSearchFailed, message, cause)
}

// IsFatal checks if an error has fatal severity.
// Fatal errors abort the whole search episode.
func IsFatal(err error) bool {
	if err == nil {
		return false
	}
	if je, ok := err.(*JumpError); ok {
		return je.Severity == SeverityFatal
	}
	return false
}

// GetCode extracts the error code from a JumpError.
// Returns empty string if not a JumpError.
func GetCode(err error) string {
	if je, ok := err.(*JumpError); ok {
		return je.Code
	}
	return ""
}
