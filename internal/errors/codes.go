// Package errors provides structured error handling for erljump.
//
// Error codes follow the pattern ERR_XXX_DESCRIPTION where:
//   - 1XX: Configuration errors
//   - 2XX: Environment errors (missing search tools)
//   - 3XX: Input errors (nothing to search for)
//   - 4XX: Search execution errors
//   - 5XX: Internal errors
package errors

// Category defines error categories for classification.
type Category string

const (
	// CategoryConfig indicates configuration-related errors.
	CategoryConfig Category = "CONFIG"
	// CategoryEnvironment indicates missing external tools or broken PATH.
	CategoryEnvironment Category = "ENVIRONMENT"
	// CategoryInput indicates invalid or missing caller input.
	CategoryInput Category = "INPUT"
	// CategorySearch indicates failures while running a search.
	CategorySearch Category = "SEARCH"
	// CategoryInternal indicates unexpected internal errors.
	CategoryInternal Category = "INTERNAL"
)

// Severity defines error severity levels.
type Severity string

const (
	// SeverityFatal indicates unrecoverable error, must abort.
	SeverityFatal Severity = "FATAL"
	// SeverityError indicates operation failed but can continue.
	SeverityError Severity = "ERROR"
	// SeverityWarning indicates degraded operation, continuing.
	SeverityWarning Severity = "WARNING"
)

// Error codes organized by category.
const (
	// Config errors (100-199)
	ErrCodeConfigNotFound = "ERR_101_CONFIG_NOT_FOUND"
	ErrCodeConfigInvalid  = "ERR_102_CONFIG_INVALID"
	ErrCodeBadDirective   = "ERR_103_BAD_DIRECTIVE"

	// Environment errors (200-299)
	ErrCodeNoBackend      = "ERR_201_NO_BACKEND"
	ErrCodeBackendMissing = "ERR_202_BACKEND_MISSING"

	// Input errors (300-399)
	ErrCodeNoSymbol     = "ERR_301_NO_SYMBOL"
	ErrCodeBadOrigin    = "ERR_302_BAD_ORIGIN"
	ErrCodeUnknownKind  = "ERR_303_UNKNOWN_KIND"
	ErrCodeEmptyPattern = "ERR_304_EMPTY_PATTERN"

	// Search errors (400-499)
	ErrCodeSearchFailed  = "ERR_401_SEARCH_FAILED"
	ErrCodeCommandFailed = "ERR_402_COMMAND_FAILED"
	ErrCodeParseFailed   = "ERR_403_PARSE_FAILED"

	// Internal errors (500-599)
	ErrCodeInternal = "ERR_501_INTERNAL"
)

// categoryFromCode extracts category from error code.
func categoryFromCode(code string) Category {
	if len(code) < 5 {
		return CategoryInternal
	}
	switch code[4] {
	case '1':
		return CategoryConfig
	case '2':
		return CategoryEnvironment
	case '3':
		return CategoryInput
	case '4':
		return CategorySearch
	default:
		return CategoryInternal
	}
}

// severityFromCode derives the default severity for a code.
// Missing tools and missing symbols abort the whole episode.
func severityFromCode(code string) Severity {
	switch code {
	case ErrCodeNoBackend, ErrCodeNoSymbol:
		return SeverityFatal
	default:
		return SeverityError
	}
}
