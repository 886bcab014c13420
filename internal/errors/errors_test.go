package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_DerivesCategoryAndSeverity(t *testing.T) {
	tests := []struct {
		code     string
		category Category
		severity Severity
	}{
		{ErrCodeConfigInvalid, CategoryConfig, SeverityError},
		{ErrCodeNoBackend, CategoryEnvironment, SeverityFatal},
		{ErrCodeNoSymbol, CategoryInput, SeverityFatal},
		{ErrCodeSearchFailed, CategorySearch, SeverityError},
		{ErrCodeInternal, CategoryInternal, SeverityError},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			err := New(tt.code, "boom", nil)
			assert.Equal(t, tt.category, err.Category)
			assert.Equal(t, tt.severity, err.Severity)
		})
	}
}

func TestError_FormatIncludesCode(t *testing.T) {
	err := New(ErrCodeBackendMissing, "ag not found", nil)

	assert.Equal(t, "[ERR_202_BACKEND_MISSING] ag not found", err.Error())
}

func TestWrap_PreservesCause(t *testing.T) {
	cause := fmt.Errorf("exit status 2")

	err := Wrap(ErrCodeCommandFailed, cause)

	require.NotNil(t, err)
	assert.Equal(t, ErrCodeCommandFailed, err.Code)
	assert.Equal(t, "exit status 2", err.Message)
	assert.ErrorIs(t, err, cause)
}

func TestWrap_NilIsNil(t *testing.T) {
	assert.Nil(t, Wrap(ErrCodeCommandFailed, nil))
}

func TestIs_MatchesByCode(t *testing.T) {
	a := New(ErrCodeNoBackend, "first", nil)
	b := New(ErrCodeNoBackend, "second", nil)
	c := New(ErrCodeNoSymbol, "other", nil)

	assert.True(t, stderrors.Is(a, b))
	assert.False(t, stderrors.Is(a, c))
}

func TestIsFatal(t *testing.T) {
	assert.True(t, IsFatal(NoBackend()))
	assert.True(t, IsFatal(NoSymbol()))
	assert.False(t, IsFatal(New(ErrCodeSearchFailed, "x", nil)))
	assert.False(t, IsFatal(fmt.Errorf("plain")))
	assert.False(t, IsFatal(nil))
}

func TestGetCode(t *testing.T) {
	assert.Equal(t, ErrCodeNoSymbol, GetCode(NoSymbol()))
	assert.Empty(t, GetCode(fmt.Errorf("plain")))
	assert.Empty(t, GetCode(nil))
}

func TestWithDetailAndSuggestion(t *testing.T) {
	err := New(ErrCodeBadDirective, "bad line", nil).
		WithDetail("file", ".erljump").
		WithSuggestion("check the directive syntax")

	assert.Equal(t, ".erljump", err.Details["file"])
	assert.Equal(t, "check the directive syntax", err.Suggestion)
}

func TestNoBackend_HasInstallSuggestion(t *testing.T) {
	err := NoBackend()

	assert.Contains(t, err.Suggestion, "ripgrep")
}
