package errors

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDigestError_Unwrap_PreservesOriginalError(t *testing.T) {
	// Given: an original error
	originalErr := errors.New("original error")

	// When: wrapping with DigestError
	digestErr := New(ErrCodeFileNotFound, "file not found: test.txt", originalErr)

	// Then: unwrapping returns original error
	require.NotNil(t, digestErr)
	assert.Equal(t, originalErr, errors.Unwrap(digestErr))
	assert.True(t, errors.Is(digestErr, originalErr))
}

func TestDigestError_Error_ReturnsFormattedMessage(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		message  string
		expected string
	}{
		{
			name:     "config error",
			code:     ErrCodeConfigInvalid,
			message:  "config file is malformed",
			expected: "[ERR_102_CONFIG_INVALID] config file is malformed",
		},
		{
			name:     "file error",
			code:     ErrCodeFileNotFound,
			message:  "file.go not found",
			expected: "[ERR_201_FILE_NOT_FOUND] file.go not found",
		},
		{
			name:     "format error",
			code:     ErrCodeInvalidFormat,
			message:  "unsupported output format: xml",
			expected: "[ERR_403_INVALID_FORMAT] unsupported output format: xml",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code, tt.message, nil)
			assert.Equal(t, tt.expected, err.Error())
		})
	}
}

func TestDigestError_Is_MatchesByCode(t *testing.T) {
	err1 := New(ErrCodeFileNotFound, "file A not found", nil)
	err2 := New(ErrCodeFileNotFound, "file B not found", nil)

	assert.True(t, errors.Is(err1, err2))
}

func TestDigestError_Is_DoesNotMatchDifferentCodes(t *testing.T) {
	err1 := New(ErrCodeFileNotFound, "file not found", nil)
	err2 := New(ErrCodeFilePermission, "permission denied", nil)

	assert.False(t, errors.Is(err1, err2))
}

func TestCategoryFromCode(t *testing.T) {
	tests := []struct {
		code     string
		expected Category
	}{
		{ErrCodeConfigInvalid, CategoryConfig},
		{ErrCodeConfigPermission, CategoryConfig},
		{ErrCodeFileNotFound, CategoryIO},
		{ErrCodeIgnoreFileNotFound, CategoryIO},
		{ErrCodeInvalidInput, CategoryValidation},
		{ErrCodeInvalidFormat, CategoryValidation},
		{ErrCodeInternal, CategoryInternal},
		{ErrCodeScanFailed, CategoryInternal},
		{"bogus", CategoryInternal},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			err := New(tt.code, "test", nil)
			assert.Equal(t, tt.expected, err.Category)
		})
	}
}

func TestSeverityFromCode(t *testing.T) {
	assert.Equal(t, SeverityFatal, New(ErrCodeOutputWrite, "disk full", nil).Severity)
	assert.Equal(t, SeverityWarning, New(ErrCodeIgnoreFileNotFound, "no ignore file", nil).Severity)
	assert.Equal(t, SeverityError, New(ErrCodeFileNotFound, "missing", nil).Severity)
}

func TestIsFatal(t *testing.T) {
	assert.True(t, IsFatal(New(ErrCodeOutputWrite, "cannot write output", nil)))
	assert.False(t, IsFatal(New(ErrCodeFileNotFound, "missing", nil)))
	assert.False(t, IsFatal(errors.New("plain")))
	assert.False(t, IsFatal(nil))
}

func TestWrap_NilReturnsNil(t *testing.T) {
	assert.Nil(t, Wrap(ErrCodeInternal, nil))
}

func TestWithDetailAndSuggestion_Chain(t *testing.T) {
	err := New(ErrCodeInvalidPath, "path does not exist", nil).
		WithDetail("path", "/tmp/missing").
		WithSuggestion("check the project directory argument")

	assert.Equal(t, "/tmp/missing", err.Details["path"])
	assert.Equal(t, "check the project directory argument", err.Suggestion)
}

func TestGetCodeAndCategory(t *testing.T) {
	err := New(ErrCodeScanFailed, "walk aborted", nil)

	assert.Equal(t, ErrCodeScanFailed, GetCode(err))
	assert.Equal(t, CategoryInternal, GetCategory(err))
	assert.Empty(t, GetCode(errors.New("plain")))
	assert.Empty(t, GetCategory(errors.New("plain")))
}

func TestFormatForCLI_IncludesHintAndCode(t *testing.T) {
	err := New(ErrCodeInvalidFormat, "unsupported output format: xml", nil).
		WithSuggestion("use markdown or json")

	out := FormatForCLI(err)

	assert.Contains(t, out, "Error: unsupported output format: xml")
	assert.Contains(t, out, "Hint: use markdown or json")
	assert.Contains(t, out, "Code: ERR_403_INVALID_FORMAT")
}

func TestFormatForCLI_WrapsPlainErrors(t *testing.T) {
	out := FormatForCLI(errors.New("something broke"))

	assert.Contains(t, out, "Error: something broke")
	assert.Contains(t, out, ErrCodeInternal)
}

func TestFormatJSON_RoundTrip(t *testing.T) {
	cause := errors.New("permission denied")
	err := New(ErrCodeFilePermission, "cannot read src/main.rs", cause).
		WithDetail("path", "src/main.rs")

	data, jerr := FormatJSON(err)
	require.NoError(t, jerr)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, ErrCodeFilePermission, decoded["code"])
	assert.Equal(t, "IO", decoded["category"])
	assert.Equal(t, "permission denied", decoded["cause"])
}

func TestFormatForLog_StructuredFields(t *testing.T) {
	err := New(ErrCodeScanFailed, "walk aborted", errors.New("io error")).
		WithDetail("root", "/tmp/project")

	fields := FormatForLog(err)

	assert.Equal(t, ErrCodeScanFailed, fields["error_code"])
	assert.Equal(t, "io error", fields["cause"])
	assert.Equal(t, "/tmp/project", fields["detail_root"])
	assert.Nil(t, FormatForLog(nil))
}
