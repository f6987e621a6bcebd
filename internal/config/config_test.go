package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/Aman-CERP/codedigest/internal/errors"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, 50, cfg.MaxFiles)
	assert.Equal(t, int64(100), cfg.MaxFileSizeKB)
	assert.Equal(t, "markdown", cfg.Format)
	assert.True(t, cfg.RespectGitignore)
	assert.Empty(t, cfg.Exclude)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	content := `max_files: 200
format: json
exclude:
  - "**/fixtures/**"
  - "*.lock"
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, 200, cfg.MaxFiles)
	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, []string{"**/fixtures/**", "*.lock"}, cfg.Exclude)
	// Unset fields keep their defaults.
	assert.Equal(t, int64(100), cfg.MaxFileSizeKB)
}

func TestLoad_MalformedYAML(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, FileName), []byte("max_files: [oops"), 0o644))

	_, err := Load(dir)
	require.Error(t, err)

	var de *apperrors.DigestError
	require.True(t, errors.As(err, &de))
	assert.Equal(t, apperrors.ErrCodeConfigInvalid, de.Code)
}

func TestValidate_RejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		code   string
	}{
		{"zero max files", func(c *Config) { c.MaxFiles = 0 }, apperrors.ErrCodeConfigInvalid},
		{"negative file size", func(c *Config) { c.MaxFileSizeKB = -1 }, apperrors.ErrCodeConfigInvalid},
		{"unknown format", func(c *Config) { c.Format = "xml" }, apperrors.ErrCodeInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.Equal(t, tt.code, apperrors.GetCode(err))
		})
	}
}

func TestMaxFileSizeBytes(t *testing.T) {
	cfg := Default()
	assert.Equal(t, int64(100*1024), cfg.MaxFileSizeBytes())
}
