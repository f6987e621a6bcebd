// Package config loads the optional .codedigest.yaml project configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/Aman-CERP/codedigest/internal/digest"
	apperrors "github.com/Aman-CERP/codedigest/internal/errors"
)

// FileName is the project configuration file looked up at the project root.
const FileName = ".codedigest.yaml"

// Config holds digest settings. CLI flags override file values.
type Config struct {
	// MaxFiles is the maximum number of files included in a digest.
	MaxFiles int `yaml:"max_files"`

	// MaxFileSizeKB is the per-file size ceiling in kilobytes.
	MaxFileSizeKB int64 `yaml:"max_file_size_kb"`

	// Format selects the output renderer: markdown or json.
	Format string `yaml:"format"`

	// Output is the output file path. Empty writes to stdout.
	Output string `yaml:"output"`

	// RespectGitignore also honors nested .gitignore files during the walk.
	RespectGitignore bool `yaml:"respect_gitignore"`

	// Exclude lists extra ignore patterns unioned with the loaded sources.
	Exclude []string `yaml:"exclude"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		MaxFiles:         50,
		MaxFileSizeKB:    100,
		Format:           digest.FormatMarkdown,
		RespectGitignore: true,
	}
}

// Load reads .codedigest.yaml from the project root, falling back to
// defaults when the file does not exist. Unset fields keep their defaults.
func Load(root string) (*Config, error) {
	cfg := Default()

	path := filepath.Join(root, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, apperrors.New(apperrors.ErrCodeConfigPermission,
			fmt.Sprintf("failed to read %s", path), err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, apperrors.New(apperrors.ErrCodeConfigInvalid,
			fmt.Sprintf("failed to parse %s", path), err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field ranges and the output format.
func (c *Config) Validate() error {
	if c.MaxFiles <= 0 {
		return apperrors.New(apperrors.ErrCodeConfigInvalid,
			fmt.Sprintf("max_files must be positive, got %d", c.MaxFiles), nil)
	}
	if c.MaxFileSizeKB <= 0 {
		return apperrors.New(apperrors.ErrCodeConfigInvalid,
			fmt.Sprintf("max_file_size_kb must be positive, got %d", c.MaxFileSizeKB), nil)
	}
	if c.Format != digest.FormatMarkdown && c.Format != digest.FormatJSON {
		return apperrors.New(apperrors.ErrCodeInvalidFormat,
			fmt.Sprintf("unsupported output format: %s", c.Format), nil).
			WithSuggestion("use markdown or json")
	}
	return nil
}

// MaxFileSizeBytes converts the configured kilobyte ceiling to bytes.
func (c *Config) MaxFileSizeBytes() int64 {
	return c.MaxFileSizeKB * 1024
}
