// Package output handles digest delivery and terminal status display.
package output

import (
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	apperrors "github.com/Aman-CERP/codedigest/internal/errors"
)

// Write delivers the rendered digest. An empty path writes to w
// (normally stdout), otherwise the digest is written to the given file.
func Write(w io.Writer, rendered string, path string) error {
	if path == "" {
		if w == nil {
			w = os.Stdout
		}
		if _, err := io.WriteString(w, rendered); err != nil {
			return apperrors.New(apperrors.ErrCodeOutputWrite, "failed to write digest to stdout", err)
		}
		return nil
	}

	if err := os.WriteFile(path, []byte(rendered), 0o644); err != nil {
		return apperrors.New(apperrors.ErrCodeOutputWrite,
			fmt.Sprintf("failed to write digest to %s", path), err).
			WithDetail("path", path)
	}
	return nil
}

// IsTTY checks if output is a terminal.
func IsTTY(w io.Writer) bool {
	if w == nil {
		return false
	}

	if f, ok := w.(*os.File); ok {
		return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}

	return false
}

// DetectNoColor checks if NO_COLOR environment variable is set.
func DetectNoColor() bool {
	_, exists := os.LookupEnv("NO_COLOR")
	return exists
}

// DetectCI checks if running in a CI environment.
func DetectCI() bool {
	ciVars := []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "TRAVIS"}
	for _, v := range ciVars {
		if _, exists := os.LookupEnv(v); exists {
			return true
		}
	}
	return false
}
