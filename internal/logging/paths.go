package logging

import (
	"os"
	"path/filepath"
)

// DefaultLogDir returns the default log directory (~/.codedigest/logs/).
// Falls back to temp directory if home directory is unavailable.
func DefaultLogDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), ".codedigest", "logs")
	}
	return filepath.Join(home, ".codedigest", "logs")
}

// DefaultLogPath returns the default digest log path.
func DefaultLogPath() string {
	return filepath.Join(DefaultLogDir(), "digest.log")
}

// EnsureLogDir creates the log directory if it does not exist.
func EnsureLogDir() error {
	return os.MkdirAll(DefaultLogDir(), 0o755)
}
