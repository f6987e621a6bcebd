// Package cmd provides the CLI commands for codedigest.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	apperrors "github.com/Aman-CERP/codedigest/internal/errors"
	"github.com/Aman-CERP/codedigest/internal/logging"
	"github.com/Aman-CERP/codedigest/internal/output"
	"github.com/Aman-CERP/codedigest/pkg/version"
)

var (
	debugMode      bool
	quietMode      bool
	loggingCleanup func()
)

// NewRootCmd creates the root command for the codedigest CLI.
func NewRootCmd() *cobra.Command {
	opts := defaultDigestFlags()

	cmd := &cobra.Command{
		Use:   "codedigest [path]",
		Short: "Generate an LLM-ready digest of a code project",
		Long: `codedigest walks a project directory, filters files through ignore
patterns, and produces a single markdown or JSON digest with a language
breakdown and the contents of the most relevant source files.

Just run 'codedigest' in your project directory to get started.`,
		Version:       version.Version,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) > 0 {
				root = args[0]
			}
			return runDigest(cmd, root, opts)
		},
	}

	cmd.SetVersionTemplate("codedigest version {{.Version}}\n")

	bindDigestFlags(cmd, opts)

	cmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging to ~/.codedigest/logs/")
	cmd.PersistentFlags().BoolVarP(&quietMode, "quiet", "q", false, "Suppress progress output")

	cmd.PersistentPreRunE = startLogging
	cmd.PersistentPostRunE = stopLogging

	cmd.AddCommand(newListCmd())
	cmd.AddCommand(newPatternsCmd())
	cmd.AddCommand(newWatchCmd())
	cmd.AddCommand(newVersionCmd())

	return cmd
}

// startLogging initializes file logging before any command runs.
func startLogging(_ *cobra.Command, _ []string) error {
	cleanup, err := logging.SetupDefault(debugMode)
	if err != nil {
		// Logging is best-effort; a read-only home must not block a digest.
		fmt.Fprintf(os.Stderr, "warning: logging disabled: %v\n", err)
		return nil
	}
	loggingCleanup = cleanup
	return nil
}

// stopLogging flushes and closes the log file.
func stopLogging(_ *cobra.Command, _ []string) error {
	if loggingCleanup != nil {
		loggingCleanup()
		loggingCleanup = nil
	}
	return nil
}

// Execute runs the root command.
func Execute() error {
	cmd := NewRootCmd()
	if err := cmd.Execute(); err != nil {
		fmt.Fprint(os.Stderr, apperrors.FormatForCLI(err))
		return err
	}
	return nil
}

// reporter builds a status reporter for the command's stderr.
func reporter(cmd *cobra.Command) *output.StatusReporter {
	return output.NewStatusReporter(cmd.ErrOrStderr(), quietMode)
}
