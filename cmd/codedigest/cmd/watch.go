package cmd

import (
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	apperrors "github.com/Aman-CERP/codedigest/internal/errors"
	"github.com/Aman-CERP/codedigest/internal/ignore"
	"github.com/Aman-CERP/codedigest/internal/output"
	"github.com/Aman-CERP/codedigest/internal/scanner"
	"github.com/Aman-CERP/codedigest/internal/watcher"
)

// newWatchCmd creates the watch command.
func newWatchCmd() *cobra.Command {
	opts := defaultDigestFlags()

	cmd := &cobra.Command{
		Use:   "watch [path]",
		Short: "Regenerate the digest whenever the project changes",
		Long: `Watch a project directory and regenerate the digest whenever files
change. Rapid bursts of changes are coalesced so each burst produces a
single regeneration. Requires --output since stdout would be rewritten
continuously.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) > 0 {
				root = args[0]
			}
			return runWatch(cmd, root, opts)
		},
	}

	bindDigestFlags(cmd, opts)
	return cmd
}

func runWatch(cmd *cobra.Command, root string, f *digestFlags) error {
	absRoot, err := resolveRoot(root)
	if err != nil {
		return err
	}

	cfg, err := resolveConfig(absRoot, f)
	if err != nil {
		return err
	}
	if cfg.Output == "" {
		return apperrors.New(apperrors.ErrCodeInvalidInput,
			"watch mode requires an output file", nil).
			WithSuggestion("pass --output digest.md")
	}

	status := reporter(cmd)

	ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	regenerate := func() error {
		rendered, err := generate(ctx, absRoot, cfg, status)
		if err != nil {
			return err
		}
		if err := output.Write(cmd.OutOrStdout(), rendered, cfg.Output); err != nil {
			return err
		}
		status.Done("digest written to %s", cfg.Output)
		return nil
	}

	// Initial digest before watching
	if err := regenerate(); err != nil {
		return err
	}

	// The watcher prunes with the same patterns a digest would use, so
	// churn in excluded directories never triggers a regeneration.
	breakdown, err := scanner.CountLanguages(ctx, absRoot)
	if err != nil {
		return apperrors.New(apperrors.ErrCodeScanFailed, "language analysis failed", err)
	}
	set := loadPatternSet(absRoot, scanner.MainLanguage(breakdown), scanner.IsGodotProject(absRoot), cfg)

	w, err := watcher.New(ignore.Compile(set), watcher.DefaultOptions())
	if err != nil {
		return apperrors.New(apperrors.ErrCodeWatchFailed, "failed to start watcher", err)
	}
	defer w.Stop()

	watchDone := make(chan error, 1)
	go func() {
		watchDone <- w.Start(ctx, absRoot)
	}()

	status.Step("watching %s", absRoot)

	for {
		select {
		case <-ctx.Done():
			return nil
		case err := <-watchDone:
			if err != nil && ctx.Err() == nil {
				return apperrors.New(apperrors.ErrCodeWatchFailed, "watcher stopped", err)
			}
			return nil
		case werr, ok := <-w.Errors():
			if !ok {
				return nil
			}
			slog.Warn("watch error", "error", werr)
		case events, ok := <-w.Events():
			if !ok {
				return nil
			}
			slog.Debug("change detected", "events", len(events))
			status.Step("%d changes detected", len(events))
			if err := regenerate(); err != nil {
				if apperrors.IsFatal(err) {
					return err
				}
				status.Fail("%v", err)
			}
		}
	}
}
