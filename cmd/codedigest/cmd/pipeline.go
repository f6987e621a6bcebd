package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/Aman-CERP/codedigest/internal/config"
	"github.com/Aman-CERP/codedigest/internal/digest"
	apperrors "github.com/Aman-CERP/codedigest/internal/errors"
	"github.com/Aman-CERP/codedigest/internal/ignore"
	"github.com/Aman-CERP/codedigest/internal/output"
	"github.com/Aman-CERP/codedigest/internal/scanner"
)

// IgnoreFileName is the project-local ignore file read before .gitignore.
const IgnoreFileName = ".digestignore"

// digestFlags holds the flag values shared by digest-producing commands.
// Zero values mean "not set on the command line".
type digestFlags struct {
	maxFiles         int
	maxFileSizeKB    int64
	format           string
	outputPath       string
	respectGitignore bool

	// Track which flags were explicitly set so config file values survive.
	cmd *cobra.Command
}

func defaultDigestFlags() *digestFlags {
	return &digestFlags{}
}

// bindDigestFlags registers the shared digest flags on a command.
func bindDigestFlags(cmd *cobra.Command, f *digestFlags) {
	cmd.Flags().IntVar(&f.maxFiles, "max-files", 0, "Maximum number of files to include (default 50)")
	cmd.Flags().Int64Var(&f.maxFileSizeKB, "max-file-size", 0, "Maximum file size in KB (default 100)")
	cmd.Flags().StringVarP(&f.format, "format", "f", "", "Output format: markdown or json (default markdown)")
	cmd.Flags().StringVarP(&f.outputPath, "output", "o", "", "Write digest to file instead of stdout")
	cmd.Flags().BoolVar(&f.respectGitignore, "respect-gitignore", true, "Honor nested .gitignore files during the walk")
	f.cmd = cmd
}

// resolveConfig loads .codedigest.yaml and layers explicit flags on top.
func resolveConfig(root string, f *digestFlags) (*config.Config, error) {
	cfg, err := config.Load(root)
	if err != nil {
		return nil, err
	}

	if f.cmd != nil {
		flags := f.cmd.Flags()
		if flags.Changed("max-files") {
			cfg.MaxFiles = f.maxFiles
		}
		if flags.Changed("max-file-size") {
			cfg.MaxFileSizeKB = f.maxFileSizeKB
		}
		if flags.Changed("format") {
			cfg.Format = f.format
		}
		if flags.Changed("output") {
			cfg.Output = f.outputPath
		}
		if flags.Changed("respect-gitignore") {
			cfg.RespectGitignore = f.respectGitignore
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// resolveRoot validates and absolutizes the project directory argument.
func resolveRoot(root string) (string, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", apperrors.New(apperrors.ErrCodeInvalidPath,
			fmt.Sprintf("cannot resolve path: %s", root), err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		return "", apperrors.New(apperrors.ErrCodeInvalidPath,
			fmt.Sprintf("path does not exist: %s", abs), err).
			WithSuggestion("pass an existing project directory")
	}
	if !info.IsDir() {
		return "", apperrors.New(apperrors.ErrCodeInvalidPath,
			fmt.Sprintf("path is not a directory: %s", abs), nil)
	}
	return abs, nil
}

// loadPatternSet assembles the active ignore patterns for a project.
// Order of precedence: .digestignore and .gitignore at the root are
// unioned when present; otherwise the built-in defaults for the main
// language apply. Config excludes are always added on top.
func loadPatternSet(root, mainLanguage string, godot bool, cfg *config.Config) *ignore.PatternSet {
	var set *ignore.PatternSet

	digestSet, derr := ignore.Load(root, IgnoreFileName)
	gitSet, gerr := ignore.Load(root, ".gitignore")

	switch {
	case derr == nil && gerr == nil:
		set = digestSet.Union(gitSet)
	case derr == nil:
		set = digestSet
	case gerr == nil:
		set = gitSet
	default:
		if !errors.Is(derr, ignore.ErrSourceNotFound) {
			slog.Warn("failed to read ignore file", "file", IgnoreFileName, "error", derr)
		}
		if !errors.Is(gerr, ignore.ErrSourceNotFound) {
			slog.Warn("failed to read ignore file", "file", ".gitignore", "error", gerr)
		}
		set = ignore.Defaults(mainLanguage, godot)
	}

	for _, p := range cfg.Exclude {
		set.Add(p)
	}
	return set
}

// generate runs the full digest pipeline and returns the rendered output.
func generate(ctx context.Context, root string, cfg *config.Config, status *output.StatusReporter) (string, error) {
	status.Step("analyzing %s", root)

	breakdown, err := scanner.CountLanguages(ctx, root)
	if err != nil {
		return "", apperrors.New(apperrors.ErrCodeScanFailed, "language analysis failed", err)
	}
	mainLang := scanner.MainLanguage(breakdown)
	godot := scanner.IsGodotProject(root)

	set := loadPatternSet(root, mainLang, godot, cfg)
	matcher := ignore.Compile(set)
	slog.Debug("compiled ignore patterns",
		"patterns", set.Len(),
		"rules", matcher.Rules(),
		"main_language", mainLang,
		"godot", godot)

	status.Step("scanning files")
	sc, err := scanner.New()
	if err != nil {
		return "", apperrors.New(apperrors.ErrCodeInternal, "scanner initialization failed", err)
	}
	files, err := sc.Scan(ctx, &scanner.ScanOptions{
		RootDir:          root,
		Matcher:          matcher,
		MaxFiles:         cfg.MaxFiles,
		MaxFileSize:      cfg.MaxFileSizeBytes(),
		RespectGitignore: cfg.RespectGitignore,
		GodotProject:     godot,
	})
	if err != nil {
		return "", apperrors.New(apperrors.ErrCodeScanFailed, "project scan failed", err)
	}

	status.Step("reading %d files", len(files))
	builder := digest.Builder{}
	d, err := builder.Build(ctx, filepath.Base(root), breakdown, files)
	if err != nil {
		return "", apperrors.New(apperrors.ErrCodeInternal, "digest assembly failed", err)
	}

	rendered, err := digest.Render(d, cfg.Format)
	if err != nil {
		return "", apperrors.New(apperrors.ErrCodeRenderFailed, "digest rendering failed", err)
	}
	return rendered, nil
}

// runDigest is the root command implementation.
func runDigest(cmd *cobra.Command, root string, f *digestFlags) error {
	absRoot, err := resolveRoot(root)
	if err != nil {
		return err
	}

	cfg, err := resolveConfig(absRoot, f)
	if err != nil {
		return err
	}

	status := reporter(cmd)
	rendered, err := generate(cmd.Context(), absRoot, cfg, status)
	if err != nil {
		status.Fail("%v", err)
		return err
	}

	if err := output.Write(cmd.OutOrStdout(), rendered, cfg.Output); err != nil {
		status.Fail("%v", err)
		return err
	}

	if cfg.Output != "" {
		status.Done("digest written to %s", cfg.Output)
	}
	return nil
}
