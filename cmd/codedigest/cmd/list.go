package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	apperrors "github.com/Aman-CERP/codedigest/internal/errors"
	"github.com/Aman-CERP/codedigest/internal/ignore"
	"github.com/Aman-CERP/codedigest/internal/scanner"
)

// newListCmd creates the list command.
func newListCmd() *cobra.Command {
	opts := defaultDigestFlags()

	cmd := &cobra.Command{
		Use:   "list [path]",
		Short: "List the files a digest would include",
		Long: `List the files that would be included in a digest, after ignore
patterns, size limits, and the file cap are applied. Useful for tuning
.digestignore before generating the full digest.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) > 0 {
				root = args[0]
			}
			return runList(cmd, root, opts)
		},
	}

	bindDigestFlags(cmd, opts)
	return cmd
}

func runList(cmd *cobra.Command, root string, f *digestFlags) error {
	absRoot, err := resolveRoot(root)
	if err != nil {
		return err
	}

	cfg, err := resolveConfig(absRoot, f)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	breakdown, err := scanner.CountLanguages(ctx, absRoot)
	if err != nil {
		return apperrors.New(apperrors.ErrCodeScanFailed, "language analysis failed", err)
	}
	mainLang := scanner.MainLanguage(breakdown)
	godot := scanner.IsGodotProject(absRoot)

	set := loadPatternSet(absRoot, mainLang, godot, cfg)
	matcher := ignore.Compile(set)

	sc, err := scanner.New()
	if err != nil {
		return apperrors.New(apperrors.ErrCodeInternal, "scanner initialization failed", err)
	}
	files, err := sc.Scan(ctx, &scanner.ScanOptions{
		RootDir:          absRoot,
		Matcher:          matcher,
		MaxFiles:         cfg.MaxFiles,
		MaxFileSize:      cfg.MaxFileSizeBytes(),
		RespectGitignore: cfg.RespectGitignore,
		GodotProject:     godot,
	})
	if err != nil {
		return apperrors.New(apperrors.ErrCodeScanFailed, "project scan failed", err)
	}

	out := cmd.OutOrStdout()
	for _, file := range files {
		fmt.Fprintf(out, "%s\t%d\t%s\n", file.Path, file.Size, file.Language)
	}
	fmt.Fprintf(out, "\n%d files, main language: %s\n", len(files), mainLang)
	return nil
}
