package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	apperrors "github.com/Aman-CERP/codedigest/internal/errors"
	"github.com/Aman-CERP/codedigest/internal/ignore"
	"github.com/Aman-CERP/codedigest/internal/scanner"
)

// newPatternsCmd creates the patterns command.
func newPatternsCmd() *cobra.Command {
	var explain bool
	opts := defaultDigestFlags()

	cmd := &cobra.Command{
		Use:   "patterns [path]",
		Short: "Show the active ignore patterns",
		Long: `Show the ignore patterns that would apply to a project, in the order
they are evaluated. With --explain, each pattern is annotated with the
match rule it compiles to; inert patterns never exclude anything.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "."
			if len(args) > 0 {
				root = args[0]
			}
			return runPatterns(cmd, root, opts, explain)
		},
	}

	bindDigestFlags(cmd, opts)
	cmd.Flags().BoolVar(&explain, "explain", false, "Annotate each pattern with its match rule")
	return cmd
}

func runPatterns(cmd *cobra.Command, root string, f *digestFlags, explain bool) error {
	absRoot, err := resolveRoot(root)
	if err != nil {
		return err
	}

	cfg, err := resolveConfig(absRoot, f)
	if err != nil {
		return err
	}

	breakdown, err := scanner.CountLanguages(cmd.Context(), absRoot)
	if err != nil {
		return apperrors.New(apperrors.ErrCodeScanFailed, "language analysis failed", err)
	}
	mainLang := scanner.MainLanguage(breakdown)
	godot := scanner.IsGodotProject(absRoot)

	set := loadPatternSet(absRoot, mainLang, godot, cfg)

	out := cmd.OutOrStdout()
	for _, p := range set.Patterns() {
		if explain {
			fmt.Fprintf(out, "%-30s %s\n", p, ignore.Classify(p))
		} else {
			fmt.Fprintln(out, p)
		}
	}
	fmt.Fprintf(out, "\n%d patterns\n", set.Len())
	return nil
}
