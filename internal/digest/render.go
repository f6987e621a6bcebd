package digest

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/Aman-CERP/codedigest/internal/scanner"
)

// Formats accepted by Render.
const (
	FormatMarkdown = "markdown"
	FormatJSON     = "json"
)

// Render serializes the digest in the requested format.
func Render(d *Digest, format string) (string, error) {
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(d, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to encode digest: %w", err)
		}
		return string(data), nil
	case FormatMarkdown:
		return renderMarkdown(d), nil
	default:
		return "", fmt.Errorf("unsupported output format: %s", format)
	}
}

// renderMarkdown produces the human-readable digest: project header,
// language table sorted by line count, then one fenced block per file.
func renderMarkdown(d *Digest) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "# Project Digest: %s\n\n", d.ProjectName)

	sb.WriteString("## Language Breakdown\n\n")
	if d.MainLanguage != "" {
		fmt.Fprintf(&sb, "Main language: **%s**\n\n", d.MainLanguage)
	}

	sb.WriteString("| Language | Lines |\n")
	sb.WriteString("|----------|-------|\n")
	for _, lc := range sortedBreakdown(d.LanguageBreakdown) {
		fmt.Fprintf(&sb, "| %s | %d |\n", lc.language, lc.lines)
	}
	sb.WriteString("\n")

	sb.WriteString("## Files\n\n")
	for _, f := range d.Files {
		fmt.Fprintf(&sb, "### %s\n\n", f.Path)
		sb.WriteString("```")
		sb.WriteString(scanner.FenceTag(f.Language))
		sb.WriteString("\n")
		sb.WriteString(f.Content)
		if !strings.HasSuffix(f.Content, "\n") {
			sb.WriteString("\n")
		}
		sb.WriteString("```\n\n")
	}

	return sb.String()
}

type languageCount struct {
	language string
	lines    int
}

// sortedBreakdown orders languages by line count descending, then name, so
// rendering is deterministic.
func sortedBreakdown(breakdown map[string]int) []languageCount {
	out := make([]languageCount, 0, len(breakdown))
	for lang, lines := range breakdown {
		out = append(out, languageCount{language: lang, lines: lines})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].lines != out[j].lines {
			return out[i].lines > out[j].lines
		}
		return out[i].language < out[j].language
	})
	return out
}
