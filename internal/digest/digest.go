// Package digest assembles the final digest: file contents plus the
// per-language line breakdown, rendered as markdown or JSON.
package digest

import (
	"context"
	"log/slog"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/Aman-CERP/codedigest/internal/scanner"
)

// FileContent is one file included in the digest.
type FileContent struct {
	Path     string `json:"path"`
	Language string `json:"language,omitempty"`
	Content  string `json:"content"`
}

// Digest is the complete document handed to a renderer.
type Digest struct {
	ProjectName       string         `json:"project_name"`
	MainLanguage      string         `json:"main_language,omitempty"`
	LanguageBreakdown map[string]int `json:"language_breakdown"`
	Files             []FileContent  `json:"files"`
}

// Builder reads the scanned files and assembles a Digest.
type Builder struct {
	// Workers bounds concurrent file reads (0 = NumCPU).
	Workers int
}

// Build reads every scanned file concurrently and returns the digest with
// files in scan order. Files that disappear or turn unreadable between scan
// and read are dropped with a warning rather than failing the digest.
func (b *Builder) Build(ctx context.Context, projectName string, breakdown map[string]int, files []scanner.FileInfo) (*Digest, error) {
	workers := b.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	contents := make([]*FileContent, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, f := range files {
		i, f := i, f
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			data, err := os.ReadFile(f.AbsPath)
			if err != nil {
				slog.Warn("failed to read file",
					slog.String("path", f.Path),
					slog.String("error", err.Error()))
				return nil
			}
			contents[i] = &FileContent{
				Path:     f.Path,
				Language: f.Language,
				Content:  string(data),
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	d := &Digest{
		ProjectName:       projectName,
		MainLanguage:      scanner.MainLanguage(breakdown),
		LanguageBreakdown: breakdown,
		Files:             make([]FileContent, 0, len(files)),
	}
	for _, c := range contents {
		if c != nil {
			d.Files = append(d.Files, *c)
		}
	}
	return d, nil
}
