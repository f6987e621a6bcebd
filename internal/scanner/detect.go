package scanner

import (
	"bytes"
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// godotProbeDepth limits how deep the Godot heuristic walks looking for
// scene and script files.
const godotProbeDepth = 3

// IsGodotProject reports whether the directory looks like a Godot project:
// a project.godot file, a godot/ or .godot/ directory, or .gd/.tscn files
// within the first few levels.
func IsGodotProject(root string) bool {
	if _, err := os.Stat(filepath.Join(root, "project.godot")); err == nil {
		return true
	}
	for _, dir := range []string{"godot", ".godot"} {
		if info, err := os.Stat(filepath.Join(root, dir)); err == nil && info.IsDir() {
			return true
		}
	}

	found := false
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil || rel == "." {
			return nil
		}
		if strings.Count(filepath.ToSlash(rel), "/") >= godotProbeDepth {
			return filepath.SkipDir
		}
		if d.IsDir() {
			if d.Name() == ".git" {
				return filepath.SkipDir
			}
			return nil
		}
		switch extension(rel) {
		case "tscn", "gd":
			found = true
			return fs.SkipAll
		}
		return nil
	})
	return found
}

// CountLanguages walks the whole project and returns total line counts per
// detected language. The breakdown picks the main language before ignore
// patterns are built, so it deliberately looks at everything except
// version-control metadata and binaries.
func CountLanguages(ctx context.Context, root string) (map[string]int, error) {
	breakdown := make(map[string]int)

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err != nil {
			return nil
		}
		if d.IsDir() {
			if d.Name() == ".git" {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Type()&fs.ModeSymlink != 0 {
			return nil
		}

		rel, err := filepath.Rel(root, path)
		if err != nil {
			return nil
		}
		lang := DetectLanguage(filepath.ToSlash(rel), false)
		if lang == "" {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil || bytes.Contains(data, []byte{0}) {
			return nil
		}
		breakdown[lang] += countLines(data)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return breakdown, nil
}

// MainLanguage returns the language with the highest line count, or empty
// for an empty breakdown. Ties break lexicographically for determinism.
func MainLanguage(breakdown map[string]int) string {
	main := ""
	best := -1
	for lang, lines := range breakdown {
		if lines > best || (lines == best && lang < main) {
			main = lang
			best = lines
		}
	}
	return main
}

// countLines counts newline-terminated lines, including a trailing partial
// line.
func countLines(data []byte) int {
	if len(data) == 0 {
		return 0
	}
	n := bytes.Count(data, []byte{'\n'})
	if data[len(data)-1] != '\n' {
		n++
	}
	return n
}
