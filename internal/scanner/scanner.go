package scanner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/Aman-CERP/codedigest/internal/ignore"
)

// matcherCacheSize bounds the number of nested .gitignore matchers kept
// between scans, so repeated runs (watch mode) stay cheap without growing
// without limit.
const matcherCacheSize = 1000

// Scanner discovers digestible files in a project directory.
type Scanner struct {
	// matcherCache caches compiled nested-.gitignore matchers by directory.
	matcherCache *lru.Cache[string, *ignore.Matcher]
	cacheMu      sync.RWMutex
}

// New creates a Scanner.
func New() (*Scanner, error) {
	cache, err := lru.New[string, *ignore.Matcher](matcherCacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create matcher cache: %w", err)
	}
	return &Scanner{matcherCache: cache}, nil
}

// Scan walks the project tree and returns the files that pass every filter,
// in walk order, capped at MaxFiles. Directories excluded by the matcher are
// pruned without descending.
func (s *Scanner) Scan(ctx context.Context, opts *ScanOptions) ([]FileInfo, error) {
	if opts == nil || opts.Matcher == nil {
		return nil, errors.New("scan options require a compiled matcher")
	}

	rootDir := opts.RootDir
	if rootDir == "" {
		rootDir = "."
	}
	absRoot, err := filepath.Abs(rootDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve root directory: %w", err)
	}
	info, err := os.Stat(absRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to stat root directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root path is not a directory: %s", absRoot)
	}

	maxFiles := opts.MaxFiles
	if maxFiles <= 0 {
		maxFiles = DefaultMaxFiles
	}
	maxFileSize := opts.MaxFileSize
	if maxFileSize <= 0 {
		maxFileSize = DefaultMaxFileSize
	}

	var files []FileInfo

	err = filepath.WalkDir(absRoot, func(path string, d fs.DirEntry, err error) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if err != nil {
			return nil // Skip entries we cannot access
		}

		relPath, err := filepath.Rel(absRoot, path)
		if err != nil {
			return nil
		}
		if relPath == "." {
			return nil
		}
		relPath = filepath.ToSlash(relPath)

		if d.IsDir() {
			// Directories are tested both bare and with a trailing
			// separator: literals match the bare form, wildcard directory
			// rules need the separator to see a directory rather than a
			// final file element.
			if opts.Matcher.Match(relPath) || opts.Matcher.Match(relPath+"/") {
				return filepath.SkipDir
			}
			if opts.RespectGitignore &&
				(s.isGitignored(relPath, absRoot) || s.isGitignored(relPath+"/", absRoot)) {
				return filepath.SkipDir
			}
			return nil
		}

		// Symlinks are never followed; matching is not symlink-aware.
		if d.Type()&fs.ModeSymlink != 0 {
			return nil
		}

		if opts.Matcher.Match(relPath) {
			slog.Debug("excluded by pattern", slog.String("path", relPath))
			return nil
		}
		if opts.RespectGitignore && s.isGitignored(relPath, absRoot) {
			return nil
		}

		info, err := d.Info()
		if err != nil {
			return nil
		}
		if info.Size() > maxFileSize {
			slog.Debug("skipping large file",
				slog.String("path", relPath),
				slog.Int64("size", info.Size()))
			return nil
		}

		if !isCodeFile(extension(relPath), opts.GodotProject) {
			return nil
		}
		if isBinaryFile(path) {
			return nil
		}

		files = append(files, FileInfo{
			Path:     relPath,
			AbsPath:  path,
			Size:     info.Size(),
			ModTime:  info.ModTime(),
			Language: DetectLanguage(relPath, opts.GodotProject),
		})

		if len(files) >= maxFiles {
			return fs.SkipAll
		}
		return nil
	})

	if err != nil && !errors.Is(err, context.Canceled) {
		return nil, err
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	return files, nil
}

// isGitignored checks the path against every .gitignore on its directory
// chain. Each file is loaded through the core loader, compiled once, and
// cached by directory.
func (s *Scanner) isGitignored(relPath, absRoot string) bool {
	if m := s.matcherFor(absRoot); m != nil && m.Match(relPath) {
		return true
	}

	dir := filepath.Dir(relPath)
	if dir == "." {
		return false
	}

	base := ""
	for _, part := range strings.Split(filepath.ToSlash(dir), "/") {
		if base == "" {
			base = part
		} else {
			base = base + "/" + part
		}
		m := s.matcherFor(filepath.Join(absRoot, filepath.FromSlash(base)))
		if m == nil {
			continue
		}
		// Nested patterns apply relative to their own directory.
		if m.Match(strings.TrimPrefix(relPath, base+"/")) {
			return true
		}
	}
	return false
}

// matcherFor returns the compiled matcher for dir's .gitignore, or nil when
// the directory has none.
func (s *Scanner) matcherFor(dir string) *ignore.Matcher {
	s.cacheMu.RLock()
	m, ok := s.matcherCache.Get(dir)
	s.cacheMu.RUnlock()
	if ok {
		return m
	}

	set, err := ignore.Load(dir, ".gitignore")
	if err != nil {
		return nil
	}
	m = ignore.Compile(set)

	s.cacheMu.Lock()
	s.matcherCache.Add(dir, m)
	s.cacheMu.Unlock()

	return m
}

// InvalidateCache clears cached nested-.gitignore matchers. Watch mode calls
// this when an ignore file changes.
func (s *Scanner) InvalidateCache() {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()
	s.matcherCache.Purge()
}

// isBinaryFile sniffs the first 512 bytes for a NUL byte.
func isBinaryFile(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer func() { _ = f.Close() }()

	buf := make([]byte, 512)
	n, err := f.Read(buf)
	if err != nil {
		return false
	}
	return bytes.Contains(buf[:n], []byte{0})
}
