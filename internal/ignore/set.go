package ignore

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Sentinel is the always-present pattern excluding version-control metadata.
// Every loaded or constructed PatternSet contains it.
const Sentinel = ".git"

// ErrSourceNotFound indicates an ignore file does not exist at the expected
// location. Callers treat it as "this source contributes nothing" and fall
// back to another source or to built-in defaults.
var ErrSourceNotFound = errors.New("ignore file not found")

// PatternSet is a deduplicated, unordered collection of pattern lines.
// Iteration order never changes a match verdict, so the set representation
// is safe. The zero value is not usable; use NewPatternSet or Load.
type PatternSet struct {
	patterns map[string]struct{}
}

// NewPatternSet creates a PatternSet containing the given patterns plus the
// version-control sentinel. Patterns are trimmed; empty lines are dropped.
func NewPatternSet(patterns ...string) *PatternSet {
	s := &PatternSet{patterns: make(map[string]struct{}, len(patterns)+1)}
	s.Add(Sentinel)
	for _, p := range patterns {
		s.Add(p)
	}
	return s
}

// Add inserts a trimmed pattern line. Duplicates collapse.
func (s *PatternSet) Add(pattern string) {
	pattern = strings.TrimSpace(pattern)
	if pattern == "" {
		return
	}
	s.patterns[pattern] = struct{}{}
}

// Remove deletes a pattern. The sentinel cannot be removed.
func (s *PatternSet) Remove(pattern string) {
	if pattern == Sentinel {
		return
	}
	delete(s.patterns, pattern)
}

// Contains reports whether the set holds the exact pattern text.
func (s *PatternSet) Contains(pattern string) bool {
	_, ok := s.patterns[pattern]
	return ok
}

// Len returns the number of unique patterns, including the sentinel.
func (s *PatternSet) Len() int {
	return len(s.patterns)
}

// Patterns returns the patterns in sorted order for stable display.
func (s *PatternSet) Patterns() []string {
	out := make([]string, 0, len(s.patterns))
	for p := range s.patterns {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// Union returns a new set holding every pattern from both sets.
// Union is commutative and idempotent; neither input is modified.
func (s *PatternSet) Union(other *PatternSet) *PatternSet {
	merged := NewPatternSet()
	for p := range s.patterns {
		merged.patterns[p] = struct{}{}
	}
	if other != nil {
		for p := range other.patterns {
			merged.patterns[p] = struct{}{}
		}
	}
	return merged
}

// Load reads an ignore file from dir and returns its pattern set.
// Blank lines and "#" comments are skipped; remaining lines are inserted
// verbatim after trimming. The sentinel is always present in the result.
// Returns an error wrapping ErrSourceNotFound when the file does not exist.
func Load(dir, name string) (*PatternSet, error) {
	path := filepath.Join(dir, name)

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", path, ErrSourceNotFound)
		}
		return nil, fmt.Errorf("failed to open ignore file %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	set := NewPatternSet()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		set.Add(line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read ignore file %s: %w", path, err)
	}

	return set, nil
}
