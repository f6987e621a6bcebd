package ignore

import "strings"

// Matcher holds compiled patterns and answers exclude/keep verdicts.
// A Matcher is immutable after Compile and safe for concurrent use from any
// number of goroutines without locking: Match performs no I/O and touches no
// shared mutable state.
type Matcher struct {
	rules []rule
}

// Compile compiles every pattern in the set into its typed rule.
// Inert patterns (comments, negations, unrecognized text) are dropped; they
// can never contribute a match. A nil set compiles to a matcher that only
// applies the built-in version-control rule.
func Compile(set *PatternSet) *Matcher {
	m := &Matcher{}
	if set == nil {
		return m
	}
	for _, p := range set.Patterns() {
		// The built-in version-control rule subsumes the sentinel pattern.
		if p == Sentinel {
			continue
		}
		r := compile(p)
		if r.shape == shapeInert {
			continue
		}
		m.rules = append(m.rules, r)
	}
	return m
}

// Match reports whether the path must be excluded. The path is normalized to
// forward slashes and matched relative to the traversal root. Matching is
// monotonic: any rule that matches excludes the path, so evaluation
// short-circuits on the first hit and iteration order cannot change the
// verdict. Match is total; it never fails.
func (m *Matcher) Match(path string) bool {
	path = strings.ReplaceAll(path, `\`, "/")

	// Version-control metadata is excluded unconditionally, even when the
	// pattern set is empty.
	if isGitPath(path) {
		return true
	}

	for _, r := range m.rules {
		if r.matches(path) {
			return true
		}
	}
	return false
}

// Rules returns the number of compiled (non-inert) rules.
func (m *Matcher) Rules() int {
	return len(m.rules)
}

// isGitPath reports whether any /-delimited segment of the path is ".git".
func isGitPath(path string) bool {
	return path == Sentinel ||
		strings.HasPrefix(path, Sentinel+"/") ||
		strings.HasSuffix(path, "/"+Sentinel) ||
		strings.Contains(path, "/"+Sentinel+"/")
}
