// Package ignore decides whether a candidate path is excluded from a digest.
// It implements a practical subset of gitignore-style glob matching without a
// general glob engine: directory-only patterns, anchored any-depth wildcards,
// middle wildcards, single-segment wildcards, and literal substrings.
//
// Pattern lines are loaded into a PatternSet and compiled once into a Matcher.
// Matching is monotonic and order-independent: any matching pattern excludes
// the path, and negation ("!" lines) carries no effect. Paths containing a
// .git segment are always excluded, independent of the pattern set.
package ignore
