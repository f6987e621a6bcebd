package ignore

import "strings"

// shape identifies the compiled form of a pattern. Each pattern line is
// classified into exactly one shape; unrecognized text compiles to
// shapeInert and never matches.
type shape int

const (
	// shapeInert never matches: empty lines, comments, negations, and
	// pattern text outside the supported grammar.
	shapeInert shape = iota

	// shapeAnyDepthDirs is **/name/**: a literal directory name at any depth.
	shapeAnyDepthDirs

	// shapeAnyDepthDirGlob is **/pre*suf/**: a wildcard directory segment at
	// any depth. The matched segment must not be the path's final element
	// unless the path ends with a separator.
	shapeAnyDepthDirGlob

	// shapeAnyDepthPathSuffix is **/*tail (e.g. **/*.md): the path must end
	// with tail.
	shapeAnyDepthPathSuffix

	// shapeAnyDepthSegGlob is **/pre*suf/: a wildcard directory segment at
	// any depth, without the final-element refinement.
	shapeAnyDepthSegGlob

	// shapeAnyDepthPrefix is **/suffix with a literal suffix.
	shapeAnyDepthPrefix

	// shapeAnyDepthSuffix is prefix/**.
	shapeAnyDepthSuffix

	// shapeAnyDepthBetween is prefix/**/suffix.
	shapeAnyDepthBetween

	// shapeDir is dir/: a literal directory segment.
	shapeDir

	// shapeDirGlob is pre*suf/: a wildcard directory segment.
	shapeDirGlob

	// shapeStarSuffix is *suffix: an extension-like or whole-name suffix on
	// the final path segment.
	shapeStarSuffix

	// shapeStarPrefix is prefix*: a prefix aligned to a path segment boundary.
	shapeStarPrefix

	// shapeStarMiddle is prefix*suffix with both parts non-empty.
	shapeStarMiddle

	// shapeContains is *mid*: a raw substring of the path (e.g. *.test.*).
	shapeContains

	// shapeLiteral is a bare name: whole path, file name, or directory
	// segment anywhere in the tree.
	shapeLiteral
)

var shapeNames = map[shape]string{
	shapeInert:              "inert",
	shapeAnyDepthDirs:       "any-depth directory",
	shapeAnyDepthDirGlob:    "any-depth directory glob",
	shapeAnyDepthPathSuffix: "any-depth path suffix",
	shapeAnyDepthSegGlob:    "any-depth segment glob",
	shapeAnyDepthPrefix:     "any-depth prefix",
	shapeAnyDepthSuffix:     "any-depth suffix",
	shapeAnyDepthBetween:    "middle wildcard",
	shapeDir:                "directory",
	shapeDirGlob:            "directory glob",
	shapeStarSuffix:         "name suffix",
	shapeStarPrefix:         "segment prefix",
	shapeStarMiddle:         "name infix",
	shapeContains:           "substring",
	shapeLiteral:            "literal",
}

// String returns a human-readable name for the shape.
func (s shape) String() string {
	if name, ok := shapeNames[s]; ok {
		return name
	}
	return "unknown"
}

// rule is one compiled pattern. It carries only the decomposed strings its
// shape needs, so Match never re-parses raw pattern text.
type rule struct {
	raw    string
	shape  shape
	prefix string
	suffix string
}

// compile classifies a pattern line into its rule. Classification follows
// the grammar precedence: any-depth forms first, then directory forms, then
// single-wildcard forms, then literals.
func compile(raw string) rule {
	p := strings.TrimSpace(raw)
	r := rule{raw: p, shape: shapeInert}

	if p == "" || strings.HasPrefix(p, "#") || strings.HasPrefix(p, "!") {
		return r
	}

	// **/name/** and **/pre*suf/**: a directory segment at any depth.
	if strings.HasPrefix(p, "**/") && strings.HasSuffix(p, "/**") && len(p) >= 7 {
		seg := p[3 : len(p)-3]
		if !strings.Contains(seg, "/") {
			switch strings.Count(seg, "*") {
			case 0:
				r.shape = shapeAnyDepthDirs
				r.prefix = seg
				return r
			case 1:
				star := strings.IndexByte(seg, '*')
				r.shape = shapeAnyDepthDirGlob
				r.prefix = seg[:star]
				r.suffix = seg[star+1:]
				return r
			}
		}
		// Fall through: multi-segment or multi-wildcard middles are handled
		// by the generic any-depth rules below.
	}

	if strings.HasPrefix(p, "**/") {
		suffix := p[3:]

		// **/*tail (e.g. **/*.md): match on the path's tail.
		if strings.HasPrefix(suffix, "*") &&
			!strings.Contains(suffix[1:], "*") && !strings.Contains(suffix, "/") {
			r.shape = shapeAnyDepthPathSuffix
			r.suffix = suffix[1:]
			return r
		}

		// **/pre*suf/ (e.g. **/test*/): wildcard directory at any depth.
		if strings.HasSuffix(suffix, "/") {
			seg := suffix[:len(suffix)-1]
			if !strings.Contains(seg, "/") && strings.Count(seg, "*") == 1 {
				star := strings.IndexByte(seg, '*')
				r.shape = shapeAnyDepthSegGlob
				r.prefix = seg[:star]
				r.suffix = seg[star+1:]
				return r
			}
		}

		r.shape = shapeAnyDepthPrefix
		r.suffix = suffix
		return r
	}

	if strings.HasSuffix(p, "/**") {
		r.shape = shapeAnyDepthSuffix
		r.prefix = p[:len(p)-3]
		return r
	}

	if i := strings.Index(p, "/**/"); i >= 0 {
		r.shape = shapeAnyDepthBetween
		r.prefix = p[:i]
		r.suffix = p[i+4:]
		return r
	}

	if strings.HasSuffix(p, "/") {
		dir := p[:len(p)-1]
		if !strings.Contains(dir, "*") {
			r.shape = shapeDir
			r.prefix = dir
			return r
		}
		if !strings.Contains(dir, "/") && strings.Count(dir, "*") == 1 {
			star := strings.IndexByte(dir, '*')
			r.shape = shapeDirGlob
			r.prefix = dir[:star]
			r.suffix = dir[star+1:]
			return r
		}
		return r
	}

	// Remaining shapes carry no ** at all.
	if strings.Contains(p, "**") {
		return r
	}

	switch strings.Count(p, "*") {
	case 0:
		r.shape = shapeLiteral
		r.prefix = p
	case 1:
		star := strings.IndexByte(p, '*')
		pre, suf := p[:star], p[star+1:]
		switch {
		case pre == "":
			r.shape = shapeStarSuffix
			r.suffix = suf
		case suf == "":
			r.shape = shapeStarPrefix
			r.prefix = pre
		default:
			r.shape = shapeStarMiddle
			r.prefix = pre
			r.suffix = suf
		}
	case 2:
		// *mid* (e.g. *.test.*): a raw substring of the path.
		if strings.HasPrefix(p, "*") && strings.HasSuffix(p, "*") && len(p) > 2 {
			r.shape = shapeContains
			r.prefix = p[1 : len(p)-1]
		}
	}

	return r
}

// matches reports whether the compiled rule matches the normalized path.
func (r rule) matches(path string) bool {
	switch r.shape {
	case shapeAnyDepthDirs:
		return strings.HasPrefix(path, r.prefix+"/") ||
			strings.Contains(path, "/"+r.prefix+"/")

	case shapeAnyDepthDirGlob:
		segments := strings.Split(path, "/")
		for i, seg := range segments {
			if seg == "" || !strings.HasPrefix(seg, r.prefix) || !strings.HasSuffix(seg, r.suffix) {
				continue
			}
			// The segment must be a directory: a final element only counts
			// when the path carries a trailing separator.
			if i == len(segments)-1 && !strings.HasSuffix(path, "/") {
				continue
			}
			return true
		}
		return false

	case shapeAnyDepthPathSuffix:
		return strings.HasSuffix(path, r.suffix)

	case shapeAnyDepthSegGlob, shapeDirGlob:
		for _, seg := range strings.Split(path, "/") {
			if seg != "" && strings.HasPrefix(seg, r.prefix) && strings.HasSuffix(seg, r.suffix) {
				return true
			}
		}
		return false

	case shapeAnyDepthPrefix:
		if path == r.suffix || strings.HasSuffix(path, "/"+r.suffix) {
			return true
		}
		if strings.HasSuffix(r.suffix, "/") {
			dir := r.suffix[:len(r.suffix)-1]
			return strings.HasSuffix(path, dir) || strings.Contains(path, dir+"/")
		}
		return false

	case shapeAnyDepthSuffix:
		return strings.HasPrefix(path, r.prefix+"/") ||
			strings.Contains(path, "/"+r.prefix+"/")

	case shapeAnyDepthBetween:
		prefixOK := r.prefix == "" ||
			strings.HasPrefix(path, r.prefix) ||
			strings.Contains(path, "/"+r.prefix)
		suffixOK := r.suffix == "" ||
			strings.HasSuffix(path, r.suffix) ||
			strings.Contains(path, r.suffix+"/")
		return prefixOK && suffixOK

	case shapeDir:
		return path == r.prefix ||
			strings.HasPrefix(path, r.prefix+"/") ||
			strings.Contains(path, "/"+r.prefix+"/")

	case shapeStarSuffix:
		name := baseName(path)
		if !strings.HasSuffix(name, r.suffix) {
			return false
		}
		// Only extension-like or whole-name suffixes, not arbitrary tails.
		return r.suffix == "" || strings.HasPrefix(r.suffix, ".") || name == r.suffix

	case shapeStarPrefix:
		return path == r.prefix ||
			strings.HasPrefix(path, r.prefix+"/") ||
			strings.Contains(path, "/"+r.prefix+"/")

	case shapeStarMiddle:
		joined := r.prefix + r.suffix
		if strings.HasPrefix(r.suffix, ".") {
			return strings.Contains(baseName(path), joined)
		}
		return strings.Contains(path, joined)

	case shapeContains:
		return strings.Contains(path, r.prefix)

	case shapeLiteral:
		return path == r.prefix ||
			strings.HasSuffix(path, "/"+r.prefix) ||
			strings.Contains(path, "/"+r.prefix+"/")
	}

	return false
}

// baseName returns the final /-delimited segment of a path.
func baseName(path string) string {
	if i := strings.LastIndexByte(path, '/'); i >= 0 {
		return path[i+1:]
	}
	return path
}

// Classify returns the human-readable shape name a pattern compiles to.
// Used by the patterns command for inspecting an effective pattern set.
func Classify(pattern string) string {
	return compile(pattern).shape.String()
}
