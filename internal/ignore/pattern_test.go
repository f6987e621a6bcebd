package ignore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompile_Classification(t *testing.T) {
	tests := []struct {
		pattern string
		shape   string
	}{
		{"", "inert"},
		{"# comment", "inert"},
		{"!bin", "inert"},
		{"**/test/**", "any-depth directory"},
		{"**/test*/**", "any-depth directory glob"},
		{"**/*.md", "any-depth path suffix"},
		{"**/test*/", "any-depth segment glob"},
		{"**/test", "any-depth prefix"},
		{"**/test/", "any-depth prefix"},
		{"build/**", "any-depth suffix"},
		{"src/**/fixtures", "middle wildcard"},
		{"node_modules/", "directory"},
		{"test*/", "directory glob"},
		{"*.js", "name suffix"},
		{"temp*", "segment prefix"},
		{"foo*bar", "name infix"},
		{"*.test.*", "substring"},
		{"README.md", "literal"},
		{"a*b*c", "inert"},
		{"**", "inert"},
		{"src/**tmp", "inert"},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			assert.Equal(t, tt.shape, Classify(tt.pattern))
		})
	}
}

func TestRule_AnyDepthDirectory(t *testing.T) {
	tests := []struct {
		name     string
		pattern  string
		path     string
		expected bool
	}{
		{"at root", "**/test/**", "test/file.js", true},
		{"nested", "**/test/**", "src/test/file.js", true},
		{"deep", "**/test/**", "a/b/test/c/file.js", true},
		{"segment prefix only", "**/test/**", "testing/file.js", false},
		{"file named test", "**/test/**", "src/test", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Compile(NewPatternSet(tt.pattern))
			assert.Equal(t, tt.expected, m.Match(tt.path))
		})
	}
}

func TestRule_AnyDepthDirectoryGlob(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		expected bool
	}{
		{"test dir at root", "test/file.js", true},
		{"tests dir nested", "src/tests/file.js", true},
		{"testing dir", "testing/helpers/util.js", true},
		{"final element is a file", "src/test_file.js", false},
		{"final element with trailing slash", "src/tests/", true},
		{"no test segment", "src/lib/file.js", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Compile(NewPatternSet("**/test*/**"))
			assert.Equal(t, tt.expected, m.Match(tt.path))
		})
	}
}

func TestRule_AnyDepthPrefix(t *testing.T) {
	tests := []struct {
		name     string
		pattern  string
		path     string
		expected bool
	}{
		{"exact", "**/fixtures", "fixtures", true},
		{"nested", "**/fixtures", "src/fixtures", true},
		{"segment prefix only", "**/fixtures", "src/fixtures2", false},
		{"dir form contains", "**/cache/", "src/cache/blob", true},
		{"dir form tail", "**/cache/", "src/cache", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Compile(NewPatternSet(tt.pattern))
			assert.Equal(t, tt.expected, m.Match(tt.path))
		})
	}
}

func TestRule_AnyDepthSuffix(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		expected bool
	}{
		{"direct child", "build/file.js", true},
		{"deep child", "build/output/bundle.js", true},
		{"nested build dir", "src/build/out.js", true},
		{"similar dir name", "builds/file.js", false},
		{"file named build", "src/build.js", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Compile(NewPatternSet("build/**"))
			assert.Equal(t, tt.expected, m.Match(tt.path))
		})
	}
}

func TestRule_MiddleWildcard(t *testing.T) {
	tests := []struct {
		name     string
		pattern  string
		path     string
		expected bool
	}{
		{"prefix and suffix", "src/**/fixtures", "src/a/b/fixtures", true},
		{"suffix as dir", "src/**/fixtures", "src/a/fixtures/data.json", true},
		{"missing prefix", "src/**/fixtures", "lib/a/fixtures", false},
		{"empty prefix", "/**/generated", "x/generated", true},
		{"empty suffix", "out/**/", "out/a/b/", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Compile(NewPatternSet(tt.pattern))
			assert.Equal(t, tt.expected, m.Match(tt.path))
		})
	}
}

func TestRule_DirectoryGlob(t *testing.T) {
	tests := []struct {
		name     string
		pattern  string
		path     string
		expected bool
	}{
		{"prefix match", "test*/", "tests/file.js", true},
		{"nested segment", "test*/", "src/testing/file.js", true},
		{"no matching segment", "test*/", "src/lib/file.js", false},
		{"prefix and suffix", "t*s/", "src/tests/file.js", true},
		{"suffix mismatch", "t*s/", "src/testing/file.js", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Compile(NewPatternSet(tt.pattern))
			assert.Equal(t, tt.expected, m.Match(tt.path))
		})
	}
}

func TestRule_StarSuffix(t *testing.T) {
	tests := []struct {
		name     string
		pattern  string
		path     string
		expected bool
	}{
		{"extension at root", "*.js", "file.js", true},
		{"extension nested", "*.js", "src/app.js", true},
		{"longer extension", "*.js", "file.jsx", false},
		{"double extension", "*.min.js", "dist/app.min.js", true},
		{"whole-name suffix", "*_test.go", "foo_test.go", false},
		{"whole-name exact", "*_test.go", "a/_test.go", true},
		{"bare star", "*", "anything/at/all", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Compile(NewPatternSet(tt.pattern))
			assert.Equal(t, tt.expected, m.Match(tt.path))
		})
	}
}

func TestRule_StarPrefix(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		expected bool
	}{
		{"exact", "temp", true},
		{"as leading dir", "temp/file.txt", true},
		{"as nested dir", "src/temp/file.txt", true},
		{"loose prefix", "temporary/file.txt", false},
		{"basename prefix", "src/tempfile.txt", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Compile(NewPatternSet("temp*"))
			assert.Equal(t, tt.expected, m.Match(tt.path))
		})
	}
}

func TestRule_StarMiddle(t *testing.T) {
	tests := []struct {
		name     string
		pattern  string
		path     string
		expected bool
	}{
		{"dotted suffix in name", "app*.gen.go", "src/app.gen.go", true},
		{"dotted suffix wrong name", "app*.gen.go", "src/lib.gen.go", false},
		{"plain suffix in path", "foo*bar", "x/foobar/y", true},
		{"plain suffix absent", "foo*bar", "x/foo/y", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Compile(NewPatternSet(tt.pattern))
			assert.Equal(t, tt.expected, m.Match(tt.path))
		})
	}
}

func TestRule_Literal(t *testing.T) {
	tests := []struct {
		name     string
		pattern  string
		path     string
		expected bool
	}{
		{"whole path", "Makefile", "Makefile", true},
		{"file anywhere", "Makefile", "src/Makefile", true},
		{"dir segment anywhere", "docs", "src/docs/intro.md", true},
		{"substring of segment", "docs", "src/docserver/main.go", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Compile(NewPatternSet(tt.pattern))
			assert.Equal(t, tt.expected, m.Match(tt.path))
		})
	}
}

func TestRule_Substring(t *testing.T) {
	m := Compile(NewPatternSet("*.test.*"))

	assert.True(t, m.Match("src/app.test.js"))
	assert.True(t, m.Match("app.test.ts"))
	assert.False(t, m.Match("src/apptest.js"))
}
