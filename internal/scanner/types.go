// Package scanner discovers the files that belong in a digest. It walks a
// project tree, filters entries through the ignore match engine, and applies
// the unrelated filters: file count, byte size, extension allow-list, and
// project-type heuristics.
package scanner

import (
	"strings"
	"time"

	"github.com/Aman-CERP/codedigest/internal/ignore"
)

// DefaultMaxFiles is the maximum number of files collected when unset.
const DefaultMaxFiles = 50

// DefaultMaxFileSize is the maximum file size in bytes when unset (100 KB).
const DefaultMaxFileSize int64 = 100 * 1024

// FileInfo contains metadata about a discovered file.
type FileInfo struct {
	Path     string    // Relative path to project root, forward slashes
	AbsPath  string    // Absolute path
	Size     int64     // File size in bytes
	ModTime  time.Time // Last modification time
	Language string    // Display language name, empty if unknown
}

// ScanOptions configures a scan.
type ScanOptions struct {
	// RootDir is the project root directory to scan.
	RootDir string

	// Matcher is the compiled ignore pattern matcher. Required.
	Matcher *ignore.Matcher

	// MaxFiles caps the number of collected files (0 = DefaultMaxFiles).
	MaxFiles int

	// MaxFileSize is the maximum file size in bytes (0 = DefaultMaxFileSize).
	MaxFileSize int64

	// RespectGitignore also honors nested .gitignore files during the walk,
	// independent of the root pattern set.
	RespectGitignore bool

	// GodotProject widens the extension allow-list with Godot file types.
	GodotProject bool
}

// languageByExt maps file extensions (without dot) to display language names.
var languageByExt = map[string]string{
	"rs":     "Rust",
	"js":     "JavaScript",
	"ts":     "TypeScript",
	"py":     "Python",
	"java":   "Java",
	"go":     "Go",
	"c":      "C/C++",
	"cpp":    "C/C++",
	"h":      "C/C++",
	"hpp":    "C/C++",
	"rb":     "Ruby",
	"php":    "PHP",
	"cs":     "C#",
	"html":   "HTML",
	"css":    "CSS",
	"json":   "JSON",
	"md":     "Markdown",
	"yml":    "YAML",
	"yaml":   "YAML",
	"toml":   "TOML",
	"gd":     "GDScript",
	"tscn":   "Godot Scene",
	"tres":   "Godot Scene",
	"shader": "Godot Shader",
}

// godotExts are additionally included for Godot projects.
var godotExts = map[string]struct{}{
	"gd":     {},
	"tscn":   {},
	"cs":     {},
	"godot":  {},
	"tres":   {},
	"import": {},
	"shader": {},
}

// fenceTagByLanguage maps display language names to markdown fence tags.
var fenceTagByLanguage = map[string]string{
	"JavaScript":   "js",
	"TypeScript":   "ts",
	"Python":       "python",
	"Rust":         "rust",
	"Java":         "java",
	"Go":           "go",
	"C/C++":        "cpp",
	"Ruby":         "ruby",
	"PHP":          "php",
	"C#":           "csharp",
	"GDScript C#":  "csharp",
	"HTML":         "html",
	"CSS":          "css",
	"JSON":         "json",
	"Markdown":     "md",
	"YAML":         "yaml",
	"TOML":         "toml",
	"GDScript":     "gdscript",
	"Godot Scene":  "gdscript",
	"Godot Shader": "glsl",
}

// DetectLanguage returns the display language for a path, adjusted for the
// project type. Returns empty for unknown extensions.
func DetectLanguage(path string, godotProject bool) string {
	ext := extension(path)
	if ext == "" {
		return ""
	}
	lang, ok := languageByExt[ext]
	if !ok {
		return ""
	}
	if godotProject && lang == "C#" {
		return "GDScript C#"
	}
	return lang
}

// FenceTag returns the markdown code fence tag for a language, or empty when
// no tag applies.
func FenceTag(language string) string {
	return fenceTagByLanguage[language]
}

// isCodeFile reports whether the extension belongs to the allow-list of
// common code and config files.
func isCodeFile(ext string, godotProject bool) bool {
	if godotProject {
		if _, ok := godotExts[ext]; ok {
			return true
		}
	}
	_, ok := languageByExt[ext]
	return ok
}

// extension returns the lowercase file extension without the dot.
func extension(path string) string {
	name := path
	if i := strings.LastIndexAny(name, `/\`); i >= 0 {
		name = name[i+1:]
	}
	i := strings.LastIndexByte(name, '.')
	if i < 0 || i == len(name)-1 {
		return ""
	}
	return strings.ToLower(name[i+1:])
}
