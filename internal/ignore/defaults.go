package ignore

// basePatterns are ignored for every project regardless of language.
var basePatterns = []string{
	".github",
	".vscode",
	".idea",
	"node_modules",
	"target",
	"build",
	"dist",
	"venv",
	".venv",
	"env",
	".env",
	".DS_Store",
	"*.log",
	"*.lock",
	"yarn.lock",
	"package-lock.json",
}

// languagePatterns adds build artifacts specific to the project's main
// language.
var languagePatterns = map[string][]string{
	"JavaScript": {"node_modules", "*.min.js", "*.bundle.js"},
	"TypeScript": {"node_modules", "*.min.js", "*.bundle.js"},
	"Python":     {"__pycache__", "*.pyc", ".pytest_cache"},
	"Rust":       {"target", "Cargo.lock"},
	"Java":       {"*.class", "bin", "out"},
	"Go":         {"vendor", "*.pb.go"},
	"C#":         {"bin", "obj", "*.dll"},
}

// Defaults returns the built-in pattern set used when no ignore file exists.
// The set is keyed off the detected main language; Godot projects keep their
// C# sources and engine metadata (.import, addons) visible.
func Defaults(mainLanguage string, godotProject bool) *PatternSet {
	set := NewPatternSet(basePatterns...)

	if mainLanguage != "" {
		if mainLanguage == "C#" && godotProject {
			// Godot C# builds live alongside scripts the digest needs.
			return applyGodotCarveOuts(set)
		}
		for _, p := range languagePatterns[mainLanguage] {
			set.Add(p)
		}
	}

	if godotProject {
		return applyGodotCarveOuts(set)
	}
	return set
}

// applyGodotCarveOuts drops patterns that would hide Godot engine metadata.
func applyGodotCarveOuts(set *PatternSet) *PatternSet {
	set.Remove(".import")
	set.Remove("addons")
	return set
}
