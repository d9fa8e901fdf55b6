package scan

import (
	"path"
	"strings"
)

// recognized source extensions, mapped to their language.
var extLanguages = map[string]Language{
	".py":  LangPython,
	".pyi": LangPython,
	".js":  LangJavaScript,
	".jsx": LangJavaScript,
	".mjs": LangJavaScript,
	".cjs": LangJavaScript,
	".ts":  LangTypeScript,
	".tsx": LangTypeScript,
}

// Directories never descended into.
var skipDirs = map[string]bool{
	".git":          true,
	".hg":           true,
	".svn":          true,
	".repolens":     true,
	"node_modules":  true,
	"vendor":        true,
	"dist":          true,
	"build":         true,
	"out":           true,
	"__pycache__":   true,
	".venv":         true,
	"venv":          true,
	".tox":          true,
	".mypy_cache":   true,
	".pytest_cache": true,
	".next":         true,
	"coverage":      true,
	".cache":        true,
}

// docs directories by basename.
var docsDirs = map[string]bool{
	"docs":  true,
	"doc":   true,
	"man":   true,
	"wiki":  true,
	"guide": true,
}

// config filenames recognized regardless of directory.
var configNames = map[string]bool{
	"package.json":       true,
	"package-lock.json":  true,
	"tsconfig.json":      true,
	"jsconfig.json":      true,
	"pyproject.toml":     true,
	"setup.py":           true,
	"setup.cfg":          true,
	"requirements.txt":   true,
	"pipfile":            true,
	"tox.ini":            true,
	"pytest.ini":         true,
	"mypy.ini":           true,
	".babelrc":           true,
	".eslintrc":          true,
	"webpack.config.js":  true,
	"vite.config.js":     true,
	"vite.config.ts":     true,
	"jest.config.js":     true,
	"jest.config.ts":     true,
	"rollup.config.js":   true,
	"babel.config.js":    true,
	"makefile":           true,
	"dockerfile":         true,
	"docker-compose.yml": true,
}

// LanguageForPath returns the language for a path based on its extension,
// or LangOther for unrecognized extensions.
func LanguageForPath(p string) Language {
	ext := strings.ToLower(path.Ext(p))
	if lang, ok := extLanguages[ext]; ok {
		return lang
	}
	return LangOther
}

// RecognizedExtension reports whether the path carries a recognized source extension.
func RecognizedExtension(p string) bool {
	_, ok := extLanguages[strings.ToLower(path.Ext(p))]
	return ok
}

// RoleForPath classifies a file by filename and path heuristics alone.
// The path must be root-relative with forward slashes.
func RoleForPath(p string) Role {
	base := strings.ToLower(path.Base(p))
	segments := strings.Split(strings.ToLower(p), "/")

	// Test markers: suffix/prefix conventions and test directories.
	if isTestFile(base, segments) {
		return RoleTest
	}

	if configNames[base] {
		return RoleConfig
	}
	if strings.HasSuffix(base, ".config.js") || strings.HasSuffix(base, ".config.ts") {
		return RoleConfig
	}
	switch path.Ext(base) {
	case ".ini", ".cfg", ".toml", ".yaml", ".yml", ".env":
		return RoleConfig
	}

	if isDocsFile(base, segments) {
		return RoleDocs
	}

	return RoleSource
}

func isTestFile(base string, segments []string) bool {
	for _, seg := range segments[:len(segments)-1] {
		if seg == "test" || seg == "tests" || seg == "__tests__" || seg == "spec" || seg == "testdata" {
			return true
		}
	}

	name := strings.TrimSuffix(base, path.Ext(base))
	if strings.HasPrefix(name, "test_") || strings.HasSuffix(name, "_test") {
		return true
	}
	if strings.HasSuffix(name, ".test") || strings.HasSuffix(name, ".spec") {
		return true
	}
	if name == "conftest" {
		return true
	}
	return false
}

func isDocsFile(base string, segments []string) bool {
	for _, seg := range segments[:len(segments)-1] {
		if docsDirs[seg] {
			return true
		}
	}

	switch path.Ext(base) {
	case ".md", ".rst", ".adoc", ".txt":
		if base == "requirements.txt" {
			return false
		}
		return true
	}
	name := strings.TrimSuffix(base, path.Ext(base))
	switch name {
	case "readme", "license", "changelog", "contributing", "authors", "notice":
		return true
	}
	return false
}

// isMinified reports whether a filename looks like a minified artifact.
func isMinified(base string) bool {
	return strings.Contains(base, ".min.") ||
		strings.HasSuffix(base, ".bundle.js") ||
		strings.HasSuffix(base, ".map")
}
