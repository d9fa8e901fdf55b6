package scan

import (
	"testing"
)

func TestLanguageForPath(t *testing.T) {
	testCases := []struct {
		path     string
		expected Language
	}{
		{"src/app.py", LangPython},
		{"src/types.pyi", LangPython},
		{"lib/index.js", LangJavaScript},
		{"lib/view.jsx", LangJavaScript},
		{"lib/mod.mjs", LangJavaScript},
		{"lib/legacy.cjs", LangJavaScript},
		{"src/main.ts", LangTypeScript},
		{"src/App.tsx", LangTypeScript},
		{"SRC/MAIN.TS", LangTypeScript},
		{"README.md", LangOther},
		{"config.toml", LangOther},
		{"binary.exe", LangOther},
		{"noextension", LangOther},
	}

	for _, tc := range testCases {
		if got := LanguageForPath(tc.path); got != tc.expected {
			t.Errorf("LanguageForPath(%q) = %q, expected %q", tc.path, got, tc.expected)
		}
	}
}

func TestRecognizedExtension(t *testing.T) {
	if !RecognizedExtension("a/b/c.py") {
		t.Error("expected .py to be recognized")
	}
	if RecognizedExtension("a/b/c.rb") {
		t.Error("expected .rb to be unrecognized")
	}
	if RecognizedExtension("README.md") {
		t.Error("expected .md to be unrecognized as source")
	}
}

func TestRoleForPath(t *testing.T) {
	testCases := []struct {
		path     string
		expected Role
	}{
		{"src/app.py", RoleSource},
		{"src/test_app.py", RoleTest},
		{"src/app_test.py", RoleTest},
		{"tests/helpers.py", RoleTest},
		{"src/__tests__/app.js", RoleTest},
		{"src/app.spec.ts", RoleTest},
		{"src/app.test.js", RoleTest},
		{"conftest.py", RoleTest},
		{"package.json", RoleConfig},
		{"pyproject.toml", RoleConfig},
		{"settings.ini", RoleConfig},
		{"jest.config.js", RoleConfig},
		{"vite.config.ts", RoleConfig},
		{"README.md", RoleDocs},
		{"docs/usage.py", RoleDocs},
		{"CHANGELOG", RoleDocs},
		{"notes.txt", RoleDocs},
		{"requirements.txt", RoleConfig},
		{"src/main.ts", RoleSource},
	}

	for _, tc := range testCases {
		if got := RoleForPath(tc.path); got != tc.expected {
			t.Errorf("RoleForPath(%q) = %q, expected %q", tc.path, got, tc.expected)
		}
	}
}

func TestRoleTestBeatsDocs(t *testing.T) {
	// Test markers win over docs extensions for files inside test dirs.
	if got := RoleForPath("tests/fixtures.md"); got != RoleTest {
		t.Errorf("RoleForPath(tests/fixtures.md) = %q, expected test", got)
	}
}

func TestIsMinified(t *testing.T) {
	testCases := []struct {
		base     string
		expected bool
	}{
		{"app.min.js", true},
		{"vendor.bundle.js", true},
		{"app.js.map", true},
		{"app.js", false},
		{"minutes.py", false},
	}

	for _, tc := range testCases {
		if got := isMinified(tc.base); got != tc.expected {
			t.Errorf("isMinified(%q) = %v, expected %v", tc.base, got, tc.expected)
		}
	}
}
