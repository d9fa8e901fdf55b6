package configdetect

import (
	"os"
	"path/filepath"
	"testing"

	"repolens/internal/slogutil"
)

func writeManifest(t *testing.T, root, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(root, name), []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func newTestDetector() *Detector {
	return NewDetector(slogutil.NewDiscardLogger())
}

func TestDetectEmpty(t *testing.T) {
	info := newTestDetector().Detect(t.TempDir())

	if info.Ecosystems == nil {
		t.Fatal("ecosystems must be an empty list, not nil")
	}
	if len(info.Ecosystems) != 0 {
		t.Errorf("expected no ecosystems, got %v", info.Ecosystems)
	}
}

func TestDetectNodeWithJest(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "package.json", `{
  "name": "demo",
  "devDependencies": {"jest": "^29.0.0"}
}`)

	info := newTestDetector().Detect(root)
	if len(info.Ecosystems) != 1 {
		t.Fatalf("ecosystems = %v", info.Ecosystems)
	}

	eco := info.Ecosystems[0]
	if eco.Name != "node" || eco.ManifestPath != "package.json" {
		t.Errorf("eco = %+v", eco)
	}
	if eco.TestFramework != "jest" {
		t.Errorf("testFramework = %q, expected jest", eco.TestFramework)
	}
	if eco.StaticTyping {
		t.Error("no typescript present, staticTyping should be false")
	}
}

func TestDetectNodeTypeScriptViaTsconfig(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "package.json", `{"name": "demo"}`)
	writeManifest(t, root, "tsconfig.json", `{"compilerOptions": {}}`)

	info := newTestDetector().Detect(root)
	if len(info.Ecosystems) != 1 || !info.Ecosystems[0].StaticTyping {
		t.Errorf("expected staticTyping via tsconfig.json, got %v", info.Ecosystems)
	}
}

func TestDetectNodeMocharc(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "package.json", `{"name": "demo"}`)
	writeManifest(t, root, ".mocharc.yml", "timeout: 5000\n")

	info := newTestDetector().Detect(root)
	if len(info.Ecosystems) != 1 || info.Ecosystems[0].TestFramework != "mocha" {
		t.Errorf("expected mocha via .mocharc.yml, got %v", info.Ecosystems)
	}
}

func TestDetectNodeMalformedManifest(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "package.json", `{"name": "demo",`)

	info := newTestDetector().Detect(root)
	if len(info.Ecosystems) != 1 {
		t.Fatal("malformed manifest still marks the ecosystem present")
	}

	eco := info.Ecosystems[0]
	if eco.TestFramework != "" || eco.StaticTyping {
		t.Errorf("malformed manifest must leave flags unset, got %+v", eco)
	}
}

func TestDetectPyproject(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "pyproject.toml", `[project]
name = "demo"
dependencies = ["requests>=2.0"]

[project.optional-dependencies]
dev = ["pytest>=8.0"]

[tool.mypy]
strict = true
`)

	info := newTestDetector().Detect(root)
	if len(info.Ecosystems) != 1 {
		t.Fatalf("ecosystems = %v", info.Ecosystems)
	}

	eco := info.Ecosystems[0]
	if eco.Name != "python" || eco.ManifestPath != "pyproject.toml" {
		t.Errorf("eco = %+v", eco)
	}
	if eco.TestFramework != "pytest" {
		t.Errorf("testFramework = %q, expected pytest", eco.TestFramework)
	}
	if !eco.StaticTyping {
		t.Error("expected staticTyping via [tool.mypy]")
	}
}

func TestDetectPythonRequirements(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "requirements.txt", "flask==3.0\npytest==8.0\nmypy==1.8\n")

	info := newTestDetector().Detect(root)
	if len(info.Ecosystems) != 1 {
		t.Fatalf("ecosystems = %v", info.Ecosystems)
	}

	eco := info.Ecosystems[0]
	if eco.ManifestPath != "requirements.txt" {
		t.Errorf("manifestPath = %q", eco.ManifestPath)
	}
	if eco.TestFramework != "pytest" || !eco.StaticTyping {
		t.Errorf("eco = %+v", eco)
	}
}

func TestDetectBothEcosystems(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "package.json", `{"devDependencies": {"vitest": "^1.0"}}`)
	writeManifest(t, root, "pyproject.toml", "[project]\nname = \"demo\"\n")

	info := newTestDetector().Detect(root)
	if len(info.Ecosystems) != 2 {
		t.Fatalf("expected node and python, got %v", info.Ecosystems)
	}
	// Node always reports before python.
	if info.Ecosystems[0].Name != "node" || info.Ecosystems[1].Name != "python" {
		t.Errorf("order = %s, %s", info.Ecosystems[0].Name, info.Ecosystems[1].Name)
	}
	if info.Ecosystems[0].TestFramework != "vitest" {
		t.Errorf("testFramework = %q", info.Ecosystems[0].TestFramework)
	}
}
