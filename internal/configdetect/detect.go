// Package configdetect inspects project manifests to report which package
// ecosystems are present and how each is tested. It never fails: a missing
// or malformed manifest yields an undetected ecosystem or a false flag.
package configdetect

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// EcosystemInfo describes one detected package ecosystem.
type EcosystemInfo struct {
	Name          string `json:"name"`
	ManifestPath  string `json:"manifestPath"`
	TestFramework string `json:"testFramework,omitempty"`
	StaticTyping  bool   `json:"staticTyping"`
}

// ConfigInfo is the config-detection section of a summary.
type ConfigInfo struct {
	Ecosystems []EcosystemInfo `json:"ecosystems"`
}

// Detector inspects well-known manifests under a root.
type Detector struct {
	logger *slog.Logger
}

// NewDetector creates a config detector.
func NewDetector(logger *slog.Logger) *Detector {
	return &Detector{logger: logger}
}

// Detect probes each supported ecosystem in a stable order.
func (d *Detector) Detect(root string) ConfigInfo {
	info := ConfigInfo{Ecosystems: []EcosystemInfo{}}

	if eco, ok := d.detectNode(root); ok {
		info.Ecosystems = append(info.Ecosystems, eco)
	}
	if eco, ok := d.detectPython(root); ok {
		info.Ecosystems = append(info.Ecosystems, eco)
	}

	return info
}

// packageJSON is the subset of package.json the detector reads.
type packageJSON struct {
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
	Scripts         map[string]string `json:"scripts"`
}

var nodeTestFrameworks = []string{"jest", "vitest", "mocha", "jasmine", "ava", "tap", "cypress", "playwright"}

func (d *Detector) detectNode(root string) (EcosystemInfo, bool) {
	manifest := filepath.Join(root, "package.json")
	data, err := os.ReadFile(manifest)
	if err != nil {
		return EcosystemInfo{}, false
	}

	eco := EcosystemInfo{Name: "node", ManifestPath: "package.json"}

	var pkg packageJSON
	if err := json.Unmarshal(data, &pkg); err != nil {
		d.logger.Warn("malformed package.json", "error", err.Error())
		return eco, true // Manifest exists; flags stay false
	}

	deps := map[string]bool{}
	for name := range pkg.Dependencies {
		deps[name] = true
	}
	for name := range pkg.DevDependencies {
		deps[name] = true
	}

	for _, fw := range nodeTestFrameworks {
		if deps[fw] {
			eco.TestFramework = fw
			break
		}
	}
	if eco.TestFramework == "" && d.hasMocharc(root) {
		eco.TestFramework = "mocha"
	}

	if deps["typescript"] {
		eco.StaticTyping = true
	}
	if _, err := os.Stat(filepath.Join(root, "tsconfig.json")); err == nil {
		eco.StaticTyping = true
	}

	return eco, true
}

// hasMocharc checks the yaml mocha config variants.
func (d *Detector) hasMocharc(root string) bool {
	for _, name := range []string{".mocharc.yaml", ".mocharc.yml"} {
		data, err := os.ReadFile(filepath.Join(root, name))
		if err != nil {
			continue
		}
		var doc map[string]interface{}
		if err := yaml.Unmarshal(data, &doc); err != nil {
			d.logger.Warn("malformed mocharc", "file", name, "error", err.Error())
			continue
		}
		return true
	}
	return false
}

// pyproject is the subset of pyproject.toml the detector reads.
type pyproject struct {
	Project struct {
		Dependencies         []string            `toml:"dependencies"`
		OptionalDependencies map[string][]string `toml:"optional-dependencies"`
	} `toml:"project"`
	Tool map[string]interface{} `toml:"tool"`
}

var pythonTestFrameworks = []string{"pytest", "nose2", "nose", "tox"}

func (d *Detector) detectPython(root string) (EcosystemInfo, bool) {
	if eco, ok := d.detectPyproject(root); ok {
		return eco, true
	}

	// Legacy layouts: requirements.txt or setup.py.
	for _, name := range []string{"requirements.txt", "setup.py", "setup.cfg"} {
		manifest := filepath.Join(root, name)
		data, err := os.ReadFile(manifest)
		if err != nil {
			continue
		}
		eco := EcosystemInfo{Name: "python", ManifestPath: name}
		text := strings.ToLower(string(data))
		for _, fw := range pythonTestFrameworks {
			if strings.Contains(text, fw) {
				eco.TestFramework = fw
				break
			}
		}
		eco.StaticTyping = d.hasPythonTyping(root, text)
		return eco, true
	}

	return EcosystemInfo{}, false
}

func (d *Detector) detectPyproject(root string) (EcosystemInfo, bool) {
	manifest := filepath.Join(root, "pyproject.toml")
	data, err := os.ReadFile(manifest)
	if err != nil {
		return EcosystemInfo{}, false
	}

	eco := EcosystemInfo{Name: "python", ManifestPath: "pyproject.toml"}

	var doc pyproject
	if err := toml.Unmarshal(data, &doc); err != nil {
		d.logger.Warn("malformed pyproject.toml", "error", err.Error())
		return eco, true
	}

	var declared []string
	declared = append(declared, doc.Project.Dependencies...)
	for _, group := range doc.Project.OptionalDependencies {
		declared = append(declared, group...)
	}

	for _, fw := range pythonTestFrameworks {
		if _, ok := doc.Tool[fw]; ok {
			eco.TestFramework = fw
			break
		}
		for _, dep := range declared {
			if strings.HasPrefix(strings.ToLower(dep), fw) {
				eco.TestFramework = fw
				break
			}
		}
		if eco.TestFramework != "" {
			break
		}
	}

	if _, ok := doc.Tool["mypy"]; ok {
		eco.StaticTyping = true
	}
	if _, ok := doc.Tool["pyright"]; ok {
		eco.StaticTyping = true
	}
	if !eco.StaticTyping {
		eco.StaticTyping = d.hasPythonTyping(root, "")
	}

	return eco, true
}

// hasPythonTyping checks standalone typing configuration files.
func (d *Detector) hasPythonTyping(root, manifestText string) bool {
	if strings.Contains(manifestText, "mypy") || strings.Contains(manifestText, "pyright") {
		return true
	}
	for _, name := range []string{"mypy.ini", ".mypy.ini", "pyrightconfig.json"} {
		if _, err := os.Stat(filepath.Join(root, name)); err == nil {
			return true
		}
	}
	return false
}
