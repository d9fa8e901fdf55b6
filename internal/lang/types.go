// Package lang extracts module descriptors from source text using
// tree-sitter grammars. One parser implementation exists per supported
// language; all of them satisfy the same Parse contract.
package lang

import (
	"sort"

	"repolens/internal/scan"
)

// ExportKind classifies an extracted declaration.
type ExportKind string

const (
	KindFunction ExportKind = "function"
	KindClass    ExportKind = "class"
	KindConstant ExportKind = "constant"
	KindType     ExportKind = "type"
)

// ExportRecord is one extracted declaration with signature metadata.
// Docstring carries at most the first line of a leading string literal,
// never body text.
type ExportRecord struct {
	Name       string     `json:"name"`
	Kind       ExportKind `json:"kind"`
	Signature  string     `json:"signature,omitempty"`
	Docstring  string     `json:"docstring,omitempty"`
	LineNumber int        `json:"lineNumber"`
	IsAsync    bool       `json:"isAsync"`
	IsExported bool       `json:"isExported"`
}

// Tier is the coarse complexity bucket of a module.
type Tier string

const (
	TierLow    Tier = "low"
	TierMedium Tier = "medium"
	TierHigh   Tier = "high"
)

// TierPolicy holds the export-count thresholds for complexity tiers.
// The boundaries are policy, not semantics; they are configurable.
type TierPolicy struct {
	LowMax    int
	MediumMax int
}

// DefaultTierPolicy returns the stock 5/15 thresholds.
func DefaultTierPolicy() TierPolicy {
	return TierPolicy{LowMax: 5, MediumMax: 15}
}

// ForCount maps an export count onto a tier.
func (p TierPolicy) ForCount(n int) Tier {
	switch {
	case n <= p.LowMax:
		return TierLow
	case n <= p.MediumMax:
		return TierMedium
	default:
		return TierHigh
	}
}

// ModuleDescriptor is the per-file result of a grammar parse.
type ModuleDescriptor struct {
	Path           string         `json:"path"`
	Language       scan.Language  `json:"language"`
	Exports        []ExportRecord `json:"exports"`
	Imports        []string       `json:"imports"`
	ComplexityTier Tier           `json:"complexityTier"`
	Degraded       bool           `json:"degraded,omitempty"`
}

// ExportedOnly returns the exports visible outside the module.
func (m *ModuleDescriptor) ExportedOnly() []ExportRecord {
	var visible []ExportRecord
	for _, e := range m.Exports {
		if e.IsExported {
			visible = append(visible, e)
		}
	}
	return visible
}

// finalize sorts exports by line, dedupes and sorts imports, and computes
// the tier. Parsers call this last so worker ordering never shows.
func (m *ModuleDescriptor) finalize(policy TierPolicy) {
	sort.SliceStable(m.Exports, func(i, j int) bool {
		if m.Exports[i].LineNumber != m.Exports[j].LineNumber {
			return m.Exports[i].LineNumber < m.Exports[j].LineNumber
		}
		return m.Exports[i].Name < m.Exports[j].Name
	})

	seen := make(map[string]bool, len(m.Imports))
	unique := m.Imports[:0]
	for _, imp := range m.Imports {
		if imp == "" || seen[imp] {
			continue
		}
		seen[imp] = true
		unique = append(unique, imp)
	}
	sort.Strings(unique)
	m.Imports = unique

	m.ComplexityTier = policy.ForCount(len(m.Exports))
}

// degraded returns the "present but unparseable" descriptor for a path.
func degraded(path string, language scan.Language) *ModuleDescriptor {
	return &ModuleDescriptor{
		Path:           path,
		Language:       language,
		Exports:        []ExportRecord{},
		Imports:        []string{},
		ComplexityTier: TierLow,
		Degraded:       true,
	}
}
