package lang

import (
	"context"
	"log/slog"

	"repolens/internal/scan"
)

// Parser is the common per-language contract: walk the AST of sourceText
// and extract declarations and imports. Implementations never return an
// error for malformed source; they degrade to an empty descriptor instead.
type Parser interface {
	// Language returns the language this parser handles.
	Language() scan.Language

	// Parse extracts a ModuleDescriptor from source text. The returned
	// descriptor is always non-nil; a degraded (empty) descriptor marks a
	// file that is present but unparseable.
	Parse(ctx context.Context, source []byte, relPath string) *ModuleDescriptor
}

// Limits bounds AST traversal so pathological or generated input cannot
// blow the stack or stall a parse.
type Limits struct {
	// MaxDepth stops descent past this nesting depth.
	MaxDepth int
	// MaxErrorNodes degrades the whole parse once exceeded.
	MaxErrorNodes int
}

// DefaultLimits returns the stock traversal bounds.
func DefaultLimits() Limits {
	return Limits{MaxDepth: 200, MaxErrorNodes: 10}
}

// Registry is the closed set of language parsers, selected by extension at
// the scanner/orchestrator boundary. It is owned by the caller; there is no
// process-wide parser state.
type Registry struct {
	parsers map[scan.Language]Parser
}

// NewRegistry builds the registry of supported languages. Adding a language
// means registering one more Parser here; call sites do not change.
func NewRegistry(policy TierPolicy, limits Limits, logger *slog.Logger) *Registry {
	parsers := map[scan.Language]Parser{}
	for _, p := range []Parser{
		NewPythonParser(policy, limits, logger),
		NewJavaScriptParser(policy, limits, logger),
	} {
		parsers[p.Language()] = p
	}
	// TypeScript shares the JavaScript implementation; the grammar is
	// selected per extension inside it.
	parsers[scan.LangTypeScript] = parsers[scan.LangJavaScript]
	return &Registry{parsers: parsers}
}

// ForPath returns the parser responsible for a path, if any.
func (r *Registry) ForPath(relPath string) (Parser, bool) {
	lang := scan.LanguageForPath(relPath)
	p, ok := r.parsers[lang]
	return p, ok
}

// Supports reports whether a path has a registered grammar.
func (r *Registry) Supports(relPath string) bool {
	_, ok := r.ForPath(relPath)
	return ok
}
