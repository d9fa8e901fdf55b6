package lang

import (
	"context"
	"log/slog"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"repolens/internal/scan"
)

// PythonParser extracts descriptors from Python source.
type PythonParser struct {
	policy TierPolicy
	limits Limits
	logger *slog.Logger
}

// NewPythonParser creates the Python grammar parser.
func NewPythonParser(policy TierPolicy, limits Limits, logger *slog.Logger) *PythonParser {
	return &PythonParser{policy: policy, limits: limits, logger: logger}
}

// Language returns the language this parser handles.
func (p *PythonParser) Language() scan.Language {
	return scan.LangPython
}

// Parse extracts top-level declarations and imports from Python source.
// Malformed source degrades to an empty descriptor, never an error.
func (p *PythonParser) Parse(ctx context.Context, source []byte, relPath string) *ModuleDescriptor {
	tree, err := parseTree(ctx, source, grammarForPath(relPath))
	if err != nil {
		p.logger.Warn("python parse failed", "path", relPath, "error", err.Error())
		return degraded(relPath, scan.LangPython)
	}
	root := tree.RootNode()

	if n := countErrorNodes(root, p.limits.MaxDepth, p.limits.MaxErrorNodes); n > p.limits.MaxErrorNodes {
		p.logger.Warn("python parse degraded", "path", relPath, "errorNodes", n)
		return degraded(relPath, scan.LangPython)
	}

	desc := &ModuleDescriptor{
		Path:     relPath,
		Language: scan.LangPython,
		Exports:  []ExportRecord{},
		Imports:  []string{},
	}

	for i := 0; i < int(root.ChildCount()); i++ {
		child := root.Child(i)
		if child == nil {
			continue
		}
		p.extractTopLevel(child, source, desc)
	}

	desc.finalize(p.policy)
	return desc
}

// extractTopLevel handles one direct child of the module node.
func (p *PythonParser) extractTopLevel(node *sitter.Node, source []byte, desc *ModuleDescriptor) {
	switch node.Type() {
	case "decorated_definition":
		if def := node.ChildByFieldName("definition"); def != nil {
			p.extractTopLevel(def, source, desc)
		}

	case "function_definition":
		if rec, ok := p.function(node, source); ok {
			desc.Exports = append(desc.Exports, rec)
		}

	case "class_definition":
		if rec, ok := p.class(node, source); ok {
			desc.Exports = append(desc.Exports, rec)
		}

	case "expression_statement":
		if assign := firstChildOfType(node, "assignment"); assign != nil {
			if rec, ok := p.constant(assign, source); ok {
				desc.Exports = append(desc.Exports, rec)
			}
		}

	case "type_alias_statement":
		if name := firstChildOfType(node, "type"); name != nil {
			desc.Exports = append(desc.Exports, ExportRecord{
				Name:       firstLine(nodeText(name, source)),
				Kind:       KindType,
				LineNumber: lineOf(node),
				IsExported: true,
			})
		}

	case "import_statement":
		p.importStatement(node, source, desc)

	case "import_from_statement":
		if mod := node.ChildByFieldName("module_name"); mod != nil {
			desc.Imports = append(desc.Imports, nodeText(mod, source))
		}
	}
}

func (p *PythonParser) function(node *sitter.Node, source []byte) (ExportRecord, bool) {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return ExportRecord{}, false
	}
	name := nodeText(nameNode, source)

	sig := ""
	if params := node.ChildByFieldName("parameters"); params != nil {
		sig = nodeText(params, source)
	}
	if ret := node.ChildByFieldName("return_type"); ret != nil {
		sig += " -> " + nodeText(ret, source)
	}

	return ExportRecord{
		Name:       name,
		Kind:       KindFunction,
		Signature:  firstLine(sig),
		Docstring:  docstringFromBody(node.ChildByFieldName("body"), source),
		LineNumber: lineOf(node),
		IsAsync:    hasChildToken(node, source, "async"),
		IsExported: !strings.HasPrefix(name, "_"),
	}, true
}

func (p *PythonParser) class(node *sitter.Node, source []byte) (ExportRecord, bool) {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return ExportRecord{}, false
	}
	name := nodeText(nameNode, source)

	// Heritage clause rendered as text, e.g. "(Base, Protocol)".
	sig := ""
	if bases := node.ChildByFieldName("superclasses"); bases != nil {
		sig = firstLine(nodeText(bases, source))
	}

	return ExportRecord{
		Name:       name,
		Kind:       KindClass,
		Signature:  sig,
		Docstring:  docstringFromBody(node.ChildByFieldName("body"), source),
		LineNumber: lineOf(node),
		IsExported: !strings.HasPrefix(name, "_"),
	}, true
}

// constant records a simple module-level assignment. Only plain
// identifier targets count; tuple unpacking and attribute targets are
// skipped.
func (p *PythonParser) constant(assign *sitter.Node, source []byte) (ExportRecord, bool) {
	left := assign.ChildByFieldName("left")
	if left == nil || left.Type() != "identifier" {
		return ExportRecord{}, false
	}
	name := nodeText(left, source)

	sig := ""
	if typeNode := assign.ChildByFieldName("type"); typeNode != nil {
		sig = ": " + firstLine(nodeText(typeNode, source))
	}

	return ExportRecord{
		Name:       name,
		Kind:       KindConstant,
		Signature:  sig,
		LineNumber: lineOf(assign),
		IsExported: !strings.HasPrefix(name, "_"),
	}, true
}

// importStatement records "import a.b, c as d" module paths.
func (p *PythonParser) importStatement(node *sitter.Node, source []byte, desc *ModuleDescriptor) {
	for i := 0; i < int(node.ChildCount()); i++ {
		child := node.Child(i)
		if child == nil {
			continue
		}
		switch child.Type() {
		case "dotted_name":
			desc.Imports = append(desc.Imports, nodeText(child, source))
		case "aliased_import":
			if name := child.ChildByFieldName("name"); name != nil {
				desc.Imports = append(desc.Imports, nodeText(name, source))
			}
		}
	}
}
