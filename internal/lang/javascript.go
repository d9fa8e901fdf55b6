package lang

import (
	"context"
	"log/slog"

	sitter "github.com/smacker/go-tree-sitter"

	"repolens/internal/scan"
)

// JavaScriptParser extracts descriptors from JavaScript and TypeScript
// source. Dialect selection (js/jsx/ts/tsx) happens per file via the
// grammar, not via separate parser variants.
type JavaScriptParser struct {
	policy TierPolicy
	limits Limits
	logger *slog.Logger
}

// NewJavaScriptParser creates the JavaScript/TypeScript grammar parser.
func NewJavaScriptParser(policy TierPolicy, limits Limits, logger *slog.Logger) *JavaScriptParser {
	return &JavaScriptParser{policy: policy, limits: limits, logger: logger}
}

// Language returns the language this parser handles.
func (p *JavaScriptParser) Language() scan.Language {
	return scan.LangJavaScript
}

// Parse extracts top-level declarations and imports. Malformed source
// degrades to an empty descriptor, never an error.
func (p *JavaScriptParser) Parse(ctx context.Context, source []byte, relPath string) *ModuleDescriptor {
	language := scan.LanguageForPath(relPath)
	if language == scan.LangOther {
		language = scan.LangJavaScript
	}

	tree, err := parseTree(ctx, source, grammarForPath(relPath))
	if err != nil {
		p.logger.Warn("js/ts parse failed", "path", relPath, "error", err.Error())
		return degraded(relPath, language)
	}
	root := tree.RootNode()

	if n := countErrorNodes(root, p.limits.MaxDepth, p.limits.MaxErrorNodes); n > p.limits.MaxErrorNodes {
		p.logger.Warn("js/ts parse degraded", "path", relPath, "errorNodes", n)
		return degraded(relPath, language)
	}

	desc := &ModuleDescriptor{
		Path:     relPath,
		Language: language,
		Exports:  []ExportRecord{},
		Imports:  []string{},
	}

	for i := 0; i < int(root.ChildCount()); i++ {
		child := root.Child(i)
		if child == nil {
			continue
		}
		p.extractTopLevel(child, source, desc, false)
	}

	p.collectRequires(root, source, desc)

	desc.finalize(p.policy)
	return desc
}

// extractTopLevel handles one direct child of the program node.
// exported marks declarations reached through an export statement.
func (p *JavaScriptParser) extractTopLevel(node *sitter.Node, source []byte, desc *ModuleDescriptor, exported bool) {
	switch node.Type() {
	case "export_statement":
		// Re-exports contribute to the import list as well.
		if src := node.ChildByFieldName("source"); src != nil {
			desc.Imports = append(desc.Imports, stripQuotes(nodeText(src, source)))
		}
		if decl := node.ChildByFieldName("declaration"); decl != nil {
			p.extractTopLevel(decl, source, desc, true)
		}

	case "import_statement":
		if src := node.ChildByFieldName("source"); src != nil {
			desc.Imports = append(desc.Imports, stripQuotes(nodeText(src, source)))
		}

	case "function_declaration", "generator_function_declaration":
		if rec, ok := p.function(node, source, exported); ok {
			desc.Exports = append(desc.Exports, rec)
		}

	case "class_declaration", "abstract_class_declaration":
		if rec, ok := p.class(node, source, exported); ok {
			desc.Exports = append(desc.Exports, rec)
		}

	case "lexical_declaration", "variable_declaration":
		p.variables(node, source, desc, exported)

	case "interface_declaration", "type_alias_declaration", "enum_declaration":
		if nameNode := node.ChildByFieldName("name"); nameNode != nil {
			desc.Exports = append(desc.Exports, ExportRecord{
				Name:       nodeText(nameNode, source),
				Kind:       KindType,
				LineNumber: lineOf(node),
				IsExported: exported,
			})
		}
	}
}

func (p *JavaScriptParser) function(node *sitter.Node, source []byte, exported bool) (ExportRecord, bool) {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return ExportRecord{}, false
	}

	sig := ""
	if params := node.ChildByFieldName("parameters"); params != nil {
		sig = nodeText(params, source)
	}
	if ret := node.ChildByFieldName("return_type"); ret != nil {
		sig += nodeText(ret, source)
	}

	return ExportRecord{
		Name:       nodeText(nameNode, source),
		Kind:       KindFunction,
		Signature:  firstLine(sig),
		Docstring:  docstringFromBody(node.ChildByFieldName("body"), source),
		LineNumber: lineOf(node),
		IsAsync:    hasChildToken(node, source, "async"),
		IsExported: exported,
	}, true
}

func (p *JavaScriptParser) class(node *sitter.Node, source []byte, exported bool) (ExportRecord, bool) {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return ExportRecord{}, false
	}

	// Heritage clause rendered as text, e.g. "extends Base implements I".
	sig := ""
	if heritage := firstChildOfType(node, "class_heritage"); heritage != nil {
		sig = firstLine(nodeText(heritage, source))
	}

	return ExportRecord{
		Name:       nodeText(nameNode, source),
		Kind:       KindClass,
		Signature:  sig,
		LineNumber: lineOf(node),
		IsExported: exported,
	}, true
}

// variables records top-level const/let/var declarators. Declarators whose
// value is a function expression or arrow function count as functions.
func (p *JavaScriptParser) variables(node *sitter.Node, source []byte, desc *ModuleDescriptor, exported bool) {
	for i := 0; i < int(node.ChildCount()); i++ {
		declarator := node.Child(i)
		if declarator == nil || declarator.Type() != "variable_declarator" {
			continue
		}
		nameNode := declarator.ChildByFieldName("name")
		if nameNode == nil || nameNode.Type() != "identifier" {
			continue
		}

		rec := ExportRecord{
			Name:       nodeText(nameNode, source),
			Kind:       KindConstant,
			LineNumber: lineOf(declarator),
			IsExported: exported,
		}

		if value := declarator.ChildByFieldName("value"); value != nil {
			switch value.Type() {
			case "arrow_function", "function_expression", "function", "generator_function":
				rec.Kind = KindFunction
				rec.IsAsync = hasChildToken(value, source, "async")
				if params := value.ChildByFieldName("parameters"); params != nil {
					rec.Signature = firstLine(nodeText(params, source))
				}
			}
		}

		desc.Exports = append(desc.Exports, rec)
	}
}

// collectRequires finds require("...") calls anywhere in the module and
// adds their targets to the import list. The walk is depth-bounded.
func (p *JavaScriptParser) collectRequires(root *sitter.Node, source []byte, desc *ModuleDescriptor) {
	walkNodes(root, p.limits.MaxDepth, func(n *sitter.Node, _ int) bool {
		if n.Type() != "call_expression" {
			return true
		}
		fn := n.ChildByFieldName("function")
		if fn == nil || fn.Type() != "identifier" || nodeText(fn, source) != "require" {
			return true
		}
		args := n.ChildByFieldName("arguments")
		if args == nil {
			return true
		}
		if str := firstChildOfType(args, "string"); str != nil {
			desc.Imports = append(desc.Imports, stripQuotes(nodeText(str, source)))
		}
		return true
	})
}
