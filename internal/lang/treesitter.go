package lang

import (
	"context"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/python"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// grammarForPath selects the tree-sitter grammar for a source path.
// JS and TS dialects map to distinct grammars behind one parser variant.
func grammarForPath(relPath string) *sitter.Language {
	lower := strings.ToLower(relPath)
	switch {
	case strings.HasSuffix(lower, ".py"), strings.HasSuffix(lower, ".pyi"):
		return python.GetLanguage()
	case strings.HasSuffix(lower, ".tsx"):
		return tsx.GetLanguage()
	case strings.HasSuffix(lower, ".ts"):
		return typescript.GetLanguage()
	default:
		return javascript.GetLanguage()
	}
}

// parseTree parses source with the given grammar. A fresh sitter.Parser is
// created per call: each parse owns its own AST and no state is shared
// across files.
func parseTree(ctx context.Context, source []byte, grammar *sitter.Language) (*sitter.Tree, error) {
	p := sitter.NewParser()
	p.SetLanguage(grammar)
	return p.ParseCtx(ctx, nil, source)
}

// frame is one entry of the iterative walk stack.
type frame struct {
	node  *sitter.Node
	depth int
}

// walkNodes visits nodes iteratively, bounded by maxDepth. Children past
// the cap are not pushed; the walk stops descending instead of erroring.
// visit returning false prunes the subtree.
func walkNodes(root *sitter.Node, maxDepth int, visit func(n *sitter.Node, depth int) bool) {
	if root == nil {
		return
	}
	stack := []frame{{node: root, depth: 0}}
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if !visit(top.node, top.depth) {
			continue
		}
		if top.depth >= maxDepth {
			continue
		}
		// Push in reverse so children are visited in source order.
		for i := int(top.node.ChildCount()) - 1; i >= 0; i-- {
			child := top.node.Child(i)
			if child != nil {
				stack = append(stack, frame{node: child, depth: top.depth + 1})
			}
		}
	}
}

// countErrorNodes counts ERROR nodes in the tree, stopping early once the
// limit is passed.
func countErrorNodes(root *sitter.Node, maxDepth, limit int) int {
	count := 0
	walkNodes(root, maxDepth, func(n *sitter.Node, _ int) bool {
		if n.Type() == "ERROR" {
			count++
		}
		return count <= limit
	})
	return count
}

// nodeText returns the source text of a node.
func nodeText(n *sitter.Node, source []byte) string {
	if n == nil {
		return ""
	}
	return string(source[n.StartByte():n.EndByte()])
}

// lineOf returns the 1-based start line of a node.
func lineOf(n *sitter.Node) int {
	return int(n.StartPoint().Row) + 1
}

// firstChildOfType returns the first direct child with the given type.
func firstChildOfType(n *sitter.Node, nodeType string) *sitter.Node {
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		if child != nil && child.Type() == nodeType {
			return child
		}
	}
	return nil
}

// hasChildToken reports whether a direct child's text equals token.
// Used for modifier keywords like "async" that grammars expose as
// anonymous tokens.
func hasChildToken(n *sitter.Node, source []byte, token string) bool {
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		if child != nil && nodeText(child, source) == token {
			return true
		}
	}
	return false
}

// firstLine trims a string to its first line.
func firstLine(s string) string {
	if idx := strings.IndexByte(s, '\n'); idx >= 0 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}

// stripQuotes removes string-literal delimiters from a docstring candidate.
func stripQuotes(s string) string {
	s = strings.TrimSpace(s)
	for _, q := range []string{`"""`, `'''`, `"`, `'`, "`"} {
		if strings.HasPrefix(s, q) {
			s = strings.TrimPrefix(s, q)
			s = strings.TrimSuffix(s, q)
			break
		}
	}
	return strings.TrimSpace(s)
}

// docstringFromBody applies the shared docstring rule: if the first
// statement of a body is a bare string literal, return its first line.
func docstringFromBody(body *sitter.Node, source []byte) string {
	if body == nil {
		return ""
	}
	var first *sitter.Node
	for i := 0; i < int(body.ChildCount()); i++ {
		child := body.Child(i)
		if child == nil || !child.IsNamed() {
			continue
		}
		first = child
		break
	}
	if first == nil || first.Type() != "expression_statement" {
		return ""
	}
	str := firstChildOfType(first, "string")
	if str == nil {
		return ""
	}
	return firstLine(stripQuotes(nodeText(str, source)))
}
