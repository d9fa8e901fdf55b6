// Package filetree assembles a flat file list into a sorted hierarchy for
// display and for structural sanity checks. Pure functions, no I/O.
package filetree

import (
	"sort"
	"strings"

	"repolens/internal/scan"
)

// NodeType distinguishes files from directories.
type NodeType string

const (
	NodeFile      NodeType = "file"
	NodeDirectory NodeType = "directory"
)

// Node is one entry of the hierarchical file tree. Within any node's
// children, directories sort before files, then lexicographically by name.
type Node struct {
	Name     string        `json:"name"`
	Path     string        `json:"path"`
	Type     NodeType      `json:"type"`
	Children []*Node       `json:"children,omitempty"`
	Language scan.Language `json:"language,omitempty"`
	Role     scan.Role     `json:"role,omitempty"`
}

// Stats summarizes a built tree.
type Stats struct {
	Directories int            `json:"directories"`
	Files       int            `json:"files"`
	ByLanguage  map[string]int `json:"byLanguage"`
	ByRole      map[string]int `json:"byRole"`
}

// Build assembles the file records into a directory hierarchy rooted at "".
// Parent directories are inserted on demand; the set of leaf file nodes
// equals the input list exactly once each.
func Build(files []scan.FileRecord) *Node {
	root := &Node{Name: ".", Path: "", Type: NodeDirectory}
	dirs := map[string]*Node{"": root}

	for _, f := range files {
		segments := strings.Split(f.Path, "/")
		parent := root
		prefix := ""

		for _, seg := range segments[:len(segments)-1] {
			if prefix == "" {
				prefix = seg
			} else {
				prefix = prefix + "/" + seg
			}
			dir, ok := dirs[prefix]
			if !ok {
				dir = &Node{Name: seg, Path: prefix, Type: NodeDirectory}
				dirs[prefix] = dir
				parent.Children = append(parent.Children, dir)
			}
			parent = dir
		}

		parent.Children = append(parent.Children, &Node{
			Name:     segments[len(segments)-1],
			Path:     f.Path,
			Type:     NodeFile,
			Language: f.Language,
			Role:     f.Role,
		})
	}

	sortTree(root)
	return root
}

// sortTree orders children recursively: directories first, then files,
// each group lexicographic by name.
func sortTree(node *Node) {
	sort.SliceStable(node.Children, func(i, j int) bool {
		a, b := node.Children[i], node.Children[j]
		if a.Type != b.Type {
			return a.Type == NodeDirectory
		}
		return a.Name < b.Name
	})
	for _, child := range node.Children {
		if child.Type == NodeDirectory {
			sortTree(child)
		}
	}
}

// ToString renders the tree as a human-readable indented listing.
func ToString(node *Node) string {
	var sb strings.Builder
	writeNode(&sb, node, 0)
	return sb.String()
}

func writeNode(sb *strings.Builder, node *Node, depth int) {
	if depth > 0 || node.Name != "." {
		sb.WriteString(strings.Repeat("  ", depth))
		sb.WriteString(node.Name)
		if node.Type == NodeDirectory {
			sb.WriteString("/")
		}
		sb.WriteString("\n")
		depth++
	}
	for _, child := range node.Children {
		writeNode(sb, child, depth)
	}
}

// GetStats counts directories, files, and per-language/per-role totals.
// The root node itself is not counted as a directory.
func GetStats(node *Node) Stats {
	stats := Stats{
		ByLanguage: make(map[string]int),
		ByRole:     make(map[string]int),
	}
	collectStats(node, &stats, true)
	return stats
}

func collectStats(node *Node, stats *Stats, isRoot bool) {
	if node.Type == NodeFile {
		stats.Files++
		stats.ByLanguage[string(node.Language)]++
		stats.ByRole[string(node.Role)]++
		return
	}
	if !isRoot {
		stats.Directories++
	}
	for _, child := range node.Children {
		collectStats(child, stats, false)
	}
}

// CountLeaves returns the number of file nodes, the structural sanity
// check against the input list length.
func CountLeaves(node *Node) int {
	if node.Type == NodeFile {
		return 1
	}
	total := 0
	for _, child := range node.Children {
		total += CountLeaves(child)
	}
	return total
}
