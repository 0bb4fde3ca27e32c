// Package tree renders stored tree documents for the terminal.
package tree

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	ltree "github.com/charmbracelet/lipgloss/tree"

	"github.com/custodia-labs/treestore/internal/adapters/driving/tui/styles"
)

// Renderer turns JSON documents into styled text.
type Renderer struct {
	styles *styles.Styles
}

// NewRenderer creates a renderer.
func NewRenderer(s *styles.Styles) *Renderer {
	if s == nil {
		s = styles.DefaultStyles()
	}
	return &Renderer{styles: s}
}

// Tree renders content as a tree. Objects shaped like {"name", "children"}
// use the name as the label; any other JSON is shown by key or index.
func (r *Renderer) Tree(content json.RawMessage) (string, error) {
	var root any
	if err := json.Unmarshal(content, &root); err != nil {
		return "", fmt.Errorf("decode document: %w", err)
	}

	switch root.(type) {
	case map[string]any, []any:
		return r.build(label(root, "document"), root).String(), nil
	default:
		return r.leaf("document", root), nil
	}
}

// Raw returns content indented by two spaces. Invalid JSON is returned as is.
func (r *Renderer) Raw(content json.RawMessage) string {
	var buf bytes.Buffer
	if err := json.Indent(&buf, content, "", "  "); err != nil {
		return string(content)
	}
	return buf.String()
}

func (r *Renderer) build(name string, v any) *ltree.Tree {
	t := ltree.Root(r.styles.Branch.Render(name)).
		Enumerator(ltree.RoundedEnumerator).
		EnumeratorStyle(r.styles.Guide)

	for _, child := range r.children(v) {
		t.Child(child)
	}
	return t
}

// children returns the rendered children of v: subtrees for containers and
// styled strings for scalars.
func (r *Renderer) children(v any) []any {
	switch node := v.(type) {
	case map[string]any:
		if kids, ok := node["children"].([]any); ok && isNamed(node) {
			out := make([]any, 0, len(kids))
			for i, kid := range kids {
				out = append(out, r.child(label(kid, fmt.Sprintf("[%d]", i)), kid))
			}
			return out
		}
		keys := make([]string, 0, len(node))
		for k := range node {
			if isNamed(node) && k == "name" {
				continue
			}
			keys = append(keys, k)
		}
		sort.Strings(keys)
		out := make([]any, 0, len(keys))
		for _, k := range keys {
			out = append(out, r.child(k, node[k]))
		}
		return out
	case []any:
		out := make([]any, 0, len(node))
		for i, item := range node {
			out = append(out, r.child(label(item, fmt.Sprintf("[%d]", i)), item))
		}
		return out
	}
	return nil
}

func (r *Renderer) child(name string, v any) any {
	switch node := v.(type) {
	case map[string]any:
		if isLeafNode(node) {
			return r.leaf(name, node["size"])
		}
		return r.build(name, v)
	case []any:
		return r.build(name, v)
	default:
		return r.leaf(name, v)
	}
}

func (r *Renderer) leaf(name string, value any) string {
	if value == nil {
		return r.styles.Leaf.Render(name)
	}
	return r.styles.Leaf.Render(name) + r.styles.Muted.Render(": "+scalar(value))
}

// label picks the display name of a node.
func label(v any, fallback string) string {
	if node, ok := v.(map[string]any); ok {
		if name, ok := node["name"].(string); ok && name != "" {
			return name
		}
	}
	return fallback
}

func isNamed(node map[string]any) bool {
	_, ok := node["name"].(string)
	return ok
}

// isLeafNode reports whether node is a named node with nothing below it.
func isLeafNode(node map[string]any) bool {
	if !isNamed(node) {
		return false
	}
	for k := range node {
		if k != "name" && k != "size" {
			return false
		}
	}
	return true
}

func scalar(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	default:
		data, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(data)
	}
}
