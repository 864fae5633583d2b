package dom

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// NodePath returns the child-index path from root down to n. The path is
// empty when n == root. The second return value is false when n is not a
// descendant of root.
func NodePath(root, n *html.Node) ([]int, bool) {
	if n == nil || root == nil {
		return nil, false
	}
	var path []int
	for cur := n; cur != root; cur = cur.Parent {
		parent := cur.Parent
		if parent == nil {
			return nil, false
		}
		idx := 0
		for sib := parent.FirstChild; sib != nil && sib != cur; sib = sib.NextSibling {
			idx++
		}
		path = append([]int{idx}, path...)
	}
	return path, true
}

// PathString renders a child-index path as "0/1/2". An empty path renders
// as "".
func PathString(path []int) string {
	parts := make([]string, len(path))
	for i, idx := range path {
		parts[i] = strconv.Itoa(idx)
	}
	return strings.Join(parts, "/")
}

// NodeFromPath resolves a "0/1/2" style path starting at root. It is the
// inverse of NodePath for records written by the web and browser-extension
// clients, whose location descriptors carry these paths; local re-anchoring
// matches on text and never calls it.
func NodeFromPath(root *html.Node, path string) (*html.Node, error) {
	node := root
	if path == "" {
		return node, nil
	}
	for _, part := range strings.Split(path, "/") {
		idx, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("invalid path %q: %w", path, err)
		}
		child := node.FirstChild
		for i := 0; i < idx && child != nil; i++ {
			child = child.NextSibling
		}
		if child == nil {
			return nil, fmt.Errorf("invalid path %q: no child at index %d", path, idx)
		}
		node = child
	}
	return node, nil
}
