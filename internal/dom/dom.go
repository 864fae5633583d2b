// Package dom provides helpers over golang.org/x/net/html node trees:
// fragment parsing and rendering, text-node traversal, text-node splitting,
// structural paths, and character ranges anchored at node/offset pairs.
//
// All character offsets in this package are rune offsets, not byte offsets.
package dom

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ParseFragment parses an HTML fragment and returns a detached <div>
// container element holding the parsed nodes as children.
func ParseFragment(fragment string) (*html.Node, error) {
	ctx := &html.Node{
		Type:     html.ElementNode,
		Data:     "div",
		DataAtom: atom.Div,
	}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), ctx)
	if err != nil {
		return nil, err
	}
	container := NewElement("div")
	for _, n := range nodes {
		container.AppendChild(n)
	}
	return container, nil
}

// NewElement returns a detached element node. Attribute key/value pairs may
// be supplied variadically: NewElement("span", "class", "x").
func NewElement(tag string, attrs ...string) *html.Node {
	n := &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}
	for i := 0; i+1 < len(attrs); i += 2 {
		n.Attr = append(n.Attr, html.Attribute{Key: attrs[i], Val: attrs[i+1]})
	}
	return n
}

// NewText returns a detached text node.
func NewText(data string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: data}
}

// Render serializes n (including the node itself).
func Render(n *html.Node) (string, error) {
	var b strings.Builder
	if err := html.Render(&b, n); err != nil {
		return "", err
	}
	return b.String(), nil
}

// RenderChildren serializes the children of n, in order. This matches the
// innerHTML view of an element.
func RenderChildren(n *html.Node) (string, error) {
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&b, c); err != nil {
			return "", err
		}
	}
	return b.String(), nil
}

// Walk visits root and every descendant in document order (depth-first,
// pre-order).
func Walk(root *html.Node, visit func(n *html.Node)) {
	if root == nil {
		return
	}
	visit(root)
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		Walk(c, visit)
	}
}

// TextNodes returns all text nodes under root in document order.
func TextNodes(root *html.Node) []*html.Node {
	var nodes []*html.Node
	Walk(root, func(n *html.Node) {
		if n.Type == html.TextNode {
			nodes = append(nodes, n)
		}
	})
	return nodes
}

// Contains reports whether n is root or a descendant of root.
func Contains(root, n *html.Node) bool {
	for cur := n; cur != nil; cur = cur.Parent {
		if cur == root {
			return true
		}
	}
	return false
}

// ElementByID returns the first element under root whose id attribute equals
// id, or nil.
func ElementByID(root *html.Node, id string) *html.Node {
	var found *html.Node
	Walk(root, func(n *html.Node) {
		if found == nil && n.Type == html.ElementNode && Attr(n, "id") == id {
			found = n
		}
	})
	return found
}

// Attr returns the value of the named attribute, or "".
func Attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

// SetAttr sets the named attribute, replacing any existing value.
func SetAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

// TextLen returns the length of a text node's data in runes.
func TextLen(n *html.Node) int {
	return utf8.RuneCountInString(n.Data)
}

// IsWhitespaceText reports whether n is a text node containing only
// whitespace (or nothing).
func IsWhitespaceText(n *html.Node) bool {
	return n.Type == html.TextNode && strings.TrimSpace(n.Data) == ""
}
