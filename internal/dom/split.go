package dom

import (
	"errors"
	"fmt"

	"golang.org/x/net/html"
)

var errNotText = errors.New("not a text node")

// SplitText splits a text node at the given rune offset, in place. The
// original node keeps the first part; a new sibling text node holding the
// remainder is inserted immediately after it and returned. The node must be
// attached to a parent.
func SplitText(n *html.Node, offset int) (*html.Node, error) {
	if n == nil || n.Type != html.TextNode {
		return nil, errNotText
	}
	if n.Parent == nil {
		return nil, errors.New("text node has no parent")
	}
	runes := []rune(n.Data)
	if offset < 0 || offset > len(runes) {
		return nil, fmt.Errorf("split offset %d out of range [0,%d]", offset, len(runes))
	}

	rest := NewText(string(runes[offset:]))
	n.Data = string(runes[:offset])

	n.Parent.InsertBefore(rest, n.NextSibling)
	return rest, nil
}

// Unwrap replaces an element with its own children, preserving order. The
// element must be attached to a parent.
func Unwrap(n *html.Node) error {
	if n == nil || n.Parent == nil {
		return errors.New("node has no parent")
	}
	parent := n.Parent
	for n.FirstChild != nil {
		child := n.FirstChild
		n.RemoveChild(child)
		parent.InsertBefore(child, n)
	}
	parent.RemoveChild(n)
	return nil
}

// Normalize merges runs of adjacent sibling text nodes throughout the
// subtree and removes empty text nodes, like DOM Node.normalize. It undoes
// the fragmentation left behind by SplitText and Unwrap.
func Normalize(root *html.Node) {
	c := root.FirstChild
	for c != nil {
		if c.Type == html.TextNode {
			for c.NextSibling != nil && c.NextSibling.Type == html.TextNode {
				c.Data += c.NextSibling.Data
				root.RemoveChild(c.NextSibling)
			}
			next := c.NextSibling
			if c.Data == "" {
				root.RemoveChild(c)
			}
			c = next
			continue
		}
		Normalize(c)
		c = c.NextSibling
	}
}

// WrapNode replaces n in the tree with wrapper and reattaches n as
// wrapper's child.
func WrapNode(n, wrapper *html.Node) error {
	if n == nil || n.Parent == nil {
		return errors.New("node has no parent")
	}
	parent := n.Parent
	parent.InsertBefore(wrapper, n)
	parent.RemoveChild(n)
	wrapper.AppendChild(n)
	return nil
}
