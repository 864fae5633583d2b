package dom

import (
	"strings"

	"golang.org/x/net/html"
)

// Range is a span of document text anchored at two text-node/offset pairs,
// in document order. EndOffset is exclusive. Offsets are rune offsets within
// the node's data.
type Range struct {
	StartNode   *html.Node
	StartOffset int
	EndNode     *html.Node
	EndOffset   int
}

// positions assigns a document-order (pre-order) index to every node under
// root, including root itself.
func positions(root *html.Node) map[*html.Node]int {
	pos := make(map[*html.Node]int)
	i := 0
	Walk(root, func(n *html.Node) {
		pos[n] = i
		i++
	})
	return pos
}

// ComparePoints orders two (node, offset) boundary points within root.
// It returns -1, 0 or 1. Points on different nodes are ordered by document
// position; points on the same node by offset.
func ComparePoints(root *html.Node, aNode *html.Node, aOffset int, bNode *html.Node, bOffset int) int {
	if aNode == bNode {
		switch {
		case aOffset < bOffset:
			return -1
		case aOffset > bOffset:
			return 1
		default:
			return 0
		}
	}
	pos := positions(root)
	if pos[aNode] < pos[bNode] {
		return -1
	}
	return 1
}

// TextNodesIn returns the text nodes of root intersected by r, in document
// order, from r.StartNode through r.EndNode inclusive.
func TextNodesIn(root *html.Node, r *Range) []*html.Node {
	if r == nil || r.StartNode == nil || r.EndNode == nil {
		return nil
	}
	var nodes []*html.Node
	in := false
	for _, tn := range TextNodes(root) {
		if tn == r.StartNode {
			in = true
		}
		if in {
			nodes = append(nodes, tn)
		}
		if tn == r.EndNode {
			if !in {
				// end seen before start: malformed range
				return nil
			}
			break
		}
	}
	if !in {
		return nil
	}
	return nodes
}

// RangeText returns the plain text covered by r, concatenated in document
// order with partial first/last nodes sliced at the range offsets.
func RangeText(root *html.Node, r *Range) string {
	var b strings.Builder
	for _, tn := range TextNodesIn(root, r) {
		runes := []rune(tn.Data)
		start, end := 0, len(runes)
		if tn == r.StartNode {
			start = clamp(r.StartOffset, 0, len(runes))
		}
		if tn == r.EndNode {
			end = clamp(r.EndOffset, 0, len(runes))
		}
		if start < end {
			b.WriteString(string(runes[start:end]))
		}
	}
	return b.String()
}

// CloneContents returns a detached <div> holding a copy of everything r
// covers: partial text nodes are sliced, elements straddling a boundary are
// shallow-cloned around their surviving children, and childless elements
// strictly inside the span (such as <br>) are kept.
func CloneContents(root *html.Node, r *Range) *html.Node {
	container := NewElement("div")
	if r == nil || r.StartNode == nil || r.EndNode == nil {
		return container
	}
	pos := positions(root)
	sp, okS := pos[r.StartNode]
	ep, okE := pos[r.EndNode]
	if !okS || !okE || sp > ep {
		return container
	}
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if cl := cloneWithin(c, r, pos, sp, ep); cl != nil {
			container.AppendChild(cl)
		}
	}
	return container
}

func cloneWithin(n *html.Node, r *Range, pos map[*html.Node]int, sp, ep int) *html.Node {
	p := pos[n]
	switch n.Type {
	case html.TextNode:
		if p < sp || p > ep {
			return nil
		}
		runes := []rune(n.Data)
		start, end := 0, len(runes)
		if n == r.StartNode {
			start = clamp(r.StartOffset, 0, len(runes))
		}
		if n == r.EndNode {
			end = clamp(r.EndOffset, 0, len(runes))
		}
		if start >= end {
			return nil
		}
		return NewText(string(runes[start:end]))
	case html.ElementNode:
		var kids []*html.Node
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if cl := cloneWithin(c, r, pos, sp, ep); cl != nil {
				kids = append(kids, cl)
			}
		}
		if len(kids) == 0 {
			// keep only childless elements strictly inside the span
			if n.FirstChild != nil || p <= sp || p >= ep {
				return nil
			}
		}
		cl := shallowClone(n)
		for _, k := range kids {
			cl.AppendChild(k)
		}
		return cl
	default:
		return nil
	}
}

func shallowClone(n *html.Node) *html.Node {
	cl := &html.Node{
		Type:     n.Type,
		Data:     n.Data,
		DataAtom: n.DataAtom,
	}
	cl.Attr = append(cl.Attr, n.Attr...)
	return cl
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
