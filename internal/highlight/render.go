package highlight

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"

	"github.com/tuyetlangsa/rehi-go/internal/dom"
	"github.com/tuyetlangsa/rehi-go/internal/models"
)

// Marker element contract. Every rendered segment is a MarkerTag element
// carrying AttrMarker, the owning highlight's id in AttrID, and an inline
// background-color style.
const (
	MarkerTag  = "article-highlight"
	AttrMarker = "data-highlight"
	AttrID     = "data-highlight-id"
)

// Clear removes every marker element under container, splicing the wrapped
// text back into place and merging the text nodes the wrapping had split.
// The document text and structure are unchanged afterwards, so re-applying
// the same highlights yields the same tree.
func Clear(container *html.Node) {
	for {
		marker := findMarker(container)
		if marker == nil {
			break
		}
		_ = dom.Unwrap(marker)
	}
	dom.Normalize(container)
}

func findMarker(container *html.Node) *html.Node {
	var found *html.Node
	dom.Walk(container, func(n *html.Node) {
		if found == nil && IsMarker(n) {
			found = n
		}
	})
	return found
}

// IsMarker reports whether n is a highlight marker element.
func IsMarker(n *html.Node) bool {
	return n != nil && n.Type == html.ElementNode && n.Data == MarkerTag && dom.Attr(n, AttrMarker) == "true"
}

// Apply renders the given highlights into container. It first strips every
// existing marker, then re-anchors each non-deleted highlight from scratch,
// so repeated calls with the same inputs converge on the same tree. A
// highlight whose text no longer occurs in the document is skipped and the
// rest still render; the skipped ids are returned so callers can log them.
func Apply(container *html.Node, highlights []models.Highlight) []string {
	Clear(container)
	var failed []string
	for _, h := range highlights {
		if h.IsDeleted {
			continue
		}
		if err := applyOne(container, h); err != nil {
			failed = append(failed, h.Id)
		}
	}
	return failed
}

func applyOne(container *html.Node, h models.Highlight) error {
	m := FindMatch(container, h.Text)
	if m == nil {
		return fmt.Errorf("text not found in document")
	}
	r, err := RangeFromMatch(m)
	if err != nil {
		return err
	}
	color := h.Color
	if color == "" {
		color = DefaultColor
	}
	return applyRange(container, r, h.Id, color)
}

// applyRange wraps every text node the range spans. Each node contributes
// the slice of its text inside the range boundaries; whitespace-only nodes
// are left bare so markers never enclose pure formatting whitespace.
func applyRange(container *html.Node, r *dom.Range, id, color string) error {
	for _, tn := range dom.TextNodesIn(container, r) {
		if dom.IsWhitespaceText(tn) {
			continue
		}

		localStart := 0
		if tn == r.StartNode {
			localStart = r.StartOffset
		}
		localEnd := dom.TextLen(tn)
		if tn == r.EndNode {
			localEnd = r.EndOffset
		}
		if localStart >= localEnd {
			continue
		}

		target := tn
		if localStart > 0 {
			rest, err := dom.SplitText(target, localStart)
			if err != nil {
				return err
			}
			target = rest
		}
		if localEnd-localStart < dom.TextLen(target) {
			if _, err := dom.SplitText(target, localEnd-localStart); err != nil {
				return err
			}
		}
		if err := dom.WrapNode(target, newMarker(id, color)); err != nil {
			return err
		}
	}
	return nil
}

func newMarker(id, color string) *html.Node {
	return dom.NewElement(MarkerTag,
		AttrMarker, "true",
		AttrID, id,
		"style", "background-color: "+color,
	)
}

// SegmentsFor returns every marker element under container belonging to
// the given highlight id, in document order.
func SegmentsFor(container *html.Node, id string) []*html.Node {
	var out []*html.Node
	dom.Walk(container, func(n *html.Node) {
		if IsMarker(n) && dom.Attr(n, AttrID) == id {
			out = append(out, n)
		}
	})
	return out
}

// MarkerID returns the highlight id a marker element belongs to, or "" if
// n is not a marker.
func MarkerID(n *html.Node) string {
	if !IsMarker(n) {
		return ""
	}
	return dom.Attr(n, AttrID)
}

// Color returns the background color of a marker element.
func Color(n *html.Node) string {
	style := dom.Attr(n, "style")
	const prefix = "background-color:"
	if rest, ok := strings.CutPrefix(style, prefix); ok {
		return strings.TrimSpace(rest)
	}
	return ""
}

// SetColor replaces the background color of a marker element.
func SetColor(n *html.Node, color string) {
	dom.SetAttr(n, "style", "background-color: "+color)
}
