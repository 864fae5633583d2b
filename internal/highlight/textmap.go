package highlight

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/tuyetlangsa/rehi-go/internal/dom"
)

// TextMapEntry records one text node's position within the virtual
// concatenation of all text under a container. Offsets are rune offsets;
// the interval is [Start, End).
type TextMapEntry struct {
	Node  *html.Node
	Start int
	End   int
}

// BuildTextMap walks all text nodes under container in document order and
// assigns each its cumulative offset range. It must be recomputed before
// every matching attempt: wrapping from a previous highlight changes node
// boundaries without changing the total text.
func BuildTextMap(container *html.Node) ([]TextMapEntry, int) {
	var entries []TextMapEntry
	offset := 0
	for _, tn := range dom.TextNodes(container) {
		n := dom.TextLen(tn)
		entries = append(entries, TextMapEntry{Node: tn, Start: offset, End: offset + n})
		offset += n
	}
	return entries, offset
}

// fullText concatenates the text of every map entry, as runes.
func fullText(entries []TextMapEntry) []rune {
	var b strings.Builder
	for _, e := range entries {
		b.WriteString(e.Node.Data)
	}
	return []rune(b.String())
}
