package highlight

import (
	"strings"
	"unicode"

	"golang.org/x/net/html"
)

// Match is a successful anchor of a target text within a container. Start
// and End are rune offsets into the un-normalized concatenated text (End is
// exclusive), resolvable against Map.
type Match struct {
	Map   []TextMapEntry
	Start int
	End   int
}

// Normalize collapses every run of whitespace to a single space and trims
// leading and trailing whitespace.
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inSpace := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			inSpace = true
			continue
		}
		if inSpace && b.Len() > 0 {
			b.WriteByte(' ')
		}
		inSpace = false
		b.WriteRune(r)
	}
	return b.String()
}

// FindMatch locates the first substring of container's concatenated text
// whose normalized form equals the normalized target, returning offsets in
// the original (un-normalized) coordinate space. It returns nil when the
// target does not occur or normalizes to the empty string.
//
// The scan keeps two cursors: one over the raw text, one over the
// normalized target. Raw whitespace runs collapse onto a single expected
// target space; raw whitespace the target does not expect is skipped. On a
// character mismatch the scan restarts immediately after the provisional
// start so overlapping occurrences are still found.
func FindMatch(container *html.Node, target string) *Match {
	entries, _ := BuildTextMap(container)
	raw := fullText(entries)
	want := []rune(Normalize(target))

	if len(want) == 0 {
		return nil
	}

	origIdx := 0
	targetIdx := 0
	startOffset := -1

	// skip leading whitespace, mirroring the trim in Normalize
	for origIdx < len(raw) && unicode.IsSpace(raw[origIdx]) {
		origIdx++
	}

	for origIdx < len(raw) {
		origChar := raw[origIdx]

		if unicode.IsSpace(origChar) {
			if want[targetIdx] == ' ' {
				// the collapsed space matches; consume the whole raw run
				targetIdx++
				origIdx++
				for origIdx < len(raw) && unicode.IsSpace(raw[origIdx]) {
					origIdx++
				}
			} else {
				// raw whitespace the target does not expect
				origIdx++
			}
		} else {
			if origChar == want[targetIdx] {
				if targetIdx == 0 {
					startOffset = origIdx
				}
				origIdx++
				targetIdx++
			} else {
				// mismatch: restart just past the provisional start so
				// overlapping candidates are not skipped
				targetIdx = 0
				if startOffset != -1 {
					origIdx = startOffset + 1
				} else {
					origIdx++
				}
				startOffset = -1
				for origIdx < len(raw) && unicode.IsSpace(raw[origIdx]) {
					origIdx++
				}
			}
		}

		if targetIdx == len(want) {
			return &Match{Map: entries, Start: startOffset, End: origIdx}
		}
	}

	return nil
}
