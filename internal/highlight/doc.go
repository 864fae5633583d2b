// Package highlight implements the text-anchoring and rendering engine:
// re-locating a stored highlight in a live HTML node tree by its plain text
// and wrapping the matched span in marker elements.
//
// # Overview
//
// A highlight is keyed by the exact text captured when it was created, not
// by DOM coordinates. On every render pass the engine rebuilds a flat offset
// map of the container's text nodes (BuildTextMap), scans the concatenated
// text for a whitespace-tolerant occurrence of the stored text (FindMatch),
// converts the matched offsets back to node/offset pairs (RangeFromMatch),
// and wraps every intersected text node in an <article-highlight> marker
// (Apply). The pass is a full reset-then-rebuild: all previous markers are
// stripped first, so re-running it is idempotent.
//
// # Matching semantics
//
// Matching is case-sensitive on non-whitespace characters and collapses any
// run of whitespace to a single space on both sides. The first occurrence in
// document order wins; later duplicates of the same text are never matched.
// A highlight whose text no longer occurs simply renders nothing — that is
// an expected outcome, not an error.
//
// Highlights are applied in list order against the container state left
// behind by earlier highlights in the same pass, so overlapping highlights
// are order-sensitive; Clear merges the text nodes wrapping had split, so
// repeated passes over the same inputs produce identical trees.
//
// Key Types
//
//   - BuildTextMap — flat offset map of a container's text nodes
//   - FindMatch    — whitespace-tolerant first-occurrence scan
//   - RangeFromMatch — offsets back to a dom.Range
//   - Apply / Clear  — render or strip marker elements
package highlight
