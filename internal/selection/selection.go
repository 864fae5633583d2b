// Package selection captures user text selections over a parsed document.
//
// The platform's ambient selection state is reached only through the
// Provider interface, so the capturer itself owns no global state and can
// be driven entirely by tests. A capture runs on each selection-ending
// gesture: the raw selection is validated against the highlightable
// container, then flattened into plain text, an HTML fragment, a Markdown
// rendition, and a legacy structural-path location descriptor.
package selection

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"golang.org/x/net/html"

	"github.com/tuyetlangsa/rehi-go/internal/dom"
	"github.com/tuyetlangsa/rehi-go/internal/markdown"
)

// Rect is the bounding box of a selection in viewport coordinates, as
// reported by the provider.
type Rect struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// Raw is an unprocessed platform selection. Start/End are in document
// order; Anchor/Focus preserve gesture direction. Offsets are rune offsets
// within their node.
type Raw struct {
	StartNode    *html.Node
	StartOffset  int
	EndNode      *html.Node
	EndOffset    int
	AnchorNode   *html.Node
	AnchorOffset int
	FocusNode    *html.Node
	FocusOffset  int
	Collapsed    bool
	Rect         Rect
}

// Provider reads the platform's current selection.
type Provider interface {
	// Current returns the active selection, or nil when there is none.
	Current() *Raw
	// RemoveRanges discards the platform selection.
	RemoveRanges()
}

// Selection is a captured, validated selection ready to be committed as a
// highlight.
type Selection struct {
	Text     string
	HTML     string
	Markdown string
	// Location is the legacy wire descriptor
	// "startPath:startOffset,endPath:endOffset"; never used for
	// re-rendering.
	Location  string
	StartPath string
	EndPath   string
	Rect      Rect
	// Reverse is true when the user dragged from a later document position
	// to an earlier one.
	Reverse bool
}

// Options tunes gesture handling. On touch devices the selection object is
// not final when the gesture ends, so captures are delayed; pointer
// captures run immediately by default.
type Options struct {
	PointerDelay time.Duration
	TouchDelay   time.Duration
}

const defaultTouchDelay = 300 * time.Millisecond

// Capturer turns selection-ending gestures into Selection values. Safe for
// use from a single goroutine plus the debounce timer it schedules.
type Capturer struct {
	container *html.Node
	provider  Provider
	opts      Options

	mu       sync.Mutex
	timer    *time.Timer
	current  *Selection
	onChange func(*Selection)
}

// NewCapturer builds a capturer over the given highlightable container.
// onChange, if non-nil, fires after every capture or clear with the new
// state (nil on clear).
func NewCapturer(container *html.Node, provider Provider, opts Options, onChange func(*Selection)) *Capturer {
	if opts.TouchDelay == 0 {
		opts.TouchDelay = defaultTouchDelay
	}
	return &Capturer{
		container: container,
		provider:  provider,
		opts:      opts,
		onChange:  onChange,
	}
}

// Current returns the last captured selection, or nil.
func (c *Capturer) Current() *Selection {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// PointerUp handles the end of a mouse or pen selection gesture.
func (c *Capturer) PointerUp() {
	c.schedule(c.opts.PointerDelay)
}

// TouchEnd handles the end of a touch selection gesture. The capture is
// debounced because touch selection handles settle after the gesture ends;
// a newer gesture supersedes a pending capture.
func (c *Capturer) TouchEnd() {
	c.schedule(c.opts.TouchDelay)
}

func (c *Capturer) schedule(delay time.Duration) {
	c.mu.Lock()
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	if delay <= 0 {
		c.mu.Unlock()
		c.capture()
		return
	}
	c.timer = time.AfterFunc(delay, c.capture)
	c.mu.Unlock()
}

func (c *Capturer) capture() {
	raw := c.provider.Current()
	sel := c.extract(raw)

	c.mu.Lock()
	c.timer = nil
	c.current = sel
	cb := c.onChange
	c.mu.Unlock()

	if cb != nil {
		cb(sel)
	}
}

// extract validates and flattens a raw selection. It returns nil when the
// selection is absent, collapsed, empty, or not fully inside the container.
func (c *Capturer) extract(raw *Raw) *Selection {
	if raw == nil || raw.Collapsed {
		return nil
	}
	if !dom.Contains(c.container, raw.StartNode) || !dom.Contains(c.container, raw.EndNode) {
		return nil
	}

	r := &dom.Range{
		StartNode:   raw.StartNode,
		StartOffset: raw.StartOffset,
		EndNode:     raw.EndNode,
		EndOffset:   raw.EndOffset,
	}
	text := dom.RangeText(c.container, r)
	if strings.TrimSpace(text) == "" {
		return nil
	}

	clone := dom.CloneContents(c.container, r)
	htmlFragment, err := dom.RenderChildren(clone)
	if err != nil {
		return nil
	}

	startPath := pathString(c.container, raw.StartNode)
	endPath := pathString(c.container, raw.EndNode)

	return &Selection{
		Text:      text,
		HTML:      htmlFragment,
		Markdown:  markdown.FromHTML(htmlFragment),
		Location:  fmt.Sprintf("%s:%d,%s:%d", startPath, raw.StartOffset, endPath, raw.EndOffset),
		StartPath: startPath,
		EndPath:   endPath,
		Rect:      raw.Rect,
		Reverse:   isReverse(c.container, raw),
	}
}

func pathString(container, n *html.Node) string {
	path, ok := dom.NodePath(container, n)
	if !ok {
		return ""
	}
	return dom.PathString(path)
}

// isReverse reports whether the focus point precedes the anchor point in
// document order.
func isReverse(container *html.Node, raw *Raw) bool {
	if raw.AnchorNode == nil || raw.FocusNode == nil {
		return false
	}
	return dom.ComparePoints(container, raw.FocusNode, raw.FocusOffset, raw.AnchorNode, raw.AnchorOffset) < 0
}

// Clear drops the captured state, cancels any pending capture, and removes
// the platform selection.
func (c *Capturer) Clear() {
	c.mu.Lock()
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.current = nil
	cb := c.onChange
	c.mu.Unlock()

	c.provider.RemoveRanges()
	if cb != nil {
		cb(nil)
	}
}

// SuppressContextMenu reports whether the platform context menu should be
// suppressed right now: only while a non-collapsed selection exists, so a
// plain long-press elsewhere keeps its native menu.
func (c *Capturer) SuppressContextMenu() bool {
	raw := c.provider.Current()
	return raw != nil && !raw.Collapsed
}
