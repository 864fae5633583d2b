// Package interaction implements the click-to-manage behavior on rendered
// highlight markers: darkening every segment of the clicked highlight,
// a floating action affordance (note, delete, cancel), an inline note
// editor, and the dismissal paths (cancel, click outside, timeout).
//
// The controller is an explicit two-state machine per container: Idle, or
// Selected with exactly one highlight id. Only one affordance exists
// container-wide at any time. It never re-wraps text; structural rendering
// belongs to the highlight package, the controller only toggles colors and
// appends or removes its own affordance subtrees.
package interaction

import (
	"sync"
	"time"

	"golang.org/x/net/html"

	"github.com/tuyetlangsa/rehi-go/internal/dom"
	"github.com/tuyetlangsa/rehi-go/internal/highlight"
	"github.com/tuyetlangsa/rehi-go/internal/models"
)

// Affordance class names. External code and styling key off these.
const (
	MenuClass   = "highlight-delete-button"
	EditorClass = "highlight-note-editor"
)

const defaultDismissAfter = 5 * time.Second

// Options tunes the controller. The zero value uses the 5 second
// auto-dismiss.
type Options struct {
	DismissAfter time.Duration
}

// Controller manages highlight interaction state for one container.
// Methods are safe to call from the event loop plus the dismiss timer.
type Controller struct {
	opts Options

	mu         sync.Mutex
	container  *html.Node
	highlights []models.Highlight
	onDelete   func(id string)
	onEditNote func(id, note string)

	selectedID     string
	originalColors map[string]string
	menu           *html.Node
	editor         *html.Node
	noteText       string
	timer          *time.Timer
}

// New returns a detached controller.
func New(opts Options) *Controller {
	if opts.DismissAfter == 0 {
		opts.DismissAfter = defaultDismissAfter
	}
	return &Controller{opts: opts}
}

// Attach binds the controller to a freshly rendered container. Any previous
// attachment is fully torn down first, so re-attaching after a render pass
// never leaves stale state behind; marker elements are expected to be
// recreated on every pass.
func (c *Controller) Attach(container *html.Node, highlights []models.Highlight, onDelete func(id string), onEditNote func(id, note string)) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.dismissLocked()
	c.container = container
	c.highlights = highlights
	c.onDelete = onDelete
	c.onEditNote = onEditNote
	c.originalColors = make(map[string]string)
}

// Detach dismisses any open affordance and drops the container reference.
func (c *Controller) Detach() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.dismissLocked()
	c.container = nil
	c.highlights = nil
	c.onDelete = nil
	c.onEditNote = nil
}

// SelectedID returns the id of the currently selected highlight, or "".
func (c *Controller) SelectedID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.selectedID
}

// Click handles a click anywhere in the document. A click on (or inside) a
// marker selects that highlight; clicking the selected highlight again
// dismisses it; any click outside markers and the open affordance
// dismisses too.
func (c *Controller) Click(n *html.Node) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.container == nil {
		return
	}

	if c.menu != nil && dom.Contains(c.menu, n) {
		return
	}
	if c.editor != nil && dom.Contains(c.editor, n) {
		return
	}

	marker := c.markerFor(n)
	if marker == nil {
		c.dismissLocked()
		return
	}

	id := highlight.MarkerID(marker)
	if id == c.selectedID {
		c.dismissLocked()
		return
	}
	if c.selectedID != "" {
		c.dismissLocked()
	}
	c.selectLocked(marker, id)
}

// markerFor ascends from n to the nearest enclosing marker element inside
// the container.
func (c *Controller) markerFor(n *html.Node) *html.Node {
	for cur := n; cur != nil; cur = cur.Parent {
		if highlight.IsMarker(cur) && dom.Contains(c.container, cur) {
			return cur
		}
	}
	return nil
}

func (c *Controller) selectLocked(marker *html.Node, id string) {
	orig := ""
	for _, seg := range highlight.SegmentsFor(c.container, id) {
		if orig == "" {
			orig = highlight.Color(seg)
		}
		highlight.SetColor(seg, highlight.Darken(highlight.Color(seg)))
	}
	c.originalColors[id] = orig
	c.selectedID = id

	c.menu = buildMenu(c.onEditNote != nil)
	marker.AppendChild(c.menu)

	c.timer = time.AfterFunc(c.opts.DismissAfter, c.timeout)
}

func (c *Controller) timeout() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dismissLocked()
}

// ClickOutside handles a document click that did not land in the container.
func (c *Controller) ClickOutside() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dismissLocked()
}

// Cancel dismisses the open affordance, restoring colors.
func (c *Controller) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dismissLocked()
}

// Delete invokes the delete callback for the selected highlight and
// dismisses. The markers themselves disappear on the next render pass.
func (c *Controller) Delete() {
	c.mu.Lock()
	id := c.selectedID
	cb := c.onDelete
	c.dismissLocked()
	c.mu.Unlock()

	if id != "" && cb != nil {
		cb(id)
	}
}

// EditNote replaces the action menu with the inline note editor, pre-filled
// with the highlight's current note. The selection (and darkening) stays
// until the editor closes.
func (c *Controller) EditNote() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.selectedID == "" || c.onEditNote == nil || c.editor != nil {
		return
	}
	c.stopTimerLocked()

	marker := c.menu.Parent
	removeNode(c.menu)
	c.menu = nil

	c.noteText = c.currentNoteLocked()
	c.editor = buildEditor(c.noteText)
	marker.AppendChild(c.editor)
}

func (c *Controller) currentNoteLocked() string {
	for _, h := range c.highlights {
		if h.Id == c.selectedID {
			return h.Note
		}
	}
	return ""
}

// SetNoteText mirrors the user's typing into the open editor.
func (c *Controller) SetNoteText(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.editor == nil {
		return
	}
	c.noteText = text
	if ta := elementByClass(c.editor, "note-textarea"); ta != nil {
		for ch := ta.FirstChild; ch != nil; ch = ta.FirstChild {
			ta.RemoveChild(ch)
		}
		ta.AppendChild(dom.NewText(text))
	}
}

// SaveNote commits the editor text through the note callback and closes
// the affordance.
func (c *Controller) SaveNote() {
	c.mu.Lock()
	id := c.selectedID
	text := c.noteText
	cb := c.onEditNote
	open := c.editor != nil
	c.dismissLocked()
	c.mu.Unlock()

	if open && id != "" && cb != nil {
		cb(id, text)
	}
}

// CancelNote discards the editor text and closes the affordance.
func (c *Controller) CancelNote() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.editor == nil {
		return
	}
	c.dismissLocked()
}

// dismissLocked returns to Idle: restore the exact original color string on
// every segment of the selected id, remove affordance subtrees, stop the
// timer.
func (c *Controller) dismissLocked() {
	c.stopTimerLocked()

	if c.selectedID != "" && c.container != nil {
		if orig, ok := c.originalColors[c.selectedID]; ok && orig != "" {
			for _, seg := range highlight.SegmentsFor(c.container, c.selectedID) {
				highlight.SetColor(seg, orig)
			}
		}
		delete(c.originalColors, c.selectedID)
	}
	c.selectedID = ""

	removeNode(c.menu)
	c.menu = nil
	removeNode(c.editor)
	c.editor = nil
	c.noteText = ""
}

func (c *Controller) stopTimerLocked() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

func removeNode(n *html.Node) {
	if n != nil && n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
}
