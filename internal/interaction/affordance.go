package interaction

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/tuyetlangsa/rehi-go/internal/dom"
)

// buildMenu constructs the floating action container appended to the
// clicked segment. The note button is present only when note editing is
// wired.
func buildMenu(withNote bool) *html.Node {
	menu := dom.NewElement("div", "class", MenuClass)

	if withNote {
		note := dom.NewElement("button", "class", "note-btn", "title", "Add/Edit note")
		note.AppendChild(dom.NewText("📝"))
		menu.AppendChild(note)
	}

	del := dom.NewElement("button", "class", "delete-btn", "title", "Delete highlight")
	del.AppendChild(dom.NewText("✕"))
	menu.AppendChild(del)

	cancel := dom.NewElement("button", "class", "cancel-btn", "title", "Cancel")
	cancel.AppendChild(dom.NewText("Cancel"))
	menu.AppendChild(cancel)

	return menu
}

// buildEditor constructs the inline note editor with the textarea
// pre-filled.
func buildEditor(note string) *html.Node {
	editor := dom.NewElement("div", "class", EditorClass)

	ta := dom.NewElement("textarea", "class", "note-textarea", "placeholder", "Write your note here...")
	if note != "" {
		ta.AppendChild(dom.NewText(note))
	}
	editor.AppendChild(ta)

	buttons := dom.NewElement("div", "class", "note-editor-buttons")

	save := dom.NewElement("button", "class", "save-btn", "title", "Save note")
	save.AppendChild(dom.NewText("Save"))
	buttons.AppendChild(save)

	cancel := dom.NewElement("button", "class", "cancel-btn", "title", "Cancel")
	cancel.AppendChild(dom.NewText("Cancel"))
	buttons.AppendChild(cancel)

	editor.AppendChild(buttons)
	return editor
}

func elementByClass(root *html.Node, class string) *html.Node {
	var found *html.Node
	dom.Walk(root, func(n *html.Node) {
		if found == nil && n.Type == html.ElementNode && hasClass(n, class) {
			found = n
		}
	})
	return found
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(dom.Attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}
