package selection

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	"github.com/tuyetlangsa/rehi-go/internal/dom"
)

type fakeProvider struct {
	raw     *Raw
	removed bool
}

func (f *fakeProvider) Current() *Raw { return f.raw }
func (f *fakeProvider) RemoveRanges() { f.removed = true }

func textNode(t *testing.T, root *html.Node, want string) *html.Node {
	t.Helper()
	for _, n := range dom.TextNodes(root) {
		if n.Data == want {
			return n
		}
	}
	t.Fatalf("no text node %q", want)
	return nil
}

func forwardRaw(start *html.Node, startOff int, end *html.Node, endOff int) *Raw {
	return &Raw{
		StartNode: start, StartOffset: startOff,
		EndNode: end, EndOffset: endOff,
		AnchorNode: start, AnchorOffset: startOff,
		FocusNode: end, FocusOffset: endOff,
	}
}

func TestCapturer_PointerUp(t *testing.T) {
	c, err := dom.ParseFragment("<p>Hello <b>world</b> foo</p>")
	require.NoError(t, err)

	hello := textNode(t, c, "Hello ")
	world := textNode(t, c, "world")

	p := &fakeProvider{raw: forwardRaw(hello, 0, world, 5)}
	cap := NewCapturer(c, p, Options{}, nil)

	cap.PointerUp()

	sel := cap.Current()
	require.NotNil(t, sel)
	assert.Equal(t, "Hello world", sel.Text)
	assert.Equal(t, "Hello <b>world</b>", sel.HTML)
	assert.Equal(t, "Hello **world**", sel.Markdown)
	assert.False(t, sel.Reverse)
}

func TestCapturer_LocationDescriptor(t *testing.T) {
	c, err := dom.ParseFragment("<p>Hello <b>world</b></p>")
	require.NoError(t, err)

	hello := textNode(t, c, "Hello ")
	world := textNode(t, c, "world")

	p := &fakeProvider{raw: forwardRaw(hello, 2, world, 4)}
	cap := NewCapturer(c, p, Options{}, nil)
	cap.PointerUp()

	sel := cap.Current()
	require.NotNil(t, sel)
	assert.Equal(t, sel.StartPath+":2,"+sel.EndPath+":4", sel.Location)
	assert.NotEmpty(t, sel.StartPath)
	assert.NotEqual(t, sel.StartPath, sel.EndPath)
}

func TestCapturer_ReverseSelection(t *testing.T) {
	c, err := dom.ParseFragment("<p>Hello <b>world</b></p>")
	require.NoError(t, err)

	hello := textNode(t, c, "Hello ")
	world := textNode(t, c, "world")

	// dragged from "world" back to "Hello": focus precedes anchor
	raw := forwardRaw(hello, 0, world, 5)
	raw.AnchorNode, raw.AnchorOffset = world, 5
	raw.FocusNode, raw.FocusOffset = hello, 0

	p := &fakeProvider{raw: raw}
	cap := NewCapturer(c, p, Options{}, nil)
	cap.PointerUp()

	sel := cap.Current()
	require.NotNil(t, sel)
	assert.True(t, sel.Reverse)
}

func TestCapturer_CollapsedCleared(t *testing.T) {
	c, err := dom.ParseFragment("<p>Hello</p>")
	require.NoError(t, err)
	hello := textNode(t, c, "Hello")

	raw := forwardRaw(hello, 2, hello, 2)
	raw.Collapsed = true

	p := &fakeProvider{raw: raw}
	cap := NewCapturer(c, p, Options{}, nil)
	cap.PointerUp()

	assert.Nil(t, cap.Current())
}

func TestCapturer_OutsideContainerCleared(t *testing.T) {
	doc, err := dom.ParseFragment(`<aside>sidebar text</aside><div id="content"><p>Hello</p></div>`)
	require.NoError(t, err)

	container := dom.ElementByID(doc, "content")
	require.NotNil(t, container)
	sidebar := textNode(t, doc, "sidebar text")

	p := &fakeProvider{raw: forwardRaw(sidebar, 0, sidebar, 7)}
	cap := NewCapturer(container, p, Options{}, nil)
	cap.PointerUp()

	assert.Nil(t, cap.Current())
}

func TestCapturer_WhitespaceOnlyCleared(t *testing.T) {
	c, err := dom.ParseFragment("<p>a \n b</p>")
	require.NoError(t, err)
	n := textNode(t, c, "a \n b")

	p := &fakeProvider{raw: forwardRaw(n, 1, n, 4)}
	cap := NewCapturer(c, p, Options{}, nil)
	cap.PointerUp()

	assert.Nil(t, cap.Current())
}

func TestCapturer_TouchDebounce(t *testing.T) {
	c, err := dom.ParseFragment("<p>Hello world</p>")
	require.NoError(t, err)
	n := textNode(t, c, "Hello world")

	done := make(chan *Selection, 1)
	p := &fakeProvider{raw: forwardRaw(n, 0, n, 5)}
	cap := NewCapturer(c, p, Options{TouchDelay: 10 * time.Millisecond}, func(s *Selection) {
		done <- s
	})

	cap.TouchEnd()
	assert.Nil(t, cap.Current())

	select {
	case sel := <-done:
		require.NotNil(t, sel)
		assert.Equal(t, "Hello", sel.Text)
	case <-time.After(time.Second):
		t.Fatal("capture never fired")
	}
}

func TestCapturer_NewGestureSupersedesPending(t *testing.T) {
	c, err := dom.ParseFragment("<p>Hello world</p>")
	require.NoError(t, err)
	n := textNode(t, c, "Hello world")

	done := make(chan *Selection, 2)
	p := &fakeProvider{raw: forwardRaw(n, 0, n, 5)}
	cap := NewCapturer(c, p, Options{TouchDelay: 50 * time.Millisecond}, func(s *Selection) {
		done <- s
	})

	cap.TouchEnd()
	p.raw = forwardRaw(n, 6, n, 11)
	cap.TouchEnd()

	select {
	case sel := <-done:
		require.NotNil(t, sel)
		assert.Equal(t, "world", sel.Text)
	case <-time.After(time.Second):
		t.Fatal("capture never fired")
	}

	select {
	case <-done:
		t.Fatal("superseded capture still fired")
	case <-time.After(100 * time.Millisecond):
	}
}

func TestCapturer_Clear(t *testing.T) {
	c, err := dom.ParseFragment("<p>Hello</p>")
	require.NoError(t, err)
	n := textNode(t, c, "Hello")

	p := &fakeProvider{raw: forwardRaw(n, 0, n, 5)}
	cap := NewCapturer(c, p, Options{}, nil)
	cap.PointerUp()
	require.NotNil(t, cap.Current())

	cap.Clear()
	assert.Nil(t, cap.Current())
	assert.True(t, p.removed)
}

func TestCapturer_SuppressContextMenu(t *testing.T) {
	c, err := dom.ParseFragment("<p>Hello</p>")
	require.NoError(t, err)
	n := textNode(t, c, "Hello")

	p := &fakeProvider{}
	cap := NewCapturer(c, p, Options{}, nil)
	assert.False(t, cap.SuppressContextMenu())

	p.raw = forwardRaw(n, 0, n, 5)
	assert.True(t, cap.SuppressContextMenu())

	p.raw.Collapsed = true
	assert.False(t, cap.SuppressContextMenu())
}
