package highlight

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuyetlangsa/rehi-go/internal/dom"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain", in: "hello world", want: "hello world"},
		{name: "run of spaces", in: "hello   world", want: "hello world"},
		{name: "mixed whitespace", in: "hello \n\t world", want: "hello world"},
		{name: "leading and trailing", in: "  hello world \n", want: "hello world"},
		{name: "only whitespace", in: " \t\n ", want: ""},
		{name: "empty", in: "", want: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestFindMatch_Simple(t *testing.T) {
	c, err := dom.ParseFragment("<p>The quick brown fox</p>")
	require.NoError(t, err)

	m := FindMatch(c, "quick brown")
	require.NotNil(t, m)

	raw := fullText(m.Map)
	assert.Equal(t, "quick brown", string(raw[m.Start:m.End]))
}

func TestFindMatch_WhitespaceInsensitive(t *testing.T) {
	c, err := dom.ParseFragment("<p>Hello\n\t  world</p>")
	require.NoError(t, err)

	m := FindMatch(c, "Hello world")
	require.NotNil(t, m)

	raw := fullText(m.Map)
	assert.Equal(t, "Hello\n\t  world", string(raw[m.Start:m.End]))
}

func TestFindMatch_TargetWithExtraWhitespace(t *testing.T) {
	c, err := dom.ParseFragment("<p>Hello world</p>")
	require.NoError(t, err)

	m := FindMatch(c, "  Hello \n world ")
	require.NotNil(t, m)

	raw := fullText(m.Map)
	assert.Equal(t, "Hello world", string(raw[m.Start:m.End]))
}

func TestFindMatch_AcrossElements(t *testing.T) {
	c, err := dom.ParseFragment("<p>Hello <b>world</b> again</p>")
	require.NoError(t, err)

	m := FindMatch(c, "Hello world")
	require.NotNil(t, m)
	assert.Equal(t, 0, m.Start)

	raw := fullText(m.Map)
	assert.Equal(t, "Hello world", string(raw[m.Start:m.End]))
}

func TestFindMatch_FirstOccurrenceWins(t *testing.T) {
	c, err := dom.ParseFragment("<p>abc abc abc</p>")
	require.NoError(t, err)

	m := FindMatch(c, "abc")
	require.NotNil(t, m)
	assert.Equal(t, 0, m.Start)
	assert.Equal(t, 3, m.End)
}

func TestFindMatch_BacktracksOverPartialMatch(t *testing.T) {
	// "aab" must not be missed because the scan first latched onto the
	// leading "aa" expecting "ab".
	c, err := dom.ParseFragment("<p>aaab</p>")
	require.NoError(t, err)

	m := FindMatch(c, "aab")
	require.NotNil(t, m)
	assert.Equal(t, 1, m.Start)
	assert.Equal(t, 4, m.End)
}

func TestFindMatch_NotFound(t *testing.T) {
	c, err := dom.ParseFragment("<p>The quick brown fox</p>")
	require.NoError(t, err)

	assert.Nil(t, FindMatch(c, "lazy dog"))
}

func TestFindMatch_EmptyTarget(t *testing.T) {
	c, err := dom.ParseFragment("<p>The quick brown fox</p>")
	require.NoError(t, err)

	assert.Nil(t, FindMatch(c, ""))
	assert.Nil(t, FindMatch(c, "  \n\t "))
}

func TestFindMatch_Unicode(t *testing.T) {
	c, err := dom.ParseFragment("<p>naïve café déjà vu</p>")
	require.NoError(t, err)

	m := FindMatch(c, "café déjà")
	require.NotNil(t, m)

	raw := fullText(m.Map)
	assert.Equal(t, "café déjà", string(raw[m.Start:m.End]))
}

func TestRangeFromMatch_Boundaries(t *testing.T) {
	c, err := dom.ParseFragment("<p>Hello <b>world</b></p>")
	require.NoError(t, err)

	m := FindMatch(c, "Hello world")
	require.NotNil(t, m)

	r, err := RangeFromMatch(m)
	require.NoError(t, err)

	assert.Equal(t, "Hello ", r.StartNode.Data)
	assert.Equal(t, 0, r.StartOffset)

	// the match ends exactly at the boundary of the second text node; the
	// inclusive end rule keeps the range inside it
	assert.Equal(t, "world", r.EndNode.Data)
	assert.Equal(t, 5, r.EndOffset)
}

func TestRangeFromMatch_MidNode(t *testing.T) {
	c, err := dom.ParseFragment("<p>The quick brown fox</p>")
	require.NoError(t, err)

	m := FindMatch(c, "quick")
	require.NotNil(t, m)

	r, err := RangeFromMatch(m)
	require.NoError(t, err)
	assert.Equal(t, 4, r.StartOffset)
	assert.Equal(t, 9, r.EndOffset)
	assert.Same(t, r.StartNode, r.EndNode)
}
