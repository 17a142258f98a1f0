package editor

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"

	"github.com/atinylittleshell/ghosttext/internal/document"
	"github.com/atinylittleshell/ghosttext/internal/host"
)

func TestRenderer_RenderLine(t *testing.T) {
	gray := lipgloss.NewStyle().Foreground(colorGray)

	tests := []struct {
		name      string
		line      string
		cursorCol int
		ghosts    []ghost
		width     int
		expected  string
	}{
		{
			name:      "plain text without cursor",
			line:      "abc",
			cursorCol: -1,
			expected:  "abc",
		},
		{
			name:      "cursor at end draws a cell",
			line:      "abc",
			cursorCol: 3,
			expected:  "abc ",
		},
		{
			name:      "cursor mid line",
			line:      "abc",
			cursorCol: 1,
			expected:  "abc",
		},
		{
			name:      "ghost at cursor",
			line:      "abc",
			cursorCol: 3,
			ghosts:    []ghost{{col: 3, text: "def", style: gray}},
			expected:  "abcdef",
		},
		{
			name:      "ghost pushes rest of line",
			line:      "abc",
			cursorCol: -1,
			ghosts:    []ghost{{col: 1, text: "XY", style: gray}},
			expected:  "aXYbc",
		},
		{
			name:      "multi-line ghost flattened",
			line:      "x",
			cursorCol: -1,
			ghosts:    []ghost{{col: 1, text: "a\nb", style: gray}},
			expected:  "xa↵b",
		},
		{
			name:      "tab expanded",
			line:      "\tx",
			cursorCol: -1,
			expected:  "    x",
		},
		{
			name:      "clipped to width",
			line:      "abcdefgh",
			cursorCol: -1,
			width:     5,
			expected:  "abcde",
		},
		{
			name:      "ghost clipped to width",
			line:      "abc",
			cursorCol: 3,
			ghosts:    []ghost{{col: 3, text: "defghij", style: gray}},
			width:     6,
			expected:  "abcdef",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRenderer(DefaultRenderConfig())
			if tt.width > 0 {
				r.SetWidth(tt.width)
			}
			got := ansi.Strip(r.RenderLine([]rune(tt.line), tt.cursorCol, tt.ghosts))
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestRenderer_RenderStatus(t *testing.T) {
	r := NewRenderer(DefaultRenderConfig())
	r.SetWidth(20)

	got := ansi.Strip(r.RenderStatus("ab", "cd"))
	assert.Equal(t, "ab"+strings.Repeat(" ", 16)+"cd", got)

	r.SetWidth(6)
	got = ansi.Strip(r.RenderStatus("abcdef", "xyz"))
	assert.Equal(t, "abcdef", got)
}

func TestRenderer_SetWidthIgnoresNonPositive(t *testing.T) {
	r := NewRenderer(DefaultRenderConfig())
	r.SetWidth(0)
	assert.Equal(t, 80, r.Width())
}

func TestOverlayLipgloss(t *testing.T) {
	style := OverlayLipgloss(host.OverlayStyle{Color: "8", Italic: true, Faint: true})
	assert.True(t, style.GetItalic())
	assert.True(t, style.GetFaint())
	assert.Equal(t, lipgloss.Color("8"), style.GetForeground())

	plain := OverlayLipgloss(host.OverlayStyle{})
	assert.False(t, plain.GetItalic())
	assert.Equal(t, lipgloss.NoColor{}, plain.GetForeground())
}

func TestStatusLeft(t *testing.T) {
	doc := document.New("hi")
	assert.Equal(t, " [untitled]  2 B  Ln 1, Col 1", statusLeft("", false, doc, ""))

	doc.CursorLineEnd()
	assert.Equal(t, " main.java ●  2 B  Ln 1, Col 3  saved", statusLeft("/tmp/src/main.java", true, doc, "saved"))
}

func TestDisplayColumn(t *testing.T) {
	assert.Equal(t, 0, displayColumn("abc", 0))
	assert.Equal(t, 2, displayColumn("abc", 2))
	assert.Equal(t, 3, displayColumn("abc", 10))
	// e + combining acute accent is one cluster.
	assert.Equal(t, 1, displayColumn("e\u0301x", 2))
}
