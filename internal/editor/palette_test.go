package editor

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
)

var paletteNames = []string{
	"editor.paste",
	"editor.quit",
	"editor.save",
	"ghosttext.acceptSuggestion",
	"ghosttext.dismissSuggestion",
}

func typeInto(p *Palette, s string) {
	for _, r := range s {
		p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func TestPalette_OpenListsAll(t *testing.T) {
	p := NewPalette()
	assert.False(t, p.IsOpen())

	p.Open(paletteNames)
	assert.True(t, p.IsOpen())
	assert.Equal(t, paletteNames, p.Matches())

	selected, ok := p.Selected()
	assert.True(t, ok)
	assert.Equal(t, "editor.paste", selected)
}

func TestPalette_FuzzyFilter(t *testing.T) {
	p := NewPalette()
	p.Open(paletteNames)

	typeInto(&p, "dismiss")
	assert.Equal(t, []string{"ghosttext.dismissSuggestion"}, p.Matches())

	name, _ := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, "ghosttext.dismissSuggestion", name)
	assert.False(t, p.IsOpen())
}

func TestPalette_Navigation(t *testing.T) {
	p := NewPalette()
	p.Open(paletteNames)

	p.Update(tea.KeyMsg{Type: tea.KeyDown})
	p.Update(tea.KeyMsg{Type: tea.KeyDown})
	selected, _ := p.Selected()
	assert.Equal(t, "editor.save", selected)

	p.Update(tea.KeyMsg{Type: tea.KeyUp})
	selected, _ = p.Selected()
	assert.Equal(t, "editor.quit", selected)

	// Up at the top stays put.
	p.Update(tea.KeyMsg{Type: tea.KeyUp})
	p.Update(tea.KeyMsg{Type: tea.KeyUp})
	selected, _ = p.Selected()
	assert.Equal(t, "editor.paste", selected)
}

func TestPalette_NoMatches(t *testing.T) {
	p := NewPalette()
	p.Open(paletteNames)

	typeInto(&p, "zzz")
	assert.Empty(t, p.Matches())

	_, ok := p.Selected()
	assert.False(t, ok)

	name, _ := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, "", name)
	assert.False(t, p.IsOpen())
}

func TestPalette_EscapeCloses(t *testing.T) {
	p := NewPalette()
	p.Open(paletteNames)

	name, _ := p.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, "", name)
	assert.False(t, p.IsOpen())
}

func TestPalette_View(t *testing.T) {
	p := NewPalette()
	p.Open(paletteNames)

	view := ansi.Strip(p.View(NewRenderer(DefaultRenderConfig())))
	assert.Contains(t, view, "▸ editor.paste")
	assert.Contains(t, view, "  editor.quit")

	typeInto(&p, "zzz")
	view = ansi.Strip(p.View(NewRenderer(DefaultRenderConfig())))
	assert.Contains(t, view, "no matching commands")
}
