package editor

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sahilm/fuzzy"
)

const maxPaletteItems = 8

// Palette is a fuzzy-filtered list of command names.
type Palette struct {
	input    textinput.Model
	names    []string
	matches  []string
	selected int
	open     bool
}

// NewPalette creates a closed palette.
func NewPalette() Palette {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "command"
	return Palette{input: ti}
}

// Open shows the palette with the given command names.
func (p *Palette) Open(names []string) tea.Cmd {
	p.names = names
	p.open = true
	p.selected = 0
	p.input.SetValue("")
	p.filter()
	return p.input.Focus()
}

// Close hides the palette.
func (p *Palette) Close() {
	p.open = false
	p.input.Blur()
}

// IsOpen reports whether the palette is visible.
func (p *Palette) IsOpen() bool {
	return p.open
}

// Matches returns the names matching the current query, best first.
func (p *Palette) Matches() []string {
	return p.matches
}

// Selected returns the highlighted command name.
func (p *Palette) Selected() (string, bool) {
	if p.selected < 0 || p.selected >= len(p.matches) {
		return "", false
	}
	return p.matches[p.selected], true
}

// Update handles a key while the palette is open. It returns the chosen
// command name once the user presses enter.
func (p *Palette) Update(msg tea.KeyMsg) (string, tea.Cmd) {
	switch msg.String() {
	case "esc", "ctrl+c":
		p.Close()
		return "", nil
	case "enter":
		name, ok := p.Selected()
		p.Close()
		if !ok {
			return "", nil
		}
		return name, nil
	case "up", "ctrl+p":
		if p.selected > 0 {
			p.selected--
		}
		return "", nil
	case "down", "ctrl+n":
		if p.selected < len(p.matches)-1 {
			p.selected++
		}
		return "", nil
	}

	var cmd tea.Cmd
	before := p.input.Value()
	p.input, cmd = p.input.Update(msg)
	if p.input.Value() != before {
		p.selected = 0
		p.filter()
	}
	return "", cmd
}

func (p *Palette) filter() {
	query := strings.TrimSpace(p.input.Value())
	if query == "" {
		p.matches = append([]string(nil), p.names...)
		return
	}

	found := fuzzy.Find(query, p.names)
	p.matches = make([]string, 0, len(found))
	for _, m := range found {
		p.matches = append(p.matches, m.Str)
	}
}

// View renders the palette box.
func (p *Palette) View(r *Renderer) string {
	cfg := r.Config()
	lines := []string{p.input.View()}

	for i, name := range p.matches {
		if i >= maxPaletteItems {
			break
		}
		if i == p.selected {
			lines = append(lines, cfg.SelectedStyle.Render("▸ "+name))
		} else {
			lines = append(lines, "  "+name)
		}
	}
	if len(p.matches) == 0 {
		lines = append(lines, cfg.FillerStyle.Render("  no matching commands"))
	}

	width := r.Width() - 2
	if width < 10 {
		width = 10
	}
	return cfg.PaletteStyle.Width(width).Render(strings.Join(lines, "\n"))
}
