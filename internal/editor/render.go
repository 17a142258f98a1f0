package editor

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	"github.com/atinylittleshell/ghosttext/internal/host"
)

const tabWidth = 4

var (
	colorGray   = lipgloss.Color("8")
	colorYellow = lipgloss.Color("11")
)

// RenderConfig holds styling configuration for the editor view.
type RenderConfig struct {
	// TextStyle is the style applied to document text.
	TextStyle lipgloss.Style

	// CursorStyle is the style applied to the cursor cell.
	CursorStyle lipgloss.Style

	// FillerStyle is the style for rows past the end of the document.
	FillerStyle lipgloss.Style

	// StatusStyle is the style for the status line.
	StatusStyle lipgloss.Style

	// PaletteStyle is the style for the command palette container.
	PaletteStyle lipgloss.Style

	// SelectedStyle is the style for the selected palette entry.
	SelectedStyle lipgloss.Style
}

// DefaultRenderConfig returns the default editor styles.
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		TextStyle:   lipgloss.NewStyle(),
		CursorStyle: lipgloss.NewStyle().Reverse(true),
		FillerStyle: lipgloss.NewStyle().Foreground(colorGray),
		StatusStyle: lipgloss.NewStyle().Reverse(true),
		PaletteStyle: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorYellow),
		SelectedStyle: lipgloss.NewStyle().Bold(true),
	}
}

// OverlayLipgloss converts an overlay style to a lipgloss style.
func OverlayLipgloss(s host.OverlayStyle) lipgloss.Style {
	style := lipgloss.NewStyle().Italic(s.Italic).Faint(s.Faint)
	if s.Color != "" {
		style = style.Foreground(lipgloss.Color(s.Color))
	}
	return style
}

// ghost is virtual text placed before the character at col.
type ghost struct {
	col   int
	text  string
	style lipgloss.Style
}

// Renderer draws document lines, overlays and the cursor.
type Renderer struct {
	config RenderConfig
	width  int
}

// NewRenderer creates a new Renderer with the given configuration.
func NewRenderer(config RenderConfig) *Renderer {
	return &Renderer{
		config: config,
		width:  80,
	}
}

// SetWidth sets the terminal width for rendering.
func (r *Renderer) SetWidth(width int) {
	if width > 0 {
		r.width = width
	}
}

// Width returns the current terminal width.
func (r *Renderer) Width() int {
	return r.width
}

// Config returns the current render configuration.
func (r *Renderer) Config() RenderConfig {
	return r.config
}

// RenderLine renders one document line. cursorCol is the cursor's character
// offset on this line, or -1 if the cursor is elsewhere. Ghost text is drawn
// at its column, pushing the rest of the line right. When ghost text sits at
// the cursor, the cursor is drawn on its first cell.
func (r *Renderer) RenderLine(line []rune, cursorCol int, ghosts []ghost) string {
	var sb strings.Builder
	var plain []rune
	cursorDrawn := cursorCol < 0

	flush := func() {
		if len(plain) > 0 {
			sb.WriteString(r.config.TextStyle.Render(string(plain)))
			plain = plain[:0]
		}
	}

	for col := 0; col <= len(line); col++ {
		for _, g := range ghosts {
			if g.col != col {
				continue
			}
			text := []rune(ghostDisplayText(g.text))
			if len(text) == 0 {
				continue
			}
			flush()
			if !cursorDrawn && cursorCol == col {
				sb.WriteString(r.config.CursorStyle.Render(string(text[0])))
				text = text[1:]
				cursorDrawn = true
			}
			if len(text) > 0 {
				sb.WriteString(g.style.Render(string(text)))
			}
		}

		if col == len(line) {
			if !cursorDrawn && cursorCol == col {
				flush()
				sb.WriteString(r.config.CursorStyle.Render(" "))
			}
			break
		}

		cell := []rune(displayRune(line[col]))
		if !cursorDrawn && cursorCol == col {
			flush()
			sb.WriteString(r.config.CursorStyle.Render(string(cell[0])))
			plain = append(plain, cell[1:]...)
			cursorDrawn = true
			continue
		}
		plain = append(plain, cell...)
	}
	flush()

	return truncate.String(sb.String(), uint(r.width))
}

// RenderFiller renders a row past the end of the document.
func (r *Renderer) RenderFiller() string {
	return r.config.FillerStyle.Render("~")
}

// RenderStatus renders the status line padded or clipped to the width.
func (r *Renderer) RenderStatus(left, right string) string {
	gap := r.width - printableWidth(left) - printableWidth(right)
	if gap < 1 {
		gap = 1
	}
	line := truncate.String(left+strings.Repeat(" ", gap)+right, uint(r.width))
	return r.config.StatusStyle.Render(line)
}

func displayRune(ch rune) string {
	if ch == '\t' {
		return strings.Repeat(" ", tabWidth)
	}
	return string(ch)
}

// ghostDisplayText flattens a suggestion onto one row.
func ghostDisplayText(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\n", "↵")
	return strings.ReplaceAll(text, "\t", strings.Repeat(" ", tabWidth))
}
