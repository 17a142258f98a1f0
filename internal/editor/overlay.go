package editor

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/atinylittleshell/ghosttext/internal/document"
)

// overlay is a ghost-text decoration owned by a Model.
type overlay struct {
	id    uint64
	pos   document.Position
	text  string
	style lipgloss.Style
	owner *Model
}

// Dispose removes the overlay from its editor. Calling it twice is a no-op.
func (o *overlay) Dispose() {
	if o.owner == nil {
		return
	}
	o.owner.removeOverlay(o.id)
	o.owner = nil
}

// ghostsOnLine returns the overlays anchored on line, clamped to the line.
func (m *Model) ghostsOnLine(line int) []ghost {
	var ghosts []ghost
	for _, o := range m.overlays {
		pos := m.doc.Clamp(o.pos)
		if pos.Line != line {
			continue
		}
		ghosts = append(ghosts, ghost{col: pos.Character, text: o.text, style: o.style})
	}
	return ghosts
}

func (m *Model) removeOverlay(id uint64) {
	for i, o := range m.overlays {
		if o.id == id {
			m.overlays = append(m.overlays[:i], m.overlays[i+1:]...)
			return
		}
	}
}
