// Package host defines the editor surface that suggestion logic runs against.
// The terminal editor implements it; tests substitute fakes.
package host

import (
	"github.com/atinylittleshell/ghosttext/internal/document"
)

// Command names shared between the editor and the suggestion controller.
const (
	// CommandType inserts a character. Extensions may override it.
	CommandType = "type"
	// CommandDefaultType is the editor's built-in insert, always reachable
	// even when CommandType is overridden.
	CommandDefaultType = "default:type"
	// CommandAcceptSuggestion accepts the displayed suggestion.
	CommandAcceptSuggestion = "ghosttext.acceptSuggestion"
	// CommandDismissSuggestion hides the displayed suggestion.
	CommandDismissSuggestion = "ghosttext.dismissSuggestion"
)

// OverlayStyle controls how overlay text is rendered.
type OverlayStyle struct {
	// Color is a terminal color (ANSI index or hex).
	Color  string
	Italic bool
	Faint  bool
}

// Overlay is a rendered, non-editable piece of virtual text.
type Overlay interface {
	// Dispose removes the overlay. Calling it more than once is a no-op.
	Dispose()
}

// Editor is a single editable view onto a document.
type Editor interface {
	// Cursor returns the current cursor position.
	Cursor() document.Position

	// TextInRange returns document text in the given range.
	TextInRange(r document.Range) string

	// Insert applies a single insertion edit at pos.
	Insert(pos document.Position, text string) error

	// Decorate renders text as trailing virtual text anchored at pos.
	Decorate(pos document.Position, text string, style OverlayStyle) Overlay
}

// Host gives access to the editor that currently has focus.
type Host interface {
	// ActiveEditor returns the focused editor, if any.
	ActiveEditor() (Editor, bool)
}
