// Package document provides the multi-line text model edited by ghosttext.
// Text is stored as rune lines so positions are stable across multi-byte
// characters, and every effective edit bumps a version counter.
package document

import (
	"strings"

	"github.com/samber/lo"
)

// Position is a zero-based location in a document. Character is a rune
// offset within the line.
type Position struct {
	Line      int
	Character int
}

// Before reports whether p comes strictly before other.
func (p Position) Before(other Position) bool {
	if p.Line != other.Line {
		return p.Line < other.Line
	}
	return p.Character < other.Character
}

// Range is a span between two positions. Start may come after End; use
// Normalize to order them.
type Range struct {
	Start Position
	End   Position
}

// Normalize returns r with Start <= End.
func (r Range) Normalize() Range {
	if r.End.Before(r.Start) {
		return Range{Start: r.End, End: r.Start}
	}
	return r
}

// IsEmpty reports whether the range covers no text.
func (r Range) IsEmpty() bool {
	return r.Start == r.End
}

// ChangeEvent describes the most recent effective edit.
type ChangeEvent struct {
	// Version is the document version after the edit.
	Version uint64
	// Range is the span that was replaced, in pre-edit coordinates.
	Range Range
	// Text is the inserted text (empty for deletions).
	Text string
}

// Document holds text content and a cursor.
type Document struct {
	lines   [][]rune
	cursor  Position
	version uint64
}

// New creates a document with the given text. The cursor starts at (0,0).
func New(text string) *Document {
	return &Document{
		lines: splitLines(text),
	}
}

// Text returns the full document content.
func (d *Document) Text() string {
	var sb strings.Builder
	for i, line := range d.lines {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(string(line))
	}
	return sb.String()
}

// Len returns the number of runes in the document, counting line breaks.
func (d *Document) Len() int {
	n := len(d.lines) - 1
	for _, line := range d.lines {
		n += len(line)
	}
	return n
}

// LineCount returns the number of lines. An empty document has one line.
func (d *Document) LineCount() int {
	return len(d.lines)
}

// Line returns the text of line i, or "" if i is out of range.
func (d *Document) Line(i int) string {
	if i < 0 || i >= len(d.lines) {
		return ""
	}
	return string(d.lines[i])
}

// Version returns a counter incremented on every effective edit.
func (d *Document) Version() uint64 {
	return d.version
}

// Cursor returns the current cursor position.
func (d *Document) Cursor() Position {
	return d.cursor
}

// SetCursor moves the cursor, clamping it into the document.
func (d *Document) SetCursor(pos Position) {
	d.cursor = d.Clamp(pos)
}

// Clamp returns the nearest valid position to pos.
func (d *Document) Clamp(pos Position) Position {
	line := lo.Clamp(pos.Line, 0, len(d.lines)-1)
	return Position{
		Line:      line,
		Character: lo.Clamp(pos.Character, 0, len(d.lines[line])),
	}
}

// End returns the position after the last character.
func (d *Document) End() Position {
	last := len(d.lines) - 1
	return Position{Line: last, Character: len(d.lines[last])}
}

// TextInRange returns the text between the two ends of r.
// Positions are clamped and the range is normalized first.
func (d *Document) TextInRange(r Range) string {
	r = r.Normalize()
	start, end := d.Clamp(r.Start), d.Clamp(r.End)

	if start.Line == end.Line {
		return string(d.lines[start.Line][start.Character:end.Character])
	}

	var sb strings.Builder
	sb.WriteString(string(d.lines[start.Line][start.Character:]))
	for i := start.Line + 1; i < end.Line; i++ {
		sb.WriteByte('\n')
		sb.WriteString(string(d.lines[i]))
	}
	sb.WriteByte('\n')
	sb.WriteString(string(d.lines[end.Line][:end.Character]))
	return sb.String()
}

// Insert inserts text at pos as a single edit and returns the position just
// after the inserted text. The cursor is shifted if it sits at or after pos
// on the same line, or on a later line.
func (d *Document) Insert(pos Position, text string) (Position, ChangeEvent) {
	pos = d.Clamp(pos)
	if text == "" {
		return pos, ChangeEvent{Version: d.version, Range: Range{Start: pos, End: pos}}
	}

	end := d.replace(Range{Start: pos, End: pos}, text)
	d.cursor = shiftAfterInsert(d.cursor, pos, end)
	d.version++

	return end, ChangeEvent{
		Version: d.version,
		Range:   Range{Start: pos, End: pos},
		Text:    text,
	}
}

// Delete removes the text in r. It returns false when the range is empty.
// The cursor is moved to the start of the range if it was inside it.
func (d *Document) Delete(r Range) (ChangeEvent, bool) {
	r = r.Normalize()
	r = Range{Start: d.Clamp(r.Start), End: d.Clamp(r.End)}
	if r.IsEmpty() {
		return ChangeEvent{}, false
	}

	d.replace(r, "")
	d.cursor = shiftAfterDelete(d.cursor, r)
	d.version++

	return ChangeEvent{Version: d.version, Range: r}, true
}

// replace swaps the text in r (already clamped and normalized) for text and
// returns the position after the inserted text.
func (d *Document) replace(r Range, text string) Position {
	head := d.lines[r.Start.Line][:r.Start.Character]
	tail := d.lines[r.End.Line][r.End.Character:]

	inserted := splitLines(text)
	newLines := make([][]rune, 0, len(inserted))
	for i, part := range inserted {
		var line []rune
		if i == 0 {
			line = append(line, head...)
		}
		line = append(line, part...)
		newLines = append(newLines, line)
	}

	last := len(newLines) - 1
	endPos := Position{Line: r.Start.Line + last, Character: len(newLines[last])}
	newLines[last] = append(newLines[last], tail...)

	result := make([][]rune, 0, len(d.lines)-(r.End.Line-r.Start.Line)+last)
	result = append(result, d.lines[:r.Start.Line]...)
	result = append(result, newLines...)
	result = append(result, d.lines[r.End.Line+1:]...)
	d.lines = result

	return endPos
}

func shiftAfterInsert(cur, at, end Position) Position {
	if cur.Before(at) {
		return cur
	}
	if cur.Line == at.Line {
		return Position{Line: end.Line, Character: end.Character + (cur.Character - at.Character)}
	}
	return Position{Line: cur.Line + (end.Line - at.Line), Character: cur.Character}
}

func shiftAfterDelete(cur Position, r Range) Position {
	if cur.Before(r.Start) || cur == r.Start {
		return cur
	}
	if cur.Before(r.End) {
		return r.Start
	}
	if cur.Line == r.End.Line {
		return Position{Line: r.Start.Line, Character: r.Start.Character + (cur.Character - r.End.Character)}
	}
	return Position{Line: cur.Line - (r.End.Line - r.Start.Line), Character: cur.Character}
}

func splitLines(text string) [][]rune {
	parts := strings.Split(text, "\n")
	lines := make([][]rune, 0, len(parts))
	for _, s := range parts {
		lines = append(lines, []rune(s))
	}
	return lines
}
