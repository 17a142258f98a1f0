package document

// InsertAtCursor inserts text at the cursor and moves the cursor past it.
func (d *Document) InsertAtCursor(text string) ChangeEvent {
	end, ev := d.Insert(d.cursor, text)
	d.cursor = end
	return ev
}

// DeleteBackward deletes the character before the cursor, joining lines when
// the cursor is at the start of a line.
func (d *Document) DeleteBackward() (ChangeEvent, bool) {
	cur := d.cursor
	switch {
	case cur.Character > 0:
		return d.Delete(Range{Start: Position{Line: cur.Line, Character: cur.Character - 1}, End: cur})
	case cur.Line > 0:
		prev := cur.Line - 1
		return d.Delete(Range{Start: Position{Line: prev, Character: len(d.lines[prev])}, End: cur})
	}
	return ChangeEvent{}, false
}

// DeleteForward deletes the character at the cursor, joining the next line
// when the cursor is at the end of a line.
func (d *Document) DeleteForward() (ChangeEvent, bool) {
	cur := d.cursor
	switch {
	case cur.Character < len(d.lines[cur.Line]):
		return d.Delete(Range{Start: cur, End: Position{Line: cur.Line, Character: cur.Character + 1}})
	case cur.Line < len(d.lines)-1:
		return d.Delete(Range{Start: cur, End: Position{Line: cur.Line + 1}})
	}
	return ChangeEvent{}, false
}

// CursorLeft moves one character left, wrapping to the previous line end.
func (d *Document) CursorLeft() {
	cur := d.cursor
	if cur.Character > 0 {
		d.cursor.Character--
	} else if cur.Line > 0 {
		d.cursor = Position{Line: cur.Line - 1, Character: len(d.lines[cur.Line-1])}
	}
}

// CursorRight moves one character right, wrapping to the next line start.
func (d *Document) CursorRight() {
	cur := d.cursor
	if cur.Character < len(d.lines[cur.Line]) {
		d.cursor.Character++
	} else if cur.Line < len(d.lines)-1 {
		d.cursor = Position{Line: cur.Line + 1}
	}
}

// CursorUp moves to the previous line, keeping the column where possible.
func (d *Document) CursorUp() {
	d.SetCursor(Position{Line: d.cursor.Line - 1, Character: d.cursor.Character})
}

// CursorDown moves to the next line, keeping the column where possible.
func (d *Document) CursorDown() {
	d.SetCursor(Position{Line: d.cursor.Line + 1, Character: d.cursor.Character})
}

// CursorLineStart moves to the start of the current line.
func (d *Document) CursorLineStart() {
	d.cursor.Character = 0
}

// CursorLineEnd moves to the end of the current line.
func (d *Document) CursorLineEnd() {
	d.cursor.Character = len(d.lines[d.cursor.Line])
}

// CursorDocumentStart moves to (0,0).
func (d *Document) CursorDocumentStart() {
	d.cursor = Position{}
}

// CursorDocumentEnd moves past the last character.
func (d *Document) CursorDocumentEnd() {
	d.cursor = d.End()
}

// Prefix returns all text from the document start to the cursor.
func (d *Document) Prefix() string {
	return d.TextInRange(Range{End: d.cursor})
}
