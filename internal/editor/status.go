package editor

import (
	"fmt"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/muesli/ansi"
	"github.com/rivo/uniseg"

	"github.com/atinylittleshell/ghosttext/internal/document"
)

const untitledName = "[untitled]"

// statusLeft describes the file and cursor.
func statusLeft(path string, dirty bool, doc *document.Document, message string) string {
	name := untitledName
	if path != "" {
		name = filepath.Base(path)
	}
	if dirty {
		name += " ●"
	}

	cur := doc.Cursor()
	col := displayColumn(doc.Line(cur.Line), cur.Character)

	left := fmt.Sprintf(" %s  %s  Ln %d, Col %d",
		name,
		humanize.Bytes(uint64(len(doc.Text()))),
		cur.Line+1,
		col+1,
	)
	if message != "" {
		left += "  " + message
	}
	return left
}

// displayColumn counts grapheme clusters before character on line, so a
// combining sequence counts as one column.
func displayColumn(line string, character int) int {
	runes := []rune(line)
	if character > len(runes) {
		character = len(runes)
	}
	return uniseg.GraphemeClusterCount(string(runes[:character]))
}

func printableWidth(s string) int {
	return ansi.PrintableRuneWidth(s)
}
