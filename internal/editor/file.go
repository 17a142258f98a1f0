package editor

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
	"go.uber.org/zap"
)

// ErrNoFileName is returned when saving a buffer that was never given a path.
var ErrNoFileName = errors.New("no file name")

// savedMsg reports the outcome of a save.
type savedMsg struct {
	path    string
	version uint64
	size    int
	err     error
}

// pasteMsg is sent when clipboard content is available.
type pasteMsg string

// loadFile reads path, treating a missing file as empty.
func loadFile(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(content), nil
}

// saveCmd writes a snapshot of the document in the background.
func (m *Model) saveCmd() tea.Cmd {
	path := m.path
	text := m.doc.Text()
	version := m.doc.Version()

	return func() tea.Msg {
		if path == "" {
			return savedMsg{err: ErrNoFileName}
		}
		if err := os.WriteFile(path, []byte(text), 0644); err != nil {
			return savedMsg{path: path, err: fmt.Errorf("failed to write %s: %w", path, err)}
		}
		return savedMsg{path: path, version: version, size: len(text)}
	}
}

func (m *Model) onSaved(msg savedMsg) {
	if msg.err != nil {
		m.logger.Warn("save failed", zap.Error(msg.err))
		m.message = "save failed: " + msg.err.Error()
		return
	}
	if msg.version == m.doc.Version() {
		m.dirty = false
	}
	m.message = fmt.Sprintf("saved %s", humanize.Bytes(uint64(msg.size)))
}
