// Package editor is a small terminal text editor built on Bubble Tea. It
// hosts the inline suggestion controller: edits are reported to it as change
// events, and it draws suggestions back into the view as ghost text.
package editor

import (
	"fmt"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/atinylittleshell/ghosttext/internal/autocomplete"
	"github.com/atinylittleshell/ghosttext/internal/document"
	"github.com/atinylittleshell/ghosttext/internal/host"
	"github.com/atinylittleshell/ghosttext/internal/suggest"
)

// Editor commands available from the palette.
const (
	CommandSave  = "editor.save"
	CommandPaste = "editor.paste"
	CommandQuit  = "editor.quit"
)

// Config holds configuration for creating a Model.
type Config struct {
	// Path is the file to edit. It need not exist yet. Empty means an
	// untitled buffer that cannot be saved.
	Path string

	// Completer fetches suggestions. Required.
	Completer autocomplete.Completer

	// DebounceDelay is passed to the suggestion controller.
	DebounceDelay time.Duration

	// OverlayStyle is passed to the suggestion controller.
	OverlayStyle host.OverlayStyle

	// KeyMap defaults to DefaultKeyMap if nil.
	KeyMap *KeyMap

	// RenderConfig defaults to DefaultRenderConfig if nil.
	RenderConfig *RenderConfig

	// Logger for diagnostics. If nil, a no-op logger is used.
	Logger *zap.Logger
}

// Model is the editor's Bubble Tea model. It is also the host and the only
// editor the suggestion controller sees.
type Model struct {
	doc      *document.Document
	path     string
	dirty    bool
	keymap   *KeyMap
	renderer *Renderer
	logger   *zap.Logger

	commands  *host.Commands
	suggest   *suggest.Controller
	indicator Indicator
	palette   Palette

	overlays      []*overlay
	nextOverlayID uint64

	// changes and cmds collect side effects of commands run during one
	// Update; they are drained before Update returns.
	changes []document.ChangeEvent
	cmds    []tea.Cmd

	width    int
	height   int
	top      int
	message  string
	quitting bool
}

// New creates an editor and registers its commands and the suggestion
// controller.
func New(cfg Config) (*Model, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	text, err := loadFile(cfg.Path)
	if err != nil {
		return nil, err
	}

	keymap := cfg.KeyMap
	if keymap == nil {
		keymap = DefaultKeyMap()
	}

	renderConfig := DefaultRenderConfig()
	if cfg.RenderConfig != nil {
		renderConfig = *cfg.RenderConfig
	}

	m := &Model{
		doc:       document.New(text),
		path:      cfg.Path,
		keymap:    keymap,
		renderer:  NewRenderer(renderConfig),
		logger:    logger,
		commands:  host.NewCommands(),
		indicator: NewIndicator("suggest"),
		palette:   NewPalette(),
		width:     80,
		height:    24,
	}

	if err := m.registerCommands(); err != nil {
		return nil, err
	}

	m.suggest = suggest.New(suggest.Config{
		Host:          m,
		Completer:     cfg.Completer,
		DebounceDelay: cfg.DebounceDelay,
		OverlayStyle:  cfg.OverlayStyle,
		Logger:        logger.Named("suggest"),
	})
	if err := m.suggest.Register(m.commands); err != nil {
		return nil, fmt.Errorf("failed to register suggestion commands: %w", err)
	}

	return m, nil
}

func (m *Model) registerCommands() error {
	builtins := map[string]host.CommandFunc{
		host.CommandType:        m.defaultType,
		host.CommandDefaultType: m.defaultType,
		CommandSave: func(any) error {
			m.cmds = append(m.cmds, m.saveCmd())
			return nil
		},
		CommandPaste: func(any) error {
			m.cmds = append(m.cmds, Paste)
			return nil
		},
		CommandQuit: func(any) error {
			m.quitting = true
			return nil
		},
	}

	for name, fn := range builtins {
		if err := m.commands.Register(name, fn); err != nil {
			return fmt.Errorf("failed to register %s: %w", name, err)
		}
	}
	return nil
}

// defaultType inserts typed text at the cursor.
func (m *Model) defaultType(args any) error {
	var text string
	switch a := args.(type) {
	case host.TypeArgs:
		text = a.Text
	case *host.TypeArgs:
		if a == nil {
			return fmt.Errorf("type requires text")
		}
		text = a.Text
	default:
		return fmt.Errorf("type requires text, got %T", args)
	}

	m.recordChange(m.doc.InsertAtCursor(text), text != "")
	return nil
}

// Paste returns a message with the clipboard content.
func Paste() tea.Msg {
	str, err := clipboard.ReadAll()
	if err != nil {
		return nil
	}
	return pasteMsg(str)
}

// ActiveEditor returns the model itself; the editor always has one buffer.
func (m *Model) ActiveEditor() (host.Editor, bool) {
	if m.quitting {
		return nil, false
	}
	return m, true
}

// Cursor returns the cursor position.
func (m *Model) Cursor() document.Position {
	return m.doc.Cursor()
}

// TextInRange returns document text in r.
func (m *Model) TextInRange(r document.Range) string {
	return m.doc.TextInRange(r)
}

// Insert inserts text at pos as one edit.
func (m *Model) Insert(pos document.Position, text string) error {
	_, ev := m.doc.Insert(pos, text)
	m.recordChange(ev, text != "")
	return nil
}

// Decorate adds ghost text anchored at pos.
func (m *Model) Decorate(pos document.Position, text string, style host.OverlayStyle) host.Overlay {
	m.nextOverlayID++
	o := &overlay{
		id:    m.nextOverlayID,
		pos:   pos,
		text:  text,
		style: OverlayLipgloss(style),
		owner: m,
	}
	m.overlays = append(m.overlays, o)
	return o
}

// Document returns the edited document.
func (m *Model) Document() *document.Document {
	return m.doc
}

// Commands returns the command registry.
func (m *Model) Commands() *host.Commands {
	return m.commands
}

// Suggestions returns the suggestion controller.
func (m *Model) Suggestions() *suggest.Controller {
	return m.suggest
}

// Dirty reports whether the document has unsaved edits.
func (m *Model) Dirty() bool {
	return m.dirty
}

// Close tears down the suggestion controller.
func (m *Model) Close() {
	m.suggest.Close()
}

func (m *Model) recordChange(ev document.ChangeEvent, changed bool) {
	if !changed {
		return
	}
	m.dirty = true
	m.changes = append(m.changes, ev)
}

// Init starts the status spinner.
func (m *Model) Init() tea.Cmd {
	return m.indicator.Tick
}

// Update handles a message.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.renderer.SetWidth(msg.Width)
	case tea.KeyMsg:
		m.message = ""
		if m.palette.IsOpen() {
			cmd = m.handlePaletteKey(msg)
		} else {
			cmd = m.handleKey(msg)
		}
	case pasteMsg:
		m.recordChange(m.doc.InsertAtCursor(string(msg)), msg != "")
	case savedMsg:
		m.onSaved(msg)
	case spinner.TickMsg:
		cmd = m.indicator.Update(msg)
	default:
		cmd = m.suggest.Update(msg)
	}

	cmds := append([]tea.Cmd{cmd}, m.drain()...)
	m.indicator.SetStatus(m.suggest.Status())
	m.scrollToCursor()

	if m.quitting {
		m.Close()
		cmds = append(cmds, tea.Quit)
	}

	return m, tea.Batch(cmds...)
}

// drain reports collected changes to the controller and returns queued
// commands.
func (m *Model) drain() []tea.Cmd {
	cmds := m.cmds
	m.cmds = nil

	changes := m.changes
	m.changes = nil
	for _, ev := range changes {
		cmds = append(cmds, m.suggest.OnDocumentChanged(ev))
	}
	return cmds
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	action := m.keymap.Lookup(msg)

	switch action {
	case ActionCharacterForward:
		m.doc.CursorRight()
	case ActionCharacterBackward:
		m.doc.CursorLeft()
	case ActionCursorUp:
		m.doc.CursorUp()
	case ActionCursorDown:
		m.doc.CursorDown()
	case ActionLineStart:
		m.doc.CursorLineStart()
	case ActionLineEnd:
		m.doc.CursorLineEnd()
	case ActionPageUp:
		for i := 0; i < m.bodyHeight(); i++ {
			m.doc.CursorUp()
		}
	case ActionPageDown:
		for i := 0; i < m.bodyHeight(); i++ {
			m.doc.CursorDown()
		}
	case ActionDocumentStart:
		m.doc.CursorDocumentStart()
	case ActionDocumentEnd:
		m.doc.CursorDocumentEnd()
	case ActionDeleteCharacterBackward:
		ev, ok := m.doc.DeleteBackward()
		m.recordChange(ev, ok)
	case ActionDeleteCharacterForward:
		ev, ok := m.doc.DeleteForward()
		m.recordChange(ev, ok)
	case ActionNewline:
		m.execute(host.CommandType, host.TypeArgs{Text: "\n"})
	case ActionTab:
		m.execute(host.CommandType, host.TypeArgs{Text: "\t"})
	case ActionDismiss:
		m.execute(host.CommandDismissSuggestion, nil)
	case ActionPaste:
		m.execute(CommandPaste, nil)
	case ActionSave:
		m.execute(CommandSave, nil)
	case ActionPalette:
		return m.palette.Open(m.paletteCommands())
	case ActionQuit:
		m.execute(CommandQuit, nil)
	case ActionNone:
		if msg.Paste {
			m.recordChange(m.doc.InsertAtCursor(string(msg.Runes)), len(msg.Runes) > 0)
			return nil
		}
		if (msg.Type == tea.KeyRunes && !msg.Alt) || msg.Type == tea.KeySpace {
			m.execute(host.CommandType, host.TypeArgs{Text: string(msg.Runes)})
		}
	}
	return nil
}

func (m *Model) handlePaletteKey(msg tea.KeyMsg) tea.Cmd {
	name, cmd := m.palette.Update(msg)
	if name != "" {
		m.execute(name, nil)
	}
	return cmd
}

// paletteCommands lists commands that take no arguments.
func (m *Model) paletteCommands() []string {
	return lo.Reject(m.commands.Names(), func(name string, _ int) bool {
		return name == host.CommandType || name == host.CommandDefaultType
	})
}

func (m *Model) execute(name string, args any) {
	if err := m.commands.Execute(name, args); err != nil {
		m.logger.Warn("command failed", zap.String("command", name), zap.Error(err))
		m.message = err.Error()
	}
}

func (m *Model) bodyHeight() int {
	if m.height <= 1 {
		return 1
	}
	return m.height - 1
}

func (m *Model) scrollToCursor() {
	line := m.doc.Cursor().Line
	body := m.bodyHeight()
	if line < m.top {
		m.top = line
	}
	if line >= m.top+body {
		m.top = line - body + 1
	}
}

// View renders the editor.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}

	rows := make([]string, 0, m.height)
	cur := m.doc.Cursor()
	for i := 0; i < m.bodyHeight(); i++ {
		line := m.top + i
		if line >= m.doc.LineCount() {
			rows = append(rows, m.renderer.RenderFiller())
			continue
		}
		cursorCol := -1
		if line == cur.Line {
			cursorCol = cur.Character
		}
		rows = append(rows, m.renderer.RenderLine([]rune(m.doc.Line(line)), cursorCol, m.ghostsOnLine(line)))
	}

	if m.palette.IsOpen() {
		box := strings.Split(m.palette.View(m.renderer), "\n")
		for i := 0; i < len(box) && i < len(rows); i++ {
			rows[i] = box[i]
		}
	}

	left := statusLeft(m.path, m.dirty, m.doc, m.message)
	rows = append(rows, m.renderer.RenderStatus(left, m.indicator.View()+" "))

	return strings.Join(rows, "\n")
}
