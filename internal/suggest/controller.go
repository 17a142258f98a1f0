// Package suggest implements inline ghost-text suggestions: it debounces
// document changes, asks a completion server to continue the text before the
// cursor, shows the answer as an overlay, and inserts it on accept.
//
// A Controller is driven entirely from one Bubble Tea event loop. Timers and
// network results come back as messages through Update, so controller state
// is never touched from more than one goroutine and needs no locking.
package suggest

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/atinylittleshell/ghosttext/internal/autocomplete"
	"github.com/atinylittleshell/ghosttext/internal/document"
	"github.com/atinylittleshell/ghosttext/internal/host"
)

// DefaultDebounceDelay is the quiet period after the last change before a
// suggestion is requested.
const DefaultDebounceDelay = 1000 * time.Millisecond

// DefaultOverlayStyle renders suggestions as muted italic gray text.
var DefaultOverlayStyle = host.OverlayStyle{
	Color:  "8",
	Italic: true,
	Faint:  true,
}

// Status describes the controller's most recent request activity.
type Status int

const (
	// StatusIdle means no request has been made or the last one produced nothing new.
	StatusIdle Status = iota
	// StatusRequesting means a request is in flight.
	StatusRequesting
	// StatusReady means a suggestion is displayed.
	StatusReady
	// StatusError means the last request failed.
	StatusError
)

// String returns the string representation of the status.
func (s Status) String() string {
	switch s {
	case StatusIdle:
		return "idle"
	case StatusRequesting:
		return "requesting"
	case StatusReady:
		return "ready"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// debounceElapsedMsg fires when a debounce timer expires.
type debounceElapsedMsg struct {
	generation uint64
}

// completionMsg carries the outcome of one autocomplete request.
type completionMsg struct {
	generation uint64
	anchor     document.Position
	completion string
	err        error
}

// Controller owns all suggestion state for one editor session.
type Controller struct {
	host      host.Host
	completer autocomplete.Completer
	commands  *host.Commands
	delay     time.Duration
	style     host.OverlayStyle
	logger    *zap.Logger

	ctx    context.Context
	cancel context.CancelFunc

	// generation identifies the latest change event. A debounce tick or a
	// completion tagged with an older generation has been superseded.
	generation uint64
	pending    bool
	inFlight   int

	overlay   host.Overlay
	lastText  string
	anchor    document.Position
	hasAnchor bool
	status    Status

	prevType host.CommandFunc
}

// Config holds configuration for creating a Controller.
type Config struct {
	// Host provides the active editor. Required.
	Host host.Host

	// Completer fetches completions. Required.
	Completer autocomplete.Completer

	// DebounceDelay defaults to DefaultDebounceDelay if zero.
	DebounceDelay time.Duration

	// OverlayStyle defaults to DefaultOverlayStyle if zero.
	OverlayStyle host.OverlayStyle

	// Logger for diagnostics. If nil, a no-op logger is used.
	Logger *zap.Logger
}

// New creates a Controller. Call Register to hook it into a command
// registry and Close when the session ends.
func New(cfg Config) *Controller {
	delay := cfg.DebounceDelay
	if delay <= 0 {
		delay = DefaultDebounceDelay
	}

	style := cfg.OverlayStyle
	if style == (host.OverlayStyle{}) {
		style = DefaultOverlayStyle
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Controller{
		host:      cfg.Host,
		completer: cfg.Completer,
		delay:     delay,
		style:     style,
		logger:    logger,
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Register adds the accept and dismiss commands to commands and wraps the
// type command so that a tab accepts a displayed suggestion.
// CommandType and CommandDefaultType must already be registered.
func (c *Controller) Register(commands *host.Commands) error {
	if err := commands.Register(host.CommandAcceptSuggestion, func(any) error {
		return c.AcceptSuggestion()
	}); err != nil {
		return err
	}

	if err := commands.Register(host.CommandDismissSuggestion, func(any) error {
		c.Dismiss()
		return nil
	}); err != nil {
		commands.Unregister(host.CommandAcceptSuggestion)
		return err
	}

	prev, err := commands.Override(host.CommandType, c.InterceptInsertCharacter)
	if err != nil {
		commands.Unregister(host.CommandAcceptSuggestion)
		commands.Unregister(host.CommandDismissSuggestion)
		return err
	}

	c.commands = commands
	c.prevType = prev
	return nil
}

// Close releases the overlay, abandons in-flight requests, and restores the
// command registry to its state before Register.
func (c *Controller) Close() {
	c.clearSuggestion()
	c.cancel()
	c.pending = false

	if c.commands != nil {
		if c.prevType != nil {
			_, _ = c.commands.Override(host.CommandType, c.prevType)
		}
		c.commands.Unregister(host.CommandAcceptSuggestion)
		c.commands.Unregister(host.CommandDismissSuggestion)
		c.commands = nil
		c.prevType = nil
	}
}

// Suggestion returns the displayed suggestion text, or "".
func (c *Controller) Suggestion() string {
	return c.lastText
}

// HasSuggestion reports whether a suggestion is displayed.
func (c *Controller) HasSuggestion() bool {
	return c.lastText != ""
}

// Anchor returns the position the displayed suggestion will be inserted at.
func (c *Controller) Anchor() (document.Position, bool) {
	return c.anchor, c.hasAnchor
}

// Status returns the state of the most recent request.
func (c *Controller) Status() Status {
	return c.status
}

// Pending reports whether a debounce timer is outstanding.
func (c *Controller) Pending() bool {
	return c.pending
}

// DebounceDelay returns the configured quiet period.
func (c *Controller) DebounceDelay() time.Duration {
	return c.delay
}

// OnDocumentChanged supersedes any outstanding debounce timer and schedules
// a new one. The returned command must be run by the event loop.
func (c *Controller) OnDocumentChanged(ev document.ChangeEvent) tea.Cmd {
	c.generation++
	c.pending = true
	generation := c.generation

	c.logger.Debug("document changed, debouncing",
		zap.Uint64("version", ev.Version),
		zap.Uint64("generation", generation),
	)

	return tea.Tick(c.delay, func(time.Time) tea.Msg {
		return debounceElapsedMsg{generation: generation}
	})
}

// Update handles the controller's own messages and ignores everything else.
func (c *Controller) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case debounceElapsedMsg:
		return c.onDebounceElapsed(msg)
	case completionMsg:
		c.onCompletion(msg)
	}
	return nil
}

// onDebounceElapsed samples the editor at fire time and starts a request.
func (c *Controller) onDebounceElapsed(msg debounceElapsedMsg) tea.Cmd {
	if msg.generation != c.generation || !c.pending {
		return nil
	}
	c.pending = false

	editor, ok := c.host.ActiveEditor()
	if !ok {
		return nil
	}

	anchor := editor.Cursor()
	prefix := editor.TextInRange(document.Range{End: anchor})

	c.inFlight++
	c.status = StatusRequesting

	c.logger.Debug("requesting suggestion",
		zap.Uint64("generation", msg.generation),
		zap.Int("prefixLength", len(prefix)),
	)

	ctx := c.ctx
	completer := c.completer
	generation := msg.generation

	return func() tea.Msg {
		completion, err := completer.Complete(ctx, prefix)
		return completionMsg{
			generation: generation,
			anchor:     anchor,
			completion: completion,
			err:        err,
		}
	}
}

// onCompletion applies a finished request to the suggestion state.
func (c *Controller) onCompletion(msg completionMsg) {
	if c.inFlight > 0 {
		c.inFlight--
	}

	if msg.err != nil {
		c.logger.Warn("autocomplete request failed", zap.Error(msg.err))
		c.status = StatusError
		return
	}

	if msg.generation != c.generation {
		c.logger.Debug("discarding stale suggestion",
			zap.Uint64("expectedGeneration", c.generation),
			zap.Uint64("actualGeneration", msg.generation),
		)
		c.settleStatus()
		return
	}

	if msg.completion == "" || msg.completion == c.lastText {
		c.settleStatus()
		return
	}

	editor, ok := c.host.ActiveEditor()
	if !ok {
		c.settleStatus()
		return
	}

	c.disposeOverlay()
	c.anchor = msg.anchor
	c.hasAnchor = true
	c.overlay = editor.Decorate(c.anchor, msg.completion, c.style)
	c.lastText = msg.completion
	c.status = StatusReady

	c.logger.Debug("showing suggestion",
		zap.Int("line", c.anchor.Line),
		zap.Int("character", c.anchor.Character),
		zap.String("suggestion", msg.completion),
	)
}

// AcceptSuggestion inserts the displayed suggestion at its anchor and clears
// it. It is a no-op when nothing is displayed or no editor is active.
func (c *Controller) AcceptSuggestion() error {
	editor, ok := c.host.ActiveEditor()
	if !ok || !c.hasAnchor || c.lastText == "" {
		return nil
	}

	err := editor.Insert(c.anchor, c.lastText)
	if err != nil {
		c.logger.Warn("failed to insert suggestion", zap.Error(err))
	}

	c.clearSuggestion()
	return err
}

// Dismiss hides the displayed suggestion without inserting it.
func (c *Controller) Dismiss() {
	c.clearSuggestion()
}

// InterceptInsertCharacter replaces the host's type command. A tab with a
// displayed suggestion accepts it; anything else goes to the default insert.
func (c *Controller) InterceptInsertCharacter(args any) error {
	if typed, ok := typeText(args); ok && typed == "\t" && c.lastText != "" {
		return c.AcceptSuggestion()
	}

	if c.commands != nil {
		return c.commands.Execute(host.CommandDefaultType, args)
	}
	if c.prevType != nil {
		return c.prevType(args)
	}
	return nil
}

func (c *Controller) clearSuggestion() {
	c.disposeOverlay()
	c.lastText = ""
	c.anchor = document.Position{}
	c.hasAnchor = false
	c.settleStatus()
}

func (c *Controller) disposeOverlay() {
	if c.overlay != nil {
		c.overlay.Dispose()
		c.overlay = nil
	}
}

// settleStatus picks the status that reflects current state once no new
// suggestion is being applied.
func (c *Controller) settleStatus() {
	switch {
	case c.inFlight > 0:
		c.status = StatusRequesting
	case c.lastText != "":
		c.status = StatusReady
	default:
		c.status = StatusIdle
	}
}

func typeText(args any) (string, bool) {
	switch a := args.(type) {
	case host.TypeArgs:
		return a.Text, true
	case *host.TypeArgs:
		if a == nil {
			return "", false
		}
		return a.Text, true
	}
	return "", false
}
