package editor

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Action represents an editor action that can be triggered by key bindings.
type Action int

const (
	// ActionNone represents no action (used when a key doesn't match any binding).
	ActionNone Action = iota

	// Navigation actions
	ActionCharacterForward  // Move cursor one character forward (Right, Ctrl+F)
	ActionCharacterBackward // Move cursor one character backward (Left, Ctrl+B)
	ActionCursorUp          // Move cursor one line up (Up, Ctrl+P)
	ActionCursorDown        // Move cursor one line down (Down, Ctrl+N)
	ActionLineStart         // Move cursor to start of line (Home, Ctrl+A)
	ActionLineEnd           // Move cursor to end of line (End, Ctrl+E)
	ActionPageUp            // Move cursor one screen up (PgUp)
	ActionPageDown          // Move cursor one screen down (PgDown)
	ActionDocumentStart     // Move cursor to start of document (Ctrl+Home)
	ActionDocumentEnd       // Move cursor to end of document (Ctrl+End)

	// Editing actions
	ActionDeleteCharacterBackward // Delete character before cursor (Backspace, Ctrl+H)
	ActionDeleteCharacterForward  // Delete character at cursor (Delete, Ctrl+D)
	ActionNewline                 // Type a newline (Enter)
	ActionTab                     // Type a tab, accepting a displayed suggestion (Tab)

	// Special actions
	ActionDismiss // Dismiss the displayed suggestion (Escape)
	ActionPaste   // Paste from clipboard (Ctrl+V)
	ActionSave    // Save the file (Ctrl+S)
	ActionPalette // Open the command palette (Ctrl+K)
	ActionQuit    // Quit the editor (Ctrl+C, Ctrl+Q)
)

// String returns the string representation of an Action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionCharacterForward:
		return "CharacterForward"
	case ActionCharacterBackward:
		return "CharacterBackward"
	case ActionCursorUp:
		return "CursorUp"
	case ActionCursorDown:
		return "CursorDown"
	case ActionLineStart:
		return "LineStart"
	case ActionLineEnd:
		return "LineEnd"
	case ActionPageUp:
		return "PageUp"
	case ActionPageDown:
		return "PageDown"
	case ActionDocumentStart:
		return "DocumentStart"
	case ActionDocumentEnd:
		return "DocumentEnd"
	case ActionDeleteCharacterBackward:
		return "DeleteCharacterBackward"
	case ActionDeleteCharacterForward:
		return "DeleteCharacterForward"
	case ActionNewline:
		return "Newline"
	case ActionTab:
		return "Tab"
	case ActionDismiss:
		return "Dismiss"
	case ActionPaste:
		return "Paste"
	case ActionSave:
		return "Save"
	case ActionPalette:
		return "Palette"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// KeyBinding maps a set of key strings to an action.
type KeyBinding struct {
	// Keys is the list of key sequences that trigger this binding.
	// Each string should be a valid tea.KeyMsg string representation.
	Keys   []string
	Action Action
}

// KeyMap holds all key bindings for the editor.
type KeyMap struct {
	bindings []KeyBinding
	lookup   map[string]Action
}

// NewKeyMap creates a new KeyMap with the given bindings.
func NewKeyMap(bindings []KeyBinding) *KeyMap {
	km := &KeyMap{
		bindings: bindings,
	}
	km.rebuildLookup()
	return km
}

// rebuildLookup must be called after any modification to bindings.
func (km *KeyMap) rebuildLookup() {
	km.lookup = make(map[string]Action)
	for _, b := range km.bindings {
		for _, key := range b.Keys {
			km.lookup[key] = b.Action
		}
	}
}

// DefaultKeyMap returns the default editor bindings.
func DefaultKeyMap() *KeyMap {
	return NewKeyMap([]KeyBinding{
		// Navigation
		{Keys: []string{"right", "ctrl+f"}, Action: ActionCharacterForward},
		{Keys: []string{"left", "ctrl+b"}, Action: ActionCharacterBackward},
		{Keys: []string{"up", "ctrl+p"}, Action: ActionCursorUp},
		{Keys: []string{"down", "ctrl+n"}, Action: ActionCursorDown},
		{Keys: []string{"home", "ctrl+a"}, Action: ActionLineStart},
		{Keys: []string{"end", "ctrl+e"}, Action: ActionLineEnd},
		{Keys: []string{"pgup"}, Action: ActionPageUp},
		{Keys: []string{"pgdown"}, Action: ActionPageDown},
		{Keys: []string{"ctrl+home"}, Action: ActionDocumentStart},
		{Keys: []string{"ctrl+end"}, Action: ActionDocumentEnd},

		// Editing
		{Keys: []string{"backspace", "ctrl+h"}, Action: ActionDeleteCharacterBackward},
		{Keys: []string{"delete", "ctrl+d"}, Action: ActionDeleteCharacterForward},
		{Keys: []string{"enter"}, Action: ActionNewline},
		{Keys: []string{"tab"}, Action: ActionTab},

		// Special keys
		{Keys: []string{"esc"}, Action: ActionDismiss},
		{Keys: []string{"ctrl+v"}, Action: ActionPaste},
		{Keys: []string{"ctrl+s"}, Action: ActionSave},
		{Keys: []string{"ctrl+k"}, Action: ActionPalette},
		{Keys: []string{"ctrl+c", "ctrl+q"}, Action: ActionQuit},
	})
}

// Lookup finds the action for the given key message.
// Returns ActionNone if no binding matches.
func (km *KeyMap) Lookup(msg tea.KeyMsg) Action {
	if action, ok := km.lookup[msg.String()]; ok {
		return action
	}
	return ActionNone
}

// SetBinding adds or updates a key binding.
// If a binding for the same action already exists, it will be replaced.
func (km *KeyMap) SetBinding(binding KeyBinding) {
	for i, b := range km.bindings {
		if b.Action == binding.Action {
			km.bindings[i] = binding
			km.rebuildLookup()
			return
		}
	}
	km.bindings = append(km.bindings, binding)
	km.rebuildLookup()
}

// Bindings returns a copy of all bindings in the keymap.
func (km *KeyMap) Bindings() []KeyBinding {
	result := make([]KeyBinding, len(km.bindings))
	for i, b := range km.bindings {
		keys := make([]string, len(b.Keys))
		copy(keys, b.Keys)
		result[i] = KeyBinding{Keys: keys, Action: b.Action}
	}
	return result
}
