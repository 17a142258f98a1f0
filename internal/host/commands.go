package host

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

var (
	// ErrUnknownCommand is returned when executing a name with no handler.
	ErrUnknownCommand = errors.New("unknown command")
	// ErrDuplicateCommand is returned when registering a name twice.
	ErrDuplicateCommand = errors.New("command already registered")
)

// TypeArgs is the argument passed to CommandType and CommandDefaultType.
type TypeArgs struct {
	Text string
}

// CommandFunc handles a command invocation. args is command specific and
// may be nil.
type CommandFunc func(args any) error

// Commands is a registry of named, invocable commands.
type Commands struct {
	mu       sync.RWMutex
	handlers map[string]CommandFunc
}

// NewCommands creates an empty registry.
func NewCommands() *Commands {
	return &Commands{
		handlers: make(map[string]CommandFunc),
	}
}

// Register adds a new command. It fails if name is already taken.
func (c *Commands) Register(name string, fn CommandFunc) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.handlers[name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateCommand, name)
	}
	c.handlers[name] = fn
	return nil
}

// Override replaces an existing command and returns the previous handler.
// The name must already be registered.
func (c *Commands) Override(name string, fn CommandFunc) (CommandFunc, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	prev, exists := c.handlers[name]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}
	c.handlers[name] = fn
	return prev, nil
}

// Unregister removes a command. Unknown names are ignored.
func (c *Commands) Unregister(name string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.handlers, name)
}

// Execute runs the named command.
func (c *Commands) Execute(name string, args any) error {
	c.mu.RLock()
	fn, exists := c.handlers[name]
	c.mu.RUnlock()

	if !exists {
		return fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}
	return fn(args)
}

// Has reports whether name is registered.
func (c *Commands) Has(name string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, exists := c.handlers[name]
	return exists
}

// Names returns all registered command names, sorted.
func (c *Commands) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, 0, len(c.handlers))
	for name := range c.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
