// Package commands maps named markdown formatting commands to text
// mutations on the editing widget.
package commands

import (
	"errors"
	"fmt"
	"sort"

	"github.com/bethropolis/tidemark/internal/clipboard"
	"github.com/bethropolis/tidemark/internal/logger"
	"github.com/bethropolis/tidemark/internal/types"
)

// ErrUnknownCommand is returned by Exec for names nothing registered.
var ErrUnknownCommand = errors.New("unknown command")

// Built-in command names.
const (
	Heading       = "heading"
	Strong        = "strong"
	Emphasis      = "emphasis"
	Strikethrough = "strikethrough"
	InlineCode    = "inlineCode"
	CodeBlock     = "codeBlock"
	Link          = "link"
	Image         = "image"
	Table         = "table"
	ThematicBreak = "thematicBreak"
	Blockquote    = "blockquote"
	Copy          = "copy"
	Cut           = "cut"
	Paste         = "paste"
)

// Target is the part of the widget commands work through.
type Target interface {
	GetLine(n int) string
	LineCount() int
	GetCursorPosition() types.Position
	ListSelections() []types.Selection
	ReplaceRange(text string, from, to types.Position, origin types.Origin) error
	ReplaceSelection(text string, origin types.Origin) error
}

// selector is implemented by targets that can move the selection after a
// command, e.g. to leave the cursor between freshly inserted markers.
type selector interface {
	SetSelection(anchor, head types.Position)
}

// Options carries per-command arguments. Zero values pick defaults.
type Options struct {
	Level    int    // heading level 1-6; 0 cycles
	URL      string // link and image target
	Text     string // link label or image alt text when nothing is selected
	Language string // code block info string
	Rows     int    // table body rows
	Cols     int    // table columns
}

// Func runs one command against t.
type Func func(t Target, opts Options) error

// Registry holds the named commands.
type Registry struct {
	commands  map[string]Func
	clipboard clipboard.Clipboard
}

// NewRegistry creates a registry with every built-in command. cb backs copy,
// cut and paste and the link URL fallback; nil means an internal register.
func NewRegistry(cb clipboard.Clipboard) *Registry {
	if cb == nil {
		cb = clipboard.New(false)
	}
	r := &Registry{
		commands:  make(map[string]Func),
		clipboard: cb,
	}
	r.registerBuiltins()
	return r
}

func (r *Registry) registerBuiltins() {
	builtins := map[string]Func{
		Heading:       heading,
		Strong:        wrapInline("**"),
		Emphasis:      wrapInline("_"),
		Strikethrough: wrapInline("~~"),
		InlineCode:    wrapInline("`"),
		CodeBlock:     codeBlock,
		Link:          r.link(false),
		Image:         r.link(true),
		Table:         table,
		ThematicBreak: thematicBreak,
		Blockquote:    blockquote,
		Copy:          r.copy,
		Cut:           r.cut,
		Paste:         r.paste,
	}
	for name, fn := range builtins {
		if err := r.Register(name, fn); err != nil {
			logger.Warnf("Failed to register '%s' command: %v", name, err)
		}
	}
}

// Register adds a command. Names must be unique and non-empty.
func (r *Registry) Register(name string, fn Func) error {
	if name == "" {
		return fmt.Errorf("command name cannot be empty")
	}
	if _, exists := r.commands[name]; exists {
		return fmt.Errorf("command '%s' already registered", name)
	}
	r.commands[name] = fn
	logger.DebugTagf("commands", "Registered command '%s'", name)
	return nil
}

// Exec runs the named command against t.
func (r *Registry) Exec(name string, t Target, opts Options) error {
	fn, exists := r.commands[name]
	if !exists {
		return fmt.Errorf("%w: %q", ErrUnknownCommand, name)
	}
	logger.DebugTagf("commands", "Executing '%s' with %+v", name, opts)
	if err := fn(t, opts); err != nil {
		return fmt.Errorf("command '%s': %w", name, err)
	}
	return nil
}

// Names lists the registered commands in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.commands))
	for name := range r.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) copy(t Target, _ Options) error {
	text := selectedText(t)
	if text == "" {
		return nil
	}
	return r.clipboard.Write(text)
}

func (r *Registry) cut(t Target, opts Options) error {
	text := selectedText(t)
	if text == "" {
		return nil
	}
	if err := r.clipboard.Write(text); err != nil {
		return err
	}
	return t.ReplaceSelection("", types.OriginCut)
}

func (r *Registry) paste(t Target, _ Options) error {
	text, err := r.clipboard.Read()
	if err != nil {
		return err
	}
	if text == "" {
		return nil
	}
	return t.ReplaceSelection(text, types.OriginPaste)
}
