// Package mdeditor adapts a text-editing widget for markdown consumers. It
// turns the widget's raw deltas into classified incremental events, converts
// positions to 1-based locations and runs formatting commands.
package mdeditor

import (
	"github.com/bethropolis/tidemark/internal/clipboard"
	"github.com/bethropolis/tidemark/internal/commands"
	"github.com/bethropolis/tidemark/internal/types"
)

// TextEditorAdapter is everything the editor needs from the widget.
// Positions are 0-based; GetLine takes a 1-based line number.
type TextEditorAdapter interface {
	GetValue() string
	SetValue(value string)
	GetLine(n int) string
	LineCount() int

	GetCursorPosition() types.Position
	GetCursorScreenCoords(line int) types.ScreenCoords
	FirstVisibleScrollOffset() float64
	PositionAtScrollOffset(offset float64) types.Position
	ScrollIntoView(pos types.Position)

	ListSelections() []types.Selection
	ReplaceRange(text string, from, to types.Position, origin types.Origin) error
	ReplaceSelection(text string, origin types.Origin) error

	OnChange(fn func(types.RawDelta))
	OnCursorActivity(fn func())
	OnScroll(fn func())
}

// Config controls the editor.
type Config struct {
	// StrictDeltas panics on a malformed delta instead of logging it and
	// delivering an unclassified event.
	StrictDeltas bool
	// Clipboard backs the copy, cut and paste commands. Nil uses an
	// in-process register.
	Clipboard clipboard.Clipboard
}

// Editor is the markdown-facing side of a widget. It holds no document
// state of its own.
type Editor struct {
	w        TextEditorAdapter
	strict   bool
	commands *commands.Registry
}

// New wraps w.
func New(w TextEditorAdapter, cfg Config) *Editor {
	return &Editor{
		w:        w,
		strict:   cfg.StrictDeltas,
		commands: commands.NewRegistry(cfg.Clipboard),
	}
}

// Widget returns the wrapped widget.
func (e *Editor) Widget() TextEditorAdapter {
	return e.w
}

// GetValue returns the whole document.
func (e *Editor) GetValue() string {
	return e.w.GetValue()
}

// SetValue replaces the document. Change handlers see a reset event.
func (e *Editor) SetValue(value string) {
	e.w.SetValue(value)
}

// GetLine returns line n (1-based), or "" when out of range.
func (e *Editor) GetLine(n int) string {
	return e.w.GetLine(n)
}

// GetCursor returns the primary cursor as a 1-based location with its
// screen coordinates.
func (e *Editor) GetCursor() types.Cursor {
	return e.cursor()
}

// GetFirstVisibleLine returns the 1-based number of the top line in view.
func (e *Editor) GetFirstVisibleLine() int {
	pos := e.w.PositionAtScrollOffset(e.w.FirstVisibleScrollOffset())
	return pos.Location().Line
}

// ScrollIntoViewByLine scrolls so that line n (1-based) is visible.
// Numbers below 1 mean the first line.
func (e *Editor) ScrollIntoViewByLine(n int) {
	if n < 1 {
		n = 1
	}
	e.w.ScrollIntoView(types.Location{Line: n, Column: 1}.Position())
}

// ExecCommand runs a named formatting command against the widget.
func (e *Editor) ExecCommand(name string, opts commands.Options) error {
	return e.commands.Exec(name, e.w, opts)
}

// RegisterCommand adds a named command for ExecCommand.
func (e *Editor) RegisterCommand(name string, fn commands.Func) error {
	return e.commands.Register(name, fn)
}

// Commands lists the command names ExecCommand accepts.
func (e *Editor) Commands() []string {
	return e.commands.Names()
}

func (e *Editor) cursor() types.Cursor {
	pos := e.w.GetCursorPosition()
	loc := pos.Location()
	coords := e.w.GetCursorScreenCoords(pos.Line)
	return types.Cursor{
		Line:       loc.Line,
		Column:     loc.Column,
		ScreenTop:  coords.Top,
		ScreenLeft: coords.Left,
	}
}
