package mdeditor

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bethropolis/tidemark/internal/change"
	"github.com/bethropolis/tidemark/internal/commands"
	"github.com/bethropolis/tidemark/internal/config"
	"github.com/bethropolis/tidemark/internal/types"
	"github.com/bethropolis/tidemark/internal/widget"
)

func pos(line, col int) types.Position {
	return types.Position{Line: line, Col: col}
}

// newEditor wraps a widget holding value and collects every change event.
func newEditor(t *testing.T, value string) (*Editor, *widget.Widget, *[]change.IncrementalEvent) {
	t.Helper()
	w := widget.New(config.DefaultWidgetOptions())
	w.SetValue(value)
	ed := New(w, Config{})
	var events []change.IncrementalEvent
	require.NoError(t, ed.On(EventChange, func(_ *Editor, ev change.IncrementalEvent) {
		events = append(events, ev)
	}))
	return ed, w, &events
}

func TestMergeDeleteRoundTrip(t *testing.T) {
	ed, w, events := newEditor(t, "A\nB\nC")

	require.NoError(t, w.ReplaceRange("", pos(0, 1), pos(2, 0), types.OriginDelete))

	assert.Equal(t, "AC", ed.GetValue())
	require.Len(t, *events, 1)
	assert.Equal(t, change.IncrementalEvent{
		Origin: "remove",
		Changes: []change.ClassifiedChange{
			{Action: change.ActionReplace, Line: 1, After: "AC"},
			{Action: change.ActionRemove, Line: 2},
		},
	}, (*events)[0])
}

func TestTypingIsInsert(t *testing.T) {
	_, w, events := newEditor(t, "A\nB")
	w.SetCursor(pos(1, 0))

	require.NoError(t, w.InsertText("X"))

	require.Len(t, *events, 1)
	assert.Equal(t, change.IncrementalEvent{
		Origin:  "insert",
		Changes: []change.ClassifiedChange{{Action: change.ActionReplace, Line: 2, After: "XB"}},
	}, (*events)[0])
}

func TestDropPassesThrough(t *testing.T) {
	_, w, events := newEditor(t, "")

	require.NoError(t, w.ReplaceRange("dragged", pos(0, 0), pos(0, 0), types.OriginDrop))

	require.Len(t, *events, 1)
	assert.Equal(t, "drop", (*events)[0].Origin)
	assert.Empty(t, (*events)[0].Changes)
	assert.True(t, (*events)[0].NeedsFullReparse())
}

func TestSetValueIsReset(t *testing.T) {
	ed, _, events := newEditor(t, "old\ntext")

	ed.SetValue("x\ny")
	ed.SetValue("x\ny")

	require.Len(t, *events, 2)
	want := change.IncrementalEvent{
		Origin:  "reset",
		Changes: []change.ClassifiedChange{{Action: change.ActionReset, After: "x\ny"}},
	}
	assert.Equal(t, want, (*events)[0])
	assert.Equal(t, want, (*events)[1])
}

func TestUndoRedoThroughEditor(t *testing.T) {
	_, w, events := newEditor(t, "ab")
	w.SetCursor(pos(0, 1))
	require.NoError(t, w.InsertText("\n"))

	_, err := w.Undo()
	require.NoError(t, err)
	_, err = w.Redo()
	require.NoError(t, err)

	require.Len(t, *events, 3)
	assert.Equal(t, "insert", (*events)[0].Origin)
	assert.Equal(t, []change.ClassifiedChange{
		{Action: change.ActionReplace, Line: 1, After: "a"},
	}, (*events)[0].Changes)
	assert.Equal(t, "undo", (*events)[1].Origin, "undoing an insert only removes text")
	assert.Empty(t, (*events)[1].Changes)
	assert.Equal(t, "redo", (*events)[2].Origin)
	assert.Empty(t, (*events)[2].Changes)
}

func TestHandlersAreNotDeduplicated(t *testing.T) {
	w := widget.New(config.DefaultWidgetOptions())
	ed := New(w, Config{})

	var seen []string
	handler := func(_ *Editor, ev change.IncrementalEvent) {
		seen = append(seen, ev.Changes[0].After)
		ev.Changes[0].After = "mutated"
	}
	require.NoError(t, ed.On(EventChange, handler))
	require.NoError(t, ed.On(EventChange, ChangeHandler(handler)))

	require.NoError(t, w.InsertText("hi"))

	assert.Equal(t, []string{"hi", "hi"}, seen, "each listener gets its own payload")
}

func TestHandlerReceivesEditor(t *testing.T) {
	w := widget.New(config.DefaultWidgetOptions())
	ed := New(w, Config{})

	var got *Editor
	ed.OnChange(func(e *Editor, _ change.IncrementalEvent) { got = e })
	require.NoError(t, w.InsertText("x"))

	assert.Same(t, ed, got)
}

func TestHandlerPanicPropagates(t *testing.T) {
	w := widget.New(config.DefaultWidgetOptions())
	ed := New(w, Config{})
	ed.OnChange(func(*Editor, change.IncrementalEvent) { panic("boom") })

	assert.PanicsWithValue(t, "boom", func() { _ = w.InsertText("x") })
	assert.Equal(t, "x", w.GetValue(), "the edit itself went through")
}

func TestOnRejectsBadRegistrations(t *testing.T) {
	ed := New(widget.New(config.DefaultWidgetOptions()), Config{})

	assert.ErrorIs(t, ed.On("resize", func(*Editor) {}), ErrUnknownEvent)
	assert.ErrorIs(t, ed.On(EventChange, func(*Editor) {}), ErrHandlerType)
	assert.ErrorIs(t, ed.On(EventScroll, func(*Editor, types.Cursor) {}), ErrHandlerType)
	assert.NoError(t, ed.On(EventScroll, ScrollHandler(func(*Editor) {})))
}

func TestCursorChangeIsOneBased(t *testing.T) {
	w := widget.New(config.DefaultWidgetOptions())
	w.SetValue("ab\ncd")
	w.SetViewSize(20, 5)
	ed := New(w, Config{})

	var cursors []types.Cursor
	require.NoError(t, ed.On(EventCursorChange, func(_ *Editor, c types.Cursor) {
		cursors = append(cursors, c)
	}))

	w.SetCursor(pos(1, 1))

	require.Len(t, cursors, 1)
	assert.Equal(t, types.Cursor{Line: 2, Column: 2, ScreenTop: 1, ScreenLeft: 3}, cursors[0])
	assert.Equal(t, cursors[0], ed.GetCursor())
}

func TestScrollByLine(t *testing.T) {
	lines := make([]string, 20)
	for i := range lines {
		lines[i] = "line"
	}
	w := widget.New(config.DefaultWidgetOptions())
	w.SetValue(strings.Join(lines, "\n"))
	w.SetViewSize(20, 5)
	ed := New(w, Config{})

	scrolls := 0
	ed.OnScroll(func(*Editor) { scrolls++ })

	assert.Equal(t, 1, ed.GetFirstVisibleLine())

	ed.ScrollIntoViewByLine(15)
	assert.Equal(t, 1, scrolls)
	assert.Equal(t, 13, ed.GetFirstVisibleLine())

	ed.ScrollIntoViewByLine(0)
	assert.Equal(t, 2, scrolls)
	assert.Equal(t, 1, ed.GetFirstVisibleLine())
}

func TestExecCommand(t *testing.T) {
	ed, w, events := newEditor(t, "Title")

	require.NoError(t, ed.ExecCommand(commands.Heading, commands.Options{Level: 2}))
	assert.Equal(t, "## Title", ed.GetLine(1))
	require.Len(t, *events, 1)
	assert.Equal(t, "insert", (*events)[0].Origin)

	w.SelectAll()
	require.NoError(t, ed.ExecCommand(commands.Strong, commands.Options{}))
	assert.Equal(t, "**## Title**", ed.GetValue())

	err := ed.ExecCommand("bold", commands.Options{})
	assert.ErrorIs(t, err, commands.ErrUnknownCommand)
	assert.Contains(t, ed.Commands(), commands.Table)
}

// fakeWidget delivers hand-built deltas, including ones a real widget never
// produces.
type fakeWidget struct {
	*widget.Widget
	changeFns []func(types.RawDelta)
}

func (f *fakeWidget) OnChange(fn func(types.RawDelta)) {
	f.changeFns = append(f.changeFns, fn)
}

func (f *fakeWidget) emit(d types.RawDelta) {
	for _, fn := range f.changeFns {
		fn(d)
	}
}

func newFake() *fakeWidget {
	return &fakeWidget{Widget: widget.New(config.DefaultWidgetOptions())}
}

var malformed = types.RawDelta{
	Origin:   types.OriginInput,
	From:     pos(0, 0),
	To:       pos(2, 0),
	Inserted: []string{"x"},
	Removed:  []string{""},
}

func TestMalformedDeltaDegrades(t *testing.T) {
	f := newFake()
	ed := New(f, Config{})
	var got []change.IncrementalEvent
	ed.OnChange(func(_ *Editor, ev change.IncrementalEvent) { got = append(got, ev) })

	f.emit(malformed)

	require.Len(t, got, 1)
	assert.Equal(t, change.IncrementalEvent{Origin: "input"}, got[0])
}

func TestMalformedDeltaPanicsWhenStrict(t *testing.T) {
	f := newFake()
	ed := New(f, Config{StrictDeltas: true})
	ed.OnChange(func(*Editor, change.IncrementalEvent) {
		t.Fatal("handler must not run")
	})

	r := recovered(func() { f.emit(malformed) })

	err, ok := r.(error)
	require.True(t, ok, "panic value is an error")
	assert.ErrorIs(t, err, change.ErrMalformedDelta)
}

func recovered(fn func()) (r any) {
	defer func() { r = recover() }()
	fn()
	return nil
}
