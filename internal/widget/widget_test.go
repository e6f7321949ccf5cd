package widget

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bethropolis/tidemark/internal/config"
	"github.com/bethropolis/tidemark/internal/types"
)

// newWidget returns a widget holding value, with deltas collected after the
// initial SetValue.
func newWidget(t *testing.T, value string) (*Widget, *[]types.RawDelta) {
	t.Helper()
	w := New(config.DefaultWidgetOptions())
	w.SetValue(value)
	var deltas []types.RawDelta
	w.OnChange(func(d types.RawDelta) { deltas = append(deltas, d) })
	return w, &deltas
}

func pos(line, col int) types.Position {
	return types.Position{Line: line, Col: col}
}

func TestInsertTextReportsDelta(t *testing.T) {
	w, deltas := newWidget(t, "A\nB")
	w.SetCursor(pos(1, 0))

	require.NoError(t, w.InsertText("X"))

	assert.Equal(t, "A\nXB", w.GetValue())
	assert.Equal(t, pos(1, 1), w.GetCursorPosition())
	require.Len(t, *deltas, 1)
	assert.Equal(t, types.RawDelta{
		Origin:   types.OriginInput,
		From:     pos(1, 0),
		To:       pos(1, 0),
		Inserted: []string{"X"},
		Removed:  []string{""},
	}, (*deltas)[0])
}

func TestReplaceRangeAcrossLines(t *testing.T) {
	w, deltas := newWidget(t, "A\nB\nC")

	require.NoError(t, w.ReplaceRange("", pos(0, 1), pos(2, 0), types.OriginDelete))

	assert.Equal(t, "AC", w.GetValue())
	assert.Equal(t, 1, w.LineCount())
	require.Len(t, *deltas, 1)
	assert.Equal(t, []string{"", "B", ""}, (*deltas)[0].Removed)
	assert.Equal(t, []string{""}, (*deltas)[0].Inserted)
}

func TestSetValueDelta(t *testing.T) {
	w, deltas := newWidget(t, "one\ntwo")
	w.SetCursor(pos(1, 2))

	w.SetValue("three")

	require.Len(t, *deltas, 1)
	d := (*deltas)[0]
	assert.Equal(t, types.OriginSetValue, d.Origin)
	assert.Equal(t, pos(0, 0), d.From)
	assert.Equal(t, pos(1, 3), d.To)
	assert.Equal(t, []string{"one", "two"}, d.Removed)
	assert.Equal(t, pos(0, 0), w.GetCursorPosition())
	assert.Equal(t, "three", w.GetLine(1))
	assert.Equal(t, "", w.GetLine(2))
}

func TestDeleteBackward(t *testing.T) {
	t.Run("joins lines at column 0", func(t *testing.T) {
		w, deltas := newWidget(t, "A\nB")
		w.SetCursor(pos(1, 0))

		require.NoError(t, w.DeleteBackward())

		assert.Equal(t, "AB", w.GetValue())
		assert.Equal(t, pos(0, 1), w.GetCursorPosition())
		require.Len(t, *deltas, 1)
		assert.Equal(t, types.OriginDelete, (*deltas)[0].Origin)
		assert.Equal(t, []string{"", ""}, (*deltas)[0].Removed)
	})

	t.Run("removes a whole grapheme cluster", func(t *testing.T) {
		w, _ := newWidget(t, "ae\u0301")
		w.SetCursor(pos(0, 3))

		require.NoError(t, w.DeleteBackward())

		assert.Equal(t, "a", w.GetValue())
	})

	t.Run("no-op at document start", func(t *testing.T) {
		w, deltas := newWidget(t, "A")
		w.SetCursor(pos(0, 0))

		require.NoError(t, w.DeleteBackward())

		assert.Empty(t, *deltas)
	})

	t.Run("deletes selection", func(t *testing.T) {
		w, _ := newWidget(t, "hello world")
		w.SetSelection(pos(0, 5), pos(0, 11))

		require.NoError(t, w.DeleteBackward())

		assert.Equal(t, "hello", w.GetValue())
	})
}

func TestDeleteForwardJoinsNextLine(t *testing.T) {
	w, _ := newWidget(t, "ab\ncd")
	w.SetCursor(pos(0, 2))

	require.NoError(t, w.DeleteForward())

	assert.Equal(t, "abcd", w.GetValue())
	assert.Equal(t, pos(0, 2), w.GetCursorPosition())
}

func TestUndoRedoOrigins(t *testing.T) {
	w, deltas := newWidget(t, "A\nB")
	w.SetCursor(pos(1, 0))
	require.NoError(t, w.InsertText("X"))

	undone, err := w.Undo()
	require.NoError(t, err)
	assert.True(t, undone)
	assert.Equal(t, "A\nB", w.GetValue())
	assert.Equal(t, pos(1, 0), w.GetCursorPosition())

	redone, err := w.Redo()
	require.NoError(t, err)
	assert.True(t, redone)
	assert.Equal(t, "A\nXB", w.GetValue())
	assert.Equal(t, pos(1, 1), w.GetCursorPosition())

	require.Len(t, *deltas, 3)
	assert.Equal(t, types.OriginUndo, (*deltas)[1].Origin)
	assert.Equal(t, []string{"X"}, (*deltas)[1].Removed)
	assert.Equal(t, types.OriginRedo, (*deltas)[2].Origin)
	assert.Equal(t, []string{"X"}, (*deltas)[2].Inserted)

	redone, err = w.Redo()
	require.NoError(t, err)
	assert.False(t, redone)
}

func TestReplaceSelectionBottomUp(t *testing.T) {
	w, deltas := newWidget(t, "ab\ncd")
	w.SetSelections([]types.Selection{
		{Anchor: pos(0, 0), Head: pos(0, 1)},
		{Anchor: pos(1, 0), Head: pos(1, 1)},
	})

	require.NoError(t, w.ReplaceSelection("X", types.OriginInput))

	assert.Equal(t, "Xb\nXd", w.GetValue())
	require.Len(t, *deltas, 2)
	assert.Equal(t, 1, (*deltas)[0].From.Line)
	assert.Equal(t, 0, (*deltas)[1].From.Line)
}

func TestCutAndPaste(t *testing.T) {
	w, deltas := newWidget(t, "one two")
	w.SetSelection(pos(0, 3), pos(0, 7))

	text, err := w.Cut()
	require.NoError(t, err)
	assert.Equal(t, " two", text)
	assert.Equal(t, "one", w.GetValue())

	w.SetCursor(pos(0, 0))
	require.NoError(t, w.Paste(text))
	assert.Equal(t, " twoone", w.GetValue())

	require.Len(t, *deltas, 2)
	assert.Equal(t, types.OriginCut, (*deltas)[0].Origin)
	assert.Equal(t, types.OriginPaste, (*deltas)[1].Origin)
}

func TestMoveCursorKeepsGoalColumn(t *testing.T) {
	w, _ := newWidget(t, "abcdef\nab\nabcdef")
	w.SetCursor(pos(0, 5))

	w.MoveCursor(1, 0, false)
	assert.Equal(t, pos(1, 2), w.GetCursorPosition())
	w.MoveCursor(1, 0, false)
	assert.Equal(t, pos(2, 5), w.GetCursorPosition())

	w.MoveToLineEnd(false)
	w.MoveCursor(0, 1, false)
	assert.Equal(t, pos(2, 6), w.GetCursorPosition(), "stays at document end")

	w.SetCursor(pos(0, 6))
	w.MoveCursor(0, 1, true)
	assert.Equal(t, []types.Selection{{Anchor: pos(0, 6), Head: pos(1, 0)}}, w.ListSelections())
	assert.Equal(t, "\n", w.SelectedText())
}

func TestMoveToLineStartToggles(t *testing.T) {
	w, _ := newWidget(t, "   indented")
	w.SetCursor(pos(0, 8))

	w.MoveToLineStart(false)
	assert.Equal(t, pos(0, 3), w.GetCursorPosition())
	w.MoveToLineStart(false)
	assert.Equal(t, pos(0, 0), w.GetCursorPosition())
}

func TestScrollIntoViewAndCoords(t *testing.T) {
	lines := make([]string, 20)
	for i := range lines {
		lines[i] = "line"
	}
	w, _ := newWidget(t, strings.Join(lines, "\n"))
	w.SetViewSize(20, 5)
	w.SetScrollOff(1)

	scrolls := 0
	cursorMoves := 0
	w.OnScroll(func() { scrolls++ })
	w.OnCursorActivity(func() { cursorMoves++ })

	w.SetCursor(pos(10, 0))

	assert.Equal(t, 7.0, w.FirstVisibleScrollOffset())
	assert.Equal(t, 1, scrolls)
	assert.Equal(t, 1, cursorMoves)
	assert.Equal(t, pos(7, 0), w.PositionAtScrollOffset(7.4))
	assert.Equal(t, 3, w.GutterWidth())
	assert.Equal(t, types.ScreenCoords{Top: 3, Left: 3}, w.GetCursorScreenCoords(10))

	w.ScrollIntoView(pos(2, 0))
	assert.Equal(t, 1.0, w.FirstVisibleScrollOffset())
	assert.Equal(t, 2, scrolls)

	first, count := w.VisibleLines()
	assert.Equal(t, 1, first)
	assert.Equal(t, 5, count)
}

func TestWrappedLinesTakeRows(t *testing.T) {
	opts := config.DefaultWidgetOptions()
	opts.LineNumbers = false
	w := New(opts)
	w.SetValue(strings.Repeat("x", 25) + "\nshort")
	w.SetViewSize(10, 4)

	assert.Equal(t, 3, w.RowsForLine(0))
	assert.Equal(t, 1, w.RowsForLine(1))

	w.SetCursor(pos(0, 12))
	assert.Equal(t, types.ScreenCoords{Top: 1, Left: 2}, w.GetCursorScreenCoords(0))
}

func TestLoadAndSave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.md")
	require.NoError(t, os.WriteFile(path, []byte("# Title\n\nbody"), 0644))

	w := New(config.DefaultWidgetOptions())
	var deltas []types.RawDelta
	w.OnChange(func(d types.RawDelta) { deltas = append(deltas, d) })

	require.NoError(t, w.Load(path))
	require.Len(t, deltas, 1)
	assert.Equal(t, types.OriginSetValue, deltas[0].Origin)
	assert.Equal(t, []string{"# Title", "", "body"}, deltas[0].Inserted)
	assert.False(t, w.IsModified())

	w.SetCursor(pos(2, 4))
	require.NoError(t, w.InsertText("!"))
	assert.True(t, w.IsModified())

	undone, err := w.Undo()
	require.NoError(t, err)
	assert.True(t, undone)
	undone, err = w.Undo()
	require.NoError(t, err)
	assert.False(t, undone, "load clears history")

	require.NoError(t, w.InsertText("?"))
	require.NoError(t, w.Save(""))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "# Title\n\nbody?", string(data))
	assert.False(t, w.IsModified())
}
