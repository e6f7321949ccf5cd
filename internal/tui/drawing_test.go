package tui

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bethropolis/tidemark/internal/config"
	"github.com/bethropolis/tidemark/internal/outline"
	"github.com/bethropolis/tidemark/internal/theme"
	"github.com/bethropolis/tidemark/internal/types"
	"github.com/bethropolis/tidemark/internal/widget"
)

func setup(t *testing.T, value string, width, height int) (tcell.SimulationScreen, *widget.Widget) {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	ui, err := NewWithScreen(sim, theme.Dark.GetStyle("Default"))
	require.NoError(t, err)
	t.Cleanup(ui.Close)
	sim.SetSize(width, height)

	w := widget.New(config.DefaultWidgetOptions())
	w.SetValue(value)
	w.SetViewSize(width, height)
	return sim, w
}

func cell(s tcell.Screen, x, y int) (rune, tcell.Style) {
	r, _, style, _ := s.GetContent(x, y)
	return r, style
}

func TestDrawViewWrapsAndNumbers(t *testing.T) {
	sim, w := setup(t, "# Title\nabcdefghijk\nz", 10, 4)
	headings := []outline.Heading{{Level: 1, Line: 1, Title: "Title"}}

	DrawView(sim, w, theme.Dark, headings)

	r, style := cell(sim, 2, 0)
	assert.Equal(t, '#', r)
	assert.Equal(t, theme.Dark.GetStyle("heading.1"), style)

	r, _ = cell(sim, 0, 0)
	assert.Equal(t, '1', r)
	r, _ = cell(sim, 2, 1)
	assert.Equal(t, 'a', r)
	r, _ = cell(sim, 2, 2)
	assert.Equal(t, 'i', r, "second row of the wrapped line")
	r, _ = cell(sim, 0, 2)
	assert.Equal(t, ' ', r, "no number on a continuation row")
	r, _ = cell(sim, 0, 3)
	assert.Equal(t, '3', r)
	r, _ = cell(sim, 2, 3)
	assert.Equal(t, 'z', r)
}

func TestDrawViewSelectionAndCursor(t *testing.T) {
	sim, w := setup(t, "one\ntwo words\nthree", 20, 3)
	w.SetSelection(types.Position{Line: 1, Col: 0}, types.Position{Line: 1, Col: 3})

	DrawView(sim, w, theme.Dark, nil)
	DrawCursor(sim, w)

	sel := theme.Dark.GetStyle("Selection")
	for x := 2; x < 5; x++ {
		_, style := cell(sim, x, 1)
		assert.Equal(t, sel, style, "column %d", x)
	}
	_, style := cell(sim, 5, 1)
	assert.Equal(t, theme.Dark.GetStyle("ActiveLine"), style)
	_, style = cell(sim, 0, 1)
	assert.Equal(t, theme.Dark.GetStyle("LineNumber.active"), style)

	x, y, visible := sim.GetCursor()
	assert.True(t, visible)
	assert.Equal(t, 5, x)
	assert.Equal(t, 1, y)
}

func TestDrawCursorHiddenOffView(t *testing.T) {
	sim, w := setup(t, "a\nb\nc\nd\ne", 10, 2)
	w.ScrollTo(3)
	require.Equal(t, types.Position{}, w.GetCursorPosition())

	DrawCursor(sim, w)
	_, _, visible := sim.GetCursor()
	assert.False(t, visible)
}

func TestDrawViewExpandsTabs(t *testing.T) {
	sim, w := setup(t, "\tx", 12, 1)
	DrawView(sim, w, nil, nil)

	r, _ := cell(sim, 2+config.DefaultTabWidth, 0)
	assert.Equal(t, 'x', r)
}
