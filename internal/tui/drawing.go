package tui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/bethropolis/tidemark/internal/config"
	"github.com/bethropolis/tidemark/internal/outline"
	"github.com/bethropolis/tidemark/internal/theme"
	"github.com/bethropolis/tidemark/internal/types"
)

// View is the part of the widget the renderer reads.
type View interface {
	Options() config.WidgetOptions
	ViewSize() (width, height int)
	VisibleLines() (first, count int)
	GetLine(n int) string
	GutterWidth() int
	GetCursorPosition() types.Position
	ListSelections() []types.Selection
	GetCursorScreenCoords(line int) types.ScreenCoords
}

// isPositionWithin reports whether pos lies in [start, end).
func isPositionWithin(pos, start, end types.Position) bool {
	if pos.Line < start.Line || pos.Line > end.Line {
		return false
	}
	if pos.Line == start.Line && pos.Col < start.Col {
		return false
	}
	if pos.Line == end.Line && pos.Col >= end.Col {
		return false
	}
	return true
}

func selected(pos types.Position, sels []types.Selection) bool {
	for _, s := range sels {
		if s.Empty() {
			continue
		}
		start, end := s.Ordered()
		if isPositionWithin(pos, start, end) {
			return true
		}
	}
	return false
}

// DrawView paints the visible lines of v into the top-left of s. Heading
// lines take the "heading.N" style.
func DrawView(s tcell.Screen, v View, th *theme.Theme, headings []outline.Heading) {
	if th == nil {
		th = theme.Dark
	}
	width, height := v.ViewSize()
	if width <= 0 || height <= 0 {
		return
	}
	opts := v.Options()
	gutter := v.GutterWidth()
	textWidth := width - gutter
	if textWidth <= 0 {
		return
	}

	defaultStyle := th.GetStyle("Default")
	selectionStyle := th.GetStyle("Selection")
	lineNumberStyle := th.GetStyle("LineNumber")
	activeNumberStyle := th.GetStyle("LineNumber.active")

	levels := make(map[int]int, len(headings))
	for _, h := range headings {
		levels[h.Line-1] = h.Level
	}

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			s.SetContent(x, y, ' ', nil, defaultStyle)
		}
	}

	cursor := v.GetCursorPosition()
	sels := v.ListSelections()
	first, count := v.VisibleLines()

	row := 0
	for line := first; line < first+count && row < height; line++ {
		lineStyle := defaultStyle
		if level, ok := levels[line]; ok {
			lineStyle = th.GetStyle(fmt.Sprintf("heading.%d", level))
		} else if opts.StyleActiveLine && line == cursor.Line {
			lineStyle = th.GetStyle("ActiveLine")
		}

		if gutter > 0 {
			numStyle := lineNumberStyle
			if line == cursor.Line {
				numStyle = activeNumberStyle
			}
			drawString(s, 0, row, fmt.Sprintf("%*d", gutter-1, line+1), numStyle)
		}

		rows := drawLine(s, v.GetLine(line+1), line, row, gutter, textWidth, height, opts, lineStyle, selectionStyle, sels)
		row += rows
	}
}

// drawLine draws one document line starting at screen row top and returns
// the number of rows it took.
func drawLine(s tcell.Screen, text string, line, top, gutter, textWidth, height int,
	opts config.WidgetOptions, style, selStyle tcell.Style, sels []types.Selection) int {

	fillRow(s, gutter, top, textWidth, style)

	tabWidth := max(opts.TabWidth, 1)
	visual, runeIdx, filled := 0, 0, 0
	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		runes := gr.Runes()
		w := gr.Width()
		isTab := len(runes) == 1 && runes[0] == '\t'
		if isTab {
			w = tabWidth - visual%tabWidth
		}

		cellStyle := style
		if selected(types.Position{Line: line, Col: runeIdx}, sels) {
			cellStyle = selStyle
		}

		rowOff, col := 0, visual
		if opts.LineWrapping {
			rowOff, col = visual/textWidth, visual%textWidth
		}
		y := top + rowOff
		if y >= height || (!opts.LineWrapping && col >= textWidth) {
			break
		}
		for ; filled < rowOff; filled++ {
			fillRow(s, gutter, top+filled+1, textWidth, style)
		}

		x := gutter + col
		if isTab {
			for i := 0; i < w && col+i < textWidth; i++ {
				s.SetContent(x+i, y, ' ', nil, cellStyle)
			}
		} else {
			s.SetContent(x, y, runes[0], runes[1:], cellStyle)
		}

		visual += w
		runeIdx += len(runes)
	}

	if !opts.LineWrapping || visual == 0 {
		return 1
	}
	return (visual + textWidth - 1) / textWidth
}

func fillRow(s tcell.Screen, x, y, n int, style tcell.Style) {
	for i := 0; i < n; i++ {
		s.SetContent(x+i, y, ' ', nil, style)
	}
}

func drawString(s tcell.Screen, x, y int, text string, style tcell.Style) {
	gr := uniseg.NewGraphemes(text)
	for gr.Next() {
		runes := gr.Runes()
		s.SetContent(x, y, runes[0], runes[1:], style)
		x += gr.Width()
	}
}

// DrawCursor places the terminal cursor, hiding it when it is outside the
// view.
func DrawCursor(s tcell.Screen, v View) {
	width, height := v.ViewSize()
	coords := v.GetCursorScreenCoords(v.GetCursorPosition().Line)
	x, y := int(coords.Left), int(coords.Top)
	if y < 0 || y >= height || x < v.GutterWidth() || x >= width {
		s.HideCursor()
		return
	}
	s.ShowCursor(x, y)
}
