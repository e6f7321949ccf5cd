package widget

import (
	"math"
	"unicode/utf8"

	"github.com/bethropolis/tidemark/internal/types"
	"github.com/bethropolis/tidemark/internal/utils"
)

// SetViewSize updates the text area dimensions in cells, gutter included.
func (w *Widget) SetViewSize(width, height int) {
	w.mu.Lock()
	w.viewWidth = width
	w.viewHeight = height
	w.mu.Unlock()
}

// ViewSize returns the dimensions last passed to SetViewSize.
func (w *Widget) ViewSize() (width, height int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.viewWidth, w.viewHeight
}

// SetScrollOff sets how many lines of context ScrollIntoView keeps.
func (w *Widget) SetScrollOff(lines int) {
	if lines < 0 {
		lines = 0
	}
	w.mu.Lock()
	w.scrollOff = lines
	w.mu.Unlock()
}

// FirstVisibleScrollOffset returns the scroll position in line-height units.
func (w *Widget) FirstVisibleScrollOffset() float64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.scrollTop
}

// PositionAtScrollOffset returns the position at the start of the line shown
// at offset.
func (w *Widget) PositionAtScrollOffset(offset float64) types.Position {
	w.mu.Lock()
	defer w.mu.Unlock()
	return types.Position{Line: w.clampLineLocked(int(math.Floor(offset)))}
}

// ScrollTo sets the first visible line.
func (w *Widget) ScrollTo(offset float64) {
	w.mu.Lock()
	before := w.scrollTop
	w.scrollTop = float64(w.clampLineLocked(int(math.Floor(offset))))
	scrolled := w.scrollTop != before
	w.mu.Unlock()
	w.notify(false, scrolled)
}

// ScrollIntoView scrolls the minimum amount that shows pos with the
// configured scroll-off around it.
func (w *Widget) ScrollIntoView(pos types.Position) {
	w.mu.Lock()
	before := w.scrollTop
	w.scrollIntoViewLocked(w.buf.Clamp(pos))
	scrolled := w.scrollTop != before
	w.mu.Unlock()
	w.notify(false, scrolled)
}

// VisibleLines returns the first visible line and how many lines fit below it.
func (w *Widget) VisibleLines() (first, count int) {
	w.mu.Lock()
	defer w.mu.Unlock()
	first = int(w.scrollTop)
	rows := 0
	for i := first; i < w.buf.LineCount() && rows < w.viewHeight; i++ {
		rows += w.rowsLocked(i)
		count++
	}
	return first, count
}

// GetCursorScreenCoords returns where the cursor's column falls on the given
// 0-based line, in cells relative to the top-left of the view. Lines above
// the viewport give a negative top.
func (w *Widget) GetCursorScreenCoords(line int) types.ScreenCoords {
	w.mu.Lock()
	defer w.mu.Unlock()

	line = w.clampLineLocked(line)
	text := w.lineLocked(line)
	col := w.sels[0].Head.Col
	if n := utf8.RuneCountInString(text); col > n {
		col = n
	}
	visual := utils.VisualColumn(text, col, w.opts.TabWidth)

	top := int(w.scrollTop)
	rows := 0
	if line >= top {
		for i := top; i < line; i++ {
			rows += w.rowsLocked(i)
		}
	} else {
		rows = line - top
	}

	if textWidth := w.textWidthLocked(); w.opts.LineWrapping && textWidth > 0 {
		rows += visual / textWidth
		visual %= textWidth
	}
	return types.ScreenCoords{Top: float64(rows), Left: float64(w.gutterWidthLocked() + visual)}
}

// RowsForLine is the number of screen rows line (0-based) takes.
func (w *Widget) RowsForLine(line int) int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.rowsLocked(line)
}

func (w *Widget) scrollIntoViewLocked(pos types.Position) {
	if w.viewHeight <= 0 {
		return
	}
	off := w.scrollOff
	if maxOff := (w.viewHeight - 1) / 2; off > maxOff {
		off = maxOff
	}

	top := int(w.scrollTop)
	if pos.Line-off < top {
		top = max(pos.Line-off, 0)
	} else {
		// smallest top that still fits everything down to pos.Line+off
		last := min(pos.Line+off, w.buf.LineCount()-1)
		fit := last
		rows := 0
		for ; fit >= 0; fit-- {
			rows += w.rowsLocked(fit)
			if rows > w.viewHeight {
				break
			}
		}
		fit++
		if fit > pos.Line {
			fit = pos.Line
		}
		if top < fit {
			top = fit
		}
	}
	w.scrollTop = float64(top)
}

func (w *Widget) rowsLocked(line int) int {
	textWidth := w.textWidthLocked()
	if !w.opts.LineWrapping || textWidth <= 0 {
		return 1
	}
	text := w.lineLocked(line)
	width := utils.VisualColumn(text, utf8.RuneCountInString(text), w.opts.TabWidth)
	if width == 0 {
		return 1
	}
	return (width + textWidth - 1) / textWidth
}

func (w *Widget) textWidthLocked() int {
	return w.viewWidth - w.gutterWidthLocked()
}

func (w *Widget) clampLineLocked(line int) int {
	if line < 0 {
		return 0
	}
	if last := w.buf.LineCount() - 1; line > last {
		return last
	}
	return line
}
