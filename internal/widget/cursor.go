package widget

import (
	"unicode/utf8"

	"github.com/rivo/uniseg"

	"github.com/bethropolis/tidemark/internal/event"
	"github.com/bethropolis/tidemark/internal/types"
	"github.com/bethropolis/tidemark/internal/utils"
)

// GetCursorPosition returns the primary cursor (0-based).
func (w *Widget) GetCursorPosition() types.Position {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.sels[0].Head
}

// ListSelections returns a copy of the selections, primary first.
func (w *Widget) ListSelections() []types.Selection {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]types.Selection(nil), w.sels...)
}

// SetCursor collapses the selection to pos, clamped to the document.
func (w *Widget) SetCursor(pos types.Position) {
	w.SetSelection(pos, pos)
}

// SetSelection replaces all selections with a single anchor/head pair.
func (w *Widget) SetSelection(anchor, head types.Position) {
	w.SetSelections([]types.Selection{{Anchor: anchor, Head: head}})
}

// SetSelections replaces all selections. The first one becomes primary.
// An empty list is ignored.
func (w *Widget) SetSelections(sels []types.Selection) {
	if len(sels) == 0 {
		return
	}
	w.mu.Lock()
	before := w.sels[0]
	topBefore := w.scrollTop
	clamped := make([]types.Selection, len(sels))
	for i, s := range sels {
		clamped[i] = types.Selection{Anchor: w.buf.Clamp(s.Anchor), Head: w.buf.Clamp(s.Head)}
	}
	w.sels = clamped
	w.goalCol = -1
	w.scrollIntoViewLocked(clamped[0].Head)
	changed := before != clamped[0] || len(sels) > 1
	scrolled := w.scrollTop != topBefore
	w.mu.Unlock()

	w.notify(changed, scrolled)
}

// SelectAll selects the whole document.
func (w *Widget) SelectAll() {
	w.mu.Lock()
	end := w.buf.End()
	w.mu.Unlock()
	w.SetSelection(types.Position{}, end)
}

// MoveCursor moves the primary cursor by deltaLine lines and deltaCol
// graphemes. Horizontal moves wrap across line ends; vertical moves keep the
// visual column. With extend the anchor stays put.
func (w *Widget) MoveCursor(deltaLine, deltaCol int, extend bool) {
	w.moveHead(extend, func(head types.Position) types.Position {
		for ; deltaCol < 0; deltaCol++ {
			head = w.prevPositionLocked(head)
		}
		for ; deltaCol > 0; deltaCol-- {
			head = w.nextPositionLocked(head)
		}
		if deltaLine != 0 {
			head = w.verticalLocked(head, deltaLine)
		}
		return head
	}, deltaLine != 0)
}

// PageMove moves the cursor by whole view heights.
func (w *Widget) PageMove(deltaPages int, extend bool) {
	w.mu.Lock()
	height := w.viewHeight
	w.mu.Unlock()
	if height <= 0 {
		return
	}
	w.MoveCursor(deltaPages*height, 0, extend)
}

// MoveToLineStart moves to the first non-blank character, or to column 0
// when already there.
func (w *Widget) MoveToLineStart(extend bool) {
	w.moveHead(extend, func(head types.Position) types.Position {
		line := w.lineLocked(head.Line)
		firstNonWS := 0
		for _, ch := range line {
			if ch != ' ' && ch != '\t' {
				break
			}
			firstNonWS++
		}
		if head.Col == firstNonWS {
			firstNonWS = 0
		}
		return types.Position{Line: head.Line, Col: firstNonWS}
	}, false)
}

// MoveToLineEnd moves to the end of the current line.
func (w *Widget) MoveToLineEnd(extend bool) {
	w.moveHead(extend, func(head types.Position) types.Position {
		return types.Position{Line: head.Line, Col: utf8.RuneCountInString(w.lineLocked(head.Line))}
	}, false)
}

// moveHead applies move to the primary head under the lock, drops secondary
// selections and notifies listeners.
func (w *Widget) moveHead(extend bool, move func(types.Position) types.Position, vertical bool) {
	w.mu.Lock()
	before := w.sels[0]
	topBefore := w.scrollTop
	if !vertical {
		w.goalCol = -1
	}

	head := w.buf.Clamp(move(before.Head))
	anchor := head
	if extend {
		anchor = before.Anchor
	}
	w.sels = []types.Selection{{Anchor: anchor, Head: head}}
	w.scrollIntoViewLocked(head)

	changed := w.sels[0] != before
	scrolled := w.scrollTop != topBefore
	w.mu.Unlock()

	w.notify(changed, scrolled)
}

// verticalLocked moves pos by delta lines, aiming for the goal column.
func (w *Widget) verticalLocked(pos types.Position, delta int) types.Position {
	tab := w.opts.TabWidth
	if w.goalCol < 0 {
		w.goalCol = utils.VisualColumn(w.lineLocked(pos.Line), pos.Col, tab)
	}
	target := pos.Line + delta
	if target < 0 {
		target = 0
	}
	if last := w.buf.LineCount() - 1; target > last {
		target = last
	}
	return types.Position{Line: target, Col: utils.RuneIndexAtVisualColumn(w.lineLocked(target), w.goalCol, tab)}
}

// prevPositionLocked is the position one grapheme before pos, or the end of
// the previous line at column 0.
func (w *Widget) prevPositionLocked(pos types.Position) types.Position {
	pos = w.buf.Clamp(pos)
	if pos.Col > 0 {
		return types.Position{Line: pos.Line, Col: prevGraphemeCol(w.lineLocked(pos.Line), pos.Col)}
	}
	if pos.Line > 0 {
		return types.Position{Line: pos.Line - 1, Col: utf8.RuneCountInString(w.lineLocked(pos.Line - 1))}
	}
	return pos
}

// nextPositionLocked is the position one grapheme after pos, or the start of
// the next line at the end of a line.
func (w *Widget) nextPositionLocked(pos types.Position) types.Position {
	pos = w.buf.Clamp(pos)
	line := w.lineLocked(pos.Line)
	if pos.Col < utf8.RuneCountInString(line) {
		return types.Position{Line: pos.Line, Col: nextGraphemeCol(line, pos.Col)}
	}
	if pos.Line < w.buf.LineCount()-1 {
		return types.Position{Line: pos.Line + 1}
	}
	return pos
}

func (w *Widget) lineLocked(index int) string {
	line, err := w.buf.Line(index)
	if err != nil {
		return ""
	}
	return string(line)
}

// prevGraphemeCol returns the rune index where the grapheme ending at or
// covering col starts.
func prevGraphemeCol(line string, col int) int {
	start := 0
	gr := uniseg.NewGraphemes(line)
	for gr.Next() {
		end := start + len(gr.Runes())
		if end >= col {
			return start
		}
		start = end
	}
	return start
}

// nextGraphemeCol returns the rune index just past the grapheme at col.
func nextGraphemeCol(line string, col int) int {
	start := 0
	gr := uniseg.NewGraphemes(line)
	for gr.Next() {
		end := start + len(gr.Runes())
		if end > col {
			return end
		}
		start = end
	}
	return start
}

// notify fires cursor-activity and viewport-scrolled as needed.
func (w *Widget) notify(cursorMoved, scrolled bool) {
	if cursorMoved {
		w.events.Dispatch(event.TypeCursorActivity, event.CursorActivityData{NewPosition: w.GetCursorPosition()})
	}
	if scrolled {
		w.events.Dispatch(event.TypeViewportScrolled, event.ViewportScrolledData{Offset: w.FirstVisibleScrollOffset()})
	}
}
