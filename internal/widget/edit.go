package widget

import (
	"fmt"
	"sort"
	"strings"

	"github.com/bethropolis/tidemark/internal/buffer"
	"github.com/bethropolis/tidemark/internal/event"
	"github.com/bethropolis/tidemark/internal/history"
	"github.com/bethropolis/tidemark/internal/logger"
	"github.com/bethropolis/tidemark/internal/types"
)

// ReplaceRange replaces the text between from and to with text and reports
// the mutation under origin.
func (w *Widget) ReplaceRange(text string, from, to types.Position, origin types.Origin) error {
	_, err := w.Apply(from, to, text, origin)
	return err
}

// Apply is the single mutation path. It edits the buffer, maps selections
// through the edit, records history (except for undo and redo) and then fires
// the text-changed notification with the buffer's exact removed and inserted
// fragments. An edit that changes nothing fires nothing, except setValue.
func (w *Widget) Apply(start, end types.Position, text string, origin types.Origin) (buffer.Edit, error) {
	w.mu.Lock()
	cursorBefore := w.sels[0].Head
	topBefore := w.scrollTop

	edit, err := w.buf.Replace(start, end, []byte(text))
	if err != nil {
		w.mu.Unlock()
		return buffer.Edit{}, fmt.Errorf("replace %v-%v: %w", start, end, err)
	}
	if text == "" && edit.Start == edit.OldEnd && origin != types.OriginSetValue {
		w.mu.Unlock()
		return edit, nil
	}

	if origin == types.OriginSetValue {
		w.sels = []types.Selection{{}}
		w.scrollTop = 0
	} else {
		for i, s := range w.sels {
			w.sels[i] = types.Selection{Anchor: adjustPosition(s.Anchor, edit), Head: adjustPosition(s.Head, edit)}
		}
		w.scrollIntoViewLocked(w.sels[0].Head)
	}
	w.goalCol = -1

	if origin != types.OriginUndo && origin != types.OriginRedo {
		w.history.RecordChange(history.Change{Edit: edit, CursorBefore: cursorBefore})
	}

	delta := types.RawDelta{
		Origin:   origin,
		From:     edit.Start,
		To:       edit.OldEnd,
		Inserted: edit.Inserted,
		Removed:  edit.Removed,
	}
	moved := w.sels[0].Head != cursorBefore
	scrolled := w.scrollTop != topBefore
	w.mu.Unlock()

	logger.DebugTagf("widget", "%s %v-%v +%d/-%d lines", origin, delta.From, delta.To, len(delta.Inserted), len(delta.Removed))
	w.events.Dispatch(event.TypeTextChanged, event.TextChangedData{Delta: delta})
	w.notify(moved, scrolled)
	return edit, nil
}

// ReplaceSelection replaces every selection with text, bottom-up so earlier
// ranges keep their positions. Each range is reported as its own change.
func (w *Widget) ReplaceSelection(text string, origin types.Origin) error {
	sels := w.ListSelections()
	sort.Slice(sels, func(i, j int) bool {
		a, _ := sels[i].Ordered()
		b, _ := sels[j].Ordered()
		return b.Before(a)
	})
	for _, s := range sels {
		from, to := s.Ordered()
		if err := w.ReplaceRange(text, from, to, origin); err != nil {
			return err
		}
	}
	return nil
}

// InsertText types text at every selection.
func (w *Widget) InsertText(text string) error {
	if text == "" {
		return nil
	}
	return w.ReplaceSelection(text, types.OriginInput)
}

// InsertNewLine splits the line at the cursor.
func (w *Widget) InsertNewLine() error {
	return w.InsertText("\n")
}

// DeleteBackward deletes the selection, or the grapheme before the cursor.
// At column 0 it joins the line with the previous one.
func (w *Widget) DeleteBackward() error {
	w.mu.Lock()
	sel := w.sels[0]
	start := w.prevPositionLocked(sel.Head)
	w.mu.Unlock()

	if !sel.Empty() {
		return w.ReplaceSelection("", types.OriginDelete)
	}
	if start == sel.Head {
		return nil
	}
	return w.ReplaceRange("", start, sel.Head, types.OriginDelete)
}

// DeleteForward deletes the selection, or the grapheme after the cursor.
func (w *Widget) DeleteForward() error {
	w.mu.Lock()
	sel := w.sels[0]
	end := w.nextPositionLocked(sel.Head)
	w.mu.Unlock()

	if !sel.Empty() {
		return w.ReplaceSelection("", types.OriginDelete)
	}
	if end == sel.Head {
		return nil
	}
	return w.ReplaceRange("", sel.Head, end, types.OriginDelete)
}

// Paste inserts text at every selection under the paste origin.
func (w *Widget) Paste(text string) error {
	if text == "" {
		return nil
	}
	return w.ReplaceSelection(text, types.OriginPaste)
}

// Cut removes the selected text and returns it.
func (w *Widget) Cut() (string, error) {
	text := w.SelectedText()
	if text == "" {
		return "", nil
	}
	return text, w.ReplaceSelection("", types.OriginCut)
}

// Undo reverts the last change. It reports false when there was nothing to undo.
func (w *Widget) Undo() (bool, error) {
	return w.history.Undo(w)
}

// Redo reapplies the last undone change.
func (w *Widget) Redo() (bool, error) {
	return w.history.Redo(w)
}

// SelectedText returns the text of all non-empty selections, joined by
// newlines in document order.
func (w *Widget) SelectedText() string {
	w.mu.Lock()
	defer w.mu.Unlock()

	sels := append([]types.Selection(nil), w.sels...)
	sort.Slice(sels, func(i, j int) bool {
		a, _ := sels[i].Ordered()
		b, _ := sels[j].Ordered()
		return a.Before(b)
	})
	parts := make([]string, 0, len(sels))
	for _, s := range sels {
		if s.Empty() {
			continue
		}
		from, to := s.Ordered()
		text, _ := w.buf.Text(from, to)
		parts = append(parts, text)
	}
	return strings.Join(parts, "\n")
}

// adjustPosition maps pos through edit: positions before the edit stay,
// positions inside the replaced range move to its new end, and positions
// after it shift with the text.
func adjustPosition(pos types.Position, edit buffer.Edit) types.Position {
	if pos.Before(edit.Start) {
		return pos
	}
	if !edit.OldEnd.Before(pos) {
		return edit.NewEnd
	}
	if pos.Line == edit.OldEnd.Line {
		return types.Position{Line: edit.NewEnd.Line, Col: edit.NewEnd.Col + pos.Col - edit.OldEnd.Col}
	}
	return types.Position{Line: pos.Line + edit.NewEnd.Line - edit.OldEnd.Line, Col: pos.Col}
}
