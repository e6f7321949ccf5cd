// Package history provides undo/redo functionality via a change history stack.
package history

import (
	"strings"

	"github.com/bethropolis/tidemark/internal/buffer"
	"github.com/bethropolis/tidemark/internal/types"
)

// Change represents a single, reversible text operation.
type Change struct {
	Edit         buffer.Edit    // What the buffer reported for the original mutation
	CursorBefore types.Position // Cursor position *before* this change was applied
}

// inverse returns the range and text that undo c.
func (c Change) inverse() (start, end types.Position, text string) {
	return c.Edit.Start, c.Edit.NewEnd, strings.Join(c.Edit.Removed, "\n")
}

// forward returns the range and text that reapply c.
func (c Change) forward() (start, end types.Position, text string) {
	return c.Edit.Start, c.Edit.OldEnd, strings.Join(c.Edit.Inserted, "\n")
}
