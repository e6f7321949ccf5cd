package history

import (
	"fmt"
	"sync"

	"github.com/bethropolis/tidemark/internal/buffer"
	"github.com/bethropolis/tidemark/internal/logger"
	"github.com/bethropolis/tidemark/internal/types"
)

const DefaultMaxHistory = 100

// EditorInterface defines the methods the history manager needs from the widget.
// Apply must run the replacement through the widget's normal change path so
// that listeners see undo and redo like any other edit.
type EditorInterface interface {
	Apply(start, end types.Position, text string, origin types.Origin) (buffer.Edit, error)
	SetCursor(types.Position)
}

// Manager handles the undo/redo stack.
type Manager struct {
	changes      []Change
	currentIndex int // Index of the *next* change to potentially Redo
	maxHistory   int
	mutex        sync.Mutex
}

// NewManager creates a history manager.
func NewManager(maxHistory int) *Manager {
	if maxHistory <= 0 {
		maxHistory = DefaultMaxHistory
	}
	return &Manager{
		changes:    make([]Change, 0, maxHistory),
		maxHistory: maxHistory,
	}
}

// RecordChange adds a new change, clearing any redo history.
func (m *Manager) RecordChange(change Change) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	// If current index isn't at the end, truncate the redo history
	if m.currentIndex < len(m.changes) {
		m.changes = m.changes[:m.currentIndex]
	}

	m.changes = append(m.changes, change)

	// Limit history size, oldest first
	if len(m.changes) > m.maxHistory {
		m.changes = m.changes[len(m.changes)-m.maxHistory:]
	}

	m.currentIndex = len(m.changes)

	logger.DebugTagf("history", "Recorded change at %v. Index: %d, Count: %d", change.Edit.Start, m.currentIndex, len(m.changes))
}

// Undo reverts the last recorded change through editor.
func (m *Manager) Undo(editor EditorInterface) (bool, error) {
	m.mutex.Lock()
	if m.currentIndex <= 0 {
		m.mutex.Unlock()
		logger.DebugTagf("history", "Nothing to undo.")
		return false, nil
	}
	m.currentIndex--
	index := m.currentIndex
	changeToUndo := m.changes[index]
	m.mutex.Unlock()

	start, end, text := changeToUndo.inverse()
	logger.DebugTagf("history", "Undoing change %d: %v-%v -> %q", index, start, end, text)

	if _, err := editor.Apply(start, end, text, types.OriginUndo); err != nil {
		m.mutex.Lock()
		m.currentIndex++ // Revert index change on error
		m.mutex.Unlock()
		logger.Errorf("History: Error undoing change: %v", err)
		return false, fmt.Errorf("undo failed: %w", err)
	}

	editor.SetCursor(changeToUndo.CursorBefore)
	return true, nil
}

// Redo reapplies the last undone change through editor.
func (m *Manager) Redo(editor EditorInterface) (bool, error) {
	m.mutex.Lock()
	if m.currentIndex >= len(m.changes) {
		m.mutex.Unlock()
		logger.DebugTagf("history", "Nothing to redo. currentIndex=%d, len(changes)=%d", m.currentIndex, len(m.changes))
		return false, nil
	}
	changeToRedo := m.changes[m.currentIndex]
	m.currentIndex++
	m.mutex.Unlock()

	start, end, text := changeToRedo.forward()
	logger.DebugTagf("history", "Redoing change: %v-%v -> %q", start, end, text)

	edit, err := editor.Apply(start, end, text, types.OriginRedo)
	if err != nil {
		m.mutex.Lock()
		m.currentIndex-- // Don't advance index if redo failed
		m.mutex.Unlock()
		logger.Errorf("History: Error redoing change: %v", err)
		return false, fmt.Errorf("redo failed: %w", err)
	}

	// Cursor goes to the end of the reapplied text
	editor.SetCursor(edit.NewEnd)
	return true, nil
}

// Clear resets the history stack. Call this on file load.
func (m *Manager) Clear() {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.changes = m.changes[:0] // Clear slice while keeping allocated capacity
	m.currentIndex = 0
	logger.DebugTagf("history", "Cleared.")
}

// CanUndo returns true if there are changes that can be undone.
func (m *Manager) CanUndo() bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.currentIndex > 0
}

// CanRedo returns true if there are changes that can be redone.
func (m *Manager) CanRedo() bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.currentIndex < len(m.changes)
}
