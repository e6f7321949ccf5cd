package app

import (
	"github.com/bethropolis/tidemark/internal/change"
	"github.com/bethropolis/tidemark/internal/event"
	"github.com/bethropolis/tidemark/internal/logger"
	"github.com/bethropolis/tidemark/internal/mdeditor"
	"github.com/bethropolis/tidemark/internal/types"
)

// subscribe wires editor and widget notifications to the outline and the
// status bar.
func (a *App) subscribe() {
	a.editor.OnChange(a.outlineFeed.Handle)
	a.editor.OnChange(a.handleChangeForStatus)
	a.editor.OnCursorChange(a.handleCursorForStatus)
	a.editor.OnScroll(func(*mdeditor.Editor) { a.requestRedraw() })

	a.widget.Events().Subscribe(event.TypeBufferSaved, a.handleBufferSaved)
	a.widget.Events().Subscribe(event.TypeBufferLoaded, a.handleBufferLoaded)
}

func (a *App) handleChangeForStatus(_ *mdeditor.Editor, ev change.IncrementalEvent) {
	a.statusBar.SetLastChange(ev.Summary())
	a.requestRedraw()
}

func (a *App) handleCursorForStatus(_ *mdeditor.Editor, c types.Cursor) {
	a.statusBar.SetCursor(c)
	a.requestRedraw()
}

func (a *App) handleBufferSaved(e event.Event) bool {
	if data, ok := e.Data.(event.BufferSavedData); ok {
		a.statusBar.SetTemporaryMessage("Saved %s", data.FilePath)
	}
	return false
}

func (a *App) handleBufferLoaded(e event.Event) bool {
	if data, ok := e.Data.(event.BufferLoadedData); ok {
		logger.DebugTagf("app", "Buffer loaded: %s", data.FilePath)
		a.statusBar.SetTemporaryMessage("Opened %s (%d lines)", data.FilePath, a.widget.LineCount())
	}
	return false
}
