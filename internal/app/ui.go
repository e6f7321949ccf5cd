package app

import (
	"github.com/bethropolis/tidemark/internal/tui"
)

// drawEditor repaints the text area and the status bar.
func (a *App) drawEditor() {
	width, height := a.tuiManager.Size()
	barHeight := a.cfg.Editor.StatusBarHeight
	a.widget.SetViewSize(width, height-barHeight)
	a.updateStatusBarContent()

	screen := a.tuiManager.Screen()
	a.tuiManager.Clear()
	tui.DrawView(screen, a.widget, a.activeTheme, a.outline.Outline().Headings())
	if height > 0 {
		a.statusBar.Draw(screen, height-1, width)
	}
	tui.DrawCursor(screen, a.widget)
	a.tuiManager.Show()
}

func (a *App) updateStatusBarContent() {
	a.statusBar.SetFileInfo(a.widget.FilePath(), a.widget.IsModified())
	cursor := a.editor.GetCursor()
	a.statusBar.SetCursor(cursor)
	if h, ok := a.outline.Outline().HeadingAt(cursor.Line); ok {
		a.statusBar.SetSection(h.Title)
	} else {
		a.statusBar.SetSection("")
	}
}
