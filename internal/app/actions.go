package app

import (
	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/tidemark/internal/commands"
	"github.com/bethropolis/tidemark/internal/input"
	"github.com/bethropolis/tidemark/internal/logger"
)

// HandleKey decodes and runs one key press. It reports whether the screen
// needs a redraw.
func (a *App) HandleKey(ev *tcell.EventKey) bool {
	ae := a.input.ProcessEvent(ev)
	if ae.Action == input.ActionUnknown {
		return false
	}
	if ae.Action != input.ActionQuit {
		a.quitPending = false
	}
	logger.DebugTagf("app", "Key %s -> %s", ev.Name(), ae.Action)

	if err := a.executeAction(ae); err != nil {
		logger.Warnf("Action %s failed: %v", ae.Action, err)
		a.statusBar.SetTemporaryMessage("Error: %v", err)
	}
	return true
}

func (a *App) executeAction(ae input.ActionEvent) error {
	w := a.widget
	switch ae.Action {
	case input.ActionQuit:
		if w.IsModified() && !a.quitPending {
			a.quitPending = true
			a.statusBar.SetTemporaryMessage("Unsaved changes! Press Ctrl+Q again to quit")
			return nil
		}
		a.requestQuit()

	case input.ActionSave:
		if w.FilePath() == "" {
			a.statusBar.SetTemporaryMessage("No file name; start tidemark with a path to save")
			return nil
		}
		return w.Save("")

	case input.ActionMoveUp:
		w.MoveCursor(-1, 0, ae.Extend)
	case input.ActionMoveDown:
		w.MoveCursor(1, 0, ae.Extend)
	case input.ActionMoveLeft:
		w.MoveCursor(0, -1, ae.Extend)
	case input.ActionMoveRight:
		w.MoveCursor(0, 1, ae.Extend)
	case input.ActionMovePageUp:
		w.PageMove(-1, ae.Extend)
	case input.ActionMovePageDown:
		w.PageMove(1, ae.Extend)
	case input.ActionMoveHome:
		w.MoveToLineStart(ae.Extend)
	case input.ActionMoveEnd:
		w.MoveToLineEnd(ae.Extend)
	case input.ActionSelectAll:
		w.SelectAll()
	case input.ActionClearSelection:
		w.SetCursor(w.GetCursorPosition())

	case input.ActionInsertRune:
		return w.InsertText(string(ae.Rune))
	case input.ActionInsertNewLine:
		return w.InsertNewLine()
	case input.ActionDeleteCharBackward:
		return w.DeleteBackward()
	case input.ActionDeleteCharForward:
		return w.DeleteForward()

	case input.ActionUndo:
		ok, err := w.Undo()
		if err == nil && !ok {
			a.statusBar.SetTemporaryMessage("Nothing to undo")
		}
		return err
	case input.ActionRedo:
		ok, err := w.Redo()
		if err == nil && !ok {
			a.statusBar.SetTemporaryMessage("Nothing to redo")
		}
		return err

	case input.ActionCommand:
		return a.editor.ExecCommand(ae.Command, commands.Options{})
	}
	return nil
}
