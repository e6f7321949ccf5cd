package input

// Action is an editor operation decoded from a key event.
type Action int

const (
	ActionUnknown Action = iota
	ActionQuit
	ActionSave

	ActionMoveUp
	ActionMoveDown
	ActionMoveLeft
	ActionMoveRight
	ActionMovePageUp
	ActionMovePageDown
	ActionMoveHome
	ActionMoveEnd
	ActionSelectAll
	ActionClearSelection

	ActionInsertRune
	ActionInsertNewLine
	ActionDeleteCharBackward
	ActionDeleteCharForward
	ActionUndo
	ActionRedo

	// ActionCommand runs the named formatting or clipboard command.
	ActionCommand
)

var actionNames = map[Action]string{
	ActionUnknown:            "unknown",
	ActionQuit:               "quit",
	ActionSave:               "save",
	ActionMoveUp:             "moveUp",
	ActionMoveDown:           "moveDown",
	ActionMoveLeft:           "moveLeft",
	ActionMoveRight:          "moveRight",
	ActionMovePageUp:         "pageUp",
	ActionMovePageDown:       "pageDown",
	ActionMoveHome:           "home",
	ActionMoveEnd:            "end",
	ActionSelectAll:          "selectAll",
	ActionClearSelection:     "clearSelection",
	ActionInsertRune:         "insertRune",
	ActionInsertNewLine:      "newline",
	ActionDeleteCharBackward: "deleteBackward",
	ActionDeleteCharForward:  "deleteForward",
	ActionUndo:               "undo",
	ActionRedo:               "redo",
	ActionCommand:            "command",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "unknown"
}

// ActionEvent is a decoded key press.
type ActionEvent struct {
	Action  Action
	Rune    rune   // ActionInsertRune
	Command string // ActionCommand
	Extend  bool   // Shift held on a movement key
}
