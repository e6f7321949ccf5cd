package input

import (
	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/tidemark/internal/commands"
)

// Keymap maps special keys to actions.
type Keymap map[tcell.Key]ActionEvent

// InputProcessor translates tcell key events into ActionEvents.
type InputProcessor struct {
	keymap  Keymap // keys without Ctrl
	ctrlMap Keymap // Ctrl+letter keys
}

// NewInputProcessor creates a processor with the default bindings.
func NewInputProcessor() *InputProcessor {
	p := &InputProcessor{
		keymap:  make(Keymap),
		ctrlMap: make(Keymap),
	}
	p.loadDefaultBindings()
	return p
}

func (p *InputProcessor) loadDefaultBindings() {
	for key, action := range map[tcell.Key]Action{
		tcell.KeyUp:         ActionMoveUp,
		tcell.KeyDown:       ActionMoveDown,
		tcell.KeyLeft:       ActionMoveLeft,
		tcell.KeyRight:      ActionMoveRight,
		tcell.KeyPgUp:       ActionMovePageUp,
		tcell.KeyPgDn:       ActionMovePageDown,
		tcell.KeyHome:       ActionMoveHome,
		tcell.KeyEnd:        ActionMoveEnd,
		tcell.KeyEnter:      ActionInsertNewLine,
		tcell.KeyBackspace:  ActionDeleteCharBackward,
		tcell.KeyBackspace2: ActionDeleteCharBackward,
		tcell.KeyDelete:     ActionDeleteCharForward,
		tcell.KeyEscape:     ActionClearSelection,
	} {
		p.keymap[key] = ActionEvent{Action: action}
	}
	p.keymap[tcell.KeyTab] = ActionEvent{Action: ActionInsertRune, Rune: '\t'}

	for key, action := range map[tcell.Key]Action{
		tcell.KeyCtrlQ: ActionQuit,
		tcell.KeyCtrlS: ActionSave,
		tcell.KeyCtrlZ: ActionUndo,
		tcell.KeyCtrlY: ActionRedo,
		tcell.KeyCtrlA: ActionSelectAll,
	} {
		p.ctrlMap[key] = ActionEvent{Action: action}
	}
	for key, name := range map[tcell.Key]string{
		tcell.KeyCtrlB: commands.Strong,
		tcell.KeyCtrlE: commands.Emphasis,
		tcell.KeyCtrlK: commands.Link,
		tcell.KeyCtrlT: commands.Heading,
		tcell.KeyCtrlG: commands.InlineCode,
		tcell.KeyCtrlC: commands.Copy,
		tcell.KeyCtrlX: commands.Cut,
		tcell.KeyCtrlV: commands.Paste,
	} {
		p.ctrlMap[key] = ActionEvent{Action: ActionCommand, Command: name}
	}
}

// BindCommand binds Ctrl+key to a named command, replacing any binding.
func (p *InputProcessor) BindCommand(key tcell.Key, name string) {
	p.ctrlMap[key] = ActionEvent{Action: ActionCommand, Command: name}
}

// ProcessEvent decodes ev. Shift on a movement key sets Extend.
func (p *InputProcessor) ProcessEvent(ev *tcell.EventKey) ActionEvent {
	key := ev.Key()
	mod := ev.Modifiers()

	// Ctrl+letter arrives as its own key code; the modifier may or may not
	// be set depending on the terminal.
	if key >= tcell.KeyCtrlA && key <= tcell.KeyCtrlZ {
		if ae, ok := p.ctrlMap[key]; ok {
			return ae
		}
	}

	if ae, ok := p.keymap[key]; ok && mod&(tcell.ModCtrl|tcell.ModAlt) == 0 {
		ae.Extend = mod&tcell.ModShift != 0 && isMovement(ae.Action)
		return ae
	}

	if key == tcell.KeyRune && mod&(tcell.ModCtrl|tcell.ModAlt) == 0 {
		return ActionEvent{Action: ActionInsertRune, Rune: ev.Rune()}
	}
	return ActionEvent{Action: ActionUnknown}
}

func isMovement(a Action) bool {
	return a >= ActionMoveUp && a <= ActionMoveEnd
}
