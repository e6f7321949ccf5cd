package mdeditor

import (
	"errors"
	"fmt"

	"github.com/bethropolis/tidemark/internal/change"
	"github.com/bethropolis/tidemark/internal/logger"
	"github.com/bethropolis/tidemark/internal/types"
)

// Event names accepted by On.
const (
	EventChange       = "change"
	EventCursorChange = "cursorChange"
	EventScroll       = "scroll"
)

var (
	// ErrUnknownEvent is returned by On for names other than the Event* constants.
	ErrUnknownEvent = errors.New("unknown event")
	// ErrHandlerType is returned by On when the handler does not match the event.
	ErrHandlerType = errors.New("handler type does not match event")
)

// ChangeHandler receives the classified form of every text change.
type ChangeHandler func(ed *Editor, ev change.IncrementalEvent)

// CursorHandler receives the primary cursor after it moves.
type CursorHandler func(ed *Editor, c types.Cursor)

// ScrollHandler is called after the view scrolls. Query GetFirstVisibleLine
// for the new position.
type ScrollHandler func(ed *Editor)

// On registers handler for the named event. Each call adds one widget
// listener; registering the same handler twice runs it twice. Handlers run
// synchronously inside the widget's notification and a panic in one
// propagates to the code that edited the widget.
func (e *Editor) On(name string, handler any) error {
	switch name {
	case EventChange:
		switch h := handler.(type) {
		case ChangeHandler:
			e.OnChange(h)
		case func(*Editor, change.IncrementalEvent):
			e.OnChange(h)
		default:
			return fmt.Errorf("%w: %s wants a ChangeHandler, got %T", ErrHandlerType, name, handler)
		}
	case EventCursorChange:
		switch h := handler.(type) {
		case CursorHandler:
			e.OnCursorChange(h)
		case func(*Editor, types.Cursor):
			e.OnCursorChange(h)
		default:
			return fmt.Errorf("%w: %s wants a CursorHandler, got %T", ErrHandlerType, name, handler)
		}
	case EventScroll:
		switch h := handler.(type) {
		case ScrollHandler:
			e.OnScroll(h)
		case func(*Editor):
			e.OnScroll(h)
		default:
			return fmt.Errorf("%w: %s wants a ScrollHandler, got %T", ErrHandlerType, name, handler)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownEvent, name)
	}
	return nil
}

// OnChange registers h for text changes.
func (e *Editor) OnChange(h ChangeHandler) {
	e.w.OnChange(func(delta types.RawDelta) {
		h(e, e.classify(delta))
	})
}

// OnCursorChange registers h for cursor moves.
func (e *Editor) OnCursorChange(h CursorHandler) {
	e.w.OnCursorActivity(func() {
		h(e, e.cursor())
	})
}

// OnScroll registers h for scroll changes.
func (e *Editor) OnScroll(h ScrollHandler) {
	e.w.OnScroll(func() {
		h(e)
	})
}

// classify validates delta and classifies it against the current document.
// A malformed delta panics in strict mode; otherwise it is logged and comes
// back as an event with the raw origin and no changes.
func (e *Editor) classify(delta types.RawDelta) change.IncrementalEvent {
	if err := change.Validate(delta); err != nil {
		if e.strict {
			panic(fmt.Errorf("classify %s delta %v-%v: %w", delta.Origin, delta.From, delta.To, err))
		}
		logger.WarnTagf("mdeditor", "Dropping malformed %s delta %v-%v: %v", delta.Origin, delta.From, delta.To, err)
		return change.IncrementalEvent{Origin: string(delta.Origin)}
	}

	ev := change.Classify(delta, lineSource{e.w})
	if len(ev.Changes) == 0 {
		logger.DebugTagf("mdeditor", "Unclassified %s delta at %v, consumers must reparse", delta.Origin, delta.From)
	}
	return ev
}

// lineSource reads the post-edit document for the classifier.
type lineSource struct {
	w TextEditorAdapter
}

func (s lineSource) Line(n int) string { return s.w.GetLine(n) }
func (s lineSource) Value() string     { return s.w.GetValue() }
