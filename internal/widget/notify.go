package widget

import (
	"github.com/bethropolis/tidemark/internal/event"
	"github.com/bethropolis/tidemark/internal/types"
)

// OnChange registers fn for every text mutation. Each call adds a listener.
func (w *Widget) OnChange(fn func(types.RawDelta)) {
	w.events.Subscribe(event.TypeTextChanged, func(e event.Event) bool {
		if data, ok := e.Data.(event.TextChangedData); ok {
			fn(data.Delta)
		}
		return false
	})
}

// OnCursorActivity registers fn for cursor and selection moves.
func (w *Widget) OnCursorActivity(fn func()) {
	w.events.Subscribe(event.TypeCursorActivity, func(event.Event) bool {
		fn()
		return false
	})
}

// OnScroll registers fn for scroll offset changes.
func (w *Widget) OnScroll(fn func()) {
	w.events.Subscribe(event.TypeViewportScrolled, func(event.Event) bool {
		fn()
		return false
	})
}
