// internal/event/event.go
package event

import (
	"github.com/bethropolis/tidemark/internal/types"
)

// Type identifies the kind of event.
type Type int

const (
	TypeUnknown Type = iota

	// Widget notifications
	TypeTextChanged      // Fired after every buffer mutation, carries TextChangedData
	TypeCursorActivity   // Fired when the cursor or selection moves
	TypeViewportScrolled // Fired when the scroll offset changes

	// Buffer lifecycle
	TypeBufferLoaded // Fired after a buffer is successfully loaded
	TypeBufferSaved  // Fired after a buffer is successfully saved

	// Application lifecycle
	TypeAppReady
	TypeAppQuit
)

func (t Type) String() string {
	switch t {
	case TypeTextChanged:
		return "text-changed"
	case TypeCursorActivity:
		return "cursor-activity"
	case TypeViewportScrolled:
		return "viewport-scrolled"
	case TypeBufferLoaded:
		return "buffer-loaded"
	case TypeBufferSaved:
		return "buffer-saved"
	case TypeAppReady:
		return "app-ready"
	case TypeAppQuit:
		return "app-quit"
	}
	return "unknown"
}

// Event is the structure passed through the event bus.
type Event struct {
	Type Type
	Data interface{}
}

// TextChangedData carries the raw delta of one mutation.
type TextChangedData struct {
	Delta types.RawDelta
}

// CursorActivityData carries the new cursor position (0-based).
type CursorActivityData struct {
	NewPosition types.Position
}

// ViewportScrolledData carries the new scroll offset in lines.
type ViewportScrolledData struct {
	Offset float64
}

// BufferLoadedData contains info about the loaded buffer.
type BufferLoadedData struct {
	FilePath string
}

// BufferSavedData contains info about the saved buffer.
type BufferSavedData struct {
	FilePath string
}
