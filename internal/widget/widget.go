// Package widget is the text-editing widget the markdown editor wraps. It owns
// the buffer, the selections and the viewport, and reports every mutation as
// a types.RawDelta through its event manager.
package widget

import (
	"fmt"
	"math"
	"sync"

	"github.com/bethropolis/tidemark/internal/buffer"
	"github.com/bethropolis/tidemark/internal/config"
	"github.com/bethropolis/tidemark/internal/event"
	"github.com/bethropolis/tidemark/internal/history"
	"github.com/bethropolis/tidemark/internal/logger"
	"github.com/bethropolis/tidemark/internal/types"
)

// Widget is a single-document text widget. All methods are safe for
// concurrent use; notifications are dispatched after the widget's lock is
// released, so listeners may call back into it.
type Widget struct {
	mu sync.Mutex

	buf     *buffer.SliceBuffer
	events  *event.Manager
	history *history.Manager
	opts    config.WidgetOptions

	sels      []types.Selection // sels[0] is the primary selection; its Head is the cursor
	goalCol   int               // visual column kept across vertical moves, -1 when unset
	scrollTop float64           // first visible line, in line-height units
	viewWidth  int
	viewHeight int
	scrollOff  int
}

// New creates an empty widget with the given options.
func New(opts config.WidgetOptions) *Widget {
	return &Widget{
		buf:       buffer.NewSliceBuffer(),
		events:    event.NewManager(),
		history:   history.NewManager(history.DefaultMaxHistory),
		opts:      opts,
		sels:      []types.Selection{{}},
		goalCol:   -1,
		scrollOff: config.DefaultScrollOff,
	}
}

// Options returns the options the widget was built with.
func (w *Widget) Options() config.WidgetOptions {
	return w.opts
}

// Events exposes the widget's event manager for buffer lifecycle events.
func (w *Widget) Events() *event.Manager {
	return w.events
}

// Load replaces the document with the file at filePath. A missing file gives
// an empty document bound to that path. History is cleared and the change is
// reported with the setValue origin.
func (w *Widget) Load(filePath string) error {
	w.mu.Lock()
	oldEnd := w.buf.End()
	removed := w.linesLocked()
	if err := w.buf.Load(filePath); err != nil {
		w.mu.Unlock()
		return err
	}
	inserted := w.linesLocked()
	w.history.Clear()
	w.sels = []types.Selection{{}}
	w.goalCol = -1
	w.scrollTop = 0
	w.mu.Unlock()

	logger.Infof("Loaded %s (%d lines)", filePath, len(inserted))
	w.events.Dispatch(event.TypeTextChanged, event.TextChangedData{Delta: types.RawDelta{
		Origin:   types.OriginSetValue,
		To:       oldEnd,
		Inserted: inserted,
		Removed:  removed,
	}})
	w.events.Dispatch(event.TypeBufferLoaded, event.BufferLoadedData{FilePath: filePath})
	w.notify(true, true)
	return nil
}

// Save writes the document to filePath, or to the loaded path when empty.
func (w *Widget) Save(filePath string) error {
	w.mu.Lock()
	err := w.buf.Save(filePath)
	path := w.buf.FilePath()
	w.mu.Unlock()
	if err != nil {
		return err
	}
	logger.Infof("Saved %s", path)
	w.events.Dispatch(event.TypeBufferSaved, event.BufferSavedData{FilePath: path})
	return nil
}

// FilePath returns the path the document was loaded from or saved to.
func (w *Widget) FilePath() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.buf.FilePath()
}

// IsModified reports unsaved changes.
func (w *Widget) IsModified() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.buf.IsModified()
}

// GetValue returns the whole document, lines joined with "\n".
func (w *Widget) GetValue() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return string(w.buf.Bytes())
}

// SetValue replaces the whole document. The cursor returns to the start.
func (w *Widget) SetValue(value string) {
	w.mu.Lock()
	end := w.buf.End()
	w.mu.Unlock()
	if _, err := w.Apply(types.Position{}, end, value, types.OriginSetValue); err != nil {
		logger.Errorf("SetValue failed: %v", err)
	}
}

// GetLine returns line n (1-based), or "" when n is out of range.
func (w *Widget) GetLine(n int) string {
	w.mu.Lock()
	defer w.mu.Unlock()
	line, err := w.buf.Line(n - 1)
	if err != nil {
		return ""
	}
	return string(line)
}

// LineCount returns the number of lines; an empty document has one.
func (w *Widget) LineCount() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.buf.LineCount()
}

// Text returns the text between two positions.
func (w *Widget) Text(from, to types.Position) string {
	w.mu.Lock()
	defer w.mu.Unlock()
	text, err := w.buf.Text(from, to)
	if err != nil {
		logger.Warnf("Text %v-%v: %v", from, to, err)
	}
	return text
}

// GutterWidth is the number of cells the line-number gutter takes, or 0
// when line numbers are off or the view is too narrow.
func (w *Widget) GutterWidth() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.gutterWidthLocked()
}

func (w *Widget) gutterWidthLocked() int {
	if !w.opts.LineNumbers {
		return 0
	}
	maxDigits := int(math.Log10(float64(w.buf.LineCount()))) + 1
	gutter := maxDigits + 1
	if w.viewWidth > 0 && gutter >= w.viewWidth {
		return 0
	}
	return gutter
}

func (w *Widget) linesLocked() []string {
	lines := w.buf.Lines()
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = string(l)
	}
	return out
}

// String describes the widget for debug logs.
func (w *Widget) String() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return fmt.Sprintf("widget{%q lines=%d cursor=%v top=%.0f}", w.buf.FilePath(), w.buf.LineCount(), w.sels[0].Head, w.scrollTop)
}
