package mdeditor

import (
	"sync"
	"time"

	"github.com/bethropolis/tidemark/internal/change"
	"github.com/bethropolis/tidemark/internal/utils"
)

// Debounced collects change events and hands them to a consumer in batches
// once no event has arrived for the wait period. Register Handle as a
// ChangeHandler; the editor itself never debounces.
type Debounced struct {
	wait time.Duration
	fn   func(*Editor, []change.IncrementalEvent)

	mu      sync.Mutex
	ed      *Editor
	pending []change.IncrementalEvent
	timer   utils.Debouncer
}

// Debounce returns a batcher that calls fn with every event received since
// its previous run, in arrival order. fn runs on a timer goroutine.
func Debounce(wait time.Duration, fn func(*Editor, []change.IncrementalEvent)) *Debounced {
	return &Debounced{wait: wait, fn: fn}
}

// Handle queues ev and restarts the quiet period.
func (d *Debounced) Handle(ed *Editor, ev change.IncrementalEvent) {
	d.mu.Lock()
	d.ed = ed
	d.pending = append(d.pending, ev)
	d.mu.Unlock()
	d.timer.Debounce(d.wait, d.Flush)
}

// Flush delivers the queued events now, if there are any.
func (d *Debounced) Flush() {
	d.timer.Stop()
	d.mu.Lock()
	batch, ed := d.pending, d.ed
	d.pending = nil
	d.mu.Unlock()
	if len(batch) > 0 {
		d.fn(ed, batch)
	}
}

// Stop cancels the pending delivery and drops the queued events.
func (d *Debounced) Stop() {
	d.timer.Stop()
	d.mu.Lock()
	d.pending = nil
	d.mu.Unlock()
}
