package outline

import (
	"context"
	"errors"
	"sync"

	"github.com/bethropolis/tidemark/internal/change"
	"github.com/bethropolis/tidemark/internal/logger"
)

// Source provides the current document text.
type Source interface {
	GetValue() string
}

// Manager runs outline updates off the UI goroutine. Batches that arrive
// while a parse is running are merged and parsed right after it.
type Manager struct {
	outline   *Outline
	src       Source
	appRedraw func() // called after every successful update

	mu        sync.Mutex
	ctx       context.Context
	cancel    context.CancelFunc
	isRunning bool
	pending   []change.IncrementalEvent
	done      chan struct{} // closed when the running task finishes
}

// NewManager creates a manager feeding o from src.
func NewManager(o *Outline, src Source, redraw func()) *Manager {
	ctx, cancel := context.WithCancel(context.Background())
	return &Manager{
		outline:   o,
		src:       src,
		appRedraw: redraw,
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Outline returns the managed outline.
func (m *Manager) Outline() *Outline {
	return m.outline
}

// Update queues a batch of change events and starts a background parse if
// none is running.
func (m *Manager) Update(events []change.IncrementalEvent) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.ctx.Err() != nil {
		return
	}
	m.pending = append(m.pending, events...)
	if m.isRunning {
		logger.DebugTagf("outline", "Parse running, queued %d event(s)", len(events))
		return
	}
	m.isRunning = true
	m.done = make(chan struct{})
	go m.run(m.done)
}

func (m *Manager) run(done chan struct{}) {
	defer close(done)
	for {
		m.mu.Lock()
		if len(m.pending) == 0 || m.ctx.Err() != nil {
			m.isRunning = false
			m.pending = nil
			m.mu.Unlock()
			return
		}
		batch := m.pending
		m.pending = nil
		ctx := m.ctx
		m.mu.Unlock()

		source := []byte(m.src.GetValue())
		if err := m.outline.Update(ctx, source, batch); err != nil {
			if errors.Is(ctx.Err(), context.Canceled) {
				logger.DebugTagf("outline", "Outline update cancelled")
			} else {
				logger.WarnTagf("outline", "Outline update failed: %v", err)
			}
			continue
		}
		if m.appRedraw != nil {
			m.appRedraw()
		}
	}
}

// Wait blocks until the running task, if any, has finished.
func (m *Manager) Wait() {
	m.mu.Lock()
	done := m.done
	m.mu.Unlock()
	if done != nil {
		<-done
	}
}

// Shutdown cancels pending and running work and waits for it to stop.
func (m *Manager) Shutdown() {
	m.mu.Lock()
	m.cancel()
	m.mu.Unlock()
	m.Wait()
	logger.DebugTagf("outline", "Outline manager shut down")
}
