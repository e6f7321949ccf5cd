// Package autosave saves the document once edits have been quiet for the
// configured interval.
package autosave

import (
	"fmt"
	"sync"
	"time"

	"github.com/bethropolis/tidemark/internal/change"
	"github.com/bethropolis/tidemark/internal/logger"
	"github.com/bethropolis/tidemark/internal/mdeditor"
	"github.com/bethropolis/tidemark/internal/plugin"
)

var _ plugin.Plugin = (*AutoSave)(nil)

// AutoSave is the plugin.
type AutoSave struct {
	api plugin.API

	mu       sync.Mutex
	interval time.Duration // 0 when disabled
	saver    *mdeditor.Debounced
}

// New creates the plugin.
func New() *AutoSave {
	return &AutoSave{}
}

// Name implements plugin.Plugin.
func (p *AutoSave) Name() string {
	return "autosave"
}

// Initialize reads editor.autosave_interval and, when set, starts saving
// after every quiet period.
func (p *AutoSave) Initialize(api plugin.API) error {
	p.api = api
	raw := api.Config().Editor.AutosaveInterval
	if raw == "" {
		logger.DebugTagf("autosave", "Autosave disabled")
		return nil
	}
	interval, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid autosave interval '%s': %w", raw, err)
	}
	if interval <= 0 {
		return fmt.Errorf("autosave interval must be positive, got '%s'", raw)
	}

	p.mu.Lock()
	p.interval = interval
	p.saver = mdeditor.Debounce(interval, func(_ *mdeditor.Editor, events []change.IncrementalEvent) {
		p.saveIfModified(len(events))
	})
	api.Editor().OnChange(p.saver.Handle)
	p.mu.Unlock()

	logger.Infof("Autosave enabled every %v of inactivity", interval)
	return nil
}

// Shutdown drops any pending save.
func (p *AutoSave) Shutdown() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.saver != nil {
		p.saver.Stop()
	}
	return nil
}

// Interval is the quiet time before a save, 0 when disabled.
func (p *AutoSave) Interval() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.interval
}

func (p *AutoSave) saveIfModified(changes int) {
	if !p.api.IsModified() {
		return
	}
	path := p.api.FilePath()
	if path == "" {
		logger.DebugTagf("autosave", "Document has no file name, skipping")
		return
	}
	if err := p.api.Save(); err != nil {
		logger.Errorf("Autosave of '%s' failed: %v", path, err)
		p.api.SetStatusMessage("Autosave failed: %v", err)
		return
	}
	logger.DebugTagf("autosave", "Saved '%s' after %d change(s)", path, changes)
}
