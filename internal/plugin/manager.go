package plugin

import (
	"fmt"
	"sort"
	"sync"

	"github.com/bethropolis/tidemark/internal/logger"
)

// Manager registers plugins and drives their lifecycle.
type Manager struct {
	mu      sync.RWMutex
	plugins map[string]Plugin
	active  []Plugin // initialized successfully, in init order
}

// NewManager creates an empty manager.
func NewManager() *Manager {
	return &Manager{plugins: make(map[string]Plugin)}
}

// Register adds p. Names must be unique and non-empty.
func (m *Manager) Register(p Plugin) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	name := p.Name()
	if name == "" {
		return fmt.Errorf("plugin registration failed: plugin name cannot be empty")
	}
	if _, exists := m.plugins[name]; exists {
		return fmt.Errorf("plugin registration failed: plugin named '%s' already registered", name)
	}
	m.plugins[name] = p
	logger.DebugTagf("plugin", "Registered plugin '%s'", name)
	return nil
}

// InitializePlugins initializes every registered plugin in name order. A
// plugin that fails stays inactive; the rest still run.
func (m *Manager) InitializePlugins(api API) {
	m.mu.RLock()
	names := make([]string, 0, len(m.plugins))
	for name := range m.plugins {
		names = append(names, name)
	}
	m.mu.RUnlock()
	sort.Strings(names)

	for _, name := range names {
		p, _ := m.GetPlugin(name)
		if err := p.Initialize(api); err != nil {
			logger.Errorf("Plugin '%s' failed to initialize: %v", name, err)
			continue
		}
		m.mu.Lock()
		m.active = append(m.active, p)
		m.mu.Unlock()
		logger.DebugTagf("plugin", "Initialized plugin '%s'", name)
	}
}

// ShutdownPlugins shuts active plugins down in reverse init order.
func (m *Manager) ShutdownPlugins() {
	m.mu.Lock()
	active := m.active
	m.active = nil
	m.mu.Unlock()

	for i := len(active) - 1; i >= 0; i-- {
		if err := active[i].Shutdown(); err != nil {
			logger.Errorf("Plugin '%s' failed to shut down: %v", active[i].Name(), err)
		}
	}
}

// GetPlugin returns the named plugin.
func (m *Manager) GetPlugin(name string) (Plugin, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.plugins[name]
	return p, ok
}
