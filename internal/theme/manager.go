package theme

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/bethropolis/tidemark/internal/config"
	"github.com/bethropolis/tidemark/internal/logger"
)

// Manager holds the built-in themes plus any loaded from a directory.
// Names are matched case-insensitively.
type Manager struct {
	mu     sync.RWMutex
	themes map[string]*Theme
}

// DefaultDir returns the themes directory under the user config dir, or ""
// when it cannot be determined.
func DefaultDir() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, config.AppName, "themes")
}

// NewManager registers the built-in themes and then every *.toml file in
// dir. A missing dir is not an error.
func NewManager(dir string) (*Manager, error) {
	m := &Manager{themes: make(map[string]*Theme)}
	m.add(Dark)
	m.add(Light)
	if dir == "" {
		return m, nil
	}
	if err := m.LoadDir(dir); err != nil {
		return m, err
	}
	return m, nil
}

func (m *Manager) add(t *Theme) {
	key := strings.ToLower(t.Name)
	if existing, ok := m.themes[key]; ok {
		logger.Warnf("Theme '%s' overrides existing theme '%s'", t.Name, existing.Name)
	}
	m.themes[key] = t
}

// LoadDir loads every *.toml file in dir. Files that fail to parse are
// skipped with a warning.
func (m *Manager) LoadDir(dir string) error {
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		logger.DebugTagf("theme", "Theme directory '%s' does not exist", dir)
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read theme directory '%s': %w", dir, err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	loaded := 0
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(strings.ToLower(e.Name()), ".toml") {
			continue
		}
		path := filepath.Join(dir, e.Name())
		t, err := LoadThemeFromFile(path)
		if err != nil {
			logger.Warnf("Failed to load theme from '%s': %v", path, err)
			continue
		}
		m.add(t)
		loaded++
	}
	logger.Infof("Loaded %d theme(s) from %s", loaded, dir)
	return nil
}

// Get returns the named theme, or Dark with ok=false when it is unknown.
func (m *Manager) Get(name string) (t *Theme, ok bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if t, ok := m.themes[strings.ToLower(name)]; ok {
		return t, true
	}
	return Dark, false
}

// List returns the theme names, sorted.
func (m *Manager) List() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, 0, len(m.themes))
	for _, t := range m.themes {
		names = append(names, t.Name)
	}
	sort.Strings(names)
	return names
}
