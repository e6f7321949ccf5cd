// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"

	"github.com/bethropolis/tidemark/internal/logger"
)

// Config holds the application's combined configuration.
type Config struct {
	Logger logger.Config   `toml:"logger"`
	Editor EditorConfig    `toml:"editor"`
	Widget WidgetOverrides `toml:"widget"`
}

// EditorConfig holds editor-specific settings.
type EditorConfig struct {
	ScrollOff        int    `toml:"scroll_off"`
	SystemClipboard  bool   `toml:"system_clipboard"`
	StrictDeltas     bool   `toml:"strict_deltas"` // panic on malformed deltas instead of degrading
	TraceFile        string `toml:"trace_file"`    // record raw deltas as JSON lines when set
	StatusBarHeight  int    `toml:"status_bar_height"`
	AutosaveInterval string `toml:"autosave_interval"` // e.g. "30s"; save once quiet that long, "" disables
}

// ErrUnknownKeys is wrapped when the config file holds keys nothing reads.
var ErrUnknownKeys = errors.New("unrecognized config keys")

var (
	loadedConfig *Config
	loadOnce     sync.Once
	loadErr      error
)

// NewDefaultConfig creates a Config struct with default values.
func NewDefaultConfig() *Config {
	return &Config{
		Logger: logger.NewConfig(),
		Editor: EditorConfig{
			ScrollOff:       DefaultScrollOff,
			SystemClipboard: SystemClipboard,
			StatusBarHeight: StatusBarHeight,
		},
	}
}

// WidgetOptions resolves the widget section against the defaults.
func (c *Config) WidgetOptions() WidgetOptions {
	return DefaultWidgetOptions().Merge(c.Widget)
}

// DefaultPath returns the config file location under the user config dir,
// or "" when it cannot be determined.
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(configDir, AppName, DefaultConfigFileName)
}

// loadFromFile decodes filePath into a fresh Config.
// A missing file is not an error and yields (nil, nil).
func loadFromFile(filePath string) (*Config, toml.MetaData, error) {
	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return nil, toml.MetaData{}, nil
	} else if err != nil {
		return nil, toml.MetaData{}, fmt.Errorf("error checking config file '%s': %w", filePath, err)
	}

	cfg := &Config{}
	metadata, err := toml.DecodeFile(filePath, cfg)
	if err != nil {
		return nil, metadata, fmt.Errorf("failed to parse config file '%s': %w", filePath, err)
	}
	return cfg, metadata, nil
}

// Load builds a configuration from defaults, the TOML file at filePath
// (DefaultPath when empty) and flag overrides, then validates it.
func Load(filePath string, flags *Flags) (*Config, error) {
	cfg := NewDefaultConfig()

	effectivePath := filePath
	if effectivePath == "" {
		effectivePath = DefaultPath()
	}

	var fileErr error
	if effectivePath != "" {
		fileCfg, metadata, err := loadFromFile(effectivePath)
		if err != nil {
			fileErr = err
		} else if fileCfg != nil {
			cfg.mergeFile(fileCfg, metadata)
			if undecoded := metadata.Undecoded(); len(undecoded) > 0 {
				// Logger is not up yet; keep the keys for the caller to report.
				fileErr = fmt.Errorf("config file '%s': unrecognized keys %v: %w", effectivePath, undecoded, ErrUnknownKeys)
			}
		}
	}

	if flags != nil {
		flags.ApplyOverrides(cfg)
	}

	cfg.validate()
	return cfg, fileErr
}

// mergeFile copies settings the file actually defines.
func (c *Config) mergeFile(fileCfg *Config, md toml.MetaData) {
	if md.IsDefined("logger") {
		level := c.Logger.LogLevel
		c.Logger = fileCfg.Logger
		if c.Logger.LogLevel == "" {
			c.Logger.LogLevel = level
		}
	}
	if md.IsDefined("editor", "scroll_off") {
		c.Editor.ScrollOff = fileCfg.Editor.ScrollOff
	}
	if md.IsDefined("editor", "system_clipboard") {
		c.Editor.SystemClipboard = fileCfg.Editor.SystemClipboard
	}
	if md.IsDefined("editor", "strict_deltas") {
		c.Editor.StrictDeltas = fileCfg.Editor.StrictDeltas
	}
	if md.IsDefined("editor", "trace_file") {
		c.Editor.TraceFile = fileCfg.Editor.TraceFile
	}
	if md.IsDefined("editor", "status_bar_height") {
		c.Editor.StatusBarHeight = fileCfg.Editor.StatusBarHeight
	}
	if md.IsDefined("editor", "autosave_interval") {
		c.Editor.AutosaveInterval = fileCfg.Editor.AutosaveInterval
	}
	c.Widget = c.Widget.Overlay(fileCfg.Widget)
}

// validate checks config values and resets invalid ones to defaults.
func (c *Config) validate() {
	defaults := NewDefaultConfig()

	if c.Editor.ScrollOff < 0 {
		c.Editor.ScrollOff = defaults.Editor.ScrollOff
	}
	if c.Editor.StatusBarHeight <= 0 {
		c.Editor.StatusBarHeight = defaults.Editor.StatusBarHeight
	}
	if _, ok := logger.ParseLevel(c.Logger.LogLevel); !ok {
		c.Logger.LogLevel = defaults.Logger.LogLevel
	}
}

// LoadConfig runs Load once and keeps the result for Get.
func LoadConfig(configFilePath string, flags *Flags) (*Config, error) {
	loadOnce.Do(func() {
		loadedConfig, loadErr = Load(configFilePath, flags)
	})
	return loadedConfig, loadErr
}

// Get returns the loaded application configuration. Panics if LoadConfig wasn't called.
func Get() *Config {
	if loadedConfig == nil {
		panic("config.Get() called before config.LoadConfig()")
	}
	return loadedConfig
}
