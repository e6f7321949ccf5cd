// Package plugin lets optional features hook into the editor without the
// app knowing their internals.
package plugin

import (
	"github.com/bethropolis/tidemark/internal/commands"
	"github.com/bethropolis/tidemark/internal/config"
	"github.com/bethropolis/tidemark/internal/mdeditor"
)

// API is what the host exposes to plugins.
type API interface {
	// Editor gives access to change, cursorChange and scroll events.
	Editor() *mdeditor.Editor
	RegisterCommand(name string, fn commands.Func) error
	SetStatusMessage(format string, args ...interface{})
	Config() *config.Config

	FilePath() string
	IsModified() bool
	Save() error
}

// Plugin is an optional feature.
type Plugin interface {
	Name() string
	Initialize(api API) error
	Shutdown() error
}
