package app

import (
	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/tidemark/internal/commands"
	"github.com/bethropolis/tidemark/internal/config"
	"github.com/bethropolis/tidemark/internal/logger"
	"github.com/bethropolis/tidemark/internal/mdeditor"
	"github.com/bethropolis/tidemark/internal/plugin"
	"github.com/bethropolis/tidemark/plugins/autosave"
	"github.com/bethropolis/tidemark/plugins/wordcount"
)

// pluginAPI is the host side of plugin.API.
type pluginAPI struct {
	app *App
}

var _ plugin.API = (*pluginAPI)(nil)

func (p *pluginAPI) Editor() *mdeditor.Editor { return p.app.editor }

func (p *pluginAPI) RegisterCommand(name string, fn commands.Func) error {
	return p.app.editor.RegisterCommand(name, fn)
}

func (p *pluginAPI) SetStatusMessage(format string, args ...interface{}) {
	p.app.statusBar.SetTemporaryMessage(format, args...)
	p.app.requestRedraw()
}

func (p *pluginAPI) Config() *config.Config { return p.app.cfg }
func (p *pluginAPI) FilePath() string       { return p.app.widget.FilePath() }
func (p *pluginAPI) IsModified() bool       { return p.app.widget.IsModified() }
func (p *pluginAPI) Save() error            { return p.app.widget.Save("") }

// loadPlugins registers and starts the built-in plugins.
func (a *App) loadPlugins() {
	a.pluginManager = plugin.NewManager()
	for _, p := range []plugin.Plugin{wordcount.New(), autosave.New()} {
		if err := a.pluginManager.Register(p); err != nil {
			logger.Warnf("Failed to register plugin: %v", err)
		}
	}
	a.pluginManager.InitializePlugins(&pluginAPI{app: a})
	a.input.BindCommand(tcell.KeyCtrlW, wordcount.CommandName)
}
