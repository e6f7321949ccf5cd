// Package app runs tidemark in the terminal: it wires the widget, the
// markdown editor, the outline and the status bar to a tcell screen.
package app

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/tidemark/internal/change"
	"github.com/bethropolis/tidemark/internal/clipboard"
	"github.com/bethropolis/tidemark/internal/config"
	"github.com/bethropolis/tidemark/internal/event"
	"github.com/bethropolis/tidemark/internal/input"
	"github.com/bethropolis/tidemark/internal/logger"
	"github.com/bethropolis/tidemark/internal/mdeditor"
	"github.com/bethropolis/tidemark/internal/outline"
	"github.com/bethropolis/tidemark/internal/plugin"
	"github.com/bethropolis/tidemark/internal/statusbar"
	"github.com/bethropolis/tidemark/internal/theme"
	"github.com/bethropolis/tidemark/internal/trace"
	"github.com/bethropolis/tidemark/internal/tui"
	"github.com/bethropolis/tidemark/internal/widget"
)

// outlineDelay is the quiet time before pending changes reach the outline.
const outlineDelay = 150 * time.Millisecond

// App holds the main application components.
type App struct {
	cfg         *config.Config
	tuiManager  *tui.TUI
	widget      *widget.Widget
	editor      *mdeditor.Editor
	outline     *outline.Manager
	outlineFeed *mdeditor.Debounced
	statusBar   *statusbar.StatusBar
	input       *input.InputProcessor
	activeTheme *theme.Theme
	traceFile   *os.File

	pluginManager *plugin.Manager

	quitPending bool // Ctrl+Q pressed once with unsaved changes
	quitOnce    sync.Once
	quit        chan struct{}
	closeOnce   sync.Once

	redrawRequest chan struct{}
}

// NewApp builds the application for filePath ("" for an empty document).
// A nil screen opens the terminal.
func NewApp(cfg *config.Config, filePath string, screen tcell.Screen) (*App, error) {
	themes, err := theme.NewManager(theme.DefaultDir())
	if err != nil {
		logger.Warnf("Themes: %v", err)
	}
	opts := cfg.WidgetOptions()
	activeTheme, ok := themes.Get(opts.Theme)
	if !ok {
		logger.Warnf("Unknown theme '%s', using '%s'", opts.Theme, activeTheme.Name)
	}

	var ui *tui.TUI
	if screen == nil {
		ui, err = tui.New(activeTheme.GetStyle("Default"))
	} else {
		ui, err = tui.NewWithScreen(screen, activeTheme.GetStyle("Default"))
	}
	if err != nil {
		return nil, fmt.Errorf("TUI initialization failed: %w", err)
	}

	w := widget.New(opts)
	w.SetScrollOff(cfg.Editor.ScrollOff)

	a := &App{
		cfg:           cfg,
		tuiManager:    ui,
		widget:        w,
		statusBar:     statusbar.New(statusbar.DefaultConfig(activeTheme)),
		input:         input.NewInputProcessor(),
		activeTheme:   activeTheme,
		quit:          make(chan struct{}),
		redrawRequest: make(chan struct{}, 1),
	}

	if cfg.Editor.TraceFile != "" {
		f, err := os.Create(cfg.Editor.TraceFile)
		if err != nil {
			ui.Close()
			return nil, fmt.Errorf("open trace file: %w", err)
		}
		a.traceFile = f
		trace.NewRecorder(f).Attach(w)
		logger.Infof("Recording change trace to %s", cfg.Editor.TraceFile)
	}

	a.editor = mdeditor.New(w, mdeditor.Config{
		StrictDeltas: cfg.Editor.StrictDeltas,
		Clipboard:    clipboard.New(cfg.Editor.SystemClipboard),
	})
	a.outline = outline.NewManager(outline.New(), w, a.requestRedraw)
	a.outlineFeed = mdeditor.Debounce(outlineDelay, func(_ *mdeditor.Editor, events []change.IncrementalEvent) {
		a.outline.Update(events)
	})
	a.subscribe()
	a.loadPlugins()

	if filePath != "" {
		if err := w.Load(filePath); err != nil {
			a.shutdown()
			return nil, fmt.Errorf("load %s: %w", filePath, err)
		}
	}
	return a, nil
}

// Run draws the screen and processes input until the user quits.
func (a *App) Run() error {
	defer a.shutdown()

	go a.eventLoop()

	a.widget.Events().Dispatch(event.TypeAppReady, nil)
	a.statusBar.SetTemporaryMessage("Ctrl+S save | Ctrl+Q quit | Ctrl+B/E/K/T format")
	a.requestRedraw()

	for {
		select {
		case <-a.quit:
			a.widget.Events().Dispatch(event.TypeAppQuit, nil)
			if a.widget.IsModified() {
				logger.Warnf("Exited with unsaved changes")
			}
			return nil
		case <-a.redrawRequest:
			a.drawEditor()
		}
	}
}

func (a *App) eventLoop() {
	for {
		ev := a.tuiManager.PollEvent()
		if ev == nil {
			return
		}

		needsRedraw := false
		switch ev := ev.(type) {
		case *tcell.EventResize:
			a.tuiManager.Sync()
			needsRedraw = true
		case *tcell.EventKey:
			needsRedraw = a.HandleKey(ev)
		}
		if needsRedraw {
			a.requestRedraw()
		}
	}
}

// requestRedraw asks the main loop to repaint without blocking.
func (a *App) requestRedraw() {
	select {
	case a.redrawRequest <- struct{}{}:
	default:
	}
}

func (a *App) requestQuit() {
	a.quitOnce.Do(func() { close(a.quit) })
}

func (a *App) shutdown() {
	a.closeOnce.Do(func() {
		a.pluginManager.ShutdownPlugins()
		a.outlineFeed.Stop()
		a.outline.Shutdown()
		a.outline.Outline().Close()
		if a.traceFile != nil {
			if err := a.traceFile.Close(); err != nil {
				logger.Warnf("Closing trace file: %v", err)
			}
		}
		a.tuiManager.Close()
	})
}
