// Package theme maps style names used by the terminal UI to tcell styles.
package theme

import (
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/bethropolis/tidemark/internal/logger"
)

// Theme is a named set of styles.
type Theme struct {
	Name   string
	IsDark bool
	Styles map[string]tcell.Style
}

// GetStyle resolves name, falling back to the part before the first dot
// ("heading.2" -> "heading") and then to "Default".
func (t *Theme) GetStyle(name string) tcell.Style {
	if style, ok := t.Styles[name]; ok {
		return style
	}

	if dot := strings.Index(name, "."); dot != -1 {
		if style, ok := t.Styles[name[:dot]]; ok {
			return style
		}
	}

	if def, ok := t.Styles["Default"]; ok {
		if name != "Default" {
			logger.DebugTagf("theme", "Theme '%s': style '%s' not found, using 'Default'", t.Name, name)
		}
		return def
	}

	logger.Warnf("Theme '%s': neither '%s' nor 'Default' defined, using tcell default", t.Name, name)
	return tcell.StyleDefault
}

// Dark is the built-in dark theme and the fallback for unknown names.
var Dark = newDark()

// Light is the built-in light theme.
var Light = newLight()

func newDark() *Theme {
	bg := tcell.NewHexColor(0x2a2f38)
	fg := tcell.NewHexColor(0xc5cdd9)
	muted := tcell.NewHexColor(0x5c6370)
	yellow := tcell.NewHexColor(0xe5c07b)
	green := tcell.NewHexColor(0x98c379)
	blue := tcell.NewHexColor(0x61afef)
	magenta := tcell.NewHexColor(0xc678dd)
	activeBg := tcell.NewHexColor(0x323844)

	base := tcell.StyleDefault.Background(tcell.ColorReset).Foreground(fg)
	bar := tcell.StyleDefault.Background(bg).Foreground(fg)

	return &Theme{
		Name:   "default",
		IsDark: true,
		Styles: map[string]tcell.Style{
			"Default":           base,
			"ActiveLine":        base.Background(activeBg),
			"Selection":         base.Reverse(true),
			"LineNumber":        base.Foreground(muted),
			"LineNumber.active": base.Foreground(fg).Bold(true),

			"StatusBar":          bar,
			"StatusBar.modified": bar.Foreground(yellow),
			"StatusBar.message":  bar.Bold(true),
			"StatusBar.section":  bar.Foreground(green),

			"heading":   base.Foreground(blue).Bold(true),
			"heading.1": base.Foreground(magenta).Bold(true).Underline(true),
			"heading.2": base.Foreground(magenta).Bold(true),
		},
	}
}

func newLight() *Theme {
	fg := tcell.NewHexColor(0x383a42)
	muted := tcell.NewHexColor(0xa0a1a7)
	blue := tcell.NewHexColor(0x4078f2)
	purple := tcell.NewHexColor(0xa626a4)
	barBg := tcell.NewHexColor(0xe5e5e6)

	base := tcell.StyleDefault.Background(tcell.NewHexColor(0xfafafa)).Foreground(fg)
	bar := tcell.StyleDefault.Background(barBg).Foreground(fg)

	return &Theme{
		Name: "light",
		Styles: map[string]tcell.Style{
			"Default":           base,
			"ActiveLine":        base.Background(tcell.NewHexColor(0xf0f0f1)),
			"Selection":         base.Background(tcell.NewHexColor(0xd7dae0)),
			"LineNumber":        base.Foreground(muted),
			"LineNumber.active": base.Bold(true),

			"StatusBar":          bar,
			"StatusBar.modified": bar.Foreground(tcell.NewHexColor(0xc18401)),
			"StatusBar.message":  bar.Bold(true),
			"StatusBar.section":  bar.Foreground(tcell.NewHexColor(0x50a14f)),

			"heading":   base.Foreground(blue).Bold(true),
			"heading.1": base.Foreground(purple).Bold(true).Underline(true),
			"heading.2": base.Foreground(purple).Bold(true),
		},
	}
}
