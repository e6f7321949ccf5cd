package theme

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetStyleFallback(t *testing.T) {
	th := &Theme{Name: "t", Styles: map[string]tcell.Style{
		"Default": tcell.StyleDefault.Foreground(tcell.ColorWhite),
		"heading": tcell.StyleDefault.Bold(true),
	}}

	assert.Equal(t, th.Styles["heading"], th.GetStyle("heading.4"))
	assert.Equal(t, th.Styles["Default"], th.GetStyle("Selection"))
	assert.Equal(t, tcell.StyleDefault, (&Theme{Name: "empty"}).GetStyle("x"))
}

func TestParseTheme(t *testing.T) {
	data := `
name = "Paper"
is_dark = false
colour = "typo"

[styles.Default]
fg = "#112233"
bg = "white"

[styles.heading]
bold = true

[styles.broken]
fg = "#12"
`
	th, err := parseTheme(data, "/tmp/paper.toml")
	require.NoError(t, err)
	assert.Equal(t, "Paper", th.Name)

	fg, bg, attr := th.GetStyle("heading").Decompose()
	assert.Equal(t, tcell.NewHexColor(0x112233), fg)
	assert.Equal(t, tcell.ColorWhite, bg)
	assert.NotZero(t, attr&tcell.AttrBold)
	assert.NotContains(t, th.Styles, "broken")
}

func TestManagerLoadsDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "solar.toml"), []byte("[styles.Default]\nfg = \"reset\"\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.toml"), []byte("= nope"), 0o644))

	m, err := NewManager(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"default", "light", "solar"}, m.List())

	th, ok := m.Get("SOLAR")
	require.True(t, ok)
	assert.Equal(t, "solar", th.Name)

	th, ok = m.Get("missing")
	assert.False(t, ok)
	assert.Same(t, Dark, th)

	_, err = NewManager(filepath.Join(dir, "nope"))
	assert.NoError(t, err)
}
