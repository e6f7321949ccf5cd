package statusbar

import (
	"strings"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bethropolis/tidemark/internal/theme"
	"github.com/bethropolis/tidemark/internal/types"
)

func screen(t *testing.T, width int) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, s.Init())
	t.Cleanup(s.Fini)
	s.SetSize(width, 1)
	return s
}

func row(s tcell.Screen, width int) string {
	var sb strings.Builder
	for x := 0; x < width; x++ {
		r, _, _, _ := s.GetContent(x, 0)
		sb.WriteRune(r)
	}
	return sb.String()
}

func TestDrawLayout(t *testing.T) {
	s := screen(t, 60)
	sb := New(DefaultConfig(theme.Dark))
	sb.SetFileInfo("/tmp/notes/README.md", true)
	sb.SetCursor(types.Cursor{Line: 3, Column: 7})
	sb.SetSection("Install")
	sb.SetLastChange("insert:3")

	sb.Draw(s, 0, 60)

	text := row(s, 60)
	assert.True(t, strings.HasPrefix(text, " README.md [+] » Install"), text)
	assert.True(t, strings.HasSuffix(text, "insert:3 | Ln 3, Col 7 "), text)

	_, _, style, _ := s.GetContent(strings.Index(text, "[+]"), 0)
	assert.Equal(t, theme.Dark.GetStyle("StatusBar.modified"), style)
}

func TestDrawDropsRightSegmentsWhenNarrow(t *testing.T) {
	s := screen(t, 30)
	sb := New(DefaultConfig(nil))
	sb.SetLastChange("replace:1, replace:2, remove:3")

	sb.Draw(s, 0, 30)

	text := row(s, 30)
	assert.True(t, strings.HasPrefix(text, " [No Name]"), text)
	assert.True(t, strings.HasSuffix(text, "Ln 1, Col 1 "), text)
	assert.NotContains(t, text, "replace")
}

func TestTemporaryMessageExpires(t *testing.T) {
	s := screen(t, 40)
	sb := New(DefaultConfig(theme.Dark))
	clock := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	sb.now = func() time.Time { return clock }

	sb.SetTemporaryMessage("Saved %d lines", 12)
	sb.Draw(s, 0, 40)
	assert.True(t, strings.HasPrefix(row(s, 40), " Saved 12 lines"))

	clock = clock.Add(5 * time.Second)
	sb.Draw(s, 0, 40)
	assert.True(t, strings.HasPrefix(row(s, 40), " [No Name]"))
}
