// Package statusbar draws the one-line status area below the text.
package statusbar

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/bethropolis/tidemark/internal/theme"
	"github.com/bethropolis/tidemark/internal/types"
	"github.com/bethropolis/tidemark/internal/utils"
)

const sectionTabWidth = 4

// Config holds the status bar's styles and message timeout.
type Config struct {
	StyleDefault   tcell.Style
	StyleModified  tcell.Style
	StyleMessage   tcell.Style
	StyleSection   tcell.Style
	MessageTimeout time.Duration
}

// DefaultConfig takes the styles from th.
func DefaultConfig(th *theme.Theme) Config {
	if th == nil {
		th = theme.Dark
	}
	return Config{
		StyleDefault:   th.GetStyle("StatusBar"),
		StyleModified:  th.GetStyle("StatusBar.modified"),
		StyleMessage:   th.GetStyle("StatusBar.message"),
		StyleSection:   th.GetStyle("StatusBar.section"),
		MessageTimeout: 4 * time.Second,
	}
}

// StatusBar shows the file, the cursor, the current section and the last
// change summary. A temporary message replaces all of it until it times out.
type StatusBar struct {
	config Config
	now    func() time.Time
	mu     sync.Mutex

	filePath   string
	isModified bool
	cursor     types.Cursor
	section    string
	lastChange string

	tempMessage     string
	tempMessageTime time.Time
}

// New creates a status bar.
func New(config Config) *StatusBar {
	return &StatusBar{config: config, now: time.Now, cursor: types.Cursor{Line: 1, Column: 1}}
}

// SetFileInfo sets the file name and modified flag.
func (sb *StatusBar) SetFileInfo(path string, modified bool) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.filePath = path
	sb.isModified = modified
}

// SetCursor sets the 1-based cursor shown on the right.
func (sb *StatusBar) SetCursor(c types.Cursor) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.cursor = c
}

// SetSection sets the heading the cursor is under; "" hides it.
func (sb *StatusBar) SetSection(title string) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.section = utils.ExpandTabs(title, sectionTabWidth)
}

// SetLastChange sets the summary of the latest change event.
func (sb *StatusBar) SetLastChange(summary string) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.lastChange = summary
}

// SetTemporaryMessage shows a formatted message until MessageTimeout passes.
func (sb *StatusBar) SetTemporaryMessage(format string, args ...interface{}) {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.tempMessage = fmt.Sprintf(format, args...)
	sb.tempMessageTime = sb.now()
}

// ResetTemporaryMessage clears any temporary message.
func (sb *StatusBar) ResetTemporaryMessage() {
	sb.mu.Lock()
	defer sb.mu.Unlock()
	sb.tempMessage = ""
	sb.tempMessageTime = time.Time{}
}

type segment struct {
	text  string
	style tcell.Style
}

func (sb *StatusBar) segmentsLocked() (left, right []segment) {
	name := "[No Name]"
	if sb.filePath != "" {
		name = filepath.Base(sb.filePath)
	}
	left = append(left, segment{" " + name, sb.config.StyleDefault})
	if sb.isModified {
		left = append(left, segment{" [+]", sb.config.StyleModified})
	}
	if sb.section != "" {
		left = append(left, segment{" » " + sb.section, sb.config.StyleSection})
	}

	pos := fmt.Sprintf("Ln %d, Col %d ", sb.cursor.Line, sb.cursor.Column)
	if sb.lastChange != "" {
		right = append(right, segment{sb.lastChange + " | ", sb.config.StyleDefault})
	}
	right = append(right, segment{pos, sb.config.StyleDefault})
	return left, right
}

// Draw paints the bar on row y. Right-hand segments are dropped first when
// the row is too narrow.
func (sb *StatusBar) Draw(screen tcell.Screen, y, width int) {
	if width <= 0 {
		return
	}

	sb.mu.Lock()
	active := !sb.tempMessageTime.IsZero() && sb.now().Sub(sb.tempMessageTime) <= sb.config.MessageTimeout
	if !sb.tempMessageTime.IsZero() && !active {
		sb.tempMessage = ""
		sb.tempMessageTime = time.Time{}
	}
	var left, right []segment
	if active {
		left = []segment{{" " + sb.tempMessage, sb.config.StyleMessage}}
	} else {
		left, right = sb.segmentsLocked()
	}
	fill := sb.config.StyleDefault
	if active {
		fill = sb.config.StyleMessage
	}
	sb.mu.Unlock()

	for x := 0; x < width; x++ {
		screen.SetContent(x, y, ' ', nil, fill)
	}

	x := 0
	for _, seg := range left {
		x = drawText(screen, x, y, width, seg)
	}

	for len(right) > 0 {
		w := 0
		for _, seg := range right {
			w += uniseg.StringWidth(seg.text)
		}
		if width-w > x {
			rx := width - w
			for _, seg := range right {
				rx = drawText(screen, rx, y, width, seg)
			}
			return
		}
		right = right[1:]
	}
}

func drawText(screen tcell.Screen, x, y, limit int, seg segment) int {
	gr := uniseg.NewGraphemes(seg.text)
	for gr.Next() {
		w := gr.Width()
		if x+w > limit {
			break
		}
		runes := gr.Runes()
		screen.SetContent(x, y, runes[0], runes[1:], seg.style)
		x += w
	}
	return x
}
