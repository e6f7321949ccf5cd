package utils

import (
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// RuneIndexToByteOffset converts a rune index to a byte offset in a byte slice.
// Returns -1 if runeIndex is out of bounds.
func RuneIndexToByteOffset(line []byte, runeIndex int) int {
	if runeIndex <= 0 {
		return 0
	}
	byteOffset := 0
	currentRune := 0
	for byteOffset < len(line) {
		if currentRune == runeIndex {
			return byteOffset
		}
		_, size := utf8.DecodeRune(line[byteOffset:])
		byteOffset += size
		currentRune++
	}
	if currentRune == runeIndex {
		return len(line)
	} // Allow index at the very end
	return -1
}

// VisualColumn returns the number of terminal cells taken by the first
// runeIndex runes of line. Tabs expand to the next multiple of tabWidth.
func VisualColumn(line string, runeIndex, tabWidth int) int {
	if tabWidth <= 0 {
		tabWidth = 1
	}
	width := 0
	current := 0
	gr := uniseg.NewGraphemes(line)
	for gr.Next() && current < runeIndex {
		runes := gr.Runes()
		if len(runes) == 1 && runes[0] == '\t' {
			width += tabWidth - width%tabWidth
		} else {
			width += gr.Width()
		}
		current += len(runes)
	}
	return width
}

// RuneIndexAtVisualColumn is the inverse of VisualColumn: the rune index of
// the grapheme covering cell col, or the line length past the end.
func RuneIndexAtVisualColumn(line string, col, tabWidth int) int {
	if tabWidth <= 0 {
		tabWidth = 1
	}
	width := 0
	current := 0
	gr := uniseg.NewGraphemes(line)
	for gr.Next() {
		runes := gr.Runes()
		w := gr.Width()
		if len(runes) == 1 && runes[0] == '\t' {
			w = tabWidth - width%tabWidth
		}
		if width+w > col {
			return current
		}
		width += w
		current += len(runes)
	}
	return current
}

// ExpandTabs replaces tabs with spaces so that tab stops fall every tabWidth cells.
func ExpandTabs(line string, tabWidth int) string {
	if !strings.Contains(line, "\t") {
		return line
	}
	var sb strings.Builder
	col := 0
	gr := uniseg.NewGraphemes(line)
	for gr.Next() {
		if gr.Str() == "\t" {
			n := tabWidth - col%tabWidth
			sb.WriteString(strings.Repeat(" ", n))
			col += n
			continue
		}
		sb.WriteString(gr.Str())
		col += gr.Width()
	}
	return sb.String()
}

// Debouncer provides a way to debounce function calls
type Debouncer struct {
	mutex sync.Mutex
	timer *time.Timer
}

// Debounce calls fn after duration, cancelling any call still pending.
func (d *Debouncer) Debounce(duration time.Duration, fn func()) {
	d.mutex.Lock()
	defer d.mutex.Unlock()

	if d.timer != nil {
		d.timer.Stop()
	}

	d.timer = time.AfterFunc(duration, func() {
		d.mutex.Lock()
		d.timer = nil
		d.mutex.Unlock()
		fn()
	})
}

// Stop cancels a pending call, if any.
func (d *Debouncer) Stop() {
	d.mutex.Lock()
	defer d.mutex.Unlock()
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
