// internal/types/position.go
package types

import "fmt"

// Position is the widget-side coordinate.
// Line is the 0-based line index.
// Col is the 0-based column (rune) index within the line.
type Position struct {
	Line int
	Col  int // Rune index
}

// Location is the coordinate handed to callers of the editor adapter.
// Both fields are 1-based.
type Location struct {
	Line   int
	Column int
}

// Location converts a widget position to its 1-based form.
func (p Position) Location() Location {
	return Location{Line: p.Line + 1, Column: p.Col + 1}
}

// Before reports whether p sorts strictly before other (line first, then column).
func (p Position) Before(other Position) bool {
	if p.Line != other.Line {
		return p.Line < other.Line
	}
	return p.Col < other.Col
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}

// Position converts a 1-based location back to the widget's 0-based form.
// Values below 1 clamp to the first line/column.
func (l Location) Position() Position {
	pos := Position{Line: l.Line - 1, Col: l.Column - 1}
	if pos.Line < 0 {
		pos.Line = 0
	}
	if pos.Col < 0 {
		pos.Col = 0
	}
	return pos
}

func (l Location) String() string {
	return fmt.Sprintf("%d:%d", l.Line, l.Column)
}

// Range is a half-open span of 1-based locations. From is never after To
// when produced by the widget; nothing here reorders it.
type Range struct {
	From Location
	To   Location
}

// RangeOf builds a 1-based range from two widget positions.
func RangeOf(from, to Position) Range {
	return Range{From: from.Location(), To: to.Location()}
}

// Lines returns the inclusive line span the range touches.
func (r Range) Lines() (first, last int) {
	return r.From.Line, r.To.Line
}
