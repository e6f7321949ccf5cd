package types

// ScreenCoords are layout coordinates in cells, relative to the top-left of
// the view.
type ScreenCoords struct {
	Top  float64
	Left float64
}

// Cursor is the payload of a cursorChange event. Line and Column are 1-based.
// Screen coordinates are best-effort.
type Cursor struct {
	Line       int
	Column     int
	ScreenTop  float64
	ScreenLeft float64
}

// Selection is one selected region. Anchor stays put while Head follows the
// cursor, so Head may sort before Anchor.
type Selection struct {
	Anchor Position
	Head   Position
}

// Ordered returns the selection's bounds with the earlier position first.
func (s Selection) Ordered() (start, end Position) {
	if s.Head.Before(s.Anchor) {
		return s.Head, s.Anchor
	}
	return s.Anchor, s.Head
}

// Empty reports whether the selection is a bare cursor.
func (s Selection) Empty() bool {
	return s.Anchor == s.Head
}
