package types

// Origin is the widget-assigned tag describing what caused a delta.
// Values outside the named set (drop, cut, redo, ...) pass through untouched.
type Origin string

const (
	OriginInput    Origin = "input"
	OriginDelete   Origin = "delete"
	OriginPaste    Origin = "paste"
	OriginUndo     Origin = "undo"
	OriginRedo     Origin = "redo"
	OriginSetValue Origin = "setValue"
	OriginDrop     Origin = "drop"
	OriginCut      Origin = "cut"
)

// RawDelta is a single buffer mutation as reported by the widget.
// Positions are 0-based. Removed holds one entry per line of the replaced
// range, Inserted one entry per line of the new text; entries may be empty.
type RawDelta struct {
	Origin   Origin
	From     Position
	To       Position
	Inserted []string
	Removed  []string
}

// Range returns the 1-based range the delta covered before the edit.
func (d RawDelta) Range() Range {
	return RangeOf(d.From, d.To)
}
