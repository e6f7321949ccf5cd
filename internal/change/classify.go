package change

import (
	"strings"

	"github.com/bethropolis/tidemark/internal/types"
)

// LineSource gives read access to the already-mutated document.
// Line takes a 1-based line number.
type LineSource interface {
	Line(n int) string
	Value() string
}

// Classify describes delta as an IncrementalEvent. It reads doc to report
// the resulting content of replaced lines and never modifies anything.
//
// Deltas whose origin is not part of the input family, delete, or setValue
// come back with the raw origin and no changes.
func Classify(delta types.RawDelta, doc LineSource) IncrementalEvent {
	action, ok := coarseAction(delta)
	if !ok {
		return IncrementalEvent{Origin: string(delta.Origin)}
	}

	if action == ActionReset {
		return IncrementalEvent{
			Origin:  string(ActionReset),
			Changes: []ClassifiedChange{{Action: ActionReset, After: doc.Value()}},
		}
	}

	return IncrementalEvent{
		Origin:  string(action),
		Changes: lineChanges(delta, doc),
	}
}

// coarseAction labels the delta as a whole. The label follows the delta's
// shape; the per-line changes never use insert.
func coarseAction(delta types.RawDelta) (Action, bool) {
	inserted := hasText(delta.Inserted)
	removed := hasText(delta.Removed)

	switch {
	case delta.Origin == types.OriginSetValue:
		return ActionReset, true
	case isInputFamily(delta.Origin) && inserted && !removed:
		return ActionInsert, true
	case isInputFamily(delta.Origin) && inserted && removed:
		return ActionReplace, true
	case delta.Origin == types.OriginDelete && removed:
		return ActionRemove, true
	}
	return "", false
}

// lineChanges walks the pre-edit line span of the delta.
//
// The first line is reported as replaced whenever it still holds content
// after the edit. The last line is skipped when the removal stopped at its
// column 0: that line was only the range boundary and its text moved up
// intact. Every other line in between is gone.
func lineChanges(delta types.RawDelta, doc LineSource) []ClassifiedChange {
	fromLine := delta.From.Line + 1
	toLine := delta.To.Line + 1
	toLineIsEmpty := lastLine(delta.Removed) == ""

	keepsFirst := hasText(delta.Inserted) || delta.From.Col > 0 || !toLineIsEmpty

	changes := make([]ClassifiedChange, 0, toLine-fromLine+1)
	for i := fromLine; i <= toLine; i++ {
		switch {
		case i == fromLine && keepsFirst:
			changes = append(changes, ClassifiedChange{
				Action: ActionReplace,
				Line:   i,
				Before: firstLine(delta.Removed),
				After:  doc.Line(i),
			})
		case i == toLine && toLineIsEmpty:
			// boundary line, nothing of it was removed
		default:
			changes = append(changes, ClassifiedChange{Action: ActionRemove, Line: i})
		}
	}
	return changes
}

func isInputFamily(origin types.Origin) bool {
	switch origin {
	case types.OriginInput, types.OriginPaste, types.OriginUndo:
		return true
	}
	return false
}

// hasText reports whether lines spell out any text at all. A lone line
// break (two empty lines) counts as text.
func hasText(lines []string) bool {
	return strings.Join(lines, "\n") != ""
}

func firstLine(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return lines[0]
}

func lastLine(lines []string) string {
	if len(lines) == 0 {
		return ""
	}
	return lines[len(lines)-1]
}
