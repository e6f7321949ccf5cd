// Package change turns raw widget deltas into line-level edit descriptions
// that an incremental markdown parser can apply without a full reparse.
package change

import (
	"fmt"
	"strings"
)

// Action is the kind of a single classified change, and also the coarse
// label of a classified event.
type Action string

const (
	ActionInsert  Action = "insert"
	ActionReplace Action = "replace"
	ActionRemove  Action = "remove"
	ActionReset   Action = "reset"
)

// ClassifiedChange describes what happened to one line.
//
// Line is 1-based: the post-edit line for replace, the pre-edit line for
// remove, and 0 for reset. After holds the line's new content (the whole
// document for reset); Before holds the removed fragment on that line when
// there was one. Remove changes carry no content.
type ClassifiedChange struct {
	Action Action
	Line   int
	Before string
	After  string
}

// IncrementalEvent is the payload of a change notification.
//
// Origin is the coarse action (insert, replace, remove, reset) when the delta
// could be classified, or the widget's raw origin otherwise. Changes are in
// ascending line order and must be applied in that order.
type IncrementalEvent struct {
	Origin  string
	Changes []ClassifiedChange
}

// IsReset reports whether the event replaces the whole document.
func (e IncrementalEvent) IsReset() bool {
	return e.Origin == string(ActionReset)
}

// NeedsFullReparse reports whether a consumer has to reparse the whole
// document: either a reset, or a delta the classifier could not describe.
func (e IncrementalEvent) NeedsFullReparse() bool {
	return e.IsReset() || len(e.Changes) == 0
}

// FirstLine returns the smallest line touched, or 0 when there is none.
func (e IncrementalEvent) FirstLine() int {
	if len(e.Changes) == 0 {
		return 0
	}
	return e.Changes[0].Line
}

// Summary is a short human-readable description, used by the status bar.
func (e IncrementalEvent) Summary() string {
	switch {
	case e.IsReset():
		return "reset"
	case len(e.Changes) == 0:
		return fmt.Sprintf("%s (unclassified)", e.Origin)
	}

	parts := make([]string, 0, len(e.Changes))
	for _, c := range e.Changes {
		parts = append(parts, fmt.Sprintf("%s:%d", c.Action, c.Line))
	}
	const maxParts = 3
	if len(parts) > maxParts {
		rest := len(parts) - maxParts
		parts = append(parts[:maxParts], fmt.Sprintf("+%d", rest))
	}
	return fmt.Sprintf("%s [%s]", e.Origin, strings.Join(parts, " "))
}
