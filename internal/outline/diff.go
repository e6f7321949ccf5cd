package outline

import (
	"bytes"
	"unicode/utf8"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/bethropolis/tidemark/internal/utils"
)

// diffEdit describes how oldSrc became newSrc as a single tree-sitter edit.
// firstLine (1-based) is where the caller knows the changes begin; the
// window is then narrowed to the exact bytes with the common prefix and
// suffix. It reports false when the sources are equal.
func diffEdit(oldSrc, newSrc []byte, firstLine int) (sitter.EditInput, bool) {
	base := lineStart(oldSrc, firstLine-1)
	if base > len(newSrc) || !bytes.Equal(oldSrc[:base], newSrc[:base]) {
		base = 0
	}

	dmp := diffmatchpatch.New()
	oldTail, newTail := oldSrc[base:], newSrc[base:]
	prefix := utils.RuneIndexToByteOffset(oldTail, dmp.DiffCommonPrefix(string(oldTail), string(newTail)))

	oldRest, newRest := oldTail[prefix:], newTail[prefix:]
	suffixRunes := dmp.DiffCommonSuffix(string(oldRest), string(newRest))
	suffix := len(oldRest) - utils.RuneIndexToByteOffset(oldRest, utf8.RuneCount(oldRest)-suffixRunes)

	start := base + prefix
	oldEnd := len(oldSrc) - suffix
	newEnd := len(newSrc) - suffix
	if start == oldEnd && start == newEnd {
		return sitter.EditInput{}, false
	}

	return sitter.EditInput{
		StartIndex:  uint32(start),
		OldEndIndex: uint32(oldEnd),
		NewEndIndex: uint32(newEnd),
		StartPoint:  pointAt(oldSrc, start),
		OldEndPoint: pointAt(oldSrc, oldEnd),
		NewEndPoint: pointAt(newSrc, newEnd),
	}, true
}

// lineStart is the byte offset of 0-based line n, or len(src) past the end.
func lineStart(src []byte, n int) int {
	offset := 0
	for i := 0; i < n; i++ {
		idx := bytes.IndexByte(src[offset:], '\n')
		if idx < 0 {
			return len(src)
		}
		offset += idx + 1
	}
	return offset
}

// pointAt converts a byte offset to a row and byte column.
func pointAt(src []byte, offset int) sitter.Point {
	row := bytes.Count(src[:offset], []byte{'\n'})
	col := offset - (bytes.LastIndexByte(src[:offset], '\n') + 1)
	return sitter.Point{Row: uint32(row), Column: uint32(col)}
}
