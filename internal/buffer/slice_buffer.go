// internal/buffer/slice_buffer.go
package buffer

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"unicode/utf8"

	"github.com/bethropolis/tidemark/internal/types"
	"github.com/bethropolis/tidemark/internal/utils"
)

// SliceBuffer keeps the document as one byte slice per line.
type SliceBuffer struct {
	lines    [][]byte
	filePath string
	modified bool // Track if buffer has unsaved changes
}

// NewSliceBuffer creates an empty SliceBuffer.
func NewSliceBuffer() *SliceBuffer {
	return &SliceBuffer{
		// Start with a single empty line, common for new files
		lines: [][]byte{{}},
	}
}

// NewSliceBufferFrom creates a buffer holding content.
func NewSliceBufferFrom(content []byte) *SliceBuffer {
	sb := NewSliceBuffer()
	sb.lines = splitLines(content)
	return sb
}

// Load reads a file into the buffer. Replaces existing content.
// A missing file yields an empty buffer bound to that path.
func (sb *SliceBuffer) Load(filePath string) error {
	sb.modified = false

	data, err := os.ReadFile(filePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			sb.lines = [][]byte{{}}
			sb.filePath = filePath
			return nil
		}
		return fmt.Errorf("failed to read file '%s': %w", filePath, err)
	}

	sb.lines = splitLines(bytes.ReplaceAll(data, []byte("\r\n"), []byte("\n")))
	sb.filePath = filePath
	return nil
}

// Save writes the buffer content to filePath, or to the loaded path when empty.
func (sb *SliceBuffer) Save(filePath string) error {
	path := sb.filePath
	if filePath != "" { // Allow overriding path during save
		path = filePath
	}
	if path == "" {
		return errors.New("no file path specified for saving")
	}

	if err := os.WriteFile(path, sb.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write file '%s': %w", path, err)
	}

	sb.filePath = path
	sb.modified = false
	return nil
}

func (sb *SliceBuffer) Lines() [][]byte {
	return sb.lines
}

func (sb *SliceBuffer) LineCount() int {
	return len(sb.lines)
}

func (sb *SliceBuffer) Line(index int) ([]byte, error) {
	if index < 0 || index >= len(sb.lines) {
		return nil, fmt.Errorf("%w: %d (0-%d)", ErrOutOfRange, index, len(sb.lines)-1)
	}
	return sb.lines[index], nil
}

// Bytes joins all lines with '\n'.
func (sb *SliceBuffer) Bytes() []byte {
	return bytes.Join(sb.lines, []byte("\n"))
}

func (sb *SliceBuffer) IsModified() bool {
	return sb.modified
}

func (sb *SliceBuffer) FilePath() string {
	return sb.filePath
}

// End returns the position just past the last character.
func (sb *SliceBuffer) End() types.Position {
	last := len(sb.lines) - 1
	return types.Position{Line: last, Col: utf8.RuneCount(sb.lines[last])}
}

// Clamp pulls pos inside the buffer.
func (sb *SliceBuffer) Clamp(pos types.Position) types.Position {
	valid, _ := sb.validatePosition(pos)
	return valid
}

// Text returns the text between start and end (end exclusive).
func (sb *SliceBuffer) Text(start, end types.Position) (string, error) {
	return string(bytes.Join(sb.extract(start, end), []byte("\n"))), nil
}

// --- Buffer Modification Methods ---

// Replace swaps the text between start and end for text and reports the
// exact lines removed and inserted.
func (sb *SliceBuffer) Replace(start, end types.Position, text []byte) (Edit, error) {
	if end.Before(start) {
		start, end = end, start
	}
	vStart, startOffset := sb.validatePosition(start)
	vEnd, endOffset := sb.validatePosition(end)

	removed := sb.extract(vStart, vEnd)
	inserted := bytes.Split(text, []byte("\n"))

	edit := Edit{
		Start:    vStart,
		OldEnd:   vEnd,
		Removed:  toStrings(removed),
		Inserted: toStrings(inserted),
	}

	// The tail of the end line survives and is appended to the last inserted line.
	head := sb.lines[vStart.Line][:startOffset]
	tail := sb.lines[vEnd.Line][endOffset:]

	replacement := make([][]byte, len(inserted))
	for i, line := range inserted {
		replacement[i] = append([]byte(nil), line...)
	}
	replacement[0] = append(append([]byte(nil), head...), replacement[0]...)
	last := len(replacement) - 1
	replacement[last] = append(replacement[last], tail...)

	newLines := make([][]byte, 0, len(sb.lines)-(vEnd.Line-vStart.Line)+last)
	newLines = append(newLines, sb.lines[:vStart.Line]...)
	newLines = append(newLines, replacement...)
	newLines = append(newLines, sb.lines[vEnd.Line+1:]...)
	sb.lines = newLines

	if last == 0 {
		edit.NewEnd = types.Position{Line: vStart.Line, Col: vStart.Col + utf8.RuneCount(inserted[0])}
	} else {
		edit.NewEnd = types.Position{Line: vStart.Line + last, Col: utf8.RuneCount(inserted[last])}
	}

	if len(text) > 0 || vStart != vEnd {
		sb.modified = true
	}
	return edit, nil
}

// Insert inserts text at a given position. Handles single/multiple lines.
func (sb *SliceBuffer) Insert(pos types.Position, text []byte) (Edit, error) {
	return sb.Replace(pos, pos, text)
}

// Delete removes text within a given range (start inclusive, end exclusive).
func (sb *SliceBuffer) Delete(start, end types.Position) (Edit, error) {
	return sb.Replace(start, end, nil)
}

// SetContent replaces the whole document.
func (sb *SliceBuffer) SetContent(content []byte) (Edit, error) {
	return sb.Replace(types.Position{}, sb.End(), content)
}

// extract copies the per-line fragments between two validated positions.
func (sb *SliceBuffer) extract(start, end types.Position) [][]byte {
	if end.Before(start) {
		start, end = end, start
	}
	vStart, startOffset := sb.validatePosition(start)
	vEnd, endOffset := sb.validatePosition(end)

	if vStart.Line == vEnd.Line {
		line := sb.lines[vStart.Line]
		if startOffset > endOffset {
			startOffset = endOffset
		}
		return [][]byte{line[startOffset:endOffset]}
	}

	out := make([][]byte, 0, vEnd.Line-vStart.Line+1)
	out = append(out, sb.lines[vStart.Line][startOffset:])
	out = append(out, sb.lines[vStart.Line+1:vEnd.Line]...)
	out = append(out, sb.lines[vEnd.Line][:endOffset])
	return out
}

// validatePosition clamps pos into the buffer and returns its byte offset.
func (sb *SliceBuffer) validatePosition(pos types.Position) (types.Position, int) {
	if pos.Line < 0 {
		pos.Line = 0
	}
	if pos.Line >= len(sb.lines) {
		pos.Line = len(sb.lines) - 1
	}
	if pos.Col < 0 {
		pos.Col = 0
	}

	line := sb.lines[pos.Line]
	offset := utils.RuneIndexToByteOffset(line, pos.Col)
	if offset < 0 {
		// Column past the end of the line.
		pos.Col = utf8.RuneCount(line)
		offset = len(line)
	}
	return pos, offset
}

func splitLines(content []byte) [][]byte {
	parts := bytes.Split(content, []byte("\n"))
	lines := make([][]byte, len(parts))
	for i, p := range parts {
		lines[i] = append([]byte(nil), p...)
	}
	return lines
}

func toStrings(lines [][]byte) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = string(l)
	}
	return out
}

// Ensure SliceBuffer satisfies the Buffer interface
var _ Buffer = (*SliceBuffer)(nil)
