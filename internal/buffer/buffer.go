// internal/buffer/buffer.go
package buffer

import (
	"errors"

	"github.com/bethropolis/tidemark/internal/types"
)

// ErrOutOfRange is returned for line indices outside the buffer.
var ErrOutOfRange = errors.New("line index out of range")

// Edit describes one applied mutation. Start/OldEnd bound the replaced range
// in the old text, Start/NewEnd the inserted range in the new text. Removed
// and Inserted hold one entry per line touched, possibly empty.
type Edit struct {
	Start    types.Position
	OldEnd   types.Position
	NewEnd   types.Position
	Removed  []string
	Inserted []string
}

// Buffer defines the interface for text buffer operations.
// All positions are 0-based with rune columns.
type Buffer interface {
	Load(filePath string) error
	Save(filePath string) error
	Lines() [][]byte
	Line(index int) ([]byte, error)
	LineCount() int
	Bytes() []byte
	Text(start, end types.Position) (string, error)
	Replace(start, end types.Position, text []byte) (Edit, error)
	Insert(pos types.Position, text []byte) (Edit, error)
	Delete(start, end types.Position) (Edit, error)
	Clamp(pos types.Position) types.Position
	End() types.Position
	FilePath() string
	IsModified() bool
}
