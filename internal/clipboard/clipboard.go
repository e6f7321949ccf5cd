// Package clipboard holds copied text, either in an in-process register or
// in the system clipboard.
package clipboard

import (
	"fmt"
	"sync"

	"github.com/atotto/clipboard"

	"github.com/bethropolis/tidemark/internal/logger"
)

// Clipboard reads and writes plain text.
type Clipboard interface {
	Read() (string, error)
	Write(text string) error
}

// New returns the system clipboard when system is true and the platform
// supports it, otherwise an in-process register.
func New(system bool) Clipboard {
	if system {
		if clipboard.Unsupported {
			logger.Warnf("System clipboard unsupported on this platform, using internal register")
		} else {
			return &System{fallback: &Register{}}
		}
	}
	return &Register{}
}

// Register is an in-process clipboard.
type Register struct {
	mu   sync.Mutex
	text string
}

// Read returns the last written text.
func (r *Register) Read() (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.text, nil
}

// Write replaces the register content.
func (r *Register) Write(text string) error {
	r.mu.Lock()
	r.text = text
	r.mu.Unlock()
	logger.DebugTagf("clipboard", "Register holds %d bytes", len(text))
	return nil
}

// System uses the OS clipboard. Every write is mirrored into a register that
// serves reads when the OS clipboard fails, e.g. when no X server is around.
type System struct {
	fallback *Register
}

// Read returns the OS clipboard content.
func (s *System) Read() (string, error) {
	text, err := clipboard.ReadAll()
	if err != nil {
		logger.WarnTagf("clipboard", "System clipboard read failed, using register: %v", err)
		return s.fallback.Read()
	}
	return text, nil
}

// Write stores text in the OS clipboard and the register.
func (s *System) Write(text string) error {
	_ = s.fallback.Write(text)
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("system clipboard write failed: %w", err)
	}
	return nil
}
