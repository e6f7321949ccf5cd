package trace

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/bethropolis/tidemark/internal/change"
	"github.com/bethropolis/tidemark/internal/config"
	"github.com/bethropolis/tidemark/internal/logger"
	"github.com/bethropolis/tidemark/internal/mdeditor"
	"github.com/bethropolis/tidemark/internal/types"
	"github.com/bethropolis/tidemark/internal/widget"
)

const maxRecordSize = 16 << 20

// Step pairs a replayed delta with what the widget reported for it.
type Step struct {
	Line   int // 1-based line in the trace
	Delta  types.RawDelta
	Events []change.IncrementalEvent
}

// Result is the outcome of a replay.
type Result struct {
	Steps []Step
	Value string // document after the last step
}

// Replay applies every record in r to a fresh widget, in order and under
// the recorded origin, and collects the classified events.
func Replay(r io.Reader, strict bool) (*Result, error) {
	w := widget.New(config.DefaultWidgetOptions())
	ed := mdeditor.New(w, mdeditor.Config{StrictDeltas: strict})

	var current []change.IncrementalEvent
	ed.OnChange(func(_ *mdeditor.Editor, ev change.IncrementalEvent) {
		current = append(current, ev)
	})

	res := &Result{}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxRecordSize)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		d, err := DecodeDelta(text)
		if err != nil {
			return res, fmt.Errorf("trace line %d: %w", lineNo, err)
		}

		current = nil
		if err := apply(w, d); err != nil {
			return res, fmt.Errorf("trace line %d: %w", lineNo, err)
		}
		res.Steps = append(res.Steps, Step{Line: lineNo, Delta: d, Events: current})
	}
	if err := scanner.Err(); err != nil {
		return res, fmt.Errorf("read trace: %w", err)
	}

	res.Value = w.GetValue()
	logger.InfoTagf("trace", "Replayed %d record(s)", len(res.Steps))
	return res, nil
}

func apply(w *widget.Widget, d types.RawDelta) error {
	text := strings.Join(d.Inserted, "\n")
	if d.Origin == types.OriginSetValue {
		w.SetValue(text)
		return nil
	}
	return w.ReplaceRange(text, d.From, d.To, d.Origin)
}
