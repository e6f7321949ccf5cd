// Package trace records widget deltas as JSON lines and replays them through
// the classifier.
package trace

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/bethropolis/tidemark/internal/change"
	"github.com/bethropolis/tidemark/internal/logger"
	"github.com/bethropolis/tidemark/internal/types"
)

// ErrBadRecord marks a trace line that is not a delta record.
var ErrBadRecord = errors.New("bad trace record")

// Recorder appends one JSON object per delta to a writer.
type Recorder struct {
	mu  sync.Mutex
	w   io.Writer
	seq int
}

// NewRecorder writes records to w.
func NewRecorder(w io.Writer) *Recorder {
	return &Recorder{w: w}
}

// Attach records every delta src reports. Write errors are logged.
func (r *Recorder) Attach(src interface{ OnChange(func(types.RawDelta)) }) {
	src.OnChange(func(d types.RawDelta) {
		if err := r.Record(d); err != nil {
			logger.WarnTagf("trace", "Failed to record %s delta: %v", d.Origin, err)
		}
	})
}

// Record writes d as the next line.
func (r *Recorder) Record(d types.RawDelta) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	line, err := EncodeDelta(r.seq, d)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(r.w, line+"\n"); err != nil {
		return fmt.Errorf("write trace record %d: %w", r.seq, err)
	}
	r.seq++
	return nil
}

// EncodeDelta renders d as a single-line JSON object.
func EncodeDelta(seq int, d types.RawDelta) (string, error) {
	fields := []struct {
		path  string
		value interface{}
	}{
		{"seq", seq},
		{"origin", string(d.Origin)},
		{"from.line", d.From.Line},
		{"from.col", d.From.Col},
		{"to.line", d.To.Line},
		{"to.col", d.To.Col},
		{"inserted", nonNil(d.Inserted)},
		{"removed", nonNil(d.Removed)},
	}
	out := "{}"
	for _, f := range fields {
		var err error
		if out, err = sjson.Set(out, f.path, f.value); err != nil {
			return "", fmt.Errorf("encode %s: %w", f.path, err)
		}
	}
	return out, nil
}

// DecodeDelta parses a line written by EncodeDelta.
func DecodeDelta(line string) (types.RawDelta, error) {
	if !gjson.Valid(line) {
		return types.RawDelta{}, fmt.Errorf("%w: invalid JSON", ErrBadRecord)
	}
	rec := gjson.Parse(line)
	origin := rec.Get("origin")
	if !origin.Exists() || origin.String() == "" {
		return types.RawDelta{}, fmt.Errorf("%w: missing origin", ErrBadRecord)
	}
	return types.RawDelta{
		Origin:   types.Origin(origin.String()),
		From:     types.Position{Line: int(rec.Get("from.line").Int()), Col: int(rec.Get("from.col").Int())},
		To:       types.Position{Line: int(rec.Get("to.line").Int()), Col: int(rec.Get("to.col").Int())},
		Inserted: stringsOf(rec.Get("inserted")),
		Removed:  stringsOf(rec.Get("removed")),
	}, nil
}

// EncodeEvent renders a classified event as a single-line JSON object.
func EncodeEvent(ev change.IncrementalEvent) (string, error) {
	out, err := sjson.Set("{}", "origin", ev.Origin)
	if err != nil {
		return "", err
	}
	if out, err = sjson.SetRaw(out, "changes", "[]"); err != nil {
		return "", err
	}
	for _, c := range ev.Changes {
		item := "{}"
		for _, kv := range [][2]interface{}{
			{"action", string(c.Action)},
			{"line", c.Line},
			{"before", c.Before},
			{"after", c.After},
		} {
			if item, err = sjson.Set(item, kv[0].(string), kv[1]); err != nil {
				return "", err
			}
		}
		if out, err = sjson.SetRaw(out, "changes.-1", item); err != nil {
			return "", err
		}
	}
	return out, nil
}

func stringsOf(r gjson.Result) []string {
	items := r.Array()
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = item.String()
	}
	return out
}

func nonNil(lines []string) []string {
	if lines == nil {
		return []string{}
	}
	return lines
}
