package trace

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/bethropolis/tidemark/internal/change"
	"github.com/bethropolis/tidemark/internal/config"
	"github.com/bethropolis/tidemark/internal/types"
	"github.com/bethropolis/tidemark/internal/widget"
)

func TestEncodeDelta(t *testing.T) {
	d := types.RawDelta{
		Origin:   types.OriginInput,
		From:     types.Position{Line: 1},
		To:       types.Position{Line: 1},
		Inserted: []string{"X"},
		Removed:  []string{""},
	}

	line, err := EncodeDelta(7, d)
	require.NoError(t, err)

	assert.NotContains(t, line, "\n")
	assert.Equal(t, int64(7), gjson.Get(line, "seq").Int())
	assert.Equal(t, "input", gjson.Get(line, "origin").String())
	assert.Equal(t, int64(1), gjson.Get(line, "from.line").Int())
	assert.Equal(t, `[""]`, gjson.Get(line, "removed").Raw)

	back, err := DecodeDelta(line)
	require.NoError(t, err)
	assert.Equal(t, d, back)
}

func TestDecodeRejectsBadRecords(t *testing.T) {
	_, err := DecodeDelta("not json")
	assert.ErrorIs(t, err, ErrBadRecord)

	_, err = DecodeDelta(`{"seq":1}`)
	assert.ErrorIs(t, err, ErrBadRecord)
}

func TestEncodeEvent(t *testing.T) {
	out, err := EncodeEvent(change.IncrementalEvent{
		Origin: "remove",
		Changes: []change.ClassifiedChange{
			{Action: change.ActionReplace, Line: 1, After: "AC"},
			{Action: change.ActionRemove, Line: 2},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "remove", gjson.Get(out, "origin").String())
	assert.Equal(t, int64(2), gjson.Get(out, "changes.#").Int())
	assert.Equal(t, "AC", gjson.Get(out, "changes.0.after").String())
	assert.Equal(t, "remove", gjson.Get(out, "changes.1.action").String())

	out, err = EncodeEvent(change.IncrementalEvent{Origin: "drop"})
	require.NoError(t, err)
	assert.Equal(t, "[]", gjson.Get(out, "changes").Raw)
}

func TestRecordAndReplay(t *testing.T) {
	var buf bytes.Buffer
	w := widget.New(config.DefaultWidgetOptions())
	NewRecorder(&buf).Attach(w)

	w.SetValue("A\nB\nC")
	require.NoError(t, w.ReplaceRange("", types.Position{Line: 0, Col: 1}, types.Position{Line: 2}, types.OriginDelete))
	require.NoError(t, w.InsertText("X"))
	require.Equal(t, "XAC", w.GetValue())
	assert.Equal(t, 3, strings.Count(buf.String(), "\n"))

	res, err := Replay(&buf, true)
	require.NoError(t, err)

	assert.Equal(t, "XAC", res.Value)
	require.Len(t, res.Steps, 3)
	assert.Equal(t, "reset", res.Steps[0].Events[0].Origin)
	assert.Equal(t, change.IncrementalEvent{
		Origin: "remove",
		Changes: []change.ClassifiedChange{
			{Action: change.ActionReplace, Line: 1, After: "AC"},
			{Action: change.ActionRemove, Line: 2},
		},
	}, res.Steps[1].Events[0])
	assert.Equal(t, "insert", res.Steps[2].Events[0].Origin)
	assert.Equal(t, 3, res.Steps[2].Line)
}

func TestReplayReportsLine(t *testing.T) {
	trace := `{"seq":0,"origin":"setValue","from":{"line":0,"col":0},"to":{"line":0,"col":0},"inserted":["a"],"removed":[""]}

garbage
`
	res, err := Replay(strings.NewReader(trace), false)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrBadRecord)
	assert.Contains(t, err.Error(), "line 3")
	assert.Len(t, res.Steps, 1)
}
