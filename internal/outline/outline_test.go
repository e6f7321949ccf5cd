package outline

import (
	"context"
	"sync/atomic"
	"testing"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bethropolis/tidemark/internal/change"
)

const doc = "# Title\n\ntext\n\nSub\n---\n\n### Third ###\n"

var reset = change.IncrementalEvent{
	Origin:  "reset",
	Changes: []change.ClassifiedChange{{Action: change.ActionReset}},
}

func TestFullParseHeadings(t *testing.T) {
	o := New()
	defer o.Close()

	require.NoError(t, o.Update(context.Background(), []byte(doc), []change.IncrementalEvent{reset}))

	assert.Equal(t, []Heading{
		{Level: 1, Line: 1, Title: "Title"},
		{Level: 2, Line: 5, Title: "Sub"},
		{Level: 3, Line: 8, Title: "Third"},
	}, o.Headings())

	h, ok := o.HeadingAt(6)
	require.True(t, ok)
	assert.Equal(t, "Sub", h.Title)
	_, ok = o.HeadingAt(0)
	assert.False(t, ok)
}

func TestIncrementalParse(t *testing.T) {
	o := New()
	defer o.Close()
	ctx := context.Background()
	require.NoError(t, o.Update(ctx, []byte(doc), []change.IncrementalEvent{reset}))

	edited := "# Title!\n\ntext\n\nSub\n---\n\n### Third ###\n"
	ev := change.IncrementalEvent{
		Origin:  "insert",
		Changes: []change.ClassifiedChange{{Action: change.ActionReplace, Line: 1, After: "# Title!"}},
	}
	require.NoError(t, o.Update(ctx, []byte(edited), []change.IncrementalEvent{ev}))

	full, incremental := o.Parses()
	assert.Equal(t, 1, full)
	assert.Equal(t, 1, incremental)
	assert.Equal(t, "Title!", o.Headings()[0].Title)

	unclassified := change.IncrementalEvent{Origin: "drop"}
	require.NoError(t, o.Update(ctx, []byte("## Only\n"), []change.IncrementalEvent{ev, unclassified}))
	full, _ = o.Parses()
	assert.Equal(t, 2, full)
	assert.Equal(t, []Heading{{Level: 2, Line: 1, Title: "Only"}}, o.Headings())
}

func TestUnchangedSourceSkipsParse(t *testing.T) {
	o := New()
	defer o.Close()
	ctx := context.Background()
	require.NoError(t, o.Update(ctx, []byte(doc), nil))

	ev := change.IncrementalEvent{
		Origin:  "insert",
		Changes: []change.ClassifiedChange{{Action: change.ActionReplace, Line: 3}},
	}
	require.NoError(t, o.Update(ctx, []byte(doc), []change.IncrementalEvent{ev}))

	full, incremental := o.Parses()
	assert.Equal(t, 1, full)
	assert.Equal(t, 0, incremental)
}

func TestDiffEdit(t *testing.T) {
	tests := []struct {
		name      string
		old, new  string
		firstLine int
		want      sitter.EditInput
	}{
		{
			name: "insert mid line", old: "abc\ndef", new: "abc\ndXef", firstLine: 2,
			want: sitter.EditInput{
				StartIndex: 5, OldEndIndex: 5, NewEndIndex: 6,
				StartPoint: sitter.Point{Row: 1, Column: 1}, OldEndPoint: sitter.Point{Row: 1, Column: 1},
				NewEndPoint: sitter.Point{Row: 1, Column: 2},
			},
		},
		{
			name: "join lines", old: "a\nb\nc", new: "ac", firstLine: 1,
			want: sitter.EditInput{
				StartIndex: 1, OldEndIndex: 4, NewEndIndex: 1,
				StartPoint: sitter.Point{Row: 0, Column: 1}, OldEndPoint: sitter.Point{Row: 2, Column: 0},
				NewEndPoint: sitter.Point{Row: 0, Column: 1},
			},
		},
		{
			name: "stale first line falls back to start", old: "xx\nyy", new: "x\nyy!", firstLine: 2,
			want: sitter.EditInput{
				StartIndex: 1, OldEndIndex: 5, NewEndIndex: 5,
				StartPoint: sitter.Point{Row: 0, Column: 1}, OldEndPoint: sitter.Point{Row: 1, Column: 2},
				NewEndPoint: sitter.Point{Row: 1, Column: 3},
			},
		},
		{
			name: "multibyte", old: "é", new: "éa", firstLine: 1,
			want: sitter.EditInput{
				StartIndex: 2, OldEndIndex: 2, NewEndIndex: 3,
				StartPoint: sitter.Point{Row: 0, Column: 2}, OldEndPoint: sitter.Point{Row: 0, Column: 2},
				NewEndPoint: sitter.Point{Row: 0, Column: 3},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := diffEdit([]byte(tt.old), []byte(tt.new), tt.firstLine)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}

	_, ok := diffEdit([]byte("same"), []byte("same"), 1)
	assert.False(t, ok)
}

type stringSource struct{ v atomic.Value }

func (s *stringSource) GetValue() string { return s.v.Load().(string) }

func TestManagerRunsInBackground(t *testing.T) {
	src := &stringSource{}
	src.v.Store(doc)
	var redraws atomic.Int32
	m := NewManager(New(), src, func() { redraws.Add(1) })
	defer m.Outline().Close()

	m.Update([]change.IncrementalEvent{reset})
	m.Wait()

	assert.Len(t, m.Outline().Headings(), 3)
	assert.EqualValues(t, 1, redraws.Load())

	m.Shutdown()
	m.Update([]change.IncrementalEvent{reset})
	m.Wait()
	assert.EqualValues(t, 1, redraws.Load(), "no work after shutdown")
}
