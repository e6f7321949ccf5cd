package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunReplay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trace.jsonl")
	rec := `{"seq":0,"origin":"setValue","from":{"line":0,"col":0},"to":{"line":0,"col":0},"inserted":["ab"],"removed":[""]}
{"seq":1,"origin":"input","from":{"line":0,"col":2},"to":{"line":0,"col":2},"inserted":["c"],"removed":[""]}
`
	require.NoError(t, os.WriteFile(path, []byte(rec), 0o644))

	var out bytes.Buffer
	require.Equal(t, 0, runReplay([]string{path}, &out))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], `"origin":"reset"`)
	assert.Contains(t, lines[1], `"origin":"insert"`)
	assert.Contains(t, lines[1], `"after":"abc"`)
}

func TestRunReplayUsage(t *testing.T) {
	var out bytes.Buffer
	assert.Equal(t, 2, runReplay(nil, &out))
	assert.Equal(t, 1, runReplay([]string{filepath.Join(t.TempDir(), "missing")}, &out))
}
