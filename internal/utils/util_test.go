package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRuneIndexToByteOffset(t *testing.T) {
	line := []byte("aé日b")
	assert.Equal(t, 0, RuneIndexToByteOffset(line, 0))
	assert.Equal(t, 1, RuneIndexToByteOffset(line, 1))
	assert.Equal(t, 3, RuneIndexToByteOffset(line, 2))
	assert.Equal(t, 6, RuneIndexToByteOffset(line, 3))
	assert.Equal(t, 7, RuneIndexToByteOffset(line, 4))
	assert.Equal(t, -1, RuneIndexToByteOffset(line, 5))
}

func TestVisualColumn(t *testing.T) {
	tests := []struct {
		line  string
		runes int
		want  int
	}{
		{"abc", 2, 2},
		{"\tx", 1, 4},
		{"a\tx", 2, 4},
		{"日本", 1, 2},
		{"ab", 10, 2},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, VisualColumn(tt.line, tt.runes, 4), "%q[%d]", tt.line, tt.runes)
	}
}

func TestRuneIndexAtVisualColumn(t *testing.T) {
	assert.Equal(t, 1, RuneIndexAtVisualColumn("日本", 2, 4))
	assert.Equal(t, 0, RuneIndexAtVisualColumn("\tx", 2, 4))
	assert.Equal(t, 1, RuneIndexAtVisualColumn("\tx", 4, 4))
	assert.Equal(t, 2, RuneIndexAtVisualColumn("ab", 9, 4))
}

func TestExpandTabs(t *testing.T) {
	assert.Equal(t, "plain", ExpandTabs("plain", 4))
	assert.Equal(t, "a   b", ExpandTabs("a\tb", 4))
	assert.Equal(t, "    b", ExpandTabs("\tb", 4))
}

func TestDebouncerRunsLastCall(t *testing.T) {
	var d Debouncer
	calls := make(chan int, 3)
	for i := 1; i <= 3; i++ {
		n := i
		d.Debounce(20*time.Millisecond, func() { calls <- n })
	}
	select {
	case n := <-calls:
		assert.Equal(t, 3, n)
	case <-time.After(time.Second):
		t.Fatal("debounced call never ran")
	}
	assert.Never(t, func() bool { return len(calls) > 0 }, 60*time.Millisecond, 10*time.Millisecond)
}

func TestDebouncerStop(t *testing.T) {
	var d Debouncer
	ran := make(chan struct{}, 1)
	d.Debounce(20*time.Millisecond, func() { ran <- struct{}{} })
	d.Stop()
	assert.Never(t, func() bool { return len(ran) > 0 }, 60*time.Millisecond, 10*time.Millisecond)
}
