package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDispatchOrderAndDuplicates(t *testing.T) {
	m := NewManager()
	var calls []string

	h := func(name string) Handler {
		return func(e Event) bool {
			calls = append(calls, name)
			return false
		}
	}
	same := h("same")
	m.Subscribe(TypeTextChanged, h("first"))
	m.Subscribe(TypeTextChanged, same)
	m.Subscribe(TypeTextChanged, same)
	m.Subscribe(TypeCursorActivity, h("cursor"))

	m.Dispatch(TypeTextChanged, TextChangedData{})

	assert.Equal(t, []string{"first", "same", "same"}, calls)
	assert.Equal(t, 3, m.HandlerCount(TypeTextChanged))
	assert.Equal(t, 0, m.HandlerCount(TypeViewportScrolled))
}

func TestDispatchWithoutHandlers(t *testing.T) {
	m := NewManager()
	assert.NotPanics(t, func() { m.Dispatch(TypeViewportScrolled, ViewportScrolledData{Offset: 3}) })
}

func TestDispatchPanicPropagates(t *testing.T) {
	m := NewManager()
	reached := false
	m.Subscribe(TypeTextChanged, func(Event) bool { panic("handler failed") })
	m.Subscribe(TypeTextChanged, func(Event) bool { reached = true; return false })

	require.PanicsWithValue(t, "handler failed", func() { m.Dispatch(TypeTextChanged, nil) })
	assert.False(t, reached)
}

func TestSubscribeDuringDispatch(t *testing.T) {
	m := NewManager()
	count := 0
	m.Subscribe(TypeAppReady, func(Event) bool {
		m.Subscribe(TypeAppReady, func(Event) bool { count++; return false })
		return false
	})

	m.Dispatch(TypeAppReady, nil)
	assert.Equal(t, 0, count)
	m.Dispatch(TypeAppReady, nil)
	assert.Equal(t, 1, count)
}

func TestTypeString(t *testing.T) {
	assert.Equal(t, "text-changed", TypeTextChanged.String())
	assert.Equal(t, "unknown", Type(99).String())
}
