package clipboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister(t *testing.T) {
	cb := New(false)
	require.IsType(t, &Register{}, cb)

	text, err := cb.Read()
	require.NoError(t, err)
	assert.Empty(t, text)

	require.NoError(t, cb.Write("https://example.com"))
	text, err = cb.Read()
	require.NoError(t, err)
	assert.Equal(t, "https://example.com", text)
}
