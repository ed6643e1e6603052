package countz

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGlobalDefaultInstallsOnce is the only test in this package that touches
// the global slot.
func TestGlobalDefaultInstallsOnce(t *testing.T) {
	cs := NewEventCallsite("global", zerolog.InfoLevel, "yak_count")

	// Before installation the default tracer drops everything.
	assert.False(t, Default().Enabled(cs))

	store, listener := NewCounters()
	require.NoError(t, SetGlobalDefault(listener))
	assert.Same(t, listener, Default().Subscriber())

	_, other := NewCounters()
	err := SetGlobalDefault(other)
	assert.ErrorIs(t, err, ErrGlobalDefaultSet)
	assert.PanicsWithValue(t, ErrGlobalDefaultSet, func() { MustSetGlobalDefault(other) })
	assert.Same(t, listener, Default().Subscriber(), "second install must not replace the first")

	assert.Error(t, SetGlobalDefault(nil))

	// A fresh callsite reaches the installed listener.
	fresh := NewEventCallsite("global-fresh", zerolog.InfoLevel, "yak_count")
	Default().Event(context.Background(), fresh, Int("yak_count", 4))

	v, ok := store.Snapshot().Get("yak_count")
	require.True(t, ok)
	assert.Equal(t, uint64(4), v)
}
