package integration

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zoobzio/countz"
)

var nestedSpan = countz.NewSpanCallsite("nested", zerolog.TraceLevel, "depth_count")

// TestGlobalDefaultAggregates tests spans and events routed through the
// process-wide tracer installed by TestMain.
func TestGlobalDefaultAggregates(t *testing.T) {
	tracer := countz.Default()
	_, isListener := tracer.Subscriber().(*countz.Listener)
	require.True(t, isListener)

	ctx := context.Background()
	var parents []countz.SpanID
	for depth := 0; depth < 4; depth++ {
		var span *countz.ActiveSpan
		ctx, span = tracer.StartSpan(ctx, nestedSpan, countz.Int("depth_count", 1))
		parents = append(parents, span.ID())
	}
	assert.Equal(t, parents[len(parents)-1], countz.SpanFromContext(ctx))

	got, ok := globalStore.Snapshot().Get("depth_count")
	require.True(t, ok)
	assert.Equal(t, uint64(4), got)
}

// TestGlobalDefaultCannotBeReplaced tests that a second install is refused.
func TestGlobalDefaultCannotBeReplaced(t *testing.T) {
	before := countz.Default().Subscriber()

	_, other := countz.NewCounters()
	err := countz.SetGlobalDefault(other)

	assert.ErrorIs(t, err, countz.ErrGlobalDefaultSet)
	assert.Same(t, before, countz.Default().Subscriber())
}
