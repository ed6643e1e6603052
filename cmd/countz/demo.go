package main

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/zoobzio/countz"
)

var (
	greatSpan = countz.NewSpanCallsite("my_great_span", zerolog.TraceLevel, "foo_count")
	otherSpan = countz.NewSpanCallsite("my other span", zerolog.TraceLevel, "foo_count", "baz_count")
	hiEvent   = countz.NewEventCallsite("hi from inside my span", zerolog.InfoLevel, "yak_shaved", "yak_count")
	failEvent = countz.NewEventCallsite("failed to shave yak", zerolog.WarnLevel, "yak_shaved", "yak_count")
)

// emitDemo shaves a yak inside two nested spans.
func emitDemo(ctx context.Context, tracer *countz.Tracer) {
	foo := uint64(2)

	ctx, span := tracer.StartSpan(ctx, greatSpan, countz.Uint("foo_count", foo))
	span.InScope(func() {
		foo++
		tracer.Event(ctx, hiEvent, countz.Bool("yak_shaved", true), countz.Int("yak_count", 1))

		innerCtx, inner := tracer.StartSpan(ctx, otherSpan,
			countz.Uint("foo_count", foo),
			countz.Int("baz_count", 5),
		)
		inner.InScope(func() {
			tracer.Event(innerCtx, failEvent, countz.Bool("yak_shaved", false), countz.Int("yak_count", -1))
		})
	})
}
