package integration

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/zoobzio/countz"
)

// Request-handling callsites shared by the integration suites.
var (
	requestSpan = countz.NewSpanCallsite("handle_request", zerolog.InfoLevel, "route", "request_count")
	queryEvent  = countz.NewEventCallsite("db_query", zerolog.DebugLevel, "table", "rows_count", "cached")
	retryEvent  = countz.NewEventCallsite("retry", zerolog.WarnLevel, "inflight_count", "attempt")
	auditEvent  = countz.NewEventCallsite("audit", zerolog.InfoLevel, "user", "ok")
)

// simulateRequest models one handled request: a span opened with one
// in-flight slot, a query, optional retries, and a closing decrement.
func simulateRequest(ctx context.Context, tracer *countz.Tracer, worker, retries int) {
	ctx, span := tracer.StartSpan(ctx, requestSpan,
		countz.String("route", fmt.Sprintf("/worker/%d", worker)),
		countz.Uint("request_count", 1),
	)
	span.InScope(func() {
		tracer.Event(ctx, queryEvent,
			countz.String("table", "users"),
			countz.Uint("rows_count", 3),
			countz.Bool("cached", worker%2 == 0),
		)
		tracer.Event(ctx, retryEvent, countz.Int("inflight_count", 1), countz.Int("attempt", 0))
		for attempt := 1; attempt <= retries; attempt++ {
			tracer.Event(ctx, retryEvent, countz.Int("inflight_count", 1), countz.Int("attempt", int64(attempt)))
			tracer.Event(ctx, retryEvent, countz.Int("inflight_count", -1), countz.Int("attempt", int64(attempt)))
		}
		tracer.Event(ctx, auditEvent, countz.String("user", "u"), countz.Bool("ok", true))
		tracer.Event(ctx, retryEvent, countz.Int("inflight_count", -1), countz.Int("attempt", 0))
	})
}

// runWorkers runs fn on n goroutines and waits for all of them.
func runWorkers(n int, fn func(worker int)) {
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			fn(worker)
		}(i)
	}
	wg.Wait()
}
