// Package countz aggregates numeric fields of structured tracing events into
// named running counters.
//
// countz is a listener for hierarchical tracing events. It watches spans and
// point-in-time events, picks out fields whose names contain a naming
// convention (by default "count"), and folds their integer values into a set
// of process-wide counters.
//
// Core Components:
//   - Store: Thread-safe map from counter name to atomic counter.
//   - Listener: Subscriber that updates the Store from event fields.
//   - Tracer: Minimal host that drives any Subscriber from callsites.
//   - MetricsCollector: Prometheus collector over a Store.
//
// Basic Usage:
//
//	store, listener := countz.NewCounters()
//	countz.MustSetGlobalDefault(listener)
//
//	work := countz.NewSpanCallsite("work", zerolog.InfoLevel, "foo_count")
//	ctx, span := countz.Default().StartSpan(ctx, work, countz.Int("foo_count", 2))
//	span.InScope(func() {
//		countz.Default().Event(ctx, shaved, countz.Int("yak_count", 1))
//	})
//
//	store.Report(os.Stdout)
//
// Thread Safety:
//
// Store, Listener and Tracer are safe for concurrent use by multiple
// goroutines. Inserting a new counter name takes the Store's write lock;
// updating an existing counter only takes the read lock plus an atomic
// compare-and-swap, so updates never block each other.
//
// Callsite Interest:
//
// Each callsite is registered once per Tracer. The Listener creates the
// counters named by matching fields at that moment and the Tracer caches the
// resulting Interest for the lifetime of the process. Callsites with no
// matching field never reach the Listener again.
//
// Global Default:
//
// SetGlobalDefault installs one Subscriber for the whole process. It can be
// called once; there is no teardown.
package countz

// Name represents a field or counter name.
type Name = string

// DefaultPattern is the substring a field name must contain to be counted.
const DefaultPattern = "count"
