package countz

import (
	"context"
	"sync"
)

// contextKeyType is a private type for context keys to avoid collisions.
type contextKeyType string

const (
	spanKey contextKeyType = "countz"
)

// Tracer drives a Subscriber from callsites, spans and events.
// Safe for concurrent use by multiple goroutines.
//
// The first use of a callsite registers it with the Subscriber; the returned
// Interest is cached for the Tracer's lifetime and never re-evaluated.
//
//nolint:govet // Field order optimized for functionality over memory
type Tracer struct {
	subscriber Subscriber
	interests  map[*Callsite]Interest
	mu         sync.RWMutex
}

// New creates a tracer that dispatches to sub.
// A nil Subscriber disables every callsite.
func New(sub Subscriber) *Tracer {
	if sub == nil {
		sub = noopSubscriber{}
	}
	return &Tracer{
		subscriber: sub,
		interests:  make(map[*Callsite]Interest),
	}
}

// Subscriber returns the tracer's subscriber.
func (t *Tracer) Subscriber() Subscriber {
	return t.subscriber
}

// Interest returns the cached interest for cs, registering it on first use.
func (t *Tracer) Interest(cs *Callsite) Interest {
	t.mu.RLock()
	interest, ok := t.interests[cs]
	t.mu.RUnlock()
	if ok {
		return interest
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	if interest, ok := t.interests[cs]; ok {
		return interest
	}
	// Registration happens under the write lock so each callsite is
	// registered exactly once.
	interest = t.subscriber.RegisterCallsite(cs.Metadata())
	t.interests[cs] = interest
	return interest
}

// Enabled reports whether spans or events from cs would reach the
// subscriber. Check it before building expensive field values.
func (t *Tracer) Enabled(cs *Callsite) bool {
	switch t.Interest(cs) {
	case InterestNever:
		return false
	case InterestAlways:
		return true
	default:
		return t.subscriber.Enabled(cs.Metadata())
	}
}

// StartSpan creates a span from cs with the given initial values.
// If ctx carries a span, it becomes the parent. A disabled callsite yields
// a disabled span whose methods are no-ops.
func (t *Tracer) StartSpan(ctx context.Context, cs *Callsite, fields ...Field) (context.Context, *ActiveSpan) {
	// Handle nil context by creating a new one.
	if ctx == nil {
		ctx = context.Background()
	}

	if !t.Enabled(cs) {
		return ctx, &ActiveSpan{meta: cs.Metadata()}
	}

	id := t.subscriber.NewSpan(&Attributes{
		Metadata: cs.Metadata(),
		Values:   Fields(fields),
		Parent:   SpanFromContext(ctx),
	})

	span := &ActiveSpan{
		meta:   cs.Metadata(),
		tracer: t,
		id:     id,
	}
	return span.Context(ctx), span
}

// Event emits a point-in-time event from cs.
// The span carried by ctx, if any, is reported as its parent.
func (t *Tracer) Event(ctx context.Context, cs *Callsite, fields ...Field) {
	if !t.Enabled(cs) {
		return
	}
	t.subscriber.Event(&Event{
		Metadata: cs.Metadata(),
		Values:   Fields(fields),
		Parent:   SpanFromContext(ctx),
	})
}

// SpanFromContext extracts the current span id from a context.
// Returns NoSpan if no span is present.
func SpanFromContext(ctx context.Context) SpanID {
	if ctx == nil {
		return NoSpan
	}
	if id, ok := ctx.Value(spanKey).(SpanID); ok {
		return id
	}
	return NoSpan
}
