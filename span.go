package countz

import (
	"context"
)

// ActiveSpan is a handle to a span created by a Tracer.
// Safe for concurrent use by multiple goroutines.
// A disabled span (ID NoSpan) ignores every call.
type ActiveSpan struct {
	meta   *Metadata
	tracer *Tracer
	id     SpanID
}

// ID returns the span's identifier, or NoSpan if the span is disabled.
func (a *ActiveSpan) ID() SpanID {
	if a == nil {
		return NoSpan
	}
	return a.id
}

// Metadata returns the metadata of the span's callsite.
func (a *ActiveSpan) Metadata() *Metadata {
	return a.meta
}

// IsDisabled reports whether the span reaches no subscriber.
func (a *ActiveSpan) IsDisabled() bool {
	return a == nil || a.tracer == nil || a.id == NoSpan
}

// Record adds values to the span after creation.
func (a *ActiveSpan) Record(fields ...Field) {
	if a.IsDisabled() || len(fields) == 0 {
		return
	}
	a.tracer.subscriber.Record(a.id, Fields(fields))
}

// FollowsFrom notes that this span was caused by other.
func (a *ActiveSpan) FollowsFrom(other *ActiveSpan) {
	if a.IsDisabled() || other.IsDisabled() {
		return
	}
	a.tracer.subscriber.RecordFollowsFrom(a.id, other.id)
}

// Enter marks the span as active on the calling goroutine.
func (a *ActiveSpan) Enter() {
	if a.IsDisabled() {
		return
	}
	a.tracer.subscriber.Enter(a.id)
}

// Exit marks the span as no longer active.
func (a *ActiveSpan) Exit() {
	if a.IsDisabled() {
		return
	}
	a.tracer.subscriber.Exit(a.id)
}

// InScope runs fn between Enter and Exit.
// Exit runs even if fn panics.
func (a *ActiveSpan) InScope(fn func()) {
	a.Enter()
	defer a.Exit()
	fn()
}

// Context creates a new context with this span as the current span.
// A disabled span returns parent unchanged.
func (a *ActiveSpan) Context(parent context.Context) context.Context {
	if parent == nil {
		parent = context.Background()
	}
	if a.IsDisabled() {
		return parent
	}
	return context.WithValue(parent, spanKey, a.id)
}
