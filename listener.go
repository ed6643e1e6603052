package countz

import (
	"strings"
	"sync/atomic"

	"github.com/rs/zerolog"
)

// Listener is a Subscriber that folds integer fields into a Store.
// Safe for concurrent use by multiple goroutines.
//
// A field is counted when its callsite declared a name containing the
// listener's pattern. Counters are created at callsite registration; values
// are applied by exact name lookup whenever a span or event carries them.
//
//nolint:govet // Field order optimized for readability over memory
type Listener struct {
	store   *Store
	pattern string
	log     zerolog.Logger
	ids     atomic.Uint64
}

// Option configures a Listener.
type Option func(*Listener)

// WithPattern sets the substring a field name must contain to be counted.
// An empty pattern is ignored.
func WithPattern(pattern string) Option {
	return func(l *Listener) {
		if pattern != "" {
			l.pattern = pattern
		}
	}
}

// WithLogger sets the logger used for callsite registration output.
func WithLogger(log zerolog.Logger) Option {
	return func(l *Listener) {
		l.log = log
	}
}

// NewListener creates a listener that updates store.
func NewListener(store *Store, opts ...Option) *Listener {
	l := &Listener{
		store:   store,
		pattern: DefaultPattern,
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// NewCounters creates a store and a listener bound to it.
func NewCounters(opts ...Option) (*Store, *Listener) {
	store := NewStore()
	return store, NewListener(store, opts...)
}

// Store returns the store the listener updates.
func (l *Listener) Store() *Store {
	return l.store
}

// Pattern returns the field-name substring the listener counts.
func (l *Listener) Pattern() string {
	return l.pattern
}

func (l *Listener) matches(name Name) bool {
	return strings.Contains(name, l.pattern)
}

// RegisterCallsite creates a counter for every matching field the callsite
// declares. Returns InterestAlways if any field matched, InterestNever
// otherwise.
func (l *Listener) RegisterCallsite(meta *Metadata) Interest {
	interest := InterestNever
	for _, name := range meta.Fields {
		if l.matches(name) {
			l.store.GetOrCreate(name)
			interest = InterestAlways
		}
	}

	l.log.Debug().
		Str("callsite", meta.Name).
		Str("target", meta.Target).
		Stringer("kind", meta.Kind).
		Strs("fields", meta.Fields).
		Stringer("interest", interest).
		Msg("callsite registered")

	return interest
}

// Enabled reports whether any declared field matches the pattern.
func (l *Listener) Enabled(meta *Metadata) bool {
	for _, name := range meta.Fields {
		if l.matches(name) {
			return true
		}
	}
	return false
}

// NewSpan applies the span's initial values and returns a new identifier.
func (l *Listener) NewSpan(attrs *Attributes) SpanID {
	attrs.Values.Record(l.visitor())
	return SpanID(l.ids.Add(1))
}

// Record applies values recorded on a span after creation.
// Counters are global, so the span id is not used.
func (l *Listener) Record(_ SpanID, values Fields) {
	values.Record(l.visitor())
}

// Event applies the event's values.
func (l *Listener) Event(ev *Event) {
	ev.Values.Record(l.visitor())
}

// RecordFollowsFrom is a no-op: counters do not model causality.
func (*Listener) RecordFollowsFrom(_, _ SpanID) {}

// Enter is a no-op.
func (*Listener) Enter(SpanID) {}

// Exit is a no-op.
func (*Listener) Exit(SpanID) {}

func (l *Listener) visitor() countVisitor {
	return countVisitor{store: l.store}
}

// countVisitor routes integer fields to existing counters.
type countVisitor struct {
	store *Store
}

func (v countVisitor) RecordInt(name Name, value int64) {
	if c, ok := v.store.Lookup(name); ok {
		c.Add(value)
	}
}

func (v countVisitor) RecordUint(name Name, value uint64) {
	if c, ok := v.store.Lookup(name); ok {
		c.AddUint(value)
	}
}

func (countVisitor) RecordBool(Name, bool)     {}
func (countVisitor) RecordString(Name, string) {}
func (countVisitor) RecordDebug(Name, any)     {}
