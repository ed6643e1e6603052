package countz

import (
	"fmt"

	"github.com/rs/zerolog"
)

// SpanID identifies a span within a Subscriber.
type SpanID uint64

// NoSpan is the reserved null span identifier.
const NoSpan SpanID = 0

// CallsiteKind tells spans and events apart.
type CallsiteKind uint8

const (
	KindSpan CallsiteKind = iota + 1
	KindEvent
)

func (k CallsiteKind) String() string {
	switch k {
	case KindSpan:
		return "span"
	case KindEvent:
		return "event"
	default:
		return fmt.Sprintf("CallsiteKind(%d)", uint8(k))
	}
}

// Metadata describes the static schema of a span or event definition site.
type Metadata struct {
	Name   string
	Target string
	Fields []Name
	Level  zerolog.Level
	Kind   CallsiteKind
}

// HasField reports whether name is declared by the callsite.
func (m *Metadata) HasField(name Name) bool {
	for _, f := range m.Fields {
		if f == name {
			return true
		}
	}
	return false
}

// Interest is a Subscriber's cached decision about a callsite.
type Interest uint8

const (
	// InterestNever disables the callsite for good.
	InterestNever Interest = iota
	// InterestSometimes asks Subscriber.Enabled every time.
	InterestSometimes
	// InterestAlways enables the callsite for good.
	InterestAlways
)

func (i Interest) String() string {
	switch i {
	case InterestNever:
		return "never"
	case InterestSometimes:
		return "sometimes"
	case InterestAlways:
		return "always"
	default:
		return fmt.Sprintf("Interest(%d)", uint8(i))
	}
}

// Attributes are the initial values of a new span.
type Attributes struct {
	Metadata *Metadata
	Values   Fields
	Parent   SpanID
}

// Event is a point-in-time occurrence.
type Event struct {
	Metadata *Metadata
	Values   Fields
	Parent   SpanID
}

// Subscriber receives callsite registrations, spans and events from a Tracer.
// All methods are called synchronously on the emitting goroutine and must be
// safe for concurrent use.
type Subscriber interface {
	// RegisterCallsite is called once per callsite per Tracer.
	RegisterCallsite(meta *Metadata) Interest
	// Enabled is a per-use check for callsites of InterestSometimes.
	Enabled(meta *Metadata) bool
	// NewSpan returns a fresh, non-zero identifier for the span.
	NewSpan(attrs *Attributes) SpanID
	// Record adds values to an existing span.
	Record(id SpanID, values Fields)
	// RecordFollowsFrom notes that id was caused by follows.
	RecordFollowsFrom(id, follows SpanID)
	Event(ev *Event)
	Enter(id SpanID)
	Exit(id SpanID)
}

// noopSubscriber disables every callsite.
type noopSubscriber struct{}

func (noopSubscriber) RegisterCallsite(*Metadata) Interest { return InterestNever }
func (noopSubscriber) Enabled(*Metadata) bool              { return false }
func (noopSubscriber) NewSpan(*Attributes) SpanID          { return NoSpan }
func (noopSubscriber) Record(SpanID, Fields)               {}
func (noopSubscriber) RecordFollowsFrom(SpanID, SpanID)    {}
func (noopSubscriber) Event(*Event)                        {}
func (noopSubscriber) Enter(SpanID)                        {}
func (noopSubscriber) Exit(SpanID)                         {}
