package countz

import (
	"runtime"

	"github.com/rs/zerolog"
)

// Callsite is the static definition of a span or event.
// Declare callsites once, typically as package-level variables, and reuse
// them: interest is cached per *Callsite.
type Callsite struct {
	meta Metadata
}

// NewSpanCallsite declares a span callsite with the given field names.
func NewSpanCallsite(name string, level zerolog.Level, fields ...Name) *Callsite {
	return newCallsite(KindSpan, name, level, fields)
}

// NewEventCallsite declares an event callsite with the given field names.
func NewEventCallsite(name string, level zerolog.Level, fields ...Name) *Callsite {
	return newCallsite(KindEvent, name, level, fields)
}

func newCallsite(kind CallsiteKind, name string, level zerolog.Level, fields []Name) *Callsite {
	declared := make([]Name, len(fields))
	copy(declared, fields)
	return &Callsite{meta: Metadata{
		Name:   name,
		Target: callerTarget(3),
		Fields: declared,
		Level:  level,
		Kind:   kind,
	}}
}

// Metadata returns the callsite's metadata.
func (c *Callsite) Metadata() *Metadata {
	return &c.meta
}

// callerTarget names the package that declared the callsite.
func callerTarget(skip int) string {
	pc, _, _, ok := runtime.Caller(skip)
	if !ok {
		return ""
	}
	fn := runtime.FuncForPC(pc)
	if fn == nil {
		return ""
	}
	name := fn.Name()
	// Trim "pkg/path.Func" down to "pkg/path".
	slash := 0
	for i := len(name) - 1; i >= 0; i-- {
		if name[i] == '/' {
			slash = i
			break
		}
	}
	for i := slash; i < len(name); i++ {
		if name[i] == '.' {
			return name[:i]
		}
	}
	return name
}
