package countz

import (
	"errors"
	"sync/atomic"
)

// ErrGlobalDefaultSet is returned when a global default subscriber is
// installed twice.
var ErrGlobalDefaultSet = errors.New("countz: global default subscriber already set")

var (
	globalTracer atomic.Pointer[Tracer]
	noopTracer   = New(nil)
)

// SetGlobalDefault installs sub as the process-wide subscriber.
// It succeeds once; later calls return ErrGlobalDefaultSet and leave the
// installed subscriber in place. There is no way to uninstall it.
func SetGlobalDefault(sub Subscriber) error {
	if sub == nil {
		return errors.New("countz: nil subscriber")
	}
	if !globalTracer.CompareAndSwap(nil, New(sub)) {
		return ErrGlobalDefaultSet
	}
	return nil
}

// MustSetGlobalDefault is like SetGlobalDefault but panics on error.
func MustSetGlobalDefault(sub Subscriber) {
	if err := SetGlobalDefault(sub); err != nil {
		panic(err)
	}
}

// Default returns the tracer for the global default subscriber.
// Before SetGlobalDefault it returns a tracer that disables every callsite.
func Default() *Tracer {
	if t := globalTracer.Load(); t != nil {
		return t
	}
	return noopTracer
}
