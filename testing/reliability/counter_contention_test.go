package reliability

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/zoobzio/countz"
)

// Counter contention tests - verify exact sums while callsites register and
// events race across many goroutines.
// Environment: COUNTZ_RELIABILITY_LEVEL controls test intensity
//   basic: CI-safe fixed-iteration runs
//   stress: duration-bound runs sized by COUNTZ_RELIABILITY_* settings

func TestCounterContention(t *testing.T) {
	config := getReliabilityConfig()

	switch config.Level {
	case "basic":
		t.Run("registration_race", func(t *testing.T) { testRegistrationRace(t, 20, 16) })
		t.Run("exact_sums", func(t *testing.T) { testExactSums(t, config, 20, 500*time.Millisecond) })
	case "stress":
		t.Run("registration_race", func(t *testing.T) { testRegistrationRace(t, config.MaxGoroutines, config.Counters) })
		t.Run("exact_sums", func(t *testing.T) { testExactSums(t, config, config.MaxGoroutines, config.Duration) })
	default:
		t.Skip("COUNTZ_RELIABILITY_LEVEL not set, skipping reliability tests")
	}
}

// testRegistrationRace has every goroutine register every callsite at once;
// each counter must exist exactly once and start at zero.
func testRegistrationRace(t *testing.T, goroutines, counters int) {
	store, listener := countz.NewCounters()
	tracer := countz.New(listener)

	callsites := make([]*countz.Callsite, counters)
	for i := range callsites {
		callsites[i] = countz.NewEventCallsite(fmt.Sprintf("race-%d", i), zerolog.InfoLevel, fmt.Sprintf("race_%d_count", i))
	}

	start := make(chan struct{})
	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func(offset int) {
			defer wg.Done()
			<-start
			for i := range callsites {
				tracer.Interest(callsites[(i+offset)%len(callsites)])
			}
		}(g)
	}
	close(start)
	wg.Wait()

	if store.Len() != counters {
		t.Fatalf("expected %d counters, got %d", counters, store.Len())
	}
	for _, s := range store.Snapshot().Samples {
		if s.Value != 0 {
			t.Errorf("counter %s = %d, want 0", s.Name, s.Value)
		}
	}
}

// testExactSums emits events until the deadline and checks every counter
// equals the number of increments applied to it.
func testExactSums(t *testing.T, config ReliabilityConfig, goroutines int, duration time.Duration) {
	counters := config.Counters
	if counters <= 0 {
		counters = 1
	}

	store, listener := countz.NewCounters()
	tracer := countz.New(listener)

	callsites := make([]*countz.Callsite, counters)
	names := make([]string, counters)
	for i := range callsites {
		names[i] = fmt.Sprintf("sum_%d_count", i)
		callsites[i] = countz.NewEventCallsite(fmt.Sprintf("sum-%d", i), zerolog.InfoLevel, names[i], "ok")
	}

	applied := make([]atomic.Uint64, counters)
	ctx, cancel := context.WithTimeout(context.Background(), duration)
	defer cancel()

	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for n := id; ; n++ {
				select {
				case <-ctx.Done():
					return
				default:
				}
				i := n % counters
				tracer.Event(ctx, callsites[i], countz.Uint(names[i], 1), countz.Bool("ok", true))
				applied[i].Add(1)
			}
		}(g)
	}
	wg.Wait()

	snap := store.Snapshot()
	var total uint64
	for i, name := range names {
		got, ok := snap.Get(name)
		if !ok {
			t.Fatalf("counter %s missing", name)
		}
		if want := applied[i].Load(); got != want {
			t.Errorf("counter %s = %d, want %d", name, got, want)
		}
		total += got
	}
	t.Logf("applied %d increments across %d counters with %d goroutines", total, counters, goroutines)
}
