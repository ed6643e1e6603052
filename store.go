package countz

import (
	"fmt"
	"io"
	"math"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/zoobzio/clockz"
)

// Counter is a named, unsigned, atomically updated accumulator.
// Safe for concurrent use by multiple goroutines.
// Methods on a nil Counter are no-ops.
type Counter struct {
	name  Name
	value atomic.Uint64
}

// Name returns the counter's name.
func (c *Counter) Name() Name {
	if c == nil {
		return ""
	}
	return c.name
}

// Load returns the current value.
func (c *Counter) Load() uint64 {
	if c == nil {
		return 0
	}
	return c.value.Load()
}

// Add applies a signed delta. Positive deltas saturate at math.MaxUint64,
// negative deltas saturate at zero.
func (c *Counter) Add(delta int64) {
	if c == nil || delta == 0 {
		return
	}
	if delta > 0 {
		c.AddUint(uint64(delta))
		return
	}
	// -math.MinInt64 overflows int64; negate in uint64 space.
	c.sub(uint64(-(delta + 1)) + 1)
}

// AddUint increments by n, saturating at math.MaxUint64.
func (c *Counter) AddUint(n uint64) {
	if c == nil || n == 0 {
		return
	}
	for {
		old := c.value.Load()
		next := old + n
		if next < old {
			next = math.MaxUint64
		}
		if old == next || c.value.CompareAndSwap(old, next) {
			return
		}
	}
}

func (c *Counter) sub(n uint64) {
	for {
		old := c.value.Load()
		var next uint64
		if old > n {
			next = old - n
		}
		if old == next || c.value.CompareAndSwap(old, next) {
			return
		}
	}
}

// Sample is one counter value read from a Store.
type Sample struct {
	Name  Name   `json:"name"`
	Value uint64 `json:"value"`
}

// Snapshot is a single-pass read of every counter in a Store.
// Each value is read atomically; the set as a whole is not.
type Snapshot struct {
	TakenAt time.Time `json:"taken_at"`
	Samples []Sample  `json:"samples"`
}

// Get returns the value sampled for name.
func (s Snapshot) Get(name Name) (uint64, bool) {
	i := sort.Search(len(s.Samples), func(i int) bool { return s.Samples[i].Name >= name })
	if i < len(s.Samples) && s.Samples[i].Name == name {
		return s.Samples[i].Value, true
	}
	return 0, false
}

// Store maps counter names to counters.
// Safe for concurrent use by multiple goroutines.
// Counters are never removed once created.
type Store struct {
	counters map[Name]*Counter
	clock    clockz.Clock
	mu       sync.RWMutex
}

// NewStore creates an empty store using the real clock.
func NewStore() *Store {
	return &Store{
		counters: make(map[Name]*Counter),
		clock:    clockz.RealClock,
	}
}

// WithClock sets the clock used to stamp snapshots and returns the store.
// Enables clock injection for deterministic testing.
func (s *Store) WithClock(clock clockz.Clock) *Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clock = clock
	return s
}

// GetOrCreate returns the counter for name, creating it at zero if absent.
// Repeated calls with the same name return the same Counter.
func (s *Store) GetOrCreate(name Name) *Counter {
	if c, ok := s.Lookup(name); ok {
		return c
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Another goroutine may have won the race for the write lock.
	if c, ok := s.counters[name]; ok {
		return c
	}
	c := &Counter{name: name}
	s.counters[name] = c
	return c
}

// Lookup returns the counter for name without creating it.
func (s *Store) Lookup(name Name) (*Counter, bool) {
	s.mu.RLock()
	c, ok := s.counters[name]
	s.mu.RUnlock()
	return c, ok
}

// Add applies delta to the counter for name.
// Returns false, changing nothing, if no such counter exists.
func (s *Store) Add(name Name, delta int64) bool {
	c, ok := s.Lookup(name)
	if !ok {
		return false
	}
	c.Add(delta)
	return true
}

// Len returns the number of counters.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.counters)
}

// Snapshot reads every counter, sorted by name.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	samples := make([]Sample, 0, len(s.counters))
	for name, c := range s.counters {
		samples = append(samples, Sample{Name: name, Value: c.Load()})
	}
	now := s.clock.Now()
	s.mu.RUnlock()

	sort.Slice(samples, func(i, j int) bool { return samples[i].Name < samples[j].Name })
	return Snapshot{TakenAt: now, Samples: samples}
}

// Report writes every counter as a "name: value" line.
func (s *Store) Report(w io.Writer) error {
	for _, sample := range s.Snapshot().Samples {
		if _, err := fmt.Fprintf(w, "%s: %d\n", sample.Name, sample.Value); err != nil {
			return fmt.Errorf("countz: report %s: %w", sample.Name, err)
		}
	}
	return nil
}
