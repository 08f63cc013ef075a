package watcher

import (
	"maps"
	"slices"
	"sync"
	"time"
)

// DefaultQuietPeriod is how long the template must stay unchanged before a
// regeneration runs.
const DefaultQuietPeriod = 100 * time.Millisecond

// Debouncer batches change notifications. A batch is delivered once no new
// path arrived for the quiet period, or when Flush is called.
type Debouncer struct {
	quiet   time.Duration
	deliver func(paths []string)

	mu      sync.Mutex
	changed map[string]struct{}
	gen     uint64
	timer   *time.Timer
}

// NewDebouncer returns a Debouncer that passes each batch to deliver. A nil
// deliver discards batches.
func NewDebouncer(quiet time.Duration, deliver func(paths []string)) *Debouncer {
	return &Debouncer{
		quiet:   quiet,
		deliver: deliver,
		changed: make(map[string]struct{}),
	}
}

// Add records path and restarts the quiet period.
func (d *Debouncer) Add(path string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.changed[path] = struct{}{}
	d.gen++
	gen := d.gen

	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.quiet, func() { d.expire(gen) })
}

// expire delivers the batch unless a later Add or Flush superseded gen.
func (d *Debouncer) expire(gen uint64) {
	d.mu.Lock()
	if gen != d.gen {
		d.mu.Unlock()
		return
	}
	d.timer = nil
	batch := d.take()
	d.mu.Unlock()

	d.emit(batch)
}

// Flush delivers the pending batch now and returns after deliver returns.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	d.gen++
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
	batch := d.take()
	d.mu.Unlock()

	d.emit(batch)
}

// take returns the sorted pending paths and resets the set. mu must be held.
func (d *Debouncer) take() []string {
	if len(d.changed) == 0 {
		return nil
	}
	batch := slices.Sorted(maps.Keys(d.changed))
	clear(d.changed)
	return batch
}

func (d *Debouncer) emit(batch []string) {
	if len(batch) > 0 && d.deliver != nil {
		d.deliver(batch)
	}
}
