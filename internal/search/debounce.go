// Package search implements the debounced lookup scheduling used by the
// ticker, fund-name, and fund-holder search boxes. Each box owns one
// Debouncer; the timer lives and dies with the component, and a generation
// counter keeps a stale slow response from overwriting fresher results.
package search

import (
	"context"
	"strings"
	"sync"
	"time"
)

// FetchFunc queries the backend for the given term.
type FetchFunc[T any] func(ctx context.Context, term string) ([]T, error)

// DeliverFunc receives the de-duplicated results for the most recent term.
type DeliverFunc[T any] func(results []T)

// KeyFunc extracts the primary key used for de-duplication.
type KeyFunc[T any] func(item T) string

// Debouncer schedules a remote lookup after input has been idle for the
// configured delay. Input below the minimum length never queries; depending
// on HoldBelowMin the option list is either cleared or held at its last value.
type Debouncer[T any] struct {
	Delay        time.Duration
	MinLength    int
	HoldBelowMin bool

	fetch   FetchFunc[T]
	deliver DeliverFunc[T]
	key     KeyFunc[T]

	mu     sync.Mutex
	timer  *time.Timer
	gen    uint64
	closed bool
}

// New creates a Debouncer with the given idle delay and minimum input length.
func New[T any](delay time.Duration, minLength int, fetch FetchFunc[T], deliver DeliverFunc[T], key KeyFunc[T]) *Debouncer[T] {
	return &Debouncer[T]{
		Delay:     delay,
		MinLength: minLength,
		fetch:     fetch,
		deliver:   deliver,
		key:       key,
	}
}

// Input registers a keystroke. Any pending lookup is cancelled; a new one is
// scheduled only if the trimmed term meets the minimum length.
func (d *Debouncer[T]) Input(term string) {
	term = strings.TrimSpace(term)

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return
	}

	d.gen++
	gen := d.gen

	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}

	if len(term) < d.MinLength {
		if !d.HoldBelowMin {
			d.deliver(nil)
		}
		return
	}

	d.timer = time.AfterFunc(d.Delay, func() {
		d.run(term, gen)
	})
}

// run executes the fetch for a fired timer and delivers results unless a
// newer keystroke has superseded this generation.
func (d *Debouncer[T]) run(term string, gen uint64) {
	results, err := d.fetch(context.Background(), term)
	if err != nil {
		// Option list holds its last value; the fetch logs its own failure.
		return
	}

	d.mu.Lock()
	stale := d.closed || gen != d.gen
	d.mu.Unlock()
	if stale {
		return
	}

	d.deliver(d.dedupe(results))
}

// dedupe removes duplicate results by primary key, keeping first occurrence.
func (d *Debouncer[T]) dedupe(results []T) []T {
	if d.key == nil {
		return results
	}
	seen := make(map[string]bool, len(results))
	out := results[:0]
	for _, r := range results {
		k := strings.ToUpper(d.key(r))
		if seen[k] {
			continue
		}
		seen[k] = true
		out = append(out, r)
	}
	return out
}

// Close cancels any pending lookup and discards in-flight results.
func (d *Debouncer[T]) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
