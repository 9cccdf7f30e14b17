package view

import (
	"context"
	"strings"
	"sync"
)

// BatchFunc fetches one batch of rows starting at offset.
type BatchFunc[T any] func(ctx context.Context, offset, limit int) ([]T, error)

// Pager accumulates rows loaded in fixed-size batches as the bottom of a
// table scrolls into view. A loading flag prevents overlapping requests; a
// batch shorter than the page size marks the pager exhausted, suppressing
// further fetches.
type Pager[T any] struct {
	pageSize int
	key      func(T) string

	mu        sync.Mutex
	rows      []T
	seen      map[string]bool
	loading   bool
	exhausted bool
}

// NewPager creates a Pager with the given batch size and de-duplication key.
func NewPager[T any](pageSize int, key func(T) string) *Pager[T] {
	return &Pager[T]{
		pageSize: pageSize,
		key:      key,
		seen:     make(map[string]bool),
	}
}

// Rows returns a copy of the currently loaded rows.
func (p *Pager[T]) Rows() []T {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]T, len(p.rows))
	copy(out, p.rows)
	return out
}

// Len returns the number of loaded rows.
func (p *Pager[T]) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.rows)
}

// Exhausted reports whether the final short batch has been seen.
func (p *Pager[T]) Exhausted() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.exhausted
}

// Reset clears loaded rows and flags, for sort changes that refetch page 0.
func (p *Pager[T]) Reset() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.rows = nil
	p.seen = make(map[string]bool)
	p.loading = false
	p.exhausted = false
}

// LoadMore fetches the next batch and appends de-duplicated rows.
// Returns the number of rows added. Calls while a fetch is in flight or
// after exhaustion are no-ops.
func (p *Pager[T]) LoadMore(ctx context.Context, fetch BatchFunc[T]) (int, error) {
	p.mu.Lock()
	if p.loading || p.exhausted {
		p.mu.Unlock()
		return 0, nil
	}
	p.loading = true
	offset := len(p.rows)
	p.mu.Unlock()

	batch, err := fetch(ctx, offset, p.pageSize)

	p.mu.Lock()
	defer p.mu.Unlock()
	p.loading = false

	if err != nil {
		return 0, err
	}

	added := 0
	for _, row := range batch {
		k := strings.ToUpper(p.key(row))
		if p.seen[k] {
			continue
		}
		p.seen[k] = true
		p.rows = append(p.rows, row)
		added++
	}

	if len(batch) < p.pageSize {
		p.exhausted = true
	}
	return added, nil
}
