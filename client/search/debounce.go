// Package search runs type-ahead queries: a request is issued only after the
// input has been quiet for the debounce delay, and a newer query cancels the
// one in flight.
package search

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"
)

const DefaultDelay = 300 * time.Millisecond

type SearchFunc[T any] func(ctx context.Context, query string) (T, error)

// Config wires the sinks. Sinks run with the debouncer locked and must not
// call Submit.
type Config[T any] struct {
	Delay    time.Duration
	OnResult func(query string, res T)
	OnError  func(query string, err error)
	OnClear  func()
}

type Debouncer[T any] struct {
	parent context.Context
	search SearchFunc[T]
	cfg    Config[T]

	mu      sync.Mutex
	gen     uint64
	pending string
	timer   *time.Timer
	cancel  context.CancelFunc
	closed  bool
	// one count per scheduled timer, released when its search returns
	wg sync.WaitGroup
}

func New[T any](ctx context.Context, fn SearchFunc[T], cfg Config[T]) *Debouncer[T] {
	if cfg.Delay <= 0 {
		cfg.Delay = DefaultDelay
	}
	return &Debouncer[T]{
		parent: ctx,
		search: fn,
		cfg:    cfg,
	}
}

// Submit replaces the pending query. An empty query clears the results
// right away without a request.
func (d *Debouncer[T]) Submit(query string) {
	query = strings.TrimSpace(query)

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return
	}
	d.gen++
	d.supersedeLocked()

	if query == "" {
		if d.cfg.OnClear != nil {
			d.cfg.OnClear()
		}
		return
	}
	gen := d.gen
	d.pending = query
	d.wg.Add(1)
	d.timer = time.AfterFunc(d.cfg.Delay, func() {
		defer d.wg.Done()
		d.fire(gen, query)
	})
}

// Flush runs the pending query without waiting out the delay and blocks
// until no request is in flight.
func (d *Debouncer[T]) Flush() {
	d.mu.Lock()
	var run func()
	if d.timer != nil && d.timer.Stop() {
		gen, query := d.gen, d.pending
		d.timer = nil
		run = func() {
			defer d.wg.Done()
			d.fire(gen, query)
		}
	}
	d.mu.Unlock()

	if run != nil {
		run()
	}
	d.wg.Wait()
}

// Close drops the pending query, cancels the request in flight and waits
// for it to return.
func (d *Debouncer[T]) Close() {
	d.mu.Lock()
	d.closed = true
	d.gen++
	d.supersedeLocked()
	d.mu.Unlock()
	d.wg.Wait()
}

func (d *Debouncer[T]) supersedeLocked() {
	if d.timer != nil {
		if d.timer.Stop() {
			d.wg.Done()
		}
		d.timer = nil
	}
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
}

func (d *Debouncer[T]) fire(gen uint64, query string) {
	d.mu.Lock()
	if gen != d.gen || d.closed {
		d.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(d.parent)
	d.cancel = cancel
	d.timer = nil
	d.mu.Unlock()
	defer cancel()

	res, err := d.search(ctx, query)

	d.mu.Lock()
	defer d.mu.Unlock()
	if gen != d.gen {
		return
	}
	d.cancel = nil
	switch {
	case errors.Is(err, context.Canceled):
	case err != nil:
		if d.cfg.OnError != nil {
			d.cfg.OnError(query, err)
		}
	default:
		if d.cfg.OnResult != nil {
			d.cfg.OnResult(query, res)
		}
	}
}
