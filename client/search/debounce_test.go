package search

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu      sync.Mutex
	results []string
	errs    []error
	clears  int
}

func (r *recorder) config(delay time.Duration) Config[string] {
	return Config[string]{
		Delay: delay,
		OnResult: func(_ string, res string) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.results = append(r.results, res)
		},
		OnError: func(_ string, err error) {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.errs = append(r.errs, err)
		},
		OnClear: func() {
			r.mu.Lock()
			defer r.mu.Unlock()
			r.clears++
		},
	}
}

func (r *recorder) snapshot() ([]string, []error, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.results...), append([]error(nil), r.errs...), r.clears
}

func TestDebouncer_BurstIssuesOneRequest(t *testing.T) {
	var (
		calls   int32
		queries = make(chan string, 3)
		rec     recorder
	)
	d := New(context.Background(), func(_ context.Context, q string) (string, error) {
		atomic.AddInt32(&calls, 1)
		queries <- q
		return "results for " + q, nil
	}, rec.config(50*time.Millisecond))
	defer d.Close()

	d.Submit("d")
	d.Submit("du")
	d.Submit("dune")

	require.Eventually(t, func() bool {
		res, _, _ := rec.snapshot()
		return len(res) == 1
	}, time.Second, 5*time.Millisecond)
	time.Sleep(100 * time.Millisecond)

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	assert.Equal(t, "dune", <-queries)
	res, errs, _ := rec.snapshot()
	assert.Equal(t, []string{"results for dune"}, res)
	assert.Empty(t, errs)
}

func TestDebouncer_SupersededRequestIsCancelledSilently(t *testing.T) {
	var rec recorder
	started := make(chan string, 2)
	d := New(context.Background(), func(ctx context.Context, q string) (string, error) {
		started <- q
		if q == "du" {
			<-ctx.Done()
			return "", ctx.Err()
		}
		return "results for " + q, nil
	}, rec.config(10*time.Millisecond))
	defer d.Close()

	d.Submit("du")
	require.Equal(t, "du", <-started)
	d.Submit("dune")
	require.Equal(t, "dune", <-started)

	require.Eventually(t, func() bool {
		res, _, _ := rec.snapshot()
		return len(res) == 1
	}, time.Second, 5*time.Millisecond)
	res, errs, _ := rec.snapshot()
	assert.Equal(t, []string{"results for dune"}, res)
	assert.Empty(t, errs)
}

func TestDebouncer_StaleResultIgnoringCancelIsDropped(t *testing.T) {
	var rec recorder
	release := make(chan struct{})
	started := make(chan string, 2)
	d := New(context.Background(), func(_ context.Context, q string) (string, error) {
		started <- q
		if q == "old" {
			<-release
			return "", errors.New("late failure")
		}
		return "results for " + q, nil
	}, rec.config(10*time.Millisecond))
	defer d.Close()

	d.Submit("old")
	require.Equal(t, "old", <-started)
	d.Submit("new")
	require.Equal(t, "new", <-started)
	require.Eventually(t, func() bool {
		res, _, _ := rec.snapshot()
		return len(res) == 1
	}, time.Second, 5*time.Millisecond)

	close(release)
	time.Sleep(30 * time.Millisecond)

	res, errs, _ := rec.snapshot()
	assert.Equal(t, []string{"results for new"}, res)
	assert.Empty(t, errs)
}

func TestDebouncer_ErrorOfCurrentQueryIsReported(t *testing.T) {
	var rec recorder
	d := New(context.Background(), func(context.Context, string) (string, error) {
		return "", errors.New("gateway: 502")
	}, rec.config(10*time.Millisecond))
	defer d.Close()

	d.Submit("dune")

	require.Eventually(t, func() bool {
		_, errs, _ := rec.snapshot()
		return len(errs) == 1
	}, time.Second, 5*time.Millisecond)
}

func TestDebouncer_EmptyQueryClearsWithoutRequest(t *testing.T) {
	var (
		rec   recorder
		calls int32
	)
	d := New(context.Background(), func(context.Context, string) (string, error) {
		atomic.AddInt32(&calls, 1)
		return "x", nil
	}, rec.config(10*time.Millisecond))
	defer d.Close()

	d.Submit("du")
	d.Submit("   ")
	time.Sleep(50 * time.Millisecond)

	_, _, clears := rec.snapshot()
	assert.Equal(t, 1, clears)
	assert.Equal(t, int32(0), atomic.LoadInt32(&calls))
}

func TestDebouncer_DefaultDelay(t *testing.T) {
	d := New(context.Background(), func(context.Context, string) (int, error) { return 0, nil }, Config[int]{})
	defer d.Close()
	assert.Equal(t, DefaultDelay, d.cfg.Delay)
}

func TestDebouncer_FlushRunsPendingQuery(t *testing.T) {
	var (
		rec   recorder
		calls int32
	)
	d := New(context.Background(), func(_ context.Context, q string) (string, error) {
		atomic.AddInt32(&calls, 1)
		return "results for " + q, nil
	}, rec.config(time.Hour))
	defer d.Close()

	d.Submit("d")
	d.Submit("dune")
	d.Flush()

	res, _, _ := rec.snapshot()
	assert.Equal(t, []string{"results for dune"}, res)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}
