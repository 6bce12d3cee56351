package activity

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/kjeyarn/lending-gateway/client/api"
)

const DefaultInterval = 30 * time.Second

type Fetcher interface {
	RecentActivity(ctx context.Context) ([]api.Activity, error)
}

type Session interface {
	Authenticated() bool
}

// LastViewedStore persists when the viewer last opened the activity list.
type LastViewedStore interface {
	LastViewed(ctx context.Context) (time.Time, error)
	SetLastViewed(ctx context.Context, t time.Time) error
}

type Option func(*Poller)

func WithInterval(d time.Duration) Option {
	return func(p *Poller) {
		p.interval = d
	}
}

// OnUpdate is called after every successful poll with the unread count.
func OnUpdate(fn func(unread int, activities []api.Activity)) Option {
	return func(p *Poller) {
		p.onUpdate = fn
	}
}

type Poller struct {
	log      *zap.Logger
	fetcher  Fetcher
	session  Session
	store    LastViewedStore
	interval time.Duration
	onUpdate func(unread int, activities []api.Activity)

	mu         sync.Mutex
	activities []api.Activity
	lastViewed time.Time
	unread     int
}

func New(log *zap.Logger, fetcher Fetcher, session Session, store LastViewedStore, opts ...Option) *Poller {
	p := &Poller{
		log:      log,
		fetcher:  fetcher,
		session:  session,
		store:    store,
		interval: DefaultInterval,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run polls immediately and then on every tick until ctx is done.
func (p *Poller) Run(ctx context.Context) error {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		if err := p.Poll(ctx); err != nil && ctx.Err() == nil {
			p.log.Warn("activity poll", zap.Error(err))
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// Poll fetches recent activity once. It is a no-op without a session.
func (p *Poller) Poll(ctx context.Context) error {
	if !p.session.Authenticated() {
		return nil
	}
	activities, err := p.fetcher.RecentActivity(ctx)
	if err != nil {
		return err
	}
	stored, err := p.store.LastViewed(ctx)
	if err != nil {
		p.log.Warn("last viewed", zap.Error(err))
	}

	p.mu.Lock()
	if stored.After(p.lastViewed) {
		p.lastViewed = stored
	}
	p.activities = activities
	p.unread = countAfter(activities, p.lastViewed)
	unread, snapshot := p.unread, p.snapshotLocked()
	p.mu.Unlock()

	if p.onUpdate != nil {
		p.onUpdate(unread, snapshot)
	}
	return nil
}

func (p *Poller) Unread() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.unread
}

func (p *Poller) Activities() []api.Activity {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.snapshotLocked()
}

// Open marks everything up to now as seen. The badge drops to zero before
// the timestamp is persisted.
func (p *Poller) Open(ctx context.Context, now time.Time) error {
	p.mu.Lock()
	p.unread = 0
	if now.After(p.lastViewed) {
		p.lastViewed = now
	}
	p.mu.Unlock()

	return p.store.SetLastViewed(ctx, now)
}

func (p *Poller) snapshotLocked() []api.Activity {
	return append([]api.Activity(nil), p.activities...)
}

func countAfter(activities []api.Activity, since time.Time) int {
	n := 0
	for _, a := range activities {
		if a.CreatedAt.After(since) {
			n++
		}
	}
	return n
}

// MemoryStore keeps the last-viewed time in process memory.
type MemoryStore struct {
	mu sync.Mutex
	t  time.Time
}

func (s *MemoryStore) LastViewed(context.Context) (time.Time, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.t, nil
}

func (s *MemoryStore) SetLastViewed(_ context.Context, t time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.t = t
	return nil
}
