package usecase

import (
	"context"
	"log"
	"sync"
	"time"

	"eightify/utils"
)

// Registry holds the live trackers keyed by client id.
type Registry struct {
	mu       sync.RWMutex
	trackers map[string]*Tracker
	opts     TrackerOptions
	idleTTL  time.Duration
}

func NewRegistry(opts TrackerOptions, idleTTL time.Duration) *Registry {
	if opts.Clock == nil {
		opts.Clock = utils.RealClock{}
	}
	return &Registry{
		trackers: make(map[string]*Tracker),
		opts:     opts,
		idleTTL:  idleTTL,
	}
}

// Get returns the client's tracker, creating and loading it on first use,
// and syncs it with the caller's identity and timezone. A nil loc, sent by
// requests without a timezone header, keeps the tracker's current zone.
func (r *Registry) Get(ctx context.Context, clientID, userID string, loc *time.Location) *Tracker {
	r.mu.RLock()
	t, ok := r.trackers[clientID]
	r.mu.RUnlock()

	if !ok {
		r.mu.Lock()
		if t, ok = r.trackers[clientID]; !ok {
			opts := r.opts
			if loc != nil {
				opts.Location = loc
			}
			t = NewTracker(clientID, opts)
			r.trackers[clientID] = t
			utils.LiveTrackers.Set(float64(len(r.trackers)))
		}
		r.mu.Unlock()
	}

	t.Sync(ctx, userID, loc)
	return t
}

// Lookup returns an existing tracker without creating one.
func (r *Registry) Lookup(clientID string) (*Tracker, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.trackers[clientID]
	return t, ok
}

func (r *Registry) Remove(clientID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.trackers, clientID)
	utils.LiveTrackers.Set(float64(len(r.trackers)))
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.trackers)
}

func (r *Registry) snapshot() []*Tracker {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*Tracker, 0, len(r.trackers))
	for _, t := range r.trackers {
		list = append(list, t)
	}
	return list
}

// CheckRollovers runs the day-rollover check on every live tracker and
// returns how many rolled over.
func (r *Registry) CheckRollovers(ctx context.Context) int {
	rolled := 0
	for _, t := range r.snapshot() {
		if t.CheckRollover(ctx) {
			rolled++
		}
	}
	return rolled
}

// EvictIdle drops trackers that are idle for longer than the idle TTL.
// Idleness is checked outside the registry lock.
func (r *Registry) EvictIdle() int {
	now := r.opts.Clock.Now()

	r.mu.RLock()
	candidates := make(map[string]*Tracker, len(r.trackers))
	for id, t := range r.trackers {
		candidates[id] = t
	}
	r.mu.RUnlock()

	var idle []string
	for id, t := range candidates {
		if t.Idle(now, r.idleTTL) {
			idle = append(idle, id)
		}
	}
	if len(idle) == 0 {
		return 0
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	evicted := 0
	for _, id := range idle {
		// Replaced meanwhile by Remove and a fresh Get.
		if r.trackers[id] != candidates[id] {
			continue
		}
		delete(r.trackers, id)
		evicted++
	}
	utils.LiveTrackers.Set(float64(len(r.trackers)))
	return evicted
}

// StartRolloverTask checks for a new calendar day every interval until ctx
// is cancelled, so totals reset without any client interaction.
func (r *Registry) StartRolloverTask(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := r.CheckRollovers(ctx); n > 0 {
					log.Printf("Day rollover reset %d trackers", n)
				}
			}
		}
	}()
}

// StartCleanupTask evicts idle trackers every interval until ctx is cancelled.
func (r *Registry) StartCleanupTask(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := r.EvictIdle(); n > 0 {
					log.Printf("Evicted %d idle trackers", n)
				}
			}
		}
	}()
}
