package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"eightify/model"
	"eightify/utils"
)

// DefaultPersistTimeout applies when TrackerOptions leaves PersistTimeout unset.
const DefaultPersistTimeout = 5 * time.Second

// TrackerOptions carries everything a Tracker needs besides its client id.
type TrackerOptions struct {
	Guest          GuestStore
	Durable        DurableStore
	Events         ActivityPublisher
	Clock          utils.Clock
	Location       *time.Location
	TickInterval   time.Duration
	GuestKeyPrefix string
	// PersistTimeout bounds the backend calls of one tracker operation.
	PersistTimeout time.Duration
}

// GuestKey is the guest snapshot key of a client.
func GuestKey(prefix, clientID string) string {
	return prefix + ":" + clientID
}

// Tracker is one client's timer, accumulator and reconciler behind a mutex.
type Tracker struct {
	mu       sync.Mutex
	clientID string
	clock    utils.Clock
	acc      *Accumulator
	engine   *TimerEngine
	rec      *Reconciler
	loaded   bool
	device   string
	lastSeen time.Time
	timeout  time.Duration

	subMu   sync.Mutex
	subs    map[int]chan model.Tick
	nextSub int
}

func NewTracker(clientID string, opts TrackerOptions) *Tracker {
	if opts.Clock == nil {
		opts.Clock = utils.RealClock{}
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.PersistTimeout <= 0 {
		opts.PersistTimeout = DefaultPersistTimeout
	}

	t := &Tracker{
		clientID: clientID,
		clock:    opts.Clock,
		lastSeen: opts.Clock.Now(),
		timeout:  opts.PersistTimeout,
		subs:     make(map[int]chan model.Tick),
	}
	t.acc = NewAccumulator(model.DayKey(opts.Clock.Now(), opts.Location))
	t.engine = NewTimerEngine(opts.Clock, t.acc, opts.TickInterval, t.broadcast)
	t.rec = NewReconciler(t.acc, ReconcilerOptions{
		Guest:    opts.Guest,
		Durable:  opts.Durable,
		Events:   opts.Events,
		Clock:    opts.Clock,
		Location: opts.Location,
		GuestKey: GuestKey(opts.GuestKeyPrefix, clientID),
	})
	return t
}

func (t *Tracker) ClientID() string {
	return t.clientID
}

// Sync applies the caller's timezone and auth state. It runs on every
// request, so the request's identity is the auth-state-change signal.
func (t *Tracker) Sync(ctx context.Context, userID string, loc *time.Location) {
	t.mu.Lock()
	defer t.mu.Unlock()
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	t.lastSeen = t.clock.Now()
	t.rec.SetLocation(loc)
	t.syncAuth(ctx, userID)
}

// SyncAuth is the auth-state-change callback. A running timer is left
// alone; whatever it records on stop goes to the backend active then.
func (t *Tracker) SyncAuth(ctx context.Context, userID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	t.syncAuth(ctx, userID)
}

func (t *Tracker) syncAuth(ctx context.Context, userID string) {
	if !t.loaded {
		t.loaded = true
		if userID == "" {
			t.rec.LoadGuest(ctx)
		} else {
			t.rec.SignIn(ctx, userID)
		}
		return
	}

	current := t.rec.UserID()
	switch {
	case current == userID:
		return
	case current == "":
		t.rec.SignIn(ctx, userID)
	case userID == "":
		t.rec.SignOut(ctx)
	default:
		t.rec.SignOut(ctx)
		t.rec.SignIn(ctx, userID)
	}
}

// Start begins an activity. A run already in progress is stopped and
// persisted first and returned as stopped. An invalid category changes
// nothing.
func (t *Tracker) Start(ctx context.Context, category model.Category, name, device string) (stopped *model.ActivityRecord, status model.TimerStatus, err error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	t.lastSeen = t.clock.Now()

	if !category.Valid() {
		return nil, t.status(), fmt.Errorf("%w: unknown category %q", model.ErrInvalidInput, category)
	}

	t.rec.CheckRollover(ctx)
	prevDevice := t.device
	stopped, err = t.engine.Start(category, name)
	if err != nil {
		return nil, t.status(), err
	}
	if stopped != nil {
		stopped.Device = prevDevice
		t.persist(ctx, stopped)
	}
	t.device = device
	return stopped, t.status(), nil
}

// Stop ends the running activity. The record is nil when nothing was
// running or the run was too short to count.
func (t *Tracker) Stop(ctx context.Context) (*model.ActivityRecord, model.TimerStatus) {
	t.mu.Lock()
	defer t.mu.Unlock()
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	t.lastSeen = t.clock.Now()

	t.rec.CheckRollover(ctx)
	record := t.engine.Stop()
	if record != nil {
		record.Device = t.device
		t.persist(ctx, record)
	}
	t.device = ""
	return record, t.status()
}

func (t *Tracker) persist(ctx context.Context, record *model.ActivityRecord) {
	if t.rec.SignedIn() {
		record.UserID = t.rec.UserID()
	}
	t.rec.Persist(ctx, *record)
}

func (t *Tracker) Status() model.TimerStatus {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.status()
}

func (t *Tracker) status() model.TimerStatus {
	st := model.TimerStatus{
		DayKey:   t.acc.DayKey(),
		SignedIn: t.rec.SignedIn(),
		Totals:   t.acc.Totals(),
	}
	if run, ok := t.engine.Current(); ok {
		start := run.Start
		st.Running = true
		st.Category = run.Category
		st.Name = run.Name
		st.StartedAt = &start
		st.ElapsedSeconds = t.engine.Elapsed()
	}
	return st
}

// Summary is today's totals plus the untracked remainder.
func (t *Tracker) Summary() model.DailySummary {
	t.mu.Lock()
	defer t.mu.Unlock()
	totals := t.acc.Totals()
	return model.DailySummary{
		DayKey:    t.acc.DayKey(),
		Totals:    totals,
		Total:     totals.Total(),
		Untracked: totals.Untracked(),
	}
}

func (t *Tracker) CheckRollover(ctx context.Context) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.rec.CheckRollover(ctx)
}

// Subscribe returns a channel of display ticks and a cancel func. Slow
// readers miss ticks rather than block the timer.
func (t *Tracker) Subscribe() (<-chan model.Tick, func()) {
	ch := make(chan model.Tick, 1)

	t.subMu.Lock()
	id := t.nextSub
	t.nextSub++
	t.subs[id] = ch
	t.subMu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			t.subMu.Lock()
			delete(t.subs, id)
			t.subMu.Unlock()
		})
	}
	return ch, cancel
}

func (t *Tracker) broadcast(tick model.Tick) {
	t.subMu.Lock()
	defer t.subMu.Unlock()
	for _, ch := range t.subs {
		select {
		case ch <- tick:
		default:
		}
	}
}

// Idle reports whether the tracker can be dropped: nothing running, no
// stream attached and untouched for ttl.
func (t *Tracker) Idle(now time.Time, ttl time.Duration) bool {
	t.subMu.Lock()
	subscribers := len(t.subs)
	t.subMu.Unlock()
	if subscribers > 0 {
		return false
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	return !t.engine.Running() && now.Sub(t.lastSeen) >= ttl
}
