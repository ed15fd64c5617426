package usecase

import (
	"context"
	"testing"
	"time"
	_ "time/tzdata"

	"eightify/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryGetCreatesOnce(t *testing.T) {
	f := newTrackerFixture()
	reg := NewRegistry(f.opts, time.Hour)
	ctx := context.Background()

	a := reg.Get(ctx, "client-1", "", nil)
	b := reg.Get(ctx, "client-1", "", nil)
	c := reg.Get(ctx, "client-2", "", nil)

	assert.Same(t, a, b)
	assert.NotSame(t, a, c)
	assert.Equal(t, 2, reg.Len())

	found, ok := reg.Lookup("client-2")
	assert.True(t, ok)
	assert.Same(t, c, found)

	reg.Remove("client-2")
	_, ok = reg.Lookup("client-2")
	assert.False(t, ok)
}

func TestRegistryGetSyncsIdentityAndZone(t *testing.T) {
	f := newTrackerFixture()
	f.durable.seed("u1", "2024-05-01", model.DailyTotals{Productive: 5})
	reg := NewRegistry(f.opts, time.Hour)
	ctx := context.Background()

	tr := reg.Get(ctx, "client-1", "u1", nil)
	assert.True(t, tr.Status().SignedIn)
	assert.Equal(t, int64(5), tr.Status().Totals.Productive)

	tr = reg.Get(ctx, "client-1", "", nil)
	assert.False(t, tr.Status().SignedIn)

	f.clock.Set(time.Date(2024, 5, 1, 20, 0, 0, 0, time.UTC))
	tr = reg.Get(ctx, "client-1", "", time.FixedZone("JST", 9*60*60))
	assert.True(t, tr.CheckRollover(ctx))
	assert.Equal(t, "2024-05-02", tr.Status().DayKey)
}

func TestRegistryGetWithoutZoneKeepsTotals(t *testing.T) {
	f := newTrackerFixture()
	la, err := time.LoadLocation("America/Los_Angeles")
	require.NoError(t, err)
	f.clock.Set(time.Date(2024, 5, 2, 1, 0, 0, 0, time.UTC))
	reg := NewRegistry(f.opts, time.Hour)
	ctx := context.Background()

	tr := reg.Get(ctx, "client-1", "", la)
	_, _, err = tr.Start(ctx, model.CategoryProductive, "", "")
	require.NoError(t, err)
	f.clock.Advance(100 * time.Second)
	tr.Stop(ctx)
	require.Equal(t, "2024-05-01", tr.Status().DayKey)

	tr = reg.Get(ctx, "client-1", "", nil)
	assert.Zero(t, reg.CheckRollovers(ctx))
	assert.Equal(t, "2024-05-01", tr.Status().DayKey)
	assert.Equal(t, int64(100), tr.Status().Totals.Productive)

	raw, ok, err := f.guest.Get(ctx, GuestKey("timeTrackerData", "client-1"))
	require.NoError(t, err)
	require.True(t, ok)
	snap, err := model.DecodeGuestSnapshot(raw)
	require.NoError(t, err)
	assert.Equal(t, "2024-05-01", snap.DayKey)
	assert.Equal(t, int64(100), snap.Accumulated.Productive)
}

func TestRegistryGetEarlierDayKeepsTotals(t *testing.T) {
	f := newTrackerFixture()
	la, err := time.LoadLocation("America/Los_Angeles")
	require.NoError(t, err)
	f.clock.Set(time.Date(2024, 5, 2, 1, 0, 0, 0, time.UTC))
	reg := NewRegistry(f.opts, time.Hour)
	ctx := context.Background()

	tr := reg.Get(ctx, "client-1", "", time.UTC)
	_, _, err = tr.Start(ctx, model.CategorySleep, "", "")
	require.NoError(t, err)
	f.clock.Advance(100 * time.Second)
	tr.Stop(ctx)
	require.Equal(t, "2024-05-02", tr.Status().DayKey)

	tr = reg.Get(ctx, "client-1", "", la)
	assert.Zero(t, reg.CheckRollovers(ctx))
	assert.Equal(t, "2024-05-02", tr.Status().DayKey)
	assert.Equal(t, int64(100), tr.Status().Totals.Sleep)

	tr = reg.Get(ctx, "client-1", "", time.UTC)
	assert.Zero(t, reg.CheckRollovers(ctx))
	assert.Equal(t, int64(100), tr.Status().Totals.Sleep)
}

func TestRegistryCheckRollovers(t *testing.T) {
	f := newTrackerFixture()
	reg := NewRegistry(f.opts, time.Hour)
	ctx := context.Background()

	reg.Get(ctx, "client-1", "", nil)
	reg.Get(ctx, "client-2", "u1", nil)
	assert.Zero(t, reg.CheckRollovers(ctx))

	f.clock.Advance(15 * time.Hour)
	assert.Equal(t, 2, reg.CheckRollovers(ctx))
	assert.Zero(t, reg.CheckRollovers(ctx))
}

func TestRegistryEvictIdle(t *testing.T) {
	f := newTrackerFixture()
	reg := NewRegistry(f.opts, time.Hour)
	ctx := context.Background()

	idle := reg.Get(ctx, "idle", "", nil)
	require.NotNil(t, idle)
	busy := reg.Get(ctx, "busy", "", nil)
	_, _, err := busy.Start(ctx, model.CategoryProductive, "", "")
	require.NoError(t, err)

	assert.Zero(t, reg.EvictIdle())

	f.clock.Advance(2 * time.Hour)
	assert.Equal(t, 1, reg.EvictIdle())
	_, ok := reg.Lookup("idle")
	assert.False(t, ok)
	_, ok = reg.Lookup("busy")
	assert.True(t, ok)
}

func TestRegistryEvictIdleDoesNotBlockGet(t *testing.T) {
	f := newTrackerFixture()
	reg := NewRegistry(f.opts, time.Hour)
	ctx := context.Background()

	stuck := reg.Get(ctx, "stuck", "", nil)
	reg.Get(ctx, "idle", "", nil)
	f.clock.Advance(2 * time.Hour)

	stuck.mu.Lock()
	evicted := make(chan int, 1)
	go func() { evicted <- reg.EvictIdle() }()

	got := make(chan *Tracker, 1)
	go func() { got <- reg.Get(ctx, "fresh", "", nil) }()
	select {
	case tr := <-got:
		assert.Equal(t, "fresh", tr.ClientID())
	case <-time.After(time.Second):
		t.Fatal("Get blocked behind EvictIdle")
	}

	stuck.mu.Unlock()
	assert.Equal(t, 2, <-evicted)
	_, ok := reg.Lookup("fresh")
	assert.True(t, ok)
}

func TestRegistryRolloverTask(t *testing.T) {
	f := newTrackerFixture()
	reg := NewRegistry(f.opts, time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tr := reg.Get(ctx, "client-1", "", nil)
	f.clock.Advance(15 * time.Hour)
	reg.StartRolloverTask(ctx, 5*time.Millisecond)

	assert.Eventually(t, func() bool {
		return tr.Status().DayKey == "2024-05-02"
	}, time.Second, 5*time.Millisecond)
}

func TestRegistryCleanupTask(t *testing.T) {
	f := newTrackerFixture()
	reg := NewRegistry(f.opts, time.Minute)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reg.Get(ctx, "client-1", "", nil)
	f.clock.Advance(time.Hour)
	reg.StartCleanupTask(ctx, 5*time.Millisecond)

	assert.Eventually(t, func() bool { return reg.Len() == 0 }, time.Second, 5*time.Millisecond)
}
