package usecase

import (
	"context"
	"log"
	"time"

	"eightify/model"
	"eightify/utils"
)

const (
	backendGuest   = "guest"
	backendDurable = "durable"
	backendEvents  = "events"
)

// ReconcilerOptions wires a Reconciler to its stores.
type ReconcilerOptions struct {
	Guest    GuestStore
	Durable  DurableStore
	Events   ActivityPublisher
	Clock    utils.Clock
	Location *time.Location
	GuestKey string
}

// Reconciler decides which backend reads and writes go through and keeps
// the accumulator consistent with it across loads, sign-in, sign-out and
// day rollover. Storage failures never reach the caller: reads degrade to
// zero totals and writes are logged while the in-memory totals are kept.
type Reconciler struct {
	guest    GuestStore
	durable  DurableStore
	events   ActivityPublisher
	clock    utils.Clock
	loc      *time.Location
	guestKey string

	acc    *Accumulator
	userID string
}

func NewReconciler(acc *Accumulator, opts ReconcilerOptions) *Reconciler {
	if opts.Clock == nil {
		opts.Clock = utils.RealClock{}
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	return &Reconciler{
		guest:    opts.Guest,
		durable:  opts.Durable,
		events:   opts.Events,
		clock:    opts.Clock,
		loc:      opts.Location,
		guestKey: opts.GuestKey,
		acc:      acc,
	}
}

// Today is the viewer's current day key.
func (r *Reconciler) Today() string {
	return model.DayKey(r.clock.Now(), r.loc)
}

func (r *Reconciler) SetLocation(loc *time.Location) {
	if loc != nil {
		r.loc = loc
	}
}

func (r *Reconciler) Location() *time.Location {
	return r.loc
}

func (r *Reconciler) SignedIn() bool {
	return r.userID != ""
}

func (r *Reconciler) UserID() string {
	return r.userID
}

// LoadGuest adopts the current guest snapshot, or starts from zero when the
// snapshot is missing, from an earlier day, unparseable or unreadable. A
// snapshot dated after today's key was written from a zone further east and
// is kept with its own day.
func (r *Reconciler) LoadGuest(ctx context.Context) {
	today := r.Today()
	r.acc.Reset(today)

	snap, ok := r.readGuestSnapshot(ctx)
	if !ok {
		return
	}
	saved := snap.SavedDayKey(r.loc)
	if saved < today {
		r.removeGuestSnapshot(ctx)
		return
	}
	r.acc.Restore(saved, snap.Accumulated)
}

// LoadDurable adopts today's durable aggregate; missing fields and failed
// reads both come back as zero.
func (r *Reconciler) LoadDurable(ctx context.Context) {
	today := r.Today()
	r.acc.Reset(today)

	stats, err := r.durable.GetDailyStats(ctx, r.userID, today)
	if err != nil {
		log.Printf("Error loading daily stats for %s: %v", r.userID, err)
		utils.TrackStorageFailure(backendDurable, "read")
		return
	}
	r.acc.Restore(today, stats.Totals())
}

// SignIn migrates today's guest totals into the user's durable aggregate
// and then loads that aggregate.
func (r *Reconciler) SignIn(ctx context.Context, userID string) {
	r.userID = userID
	r.migrateGuest(ctx)
	r.LoadDurable(ctx)
}

// SignOut drops the in-memory totals, leaves durable data alone and falls
// back to the guest path.
func (r *Reconciler) SignOut(ctx context.Context) {
	r.userID = ""
	r.acc.Reset(r.Today())
	r.LoadGuest(ctx)
}

// migrateGuest applies a current guest snapshot to its own day with atomic
// increments, so totals already recorded from another device are kept. The
// snapshot is removed once applied, or straight away when stale or
// corrupt. A failed increment keeps the snapshot for the next sign-in.
func (r *Reconciler) migrateGuest(ctx context.Context) {
	raw, ok, err := r.guest.Get(ctx, r.guestKey)
	if err != nil {
		log.Printf("Error reading guest snapshot %s for migration: %v", r.guestKey, err)
		utils.TrackStorageFailure(backendGuest, "read")
		return
	}
	if !ok {
		return
	}

	snap, err := model.DecodeGuestSnapshot(raw)
	if err != nil {
		log.Printf("Discarding corrupt guest snapshot %s: %v", r.guestKey, err)
		utils.GuestMigrations.WithLabelValues("corrupt").Inc()
		r.removeGuestSnapshot(ctx)
		return
	}

	day := snap.SavedDayKey(r.loc)
	if day < r.Today() {
		utils.GuestMigrations.WithLabelValues("stale").Inc()
		r.removeGuestSnapshot(ctx)
		return
	}

	if snap.Accumulated.IsZero() {
		utils.GuestMigrations.WithLabelValues("empty").Inc()
		r.removeGuestSnapshot(ctx)
		return
	}

	if err := r.durable.IncrementDailyStats(ctx, r.userID, day, snap.Accumulated); err != nil {
		log.Printf("Error migrating guest snapshot %s to %s: %v", r.guestKey, r.userID, err)
		utils.GuestMigrations.WithLabelValues("failed").Inc()
		utils.TrackStorageFailure(backendDurable, "migrate")
		return
	}
	log.Printf("Migrated guest totals %+v to user %s", snap.Accumulated, r.userID)
	utils.GuestMigrations.WithLabelValues("migrated").Inc()
	r.removeGuestSnapshot(ctx)
}

// Persist writes a stop event through to the active backend.
func (r *Reconciler) Persist(ctx context.Context, record model.ActivityRecord) {
	utils.RecordedSeconds.WithLabelValues(string(record.Category)).Add(float64(record.Duration))
	if !r.SignedIn() {
		utils.ActivitiesRecorded.WithLabelValues(string(record.Category), backendGuest).Inc()
		r.saveGuest(ctx)
		return
	}

	utils.ActivitiesRecorded.WithLabelValues(string(record.Category), backendDurable).Inc()
	record.UserID = r.userID
	if err := r.durable.AppendActivity(ctx, record); err != nil {
		log.Printf("Error appending activity %s for %s: %v", record.ID, r.userID, err)
		utils.TrackStorageFailure(backendDurable, "append")
	}

	deltas := model.DailyTotals{}.Add(record.Category, record.Duration)
	if err := r.durable.IncrementDailyStats(ctx, r.userID, record.DayKey, deltas); err != nil {
		log.Printf("Error incrementing daily stats for %s: %v", r.userID, err)
		utils.TrackStorageFailure(backendDurable, "increment")
	}

	if r.events != nil {
		if err := r.events.PublishActivity(ctx, record); err != nil {
			log.Printf("Error publishing activity %s: %v", record.ID, err)
			utils.TrackStorageFailure(backendEvents, "publish")
		}
	}
}

// CheckRollover resets the accumulator when the calendar day has advanced
// since the last observed write and writes the fresh day through. A day key
// behind the stored one, as after a move to a zone west of the old one,
// keeps the totals.
func (r *Reconciler) CheckRollover(ctx context.Context) bool {
	today := r.Today()
	if today <= r.acc.DayKey() {
		return false
	}

	r.acc.Reset(today)
	utils.DayRollovers.Inc()

	if !r.SignedIn() {
		r.saveGuest(ctx)
		return true
	}
	if err := r.durable.IncrementDailyStats(ctx, r.userID, today, model.DailyTotals{}); err != nil {
		log.Printf("Error writing new day %s for %s: %v", today, r.userID, err)
		utils.TrackStorageFailure(backendDurable, "rollover")
	}
	return true
}

// saveGuest overwrites the guest snapshot. Two tabs sharing a guest key
// race here and the last writer wins.
func (r *Reconciler) saveGuest(ctx context.Context) {
	snap := model.GuestSnapshot{
		Accumulated: r.acc.Totals(),
		LastSave:    r.clock.Now().UTC(),
		DayKey:      r.acc.DayKey(),
	}
	raw, err := snap.Encode()
	if err == nil {
		err = r.guest.Set(ctx, r.guestKey, raw)
	}
	if err != nil {
		log.Printf("Error saving guest snapshot %s: %v", r.guestKey, err)
		utils.TrackStorageFailure(backendGuest, "write")
	}
}

func (r *Reconciler) readGuestSnapshot(ctx context.Context) (model.GuestSnapshot, bool) {
	raw, ok, err := r.guest.Get(ctx, r.guestKey)
	if err != nil {
		log.Printf("Error loading guest snapshot %s: %v", r.guestKey, err)
		utils.TrackStorageFailure(backendGuest, "read")
		return model.GuestSnapshot{}, false
	}
	if !ok {
		return model.GuestSnapshot{}, false
	}

	snap, err := model.DecodeGuestSnapshot(raw)
	if err != nil {
		log.Printf("Discarding corrupt guest snapshot %s: %v", r.guestKey, err)
		r.removeGuestSnapshot(ctx)
		return model.GuestSnapshot{}, false
	}
	return snap, true
}

func (r *Reconciler) removeGuestSnapshot(ctx context.Context) {
	if err := r.guest.Remove(ctx, r.guestKey); err != nil {
		log.Printf("Error removing guest snapshot %s: %v", r.guestKey, err)
		utils.TrackStorageFailure(backendGuest, "remove")
	}
}
