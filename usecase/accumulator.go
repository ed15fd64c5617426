package usecase

import "eightify/model"

// Accumulator owns the per-category totals of one day. It is not safe for
// concurrent use; the Tracker serialises access.
type Accumulator struct {
	dayKey string
	totals model.DailyTotals
}

func NewAccumulator(dayKey string) *Accumulator {
	return &Accumulator{dayKey: dayKey}
}

// AddDuration performs no de-duplication; at-most-once delivery is the
// timer engine's job.
func (a *Accumulator) AddDuration(category model.Category, seconds int64) {
	a.totals = a.totals.Add(category, seconds)
}

// Reset zeroes every category and moves to dayKey.
func (a *Accumulator) Reset(dayKey string) {
	a.dayKey = dayKey
	a.totals = model.DailyTotals{}
}

// Restore adopts totals read back from storage at load time.
func (a *Accumulator) Restore(dayKey string, totals model.DailyTotals) {
	a.dayKey = dayKey
	a.totals = totals
}

// Totals returns a snapshot.
func (a *Accumulator) Totals() model.DailyTotals {
	return a.totals
}

func (a *Accumulator) DayKey() string {
	return a.dayKey
}
