package usecase

import (
	"fmt"
	"math"
	"strings"
	"time"

	"eightify/model"
	"eightify/utils"
)

// MinRecordedSeconds is the shortest run that produces an ActivityRecord.
const MinRecordedSeconds = 1

// TickFunc receives display ticks while a timer runs. It is called from the
// tick goroutine and must not block for long.
type TickFunc func(model.Tick)

// TimerEngine is the Idle/Running state machine. Durations come from the
// wall-clock delta at stop time, never from counting ticks, so a throttled
// or delayed tick only affects the display.
type TimerEngine struct {
	clock        utils.Clock
	acc          *Accumulator
	tickInterval time.Duration
	onTick       TickFunc

	running  *model.RunningActivity
	stopTick chan struct{}
}

func NewTimerEngine(clock utils.Clock, acc *Accumulator, tickInterval time.Duration, onTick TickFunc) *TimerEngine {
	return &TimerEngine{
		clock:        clock,
		acc:          acc,
		tickInterval: tickInterval,
		onTick:       onTick,
	}
}

func (e *TimerEngine) Running() bool {
	return e.running != nil
}

// Current returns a copy of the running activity.
func (e *TimerEngine) Current() (model.RunningActivity, bool) {
	if e.running == nil {
		return model.RunningActivity{}, false
	}
	return *e.running, true
}

// Elapsed is the whole seconds shown on the display, zero when idle.
func (e *TimerEngine) Elapsed() int64 {
	if e.running == nil {
		return 0
	}
	return displaySeconds(e.running.Start, e.clock.Now())
}

// Start begins a run. A run already in progress is stopped first and its
// record, if any, is returned so the caller can persist it.
func (e *TimerEngine) Start(category model.Category, name string) (*model.ActivityRecord, error) {
	if !category.Valid() {
		return nil, fmt.Errorf("%w: unknown category %q", model.ErrInvalidInput, category)
	}

	var stopped *model.ActivityRecord
	if e.running != nil {
		stopped = e.Stop()
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name = model.DefaultActivityName(category)
	}

	e.running = &model.RunningActivity{
		Category: category,
		Name:     name,
		Start:    e.clock.Now(),
	}
	e.startTick(*e.running)
	return stopped, nil
}

// Stop ends the run. It returns nil when idle or when the run rounds to
// less than MinRecordedSeconds; in both cases the accumulator is untouched.
func (e *TimerEngine) Stop() *model.ActivityRecord {
	if e.running == nil {
		return nil
	}

	run := *e.running
	e.running = nil
	e.cancelTick()

	end := e.clock.Now()
	duration := roundedSeconds(run.Start, end)
	if duration < MinRecordedSeconds {
		utils.DiscardedRuns.Inc()
		return nil
	}

	e.acc.AddDuration(run.Category, duration)
	return &model.ActivityRecord{
		ID:        utils.NewID(),
		Name:      run.Name,
		Category:  run.Category,
		StartTime: run.Start,
		EndTime:   end,
		Duration:  duration,
		DayKey:    e.acc.DayKey(),
	}
}

func (e *TimerEngine) startTick(run model.RunningActivity) {
	if e.onTick == nil || e.tickInterval <= 0 {
		return
	}
	stop := make(chan struct{})
	e.stopTick = stop

	clock, onTick, interval := e.clock, e.onTick, e.tickInterval
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				onTick(model.Tick{
					Category:       run.Category,
					Name:           run.Name,
					ElapsedSeconds: displaySeconds(run.Start, clock.Now()),
				})
			}
		}
	}()
}

func (e *TimerEngine) cancelTick() {
	if e.stopTick != nil {
		close(e.stopTick)
		e.stopTick = nil
	}
}

// roundedSeconds rounds half away from zero at millisecond precision.
func roundedSeconds(start, end time.Time) int64 {
	ms := end.Sub(start).Milliseconds()
	return int64(math.Round(float64(ms) / 1000))
}

func displaySeconds(start, now time.Time) int64 {
	if now.Before(start) {
		return 0
	}
	return int64(now.Sub(start) / time.Second)
}
