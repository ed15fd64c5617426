package usecase

import (
	"testing"
	"time"

	"eightify/model"
	"eightify/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testStart = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

func newTestEngine() (*TimerEngine, *Accumulator, *utils.ManualClock) {
	clock := utils.NewManualClock(testStart)
	acc := NewAccumulator("2024-05-01")
	return NewTimerEngine(clock, acc, 0, nil), acc, clock
}

func TestTimerStopRecordsRoundedDuration(t *testing.T) {
	tests := []struct {
		name    string
		elapsed time.Duration
		want    int64
	}{
		{"whole seconds", 90 * time.Second, 90},
		{"rounds down below half", 90*time.Second + 400*time.Millisecond, 90},
		{"rounds half up", 1500 * time.Millisecond, 2},
		{"just over half a second counts", 600 * time.Millisecond, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine, acc, clock := newTestEngine()
			_, err := engine.Start(model.CategoryProductive, "deep work")
			require.NoError(t, err)

			clock.Advance(tt.elapsed)
			record := engine.Stop()

			require.NotNil(t, record)
			assert.Equal(t, tt.want, record.Duration)
			assert.Equal(t, model.CategoryProductive, record.Category)
			assert.Equal(t, "deep work", record.Name)
			assert.Equal(t, testStart, record.StartTime)
			assert.Equal(t, testStart.Add(tt.elapsed), record.EndTime)
			assert.Equal(t, "2024-05-01", record.DayKey)
			assert.NotEmpty(t, record.ID)
			assert.Equal(t, tt.want, acc.Totals().Productive)
			assert.False(t, engine.Running())
		})
	}
}

func TestTimerDiscardsSubSecondRun(t *testing.T) {
	engine, acc, clock := newTestEngine()
	_, err := engine.Start(model.CategorySleep, "")
	require.NoError(t, err)

	clock.Advance(400 * time.Millisecond)
	assert.Nil(t, engine.Stop())
	assert.True(t, acc.Totals().IsZero())
	assert.False(t, engine.Running())
}

func TestTimerStartAutoStopsRunningActivity(t *testing.T) {
	engine, acc, clock := newTestEngine()
	_, err := engine.Start(model.CategoryProductive, "email")
	require.NoError(t, err)
	clock.Advance(10 * time.Second)

	stopped, err := engine.Start(model.CategoryPersonal, "lunch")
	require.NoError(t, err)
	require.NotNil(t, stopped)
	assert.Equal(t, model.CategoryProductive, stopped.Category)
	assert.Equal(t, int64(10), stopped.Duration)

	run, ok := engine.Current()
	require.True(t, ok)
	assert.Equal(t, model.CategoryPersonal, run.Category)
	assert.Equal(t, "lunch", run.Name)
	assert.Equal(t, clock.Now(), run.Start)
	assert.Equal(t, model.DailyTotals{Productive: 10}, acc.Totals())
}

func TestTimerStartSwitchingAfterShortRunYieldsNoRecord(t *testing.T) {
	engine, acc, clock := newTestEngine()
	_, err := engine.Start(model.CategoryProductive, "")
	require.NoError(t, err)
	clock.Advance(200 * time.Millisecond)

	stopped, err := engine.Start(model.CategorySleep, "")
	require.NoError(t, err)
	assert.Nil(t, stopped)
	assert.True(t, acc.Totals().IsZero())
	assert.True(t, engine.Running())
}

func TestTimerRejectsUnknownCategory(t *testing.T) {
	engine, acc, clock := newTestEngine()
	_, err := engine.Start(model.CategoryProductive, "")
	require.NoError(t, err)
	clock.Advance(5 * time.Second)

	stopped, err := engine.Start(model.Category("gaming"), "")
	assert.ErrorIs(t, err, model.ErrInvalidInput)
	assert.Nil(t, stopped)

	run, ok := engine.Current()
	require.True(t, ok)
	assert.Equal(t, model.CategoryProductive, run.Category)
	assert.True(t, acc.Totals().IsZero())
}

func TestTimerStopWhenIdle(t *testing.T) {
	engine, acc, _ := newTestEngine()
	assert.Nil(t, engine.Stop())
	assert.Nil(t, engine.Stop())
	assert.True(t, acc.Totals().IsZero())
}

func TestTimerDefaultName(t *testing.T) {
	engine, _, _ := newTestEngine()
	_, err := engine.Start(model.CategorySleep, "   ")
	require.NoError(t, err)
	run, _ := engine.Current()
	assert.Equal(t, "My sleep time", run.Name)
}

func TestTimerElapsedIsFloored(t *testing.T) {
	engine, _, clock := newTestEngine()
	assert.Zero(t, engine.Elapsed())

	_, err := engine.Start(model.CategoryPersonal, "")
	require.NoError(t, err)
	clock.Advance(2*time.Second + 900*time.Millisecond)
	assert.Equal(t, int64(2), engine.Elapsed())
}

func TestTimerTicksUntilStopped(t *testing.T) {
	clock := utils.NewManualClock(testStart)
	acc := NewAccumulator("2024-05-01")
	ticks := make(chan model.Tick, 16)
	engine := NewTimerEngine(clock, acc, 5*time.Millisecond, func(tick model.Tick) {
		select {
		case ticks <- tick:
		default:
		}
	})

	_, err := engine.Start(model.CategoryProductive, "focus")
	require.NoError(t, err)
	clock.Advance(3 * time.Second)

	deadline := time.After(time.Second)
	for {
		var tick model.Tick
		select {
		case tick = <-ticks:
		case <-deadline:
			t.Fatal("no tick delivered")
		}
		if tick.ElapsedSeconds == 3 {
			assert.Equal(t, model.CategoryProductive, tick.Category)
			assert.Equal(t, "focus", tick.Name)
			break
		}
	}

	record := engine.Stop()
	require.NotNil(t, record)
	assert.Equal(t, int64(3), record.Duration)
}
