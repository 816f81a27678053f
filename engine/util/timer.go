package util

import (
	"fmt"
	"math"
	"sync"
	"time"
)

type TimerState struct {
	name         string
	lastDuration float64

	totalDuration  float64
	executionCount int64

	minDuration float64
	maxDuration float64
}

func (t *TimerState) averageDuration() float64 {
	if t.executionCount == 0 {
		return 0
	}
	return t.totalDuration / float64(t.executionCount)
}

func (t *TimerState) Count() int64 {
	return t.executionCount
}

func (t *TimerState) Last() time.Duration {
	return time.Duration(t.lastDuration * float64(time.Millisecond))
}

func (t *TimerState) String() string {
	return fmt.Sprintf("%s last: %.3fms, avg: %.3fms, min: %.3fms, max: %.3fms (n=%d)", t.name, t.lastDuration, t.averageDuration(), t.minDuration, t.maxDuration, t.executionCount)
}

// Timer keeps running statistics for named sections of work.
type Timer struct {
	mu         sync.Mutex
	states     map[string]*TimerState
	timerNames []string
}

func NewTimer() *Timer {
	return &Timer{
		states: make(map[string]*TimerState),
	}
}

// GetState returns a copy of the named state, or nil if it was never started.
func (t *Timer) GetState(name string) *TimerState {
	t.mu.Lock()
	defer t.mu.Unlock()
	state, ok := t.states[name]
	if !ok {
		return nil
	}
	snapshot := *state
	return &snapshot
}

func (t *Timer) String() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	var str string
	for _, name := range t.timerNames {
		str += t.states[name].String() + "\n"
	}
	return str
}

// Start begins timing name. Call the returned func to stop; it returns the elapsed time.
func (t *Timer) Start(name string) func() time.Duration {
	start := time.Now()
	return func() time.Duration {
		elapsed := time.Since(start)
		t.record(name, elapsed)
		return elapsed
	}
}

func (t *Timer) record(name string, elapsed time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	state, ok := t.states[name]
	if !ok {
		t.timerNames = append(t.timerNames, name)
		state = &TimerState{
			name:        name,
			minDuration: math.MaxInt64,
			maxDuration: math.MinInt64,
		}
		t.states[name] = state
	}
	durationInMS := float64(elapsed.Microseconds()) / 1000.0
	state.lastDuration = durationInMS
	state.totalDuration += durationInMS
	state.executionCount++
	if durationInMS < state.minDuration {
		state.minDuration = durationInMS
	}
	if durationInMS > state.maxDuration {
		state.maxDuration = durationInMS
	}
}
