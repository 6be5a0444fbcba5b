package sched

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const frame = 1.0 / 60

func TestScheduler_AfterFrames(t *testing.T) {
	s := New()
	var ran []uint64
	s.AfterFrames(3, func() { ran = append(ran, s.Frame()) })
	s.NextFrame(func() { ran = append(ran, s.Frame()) })

	for i := 0; i < 5; i++ {
		s.Tick(frame)
	}

	assert.Equal(t, []uint64{1, 3}, ran)
	assert.Equal(t, 0, s.Pending())
}

func TestScheduler_taskScheduledDuringTickWaits(t *testing.T) {
	s := New()
	var ran []uint64
	s.NextFrame(func() {
		s.NextFrame(func() { ran = append(ran, s.Frame()) })
	})

	s.Tick(frame)
	assert.Empty(t, ran)
	s.Tick(frame)
	assert.Equal(t, []uint64{2}, ran)
}

func TestScheduler_runsInSchedulingOrder(t *testing.T) {
	s := New()
	var order []string
	s.AfterFrames(2, func() { order = append(order, "a") })
	s.AfterFrames(1, func() { order = append(order, "b") })
	s.AfterFrames(2, func() { order = append(order, "c") })

	s.Tick(frame)
	s.Tick(frame)

	assert.Equal(t, []string{"b", "a", "c"}, order)
}

func TestScheduler_timeScaleFreezesScaledTimers(t *testing.T) {
	s := New()
	scaled, real := false, false
	s.SetTimeScale(0)
	s.AfterSeconds(0.1, func() { scaled = true })
	s.AfterRealtime(0.1, func() { real = true })

	for i := 0; i < 12; i++ {
		s.Tick(frame)
	}
	assert.False(t, scaled)
	assert.True(t, real)
	assert.Equal(t, 0.0, s.Now())

	s.SetTimeScale(1)
	for i := 0; i < 7; i++ {
		s.Tick(frame)
	}
	assert.True(t, scaled)
}

func TestScheduler_Poll(t *testing.T) {
	tests := []struct {
		name      string
		readyAt   int
		attempts  int
		wantOK    bool
		wantProbe int
	}{
		{name: "ready immediately", readyAt: 1, attempts: 10, wantOK: true, wantProbe: 1},
		{name: "ready after retries", readyAt: 4, attempts: 10, wantOK: true, wantProbe: 4},
		{name: "never ready", readyAt: 100, attempts: 10, wantOK: false, wantProbe: 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New()
			probes := 0
			var result *bool
			s.Poll(PollOptions{Interval: 0.1, MaxAttempts: tt.attempts}, func() bool {
				probes++
				return probes >= tt.readyAt
			}, func(ok bool) { result = &ok })

			for i := 0; i < 120 && result == nil; i++ {
				s.Tick(frame)
			}

			if assert.NotNil(t, result) {
				assert.Equal(t, tt.wantOK, *result)
			}
			assert.Equal(t, tt.wantProbe, probes)
		})
	}
}

func TestScheduler_Sequence(t *testing.T) {
	s := New()
	var frames []uint64
	step := func() { frames = append(frames, s.Frame()) }
	s.Sequence(2, step, step, step)

	for i := 0; i < 8; i++ {
		s.Tick(frame)
	}

	assert.Equal(t, []uint64{2, 4, 6}, frames)
}
