// Package sched provides the cooperative, single-threaded frame scheduler that
// sequences multi-frame work (scene loads, save reconciliation, delayed
// resets) on the simulation thread.
package sched

type clockKind uint8

const (
	clockFrames clockKind = iota
	clockScaled
	clockRealtime
)

type task struct {
	kind     clockKind
	dueFrame uint64
	dueTime  float64
	fn       func()
}

// Scheduler runs deferred callbacks at frame boundaries.
//
// A task scheduled while a tick is running never runs in that same tick, so
// NextFrame always means "at the earliest, one frame later". Tasks that
// become due in the same tick run in the order they were scheduled.
type Scheduler struct {
	frame     uint64
	now       float64
	realNow   float64
	timeScale float64
	tasks     []*task
}

func New() *Scheduler {
	return &Scheduler{
		timeScale: 1,
	}
}

// Frame returns the number of completed ticks.
func (s *Scheduler) Frame() uint64 {
	return s.frame
}

// Now returns scaled game time in seconds.
func (s *Scheduler) Now() float64 {
	return s.now
}

// RealNow returns unscaled time in seconds.
func (s *Scheduler) RealNow() float64 {
	return s.realNow
}

func (s *Scheduler) TimeScale() float64 {
	return s.timeScale
}

// SetTimeScale sets the factor applied to scaled time. Zero freezes scaled
// timers; frame and realtime tasks keep running.
func (s *Scheduler) SetTimeScale(scale float64) {
	if scale < 0 {
		scale = 0
	}
	s.timeScale = scale
}

// ScaledDelta converts a raw frame delta to scaled game time.
func (s *Scheduler) ScaledDelta(dt float64) float64 {
	return dt * s.timeScale
}

// Pending returns the number of tasks waiting to run.
func (s *Scheduler) Pending() int {
	return len(s.tasks)
}

// NextFrame runs fn on the next tick.
func (s *Scheduler) NextFrame(fn func()) {
	s.AfterFrames(1, fn)
}

// AfterFrames runs fn n ticks from now. n < 1 is treated as 1.
func (s *Scheduler) AfterFrames(n int, fn func()) {
	if n < 1 {
		n = 1
	}
	s.tasks = append(s.tasks, &task{kind: clockFrames, dueFrame: s.frame + uint64(n), fn: fn})
}

// AfterSeconds runs fn once d seconds of scaled game time have passed,
// no earlier than the next tick.
func (s *Scheduler) AfterSeconds(d float64, fn func()) {
	s.tasks = append(s.tasks, &task{kind: clockScaled, dueFrame: s.frame + 1, dueTime: s.now + d, fn: fn})
}

// AfterRealtime runs fn once d seconds of unscaled time have passed,
// no earlier than the next tick.
func (s *Scheduler) AfterRealtime(d float64, fn func()) {
	s.tasks = append(s.tasks, &task{kind: clockRealtime, dueFrame: s.frame + 1, dueTime: s.realNow + d, fn: fn})
}

// Tick advances one frame of dt unscaled seconds and runs every due task.
func (s *Scheduler) Tick(dt float64) {
	s.frame++
	s.realNow += dt
	s.now += dt * s.timeScale

	var due []*task
	remaining := s.tasks[:0]
	for _, t := range s.tasks {
		if s.isDue(t) {
			due = append(due, t)
		} else {
			remaining = append(remaining, t)
		}
	}
	// tasks appended by callbacks below land after the kept ones
	for i := len(remaining); i < len(s.tasks); i++ {
		s.tasks[i] = nil
	}
	s.tasks = remaining

	for _, t := range due {
		t.fn()
	}
}

func (s *Scheduler) isDue(t *task) bool {
	if s.frame < t.dueFrame {
		return false
	}
	switch t.kind {
	case clockScaled:
		return s.now >= t.dueTime
	case clockRealtime:
		return s.realNow >= t.dueTime
	default:
		return true
	}
}
