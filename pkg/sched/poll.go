package sched

// PollOptions bound a readiness poll.
type PollOptions struct {
	// Interval is the scaled-time wait between failed probes.
	Interval float64
	// MaxAttempts caps the number of failed probes before giving up.
	MaxAttempts int
}

// Poll calls probe now and then every opts.Interval seconds until it reports
// true or opts.MaxAttempts probes have failed. done receives the outcome.
func (s *Scheduler) Poll(opts PollOptions, probe func() bool, done func(ok bool)) {
	attempts := 0
	var try func()
	try = func() {
		if probe() {
			done(true)
			return
		}
		attempts++
		if attempts >= opts.MaxAttempts {
			done(false)
			return
		}
		s.AfterSeconds(opts.Interval, try)
	}
	try()
}

// Sequence runs steps one after another, each n frames after the previous.
func (s *Scheduler) Sequence(frames int, steps ...func()) {
	if len(steps) == 0 {
		return
	}
	s.AfterFrames(frames, func() {
		steps[0]()
		s.Sequence(frames, steps[1:]...)
	})
}
