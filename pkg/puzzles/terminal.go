package puzzles

import (
	"github.com/cbodonnell/flipside/pkg/events"
	"github.com/cbodonnell/flipside/pkg/sched"
)

// TerminalCloseDelay is how long a hacked terminal stays open.
const TerminalCloseDelay = 1.5

// TerminalHackPuzzle opens a terminal when started and is solved by a
// successful hack.
type TerminalHackPuzzle struct {
	Base
	scheduler *sched.Scheduler
	open      bool
}

// NewTerminalHackPuzzleOptions contains options for creating a new TerminalHackPuzzle.
type NewTerminalHackPuzzleOptions struct {
	BaseOptions
	Scheduler *sched.Scheduler
}

func NewTerminalHackPuzzle(opts NewTerminalHackPuzzleOptions) *TerminalHackPuzzle {
	t := &TerminalHackPuzzle{
		scheduler: opts.Scheduler,
	}
	t.Base = newBase(opts.BaseOptions, t)
	return t
}

// IsOpen reports whether the terminal is showing.
func (t *TerminalHackPuzzle) IsOpen() bool {
	return t.open
}

// Interact is the player using the terminal.
func (t *TerminalHackPuzzle) Interact() {
	t.hub.TerminalActivated.Publish(events.TerminalActivated{PuzzleID: t.id})
	t.Start()
}

func (t *TerminalHackPuzzle) Start() {
	t.Base.Start()
	if t.state == StateSolved {
		return
	}
	t.open = true
}

// HackSucceeded solves the puzzle and closes the terminal shortly after.
func (t *TerminalHackPuzzle) HackSucceeded() {
	t.Solve()
	t.scheduler.AfterSeconds(TerminalCloseDelay, t.close)
}

// HackCancelled closes the terminal.
func (t *TerminalHackPuzzle) HackCancelled() {
	t.close()
}

func (t *TerminalHackPuzzle) close() {
	t.open = false
}

func (t *TerminalHackPuzzle) Reset() {
	t.Base.Reset()
	t.close()
}

func (t *TerminalHackPuzzle) RestoreState(state State) {
	t.Base.RestoreState(state)
	t.close()
}
