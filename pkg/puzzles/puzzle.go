// Package puzzles contains the puzzle state machine, the registry of live
// puzzles and the concrete puzzle kinds.
package puzzles

import (
	"github.com/cbodonnell/flipside/pkg/events"
	"github.com/cbodonnell/flipside/pkg/log"
	"github.com/cbodonnell/flipside/pkg/scene"
)

type State uint8

const (
	StateInProgress State = iota
	StateSolved
	// StateFailed is only reachable through RestoreState.
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateInProgress:
		return "in-progress"
	case StateSolved:
		return "solved"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// Puzzle is a single puzzle instance in a scene.
type Puzzle interface {
	ID() string
	State() State
	IsSolved() bool
	Node() *scene.Node
	// Start moves an unsolved puzzle to in-progress.
	Start()
	// ReportProgress announces a completion fraction without changing state.
	ReportProgress(progress float64)
	// Solve moves the puzzle to solved once and announces it.
	Solve()
	// Reset forces the puzzle back to in-progress.
	Reset()
	// RestoreState sets the state directly without announcing a solve and
	// refreshes the puzzle's own presentation.
	RestoreState(state State)
}

// Base implements the shared state machine. Concrete puzzles embed it and
// shadow Start, Reset and RestoreState when they carry extra state.
type Base struct {
	id       string
	state    State
	hub      *events.Hub
	registry *Registry
	node     *scene.Node
	self     Puzzle
}

// BaseOptions contains the options shared by every puzzle.
type BaseOptions struct {
	ID       string
	Hub      *events.Hub
	Registry *Registry
}

func newBase(opts BaseOptions, self Puzzle) Base {
	return Base{
		id:       opts.ID,
		state:    StateInProgress,
		hub:      opts.Hub,
		registry: opts.Registry,
		self:     self,
	}
}

func (b *Base) Attach(n *scene.Node) {
	b.node = n
}

// Init registers the puzzle with the registry.
func (b *Base) Init() error {
	if b.registry != nil {
		b.registry.Register(b.self)
	}
	return nil
}

// Destroy removes the puzzle from the registry.
func (b *Base) Destroy() error {
	if b.registry != nil {
		b.registry.Unregister(b.self)
	}
	return nil
}

func (b *Base) ID() string {
	return b.id
}

func (b *Base) State() State {
	return b.state
}

func (b *Base) IsSolved() bool {
	return b.state == StateSolved
}

func (b *Base) Node() *scene.Node {
	return b.node
}

func (b *Base) Start() {
	if b.state == StateSolved {
		return
	}
	b.state = StateInProgress
	b.hub.PuzzleStarted.Publish(events.PuzzleStarted{PuzzleID: b.id})
}

func (b *Base) ReportProgress(progress float64) {
	b.hub.PuzzleProgressed.Publish(events.PuzzleProgressed{PuzzleID: b.id, Progress: progress})
}

func (b *Base) Solve() {
	if b.state == StateSolved {
		return
	}
	b.state = StateSolved
	log.Info("Puzzle %s solved", b.id)
	b.hub.PuzzleSolved.Publish(events.PuzzleSolved{PuzzleID: b.id})
}

func (b *Base) Reset() {
	b.state = StateInProgress
}

func (b *Base) RestoreState(state State) {
	b.state = state
}
