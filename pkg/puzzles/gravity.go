package puzzles

import (
	"github.com/cbodonnell/flipside/pkg/kinematic"
	"github.com/cbodonnell/flipside/pkg/scene"
)

const DefaultPositionTolerance = 0.5

// GravityPuzzle is solved when every target object rests within tolerance of
// its goal.
type GravityPuzzle struct {
	Base
	targets      []*scene.Node
	goals        []kinematic.Vector
	tolerance    float64
	correct      []bool
	lastProgress float64
}

// NewGravityPuzzleOptions contains options for creating a new GravityPuzzle.
type NewGravityPuzzleOptions struct {
	BaseOptions
	Targets   []*scene.Node
	Goals     []kinematic.Vector
	Tolerance float64
}

func NewGravityPuzzle(opts NewGravityPuzzleOptions) *GravityPuzzle {
	if opts.Tolerance <= 0 {
		opts.Tolerance = DefaultPositionTolerance
	}
	n := len(opts.Targets)
	if len(opts.Goals) < n {
		n = len(opts.Goals)
	}
	g := &GravityPuzzle{
		targets:      opts.Targets,
		goals:        opts.Goals,
		tolerance:    opts.Tolerance,
		correct:      make([]bool, n),
		lastProgress: -1,
	}
	g.Base = newBase(opts.BaseOptions, g)
	return g
}

func (g *GravityPuzzle) Update(dt float64) {
	if g.state != StateInProgress {
		return
	}
	total := len(g.correct)
	if total == 0 {
		return
	}
	count := 0
	for i := 0; i < total; i++ {
		g.correct[i] = g.targets[i] != nil && kinematic.Distance(g.targets[i].Position, g.goals[i]) <= g.tolerance
		if g.correct[i] {
			count++
		}
	}
	progress := float64(count) / float64(total)
	if progress != g.lastProgress {
		g.lastProgress = progress
		g.ReportProgress(progress)
	}
	if count == total {
		g.Solve()
	}
}

// Correct reports, per target, whether it was within tolerance on the last check.
func (g *GravityPuzzle) Correct() []bool {
	out := make([]bool, len(g.correct))
	copy(out, g.correct)
	return out
}

func (g *GravityPuzzle) Reset() {
	g.Base.Reset()
	g.correct = make([]bool, len(g.correct))
	g.lastProgress = -1
}

func (g *GravityPuzzle) RestoreState(state State) {
	g.Base.RestoreState(state)
	g.lastProgress = -1
	for i := range g.correct {
		g.correct[i] = state == StateSolved
	}
}
