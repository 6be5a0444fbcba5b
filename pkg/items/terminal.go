package items

import (
	"github.com/cbodonnell/flipside/pkg/kinematic"
	"github.com/cbodonnell/flipside/pkg/physics"
	"github.com/cbodonnell/flipside/pkg/player"
	"github.com/cbodonnell/flipside/pkg/puzzles"
	"github.com/cbodonnell/flipside/pkg/scene"
)

// Terminal starts its hack puzzle when the player steps up to it.
type Terminal struct {
	puzzle *puzzles.TerminalHackPuzzle
	zone   *physics.Trigger
}

func NewTerminal(world *physics.World, puzzle *puzzles.TerminalHackPuzzle, size kinematic.Vector) *Terminal {
	t := &Terminal{puzzle: puzzle}
	t.zone = physics.NewTrigger(physics.NewTriggerOptions{
		World:   world,
		Size:    size,
		Tags:    []string{player.Tag},
		OnEnter: func(*physics.Body) { t.Interact() },
	})
	return t
}

func (t *Terminal) Attach(n *scene.Node) {
	n.AddComponent(t.zone)
}

func (t *Terminal) Interact() {
	t.puzzle.Interact()
}
