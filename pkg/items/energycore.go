package items

import (
	"github.com/cbodonnell/flipside/pkg/events"
	"github.com/cbodonnell/flipside/pkg/puzzles"
	"github.com/cbodonnell/flipside/pkg/scene"
	"github.com/cbodonnell/flipside/pkg/sched"
)

// PuzzleCheckDelay is the number of frames an energy core tied to a puzzle
// waits for puzzle states to settle before checking it.
const PuzzleCheckDelay = 3

// EnergyCore is a collectible core. A core tied to a puzzle disappears once
// that puzzle is solved.
type EnergyCore struct {
	pickup
	puzzleID  string
	scheduler *sched.Scheduler
	registry  *puzzles.Registry
}

// NewEnergyCoreOptions contains options for creating a new EnergyCore.
type NewEnergyCoreOptions struct {
	Services
	ID        string
	PuzzleID  string
	Scheduler *sched.Scheduler
	Registry  *puzzles.Registry
}

func NewEnergyCore(opts NewEnergyCoreOptions) *EnergyCore {
	e := &EnergyCore{
		pickup:    newPickup(opts.Services, opts.ID, events.InventoryEnergyCore),
		puzzleID:  opts.PuzzleID,
		scheduler: opts.Scheduler,
		registry:  opts.Registry,
	}
	e.owned = func() bool { return e.Inventory.HasEnergyCore(e.id) }
	e.onCollect = func() {
		e.Inventory.AddEnergyCore(e.id)
		e.Hub.EnergyCoreCollected.Publish(events.EnergyCoreCollected{CoreID: e.id, Position: e.node.Position})
	}
	return e
}

func (e *EnergyCore) PuzzleID() string {
	return e.puzzleID
}

func (e *EnergyCore) Attach(n *scene.Node) {
	e.attach(n, pickupSize, e.Collect)
}

func (e *EnergyCore) Init() error {
	if e.hideIfOwned() || e.puzzleID == "" || e.scheduler == nil {
		return nil
	}
	e.scheduler.AfterFrames(PuzzleCheckDelay, e.checkPuzzle)
	return nil
}

func (e *EnergyCore) checkPuzzle() {
	if e.node.Scene() == nil || !e.node.Scene().Loaded() || e.registry == nil {
		return
	}
	if p := e.registry.Lookup(e.puzzleID); p != nil && p.IsSolved() {
		e.SetCollected(true)
	}
}

func (e *EnergyCore) Update(dt float64) {
	e.spin(dt)
}
