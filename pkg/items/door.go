package items

import (
	"github.com/cbodonnell/flipside/pkg/effects"
	"github.com/cbodonnell/flipside/pkg/kinematic"
	"github.com/cbodonnell/flipside/pkg/log"
	"github.com/cbodonnell/flipside/pkg/physics"
	"github.com/cbodonnell/flipside/pkg/player"
	"github.com/cbodonnell/flipside/pkg/puzzles"
	"github.com/cbodonnell/flipside/pkg/scene"
)

const (
	DoorOpenHeight = 3.0
	DoorOpenSpeed  = 2.0
)

// Door blocks the way until its requirements are met. The player tries it
// by walking into its interaction zone.
type Door struct {
	Services
	id       string
	keyCard  string
	puzzleID string
	cores    int
	registry *puzzles.Registry

	node     *scene.Node
	collider *physics.Collider
	zone     *physics.Trigger
	closed   kinematic.Vector
	open     bool
}

// NewDoorOptions contains options for creating a new Door.
type NewDoorOptions struct {
	Services
	ID string
	// RequiredKeyCard is the key card id needed, empty for none.
	RequiredKeyCard string
	// RequiredPuzzle is the id of a puzzle that must be solved, empty for none.
	RequiredPuzzle string
	RequiredCores  int
	Registry       *puzzles.Registry
	Size           kinematic.Vector
}

func NewDoor(opts NewDoorOptions) *Door {
	d := &Door{
		Services: opts.Services,
		id:       opts.ID,
		keyCard:  opts.RequiredKeyCard,
		puzzleID: opts.RequiredPuzzle,
		cores:    opts.RequiredCores,
		registry: opts.Registry,
	}
	d.collider = physics.NewCollider(opts.World, opts.Size)
	zone := opts.Size.Add(kinematic.Vector{X: 2, Y: 0, Z: 2})
	d.zone = physics.NewTrigger(physics.NewTriggerOptions{
		World:   opts.World,
		Size:    zone,
		Tags:    []string{player.Tag},
		OnEnter: func(*physics.Body) { d.TryOpen() },
	})
	return d
}

func (d *Door) Attach(n *scene.Node) {
	d.node = n
	n.AddComponent(d.collider)
	n.AddComponent(d.zone)
}

func (d *Door) Init() error {
	d.closed = d.node.Position
	return nil
}

func (d *Door) ID() string {
	return d.id
}

func (d *Door) IsOpen() bool {
	return d.open
}

// Unlocked reports whether every requirement is currently met.
func (d *Door) Unlocked() bool {
	if d.puzzleID != "" {
		if d.registry == nil {
			return false
		}
		p := d.registry.Lookup(d.puzzleID)
		if p == nil || !p.IsSolved() {
			return false
		}
	}
	if d.keyCard != "" && !d.Inventory.HasKeyCard(d.keyCard) {
		return false
	}
	return d.Inventory.EnergyCoreCount() >= d.cores
}

// TryOpen opens the door if it is unlocked and plays the locked sound
// otherwise.
func (d *Door) TryOpen() {
	if d.open {
		return
	}
	if !d.Unlocked() {
		if d.Audio != nil {
			d.Audio.PlaySFX(SoundDoorLocked, d.node.Position)
		}
		return
	}
	d.Open()
}

// Open opens the door unconditionally.
func (d *Door) Open() {
	if d.open {
		return
	}
	d.open = true
	log.Debug("Door %s opened", d.id)
	if d.Audio != nil {
		d.Audio.PlaySFX(SoundDoorOpen, d.node.Position)
	}
	if d.Effects != nil {
		d.Effects.Spawn(effects.EffectDoorOpen, d.node.Position)
	}
	d.collider.SetEnabled(false)
}

// Update slides an open door up out of the way.
func (d *Door) Update(dt float64) {
	if !d.open {
		return
	}
	target := d.closed.Add(kinematic.Up.Scale(DoorOpenHeight))
	t := dt * DoorOpenSpeed
	if t > 1 {
		t = 1
	}
	d.node.Position = d.node.Position.Add(target.Sub(d.node.Position).Scale(t))
}
