package player

import (
	"github.com/cbodonnell/flipside/pkg/effects"
	"github.com/cbodonnell/flipside/pkg/events"
	"github.com/cbodonnell/flipside/pkg/kinematic"
	"github.com/cbodonnell/flipside/pkg/physics"
	"github.com/cbodonnell/flipside/pkg/scene"
)

// GravitySystem applies per-body gravity that the player can invert.
type GravitySystem struct {
	hub      *events.Hub
	body     *physics.Body
	effects  effects.Spawner
	node     *scene.Node
	strength float64
	flipped  bool
}

// NewGravitySystemOptions contains options for creating a new GravitySystem.
type NewGravitySystemOptions struct {
	Hub      *events.Hub
	Body     *physics.Body
	Effects  effects.Spawner
	Strength float64
}

func NewGravitySystem(opts NewGravitySystemOptions) *GravitySystem {
	strength := opts.Strength
	if strength <= 0 {
		strength = kinematic.Gravity
	}
	return &GravitySystem{
		hub:      opts.Hub,
		body:     opts.Body,
		effects:  opts.Effects,
		strength: strength,
	}
}

func (g *GravitySystem) Attach(n *scene.Node) {
	g.node = n
}

func (g *GravitySystem) Init() error {
	g.body.SetGravity(g.Current())
	return nil
}

func (g *GravitySystem) IsFlipped() bool {
	return g.flipped
}

// Current returns the gravity acceleration acting on the body.
func (g *GravitySystem) Current() kinematic.Vector {
	if g.flipped {
		return kinematic.Up.Scale(g.strength)
	}
	return kinematic.Down.Scale(g.strength)
}

// Flip inverts gravity, spawns the flip effect and announces the change.
func (g *GravitySystem) Flip() {
	g.flipped = !g.flipped
	g.body.SetGravity(g.Current())

	if g.effects != nil && g.node != nil {
		g.effects.Spawn(effects.EffectGravityFlip, g.node.Position)
	}
	g.hub.GravityFlipped.Publish(events.GravityFlipped{
		Gravity: g.Current(),
		Flipped: g.flipped,
	})
}

// SetFlipped flips gravity only when it differs from flipped.
func (g *GravitySystem) SetFlipped(flipped bool) {
	if g.flipped != flipped {
		g.Flip()
	}
}
