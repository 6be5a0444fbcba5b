// Package player contains the player entity: movement, stats and gravity.
package player

import (
	"math"

	"github.com/cbodonnell/flipside/pkg/kinematic"
	"github.com/cbodonnell/flipside/pkg/physics"
	"github.com/cbodonnell/flipside/pkg/scene"
)

const (
	DefaultMoveSpeed        = 5.0
	DefaultSprintMultiplier = 1.5
	DefaultLookSensitivity  = 2.0

	// Tag identifies the player body to triggers.
	Tag = "player"
)

// InputSource provides the player's intent for the current frame.
type InputSource interface {
	// Move returns strafe and forward axes in [-1, 1].
	Move() (right float64, forward float64)
	// Look returns the horizontal look delta.
	Look() float64
	Sprint() bool
	// FlipGravity reports a gravity flip request this frame.
	FlipGravity() bool
}

// Player drives the player body from input and keeps its rotation locked to
// the tracked yaw.
type Player struct {
	node    *scene.Node
	body    *physics.Body
	stats   *Stats
	gravity *GravitySystem
	input   InputSource
	paused  func() bool

	inputEnabled bool
	yaw          float64

	moveSpeed        float64
	sprintMultiplier float64
	lookSensitivity  float64
}

// NewPlayerOptions contains options for creating a new Player.
type NewPlayerOptions struct {
	Body    *physics.Body
	Stats   *Stats
	Gravity *GravitySystem
	Input   InputSource
	// Paused reports whether gameplay is paused. Optional.
	Paused func() bool
}

func NewPlayer(opts NewPlayerOptions) *Player {
	return &Player{
		body:             opts.Body,
		stats:            opts.Stats,
		gravity:          opts.Gravity,
		input:            opts.Input,
		paused:           opts.Paused,
		inputEnabled:     true,
		moveSpeed:        DefaultMoveSpeed,
		sprintMultiplier: DefaultSprintMultiplier,
		lookSensitivity:  DefaultLookSensitivity,
	}
}

func (p *Player) Attach(n *scene.Node) {
	p.node = n
}

func (p *Player) Init() error {
	p.yaw = p.node.Rotation.Yaw()
	return nil
}

func (p *Player) Node() *scene.Node {
	return p.node
}

func (p *Player) Body() *physics.Body {
	return p.body
}

func (p *Player) Stats() *Stats {
	return p.stats
}

func (p *Player) Gravity() *GravitySystem {
	return p.gravity
}

func (p *Player) InputEnabled() bool {
	return p.inputEnabled
}

func (p *Player) SetInputEnabled(enabled bool) {
	p.inputEnabled = enabled
}

func (p *Player) SetInput(input InputSource) {
	p.input = input
}

// Yaw returns the tracked heading in degrees.
func (p *Player) Yaw() float64 {
	return p.yaw
}

// SetYaw replaces the tracked heading. The body rotation is re-derived from
// it every frame, so a restored rotation must go through here to stick.
func (p *Player) SetYaw(deg float64) {
	p.yaw = math.Mod(deg, 360)
	if p.yaw < 0 {
		p.yaw += 360
	}
}

func (p *Player) isPaused() bool {
	return p.paused != nil && p.paused()
}

func (p *Player) Update(dt float64) {
	if p.inputEnabled && p.input != nil && !p.isPaused() {
		p.handleInput()
	}
	p.enforceRotation()
}

func (p *Player) handleInput() {
	if look := p.input.Look(); math.Abs(look) > 0.01 {
		p.SetYaw(p.yaw + look*p.lookSensitivity)
	}
	if p.input.FlipGravity() && p.gravity != nil {
		p.gravity.Flip()
	}

	right, forward := p.input.Move()
	speed := p.moveSpeed
	if p.input.Sprint() {
		speed *= p.sprintMultiplier
	}
	rad := p.yaw * math.Pi / 180
	sin, cos := math.Sin(rad), math.Cos(rad)
	v := p.body.Velocity()
	v.X = (sin*forward + cos*right) * speed
	v.Z = (cos*forward - sin*right) * speed
	p.body.SetVelocity(v)
}

func (p *Player) enforceRotation() {
	target := kinematic.FromEuler(0, p.yaw, 0)
	if kinematic.Angle(p.body.Rotation(), target) > 0.01 {
		p.body.SetPose(p.body.Position(), target)
	}
}
