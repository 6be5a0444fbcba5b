package physics

import (
	"math"

	"github.com/cbodonnell/flipside/pkg/kinematic"
	"github.com/cbodonnell/flipside/pkg/scene"
	"github.com/solarlune/resolv"
)

const (
	// SleepVelocity is the speed under which a body counts as resting.
	SleepVelocity = 0.05
	// SleepFrames is the number of resting steps before a body sleeps.
	SleepFrames = 30
)

// Body is a rigid body component. Its pose lives here, not on the node.
type Body struct {
	world *World
	node  *scene.Node
	tag   string
	size  kinematic.Vector

	position        kinematic.Vector
	rotation        kinematic.Quaternion
	velocity        kinematic.Vector
	angularVelocity kinematic.Vector

	kinematic  bool
	sleeping   bool
	useGravity bool
	gravity    *kinematic.Vector
	onGround   bool
	restFrames int

	object *resolv.Object
}

// NewBodyOptions contains options for creating a new Body.
type NewBodyOptions struct {
	World *World
	// Tag identifies the body to triggers, e.g. "player".
	Tag        string
	Size       kinematic.Vector
	Kinematic  bool
	UseGravity bool
}

func NewBody(opts NewBodyOptions) *Body {
	b := &Body{
		world:      opts.World,
		tag:        opts.Tag,
		size:       opts.Size,
		rotation:   kinematic.Identity,
		kinematic:  opts.Kinematic,
		useGravity: opts.UseGravity,
	}
	b.object = resolv.NewObject(0, 0, opts.Size.X, opts.Size.Y, opts.Tag)
	return b
}

func (b *Body) Attach(n *scene.Node) {
	b.node = n
}

// Init takes the initial pose from the node and joins the world.
func (b *Body) Init() error {
	b.position = b.node.Position
	b.rotation = b.node.Rotation
	b.syncObject()
	b.world.addBody(b)
	return nil
}

func (b *Body) Destroy() error {
	b.world.removeBody(b)
	return nil
}

func (b *Body) Node() *scene.Node {
	return b.node
}

func (b *Body) Tag() string {
	return b.tag
}

func (b *Body) Size() kinematic.Vector {
	return b.size
}

func (b *Body) Position() kinematic.Vector {
	return b.position
}

func (b *Body) Rotation() kinematic.Quaternion {
	return b.rotation
}

// SetPose moves the body. The node transform follows on the next step.
func (b *Body) SetPose(position kinematic.Vector, rotation kinematic.Quaternion) {
	b.position = position
	b.rotation = rotation.Normalized()
	b.syncObject()
}

func (b *Body) Velocity() kinematic.Vector {
	return b.velocity
}

func (b *Body) SetVelocity(v kinematic.Vector) {
	b.velocity = v
	if v != kinematic.Zero {
		b.Wake()
	}
}

func (b *Body) AngularVelocity() kinematic.Vector {
	return b.angularVelocity
}

func (b *Body) SetAngularVelocity(v kinematic.Vector) {
	b.angularVelocity = v
	if v != kinematic.Zero {
		b.Wake()
	}
}

// AddImpulse adds an instantaneous change in velocity.
func (b *Body) AddImpulse(dv kinematic.Vector) {
	b.SetVelocity(b.velocity.Add(dv))
}

// IsKinematic reports whether the body follows its node instead of
// simulating.
func (b *Body) IsKinematic() bool {
	return b.kinematic
}

func (b *Body) SetKinematic(k bool) {
	b.kinematic = k
}

func (b *Body) UseGravity() bool {
	return b.useGravity
}

func (b *Body) SetUseGravity(g bool) {
	b.useGravity = g
}

// SetGravity overrides the world gravity for this body.
func (b *Body) SetGravity(g kinematic.Vector) {
	b.gravity = &g
	b.Wake()
}

// ClearGravity reverts to the world gravity.
func (b *Body) ClearGravity() {
	b.gravity = nil
	b.Wake()
}

func (b *Body) IsSleeping() bool {
	return b.sleeping
}

func (b *Body) Sleep() {
	b.sleeping = true
	b.velocity = kinematic.Zero
	b.angularVelocity = kinematic.Zero
}

func (b *Body) Wake() {
	b.sleeping = false
	b.restFrames = 0
}

// OnGround reports whether the last step ended in contact with geometry
// along the gravity axis.
func (b *Body) OnGround() bool {
	return b.onGround
}

func (b *Body) step(dt float64, gravity kinematic.Vector) {
	if b.kinematic {
		b.position = b.node.Position
		b.rotation = b.node.Rotation
		b.syncObject()
		return
	}
	if b.sleeping {
		b.writeNode()
		return
	}

	g := kinematic.Zero
	if b.useGravity {
		g = gravity
		if b.gravity != nil {
			g = *b.gravity
		}
	}

	// X-axis
	dx := kinematic.Displacement(b.velocity.X, dt, g.X)
	vx := kinematic.FinalVelocity(b.velocity.X, dt, g.X)
	if contact, ok := b.sweep(dx, 0); ok {
		dx = contact
		vx = 0
	}
	b.object.Position.X += dx

	// Y-axis
	dy := kinematic.Displacement(b.velocity.Y, dt, g.Y)
	vy := kinematic.FinalVelocity(b.velocity.Y, dt, g.Y)
	onGround := false
	if contact, ok := b.sweep(0, dy); ok {
		dy = contact
		vy = 0
		onGround = g.Y != 0
	}
	b.object.Position.Y += dy
	b.object.Update()

	// Z-axis has no geometry
	dz := kinematic.Displacement(b.velocity.Z, dt, g.Z)
	vz := kinematic.FinalVelocity(b.velocity.Z, dt, g.Z)

	b.position = b.position.Add(kinematic.Vector{X: dx, Y: dy, Z: dz})
	b.velocity = kinematic.Vector{X: vx, Y: vy, Z: vz}
	b.onGround = onGround
	b.rotation = b.rotation.Integrate(b.angularVelocity, dt)

	if b.velocity.Magnitude() < SleepVelocity && b.angularVelocity.Magnitude() < SleepVelocity {
		b.restFrames++
		if b.restFrames >= SleepFrames {
			b.Sleep()
		}
	} else {
		b.restFrames = 0
	}

	b.writeNode()
}

// sweep returns the allowed displacement when moving by (dx, dy) would run
// into level geometry.
func (b *Body) sweep(dx, dy float64) (float64, bool) {
	if dx == 0 && dy == 0 {
		return 0, false
	}
	collision := b.object.Check(dx, dy, TagLevel)
	if collision == nil {
		return 0, false
	}
	best := math.Inf(1)
	found := false
	for _, obj := range collision.Objects {
		if !objectsOverlap(b.object, obj, dx, dy) {
			continue
		}
		contact := collision.ContactWithObject(obj)
		d := contact.X
		if dy != 0 {
			d = contact.Y
		}
		if math.Abs(d) < math.Abs(best) {
			best = d
			found = true
		}
	}
	if !found {
		return 0, false
	}
	return best, true
}

func (b *Body) writeNode() {
	b.node.Position = b.position
	b.node.Rotation = b.rotation
}

func (b *Body) syncObject() {
	b.object.Position.X = b.position.X - b.size.X/2
	b.object.Position.Y = b.position.Y - b.size.Y/2
	if b.object.Space != nil {
		b.object.Update()
	}
}
