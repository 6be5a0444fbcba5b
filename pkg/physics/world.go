// Package physics is a small rigid-body world. A dynamic body's pose is
// authoritative: every step writes it back to the owning node, so moving a
// dynamic body means changing its pose, not its node transform.
package physics

import (
	"github.com/cbodonnell/flipside/pkg/kinematic"
	"github.com/solarlune/resolv"
)

const (
	// TagLevel marks static level geometry in the collision space.
	TagLevel = "level"
	// TagTrigger marks trigger volumes in the collision space.
	TagTrigger = "trigger"

	DefaultSpaceWidth  = 512
	DefaultSpaceHeight = 256
	DefaultCellSize    = 4
)

// World steps bodies against static geometry and evaluates triggers.
type World struct {
	space     *resolv.Space
	gravity   kinematic.Vector
	bodies    []*Body
	colliders []*Collider
	triggers  []*Trigger
	hooks     []*hook
	objects   map[*resolv.Object]*Body
}

type hook struct {
	fn func(dt float64)
}

// NewWorldOptions contains options for creating a new World.
type NewWorldOptions struct {
	Width    int
	Height   int
	CellSize int
	Gravity  *kinematic.Vector
}

func NewWorld(opts NewWorldOptions) *World {
	if opts.Width <= 0 {
		opts.Width = DefaultSpaceWidth
	}
	if opts.Height <= 0 {
		opts.Height = DefaultSpaceHeight
	}
	if opts.CellSize <= 0 {
		opts.CellSize = DefaultCellSize
	}
	gravity := kinematic.Down.Scale(kinematic.Gravity)
	if opts.Gravity != nil {
		gravity = *opts.Gravity
	}
	return &World{
		space:   resolv.NewSpace(opts.Width, opts.Height, opts.CellSize, opts.CellSize),
		gravity: gravity,
		objects: make(map[*resolv.Object]*Body),
	}
}

func (w *World) Gravity() kinematic.Vector {
	return w.gravity
}

// SetGravity changes the global gravity vector and wakes every body.
func (w *World) SetGravity(g kinematic.Vector) {
	w.gravity = g
	for _, b := range w.bodies {
		b.Wake()
	}
}

// Bodies returns the registered bodies in registration order.
func (w *World) Bodies() []*Body {
	return w.bodies
}

// AddStatic adds untracked static level geometry. x and y are the lower corner.
func (w *World) AddStatic(x, y, width, height float64) *resolv.Object {
	obj := resolv.NewObject(x, y, width, height, TagLevel)
	w.space.Add(obj)
	return obj
}

// AfterStep registers fn to run at the end of every Step. The returned func
// removes it.
func (w *World) AfterStep(fn func(dt float64)) func() {
	h := &hook{fn: fn}
	w.hooks = append(w.hooks, h)
	return func() {
		for i, c := range w.hooks {
			if c == h {
				w.hooks = append(w.hooks[:i:i], w.hooks[i+1:]...)
				return
			}
		}
	}
}

// Step advances the simulation by dt seconds of scaled time.
func (w *World) Step(dt float64) {
	if dt > 0 {
		for _, b := range w.bodies {
			if b.node == nil || !b.node.ActiveInHierarchy() {
				continue
			}
			b.step(dt, w.gravity)
		}
	}
	w.evaluateTriggers()
	hooks := make([]*hook, len(w.hooks))
	copy(hooks, w.hooks)
	for _, h := range hooks {
		h.fn(dt)
	}
}

func (w *World) addBody(b *Body) {
	for _, existing := range w.bodies {
		if existing == b {
			return
		}
	}
	w.bodies = append(w.bodies, b)
	w.space.Add(b.object)
	w.objects[b.object] = b
}

func (w *World) removeBody(b *Body) {
	for i, existing := range w.bodies {
		if existing == b {
			w.bodies = append(w.bodies[:i:i], w.bodies[i+1:]...)
			break
		}
	}
	if b.object.Space != nil {
		w.space.Remove(b.object)
	}
	delete(w.objects, b.object)
	for _, t := range w.triggers {
		t.forget(b)
	}
}

func (w *World) addTrigger(t *Trigger) {
	w.triggers = append(w.triggers, t)
	w.space.Add(t.object)
}

func (w *World) removeTrigger(t *Trigger) {
	for i, existing := range w.triggers {
		if existing == t {
			w.triggers = append(w.triggers[:i:i], w.triggers[i+1:]...)
			break
		}
	}
	if t.object.Space != nil {
		w.space.Remove(t.object)
	}
}

func (w *World) addCollider(c *Collider) {
	w.colliders = append(w.colliders, c)
}

func (w *World) removeCollider(c *Collider) {
	for i, existing := range w.colliders {
		if existing == c {
			w.colliders = append(w.colliders[:i:i], w.colliders[i+1:]...)
			break
		}
	}
}

func (w *World) evaluateTriggers() {
	for _, t := range w.triggers {
		t.evaluate(w)
	}
}

// overlaps is a strict AABB test; touching edges do not overlap.
func overlaps(ax, ay, aw, ah, bx, by, bw, bh float64) bool {
	return ax < bx+bw && bx < ax+aw && ay < by+bh && by < ay+ah
}

func objectsOverlap(a, b *resolv.Object, adx, ady float64) bool {
	return overlaps(a.Position.X+adx, a.Position.Y+ady, a.Size.X, a.Size.Y, b.Position.X, b.Position.Y, b.Size.X, b.Size.Y)
}
