package physics

import (
	"github.com/cbodonnell/flipside/pkg/kinematic"
	"github.com/cbodonnell/flipside/pkg/scene"
	"github.com/solarlune/resolv"
)

// Trigger is a volume centered on its node that reports bodies with one of
// its tags entering and leaving it.
type Trigger struct {
	world *World
	node  *scene.Node
	size  kinematic.Vector
	tags  []string

	occupants []*Body
	object    *resolv.Object

	OnEnter func(b *Body)
	OnExit  func(b *Body)
}

// NewTriggerOptions contains options for creating a new Trigger.
type NewTriggerOptions struct {
	World   *World
	Size    kinematic.Vector
	Tags    []string
	OnEnter func(b *Body)
	OnExit  func(b *Body)
}

func NewTrigger(opts NewTriggerOptions) *Trigger {
	return &Trigger{
		world:   opts.World,
		size:    opts.Size,
		tags:    opts.Tags,
		object:  resolv.NewObject(0, 0, opts.Size.X, opts.Size.Y, TagTrigger),
		OnEnter: opts.OnEnter,
		OnExit:  opts.OnExit,
	}
}

func (t *Trigger) Attach(n *scene.Node) {
	t.node = n
}

func (t *Trigger) Init() error {
	t.world.addTrigger(t)
	return nil
}

func (t *Trigger) Destroy() error {
	t.world.removeTrigger(t)
	t.occupants = nil
	return nil
}

// Occupants returns the bodies currently inside the trigger.
func (t *Trigger) Occupants() []*Body {
	out := make([]*Body, len(t.occupants))
	copy(out, t.occupants)
	return out
}

// Clear forgets every occupant without reporting exits.
func (t *Trigger) Clear() {
	t.occupants = nil
}

func (t *Trigger) forget(b *Body) {
	for i, o := range t.occupants {
		if o == b {
			t.occupants = append(t.occupants[:i:i], t.occupants[i+1:]...)
			return
		}
	}
}

func (t *Trigger) contains(b *Body) bool {
	for _, o := range t.occupants {
		if o == b {
			return true
		}
	}
	return false
}

func (t *Trigger) evaluate(w *World) {
	if t.node == nil || !t.node.ActiveInHierarchy() {
		t.occupants = nil
		return
	}
	t.object.Position.X = t.node.Position.X - t.size.X/2
	t.object.Position.Y = t.node.Position.Y - t.size.Y/2
	t.object.Update()

	var inside []*Body
	if collision := t.object.Check(0, 0, t.tags...); collision != nil {
		for _, obj := range collision.Objects {
			b, ok := w.objects[obj]
			if !ok || b.node == nil || !b.node.ActiveInHierarchy() {
				continue
			}
			if !objectsOverlap(t.object, obj, 0, 0) {
				continue
			}
			inside = append(inside, b)
		}
	}

	var exited []*Body
	for _, o := range t.occupants {
		stillInside := false
		for _, b := range inside {
			if b == o {
				stillInside = true
				break
			}
		}
		if !stillInside {
			exited = append(exited, o)
		}
	}
	var entered []*Body
	for _, b := range inside {
		if !t.contains(b) {
			entered = append(entered, b)
		}
	}
	t.occupants = inside

	for _, b := range exited {
		if t.OnExit != nil {
			t.OnExit(b)
		}
	}
	for _, b := range entered {
		if t.OnEnter != nil {
			t.OnEnter(b)
		}
	}
}
