package physics

import (
	"github.com/cbodonnell/flipside/pkg/kinematic"
	"github.com/cbodonnell/flipside/pkg/scene"
	"github.com/solarlune/resolv"
)

// Collider is static level geometry centered on its node. It blocks bodies
// only while enabled and its node is active.
type Collider struct {
	world   *World
	node    *scene.Node
	size    kinematic.Vector
	enabled bool
	object  *resolv.Object
}

func NewCollider(world *World, size kinematic.Vector) *Collider {
	return &Collider{
		world:   world,
		size:    size,
		enabled: true,
		object:  resolv.NewObject(0, 0, size.X, size.Y, TagLevel),
	}
}

func (c *Collider) Attach(n *scene.Node) {
	c.node = n
}

func (c *Collider) Init() error {
	c.world.addCollider(c)
	c.refresh()
	return nil
}

func (c *Collider) Destroy() error {
	c.world.removeCollider(c)
	c.remove()
	return nil
}

func (c *Collider) OnEnable() {
	c.refresh()
}

func (c *Collider) OnDisable() {
	c.refresh()
}

func (c *Collider) Enabled() bool {
	return c.enabled
}

func (c *Collider) SetEnabled(enabled bool) {
	c.enabled = enabled
	c.refresh()
}

// Blocking reports whether the collider is currently part of the space.
func (c *Collider) Blocking() bool {
	return c.object.Space != nil
}

func (c *Collider) refresh() {
	if c.node == nil || c.node.Scene() == nil || !c.node.Scene().Loaded() {
		return
	}
	if c.enabled && c.node.ActiveInHierarchy() {
		c.object.Position.X = c.node.Position.X - c.size.X/2
		c.object.Position.Y = c.node.Position.Y - c.size.Y/2
		if c.object.Space == nil {
			c.world.space.Add(c.object)
		} else {
			c.object.Update()
		}
		return
	}
	c.remove()
}

func (c *Collider) remove() {
	if c.object.Space != nil {
		c.world.space.Remove(c.object)
	}
}
