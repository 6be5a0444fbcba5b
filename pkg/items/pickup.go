// Package items contains the collectible pickups, doors, terminals and level
// exits placed in levels.
package items

import (
	"github.com/cbodonnell/flipside/pkg/effects"
	"github.com/cbodonnell/flipside/pkg/events"
	"github.com/cbodonnell/flipside/pkg/inventory"
	"github.com/cbodonnell/flipside/pkg/kinematic"
	"github.com/cbodonnell/flipside/pkg/log"
	"github.com/cbodonnell/flipside/pkg/physics"
	"github.com/cbodonnell/flipside/pkg/player"
	"github.com/cbodonnell/flipside/pkg/scene"
)

const (
	SoundItemCollect = "item_collect"
	SoundDoorOpen    = "door_open"
	SoundDoorLocked  = "door_locked"

	// SpinSpeed is the idle rotation of uncollected pickups in degrees per second.
	SpinSpeed = 90.0
)

// Pickup is a collectible whose presence mirrors the inventory.
type Pickup interface {
	ItemID() string
	Kind() events.InventoryKind
	Node() *scene.Node
	IsCollected() bool
	Collect()
	// SetCollected hides or shows the pickup without touching the inventory.
	SetCollected(collected bool)
}

// Services are the collaborators shared by every item.
type Services struct {
	Hub       *events.Hub
	Inventory *inventory.Store
	Effects   effects.Spawner
	Audio     effects.Audio
	World     *physics.World
}

// pickup carries the behavior shared by every collectible. The concrete
// pickups supply onCollect and owned.
type pickup struct {
	Services
	id        string
	kind      events.InventoryKind
	node      *scene.Node
	trigger   *physics.Trigger
	collected bool

	onCollect func()
	owned     func() bool
}

func newPickup(svc Services, id string, kind events.InventoryKind) pickup {
	return pickup{
		Services: svc,
		id:       id,
		kind:     kind,
	}
}

func (p *pickup) attach(n *scene.Node, size kinematic.Vector, collect func()) {
	p.node = n
	p.trigger = physics.NewTrigger(physics.NewTriggerOptions{
		World: p.World,
		Size:  size,
		Tags:  []string{player.Tag},
		OnEnter: func(*physics.Body) {
			collect()
		},
	})
	n.AddComponent(p.trigger)
}

func (p *pickup) ItemID() string {
	return p.id
}

func (p *pickup) Kind() events.InventoryKind {
	return p.kind
}

func (p *pickup) Node() *scene.Node {
	return p.node
}

func (p *pickup) IsCollected() bool {
	return p.collected
}

// hideIfOwned hides a pickup the player already has. It reports whether the
// pickup was hidden.
func (p *pickup) hideIfOwned() bool {
	if p.owned() {
		p.SetCollected(true)
		return true
	}
	return false
}

func (p *pickup) SetCollected(collected bool) {
	p.collected = collected
	p.trigger.Clear()
	p.node.SetActive(!collected)
}

func (p *pickup) Collect() {
	if p.collected {
		return
	}
	p.collected = true
	pos := p.node.Position
	if p.Effects != nil {
		p.Effects.Spawn(effects.EffectItemCollect, pos)
	}
	if p.Audio != nil {
		p.Audio.PlaySFX(SoundItemCollect, pos)
	}
	p.onCollect()
	p.node.SetActive(false)
	p.Hub.ItemCollected.Publish(events.ItemCollected{ItemID: p.id, Position: pos})
	log.Debug("Collected %s %s", p.kind, p.id)
}

func (p *pickup) spin(dt float64) {
	if p.collected {
		return
	}
	p.node.Rotation = kinematic.FromAxisAngle(kinematic.Up, SpinSpeed*dt).Mul(p.node.Rotation).Normalized()
}
