package items

import (
	"github.com/cbodonnell/flipside/pkg/events"
	"github.com/cbodonnell/flipside/pkg/kinematic"
	"github.com/cbodonnell/flipside/pkg/scene"
)

var pickupSize = kinematic.Vector{X: 1.5, Y: 1.5, Z: 1.5}

type KeyCard struct {
	pickup
}

func NewKeyCard(svc Services, id string) *KeyCard {
	k := &KeyCard{pickup: newPickup(svc, id, events.InventoryKeyCard)}
	k.owned = func() bool { return k.Inventory.HasKeyCard(k.id) }
	k.onCollect = func() {
		k.Inventory.AddKeyCard(k.id)
		k.Hub.KeyCardCollected.Publish(events.KeyCardCollected{KeyCardID: k.id})
	}
	return k
}

func (k *KeyCard) Attach(n *scene.Node) {
	k.attach(n, pickupSize, k.Collect)
}

func (k *KeyCard) Init() error {
	k.hideIfOwned()
	return nil
}

func (k *KeyCard) Update(dt float64) {
	k.spin(dt)
}
