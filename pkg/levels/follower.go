package levels

import (
	"github.com/cbodonnell/flipside/pkg/events"
	"github.com/cbodonnell/flipside/pkg/physics"
)

// gravityFollower makes a body fall the same way the player does.
type gravityFollower struct {
	hub  *events.Hub
	body *physics.Body
	sub  events.Subscription
}

func newGravityFollower(hub *events.Hub, body *physics.Body) *gravityFollower {
	return &gravityFollower{hub: hub, body: body}
}

func (g *gravityFollower) Init() error {
	g.sub = g.hub.GravityFlipped.Subscribe(func(ev events.GravityFlipped) {
		g.body.SetGravity(ev.Gravity)
	})
	return nil
}

func (g *gravityFollower) Destroy() error {
	if g.sub != nil {
		g.sub.Cancel()
	}
	return nil
}
