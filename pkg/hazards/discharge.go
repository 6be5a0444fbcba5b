// Package hazards contains damage zones and the links that switch them off
// when puzzles are solved.
package hazards

import (
	"github.com/cbodonnell/flipside/pkg/events"
	"github.com/cbodonnell/flipside/pkg/kinematic"
	"github.com/cbodonnell/flipside/pkg/log"
	"github.com/cbodonnell/flipside/pkg/physics"
	"github.com/cbodonnell/flipside/pkg/scene"
)

const (
	DefaultDamagePerSecond = 10.0
	DefaultDamageInterval  = 0.5
)

// Damageable is anything a hazard can hurt.
type Damageable interface {
	TakeDamage(amount float64)
}

// Discharge damages every Damageable body inside its trigger at a fixed
// interval. It is enabled exactly when its node is active in the hierarchy.
type Discharge struct {
	hub     *events.Hub
	linkage *Linkage
	trigger *physics.Trigger
	node    *scene.Node

	damagePerSecond float64
	interval        float64
	elapsed         float64
	lastDamage      float64
	occupants       []Damageable
}

// NewDischargeOptions contains options for creating a new Discharge.
type NewDischargeOptions struct {
	Hub             *events.Hub
	Linkage         *Linkage
	World           *physics.World
	Size            kinematic.Vector
	DamagePerSecond float64
	DamageInterval  float64
	// Tags selects the bodies the discharge reacts to.
	Tags []string
}

func NewDischarge(opts NewDischargeOptions) *Discharge {
	if opts.DamagePerSecond <= 0 {
		opts.DamagePerSecond = DefaultDamagePerSecond
	}
	if opts.DamageInterval <= 0 {
		opts.DamageInterval = DefaultDamageInterval
	}
	d := &Discharge{
		hub:             opts.Hub,
		linkage:         opts.Linkage,
		damagePerSecond: opts.DamagePerSecond,
		interval:        opts.DamageInterval,
		lastDamage:      -opts.DamageInterval,
	}
	d.trigger = physics.NewTrigger(physics.NewTriggerOptions{
		World:   opts.World,
		Size:    opts.Size,
		Tags:    opts.Tags,
		OnEnter: d.onEnter,
		OnExit:  d.onExit,
	})
	return d
}

// Attach also places the discharge's trigger on n.
func (d *Discharge) Attach(n *scene.Node) {
	d.node = n
	n.AddComponent(d.trigger)
}

func (d *Discharge) Init() error {
	if d.linkage != nil {
		d.linkage.RegisterHazard(d)
	}
	return nil
}

func (d *Discharge) Destroy() error {
	if d.linkage != nil {
		d.linkage.UnregisterHazard(d)
	}
	d.occupants = nil
	return nil
}

func (d *Discharge) Node() *scene.Node {
	return d.node
}

// Path is the hierarchical identity used to persist the hazard's state.
func (d *Discharge) Path() string {
	return d.node.Path()
}

// Disabled reports whether the discharge's own switch is off. This is the
// state a save records; a discharge under an inactive parent is not disabled.
func (d *Discharge) Disabled() bool {
	return d.node == nil || !d.node.ActiveSelf()
}

// Active reports whether the discharge is switched on and its node is active
// in the hierarchy.
func (d *Discharge) Active() bool {
	return d.node != nil && d.node.ActiveInHierarchy()
}

// SetActive enables or disables the discharge through its node.
func (d *Discharge) SetActive(active bool) {
	d.node.SetActive(active)
}

func (d *Discharge) OnEnable() {
	d.hub.HazardStateChanged.Publish(events.HazardStateChanged{Path: d.Path(), Active: true})
}

func (d *Discharge) OnDisable() {
	d.occupants = nil
	d.trigger.Clear()
	d.hub.HazardStateChanged.Publish(events.HazardStateChanged{Path: d.Path(), Active: false})
}

func (d *Discharge) onEnter(b *physics.Body) {
	target, ok := scene.ComponentOf[Damageable](b.Node())
	if !ok {
		return
	}
	for _, o := range d.occupants {
		if o == target {
			return
		}
	}
	d.occupants = append(d.occupants, target)
}

func (d *Discharge) onExit(b *physics.Body) {
	target, ok := scene.ComponentOf[Damageable](b.Node())
	if !ok {
		return
	}
	for i, o := range d.occupants {
		if o == target {
			d.occupants = append(d.occupants[:i:i], d.occupants[i+1:]...)
			return
		}
	}
}

// Update applies damage while enabled. dt is scaled time, so a frozen clock
// deals no damage.
func (d *Discharge) Update(dt float64) {
	d.elapsed += dt
	if d.elapsed-d.lastDamage < d.interval || len(d.occupants) == 0 {
		return
	}
	damage := d.damagePerSecond * d.interval
	for _, o := range d.occupants {
		log.Trace("Discharge %s dealing %.1f damage", d.Path(), damage)
		o.TakeDamage(damage)
	}
	d.lastDamage = d.elapsed
}
