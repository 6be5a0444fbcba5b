package persistence

import (
	"github.com/cbodonnell/flipside/pkg/events"
	"github.com/cbodonnell/flipside/pkg/kinematic"
	"github.com/cbodonnell/flipside/pkg/log"
	"github.com/cbodonnell/flipside/pkg/player"
	"github.com/cbodonnell/flipside/pkg/save"
	"github.com/cbodonnell/flipside/pkg/sched"
)

// RestoreOptions tune the load sequence. Zero fields take the defaults.
type RestoreOptions struct {
	// SettleFrames is the wait after the level is ready before reconciling.
	SettleFrames int
	// SceneWait is the extra wait in seconds for a level still loading.
	SceneWait float64
	// PlayerDelayFrames is the wait before the first search for the player.
	PlayerDelayFrames int
	// PlayerSearchAttempts and PlayerSearchInterval bound the player search.
	PlayerSearchAttempts int
	PlayerSearchInterval float64
	// PositionTolerance and RotationTolerance (degrees) bound pose drift.
	PositionTolerance float64
	RotationTolerance float64
	// VerifyFrames is how long the pose must hold before the final check.
	VerifyFrames int
	// RetryFrames is the wait after the escalated re-pin.
	RetryFrames int
	// HoldFrames is how long the last resort keeps the body kinematic.
	HoldFrames int
	// HazardRecheckFrames is the wait before the hazard verification pass.
	HazardRecheckFrames int
}

func (o RestoreOptions) withDefaults() RestoreOptions {
	if o.SettleFrames <= 0 {
		o.SettleFrames = 2
	}
	if o.SceneWait <= 0 {
		o.SceneWait = 0.5
	}
	if o.PlayerDelayFrames <= 0 {
		o.PlayerDelayFrames = 4
	}
	if o.PlayerSearchAttempts <= 0 {
		o.PlayerSearchAttempts = 10
	}
	if o.PlayerSearchInterval <= 0 {
		o.PlayerSearchInterval = 0.1
	}
	if o.PositionTolerance <= 0 {
		o.PositionTolerance = 0.1
	}
	if o.RotationTolerance <= 0 {
		o.RotationTolerance = 5
	}
	if o.VerifyFrames <= 0 {
		o.VerifyFrames = 5
	}
	if o.RetryFrames <= 0 {
		o.RetryFrames = 3
	}
	if o.HoldFrames <= 0 {
		o.HoldFrames = 2
	}
	if o.HazardRecheckFrames <= 0 {
		o.HazardRecheckFrames = 2
	}
	return o
}

// playerRestore runs the transform restore protocol for one load. The body
// is pinned kinematically, checked after physics has stepped, and pinned
// again while it drifts. Gravity and vitals are applied once the pose holds.
type playerRestore struct {
	e      *Engine
	target save.Player
	p      *player.Player
	pins   int
}

func (e *Engine) restorePlayer(s *save.Snapshot) {
	e.restoring = true
	r := &playerRestore{e: e, target: s.Player}
	e.scheduler.AfterFrames(e.opts.PlayerDelayFrames, r.search)
}

func (r *playerRestore) search() {
	e := r.e
	e.scheduler.Poll(sched.PollOptions{
		Interval:    e.opts.PlayerSearchInterval,
		MaxAttempts: e.opts.PlayerSearchAttempts,
	}, func() bool {
		r.p = findPlayer(e.scenes.Active())
		return r.p != nil
	}, func(ok bool) {
		if !ok {
			log.Warn("Player not found after %d attempts, position not restored", e.opts.PlayerSearchAttempts)
			r.end(false, false)
			return
		}
		r.p.SetInputEnabled(false)
		r.pin()
		e.scheduler.AfterFrames(2, r.beforeGravity)
	})
}

// alive reports whether the player is still in the active scene.
func (r *playerRestore) alive() bool {
	n := r.p.Node()
	if n == nil || n.Scene() == nil || n.Scene() != r.e.scenes.Active() || !n.Scene().Loaded() {
		log.Warn("Player left the scene during restore")
		r.end(false, false)
		return false
	}
	return true
}

// drift returns how far the body is from the target pose.
func (r *playerRestore) drift() (distance, angle float64) {
	pos, rot := r.p.Node().Position, r.p.Node().Rotation
	if b := r.p.Body(); b != nil {
		pos, rot = b.Position(), b.Rotation()
	}
	return kinematic.Distance(pos, r.target.Position), kinematic.Angle(rot, r.target.Rotation)
}

func (r *playerRestore) stable() bool {
	d, a := r.drift()
	return d <= r.e.opts.PositionTolerance && a <= r.e.opts.RotationTolerance
}

// pin places the player on the target pose through both the node and the
// body, with the body made kinematic while doing so.
func (r *playerRestore) pin() {
	r.pins++
	n := r.p.Node()
	n.Position = r.target.Position
	n.Rotation = r.target.Rotation
	r.p.SetYaw(r.target.Rotation.Yaw())

	b := r.p.Body()
	if b == nil {
		return
	}
	wasKinematic := b.IsKinematic()
	wasSleeping := b.IsSleeping()
	b.SetKinematic(true)
	b.SetVelocity(kinematic.Zero)
	b.SetAngularVelocity(kinematic.Zero)
	b.SetPose(r.target.Position, r.target.Rotation)
	b.SetKinematic(wasKinematic)
	if wasSleeping {
		b.Wake()
	}
}

func (r *playerRestore) repinIfDrifted(stage string, next func()) {
	if r.stable() {
		next()
		return
	}
	d, a := r.drift()
	log.Warn("Player drifted %s (distance %.3f, rotation %.2f), pinning again", stage, d, a)
	r.pin()
	r.e.scheduler.NextFrame(next)
}

func (r *playerRestore) beforeGravity() {
	if !r.alive() {
		return
	}
	r.repinIfDrifted("before gravity restore", r.applyGravity)
}

func (r *playerRestore) applyGravity() {
	if !r.alive() {
		return
	}
	if g := r.p.Gravity(); g != nil {
		g.SetFlipped(r.target.GravityFlipped)
	}
	r.e.scheduler.NextFrame(r.afterGravity)
}

func (r *playerRestore) afterGravity() {
	if !r.alive() {
		return
	}
	r.repinIfDrifted("after gravity restore", r.applyStats)
}

func (r *playerRestore) applyStats() {
	if !r.alive() {
		return
	}
	if st := r.p.Stats(); st != nil {
		st.SetMaxHealth(r.target.MaxHealth)
		st.SetHealth(r.target.Health)
		st.SetMaxEnergy(r.target.MaxEnergy)
		st.SetEnergy(r.target.Energy)
	}
	r.e.scheduler.AfterFrames(r.e.opts.VerifyFrames, r.verify)
}

func (r *playerRestore) verify() {
	if !r.alive() {
		return
	}
	if r.stable() {
		r.end(true, true)
		return
	}
	d, a := r.drift()
	log.Warn("Player pose changed after restore (distance %.3f, rotation %.2f), restoring again", d, a)
	r.pin()
	if b := r.p.Body(); b != nil {
		b.Wake()
	}
	r.e.scheduler.AfterFrames(r.e.opts.RetryFrames, r.verifyRetry)
}

func (r *playerRestore) verifyRetry() {
	if !r.alive() {
		return
	}
	if r.stable() {
		r.end(true, true)
		return
	}
	d, a := r.drift()
	log.Error("Failed to restore player pose (distance %.3f, rotation %.2f), holding it kinematic", d, a)
	b := r.p.Body()
	if b == nil {
		r.end(true, false)
		return
	}
	b.SetKinematic(true)
	r.pin()
	r.e.scheduler.AfterFrames(r.e.opts.HoldFrames, func() {
		if !r.alive() {
			return
		}
		b.SetKinematic(false)
		r.e.scheduler.NextFrame(func() {
			if !r.alive() {
				return
			}
			stable := r.stable()
			if !stable {
				d, a := r.drift()
				log.Error("Player pose still off after last resort (distance %.3f, rotation %.2f)", d, a)
			}
			r.end(true, stable)
		})
	})
}

// end finishes the protocol. input is re-enabled whenever the player was
// found, even if the pose could not be verified.
func (r *playerRestore) end(found, stable bool) {
	if found && r.p != nil {
		r.p.SetInputEnabled(true)
		d, _ := r.drift()
		log.Info("Player restored to %s after %d pins (drift %.3f)", r.target.Position, r.pins, d)
	}
	r.e.restoring = false
	r.e.hub.PlayerRestored.Publish(events.PlayerRestored{Found: found, Stable: stable})
}
