package persistence

import (
	"github.com/cbodonnell/flipside/pkg/events"
	"github.com/cbodonnell/flipside/pkg/hazards"
	"github.com/cbodonnell/flipside/pkg/items"
	"github.com/cbodonnell/flipside/pkg/log"
	"github.com/cbodonnell/flipside/pkg/puzzles"
	"github.com/cbodonnell/flipside/pkg/save"
	"github.com/cbodonnell/flipside/pkg/scene"
)

// apply brings the save's level up, then reconciles once it has settled.
func (e *Engine) apply(s *save.Snapshot) {
	level := s.CurrentLevelName
	if e.levels != nil {
		e.levels.SetLevelIndexFromLevelName(level)
	}
	if e.scenes.ActiveName() == level {
		e.afterSceneReady(s)
		return
	}
	if err := e.loader.LoadScene(level, func() { e.afterSceneReady(s) }); err != nil {
		e.abort(level, "failed to load level %s: %v", level, err)
	}
}

// abort ends a load that could not reach reconciliation.
func (e *Engine) abort(level string, format string, args ...interface{}) {
	log.Error("Save not applied: "+format, args...)
	e.applying = false
	e.hub.SaveApplied.Publish(events.SaveApplied{Level: level, Failed: true})
}

func (e *Engine) afterSceneReady(s *save.Snapshot) {
	e.scheduler.AfterFrames(e.opts.SettleFrames, func() {
		active := e.scenes.Active()
		if active == nil || active.Name() != s.CurrentLevelName {
			e.abort(s.CurrentLevelName, "level %s is not active", s.CurrentLevelName)
			return
		}
		if !active.Loaded() {
			log.Warn("Level %s is not fully loaded yet, waiting", s.CurrentLevelName)
			e.scheduler.AfterSeconds(e.opts.SceneWait, func() {
				if e.scenes.Active() != active || !active.Loaded() {
					e.abort(s.CurrentLevelName, "level %s did not finish loading", s.CurrentLevelName)
					return
				}
				e.reconcile(active, s)
			})
			return
		}
		e.reconcile(active, s)
	})
}

// reconcile replays the save into the stores and the scene. Each step relies
// on the ones before it.
func (e *Engine) reconcile(active *scene.Scene, s *save.Snapshot) {
	e.restorePlayer(s)

	e.replayInventory(s)
	e.reconcilePickups(active, s)
	e.reconcilePuzzles(active, s)
	e.reconcileHazards(active, s)

	e.scheduler.AfterFrames(e.opts.HazardRecheckFrames, func() {
		if e.scenes.Active() == active {
			e.recheckHazards(active, s)
		}
		e.applying = false
		log.Info("Save applied to %s", active.Name())
		e.hub.SaveApplied.Publish(events.SaveApplied{Level: active.Name()})
	})
}

func (e *Engine) replayInventory(s *save.Snapshot) {
	e.inventory.Clear()
	for _, id := range s.CollectedKeyCardIDs {
		e.inventory.AddKeyCard(id)
	}
	for _, id := range s.CollectedEnergyCoreIDs {
		e.inventory.AddEnergyCore(id)
	}
	for id, n := range s.CollectedNotes {
		e.inventory.AddNote(id, n.Title, n.Text)
	}
}

func (e *Engine) owned(p items.Pickup) bool {
	switch p.Kind() {
	case events.InventoryKeyCard:
		return e.inventory.HasKeyCard(p.ItemID())
	case events.InventoryEnergyCore:
		return e.inventory.HasEnergyCore(p.ItemID())
	case events.InventoryNote:
		return e.inventory.HasNote(p.ItemID())
	}
	return false
}

// reconcilePickups hides owned pickups and shows the rest. A core feeding a
// puzzle the save has solved stays hidden too.
func (e *Engine) reconcilePickups(active *scene.Scene, s *save.Snapshot) {
	for _, p := range scene.FindAll[items.Pickup](active, true) {
		collected := e.owned(p)
		if core, ok := p.(*items.EnergyCore); ok && core.PuzzleID() != "" && s.IsPuzzleSolved(core.PuzzleID()) {
			collected = true
		}
		if p.IsCollected() != collected || p.Node().ActiveSelf() == collected {
			p.SetCollected(collected)
		}
	}
}

// reconcilePuzzles restores solved puzzles without replaying their solve
// events and reverts progress the save does not know about.
func (e *Engine) reconcilePuzzles(active *scene.Scene, s *save.Snapshot) {
	found := map[string]bool{}
	for _, p := range scene.FindAll[puzzles.Puzzle](active, true) {
		found[p.ID()] = true
		switch {
		case s.IsPuzzleSolved(p.ID()):
			p.RestoreState(puzzles.StateSolved)
		case p.State() != puzzles.StateInProgress:
			p.RestoreState(puzzles.StateInProgress)
		}
	}
	for _, id := range s.SolvedPuzzleIDs {
		if !found[id] {
			log.Warn("Solved puzzle %s is not in level %s", id, active.Name())
		}
	}
	solved := e.registry.RecalculateSolvedCount()
	log.Debug("Restored puzzles: %d/%d solved", solved, e.registry.Total())
}

func (e *Engine) hazardDisabled(d *hazards.Discharge, s *save.Snapshot) bool {
	return s.IsHazardDisabled(d.Path()) || s.IsHazardDisabled(d.Node().Name())
}

func (e *Engine) reconcileHazards(active *scene.Scene, s *save.Snapshot) {
	for _, d := range scene.FindAll[*hazards.Discharge](active, true) {
		disabled := e.hazardDisabled(d, s)
		if d.Disabled() != disabled {
			d.SetActive(!disabled)
		}
	}
}

// recheckHazards disables again any saved-disabled hazard that something
// switched back on since reconcileHazards ran.
func (e *Engine) recheckHazards(active *scene.Scene, s *save.Snapshot) {
	for _, path := range s.DisabledHazardPaths {
		n := active.FindByPath(path)
		if n == nil {
			log.Warn("Disabled hazard %s is not in level %s", path, active.Name())
			continue
		}
		if n.ActiveSelf() {
			log.Warn("Hazard %s is still active, disabling again", path)
			n.SetActive(false)
		}
	}
}
