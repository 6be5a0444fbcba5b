// Package persistence saves the game to a repository and reconciles a loaded
// save against the live scene.
package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/cbodonnell/flipside/pkg/events"
	"github.com/cbodonnell/flipside/pkg/hazards"
	"github.com/cbodonnell/flipside/pkg/inventory"
	"github.com/cbodonnell/flipside/pkg/log"
	"github.com/cbodonnell/flipside/pkg/player"
	"github.com/cbodonnell/flipside/pkg/puzzles"
	"github.com/cbodonnell/flipside/pkg/repositories"
	"github.com/cbodonnell/flipside/pkg/save"
	"github.com/cbodonnell/flipside/pkg/scene"
	"github.com/cbodonnell/flipside/pkg/sched"
	"github.com/google/uuid"
)

// DefaultSlot is the save file name used when none is configured.
const DefaultSlot = "savegame.json"

// SceneLoader starts scene transitions.
type SceneLoader interface {
	LoadScene(name string, onComplete func()) error
}

// LevelIndexer is told which level a save is about to enter.
type LevelIndexer interface {
	SetLevelIndexFromLevelName(name string)
}

// Engine owns the in-memory save and the load sequence.
type Engine struct {
	ctx        context.Context
	hub        *events.Hub
	scheduler  *sched.Scheduler
	repository repositories.Repository
	slot       string
	inventory  *inventory.Store
	registry   *puzzles.Registry
	scenes     *scene.Manager
	loader     SceneLoader
	levels     LevelIndexer
	now        func() time.Time
	opts       RestoreOptions

	current      *save.Snapshot
	sessionID    uuid.UUID
	sessionStart float64
	// applying covers the whole load sequence, restoring only the player
	// transform protocol.
	applying  bool
	restoring bool
}

// NewEngineOptions contains options for creating a new Engine.
type NewEngineOptions struct {
	// Context bounds repository calls. Defaults to context.Background().
	Context    context.Context
	Hub        *events.Hub
	Scheduler  *sched.Scheduler
	Repository repositories.Repository
	// Slot is the save name. Defaults to DefaultSlot.
	Slot      string
	Inventory *inventory.Store
	Registry  *puzzles.Registry
	Scenes    *scene.Manager
	Loader    SceneLoader
	// Levels is optional.
	Levels LevelIndexer
	// Now stamps saves. Defaults to time.Now.
	Now     func() time.Time
	Restore RestoreOptions
}

func NewEngine(opts NewEngineOptions) *Engine {
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	if opts.Slot == "" {
		opts.Slot = DefaultSlot
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Engine{
		ctx:          opts.Context,
		hub:          opts.Hub,
		scheduler:    opts.Scheduler,
		repository:   opts.Repository,
		slot:         opts.Slot,
		inventory:    opts.Inventory,
		registry:     opts.Registry,
		scenes:       opts.Scenes,
		loader:       opts.Loader,
		levels:       opts.Levels,
		now:          opts.Now,
		opts:         opts.Restore.withDefaults(),
		sessionID:    uuid.New(),
		sessionStart: opts.Scheduler.Now(),
	}
}

// Slot returns the save name the engine reads and writes.
func (e *Engine) Slot() string {
	return e.slot
}

// IsRestoring reports whether a load is still being applied.
func (e *Engine) IsRestoring() bool {
	return e.applying || e.restoring
}

// CurrentSnapshot returns a copy of the last snapshot saved or loaded, or nil.
func (e *Engine) CurrentSnapshot() *save.Snapshot {
	if e.current == nil {
		return nil
	}
	return e.current.Clone()
}

// PlayTime returns the cumulative play time including the current session.
func (e *Engine) PlayTime() float64 {
	t := e.scheduler.Now() - e.sessionStart
	if e.current != nil {
		t += e.current.CumulativePlayTimeSeconds
	}
	return t
}

// ResetSession forgets the in-memory save and restarts the play clock.
func (e *Engine) ResetSession() {
	e.current = nil
	e.sessionID = uuid.New()
	e.sessionStart = e.scheduler.Now()
}

func (e *Engine) SaveExists() bool {
	exists, err := e.repository.Exists(e.ctx, e.slot)
	if err != nil {
		log.Error("Failed to check for save %s: %v", e.slot, err)
		return false
	}
	return exists
}

func (e *Engine) DeleteSave() error {
	if err := e.repository.Delete(e.ctx, e.slot); err != nil {
		log.Error("Failed to delete save %s: %v", e.slot, err)
		return fmt.Errorf("failed to delete save: %v", err)
	}
	return nil
}

// Collect assembles a snapshot of the live game without storing it.
func (e *Engine) Collect() *save.Snapshot {
	s := save.New(e.now())
	s.SessionID = e.sessionID

	active := e.scenes.Active()
	if p := findPlayer(active); p != nil {
		s.Player.Position = p.Node().Position
		s.Player.Rotation = p.Node().Rotation
		if b := p.Body(); b != nil {
			s.Player.Position = b.Position()
			s.Player.Rotation = b.Rotation()
		}
		if g := p.Gravity(); g != nil {
			s.Player.GravityFlipped = g.IsFlipped()
		}
		if st := p.Stats(); st != nil {
			s.Player.Health = st.Health()
			s.Player.MaxHealth = st.MaxHealth()
			s.Player.Energy = st.Energy()
			s.Player.MaxEnergy = st.MaxEnergy()
		}
	} else {
		log.Warn("No player found while saving, keeping default player state")
	}

	s.CollectedKeyCardIDs = e.inventory.KeyCards()
	s.CollectedEnergyCoreIDs = e.inventory.EnergyCores()
	for id, n := range e.inventory.AllNotes() {
		s.CollectedNotes[id] = save.NoteData{Title: n.Title, Text: n.Text}
	}

	s.CurrentLevelName = e.scenes.ActiveName()
	s.SolvedPuzzleIDs = e.registry.SolvedIDs()

	if active != nil {
		for _, d := range scene.FindAll[*hazards.Discharge](active, true) {
			if d.Disabled() {
				s.DisabledHazardPaths = append(s.DisabledHazardPaths, d.Path())
			}
		}
	}

	s.CumulativePlayTimeSeconds = e.PlayTime()
	s.Normalize()
	return s
}

// SaveGame stores a snapshot of the live game. A failed write is logged and
// returned, the game itself is unaffected.
func (e *Engine) SaveGame() error {
	s := e.Collect()
	if err := e.repository.Save(e.ctx, e.slot, s); err != nil {
		log.Error("Failed to save game: %v", err)
		return fmt.Errorf("failed to save game: %v", err)
	}
	e.current = s
	e.sessionStart = e.scheduler.Now()
	log.Info("Saved game at %s (%.1fs played)", s.CurrentLevelName, s.CumulativePlayTimeSeconds)
	e.hub.GameSaved.Publish(events.GameSaved{Level: s.CurrentLevelName, PlayTime: s.CumulativePlayTimeSeconds})
	return nil
}

// LoadGame reads the save and schedules applying it. It returns false when
// there is no usable save or a load is already being applied.
func (e *Engine) LoadGame() bool {
	if e.IsRestoring() {
		log.Warn("Ignoring load request: a save is still being applied")
		return false
	}
	s, err := e.repository.Load(e.ctx, e.slot)
	if err != nil {
		if repositories.IsNotFound(err) {
			log.Warn("Save %s not found", e.slot)
		} else {
			log.Error("Failed to load game: %v", err)
		}
		return false
	}

	e.current = s
	e.sessionID = s.SessionID
	if e.sessionID == uuid.Nil {
		e.sessionID = uuid.New()
	}
	e.sessionStart = e.scheduler.Now()
	e.applying = true
	log.Info("Loading save for %s", s.CurrentLevelName)
	e.scheduler.NextFrame(func() {
		e.apply(s)
	})
	return true
}

func findPlayer(s *scene.Scene) *player.Player {
	if s == nil {
		return nil
	}
	p, ok := scene.FindFirst[*player.Player](s)
	if !ok {
		return nil
	}
	return p
}
