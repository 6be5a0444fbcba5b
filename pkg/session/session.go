// Package session owns the top level game state: menu, playing and paused,
// plus new game, continue and the death-and-reload flow.
package session

import (
	"fmt"

	"github.com/cbodonnell/flipside/pkg/events"
	"github.com/cbodonnell/flipside/pkg/hazards"
	"github.com/cbodonnell/flipside/pkg/inventory"
	"github.com/cbodonnell/flipside/pkg/log"
	"github.com/cbodonnell/flipside/pkg/player"
	"github.com/cbodonnell/flipside/pkg/puzzles"
	"github.com/cbodonnell/flipside/pkg/scene"
	"github.com/cbodonnell/flipside/pkg/sched"
)

const (
	// DeathDelay is the realtime pause after a death before reloading.
	DeathDelay = 0.1
	// NewGameResetFrames is the wait after the first level loads before a new
	// game wipes puzzle and hazard state.
	NewGameResetFrames = 3
)

type State int

const (
	Menu State = iota
	Playing
	Paused
)

func (s State) String() string {
	switch s {
	case Menu:
		return "menu"
	case Playing:
		return "playing"
	case Paused:
		return "paused"
	}
	return "unknown"
}

// Persistence is the part of the save engine the session drives.
type Persistence interface {
	SaveExists() bool
	LoadGame() bool
	DeleteSave() error
	ResetSession()
}

type SceneLoader interface {
	LoadScene(name string, onComplete func()) error
}

// Overlay shows and hides the loading screen.
type Overlay interface {
	ShowLoading()
	HideLoading()
}

// LogOverlay is an Overlay that only logs.
type LogOverlay struct{}

func (LogOverlay) ShowLoading() { log.Debug("Showing loading screen") }
func (LogOverlay) HideLoading() { log.Debug("Hiding loading screen") }

// Controller is the game session state machine.
type Controller struct {
	hub         *events.Hub
	scheduler   *sched.Scheduler
	inventory   *inventory.Store
	registry    *puzzles.Registry
	linkage     *hazards.Linkage
	scenes      *scene.Manager
	loader      SceneLoader
	persistence Persistence
	overlay     Overlay
	firstLevel  string
	quit        func()

	state           State
	startingNewGame bool
	dying           bool
	newGameSub      events.Subscription
	subs            events.Subscriptions
}

// NewControllerOptions contains options for creating a new Controller.
type NewControllerOptions struct {
	Hub         *events.Hub
	Scheduler   *sched.Scheduler
	Inventory   *inventory.Store
	Registry    *puzzles.Registry
	Linkage     *hazards.Linkage
	Scenes      *scene.Manager
	Loader      SceneLoader
	Persistence Persistence
	// Overlay defaults to LogOverlay.
	Overlay    Overlay
	FirstLevel string
	// Quit is called by Quit. Optional.
	Quit func()
}

func NewController(opts NewControllerOptions) *Controller {
	if opts.Overlay == nil {
		opts.Overlay = LogOverlay{}
	}
	c := &Controller{
		hub:         opts.Hub,
		scheduler:   opts.Scheduler,
		inventory:   opts.Inventory,
		registry:    opts.Registry,
		linkage:     opts.Linkage,
		scenes:      opts.Scenes,
		loader:      opts.Loader,
		persistence: opts.Persistence,
		overlay:     opts.Overlay,
		firstLevel:  opts.FirstLevel,
		quit:        opts.Quit,
		state:       Menu,
	}
	c.subs.Add(c.hub.PlayerDeath.Subscribe(func(events.PlayerDeath) { c.onPlayerDeath() }))
	c.subs.Add(c.hub.PlayerRestored.Subscribe(c.onPlayerRestored))
	c.subs.Add(c.hub.SaveApplied.Subscribe(c.onSaveApplied))
	return c
}

func (c *Controller) State() State {
	return c.state
}

func (c *Controller) IsPaused() bool {
	return c.state == Paused
}

// SetState moves to s and applies its time scale. Setting the current state
// does nothing.
func (c *Controller) SetState(s State) {
	if c.state == s {
		return
	}
	log.Debug("Session state %s -> %s", c.state, s)
	c.state = s
	switch s {
	case Playing:
		c.scheduler.SetTimeScale(1)
		c.hub.GameResumed.Publish(events.GameResumed{})
	case Paused:
		c.scheduler.SetTimeScale(0)
		c.hub.GamePaused.Publish(events.GamePaused{})
	case Menu:
		c.scheduler.SetTimeScale(1)
	}
}

func (c *Controller) PauseGame() {
	if c.state == Playing {
		c.SetState(Paused)
	}
}

func (c *Controller) ResumeGame() {
	if c.state == Paused {
		c.SetState(Playing)
	}
}

// StartNewGame wipes progress and loads the first level. Puzzle and hazard
// state is reset once that level has loaded.
func (c *Controller) StartNewGame() error {
	c.startingNewGame = true
	c.inventory.Clear()
	if err := c.persistence.DeleteSave(); err != nil {
		log.Warn("Starting new game without deleting the old save: %v", err)
	}
	c.persistence.ResetSession()

	c.cancelNewGame()
	c.newGameSub = c.hub.LevelLoaded.Subscribe(c.onNewGameLevelLoaded)
	if err := c.loader.LoadScene(c.firstLevel, nil); err != nil {
		c.cancelNewGame()
		c.startingNewGame = false
		return fmt.Errorf("failed to start new game: %w", err)
	}
	c.overlay.ShowLoading()
	return nil
}

func (c *Controller) cancelNewGame() {
	if c.newGameSub != nil {
		c.newGameSub.Cancel()
		c.newGameSub = nil
	}
}

func (c *Controller) onNewGameLevelLoaded(ev events.LevelLoaded) {
	if !c.startingNewGame {
		return
	}
	c.cancelNewGame()
	c.scheduler.AfterFrames(NewGameResetFrames, func() {
		c.registry.ResetAll()
		c.linkage.EnableAll()
		c.startingNewGame = false
		log.Info("New game started in %s", ev.Level)
		c.overlay.HideLoading()
		c.SetState(Playing)
	})
}

// ContinueGame loads the saved game. It reports false when there is nothing
// to load or a load is already running.
func (c *Controller) ContinueGame() bool {
	if !c.persistence.LoadGame() {
		return false
	}
	c.overlay.ShowLoading()
	return true
}

func (c *Controller) onPlayerRestored(ev events.PlayerRestored) {
	c.dying = false
	c.overlay.HideLoading()
	if !ev.Found {
		log.Warn("Save applied without a player in the level")
	}
	c.SetState(Playing)
}

// onSaveApplied falls back to the first level when a save could not be
// applied, whether it was a continue or a reload after death.
func (c *Controller) onSaveApplied(ev events.SaveApplied) {
	if !ev.Failed {
		return
	}
	log.Error("Save for %s could not be applied, loading %s", ev.Level, c.firstLevel)
	c.scheduler.SetTimeScale(1)
	c.scheduler.NextFrame(c.loadFirstLevel)
}

func (c *Controller) onPlayerDeath() {
	if c.dying {
		return
	}
	c.dying = true
	if p, ok := c.player(); ok {
		p.SetInputEnabled(false)
	}
	c.scheduler.SetTimeScale(0)
	c.overlay.ShowLoading()

	if !c.persistence.SaveExists() {
		log.Warn("No save found, loading %s after death", c.firstLevel)
		c.loadFirstLevelAfterDelay()
		return
	}
	c.scheduler.AfterRealtime(DeathDelay, func() {
		c.scheduler.SetTimeScale(1)
		c.scheduler.NextFrame(func() {
			if !c.persistence.LoadGame() {
				log.Error("Failed to load save after death, loading %s", c.firstLevel)
				c.loadFirstLevelAfterDelay()
			}
		})
	})
}

func (c *Controller) loadFirstLevelAfterDelay() {
	c.scheduler.AfterRealtime(DeathDelay, func() {
		c.scheduler.SetTimeScale(1)
		c.scheduler.NextFrame(c.loadFirstLevel)
	})
}

func (c *Controller) loadFirstLevel() {
	if err := c.loader.LoadScene(c.firstLevel, c.recovered); err != nil {
		log.Error("Failed to load %s: %v", c.firstLevel, err)
		c.recovered()
	}
}

// recovered hands control back to the player in whatever level is active.
func (c *Controller) recovered() {
	c.dying = false
	c.overlay.HideLoading()
	if p, ok := c.player(); ok {
		p.SetInputEnabled(true)
	}
	if c.scenes.Active() == nil {
		log.Error("No level is active after recovering")
		return
	}
	c.SetState(Playing)
}

func (c *Controller) player() (*player.Player, bool) {
	active := c.scenes.Active()
	if active == nil {
		return nil, false
	}
	return scene.FindFirst[*player.Player](active)
}

// Quit leaves the game.
func (c *Controller) Quit() {
	log.Info("Quitting")
	if c.quit != nil {
		c.quit()
	}
}

func (c *Controller) Close() {
	c.cancelNewGame()
	c.subs.CancelAll()
}
