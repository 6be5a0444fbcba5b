// Package game is the application root. It builds every service in
// dependency order and drives them one frame at a time.
package game

import (
	"context"
	"fmt"
	"sort"

	"github.com/cbodonnell/flipside/pkg/effects"
	"github.com/cbodonnell/flipside/pkg/events"
	"github.com/cbodonnell/flipside/pkg/hazards"
	"github.com/cbodonnell/flipside/pkg/inventory"
	"github.com/cbodonnell/flipside/pkg/levels"
	"github.com/cbodonnell/flipside/pkg/log"
	"github.com/cbodonnell/flipside/pkg/persistence"
	"github.com/cbodonnell/flipside/pkg/physics"
	"github.com/cbodonnell/flipside/pkg/player"
	"github.com/cbodonnell/flipside/pkg/puzzles"
	"github.com/cbodonnell/flipside/pkg/queue"
	"github.com/cbodonnell/flipside/pkg/repositories"
	"github.com/cbodonnell/flipside/pkg/scene"
	"github.com/cbodonnell/flipside/pkg/sched"
	"github.com/cbodonnell/flipside/pkg/session"
	"github.com/cbodonnell/flipside/pkg/state"
)

// DefaultLoadFrames is how many frames a level build is spread over.
const DefaultLoadFrames = 10

// App owns the game's services. Everything except the command queue and
// the state manager must only be touched from the goroutine calling Tick.
type App struct {
	ctx context.Context

	Hub         *events.Hub
	Scheduler   *sched.Scheduler
	Inventory   *inventory.Store
	Registry    *puzzles.Registry
	Linkage     *hazards.Linkage
	Scenes      *scene.Manager
	Source      *scene.BuilderSource
	Loader      *scene.Loader
	World       *physics.World
	Persistence *persistence.Engine
	Session     *session.Controller
	Levels      *levels.Manager
	Effects     effects.Spawner
	Audio       effects.Audio

	commands queue.Queue
	state    state.StateManager
	closed   bool
}

// NewAppOptions contains options for creating a new App.
type NewAppOptions struct {
	// Context bounds repository calls.
	Context    context.Context
	Repository repositories.Repository
	// Slot is the save name. Defaults to persistence.DefaultSlot.
	Slot string
	// Commands feeds commands from other goroutines. Optional.
	Commands queue.Queue
	// State receives a status summary every tick. Optional.
	State   state.StateManager
	Input   player.InputSource
	Overlay session.Overlay
	Effects effects.Spawner
	Audio   effects.Audio
	// Levels is the level order. Defaults to levels.DefaultOrder.
	Levels     []string
	LoadFrames int
	Restore    persistence.RestoreOptions
	Quit       func()
}

func NewApp(opts NewAppOptions) (*App, error) {
	if opts.Repository == nil {
		return nil, fmt.Errorf("repository is required")
	}
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	if opts.Effects == nil {
		opts.Effects = effects.DefaultPool()
	}
	if opts.Audio == nil {
		opts.Audio = effects.NewRecorder()
	}
	if opts.LoadFrames <= 0 {
		opts.LoadFrames = DefaultLoadFrames
	}

	a := &App{
		ctx:      opts.Context,
		commands: opts.Commands,
		state:    opts.State,
		Effects:  opts.Effects,
		Audio:    opts.Audio,
	}
	a.Hub = events.NewHub()
	a.Scheduler = sched.New()
	a.Inventory = inventory.NewStore(a.Hub)
	a.Registry = puzzles.NewRegistry(a.Hub)
	a.Linkage = hazards.NewLinkage(a.Hub)
	a.Scenes = scene.NewManager()
	a.Source = scene.NewBuilderSource(opts.LoadFrames)
	a.Loader = scene.NewLoader(scene.NewLoaderOptions{
		Hub:       a.Hub,
		Scheduler: a.Scheduler,
		Manager:   a.Scenes,
		Source:    a.Source,
	})
	a.World = physics.NewWorld(physics.NewWorldOptions{})
	a.Levels = levels.NewManager(levels.NewManagerOptions{
		Hub:    a.Hub,
		Loader: a.Loader,
		Scenes: a.Scenes,
		Levels: opts.Levels,
	})
	a.Persistence = persistence.NewEngine(persistence.NewEngineOptions{
		Context:    opts.Context,
		Hub:        a.Hub,
		Scheduler:  a.Scheduler,
		Repository: opts.Repository,
		Slot:       opts.Slot,
		Inventory:  a.Inventory,
		Registry:   a.Registry,
		Scenes:     a.Scenes,
		Loader:     a.Loader,
		Levels:     a.Levels,
		Restore:    opts.Restore,
	})
	a.Session = session.NewController(session.NewControllerOptions{
		Hub:         a.Hub,
		Scheduler:   a.Scheduler,
		Inventory:   a.Inventory,
		Registry:    a.Registry,
		Linkage:     a.Linkage,
		Scenes:      a.Scenes,
		Loader:      a.Loader,
		Persistence: a.Persistence,
		Overlay:     opts.Overlay,
		FirstLevel:  a.Levels.FirstLevel(),
		Quit:        opts.Quit,
	})

	levels.Register(a.Source, levels.Services{
		Hub:       a.Hub,
		Scheduler: a.Scheduler,
		World:     a.World,
		Inventory: a.Inventory,
		Registry:  a.Registry,
		Linkage:   a.Linkage,
		Effects:   a.Effects,
		Audio:     a.Audio,
		Saver:     a.Persistence,
		Levels:    a.Levels,
		Input:     opts.Input,
		Paused:    a.Session.IsPaused,
	})
	return a, nil
}

// Start continues from the save when asked to and one exists, otherwise it
// starts a new game.
func (a *App) Start(continueGame bool) error {
	if continueGame && a.Persistence.SaveExists() {
		if a.Session.ContinueGame() {
			return nil
		}
		log.Warn("Could not continue from save, starting a new game")
	}
	return a.Session.StartNewGame()
}

// Tick runs one frame of dt unscaled seconds.
func (a *App) Tick(dt float64) {
	a.processCommands()

	scaled := a.Scheduler.ScaledDelta(dt)
	a.World.Step(scaled)
	a.Scenes.Update(scaled)
	a.Scheduler.Tick(dt)

	a.publishStatus()
}

// processCommands runs every command queued since the last tick.
func (a *App) processCommands() {
	if a.commands == nil {
		return
	}
	pending, err := a.commands.ReadAllMessages()
	if err != nil {
		log.Error("Failed to read commands: %v", err)
		return
	}
	for _, item := range pending {
		cmd, ok := item.(*Command)
		if !ok {
			log.Warn("Ignoring unknown command type %T", item)
			continue
		}
		log.Debug("Running command %s", cmd.Kind)
		cmd.reply(a.execute(cmd.Kind))
	}
}

func (a *App) execute(kind CommandKind) error {
	switch kind {
	case CommandSave:
		if a.Persistence.IsRestoring() {
			return fmt.Errorf("%w: a save is being applied", ErrCommandRejected)
		}
		return a.Persistence.SaveGame()
	case CommandLoad:
		if !a.Session.ContinueGame() {
			return fmt.Errorf("%w: no save could be loaded", ErrCommandRejected)
		}
		return nil
	case CommandNewGame:
		return a.Session.StartNewGame()
	case CommandPause:
		a.Session.PauseGame()
		return nil
	case CommandResume:
		a.Session.ResumeGame()
		return nil
	case CommandQuit:
		a.Session.Quit()
		return nil
	}
	return fmt.Errorf("%w: unknown command %d", ErrCommandRejected, kind)
}

// Status summarizes the running game.
func (a *App) Status() *state.Status {
	s := &state.Status{
		Frame:         a.Scheduler.Frame(),
		State:         a.Session.State().String(),
		Level:         a.Scenes.ActiveName(),
		Loading:       a.Loader.IsLoading(),
		Restoring:     a.Persistence.IsRestoring(),
		PlayTime:      a.Persistence.PlayTime(),
		TimeScale:     a.Scheduler.TimeScale(),
		KeyCards:      a.Inventory.KeyCards(),
		EnergyCores:   a.Inventory.EnergyCores(),
		SolvedPuzzles: a.Registry.SolvedIDs(),
		TotalPuzzles:  a.Registry.Total(),
	}
	for id := range a.Inventory.AllNotes() {
		s.Notes = append(s.Notes, id)
	}
	sort.Strings(s.Notes)
	if active := a.Scenes.Active(); active != nil {
		if p, ok := scene.FindFirst[*player.Player](active); ok {
			if st := p.Stats(); st != nil {
				s.Health = st.Health()
				s.Energy = st.Energy()
			}
			if g := p.Gravity(); g != nil {
				s.GravityFlip = g.IsFlipped()
			}
		}
	}
	return s
}

func (a *App) publishStatus() {
	if a.state == nil {
		return
	}
	if err := a.state.Set(a.ctx, a.Status()); err != nil {
		log.Error("Failed to publish game status: %v", err)
	}
}

// Close tears down the active level and every service. The repository is
// left to its owner.
func (a *App) Close() error {
	if a.closed {
		return nil
	}
	a.closed = true
	a.Session.Close()
	a.Levels.Close()
	err := a.Scenes.Close()
	a.Registry.Close()
	a.Linkage.Close()
	a.Hub.ClearAll()
	if err != nil {
		return fmt.Errorf("failed to close scenes: %v", err)
	}
	return nil
}
