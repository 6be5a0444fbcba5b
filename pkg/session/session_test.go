package session

import (
	"errors"
	"testing"

	"github.com/cbodonnell/flipside/pkg/events"
	"github.com/cbodonnell/flipside/pkg/hazards"
	"github.com/cbodonnell/flipside/pkg/inventory"
	"github.com/cbodonnell/flipside/pkg/kinematic"
	"github.com/cbodonnell/flipside/pkg/physics"
	"github.com/cbodonnell/flipside/pkg/player"
	"github.com/cbodonnell/flipside/pkg/puzzles"
	"github.com/cbodonnell/flipside/pkg/scene"
	"github.com/cbodonnell/flipside/pkg/sched"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	dt    = 1.0 / 60
	first = "Level01_StationHub"
)

type fakePersistence struct {
	exists      bool
	loadOK      bool
	loads       int
	deletes     int
	resets      int
	deleteError error
}

func (p *fakePersistence) SaveExists() bool { return p.exists }
func (p *fakePersistence) LoadGame() bool {
	p.loads++
	return p.loadOK
}
func (p *fakePersistence) DeleteSave() error {
	p.deletes++
	return p.deleteError
}
func (p *fakePersistence) ResetSession() { p.resets++ }

type pendingLoad struct {
	name       string
	onComplete func()
}

type fakeLoader struct {
	err     error
	pending []pendingLoad
}

func (l *fakeLoader) LoadScene(name string, onComplete func()) error {
	if l.err != nil {
		return l.err
	}
	l.pending = append(l.pending, pendingLoad{name: name, onComplete: onComplete})
	return nil
}

type fakeOverlay struct {
	visible bool
	shown   int
}

func (o *fakeOverlay) ShowLoading() {
	o.visible = true
	o.shown++
}

func (o *fakeOverlay) HideLoading() { o.visible = false }

type fixture struct {
	hub         *events.Hub
	scheduler   *sched.Scheduler
	inventory   *inventory.Store
	registry    *puzzles.Registry
	linkage     *hazards.Linkage
	scenes      *scene.Manager
	loader      *fakeLoader
	persistence *fakePersistence
	overlay     *fakeOverlay
	controller  *Controller

	player *player.Player
	puzzle *puzzles.KeyPuzzle
	hazard *hazards.Discharge

	paused, resumed int
	quits           int
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	hub := events.NewHub()
	f := &fixture{
		hub:         hub,
		scheduler:   sched.New(),
		inventory:   inventory.NewStore(hub),
		registry:    puzzles.NewRegistry(hub),
		linkage:     hazards.NewLinkage(hub),
		scenes:      scene.NewManager(),
		loader:      &fakeLoader{},
		persistence: &fakePersistence{},
		overlay:     &fakeOverlay{},
	}
	t.Cleanup(f.registry.Close)
	t.Cleanup(f.linkage.Close)

	world := physics.NewWorld(physics.NewWorldOptions{})
	s := scene.New(first)
	f.player = player.NewPlayer(player.NewPlayerOptions{Stats: player.NewStats(hub)})
	pn := scene.NewNode("Player")
	pn.AddComponent(f.player)
	s.Add(pn)
	f.puzzle = puzzles.NewKeyPuzzle(puzzles.NewKeyPuzzleOptions{
		BaseOptions: puzzles.BaseOptions{ID: "puzzle_001", Hub: hub, Registry: f.registry},
	})
	qn := scene.NewNode("Puzzle")
	qn.AddComponent(f.puzzle)
	s.Add(qn)
	f.hazard = hazards.NewDischarge(hazards.NewDischargeOptions{
		Hub:     hub,
		Linkage: f.linkage,
		World:   world,
		Size:    kinematic.Vector{X: 2, Y: 2, Z: 2},
	})
	hn := scene.NewNode("Discharge1")
	hn.AddComponent(f.hazard)
	s.Add(hn)
	require.NoError(t, f.scenes.Activate(s))
	f.linkage.AddLink("puzzle_001", f.hazard)

	f.controller = NewController(NewControllerOptions{
		Hub:         hub,
		Scheduler:   f.scheduler,
		Inventory:   f.inventory,
		Registry:    f.registry,
		Linkage:     f.linkage,
		Scenes:      f.scenes,
		Loader:      f.loader,
		Persistence: f.persistence,
		Overlay:     f.overlay,
		FirstLevel:  first,
		Quit:        func() { f.quits++ },
	})
	t.Cleanup(f.controller.Close)

	hub.GamePaused.Subscribe(func(events.GamePaused) { f.paused++ })
	hub.GameResumed.Subscribe(func(events.GameResumed) { f.resumed++ })
	return f
}

func (f *fixture) run(frames int) {
	for i := 0; i < frames; i++ {
		f.scheduler.Tick(dt)
	}
}

// finishLoads completes every pending scene load the way the loader does.
func (f *fixture) finishLoads() {
	pending := f.loader.pending
	f.loader.pending = nil
	for _, l := range pending {
		f.hub.LevelLoaded.Publish(events.LevelLoaded{Level: l.name})
		if l.onComplete != nil {
			f.scheduler.NextFrame(l.onComplete)
		}
	}
}

func TestController_SetState(t *testing.T) {
	tt := []struct {
		name        string
		from        State
		to          State
		wantScale   float64
		wantPaused  int
		wantResumed int
	}{
		{name: "menu to playing", from: Menu, to: Playing, wantScale: 1, wantResumed: 1},
		{name: "playing to paused", from: Playing, to: Paused, wantScale: 0, wantPaused: 1},
		{name: "paused to menu", from: Paused, to: Menu, wantScale: 1},
		{name: "same state", from: Playing, to: Playing, wantScale: 1},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			f.controller.SetState(tc.from)
			f.paused, f.resumed = 0, 0

			f.controller.SetState(tc.to)
			assert.Equal(t, tc.to, f.controller.State())
			assert.Equal(t, tc.wantScale, f.scheduler.TimeScale())
			assert.Equal(t, tc.wantPaused, f.paused)
			assert.Equal(t, tc.wantResumed, f.resumed)
		})
	}
}

func TestController_PauseResume(t *testing.T) {
	f := newFixture(t)
	assert.Equal(t, Menu, f.controller.State())

	f.controller.PauseGame()
	assert.Equal(t, Menu, f.controller.State())
	f.controller.ResumeGame()
	assert.Equal(t, Menu, f.controller.State())

	f.controller.SetState(Playing)
	f.controller.PauseGame()
	assert.True(t, f.controller.IsPaused())
	assert.Equal(t, 0.0, f.scheduler.TimeScale())

	f.controller.ResumeGame()
	assert.Equal(t, Playing, f.controller.State())
	assert.Equal(t, 1.0, f.scheduler.TimeScale())
}

func TestController_StartNewGame(t *testing.T) {
	f := newFixture(t)
	f.inventory.AddKeyCard("key_A")
	f.puzzle.Solve()
	require.False(t, f.hazard.Active())

	require.NoError(t, f.controller.StartNewGame())
	assert.Empty(t, f.inventory.KeyCards())
	assert.Equal(t, 1, f.persistence.deletes)
	assert.Equal(t, 1, f.persistence.resets)
	require.Len(t, f.loader.pending, 1)
	assert.Equal(t, first, f.loader.pending[0].name)
	assert.True(t, f.overlay.visible)

	f.finishLoads()
	f.run(NewGameResetFrames - 1)
	assert.True(t, f.puzzle.IsSolved())

	f.run(1)
	assert.Equal(t, puzzles.StateInProgress, f.puzzle.State())
	assert.Equal(t, 0, f.registry.SolvedCount())
	assert.True(t, f.hazard.Active())
	assert.Equal(t, Playing, f.controller.State())
	assert.False(t, f.overlay.visible)

	// later level loads leave progress alone
	f.puzzle.Solve()
	f.hub.LevelLoaded.Publish(events.LevelLoaded{Level: "Level02_ReactorCore"})
	f.run(NewGameResetFrames + 1)
	assert.True(t, f.puzzle.IsSolved())
}

func TestController_StartNewGameFailures(t *testing.T) {
	t.Run("loader busy", func(t *testing.T) {
		f := newFixture(t)
		f.loader.err = scene.ErrLoadInProgress
		f.puzzle.Solve()

		err := f.controller.StartNewGame()
		assert.True(t, errors.Is(err, scene.ErrLoadInProgress))

		f.hub.LevelLoaded.Publish(events.LevelLoaded{Level: first})
		f.run(NewGameResetFrames + 1)
		assert.True(t, f.puzzle.IsSolved())
		assert.Equal(t, Menu, f.controller.State())
	})

	t.Run("delete fails", func(t *testing.T) {
		f := newFixture(t)
		f.persistence.deleteError = errors.New("permission denied")

		require.NoError(t, f.controller.StartNewGame())
		assert.Len(t, f.loader.pending, 1)
	})
}

func TestController_ContinueGame(t *testing.T) {
	f := newFixture(t)
	assert.False(t, f.controller.ContinueGame())
	assert.False(t, f.overlay.visible)

	f.persistence.loadOK = true
	assert.True(t, f.controller.ContinueGame())
	assert.True(t, f.overlay.visible)

	f.hub.PlayerRestored.Publish(events.PlayerRestored{Found: true, Stable: true})
	assert.Equal(t, Playing, f.controller.State())
	assert.False(t, f.overlay.visible)
}

func TestController_playerDeath(t *testing.T) {
	tt := []struct {
		name      string
		exists    bool
		loadOK    bool
		wantLoads int
		wantLevel bool
	}{
		{name: "reloads the save", exists: true, loadOK: true, wantLoads: 1},
		{name: "no save loads the first level", exists: false, wantLoads: 0, wantLevel: true},
		{name: "broken save loads the first level", exists: true, loadOK: false, wantLoads: 1, wantLevel: true},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			f.persistence.exists = tc.exists
			f.persistence.loadOK = tc.loadOK
			f.controller.SetState(Playing)

			f.hub.PlayerDeath.Publish(events.PlayerDeath{})
			assert.False(t, f.player.InputEnabled())
			assert.Equal(t, 0.0, f.scheduler.TimeScale())
			assert.True(t, f.overlay.visible)

			// a second death while reloading is ignored
			f.hub.PlayerDeath.Publish(events.PlayerDeath{})
			assert.Equal(t, 1, f.overlay.shown)

			f.run(3)
			assert.Equal(t, 0, f.persistence.loads)
			assert.Equal(t, 0.0, f.scheduler.TimeScale())

			f.run(30)
			assert.Equal(t, 1.0, f.scheduler.TimeScale())
			assert.Equal(t, tc.wantLoads, f.persistence.loads)

			if tc.wantLevel {
				require.Len(t, f.loader.pending, 1)
				assert.Equal(t, first, f.loader.pending[0].name)
				f.finishLoads()
				f.run(1)
			} else {
				assert.Empty(t, f.loader.pending)
				f.hub.PlayerRestored.Publish(events.PlayerRestored{Found: true, Stable: true})
			}
			assert.Equal(t, Playing, f.controller.State())
			assert.False(t, f.overlay.visible)

			// the next death is handled again
			f.hub.PlayerDeath.Publish(events.PlayerDeath{})
			assert.Equal(t, 2, f.overlay.shown)
		})
	}
}

func TestController_Quit(t *testing.T) {
	f := newFixture(t)
	f.controller.Quit()
	assert.Equal(t, 1, f.quits)
}

func TestController_failedSaveFallsBackToFirstLevel(t *testing.T) {
	tt := []struct {
		name  string
		start func(t *testing.T, f *fixture)
	}{
		{
			name: "continue",
			start: func(t *testing.T, f *fixture) {
				require.True(t, f.controller.ContinueGame())
			},
		},
		{
			name: "reload after death",
			start: func(t *testing.T, f *fixture) {
				f.controller.SetState(Playing)
				f.hub.PlayerDeath.Publish(events.PlayerDeath{})
				f.run(30)
				require.Equal(t, 1, f.persistence.loads)
			},
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			f.persistence.exists = true
			f.persistence.loadOK = true
			tc.start(t, f)
			require.True(t, f.overlay.visible)

			f.hub.SaveApplied.Publish(events.SaveApplied{Level: "Level99_Renamed", Failed: true})
			f.run(1)
			require.Len(t, f.loader.pending, 1)
			assert.Equal(t, first, f.loader.pending[0].name)

			f.finishLoads()
			f.run(1)
			assert.Equal(t, Playing, f.controller.State())
			assert.Equal(t, 1.0, f.scheduler.TimeScale())
			assert.False(t, f.overlay.visible)
			assert.True(t, f.player.InputEnabled())

			// deaths are handled again
			shown := f.overlay.shown
			f.hub.PlayerDeath.Publish(events.PlayerDeath{})
			assert.Equal(t, shown+1, f.overlay.shown)
		})
	}
}

func TestController_successfulSaveIsNotAFallback(t *testing.T) {
	f := newFixture(t)
	f.hub.SaveApplied.Publish(events.SaveApplied{Level: first})
	f.run(2)
	assert.Empty(t, f.loader.pending)
	assert.Equal(t, Menu, f.controller.State())
}

func TestController_fallbackWhenLoaderBusy(t *testing.T) {
	f := newFixture(t)
	f.controller.SetState(Playing)
	f.hub.PlayerDeath.Publish(events.PlayerDeath{})
	require.False(t, f.player.InputEnabled())

	f.loader.err = scene.ErrLoadInProgress
	f.hub.SaveApplied.Publish(events.SaveApplied{Level: first, Failed: true})
	f.run(1)
	assert.False(t, f.overlay.visible)
	assert.True(t, f.player.InputEnabled())
	assert.Equal(t, Playing, f.controller.State())
}
