package items

import (
	"errors"
	"testing"

	"github.com/cbodonnell/flipside/pkg/effects"
	"github.com/cbodonnell/flipside/pkg/events"
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

type fixture struct {
	svc      Services
	pool     *effects.Pool
	audio    *effects.Recorder
	sched    *sched.Scheduler
	registry *puzzles.Registry
	scene    *scene.Scene
	body     *physics.Body
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	hub := events.NewHub()
	f := &fixture{
		pool:     effects.DefaultPool(),
		audio:    effects.NewRecorder(),
		sched:    sched.New(),
		registry: puzzles.NewRegistry(hub),
		scene:    scene.New("Level01_StationHub"),
	}
	t.Cleanup(f.registry.Close)
	f.svc = Services{
		Hub:       hub,
		Inventory: inventory.NewStore(hub),
		Effects:   f.pool,
		Audio:     f.audio,
		World:     physics.NewWorld(physics.NewWorldOptions{}),
	}
	n := f.scene.Add(scene.NewNode("Player"))
	n.Position = kinematic.Vector{X: 100, Y: 100}
	f.body = physics.NewBody(physics.NewBodyOptions{World: f.svc.World, Tag: player.Tag, Size: kinematic.Vector{X: 1, Y: 2, Z: 1}})
	n.AddComponent(f.body)
	return f
}

func (f *fixture) place(name string, pos kinematic.Vector, c interface{}) *scene.Node {
	n := f.scene.Add(scene.NewNode(name))
	n.Position = pos
	n.AddComponent(c)
	return n
}

func (f *fixture) moveTo(pos kinematic.Vector) {
	f.body.SetPose(pos, kinematic.Identity)
	f.tick()
}

func (f *fixture) tick() {
	f.svc.World.Step(1.0 / 60)
	f.scene.Update(1.0 / 60)
	f.sched.Tick(1.0 / 60)
}

func TestKeyCard_Collect(t *testing.T) {
	f := newFixture(t)
	k := NewKeyCard(f.svc, "key_A")
	n := f.place("KeyA", kinematic.Vector{X: 10, Y: 10}, k)
	require.NoError(t, f.scene.Init())

	var collected []events.KeyCardCollected
	f.svc.Hub.KeyCardCollected.Subscribe(func(ev events.KeyCardCollected) { collected = append(collected, ev) })
	items := 0
	f.svc.Hub.ItemCollected.Subscribe(func(events.ItemCollected) { items++ })

	f.moveTo(kinematic.Vector{X: 10, Y: 10})

	assert.True(t, k.IsCollected())
	assert.True(t, f.svc.Inventory.HasKeyCard("key_A"))
	assert.False(t, n.ActiveSelf())
	assert.Equal(t, []events.KeyCardCollected{{KeyCardID: "key_A"}}, collected)
	assert.Equal(t, 1, items)
	assert.Len(t, f.pool.Active(effects.EffectItemCollect), 1)
	assert.Equal(t, SoundItemCollect, f.audio.Played()[0].Name)

	k.Collect()
	assert.Equal(t, 1, items)
}

func TestPickups_hiddenWhenAlreadyOwned(t *testing.T) {
	f := newFixture(t)
	f.svc.Inventory.AddKeyCard("key_A")
	f.svc.Inventory.AddNote("log_1", "Day 1", "text")
	k := NewKeyCard(f.svc, "key_A")
	note := NewNarrativeNote(f.svc, "log_1", "Day 1", "text")
	other := NewNarrativeNote(f.svc, "log_2", "Day 2", "text")
	f.place("KeyA", kinematic.Vector{X: 10, Y: 10}, k)
	f.place("Log1", kinematic.Vector{X: 20, Y: 10}, note)
	f.place("Log2", kinematic.Vector{X: 30, Y: 10}, other)
	require.NoError(t, f.scene.Init())

	assert.True(t, k.IsCollected())
	assert.False(t, k.Node().ActiveSelf())
	assert.True(t, note.IsCollected())
	assert.False(t, other.IsCollected())
	assert.True(t, other.Node().ActiveSelf())
}

func TestPickup_SetCollected(t *testing.T) {
	f := newFixture(t)
	note := NewNarrativeNote(f.svc, "log_1", "Day 1", "text")
	f.place("Log1", kinematic.Vector{X: 10, Y: 10}, note)
	require.NoError(t, f.scene.Init())

	note.SetCollected(true)
	assert.False(t, note.Node().ActiveSelf())
	assert.False(t, f.svc.Inventory.HasNote("log_1"))

	note.SetCollected(false)
	assert.True(t, note.Node().ActiveSelf())
	assert.False(t, note.IsCollected())

	f.moveTo(kinematic.Vector{X: 10, Y: 10})
	assert.Equal(t, inventory.Note{ID: "log_1", Title: "Day 1", Text: "text"}, f.svc.Inventory.AllNotes()["log_1"])
}

func TestEnergyCore_hiddenWhenPuzzleSolved(t *testing.T) {
	f := newFixture(t)
	p := puzzles.NewKeyPuzzle(puzzles.NewKeyPuzzleOptions{
		BaseOptions:   puzzles.BaseOptions{ID: "reactor", Hub: f.svc.Hub, Registry: f.registry},
		RequiredCores: 1,
	})
	f.place("Reactor", kinematic.Vector{X: 50, Y: 10}, p)
	core := NewEnergyCore(NewEnergyCoreOptions{
		Services:  f.svc,
		ID:        "core_1",
		PuzzleID:  "reactor",
		Scheduler: f.sched,
		Registry:  f.registry,
	})
	f.place("Core1", kinematic.Vector{X: 10, Y: 10}, core)
	require.NoError(t, f.scene.Init())
	p.RestoreState(puzzles.StateSolved)

	f.tick()
	f.tick()
	assert.False(t, core.IsCollected())
	f.tick()
	assert.True(t, core.IsCollected())
	assert.False(t, f.svc.Inventory.HasEnergyCore("core_1"))
}

func TestEnergyCore_collectFeedsKeyPuzzle(t *testing.T) {
	f := newFixture(t)
	p := puzzles.NewKeyPuzzle(puzzles.NewKeyPuzzleOptions{
		BaseOptions:   puzzles.BaseOptions{ID: "reactor", Hub: f.svc.Hub, Registry: f.registry},
		RequiredCores: 1,
	})
	f.place("Reactor", kinematic.Vector{X: 50, Y: 10}, p)
	core := NewEnergyCore(NewEnergyCoreOptions{Services: f.svc, ID: "core_1"})
	f.place("Core1", kinematic.Vector{X: 10, Y: 10}, core)
	require.NoError(t, f.scene.Init())

	f.moveTo(kinematic.Vector{X: 10, Y: 10})

	assert.True(t, f.svc.Inventory.HasEnergyCore("core_1"))
	assert.True(t, p.IsSolved())
	assert.Equal(t, "", core.PuzzleID())
}

func TestDoor(t *testing.T) {
	f := newFixture(t)
	d := NewDoor(NewDoorOptions{
		Services:        f.svc,
		ID:              "door_001",
		RequiredKeyCard: "key_A",
		RequiredCores:   1,
		Size:            kinematic.Vector{X: 1, Y: 4, Z: 2},
	})
	n := f.place("Door", kinematic.Vector{X: 40, Y: 10}, d)
	require.NoError(t, f.scene.Init())

	d.TryOpen()
	assert.False(t, d.IsOpen())
	assert.Equal(t, SoundDoorLocked, f.audio.Played()[0].Name)

	f.svc.Inventory.AddKeyCard("key_A")
	d.TryOpen()
	assert.False(t, d.IsOpen())

	f.svc.Inventory.AddEnergyCore("core_1")
	f.moveTo(kinematic.Vector{X: 38.8, Y: 10})
	assert.True(t, d.IsOpen())

	for i := 0; i < 300; i++ {
		f.tick()
	}
	assert.InDelta(t, 13.0, n.Position.Y, 0.01)
}

func TestDoor_requiresPuzzle(t *testing.T) {
	f := newFixture(t)
	p := puzzles.NewKeyPuzzle(puzzles.NewKeyPuzzleOptions{
		BaseOptions: puzzles.BaseOptions{ID: "reactor", Hub: f.svc.Hub, Registry: f.registry},
	})
	f.place("Reactor", kinematic.Vector{X: 50, Y: 10}, p)
	d := NewDoor(NewDoorOptions{
		Services:       f.svc,
		ID:             "door_002",
		RequiredPuzzle: "reactor",
		Registry:       f.registry,
		Size:           kinematic.Vector{X: 1, Y: 4, Z: 2},
	})
	f.place("Door", kinematic.Vector{X: 40, Y: 10}, d)
	require.NoError(t, f.scene.Init())

	assert.False(t, d.Unlocked())
	p.Solve()
	assert.True(t, d.Unlocked())
}

type fakeSaver struct {
	calls int
	err   error
}

func (s *fakeSaver) SaveGame() error {
	s.calls++
	return s.err
}

type fakeLevels struct {
	loaded []string
	err    error
}

func (l *fakeLevels) LoadNextLevel() error {
	l.loaded = append(l.loaded, "next")
	return l.err
}

func (l *fakeLevels) LoadLevel(name string) error {
	l.loaded = append(l.loaded, name)
	return l.err
}

func TestLevelExit(t *testing.T) {
	tt := []struct {
		name   string
		target string
		want   []string
	}{
		{name: "next level", target: "", want: []string{"next"}},
		{name: "named level", target: "Level02_ReactorCore", want: []string{"Level02_ReactorCore"}},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			saver := &fakeSaver{err: errors.New("disk full")}
			levels := &fakeLevels{}
			exit := NewLevelExit(NewLevelExitOptions{
				World:  f.svc.World,
				Saver:  saver,
				Levels: levels,
				Target: tc.target,
				Size:   kinematic.Vector{X: 2, Y: 2, Z: 2},
			})
			f.place("Exit", kinematic.Vector{X: 60, Y: 10}, exit)
			require.NoError(t, f.scene.Init())

			f.moveTo(kinematic.Vector{X: 60, Y: 10})
			exit.Trigger()

			assert.Equal(t, 1, saver.calls)
			assert.Equal(t, tc.want, levels.loaded)
		})
	}
}

func TestTerminal_Interact(t *testing.T) {
	f := newFixture(t)
	p := puzzles.NewTerminalHackPuzzle(puzzles.NewTerminalHackPuzzleOptions{
		BaseOptions: puzzles.BaseOptions{ID: "terminal_001", Hub: f.svc.Hub, Registry: f.registry},
		Scheduler:   f.sched,
	})
	f.place("Terminal", kinematic.Vector{X: 70, Y: 10}, p)
	p.Node().AddComponent(NewTerminal(f.svc.World, p, kinematic.Vector{X: 2, Y: 2, Z: 2}))
	require.NoError(t, f.scene.Init())

	f.moveTo(kinematic.Vector{X: 70, Y: 10})
	assert.True(t, p.IsOpen())
}
