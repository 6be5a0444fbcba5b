package puzzles

import (
	"testing"

	"github.com/cbodonnell/flipside/pkg/events"
	"github.com/cbodonnell/flipside/pkg/kinematic"
	"github.com/cbodonnell/flipside/pkg/scene"
	"github.com/cbodonnell/flipside/pkg/sched"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newKey(hub *events.Hub, r *Registry, id string, required int) *KeyPuzzle {
	return NewKeyPuzzle(NewKeyPuzzleOptions{
		BaseOptions:   BaseOptions{ID: id, Hub: hub, Registry: r},
		RequiredCores: required,
	})
}

func addToScene(t *testing.T, s *scene.Scene, name string, components ...interface{}) *scene.Node {
	t.Helper()
	n := s.Add(scene.NewNode(name))
	for _, c := range components {
		n.AddComponent(c)
	}
	return n
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "in-progress", StateInProgress.String())
	assert.Equal(t, "solved", StateSolved.String())
	assert.Equal(t, "failed", StateFailed.String())
	assert.Equal(t, "unknown", State(42).String())
}

func TestBase_SolveIsIdempotent(t *testing.T) {
	hub := events.NewHub()
	r := NewRegistry(hub)
	defer r.Close()
	p := newKey(hub, r, "puzzle_007", 1)
	s := scene.New("test")
	addToScene(t, s, "Puzzle", p)
	require.NoError(t, s.Init())

	solved := 0
	hub.PuzzleSolved.Subscribe(func(ev events.PuzzleSolved) {
		assert.Equal(t, "puzzle_007", ev.PuzzleID)
		solved++
	})

	p.Solve()
	p.Solve()

	assert.Equal(t, 1, solved)
	assert.Equal(t, StateSolved, p.State())
	assert.Equal(t, 1, r.SolvedCount())
}

func TestBase_StartAndReset(t *testing.T) {
	hub := events.NewHub()
	p := newKey(hub, nil, "puzzle_001", 1)
	started := 0
	hub.PuzzleStarted.Subscribe(func(events.PuzzleStarted) { started++ })

	p.Start()
	assert.Equal(t, 1, started)

	p.Solve()
	p.Start()
	assert.Equal(t, 1, started)
	assert.True(t, p.IsSolved())

	p.Reset()
	assert.Equal(t, StateInProgress, p.State())
}

func TestBase_RestoreStateIsSilent(t *testing.T) {
	hub := events.NewHub()
	r := NewRegistry(hub)
	defer r.Close()
	p := newKey(hub, r, "puzzle_007", 2)
	s := scene.New("test")
	addToScene(t, s, "Puzzle", p)
	require.NoError(t, s.Init())

	solved := 0
	hub.PuzzleSolved.Subscribe(func(events.PuzzleSolved) { solved++ })

	p.RestoreState(StateSolved)

	assert.Equal(t, 0, solved)
	assert.Equal(t, 0, r.SolvedCount())
	assert.Equal(t, 2, p.FilledSlots())
	assert.Equal(t, 1, r.RecalculateSolvedCount())

	p.RestoreState(StateFailed)
	assert.Equal(t, StateFailed, p.State())
	assert.Equal(t, 0, r.RecalculateSolvedCount())
}

func TestRegistry_firstRegistrationWins(t *testing.T) {
	hub := events.NewHub()
	r := NewRegistry(hub)
	defer r.Close()
	first := newKey(hub, r, "dup", 1)
	second := newKey(hub, r, "dup", 1)

	assert.True(t, r.Register(first))
	assert.True(t, r.Register(second))
	assert.False(t, r.Register(first))

	assert.Same(t, first, r.Lookup("dup"))
	assert.Equal(t, 2, r.Total())

	r.Unregister(first)
	assert.Same(t, second, r.Lookup("dup"))
	assert.Equal(t, 1, r.Total())

	assert.Nil(t, r.Lookup("missing"))
}

func TestRegistry_followsSceneLifecycle(t *testing.T) {
	hub := events.NewHub()
	r := NewRegistry(hub)
	defer r.Close()
	s := scene.New("test")
	addToScene(t, s, "A", newKey(hub, r, "a", 1))
	addToScene(t, s, "B", newKey(hub, r, "b", 1))

	assert.Equal(t, 0, r.Total())
	require.NoError(t, s.Init())
	assert.Equal(t, 2, r.Total())
	require.NoError(t, s.Destroy())
	assert.Equal(t, 0, r.Total())
}

func TestRegistry_ResetAllAndProgress(t *testing.T) {
	hub := events.NewHub()
	r := NewRegistry(hub)
	defer r.Close()
	a := newKey(hub, r, "a", 1)
	b := newKey(hub, r, "b", 1)
	r.Register(a)
	r.Register(b)
	assert.Equal(t, 0.0, r.Progress())

	a.Solve()
	assert.Equal(t, 0.5, r.Progress())
	assert.Equal(t, []string{"a"}, r.SolvedIDs())

	r.ResetAll()
	assert.Equal(t, 0, r.SolvedCount())
	assert.False(t, a.IsSolved())
	assert.Empty(t, r.SolvedIDs())
}

func TestRegistry_emptyProgress(t *testing.T) {
	r := NewRegistry(events.NewHub())
	defer r.Close()
	assert.Equal(t, 0.0, r.Progress())
	assert.NotNil(t, r.SolvedIDs())
}

func TestKeyPuzzle_placesCores(t *testing.T) {
	hub := events.NewHub()
	r := NewRegistry(hub)
	defer r.Close()
	p := newKey(hub, r, "reactor", 2)
	s := scene.New("test")
	addToScene(t, s, "Reactor", p)
	require.NoError(t, s.Init())

	var progress []float64
	hub.PuzzleProgressed.Subscribe(func(ev events.PuzzleProgressed) { progress = append(progress, ev.Progress) })

	hub.EnergyCoreCollected.Publish(events.EnergyCoreCollected{CoreID: "core_1"})
	hub.EnergyCoreCollected.Publish(events.EnergyCoreCollected{CoreID: "core_1"})
	assert.False(t, p.IsSolved())
	hub.EnergyCoreCollected.Publish(events.EnergyCoreCollected{CoreID: "core_2"})
	hub.EnergyCoreCollected.Publish(events.EnergyCoreCollected{CoreID: "core_3"})

	assert.True(t, p.IsSolved())
	assert.Equal(t, []float64{0.5, 1}, progress)
	assert.Equal(t, []string{"core_1", "core_2"}, p.Placed())
	assert.Equal(t, 1, r.SolvedCount())

	p.Reset()
	assert.Empty(t, p.Placed())
	assert.Equal(t, 0, p.FilledSlots())

	require.NoError(t, s.Destroy())
	hub.EnergyCoreCollected.Publish(events.EnergyCoreCollected{CoreID: "core_4"})
	assert.Empty(t, p.Placed())
}

func TestGravityPuzzle(t *testing.T) {
	hub := events.NewHub()
	r := NewRegistry(hub)
	defer r.Close()
	s := scene.New("test")
	crate := addToScene(t, s, "Crate")
	crate.Position = kinematic.Vector{X: 5, Y: 5}
	p := NewGravityPuzzle(NewGravityPuzzleOptions{
		BaseOptions: BaseOptions{ID: "crates", Hub: hub, Registry: r},
		Targets:     []*scene.Node{crate},
		Goals:       []kinematic.Vector{{X: 5, Y: 10}},
	})
	addToScene(t, s, "CratePuzzle", p)
	require.NoError(t, s.Init())

	s.Update(0.016)
	assert.False(t, p.IsSolved())
	assert.Equal(t, []bool{false}, p.Correct())

	crate.Position = kinematic.Vector{X: 5, Y: 9.7}
	s.Update(0.016)
	assert.True(t, p.IsSolved())

	p.Reset()
	assert.Equal(t, []bool{false}, p.Correct())
	p.RestoreState(StateSolved)
	assert.Equal(t, []bool{true}, p.Correct())
}

func TestTerminalHackPuzzle(t *testing.T) {
	hub := events.NewHub()
	r := NewRegistry(hub)
	defer r.Close()
	sc := sched.New()
	p := NewTerminalHackPuzzle(NewTerminalHackPuzzleOptions{
		BaseOptions: BaseOptions{ID: "terminal_001", Hub: hub, Registry: r},
		Scheduler:   sc,
	})

	activated := 0
	hub.TerminalActivated.Subscribe(func(events.TerminalActivated) { activated++ })

	p.Interact()
	assert.Equal(t, 1, activated)
	assert.True(t, p.IsOpen())

	p.HackCancelled()
	assert.False(t, p.IsOpen())

	p.Interact()
	p.HackSucceeded()
	assert.True(t, p.IsSolved())
	assert.True(t, p.IsOpen())

	sc.Tick(1.0)
	assert.True(t, p.IsOpen())
	sc.Tick(0.6)
	assert.False(t, p.IsOpen())

	p.Interact()
	assert.False(t, p.IsOpen())
}

func TestRegistry_countsDuplicateIDs(t *testing.T) {
	hub := events.NewHub()
	r := NewRegistry(hub)
	defer r.Close()
	first := newKey(hub, r, "dup", 1)
	second := newKey(hub, r, "dup", 1)
	r.Register(first)
	r.Register(second)

	second.Solve()
	assert.Equal(t, 1, r.SolvedCount())
	assert.Equal(t, r.RecalculateSolvedCount(), r.SolvedCount())

	first.Solve()
	assert.Equal(t, 2, r.SolvedCount())
}

func TestPuzzles_RestoreStateInProgressClearsProgress(t *testing.T) {
	tt := []struct {
		name  string
		build func(t *testing.T, hub *events.Hub, r *Registry, s *scene.Scene) (Puzzle, func())
		check func(t *testing.T, p Puzzle)
	}{
		{
			name: "key puzzle accepts the same core again",
			build: func(t *testing.T, hub *events.Hub, r *Registry, s *scene.Scene) (Puzzle, func()) {
				p := newKey(hub, r, "reactor", 1)
				addToScene(t, s, "Reactor", p)
				return p, func() {
					hub.EnergyCoreCollected.Publish(events.EnergyCoreCollected{CoreID: "core_1"})
				}
			},
			check: func(t *testing.T, p Puzzle) {
				k := p.(*KeyPuzzle)
				assert.Empty(t, k.Placed())
				assert.Equal(t, 0, k.FilledSlots())
			},
		},
		{
			name: "gravity puzzle forgets correct targets",
			build: func(t *testing.T, hub *events.Hub, r *Registry, s *scene.Scene) (Puzzle, func()) {
				crate := addToScene(t, s, "Crate")
				p := NewGravityPuzzle(NewGravityPuzzleOptions{
					BaseOptions: BaseOptions{ID: "crates", Hub: hub, Registry: r},
					Targets:     []*scene.Node{crate},
					Goals:       []kinematic.Vector{{X: 5}},
				})
				addToScene(t, s, "CratePuzzle", p)
				return p, func() {
					crate.Position = kinematic.Vector{X: 5}
					s.Update(0.016)
				}
			},
			check: func(t *testing.T, p Puzzle) {
				assert.Equal(t, []bool{false}, p.(*GravityPuzzle).Correct())
			},
		},
		{
			name: "terminal closes and can be hacked again",
			build: func(t *testing.T, hub *events.Hub, r *Registry, s *scene.Scene) (Puzzle, func()) {
				p := NewTerminalHackPuzzle(NewTerminalHackPuzzleOptions{
					BaseOptions: BaseOptions{ID: "terminal_001", Hub: hub, Registry: r},
					Scheduler:   sched.New(),
				})
				addToScene(t, s, "Terminal", p)
				return p, func() {
					p.Interact()
					p.HackSucceeded()
				}
			},
			check: func(t *testing.T, p Puzzle) {
				assert.False(t, p.(*TerminalHackPuzzle).IsOpen())
			},
		},
	}

	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			hub := events.NewHub()
			r := NewRegistry(hub)
			defer r.Close()
			s := scene.New("test")
			p, solve := tc.build(t, hub, r, s)
			require.NoError(t, s.Init())

			solve()
			require.True(t, p.IsSolved())

			p.RestoreState(StateInProgress)
			assert.Equal(t, StateInProgress, p.State())
			tc.check(t, p)

			solve()
			assert.True(t, p.IsSolved())
			assert.Equal(t, 1, r.RecalculateSolvedCount())
		})
	}
}
