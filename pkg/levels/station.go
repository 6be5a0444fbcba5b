package levels

import (
	"github.com/cbodonnell/flipside/pkg/effects"
	"github.com/cbodonnell/flipside/pkg/events"
	"github.com/cbodonnell/flipside/pkg/hazards"
	"github.com/cbodonnell/flipside/pkg/inventory"
	"github.com/cbodonnell/flipside/pkg/items"
	"github.com/cbodonnell/flipside/pkg/kinematic"
	"github.com/cbodonnell/flipside/pkg/physics"
	"github.com/cbodonnell/flipside/pkg/player"
	"github.com/cbodonnell/flipside/pkg/puzzles"
	"github.com/cbodonnell/flipside/pkg/scene"
	"github.com/cbodonnell/flipside/pkg/sched"
)

// Services are the long-lived collaborators level contents are wired to.
type Services struct {
	Hub       *events.Hub
	Scheduler *sched.Scheduler
	World     *physics.World
	Inventory *inventory.Store
	Registry  *puzzles.Registry
	Linkage   *hazards.Linkage
	Effects   effects.Spawner
	Audio     effects.Audio
	Saver     items.Saver
	Levels    items.LevelLoader
	Input     player.InputSource
	Paused    func() bool
}

func (s Services) items() items.Services {
	return items.Services{
		Hub:       s.Hub,
		Inventory: s.Inventory,
		Effects:   s.Effects,
		Audio:     s.Audio,
		World:     s.World,
	}
}

var (
	playerSize  = kinematic.Vector{X: 1, Y: 2, Z: 1}
	hazardSize  = kinematic.Vector{X: 4, Y: 4, Z: 4}
	doorSize    = kinematic.Vector{X: 1, Y: 32, Z: 6}
	exitSize    = kinematic.Vector{X: 4, Y: 6, Z: 4}
	consoleSize = kinematic.Vector{X: 3, Y: 3, Z: 3}
	crateSize   = kinematic.Vector{X: 2, Y: 2, Z: 2}
)

// TagCrate marks the movable crates of the reactor level.
const TagCrate = "crate"

// Register adds a builder for every station level to src.
func Register(src *scene.BuilderSource, svc Services) {
	src.Register(StationHub, func(name string) (*scene.Scene, error) {
		return buildStationHub(name, svc), nil
	})
	src.Register(ReactorCore, func(name string) (*scene.Scene, error) {
		return buildReactorCore(name, svc), nil
	})
}

func place(parent *scene.Node, name string, pos kinematic.Vector, components ...interface{}) *scene.Node {
	n := scene.NewNode(name)
	n.Position = pos
	parent.AddChild(n)
	for _, c := range components {
		n.AddComponent(c)
	}
	return n
}

func solid(parent *scene.Node, name string, svc Services, pos, size kinematic.Vector) *scene.Node {
	return place(parent, name, pos, physics.NewCollider(svc.World, size))
}

// addPlayer spawns the player rig at pos.
func addPlayer(s *scene.Scene, svc Services, pos kinematic.Vector) *player.Player {
	body := physics.NewBody(physics.NewBodyOptions{
		World:      svc.World,
		Tag:        player.Tag,
		Size:       playerSize,
		UseGravity: true,
	})
	gravity := player.NewGravitySystem(player.NewGravitySystemOptions{Hub: svc.Hub, Body: body, Effects: svc.Effects})
	stats := player.NewStats(svc.Hub)
	p := player.NewPlayer(player.NewPlayerOptions{
		Body:    body,
		Stats:   stats,
		Gravity: gravity,
		Input:   svc.Input,
		Paused:  svc.Paused,
	})
	place(s.Root(), "Player", pos, body, gravity, stats, p)
	return p
}

func discharge(svc Services) *hazards.Discharge {
	return hazards.NewDischarge(hazards.NewDischargeOptions{
		Hub:     svc.Hub,
		Linkage: svc.Linkage,
		World:   svc.World,
		Size:    hazardSize,
		Tags:    []string{player.Tag},
	})
}

func shell(s *scene.Scene, svc Services, width float64) {
	geometry := place(s.Root(), "Geometry", kinematic.Zero)
	solid(geometry, "Floor", svc, kinematic.Vector{X: width / 2, Y: 5}, kinematic.Vector{X: width, Y: 2, Z: 20})
	solid(geometry, "Ceiling", svc, kinematic.Vector{X: width / 2, Y: 40}, kinematic.Vector{X: width, Y: 2, Z: 20})
	solid(geometry, "WestWall", svc, kinematic.Vector{X: 1, Y: 22}, kinematic.Vector{X: 2, Y: 36, Z: 20})
	solid(geometry, "EastWall", svc, kinematic.Vector{X: width - 1, Y: 22}, kinematic.Vector{X: 2, Y: 36, Z: 20})
}

// buildStationHub lays out the first level: three energy cores feed the
// reactor puzzle, a terminal hack and a key card door guard the exit.
func buildStationHub(name string, svc Services) *scene.Scene {
	s := scene.New(name)
	shell(s, svc, 200)
	addPlayer(s, svc, kinematic.Vector{X: 10, Y: 7})
	isvc := svc.items()

	puzzleRoot := place(s.Root(), "Puzzles", kinematic.Zero)
	place(puzzleRoot, "ReactorFeed", kinematic.Vector{X: 90, Y: 7}, puzzles.NewKeyPuzzle(puzzles.NewKeyPuzzleOptions{
		BaseOptions:   puzzles.BaseOptions{ID: "puzzle_001", Hub: svc.Hub, Registry: svc.Registry},
		RequiredCores: 3,
	}))
	hack := puzzles.NewTerminalHackPuzzle(puzzles.NewTerminalHackPuzzleOptions{
		BaseOptions: puzzles.BaseOptions{ID: "puzzle_002", Hub: svc.Hub, Registry: svc.Registry},
		Scheduler:   svc.Scheduler,
	})
	place(puzzleRoot, "Terminal", kinematic.Vector{X: 120, Y: 7}, hack, items.NewTerminal(svc.World, hack, consoleSize))

	pickups := place(s.Root(), "Pickups", kinematic.Zero)
	place(pickups, "KeyCardA", kinematic.Vector{X: 30, Y: 7}, items.NewKeyCard(isvc, "key_A"))
	cores := []struct {
		node, id string
		pos      kinematic.Vector
	}{
		{"EnergyCore1", "core_001", kinematic.Vector{X: 50, Y: 7}},
		{"EnergyCore2", "core_002", kinematic.Vector{X: 65, Y: 7}},
		{"EnergyCore3", "core_003", kinematic.Vector{X: 75, Y: 38}},
	}
	for _, c := range cores {
		place(pickups, c.node, c.pos, items.NewEnergyCore(items.NewEnergyCoreOptions{
			Services:  isvc,
			ID:        c.id,
			PuzzleID:  "puzzle_001",
			Scheduler: svc.Scheduler,
			Registry:  svc.Registry,
		}))
	}
	place(pickups, "Log1", kinematic.Vector{X: 20, Y: 7}, items.NewNarrativeNote(isvc, "note_001",
		"Shift log", "Reactor feed offline. Gravity plating unstable near the east wing."))

	room := place(s.Root(), "Room", kinematic.Zero)
	d1 := discharge(svc)
	d2 := discharge(svc)
	place(room, "Discharge1", kinematic.Vector{X: 100, Y: 7}, d1)
	place(room, "Discharge2", kinematic.Vector{X: 130, Y: 7}, d2)
	svc.Linkage.AddLink("puzzle_001", d1)
	svc.Linkage.AddLink("puzzle_002", d2)

	place(s.Root(), "Door", kinematic.Vector{X: 150, Y: 22}, items.NewDoor(items.NewDoorOptions{
		Services:        isvc,
		ID:              "door_001",
		RequiredKeyCard: "key_A",
		Registry:        svc.Registry,
		Size:            doorSize,
	}))
	place(s.Root(), "Exit", kinematic.Vector{X: 190, Y: 8}, items.NewLevelExit(items.NewLevelExitOptions{
		World:  svc.World,
		Saver:  svc.Saver,
		Levels: svc.Levels,
		Size:   exitSize,
	}))
	return s
}

// buildReactorCore lays out the second level: both crates fall with the
// player's gravity and must rest against the ceiling pads to shut down the
// core discharge.
func buildReactorCore(name string, svc Services) *scene.Scene {
	s := scene.New(name)
	shell(s, svc, 160)
	addPlayer(s, svc, kinematic.Vector{X: 10, Y: 7})
	isvc := svc.items()

	crates := place(s.Root(), "Crates", kinematic.Zero)
	var targets []*scene.Node
	for _, c := range []struct {
		name string
		x    float64
	}{{"Crate1", 40}, {"Crate2", 60}} {
		body := physics.NewBody(physics.NewBodyOptions{
			World:      svc.World,
			Tag:        TagCrate,
			Size:       crateSize,
			UseGravity: true,
		})
		targets = append(targets, place(crates, c.name, kinematic.Vector{X: c.x, Y: 7}, body, newGravityFollower(svc.Hub, body)))
	}
	puzzleRoot := place(s.Root(), "Puzzles", kinematic.Zero)
	place(puzzleRoot, "CratePads", kinematic.Vector{X: 50, Y: 38}, puzzles.NewGravityPuzzle(puzzles.NewGravityPuzzleOptions{
		BaseOptions: puzzles.BaseOptions{ID: "puzzle_101", Hub: svc.Hub, Registry: svc.Registry},
		Targets:     targets,
		Goals:       []kinematic.Vector{{X: 40, Y: 38}, {X: 60, Y: 38}},
	}))

	pickups := place(s.Root(), "Pickups", kinematic.Zero)
	place(pickups, "EnergyCore4", kinematic.Vector{X: 80, Y: 37}, items.NewEnergyCore(items.NewEnergyCoreOptions{
		Services: isvc,
		ID:       "core_004",
	}))
	place(pickups, "Log2", kinematic.Vector{X: 25, Y: 7}, items.NewNarrativeNote(isvc, "note_002",
		"Core diagnostics", "Containment holds only while both pads are loaded."))

	room := place(s.Root(), "Room", kinematic.Zero)
	d1 := discharge(svc)
	place(room, "Discharge1", kinematic.Vector{X: 100, Y: 7}, d1)
	svc.Linkage.AddLink("puzzle_101", d1)

	place(s.Root(), "Door", kinematic.Vector{X: 120, Y: 22}, items.NewDoor(items.NewDoorOptions{
		Services:       isvc,
		ID:             "door_101",
		RequiredPuzzle: "puzzle_101",
		RequiredCores:  4,
		Registry:       svc.Registry,
		Size:           doorSize,
	}))
	place(s.Root(), "Exit", kinematic.Vector{X: 150, Y: 8}, items.NewLevelExit(items.NewLevelExitOptions{
		World:  svc.World,
		Saver:  svc.Saver,
		Levels: svc.Levels,
		Size:   exitSize,
	}))
	return s
}
