package items

import (
	"github.com/cbodonnell/flipside/pkg/kinematic"
	"github.com/cbodonnell/flipside/pkg/log"
	"github.com/cbodonnell/flipside/pkg/physics"
	"github.com/cbodonnell/flipside/pkg/player"
	"github.com/cbodonnell/flipside/pkg/scene"
)

// Saver persists the current game.
type Saver interface {
	SaveGame() error
}

// LevelLoader moves the game to another level.
type LevelLoader interface {
	LoadNextLevel() error
	LoadLevel(name string) error
}

// LevelExit saves the game and moves on when the player reaches it.
type LevelExit struct {
	saver  Saver
	levels LevelLoader
	// target is the level to load, or "" for the next one.
	target string
	zone   *physics.Trigger
	used   bool
}

// NewLevelExitOptions contains options for creating a new LevelExit.
type NewLevelExitOptions struct {
	World  *physics.World
	Saver  Saver
	Levels LevelLoader
	Target string
	Size   kinematic.Vector
}

func NewLevelExit(opts NewLevelExitOptions) *LevelExit {
	e := &LevelExit{
		saver:  opts.Saver,
		levels: opts.Levels,
		target: opts.Target,
	}
	e.zone = physics.NewTrigger(physics.NewTriggerOptions{
		World:   opts.World,
		Size:    opts.Size,
		Tags:    []string{player.Tag},
		OnEnter: func(*physics.Body) { e.Trigger() },
	})
	return e
}

func (e *LevelExit) Attach(n *scene.Node) {
	n.AddComponent(e.zone)
}

// Trigger saves and starts the transition. It fires once per scene instance.
func (e *LevelExit) Trigger() {
	if e.used {
		return
	}
	e.used = true
	if e.saver != nil {
		if err := e.saver.SaveGame(); err != nil {
			log.Error("Failed to save before leaving level: %v", err)
		}
	}
	var err error
	if e.target == "" {
		err = e.levels.LoadNextLevel()
	} else {
		err = e.levels.LoadLevel(e.target)
	}
	if err != nil {
		log.Error("Failed to leave level: %v", err)
		e.used = false
	}
}
