// Package effects is the boundary to visual effects and sound. The
// implementations here only track what was requested; rendering and mixing
// happen elsewhere.
package effects

import (
	"sync"

	"github.com/cbodonnell/flipside/pkg/kinematic"
	"github.com/cbodonnell/flipside/pkg/log"
	"github.com/google/uuid"
)

const (
	EffectGravityFlip  = "GravityFlip"
	EffectItemCollect  = "ItemCollect"
	EffectPuzzleSolved = "PuzzleSolved"
	EffectDoorOpen     = "DoorOpen"
)

// Spawner places a pooled effect in the world.
type Spawner interface {
	Spawn(tag string, position kinematic.Vector) (uuid.UUID, bool)
}

// Audio plays a named sound at a position.
type Audio interface {
	PlaySFX(name string, position kinematic.Vector)
}

// Instance is one pooled effect object.
type Instance struct {
	ID       uuid.UUID
	Tag      string
	Position kinematic.Vector
	Active   bool
}

// Pool hands out effect instances round-robin from fixed-size per-tag pools.
type Pool struct {
	mu    sync.Mutex
	pools map[string][]*Instance
	next  map[string]int
}

// NewPool creates a pool holding sizes[tag] instances for every tag.
func NewPool(sizes map[string]int) *Pool {
	p := &Pool{
		pools: make(map[string][]*Instance),
		next:  make(map[string]int),
	}
	for tag, size := range sizes {
		if size < 1 {
			size = 1
		}
		instances := make([]*Instance, size)
		for i := range instances {
			instances[i] = &Instance{ID: uuid.New(), Tag: tag}
		}
		p.pools[tag] = instances
	}
	return p
}

// DefaultPool creates a pool for every effect the game spawns.
func DefaultPool() *Pool {
	return NewPool(map[string]int{
		EffectGravityFlip:  4,
		EffectItemCollect:  8,
		EffectPuzzleSolved: 4,
		EffectDoorOpen:     2,
	})
}

// Spawn activates the next instance of tag at position. Unknown tags are
// reported and ignored.
func (p *Pool) Spawn(tag string, position kinematic.Vector) (uuid.UUID, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	instances, ok := p.pools[tag]
	if !ok {
		log.Warn("Pool with tag %s doesn't exist", tag)
		return uuid.Nil, false
	}
	i := p.next[tag]
	p.next[tag] = (i + 1) % len(instances)
	inst := instances[i]
	inst.Position = position
	inst.Active = true
	log.Trace("Spawned effect %s (%s) at %s", tag, inst.ID, position)
	return inst.ID, true
}

// Active returns copies of the active instances of tag.
func (p *Pool) Active(tag string) []Instance {
	p.mu.Lock()
	defer p.mu.Unlock()
	var out []Instance
	for _, inst := range p.pools[tag] {
		if inst.Active {
			out = append(out, *inst)
		}
	}
	return out
}

// Sound is a played sound effect.
type Sound struct {
	Name     string
	Position kinematic.Vector
}

// Recorder is an Audio that logs and remembers what was played.
type Recorder struct {
	mu     sync.Mutex
	played []Sound
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) PlaySFX(name string, position kinematic.Vector) {
	r.mu.Lock()
	defer r.mu.Unlock()
	log.Trace("Playing sound %s at %s", name, position)
	r.played = append(r.played, Sound{Name: name, Position: position})
}

// Played returns the sounds played so far.
func (r *Recorder) Played() []Sound {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Sound, len(r.played))
	copy(out, r.played)
	return out
}
