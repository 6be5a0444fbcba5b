package puzzles

import (
	"sort"
	"sync"

	"github.com/cbodonnell/flipside/pkg/events"
	"github.com/cbodonnell/flipside/pkg/log"
)

// Registry tracks the puzzles of the active scene. Lookups resolve to the
// first puzzle registered under an id.
type Registry struct {
	mu      sync.RWMutex
	puzzles []Puzzle
	byID    map[string]Puzzle
	solved  int
	sub     events.Subscription
}

func NewRegistry(hub *events.Hub) *Registry {
	r := &Registry{
		byID: make(map[string]Puzzle),
	}
	r.sub = hub.PuzzleSolved.Subscribe(r.onPuzzleSolved)
	return r
}

// onPuzzleSolved recounts, since the solved puzzle may not be the one its id
// resolves to.
func (r *Registry) onPuzzleSolved(ev events.PuzzleSolved) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.recalculate()
}

// Register adds p. It reports false when p is already registered.
func (r *Registry) Register(p Puzzle) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.puzzles {
		if existing == p {
			return false
		}
	}
	r.puzzles = append(r.puzzles, p)
	if _, ok := r.byID[p.ID()]; ok {
		log.Warn("Puzzle id %s is already registered, lookups keep the first one", p.ID())
		return true
	}
	r.byID[p.ID()] = p
	return true
}

// Unregister removes p. If p owned its id, the next puzzle registered under
// the same id takes over.
func (r *Registry) Unregister(p Puzzle) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, existing := range r.puzzles {
		if existing == p {
			r.puzzles = append(r.puzzles[:i:i], r.puzzles[i+1:]...)
			break
		}
	}
	if r.byID[p.ID()] == p {
		delete(r.byID, p.ID())
		for _, other := range r.puzzles {
			if other.ID() == p.ID() {
				r.byID[p.ID()] = other
				break
			}
		}
	}
	r.recalculate()
}

// Lookup returns the puzzle registered under id, or nil.
func (r *Registry) Lookup(id string) Puzzle {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.byID[id]
}

// Puzzles returns every registered puzzle in registration order.
func (r *Registry) Puzzles() []Puzzle {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Puzzle, len(r.puzzles))
	copy(out, r.puzzles)
	return out
}

// ResetAll resets every registered puzzle.
func (r *Registry) ResetAll() {
	for _, p := range r.Puzzles() {
		p.Reset()
	}
	r.mu.Lock()
	r.solved = 0
	r.mu.Unlock()
}

// RecalculateSolvedCount rescans every puzzle. Call it after changing states
// without going through Solve.
func (r *Registry) RecalculateSolvedCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.recalculate()
}

func (r *Registry) recalculate() int {
	r.solved = 0
	for _, p := range r.puzzles {
		if p.IsSolved() {
			r.solved++
		}
	}
	return r.solved
}

func (r *Registry) SolvedCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.solved
}

func (r *Registry) Total() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.puzzles)
}

// Progress returns the solved fraction, or 0 with no puzzles.
func (r *Registry) Progress() float64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if len(r.puzzles) == 0 {
		return 0
	}
	return float64(r.solved) / float64(len(r.puzzles))
}

// SolvedIDs returns the distinct ids of solved puzzles, sorted.
func (r *Registry) SolvedIDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	seen := make(map[string]struct{})
	ids := []string{}
	for _, p := range r.puzzles {
		if !p.IsSolved() {
			continue
		}
		if _, ok := seen[p.ID()]; ok {
			continue
		}
		seen[p.ID()] = struct{}{}
		ids = append(ids, p.ID())
	}
	sort.Strings(ids)
	return ids
}

// Close stops listening for solve events.
func (r *Registry) Close() {
	if r.sub != nil {
		r.sub.Cancel()
	}
}
