package hazards

import (
	"sort"
	"sync"

	"github.com/cbodonnell/flipside/pkg/events"
	"github.com/cbodonnell/flipside/pkg/log"
)

// Linkage maps puzzle ids to the discharges their solution switches off.
type Linkage struct {
	mu      sync.Mutex
	hazards []*Discharge
	links   map[string][]*Discharge
	sub     events.Subscription
}

func NewLinkage(hub *events.Hub) *Linkage {
	l := &Linkage{
		links: make(map[string][]*Discharge),
	}
	l.sub = hub.PuzzleSolved.Subscribe(func(ev events.PuzzleSolved) {
		l.OnPuzzleSolved(ev.PuzzleID)
	})
	return l
}

// RegisterHazard tracks d for the bulk operations.
func (l *Linkage) RegisterHazard(d *Discharge) {
	if d == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if !contains(l.hazards, d) {
		l.hazards = append(l.hazards, d)
	}
}

// UnregisterHazard forgets d everywhere, links included.
func (l *Linkage) UnregisterHazard(d *Discharge) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.hazards = remove(l.hazards, d)
	for id, ds := range l.links {
		ds = remove(ds, d)
		if len(ds) == 0 {
			delete(l.links, id)
			continue
		}
		l.links[id] = ds
	}
}

// AddLink adds hazards to the puzzle's link without duplicating entries.
func (l *Linkage) AddLink(puzzleID string, hazards ...*Discharge) {
	if puzzleID == "" {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	linked := l.links[puzzleID]
	for _, d := range hazards {
		if d != nil && !contains(linked, d) {
			linked = append(linked, d)
		}
	}
	if len(linked) > 0 {
		l.links[puzzleID] = linked
	}
}

// Links returns the hazards linked to puzzleID.
func (l *Linkage) Links(puzzleID string) []*Discharge {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]*Discharge, len(l.links[puzzleID]))
	copy(out, l.links[puzzleID])
	return out
}

// LinkedPuzzles returns the puzzle ids that have links, sorted.
func (l *Linkage) LinkedPuzzles() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	ids := make([]string, 0, len(l.links))
	for id := range l.links {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Hazards returns every registered hazard.
func (l *Linkage) Hazards() []*Discharge {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]*Discharge, len(l.hazards))
	copy(out, l.hazards)
	return out
}

// OnPuzzleSolved disables the hazards linked to puzzleID.
func (l *Linkage) OnPuzzleSolved(puzzleID string) {
	linked := l.Links(puzzleID)
	for _, d := range linked {
		log.Debug("Disabling hazard %s for puzzle %s", d.Path(), puzzleID)
		d.SetActive(false)
	}
}

func (l *Linkage) DisableAll() {
	for _, d := range l.Hazards() {
		d.SetActive(false)
	}
}

func (l *Linkage) EnableAll() {
	for _, d := range l.Hazards() {
		d.SetActive(true)
	}
}

// Close stops reacting to solved puzzles.
func (l *Linkage) Close() {
	if l.sub != nil {
		l.sub.Cancel()
	}
}

func contains(ds []*Discharge, d *Discharge) bool {
	for _, o := range ds {
		if o == d {
			return true
		}
	}
	return false
}

func remove(ds []*Discharge, d *Discharge) []*Discharge {
	for i, o := range ds {
		if o == d {
			return append(ds[:i:i], ds[i+1:]...)
		}
	}
	return ds
}
