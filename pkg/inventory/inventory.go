// Package inventory holds everything the player has collected. The store
// outlives individual levels and is only emptied by Clear.
package inventory

import (
	"sort"
	"sync"

	"github.com/cbodonnell/flipside/pkg/events"
	"github.com/cbodonnell/flipside/pkg/log"
)

// Note is a collected narrative note.
type Note struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Text  string `json:"text"`
}

// Store is the player's inventory: key cards, energy cores and notes.
// Empty ids are ignored by every operation.
type Store struct {
	hub *events.Hub

	mu          sync.RWMutex
	keyCards    map[string]struct{}
	energyCores map[string]struct{}
	notes       map[string]Note
}

func NewStore(hub *events.Hub) *Store {
	return &Store{
		hub:         hub,
		keyCards:    make(map[string]struct{}),
		energyCores: make(map[string]struct{}),
		notes:       make(map[string]Note),
	}
}

func (s *Store) publish(kind events.InventoryKind, id string) {
	if s.hub != nil {
		s.hub.InventoryChanged.Publish(events.InventoryChanged{Kind: kind, ID: id})
	}
}

// AddKeyCard adds id and reports whether it was new.
func (s *Store) AddKeyCard(id string) bool {
	if id == "" {
		return false
	}
	s.mu.Lock()
	_, exists := s.keyCards[id]
	s.keyCards[id] = struct{}{}
	s.mu.Unlock()
	if exists {
		return false
	}
	log.Debug("Key card %s added to inventory", id)
	s.publish(events.InventoryKeyCard, id)
	return true
}

func (s *Store) HasKeyCard(id string) bool {
	if id == "" {
		return false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.keyCards[id]
	return ok
}

func (s *Store) RemoveKeyCard(id string) {
	if id == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.keyCards, id)
}

// KeyCards returns the collected key card ids, sorted.
func (s *Store) KeyCards() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedKeys(s.keyCards)
}

// AddEnergyCore adds id and reports whether it was new.
func (s *Store) AddEnergyCore(id string) bool {
	if id == "" {
		return false
	}
	s.mu.Lock()
	_, exists := s.energyCores[id]
	s.energyCores[id] = struct{}{}
	s.mu.Unlock()
	if exists {
		return false
	}
	log.Debug("Energy core %s added to inventory", id)
	s.publish(events.InventoryEnergyCore, id)
	return true
}

func (s *Store) HasEnergyCore(id string) bool {
	if id == "" {
		return false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.energyCores[id]
	return ok
}

func (s *Store) RemoveEnergyCore(id string) {
	if id == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.energyCores, id)
}

func (s *Store) EnergyCoreCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.energyCores)
}

// EnergyCores returns the collected energy core ids, sorted.
func (s *Store) EnergyCores() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedKeys(s.energyCores)
}

// AddNote stores the note, replacing any note with the same id. It reports
// whether the id was new.
func (s *Store) AddNote(id, title, text string) bool {
	if id == "" {
		return false
	}
	s.mu.Lock()
	_, exists := s.notes[id]
	s.notes[id] = Note{ID: id, Title: title, Text: text}
	s.mu.Unlock()
	if exists {
		return false
	}
	log.Debug("Note %s added to inventory", id)
	s.publish(events.InventoryNote, id)
	return true
}

func (s *Store) HasNote(id string) bool {
	if id == "" {
		return false
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.notes[id]
	return ok
}

// AllNotes returns a copy of the collected notes keyed by id.
func (s *Store) AllNotes() map[string]Note {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]Note, len(s.notes))
	for id, n := range s.notes {
		out[id] = n
	}
	return out
}

// Clear empties all three collections.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.keyCards = make(map[string]struct{})
	s.energyCores = make(map[string]struct{})
	s.notes = make(map[string]Note)
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
