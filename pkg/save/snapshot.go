// Package save defines the save snapshot and its wire format.
package save

import (
	"math"
	"sort"
	"time"

	"github.com/cbodonnell/flipside/pkg/kinematic"
	"github.com/google/uuid"
)

const (
	// Version is written into every snapshot.
	Version = 1

	DefaultHealth = 100.0
	DefaultEnergy = 100.0
	DefaultLevel  = "Level01_StationHub"

	// DateLayout formats the informational save date.
	DateLayout = "2006-01-02 15:04:05"
)

// NoteData is a collected note as stored in a save.
type NoteData struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

// Player holds the player's transform and vitals.
type Player struct {
	Position       kinematic.Vector     `json:"position"`
	Rotation       kinematic.Quaternion `json:"rotation"`
	GravityFlipped bool                 `json:"gravityFlipped"`
	Health         float64              `json:"health"`
	MaxHealth      float64              `json:"maxHealth"`
	Energy         float64              `json:"energy"`
	MaxEnergy      float64              `json:"maxEnergy"`
}

// Snapshot is the persisted state of a game. A snapshot is not modified once
// it has been written.
type Snapshot struct {
	Version   int       `json:"version"`
	SessionID uuid.UUID `json:"sessionId"`

	Player Player `json:"player"`

	CollectedKeyCardIDs    []string            `json:"collectedKeyCardIds"`
	CollectedEnergyCoreIDs []string            `json:"collectedEnergyCoreIds"`
	CollectedNotes         map[string]NoteData `json:"collectedNotes"`
	SolvedPuzzleIDs        []string            `json:"solvedPuzzleIds"`
	// DisabledHazardPaths identifies hazards by their node path,
	// e.g. "Room/Discharge1".
	DisabledHazardPaths []string `json:"disabledHazardPaths"`

	CurrentLevelName          string  `json:"currentLevelName"`
	SaveTimestamp             string  `json:"saveTimestamp"`
	CumulativePlayTimeSeconds float64 `json:"cumulativePlayTimeSeconds"`
}

// New returns a snapshot holding the defaults of a fresh game.
func New(now time.Time) *Snapshot {
	s := defaults()
	s.SessionID = uuid.New()
	s.SaveTimestamp = now.Format(DateLayout)
	s.Normalize()
	return s
}

// defaults is decoded into so that fields missing from stored data keep
// their fresh-game values.
func defaults() *Snapshot {
	return &Snapshot{
		Version: Version,
		Player: Player{
			Rotation:  kinematic.Identity,
			Health:    DefaultHealth,
			MaxHealth: DefaultHealth,
			Energy:    DefaultEnergy,
			MaxEnergy: DefaultEnergy,
		},
		CurrentLevelName: DefaultLevel,
	}
}

// Normalize fills whatever an older or hand-edited save left out so the
// snapshot can be applied safely. Collections are sorted and deduplicated.
func (s *Snapshot) Normalize() {
	if s.Version == 0 {
		s.Version = Version
	}
	if s.Player.Rotation == (kinematic.Quaternion{}) {
		s.Player.Rotation = kinematic.Identity
	}
	if r := s.Player.Rotation; math.Abs(r.Dot(r)-1) > 1e-9 {
		s.Player.Rotation = r.Normalized()
	}
	if s.Player.MaxHealth <= 0 {
		s.Player.MaxHealth = DefaultHealth
	}
	if s.Player.MaxEnergy <= 0 {
		s.Player.MaxEnergy = DefaultEnergy
	}
	s.Player.Health = clamp(s.Player.Health, 0, s.Player.MaxHealth)
	s.Player.Energy = clamp(s.Player.Energy, 0, s.Player.MaxEnergy)
	if s.CurrentLevelName == "" {
		s.CurrentLevelName = DefaultLevel
	}
	if s.CumulativePlayTimeSeconds < 0 {
		s.CumulativePlayTimeSeconds = 0
	}
	s.CollectedKeyCardIDs = normalizeIDs(s.CollectedKeyCardIDs)
	s.CollectedEnergyCoreIDs = normalizeIDs(s.CollectedEnergyCoreIDs)
	s.SolvedPuzzleIDs = normalizeIDs(s.SolvedPuzzleIDs)
	s.DisabledHazardPaths = normalizeIDs(s.DisabledHazardPaths)
	if s.CollectedNotes == nil {
		s.CollectedNotes = map[string]NoteData{}
	}
	delete(s.CollectedNotes, "")
}

// Clone returns a deep copy of s.
func (s *Snapshot) Clone() *Snapshot {
	c := *s
	c.CollectedKeyCardIDs = append([]string{}, s.CollectedKeyCardIDs...)
	c.CollectedEnergyCoreIDs = append([]string{}, s.CollectedEnergyCoreIDs...)
	c.SolvedPuzzleIDs = append([]string{}, s.SolvedPuzzleIDs...)
	c.DisabledHazardPaths = append([]string{}, s.DisabledHazardPaths...)
	c.CollectedNotes = make(map[string]NoteData, len(s.CollectedNotes))
	for id, n := range s.CollectedNotes {
		c.CollectedNotes[id] = n
	}
	return &c
}

func (s *Snapshot) HasKeyCard(id string) bool {
	return contains(s.CollectedKeyCardIDs, id)
}

func (s *Snapshot) HasEnergyCore(id string) bool {
	return contains(s.CollectedEnergyCoreIDs, id)
}

func (s *Snapshot) HasNote(id string) bool {
	_, ok := s.CollectedNotes[id]
	return ok
}

func (s *Snapshot) IsPuzzleSolved(id string) bool {
	return contains(s.SolvedPuzzleIDs, id)
}

func (s *Snapshot) IsHazardDisabled(path string) bool {
	return contains(s.DisabledHazardPaths, path)
}

func contains(ids []string, id string) bool {
	i := sort.SearchStrings(ids, id)
	return i < len(ids) && ids[i] == id
}

func normalizeIDs(ids []string) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id != "" {
			out = append(out, id)
		}
	}
	sort.Strings(out)
	j := 0
	for i, id := range out {
		if i > 0 && id == out[j-1] {
			continue
		}
		out[j] = id
		j++
	}
	return out[:j]
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
