// Package state shares a read-only view of the running game with other
// goroutines.
package state

import (
	"context"
)

// Status is a point-in-time summary of the game published by the game loop.
type Status struct {
	Frame         uint64   `json:"frame"`
	State         string   `json:"state"`
	Level         string   `json:"level"`
	Loading       bool     `json:"loading"`
	Restoring     bool     `json:"restoring"`
	PlayTime      float64  `json:"playTime"`
	TimeScale     float64  `json:"timeScale"`
	KeyCards      []string `json:"keyCards"`
	EnergyCores   []string `json:"energyCores"`
	Notes         []string `json:"notes"`
	SolvedPuzzles []string `json:"solvedPuzzles"`
	TotalPuzzles  int      `json:"totalPuzzles"`
	Health        float64  `json:"health"`
	Energy        float64  `json:"energy"`
	GravityFlip   bool     `json:"gravityFlipped"`
}

// Clone returns a deep copy of s.
func (s *Status) Clone() *Status {
	c := *s
	c.KeyCards = append([]string(nil), s.KeyCards...)
	c.EnergyCores = append([]string(nil), s.EnergyCores...)
	c.Notes = append([]string(nil), s.Notes...)
	c.SolvedPuzzles = append([]string(nil), s.SolvedPuzzles...)
	return &c
}

// StateManager provides shared access to the game status.
// Implementations must be thread-safe.
type StateManager interface {
	// Get returns a copy of the current status.
	Get(ctx context.Context) (*Status, error)
	// Set replaces the current status.
	Set(ctx context.Context, status *Status) error
}
