package player

import (
	"math"

	"github.com/cbodonnell/flipside/pkg/events"
)

const (
	DefaultMaxHealth = 100.0
	DefaultMaxEnergy = 100.0
)

// Stats holds health and energy, each clamped to [0, max].
type Stats struct {
	hub       *events.Hub
	maxHealth float64
	health    float64
	maxEnergy float64
	energy    float64
	dead      bool
}

func NewStats(hub *events.Hub) *Stats {
	return &Stats{
		hub:       hub,
		maxHealth: DefaultMaxHealth,
		health:    DefaultMaxHealth,
		maxEnergy: DefaultMaxEnergy,
		energy:    DefaultMaxEnergy,
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func (s *Stats) MaxHealth() float64 {
	return s.maxHealth
}

// SetMaxHealth changes the health cap. Values below 1 are raised to 1.
func (s *Stats) SetMaxHealth(v float64) {
	s.maxHealth = math.Max(1, v)
	s.health = clamp(s.health, 0, s.maxHealth)
}

func (s *Stats) Health() float64 {
	return s.health
}

// SetHealth sets health directly without raising damage or death events.
func (s *Stats) SetHealth(v float64) {
	s.health = clamp(v, 0, s.maxHealth)
	if s.health > 0 {
		s.dead = false
	}
}

func (s *Stats) MaxEnergy() float64 {
	return s.maxEnergy
}

// SetMaxEnergy changes the energy cap. Values below 1 are raised to 1.
func (s *Stats) SetMaxEnergy(v float64) {
	s.maxEnergy = math.Max(1, v)
	s.energy = clamp(s.energy, 0, s.maxEnergy)
}

func (s *Stats) Energy() float64 {
	return s.energy
}

func (s *Stats) SetEnergy(v float64) {
	s.energy = clamp(v, 0, s.maxEnergy)
}

func (s *Stats) HealthPercentage() float64 {
	return s.health / s.maxHealth
}

func (s *Stats) EnergyPercentage() float64 {
	return s.energy / s.maxEnergy
}

func (s *Stats) IsDead() bool {
	return s.dead
}

// TakeDamage reduces health and fires the death event the first time health
// reaches zero.
func (s *Stats) TakeDamage(amount float64) {
	if amount <= 0 || s.dead {
		return
	}
	s.health = clamp(s.health-amount, 0, s.maxHealth)
	s.hub.PlayerDamaged.Publish(events.PlayerDamaged{Amount: amount, Health: s.health})
	if s.health <= 0 {
		s.dead = true
		s.hub.PlayerDeath.Publish(events.PlayerDeath{})
	}
}

func (s *Stats) Heal(amount float64) {
	s.SetHealth(s.health + amount)
}

func (s *Stats) ConsumeEnergy(amount float64) {
	s.SetEnergy(s.energy - amount)
}

func (s *Stats) RestoreEnergy(amount float64) {
	s.SetEnergy(s.energy + amount)
}

// Reset restores the defaults.
func (s *Stats) Reset() {
	s.maxHealth = DefaultMaxHealth
	s.health = DefaultMaxHealth
	s.maxEnergy = DefaultMaxEnergy
	s.energy = DefaultMaxEnergy
	s.dead = false
}
