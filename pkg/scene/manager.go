package scene

import (
	"fmt"

	"github.com/cbodonnell/flipside/pkg/log"
)

// Manager owns the single active scene.
type Manager struct {
	active *Scene
}

func NewManager() *Manager {
	return &Manager{}
}

func (m *Manager) Active() *Scene {
	return m.active
}

// ActiveName returns the name of the active scene, or "" when none is active.
func (m *Manager) ActiveName() string {
	if m.active == nil {
		return ""
	}
	return m.active.Name()
}

// Activate tears down the current scene and initializes s in its place.
func (m *Manager) Activate(s *Scene) error {
	if m.active != nil {
		if err := m.active.Destroy(); err != nil {
			// the old scene is gone either way
			log.Error("Failed to destroy scene %s: %v", m.active.Name(), err)
		}
	}
	m.active = s
	if s == nil {
		return nil
	}
	if err := s.Init(); err != nil {
		return fmt.Errorf("failed to initialize scene %s: %v", s.Name(), err)
	}
	return nil
}

// Update runs one frame of the active scene.
func (m *Manager) Update(dt float64) {
	if m.active != nil {
		m.active.Update(dt)
	}
}

// Close destroys the active scene.
func (m *Manager) Close() error {
	return m.Activate(nil)
}
