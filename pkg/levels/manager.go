// Package levels sequences the game's levels and builds their scenes.
package levels

import (
	"errors"
	"fmt"

	"github.com/cbodonnell/flipside/pkg/events"
	"github.com/cbodonnell/flipside/pkg/log"
	"github.com/cbodonnell/flipside/pkg/scene"
)

const (
	StationHub  = "Level01_StationHub"
	ReactorCore = "Level02_ReactorCore"
)

// DefaultOrder is the order levels are played in.
var DefaultOrder = []string{StationHub, ReactorCore}

var ErrUnknownLevel = errors.New("unknown level")

// SceneLoader starts scene transitions.
type SceneLoader interface {
	LoadScene(name string, onComplete func()) error
}

// Manager tracks the position in the level order and advances through it.
type Manager struct {
	loader SceneLoader
	scenes *scene.Manager
	names  []string
	index  int
	subs   events.Subscriptions
}

// NewManagerOptions contains options for creating a new Manager.
type NewManagerOptions struct {
	Hub    *events.Hub
	Loader SceneLoader
	// Scenes is consulted to keep the index in step with the active scene.
	Scenes *scene.Manager
	Levels []string
}

func NewManager(opts NewManagerOptions) *Manager {
	names := opts.Levels
	if len(names) == 0 {
		names = DefaultOrder
	}
	m := &Manager{
		loader: opts.Loader,
		scenes: opts.Scenes,
		names:  append([]string(nil), names...),
	}
	if opts.Hub != nil {
		m.subs.Add(opts.Hub.LevelCompleted.Subscribe(func(events.LevelCompleted) {
			if err := m.LoadNextLevel(); err != nil {
				log.Error("Failed to advance after level completed: %v", err)
			}
		}))
		m.subs.Add(opts.Hub.LevelLoaded.Subscribe(func(ev events.LevelLoaded) {
			m.SetLevelIndexFromLevelName(ev.Level)
		}))
	}
	m.synchronize()
	return m
}

func (m *Manager) synchronize() {
	if m.scenes == nil {
		return
	}
	m.SetLevelIndexFromLevelName(m.scenes.ActiveName())
}

// Levels returns the level names in play order.
func (m *Manager) Levels() []string {
	return append([]string(nil), m.names...)
}

// FirstLevel is the level a new game starts in.
func (m *Manager) FirstLevel() string {
	return m.names[0]
}

func (m *Manager) CurrentLevelName() string {
	if m.index < 0 || m.index >= len(m.names) {
		return ""
	}
	return m.names[m.index]
}

func (m *Manager) indexOf(name string) int {
	for i, n := range m.names {
		if n == name {
			return i
		}
	}
	return -1
}

// LoadNextLevel loads the level after the current one. Finishing the last
// level is logged and nothing is loaded.
func (m *Manager) LoadNextLevel() error {
	if m.index >= len(m.names)-1 {
		log.Info("All levels completed")
		return nil
	}
	next := m.index + 1
	if err := m.loader.LoadScene(m.names[next], nil); err != nil {
		return fmt.Errorf("failed to load next level: %w", err)
	}
	m.index = next
	return nil
}

func (m *Manager) LoadLevel(name string) error {
	i := m.indexOf(name)
	if i < 0 {
		log.Warn("Level %s not found", name)
		return fmt.Errorf("%w: %s", ErrUnknownLevel, name)
	}
	if err := m.loader.LoadScene(name, nil); err != nil {
		return fmt.Errorf("failed to load level %s: %w", name, err)
	}
	m.index = i
	return nil
}

func (m *Manager) ResetLevelIndex() {
	m.index = 0
}

func (m *Manager) SetLevelIndex(index int) {
	if index >= 0 && index < len(m.names) {
		m.index = index
	}
}

// SetLevelIndexFromLevelName moves the index to name. Unknown names, such as
// menus, leave it unchanged.
func (m *Manager) SetLevelIndexFromLevelName(name string) {
	if i := m.indexOf(name); i >= 0 {
		m.index = i
	}
}

func (m *Manager) Close() {
	m.subs.CancelAll()
}
