package scene

import (
	"fmt"
	"strings"

	"github.com/cbodonnell/flipside/pkg/log"
)

// Scene is a named node hierarchy. Top-level objects hang off an unnamed root.
type Scene struct {
	name        string
	root        *Node
	initialized bool
	destroyed   bool
	errors      []error
}

func New(name string) *Scene {
	s := &Scene{
		name: name,
	}
	s.root = NewNode(name)
	s.root.scene = s
	return s
}

func (s *Scene) Name() string {
	return s.name
}

// Root returns the container node holding the scene's top-level objects.
func (s *Scene) Root() *Node {
	return s.root
}

// Add attaches a top-level object.
func (s *Scene) Add(n *Node) *Node {
	return s.root.AddChild(n)
}

// Loaded is true once the scene has been initialized and not yet destroyed.
func (s *Scene) Loaded() bool {
	return s.initialized && !s.destroyed
}

func (s *Scene) reportError(err error) {
	log.Error("Scene %s: %v", s.name, err)
	s.errors = append(s.errors, err)
}

// Errors returns the component errors reported since the scene was created.
func (s *Scene) Errors() []error {
	return s.errors
}

// Init initializes every component in the hierarchy, inactive ones included.
func (s *Scene) Init() error {
	if s.initialized {
		return nil
	}
	s.initialized = true
	s.root.walk(true, func(n *Node) {
		n.initComponents()
	})
	return nil
}

// Destroy tears down every component in the hierarchy.
func (s *Scene) Destroy() error {
	if s.destroyed {
		return nil
	}
	s.destroyed = true
	var errs []string
	s.root.walk(true, func(n *Node) {
		for _, c := range n.components {
			if d, ok := c.(Destroyer); ok {
				if err := d.Destroy(); err != nil {
					errs = append(errs, fmt.Sprintf("%s: %v", n.Path(), err))
				}
			}
		}
	})
	if len(errs) > 0 {
		return fmt.Errorf("failed to destroy components: %s", strings.Join(errs, "; "))
	}
	return nil
}

// Update runs Updater components on every node active in the hierarchy.
func (s *Scene) Update(dt float64) {
	if !s.Loaded() {
		return
	}
	var updaters []Updater
	s.root.walk(false, func(n *Node) {
		for _, c := range n.components {
			if u, ok := c.(Updater); ok {
				updaters = append(updaters, u)
			}
		}
	})
	for _, u := range updaters {
		u.Update(dt)
	}
}

// FindByPath resolves a path identifier produced by Node.Path.
func (s *Scene) FindByPath(path string) *Node {
	if path == "" {
		return nil
	}
	parts := strings.Split(path, PathSeparator)
	current := s.root
	for _, part := range parts {
		current = current.Child(part)
		if current == nil {
			return s.findByPathSlow(path)
		}
	}
	return current
}

// findByPathSlow handles sibling name collisions that the direct walk misses.
func (s *Scene) findByPathSlow(path string) *Node {
	var found *Node
	s.root.walk(true, func(n *Node) {
		if found == nil && n != s.root && n.Path() == path {
			found = n
		}
	})
	return found
}

// Nodes returns every node except the root container.
func (s *Scene) Nodes(includeInactive bool) []*Node {
	var nodes []*Node
	s.root.walk(includeInactive, func(n *Node) {
		if n != s.root {
			nodes = append(nodes, n)
		}
	})
	return nodes
}

// FindAll returns every component of type T in s.
func FindAll[T any](s *Scene, includeInactive bool) []T {
	if s == nil {
		return nil
	}
	var found []T
	s.root.walk(includeInactive, func(n *Node) {
		for _, c := range n.components {
			if t, ok := c.(T); ok {
				found = append(found, t)
			}
		}
	})
	return found
}

// FindFirst returns the first active component of type T in s.
func FindFirst[T any](s *Scene) (T, bool) {
	var zero T
	if s == nil {
		return zero, false
	}
	all := FindAll[T](s, false)
	if len(all) == 0 {
		return zero, false
	}
	return all[0], true
}
