package scene

import (
	"fmt"
	"strings"

	"github.com/cbodonnell/flipside/pkg/kinematic"
)

// PathSeparator joins node names into a path identifier.
const PathSeparator = "/"

// Node is an element of the scene hierarchy. Its transform is in world space.
type Node struct {
	name       string
	parent     *Node
	children   []*Node
	activeSelf bool
	components []interface{}
	scene      *Scene

	Position kinematic.Vector
	Rotation kinematic.Quaternion
}

func NewNode(name string) *Node {
	return &Node{
		name:       name,
		activeSelf: true,
		Rotation:   kinematic.Identity,
	}
}

func (n *Node) Name() string {
	return n.name
}

func (n *Node) Parent() *Node {
	return n.parent
}

func (n *Node) Children() []*Node {
	return n.children
}

func (n *Node) Scene() *Scene {
	return n.scene
}

// Child returns the direct child with the given name.
func (n *Node) Child(name string) *Node {
	for _, c := range n.children {
		if c.name == name {
			return c
		}
	}
	return nil
}

// AddChild attaches child under n. A child already attached elsewhere is moved.
func (n *Node) AddChild(child *Node) *Node {
	if child.parent != nil {
		child.parent.RemoveChild(child)
	}
	wasActive := child.ActiveInHierarchy()
	child.parent = n
	n.children = append(n.children, child)
	child.setScene(n.scene)
	if n.scene != nil && n.scene.initialized {
		child.walk(true, func(d *Node) {
			d.initComponents()
		})
	}
	child.notifyActive(wasActive)
	return child
}

func (n *Node) RemoveChild(child *Node) {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i:i], n.children[i+1:]...)
			child.parent = nil
			child.setScene(nil)
			return
		}
	}
}

func (n *Node) setScene(s *Scene) {
	n.walk(true, func(d *Node) {
		d.scene = s
	})
}

// Path returns the parent-chain name concatenation, e.g. "Room/Discharge1".
// The scene root container is not part of the path.
func (n *Node) Path() string {
	parts := []string{n.name}
	for p := n.parent; p != nil && !p.isRoot(); p = p.parent {
		parts = append(parts, p.name)
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return strings.Join(parts, PathSeparator)
}

func (n *Node) isRoot() bool {
	return n.scene != nil && n.scene.root == n
}

func (n *Node) ActiveSelf() bool {
	return n.activeSelf
}

// ActiveInHierarchy is true when n and all of its ancestors are active.
func (n *Node) ActiveInHierarchy() bool {
	for c := n; c != nil; c = c.parent {
		if !c.activeSelf {
			return false
		}
	}
	return true
}

// SetActive changes the active-self flag and notifies Enabler components of
// every node whose active-in-hierarchy state changed.
func (n *Node) SetActive(active bool) {
	if n.activeSelf == active {
		return
	}
	wasActive := n.ActiveInHierarchy()
	n.activeSelf = active
	n.notifyActive(wasActive)
}

func (n *Node) notifyActive(wasActive bool) {
	if n.ActiveInHierarchy() == wasActive {
		return
	}
	nowActive := !wasActive
	var visit func(d *Node)
	visit = func(d *Node) {
		if d != n && !d.activeSelf {
			return
		}
		for _, c := range d.components {
			e, ok := c.(Enabler)
			if !ok {
				continue
			}
			if nowActive {
				e.OnEnable()
			} else {
				e.OnDisable()
			}
		}
		for _, c := range d.children {
			visit(c)
		}
	}
	visit(n)
}

// AddComponent attaches c to n. Attacher components receive n immediately.
func (n *Node) AddComponent(c interface{}) {
	n.components = append(n.components, c)
	if a, ok := c.(Attacher); ok {
		a.Attach(n)
	}
	if n.scene != nil && n.scene.initialized {
		if i, ok := c.(Initializer); ok {
			if err := i.Init(); err != nil {
				n.scene.reportError(fmt.Errorf("failed to init component %T on %s: %v", c, n.Path(), err))
			}
		}
	}
}

func (n *Node) Components() []interface{} {
	return n.components
}

// walk visits n and its descendants depth first. With includeInactive false,
// inactive subtrees are skipped.
func (n *Node) walk(includeInactive bool, fn func(*Node)) {
	if !includeInactive && !n.activeSelf {
		return
	}
	fn(n)
	for _, c := range n.children {
		c.walk(includeInactive, fn)
	}
}

func (n *Node) initComponents() {
	for _, c := range n.components {
		if i, ok := c.(Initializer); ok {
			if err := i.Init(); err != nil && n.scene != nil {
				n.scene.reportError(fmt.Errorf("failed to init component %T on %s: %v", c, n.Path(), err))
			}
		}
	}
}

// ComponentOf returns the first component of type T on n.
func ComponentOf[T any](n *Node) (T, bool) {
	for _, c := range n.components {
		if t, ok := c.(T); ok {
			return t, true
		}
	}
	var zero T
	return zero, false
}
