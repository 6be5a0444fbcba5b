package scene

// Components opt into lifecycle callbacks by implementing these interfaces.

// Initializer is called once when the owning scene is activated, or when the
// component is attached to a node of an already active scene.
type Initializer interface {
	Init() error
}

// Destroyer is called once when the owning scene is torn down.
type Destroyer interface {
	Destroy() error
}

// Updater is called every frame while the owning node is active in the hierarchy.
type Updater interface {
	Update(dt float64)
}

// Enabler is notified when the owning node's active-in-hierarchy state changes.
type Enabler interface {
	OnEnable()
	OnDisable()
}

// Attacher receives the node it was added to.
type Attacher interface {
	Attach(n *Node)
}
