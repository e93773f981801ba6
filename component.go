package nexus

// Component is the content tree contract the camera core depends on. The
// broader declarative component framework lives outside this package; the
// registry only needs child enumeration, the activation lifecycle hooks
// and the per frame deferred update pass.
type Component interface {
	// Children returns the component's direct children, in declaration
	// order. May be nil.
	Children() []Component

	// OnActivate acquires whatever resources the component needs to take
	// part in a frame. Activating an already active component is a no-op.
	OnActivate() error

	// OnDeactivate releases those resources. Idempotent.
	OnDeactivate()

	// IsActive reports whether the component is between OnActivate and
	// OnDeactivate.
	IsActive() bool

	// ApplyUpdates commits all deferred parameter targets recorded since
	// the previous frame. Called exactly once per frame, before rendering.
	ApplyUpdates(deltaTime float32)
}

// Group is a plain container component. It owns no GPU resources; its
// lifecycle hooks recurse into its children.
type Group struct {
	children []Component
	active   bool
}

// NewGroup creates a container with the given children.
func NewGroup(children ...Component) *Group {
	return &Group{children: children}
}

// Add appends a child to the group. If the group is active the child is
// activated immediately.
func (g *Group) Add(c Component) error {
	g.children = append(g.children, c)
	if g.active {
		return c.OnActivate()
	}
	return nil
}

func (g *Group) Children() []Component {
	return g.children
}

func (g *Group) OnActivate() error {
	if g.active {
		return nil
	}
	for i, c := range g.children {
		if err := c.OnActivate(); err != nil {
			for j := i - 1; j >= 0; j-- {
				g.children[j].OnDeactivate()
			}
			return err
		}
	}
	g.active = true
	return nil
}

func (g *Group) OnDeactivate() {
	if !g.active {
		return
	}
	for _, c := range g.children {
		c.OnDeactivate()
	}
	g.active = false
}

func (g *Group) IsActive() bool {
	return g.active
}

func (g *Group) ApplyUpdates(deltaTime float32) {
	for _, c := range g.children {
		c.ApplyUpdates(deltaTime)
	}
}

// Walk visits root and every component reachable from it, depth first in
// declaration order.
func Walk(root Component, visit func(Component)) {
	if root == nil {
		return
	}
	visit(root)
	for _, c := range root.Children() {
		Walk(c, visit)
	}
}
