package blueprint

import (
	"errors"
	"slices"

	"github.com/google/uuid"

	"github.com/matzehuels/graphclip/pkg/host"
)

var (
	// ErrForeignKind is returned by [Graph.SpawnNode] when the kind was not
	// created by this package.
	ErrForeignKind = errors.New("kind does not belong to this host")

	// ErrForeignPin is returned by [Pin.MakeLinkTo] when the other pin was not
	// created by this package.
	ErrForeignPin = errors.New("pin does not belong to this host")

	// ErrSelfLink is returned when a pin is linked to itself.
	ErrSelfLink = errors.New("cannot link a pin to itself")

	// ErrSameNode is returned when two pins of the same node are linked.
	ErrSameNode = errors.New("cannot link pins of the same node")

	// ErrSameDirection is returned when two inputs or two outputs are linked.
	ErrSameDirection = errors.New("pins must have opposite directions")

	// ErrIncompatiblePins is returned when an execution pin is linked to a
	// data pin.
	ErrIncompatiblePins = errors.New("execution pins only link to execution pins")

	// ErrDetachedNode is returned when a pin's node is no longer in a graph.
	ErrDetachedNode = errors.New("node is not attached to a graph")

	// ErrCrossGraph is returned when pins of two different graphs are linked.
	ErrCrossGraph = errors.New("pins belong to different graphs")

	// ErrGUIDInUse is returned by [Graph.SpawnNodeWithGUID] when another node
	// of the graph already has the identifier.
	ErrGUIDInUse = errors.New("node identifier already in use")

	// ErrBindingMismatch is returned by [Node.Bind] when the binding does not
	// apply to the node's flavor.
	ErrBindingMismatch = errors.New("binding does not apply to node kind")
)

// Graph is an ordered collection of nodes with an undo journal.
//
// The zero value is not usable - use New to create a graph.
type Graph struct {
	name     string
	nodes    []*Node
	open     *transaction
	history  []*transaction
	modified bool
}

// New creates an empty graph.
func New(name string) *Graph {
	return &Graph{name: name}
}

// Name returns the graph name.
func (g *Graph) Name() string { return g.name }

// Nodes returns the nodes in insertion order.
func (g *Graph) Nodes() []host.Node {
	out := make([]host.Node, len(g.nodes))
	for i, n := range g.nodes {
		out[i] = n
	}
	return out
}

// NodeList returns the concrete nodes in insertion order.
// The returned slice is a copy.
func (g *Graph) NodeList() []*Node { return slices.Clone(g.nodes) }

// NodeCount returns the number of nodes in the graph.
func (g *Graph) NodeCount() int { return len(g.nodes) }

// LinkCount returns the number of links, counting each link once.
func (g *Graph) LinkCount() int {
	count := 0
	for _, n := range g.nodes {
		for _, p := range n.pins {
			if p.dir == host.Output {
				count += len(p.links)
			}
		}
	}
	return count
}

// Find returns the node with the given GUID, or nil.
func (g *Graph) Find(id uuid.UUID) *Node {
	if id == uuid.Nil {
		return nil
	}
	for _, n := range g.nodes {
		if n.guid == id {
			return n
		}
	}
	return nil
}

// NodeOption configures a node created with [Graph.Spawn].
type NodeOption func(*Node)

// WithoutGUID creates a node that carries no persistent identifier.
func WithoutGUID() NodeOption {
	return func(n *Node) { n.guid = uuid.Nil }
}

// WithGUID creates a node with a fixed identifier.
func WithGUID(id uuid.UUID) NodeOption {
	return func(n *Node) { n.guid = id }
}

// At places the node at the given canvas position.
func At(x, y float64) NodeOption {
	return func(n *Node) { n.pos = host.Vec2{X: x, Y: y} }
}

// Spawn creates a node of kind k and attaches it to the graph. The node has
// no pins until [Node.AllocateDefaultPins] is called.
func (g *Graph) Spawn(k *Kind, opts ...NodeOption) *Node {
	n := &Node{guid: uuid.New(), kind: k, graph: g}
	for _, opt := range opts {
		opt(n)
	}
	g.nodes = append(g.nodes, n)
	g.record(func() { g.detach(n) })
	return n
}

// SpawnNode implements [host.Graph].
func (g *Graph) SpawnNode(kind host.Kind) (host.Node, error) {
	k, ok := kind.(*Kind)
	if !ok || k == nil {
		return nil, ErrForeignKind
	}
	return g.Spawn(k), nil
}

// SpawnNodeWithGUID implements [host.GUIDSpawner]. A nil id creates a node
// without a persistent identifier.
func (g *Graph) SpawnNodeWithGUID(kind host.Kind, id uuid.UUID) (host.Node, error) {
	k, ok := kind.(*Kind)
	if !ok || k == nil {
		return nil, ErrForeignKind
	}
	if id == uuid.Nil {
		return g.Spawn(k, WithoutGUID()), nil
	}
	if g.Find(id) != nil {
		return nil, ErrGUIDInUse
	}
	return g.Spawn(k, WithGUID(id)), nil
}

// RemoveNode breaks all links of n and removes it from the graph.
// Removing a node that is not in the graph does nothing.
func (g *Graph) RemoveNode(n *Node) {
	if n == nil || n.graph != g {
		return
	}
	for _, p := range n.pins {
		for _, other := range slices.Clone(p.links) {
			p.BreakLinkTo(other)
		}
	}
	idx := slices.Index(g.nodes, n)
	g.detach(n)
	g.record(func() {
		n.graph = g
		g.nodes = slices.Insert(g.nodes, min(idx, len(g.nodes)), n)
	})
}

func (g *Graph) detach(n *Node) {
	g.nodes = slices.DeleteFunc(g.nodes, func(x *Node) bool { return x == n })
	n.graph = nil
}

// MarkModified flags the graph as changed since it was last saved.
func (g *Graph) MarkModified() { g.modified = true }

// Modified reports whether the graph changed since it was created.
func (g *Graph) Modified() bool { return g.modified }
