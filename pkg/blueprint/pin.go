package blueprint

import (
	"slices"

	"github.com/matzehuels/graphclip/pkg/host"
)

// Pin is a connection point owned by a node.
type Pin struct {
	name  string
	dir   host.Direction
	typ   host.PinType
	def   string
	owner *Node
	links []*Pin
}

func newPin(owner *Node, p host.Param) *Pin {
	return &Pin{name: p.Name, dir: p.Direction, typ: p.Type, def: p.Default, owner: owner}
}

func (p *Pin) Name() string              { return p.name }
func (p *Pin) Direction() host.Direction { return p.dir }
func (p *Pin) Type() host.PinType        { return p.typ }
func (p *Pin) DefaultValue() string      { return p.def }
func (p *Pin) Owner() host.Node          { return p.owner }

// Node returns the owning node.
func (p *Pin) Node() *Node { return p.owner }

// SetDefaultValue replaces the pin's default literal.
func (p *Pin) SetDefaultValue(v string) error {
	prev := p.def
	p.def = v
	p.graph().record(func() { p.def = prev })
	return nil
}

// LinkedTo returns the pins this pin is linked to.
func (p *Pin) LinkedTo() []host.Pin {
	out := make([]host.Pin, len(p.links))
	for i, l := range p.links {
		out[i] = l
	}
	return out
}

// Links returns the concrete linked pins.
func (p *Pin) Links() []*Pin { return slices.Clone(p.links) }

// IsLinkedTo reports whether p and other are linked.
func (p *Pin) IsLinkedTo(other *Pin) bool { return slices.Contains(p.links, other) }

// MakeLinkTo links p and other symmetrically. Linking an already linked pair
// is a no-op.
func (p *Pin) MakeLinkTo(other host.Pin) error {
	o, ok := other.(*Pin)
	if !ok || o == nil {
		return ErrForeignPin
	}
	if err := p.canLink(o); err != nil {
		return err
	}
	if p.IsLinkedTo(o) {
		return nil
	}
	p.links = append(p.links, o)
	o.links = append(o.links, p)
	p.graph().record(func() { unlink(p, o) })
	return nil
}

// BreakLinkTo removes the link between p and other, if any.
func (p *Pin) BreakLinkTo(other *Pin) {
	if !p.IsLinkedTo(other) {
		return
	}
	unlink(p, other)
	p.graph().record(func() {
		p.links = append(p.links, other)
		other.links = append(other.links, p)
	})
}

func unlink(a, b *Pin) {
	a.links = slices.DeleteFunc(a.links, func(x *Pin) bool { return x == b })
	b.links = slices.DeleteFunc(b.links, func(x *Pin) bool { return x == a })
}

func (p *Pin) canLink(o *Pin) error {
	switch {
	case p == o:
		return ErrSelfLink
	case p.owner == o.owner:
		return ErrSameNode
	case p.owner.graph == nil || o.owner.graph == nil:
		return ErrDetachedNode
	case p.owner.graph != o.owner.graph:
		return ErrCrossGraph
	case p.dir == o.dir:
		return ErrSameDirection
	case p.typ.IsExec() != o.typ.IsExec():
		return ErrIncompatiblePins
	}
	return nil
}

// graph returns the owning graph, or a detached placeholder whose journal
// is never open.
func (p *Pin) graph() *Graph {
	if p.owner != nil && p.owner.graph != nil {
		return p.owner.graph
	}
	return &Graph{}
}
