package blueprint

import (
	"github.com/google/uuid"

	"github.com/matzehuels/graphclip/pkg/host"
)

// Node is a graph vertex instantiated from a [Kind].
type Node struct {
	guid  uuid.UUID
	kind  *Kind
	graph *Graph
	pins  []*Pin
	pos   host.Vec2

	function   *host.Function
	variable   *host.Variable
	event      *host.Event
	customName string
}

// GUID returns the persistent identifier, or uuid.Nil.
func (n *Node) GUID() uuid.UUID { return n.guid }

// TypeName returns the kind's type tag.
func (n *Node) TypeName() string { return n.kind.Name }

// Kind returns the node's kind.
func (n *Node) Kind() *Kind { return n.kind }

// Graph returns the owning graph, or nil once the node was removed.
func (n *Node) Graph() *Graph { return n.graph }

// Title returns the display title derived from the kind and bound symbol.
func (n *Node) Title() string {
	switch n.kind.Flavor {
	case FlavorFunctionCall:
		if n.function != nil {
			if n.function.DisplayName != "" {
				return n.function.DisplayName
			}
			return n.function.Name
		}
	case FlavorVariableGet:
		if n.variable != nil {
			return "Get " + n.variable.Name
		}
	case FlavorVariableSet:
		if n.variable != nil {
			return "Set " + n.variable.Name
		}
	case FlavorEvent:
		if n.event != nil {
			return "Event " + n.event.Name
		}
		if n.customName != "" {
			return n.customName
		}
	case FlavorCustomEvent:
		if n.customName != "" {
			return n.customName
		}
	}
	if n.kind.Title != "" {
		return n.kind.Title
	}
	return n.kind.Name
}

// Pins returns the node's pins in allocation order.
func (n *Node) Pins() []host.Pin {
	out := make([]host.Pin, len(n.pins))
	for i, p := range n.pins {
		out[i] = p
	}
	return out
}

// PinList returns the concrete pins in allocation order.
func (n *Node) PinList() []*Pin { return append([]*Pin(nil), n.pins...) }

// Pin returns the pin with the given name, or nil.
func (n *Node) Pin(name string) *Pin {
	for _, p := range n.pins {
		if p.name == name {
			return p
		}
	}
	return nil
}

// Position returns the canvas position.
func (n *Node) Position() host.Vec2 { return n.pos }

// SetPosition moves the node.
func (n *Node) SetPosition(p host.Vec2) error {
	prev := n.pos
	n.pos = p
	n.journal(func() { n.pos = prev })
	return nil
}

// AllocateDefaultPins creates the pin set for the node's kind and bound
// symbol. Nodes that already have pins are left unchanged.
func (n *Node) AllocateDefaultPins() error {
	if len(n.pins) > 0 {
		return nil
	}
	for _, param := range n.defaultParams() {
		n.pins = append(n.pins, newPin(n, param))
	}
	n.journal(func() { n.pins = nil })
	return nil
}

func (n *Node) defaultParams() []host.Param {
	var params []host.Param
	switch n.kind.Flavor {
	case FlavorFunctionCall:
		if n.function == nil || !n.function.Pure {
			params = append(params, execIn(), execOut())
		}
		if n.function != nil {
			params = append(params, n.function.Params...)
			if n.function.Return != nil {
				params = append(params, host.Param{Name: PinReturnValue, Type: *n.function.Return, Direction: host.Output})
			}
		}
	case FlavorVariableGet:
		if n.variable != nil {
			params = append(params, host.Param{Name: n.variable.Name, Type: n.variable.Type, Direction: host.Output})
		}
	case FlavorVariableSet:
		params = append(params, execIn(), execOut())
		if n.variable != nil {
			params = append(params,
				host.Param{Name: n.variable.Name, Type: n.variable.Type, Direction: host.Input},
				host.Param{Name: PinOutputGet, Type: n.variable.Type, Direction: host.Output},
			)
		}
	case FlavorEvent, FlavorCustomEvent:
		params = append(params,
			host.Param{Name: PinOutputDelegate, Type: delegateType, Direction: host.Output},
			execOut(),
		)
		if n.event != nil {
			for _, p := range n.event.Params {
				p.Direction = host.Output
				params = append(params, p)
			}
		}
	default:
		params = append(params, n.kind.Pins...)
	}
	return params
}

// Identity implements [host.Identified].
func (n *Node) Identity() host.Identity {
	var id host.Identity
	switch n.kind.Flavor {
	case FlavorFunctionCall:
		if n.function != nil {
			id.FunctionName = n.function.Name
		}
	case FlavorVariableGet, FlavorVariableSet:
		if n.variable != nil {
			id.VariableName = n.variable.Name
		}
	case FlavorEvent, FlavorCustomEvent:
		switch {
		case n.event != nil && n.event.ClassPath != "":
			id.EventName = n.event.Name
			id.EventClass = n.event.ClassName
			id.EventClassPath = n.event.ClassPath
		case n.event != nil:
			id.EventName = n.event.Name
			id.CustomEvent = true
		case n.customName != "":
			id.EventName = n.customName
			id.CustomEvent = true
		}
	}
	return id
}

// Bind implements [host.Identified].
func (n *Node) Bind(b host.Binding) error {
	prevFn, prevVar, prevEv, prevName := n.function, n.variable, n.event, n.customName
	switch {
	case b.Function != nil:
		if n.kind.Flavor != FlavorFunctionCall {
			return ErrBindingMismatch
		}
		n.function = b.Function
	case b.Variable != nil:
		if n.kind.Flavor != FlavorVariableGet && n.kind.Flavor != FlavorVariableSet {
			return ErrBindingMismatch
		}
		n.variable = b.Variable
	case b.Event != nil:
		if n.kind.Flavor != FlavorEvent {
			return ErrBindingMismatch
		}
		n.event = b.Event
	case b.CustomEventName != "":
		if n.kind.Flavor != FlavorEvent && n.kind.Flavor != FlavorCustomEvent {
			return ErrBindingMismatch
		}
		n.customName = b.CustomEventName
	default:
		return nil
	}
	n.journal(func() {
		n.function, n.variable, n.event, n.customName = prevFn, prevVar, prevEv, prevName
	})
	return nil
}

func (n *Node) journal(undo func()) {
	if n.graph != nil {
		n.graph.record(undo)
	}
}
