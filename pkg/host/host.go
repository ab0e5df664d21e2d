// Package host defines the contract between the graph codec and the editor
// that owns the graph.
//
// The codec never reaches into a concrete graph model. It reads and mutates
// graphs only through the interfaces declared here, and it resolves type tags
// and symbol names (functions, variables, events) through a [Registry] and a
// [Library] supplied by the host. The in-memory implementation lives in
// [github.com/matzehuels/graphclip/pkg/blueprint].
//
// # Required and optional surfaces
//
// Every host must implement [Graph], [Node], [Pin], [Registry] and [Library].
// The remaining interfaces are optional and discovered with type assertions:
//
//   - [Positioner]: explicit 2D position accessors. Nodes without it fall back
//     to a reflection probe in the codec.
//   - [Identified]: type-specific identity (bound function, variable, event).
//   - [Transactor]: groups decoder edits into one undoable transaction.
//   - [Modifiable]: receives a notification after a paste changed the graph.
//
// # Concurrency
//
// Hosts are not required to be safe for concurrent use. Callers must give a
// single encode or decode call exclusive access to the graph.
package host

import (
	"github.com/google/uuid"
)

// Direction is the side of a node a pin sits on.
type Direction int

const (
	// Input pins receive links from output pins.
	Input Direction = iota
	// Output pins send links to input pins.
	Output
)

// String returns "input" or "output".
func (d Direction) String() string {
	if d == Output {
		return "output"
	}
	return "input"
}

// ParseDirection converts the document form of a direction back to a Direction.
func ParseDirection(s string) (Direction, bool) {
	switch s {
	case "input":
		return Input, true
	case "output":
		return Output, true
	}
	return Input, false
}

// PinType describes the value a pin carries.
type PinType struct {
	Category    string // e.g. "exec", "bool", "real", "object"
	SubCategory string // optional refinement, e.g. "double"
}

// Common pin categories.
const (
	CategoryExec     = "exec"
	CategoryBool     = "bool"
	CategoryInt      = "int"
	CategoryReal     = "real"
	CategoryString   = "string"
	CategoryName     = "name"
	CategoryObject   = "object"
	CategoryStruct   = "struct"
	CategoryDelegate = "delegate"
	CategoryWildcard = "wildcard"
)

// IsExec reports whether the pin type carries execution flow.
func (t PinType) IsExec() bool { return t.Category == CategoryExec }

// Vec2 is a position on the graph canvas.
type Vec2 struct {
	X, Y float64
}

// Pin is a typed, directional connection point owned by exactly one node.
// Links are symmetric: if a is linked to b, b.LinkedTo() contains a.
type Pin interface {
	Name() string
	Direction() Direction
	Type() PinType
	DefaultValue() string
	SetDefaultValue(v string) error
	LinkedTo() []Pin
	Owner() Node
	// MakeLinkTo links this pin with other. Linking an already linked pair
	// is a no-op; direction and type rules are enforced by the host.
	MakeLinkTo(other Pin) error
}

// Node is a typed graph vertex.
//
// Implementations must be comparable (typically pointer types) because the
// codec uses nodes as map keys within a single call.
type Node interface {
	// GUID returns the node's persistent identifier, or uuid.Nil if the node
	// has none.
	GUID() uuid.UUID
	TypeName() string
	Title() string
	Pins() []Pin
	// AllocateDefaultPins creates the node's pin set. The set may depend on
	// the identity bound through [Identified].
	AllocateDefaultPins() error
}

// Graph is an ordered collection of nodes. Nodes() returns them in the
// graph's own storage order.
type Graph interface {
	Name() string
	Nodes() []Node
	// SpawnNode instantiates a node of the given kind and attaches it to the
	// graph. The node has no pins until AllocateDefaultPins is called.
	SpawnNode(kind Kind) (Node, error)
}

// GUIDSpawner is implemented by graphs that can recreate a node under a known
// persistent identifier. SpawnNodeWithGUID fails when id is already used by a
// node of the graph.
type GUIDSpawner interface {
	SpawnNodeWithGUID(kind Kind, id uuid.UUID) (Node, error)
}

// Kind is an instantiable node type.
type Kind interface {
	TypeName() string
}

// Registry maps document type tags to instantiable node kinds.
type Registry interface {
	Kind(typeName string) (Kind, bool)
}

// Param describes one pin contributed by a function or event signature.
type Param struct {
	Name      string
	Type      PinType
	Direction Direction
	Default   string
}

// Function is a callable the host knows by name.
type Function struct {
	Name        string
	DisplayName string
	Owner       string // path of the owning class or library
	Pure        bool   // pure functions carry no execution pins
	Params      []Param
	Return      *PinType
}

// Variable is a member variable the host knows by name.
type Variable struct {
	Name string
	Type PinType
}

// Event is an overridable event owned by a class.
type Event struct {
	Name      string
	ClassName string
	ClassPath string
	Params    []Param
}

// Library resolves symbol names found in documents to host handles.
type Library interface {
	Function(name string) (*Function, bool)
	Variable(name string) (*Variable, bool)
	// Event resolves an event by name on the class at classPath.
	Event(name, classPath string) (*Event, bool)
	// FindEvent searches every known class for an event with the given name.
	FindEvent(name string) (*Event, bool)
}

// Positioner is implemented by nodes with stable position accessors.
type Positioner interface {
	Position() Vec2
	SetPosition(p Vec2) error
}

// Identity holds the type-specific fields a node exposes for serialization.
// Only the fields relevant to the node's kind are set.
type Identity struct {
	FunctionName   string
	VariableName   string
	EventName      string
	EventClass     string
	EventClassPath string
	CustomEvent    bool
}

// IsZero reports whether no identity field is set.
func (id Identity) IsZero() bool { return id == Identity{} }

// Binding carries resolved handles into a node. At most one of the fields is
// expected to be set.
type Binding struct {
	Function        *Function
	Variable        *Variable
	Event           *Event
	CustomEventName string
}

// Identified is implemented by nodes whose shape depends on a bound symbol.
type Identified interface {
	Identity() Identity
	// Bind attaches the resolved handle. It returns an error when the
	// binding does not apply to the node's kind.
	Bind(b Binding) error
}

// Transaction is an open group of undoable edits.
type Transaction interface {
	Commit()
	Rollback()
}

// Transactor is implemented by graphs that record edits for undo.
type Transactor interface {
	Begin(description string) Transaction
}

// Modifiable is implemented by graphs that track unsaved changes.
type Modifiable interface {
	MarkModified()
}
