package blueprint

import (
	"fmt"

	"github.com/matzehuels/graphclip/pkg/host"
)

// Flavor selects how a kind derives its pins and identity.
type Flavor int

const (
	// FlavorGeneric kinds declare their pins statically.
	FlavorGeneric Flavor = iota
	// FlavorFunctionCall kinds call a bound function.
	FlavorFunctionCall
	// FlavorVariableGet kinds read a bound variable.
	FlavorVariableGet
	// FlavorVariableSet kinds write a bound variable.
	FlavorVariableSet
	// FlavorEvent kinds implement an event owned by a class.
	FlavorEvent
	// FlavorCustomEvent kinds declare a graph-local event by name.
	FlavorCustomEvent
)

var flavorNames = map[Flavor]string{
	FlavorGeneric:      "generic",
	FlavorFunctionCall: "function_call",
	FlavorVariableGet:  "variable_get",
	FlavorVariableSet:  "variable_set",
	FlavorEvent:        "event",
	FlavorCustomEvent:  "custom_event",
}

// String returns the library-file spelling of the flavor.
func (f Flavor) String() string {
	if s, ok := flavorNames[f]; ok {
		return s
	}
	return fmt.Sprintf("flavor(%d)", int(f))
}

// ParseFlavor converts a library-file flavor name. The empty string is generic.
func ParseFlavor(s string) (Flavor, error) {
	if s == "" {
		return FlavorGeneric, nil
	}
	for f, name := range flavorNames {
		if name == s {
			return f, nil
		}
	}
	return FlavorGeneric, fmt.Errorf("unknown flavor %q", s)
}

// Kind is an instantiable node type.
type Kind struct {
	Name   string       // type tag written to documents, e.g. "K2Node_CallFunction"
	Title  string       // fallback display title
	Flavor Flavor       // how pins and identity are derived
	Pins   []host.Param // static pins of generic kinds
}

// TypeName implements [host.Kind].
func (k *Kind) TypeName() string { return k.Name }

// Standard pin names.
const (
	PinExecute        = "execute"
	PinThen           = "then"
	PinReturnValue    = "ReturnValue"
	PinOutputDelegate = "OutputDelegate"
	PinOutputGet      = "Output_Get"
)

var (
	execType     = host.PinType{Category: host.CategoryExec}
	delegateType = host.PinType{Category: host.CategoryDelegate}
)

func execIn() host.Param {
	return host.Param{Name: PinExecute, Type: execType, Direction: host.Input}
}

func execOut() host.Param {
	return host.Param{Name: PinThen, Type: execType, Direction: host.Output}
}
