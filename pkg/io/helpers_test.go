package io

import (
	"fmt"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/matzehuels/graphclip/pkg/blueprint"
	"github.com/matzehuels/graphclip/pkg/host"
	"github.com/matzehuels/graphclip/pkg/schema"
)

var fixedClock = func() time.Time { return time.Date(2026, 1, 2, 15, 4, 5, 0, time.UTC) }

// sampleGraph builds a graph touching every node flavor of the default library.
func sampleGraph(t *testing.T, lib *blueprint.Library) *blueprint.Graph {
	t.Helper()
	g := blueprint.New("EventGraph")

	spawn := func(kind string, b host.Binding, x, y float64) *blueprint.Node {
		k := lib.KindByName(kind)
		if k == nil {
			t.Fatalf("kind %s missing", kind)
		}
		n := g.Spawn(k, blueprint.At(x, y))
		if err := n.Bind(b); err != nil {
			t.Fatalf("bind %s: %v", kind, err)
		}
		if err := n.AllocateDefaultPins(); err != nil {
			t.Fatalf("allocate %s: %v", kind, err)
		}
		return n
	}
	fn := func(name string) *host.Function {
		f, ok := lib.Function(name)
		if !ok {
			t.Fatalf("function %s missing", name)
		}
		return f
	}
	health, _ := lib.Variable("Health")
	tick, _ := lib.Event("ReceiveTick", "/Script/Engine.Actor")

	start := spawn("K2Node_CustomEvent", host.Binding{CustomEventName: "OnStart"}, 0, 0)
	ev := spawn("K2Node_Event", host.Binding{Event: tick}, 0, 200)
	call := spawn("K2Node_CallFunction", host.Binding{Function: fn("PrintString")}, 300, 0)
	branch := spawn("K2Node_IfThenElse", host.Binding{}, 600, 0)
	get := spawn("K2Node_VariableGet", host.Binding{Variable: health}, 300, 200)
	set := spawn("K2Node_VariableSet", host.Binding{Variable: health}, 600, 200)
	add := spawn("K2Node_CallFunction", host.Binding{Function: fn("Add_DoubleDouble")}, 400.5, -32.25)

	mustSet(t, call.Pin("InString"), "Hi")
	mustSet(t, branch.Pin("Condition"), "false")

	mustLink(t, start.Pin("then"), call.Pin("execute"))
	mustLink(t, call.Pin("then"), branch.Pin("execute"))
	mustLink(t, branch.Pin("else"), set.Pin("execute"))
	mustLink(t, get.Pin("Health"), add.Pin("A"))
	mustLink(t, ev.Pin("DeltaSeconds"), add.Pin("B"))
	mustLink(t, add.Pin("ReturnValue"), set.Pin("Health"))
	return g
}

func mustSet(t *testing.T, p *blueprint.Pin, v string) {
	t.Helper()
	if p == nil {
		t.Fatal("pin missing")
	}
	if err := p.SetDefaultValue(v); err != nil {
		t.Fatal(err)
	}
}

func mustLink(t *testing.T, a, b *blueprint.Pin) {
	t.Helper()
	if a == nil || b == nil {
		t.Fatal("pin missing")
	}
	if err := a.MakeLinkTo(b); err != nil {
		t.Fatalf("link %s -> %s: %v", a.Name(), b.Name(), err)
	}
}

// canonical renders a document with node ids replaced by node indices so
// documents produced from different graphs can be compared.
func canonical(doc *schema.Document) string {
	index := make(map[string]int)
	for i, n := range doc.Graph.Nodes {
		index[n.ID] = i
	}
	ref := func(id string) string {
		if i, ok := index[id]; ok {
			return fmt.Sprintf("#%d", i)
		}
		return "?" + id
	}

	var b strings.Builder
	for i, n := range doc.Graph.Nodes {
		fmt.Fprintf(&b, "#%d %s %q fn=%s var=%s ev=%s/%s/%s custom=%v",
			i, n.Type, n.Title, n.FunctionName, n.VariableName, n.EventName, n.EventClass, n.EventClassPath, n.IsCustomEvent)
		if n.Position != nil {
			fmt.Fprintf(&b, " @(%g,%g)", n.Position.X, n.Position.Y)
		}
		b.WriteString("\n")
		for _, p := range n.Pins {
			var linked []string
			for _, id := range p.ConnectedNodeIDs {
				linked = append(linked, ref(id))
			}
			sort.Strings(linked)
			fmt.Fprintf(&b, "  %s %s %s/%s %q -> %v\n", p.Name, p.Direction, p.PinCategory, p.PinSubCategory, p.DefaultValue, linked)
		}
	}
	var conns []string
	for _, c := range doc.Graph.Connections {
		conns = append(conns, fmt.Sprintf("%s.%s -> %s.%s", ref(c.From.NodeID), c.From.PinName, ref(c.To.NodeID), c.To.PinName))
	}
	sort.Strings(conns)
	b.WriteString(strings.Join(conns, "\n"))
	return b.String()
}

const exampleLibrary = `
[[kind]]
name = "OnStart"
title = "OnStart"
  [[kind.pin]]
  name = "then"
  direction = "output"
  category = "exec"

[[kind]]
name = "DoThing"
title = "DoThing"
  [[kind.pin]]
  name = "exec"
  category = "exec"
`

func exampleLib(t testing.TB) *blueprint.Library {
	lib, err := blueprint.ParseLibrary([]byte(exampleLibrary))
	if err != nil {
		t.Fatalf("ParseLibrary: %v", err)
	}
	return lib
}
