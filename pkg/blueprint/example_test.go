package blueprint_test

import (
	"fmt"

	"github.com/matzehuels/graphclip/pkg/blueprint"
	"github.com/matzehuels/graphclip/pkg/host"
)

func Example() {
	lib := blueprint.DefaultLibrary()
	g := blueprint.New("EventGraph")

	start := g.Spawn(lib.KindByName("K2Node_CustomEvent"))
	_ = start.Bind(host.Binding{CustomEventName: "OnStart"})
	_ = start.AllocateDefaultPins()

	printString, _ := lib.Function("PrintString")
	call := g.Spawn(lib.KindByName("K2Node_CallFunction"), blueprint.At(300, 0))
	_ = call.Bind(host.Binding{Function: printString})
	_ = call.AllocateDefaultPins()

	if err := start.Pin("then").MakeLinkTo(call.Pin("execute")); err != nil {
		fmt.Println("Error:", err)
		return
	}

	for _, n := range g.NodeList() {
		fmt.Printf("%s: %d pins\n", n.Title(), len(n.PinList()))
	}
	fmt.Println("links:", g.LinkCount())
	// Output:
	// OnStart: 2 pins
	// Print String: 5 pins
	// links: 1
}

func ExampleGraph_Undo() {
	lib := blueprint.DefaultLibrary()
	g := blueprint.New("EventGraph")

	tx := g.Begin("Add branch")
	n := g.Spawn(lib.KindByName("K2Node_IfThenElse"))
	_ = n.AllocateDefaultPins()
	tx.Commit()
	fmt.Println("nodes:", g.NodeCount())

	desc, _ := g.Undo()
	fmt.Println("undid:", desc)
	fmt.Println("nodes:", g.NodeCount())
	// Output:
	// nodes: 1
	// undid: Add branch
	// nodes: 0
}
