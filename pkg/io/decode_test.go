package io

import (
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/matzehuels/graphclip/pkg/blueprint"
	"github.com/matzehuels/graphclip/pkg/errors"
	"github.com/matzehuels/graphclip/pkg/host"
	"github.com/matzehuels/graphclip/pkg/schema"
)

func TestRoundTrip(t *testing.T) {
	lib := blueprint.DefaultLibrary()
	src := sampleGraph(t, lib)
	enc := NewEncoder()
	doc := enc.Encode(src)

	// Through JSON, as a clipboard would carry it.
	data, err := Marshal(doc)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	parsed, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	dst := blueprint.New("Target")
	report, err := NewDecoder(lib, lib).Decode(dst, parsed)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if !report.Complete() || len(report.Issues) != 0 {
		t.Fatalf("report = %s, issues %v", report, report.Issues)
	}
	if report.NodesCreated != src.NodeCount() || dst.LinkCount() != src.LinkCount() {
		t.Errorf("got %d nodes / %d links, want %d / %d", report.NodesCreated, dst.LinkCount(), src.NodeCount(), src.LinkCount())
	}

	got, want := canonical(enc.Encode(dst)), canonical(doc)
	if got != want {
		t.Errorf("round trip mismatch\n got:\n%s\nwant:\n%s", got, want)
	}
	for _, n := range dst.NodeList() {
		if src.Find(n.GUID()) != nil {
			t.Errorf("decoded node %s reuses a source GUID", n.GUID())
		}
	}
}

func TestDecodeStructuralFailures(t *testing.T) {
	lib := blueprint.DefaultLibrary()
	valid := NewEncoder().Encode(sampleGraph(t, lib))

	tests := []struct {
		name     string
		graph    func() host.Graph
		doc      *schema.Document
		wantCode errors.Code
	}{
		{"nil graph", func() host.Graph { return nil }, valid, errors.ErrCodeInvalidInput},
		{"nil graph pointer", func() host.Graph { return (*blueprint.Graph)(nil) }, valid, errors.ErrCodeInvalidInput},
		{"nil document", func() host.Graph { return blueprint.New("g") }, nil, errors.ErrCodeInvalidDocument},
		{
			"missing graph section", func() host.Graph { return blueprint.New("g") },
			&schema.Document{Metadata: &schema.Metadata{Version: "1.0"}}, errors.ErrCodeInvalidDocument,
		},
		{
			"node without type", func() host.Graph { return blueprint.New("g") },
			&schema.Document{Graph: &schema.Graph{Nodes: []schema.NodeRecord{{ID: "a", Type: "K2Node_Knot"}, {ID: "b"}}}},
			errors.ErrCodeInvalidDocument,
		},
		{
			"future version", func() host.Graph { return blueprint.New("g") },
			&schema.Document{Metadata: &schema.Metadata{Version: "2.0"}, Graph: &schema.Graph{}},
			errors.ErrCodeUnsupportedVersion,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := tt.graph()
			report, err := NewDecoder(lib, lib).Paste(g, tt.doc)
			if !errors.Is(err, tt.wantCode) {
				t.Fatalf("error = %v, want %s", err, tt.wantCode)
			}
			if report != nil {
				t.Errorf("report = %v, want nil", report)
			}
			if bg, ok := g.(*blueprint.Graph); ok && bg != nil {
				if bg.NodeCount() != 0 || bg.Modified() || bg.UndoDepth() != 0 {
					t.Error("failed decode mutated the graph")
				}
			}
		})
	}
}

func TestDecodeNilRegistry(t *testing.T) {
	doc := &schema.Document{Graph: &schema.Graph{Nodes: []schema.NodeRecord{{ID: "a", Type: "K2Node_Knot"}}}}
	registries := []struct {
		name string
		reg  host.Registry
	}{
		{"untyped nil", nil},
		{"nil pointer", (*blueprint.Library)(nil)},
	}
	for _, tt := range registries {
		t.Run(tt.name, func(t *testing.T) {
			g := blueprint.New("g")
			_, err := NewDecoder(tt.reg, (*blueprint.Library)(nil)).Decode(g, doc)
			if !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Fatalf("error = %v, want %s", err, errors.ErrCodeInvalidInput)
			}
			if g.NodeCount() != 0 {
				t.Error("failed decode mutated the graph")
			}
		})
	}
}

func TestDecodeUnknownTypeIsIsolated(t *testing.T) {
	lib := blueprint.DefaultLibrary()
	doc := &schema.Document{Graph: &schema.Graph{
		Nodes: []schema.NodeRecord{
			{ID: "a", Type: "K2Node_IfThenElse"},
			{ID: "x", Type: "K2Node_FromAnotherPlugin"},
			{ID: "b", Type: "K2Node_IfThenElse"},
			{ID: "c", Type: "K2Node_Knot"},
		},
		Connections: []schema.ConnectionRecord{
			{From: &schema.Endpoint{NodeID: "a", PinName: "then"}, To: &schema.Endpoint{NodeID: "b", PinName: "execute"}},
			{From: &schema.Endpoint{NodeID: "x", PinName: "then"}, To: &schema.Endpoint{NodeID: "b", PinName: "execute"}},
		},
	}}

	g := blueprint.New("g")
	report, err := NewDecoder(lib, lib).Decode(g, doc)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if report.NodesCreated != 3 || report.NodesSkipped != 1 || g.NodeCount() != 3 {
		t.Errorf("report = %s, graph nodes %d", report, g.NodeCount())
	}
	if report.ConnectionsMade != 1 || report.ConnectionsAttempted != 2 {
		t.Errorf("connections = %d/%d, want 1/2", report.ConnectionsMade, report.ConnectionsAttempted)
	}
	if len(report.Issues) != 2 {
		t.Fatalf("issues = %v, want 2", report.Issues)
	}
	for _, is := range report.Issues {
		if is.Code != errors.ErrCodeUnresolved {
			t.Errorf("issue code = %s", is.Code)
		}
	}
	if report.Issues[0].Subject != "x" || !strings.Contains(report.Issues[0].Message, "K2Node_FromAnotherPlugin") {
		t.Errorf("first issue = %v", report.Issues[0])
	}
	if !g.Modified() {
		t.Error("graph should be marked modified")
	}
}

func TestDecodeUnresolvableReferences(t *testing.T) {
	lib := blueprint.DefaultLibrary()
	doc := &schema.Document{Graph: &schema.Graph{
		Nodes: []schema.NodeRecord{
			{ID: "f", Type: "K2Node_CallFunction", FunctionName: "NoSuchFunction"},
			{ID: "v", Type: "K2Node_VariableGet", VariableName: "NoSuchVariable"},
			{ID: "e", Type: "K2Node_Event", EventName: "NoSuchEvent", EventClassPath: "/Script/Engine.Actor"},
			{ID: "b", Type: "K2Node_IfThenElse"},
		},
		Connections: []schema.ConnectionRecord{
			{From: &schema.Endpoint{NodeID: "f", PinName: "then"}, To: &schema.Endpoint{NodeID: "b", PinName: "execute"}},
			{From: &schema.Endpoint{NodeID: "b", PinName: "then"}, To: &schema.Endpoint{NodeID: "nowhere", PinName: "execute"}},
			{From: &schema.Endpoint{NodeID: "b", PinName: "Then"}, To: &schema.Endpoint{NodeID: "f", PinName: "execute"}},
			{From: &schema.Endpoint{NodeID: "b", PinName: "Condition"}, To: &schema.Endpoint{NodeID: "f", PinName: "execute"}},
		},
	}}

	g := blueprint.New("g")
	report, err := NewDecoder(lib, lib).Decode(g, doc)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if report.NodesCreated != 4 {
		t.Errorf("NodesCreated = %d, want 4", report.NodesCreated)
	}
	// Unbound function nodes still get their execution pins.
	if report.ConnectionsMade != 1 || report.ConnectionsAttempted != 4 {
		t.Errorf("connections = %d/%d, want 1/4", report.ConnectionsMade, report.ConnectionsAttempted)
	}
	// 3 symbols, unknown node id, case mismatch, rejected link.
	if len(report.Issues) != 6 {
		t.Errorf("issues = %d, want 6: %v", len(report.Issues), report.Issues)
	}
}

func TestDecodeEventFallsBackToNameSearch(t *testing.T) {
	lib := blueprint.DefaultLibrary()
	doc := &schema.Document{Graph: &schema.Graph{Nodes: []schema.NodeRecord{
		{ID: "e", Type: "K2Node_Event", EventName: "ReceivePossessed", EventClassPath: "/Script/Game.RenamedPawn"},
		{ID: "n", Type: "K2Node_Event", EventName: "ReceiveBeginPlay"},
	}}}

	g := blueprint.New("g")
	report, err := NewDecoder(lib, lib).Decode(g, doc)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(report.Issues) != 0 {
		t.Fatalf("issues = %v", report.Issues)
	}
	nodes := g.NodeList()
	if id := nodes[0].Identity(); id.EventClassPath != "/Script/Engine.Pawn" {
		t.Errorf("identity = %+v, want Pawn event", id)
	}
	if nodes[0].Pin("NewController") == nil {
		t.Error("event parameters should be allocated after binding")
	}
	if id := nodes[1].Identity(); id.EventClassPath != "/Script/Engine.Actor" {
		t.Errorf("identity = %+v, want Actor event", id)
	}
}

func TestDecodeRestoresDefaultsAndPositions(t *testing.T) {
	lib := blueprint.DefaultLibrary()
	doc := &schema.Document{Graph: &schema.Graph{Nodes: []schema.NodeRecord{{
		ID:           "p",
		Type:         "K2Node_CallFunction",
		FunctionName: "PrintString",
		Position:     &schema.Position{X: -120, Y: 48.5},
		Pins: []schema.PinRecord{
			{Name: "InString", DefaultValue: "pasted"},
			{Name: "Duration"},
			{Name: "NotAPin", DefaultValue: "ignored"},
		},
	}}}}

	g := blueprint.New("g")
	if _, err := NewDecoder(lib, lib).Decode(g, doc); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	n := g.NodeList()[0]
	if got := n.Pin("InString").DefaultValue(); got != "pasted" {
		t.Errorf("InString = %q, want pasted", got)
	}
	if got := n.Pin("Duration").DefaultValue(); got != "2.000000" {
		t.Errorf("Duration = %q, want the library default", got)
	}
	if got := n.Position(); got != (host.Vec2{X: -120, Y: 48.5}) {
		t.Errorf("Position = %v", got)
	}
}

func TestDecodeSecondaryGUIDLookup(t *testing.T) {
	lib := blueprint.DefaultLibrary()

	target := blueprint.New("Target")
	existing := target.Spawn(lib.KindByName("K2Node_IfThenElse"))
	if err := existing.AllocateDefaultPins(); err != nil {
		t.Fatal(err)
	}

	doc := &schema.Document{Graph: &schema.Graph{
		Nodes: []schema.NodeRecord{{ID: "start", Type: "K2Node_CustomEvent", EventName: "OnStart", IsCustomEvent: true}},
		Connections: []schema.ConnectionRecord{{
			From: &schema.Endpoint{NodeID: "start", PinName: "then"},
			To:   &schema.Endpoint{NodeID: existing.GUID().String(), PinName: "execute"},
		}},
	}}

	report, err := NewDecoder(lib, lib).Decode(target, doc)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if report.ConnectionsMade != 1 {
		t.Fatalf("report = %s, issues %v", report, report.Issues)
	}
	links := existing.Pin("execute").Links()
	if len(links) != 1 || links[0].Node().Title() != "OnStart" {
		t.Errorf("existing node links = %v", links)
	}
}

func TestDecodeIdempotentRelink(t *testing.T) {
	lib := blueprint.DefaultLibrary()
	g := blueprint.New("g")
	a := g.Spawn(lib.KindByName("K2Node_IfThenElse"))
	b := g.Spawn(lib.KindByName("K2Node_IfThenElse"))
	for _, n := range []*blueprint.Node{a, b} {
		if err := n.AllocateDefaultPins(); err != nil {
			t.Fatal(err)
		}
	}

	conn := schema.ConnectionRecord{
		From: &schema.Endpoint{NodeID: a.GUID().String(), PinName: "then"},
		To:   &schema.Endpoint{NodeID: b.GUID().String(), PinName: "execute"},
	}
	doc := &schema.Document{Graph: &schema.Graph{Connections: []schema.ConnectionRecord{conn, conn}}}

	dec := NewDecoder(lib, lib)
	first, err := dec.Decode(g, doc)
	if err != nil {
		t.Fatal(err)
	}
	second, err := dec.Decode(g, doc)
	if err != nil {
		t.Fatal(err)
	}
	if first.ConnectionsMade != 2 || second.ConnectionsMade != first.ConnectionsMade {
		t.Errorf("connections made = %d then %d, want 2 and 2", first.ConnectionsMade, second.ConnectionsMade)
	}
	if g.LinkCount() != 1 {
		t.Errorf("LinkCount = %d, want 1", g.LinkCount())
	}
}

func TestDecodeTwiceCreatesIndependentCopies(t *testing.T) {
	lib := blueprint.DefaultLibrary()
	doc := NewEncoder().Encode(sampleGraph(t, lib))
	links := len(doc.Graph.Connections)

	g := blueprint.New("g")
	dec := NewDecoder(lib, lib)
	first, err := dec.Decode(g, doc)
	if err != nil {
		t.Fatal(err)
	}
	second, err := dec.Decode(g, doc)
	if err != nil {
		t.Fatal(err)
	}
	if first.ConnectionsMade != second.ConnectionsMade {
		t.Errorf("connections made = %d then %d", first.ConnectionsMade, second.ConnectionsMade)
	}
	if g.LinkCount() != 2*links || g.NodeCount() != 2*len(doc.Graph.Nodes) {
		t.Errorf("graph has %d nodes / %d links", g.NodeCount(), g.LinkCount())
	}
}

func TestDecodeDuplicateIDs(t *testing.T) {
	lib := blueprint.DefaultLibrary()
	doc := &schema.Document{Graph: &schema.Graph{
		Nodes: []schema.NodeRecord{
			{ID: "a", Type: "K2Node_IfThenElse"},
			{ID: "a", Type: "K2Node_IfThenElse"},
			{ID: "b", Type: "K2Node_IfThenElse"},
		},
		Connections: []schema.ConnectionRecord{
			{From: &schema.Endpoint{NodeID: "a", PinName: "then"}, To: &schema.Endpoint{NodeID: "b", PinName: "execute"}},
		},
	}}
	g := blueprint.New("g")
	report, err := NewDecoder(lib, lib).Decode(g, doc)
	if err != nil {
		t.Fatal(err)
	}
	if report.NodesCreated != 3 || len(report.Issues) != 1 {
		t.Errorf("report = %s, issues %v", report, report.Issues)
	}
	if len(g.NodeList()[0].Pin("then").Links()) != 1 {
		t.Error("duplicate id should resolve to the first node")
	}
}

func TestPasteIsOneUndoStep(t *testing.T) {
	lib := blueprint.DefaultLibrary()
	doc := NewEncoder().Encode(sampleGraph(t, lib))

	g := blueprint.New("g")
	if _, err := NewDecoder(lib, lib).Paste(g, doc); err != nil {
		t.Fatal(err)
	}
	if g.UndoDepth() != 1 {
		t.Fatalf("UndoDepth = %d, want 1", g.UndoDepth())
	}
	desc, ok := g.Undo()
	if !ok || desc != PasteDescription {
		t.Errorf("Undo() = %q, %v", desc, ok)
	}
	if g.NodeCount() != 0 || g.LinkCount() != 0 {
		t.Errorf("after undo: %d nodes, %d links", g.NodeCount(), g.LinkCount())
	}
}

func TestDecodeWithoutLibrary(t *testing.T) {
	lib := blueprint.DefaultLibrary()
	doc := &schema.Document{Graph: &schema.Graph{Nodes: []schema.NodeRecord{
		{ID: "f", Type: "K2Node_CallFunction", FunctionName: "PrintString"},
	}}}
	report, err := NewDecoder(lib, nil).Decode(blueprint.New("g"), doc)
	if err != nil {
		t.Fatal(err)
	}
	if report.NodesCreated != 1 || len(report.Issues) != 1 {
		t.Errorf("report = %s, issues %v", report, report.Issues)
	}
}

func TestReportString(t *testing.T) {
	tests := []struct {
		report Report
		want   string
	}{
		{Report{NodesCreated: 2, ConnectionsMade: 1, ConnectionsAttempted: 1}, "nodes 2/2, connections 1/1"},
		{
			Report{NodesCreated: 2, NodesSkipped: 1, ConnectionsMade: 0, ConnectionsAttempted: 1, Issues: make([]Issue, 2)},
			"nodes 2/3, connections 0/1, 2 issue(s)",
		},
	}
	for _, tt := range tests {
		if got := tt.report.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestImportSampleDocument(t *testing.T) {
	doc, err := ImportJSON("../../examples/begin_play.json")
	if err != nil {
		t.Fatalf("ImportJSON: %v", err)
	}
	lib := blueprint.DefaultLibrary()
	g := blueprint.New("EventGraph")
	report, err := NewDecoder(lib, lib).Paste(g, doc)
	if err != nil {
		t.Fatalf("Paste: %v", err)
	}
	if !report.Complete() || report.NodesCreated != 2 || report.ConnectionsMade != 1 {
		t.Fatalf("report = %s", report)
	}
	printNode := g.NodeList()[1]
	if got := printNode.Title(); got != "Print String" {
		t.Errorf("Title = %q", got)
	}
	if got := printNode.Pin("InString").DefaultValue(); got != "Hello from graphclip" {
		t.Errorf("InString = %q", got)
	}
	if g.LinkCount() != 1 {
		t.Errorf("LinkCount = %d, want 1", g.LinkCount())
	}
}

// branchClip adds a Branch node wired after the sample's Print String node,
// which it names by GUID only.
const branchClip = `{
  "graph": {
    "nodes": [{"id": "branch", "type": "K2Node_IfThenElse", "title": "Branch", "pins": []}],
    "connections": [{
      "from": {"nodeId": "8c7d6e5f-1a2b-4c3d-8e9f-0a1b2c3d4e5f", "pinName": "then"},
      "to": {"nodeId": "branch", "pinName": "execute"}
    }]
  }
}`

func TestRestoreKeepsGUIDsForLaterPastes(t *testing.T) {
	lib := blueprint.DefaultLibrary()
	dec := NewDecoder(lib, lib)
	base, err := ImportJSON("../../examples/begin_play.json")
	if err != nil {
		t.Fatalf("ImportJSON: %v", err)
	}

	g := blueprint.New("EventGraph")
	if _, err := dec.Restore(g, base); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	printString := g.Find(uuid.MustParse("8c7d6e5f-1a2b-4c3d-8e9f-0a1b2c3d4e5f"))
	if printString == nil || g.Find(uuid.MustParse("3f2b1c9e-6a0d-4b7e-9c51-2d8f7a4e1b00")) == nil {
		t.Fatal("restored nodes lost their GUIDs")
	}

	clip, err := Unmarshal([]byte(branchClip))
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	report, err := dec.Paste(g, clip)
	if err != nil {
		t.Fatalf("Paste: %v", err)
	}
	if !report.Complete() || report.ConnectionsMade != 1 {
		t.Fatalf("report = %s", report)
	}
	if g.LinkCount() != 2 {
		t.Errorf("LinkCount = %d, want base link + pasted link", g.LinkCount())
	}
	if links := printString.Pin("then").Links(); len(links) != 1 || links[0].Node().TypeName() != "K2Node_IfThenElse" {
		t.Errorf("Print String.then links = %v", links)
	}

	// Encoding again keeps the stored ids.
	out := NewEncoder().Encode(g)
	for _, id := range []string{"3f2b1c9e-6a0d-4b7e-9c51-2d8f7a4e1b00", "8c7d6e5f-1a2b-4c3d-8e9f-0a1b2c3d4e5f"} {
		if out.Node(id) == nil {
			t.Errorf("encoded graph lost node %s", id)
		}
	}
}

func TestRestoreFallsBackToFreshGUIDs(t *testing.T) {
	lib := blueprint.DefaultLibrary()
	dec := NewDecoder(lib, lib)
	id := "8c7d6e5f-1a2b-4c3d-8e9f-0a1b2c3d4e5f"
	doc := &schema.Document{Graph: &schema.Graph{Nodes: []schema.NodeRecord{
		{ID: id, Type: "K2Node_Knot"},
		{ID: id, Type: "K2Node_Knot"},
		{ID: "node_K2Node_Knot_7", Type: "K2Node_Knot"},
	}}}

	g := blueprint.New("g")
	if _, err := dec.Restore(g, doc); err != nil {
		t.Fatalf("Restore: %v", err)
	}
	nodes := g.NodeList()
	if len(nodes) != 3 {
		t.Fatalf("nodes = %d, want 3", len(nodes))
	}
	if nodes[0].GUID().String() != id {
		t.Errorf("first node GUID = %s, want %s", nodes[0].GUID(), id)
	}
	for _, n := range nodes[1:] {
		if n.GUID() == uuid.Nil || n.GUID().String() == id {
			t.Errorf("GUID = %s, want a fresh one", n.GUID())
		}
	}

	// Decode never reuses document ids.
	g2 := blueprint.New("g2")
	if _, err := dec.Decode(g2, doc); err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if g2.NodeList()[0].GUID().String() == id {
		t.Error("Decode kept the document id")
	}
}
