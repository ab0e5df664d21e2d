package nodelink

import (
	"strings"
	"testing"

	"github.com/matzehuels/graphclip/pkg/schema"
)

func sampleDoc() *schema.Document {
	return &schema.Document{Graph: &schema.Graph{
		Nodes: []schema.NodeRecord{
			{ID: "a", Type: "K2Node_Event", Title: "Event BeginPlay", Pins: []schema.PinRecord{
				{Name: "then", Direction: "output", PinCategory: "exec"},
			}},
			{ID: "b", Type: "K2Node_IfThenElse", Pins: []schema.PinRecord{
				{Name: "execute", Direction: "input", PinCategory: "exec"},
				{Name: "Condition", Direction: "input", PinCategory: "bool", DefaultValue: "true"},
				{Name: "then", Direction: "output", PinCategory: "exec"},
			}},
		},
		Connections: []schema.ConnectionRecord{
			{From: &schema.Endpoint{NodeID: "a", PinName: "then"}, To: &schema.Endpoint{NodeID: "b", PinName: "execute"}},
			{From: &schema.Endpoint{NodeID: "a", PinName: "then"}, To: &schema.Endpoint{NodeID: "missing", PinName: "execute"}},
			{From: &schema.Endpoint{NodeID: "a", PinName: "nope"}, To: &schema.Endpoint{NodeID: "b", PinName: "execute"}},
		},
	}}
}

func TestToDOT(t *testing.T) {
	dot := ToDOT(sampleDoc(), Options{})

	for _, want := range []string{
		"digraph G {",
		`"a" [label="{Event BeginPlay|{<o0> then}}"];`,
		`"b" [label="{{<i0> execute|<i1> Condition}|K2Node_IfThenElse|{<o0> then}}"];`,
		`"a":o0 -> "b":i0;`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q\n%s", want, dot)
		}
	}
	if n := strings.Count(dot, "->"); n != 1 {
		t.Errorf("edges = %d, want 1 (unresolved connections dropped)", n)
	}
}

func TestToDOTDetailed(t *testing.T) {
	dot := ToDOT(sampleDoc(), Options{Detailed: true})
	if !strings.Contains(dot, "<i1> Condition: bool = true") {
		t.Errorf("detailed label missing default value:\n%s", dot)
	}
}

func TestToDOTEmpty(t *testing.T) {
	for _, doc := range []*schema.Document{nil, {}} {
		dot := ToDOT(doc, Options{})
		if strings.Contains(dot, "label=") {
			t.Errorf("empty document produced nodes:\n%s", dot)
		}
		if !strings.HasSuffix(dot, "}\n") {
			t.Errorf("unterminated DOT:\n%s", dot)
		}
	}
}

func TestEscapeRecord(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"plain", "plain"},
		{"a|b", `a\|b`},
		{"{x}", `\{x\}`},
		{"<in>", `\<in\>`},
		{`say "hi"`, `say \"hi\"`},
		{`back\slash`, `back\\slash`},
		{"two\nlines", "two lines"},
	}
	for _, tt := range tests {
		if got := escapeRecord(tt.in); got != tt.want {
			t.Errorf("escapeRecord(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestQuoteID(t *testing.T) {
	if got := quoteID(`a"b`); got != `"a\"b"` {
		t.Errorf("quoteID = %s", got)
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<svg width="10pt" height="20pt" viewBox="0.00 0.00 100.50 200.00" xmlns="http://www.w3.org/2000/svg"><g/></svg>`)
	got := string(normalizeViewBox(in))
	want := `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 100.50 200.00" width="100" height="200"><g/></svg>`
	if got != want {
		t.Errorf("normalizeViewBox() = %s, want %s", got, want)
	}

	plain := []byte("<svg><g/></svg>")
	if string(normalizeViewBox(plain)) != string(plain) {
		t.Error("svg without viewBox was modified")
	}
}

func TestRenderSVG(t *testing.T) {
	svg, err := RenderSVG(ToDOT(sampleDoc(), Options{}))
	if err != nil {
		t.Fatalf("RenderSVG: %v", err)
	}
	if !strings.Contains(string(svg), "<svg") {
		t.Errorf("output is not SVG: %.80s", svg)
	}
}
