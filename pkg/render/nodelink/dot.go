package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/graphclip/pkg/schema"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds pin categories and default values to pin labels.
	Detailed bool
}

// ToDOT converts a document to Graphviz DOT. Every node becomes a record with
// its input pins on the left and output pins on the right; every connection
// becomes an edge between the two pin ports. Connections naming a node or pin
// that is not in the document are left out.
func ToDOT(doc *schema.Document, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=record, style=\"rounded,filled\", fillcolor=white, fontsize=12];\n")
	buf.WriteString("  ranksep=0.8;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	if doc == nil || doc.Graph == nil {
		buf.WriteString("}\n")
		return buf.String()
	}

	ports := make(map[string]map[string]string, len(doc.Graph.Nodes))
	for i := range doc.Graph.Nodes {
		n := &doc.Graph.Nodes[i]
		if _, dup := ports[n.ID]; dup {
			continue
		}
		label, p := fmtRecord(n, opts.Detailed)
		ports[n.ID] = p
		fmt.Fprintf(&buf, "  %s [label=\"%s\"];\n", quoteID(n.ID), label)
	}

	buf.WriteString("\n")
	for _, c := range doc.Graph.Connections {
		if c.From == nil || c.To == nil {
			continue
		}
		from, ok := ports[c.From.NodeID][c.From.PinName]
		if !ok {
			continue
		}
		to, ok := ports[c.To.NodeID][c.To.PinName]
		if !ok {
			continue
		}
		fmt.Fprintf(&buf, "  %s:%s -> %s:%s;\n", quoteID(c.From.NodeID), from, quoteID(c.To.NodeID), to)
	}

	buf.WriteString("}\n")
	return buf.String()
}

// fmtRecord builds the record label of n and maps its pin names to port ids.
// Ports are positional ("i0", "o1") so pin names need no sanitizing.
func fmtRecord(n *schema.NodeRecord, detailed bool) (string, map[string]string) {
	ports := make(map[string]string, len(n.Pins))
	var ins, outs []string
	for _, p := range n.Pins {
		text := escapeRecord(fmtPin(p, detailed))
		if p.Direction == "output" {
			id := "o" + strconv.Itoa(len(outs))
			outs = append(outs, "<"+id+"> "+text)
			ports[p.Name] = id
			continue
		}
		id := "i" + strconv.Itoa(len(ins))
		ins = append(ins, "<"+id+"> "+text)
		ports[p.Name] = id
	}

	title := n.Title
	if title == "" {
		title = n.Type
	}
	fields := []string{escapeRecord(title)}
	if len(ins) > 0 {
		fields = append([]string{"{" + strings.Join(ins, "|") + "}"}, fields...)
	}
	if len(outs) > 0 {
		fields = append(fields, "{"+strings.Join(outs, "|")+"}")
	}
	return "{" + strings.Join(fields, "|") + "}", ports
}

func fmtPin(p schema.PinRecord, detailed bool) string {
	if !detailed {
		return p.Name
	}
	s := p.Name + ": " + p.PinCategory
	if p.PinSubCategory != "" {
		s += "/" + p.PinSubCategory
	}
	if p.DefaultValue != "" {
		s += " = " + p.DefaultValue
	}
	return s
}

var recordEscaper = strings.NewReplacer(
	`\`, `\\`,
	`"`, `\"`,
	`{`, `\{`,
	`}`, `\}`,
	`|`, `\|`,
	`<`, `\<`,
	`>`, `\>`,
	"\n", " ",
)

// escapeRecord escapes record metacharacters and double quotes.
func escapeRecord(s string) string { return recordEscaper.Replace(s) }

func quoteID(id string) string {
	return `"` + strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", " ").Replace(id) + `"`
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(dot string) ([]byte, error) {
	out, err := render(dot, graphviz.SVG)
	if err != nil {
		return nil, err
	}
	return normalizeViewBox(out), nil
}

// RenderPNG renders a DOT graph to PNG using Graphviz.
func RenderPNG(dot string) ([]byte, error) {
	return render(dot, graphviz.PNG)
}

func render(dot string, format graphviz.Format) ([]byte, error) {
	ctx := context.Background()
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
