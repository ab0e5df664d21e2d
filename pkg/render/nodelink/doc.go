// Package nodelink renders graph documents as Graphviz node-link diagrams.
//
// # Overview
//
// Each node record becomes a Graphviz record shape: input pins on the left,
// the node title in the middle and output pins on the right. Connections are
// drawn pin to pin, left to right.
//
// # Usage
//
//	dot := nodelink.ToDOT(doc, nodelink.Options{Detailed: true})
//	svg, err := nodelink.RenderSVG(dot)
//	png, err := nodelink.RenderPNG(dot)
//
// [ToDOT] works on the document alone, so it can draw documents whose types
// are unknown to the local library.
//
// # Dependencies
//
// Rendering uses [github.com/goccy/go-graphviz], which runs Graphviz in
// process. No external binaries are needed.
package nodelink
