// Package render holds the visual renderers for graph documents.
//
// The only renderer is [nodelink], which draws a document's nodes and pins
// with Graphviz:
//
//	dot := nodelink.ToDOT(doc, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(dot)
//
// [nodelink]: github.com/matzehuels/graphclip/pkg/render/nodelink
package render
