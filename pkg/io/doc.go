// Package io converts host graphs to and from JSON documents.
//
// # Overview
//
// An [Encoder] walks a [host.Graph] and produces a [schema.Document]; a
// [Decoder] replays a document into a (possibly non-empty) target graph.
// The codec talks to the graph only through the [host] interfaces, so any
// editor that implements them can copy and paste graphs through this package.
//
// # Encoding
//
// Nodes are written in the graph's own storage order. A node's id is its
// GUID when it has one; otherwise an id of the form "node_<Type>_<n>" is
// synthesized. Synthesized ids are stable within one document only, so links
// to such nodes do not survive a second export.
//
// Every pin lists the ids of the nodes it is linked to in connectedNodeIds.
// The canonical connection list is built from output pins only, which yields
// exactly one record per link.
//
// # Decoding
//
// Decoding runs in two phases. The node phase creates one node per record,
// binds the function, variable or event the record names, allocates pins,
// restores default values and the position, and registers the node under its
// document id. The connection phase resolves each endpoint through those ids
// first and falls back to a GUID search of the target graph, so pasted nodes
// can be wired to nodes that were already there.
//
// Decoded nodes always get fresh GUIDs. To rebuild a stored graph before
// pasting into it, use [Decoder.Restore], which keeps the document's GUIDs on
// graphs implementing [host.GUIDSpawner] so that later clips can still refer
// to those nodes.
//
// Only structural problems fail a decode: a nil graph, a missing "graph"
// section, or a document the validator rejects. Unknown node types,
// unresolvable symbols, ids and pin names are recorded as [Issue] values in
// the [Report] and skipped.
//
// # JSON
//
// Use [ReadJSON] or [ImportJSON] to parse, migrate and validate a document,
// and [WriteJSON] or [ExportJSON] to encode a graph:
//
//	doc, err := io.ImportJSON("clipboard.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	report, err := io.NewDecoder(lib, lib).Paste(graph, doc)
//
// [host]: github.com/matzehuels/graphclip/pkg/host
package io
