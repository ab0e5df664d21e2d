package io

import (
	"fmt"
	"reflect"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/graphclip/pkg/host"
	"github.com/matzehuels/graphclip/pkg/observability"
	"github.com/matzehuels/graphclip/pkg/schema"
)

// syntheticSeq numbers nodes without a GUID across the whole process.
var syntheticSeq atomic.Uint64

// Encoder converts host graphs into documents. An Encoder holds no per-call
// state and is safe for concurrent use on different graphs.
type Encoder struct {
	producer string
	now      func() time.Time
	logger   *log.Logger
}

// NewEncoder creates an encoder.
func NewEncoder(opts ...Option) *Encoder {
	s := newSettings(opts)
	return &Encoder{producer: s.producer, now: s.now, logger: s.logger}
}

// Encode serializes g into a new document.
//
// Nodes are written in the graph's storage order. Each node's id is its GUID,
// or "node_<Type>_<n>" when the node has none; the synthesized ids are unique
// within the process, so two encodes of the same GUID-less graph produce
// different ids. Connections are derived from output pins only, so each link
// appears once.
//
// Encode returns nil when g is nil, including a nil pointer stored in the
// interface. It never fails otherwise: nodes whose position cannot be read
// are written at (0,0). Encode does not modify g, and the returned document
// shares no memory with it.
func (e *Encoder) Encode(g host.Graph) *schema.Document {
	if isNil(g) {
		e.logger.Error("encode: no graph")
		return nil
	}
	start := time.Now()

	nodes := g.Nodes()
	ids := assignIDs(nodes)

	doc := &schema.Document{
		Metadata: &schema.Metadata{
			Version:         schema.CurrentVersion,
			ProducerVersion: e.producer,
			ExportDate:      e.now().UTC().Format(time.RFC3339),
		},
		Graph: &schema.Graph{
			Nodes:       make([]schema.NodeRecord, 0, len(nodes)),
			Connections: []schema.ConnectionRecord{},
		},
	}

	for _, n := range nodes {
		doc.Graph.Nodes = append(doc.Graph.Nodes, e.encodeNode(n, ids))
	}
	for _, n := range nodes {
		doc.Graph.Connections = append(doc.Graph.Connections, e.encodeConnections(n, ids)...)
	}

	e.logger.Debug("encoded graph", "graph", g.Name(), "nodes", len(doc.Graph.Nodes), "connections", len(doc.Graph.Connections))
	observability.Codec().OnEncode(g.Name(), len(doc.Graph.Nodes), len(doc.Graph.Connections), time.Since(start))
	return doc
}

// nodeIDs maps nodes to their document ids for one encode call.
type nodeIDs map[host.Node]string

// assignIDs gives every node its GUID as id, or a synthesized one.
func assignIDs(nodes []host.Node) nodeIDs {
	ids := make(nodeIDs, len(nodes))
	for _, n := range nodes {
		if guid := n.GUID(); guid != uuid.Nil {
			ids[n] = guid.String()
			continue
		}
		ids[n] = fmt.Sprintf("node_%s_%d", n.TypeName(), syntheticSeq.Add(1))
	}
	return ids
}

// of returns the id of n. Nodes outside the encoded graph are referenced by
// GUID; it returns "" when n has neither.
func (ids nodeIDs) of(n host.Node) string {
	if n == nil {
		return ""
	}
	if id, ok := ids[n]; ok {
		return id
	}
	if guid := n.GUID(); guid != uuid.Nil {
		return guid.String()
	}
	return ""
}

func (e *Encoder) encodeNode(n host.Node, ids nodeIDs) schema.NodeRecord {
	rec := schema.NodeRecord{
		ID:    ids[n],
		Type:  n.TypeName(),
		Title: n.Title(),
		Pins:  []schema.PinRecord{},
	}

	pos, ok := positionOf(n)
	if !ok {
		e.logger.Debug("no position field, writing origin", "node", rec.ID, "type", rec.Type)
	}
	rec.Position = &schema.Position{X: pos.X, Y: pos.Y}

	if idn, ok := n.(host.Identified); ok {
		id := idn.Identity()
		rec.FunctionName = id.FunctionName
		rec.VariableName = id.VariableName
		rec.EventName = id.EventName
		rec.EventClass = id.EventClass
		rec.EventClassPath = id.EventClassPath
		rec.IsCustomEvent = id.CustomEvent
	}

	for _, p := range n.Pins() {
		rec.Pins = append(rec.Pins, encodePin(p, ids))
	}

	e.logger.Debug("encoded node", "id", rec.ID, "type", rec.Type, "title", rec.Title, "pins", len(rec.Pins))
	return rec
}

func encodePin(p host.Pin, ids nodeIDs) schema.PinRecord {
	typ := p.Type()
	rec := schema.PinRecord{
		Name:           p.Name(),
		Direction:      p.Direction().String(),
		PinCategory:    typ.Category,
		PinSubCategory: typ.SubCategory,
		DefaultValue:   p.DefaultValue(),
	}
	for _, linked := range p.LinkedTo() {
		if id := ids.of(linked.Owner()); id != "" {
			rec.ConnectedNodeIDs = append(rec.ConnectedNodeIDs, id)
		}
	}
	return rec
}

// encodeConnections emits one record per link of n's output pins.
func (e *Encoder) encodeConnections(n host.Node, ids nodeIDs) []schema.ConnectionRecord {
	var out []schema.ConnectionRecord
	from := ids[n]
	for _, p := range n.Pins() {
		if p.Direction() != host.Output {
			continue
		}
		for _, linked := range p.LinkedTo() {
			to := ids.of(linked.Owner())
			if to == "" {
				e.logger.Debug("skipping link to anonymous node", "node", from, "pin", p.Name())
				continue
			}
			out = append(out, schema.ConnectionRecord{
				From: &schema.Endpoint{NodeID: from, PinName: p.Name()},
				To:   &schema.Endpoint{NodeID: to, PinName: linked.Name()},
			})
		}
	}
	return out
}

// isNil reports whether v is nil or a nil value of a nillable kind behind an
// interface.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
