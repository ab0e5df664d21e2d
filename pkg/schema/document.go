package schema

import (
	"bytes"
	"encoding/json"
	stderrors "errors"

	"github.com/matzehuels/graphclip/pkg/errors"
)

// Document is the serialized form of a graph.
type Document struct {
	Metadata *Metadata `json:"metadata,omitempty"`
	Graph    *Graph    `json:"graph" validate:"required"`
}

// Metadata describes who wrote a document and when.
type Metadata struct {
	Version         string `json:"version"`
	ProducerVersion string `json:"producerVersion"`
	ExportDate      string `json:"exportDate"`

	// LegacyProducer is the producer field of pre-1.0 documents.
	LegacyProducer string `json:"unrealVersion,omitempty"`
}

// Graph holds the node and connection lists.
type Graph struct {
	Nodes       []NodeRecord       `json:"nodes" validate:"dive"`
	Connections []ConnectionRecord `json:"connections" validate:"dive"`
}

// NodeRecord is one serialized node.
type NodeRecord struct {
	ID       string    `json:"id" validate:"required"`
	Type     string    `json:"type" validate:"required"`
	Title    string    `json:"title"`
	Position *Position `json:"position,omitempty"`

	FunctionName   string `json:"functionName,omitempty"`
	VariableName   string `json:"variableName,omitempty"`
	EventName      string `json:"eventName,omitempty"`
	EventClass     string `json:"eventClass,omitempty"`
	EventClassPath string `json:"eventClassPath,omitempty"`
	IsCustomEvent  bool   `json:"isCustomEvent,omitempty"`

	Pins []PinRecord `json:"pins"`
}

// HasIdentity reports whether the record carries any type-specific field.
func (n *NodeRecord) HasIdentity() bool {
	return n.FunctionName != "" || n.VariableName != "" || n.EventName != "" ||
		n.EventClassPath != "" || n.IsCustomEvent
}

// Position is a canvas coordinate.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// PinRecord is one serialized pin.
type PinRecord struct {
	Name             string   `json:"name"`
	Direction        string   `json:"direction"`
	PinCategory      string   `json:"pinCategory"`
	PinSubCategory   string   `json:"pinSubCategory,omitempty"`
	DefaultValue     string   `json:"defaultValue,omitempty"`
	ConnectedNodeIDs []string `json:"connectedNodeIds,omitempty"`
}

// ConnectionRecord links an output pin to an input pin.
type ConnectionRecord struct {
	From *Endpoint `json:"from" validate:"required"`
	To   *Endpoint `json:"to" validate:"required"`
}

// Endpoint names a pin on a node by document id.
type Endpoint struct {
	NodeID  string `json:"nodeId" validate:"required"`
	PinName string `json:"pinName" validate:"required"`
}

// Version returns the document's schema version, or "" without metadata.
func (d *Document) Version() string {
	if d == nil || d.Metadata == nil {
		return ""
	}
	return d.Metadata.Version
}

// NodeCount returns the number of node records.
func (d *Document) NodeCount() int {
	if d == nil || d.Graph == nil {
		return 0
	}
	return len(d.Graph.Nodes)
}

// ConnectionCount returns the number of connection records.
func (d *Document) ConnectionCount() int {
	if d == nil || d.Graph == nil {
		return 0
	}
	return len(d.Graph.Connections)
}

// Node returns the first node record with the given id, or nil.
func (d *Document) Node(id string) *NodeRecord {
	if d == nil || d.Graph == nil {
		return nil
	}
	for i := range d.Graph.Nodes {
		if d.Graph.Nodes[i].ID == id {
			return &d.Graph.Nodes[i]
		}
	}
	return nil
}

// Parse decodes a document without validating it. Malformed JSON is an
// INVALID_FORMAT error; JSON of the wrong shape is INVALID_DOCUMENT.
func Parse(data []byte) (*Document, error) {
	var doc Document
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&doc); err != nil {
		var typeErr *json.UnmarshalTypeError
		if stderrors.As(err, &typeErr) {
			field := typeErr.Field
			if field == "" {
				field = "document"
			}
			return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "%s has the wrong type", field)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "malformed JSON")
	}
	return &doc, nil
}
