package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/graphclip/pkg/errors"
	"github.com/matzehuels/graphclip/pkg/host"
	"github.com/matzehuels/graphclip/pkg/schema"
)

// Unmarshal parses data, migrates it to the current schema version and
// validates it.
//
// The input must be a JSON object with a "graph" member and an optional
// "metadata" member:
//
//	{
//	  "metadata": {"version": "1.0", "producerVersion": "...", "exportDate": "..."},
//	  "graph": {
//	    "nodes": [{"id": "a", "type": "K2Node_Knot", "title": "Reroute", "pins": []}],
//	    "connections": [{"from": {"nodeId": "a", "pinName": "OutputPin"}, "to": {"nodeId": "b", "pinName": "InputPin"}}]
//	  }
//	}
//
// Unknown members are ignored. Missing metadata is treated as the current
// version, and 0.x documents are upgraded in place.
//
// Unmarshal returns an error if:
//   - data is not well-formed JSON (INVALID_FORMAT)
//   - a member has the wrong JSON type (INVALID_DOCUMENT)
//   - the version is 2.0 or later, or not a version (UNSUPPORTED_VERSION)
//   - a node lacks an id or type, or a connection lacks an endpoint
//     (INVALID_DOCUMENT)
//
// Every error is structural in the sense of [errors.IsStructural]. Node types
// and symbols are not checked here; that happens when the document is
// decoded. The returned document shares no memory with data.
func Unmarshal(data []byte) (*schema.Document, error) {
	doc, err := schema.Parse(data)
	if err != nil {
		return nil, err
	}
	if err := schema.Migrate(doc); err != nil {
		return nil, err
	}
	if err := schema.Validate(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// ReadJSON reads a whole document from r and returns it as [Unmarshal] does.
// ReadJSON does not close r.
func ReadJSON(r io.Reader) (*schema.Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	return Unmarshal(data)
}

// ImportJSON reads the document stored at path. Errors are those of
// [Unmarshal], prefixed with the path, or the error from reading the file.
func ImportJSON(path string) (*schema.Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	doc, err := Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Marshal encodes doc as indented JSON. It fails only when doc is nil.
func Marshal(doc *schema.Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteDocument(doc, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// WriteDocument writes doc to w as indented JSON followed by a newline.
// WriteDocument does not close w.
func WriteDocument(doc *schema.Document, w io.Writer) error {
	if doc == nil {
		return errors.New(errors.ErrCodeInvalidInput, "no document")
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteJSON encodes g with enc and writes the document to w. A nil enc uses
// default options. It returns INVALID_INPUT when g is nil, and otherwise only
// fails when w does. WriteJSON does not close w.
func WriteJSON(g host.Graph, enc *Encoder, w io.Writer) error {
	if enc == nil {
		enc = NewEncoder()
	}
	doc := enc.Encode(g)
	if doc == nil {
		return errors.New(errors.ErrCodeInvalidInput, "no graph")
	}
	return WriteDocument(doc, w)
}

// ExportJSON writes g to a JSON file at path, creating or truncating it.
// A partially written file is left in place when encoding fails.
func ExportJSON(g host.Graph, enc *Encoder, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteJSON(g, enc, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
