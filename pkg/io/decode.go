package io

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/graphclip/pkg/errors"
	"github.com/matzehuels/graphclip/pkg/host"
	"github.com/matzehuels/graphclip/pkg/observability"
	"github.com/matzehuels/graphclip/pkg/schema"
)

// PasteDescription is the undo label of transactions opened by [Decoder.Paste].
const PasteDescription = "Paste Blueprint Nodes"

// Decoder replays documents into host graphs.
//
// A Decoder keeps no state between calls; every call owns its own id table.
// Concurrent calls are safe as long as they target different graphs.
type Decoder struct {
	registry host.Registry
	library  host.Library
	logger   *log.Logger
}

// NewDecoder creates a decoder resolving type tags through reg and symbol
// names through lib. lib may be nil, in which case no identity is restored.
// A nil reg is accepted here and reported by every decode.
func NewDecoder(reg host.Registry, lib host.Library, opts ...Option) *Decoder {
	s := newSettings(opts)
	if isNil(reg) {
		reg = nil
	}
	if isNil(lib) {
		lib = nil
	}
	return &Decoder{registry: reg, library: lib, logger: s.logger}
}

// Issue is a node or connection that could not be restored.
type Issue struct {
	Code    errors.Code `json:"code"`    // always UNRESOLVED_REFERENCE for now
	Subject string      `json:"subject"` // document node id, or "from -> to" for connections
	Message string      `json:"message"`
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: %s", i.Subject, i.Message)
}

// Report describes the outcome of a successful decode.
type Report struct {
	NodesCreated         int     `json:"nodesCreated"`
	NodesSkipped         int     `json:"nodesSkipped"`
	ConnectionsMade      int     `json:"connectionsMade"`
	ConnectionsAttempted int     `json:"connectionsAttempted"`
	Issues               []Issue `json:"issues,omitempty"`
}

// Complete reports whether every node and connection was restored.
func (r *Report) Complete() bool {
	return r.NodesSkipped == 0 && r.ConnectionsMade == r.ConnectionsAttempted
}

// String returns a one-line summary such as "nodes 2/2, connections 1/1".
func (r *Report) String() string {
	s := fmt.Sprintf("nodes %d/%d, connections %d/%d",
		r.NodesCreated, r.NodesCreated+r.NodesSkipped, r.ConnectionsMade, r.ConnectionsAttempted)
	if n := len(r.Issues); n > 0 {
		s += fmt.Sprintf(", %d issue(s)", n)
	}
	return s
}

func (r *Report) stats() observability.DecodeStats {
	return observability.DecodeStats{
		NodesCreated:         r.NodesCreated,
		NodesSkipped:         r.NodesSkipped,
		ConnectionsMade:      r.ConnectionsMade,
		ConnectionsAttempted: r.ConnectionsAttempted,
	}
}

// session is the per-call state of a decode.
type session struct {
	graph     host.Graph
	keepGUIDs bool                    // spawn nodes under their document ids when possible
	byID      map[string]host.Node    // document id -> node created in this call
	byGUID    map[uuid.UUID]host.Node // built on first fallback lookup
	report    *Report
	logger    *log.Logger
}

func (s *session) issue(subject, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	s.report.Issues = append(s.report.Issues, Issue{Code: errors.ErrCodeUnresolved, Subject: subject, Message: msg})
	s.logger.Warn(msg, "subject", subject)
}

// Decode replays doc into g: first every node, then every connection.
//
// Every decoded node is a new node with a fresh GUID, so decoding the same
// document twice yields two independent copies. Document ids only key the
// connections of this call; a connection endpoint that names no node of the
// document is looked up among the nodes already in g by GUID.
//
// Decode migrates doc to the current version in place before validating it.
// It returns an error, and leaves g untouched, when:
//   - g or the decoder's registry is nil (INVALID_INPUT)
//   - doc or its graph section is missing (INVALID_DOCUMENT)
//   - the version is not supported (UNSUPPORTED_VERSION)
//   - validation fails (INVALID_DOCUMENT)
//
// Anything else, such as unknown node types, unresolved symbols or
// connections whose pins cannot be found or linked, is skipped and recorded
// in the report. Graphs implementing [host.Modifiable] are marked modified
// when at least one node or link was added.
func (d *Decoder) Decode(g host.Graph, doc *schema.Document) (*Report, error) {
	return d.run(g, doc, false)
}

// Restore rebuilds a stored document into g, keeping the document's node ids
// as persistent GUIDs where g implements [host.GUIDSpawner] and the id is a
// GUID not already in use. Other nodes get fresh GUIDs. Use Restore to load
// the base graph a clip is later pasted into, so that connections naming
// existing nodes by GUID still resolve and the graph keeps its ids when it is
// encoded again. Errors and reporting are those of [Decoder.Decode].
func (d *Decoder) Restore(g host.Graph, doc *schema.Document) (*Report, error) {
	return d.run(g, doc, true)
}

func (d *Decoder) run(g host.Graph, doc *schema.Document, keepGUIDs bool) (*Report, error) {
	start := time.Now()
	report, err := d.decode(g, doc, keepGUIDs)

	name := ""
	if !isNil(g) {
		name = g.Name()
	}
	if err != nil {
		d.logger.Error("decode failed", "graph", name, "err", err)
		observability.Codec().OnDecode(name, observability.DecodeStats{}, time.Since(start), err)
		return nil, err
	}
	d.logger.Info("decoded graph", "graph", name, "result", report.String())
	observability.Codec().OnDecode(name, report.stats(), time.Since(start), nil)
	return report, nil
}

func (d *Decoder) decode(g host.Graph, doc *schema.Document, keepGUIDs bool) (*Report, error) {
	if isNil(g) {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no target graph")
	}
	if d.registry == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no type registry")
	}
	if doc == nil {
		return nil, errors.New(errors.ErrCodeInvalidDocument, "no document")
	}
	if err := schema.Migrate(doc); err != nil {
		return nil, err
	}
	if err := schema.Validate(doc); err != nil {
		return nil, err
	}

	s := &session{
		graph:     g,
		keepGUIDs: keepGUIDs,
		byID:   make(map[string]host.Node, len(doc.Graph.Nodes)),
		report: &Report{},
		logger: d.logger,
	}
	for i := range doc.Graph.Nodes {
		d.decodeNode(s, &doc.Graph.Nodes[i])
	}
	for i := range doc.Graph.Connections {
		d.decodeConnection(s, &doc.Graph.Connections[i])
	}

	if s.report.NodesCreated > 0 || s.report.ConnectionsMade > 0 {
		if m, ok := g.(host.Modifiable); ok {
			m.MarkModified()
		}
	}
	return s.report, nil
}

func (d *Decoder) decodeNode(s *session, rec *schema.NodeRecord) {
	kind, ok := d.registry.Kind(rec.Type)
	if !ok {
		s.report.NodesSkipped++
		s.issue(rec.ID, "unknown node type %q", rec.Type)
		return
	}
	n, err := s.spawn(kind, rec.ID)
	if err != nil {
		s.report.NodesSkipped++
		s.issue(rec.ID, "create %s: %v", rec.Type, err)
		return
	}

	// Kinds whose pins depend on a bound symbol must be configured first.
	if rec.HasIdentity() {
		d.bind(s, n, rec)
	}
	if err := n.AllocateDefaultPins(); err != nil {
		s.issue(rec.ID, "allocate pins: %v", err)
	}

	restoreDefaults(s, n, rec)

	if rec.Position != nil {
		pos := host.Vec2{X: rec.Position.X, Y: rec.Position.Y}
		found, err := setPositionOf(n, pos)
		switch {
		case err != nil:
			s.issue(rec.ID, "set position: %v", err)
		case !found:
			s.logger.Debug("node has no position field", "node", rec.ID, "type", rec.Type)
		}
	}

	if _, dup := s.byID[rec.ID]; dup {
		s.issue(rec.ID, "duplicate node id; connections resolve to the first node")
	} else {
		s.byID[rec.ID] = n
	}
	s.report.NodesCreated++
	s.logger.Debug("created node", "id", rec.ID, "type", rec.Type, "title", n.Title(), "pins", len(n.Pins()))
}

// spawn creates a node of kind, under the GUID id when the session keeps
// persistent ids and the graph accepts it.
func (s *session) spawn(kind host.Kind, id string) (host.Node, error) {
	if s.keepGUIDs {
		if gs, ok := s.graph.(host.GUIDSpawner); ok {
			if guid, err := uuid.Parse(id); err == nil && guid != uuid.Nil {
				n, err := gs.SpawnNodeWithGUID(kind, guid)
				if err == nil {
					return n, nil
				}
				s.logger.Debug("persistent id not kept", "id", id, "err", err)
			}
		}
	}
	return s.graph.SpawnNode(kind)
}

// bind resolves the record's identity fields and attaches them to n.
func (d *Decoder) bind(s *session, n host.Node, rec *schema.NodeRecord) {
	idn, ok := n.(host.Identified)
	if !ok {
		s.logger.Debug("node kind carries no identity", "node", rec.ID, "type", rec.Type)
		return
	}

	var b host.Binding
	switch {
	case rec.FunctionName != "":
		fn, ok := d.lookupFunction(rec.FunctionName)
		if !ok {
			s.issue(rec.ID, "function %q not found", rec.FunctionName)
			return
		}
		b.Function = fn
	case rec.VariableName != "":
		v, ok := d.lookupVariable(rec.VariableName)
		if !ok {
			s.issue(rec.ID, "variable %q not found", rec.VariableName)
			return
		}
		b.Variable = v
	case rec.IsCustomEvent && rec.EventName != "":
		b.CustomEventName = rec.EventName
	case rec.EventName != "":
		ev, ok := d.lookupEvent(rec.EventName, rec.EventClassPath)
		if !ok {
			s.issue(rec.ID, "event %q not found", rec.EventName)
			return
		}
		b.Event = ev
	default:
		return
	}

	if err := idn.Bind(b); err != nil {
		s.issue(rec.ID, "bind: %v", err)
	}
}

func (d *Decoder) lookupFunction(name string) (*host.Function, bool) {
	if d.library == nil {
		return nil, false
	}
	return d.library.Function(name)
}

func (d *Decoder) lookupVariable(name string) (*host.Variable, bool) {
	if d.library == nil {
		return nil, false
	}
	return d.library.Variable(name)
}

// lookupEvent tries the owning class first and falls back to a search of
// every class by event name.
func (d *Decoder) lookupEvent(name, classPath string) (*host.Event, bool) {
	if d.library == nil {
		return nil, false
	}
	if classPath != "" {
		if ev, ok := d.library.Event(name, classPath); ok {
			return ev, true
		}
	}
	return d.library.FindEvent(name)
}

// restoreDefaults copies default values onto pins with the same name. Pin
// records without a matching pin are ignored.
func restoreDefaults(s *session, n host.Node, rec *schema.NodeRecord) {
	if len(rec.Pins) == 0 {
		return
	}
	defaults := make(map[string]string, len(rec.Pins))
	for _, p := range rec.Pins {
		if p.DefaultValue != "" {
			defaults[p.Name] = p.DefaultValue
		}
	}
	for _, p := range n.Pins() {
		v, ok := defaults[p.Name()]
		if !ok || v == p.DefaultValue() {
			continue
		}
		if err := p.SetDefaultValue(v); err != nil {
			s.issue(rec.ID, "pin %s default: %v", p.Name(), err)
		}
	}
}

func (d *Decoder) decodeConnection(s *session, c *schema.ConnectionRecord) {
	s.report.ConnectionsAttempted++
	subject := fmt.Sprintf("%s.%s -> %s.%s", c.From.NodeID, c.From.PinName, c.To.NodeID, c.To.PinName)

	from, ok := s.resolvePin(c.From)
	if !ok {
		s.issue(subject, "cannot resolve %s.%s", c.From.NodeID, c.From.PinName)
		return
	}
	to, ok := s.resolvePin(c.To)
	if !ok {
		s.issue(subject, "cannot resolve %s.%s", c.To.NodeID, c.To.PinName)
		return
	}

	if linked(from, to) {
		s.report.ConnectionsMade++
		s.logger.Debug("already linked", "connection", subject)
		return
	}
	if err := from.MakeLinkTo(to); err != nil {
		s.issue(subject, "link: %v", err)
		return
	}
	s.report.ConnectionsMade++
	s.logger.Debug("linked", "connection", subject)
}

func (s *session) resolvePin(ep *schema.Endpoint) (host.Pin, bool) {
	n, ok := s.resolveNode(ep.NodeID)
	if !ok {
		return nil, false
	}
	for _, p := range n.Pins() {
		if p.Name() == ep.PinName {
			return p, true
		}
	}
	return nil, false
}

// resolveNode looks up nodes created in this call first, then nodes of the
// target graph by GUID.
func (s *session) resolveNode(id string) (host.Node, bool) {
	if n, ok := s.byID[id]; ok {
		return n, true
	}
	guid, err := uuid.Parse(id)
	if err != nil || guid == uuid.Nil {
		return nil, false
	}
	if s.byGUID == nil {
		s.byGUID = make(map[uuid.UUID]host.Node)
		for _, n := range s.graph.Nodes() {
			if g := n.GUID(); g != uuid.Nil {
				if _, dup := s.byGUID[g]; !dup {
					s.byGUID[g] = n
				}
			}
		}
	}
	n, ok := s.byGUID[guid]
	return n, ok
}

func linked(a, b host.Pin) bool {
	for _, p := range a.LinkedTo() {
		if p == b {
			return true
		}
	}
	return false
}

// Paste decodes doc into g inside one undoable transaction when g supports
// transactions, labelled [PasteDescription]. The transaction is rolled back
// if the decode fails, and committed otherwise, even when the report lists
// skipped nodes or connections.
func (d *Decoder) Paste(g host.Graph, doc *schema.Document) (*Report, error) {
	tx, ok := g.(host.Transactor)
	if !ok || isNil(g) {
		return d.Decode(g, doc)
	}
	t := tx.Begin(PasteDescription)
	report, err := d.Decode(g, doc)
	if err != nil {
		t.Rollback()
		return nil, err
	}
	t.Commit()
	return report, nil
}
