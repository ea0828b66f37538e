package dot

import (
	"maps"
	"os"

	gonumgraph "gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/encoding"
	gonumdot "gonum.org/v1/gonum/graph/encoding/dot"
	"gonum.org/v1/gonum/graph/multi"

	"github.com/mlorenz/dotviz/pkg/errors"
	"github.com/mlorenz/dotviz/pkg/graph"
)

// ParseFile reads and parses a DOT file into a directed multigraph.
//
// Returns an error with code [errors.ErrCodeFileNotFound] if the file cannot
// be read, or [errors.ErrCodeParse] if the content is not valid DOT.
func ParseFile(path string) (*graph.DiGraph, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "read %s", path)
	}
	return Parse(data)
}

// Parse parses DOT source into a directed multigraph.
//
// Parsing is delegated to gonum's DOT decoder. Nodes appear in order of first
// occurrence in the source; edges in source order. Parallel edges and
// self-loops are preserved. `node [...]` and `edge [...]` default statements
// apply to nodes and edges declared after them, with explicit attributes
// taking precedence.
func Parse(data []byte) (*graph.DiGraph, error) {
	b := newBuilder()
	if err := gonumdot.UnmarshalMulti(data, b); err != nil {
		return nil, errors.Wrap(errors.ErrCodeParse, err, "parse DOT")
	}
	return b.graph()
}

// =============================================================================
// gonum decode target
// =============================================================================

// builder is the decode target handed to gonum's DOT unmarshaler. It wraps a
// multi.DirectedGraph so the decoder accepts parallel edges and self-loops,
// and records nodes and lines in insertion order with their DOT identity and
// attributes.
type builder struct {
	*multi.DirectedGraph

	id           string
	graphAttrs   attributes
	nodeDefaults attributes
	edgeDefaults attributes

	nodes []*dotNode
	lines []*dotLine
}

func newBuilder() *builder {
	return &builder{
		DirectedGraph: multi.NewDirectedGraph(),
		graphAttrs:    attributes{},
		nodeDefaults:  attributes{},
		edgeDefaults:  attributes{},
	}
}

// SetDOTID records the graph ID from the DOT source.
func (b *builder) SetDOTID(id string) { b.id = id }

// DOTAttributeSetters exposes setters for graph, node, and edge default
// attribute statements.
func (b *builder) DOTAttributeSetters() (g, n, e encoding.AttributeSetter) {
	return b.graphAttrs, b.nodeDefaults, b.edgeDefaults
}

// NewNode returns a node that captures its DOT ID and attributes. The node
// defaults in effect at this point are snapshotted: a `node [...]` statement
// only applies to nodes declared after it.
func (b *builder) NewNode() gonumgraph.Node {
	return &dotNode{
		Node:     b.DirectedGraph.NewNode(),
		defaults: b.nodeDefaults.clone(),
		attrs:    attributes{},
	}
}

// AddNode adds the node and records insertion order.
func (b *builder) AddNode(n gonumgraph.Node) {
	b.DirectedGraph.AddNode(n)
	if dn, ok := n.(*dotNode); ok {
		b.nodes = append(b.nodes, dn)
	}
}

// NewLine returns a line that captures edge attributes, snapshotting the
// edge defaults in effect at its position in the source.
func (b *builder) NewLine(from, to gonumgraph.Node) gonumgraph.Line {
	return &dotLine{
		Line:     b.DirectedGraph.NewLine(from, to),
		defaults: b.edgeDefaults.clone(),
		attrs:    attributes{},
	}
}

// SetLine adds the line and records insertion order.
func (b *builder) SetLine(l gonumgraph.Line) {
	b.DirectedGraph.SetLine(l)
	if dl, ok := l.(*dotLine); ok {
		b.lines = append(b.lines, dl)
	}
}

// graph converts the decoded structure into the pipeline's graph model.
func (b *builder) graph() (*graph.DiGraph, error) {
	g := graph.New(b.id)
	maps.Copy(g.Attrs(), b.graphAttrs)

	for _, n := range b.nodes {
		if err := g.AddNode(graph.Node{ID: n.dotID, Attrs: merge(n.defaults, n.attrs)}); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "add node")
		}
	}

	for _, l := range b.lines {
		from, fok := l.From().(*dotNode)
		to, tok := l.To().(*dotNode)
		if !fok || !tok {
			return nil, errors.New(errors.ErrCodeInternal, "line endpoint is not a DOT node")
		}
		e := graph.Edge{From: from.dotID, To: to.dotID, Attrs: merge(l.defaults, l.attrs)}
		if err := g.AddEdge(e); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInternal, err, "add edge")
		}
	}

	return g, nil
}

// dotNode wraps a gonum node with its DOT ID, the node defaults in effect at
// its declaration, and its explicit attributes.
type dotNode struct {
	gonumgraph.Node
	dotID    string
	defaults attributes
	attrs    attributes
}

func (n *dotNode) SetDOTID(id string) { n.dotID = id }

func (n *dotNode) SetAttribute(attr encoding.Attribute) error {
	n.attrs[attr.Key] = attr.Value
	return nil
}

// dotLine wraps a gonum line with the edge defaults in effect at its position
// and its explicit attributes.
type dotLine struct {
	gonumgraph.Line
	defaults attributes
	attrs    attributes
}

func (l *dotLine) SetAttribute(attr encoding.Attribute) error {
	l.attrs[attr.Key] = attr.Value
	return nil
}

// SetFromPort accepts and discards port declarations; ports only affect
// Graphviz edge routing, which the force layout ignores.
func (l *dotLine) SetFromPort(port, compass string) error { return nil }

// SetToPort accepts and discards port declarations.
func (l *dotLine) SetToPort(port, compass string) error { return nil }

// attributes is a map-backed encoding.AttributeSetter.
type attributes map[string]string

func (a attributes) SetAttribute(attr encoding.Attribute) error {
	a[attr.Key] = attr.Value
	return nil
}

func (a attributes) clone() attributes {
	out := make(attributes, len(a))
	maps.Copy(out, a)
	return out
}

// merge combines default attributes with explicit ones; explicit wins.
func merge(defaults, explicit attributes) graph.Attributes {
	out := make(graph.Attributes, len(defaults)+len(explicit))
	for k, v := range defaults {
		out[k] = v
	}
	for k, v := range explicit {
		out[k] = v
	}
	return out
}

// Interface assertions for the gonum decoder contract.
var (
	_ encoding.MultiBuilder     = (*builder)(nil)
	_ gonumdot.DOTIDSetter      = (*builder)(nil)
	_ gonumdot.AttributeSetters = (*builder)(nil)
	_ gonumdot.DOTIDSetter      = (*dotNode)(nil)
	_ encoding.AttributeSetter  = (*dotNode)(nil)
	_ encoding.AttributeSetter  = (*dotLine)(nil)
	_ gonumdot.PortSetter       = (*dotLine)(nil)
	_ encoding.AttributeSetter  = attributes(nil)
)
