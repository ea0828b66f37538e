package graph

import (
	"fmt"
	"maps"
	"slices"
)

// =============================================================================
// Attributes
// =============================================================================

// Attributes holds string key/value attributes as found in DOT source.
// Graphviz attribute values are always strings; richer typing is left to
// consumers of the JSON output.
type Attributes map[string]string

// Clone returns a shallow copy of the attribute map.
// Returns an empty non-nil map when a is nil so callers can mutate the result.
func (a Attributes) Clone() Attributes {
	out := make(Attributes, len(a))
	maps.Copy(out, a)
	return out
}

// Keys returns the attribute keys in sorted order for deterministic output.
func (a Attributes) Keys() []string {
	return slices.Sorted(maps.Keys(a))
}

// =============================================================================
// Node and Edge
// =============================================================================

// Node is a graph node: an identifier plus its DOT attributes.
type Node struct {
	ID    string
	Attrs Attributes
}

// Edge is a directed edge with its DOT attributes. Parallel edges between the
// same pair of nodes are allowed, as are self-loops.
type Edge struct {
	From  string
	To    string
	Attrs Attributes
}

// =============================================================================
// DiGraph - Directed Multigraph
// =============================================================================

// DiGraph is a directed multigraph with attributed nodes and edges.
//
// Nodes and edges are kept in insertion order, which for parsed DOT input is
// the order of first appearance in the source. The zero value is not usable;
// create instances with [New].
type DiGraph struct {
	name  string
	attrs Attributes
	nodes []*Node
	index map[string]int // node ID -> position in nodes
	edges []*Edge
}

// New creates an empty directed multigraph with the given name.
// The name may be empty; for parsed DOT input it is the graph ID.
func New(name string) *DiGraph {
	return &DiGraph{
		name:  name,
		attrs: Attributes{},
		index: map[string]int{},
	}
}

// Name returns the graph name (the DOT graph ID, possibly empty).
func (g *DiGraph) Name() string { return g.name }

// SetName sets the graph name.
func (g *DiGraph) SetName(name string) { g.name = name }

// Attrs returns the graph-level attributes. The returned map is live;
// mutations are visible to the graph.
func (g *DiGraph) Attrs() Attributes { return g.attrs }

// SetAttr sets a graph-level attribute.
func (g *DiGraph) SetAttr(key, value string) { g.attrs[key] = value }

// AddNode adds a node to the graph.
// Returns an error if a node with the same ID already exists.
func (g *DiGraph) AddNode(n Node) error {
	if _, ok := g.index[n.ID]; ok {
		return fmt.Errorf("node %q already exists", n.ID)
	}
	if n.Attrs == nil {
		n.Attrs = Attributes{}
	}
	g.index[n.ID] = len(g.nodes)
	g.nodes = append(g.nodes, &n)
	return nil
}

// AddEdge adds a directed edge to the graph.
// Both endpoints must already exist. Duplicate edges are allowed and kept as
// distinct entries (multigraph semantics).
func (g *DiGraph) AddEdge(e Edge) error {
	if _, ok := g.index[e.From]; !ok {
		return fmt.Errorf("edge %s->%s: unknown source node", e.From, e.To)
	}
	if _, ok := g.index[e.To]; !ok {
		return fmt.Errorf("edge %s->%s: unknown target node", e.From, e.To)
	}
	if e.Attrs == nil {
		e.Attrs = Attributes{}
	}
	g.edges = append(g.edges, &e)
	return nil
}

// Node returns the node with the given ID.
func (g *DiGraph) Node(id string) (*Node, bool) {
	i, ok := g.index[id]
	if !ok {
		return nil, false
	}
	return g.nodes[i], true
}

// HasNode reports whether a node with the given ID exists.
func (g *DiGraph) HasNode(id string) bool {
	_, ok := g.index[id]
	return ok
}

// Index returns the insertion position of the node with the given ID.
// Returns -1 if the node does not exist.
func (g *DiGraph) Index(id string) int {
	i, ok := g.index[id]
	if !ok {
		return -1
	}
	return i
}

// Nodes returns the nodes in insertion order.
// The slice is a copy but the node pointers are shared.
func (g *DiGraph) Nodes() []*Node {
	return slices.Clone(g.nodes)
}

// Edges returns the edges in insertion order.
// The slice is a copy but the edge pointers are shared.
func (g *DiGraph) Edges() []*Edge {
	return slices.Clone(g.edges)
}

// NodeCount returns the number of nodes.
func (g *DiGraph) NodeCount() int { return len(g.nodes) }

// EdgeCount returns the number of edges, counting parallel edges separately.
func (g *DiGraph) EdgeCount() int { return len(g.edges) }
