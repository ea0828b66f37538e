package nodelink

import (
	"bytes"
	"encoding/json"
	"slices"

	"github.com/mlorenz/dotviz/pkg/errors"
	"github.com/mlorenz/dotviz/pkg/graph"
)

// Reserved keys that carry structural meaning in the node-link format.
// Attributes with these names are dropped during projection; the structural
// value wins.
const (
	keyID     = "id"
	keySource = "source"
	keyTarget = "target"
)

// Data is the node-link representation of a directed multigraph.
//
// The JSON field order matches the established node-link shape:
// directed, multigraph, graph, nodes, links.
type Data struct {
	Directed   bool             `json:"directed"`
	Multigraph bool             `json:"multigraph"`
	Graph      graph.Attributes `json:"graph"`
	Nodes      []Node           `json:"nodes"`
	Links      []Link           `json:"links"`
}

// Node is a node record: the original identifier plus its attributes.
type Node struct {
	ID    string
	Attrs graph.Attributes
}

// Link is a link record. Source and Target are integer indices into the node
// sequence of the same Data value.
type Link struct {
	Source int
	Target int
	Attrs  graph.Attributes
}

// FromGraph projects a directed multigraph into node-link form.
//
// Nodes keep the graph's insertion order, so link indices are stable for a
// given input. Every link's Source and Target are valid offsets into Nodes by
// construction; a dangling edge reference indicates a corrupted graph and
// surfaces as an internal error.
func FromGraph(g *graph.DiGraph) (Data, error) {
	nodes := g.Nodes()
	edges := g.Edges()

	d := Data{
		Directed:   true,
		Multigraph: true,
		Graph:      g.Attrs().Clone(),
		Nodes:      make([]Node, 0, len(nodes)),
		Links:      make([]Link, 0, len(edges)),
	}

	// The DOT graph ID travels in the graph attribute map, like any other
	// graph-level attribute. An explicit name attribute wins.
	if name := g.Name(); name != "" {
		if _, ok := d.Graph["name"]; !ok {
			d.Graph["name"] = name
		}
	}

	index := make(map[string]int, len(nodes))
	for i, n := range nodes {
		index[n.ID] = i
		d.Nodes = append(d.Nodes, Node{ID: n.ID, Attrs: n.Attrs.Clone()})
	}

	for _, e := range edges {
		s, ok := index[e.From]
		if !ok {
			return Data{}, errors.New(errors.ErrCodeInternal, "edge references unknown node %q", e.From)
		}
		t, ok := index[e.To]
		if !ok {
			return Data{}, errors.New(errors.ErrCodeInternal, "edge references unknown node %q", e.To)
		}
		d.Links = append(d.Links, Link{Source: s, Target: t, Attrs: e.Attrs.Clone()})
	}

	return d, nil
}

// MarshalJSON writes the node record with "id" first and the remaining
// attribute keys sorted, for deterministic output.
func (n Node) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"id":`)
	if err := writeValue(&buf, n.ID); err != nil {
		return nil, err
	}
	if err := writeAttrs(&buf, n.Attrs, keyID); err != nil {
		return nil, err
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalJSON writes the link record with "source" and "target" first and the
// remaining attribute keys sorted.
func (l Link) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"source":`)
	if err := writeValue(&buf, l.Source); err != nil {
		return nil, err
	}
	buf.WriteString(`,"target":`)
	if err := writeValue(&buf, l.Target); err != nil {
		return nil, err
	}
	if err := writeAttrs(&buf, l.Attrs, keySource, keyTarget); err != nil {
		return nil, err
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func writeAttrs(buf *bytes.Buffer, attrs graph.Attributes, reserved ...string) error {
	for _, k := range attrs.Keys() {
		if slices.Contains(reserved, k) {
			continue
		}
		buf.WriteByte(',')
		if err := writeValue(buf, k); err != nil {
			return err
		}
		buf.WriteByte(':')
		if err := writeValue(buf, attrs[k]); err != nil {
			return err
		}
	}
	return nil
}

func writeValue(buf *bytes.Buffer, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	buf.Write(b)
	return nil
}
