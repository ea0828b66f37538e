// Package nodelink projects a directed multigraph into the node-link shape
// consumed by d3-style force layouts:
//
//	{
//	  "directed": true,
//	  "multigraph": true,
//	  "graph": {...graph attributes...},
//	  "nodes": [{"id": "A", ...attributes...}, ...],
//	  "links": [{"source": 0, "target": 1, ...attributes...}, ...]
//	}
//
// Link source and target are integer indices into the nodes array, valid for
// the projection they were produced in. Existing consumers of this JSON rely
// on the exact shape, so the marshaling here is deterministic: structural keys
// first, attribute keys sorted.
package nodelink
