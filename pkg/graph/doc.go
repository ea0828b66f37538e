// Package graph defines the in-memory directed multigraph model shared by the
// conversion pipeline.
//
// A [DiGraph] holds attributed nodes and directed edges in insertion order.
// Parallel edges and self-loops are allowed, matching what Graphviz DOT can
// express. The model is deliberately minimal: dotviz never runs graph
// algorithms on it, it only converts between representations.
package graph
