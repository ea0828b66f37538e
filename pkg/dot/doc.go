// Package dot adapts gonum's DOT decoder to the dotviz graph model.
//
// The package owns no parsing logic of its own: syntax and attribute handling
// belong to gonum.org/v1/gonum/graph/encoding/dot. What it adds is insertion
// order. The gonum multigraph identifies nodes by int64 and iterates in
// unspecified order, while the node-link projection needs nodes in order of
// first appearance, so the decode target records that order as the decoder
// calls back into it.
package dot
