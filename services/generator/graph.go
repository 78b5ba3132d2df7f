// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package generator

// PathWidth is the number of predecessor nodes feeding each node.
const PathWidth = 3

// Graph owns an ordered collection of nodes and the per-node predecessor
// index lists ("paths") that wire them together. It drives one generation
// step at a time: update every node sequentially, then evolve the paths.
//
// Graph exclusively owns its nodes and paths; callers only ever see state
// values by copy.
type Graph struct {
	nodes  []*Node
	paths  [][]int
	states []uint64 // per-step scratch, reused across steps
}

// NewGraph creates a graph of nodeCount nodes. Node i is seeded with
// seed+i (wrapping) and initially wired to its three cyclic successors:
// paths[i] = [(i+1)%N, (i+2)%N, (i+3)%N].
func NewGraph(nodeCount int, seed uint64, series SeriesEngine) (*Graph, error) {
	if nodeCount < 1 {
		return nil, ErrNoNodes
	}

	nodes := make([]*Node, nodeCount)
	paths := make([][]int, nodeCount)
	for i := range nodes {
		nodes[i] = NewNode(seed+uint64(i), series)
		paths[i] = make([]int, PathWidth)
		for j := 0; j < PathWidth; j++ {
			paths[i][j] = (i + j + 1) % nodeCount
		}
	}

	return &Graph{
		nodes:  nodes,
		paths:  paths,
		states: make([]uint64, nodeCount),
	}, nil
}

// Len returns the number of nodes.
func (g *Graph) Len() int {
	return len(g.nodes)
}

// Paths returns a copy of the current predecessor index lists.
func (g *Graph) Paths() [][]int {
	out := make([][]int, len(g.paths))
	for i, p := range g.paths {
		out[i] = append([]int(nil), p...)
	}
	return out
}

// Step runs one generation: every node is updated once, strictly in index
// order, then the paths evolve. The returned slice of new node states is
// owned by the graph and valid until the next Step.
//
// Predecessor states are read at the moment each node is processed. When a
// predecessor index is lower than the node's own, the predecessor has
// already been updated this step, so its NEW state is observed; higher
// indexes contribute the previous generation's state. This same-step
// visibility is a correctness invariant of the output stream: updating
// nodes from a snapshot, or in parallel, produces a different and
// incompatible sequence.
func (g *Graph) Step() []uint64 {
	for i, node := range g.nodes {
		p := g.paths[i]
		preds := [PathWidth]uint64{
			g.nodes[p[0]].state,
			g.nodes[p[1]].state,
			g.nodes[p[2]].state,
		}
		g.states[i] = node.Update(preds[:])
	}
	g.evolvePaths()
	return g.states
}

// evolvePaths shifts every predecessor index by the owning node's low
// three state bits, modulo the node count. Runs after all nodes have
// updated, so each node steers with its freshly-computed state.
func (g *Graph) evolvePaths() {
	n := len(g.nodes)
	for i, node := range g.nodes {
		hop := int(node.state & 0x7)
		for j, idx := range g.paths[i] {
			g.paths[i][j] = (idx + hop) % n
		}
	}
}

// Aggregate folds one generation's node states into the step output by
// XOR, in node-index order.
func Aggregate(states []uint64) uint64 {
	var out uint64
	for _, s := range states {
		out ^= s
	}
	return out
}
