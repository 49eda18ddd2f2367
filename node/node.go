// Copyright 2023 Gustavo C. Viegas. All rights reserved.

// Package node implements the scene's graph.
package node

import (
	"github.com/gviegas/globe/internal/bitvec"
	"github.com/gviegas/globe/linear"
)

// Interface of a node.
type Interface interface {
	// Local returns the local transform of the node.
	// It must not return nil.
	Local() *linear.M4

	// Changed returns whether the local transform
	// has changed since the last call to Changed.
	Changed() bool
}

// Node identifies a node in a Graph.
type Node int

// Nil represents an invalid Node.
// As the prev argument of Graph.Insert, it
// identifies the graph's root.
const Nil Node = 0

type node struct {
	next  Node
	prev  Node
	sub   Node
	local Interface
	world linear.M4
	dirty bool
}

// Graph is a node graph.
// The zero value is an empty graph whose root
// has an identity transform.
type Graph struct {
	root    Node
	nodes   []node
	nodeMap bitvec.V[uint32]
}

// Len returns the number of nodes in g.
func (g *Graph) Len() int { return g.nodeMap.Count() }

func (g *Graph) at(n Node) *node { return &g.nodes[n-1] }

// Insert inserts a new node as immediate descendant of
// prev. If prev is Nil, the node is inserted at the top
// of the graph.
// It returns the Node that identifies the new node.
func (g *Graph) Insert(local Interface, prev Node) Node {
	if local == nil {
		panic("node: nil Interface in Insert")
	}
	if prev != Nil && !g.valid(prev) {
		panic("node: invalid prev Node in Insert")
	}
	idx, ok := g.nodeMap.Search()
	if !ok {
		idx = g.nodeMap.Grow(1)
		g.nodes = append(g.nodes, make([]node, g.nodeMap.Len()-len(g.nodes))...)
	}
	g.nodeMap.Set(idx)
	n := Node(idx + 1)
	nd := g.at(n)
	*nd = node{prev: prev, local: local, dirty: true}
	if prev == Nil {
		nd.next = g.root
		if g.root != Nil {
			g.at(g.root).prev = n
		}
		g.root = n
	} else {
		p := g.at(prev)
		nd.next = p.sub
		if p.sub != Nil {
			g.at(p.sub).prev = n
		}
		p.sub = n
	}
	return n
}

func (g *Graph) valid(n Node) bool {
	return n > Nil && int(n) <= len(g.nodes) && g.nodeMap.IsSet(int(n)-1)
}

// World returns the world transform of n, as computed
// by the last call to Update.
func (g *Graph) World(n Node) *linear.M4 {
	if !g.valid(n) {
		return nil
	}
	return &g.at(n).world
}

// Update recomputes the world transforms of every node
// whose local transform, or any ancestor's, has changed.
// root is the transform applied above the top of the
// graph and rootChanged tells whether it differs from
// the one of the previous call.
func (g *Graph) Update(root *linear.M4, rootChanged bool) {
	g.update(g.root, root, rootChanged)
}

func (g *Graph) update(first Node, parent *linear.M4, changed bool) {
	for n := first; n != Nil; {
		nd := g.at(n)
		// Changed must be called on every node
		// so the flag resets.
		ch := nd.local.Changed()
		ch = ch || changed || nd.dirty
		nd.dirty = false
		if ch {
			nd.world.Mul(parent, nd.local.Local())
		}
		g.update(nd.sub, &nd.world, ch)
		n = nd.next
	}
}
