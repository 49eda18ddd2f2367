// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package engine

import (
	"github.com/gviegas/globe/linear"
	"github.com/gviegas/globe/node"
)

const scenePrefix = "scene: "

// Scene is a container of drawables.
type Scene struct {
	// Euler rotation (XYZ order, radians) applied to
	// every drawable of the scene.
	Rotation linear.V3

	graph     node.Graph
	drawables []*Drawable
	root      linear.M4
	rootRot   linear.V3
	rootValid bool
}

// NewScene creates an empty scene.
func NewScene() *Scene { return &Scene{} }

// Add adds d to s.
// A drawable can belong to a single scene.
func (s *Scene) Add(d *Drawable) error {
	if d == nil {
		return newErr(scenePrefix, "nil Drawable")
	}
	if d.node != node.Nil {
		return newErr(scenePrefix, "Drawable already added")
	}
	d.node = s.graph.Insert(d, node.Nil)
	s.drawables = append(s.drawables, d)
	return nil
}

// Len returns the number of drawables in s.
func (s *Scene) Len() int { return len(s.drawables) }

// Drawables returns the drawables of s in the order they
// were added.
func (s *Scene) Drawables() []*Drawable { return s.drawables }

// World returns the world transform of d as computed by
// the last call to Update.
func (s *Scene) World(d *Drawable) *linear.M4 { return s.graph.World(d.node) }

// Update recomputes the world transforms of the drawables.
// The renderer calls it at the start of every frame.
func (s *Scene) Update() {
	changed := !s.rootValid || s.rootRot != s.Rotation
	if changed {
		var q linear.Q
		q.Euler(&s.Rotation)
		s.root.Rotate(&q)
		s.rootRot = s.Rotation
		s.rootValid = true
	}
	s.graph.Update(&s.root, changed)
}
