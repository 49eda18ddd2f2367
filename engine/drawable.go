// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package engine

import (
	"github.com/gviegas/globe/linear"
	"github.com/gviegas/globe/node"
)

// Drawable is an object that a Scene renders.
// It implements node.Interface.
type Drawable struct {
	geom    *Geometry
	mat     Material
	scale   float32
	local   linear.M4
	changed bool
	node    node.Node

	// Name for the drawable.
	// It is not used by engine code.
	Name string
}

func newDrawable(geom *Geometry, mat Material) *Drawable {
	d := &Drawable{geom: geom, mat: mat}
	d.SetScale(1)
	return d
}

// NewPointCloud creates a drawable that renders every
// vertex of geom as a point sprite.
func NewPointCloud(geom *Geometry, mat *PointsMaterial) (*Drawable, error) {
	if geom == nil || mat == nil {
		return nil, newErr(geomPrefix, "nil argument in call to NewPointCloud")
	}
	return newDrawable(geom, mat), nil
}

// NewMesh creates a drawable that renders the triangles
// of geom.
func NewMesh(geom *Geometry, mat *BasicMaterial) (*Drawable, error) {
	if geom == nil || mat == nil {
		return nil, newErr(geomPrefix, "nil argument in call to NewMesh")
	}
	if geom.IndexCount() == 0 {
		return nil, newErr(geomPrefix, "mesh has no triangles")
	}
	return newDrawable(geom, mat), nil
}

// Geometry returns the geometry of d.
func (d *Drawable) Geometry() *Geometry { return d.geom }

// Material returns the material of d.
func (d *Drawable) Material() Material { return d.mat }

// Scale returns the uniform scale of d.
func (d *Drawable) Scale() float32 { return d.scale }

// SetScale sets the uniform scale of d.
func (d *Drawable) SetScale(s float32) {
	d.scale = s
	d.local.Scale(s, s, s)
	d.changed = true
}

// Local implements node.Interface.
func (d *Drawable) Local() *linear.M4 { return &d.local }

// Changed implements node.Interface.
func (d *Drawable) Changed() (b bool) {
	b, d.changed = d.changed, false
	return
}
