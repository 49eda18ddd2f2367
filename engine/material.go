// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package engine

import (
	"math"

	"github.com/gogpu/gputypes"

	"github.com/gviegas/globe/internal/bitvec"
	"github.com/gviegas/globe/internal/logger"
	"github.com/gviegas/globe/linear"
	"github.com/gviegas/globe/shader"
)

const matPrefix = "material: "

func newMatErr(reason string) error { return newErr(matPrefix, reason) }

// Material defines how a Drawable is shaded.
// It is implemented by *PointsMaterial and
// *BasicMaterial.
type Material interface {
	// Topology returns the primitive topology that
	// the material draws.
	Topology() gputypes.PrimitiveTopology

	// Module returns the name of the shader module
	// that implements the material.
	Module() string

	// Transparent reports whether the material is
	// blended with what is behind it.
	Transparent() bool
}

// PointsParam describes a PointsMaterial.
type PointsParam struct {
	// Texture whose color magnitude decides which
	// points are visible.
	Visibility TexRef
	// Texture whose alpha shapes each point.
	Shape TexRef
	// World-space point size.
	Size float32
	// Distance scale. The on-screen size of a point is
	// Size * Scale / distance to the camera.
	Scale float32
	// Horizontal offset added to the visibility UVs.
	Shift float32
	// Magnitude that separates kept from discarded
	// points.
	Threshold float32
	// Side of Threshold that is discarded.
	// It cannot be changed afterwards.
	Direction shader.Direction
}

func (p *PointsParam) validate() error {
	if err := p.Visibility.validate(); err != nil {
		return err
	}
	if err := p.Shape.validate(); err != nil {
		return err
	}
	switch {
	case !(p.Size > 0) || math.IsInf(float64(p.Size), 0):
		return newMatErr("PointsParam.Size must be positive")
	case p.Scale < 0 || math.IsInf(float64(p.Scale), 0):
		return newMatErr("PointsParam.Scale must be non-negative")
	case !p.Direction.Valid():
		return newMatErr("undefined direction constant")
	}
	return nil
}

// PointsMaterial draws each vertex as a sprite masked by
// a visibility texture.
type PointsMaterial struct {
	visibility TexRef
	shape      TexRef
	dir        shader.Direction
	layout     shader.PointsLayout

	// Visibility of each vertex of maskGeom.
	// Points do not interpolate their UVs, so the
	// visibility test depends on the vertex only.
	mask      bitvec.V[uint64]
	maskGeom  *Geometry
	maskShift float32
}

// NewPoints creates a new PointsMaterial.
func NewPoints(param *PointsParam) (*PointsMaterial, error) {
	if param == nil {
		return nil, newMatErr("nil PointsParam")
	}
	if err := param.validate(); err != nil {
		return nil, err
	}
	m := &PointsMaterial{
		visibility: param.Visibility,
		shape:      param.Shape,
		dir:        param.Direction,
	}
	m.layout.SetSize(param.Size)
	m.layout.SetScale(param.Scale)
	m.layout.SetShift(param.Shift)
	m.layout.SetThreshold(param.Threshold, param.Direction)
	return m, nil
}

// Topology implements Material.
func (*PointsMaterial) Topology() gputypes.PrimitiveTopology {
	return gputypes.PrimitiveTopologyPointList
}

// Module implements Material.
func (*PointsMaterial) Module() string { return shader.Points }

// Transparent implements Material.
func (*PointsMaterial) Transparent() bool { return true }

// Size returns the point size.
func (m *PointsMaterial) Size() float32 { return m.layout.Size() }

// Scale returns the distance scale.
func (m *PointsMaterial) Scale() float32 { return m.layout.Scale() }

// SetScale sets the distance scale.
func (m *PointsMaterial) SetScale(s float32) { m.layout.SetScale(s) }

// Shift returns the horizontal UV shift.
func (m *PointsMaterial) Shift() float32 { return m.layout.Shift() }

// SetShift sets the horizontal UV shift.
func (m *PointsMaterial) SetShift(s float32) { m.layout.SetShift(s) }

// Threshold returns the discard threshold.
func (m *PointsMaterial) Threshold() float32 { return m.layout.Threshold() }

// Direction returns the discard direction.
func (m *PointsMaterial) Direction() shader.Direction { return m.dir }

// Layout returns the uniform data of m.
func (m *PointsMaterial) Layout() *shader.PointsLayout { return &m.layout }

// Discards reports whether a point whose vertex has the
// given UVs is discarded by the visibility test.
func (m *PointsMaterial) Discards(uv [2]float32) bool {
	uv[0] += m.layout.Shift()
	v := m.visibility.Sample(uv)
	rgb := v.XYZ()
	return m.dir.Discard(rgb.Len(), m.layout.Threshold())
}

// shapeFragment evaluates the rest of the fragment
// stage for a point of the given color at the given
// point coordinate. ok is false if the fragment is
// discarded.
func (m *PointsMaterial) shapeFragment(color *linear.V3, coord [2]float32) (c linear.V4, ok bool) {
	s := m.shape.Sample(coord)
	if s[3] < 0.5 {
		return
	}
	c = linear.V4{color[0] * s[0], color[1] * s[1], color[2] * s[2], s[3]}
	return c, true
}

// visible returns the per-vertex visibility of g,
// recomputing it if g or the shift have changed.
func (m *PointsMaterial) visible(g *Geometry) *bitvec.V[uint64] {
	if m.maskGeom == g && m.maskShift == m.layout.Shift() {
		return &m.mask
	}
	m.mask.Fit(g.VertexCount())
	m.mask.Clear()
	for i := range g.uvs {
		if !m.Discards(g.uvs[i]) {
			m.mask.Set(i)
		}
	}
	m.maskGeom = g
	m.maskShift = m.layout.Shift()
	logger.Get().Debug("point mask built",
		"direction", m.dir, "vertices", g.VertexCount(), "visible", m.mask.Count())
	return &m.mask
}

// BasicMaterial shades geometry with a flat color.
type BasicMaterial struct {
	layout shader.BasicLayout
}

// NewBasic creates a new BasicMaterial.
func NewBasic(color linear.V4) (*BasicMaterial, error) {
	for _, x := range color {
		if x < 0 || x > 1 {
			return nil, newMatErr("color outside [0.0, 1.0] interval")
		}
	}
	m := &BasicMaterial{}
	m.layout.SetColor(&color)
	return m, nil
}

// Topology implements Material.
func (*BasicMaterial) Topology() gputypes.PrimitiveTopology {
	return gputypes.PrimitiveTopologyTriangleList
}

// Module implements Material.
func (*BasicMaterial) Module() string { return shader.Basic }

// Transparent implements Material.
func (*BasicMaterial) Transparent() bool { return false }

// Color returns the color of m.
func (m *BasicMaterial) Color() linear.V4 { return m.layout.Color() }

// Layout returns the uniform data of m.
func (m *BasicMaterial) Layout() *shader.BasicLayout { return &m.layout }
