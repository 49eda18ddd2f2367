// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package engine

import (
	"math"

	"github.com/gviegas/globe/linear"
)

const geomPrefix = "geometry: "

// The maximum number of segments in each direction of
// a sphere.
const MaxSphereSegments = 2048

// Geometry is indexed vertex data.
// It must not be modified once created, since a single
// Geometry may be shared by any number of drawables.
type Geometry struct {
	positions []linear.V3
	normals   []linear.V3
	uvs       [][2]float32
	colors    []linear.V3
	indices   []uint32
	radius    float32
}

// NewSphere creates a UV sphere centered at the origin.
// Vertices are laid out in rings from the north pole
// (v = 1) to the south pole (v = 0), each ring starting
// at -x and going around counter-clockwise when seen
// from above. Triangles are wound counter-clockwise when
// seen from outside. Every vertex has a white color.
func NewSphere(radius float32, widthSegments, heightSegments int) (*Geometry, error) {
	switch {
	case radius <= 0 || math.IsInf(float64(radius), 0) || math.IsNaN(float64(radius)):
		return nil, newErr(geomPrefix, "invalid sphere radius")
	case widthSegments < 3, heightSegments < 2:
		return nil, newErr(geomPrefix, "too few sphere segments")
	case widthSegments > MaxSphereSegments, heightSegments > MaxSphereSegments:
		return nil, newErr(geomPrefix, "too many sphere segments")
	}

	nv := (widthSegments + 1) * (heightSegments + 1)
	g := &Geometry{
		positions: make([]linear.V3, 0, nv),
		normals:   make([]linear.V3, 0, nv),
		uvs:       make([][2]float32, 0, nv),
		colors:    make([]linear.V3, nv),
		indices:   make([]uint32, 0, widthSegments*(heightSegments-1)*6),
		radius:    radius,
	}
	for i := range g.colors {
		g.colors[i] = linear.V3{1, 1, 1}
	}

	grid := make([][]uint32, heightSegments+1)
	var idx uint32
	for iy := 0; iy <= heightSegments; iy++ {
		v := float64(iy) / float64(heightSegments)
		// Pole vertices sit at the middle of their
		// segment so the texture does not pinch.
		var uOff float64
		switch iy {
		case 0:
			uOff = 0.5 / float64(widthSegments)
		case heightSegments:
			uOff = -0.5 / float64(widthSegments)
		}
		grid[iy] = make([]uint32, widthSegments+1)
		st, ct := math.Sincos(v * math.Pi)
		for ix := 0; ix <= widthSegments; ix++ {
			u := float64(ix) / float64(widthSegments)
			sp, cp := math.Sincos(u * 2 * math.Pi)
			n := linear.V3{float32(-cp * st), float32(ct), float32(sp * st)}
			var p linear.V3
			p.Scale(radius, &n)
			g.positions = append(g.positions, p)
			g.normals = append(g.normals, n)
			g.uvs = append(g.uvs, [2]float32{float32(u + uOff), float32(1 - v)})
			grid[iy][ix] = idx
			idx++
		}
	}

	for iy := 0; iy < heightSegments; iy++ {
		for ix := 0; ix < widthSegments; ix++ {
			a := grid[iy][ix+1]
			b := grid[iy][ix]
			c := grid[iy+1][ix]
			d := grid[iy+1][ix+1]
			if iy != 0 {
				g.indices = append(g.indices, a, b, d)
			}
			if iy != heightSegments-1 {
				g.indices = append(g.indices, b, c, d)
			}
		}
	}
	return g, nil
}

// VertexCount returns the number of vertices in g.
func (g *Geometry) VertexCount() int { return len(g.positions) }

// IndexCount returns the number of indices in g.
func (g *Geometry) IndexCount() int { return len(g.indices) }

// Radius returns the radius of the bounding sphere of g.
func (g *Geometry) Radius() float32 { return g.radius }

// Position returns the position of the vertex i.
func (g *Geometry) Position(i int) linear.V3 { return g.positions[i] }

// UV returns the texture coordinates of the vertex i.
func (g *Geometry) UV(i int) [2]float32 { return g.uvs[i] }

// Color returns the color of the vertex i.
func (g *Geometry) Color(i int) linear.V3 { return g.colors[i] }
