// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package engine

import (
	"math"

	"github.com/gogpu/gputypes"

	"github.com/gviegas/globe/linear"
)

// depthPass reports whether a fragment at depth z passes
// the test against the stored depth d.
func depthPass(cmp gputypes.CompareFunction, z, d float32) bool {
	switch cmp {
	case gputypes.CompareFunctionNever:
		return false
	case gputypes.CompareFunctionLess:
		return z < d
	case gputypes.CompareFunctionEqual:
		return z == d
	case gputypes.CompareFunctionLessEqual:
		return z <= d
	case gputypes.CompareFunctionGreater:
		return z > d
	case gputypes.CompareFunctionNotEqual:
		return z != d
	case gputypes.CompareFunctionGreaterEqual:
		return z >= d
	}
	return true
}

// screen is a vertex after perspective division and
// viewport transform.
type screen struct {
	x, y, z float32
	// Whether the vertex is in front of the eye.
	ok bool
}

// toScreen maps the clip-space position p into a w×h
// raster whose origin is the top-left corner.
func toScreen(p *linear.V4, w, h int) screen {
	if p[3] <= 0 {
		return screen{}
	}
	iw := 1 / p[3]
	return screen{
		x:  (p[0]*iw + 1) * 0.5 * float32(w),
		y:  (1 - p[1]*iw) * 0.5 * float32(h),
		z:  p[2] * iw,
		ok: true,
	}
}

// fillTriangle draws the triangle (a, b, c) with a flat
// color. Triangles wound clockwise in raster space, which
// is counter-clockwise in NDC, are front-facing; back
// faces are culled.
func (r *Renderer) fillTriangle(a, b, c *screen, px [4]uint8) {
	if !a.ok || !b.ok || !c.ok {
		return
	}
	area := (b.x-a.x)*(c.y-a.y) - (c.x-a.x)*(b.y-a.y)
	if area >= 0 {
		return
	}
	t := r.target
	w, h := t.color.Rect.Dx(), t.color.Rect.Dy()
	x0 := max(0, int(math.Floor(float64(min(a.x, b.x, c.x)))))
	x1 := min(w-1, int(math.Ceil(float64(max(a.x, b.x, c.x)))))
	y0 := max(0, int(math.Floor(float64(min(a.y, b.y, c.y)))))
	y1 := min(h-1, int(math.Ceil(float64(max(a.y, b.y, c.y)))))
	if x0 > x1 || y0 > y1 {
		return
	}
	inv := 1 / area
	for y := y0; y <= y1; y++ {
		py := float32(y) + 0.5
		for x := x0; x <= x1; x++ {
			pxf := float32(x) + 0.5
			// Barycentric weights; all non-positive
			// inside since area is negative.
			w0 := (c.x-b.x)*(py-b.y) - (c.y-b.y)*(pxf-b.x)
			w1 := (a.x-c.x)*(py-c.y) - (a.y-c.y)*(pxf-c.x)
			w2 := (b.x-a.x)*(py-a.y) - (b.y-a.y)*(pxf-a.x)
			if w0 > 0 || w1 > 0 || w2 > 0 {
				continue
			}
			z := (w0*a.z + w1*b.z + w2*c.z) * inv
			if z < 0 || z > 1 {
				continue
			}
			i := y*w + x
			if !depthPass(r.cfg.DepthCompare, z, t.depth[i]) {
				continue
			}
			t.depth[i] = z
			copy(t.color.Pix[i*4:i*4+4], px[:])
		}
	}
}

// drawPoint draws a point sprite of the given diameter in
// pixels centered at s.
// Sprites smaller than a pixel are drawn one pixel wide.
func (r *Renderer) drawPoint(s *screen, size float32, color *linear.V3, mat *PointsMaterial) {
	if !s.ok || s.z < 0 || s.z > 1 || !(size > 0) {
		return
	}
	size = max(1, size)
	t := r.target
	w, h := t.color.Rect.Dx(), t.color.Rect.Dy()
	left := s.x - size/2
	top := s.y - size/2
	x0 := max(0, int(math.Floor(float64(left)+0.5)))
	x1 := min(w-1, int(math.Floor(float64(left+size)-0.5)))
	y0 := max(0, int(math.Floor(float64(top)+0.5)))
	y1 := min(h-1, int(math.Floor(float64(top+size)-0.5)))
	// Points may cover no pixel centers at all.
	if x1 < x0 {
		x0 = int(math.Floor(float64(s.x)))
		x1 = x0
	}
	if y1 < y0 {
		y0 = int(math.Floor(float64(s.y)))
		y1 = y0
	}
	if x0 < 0 || y0 < 0 || x1 >= w || y1 >= h {
		return
	}
	for y := y0; y <= y1; y++ {
		cy := (float32(y) + 0.5 - top) / size
		for x := x0; x <= x1; x++ {
			i := y*w + x
			if !depthPass(r.cfg.DepthCompare, s.z, t.depth[i]) {
				continue
			}
			cx := (float32(x) + 0.5 - left) / size
			// The point coordinate is used as UV
			// unchanged, as gl_PointCoord would be.
			c, ok := mat.shapeFragment(color, [2]float32{cx, cy})
			if !ok {
				continue
			}
			t.depth[i] = s.z
			blend(t.color.Pix[i*4:i*4+4], &c)
		}
	}
}

// blend composes c over dst using the source alpha.
func blend(dst []uint8, c *linear.V4) {
	a := max(0, min(1, c[3]))
	for i := 0; i < 3; i++ {
		d := float32(dst[i]) / 255
		dst[i] = unorm(c[i]*a + d*(1-a))
	}
	d := float32(dst[3]) / 255
	dst[3] = unorm(a + d*(1-a))
}
