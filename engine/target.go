// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package engine

import (
	"image"
	"math"

	"github.com/gogpu/gputypes"
	xdraw "golang.org/x/image/draw"

	"github.com/gviegas/globe/linear"
)

const targetPrefix = "target: "

// Target is the surface a Renderer draws into.
// When anti-aliasing is enabled, rendering happens at
// AASamples times the size in each direction and is
// filtered down by Resolve.
type Target struct {
	width   int
	height  int
	samples int
	color   *image.RGBA
	depth   []float32
	out     *image.RGBA
}

// NewTarget creates a render target.
func NewTarget(width, height int, antialias bool) (*Target, error) {
	t := &Target{samples: 1}
	if antialias {
		t.samples = AASamples
	}
	if err := t.Resize(width, height); err != nil {
		return nil, err
	}
	return t, nil
}

// Resize changes the size of t.
// Its contents become undefined.
func (t *Target) Resize(width, height int) error {
	switch {
	case width < 1, height < 1:
		return newErr(targetPrefix, "invalid size")
	case width > MaxTargetSize, height > MaxTargetSize:
		return newErr(targetPrefix, "size too big")
	}
	if width == t.width && height == t.height {
		return nil
	}
	t.width, t.height = width, height
	sw, sh := width*t.samples, height*t.samples
	t.color = image.NewRGBA(image.Rect(0, 0, sw, sh))
	t.depth = make([]float32, sw*sh)
	if t.samples > 1 {
		t.out = image.NewRGBA(image.Rect(0, 0, width, height))
	} else {
		t.out = t.color
	}
	return nil
}

// Size returns the size of t, in pixels.
func (t *Target) Size() (width, height int) { return t.width, t.height }

// Samples returns the supersampling factor of t.
func (t *Target) Samples() int { return t.samples }

// clear fills the color buffer with c and the depth
// buffer with the value that fails no depth test
// against geometry inside the view volume.
func (t *Target) clear(c *linear.V4, cmp gputypes.CompareFunction) {
	px := [4]uint8{unorm(c[0]), unorm(c[1]), unorm(c[2]), unorm(c[3])}
	pix := t.color.Pix
	if len(pix) >= 4 {
		copy(pix, px[:])
		for n := 4; n < len(pix); n *= 2 {
			copy(pix[n:], pix[:n])
		}
	}
	var d float32 = 1
	switch cmp {
	case gputypes.CompareFunctionGreater, gputypes.CompareFunctionGreaterEqual:
		d = 0
	}
	for i := range t.depth {
		t.depth[i] = d
	}
}

// Resolve filters the rendered samples into the output
// image and returns it.
// The returned image is owned by t and is overwritten by
// the next frame.
func (t *Target) Resolve() *image.RGBA {
	if t.samples > 1 {
		// Bilinear sampling at the center of each
		// 2x2 block averages the block.
		xdraw.BiLinear.Scale(t.out, t.out.Bounds(), t.color, t.color.Bounds(), xdraw.Src, nil)
	}
	return t.out
}

// Image returns the output image as of the last call
// to Resolve.
func (t *Target) Image() *image.RGBA { return t.out }

func unorm(x float32) uint8 {
	return uint8(math.Round(float64(max(0, min(1, x))) * 255))
}
