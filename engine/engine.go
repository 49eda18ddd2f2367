// Copyright 2023 Gustavo C. Viegas. All rights reserved.

// Package engine implements a small real-time renderer for
// point clouds and flat-shaded meshes.
// Rendering happens on the CPU; the programs it evaluates
// mirror the WGSL modules of package shader.
package engine

import (
	"errors"
	"runtime"

	"github.com/gogpu/gputypes"

	"github.com/gviegas/globe/linear"
)

const (
	// The maximum width or height of a render target.
	MaxTargetSize = 16384

	// The supersampling factor used when anti-aliasing
	// is enabled.
	AASamples = 2
)

// Config is used to configure a Renderer.
type Config struct {
	// Size of the render target, in pixels.
	Width  int
	Height int

	// Whether to anti-alias the output.
	//
	// Default is true.
	Antialias bool

	// The color the target is cleared with at the
	// start of every frame.
	//
	// Default is opaque black.
	ClearColor linear.V4

	// The number of goroutines that run the vertex
	// stage.
	//
	// Default is runtime.GOMAXPROCS(0).
	Workers int

	// The comparison used for depth testing.
	//
	// Default is gputypes.CompareFunctionLess.
	DepthCompare gputypes.CompareFunction
}

// DefaultConfig returns the default configuration for a
// target of the given size.
func DefaultConfig(width, height int) Config {
	return Config{
		Width:        width,
		Height:       height,
		Antialias:    true,
		ClearColor:   linear.V4{0, 0, 0, 1},
		Workers:      runtime.GOMAXPROCS(0),
		DepthCompare: gputypes.CompareFunctionLess,
	}
}

// ErrInvalidTexture means that a texture could not be
// created from the given data.
var ErrInvalidTexture = errors.New("texture: invalid image")

func newErr(prefix, reason string) error { return errors.New(prefix + reason) }

// Hex converts a 0xRRGGBB value into an opaque color.
func Hex(rgb uint32) linear.V4 {
	return linear.V4{
		float32(rgb>>16&0xff) / 255,
		float32(rgb>>8&0xff) / 255,
		float32(rgb&0xff) / 255,
		1,
	}
}
