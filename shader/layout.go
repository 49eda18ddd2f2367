// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package shader

import (
	"unsafe"

	"github.com/gviegas/globe/linear"
)

// FrameLayout is the layout of the Frame uniform.
// It is defined as follows:
//
//	[0:16]  | model-view matrix
//	[16:32] | projection matrix
//	[32]    | viewport's width
//	[33]    | viewport's height
//	[34:36] | (unused)
type FrameLayout [36]float32

// SetModelView sets the model-view matrix.
func (l *FrameLayout) SetModelView(m *linear.M4) { copyM4(l[:16], m) }

// SetProjection sets the projection matrix.
func (l *FrameLayout) SetProjection(m *linear.M4) { copyM4(l[16:32], m) }

// SetViewport sets the viewport's size.
func (l *FrameLayout) SetViewport(width, height float32) {
	l[32] = width
	l[33] = height
}

// ModelView returns the model-view matrix.
func (l *FrameLayout) ModelView() (m linear.M4) {
	copy(unsafe.Slice((*float32)(unsafe.Pointer(&m)), 16), l[:16])
	return
}

// Projection returns the projection matrix.
func (l *FrameLayout) Projection() (m linear.M4) {
	copy(unsafe.Slice((*float32)(unsafe.Pointer(&m)), 16), l[16:32])
	return
}

// Viewport returns the viewport's size.
func (l *FrameLayout) Viewport() (width, height float32) { return l[32], l[33] }

// PointsLayout is the layout of the Points uniform.
// It is defined as follows:
//
//	[0]   | point size
//	[1]   | distance scale (half of the viewport's height)
//	[2]   | horizontal UV shift
//	[3]   | discard threshold
//	[4]   | discard direction (Direction.Sign)
//	[5:8] | (unused)
type PointsLayout [8]float32

// SetSize sets the point size.
func (l *PointsLayout) SetSize(s float32) { l[0] = s }

// SetScale sets the distance scale.
func (l *PointsLayout) SetScale(s float32) { l[1] = s }

// SetShift sets the horizontal UV shift.
func (l *PointsLayout) SetShift(s float32) { l[2] = s }

// SetThreshold sets the discard threshold and direction.
func (l *PointsLayout) SetThreshold(t float32, d Direction) {
	l[3] = t
	l[4] = d.Sign()
}

// Size returns the point size.
func (l *PointsLayout) Size() float32 { return l[0] }

// Scale returns the distance scale.
func (l *PointsLayout) Scale() float32 { return l[1] }

// Shift returns the horizontal UV shift.
func (l *PointsLayout) Shift() float32 { return l[2] }

// Threshold returns the discard threshold.
func (l *PointsLayout) Threshold() float32 { return l[3] }

// BasicLayout is the layout of the Basic uniform.
// It is defined as follows:
//
//	[0:4] | RGBA color
type BasicLayout [4]float32

// SetColor sets the color.
func (l *BasicLayout) SetColor(c *linear.V4) { copy(l[:], c[:]) }

// Color returns the color.
func (l *BasicLayout) Color() linear.V4 { return linear.V4(*l) }

func copyM4(dst []float32, m *linear.M4) {
	copy(dst, unsafe.Slice((*float32)(unsafe.Pointer(m)), 16))
}
