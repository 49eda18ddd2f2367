// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package engine

import (
	"math"

	"github.com/gviegas/globe/linear"
)

const camPrefix = "camera: "

// Camera is a perspective camera.
// After changing FOV, Aspect, Near or Far, call
// UpdateProjection for the change to take effect.
type Camera struct {
	// Vertical field of view, in degrees.
	FOV    float32
	Aspect float32
	Near   float32
	Far    float32

	pos    linear.V3
	up     linear.V3
	target linear.V3
	view   linear.M4
	proj   linear.M4
}

// NewPerspective creates a camera at the origin looking
// down the -z axis.
func NewPerspective(fov, aspect, near, far float32) (*Camera, error) {
	c := &Camera{
		FOV:    fov,
		Aspect: aspect,
		Near:   near,
		Far:    far,
		up:     linear.V3{0, 1, 0},
		target: linear.V3{0, 0, -1},
	}
	if err := c.UpdateProjection(); err != nil {
		return nil, err
	}
	c.updateView()
	return c, nil
}

// UpdateProjection recomputes the projection matrix.
func (c *Camera) UpdateProjection() error {
	switch {
	case !(c.FOV > 0 && c.FOV < 180):
		return newErr(camPrefix, "FOV outside (0, 180) interval")
	case !(c.Aspect > 0) || math.IsInf(float64(c.Aspect), 0):
		return newErr(camPrefix, "invalid aspect ratio")
	case !(c.Near > 0 && c.Far > c.Near):
		return newErr(camPrefix, "invalid near/far planes")
	}
	c.proj.Perspective(c.FOV*math.Pi/180, c.Aspect, c.Near, c.Far)
	return nil
}

// SetPosition moves the camera to p, keeping it pointed
// at the current target.
func (c *Camera) SetPosition(p linear.V3) {
	c.pos = p
	c.updateView()
}

// Position returns the position of the camera.
func (c *Camera) Position() linear.V3 { return c.pos }

// LookAt points the camera at target.
func (c *Camera) LookAt(target linear.V3) {
	c.target = target
	c.updateView()
}

// Target returns the point the camera is looking at.
func (c *Camera) Target() linear.V3 { return c.target }

func (c *Camera) updateView() { c.view.LookAt(&c.pos, &c.target, &c.up) }

// View returns the view matrix.
func (c *Camera) View() *linear.M4 { return &c.view }

// Projection returns the projection matrix.
func (c *Camera) Projection() *linear.M4 { return &c.proj }
