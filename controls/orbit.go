// Copyright 2023 Gustavo C. Viegas. All rights reserved.

// Package controls implements camera controls driven by
// pointer input.
package controls

import (
	"errors"
	"math"

	"github.com/gviegas/globe/engine"
	"github.com/gviegas/globe/linear"
)

const prefix = "controls: "

func newErr(reason string) error { return errors.New(prefix + reason) }

// Angles closer than this to the poles are not reached,
// so the view direction never aligns with the up vector.
const polarEps = 1e-6

// Config is used to configure an Orbit.
type Config struct {
	// Whether the motion continues after input stops,
	// slowing down at every Update.
	//
	// Default is false.
	EnableDamping bool

	// Fraction of the pending motion applied at every
	// Update when damping is enabled. The remainder
	// decays by (1 - DampingFactor).
	//
	// Default is 0.05.
	DampingFactor float32

	// Whether each kind of input is accepted.
	//
	// Default is true.
	EnableRotate bool
	EnablePan    bool
	EnableZoom   bool

	// Speed multipliers.
	//
	// Default is 1.
	RotateSpeed float32
	PanSpeed    float32
	ZoomSpeed   float32

	// Whether vertical panning moves along the screen
	// plane rather than the plane orthogonal to the
	// camera's up vector.
	//
	// Default is true.
	ScreenSpacePanning bool

	// Limits of the distance from camera to target.
	//
	// Default is [0, +Inf].
	MinDistance float32
	MaxDistance float32

	// Limits of the polar angle, in radians, measured
	// from the +y axis.
	//
	// Default is [0, π].
	MinPolarAngle float32
	MaxPolarAngle float32
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		DampingFactor:      0.05,
		EnableRotate:       true,
		EnablePan:          true,
		EnableZoom:         true,
		RotateSpeed:        1,
		PanSpeed:           1,
		ZoomSpeed:          1,
		ScreenSpacePanning: true,
		MaxDistance:        float32(math.Inf(1)),
		MaxPolarAngle:      math.Pi,
	}
}

func (c *Config) validate() error {
	switch {
	case c.EnableDamping && !(c.DampingFactor > 0 && c.DampingFactor <= 1):
		return newErr("DampingFactor outside (0.0, 1.0] interval")
	case c.MinDistance < 0 || !(c.MaxDistance >= c.MinDistance):
		return newErr("invalid distance limits")
	case c.MinPolarAngle < 0 || c.MaxPolarAngle > math.Pi || !(c.MaxPolarAngle >= c.MinPolarAngle):
		return newErr("invalid polar angle limits")
	}
	return nil
}

// Button identifies the kind of drag in progress.
type Button int

// Buttons.
const (
	ButtonNone Button = iota
	// Rotate around the target.
	ButtonRotate
	// Move the target.
	ButtonPan
	// Move toward or away from the target.
	ButtonZoom
)

// Orbit moves a camera around a target point.
// Input is accumulated by the pointer methods and applied
// by Update, which must be called once per frame.
type Orbit struct {
	cfg    Config
	cam    *engine.Camera
	target linear.V3
	height int

	// Pending motion.
	dTheta float32
	dPhi   float32
	pan    linear.V3
	scale  float32

	drag  Button
	lastX int
	lastY int
}

// New creates orbit controls for cam.
// The current target of cam becomes the orbit target.
// height is the height of the surface that receives
// pointer input.
func New(cam *engine.Camera, height int, cfg *Config) (*Orbit, error) {
	if cam == nil {
		return nil, newErr("nil Camera")
	}
	if height < 1 {
		return nil, newErr("invalid surface height")
	}
	c := DefaultConfig()
	if cfg != nil {
		c = *cfg
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	o := &Orbit{
		cfg:    c,
		cam:    cam,
		target: cam.Target(),
		height: height,
		scale:  1,
	}
	o.Update()
	return o, nil
}

// Config returns the configuration of o.
func (o *Orbit) Config() Config { return o.cfg }

// Target returns the point o orbits around.
func (o *Orbit) Target() linear.V3 { return o.target }

// SetHeight sets the height of the input surface.
func (o *Orbit) SetHeight(height int) {
	if height > 0 {
		o.height = height
	}
}

// Rotate adds a rotation of the given angles, in
// radians. It reports whether rotation is enabled.
func (o *Orbit) Rotate(left, up float32) bool {
	if !o.cfg.EnableRotate {
		return false
	}
	o.dTheta -= left
	o.dPhi -= up
	return true
}

// Pan adds a translation of the target by the given
// distance in pixels. It reports whether panning is
// enabled.
func (o *Orbit) Pan(dx, dy float32) bool {
	if !o.cfg.EnablePan {
		return false
	}
	var off linear.V3
	pos := o.cam.Position()
	off.Sub(&pos, &o.target)
	// Distance covered by half the surface height at
	// the target plane.
	dist := off.Len() * float32(math.Tan(float64(o.cam.FOV)*math.Pi/360))
	h := float32(o.height)
	v := o.cam.View()
	right := linear.V3{v[0][0], v[1][0], v[2][0]}
	var up linear.V3
	if o.cfg.ScreenSpacePanning {
		up = linear.V3{v[0][1], v[1][1], v[2][1]}
	} else {
		y := linear.V3{0, 1, 0}
		up.Cross(&y, &right)
	}
	var t linear.V3
	t.Scale(-2*dx*dist/h*o.cfg.PanSpeed, &right)
	o.pan.Add(&o.pan, &t)
	t.Scale(2*dy*dist/h*o.cfg.PanSpeed, &up)
	o.pan.Add(&o.pan, &t)
	return true
}

// Zoom moves the camera toward the target when delta is
// negative and away from it when positive, as a mouse
// wheel would. It reports whether zooming is enabled.
func (o *Orbit) Zoom(delta float32) bool {
	if !o.cfg.EnableZoom {
		return false
	}
	s := float32(math.Pow(0.95, float64(o.cfg.ZoomSpeed)))
	switch {
	case delta < 0:
		o.scale *= s
	case delta > 0:
		o.scale /= s
	}
	return true
}

// Press starts a drag of the given kind at (x, y).
func (o *Orbit) Press(btn Button, x, y int) {
	o.drag = btn
	o.lastX, o.lastY = x, y
}

// Release ends the current drag.
func (o *Orbit) Release() { o.drag = ButtonNone }

// Move continues the current drag at (x, y).
// A full drag across the surface height turns the camera
// once around the target.
func (o *Orbit) Move(x, y int) {
	dx := float32(x - o.lastX)
	dy := float32(y - o.lastY)
	o.lastX, o.lastY = x, y
	h := float32(o.height)
	switch o.drag {
	case ButtonRotate:
		k := 2 * math.Pi / h * o.cfg.RotateSpeed
		o.Rotate(k*dx, k*dy)
	case ButtonPan:
		o.Pan(dx, dy)
	case ButtonZoom:
		o.Zoom(dy)
	}
}

// Update applies the pending motion to the camera and
// reports whether the camera moved.
func (o *Orbit) Update() bool {
	pos := o.cam.Position()
	var off linear.V3
	off.Sub(&pos, &o.target)

	radius := off.Len()
	var theta, phi float64
	if radius > 0 {
		theta = math.Atan2(float64(off[0]), float64(off[2]))
		phi = math.Acos(math.Max(-1, math.Min(1, float64(off[1]/radius))))
	}

	f := float32(1)
	if o.cfg.EnableDamping {
		f = o.cfg.DampingFactor
	}
	theta += float64(o.dTheta * f)
	phi += float64(o.dPhi * f)
	phi = math.Max(float64(o.cfg.MinPolarAngle), math.Min(float64(o.cfg.MaxPolarAngle), phi))
	phi = math.Max(polarEps, math.Min(math.Pi-polarEps, phi))

	radius *= o.scale
	radius = max(o.cfg.MinDistance, min(o.cfg.MaxDistance, radius))

	var t linear.V3
	t.Scale(f, &o.pan)
	o.target.Add(&o.target, &t)

	sp, cp := math.Sincos(phi)
	st, ct := math.Sincos(theta)
	off = linear.V3{
		radius * float32(sp*st),
		radius * float32(cp),
		radius * float32(sp*ct),
	}
	var npos linear.V3
	npos.Add(&o.target, &off)
	o.cam.SetPosition(npos)
	o.cam.LookAt(o.target)

	if o.cfg.EnableDamping {
		o.dTheta *= 1 - f
		o.dPhi *= 1 - f
		o.pan.Scale(1-f, &o.pan)
	} else {
		o.dTheta, o.dPhi = 0, 0
		o.pan = linear.V3{}
	}
	o.scale = 1

	var d linear.V3
	d.Sub(&npos, &pos)
	return d.Dot(&d) > 1e-6
}
