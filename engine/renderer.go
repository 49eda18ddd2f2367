// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package engine

import (
	"context"
	"image"

	"github.com/gogpu/gputypes"
	"golang.org/x/sync/errgroup"

	"github.com/gviegas/globe/internal/logger"
	"github.com/gviegas/globe/linear"
	"github.com/gviegas/globe/shader"
)

const rendPrefix = "renderer: "

// program rasterizes drawables whose material is
// implemented by a given shader module.
type program struct {
	topology gputypes.PrimitiveTopology
	draw     func(r *Renderer, g *Geometry, m Material) error
}

// Programs keyed by shader module name.
var programs = map[string]program{
	shader.Points: {gputypes.PrimitiveTopologyPointList, (*Renderer).drawPoints},
	shader.Basic:  {gputypes.PrimitiveTopologyTriangleList, (*Renderer).drawMesh},
}

// Renderer draws scenes into a Target.
type Renderer struct {
	cfg    Config
	lib    *shader.Library
	target *Target
	frame  shader.FrameLayout

	// Vertex stage output, reused across draws.
	scr  []screen
	dist []float32

	frames uint64
}

// NewRenderer creates a new renderer.
// lib must provide a module for every program that the
// renderer implements.
func NewRenderer(cfg *Config, lib *shader.Library) (*Renderer, error) {
	if cfg == nil {
		return nil, newErr(rendPrefix, "nil Config")
	}
	if lib == nil {
		return nil, newErr(rendPrefix, "nil shader.Library")
	}
	for name := range programs {
		if _, err := lib.Module(name); err != nil {
			return nil, err
		}
	}
	c := *cfg
	if c.Workers < 1 {
		c.Workers = 1
	}
	if c.DepthCompare == 0 {
		c.DepthCompare = gputypes.CompareFunctionLess
	}
	for _, x := range c.ClearColor {
		if x < 0 || x > 1 {
			return nil, newErr(rendPrefix, "ClearColor outside [0.0, 1.0] interval")
		}
	}
	target, err := NewTarget(c.Width, c.Height, c.Antialias)
	if err != nil {
		return nil, err
	}
	logger.Get().Info("renderer created",
		"width", c.Width, "height", c.Height, "antialias", c.Antialias, "workers", c.Workers)
	return &Renderer{cfg: c, lib: lib, target: target}, nil
}

// Config returns the configuration of r.
func (r *Renderer) Config() Config { return r.cfg }

// Target returns the target of r.
func (r *Renderer) Target() *Target { return r.target }

// FrameLayout returns the frame uniform data of the last
// drawable rendered.
func (r *Renderer) FrameLayout() *shader.FrameLayout { return &r.frame }

// Frames returns the number of frames rendered.
func (r *Renderer) Frames() uint64 { return r.frames }

// SetSize resizes the target of r.
func (r *Renderer) SetSize(width, height int) error {
	if err := r.target.Resize(width, height); err != nil {
		return err
	}
	r.cfg.Width, r.cfg.Height = width, height
	logger.Get().Debug("renderer resized", "width", width, "height", height)
	return nil
}

// SetClearColor sets the color the target is cleared
// with.
func (r *Renderer) SetClearColor(c linear.V4) { r.cfg.ClearColor = c }

// ClearColor returns the color the target is cleared
// with.
func (r *Renderer) ClearColor() linear.V4 { return r.cfg.ClearColor }

// Render draws s as seen by cam and returns the resolved
// image, which is owned by the target.
// Opaque drawables are drawn before transparent ones;
// within each group, drawables are drawn in the order
// they were added to s.
func (r *Renderer) Render(ctx context.Context, s *Scene, cam *Camera) (*image.RGBA, error) {
	if s == nil || cam == nil {
		return nil, newErr(rendPrefix, "nil argument in call to Render")
	}
	s.Update()
	t := r.target
	t.clear(&r.cfg.ClearColor, r.cfg.DepthCompare)
	r.frame.SetProjection(cam.Projection())
	r.frame.SetViewport(float32(t.color.Rect.Dx()), float32(t.color.Rect.Dy()))

	for _, transparent := range [...]bool{false, true} {
		for _, d := range s.Drawables() {
			if d.mat.Transparent() != transparent {
				continue
			}
			var mv linear.M4
			mv.Mul(cam.View(), s.World(d))
			r.frame.SetModelView(&mv)
			if err := r.draw(ctx, d); err != nil {
				return nil, err
			}
		}
	}
	r.frames++
	return t.Resolve(), nil
}

// draw runs the program of d's shader module using the
// current frame layout.
func (r *Renderer) draw(ctx context.Context, d *Drawable) error {
	mod, err := r.lib.Module(d.mat.Module())
	if err != nil {
		return err
	}
	prog, ok := programs[mod.Name]
	if !ok {
		return newErr(rendPrefix, "no program for module "+mod.Name)
	}
	if d.mat.Topology() != prog.topology {
		return newErr(rendPrefix, "module "+mod.Name+" cannot draw topology "+d.mat.Topology().String())
	}
	if err := r.vertexStage(ctx, d.geom); err != nil {
		return err
	}
	return prog.draw(r, d.geom, d.mat)
}

// vertexStage transforms the vertices of g into raster
// space as described by r.frame, storing the results in
// r.scr and the distance from each vertex to the eye in
// r.dist.
func (r *Renderer) vertexStage(ctx context.Context, g *Geometry) error {
	mv := r.frame.ModelView()
	proj := r.frame.Projection()
	fw, fh := r.frame.Viewport()
	w, h := int(fw), int(fh)
	n := g.VertexCount()
	if cap(r.scr) < n {
		r.scr = make([]screen, n)
		r.dist = make([]float32, n)
	}
	r.scr = r.scr[:n]
	r.dist = r.dist[:n]
	chunk := (n + r.cfg.Workers - 1) / r.cfg.Workers
	eg, ctx := errgroup.WithContext(ctx)
	for lo := 0; lo < n; lo += chunk {
		hi := min(n, lo+chunk)
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			for i := lo; i < hi; i++ {
				var e, c linear.V4
				e.Point(&mv, &g.positions[i])
				xyz := e.XYZ()
				r.dist[i] = xyz.Len()
				c.Mul(&proj, &e)
				r.scr[i] = toScreen(&c, w, h)
			}
			return nil
		})
	}
	return eg.Wait()
}

func (r *Renderer) drawPoints(g *Geometry, mat Material) error {
	m, ok := mat.(*PointsMaterial)
	if !ok {
		return newErr(rendPrefix, "points module requires a *PointsMaterial")
	}
	mask := m.visible(g)
	l := m.Layout()
	// The scale is given in output pixels.
	k := l.Size() * l.Scale() * float32(r.target.samples)
	for i := range r.scr {
		if !mask.IsSet(i) {
			continue
		}
		r.drawPoint(&r.scr[i], k/r.dist[i], &g.colors[i], m)
	}
	return nil
}

func (r *Renderer) drawMesh(g *Geometry, mat Material) error {
	m, ok := mat.(*BasicMaterial)
	if !ok {
		return newErr(rendPrefix, "basic module requires a *BasicMaterial")
	}
	c := m.Layout().Color()
	px := [4]uint8{unorm(c[0]), unorm(c[1]), unorm(c[2]), unorm(c[3])}
	for i := 0; i+2 < len(g.indices); i += 3 {
		r.fillTriangle(&r.scr[g.indices[i]], &r.scr[g.indices[i+1]], &r.scr[g.indices[i+2]], px)
	}
	return nil
}
