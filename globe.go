// Copyright 2023 Gustavo C. Viegas. All rights reserved.

// Package globe renders a rotating globe drawn as dots.
// Land and ocean are two point clouds over the same
// sphere, separated by the brightness of a mask texture,
// in front of a solid backing sphere.
package globe

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io/fs"
	"log/slog"
	"math"
	"os"
	"path/filepath"

	"github.com/gviegas/globe/controls"
	"github.com/gviegas/globe/engine"
	"github.com/gviegas/globe/internal/logger"
	"github.com/gviegas/globe/linear"
	"github.com/gviegas/globe/shader"
)

// SetLogger sets the logger used by every package of the
// module. nil restores the default, which discards all
// records.
func SetLogger(l *slog.Logger) { logger.Set(l) }

// Config is used to configure an App.
type Config struct {
	// Size of the output, in pixels.
	Width  int
	Height int

	// Directory containing the image assets.
	//
	// Default is "assets".
	Assets string
	// Mask file, relative to Assets. Bright texels are
	// ocean and dark texels are land.
	// It is required and is not distributed with the
	// module.
	//
	// Default is "earth.jpg".
	Mask string
	// Point sprite file, relative to Assets. If it does
	// not exist, a generated disk is used instead.
	//
	// Default is "dot.png".
	Sprite string
	// Directory whose WGSL files replace the built-in
	// shader modules. Empty means none.
	Shaders string

	// Default is true.
	Antialias bool
	// Default is 0x292929.
	ClearColor uint32
	// Color of the backing sphere.
	//
	// Default is 0x292929.
	BackgroundColor uint32

	// Sphere radius and number of segments around and
	// from pole to pole.
	//
	// Default is 8 and 400.
	Radius   float32
	Segments int

	// World-space point sizes.
	//
	// Default is 0.08 and 0.04.
	LandSize  float32
	OceanSize float32

	// Scale of the backing sphere relative to the
	// point clouds.
	//
	// Default is 0.99.
	BackgroundScale float32

	// Rotation about the y axis added every frame, in
	// radians.
	//
	// Default is 0.001.
	RotationStep float64

	// Whether the point size scale is recomputed from
	// the new height on Resize. When false, the value
	// computed at startup is kept.
	//
	// Default is false.
	ScaleFollowsResize bool

	// Camera placement. It looks at the origin.
	//
	// Default is 60, 1, 1000 and (1.25, 7, 17).
	FOV      float32
	Near     float32
	Far      float32
	Position linear.V3

	Controls controls.Config

	// Goroutines used by the renderer.
	//
	// Default is runtime.GOMAXPROCS(0).
	Workers int
}

// DefaultConfig returns the default configuration for an
// output of the given size.
func DefaultConfig(width, height int) Config {
	ctl := controls.DefaultConfig()
	ctl.EnableDamping = true
	ctl.DampingFactor = 0.88
	ctl.ScreenSpacePanning = false
	ctl.EnablePan = false
	ctl.EnableZoom = false
	return Config{
		Width:           width,
		Height:          height,
		Assets:          "assets",
		Mask:            "earth.jpg",
		Sprite:          "dot.png",
		Antialias:       true,
		ClearColor:      0x292929,
		BackgroundColor: 0x292929,
		Radius:          8,
		Segments:        400,
		LandSize:        0.08,
		OceanSize:       0.04,
		BackgroundScale: 0.99,
		RotationStep:    0.001,
		FOV:             60,
		Near:            1,
		Far:             1000,
		Position:        linear.V3{1.25, 7, 17},
		Controls:        ctl,
		Workers:         engine.DefaultConfig(width, height).Workers,
	}
}

// The size of the generated sprite.
const diskSize = 64

// App is the state of a running globe.
type App struct {
	cfg      Config
	scene    *engine.Scene
	camera   *engine.Camera
	renderer *engine.Renderer
	controls *controls.Orbit

	geom   *engine.Geometry
	mask   *engine.Texture
	sprite *engine.Texture

	land       *engine.Drawable
	ocean      *engine.Drawable
	background *engine.Drawable

	// Accumulated rotation, kept in [0, 2π).
	rotation float64
	frames   uint64
}

// New creates an App.
// It loads the assets and shaders, so any error it
// returns is fatal to the application.
func New(cfg *Config) (*App, error) {
	if cfg == nil {
		return nil, errors.New("globe: nil Config")
	}
	a := &App{cfg: *cfg}
	if err := a.initialize(); err != nil {
		return nil, err
	}
	if err := a.loadAssets(); err != nil {
		return nil, err
	}
	geom, err := engine.NewSphere(a.cfg.Radius, a.cfg.Segments, a.cfg.Segments)
	if err != nil {
		return nil, err
	}
	a.geom = geom

	if a.land, err = a.CreatePoints(a.cfg.LandSize, shader.DiscardAbove); err != nil {
		return nil, err
	}
	a.land.Name = "land"
	if a.ocean, err = a.CreatePoints(a.cfg.OceanSize, shader.DiscardBelow); err != nil {
		return nil, err
	}
	a.ocean.Name = "ocean"
	bgMat, err := engine.NewBasic(engine.Hex(a.cfg.BackgroundColor))
	if err != nil {
		return nil, err
	}
	if a.background, err = engine.NewMesh(a.geom, bgMat); err != nil {
		return nil, err
	}
	a.background.Name = "background"
	a.background.SetScale(a.cfg.BackgroundScale)

	for _, d := range [...]*engine.Drawable{a.land, a.ocean, a.background} {
		if err := a.scene.Add(d); err != nil {
			return nil, err
		}
	}
	logger.Get().Info("globe created",
		"width", a.cfg.Width, "height", a.cfg.Height,
		"vertices", a.geom.VertexCount(), "triangles", a.geom.IndexCount()/3)
	return a, nil
}

// initialize creates the scene, camera, renderer and
// controls.
func (a *App) initialize() error {
	if a.cfg.Width < 1 || a.cfg.Height < 1 {
		return errors.New("globe: invalid output size")
	}
	a.scene = engine.NewScene()

	cam, err := engine.NewPerspective(a.cfg.FOV, a.aspect(), a.cfg.Near, a.cfg.Far)
	if err != nil {
		return err
	}
	cam.SetPosition(a.cfg.Position)
	cam.LookAt(linear.V3{})
	a.camera = cam

	lib, err := a.loadShaders()
	if err != nil {
		return err
	}
	rcfg := engine.DefaultConfig(a.cfg.Width, a.cfg.Height)
	rcfg.Antialias = a.cfg.Antialias
	rcfg.ClearColor = engine.Hex(a.cfg.ClearColor)
	rcfg.Workers = a.cfg.Workers
	if a.renderer, err = engine.NewRenderer(&rcfg, lib); err != nil {
		return err
	}

	a.controls, err = controls.New(cam, a.cfg.Height, &a.cfg.Controls)
	return err
}

func (a *App) loadShaders() (*shader.Library, error) {
	if a.cfg.Shaders == "" {
		return shader.Builtin()
	}
	return shader.Load(os.DirFS(a.cfg.Shaders))
}

func (a *App) loadAssets() error {
	path := filepath.Join(a.cfg.Assets, a.cfg.Mask)
	mask, err := engine.LoadTexture(path)
	if err != nil {
		return fmt.Errorf("globe: mask %s is required (dark land, bright ocean): %w", path, err)
	}
	a.mask = mask

	path = filepath.Join(a.cfg.Assets, a.cfg.Sprite)
	sprite, err := engine.LoadTexture(path)
	switch {
	case err == nil:
	case errors.Is(err, fs.ErrNotExist):
		logger.Get().Warn("sprite not found, using a generated disk", "path", path)
		if sprite, err = engine.NewDisk(diskSize); err != nil {
			return err
		}
	default:
		return fmt.Errorf("globe: sprite: %w", err)
	}
	a.sprite = sprite
	return nil
}

func (a *App) aspect() float32 { return float32(a.cfg.Width) / float32(a.cfg.Height) }

// CreatePoints creates a point cloud over the sphere
// geometry that discards the points whose mask texel is
// on the dir side of the unit magnitude.
// The point cloud is not added to the scene.
func (a *App) CreatePoints(size float32, dir shader.Direction) (*engine.Drawable, error) {
	mat, err := engine.NewPoints(&engine.PointsParam{
		Visibility: engine.TexRef{Texture: a.mask, Sampler: engine.RepeatSampler()},
		Shape:      engine.TexRef{Texture: a.sprite, Sampler: engine.ClampSampler()},
		Size:       size,
		Scale:      float32(a.cfg.Height) / 2,
		Threshold:  1,
		Direction:  dir,
	})
	if err != nil {
		return nil, err
	}
	return engine.NewPointCloud(a.geom, mat)
}

// Frame advances the rotation, applies the controls and
// renders. The returned image is overwritten by the next
// call.
func (a *App) Frame(ctx context.Context) (*image.RGBA, error) {
	a.advance()
	a.controls.Update()
	img, err := a.renderer.Render(ctx, a.scene, a.camera)
	if err != nil {
		return nil, err
	}
	a.frames++
	return img, nil
}

// advance adds one rotation step to the scene.
func (a *App) advance() {
	a.rotation = math.Mod(a.rotation+a.cfg.RotationStep, 2*math.Pi)
	a.scene.Rotation[1] = float32(a.rotation)
}

// Rotation returns the accumulated rotation about the
// y axis, in [0, 2π) radians.
func (a *App) Rotation() float64 { return a.rotation }

// Resize updates the camera and output to a new size.
func (a *App) Resize(width, height int) error {
	if width < 1 || height < 1 {
		return errors.New("globe: invalid output size")
	}
	a.cfg.Width, a.cfg.Height = width, height
	a.camera.Aspect = a.aspect()
	if err := a.camera.UpdateProjection(); err != nil {
		return err
	}
	if err := a.renderer.SetSize(width, height); err != nil {
		return err
	}
	a.controls.SetHeight(height)
	if a.cfg.ScaleFollowsResize {
		for _, d := range [...]*engine.Drawable{a.land, a.ocean} {
			d.Material().(*engine.PointsMaterial).SetScale(float32(height) / 2)
		}
	}
	logger.Get().Debug("globe resized", "width", width, "height", height)
	return nil
}

// Config returns the configuration of a, updated with
// the current size.
func (a *App) Config() Config { return a.cfg }

// Scene returns the scene.
func (a *App) Scene() *engine.Scene { return a.scene }

// Camera returns the camera.
func (a *App) Camera() *engine.Camera { return a.camera }

// Renderer returns the renderer.
func (a *App) Renderer() *engine.Renderer { return a.renderer }

// Controls returns the orbit controls.
func (a *App) Controls() *controls.Orbit { return a.controls }

// Geometry returns the sphere shared by the drawables.
func (a *App) Geometry() *engine.Geometry { return a.geom }

// Land returns the land point cloud.
func (a *App) Land() *engine.Drawable { return a.land }

// Ocean returns the ocean point cloud.
func (a *App) Ocean() *engine.Drawable { return a.ocean }

// Background returns the backing sphere.
func (a *App) Background() *engine.Drawable { return a.background }

// Frames returns the number of frames rendered.
func (a *App) Frames() uint64 { return a.frames }
