// Copyright 2022 Gustavo C. Viegas. All rights reserved.

//go:build cgo || windows || darwin

package wsi

import (
	"context"
	"image"
	"os"
	"runtime"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/gviegas/globe/internal/logger"
)

func init() {
	if runtime.GOOS != "windows" && runtime.GOOS != "darwin" &&
		os.Getenv("DISPLAY") == "" && os.Getenv("WAYLAND_DISPLAY") == "" {
		initDummy()
		return
	}
	newWindow = newWindowEbiten
	platform = Ebiten
}

// The ebiten game loop drives a single window.
var ebitenWindow *windowEbiten

var buttonsEbiten = [...]struct {
	from ebiten.MouseButton
	to   Button
}{
	{ebiten.MouseButtonLeft, BtnLeft},
	{ebiten.MouseButtonRight, BtnRight},
	{ebiten.MouseButtonMiddle, BtnMiddle},
	{ebiten.MouseButton3, BtnBackward},
	{ebiten.MouseButton4, BtnForward},
}

// windowEbiten implements Window and ebiten.Game.
type windowEbiten struct {
	width  int
	height int
	title  string

	ctx    context.Context
	frame  func()
	resize *[2]int
	img    *image.RGBA
	tex    *ebiten.Image
	cursor [2]int
	closed bool
}

func newWindowEbiten(width, height int, title string) (Window, error) {
	if ebitenWindow != nil {
		return nil, ErrMissing
	}
	w := &windowEbiten{width: width, height: height, title: title}
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(width, height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowClosingHandled(true)
	ebiten.SetScreenClearedEveryFrame(false)
	ebiten.SetTPS(60)
	ebitenWindow = w
	return w, nil
}

func (w *windowEbiten) RequestFrame(f func()) { w.frame = f }

// Run blocks until the window is closed.
// It must be called from the main goroutine.
func (w *windowEbiten) Run(ctx context.Context) error {
	if w.closed {
		return ErrClosed
	}
	w.ctx = ctx
	logger.Get().Info("window loop started", "platform", platform, "width", w.width, "height", w.height)
	err := ebiten.RunGame(w)
	if err == ebiten.Termination {
		err = nil
	}
	if err == nil && ctx.Err() != nil {
		err = ctx.Err()
	}
	w.Close()
	return err
}

// Update implements ebiten.Game.
func (w *windowEbiten) Update() error {
	if w.closed || w.ctx.Err() != nil {
		return ebiten.Termination
	}
	if ebiten.IsWindowBeingClosed() {
		w.Close()
		return ebiten.Termination
	}
	if sz := w.resize; sz != nil {
		w.resize = nil
		if windowHandler != nil {
			windowHandler.WindowResize(w, sz[0], sz[1])
		}
	}
	w.pollPointer()
	if f := w.frame; f != nil {
		w.frame = nil
		f()
	}
	return nil
}

func (w *windowEbiten) pollPointer() {
	if pointerHandler == nil {
		return
	}
	x, y := ebiten.CursorPosition()
	if x != w.cursor[0] || y != w.cursor[1] {
		w.cursor = [2]int{x, y}
		pointerHandler.PointerMotion(x, y)
	}
	for _, b := range buttonsEbiten {
		switch {
		case inpututil.IsMouseButtonJustPressed(b.from):
			pointerHandler.PointerButton(b.to, true, x, y)
		case inpututil.IsMouseButtonJustReleased(b.from):
			pointerHandler.PointerButton(b.to, false, x, y)
		}
	}
	if dx, dy := ebiten.Wheel(); dx != 0 || dy != 0 {
		pointerHandler.PointerWheel(dx, dy)
	}
}

// Draw implements ebiten.Game.
func (w *windowEbiten) Draw(screen *ebiten.Image) {
	img := w.img
	if img == nil {
		return
	}
	b := img.Bounds()
	if w.tex == nil || w.tex.Bounds().Dx() != b.Dx() || w.tex.Bounds().Dy() != b.Dy() {
		if w.tex != nil {
			w.tex.Deallocate()
		}
		w.tex = ebiten.NewImage(b.Dx(), b.Dy())
	}
	w.tex.WritePixels(img.Pix)
	// The image may lag one frame behind a resize.
	var op ebiten.DrawImageOptions
	sb := screen.Bounds()
	op.GeoM.Scale(float64(sb.Dx())/float64(b.Dx()), float64(sb.Dy())/float64(b.Dy()))
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(w.tex, &op)
}

// Layout implements ebiten.Game.
func (w *windowEbiten) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth > 0 && outsideHeight > 0 &&
		(outsideWidth != w.width || outsideHeight != w.height) {
		w.width, w.height = outsideWidth, outsideHeight
		w.resize = &[2]int{outsideWidth, outsideHeight}
		logger.Get().Debug("window resized", "width", outsideWidth, "height", outsideHeight)
	}
	return w.width, w.height
}

func (w *windowEbiten) Present(img *image.RGBA) { w.img = img }

func (w *windowEbiten) Resize(width, height int) error {
	if w.closed {
		return ErrClosed
	}
	if err := validSize(width, height); err != nil {
		return err
	}
	ebiten.SetWindowSize(width, height)
	return nil
}

func (w *windowEbiten) SetTitle(title string) error {
	if w.closed {
		return ErrClosed
	}
	ebiten.SetWindowTitle(title)
	w.title = title
	return nil
}

func (w *windowEbiten) Close() {
	if w.closed {
		return
	}
	w.closed = true
	closeWindow(w)
	if w.tex != nil {
		w.tex.Deallocate()
		w.tex = nil
	}
	if windowHandler != nil {
		windowHandler.WindowClose(w)
	}
}

func (w *windowEbiten) Width() int { return w.width }

func (w *windowEbiten) Height() int { return w.height }

func (w *windowEbiten) Title() string { return w.title }
