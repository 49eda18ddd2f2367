// Copyright 2023 Gustavo C. Viegas. All rights reserved.

package globe

import (
	"context"

	"github.com/gviegas/globe/controls"
	"github.com/gviegas/globe/internal/logger"
	"github.com/gviegas/globe/wsi"
)

// Run renders a frame on every iteration of the loop of
// win until it stops, presenting each frame to win.
// a handles the window and pointer events of win while
// Run executes.
func (a *App) Run(ctx context.Context, win wsi.Window) error {
	if w, h := win.Width(), win.Height(); w != a.cfg.Width || h != a.cfg.Height {
		if err := a.Resize(w, h); err != nil {
			return err
		}
	}
	wsi.SetWindowHandler(a)
	wsi.SetPointerHandler(a)
	defer func() {
		wsi.SetWindowHandler(nil)
		wsi.SetPointerHandler(nil)
	}()

	var ferr error
	var frame func()
	frame = func() {
		img, err := a.Frame(ctx)
		if err != nil {
			ferr = err
			win.Close()
			return
		}
		win.Present(img)
		win.RequestFrame(frame)
	}
	win.RequestFrame(frame)
	err := win.Run(ctx)
	if ferr != nil {
		return ferr
	}
	return err
}

// WindowClose implements wsi.WindowHandler.
func (a *App) WindowClose(win wsi.Window) {
	logger.Get().Info("window closed", "frames", a.frames)
}

// WindowResize implements wsi.WindowHandler.
func (a *App) WindowResize(win wsi.Window, newWidth, newHeight int) {
	if err := a.Resize(newWidth, newHeight); err != nil {
		logger.Get().Error("resize failed", "width", newWidth, "height", newHeight, "err", err)
	}
}

// PointerMotion implements wsi.PointerHandler.
func (a *App) PointerMotion(newX, newY int) { a.controls.Move(newX, newY) }

// PointerButton implements wsi.PointerHandler.
// The left button rotates, the right button pans and
// the middle button zooms.
func (a *App) PointerButton(btn wsi.Button, pressed bool, x, y int) {
	if !pressed {
		a.controls.Release()
		return
	}
	switch btn {
	case wsi.BtnLeft:
		a.controls.Press(controls.ButtonRotate, x, y)
	case wsi.BtnRight:
		a.controls.Press(controls.ButtonPan, x, y)
	case wsi.BtnMiddle:
		a.controls.Press(controls.ButtonZoom, x, y)
	}
}

// PointerWheel implements wsi.PointerHandler.
func (a *App) PointerWheel(dx, dy float64) { a.controls.Zoom(float32(-dy)) }

var (
	_ wsi.WindowHandler  = (*App)(nil)
	_ wsi.PointerHandler = (*App)(nil)
)
