// Copyright 2022 Gustavo C. Viegas. All rights reserved.

package wsi

import (
	"context"
	"fmt"
	"image"
	"time"

	xdraw "golang.org/x/image/draw"

	"github.com/gviegas/globe/internal/logger"
)

// HeadlessConfig controls a headless window.
type HeadlessConfig struct {
	// Loop iterations per second.
	//
	// Default is 60.
	Hz int

	// Number of frames after which Run returns.
	// A frame is an iteration that runs a scheduled
	// callback.
	//
	// Default is zero (no limit).
	Frames uint64
}

// Headless is a window that displays nothing.
// It keeps the last presented image, so the output of a
// renderer can be inspected or saved.
type Headless struct {
	cfg    HeadlessConfig
	width  int
	height int
	title  string

	frame  func()
	resize *[2]int
	img    *image.RGBA
	frames uint64
	closed bool
}

// NewHeadless creates a new headless window.
func NewHeadless(width, height int, title string, cfg HeadlessConfig) (*Headless, error) {
	if err := validSize(width, height); err != nil {
		return nil, err
	}
	if cfg.Hz <= 0 {
		cfg.Hz = 60
	}
	if time.Second/time.Duration(cfg.Hz) <= 0 {
		return nil, fmt.Errorf("wsi: invalid headless hz: %d", cfg.Hz)
	}
	h := &Headless{cfg: cfg, width: width, height: height, title: title}
	if err := register(h); err != nil {
		return nil, err
	}
	return h, nil
}

// RequestFrame implements Scheduler.
func (h *Headless) RequestFrame(f func()) { h.frame = f }

// Run implements Window.
func (h *Headless) Run(ctx context.Context) error {
	if h.closed {
		return ErrClosed
	}
	t := time.NewTicker(time.Second / time.Duration(h.cfg.Hz))
	defer t.Stop()
	logger.Get().Info("headless loop started", "hz", h.cfg.Hz, "frames", h.cfg.Frames)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			if h.step() {
				return nil
			}
		}
	}
}

// step runs one iteration of the loop and reports
// whether the loop is done.
func (h *Headless) step() bool {
	if h.closed {
		return true
	}
	if sz := h.resize; sz != nil {
		h.resize = nil
		if windowHandler != nil {
			windowHandler.WindowResize(h, sz[0], sz[1])
		}
	}
	if f := h.frame; f != nil {
		h.frame = nil
		f()
		h.frames++
		if h.cfg.Frames > 0 && h.frames >= h.cfg.Frames {
			logger.Get().Info("headless frame limit reached", "frames", h.frames)
			return true
		}
	}
	return h.closed
}

// Present implements Window.
// img is copied, so the caller may reuse it.
func (h *Headless) Present(img *image.RGBA) {
	if h.img == nil || h.img.Rect != img.Rect {
		h.img = image.NewRGBA(img.Rect)
	}
	xdraw.Copy(h.img, img.Rect.Min, img, img.Rect, xdraw.Src, nil)
}

// Image returns a copy of the last presented image.
func (h *Headless) Image() *image.RGBA { return h.img }

// Frames returns the number of frames run.
func (h *Headless) Frames() uint64 { return h.frames }

// Resize implements Window.
// The WindowHandler is notified on the next iteration of
// the loop, before the scheduled callback runs.
func (h *Headless) Resize(width, height int) error {
	if h.closed {
		return ErrClosed
	}
	if err := validSize(width, height); err != nil {
		return err
	}
	if width == h.width && height == h.height {
		return nil
	}
	h.width, h.height = width, height
	h.resize = &[2]int{width, height}
	return nil
}

// SetTitle implements Window.
func (h *Headless) SetTitle(title string) error {
	if h.closed {
		return ErrClosed
	}
	h.title = title
	return nil
}

// Close implements Window.
func (h *Headless) Close() {
	if h.closed {
		return
	}
	h.closed = true
	closeWindow(h)
	if windowHandler != nil {
		windowHandler.WindowClose(h)
	}
}

// Width implements Window.
func (h *Headless) Width() int { return h.width }

// Height implements Window.
func (h *Headless) Height() int { return h.height }

// Title implements Window.
func (h *Headless) Title() string { return h.title }

var _ Window = (*Headless)(nil)

