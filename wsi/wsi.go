// Copyright 2022 Gustavo C. Viegas. All rights reserved.

// Package wsi provides window system integration (WSI)
// for the globe renderer.
// Because a system need not have a window system, WSI
// is conditionally supported. Headless windows, which
// display nothing, are always available.
package wsi

import (
	"context"
	"errors"
	"image"
)

// ErrMissing means that no window platform is available.
var ErrMissing = errors.New("wsi: no window platform")

// ErrClosed means that the window was closed.
var ErrClosed = errors.New("wsi: window closed")

// Scheduler runs callbacks on the loop of a window.
type Scheduler interface {
	// RequestFrame schedules f to run once, on the
	// next iteration of the loop. Only the most recent
	// request made before an iteration runs.
	RequestFrame(f func())
}

// Window is the interface that defines a window.
// The purpose of a window is to display the images that
// a renderer produces.
type Window interface {
	Scheduler

	// Run runs the loop of the window until it is closed,
	// ctx is done or the loop has a frame limit and it is
	// reached. It returns nil in the first and last cases.
	// Handlers and scheduled callbacks are called from the
	// goroutine that calls Run.
	Run(ctx context.Context) error

	// Present sets the image to display.
	// img must not be modified until the next scheduled
	// callback runs.
	Present(img *image.RGBA)

	// Resize resizes the window.
	Resize(width, height int) error

	// SetTitle sets the window's title.
	SetTitle(title string) error

	// Close closes the window.
	Close()

	// Width returns the window's width.
	Width() int

	// Height returns the window's height.
	Height() int

	// Title returns the window's title.
	Title() string
}

// NewWindow creates a new window using the platform in
// use.
func NewWindow(width, height int, title string) (Window, error) {
	if err := validSize(width, height); err != nil {
		return nil, err
	}
	win, err := newWindow(width, height, title)
	if err != nil {
		return nil, err
	}
	if err := register(win); err != nil {
		win.Close()
		return nil, err
	}
	return win, nil
}

var newWindow func(int, int, string) (Window, error)

// The maximum width or height of a window.
const MaxSize = 16384

func validSize(width, height int) error {
	if width < 1 || height < 1 || width > MaxSize || height > MaxSize {
		return errors.New("wsi: invalid window size")
	}
	return nil
}

// The maximum number of windows that can exist at any
// given time.
const MaxWindows = 16

// Windows returns all created windows.
// The returned value becomes out of date after calls to
// NewWindow, NewHeadless and Window.Close.
func Windows() []Window {
	if windowCount == 0 {
		return nil
	}
	wins := make([]Window, 0, windowCount)
	for i := range createdWindows {
		if createdWindows[i] != nil {
			wins = append(wins, createdWindows[i])
		}
	}
	return wins
}

func register(win Window) error {
	if windowCount >= MaxWindows {
		return errors.New("wsi: too many windows")
	}
	for i := range createdWindows {
		if createdWindows[i] == nil {
			createdWindows[i] = win
			windowCount++
			break
		}
	}
	return nil
}

// closeWindow removes win from createdWindows and
// decrements windowCount.
// It must be called by implementations on win.Close.
// Note that win must be comparable.
func closeWindow(win Window) {
	for i := range createdWindows {
		if createdWindows[i] == win {
			createdWindows[i] = nil
			windowCount--
			return
		}
	}
}

var (
	windowCount    int
	createdWindows [MaxWindows]Window
)

// Button is the type of pointer buttons.
type Button int

// Pointer buttons.
const (
	BtnUnknown Button = iota
	BtnLeft
	BtnRight
	BtnMiddle
	BtnBackward
	BtnForward
)

func (b Button) String() string {
	switch b {
	case BtnLeft:
		return "left"
	case BtnRight:
		return "right"
	case BtnMiddle:
		return "middle"
	case BtnBackward:
		return "backward"
	case BtnForward:
		return "forward"
	}
	return "unknown"
}

// WindowHandler is the interface that defines the methods
// for handling window events.
type WindowHandler interface {
	// WindowClose is called when a window is closed.
	WindowClose(win Window)

	// WindowResize is called when a window is resized.
	WindowResize(win Window, newWidth, newHeight int)
}

// SetWindowHandler sets the global WindowHandler.
func SetWindowHandler(wh WindowHandler) {
	windowHandler = wh
}

var windowHandler WindowHandler

// PointerHandler is the interface that defines the methods
// for handling pointer events.
type PointerHandler interface {
	// PointerMotion is called when the pointer changes position.
	PointerMotion(newX, newY int)

	// PointerButton is called when a button is pressed/released.
	PointerButton(btn Button, pressed bool, x, y int)

	// PointerWheel is called when the wheel is scrolled.
	// dy is positive when scrolling up.
	PointerWheel(dx, dy float64)
}

// SetPointerHandler sets the global PointerHandler.
func SetPointerHandler(ph PointerHandler) {
	pointerHandler = ph
}

var pointerHandler PointerHandler

// Platform identifies an underlying platform used to
// implement wsi.
type Platform int

// Platforms.
const (
	// None means that wsi is not available.
	// In this case, calls to NewWindow will
	// always fail. Headless windows can still
	// be created.
	None Platform = iota
	Ebiten
)

func (p Platform) String() string {
	if p == Ebiten {
		return "ebiten"
	}
	return "none"
}

// PlatformInUse identifies the underlying platform which
// wsi is using.
func PlatformInUse() Platform {
	return platform
}

var platform Platform
