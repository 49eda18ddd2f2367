// Copyright 2023 Gustavo C. Viegas. All rights reserved.

// Command globe displays a rotating globe drawn as dots.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
	"os/signal"

	"github.com/gviegas/globe"
	"github.com/gviegas/globe/wsi"
)

func main() {
	var (
		headless bool
		verbose  bool
		out      string
		hcfg     wsi.HeadlessConfig
	)
	cfg := globe.DefaultConfig(1280, 720)
	flag.BoolVar(&headless, "headless", false, "Run without a window.")
	flag.IntVar(&hcfg.Hz, "hz", 60, "Frame rate in headless mode.")
	flag.Uint64Var(&hcfg.Frames, "frames", 0, "Stop after N frames in headless mode (0 = run forever).")
	flag.IntVar(&cfg.Width, "width", cfg.Width, "Output width.")
	flag.IntVar(&cfg.Height, "height", cfg.Height, "Output height.")
	flag.StringVar(&cfg.Assets, "assets", cfg.Assets, "Directory containing the image assets.")
	flag.StringVar(&cfg.Mask, "mask", cfg.Mask, "Land/ocean mask image, relative to -assets. Required and not bundled:\n"+
		"supply an equirectangular map with dark land and bright ocean.")
	flag.StringVar(&cfg.Sprite, "sprite", cfg.Sprite, "Point sprite, relative to -assets.")
	flag.StringVar(&cfg.Shaders, "shaders", "", "Directory with WGSL files replacing the built-in shaders.")
	flag.StringVar(&out, "out", "", "Write the last headless frame to this PNG file.")
	flag.BoolVar(&verbose, "v", false, "Log debug messages.")
	flag.Parse()

	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	l := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(l)
	globe.SetLogger(l)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := run(ctx, &cfg, headless, hcfg, out); err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *globe.Config, headless bool, hcfg wsi.HeadlessConfig, out string) error {
	app, err := globe.New(cfg)
	if err != nil {
		return err
	}

	if !headless {
		win, err := wsi.NewWindow(cfg.Width, cfg.Height, "globe")
		if err != nil {
			return fmt.Errorf("%w (use -headless)", err)
		}
		return app.Run(ctx, win)
	}

	win, err := wsi.NewHeadless(cfg.Width, cfg.Height, "globe", hcfg)
	if err != nil {
		return err
	}
	defer win.Close()
	// An interrupted run still writes the last frame.
	rerr := app.Run(ctx, win)
	if rerr != nil && ctx.Err() == nil {
		return rerr
	}
	if out != "" && win.Image() != nil {
		if err := writePNG(out, win.Image()); err != nil {
			return err
		}
		slog.Info("frame written", "path", out, "frames", app.Frames())
	}
	return rerr
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
