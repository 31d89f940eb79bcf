// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Command scenerun renders one of the gg3d demo scenes in a window or
// headless.
//
// Usage:
//
//	scenerun -variant cube
//	scenerun -variant spin -texture assets/electric.jpg
//	scenerun -headless -frames 120 -out frame.png
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gogpu/gg3d"
	"github.com/gogpu/gg3d/host/ebitenhost"
	"github.com/gogpu/gg3d/host/headless"
	"github.com/gogpu/gg3d/runner"
	"golang.org/x/sync/errgroup"
)

// loopHost is a runner.Host with its own event loop.
type loopHost interface {
	runner.Host
	Run(ctx context.Context) error
	Frames() uint64
}

func main() {
	var (
		variant  = flag.String("variant", "orbit", "scene variant: orbit, spin or cube")
		texture  = flag.String("texture", runner.DefaultTexturePath, "plane texture path or URL")
		noWindow = flag.Bool("headless", false, "render without a window")
		frames   = flag.Uint64("frames", 0, "stop after this many frames (0 = until interrupted)")
		fps      = flag.Float64("fps", 60, "headless frame rate (0 = as fast as possible)")
		width    = flag.Int("width", 800, "surface width")
		height   = flag.Int("height", 600, "surface height")
		output   = flag.String("out", "", "write the last headless frame to this PNG file")
		verbose  = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	gg3d.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	cfg, ok := runner.Preset(*variant)
	if !ok {
		log.Fatalf("unknown variant %q", *variant)
	}
	cfg.TexturePath = *texture

	var host loopHost
	if *noWindow {
		host = headless.New(headless.Config{
			SurfaceID:  runner.DefaultSurfaceID,
			Width:      *width,
			Height:     *height,
			PixelRatio: 1,
			FPS:        *fps,
			MaxFrames:  *frames,
		})
	} else {
		host = ebitenhost.New(ebitenhost.Config{
			Title:     "scenerun: " + *variant,
			Width:     *width,
			Height:    *height,
			SurfaceID: runner.DefaultSurfaceID,
		})
	}

	if err := run(cfg, host, *output); err != nil {
		log.Fatal(err)
	}
}

func run(cfg runner.Config, host loopHost, output string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	r := runner.New(cfg)
	if err := r.Initialize(ctx, host, runner.DefaultSurfaceID); err != nil {
		return err
	}
	defer func() { _ = r.Dispose() }()
	if err := r.Start(); err != nil {
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	loopCtx, cancelLoop := context.WithCancel(gctx)
	g.Go(func() error {
		return reportFPS(loopCtx, host)
	})

	// ebiten must run on the main goroutine.
	err := host.Run(loopCtx)
	cancelLoop()
	if werr := g.Wait(); werr != nil && !errors.Is(werr, context.Canceled) {
		return werr
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("host loop: %w", err)
	}

	gg3d.Logger().Info("stopped", "frames", r.FrameCount())
	if output == "" {
		return nil
	}
	return savePNG(r.Renderer(), output)
}

// reportFPS logs the frame rate every second at debug level.
func reportFPS(ctx context.Context, host loopHost) error {
	t := time.NewTicker(time.Second)
	defer t.Stop()
	last := host.Frames()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
			n := host.Frames()
			gg3d.Logger().Debug("frame rate", "fps", n-last, "frames", n)
			last = n
		}
	}
}

func savePNG(r *gg3d.Renderer, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := r.EncodePNG(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return err
	}
	gg3d.Logger().Info("frame saved", "path", path)
	return nil
}
