// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package headless provides a window-less host: a single event loop
// goroutine that runs posted tasks and paces frame callbacks with a
// ticker. Surfaces are in memory, so it serves tests, CI and offline
// rendering.
package headless

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gogpu/gg3d"
)

var (
	// ErrSurfaceNotFound is returned by Surface for an unknown identifier.
	ErrSurfaceNotFound = errors.New("headless: surface not found")

	// ErrAlreadyRunning is returned when Run is called while running.
	ErrAlreadyRunning = errors.New("headless: already running")
)

// Config configures a Host.
type Config struct {
	// SurfaceID names the surface created by New.
	SurfaceID string

	// Width and Height are the logical size of that surface.
	Width, Height int

	// PixelRatio is its device pixel ratio.
	PixelRatio float64

	// FPS paces frame callbacks. 0 runs frames back-to-back.
	FPS float64

	// MaxFrames ends Run after that many frames. 0 runs until the
	// context is done.
	MaxFrames uint64
}

// DefaultConfig returns a 640×480 surface named "three-canvas" at 60 fps.
func DefaultConfig() Config {
	return Config{
		SurfaceID:  "three-canvas",
		Width:      640,
		Height:     480,
		PixelRatio: 1,
		FPS:        60,
	}
}

// Host is the headless event loop. Frame, task, resize and pointer
// callbacks all run on the goroutine that calls Run.
type Host struct {
	cfg Config

	mu       sync.Mutex
	tasks    []func()
	frame    func()
	onResize func(width, height int)
	onPtr    func(gg3d.PointerEvent)
	surfaces map[string]*Surface

	wake    chan struct{}
	frames  atomic.Uint64
	running atomic.Bool
}

// New creates a host with one surface described by cfg.
func New(cfg Config) *Host {
	if cfg.SurfaceID == "" {
		cfg.SurfaceID = DefaultConfig().SurfaceID
	}
	if cfg.PixelRatio <= 0 {
		cfg.PixelRatio = 1
	}
	h := &Host{
		cfg:      cfg,
		surfaces: make(map[string]*Surface),
		wake:     make(chan struct{}, 1),
	}
	h.surfaces[cfg.SurfaceID] = NewSurface(cfg.Width, cfg.Height, cfg.PixelRatio)
	return h
}

// AddSurface registers an additional surface.
func (h *Host) AddSurface(id string, s *Surface) {
	h.mu.Lock()
	h.surfaces[id] = s
	h.mu.Unlock()
}

// Surface implements runner.Host.
func (h *Host) Surface(id string) (gg3d.Surface, error) {
	s, ok := h.Lookup(id)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrSurfaceNotFound, id)
	}
	return s, nil
}

// Lookup returns the in-memory surface registered under id.
func (h *Host) Lookup(id string) (*Surface, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	s, ok := h.surfaces[id]
	return s, ok
}

// Main returns the surface created by New.
func (h *Host) Main() *Surface {
	s, _ := h.Lookup(h.cfg.SurfaceID)
	return s
}

// RequestFrame sets the callback for the next frame. A request made
// while one is pending replaces it.
func (h *Host) RequestFrame(fn func()) {
	h.mu.Lock()
	h.frame = fn
	h.mu.Unlock()
	h.signal()
}

// Post queues fn to run on the loop before the next frame.
func (h *Host) Post(fn func()) {
	h.mu.Lock()
	h.tasks = append(h.tasks, fn)
	h.mu.Unlock()
	h.signal()
}

// OnResize registers the resize handler.
func (h *Host) OnResize(fn func(width, height int)) {
	h.mu.Lock()
	h.onResize = fn
	h.mu.Unlock()
}

// OnPointer registers the pointer handler.
func (h *Host) OnPointer(fn func(gg3d.PointerEvent)) {
	h.mu.Lock()
	h.onPtr = fn
	h.mu.Unlock()
}

// Resize changes the main surface size and notifies the resize handler
// on the loop.
func (h *Host) Resize(width, height int) {
	h.Post(func() {
		h.Main().setSize(width, height)
		h.mu.Lock()
		fn := h.onResize
		h.mu.Unlock()
		if fn != nil {
			fn(width, height)
		}
	})
}

// SetPixelRatio changes the main surface pixel ratio and notifies the
// resize handler with the current size, as a browser does when a window
// moves to another display.
func (h *Host) SetPixelRatio(ratio float64) {
	h.Post(func() {
		s := h.Main()
		s.setPixelRatio(ratio)
		w, ht := s.Size()
		h.mu.Lock()
		fn := h.onResize
		h.mu.Unlock()
		if fn != nil {
			fn(w, ht)
		}
	})
}

// DispatchPointer delivers ev to the pointer handler on the loop. Width
// and Height default to the main surface size.
func (h *Host) DispatchPointer(ev gg3d.PointerEvent) {
	h.Post(func() {
		if ev.Width == 0 && ev.Height == 0 {
			ev.Width, ev.Height = h.Main().Size()
		}
		h.mu.Lock()
		fn := h.onPtr
		h.mu.Unlock()
		if fn != nil {
			fn(ev)
		}
	})
}

// Frames returns the number of frame callbacks run.
func (h *Host) Frames() uint64 {
	return h.frames.Load()
}

// Run executes the event loop until ctx is done or MaxFrames frames have
// run. It returns ctx.Err() when the context ends the loop.
func (h *Host) Run(ctx context.Context) error {
	if !h.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer h.running.Store(false)

	var tick <-chan time.Time
	if h.cfg.FPS > 0 {
		t := time.NewTicker(time.Duration(float64(time.Second) / h.cfg.FPS))
		defer t.Stop()
		tick = t.C
	}

	gg3d.Logger().Debug("headless loop started", "fps", h.cfg.FPS, "maxFrames", h.cfg.MaxFrames)
	for {
		h.runTasks()
		if err := ctx.Err(); err != nil {
			return err
		}
		if h.cfg.MaxFrames > 0 && h.frames.Load() >= h.cfg.MaxFrames {
			gg3d.Logger().Debug("headless loop finished", "frames", h.frames.Load())
			return nil
		}
		if !h.hasFrame() {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-h.wake:
			}
			continue
		}
		if tick != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-h.wake:
				continue
			case <-tick:
			}
		}
		if fn := h.takeFrame(); fn != nil {
			h.frames.Add(1)
			fn()
		}
	}
}

func (h *Host) signal() {
	select {
	case h.wake <- struct{}{}:
	default:
	}
}

func (h *Host) runTasks() {
	for {
		h.mu.Lock()
		tasks := h.tasks
		h.tasks = nil
		h.mu.Unlock()
		if len(tasks) == 0 {
			return
		}
		for _, fn := range tasks {
			fn()
		}
	}
}

func (h *Host) hasFrame() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.frame != nil
}

func (h *Host) takeFrame() func() {
	h.mu.Lock()
	defer h.mu.Unlock()
	fn := h.frame
	h.frame = nil
	return fn
}
