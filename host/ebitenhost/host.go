// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package ebitenhost runs a scene in a desktop window using ebiten.
//
// ebiten's Draw is the display-refresh primitive: each call runs the
// pending frame callback and shows the last presented frame. Posted
// tasks, resize notifications and pointer events are delivered from
// Update, so every callback runs on ebiten's game goroutine.
package ebitenhost

import (
	"context"
	"errors"
	"fmt"
	"image"
	"sync"

	"github.com/gogpu/gg3d"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// ErrSurfaceNotFound is returned by Surface for an unknown identifier.
var ErrSurfaceNotFound = errors.New("ebitenhost: surface not found")

// Config configures the window.
type Config struct {
	Title     string
	Width     int
	Height    int
	SurfaceID string
}

// DefaultConfig returns an 800×600 window whose surface is "three-canvas".
func DefaultConfig() Config {
	return Config{
		Title:     "gg3d",
		Width:     800,
		Height:    600,
		SurfaceID: "three-canvas",
	}
}

var buttons = [...]struct {
	eb  ebiten.MouseButton
	btn gg3d.PointerButton
}{
	{ebiten.MouseButtonLeft, gg3d.ButtonLeft},
	{ebiten.MouseButtonMiddle, gg3d.ButtonMiddle},
	{ebiten.MouseButtonRight, gg3d.ButtonRight},
}

// Host is an ebiten game that implements runner.Host.
type Host struct {
	cfg     Config
	surface *surface
	ctx     context.Context

	mu       sync.Mutex
	tasks    []func()
	frame    func()
	onResize func(width, height int)
	onPtr    func(gg3d.PointerEvent)

	// Loop-only state.
	layoutW, layoutH int
	layoutRatio      float64
	notified         viewport
	pointer          pointerTracker
	view             *ebiten.Image
	frames           uint64
}

// New creates a host. The window opens in Run.
func New(cfg Config) *Host {
	def := DefaultConfig()
	if cfg.SurfaceID == "" {
		cfg.SurfaceID = def.SurfaceID
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		cfg.Width, cfg.Height = def.Width, def.Height
	}
	h := &Host{cfg: cfg, pointer: newPointerTracker()}
	ratio := ebiten.Monitor().DeviceScaleFactor()
	h.surface = &surface{width: cfg.Width, height: cfg.Height, ratio: ratio}
	h.layoutW, h.layoutH, h.layoutRatio = cfg.Width, cfg.Height, ratio
	h.notified = viewport{width: cfg.Width, height: cfg.Height, ratio: ratio}
	return h
}

// Surface implements runner.Host.
func (h *Host) Surface(id string) (gg3d.Surface, error) {
	if id != h.cfg.SurfaceID {
		return nil, fmt.Errorf("%w: %q", ErrSurfaceNotFound, id)
	}
	return h.surface, nil
}

// RequestFrame sets the callback for the next Draw.
func (h *Host) RequestFrame(fn func()) {
	h.mu.Lock()
	h.frame = fn
	h.mu.Unlock()
}

// Post queues fn for the next Update. It is safe from any goroutine.
func (h *Host) Post(fn func()) {
	h.mu.Lock()
	h.tasks = append(h.tasks, fn)
	h.mu.Unlock()
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

// Frames returns the number of frame callbacks run.
func (h *Host) Frames() uint64 {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.frames
}

// Run opens a resizable window and blocks until it is closed or ctx is
// done. It must be called from the main goroutine.
func (h *Host) Run(ctx context.Context) error {
	h.ctx = ctx
	ebiten.SetWindowTitle(h.cfg.Title)
	ebiten.SetWindowSize(h.cfg.Width, h.cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	err := ebiten.RunGame(h)
	if errors.Is(err, ebiten.Termination) {
		return ctx.Err()
	}
	return err
}

// Update implements ebiten.Game.
func (h *Host) Update() error {
	if h.ctx != nil && h.ctx.Err() != nil {
		return ebiten.Termination
	}
	h.runTasks()
	h.dispatchResize()
	h.pollPointer()
	return nil
}

// Draw implements ebiten.Game.
func (h *Host) Draw(screen *ebiten.Image) {
	h.mu.Lock()
	fn := h.frame
	h.frame = nil
	if fn != nil {
		h.frames++
	}
	h.mu.Unlock()
	if fn != nil {
		fn()
	}

	frame := h.surface.frame()
	if frame == nil {
		return
	}
	b := frame.Bounds()
	if h.view == nil || h.view.Bounds().Size() != b.Size() {
		if h.view != nil {
			h.view.Deallocate()
		}
		h.view = ebiten.NewImage(b.Dx(), b.Dy())
	}
	h.view.WritePixels(frame.Pix)

	op := &ebiten.DrawImageOptions{}
	sb := screen.Bounds()
	if sb.Size() != b.Size() {
		op.GeoM.Scale(float64(sb.Dx())/float64(b.Dx()), float64(sb.Dy())/float64(b.Dy()))
		op.Filter = ebiten.FilterLinear
	}
	screen.DrawImage(h.view, op)
}

// Layout implements ebiten.Game. The screen is laid out in device
// pixels so the drawing buffer maps 1:1 onto it.
func (h *Host) Layout(outsideWidth, outsideHeight int) (int, int) {
	scale := ebiten.Monitor().DeviceScaleFactor()
	h.layoutW, h.layoutH, h.layoutRatio = outsideWidth, outsideHeight, scale
	h.surface.set(outsideWidth, outsideHeight, scale)
	return int(float64(outsideWidth) * scale), int(float64(outsideHeight) * scale)
}

func (h *Host) runTasks() {
	h.mu.Lock()
	tasks := h.tasks
	h.tasks = nil
	h.mu.Unlock()
	for _, fn := range tasks {
		fn()
	}
}

func (h *Host) dispatchResize() {
	if !h.notified.update(h.layoutW, h.layoutH, h.layoutRatio) {
		return
	}
	h.mu.Lock()
	fn := h.onResize
	h.mu.Unlock()
	if fn != nil {
		fn(h.layoutW, h.layoutH)
	}
}

func (h *Host) pollPointer() {
	h.mu.Lock()
	fn := h.onPtr
	h.mu.Unlock()
	if fn == nil {
		return
	}

	in := pointerInput{focused: ebiten.IsFocused()}
	in.width, in.height = h.surface.Size()
	cx, cy := ebiten.CursorPosition()
	in.x, in.y = logicalCursor(cx, cy, h.surface.PixelRatio())
	for i, b := range buttons {
		in.pressed[i] = inpututil.IsMouseButtonJustPressed(b.eb)
		in.released[i] = inpututil.IsMouseButtonJustReleased(b.eb)
	}
	_, in.wheel = ebiten.Wheel()

	for _, ev := range h.pointer.events(in) {
		fn(ev)
	}
}

// surface is the window's gg3d.Surface. Size is the logical window
// size; PixelRatio is the monitor's device scale factor.
type surface struct {
	mu     sync.Mutex
	width  int
	height int
	ratio  float64
	last   *image.RGBA
}

func (s *surface) Size() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.width, s.height
}

func (s *surface) PixelRatio() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ratio
}

func (s *surface) Present(frame *image.RGBA) error {
	s.mu.Lock()
	s.last = frame
	s.mu.Unlock()
	return nil
}

func (s *surface) frame() *image.RGBA {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.last
}

func (s *surface) set(width, height int, ratio float64) {
	s.mu.Lock()
	s.width, s.height, s.ratio = width, height, ratio
	s.mu.Unlock()
}
