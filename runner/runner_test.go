// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package runner

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"log/slog"
	"math"
	"sync"
	"testing"
	"testing/fstest"
	"time"

	"github.com/gogpu/gg3d"
	"github.com/gogpu/gg3d/host/headless"
)

const (
	testW = 64
	testH = 48
)

// logCapture records log messages for assertions.
type logCapture struct {
	mu      sync.Mutex
	records []slog.Record
}

func (c *logCapture) Enabled(context.Context, slog.Level) bool {
	return true
}

func (c *logCapture) WithAttrs([]slog.Attr) slog.Handler {
	return c
}

func (c *logCapture) WithGroup(string) slog.Handler {
	return c
}

func (c *logCapture) Handle(_ context.Context, r slog.Record) error {
	c.mu.Lock()
	c.records = append(c.records, r)
	c.mu.Unlock()
	return nil
}

func (c *logCapture) count(msg string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, r := range c.records {
		if r.Message == msg {
			n++
		}
	}
	return n
}

func (c *logCapture) level(msg string) (slog.Level, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, r := range c.records {
		if r.Message == msg {
			return r.Level, true
		}
	}
	return 0, false
}

func captureLogs(t *testing.T) *logCapture {
	t.Helper()
	c := &logCapture{}
	gg3d.SetLogger(slog.New(c))
	t.Cleanup(func() { gg3d.SetLogger(nil) })
	return c
}

func newHost(maxFrames uint64) *headless.Host {
	return headless.New(headless.Config{
		SurfaceID:  DefaultSurfaceID,
		Width:      testW,
		Height:     testH,
		PixelRatio: 1,
		MaxFrames:  maxFrames,
	})
}

func pngFile(t *testing.T) []byte {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	img.SetNRGBA(0, 0, color.NRGBA{R: 0xff, A: 0xff})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func withFS(t *testing.T, cfg Config, files fstest.MapFS) Config {
	t.Helper()
	cfg.LoaderOptions = append(cfg.LoaderOptions, gg3d.WithFS(files))
	return cfg
}

func initRunner(t *testing.T, cfg Config, h *headless.Host) *SceneRunner {
	t.Helper()
	r := New(cfg)
	if err := r.Initialize(context.Background(), h, DefaultSurfaceID); err != nil {
		t.Fatalf("Initialize() = %v", err)
	}
	t.Cleanup(func() { _ = r.Dispose() })
	return r
}

// runUntil runs the host loop on the test goroutine until cond holds.
// cond must only read state that is safe from other goroutines.
func runUntil(t *testing.T, h *headless.Host, cond func() bool) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		for {
			select {
			case <-stop:
				return
			case <-time.After(time.Millisecond):
				if cond() {
					cancel()
					return
				}
			}
		}
	}()
	err := h.Run(ctx)
	if errors.Is(err, context.DeadlineExceeded) {
		t.Fatal("condition not reached before timeout")
	}
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("Run() = %v, want Canceled", err)
	}
}

func TestInitializeAspect(t *testing.T) {
	for _, name := range []string{"orbit", "spin", "cube"} {
		t.Run(name, func(t *testing.T) {
			cfg, _ := Preset(name)
			cfg = withFS(t, cfg, fstest.MapFS{DefaultTexturePath: {Data: pngFile(t)}})
			r := initRunner(t, cfg, newHost(0))

			if got, want := r.Camera().Aspect, float64(testW)/testH; got != want {
				t.Errorf("Aspect = %v, want %v", got, want)
			}
			if w, h := r.Renderer().Size(); w != testW || h != testH {
				t.Errorf("renderer Size() = %dx%d, want %dx%d", w, h, testW, testH)
			}
			if !r.Renderer().Antialias() {
				t.Error("renderer is not anti-aliased")
			}
			if r.Camera().FOV != CameraFOV || r.Camera().Near != CameraNear || r.Camera().Far != CameraFar {
				t.Errorf("camera = %+v", r.Camera())
			}
			if r.State() != Stopped {
				t.Errorf("State() = %v, want Stopped", r.State())
			}
			if nodes := len(r.Scene().Nodes()); nodes != 3 {
				t.Errorf("scene has %d nodes, want mesh and two lights", nodes)
			}
			if (r.Controls() != nil) != cfg.UseOrbitControls {
				t.Errorf("Controls() = %v with UseOrbitControls=%v", r.Controls(), cfg.UseOrbitControls)
			}
			if (r.Texture() != nil) != cfg.UseTexture {
				t.Errorf("Texture() = %v with UseTexture=%v", r.Texture(), cfg.UseTexture)
			}
		})
	}
}

func TestInitializeContent(t *testing.T) {
	r := initRunner(t, Cube(), newHost(0))
	m := r.Mesh()
	if m.Material.Kind != gg3d.MaterialLambert || m.Material.Color != DefaultCubeColor {
		t.Errorf("cube material = %+v", m.Material)
	}
	if got := m.Geometry.TriangleCount(); got != 12 {
		t.Errorf("cube triangles = %d, want 12", got)
	}

	cfg := withFS(t, SpinningPlane(), fstest.MapFS{})
	p := initRunner(t, cfg, newHost(0)).Mesh()
	if p.Material.Kind != gg3d.MaterialBasic || p.Material.Side != gg3d.DoubleSide || p.Material.Map == nil {
		t.Errorf("plane material = %+v", p.Material)
	}
	if got := p.Geometry.TriangleCount(); got != 2 {
		t.Errorf("plane triangles = %d, want 2", got)
	}
}

func TestInitializePixelRatioCap(t *testing.T) {
	h := headless.New(headless.Config{SurfaceID: DefaultSurfaceID, Width: testW, Height: testH, PixelRatio: 3})
	r := initRunner(t, Cube(), h)
	if got := r.Renderer().PixelRatio(); got != MaxPixelRatio {
		t.Errorf("PixelRatio() = %v, want %v", got, MaxPixelRatio)
	}
	if w, ht := r.Renderer().BufferSize(); w != 2*testW || ht != 2*testH {
		t.Errorf("BufferSize() = %dx%d, want %dx%d", w, ht, 2*testW, 2*testH)
	}
}

func TestInitializeErrors(t *testing.T) {
	h := newHost(0)
	r := initRunner(t, Cube(), h)

	if err := r.Initialize(context.Background(), h, DefaultSurfaceID); !errors.Is(err, ErrAlreadyInitialized) {
		t.Errorf("second Initialize() = %v, want ErrAlreadyInitialized", err)
	}
	if err := New(Cube()).Initialize(context.Background(), h, "missing"); !errors.Is(err, ErrSurfaceNotFound) {
		t.Errorf("Initialize(missing) = %v, want ErrSurfaceNotFound", err)
	}
	// The surface stays bound to the first runner's renderer.
	if err := New(Cube()).Initialize(context.Background(), h, DefaultSurfaceID); !errors.Is(err, gg3d.ErrSurfaceBound) {
		t.Errorf("Initialize(bound surface) = %v, want ErrSurfaceBound", err)
	}
}

func TestStartErrors(t *testing.T) {
	if err := New(Cube()).Start(); !errors.Is(err, ErrNotInitialized) {
		t.Errorf("Start() before Initialize = %v, want ErrNotInitialized", err)
	}
	r := initRunner(t, Cube(), newHost(0))
	if err := r.Start(); err != nil {
		t.Fatalf("Start() = %v", err)
	}
	if r.State() != Running {
		t.Errorf("State() = %v, want Running", r.State())
	}
	if err := r.Start(); !errors.Is(err, ErrAlreadyRunning) {
		t.Errorf("second Start() = %v, want ErrAlreadyRunning", err)
	}
}

func TestSetupLogged(t *testing.T) {
	logs := captureLogs(t)
	initRunner(t, Cube(), newHost(0))
	if lvl, ok := logs.level("setup complete"); !ok || lvl != slog.LevelInfo {
		t.Errorf("setup complete logged=%v level=%v, want Info", ok, lvl)
	}
}

func TestResize(t *testing.T) {
	r := initRunner(t, Cube(), newHost(0))
	sizes := [][2]int{{800, 600}, {1, 1000}, {1000, 1}, {800, 600}, {800, 600}, {333, 777}}
	for _, s := range sizes {
		r.Resize(s[0], s[1])
		if got, want := r.Camera().Aspect, float64(s[0])/float64(s[1]); got != want {
			t.Errorf("after Resize(%d, %d) Aspect = %v, want %v", s[0], s[1], got, want)
		}
		if w, h := r.Renderer().Size(); w != s[0] || h != s[1] {
			t.Errorf("after Resize(%d, %d) Size() = %dx%d", s[0], s[1], w, h)
		}
	}
	proj := r.Camera().ProjectionMatrix()
	r.Resize(333, 777)
	if r.Camera().ProjectionMatrix() != proj {
		t.Error("repeated Resize changed the projection")
	}
}

func TestResizeIgnoresEmptyViewport(t *testing.T) {
	logs := captureLogs(t)
	r := initRunner(t, Cube(), newHost(0))
	r.Resize(0, 0)
	r.Resize(100, -1)
	if got, want := r.Camera().Aspect, float64(testW)/testH; got != want {
		t.Errorf("Aspect = %v, want unchanged %v", got, want)
	}
	if w, h := r.Renderer().Size(); w != testW || h != testH {
		t.Errorf("Size() = %dx%d, want unchanged", w, h)
	}
	if lvl, ok := logs.level("resize ignored"); !ok || lvl != slog.LevelDebug {
		t.Errorf("resize ignored logged=%v level=%v, want Debug", ok, lvl)
	}
}

func TestHostResizeReachesRunner(t *testing.T) {
	h := newHost(3)
	r := initRunner(t, Cube(), h)
	if err := r.Start(); err != nil {
		t.Fatal(err)
	}
	h.Resize(200, 100)
	h.SetPixelRatio(1.5)
	if err := h.Run(context.Background()); err != nil {
		t.Fatalf("Run() = %v", err)
	}
	if r.Camera().Aspect != 2 {
		t.Errorf("Aspect = %v, want 2", r.Camera().Aspect)
	}
	if w, ht := r.Renderer().BufferSize(); w != 300 || ht != 150 {
		t.Errorf("BufferSize() = %dx%d, want 300x150", w, ht)
	}
	if b := h.Main().Frame().Bounds(); b.Dx() != 300 || b.Dy() != 150 {
		t.Errorf("presented frame = %v, want 300x150", b)
	}
}

func TestResizePixelRatioCap(t *testing.T) {
	h := newHost(3)
	r := initRunner(t, Cube(), h)
	if err := r.Start(); err != nil {
		t.Fatal(err)
	}
	h.SetPixelRatio(3)
	h.Resize(100, 50)
	if err := h.Run(context.Background()); err != nil {
		t.Fatalf("Run() = %v", err)
	}
	if got := r.Renderer().PixelRatio(); got != MaxPixelRatio {
		t.Errorf("PixelRatio() = %v, want %v", got, MaxPixelRatio)
	}
	if w, ht := r.Renderer().BufferSize(); w != 200 || ht != 100 {
		t.Errorf("BufferSize() = %dx%d, want 200x100", w, ht)
	}
}

func TestFrameCount(t *testing.T) {
	const n = 40
	h := newHost(n)
	r := initRunner(t, Cube(), h)
	if err := r.Start(); err != nil {
		t.Fatal(err)
	}
	if err := h.Run(context.Background()); err != nil {
		t.Fatalf("Run() = %v", err)
	}
	if r.FrameCount() != n || h.Frames() != n {
		t.Errorf("FrameCount() = %d, host frames = %d, want %d", r.FrameCount(), h.Frames(), n)
	}
	if p := h.Main().Presents(); p != n {
		t.Errorf("presents = %d, want %d", p, n)
	}
	if got := r.Renderer().Info().Frames; got != n {
		t.Errorf("renderer frames = %d, want %d", got, n)
	}
}

func TestRotationPerFrame(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		step float64
	}{
		{"spinning plane", SpinningPlane(), PlaneRotationStep},
		{"cube", Cube(), CubeRotationStep},
		{"orbit plane is static", OrbitPlane(), 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			const n = 30
			h := newHost(n)
			r := initRunner(t, withFS(t, tt.cfg, fstest.MapFS{}), h)
			if err := r.Start(); err != nil {
				t.Fatal(err)
			}
			if err := h.Run(context.Background()); err != nil {
				t.Fatalf("Run() = %v", err)
			}
			want := math.Mod(n*tt.step, 2*math.Pi)
			rot := r.Mesh().Rotation
			if math.Abs(math.Mod(rot.X, 2*math.Pi)-want) > 1e-9 || math.Abs(math.Mod(rot.Y, 2*math.Pi)-want) > 1e-9 {
				t.Errorf("rotation = (%v, %v), want %v", rot.X, rot.Y, want)
			}
			if rot.Z != 0 {
				t.Errorf("rotation.Z = %v, want 0", rot.Z)
			}
		})
	}
}

func TestTextureLoaded(t *testing.T) {
	logs := captureLogs(t)
	h := newHost(0)
	cfg := withFS(t, SpinningPlane(), fstest.MapFS{DefaultTexturePath: {Data: pngFile(t)}})
	r := initRunner(t, cfg, h)
	if err := r.Start(); err != nil {
		t.Fatal(err)
	}
	runUntil(t, h, func() bool { return logs.count("texture loaded") > 0 && h.Frames() > 5 })

	if !r.Texture().Loaded() {
		t.Error("texture not loaded")
	}
	if n := logs.count("texture loaded"); n != 1 {
		t.Errorf("texture loaded logged %d times, want 1", n)
	}
	if n := logs.count("texture load failed"); n != 0 {
		t.Errorf("texture load failed logged %d times, want 0", n)
	}
}

func TestTextureFailureKeepsLooping(t *testing.T) {
	logs := captureLogs(t)
	h := newHost(0)
	r := initRunner(t, withFS(t, OrbitPlane(), fstest.MapFS{}), h)
	if err := r.Start(); err != nil {
		t.Fatal(err)
	}
	var failedAt uint64
	runUntil(t, h, func() bool {
		if failedAt == 0 && logs.count("texture load failed") > 0 {
			failedAt = h.Frames() + 1
		}
		return failedAt > 0 && h.Frames() > failedAt+10
	})

	if n := logs.count("texture load failed"); n != 1 {
		t.Errorf("texture load failed logged %d times, want 1", n)
	}
	if lvl, _ := logs.level("texture load failed"); lvl != slog.LevelError {
		t.Errorf("failure level = %v, want Error", lvl)
	}
	if n := logs.count("texture loaded"); n != 0 {
		t.Errorf("texture loaded logged %d times, want 0", n)
	}
	if r.Texture().Loaded() {
		t.Error("texture loaded from an empty file system")
	}
	// The plane renders black; the background stays visible around it.
	frame := h.Main().Frame()
	if c := frame.RGBAAt(testW/2, testH/2); c.R != 0 || c.G != 0 || c.B != 0 {
		t.Errorf("center pixel = %v, want black", c)
	}
	if c := frame.RGBAAt(0, 0); c.R != 0x22 {
		t.Errorf("corner pixel = %v, want background 0x222222", c)
	}
}

// orderController records the frames presented before each Advance.
type orderController struct {
	surface *headless.Surface
	seen    []uint64
}

func (c *orderController) Advance() bool {
	c.seen = append(c.seen, c.surface.Presents())
	return false
}

func TestControllerAdvancesOncePerFrame(t *testing.T) {
	const n = 20
	h := newHost(n)
	ctrl := &orderController{surface: h.Main()}
	cfg := Cube()
	cfg.Controller = ctrl
	r := initRunner(t, cfg, h)
	if err := r.Start(); err != nil {
		t.Fatal(err)
	}
	if err := h.Run(context.Background()); err != nil {
		t.Fatalf("Run() = %v", err)
	}
	if len(ctrl.seen) != n {
		t.Fatalf("Advance ran %d times in %d frames", len(ctrl.seen), n)
	}
	for i, presents := range ctrl.seen {
		if presents != uint64(i) {
			t.Fatalf("Advance %d saw %d presents, want %d", i, presents, i)
		}
	}
	if p := h.Main().Presents(); p != n {
		t.Errorf("presents = %d, want %d", p, n)
	}
}

func TestOrbitControlsReceivePointer(t *testing.T) {
	h := newHost(60)
	r := initRunner(t, withFS(t, OrbitPlane(), fstest.MapFS{}), h)
	if err := r.Start(); err != nil {
		t.Fatal(err)
	}
	h.DispatchPointer(gg3d.PointerEvent{Type: gg3d.PointerDown, Button: gg3d.ButtonLeft, X: 10, Y: 10})
	h.DispatchPointer(gg3d.PointerEvent{Type: gg3d.PointerMove, Button: gg3d.ButtonLeft, X: 30, Y: 10})
	h.DispatchPointer(gg3d.PointerEvent{Type: gg3d.PointerUp, Button: gg3d.ButtonLeft, X: 30, Y: 10})
	if err := h.Run(context.Background()); err != nil {
		t.Fatalf("Run() = %v", err)
	}
	pos := r.Camera().Position
	if math.Abs(pos.X()) < 1e-3 {
		t.Errorf("camera did not orbit: %v", pos)
	}
	if d := r.Controls().Distance(); math.Abs(d-5) > 1e-9 {
		t.Errorf("Distance() = %v, want 5", d)
	}
	if !r.Controls().EnableDamping || r.Controls().DampingFactor != DampingFactor {
		t.Error("orbit controls are not damped")
	}
}

func TestPreset(t *testing.T) {
	tests := []struct {
		name   string
		ok     bool
		tex    bool
		orbit  bool
		rotate bool
	}{
		{"orbit", true, true, true, false},
		{"spin", true, true, false, true},
		{"cube", true, false, false, true},
		{"sphere", false, false, false, false},
	}
	for _, tt := range tests {
		cfg, ok := Preset(tt.name)
		if ok != tt.ok || cfg.UseTexture != tt.tex || cfg.UseOrbitControls != tt.orbit || cfg.AutoRotate != tt.rotate {
			t.Errorf("Preset(%q) = %+v, %v", tt.name, cfg, ok)
		}
	}
}

func TestNewDefaults(t *testing.T) {
	cfg := New(Config{UseTexture: true, AutoRotate: true}).Config()
	if cfg.RotationStep != PlaneRotationStep || cfg.TexturePath != DefaultTexturePath {
		t.Errorf("plane defaults = %+v", cfg)
	}
	cfg = New(Config{AutoRotate: true}).Config()
	if cfg.RotationStep != CubeRotationStep || cfg.CubeColor != DefaultCubeColor {
		t.Errorf("cube defaults = %+v", cfg)
	}
}

func BenchmarkFrame(b *testing.B) {
	h := newHost(0)
	r := New(Cube())
	if err := r.Initialize(context.Background(), h, DefaultSurfaceID); err != nil {
		b.Fatal(err)
	}
	b.Cleanup(func() { _ = r.Dispose() })
	for b.Loop() {
		r.frame()
	}
}
