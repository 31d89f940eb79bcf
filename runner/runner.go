// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package runner

import (
	"context"
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gogpu/gg"
	"github.com/gogpu/gg3d"
	"github.com/gogpu/gg3d/controls"
)

// State is the render loop state.
type State int

const (
	Stopped State = iota
	Running
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case Stopped:
		return "Stopped"
	case Running:
		return "Running"
	default:
		return "Unknown"
	}
}

// SceneRunner sets up a scene on a host surface and renders it every
// frame the host schedules.
//
// All methods except New must be called on the host loop goroutine.
type SceneRunner struct {
	cfg  Config
	host Host

	surface  gg3d.Surface
	scene    *gg3d.Scene
	camera   *gg3d.PerspectiveCamera
	renderer *gg3d.Renderer
	mesh     *gg3d.Mesh
	texture  *gg3d.Texture
	orbit    *controls.OrbitControls
	ctrl     Controller

	state  State
	frames uint64
}

// New creates a runner for cfg. A zero RotationStep or empty TexturePath
// falls back to the preset values.
func New(cfg Config) *SceneRunner {
	if cfg.TexturePath == "" {
		cfg.TexturePath = DefaultTexturePath
	}
	if cfg.CubeColor == (gg.RGBA{}) {
		cfg.CubeColor = DefaultCubeColor
	}
	if cfg.AutoRotate && cfg.RotationStep == 0 {
		cfg.RotationStep = CubeRotationStep
		if cfg.UseTexture {
			cfg.RotationStep = PlaneRotationStep
		}
	}
	return &SceneRunner{cfg: cfg}
}

// Initialize binds a renderer to the host surface named surfaceID and
// builds the scene, camera, lights and content. ctx bounds the texture
// load.
func (r *SceneRunner) Initialize(ctx context.Context, host Host, surfaceID string) error {
	if r.host != nil {
		return ErrAlreadyInitialized
	}
	if surfaceID == "" {
		surfaceID = DefaultSurfaceID
	}
	surface, err := host.Surface(surfaceID)
	if err != nil {
		return fmt.Errorf("%w: %q: %w", ErrSurfaceNotFound, surfaceID, err)
	}
	if surface == nil {
		return fmt.Errorf("%w: %q", ErrSurfaceNotFound, surfaceID)
	}

	w, h := surface.Size()
	renderer, err := gg3d.NewRenderer(surface,
		gg3d.WithAntialias(true),
		gg3d.WithPixelRatio(min(surface.PixelRatio(), MaxPixelRatio)),
	)
	if err != nil {
		return fmt.Errorf("runner: renderer setup failed: %w", err)
	}

	camera := gg3d.NewPerspectiveCamera(CameraFOV, float64(w)/float64(h), CameraNear, CameraFar)
	camera.Position = mgl64.Vec3{0, 0, 5}
	camera.LookAt(mgl64.Vec3{})

	r.host = host
	r.surface = surface
	r.renderer = renderer
	r.camera = camera
	r.scene = gg3d.NewScene()

	r.addContent(ctx)
	r.addLights()
	r.attachController()

	host.OnResize(r.Resize)

	gg3d.Logger().Info("setup complete",
		"surface", surfaceID, "width", w, "height", h,
		"pixelRatio", renderer.PixelRatio(),
		"texture", r.cfg.UseTexture, "orbit", r.ctrl != nil, "autoRotate", r.cfg.AutoRotate)
	return nil
}

func (r *SceneRunner) addContent(ctx context.Context) {
	if !r.cfg.UseTexture {
		r.mesh = gg3d.NewMesh(gg3d.NewBoxGeometry(1, 1, 1), gg3d.NewLambertMaterial(r.cfg.CubeColor))
		r.mesh.Name = "cube"
		r.scene.Add(r.mesh)
		return
	}

	path := r.cfg.TexturePath
	loader := gg3d.NewTextureLoader(r.host, r.cfg.LoaderOptions...)
	r.texture = loader.Load(ctx, path, func(res gg3d.LoadResult) {
		if !res.Loaded() {
			gg3d.Logger().Error("texture load failed", "path", path, "err", res.Err)
			return
		}
		tw, th := res.Texture.Size()
		gg3d.Logger().Info("texture loaded", "path", path, "width", tw, "height", th)
	})

	mat := gg3d.NewBasicMaterial()
	mat.Map = r.texture
	mat.Side = gg3d.DoubleSide
	r.mesh = gg3d.NewMesh(gg3d.NewPlaneGeometry(4, 4), mat)
	r.mesh.Name = "plane"
	r.scene.Add(r.mesh)
}

func (r *SceneRunner) addLights() {
	ambient := gg3d.NewAmbientLight(gg.White, AmbientIntensity)
	sun := gg3d.NewDirectionalLight(gg.White, DirectionalIntensity)
	sun.Position = mgl64.Vec3{1, 1, 1}
	r.scene.Add(ambient, sun)
}

func (r *SceneRunner) attachController() {
	r.ctrl = r.cfg.Controller
	if r.ctrl == nil && r.cfg.UseOrbitControls {
		r.orbit = controls.NewOrbitControls(r.camera)
		r.orbit.EnableDamping = true
		r.orbit.DampingFactor = DampingFactor
		r.orbit.AutoRotate = r.cfg.OrbitAutoRotate
		r.ctrl = r.orbit
	}
	if ph, ok := r.ctrl.(PointerHandler); ok {
		r.host.OnPointer(ph.HandlePointer)
	}
}

// Start requests the first frame. Every frame requests the next one
// before doing its work, so the loop runs until the host tears down.
func (r *SceneRunner) Start() error {
	if r.host == nil {
		return ErrNotInitialized
	}
	if r.state == Running {
		return ErrAlreadyRunning
	}
	r.state = Running
	r.host.RequestFrame(r.frame)
	return nil
}

func (r *SceneRunner) frame() {
	r.host.RequestFrame(r.frame)
	r.frames++

	if r.ctrl != nil {
		r.ctrl.Advance()
	}
	if r.cfg.AutoRotate {
		r.mesh.Rotation.X += r.cfg.RotationStep
		r.mesh.Rotation.Y += r.cfg.RotationStep
	}
	if err := r.renderer.Render(r.scene, r.camera); err != nil {
		gg3d.Logger().Warn("render failed", "frame", r.frames, "err", err)
	}
}

// Resize keeps the camera aspect and the drawing buffer in step with the
// viewport. Non-positive sizes are ignored.
func (r *SceneRunner) Resize(width, height int) {
	if r.renderer == nil {
		return
	}
	if width <= 0 || height <= 0 {
		gg3d.Logger().Debug("resize ignored", "width", width, "height", height)
		return
	}
	r.camera.Aspect = float64(width) / float64(height)
	r.camera.UpdateProjectionMatrix()
	if err := r.renderer.SetSize(width, height); err != nil {
		gg3d.Logger().Warn("resize failed", "width", width, "height", height, "err", err)
		return
	}
	if err := r.renderer.SetPixelRatio(min(r.surface.PixelRatio(), MaxPixelRatio)); err != nil {
		gg3d.Logger().Warn("pixel ratio update failed", "err", err)
		return
	}
	gg3d.Logger().Debug("resized", "width", width, "height", height, "pixelRatio", r.renderer.PixelRatio())
}

// Dispose releases the renderer's surface binding. Call it after the host
// has stopped delivering frames.
func (r *SceneRunner) Dispose() error {
	if r.renderer == nil {
		return nil
	}
	return r.renderer.Dispose()
}

// Config returns the runner configuration after defaults were applied.
func (r *SceneRunner) Config() Config { return r.cfg }

// State returns the render loop state.
func (r *SceneRunner) State() State { return r.state }

// FrameCount returns the number of frames run since Start.
func (r *SceneRunner) FrameCount() uint64 { return r.frames }

// Scene returns the scene, or nil before Initialize.
func (r *SceneRunner) Scene() *gg3d.Scene { return r.scene }

// Camera returns the camera, or nil before Initialize.
func (r *SceneRunner) Camera() *gg3d.PerspectiveCamera { return r.camera }

// Renderer returns the renderer, or nil before Initialize.
func (r *SceneRunner) Renderer() *gg3d.Renderer { return r.renderer }

// Mesh returns the plane or cube.
func (r *SceneRunner) Mesh() *gg3d.Mesh { return r.mesh }

// Texture returns the plane texture, or nil for the cube.
func (r *SceneRunner) Texture() *gg3d.Texture { return r.texture }

// Controls returns the orbit controls, or nil when they are not used.
func (r *SceneRunner) Controls() *controls.OrbitControls { return r.orbit }
