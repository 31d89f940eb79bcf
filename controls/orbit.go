// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package controls

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/gogpu/gg3d"
)

// DefaultDampingFactor is the fraction of the remaining motion applied per
// Advance when damping is enabled.
const DefaultDampingFactor = 0.05

const eps = 1e-6

type dragState int

const (
	dragNone dragState = iota
	dragRotate
	dragPan
)

// OrbitControls moves a camera around a target: left drag orbits, the
// wheel dollies and right or middle drag pans.
//
// Pointer events only accumulate motion; the camera changes in Advance,
// which must run once per frame before rendering. With damping enabled
// the accumulated motion is released over several frames, so skipping
// Advance freezes the camera mid-motion.
//
// OrbitControls is NOT safe for concurrent use.
type OrbitControls struct {
	Camera *gg3d.PerspectiveCamera
	Target mgl64.Vec3

	Enabled       bool
	EnableDamping bool
	DampingFactor float64

	EnableRotate bool
	RotateSpeed  float64
	EnableZoom   bool
	ZoomSpeed    float64
	EnablePan    bool
	PanSpeed     float64

	// AutoRotate orbits around the target while no drag is active.
	// AutoRotateSpeed 2.0 takes 30 seconds per orbit at 60 fps.
	AutoRotate      bool
	AutoRotateSpeed float64

	MinDistance     float64
	MaxDistance     float64
	MinPolarAngle   float64
	MaxPolarAngle   float64
	MinAzimuthAngle float64
	MaxAzimuthAngle float64

	state        dragState
	lastX, lastY float64

	deltaTheta float64
	deltaPhi   float64
	scale      float64
	panOffset  mgl64.Vec3

	savedTarget   mgl64.Vec3
	savedPosition mgl64.Vec3
}

// NewOrbitControls creates controls for camera orbiting the origin.
// Damping is off until EnableDamping is set.
func NewOrbitControls(camera *gg3d.PerspectiveCamera) *OrbitControls {
	c := &OrbitControls{
		Camera:          camera,
		Enabled:         true,
		DampingFactor:   DefaultDampingFactor,
		EnableRotate:    true,
		RotateSpeed:     1,
		EnableZoom:      true,
		ZoomSpeed:       1,
		EnablePan:       true,
		PanSpeed:        1,
		AutoRotateSpeed: 2,
		MaxDistance:     math.Inf(1),
		MaxPolarAngle:   math.Pi,
		MinAzimuthAngle: math.Inf(-1),
		MaxAzimuthAngle: math.Inf(1),
		scale:           1,
	}
	c.SaveState()
	camera.LookAt(c.Target)
	return c
}

// SaveState records the current target and camera position for Reset.
func (c *OrbitControls) SaveState() {
	c.savedTarget = c.Target
	c.savedPosition = c.Camera.Position
}

// Reset restores the state recorded by SaveState and drops pending motion.
func (c *OrbitControls) Reset() {
	c.Target = c.savedTarget
	c.Camera.Position = c.savedPosition
	c.Camera.LookAt(c.Target)
	c.state = dragNone
	c.deltaTheta, c.deltaPhi = 0, 0
	c.scale = 1
	c.panOffset = mgl64.Vec3{}
}

// Distance returns the distance from the camera to the target.
func (c *OrbitControls) Distance() float64 {
	return c.Camera.Position.Sub(c.Target).Len()
}

// HandlePointer accumulates motion from a pointer event.
func (c *OrbitControls) HandlePointer(ev gg3d.PointerEvent) {
	if !c.Enabled {
		return
	}
	switch ev.Type {
	case gg3d.PointerDown:
		switch {
		case ev.Button == gg3d.ButtonLeft && c.EnableRotate:
			c.state = dragRotate
		case ev.Button != gg3d.ButtonLeft && c.EnablePan:
			c.state = dragPan
		default:
			c.state = dragNone
		}
		c.lastX, c.lastY = ev.X, ev.Y
	case gg3d.PointerMove:
		dx, dy := ev.X-c.lastX, ev.Y-c.lastY
		c.lastX, c.lastY = ev.X, ev.Y
		h := float64(ev.Height)
		if h <= 0 {
			h = 1
		}
		switch c.state {
		case dragRotate:
			c.rotateLeft(2 * math.Pi * dx / h * c.RotateSpeed)
			c.rotateUp(2 * math.Pi * dy / h * c.RotateSpeed)
		case dragPan:
			c.pan(dx*c.PanSpeed, dy*c.PanSpeed, h)
		}
	case gg3d.PointerUp, gg3d.PointerCancel:
		c.state = dragNone
	case gg3d.PointerWheel:
		if !c.EnableZoom || c.state != dragNone {
			return
		}
		switch {
		case ev.DeltaY < 0:
			c.DollyIn(c.zoomScale())
		case ev.DeltaY > 0:
			c.DollyOut(c.zoomScale())
		}
	}
}

// DollyIn moves the camera towards the target by factor s (< 1) at the
// next Advance.
func (c *OrbitControls) DollyIn(s float64) {
	c.scale *= s
}

// DollyOut moves the camera away from the target by factor 1/s at the
// next Advance.
func (c *OrbitControls) DollyOut(s float64) {
	c.scale /= s
}

// RotateLeft queues an azimuthal rotation of angle radians.
func (c *OrbitControls) RotateLeft(angle float64) {
	c.rotateLeft(angle)
}

// RotateUp queues a polar rotation of angle radians.
func (c *OrbitControls) RotateUp(angle float64) {
	c.rotateUp(angle)
}

func (c *OrbitControls) rotateLeft(angle float64) { c.deltaTheta -= angle }
func (c *OrbitControls) rotateUp(angle float64)   { c.deltaPhi -= angle }

func (c *OrbitControls) zoomScale() float64 {
	return math.Pow(0.95, c.ZoomSpeed)
}

// pan queues a screen-space pan of (dx, dy) logical pixels on a surface
// of the given height.
func (c *OrbitControls) pan(dx, dy, height float64) {
	distance := c.Distance() * math.Tan(mgl64.DegToRad(c.Camera.FOV)/2)
	right, up, _ := c.Camera.Basis()
	c.panOffset = c.panOffset.
		Add(right.Mul(-2 * dx * distance / height)).
		Add(up.Mul(2 * dy * distance / height))
}

// Advance applies the accumulated motion to the camera and reports
// whether the camera moved. Call it exactly once per frame.
func (c *OrbitControls) Advance() bool {
	prevPos, prevTarget := c.Camera.Position, c.Target

	s := toSpherical(c.Camera.Position.Sub(c.Target))

	if c.AutoRotate && c.state == dragNone {
		c.rotateLeft(2 * math.Pi / 60 / 60 * c.AutoRotateSpeed)
	}

	f := 1.0
	if c.EnableDamping {
		f = c.DampingFactor
	}
	s.theta += c.deltaTheta * f
	s.phi += c.deltaPhi * f

	if !math.IsInf(c.MinAzimuthAngle, 0) || !math.IsInf(c.MaxAzimuthAngle, 0) {
		s.theta = mgl64.Clamp(s.theta, c.MinAzimuthAngle, c.MaxAzimuthAngle)
	}
	s.phi = mgl64.Clamp(s.phi, c.MinPolarAngle, c.MaxPolarAngle)
	s.phi = mgl64.Clamp(s.phi, eps, math.Pi-eps)

	c.Target = c.Target.Add(c.panOffset.Mul(f))

	s.radius = mgl64.Clamp(s.radius*c.scale, c.MinDistance, c.MaxDistance)

	c.Camera.Position = c.Target.Add(s.vec())
	c.Camera.LookAt(c.Target)

	if c.EnableDamping {
		c.deltaTheta *= 1 - c.DampingFactor
		c.deltaPhi *= 1 - c.DampingFactor
		c.panOffset = c.panOffset.Mul(1 - c.DampingFactor)
	} else {
		c.deltaTheta, c.deltaPhi = 0, 0
		c.panOffset = mgl64.Vec3{}
	}
	c.scale = 1

	return c.Camera.Position.Sub(prevPos).LenSqr() > eps*eps ||
		c.Target.Sub(prevTarget).LenSqr() > eps*eps
}

// spherical is a Y-up spherical coordinate: theta around Y from +Z, phi
// down from +Y.
type spherical struct {
	radius, theta, phi float64
}

func toSpherical(v mgl64.Vec3) spherical {
	r := v.Len()
	if r == 0 {
		return spherical{}
	}
	return spherical{
		radius: r,
		theta:  math.Atan2(v.X(), v.Z()),
		phi:    math.Acos(mgl64.Clamp(v.Y()/r, -1, 1)),
	}
}

func (s spherical) vec() mgl64.Vec3 {
	sinPhi := math.Sin(s.phi) * s.radius
	return mgl64.Vec3{
		sinPhi * math.Sin(s.theta),
		math.Cos(s.phi) * s.radius,
		sinPhi * math.Cos(s.theta),
	}
}
