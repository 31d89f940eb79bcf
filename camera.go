// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gg3d

import "github.com/go-gl/mathgl/mgl64"

// PerspectiveCamera projects the scene with a symmetric view frustum.
//
// FOV, Aspect, Near and Far are read only by UpdateProjectionMatrix; change
// them and call it to take effect.
type PerspectiveCamera struct {
	// FOV is the vertical field of view in degrees.
	FOV    float64
	Aspect float64
	Near   float64
	Far    float64

	Position mgl64.Vec3
	Up       mgl64.Vec3

	target     mgl64.Vec3
	projection mgl64.Mat4
}

// NewPerspectiveCamera creates a camera at the origin looking down -Z.
func NewPerspectiveCamera(fov, aspect, near, far float64) *PerspectiveCamera {
	c := &PerspectiveCamera{
		FOV:    fov,
		Aspect: aspect,
		Near:   near,
		Far:    far,
		Up:     mgl64.Vec3{0, 1, 0},
		target: mgl64.Vec3{0, 0, -1},
	}
	c.UpdateProjectionMatrix()
	return c
}

// UpdateProjectionMatrix recomputes the projection from FOV, Aspect, Near
// and Far.
func (c *PerspectiveCamera) UpdateProjectionMatrix() {
	aspect := c.Aspect
	if aspect <= 0 {
		aspect = 1
	}
	c.projection = mgl64.Perspective(mgl64.DegToRad(c.FOV), aspect, c.Near, c.Far)
}

// ProjectionMatrix returns the matrix computed by the last
// UpdateProjectionMatrix call.
func (c *PerspectiveCamera) ProjectionMatrix() mgl64.Mat4 {
	return c.projection
}

// LookAt points the camera at target.
func (c *PerspectiveCamera) LookAt(target mgl64.Vec3) {
	c.target = target
}

// Target returns the point the camera looks at.
func (c *PerspectiveCamera) Target() mgl64.Vec3 {
	return c.target
}

// ViewMatrix returns the world-to-camera transform.
func (c *PerspectiveCamera) ViewMatrix() mgl64.Mat4 {
	target := c.target
	if target.ApproxEqual(c.Position) {
		target = c.Position.Sub(mgl64.Vec3{0, 0, 1})
	}
	return mgl64.LookAtV(c.Position, target, c.Up)
}

// Basis returns the camera's right, up and backward unit axes in world
// space, i.e. the columns of its world matrix.
func (c *PerspectiveCamera) Basis() (right, up, back mgl64.Vec3) {
	v := c.ViewMatrix()
	// The view matrix is orthonormal; its rows are the camera axes.
	right = mgl64.Vec3{v.At(0, 0), v.At(0, 1), v.At(0, 2)}
	up = mgl64.Vec3{v.At(1, 0), v.At(1, 1), v.At(1, 2)}
	back = mgl64.Vec3{v.At(2, 0), v.At(2, 1), v.At(2, 2)}
	return right, up, back
}
