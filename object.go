// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package gg3d

import "github.com/go-gl/mathgl/mgl64"

// Euler is a rotation in radians applied in X, then Y, then Z order
// (the matrix is Rx · Ry · Rz).
type Euler struct {
	X, Y, Z float64
}

// Matrix returns the rotation matrix for the Euler angles.
func (e Euler) Matrix() mgl64.Mat4 {
	return mgl64.HomogRotate3DX(e.X).
		Mul4(mgl64.HomogRotate3DY(e.Y)).
		Mul4(mgl64.HomogRotate3DZ(e.Z))
}

// Object3D holds the transform shared by everything placed in a Scene.
type Object3D struct {
	Name     string
	Position mgl64.Vec3
	Rotation Euler
	Scale    mgl64.Vec3
	Visible  bool
}

// NewObject3D returns an untransformed, visible object.
func NewObject3D() Object3D {
	return Object3D{
		Scale:   mgl64.Vec3{1, 1, 1},
		Visible: true,
	}
}

// Object returns o itself; it lets values embedding Object3D satisfy Node.
func (o *Object3D) Object() *Object3D {
	return o
}

// ModelMatrix returns T · R · S for the object.
func (o *Object3D) ModelMatrix() mgl64.Mat4 {
	return mgl64.Translate3D(o.Position.X(), o.Position.Y(), o.Position.Z()).
		Mul4(o.Rotation.Matrix()).
		Mul4(mgl64.Scale3D(o.Scale.X(), o.Scale.Y(), o.Scale.Z()))
}

// Node is anything that can be added to a Scene.
type Node interface {
	Object() *Object3D
}
