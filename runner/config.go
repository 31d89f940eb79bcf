// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package runner

import (
	"github.com/gogpu/gg"
	"github.com/gogpu/gg3d"
)

// DefaultSurfaceID is the surface identifier the CLI and hosts use when
// none is given.
const DefaultSurfaceID = "three-canvas"

// DefaultTexturePath is the image mapped onto the plane.
const DefaultTexturePath = "electric.jpg"

// MaxPixelRatio caps the device pixel ratio of the drawing buffer.
const MaxPixelRatio = 2.0

// Camera and light constants.
const (
	CameraFOV  = 75.0
	CameraNear = 0.1
	CameraFar  = 1000.0

	AmbientIntensity     = 0.5
	DirectionalIntensity = 0.8

	DampingFactor = 0.05

	PlaneRotationStep = 0.005
	CubeRotationStep  = 0.01
)

// DefaultCubeColor is the Lambert color of the cube.
var DefaultCubeColor = gg3d.ColorHex(0x44aa88)

// Config selects the content and per-frame behavior of a SceneRunner.
type Config struct {
	// UseTexture shows a textured 4×4 plane instead of the colored cube.
	UseTexture bool

	// UseOrbitControls attaches damped orbit controls to the camera.
	UseOrbitControls bool

	// AutoRotate adds RotationStep to the mesh X and Y rotation every
	// frame.
	AutoRotate   bool
	RotationStep float64

	// OrbitAutoRotate makes the orbit controls circle the target while
	// idle. Only used with UseOrbitControls.
	OrbitAutoRotate bool

	// TexturePath is resolved by the texture loader: a path in its file
	// system or an http(s) URL.
	TexturePath string

	// CubeColor is the color of the cube when UseTexture is false.
	CubeColor gg.RGBA

	// Controller replaces the orbit controls when set. If it also
	// implements PointerHandler it receives the host's pointer events.
	Controller Controller

	// LoaderOptions configure the texture loader.
	LoaderOptions []gg3d.LoaderOption
}

// DefaultConfig returns the OrbitPlane preset.
func DefaultConfig() Config {
	return OrbitPlane()
}

// OrbitPlane is a static textured plane viewed through damped orbit
// controls.
func OrbitPlane() Config {
	return Config{
		UseTexture:       true,
		UseOrbitControls: true,
		TexturePath:      DefaultTexturePath,
		CubeColor:        DefaultCubeColor,
	}
}

// SpinningPlane is a textured plane that rotates a little every frame.
func SpinningPlane() Config {
	return Config{
		UseTexture:   true,
		AutoRotate:   true,
		RotationStep: PlaneRotationStep,
		TexturePath:  DefaultTexturePath,
		CubeColor:    DefaultCubeColor,
	}
}

// Cube is a lit, colored cube that rotates every frame.
func Cube() Config {
	return Config{
		AutoRotate:   true,
		RotationStep: CubeRotationStep,
		TexturePath:  DefaultTexturePath,
		CubeColor:    DefaultCubeColor,
	}
}

// Preset returns the configuration named by the CLI variant names
// "orbit", "spin" and "cube".
func Preset(name string) (Config, bool) {
	switch name {
	case "orbit":
		return OrbitPlane(), true
	case "spin":
		return SpinningPlane(), true
	case "cube":
		return Cube(), true
	default:
		return Config{}, false
	}
}
