// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package gg3d renders small 3D scenes with the gg 2D graphics library.
//
// # Overview
//
// gg3d is a minimal pure-Go scene layer: a Scene holds meshes and lights,
// a PerspectiveCamera projects them and a Renderer rasterizes the result
// into a gg drawing buffer that it presents to a Surface. Matrix math
// comes from mathgl (mgl64). There is no GPU pipeline; the renderer sorts
// faces back to front and fills them as anti-aliased paths, or scan
// converts them when they carry a texture.
//
// # Quick Start
//
//	r, err := gg3d.NewRenderer(surface, gg3d.WithPixelRatio(2))
//	if err != nil {
//	    return err
//	}
//	defer r.Dispose()
//
//	scene := gg3d.NewScene()
//	cube := gg3d.NewMesh(gg3d.NewBoxGeometry(1, 1, 1),
//	    gg3d.NewLambertMaterial(gg3d.ColorHex(0x44aa88)))
//	sun := gg3d.NewDirectionalLight(gg.White, 0.8)
//	sun.Position = mgl64.Vec3{1, 1, 1}
//	scene.Add(cube, gg3d.NewAmbientLight(gg.White, 0.5), sun)
//
//	camera := gg3d.NewPerspectiveCamera(75, 4.0/3, 0.1, 1000)
//	camera.Position = mgl64.Vec3{0, 0, 5}
//	err = r.Render(scene, camera)
//
// # Surfaces
//
// A Surface is the drawable a host window or test harness provides. Each
// surface is bound to at most one Renderer at a time; NewRenderer fails
// with ErrSurfaceBound until the previous renderer is disposed.
//
// # Textures
//
// TextureLoader decodes JPEG, PNG, GIF, BMP and WebP images from a file
// system or over HTTP. Load returns an empty Texture at once and fills it
// when the image arrives; an empty texture samples black.
//
// # Logging
//
// gg3d logs through log/slog and is silent by default. SetLogger installs
// a logger for gg3d and for gg.
//
// # Related Packages
//
//   - controls: damped orbit camera controls
//   - runner: the demo scene runner and its Host interface
//   - host/headless, host/ebitenhost: hosts for tests and desktop windows
package gg3d
